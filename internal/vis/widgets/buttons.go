package widgets

import (
	"image"
	"image/color"

	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
)

// Shared widget colors
var (
	colorPanel     = color.NRGBA{R: 40, G: 43, B: 48, A: 255}
	colorButton    = color.NRGBA{R: 55, G: 58, B: 65, A: 255}
	colorActive    = color.NRGBA{R: 80, G: 130, B: 180, A: 255}
	colorDisabled  = color.NRGBA{R: 45, G: 47, B: 52, A: 255}
	colorSeparator = color.NRGBA{R: 60, G: 65, B: 70, A: 255}
	colorText      = color.NRGBA{R: 220, G: 220, B: 220, A: 255}
	colorTextDim   = color.NRGBA{R: 140, G: 140, B: 140, A: 255}
)

// button draws a flat labelled button. enabled only changes its look.
func button(gtx layout.Context, th *material.Theme, btn *widget.Clickable, text string, active, enabled bool) layout.Dimensions {
	bg := colorButton
	fg := colorText
	switch {
	case !enabled:
		bg = colorDisabled
		fg = colorTextDim
	case active:
		bg = colorActive
	}
	if enabled && btn.Hovered() {
		bg = lighten(bg, 15)
	}

	return btn.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Background{}.Layout(gtx,
			func(gtx layout.Context) layout.Dimensions {
				rect := image.Rect(0, 0, gtx.Constraints.Min.X, gtx.Constraints.Min.Y)
				paint.FillShape(gtx.Ops, bg, clip.Rect(rect).Op())
				return layout.Dimensions{Size: gtx.Constraints.Min}
			},
			func(gtx layout.Context) layout.Dimensions {
				gtx.Constraints.Min.X = max(gtx.Constraints.Min.X, gtx.Dp(unit.Dp(32)))
				gtx.Constraints.Min.Y = max(gtx.Constraints.Min.Y, gtx.Dp(unit.Dp(28)))
				return layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					return layout.Inset{Left: unit.Dp(6), Right: unit.Dp(6)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
						label := material.Label(th, 12, text)
						label.Color = fg
						return label.Layout(gtx)
					})
				})
			},
		)
	})
}

func separator(gtx layout.Context) layout.Dimensions {
	return layout.Inset{Left: unit.Dp(8), Right: unit.Dp(8)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		rect := image.Rect(0, 0, 1, 24)
		paint.FillShape(gtx.Ops, colorSeparator, clip.Rect(rect).Op())
		return layout.Dimensions{Size: image.Point{X: 1, Y: 24}}
	})
}

func lighten(c color.NRGBA, d uint8) color.NRGBA {
	c.R = addU8(c.R, d)
	c.G = addU8(c.G, d)
	c.B = addU8(c.B, d)
	return c
}

// addU8 adds without wrapping past 255.
func addU8(a, b uint8) uint8 {
	if a > 255-b {
		return 255
	}
	return a + b
}
