// Package cli defines the wheelctl command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/elektrokombinacija/lifewheel/internal/config"
	"github.com/elektrokombinacija/lifewheel/internal/core"
	"github.com/elektrokombinacija/lifewheel/internal/geom"
	"github.com/elektrokombinacija/lifewheel/internal/store"
	"github.com/elektrokombinacija/lifewheel/internal/vis/interact"
)

// All linker flags will be set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// nowFunc is replaced in tests.
var nowFunc = time.Now

// session carries the resolved configuration into subcommands.
type session struct {
	v   *viper.Viper
	cfg config.Config
}

// wheel lays out sectors on the configured canvas.
func (s *session) wheel(sectors []core.Sector) geom.Wheel {
	return geom.NewWheel(s.cfg.Center(), s.cfg.Radius(), s.cfg.RingCount, sectors, s.cfg.Gap)
}

// open returns the configured store.
func (s *session) open(ctx context.Context) (*store.SQLite, error) {
	return store.OpenSQLite(ctx, s.cfg.DataPath)
}

// load opens the store and reads the saved wheel, or the starter wheel.
func (s *session) load(ctx context.Context) (*store.SQLite, *core.Snapshot, error) {
	db, err := s.open(ctx)
	if err != nil {
		return nil, nil, err
	}
	snap, err := store.LoadOrDefault(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to load wheel: %w", err)
	}
	return db, snap, nil
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	s := &session{}

	root := &cobra.Command{
		Use:                "wheelctl",
		Short:              "Inspect, score and render a wheel of life.",
		Long:               `wheelctl works on the same data file as the lifewheel window: it renders the wheel as SVG, explains its geometry, and records scores from the terminal.`,
		Version:            version,
		SilenceErrors:      true,
		SilenceUsage:       true,
		DisableSuggestions: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return s.setup(cmd)
		},
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "Config file (default is ./.lifewheel.yaml or $HOME/.lifewheel.yaml)")
	pf.Int("ring-count", core.DefaultRingCount, "Score levels per sector")
	pf.Float64("gap", geom.DefaultGap, "Angular gap between sectors in degrees")
	pf.Int("size", config.DefaultSize, "Canvas edge in pixels")
	pf.String("gestures", "all", "Enabled gestures: all, basic or a comma list")
	pf.String("data", store.DefaultPath(), "Path to the SQLite data file")
	pf.String("long-press", interact.DefaultLongPressDelay.String(), "Long-press delay")
	pf.Float64("pan-threshold", interact.DefaultPanThreshold, "Pixels of movement that turn a press into a pan")
	pf.Float64("fill-base", config.DefaultFillBase, "Opacity of the outermost filled ring")
	pf.String("color", "yes", "Enable colored output (yes/no)")

	root.AddCommand(
		newRenderCmd(s),
		newLayoutCmd(s),
		newHitCmd(s),
		newStatsCmd(s),
		newScoreCmd(s),
		newSectorCmd(s),
		newImportCmd(s),
		newExportCmd(s),
		newVersionCmd(),
	)
	return root
}

// setup merges defaults, config file, env and flags, then validates.
func (s *session) setup(cmd *cobra.Command) error {
	configFile, _ := cmd.Flags().GetString("config")
	s.v = config.New(configFile)
	if err := s.v.BindPFlags(cmd.Root().PersistentFlags()); err != nil {
		return fmt.Errorf("failed to bind flags: %w", err)
	}
	cfg, err := config.Load(s.v)
	if err != nil {
		return err
	}
	s.cfg = cfg
	color.NoColor = color.NoColor || !parseYes(s.v.GetString("color"))
	return nil
}

func parseYes(v string) bool {
	switch v {
	case "no", "false", "0", "off":
		return false
	}
	return true
}

// Execute runs the root command against os.Args.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		LogFatal("wheelctl", err)
	}
}

// outFile opens path for writing; "" and "-" select w.
func outFile(path string, w io.Writer) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return w, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
