package core

import (
	"fmt"

	"github.com/google/uuid"
)

// Sector is one named, colored slice of the wheel.
type Sector struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"` // CSS hex or hsl()
}

// NewSector creates a sector with a fresh id.
func NewSector(name, color string) Sector {
	return Sector{
		ID:    uuid.NewString(),
		Name:  name,
		Color: color,
	}
}

// PaletteColor returns a well spread hsl() color for the i-th sector.
func PaletteColor(i int) string {
	hue := (i * 137) % 360 // golden angle
	return fmt.Sprintf("hsl(%d, 65%%, 55%%)", hue)
}

// DefaultSectors returns the starter wheel.
func DefaultSectors() Sectors {
	names := []string{
		"Health", "Career", "Finance", "Relationships",
		"Family", "Fun", "Growth", "Environment",
	}
	out := make(Sectors, 0, len(names))
	for i, name := range names {
		out = append(out, NewSector(name, PaletteColor(i)))
	}
	return out
}

// Sectors is the ordered sector sequence. Order determines angular position.
type Sectors []Sector

// Index returns the position of id, or -1.
func (s Sectors) Index(id string) int {
	for i := range s {
		if s[i].ID == id {
			return i
		}
	}
	return -1
}

// Find returns the sector with id.
func (s Sectors) Find(id string) (Sector, bool) {
	if i := s.Index(id); i >= 0 {
		return s[i], true
	}
	return Sector{}, false
}

// Clone returns an independent copy.
func (s Sectors) Clone() Sectors {
	if s == nil {
		return nil
	}
	out := make(Sectors, len(s))
	copy(out, s)
	return out
}

// Add appends a sector.
func (s *Sectors) Add(sec Sector) error {
	if s.Index(sec.ID) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateID, sec.ID)
	}
	*s = append(*s, sec)
	return nil
}

// Insert places sec at index i, clamped to the valid range.
func (s *Sectors) Insert(i int, sec Sector) error {
	if s.Index(sec.ID) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateID, sec.ID)
	}
	if i < 0 {
		i = 0
	}
	if i > len(*s) {
		i = len(*s)
	}
	*s = append(*s, Sector{})
	copy((*s)[i+1:], (*s)[i:])
	(*s)[i] = sec
	return nil
}

// Rename changes a sector's name.
func (s Sectors) Rename(id, name string) error {
	i := s.Index(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrSectorNotFound, id)
	}
	s[i].Name = name
	return nil
}

// Recolor changes a sector's color. The color must parse.
func (s Sectors) Recolor(id, color string) error {
	i := s.Index(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrSectorNotFound, id)
	}
	if _, err := ParseColor(color); err != nil {
		return err
	}
	s[i].Color = color
	return nil
}

// Move shifts a sector by delta positions, clamped at both ends.
// It returns the new index.
func (s Sectors) Move(id string, delta int) (int, error) {
	i := s.Index(id)
	if i < 0 {
		return -1, fmt.Errorf("%w: %s", ErrSectorNotFound, id)
	}
	return s.MoveTo(id, i+delta)
}

// MoveTo places a sector at index j, clamped to the valid range.
func (s Sectors) MoveTo(id string, j int) (int, error) {
	i := s.Index(id)
	if i < 0 {
		return -1, fmt.Errorf("%w: %s", ErrSectorNotFound, id)
	}
	if j < 0 {
		j = 0
	}
	if j > len(s)-1 {
		j = len(s) - 1
	}
	sec := s[i]
	if j > i {
		copy(s[i:j], s[i+1:j+1])
	} else {
		copy(s[j+1:i+1], s[j:i])
	}
	s[j] = sec
	return j, nil
}

// Delete removes a sector and returns it with its former index.
func (s *Sectors) Delete(id string) (Sector, int, error) {
	i := s.Index(id)
	if i < 0 {
		return Sector{}, -1, fmt.Errorf("%w: %s", ErrSectorNotFound, id)
	}
	sec := (*s)[i]
	*s = append((*s)[:i], (*s)[i+1:]...)
	return sec, i, nil
}
