package gacha

import (
	"fmt"

	"github.com/xtding233/wishsim/internal/items"
)

// Tier is the star rarity of a drop.
type Tier int

const (
	Three Tier = 3
	Four  Tier = 4
	Five  Tier = 5
)

func (t Tier) String() string { return fmt.Sprintf("%d*", int(t)) }

// PityState holds every counter of one run. It is owned by a single session
// and passed to each pull; nothing in this package keeps a copy.
type PityState struct {
	Pity4 int `yaml:"pity4"`
	Pity5 int `yaml:"pity5"`

	// stable pity: pulls since the last character / weapon of the tier
	Smooth4Char   int `yaml:"smooth4_char"`
	Smooth4Weapon int `yaml:"smooth4_weapon"`
	Smooth5Char   int `yaml:"smooth5_char"`
	Smooth5Weapon int `yaml:"smooth5_weapon"`

	Guarantee4 bool `yaml:"guarantee4"`
	Guarantee5 bool `yaml:"guarantee5"`

	FatePoints int      `yaml:"fate_points"`
	Path       items.ID `yaml:"path,omitempty"` // epitomized / chronicled path, 0 if unset
}

// Check reports counters outside their valid range for banners of family f.
func (s *PityState) Check(f Family) error {
	c5, _ := RarityCurve(Five, f)
	c4, _ := RarityCurve(Four, f)
	switch {
	case s.Pity5 < 0 || s.Pity5 > c5.Ceiling:
		return fmt.Errorf("%w: 5-star pity %d (0-%d)", ErrInvalidArguments, s.Pity5, c5.Ceiling)
	case s.Pity4 < 0 || s.Pity4 > c4.Ceiling:
		return fmt.Errorf("%w: 4-star pity %d (0-%d)", ErrInvalidArguments, s.Pity4, c4.Ceiling)
	case s.Smooth5Char < 0 || s.Smooth5Weapon < 0 || s.Smooth5Char > smooth5.Ceiling || s.Smooth5Weapon > smooth5.Ceiling:
		return fmt.Errorf("%w: 5-star stable pity %d/%d (0-%d)", ErrInvalidArguments, s.Smooth5Char, s.Smooth5Weapon, smooth5.Ceiling)
	case s.Smooth4Char < 0 || s.Smooth4Weapon < 0 || s.Smooth4Char > smooth4.Ceiling || s.Smooth4Weapon > smooth4.Ceiling:
		return fmt.Errorf("%w: 4-star stable pity %d/%d (0-%d)", ErrInvalidArguments, s.Smooth4Char, s.Smooth4Weapon, smooth4.Ceiling)
	case s.FatePoints < 0:
		return fmt.Errorf("%w: fate points %d", ErrInvalidArguments, s.FatePoints)
	}
	return nil
}

// advance counts one pull on every enabled counter. Counters stop at their
// hard pity ceiling.
func (s *PityState) advance(f Family, set *Settings, rateUp bool) {
	c5, _ := RarityCurve(Five, f)
	c4, _ := RarityCurve(Four, f)
	if set.Pity4 {
		s.Pity4 = bump(s.Pity4, c4.Ceiling)
	}
	if set.Pity5 {
		s.Pity5 = bump(s.Pity5, c5.Ceiling)
	}
	if set.Smooth4 == SmoothOn {
		s.Smooth4Char = bump(s.Smooth4Char, smooth4.Ceiling)
		s.Smooth4Weapon = bump(s.Smooth4Weapon, smooth4.Ceiling)
	}
	if set.Smooth5 == SmoothOn {
		s.Smooth5Char = bump(s.Smooth5Char, smooth5.Ceiling)
		s.Smooth5Weapon = bump(s.Smooth5Weapon, smooth5.Ceiling)
	}
	if !rateUp {
		return
	}
	switch set.Guarantee {
	case GuaranteeOff:
		s.Guarantee4, s.Guarantee5 = false, false
	case GuaranteeAlways:
		s.Guarantee4, s.Guarantee5 = true, true
	}
}

func bump(n, ceiling int) int {
	if n >= ceiling {
		return ceiling
	}
	return n + 1
}
