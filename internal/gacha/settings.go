package gacha

import (
	"fmt"

	"github.com/xtding233/wishsim/internal/version"
)

// GuaranteeMode controls the 50/50 guarantee flags.
type GuaranteeMode string

const (
	GuaranteeOn     GuaranteeMode = "on"     // set on a lost coin flip, cleared on a win
	GuaranteeOff    GuaranteeMode = "off"    // cleared before every pull
	GuaranteeAlways GuaranteeMode = "always" // set before every pull
)

// SmoothMode controls the stable pity roll between characters and weapons.
type SmoothMode string

const (
	SmoothOn         SmoothMode = "on"
	SmoothOff        SmoothMode = "off"     // fixed 50/50 between the sub-pools
	SmoothUniform    SmoothMode = "uniform" // one uniform draw over both sub-pools
	SmoothCharacters SmoothMode = "characters"
	SmoothWeapons    SmoothMode = "weapons"
)

// Toggle is a tri-state switch whose auto value depends on the game version.
type Toggle string

const (
	ToggleAuto Toggle = "auto"
	ToggleOn   Toggle = "on"
	ToggleOff  Toggle = "off"
)

// Settings are the administrative switches of one run.
type Settings struct {
	Pity4     bool
	Pity5     bool
	Guarantee GuaranteeMode
	Smooth4   SmoothMode
	Smooth5   SmoothMode
	Radiance  Toggle

	// FateThreshold overrides the era's fate point threshold when >= 0.
	FateThreshold int
}

// DefaultSettings mirror the live game.
func DefaultSettings() Settings {
	return Settings{
		Pity4:         true,
		Pity5:         true,
		Guarantee:     GuaranteeOn,
		Smooth4:       SmoothOn,
		Smooth5:       SmoothOn,
		Radiance:      ToggleAuto,
		FateThreshold: -1,
	}
}

func (s Settings) validate() error {
	switch s.Guarantee {
	case GuaranteeOn, GuaranteeOff, GuaranteeAlways:
	default:
		return fmt.Errorf("%w: guarantee mode %q", ErrInvalidArguments, s.Guarantee)
	}
	for _, m := range []SmoothMode{s.Smooth4, s.Smooth5} {
		switch m {
		case SmoothOn, SmoothOff, SmoothUniform, SmoothCharacters, SmoothWeapons:
		default:
			return fmt.Errorf("%w: stable pity mode %q", ErrInvalidArguments, m)
		}
	}
	switch s.Radiance {
	case ToggleAuto, ToggleOn, ToggleOff:
	default:
		return fmt.Errorf("%w: radiance %q", ErrInvalidArguments, s.Radiance)
	}
	return nil
}

// FateThreshold is the number of fate points that forces the path item on
// banner kind k at version v. Zero means the banner has no path mechanic.
func FateThreshold(k BannerKind, v version.Version) int {
	switch k {
	case Chronicled:
		return 1
	case WeaponEvent:
		r := v.Release()
		switch {
		case !r.AtLeast(2, 0):
			return 0
		case !r.AtLeast(5, 0):
			return 2
		default:
			return 1
		}
	}
	return 0
}

// RadianceDefault reports whether Capturing Radiance runs on banner kind k at v.
func RadianceDefault(k BannerKind, v version.Version) bool {
	return k.isCharacterEvent() && v.Release().AtLeast(5, 0)
}
