// types.go
package game

import (
	"github.com/xtding233/wishsim/internal/gacha"
	"github.com/xtding233/wishsim/internal/version"
)

// RawProfile is a run profile as loaded from YAML. Pointers distinguish
// "unset" from zero so profiles can be layered.
type RawProfile struct {
	Banner      string        `yaml:"banner,omitempty"`
	Version     string        `yaml:"version,omitempty"`
	PoolVersion string        `yaml:"pool_version,omitempty"`
	Pulls       *int          `yaml:"pulls,omitempty"`
	State       *StateConfig  `yaml:"state,omitempty"`
	Mechanics   *MechanicsCfg `yaml:"mechanics,omitempty"`
	Cost        *CostConfig   `yaml:"cost,omitempty"`
	Notes       string        `yaml:"notes,omitempty"`
}

// StateConfig seeds the counters of a run.
type StateConfig struct {
	Pity4         *int  `yaml:"pity4,omitempty"`
	Pity5         *int  `yaml:"pity5,omitempty"`
	Smooth4Char   *int  `yaml:"smooth4_char,omitempty"`
	Smooth4Weapon *int  `yaml:"smooth4_weapon,omitempty"`
	Smooth5Char   *int  `yaml:"smooth5_char,omitempty"`
	Smooth5Weapon *int  `yaml:"smooth5_weapon,omitempty"`
	Guarantee4    *bool `yaml:"guarantee4,omitempty"`
	Guarantee5    *bool `yaml:"guarantee5,omitempty"`
	FatePoints    *int  `yaml:"fate_points,omitempty"`
	Path          *int  `yaml:"path,omitempty"` // 1-based choice among the banner's path items
	NoviceWishes  *int  `yaml:"novice_wishes,omitempty"`
}

// MechanicsCfg toggles game mechanics.
type MechanicsCfg struct {
	Pity4         *bool  `yaml:"pity4,omitempty"`
	Pity5         *bool  `yaml:"pity5,omitempty"`
	Guarantee     string `yaml:"guarantee,omitempty"` // on | off | always
	Smooth4       string `yaml:"smooth4,omitempty"`   // on | off | uniform | characters | weapons
	Smooth5       string `yaml:"smooth5,omitempty"`
	Radiance      string `yaml:"radiance,omitempty"` // auto | on | off
	FateThreshold *int   `yaml:"fate_threshold,omitempty"`
}

// CostConfig describes what the player already owns.
type CostConfig struct {
	Primogems   *int `yaml:"primogems,omitempty"`
	Fates       *int `yaml:"fates,omitempty"`
	BudgetCents *int `yaml:"budget_cents,omitempty"`
}

// RunParams is a validated, normalized profile ready for a session.
type RunParams struct {
	Banner       gacha.BannerKind
	Version      version.Version
	PoolVersion  *version.Release
	Pulls        int
	State        gacha.PityState
	PathChoice   int // 0 = none
	NoviceWishes int
	Settings     gacha.Settings
	Primogems    int
	Fates        int
	BudgetCents  int
}
