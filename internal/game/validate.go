package game

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/xtding233/wishsim/internal/gacha"
	"github.com/xtding233/wishsim/internal/version"
)

// MaxPulls caps one run.
const MaxPulls = 100000

// ValidateRaw checks semantic constraints of a RawProfile.
func ValidateRaw(cfg RawProfile) error {
	var errs []string

	if cfg.Banner != "" {
		if _, err := gacha.ParseBanner(cfg.Banner); err != nil {
			errs = append(errs, fmt.Sprintf("banner: %v", err))
		}
	}
	if cfg.Version != "" {
		if _, err := version.Parse(cfg.Version); err != nil {
			errs = append(errs, fmt.Sprintf("version: %v", err))
		}
	}
	if cfg.PoolVersion != "" {
		if _, err := version.ParseRelease(cfg.PoolVersion); err != nil {
			errs = append(errs, fmt.Sprintf("pool_version: %v", err))
		}
	}
	if cfg.Pulls != nil && (*cfg.Pulls < 1 || *cfg.Pulls > MaxPulls) {
		errs = append(errs, fmt.Sprintf("pulls must be in [1,%d]", MaxPulls))
	}

	if s := cfg.State; s != nil {
		nonNeg := map[string]*int{
			"state.pity4":          s.Pity4,
			"state.pity5":          s.Pity5,
			"state.smooth4_char":   s.Smooth4Char,
			"state.smooth4_weapon": s.Smooth4Weapon,
			"state.smooth5_char":   s.Smooth5Char,
			"state.smooth5_weapon": s.Smooth5Weapon,
			"state.fate_points":    s.FatePoints,
			"state.path":           s.Path,
			"state.novice_wishes":  s.NoviceWishes,
		}
		for _, name := range slices.Sorted(maps.Keys(nonNeg)) {
			if v := nonNeg[name]; v != nil && *v < 0 {
				errs = append(errs, name+" must be >= 0")
			}
		}
	}

	if m := cfg.Mechanics; m != nil {
		if !oneOf(m.Guarantee, "", "on", "off", "always") {
			errs = append(errs, "mechanics.guarantee must be one of: on, off, always")
		}
		if !oneOf(m.Smooth4, "", "on", "off", "uniform", "characters", "weapons") {
			errs = append(errs, "mechanics.smooth4 must be one of: on, off, uniform, characters, weapons")
		}
		if !oneOf(m.Smooth5, "", "on", "off", "uniform", "characters", "weapons") {
			errs = append(errs, "mechanics.smooth5 must be one of: on, off, uniform, characters, weapons")
		}
		if !oneOf(m.Radiance, "", "auto", "on", "off") {
			errs = append(errs, "mechanics.radiance must be one of: auto, on, off")
		}
		if m.FateThreshold != nil && *m.FateThreshold < 0 {
			errs = append(errs, "mechanics.fate_threshold must be >= 0")
		}
	}

	if c := cfg.Cost; c != nil {
		if c.Primogems != nil && *c.Primogems < 0 {
			errs = append(errs, "cost.primogems must be >= 0")
		}
		if c.Fates != nil && *c.Fates < 0 {
			errs = append(errs, "cost.fates must be >= 0")
		}
		if c.BudgetCents != nil && *c.BudgetCents < 0 {
			errs = append(errs, "cost.budget_cents must be >= 0")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func oneOf(v string, allowed ...string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
