// resolve.go
package game

import (
	"errors"
	"fmt"

	"github.com/xtding233/wishsim/internal/gacha"
	"github.com/xtding233/wishsim/internal/version"
)

// DefaultPulls is used when neither a profile nor the command line sets pulls.
const DefaultPulls = 10

// MaxNoviceWishes caps the number of earlier novice wishes; past it the
// scripted pull has already happened.
const MaxNoviceWishes = 8

// ErrNoBanner is returned when no layer names a banner.
var ErrNoBanner = errors.New("no banner selected")

// Overrides carries command line values. They win over every profile layer.
type Overrides struct {
	Banner      *string
	Version     *string
	PoolVersion *string
	Pulls       *int

	Pity4         *int
	Pity5         *int
	Smooth4Char   *int
	Smooth4Weapon *int
	Smooth5Char   *int
	Smooth5Weapon *int
	Guarantee4    *bool
	Guarantee5    *bool
	FatePoints    *int
	Path          *int
	NoviceWishes  *int

	Pity4Enabled  *bool
	Pity5Enabled  *bool
	Guarantee     *string
	Smooth4       *string
	Smooth5       *string
	Radiance      *string
	FateThreshold *int

	Primogems   *int
	Fates       *int
	BudgetCents *int
}

// Resolver turns a profile name plus overrides into run parameters.
type Resolver interface {
	// Returns the merged RawProfile and the normalized RunParams.
	Resolve(profile string, o Overrides) (RawProfile, RunParams, error)
}

var _ Resolver = (*Loader)(nil)

// Resolve merges default -> profile -> overrides, validates the result and
// normalizes it.
func (l *Loader) Resolve(profile string, o Overrides) (RawProfile, RunParams, error) {
	base, err := l.LoadMerged(profile)
	if err != nil {
		return RawProfile{}, RunParams{}, err
	}
	merged := mergeRaw(base, o.raw())
	if err := ValidateRaw(merged); err != nil {
		return merged, RunParams{}, err
	}
	p, err := Normalize(merged)
	return merged, p, err
}

// raw lifts the overrides into a profile layer so mergeRaw can apply them.
func (o Overrides) raw() RawProfile {
	r := RawProfile{Pulls: o.Pulls}
	if o.Banner != nil {
		r.Banner = *o.Banner
	}
	if o.Version != nil {
		r.Version = *o.Version
	}
	if o.PoolVersion != nil {
		r.PoolVersion = *o.PoolVersion
	}
	st := StateConfig{
		Pity4:         o.Pity4,
		Pity5:         o.Pity5,
		Smooth4Char:   o.Smooth4Char,
		Smooth4Weapon: o.Smooth4Weapon,
		Smooth5Char:   o.Smooth5Char,
		Smooth5Weapon: o.Smooth5Weapon,
		Guarantee4:    o.Guarantee4,
		Guarantee5:    o.Guarantee5,
		FatePoints:    o.FatePoints,
		Path:          o.Path,
		NoviceWishes:  o.NoviceWishes,
	}
	if st != (StateConfig{}) {
		r.State = &st
	}
	m := MechanicsCfg{
		Pity4:         o.Pity4Enabled,
		Pity5:         o.Pity5Enabled,
		FateThreshold: o.FateThreshold,
	}
	if o.Guarantee != nil {
		m.Guarantee = *o.Guarantee
	}
	if o.Smooth4 != nil {
		m.Smooth4 = *o.Smooth4
	}
	if o.Smooth5 != nil {
		m.Smooth5 = *o.Smooth5
	}
	if o.Radiance != nil {
		m.Radiance = *o.Radiance
	}
	if m != (MechanicsCfg{}) {
		r.Mechanics = &m
	}
	c := CostConfig{Primogems: o.Primogems, Fates: o.Fates, BudgetCents: o.BudgetCents}
	if c != (CostConfig{}) {
		r.Cost = &c
	}
	return r
}

// Normalize converts a validated profile into RunParams, filling defaults.
func Normalize(cfg RawProfile) (RunParams, error) {
	if cfg.Banner == "" {
		return RunParams{}, ErrNoBanner
	}
	kind, err := gacha.ParseBanner(cfg.Banner)
	if err != nil {
		return RunParams{}, err
	}
	p := RunParams{
		Banner:   kind,
		Version:  version.Latest(),
		Pulls:    DefaultPulls,
		Settings: gacha.DefaultSettings(),
	}
	if cfg.Version != "" {
		if p.Version, err = version.Parse(cfg.Version); err != nil {
			return RunParams{}, err
		}
	}
	if cfg.PoolVersion != "" {
		r, err := version.ParseRelease(cfg.PoolVersion)
		if err != nil {
			return RunParams{}, err
		}
		p.PoolVersion = &r
	}
	if cfg.Pulls != nil {
		p.Pulls = *cfg.Pulls
	}

	if s := cfg.State; s != nil {
		setInt(&p.State.Pity4, s.Pity4)
		setInt(&p.State.Pity5, s.Pity5)
		setInt(&p.State.Smooth4Char, s.Smooth4Char)
		setInt(&p.State.Smooth4Weapon, s.Smooth4Weapon)
		setInt(&p.State.Smooth5Char, s.Smooth5Char)
		setInt(&p.State.Smooth5Weapon, s.Smooth5Weapon)
		setInt(&p.State.FatePoints, s.FatePoints)
		setInt(&p.PathChoice, s.Path)
		setInt(&p.NoviceWishes, s.NoviceWishes)
		if s.Guarantee4 != nil {
			p.State.Guarantee4 = *s.Guarantee4
		}
		if s.Guarantee5 != nil {
			p.State.Guarantee5 = *s.Guarantee5
		}
	}
	p.NoviceWishes = min(p.NoviceWishes, MaxNoviceWishes)

	if m := cfg.Mechanics; m != nil {
		if m.Pity4 != nil {
			p.Settings.Pity4 = *m.Pity4
		}
		if m.Pity5 != nil {
			p.Settings.Pity5 = *m.Pity5
		}
		if m.Guarantee != "" {
			p.Settings.Guarantee = gacha.GuaranteeMode(m.Guarantee)
		}
		if m.Smooth4 != "" {
			p.Settings.Smooth4 = gacha.SmoothMode(m.Smooth4)
		}
		if m.Smooth5 != "" {
			p.Settings.Smooth5 = gacha.SmoothMode(m.Smooth5)
		}
		if m.Radiance != "" {
			p.Settings.Radiance = gacha.Toggle(m.Radiance)
		}
		setInt(&p.Settings.FateThreshold, m.FateThreshold)
	}

	if c := cfg.Cost; c != nil {
		setInt(&p.Primogems, c.Primogems)
		setInt(&p.Fates, c.Fates)
		setInt(&p.BudgetCents, c.BudgetCents)
	}

	if p.PathChoice > 0 && !kind.HasPath() {
		return RunParams{}, fmt.Errorf("%w: %s has no path to chart", gacha.ErrInvalidBanner, kind)
	}
	return p, nil
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
