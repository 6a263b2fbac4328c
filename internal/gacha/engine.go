package gacha

import (
	"fmt"

	"github.com/xtding233/wishsim/internal/items"
	"github.com/xtding233/wishsim/internal/rewards"
	"github.com/xtding233/wishsim/internal/version"
)

// RateUp tells how a drop relates to the banner's featured items.
type RateUp int

const (
	RateUpNone     RateUp = iota
	RateUpWon             // featured item, from the coin flip, a guarantee or a path
	RateUpRadiance        // featured item recovered by Capturing Radiance
)

// Drop is the result of one pull.
type Drop struct {
	Item   items.ID
	Tier   Tier
	RateUp RateUp
}

func (d Drop) IsRateUp() bool { return d.RateUp != RateUpNone }

// Engine pulls on one banner at one version. It keeps no counters; every
// pull works on the PityState handed in by the caller.
type Engine struct {
	kind      BannerKind
	version   version.Version
	pool      *Pool
	settings  Settings
	rules     bannerRules
	threshold int
	radiance  bool
	rng       RandomSource
}

// NewEngine resolves the pool of banner k at idx and prepares an engine.
// rng nil => crypto source.
func NewEngine(t *rewards.Tables, k BannerKind, idx version.Index, s Settings, rng RandomSource) (*Engine, error) {
	pool, err := PoolFor(t, k, idx)
	if err != nil {
		return nil, err
	}
	return New(k, idx.Version, pool, s, rng)
}

// New builds an engine over an explicit pool.
func New(k BannerKind, v version.Version, pool *Pool, s Settings, rng RandomSource) (*Engine, error) {
	rules := rulesFor(k)
	if rules == nil {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBanner, int(k))
	}
	if pool == nil {
		return nil, fmt.Errorf("%w: nil pool", ErrInvalidArguments)
	}
	if err := pool.check(k); err != nil {
		return nil, err
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = DefaultRNG()
	}
	e := &Engine{
		kind:      k,
		version:   v,
		pool:      pool,
		settings:  s,
		rules:     rules,
		threshold: FateThreshold(k, v),
		rng:       rng,
	}
	if e.threshold > 0 && s.FateThreshold >= 0 {
		e.threshold = s.FateThreshold
	}
	switch s.Radiance {
	case ToggleOn:
		e.radiance = k.isCharacterEvent()
	case ToggleAuto:
		e.radiance = RadianceDefault(k, v)
	}
	return e, nil
}

func (p *Pool) check(k BannerKind) error {
	missing := func(what string) error {
		return fmt.Errorf("%w: %s has no %s", ErrPoolUnavailable, k, what)
	}
	if len(p.Three) == 0 {
		return missing("3-star items")
	}
	if len(p.Character5)+len(p.Weapon5) == 0 || len(p.Character4)+len(p.Weapon4) == 0 {
		return missing("standard items")
	}
	switch k {
	case CharacterEvent1, CharacterEvent2:
		if len(p.RateUp5) == 0 || len(p.RateUp4) == 0 || len(p.Character5) == 0 {
			return missing("rate-up items")
		}
	case WeaponEvent:
		if len(p.RateUp5) == 0 || len(p.RateUp4) == 0 || len(p.Weapon5) == 0 {
			return missing("rate-up items")
		}
	case StandardWeapon:
		if len(p.Weapon5) == 0 {
			return missing("5-star weapons")
		}
	case StandardCharacterOnly, Novice:
		if len(p.Character5) == 0 || (k == Novice && len(p.Character4) == 0) {
			return missing("characters")
		}
	}
	return nil
}

// WithRNG returns a copy of e drawing from rng.
func (e *Engine) WithRNG(rng RandomSource) *Engine {
	cp := *e
	cp.rng = rng
	return &cp
}

func (e *Engine) Kind() BannerKind         { return e.kind }
func (e *Engine) Version() version.Version { return e.version }
func (e *Engine) Pool() *Pool              { return e.pool }

// FateThreshold is the fate points that force the path item; 0 if the banner
// has no path.
func (e *Engine) FateThreshold() int { return e.threshold }

func (e *Engine) Radiance() bool { return e.radiance }

// PathItem maps a 1-based path choice to its item.
func (e *Engine) PathItem(choice int) (items.ID, error) {
	if e.threshold == 0 {
		return 0, fmt.Errorf("%w: %s at %s has no path", ErrInvalidBanner, e.kind, e.version)
	}
	if choice < 1 || choice > len(e.pool.Paths) {
		return 0, fmt.Errorf("%w: path %d (1-%d)", ErrInvalidArguments, choice, len(e.pool.Paths))
	}
	return e.pool.Paths[choice-1], nil
}

// Validate reports whether st can be pulled with on this engine.
func (e *Engine) Validate(st *PityState) error {
	if e == nil || e.rules == nil {
		return fmt.Errorf("%w: engine not configured", ErrInvalidBanner)
	}
	if st == nil {
		return fmt.Errorf("%w: nil pity state", ErrInvalidArguments)
	}
	if err := st.Check(e.kind.Family()); err != nil {
		return err
	}
	if e.threshold == 0 {
		if st.Path != 0 {
			return fmt.Errorf("%w: %s at %s has no path", ErrInvalidBanner, e.kind, e.version)
		}
		if st.FatePoints != 0 {
			return fmt.Errorf("%w: %s at %s has no fate points", ErrInvalidBanner, e.kind, e.version)
		}
		return nil
	}
	if st.Path != 0 && !contains(e.pool.Paths, st.Path) {
		return fmt.Errorf("%w: path %d is not on %s at %s", ErrInvalidArguments, st.Path, e.kind, e.version)
	}
	return nil
}

// Pull performs one wish and updates st. On error st is left untouched.
func (e *Engine) Pull(st *PityState) (Drop, error) {
	if err := e.Validate(st); err != nil {
		return Drop{}, err
	}
	fam := e.kind.Family()
	st.advance(fam, &e.settings, e.kind.HasRateUp())

	r := e.rng.Float64()
	switch {
	case r < Weight(Five, st.Pity5, fam, e.settings.Pity5):
		st.Pity5 = 0
		item, up := e.rules.resolveFiveStar(e, st)
		return Drop{Item: item, Tier: Five, RateUp: up}, nil
	case r < Weight(Four, st.Pity4, fam, e.settings.Pity4):
		st.Pity4 = 0
		item, up := e.rules.resolveFourStar(e, st)
		return Drop{Item: item, Tier: Four, RateUp: up}, nil
	}
	return Drop{Item: pick(e.pool.Three, e.rng), Tier: Three}, nil
}
