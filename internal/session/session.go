// Package session drives one run of wishes on a banner. A session owns its
// counters; two sessions never share a PityState.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/xtding233/wishsim/internal/gacha"
	"github.com/xtding233/wishsim/internal/game"
	"github.com/xtding233/wishsim/internal/items"
	"github.com/xtding233/wishsim/internal/rewards"
	"github.com/xtding233/wishsim/internal/version"
)

// NoelleID is the 4-star character every new player receives on the 8th
// beginners' wish.
const NoelleID items.ID = 1034

// noviceScriptedWish is the 0-based beginners' wish that is scripted.
const noviceScriptedWish = 7

// ErrSnapshotMismatch is returned when a snapshot belongs to another banner.
var ErrSnapshotMismatch = errors.New("snapshot does not match banner")

// Target is a banner resolved against the reward tables.
type Target struct {
	Kind     gacha.BannerKind
	Index    version.Index
	Fallback bool // Character Event Wish-2 was asked for but did not run
}

// Locate resolves banner k at v. A second character banner that did not run
// falls back to the first one.
func Locate(t *rewards.Tables, k gacha.BannerKind, v version.Version, pool *version.Release) (Target, error) {
	idx, err := version.Resolve(v, pool, k == gacha.Novice)
	if err != nil {
		return Target{}, err
	}
	tg := Target{Kind: k, Index: idx}
	if k == gacha.CharacterEvent2 && !gacha.HasSecondCharacter(t, idx) {
		tg.Kind, tg.Fallback = gacha.CharacterEvent1, true
	}
	return tg, nil
}

// Pull is one wish of a session.
type Pull struct {
	N int // 1-based within the session
	gacha.Drop
	Scripted bool // the beginners' fixed 4-star
}

// Session is a run of wishes on one banner.
type Session struct {
	id     uuid.UUID
	target Target
	engine *gacha.Engine
	state  gacha.PityState
	novice int // beginners' wishes made before this session
	pulled int
	log    zerolog.Logger

	fiveStars, fourStars, rateUp5 int
}

// Options tune Open.
type Options struct {
	RNG    gacha.RandomSource // nil => crypto source
	Logger *zerolog.Logger    // nil => disabled
	Resume *Snapshot          // replaces the counters of the params; a path choice still applies
}

// Open prepares a session from normalized run parameters.
func Open(t *rewards.Tables, p game.RunParams, o Options) (*Session, error) {
	tg, err := Locate(t, p.Banner, p.Version, p.PoolVersion)
	if err != nil {
		return nil, err
	}
	s := &Session{
		id:     uuid.New(),
		target: tg,
		state:  p.State,
		novice: min(p.NoviceWishes, game.MaxNoviceWishes),
		log:    zerolog.Nop(),
	}
	if o.Logger != nil {
		s.log = o.Logger.With().Str("session", s.id.String()).Logger()
	}
	if tg.Fallback {
		s.log.Warn().Str("version", p.Version.String()).
			Msg("character event wish-2 did not run, using character event wish")
	}

	s.engine, err = gacha.NewEngine(t, tg.Kind, tg.Index, p.Settings, o.RNG)
	if err != nil {
		return nil, err
	}
	if o.Resume != nil {
		if err := s.resume(o.Resume); err != nil {
			return nil, err
		}
	}
	if p.PathChoice > 0 {
		if s.state.Path, err = s.engine.PathItem(p.PathChoice); err != nil {
			return nil, err
		}
	}
	if err := s.engine.Validate(&s.state); err != nil {
		return nil, err
	}
	s.log.Info().
		Str("banner", tg.Kind.Key()).
		Str("version", tg.Index.Version.String()).
		Int("banner_row", tg.Index.Banner).
		Int("pool_row", tg.Index.Pool).
		Msg("session opened")
	return s, nil
}

func (s *Session) resume(snap *Snapshot) error {
	k, err := gacha.ParseBanner(snap.Banner)
	if err != nil {
		return err
	}
	if pityGroup(k) != pityGroup(s.target.Kind) {
		return fmt.Errorf("%w: snapshot of %s, run on %s", ErrSnapshotMismatch, k, s.target.Kind)
	}
	s.state = snap.State
	if s.target.Kind == gacha.Novice {
		s.novice = min(snap.NoviceWishes, game.MaxNoviceWishes)
	}
	s.log.Debug().Str("from", snap.Session).Msg("counters resumed")
	return nil
}

// pityGroup groups banners whose counters carry over to each other.
func pityGroup(k gacha.BannerKind) gacha.BannerKind {
	if k == gacha.CharacterEvent2 {
		return gacha.CharacterEvent1
	}
	return k
}

func (s *Session) ID() uuid.UUID           { return s.id }
func (s *Session) Target() Target          { return s.target }
func (s *Session) Engine() *gacha.Engine   { return s.engine }
func (s *Session) State() gacha.PityState  { return s.state }
func (s *Session) Pulled() int             { return s.pulled }
func (s *Session) Logger() *zerolog.Logger { return &s.log }

// Pull makes one wish.
func (s *Session) Pull() (Pull, error) {
	var d gacha.Drop
	scripted := s.target.Kind == gacha.Novice && s.novice+s.pulled == noviceScriptedWish
	if scripted {
		d = s.scriptedNovice()
	} else {
		var err error
		if d, err = s.engine.Pull(&s.state); err != nil {
			return Pull{}, err
		}
	}
	s.pulled++
	switch d.Tier {
	case gacha.Five:
		s.fiveStars++
		if d.IsRateUp() {
			s.rateUp5++
		}
	case gacha.Four:
		s.fourStars++
	}
	p := Pull{N: s.pulled, Drop: d, Scripted: scripted}
	s.log.Debug().
		Int("n", p.N).
		Int("item", int(d.Item)).
		Stringer("tier", d.Tier).
		Bool("rate_up", d.IsRateUp()).
		Int("pity4", s.state.Pity4).
		Int("pity5", s.state.Pity5).
		Msg("wish")
	return p, nil
}

// scriptedNovice grants the beginners' fixed 4-star and settles the
// counters as if it had been rolled.
func (s *Session) scriptedNovice() gacha.Drop {
	c5, _ := gacha.RarityCurve(gacha.Five, gacha.FamilyStandard)
	s.state.Guarantee4 = false
	s.state.Pity4 = 0
	s.state.Pity5 = min(s.state.Pity5+1, c5.Ceiling)
	s.state.Smooth4Char = 0
	s.state.Smooth4Weapon = 0
	return gacha.Drop{Item: NoelleID, Tier: gacha.Four}
}

// Run makes n wishes and hands each to fn. It stops at the first error,
// from the engine, from fn, or from ctx.
func (s *Session) Run(ctx context.Context, n int, fn func(Pull) error) error {
	for range n {
		if err := ctx.Err(); err != nil {
			return err
		}
		p, err := s.Pull()
		if err != nil {
			return fmt.Errorf("wish %d: %w", s.pulled+1, err)
		}
		if fn != nil {
			if err := fn(p); err != nil {
				return err
			}
		}
	}
	s.log.Info().Int("wishes", s.pulled).Int("five_stars", s.fiveStars).Msg("session finished")
	return nil
}

// Summary describes where the session stands.
func (s *Session) Summary() Summary {
	sum := Summary{
		Snapshot: Snapshot{
			Session: s.id.String(),
			Banner:  s.target.Kind.Key(),
			Version: s.target.Index.Version.String(),
			State:   s.state,
		},
		Wishes:        s.pulled,
		FiveStars:     s.fiveStars,
		FourStars:     s.fourStars,
		RateUpFive:    s.rateUp5,
		FateThreshold: s.engine.FateThreshold(),
	}
	if s.target.Kind == gacha.Novice {
		sum.NoviceWishes = min(s.novice+s.pulled, game.MaxNoviceWishes)
	}
	return sum
}
