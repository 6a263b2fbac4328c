package cli

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/xtding233/wishsim/internal/gacha"
	"github.com/xtding233/wishsim/internal/game"
	"github.com/xtding233/wishsim/internal/i18n"
	"github.com/xtding233/wishsim/internal/items"
	"github.com/xtding233/wishsim/internal/pricing"
	"github.com/xtding233/wishsim/internal/render"
	"github.com/xtding233/wishsim/internal/rewards"
	"github.com/xtding233/wishsim/internal/session"
	"github.com/xtding233/wishsim/internal/token"
)

// Run executes the configured command. Wishes and reports go to out;
// the run header, warnings and logs go to errOut.
func Run(ctx context.Context, cfg Config, out, errOut io.Writer) error {
	log, err := newLogger(cfg.LogLevel, errOut, render.ColorMode(cfg.Color))
	if err != nil {
		return err
	}
	tables, err := rewards.Default()
	if err != nil {
		return fmt.Errorf("load reward tables: %w", err)
	}
	names, err := items.Default()
	if err != nil {
		return fmt.Errorf("load item names: %w", err)
	}
	bundle, err := i18n.Default()
	if err != nil {
		return fmt.Errorf("load locales: %w", err)
	}

	_, params, err := game.NewLoader(cfg.ProfileDir).Resolve(cfg.Profile, cfg.Overrides)
	if err != nil {
		return err
	}

	mode := render.ColorMode(cfg.Color)
	p := bundle.Printer(cfg.Locale)
	cmd := &command{
		cfg:    cfg,
		params: params,
		tables: tables,
		log:    log.With().Str("command", cfg.Command).Logger(),
		out:    render.New(out, p, names, render.UseColor(mode, out)),
		errOut: render.New(errOut, p, names, render.UseColor(mode, errOut)),
	}
	cmd.log.Info().Str("banner", params.Banner.Key()).Int("pulls", params.Pulls).Msg("run started")

	switch cfg.Command {
	case CmdPull, "":
		err = cmd.pull(ctx)
	case CmdDetails:
		err = cmd.details()
	case CmdSimulate:
		err = cmd.simulate(ctx)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownCommand, cfg.Command)
	}
	if err != nil {
		cmd.log.Error().Err(err).Msg("run failed")
		return err
	}
	cmd.log.Info().Msg("run finished")
	return nil
}

func newLogger(level string, w io.Writer, mode render.ColorMode) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("log level: %w", err)
	}
	cw := zerolog.ConsoleWriter{Out: w, NoColor: !render.UseColor(mode, w)}
	return zerolog.New(cw).Level(lvl).With().Timestamp().Logger(), nil
}

type command struct {
	cfg    Config
	params game.RunParams
	tables *rewards.Tables
	log    zerolog.Logger
	out    *render.Renderer
	errOut *render.Renderer
}

func (c *command) rng() gacha.RandomSource {
	if c.cfg.Seed == 0 {
		return nil
	}
	return gacha.NewSeededRNG(c.cfg.Seed)
}

func (c *command) open() (*session.Session, error) {
	o := session.Options{RNG: c.rng(), Logger: &c.log}
	if c.cfg.StateIn != "" {
		snap, err := session.LoadSnapshot(c.cfg.StateIn)
		if err != nil {
			return nil, err
		}
		o.Resume = snap
	}
	return session.Open(c.tables, c.params, o)
}

func (c *command) pull(ctx context.Context) error {
	s, err := c.open()
	if err != nil {
		return err
	}
	tg := s.Target()
	c.errOut.Header(tg, c.params.Pulls, c.params.PoolVersion)
	if tg.Fallback {
		c.errOut.Fallback(tg)
	}

	err = s.Run(ctx, c.params.Pulls, func(p session.Pull) error {
		c.out.Pull(p, tg.Kind)
		return nil
	})
	if err != nil {
		return err
	}

	sum := s.Summary()
	c.out.Summary(sum, tg.Kind, c.params.Settings)
	if c.cfg.StateOut != "" {
		if err := session.SaveSnapshot(c.cfg.StateOut, sum); err != nil {
			return err
		}
		c.errOut.Saved(c.cfg.StateOut)
	}
	if c.cfg.Cost || c.params.Primogems > 0 || c.params.Fates > 0 || c.params.BudgetCents > 0 {
		c.cost(tg.Kind, sum.Wishes)
	}
	return nil
}

func (c *command) cost(k gacha.BannerKind, wishes int) {
	cat := pricing.DefaultCatalog()
	var first pricing.FirstTimeState
	if c.cfg.FirstTime {
		first = pricing.AllFirstTime(cat)
	}
	tok := token.ForBanner(k)
	bill := tok.Charge(wishes, c.params.Fates, c.params.Primogems)
	var plan *pricing.Plan
	if bill.Shortfall > 0 {
		pl := pricing.MinCostAtLeastTokens(cat, bill.Shortfall, first)
		plan = &pl
	}
	c.out.Cost(bill, plan, cat)
	if c.params.BudgetCents > 0 {
		c.out.Budget(c.params.BudgetCents, pricing.MaxTokensUnderBudget(cat, c.params.BudgetCents, first), cat, tok)
	}
}

func (c *command) details() error {
	tg, err := session.Locate(c.tables, c.params.Banner, c.params.Version, c.params.PoolVersion)
	if err != nil {
		return err
	}
	if tg.Fallback {
		c.errOut.Fallback(tg)
	}
	pool, err := gacha.PoolFor(c.tables, tg.Kind, tg.Index)
	if err != nil {
		return err
	}
	c.out.Details(tg, pool, c.params.PoolVersion)
	return nil
}

func (c *command) simulate(ctx context.Context) error {
	s, err := c.open()
	if err != nil {
		return err
	}
	sp := gacha.SimParams{
		Start:   s.State(),
		Goal:    gacha.TrialGoal(c.cfg.Goal),
		Trials:  c.cfg.Trials,
		Budget:  c.params.Pulls,
		Seed:    c.cfg.Seed,
		Workers: c.cfg.Workers,
	}
	if sp.Seed == 0 {
		id := s.ID()
		sp.Seed = binary.BigEndian.Uint64(id[:8])
	}
	c.log.Debug().Str("goal", c.cfg.Goal).Int("trials", sp.Trials).Uint64("seed", sp.Seed).Msg("simulating")
	st, err := gacha.RunMonteCarlo(ctx, s.Engine(), sp)
	if err != nil {
		return err
	}
	c.out.Stats(s.Target().Kind, sp, st)
	return nil
}
