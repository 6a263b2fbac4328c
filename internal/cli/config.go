// Package cli wires configuration, profiles and the wish engine into the
// wishsim command.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/xtding233/wishsim/internal/gacha"
	"github.com/xtding233/wishsim/internal/game"
)

// Commands understood by Run.
const (
	CmdPull     = "pull"
	CmdDetails  = "details"
	CmdSimulate = "simulate"
)

// ErrUnknownCommand is returned for a subcommand Run does not know.
var ErrUnknownCommand = errors.New("unknown command")

// Config holds the command configuration.
type Config struct {
	Locale     string `env:"WISHSIM_LOCALE"`
	LogLevel   string `env:"WISHSIM_LOG_LEVEL" envDefault:"warn"`
	ProfileDir string `env:"WISHSIM_PROFILE_DIR"`
	Color      string `env:"WISHSIM_COLOR" envDefault:"auto"`
	Seed       uint64 `env:"WISHSIM_SEED"`

	Command   string
	Profile   string
	Overrides game.Overrides
	StateIn   string
	StateOut  string
	Cost      bool
	FirstTime bool

	Trials  int
	Goal    string
	Workers int
}

// ParseConfig parses env then args. The first argument may name a
// subcommand; pull is assumed otherwise.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Locale == "" {
		cfg.Locale = os.Getenv("LANG")
	}

	cfg.Command = CmdPull
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		cfg.Command, args = args[0], args[1:]
	}
	switch cfg.Command {
	case CmdPull, CmdDetails, CmdSimulate:
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrUnknownCommand, cfg.Command)
	}

	var (
		banner, ver, poolVer                      string
		pulls, pity4, pity5                       int
		smooth4c, smooth4w, smooth5c, smooth5w    int
		fatePoints, path, novice, fateThreshold   int
		lost4, lost5, noPity4, noPity5            bool
		noSmooth4, noSmooth5, noGuarantee, upOnly bool
		guarantee, smooth4, smooth5, radiance     string
		primogems, fates, budget                  int
		details                                   bool
	)
	strVar := func(p *string, value, usage string, names ...string) {
		for _, n := range names {
			fs.StringVar(p, n, value, usage)
		}
	}
	intVar := func(p *int, usage string, names ...string) {
		for _, n := range names {
			fs.IntVar(p, n, 0, usage)
		}
	}
	boolVar := func(p *bool, usage string, names ...string) {
		for _, n := range names {
			fs.BoolVar(p, n, false, usage)
		}
	}

	strVar(&banner, "", "banner: "+strings.Join(bannerKeys(), ", "), "b", "banner")
	strVar(&ver, "", "game version of the banner, e.g. 4.4.1", "B", "version")
	strVar(&poolVer, "", "version of the standard pool, e.g. 3.0", "V", "pool-version")
	intVar(&pulls, fmt.Sprintf("number of wishes (default %d)", game.DefaultPulls), "p", "pulls")
	intVar(&pity4, "wishes since the last 4★", "4", "pity4")
	intVar(&pity5, "wishes since the last 5★", "5", "pity5")
	intVar(&smooth4c, "wishes since the last 4★ character", "smooth4c")
	intVar(&smooth4w, "wishes since the last 4★ weapon", "smooth4w")
	intVar(&smooth5c, "wishes since the last 5★ character", "smooth5c")
	intVar(&smooth5w, "wishes since the last 5★ weapon", "smooth5w")
	boolVar(&lost4, "the last 4★ was not rate-up", "l", "lost4")
	boolVar(&lost5, "the last 5★ was not rate-up", "L", "lost5")
	intVar(&fatePoints, "fate points toward the charted path", "f", "fate-points")
	intVar(&path, "epitomized or chronicled path choice, from 1", "e", "path")
	intVar(&novice, "beginners' wishes already made", "c", "novice")
	intVar(&fateThreshold, "fate points needed to claim the path", "fate-threshold")
	boolVar(&noPity4, "disable 4★ pity", "n", "no-pity4")
	boolVar(&noPity5, "disable 5★ pity", "N", "no-pity5")
	boolVar(&noSmooth4, "4★ character or weapon is a fair coin", "s", "no-smooth4")
	boolVar(&noSmooth5, "5★ character or weapon is a fair coin", "S", "no-smooth5")
	boolVar(&noGuarantee, "never guarantee rate-up after a loss", "g", "no-guarantee")
	boolVar(&upOnly, "every 4★ and 5★ is rate-up", "r", "rate-up-only")
	strVar(&guarantee, "", "guarantee mode: on, off, always", "guarantee")
	strVar(&smooth4, "", "4★ smoothing: on, off, uniform, characters, weapons", "smooth4")
	strVar(&smooth5, "", "5★ smoothing: on, off, uniform, characters, weapons", "smooth5")
	strVar(&radiance, "", "capturing radiance: auto, on, off", "radiance")
	intVar(&primogems, "primogems owned", "primogems")
	intVar(&fates, "fates owned", "fates")
	intVar(&budget, "top-up budget in cents", "budget")
	boolVar(&details, "list the banner instead of pulling", "d", "details")

	fs.StringVar(&cfg.Profile, "profile", "", "run profile name")
	fs.StringVar(&cfg.ProfileDir, "profile-dir", cfg.ProfileDir, "directory holding default.yaml and profiles")
	fs.StringVar(&cfg.StateIn, "state-in", "", "resume counters from a snapshot file")
	fs.StringVar(&cfg.StateOut, "state-out", "", "save final counters to a snapshot file")
	fs.BoolVar(&cfg.Cost, "cost", false, "report the fates and top-up the run needs")
	fs.BoolVar(&cfg.FirstTime, "first-time", false, "first-purchase bonuses are still available")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "output language")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	fs.StringVar(&cfg.Color, "color", cfg.Color, "auto, always or never")
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "random seed, 0 for a secure source")
	fs.IntVar(&cfg.Trials, "trials", 10000, "simulate: number of runs")
	fs.StringVar(&cfg.Goal, "goal", string(gacha.GoalFirstHit), "simulate: first_hit, first_up or fixed_budget")
	fs.IntVar(&cfg.Workers, "workers", 0, "simulate: parallel workers, 0 for all CPUs")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if fs.NArg() > 0 {
		return Config{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	given := func(names ...string) bool {
		for _, n := range names {
			if set[n] {
				return true
			}
		}
		return false
	}

	o := &cfg.Overrides
	if given("b", "banner") {
		o.Banner = &banner
	}
	if given("B", "version") {
		o.Version = &ver
	}
	if given("V", "pool-version") {
		o.PoolVersion = &poolVer
	}
	if given("p", "pulls") {
		o.Pulls = &pulls
	}
	if given("4", "pity4") {
		o.Pity4 = &pity4
	}
	if given("5", "pity5") {
		o.Pity5 = &pity5
	}
	if given("smooth4c") {
		o.Smooth4Char = &smooth4c
	}
	if given("smooth4w") {
		o.Smooth4Weapon = &smooth4w
	}
	if given("smooth5c") {
		o.Smooth5Char = &smooth5c
	}
	if given("smooth5w") {
		o.Smooth5Weapon = &smooth5w
	}
	if given("l", "lost4") {
		o.Guarantee4 = &lost4
	}
	if given("L", "lost5") {
		o.Guarantee5 = &lost5
	}
	if given("f", "fate-points") {
		o.FatePoints = &fatePoints
	}
	if given("e", "path") {
		o.Path = &path
	}
	if given("c", "novice") {
		o.NoviceWishes = &novice
	}
	if given("fate-threshold") {
		o.FateThreshold = &fateThreshold
	}
	if given("n", "no-pity4") {
		on := !noPity4
		o.Pity4Enabled = &on
	}
	if given("N", "no-pity5") {
		on := !noPity5
		o.Pity5Enabled = &on
	}

	switch {
	case given("guarantee"):
		o.Guarantee = &guarantee
	case upOnly:
		o.Guarantee = ptr(string(gacha.GuaranteeAlways))
	case noGuarantee:
		o.Guarantee = ptr(string(gacha.GuaranteeOff))
	}
	switch {
	case given("smooth4"):
		o.Smooth4 = &smooth4
	case noSmooth4:
		o.Smooth4 = ptr(string(gacha.SmoothOff))
	}
	switch {
	case given("smooth5"):
		o.Smooth5 = &smooth5
	case noSmooth5:
		o.Smooth5 = ptr(string(gacha.SmoothOff))
	}
	if given("radiance") {
		o.Radiance = &radiance
	}

	if given("primogems") {
		o.Primogems = &primogems
	}
	if given("fates") {
		o.Fates = &fates
	}
	if given("budget") {
		o.BudgetCents = &budget
	}
	if details {
		cfg.Command = CmdDetails
	}
	return cfg, nil
}

func bannerKeys() []string {
	var keys []string
	for _, k := range gacha.Kinds() {
		keys = append(keys, k.Key())
	}
	return keys
}

func ptr[T any](v T) *T { return &v }
