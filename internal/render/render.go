// Package render prints runs, banner details and reports as text.
package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"golang.org/x/text/currency"
	"golang.org/x/text/message"

	"github.com/xtding233/wishsim/internal/gacha"
	"github.com/xtding233/wishsim/internal/items"
	"github.com/xtding233/wishsim/internal/pricing"
	"github.com/xtding233/wishsim/internal/session"
	"github.com/xtding233/wishsim/internal/token"
	"github.com/xtding233/wishsim/internal/version"
)

// ColorMode is the -color setting.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// UseColor decides whether output to w gets ANSI escapes.
func UseColor(mode ColorMode, w io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Renderer writes localized text.
type Renderer struct {
	w     io.Writer
	p     *message.Printer
	names *items.Catalog
	color bool
}

func New(w io.Writer, p *message.Printer, names *items.Catalog, color bool) *Renderer {
	return &Renderer{w: w, p: p, names: names, color: color}
}

func (r *Renderer) line(key string, args ...any) {
	fmt.Fprintln(r.w, r.p.Sprintf(key, args...))
}

func tierColor(t gacha.Tier) int {
	switch t {
	case gacha.Five:
		return 33
	case gacha.Four:
		return 35
	case gacha.Three:
		return 34
	}
	return 39
}

// bold marks rate-up drops; on banners without rate-up every 4 and 5-star is bold.
func bold(t gacha.Tier, k gacha.BannerKind, rateUp bool) bool {
	if t <= gacha.Three {
		return false
	}
	if !k.HasRateUp() {
		return true
	}
	return rateUp
}

// Item formats one item as "Name (id N)", colored by tier.
func (r *Renderer) Item(id items.ID, t gacha.Tier, strong bool) string {
	name, ok := r.names.Lookup(id)
	if !ok {
		return fmt.Sprintf("id %s", r.paint(fmt.Sprint(int(id)), t, strong))
	}
	return fmt.Sprintf("%s (id %d)", r.paint(name, t, strong), int(id))
}

func (r *Renderer) paint(s string, t gacha.Tier, strong bool) string {
	if !r.color {
		return s
	}
	weight := "22"
	if strong {
		weight = "1"
	}
	return fmt.Sprintf("\x1b[%d;%sm%s\x1b[39;0m", tierColor(t), weight, s)
}

func (r *Renderer) bannerName(k gacha.BannerKind) string {
	return r.p.Sprintf("banner." + k.Key())
}

// Header announces a run on stderr-style output.
func (r *Renderer) Header(tg session.Target, pulls int, pool *version.Release) {
	var b strings.Builder
	b.WriteString(r.p.Sprintf("run.header", pulls, r.bannerName(tg.Kind)))
	b.WriteString(r.origin(tg, pool))
	fmt.Fprintln(r.w, b.String())
	fmt.Fprintln(r.w)
}

func (r *Renderer) origin(tg session.Target, pool *version.Release) string {
	var s string
	if tg.Kind.HasRateUp() {
		v := tg.Index.Version
		s += r.p.Sprintf("run.from_version", v.Release().String(), v.Phase)
	}
	if pool != nil && tg.Kind != gacha.Novice {
		s += r.p.Sprintf("run.pool_version", pool.String())
	}
	return s
}

// Fallback warns that Character Event Wish-2 was replaced.
func (r *Renderer) Fallback(tg session.Target) {
	v := tg.Index.Version
	r.line("run.fallback", v.Release().String(), v.Phase)
}

// Pull prints one wish.
func (r *Renderer) Pull(p session.Pull, k gacha.BannerKind) {
	kind := "kind.weapon"
	if p.Item.IsCharacter() {
		kind = "kind.character"
	}
	r.line("pull.line", p.N, fmt.Sprintf("%d★", int(p.Tier)), r.p.Sprintf(kind), r.Item(p.Item, p.Tier, bold(p.Tier, k, p.IsRateUp())))
}

func (r *Renderer) yesNo(v bool) string {
	if v {
		return r.p.Sprintf("common.yes")
	}
	return r.p.Sprintf("common.no")
}

// Summary prints the counters that matter under settings s.
func (r *Renderer) Summary(sum session.Summary, k gacha.BannerKind, s gacha.Settings) {
	st := sum.State
	fmt.Fprintln(r.w)
	r.line("summary.title")
	r.line("summary.counts", sum.FiveStars, sum.RateUpFive, sum.FourStars)
	if s.Pity4 {
		r.line("summary.pity4", st.Pity4)
	}
	if s.Pity5 {
		r.line("summary.pity5", st.Pity5)
	}
	if s.Guarantee == gacha.GuaranteeOn && k.HasRateUp() {
		r.line("summary.guarantee4", r.yesNo(st.Guarantee4))
		r.line("summary.guarantee5", r.yesNo(st.Guarantee5))
	}
	if sum.FateThreshold > 0 && st.Path != 0 {
		r.line("summary.fate_points", st.FatePoints, sum.FateThreshold)
	}
	if s.Smooth4 == gacha.SmoothOn && k != gacha.Novice {
		r.line("summary.stable4c", st.Smooth4Char)
		r.line("summary.stable4w", st.Smooth4Weapon)
	}
	if s.Smooth5 == gacha.SmoothOn && k != gacha.Novice && (!k.HasRateUp() || k == gacha.Chronicled && st.Path == 0) {
		r.line("summary.stable5c", st.Smooth5Char)
		r.line("summary.stable5w", st.Smooth5Weapon)
	}
}

// Saved confirms a snapshot write.
func (r *Renderer) Saved(path string) {
	r.line("summary.saved", path)
}

// Details lists what the banner can drop.
func (r *Renderer) Details(tg session.Target, pool *gacha.Pool, poolVersion *version.Release) {
	r.line("details.title", r.bannerName(tg.Kind), r.origin(tg, poolVersion))
	fmt.Fprintln(r.w)

	k := tg.Kind
	paths := gacha.FateThreshold(k, tg.Index.Version) > 0
	switch k {
	case gacha.CharacterEvent1, gacha.CharacterEvent2:
		r.list("details.rate_up5_char", pool.RateUp5, gacha.Five, true, false)
		r.list("details.rate_up4_char", pool.RateUp4, gacha.Four, true, false)
	case gacha.WeaponEvent:
		r.list("details.rate_up5_weapon", pool.RateUp5, gacha.Five, true, paths)
		r.list("details.rate_up4_weapon", pool.RateUp4, gacha.Four, true, false)
	case gacha.Chronicled:
		r.list("details.path_items", pool.Paths, gacha.Five, false, paths)
	}

	r.list("details.pool5_char", pool.Character5, gacha.Five, bold(gacha.Five, k, false), false)
	r.list("details.pool5_weapon", pool.Weapon5, gacha.Five, bold(gacha.Five, k, false), false)
	r.list("details.pool4_char", pool.Character4, gacha.Four, bold(gacha.Four, k, false), false)
	r.list("details.pool4_weapon", pool.Weapon4, gacha.Four, bold(gacha.Four, k, false), false)
	r.list("details.pool3", pool.Three, gacha.Three, false, false)
}

func (r *Renderer) list(title string, ids []items.ID, t gacha.Tier, strong, numbered bool) {
	if len(ids) == 0 {
		return
	}
	r.line(title)
	for i, id := range ids {
		if numbered {
			fmt.Fprintf(r.w, "\t%d: %s\n", i+1, r.Item(id, t, strong))
		} else {
			fmt.Fprintf(r.w, "\t%s\n", r.Item(id, t, strong))
		}
	}
	if numbered {
		r.line("details.path_hint")
	}
	fmt.Fprintln(r.w)
}

// Cost prints what the run consumed and, when given, how to top up.
func (r *Renderer) Cost(b token.Bill, plan *pricing.Plan, cat pricing.Catalog) {
	fate := r.p.Sprintf("fate." + b.Token.Key)
	fmt.Fprintln(r.w)
	r.line("cost.fates", b.Fates, fate, b.FromStock, b.Converted, b.Primogems)
	if b.Missing == 0 {
		return
	}
	r.line("cost.short", b.Missing, fate, b.Shortfall)
	if plan == nil || len(plan.Purchases) == 0 {
		return
	}
	r.line("cost.plan")
	for _, p := range plan.Purchases {
		fmt.Fprint(r.w, "\t")
		r.line("cost.plan_line", p.Qty, p.Name, r.money(p.Subtotal, plan.Currency))
	}
	r.line("cost.plan_total", r.money(plan.TotalCents, plan.Currency), plan.TotalTokens, cat.TokenName)
}

// Budget prints how far a budget goes.
func (r *Renderer) Budget(budgetCents int, plan pricing.Plan, cat pricing.Catalog, t token.Token) {
	wishes := t.DrawsForTokens(plan.TotalTokens / token.PrimogemsPerFate)
	r.line("cost.budget", r.money(budgetCents, cat.Currency), plan.TotalTokens, cat.TokenName, wishes)
}

func (r *Renderer) money(cents int, iso string) string {
	unit, err := currency.ParseISO(iso)
	if err != nil {
		return fmt.Sprintf("%d.%02d %s", cents/100, cents%100, iso)
	}
	return r.p.Sprint(currency.Symbol(unit.Amount(float64(cents) / 100)))
}

// Stats prints a Monte Carlo report.
func (r *Renderer) Stats(k gacha.BannerKind, p gacha.SimParams, st gacha.Stats) {
	var goal string
	if p.Goal == gacha.GoalFixedBudget {
		goal = r.p.Sprintf("sim.goal."+string(p.Goal), p.Budget)
	} else {
		goal = r.p.Sprintf("sim.goal." + string(p.Goal))
	}
	r.line("sim.header", p.Trials, r.bannerName(k), goal)
	r.line("sim.stats", st.Mean, st.StdDev, st.P50, st.P90, st.P99)
}
