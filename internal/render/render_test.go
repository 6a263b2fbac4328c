package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/xtding233/wishsim/internal/gacha"
	"github.com/xtding233/wishsim/internal/i18n"
	"github.com/xtding233/wishsim/internal/items"
	"github.com/xtding233/wishsim/internal/pricing"
	"github.com/xtding233/wishsim/internal/rewards"
	"github.com/xtding233/wishsim/internal/session"
	"github.com/xtding233/wishsim/internal/token"
	"github.com/xtding233/wishsim/internal/version"
)

func renderer(t *testing.T, color bool) (*Renderer, *bytes.Buffer) {
	t.Helper()
	b, err := i18n.Default()
	if err != nil {
		t.Fatal(err)
	}
	names, err := items.Default()
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	return New(&buf, b.Printer("en-US"), names, color), &buf
}

func TestPullLine(t *testing.T) {
	r, buf := renderer(t, false)
	r.Pull(session.Pull{N: 3, Drop: gacha.Drop{Item: 1022, Tier: gacha.Five, RateUp: gacha.RateUpWon}}, gacha.CharacterEvent1)
	r.Pull(session.Pull{N: 4, Drop: gacha.Drop{Item: 11301, Tier: gacha.Three}}, gacha.CharacterEvent1)
	r.Pull(session.Pull{N: 5, Drop: gacha.Drop{Item: 19999, Tier: gacha.Three}}, gacha.CharacterEvent1)
	want := "Wish 3: 5★ Character Venti (id 1022)\n" +
		"Wish 4: 3★ Weapon Cool Steel (id 11301)\n" +
		"Wish 5: 3★ Weapon id 19999\n"
	if buf.String() != want {
		t.Fatalf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestColors(t *testing.T) {
	r, _ := renderer(t, true)
	cases := []struct {
		id     items.ID
		tier   gacha.Tier
		strong bool
		want   string
	}{
		{1022, gacha.Five, true, "\x1b[33;1mVenti\x1b[39;0m (id 1022)"},
		{1034, gacha.Four, false, "\x1b[35;22mNoelle\x1b[39;0m (id 1034)"},
		{11301, gacha.Three, false, "\x1b[34;22mCool Steel\x1b[39;0m (id 11301)"},
	}
	for _, c := range cases {
		if got := r.Item(c.id, c.tier, c.strong); got != c.want {
			t.Errorf("Item(%d) = %q, want %q", c.id, got, c.want)
		}
	}
}

func TestBold(t *testing.T) {
	if !bold(gacha.Five, gacha.StandardCharacter, false) || !bold(gacha.Four, gacha.Novice, false) {
		t.Fatal("standard drops are always bold")
	}
	if bold(gacha.Five, gacha.CharacterEvent1, false) || !bold(gacha.Five, gacha.CharacterEvent1, true) {
		t.Fatal("event drops are bold only when rate-up")
	}
	if bold(gacha.Three, gacha.StandardWeapon, true) {
		t.Fatal("3-stars are never bold")
	}
}

func TestUseColor(t *testing.T) {
	var buf bytes.Buffer
	if UseColor(ColorAuto, &buf) {
		t.Fatal("buffer is not a terminal")
	}
	if !UseColor(ColorAlways, &buf) || UseColor(ColorNever, &buf) {
		t.Fatal("explicit modes ignored")
	}
}

func TestSummary(t *testing.T) {
	r, buf := renderer(t, false)
	sum := session.Summary{
		Snapshot:      session.Snapshot{State: gacha.PityState{Pity4: 3, Pity5: 41, Guarantee5: true, FatePoints: 1, Path: 15502}},
		Wishes:        50,
		FiveStars:     1,
		FourStars:     6,
		FateThreshold: 2,
	}
	r.Summary(sum, gacha.WeaponEvent, gacha.DefaultSettings())
	out := buf.String()
	for _, want := range []string{"4★ pity: 3", "5★ pity: 41", "5★ guaranteed: yes", "4★ guaranteed: no", "Fate Points: 1/2", "4★ stable value (characters)"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "5★ stable") {
		t.Errorf("5-star stable pity shown on an event banner:\n%s", out)
	}
}

func TestSummaryChronicledStable(t *testing.T) {
	r, buf := renderer(t, false)
	sum := session.Summary{Snapshot: session.Snapshot{State: gacha.PityState{Smooth5Char: 12, Smooth5Weapon: 40}}}
	r.Summary(sum, gacha.Chronicled, gacha.DefaultSettings())
	if out := buf.String(); !strings.Contains(out, "5★ stable value (characters): 12") || !strings.Contains(out, "5★ stable value (weapons): 40") {
		t.Fatalf("chronicled without a path keeps 5-star stable counters:\n%s", out)
	}

	r, buf = renderer(t, false)
	sum.State.Path = 11509
	sum.FateThreshold = 1
	r.Summary(sum, gacha.Chronicled, gacha.DefaultSettings())
	if strings.Contains(buf.String(), "5★ stable") {
		t.Fatalf("stable counters shown with a path:\n%s", buf.String())
	}
}

func TestDetails(t *testing.T) {
	tb, err := rewards.Default()
	if err != nil {
		t.Fatal(err)
	}
	v, _ := version.Parse("1.0.1")
	tg, err := session.Locate(tb, gacha.WeaponEvent, v, nil)
	if err != nil {
		t.Fatal(err)
	}
	pool, err := gacha.PoolFor(tb, tg.Kind, tg.Index)
	if err != nil {
		t.Fatal(err)
	}
	r, buf := renderer(t, false)
	r.Details(tg, pool, nil)
	out := buf.String()
	for _, want := range []string{
		"Details for the Weapon Event Wish banner from v1.0 phase 1:",
		"Rate-Up 5★ Weapons:",
		"Amos' Bow (id 15502)",
		"3★ Weapon Pool:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Chart a course") {
		t.Errorf("path hint before 2.0:\n%s", out)
	}
}

func TestCost(t *testing.T) {
	r, buf := renderer(t, false)
	cat := pricing.DefaultCatalog()
	bill := token.Intertwined.Charge(10, 2, 0)
	plan := pricing.MinCostAtLeastTokens(cat, bill.Shortfall, nil)
	r.Cost(bill, &plan, cat)
	out := buf.String()
	if !strings.Contains(out, "Fates needed: 10 Intertwined Fate (2 in stock") || !strings.Contains(out, "Still missing: 8 Intertwined Fate") {
		t.Fatalf("cost:\n%s", out)
	}
	if !strings.Contains(out, "Cheapest top-up:") || !strings.Contains(out, "Genesis Crystal") {
		t.Fatalf("plan:\n%s", out)
	}
}
