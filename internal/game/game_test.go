package game

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xtding233/wishsim/internal/gacha"
	"github.com/xtding233/wishsim/internal/version"
)

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func ptr[T any](v T) *T { return &v }

func TestLoadMergedLayers(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "default.yaml", `
banner: char1
pulls: 20
state:
  pity5: 10
  guarantee5: true
mechanics:
  smooth4: off
`)
	writeFile(t, dir, "main.yaml", `
banner: weapon
state:
  pity5: 30
  path: 2
`)
	l := NewLoader(dir)
	cfg, err := l.LoadMerged("main")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Banner != "weapon" || *cfg.Pulls != 20 {
		t.Fatalf("top level: %+v", cfg)
	}
	if *cfg.State.Pity5 != 30 || !*cfg.State.Guarantee5 || *cfg.State.Path != 2 {
		t.Fatalf("state: %+v", cfg.State)
	}
	if cfg.Mechanics == nil || cfg.Mechanics.Smooth4 != "off" {
		t.Fatalf("mechanics lost: %+v", cfg.Mechanics)
	}

	// cached until invalidated
	writeFile(t, dir, "main.yaml", "banner: std\n")
	if again, _ := l.LoadMerged("main"); again.Banner != "weapon" {
		t.Fatalf("cache miss: %q", again.Banner)
	}
	l.Invalidate()
	if again, _ := l.LoadMerged("main"); again.Banner != "std" {
		t.Fatalf("after invalidate: %q", again.Banner)
	}
}

func TestLoadMergedMissing(t *testing.T) {
	dir := t.TempDir()
	if cfg, err := NewLoader(dir).LoadMerged(""); err != nil || cfg.Banner != "" {
		t.Fatalf("missing default should be empty: %+v %v", cfg, err)
	}
	if _, err := NewLoader(dir).LoadMerged("nope"); err == nil {
		t.Fatal("missing named profile accepted")
	}
	if _, err := NewLoader("").LoadMerged("nope"); err == nil {
		t.Fatal("profile without directory accepted")
	}
	writeFile(t, dir, "default.yaml", "pulls: [1\n")
	if _, err := NewLoader(dir).LoadMerged(""); err == nil {
		t.Fatal("broken yaml accepted")
	}
}

func TestValidateRawAggregates(t *testing.T) {
	cfg := RawProfile{
		Banner:  "bogus",
		Version: "1.3.5",
		Pulls:   ptr(0),
		State:   &StateConfig{Pity4: ptr(-1), FatePoints: ptr(-2)},
		Mechanics: &MechanicsCfg{
			Guarantee: "sometimes",
			Radiance:  "maybe",
		},
		Cost: &CostConfig{Fates: ptr(-1)},
	}
	err := ValidateRaw(cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	for _, want := range []string{
		"banner:",
		"version:",
		"pulls must be",
		"state.fate_points must be >= 0",
		"state.pity4 must be >= 0",
		"mechanics.guarantee",
		"mechanics.radiance",
		"cost.fates",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("missing %q in %q", want, msg)
		}
	}
	if strings.Index(msg, "state.fate_points") > strings.Index(msg, "state.pity4") {
		t.Errorf("state errors not sorted: %q", msg)
	}
	if err := ValidateRaw(RawProfile{Banner: "std", Version: "4.4", Pulls: ptr(90)}); err != nil {
		t.Fatalf("valid profile rejected: %v", err)
	}
}

func TestResolveDefaults(t *testing.T) {
	_, p, err := NewLoader("").Resolve("", Overrides{Banner: ptr("std")})
	if err != nil {
		t.Fatal(err)
	}
	if p.Banner != gacha.StandardCharacter || p.Pulls != DefaultPulls {
		t.Fatalf("defaults: %+v", p)
	}
	if p.Version != version.Latest() || p.PoolVersion != nil {
		t.Fatalf("version defaults: %v %v", p.Version, p.PoolVersion)
	}
	if p.Settings != gacha.DefaultSettings() {
		t.Fatalf("settings: %+v", p.Settings)
	}
}

func TestResolveOverridesWin(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "default.yaml", `
banner: char1
version: "3.1.2"
pulls: 50
state:
  pity5: 40
  guarantee5: true
  novice_wishes: 12
mechanics:
  guarantee: off
  radiance: on
cost:
  primogems: 3200
`)
	raw, p, err := NewLoader(dir).Resolve("", Overrides{
		Banner:       ptr("weapon"),
		PoolVersion:  ptr("2.0"),
		Pity5:        ptr(5),
		Path:         ptr(1),
		Pity4Enabled: ptr(false),
		Guarantee:    ptr("always"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if raw.Banner != "weapon" || *raw.Pulls != 50 {
		t.Fatalf("merged: %+v", raw)
	}
	if p.Banner != gacha.WeaponEvent || p.Version != (version.Version{Major: 3, Minor: 1, Phase: 2}) {
		t.Fatalf("banner/version: %v %v", p.Banner, p.Version)
	}
	if p.PoolVersion == nil || *p.PoolVersion != (version.Release{Major: 2, Minor: 0}) {
		t.Fatalf("pool version: %v", p.PoolVersion)
	}
	if p.State.Pity5 != 5 || !p.State.Guarantee5 || p.PathChoice != 1 {
		t.Fatalf("state: %+v path %d", p.State, p.PathChoice)
	}
	if p.NoviceWishes != MaxNoviceWishes {
		t.Fatalf("novice wishes not capped: %d", p.NoviceWishes)
	}
	s := p.Settings
	if s.Pity4 || !s.Pity5 || s.Guarantee != gacha.GuaranteeAlways || s.Radiance != gacha.ToggleOn {
		t.Fatalf("settings: %+v", s)
	}
	if p.Primogems != 3200 {
		t.Fatalf("cost: %d", p.Primogems)
	}
}

func TestResolveErrors(t *testing.T) {
	l := NewLoader("")
	if _, _, err := l.Resolve("", Overrides{}); !errors.Is(err, ErrNoBanner) {
		t.Fatalf("no banner: %v", err)
	}
	if _, _, err := l.Resolve("", Overrides{Banner: ptr("std"), Path: ptr(1)}); !errors.Is(err, gacha.ErrInvalidBanner) {
		t.Fatalf("path on standard: %v", err)
	}
	if _, _, err := l.Resolve("", Overrides{Banner: ptr("std"), Version: ptr("9.9")}); err == nil {
		t.Fatal("unknown version accepted")
	}
}
