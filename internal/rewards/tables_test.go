package rewards

import (
	"errors"
	"testing"

	"github.com/xtding233/wishsim/internal/version"
)

func TestTableLengthMatchesResolver(t *testing.T) {
	tb, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	if tb.Banners() != version.MaxBanner()+1 {
		t.Fatalf("banners=%d, resolver reaches row %d", tb.Banners(), version.MaxBanner())
	}
	if tb.Pools() != version.MaxPool()+1 {
		t.Fatalf("pools=%d, resolver reaches row %d", tb.Pools(), version.MaxPool())
	}
	if _, err := tb.Banner(version.MaxBanner()); err != nil {
		t.Fatal(err)
	}
	if _, err := tb.Banner(version.MaxBanner() + 1); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("want ErrUnavailable past the end, got %v", err)
	}
	if _, err := tb.Standard(-1); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("want ErrUnavailable for -1, got %v", err)
	}
}

func TestChronicledRoundTrip(t *testing.T) {
	tb, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	idx, err := version.Resolve(version.Version{Major: 4, Minor: 4, Phase: 1}, nil, false)
	if err != nil {
		t.Fatal(err)
	}
	a, err := tb.Chronicled(idx.Banner)
	if err != nil {
		t.Fatal(err)
	}
	b, err := tb.Chronicled(idx.Banner)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Fatalf("chronicled lookup returned different pools")
	}
	if len(a.Character5) != 6 || len(a.Weapon5) != 11 {
		t.Fatalf("4.4 chronicled: %d characters, %d weapons", len(a.Character5), len(a.Weapon5))
	}
	if _, err := tb.Chronicled(idx.Banner + 1); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("4.4.2 has no chronicled pool, got %v", err)
	}
}

func TestStandardPoolSlices(t *testing.T) {
	tb, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	novice, err := tb.Standard(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(novice.Character5) != 5 || len(novice.Character4) != 10 || len(novice.Character4All) != 13 {
		t.Fatalf("novice pool sizes: %d %d %d", len(novice.Character5), len(novice.Character4), len(novice.Character4All))
	}
	if novice.Character4All[3] != novice.Character4[0] {
		t.Fatalf("standard-only prefix misaligned")
	}
	latest, err := tb.Standard(tb.Pools() - 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(latest.Character5) != 7 || len(latest.Weapon5) != 10 || len(latest.Weapon4) != 18 || len(latest.Three) != 13 {
		t.Fatalf("latest pool sizes off: %+v", latest)
	}
	// pools are capped so appending cannot bleed into later entries
	_ = append(novice.Character5, 1)
	again, _ := tb.Standard(1)
	if again.Character5[0] == 1 || len(tb.std.Character5) != 7 {
		t.Fatalf("pool slice aliased the table")
	}
}

func TestLoadRejectsMisplacedRow(t *testing.T) {
	doc := []byte(`
banners:
  - version: "1.0.2"
    character5: [1029]
    character4: [1025, 1034, 1043]
    weapon5: [14502, 12502]
    weapon4: [13401, 11403, 12403, 14403, 15403]
standard:
  character5: [1003]
  character5_sizes: [1]
  standard_only: 0
  character4: [1006]
  character4_sizes: [1]
  weapon5: [11501]
  weapon4: [11401]
  three: [11301]
`)
	if _, err := Load(doc); err == nil {
		t.Fatalf("1.0.2 at row 0 must be rejected")
	}
}
