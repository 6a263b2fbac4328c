package token

import (
	"testing"

	"github.com/xtding233/wishsim/internal/gacha"
)

func TestTokensForDraws(t *testing.T) {
	cases := []struct {
		tok  Token
		n    int
		want int
	}{
		{Intertwined, 0, 0},
		{Intertwined, -3, 0},
		{Intertwined, 1, 1},
		{Intertwined, 90, 90},
		{NoviceAcquaint, 9, 9},
		{NoviceAcquaint, 10, 8},
		{NoviceAcquaint, 20, 16},
		{NoviceAcquaint, 13, 11},
	}
	for _, c := range cases {
		if got := c.tok.TokensForDraws(c.n); got != c.want {
			t.Errorf("%s x%d = %d, want %d", c.tok.Name, c.n, got, c.want)
		}
	}
}

func TestDrawsForTokens(t *testing.T) {
	if got := Intertwined.DrawsForTokens(37); got != 37 {
		t.Fatalf("intertwined: %d", got)
	}
	if got := NoviceAcquaint.DrawsForTokens(16); got != 20 {
		t.Fatalf("novice 16 fates: %d", got)
	}
	if got := NoviceAcquaint.DrawsForTokens(11); got != 13 {
		t.Fatalf("novice 11 fates: %d", got)
	}
	for n := 0; n <= 40; n++ {
		if got := NoviceAcquaint.TokensForDraws(NoviceAcquaint.DrawsForTokens(n)); got > n {
			t.Fatalf("%d fates buy wishes costing %d", n, got)
		}
	}
}

func TestForBanner(t *testing.T) {
	for _, k := range gacha.Kinds() {
		got := ForBanner(k)
		switch k {
		case gacha.Novice:
			if got != NoviceAcquaint {
				t.Errorf("%s: %+v", k, got)
			}
		case gacha.StandardCharacter, gacha.StandardWeapon, gacha.StandardCharacterOnly:
			if got != Acquaint {
				t.Errorf("%s: %+v", k, got)
			}
		default:
			if got != Intertwined {
				t.Errorf("%s: %+v", k, got)
			}
		}
	}
}

func TestCharge(t *testing.T) {
	b := Intertwined.Charge(90, 20, 5000)
	if b.Fates != 90 || b.FromStock != 20 || b.Converted != 31 || b.Primogems != 4960 {
		t.Fatalf("bill: %+v", b)
	}
	// 39 fates short, 40 primogems left over
	if b.Missing != 39 || b.Shortfall != 39*160-40 {
		t.Fatalf("shortfall: %+v", b)
	}

	b = Intertwined.Charge(10, 50, 0)
	if b.FromStock != 10 || b.Missing != 0 || b.Shortfall != 0 {
		t.Fatalf("covered: %+v", b)
	}
}
