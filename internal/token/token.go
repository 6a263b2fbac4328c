package token

import "github.com/xtding233/wishsim/internal/gacha"

// PrimogemsPerFate is the shop price of one fate.
const PrimogemsPerFate = 160

// Token defines how many fates are required per wish.
type Token struct {
	Key      string // i18n key, e.g. "intertwined"
	Name     string // e.g. "Intertwined Fate"
	PerDraw  int    // fates per single wish
	PerNDraw int    // optional; fates per N-wish, if 0 -> N * PerDraw
	N        int    // optional; if 0, no multi-wish discount
}

var (
	Intertwined = Token{Key: "intertwined", Name: "Intertwined Fate", PerDraw: 1}
	Acquaint    = Token{Key: "acquaint", Name: "Acquaint Fate", PerDraw: 1}

	// NoviceAcquaint is the beginners' banner: ten wishes for eight fates.
	NoviceAcquaint = Token{Key: "acquaint", Name: "Acquaint Fate", PerDraw: 1, PerNDraw: 8, N: 10}
)

// ForBanner returns the fate spent on banner kind k.
func ForBanner(k gacha.BannerKind) Token {
	switch k {
	case gacha.Novice:
		return NoviceAcquaint
	case gacha.StandardCharacter, gacha.StandardWeapon, gacha.StandardCharacterOnly:
		return Acquaint
	}
	return Intertwined
}

// TokensForDraws returns how many fates are required for n wishes.
func (t Token) TokensForDraws(n int) int {
	if n <= 0 {
		return 0
	}
	if t.PerNDraw > 0 && t.N > 1 && n >= t.N {
		ns := n / t.N
		rem := n % t.N
		return ns*t.PerNDraw + rem*t.PerDraw
	}
	return n * t.PerDraw
}

// DrawsForTokens is the inverse of TokensForDraws: how many wishes n fates buy.
func (t Token) DrawsForTokens(n int) int {
	if n <= 0 || t.PerDraw <= 0 {
		return 0
	}
	if t.PerNDraw > 0 && t.N > 1 {
		return n/t.PerNDraw*t.N + n%t.PerNDraw/t.PerDraw
	}
	return n / t.PerDraw
}

// Bill is what a run of wishes costs given what the player already holds.
type Bill struct {
	Token     Token
	Wishes    int
	Fates     int // fates the wishes consume
	FromStock int // covered by owned fates
	Converted int // fates bought with owned primogems
	Missing   int // fates still to be bought
	Primogems int // primogems spent on Converted
	Shortfall int // primogems needed for Missing, net of leftovers
}

// Charge prices wishes against owned fates first, then owned primogems.
func (t Token) Charge(wishes, fates, primogems int) Bill {
	b := Bill{Token: t, Wishes: wishes, Fates: t.TokensForDraws(wishes)}
	b.FromStock = min(b.Fates, max(fates, 0))
	need := b.Fates - b.FromStock
	primogems = max(primogems, 0)
	b.Converted = min(need, primogems/PrimogemsPerFate)
	b.Primogems = b.Converted * PrimogemsPerFate
	b.Missing = need - b.Converted
	if b.Missing > 0 {
		b.Shortfall = b.Missing*PrimogemsPerFate - (primogems - b.Primogems)
	}
	return b
}
