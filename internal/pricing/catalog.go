package pricing

import "math"

// Pack models a Genesis Crystal top-up in the shop.
type Pack struct {
	ID          string // SKU id, e.g., "6480"
	Name        string // display name, e.g., "6480 Genesis Crystals"
	Tokens      int    // base crystals granted
	BonusTokens int    // extra crystals on repeat purchases
	FirstTimeX2 bool   // first purchase grants Tokens twice instead of the bonus
	PriceCents  int    // price in minor units
}

// Catalog is a regional product catalog and tax info.
type Catalog struct {
	TokenName string // e.g., "Genesis Crystal"
	Currency  string // ISO code, e.g., "USD"
	// TaxRate applies to the subtotal; 0 for tax-inclusive prices.
	TaxRate float64
	Packs   []Pack
}

// DefaultCatalog is the global shop price list.
func DefaultCatalog() Catalog {
	return Catalog{
		TokenName: "Genesis Crystal",
		Currency:  "USD",
		Packs: []Pack{
			{ID: "60", Name: "60 Genesis Crystals", Tokens: 60, FirstTimeX2: true, PriceCents: 99},
			{ID: "300", Name: "300 Genesis Crystals", Tokens: 300, BonusTokens: 30, FirstTimeX2: true, PriceCents: 499},
			{ID: "980", Name: "980 Genesis Crystals", Tokens: 980, BonusTokens: 110, FirstTimeX2: true, PriceCents: 1499},
			{ID: "1980", Name: "1980 Genesis Crystals", Tokens: 1980, BonusTokens: 260, FirstTimeX2: true, PriceCents: 2999},
			{ID: "3280", Name: "3280 Genesis Crystals", Tokens: 3280, BonusTokens: 600, FirstTimeX2: true, PriceCents: 4999},
			{ID: "6480", Name: "6480 Genesis Crystals", Tokens: 6480, BonusTokens: 1600, FirstTimeX2: true, PriceCents: 9999},
		},
	}
}

// FirstTimeState describes per-pack first-time eligibility.
type FirstTimeState map[string]bool // packID -> true if first-time x2 is still available

// AllFirstTime marks every pack of cat as never bought.
func AllFirstTime(cat Catalog) FirstTimeState {
	f := make(FirstTimeState, len(cat.Packs))
	for _, p := range cat.Packs {
		f[p.ID] = p.FirstTimeX2
	}
	return f
}

// Plan summarizes a purchase plan.
type Plan struct {
	Purchases   []Purchase
	SubCents    int // subtotal before tax
	TaxCents    int
	TotalCents  int
	TotalTokens int
	Currency    string
}

// Purchase is one line item in the plan.
type Purchase struct {
	PackID     string
	Name       string
	Qty        int
	UnitPrice  int // cents
	UnitTokens int // tokens received per unit in this plan (x2/bonus applied)
	Subtotal   int // cents
}

// applyTax computes tax and total given a subtotal and a tax rate.
func applyTax(sub int, taxRate float64) (tax int, total int) {
	if taxRate <= 0 {
		return 0, sub
	}
	t := int(math.Round(float64(sub) * taxRate))
	return t, sub + t
}
