package pricing

import "math"

// maxDPTokens bounds the token axis of the min-cost table. Larger targets are
// first filled with the densest pack.
const maxDPTokens = 200000

// eff is a purchasable variant of a pack: the first-time x2 or a repeat buy.
type eff struct {
	pack  int // index into Catalog.Packs
	id    string
	name  string
	tok   int
	price int
}

// variants splits the catalog into first-time variants, each purchasable once,
// and repeat variants, purchasable any number of times.
func variants(cat Catalog, first FirstTimeState) (once, repeat []eff) {
	for i, p := range cat.Packs {
		if p.FirstTimeX2 && first[p.ID] {
			once = append(once, eff{pack: i, id: p.ID + "#x2", name: p.Name + " (x2)", tok: p.Tokens * 2, price: p.PriceCents})
		}
		if p.Tokens+p.BonusTokens > 0 && p.PriceCents > 0 {
			repeat = append(repeat, eff{pack: i, id: p.ID, name: p.Name, tok: p.Tokens + p.BonusTokens, price: p.PriceCents})
		}
	}
	return once, repeat
}

// MinCostAtLeastTokens finds the minimum-cost combination to obtain at least targetTokens.
// Each first-time x2 is used at most once; repeat purchases are unbounded.
func MinCostAtLeastTokens(cat Catalog, targetTokens int, first FirstTimeState) Plan {
	if targetTokens <= 0 || len(cat.Packs) == 0 {
		return Plan{Currency: cat.Currency}
	}
	once, repeat := variants(cat, first)
	if len(repeat) == 0 && len(once) == 0 {
		return Plan{Currency: cat.Currency}
	}

	// prefill with the densest repeat pack so the table stays bounded
	counts := make(map[string]int)
	var prefill []eff
	if len(repeat) > 0 && targetTokens > maxDPTokens {
		best := repeat[0]
		for _, e := range repeat[1:] {
			if float64(e.tok)/float64(e.price) > float64(best.tok)/float64(best.price) {
				best = e
			}
		}
		n := (targetTokens - maxDPTokens) / best.tok
		for range n {
			prefill = append(prefill, best)
		}
		targetTokens -= n * best.tok
	}

	// g[t] = min cost to obtain at least t tokens from repeat variants
	const Inf = math.MaxInt / 2
	g := make([]int, targetTokens+1)
	choice := make([]int, targetTokens+1)
	for t := 1; t <= targetTokens; t++ {
		g[t], choice[t] = Inf, -1
		for i, e := range repeat {
			if c := e.price + g[max(0, t-e.tok)]; c < g[t] {
				g[t], choice[t] = c, i
			}
		}
	}

	bestMask, bestCost := -1, Inf
	for mask := 0; mask < 1<<len(once); mask++ {
		cost, tok := subset(once, mask)
		rem := max(0, targetTokens-tok)
		if g[rem] >= Inf {
			continue
		}
		if cost+g[rem] < bestCost {
			bestMask, bestCost = mask, cost+g[rem]
		}
	}
	if bestMask < 0 {
		return Plan{Currency: cat.Currency}
	}

	var picked []eff
	picked = append(picked, prefill...)
	_, tok := subset(once, bestMask)
	for i, e := range once {
		if bestMask&(1<<i) != 0 {
			picked = append(picked, e)
		}
	}
	for t := max(0, targetTokens-tok); t > 0 && choice[t] >= 0; {
		e := repeat[choice[t]]
		picked = append(picked, e)
		t = max(0, t-e.tok)
	}
	for _, e := range upgrade(picked, once, bestMask) {
		counts[e.id]++
	}
	return buildPlan(cat, once, repeat, counts)
}

// MaxTokensUnderBudget computes the maximum tokens purchasable with budgetCents.
// Tax is assumed to apply on the subtotal.
func MaxTokensUnderBudget(cat Catalog, budgetCents int, first FirstTimeState) Plan {
	if budgetCents <= 0 || len(cat.Packs) == 0 {
		return Plan{Currency: cat.Currency}
	}
	once, repeat := variants(cat, first)

	effBudget := budgetCents
	if cat.TaxRate > 0 {
		effBudget = int(math.Floor(float64(budgetCents) / (1 + cat.TaxRate)))
	}

	// h[c] = max tokens from repeat variants with cost <= c
	h := make([]int, effBudget+1)
	choice := make([]int, effBudget+1)
	for c := 0; c <= effBudget; c++ {
		choice[c] = -1
		if c > 0 {
			h[c] = h[c-1]
		}
		for i, e := range repeat {
			if e.price <= c && h[c-e.price]+e.tok > h[c] {
				h[c], choice[c] = h[c-e.price]+e.tok, i
			}
		}
	}

	bestMask, bestTok := -1, -1
	for mask := 0; mask < 1<<len(once); mask++ {
		cost, tok := subset(once, mask)
		if cost > effBudget {
			continue
		}
		if tok+h[effBudget-cost] > bestTok {
			bestMask, bestTok = mask, tok+h[effBudget-cost]
		}
	}

	var picked []eff
	cost, _ := subset(once, bestMask)
	for i, e := range once {
		if bestMask&(1<<i) != 0 {
			picked = append(picked, e)
		}
	}
	for c := effBudget - cost; c > 0; {
		if choice[c] < 0 {
			c--
			continue
		}
		e := repeat[choice[c]]
		picked = append(picked, e)
		c -= e.price
	}
	counts := make(map[string]int)
	for _, e := range upgrade(picked, once, bestMask) {
		counts[e.id]++
	}
	return buildPlan(cat, once, repeat, counts)
}

func subset(once []eff, mask int) (cost, tok int) {
	for i, e := range once {
		if mask&(1<<i) != 0 {
			cost += e.price
			tok += e.tok
		}
	}
	return cost, tok
}

// upgrade turns a repeat purchase into the unused first-time x2 of the same
// pack: same price, at least as many tokens, and the shop never sells a
// repeat before the first purchase.
func upgrade(picked, once []eff, mask int) []eff {
	for i, o := range once {
		if mask&(1<<i) != 0 {
			continue
		}
		for j, p := range picked {
			if p.pack == o.pack {
				picked[j] = o
				mask |= 1 << i
				break
			}
		}
	}
	return picked
}

// buildPlan lists purchases in catalog order, first-time variants first.
func buildPlan(cat Catalog, once, repeat []eff, counts map[string]int) Plan {
	plan := Plan{Currency: cat.Currency}
	for _, group := range [][]eff{once, repeat} {
		for _, e := range group {
			qty := counts[e.id]
			if qty == 0 {
				continue
			}
			sub := e.price * qty
			plan.Purchases = append(plan.Purchases, Purchase{
				PackID:     e.id,
				Name:       e.name,
				Qty:        qty,
				UnitPrice:  e.price,
				UnitTokens: e.tok,
				Subtotal:   sub,
			})
			plan.SubCents += sub
			plan.TotalTokens += e.tok * qty
		}
	}
	plan.TaxCents, plan.TotalCents = applyTax(plan.SubCents, cat.TaxRate)
	return plan
}
