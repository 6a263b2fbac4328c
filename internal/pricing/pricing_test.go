package pricing

import "testing"

func TestMinCostUsesFirstTimeOnce(t *testing.T) {
	cat := DefaultCatalog()
	plan := MinCostAtLeastTokens(cat, 160, AllFirstTime(cat))
	if plan.TotalCents != 198 || plan.TotalTokens != 180 {
		t.Fatalf("plan: %+v", plan)
	}
	if len(plan.Purchases) != 2 || plan.Purchases[0].PackID != "60#x2" || plan.Purchases[0].Qty != 1 {
		t.Fatalf("purchases: %+v", plan.Purchases)
	}
	if plan.Purchases[1].PackID != "60" || plan.Purchases[1].Qty != 1 {
		t.Fatalf("purchases: %+v", plan.Purchases)
	}
}

func TestMinCostWithoutFirstTime(t *testing.T) {
	cat := DefaultCatalog()
	plan := MinCostAtLeastTokens(cat, 160, nil)
	if plan.TotalCents != 297 || len(plan.Purchases) != 1 || plan.Purchases[0].Qty != 3 {
		t.Fatalf("plan: %+v", plan)
	}

	// 90 wishes; two of the largest pack is an upper bound
	plan = MinCostAtLeastTokens(cat, 90*160, nil)
	if plan.TotalTokens < 90*160 || plan.TotalCents > 2*9999 {
		t.Fatalf("plan: %+v", plan)
	}
	sum := 0
	for _, p := range plan.Purchases {
		sum += p.Subtotal
	}
	if sum != plan.SubCents || plan.TotalCents != plan.SubCents {
		t.Fatalf("totals: %+v", plan)
	}
}

func TestMinCostLargeTarget(t *testing.T) {
	cat := DefaultCatalog()
	target := 5 * maxDPTokens
	plan := MinCostAtLeastTokens(cat, target, AllFirstTime(cat))
	if plan.TotalTokens < target {
		t.Fatalf("short: %d < %d", plan.TotalTokens, target)
	}
	for _, p := range plan.Purchases {
		if len(p.PackID) > 3 && p.PackID[len(p.PackID)-3:] == "#x2" && p.Qty != 1 {
			t.Fatalf("first-time pack bought %d times", p.Qty)
		}
	}
}

func TestMaxTokensUnderBudget(t *testing.T) {
	cat := DefaultCatalog()
	if plan := MaxTokensUnderBudget(cat, 999, nil); plan.TotalTokens != 660 || plan.TotalCents != 998 {
		t.Fatalf("repeat only: %+v", plan)
	}
	plan := MaxTokensUnderBudget(cat, 999, AllFirstTime(cat))
	if plan.TotalTokens != 960 || plan.TotalCents > 999 {
		t.Fatalf("first time: %+v", plan)
	}
	if plan := MaxTokensUnderBudget(cat, 50, nil); plan.TotalTokens != 0 || len(plan.Purchases) != 0 {
		t.Fatalf("budget below cheapest pack: %+v", plan)
	}
}

func TestApplyTax(t *testing.T) {
	if tax, total := applyTax(1000, 0.13); tax != 130 || total != 1130 {
		t.Fatalf("tax %d total %d", tax, total)
	}
	if tax, total := applyTax(1000, 0); tax != 0 || total != 1000 {
		t.Fatalf("tax %d total %d", tax, total)
	}
}
