package gacha

import (
	"errors"
	"math"
	"testing"
)

func allCurves() map[string]Curve {
	out := map[string]Curve{
		"smooth5":        smooth5,
		"smooth4":        smooth4,
		"smooth4_weapon": smooth4Weapon,
	}
	for _, f := range []Family{FamilyStandard, FamilyWeapon} {
		for _, tier := range []Tier{Four, Five} {
			c, ok := RarityCurve(tier, f)
			if !ok {
				panic("missing curve")
			}
			out[map[Family]string{FamilyStandard: "standard", FamilyWeapon: "weapon"}[f]+"_"+tier.String()] = c
		}
	}
	return out
}

func TestCurvesWellFormed(t *testing.T) {
	for name, c := range allCurves() {
		if err := c.validate(); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
	}
}

func TestCurveFlatBeforeSoftPity(t *testing.T) {
	for name, c := range allCurves() {
		for p := 0; p <= c.Ramps[0].After; p++ {
			if got := c.Weight(p, false); got != c.Base {
				t.Fatalf("%s: weight(%d)=%v want base %v", name, p, got, c.Base)
			}
		}
	}
}

func TestCurveMonotonicToCeiling(t *testing.T) {
	for name, c := range allCurves() {
		prev := 0.0
		for p := 0; p <= c.Ceiling+5; p++ {
			w := c.Weight(p, false)
			if w < prev {
				t.Fatalf("%s: weight drops at %d (%v < %v)", name, p, w, prev)
			}
			prev = w
		}
		if c.Weight(c.Ceiling, false) != 1 {
			t.Fatalf("%s: weight at ceiling %d is %v", name, c.Ceiling, c.Weight(c.Ceiling, false))
		}
	}
}

func TestKnownWeights(t *testing.T) {
	cases := []struct {
		tier Tier
		pity int
		fam  Family
		want float64
	}{
		{Five, 73, FamilyStandard, 0.006},
		{Five, 74, FamilyStandard, 0.066},
		{Five, 89, FamilyStandard, 0.966},
		{Four, 9, FamilyStandard, 0.561},
		{Five, 62, FamilyWeapon, 0.007},
		{Five, 73, FamilyWeapon, 0.777},
		{Five, 75, FamilyWeapon, 0.847},
		{Four, 8, FamilyWeapon, 0.66},
		{Four, 9, FamilyWeapon, 0.96},
	}
	for _, c := range cases {
		got := Weight(c.tier, c.pity, c.fam, true)
		if math.Abs(got-c.want) > 1e-9 {
			t.Errorf("Weight(%s, %d, %d)=%v want %v", c.tier, c.pity, c.fam, got, c.want)
		}
	}
}

func TestThreeStarWeightIsFlat(t *testing.T) {
	for _, c := range []struct {
		fam  Family
		want float64
	}{
		{FamilyStandard, 0.943},
		{FamilyWeapon, 0.933},
	} {
		for _, pity := range []int{0, 9, 80} {
			if got := Weight(Three, pity, c.fam, true); math.Abs(got-c.want) > 1e-9 {
				t.Errorf("family %d pity %d: got %v want %v", c.fam, pity, got, c.want)
			}
		}
	}
}

func TestDisabledPityPinsBase(t *testing.T) {
	for _, p := range []int{0, 80, 89, 90, 200} {
		if got := Weight(Five, p, FamilyStandard, false); got != 0.006 {
			t.Fatalf("disabled pity at %d gives %v", p, got)
		}
	}
	if Weight(Three, 10, FamilyStandard, true) != 0 {
		t.Fatalf("3-star has no curve")
	}
}

func TestValidateRejectsBadCurves(t *testing.T) {
	bad := []Curve{
		{Base: -0.1},
		{Base: math.NaN()},
		{Base: 0.1, Ramps: []Ramp{{After: 5, Step: 0.1}, {After: 3, Step: 0.1}}},
		{Base: 0.5, Ramps: []Ramp{{After: 1, Step: 0.5}}, Ceiling: 10},
	}
	for i, c := range bad {
		if err := c.validate(); !errors.Is(err, ErrCurveConfig) {
			t.Fatalf("case %d: want ErrCurveConfig, got %v", i, err)
		}
	}
}
