package gacha

import (
	"errors"
	"fmt"
	"math"
)

var ErrCurveConfig = errors.New("invalid weight curve")

// Ramp raises a curve by Step for every pull past After.
type Ramp struct {
	After int
	Step  float64
}

// Curve is a flat-then-piecewise-linear weight. Ramps apply cumulatively in
// order; the weight is clamped to 1 and reaches it at Ceiling.
//
// Example: Base=0.006, Ramps=[{73, 0.06}] gives 0.006 up to pull 73, 0.066 on
// pull 74, ... and 1 on pull 90.
type Curve struct {
	Base    float64
	Ramps   []Ramp
	Ceiling int
}

// Weight of the pity-th pull since the last hit. A flat curve ignores the ramps.
func (c Curve) Weight(pity int, flat bool) float64 {
	w := c.Base
	if flat {
		return w
	}
	for i, r := range c.Ramps {
		if pity <= r.After {
			break
		}
		end := pity
		if i+1 < len(c.Ramps) && end > c.Ramps[i+1].After {
			end = c.Ramps[i+1].After
		}
		w += r.Step * float64(end-r.After)
	}
	if w > 1 {
		return 1
	}
	return w
}

// validate checks the curve is well formed: probabilities in range, ramps
// sorted, and certainty reached at the ceiling and not before.
func (c Curve) validate() error {
	if err := validateProb(c.Base); err != nil {
		return fmt.Errorf("%w: base %v", ErrCurveConfig, c.Base)
	}
	prev := -1
	for _, r := range c.Ramps {
		if r.After <= prev || r.Step <= 0 {
			return fmt.Errorf("%w: ramp %+v", ErrCurveConfig, r)
		}
		prev = r.After
	}
	if c.Ceiling <= 0 {
		return nil
	}
	if c.Weight(c.Ceiling, false) < 1 || c.Weight(c.Ceiling-1, false) >= 1 {
		return fmt.Errorf("%w: ceiling %d", ErrCurveConfig, c.Ceiling)
	}
	return nil
}

func validateProb(p float64) error {
	if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 || p > 1 {
		return ErrInvalidProb
	}
	return nil
}

// Family groups banners sharing a rarity curve set.
type Family int

const (
	FamilyStandard Family = iota // character event, standard, novice, chronicled
	FamilyWeapon                 // weapon event, standard weapon
)

var rarityCurves = map[Family]map[Tier]Curve{
	FamilyStandard: {
		Five: {Base: 0.006, Ramps: []Ramp{{After: 73, Step: 0.06}}, Ceiling: 90},
		Four: {Base: 0.051, Ramps: []Ramp{{After: 8, Step: 0.51}}, Ceiling: 10},
	},
	FamilyWeapon: {
		Five: {Base: 0.007, Ramps: []Ramp{{After: 62, Step: 0.07}, {After: 73, Step: 0.035}}, Ceiling: 80},
		Four: {Base: 0.06, Ramps: []Ramp{{After: 7, Step: 0.6}, {After: 8, Step: 0.3}}, Ceiling: 10},
	},
}

// RarityCurve returns the drop curve of tier on banners of family f.
func RarityCurve(tier Tier, f Family) (Curve, bool) {
	c, ok := rarityCurves[f][tier]
	return c, ok
}

// Weight is the probability that the next pull is tier, pity pulls after the
// last one. pityEnabled=false pins the flat base rate. For Three it is the
// flat rate left over by the 4 and 5-star base rates, whatever the pity.
func Weight(tier Tier, pity int, f Family, pityEnabled bool) float64 {
	if tier == Three {
		c5, ok5 := RarityCurve(Five, f)
		c4, ok4 := RarityCurve(Four, f)
		if !ok5 || !ok4 {
			return 0
		}
		return 1 - c5.Base - c4.Base
	}
	c, ok := RarityCurve(tier, f)
	if !ok {
		return 0
	}
	return c.Weight(pity, !pityEnabled)
}

// Stable pity curves. They decide character vs weapon once a tier is won.
var (
	smooth5       = Curve{Base: 0.003, Ramps: []Ramp{{After: 146, Step: 0.03}}, Ceiling: 180}
	smooth4       = Curve{Base: 0.0255, Ramps: []Ramp{{After: 17, Step: 0.255}}, Ceiling: 21}
	smooth4Weapon = Curve{Base: 0.03, Ramps: []Ramp{{After: 14, Step: 0.3}}, Ceiling: 18}
)

// fixed weight of the smoothing roll when smoothing is off
const smoothOffWeight = 0.5
