package gacha

import "github.com/xtding233/wishsim/internal/items"

const (
	characterWinRate = 0.5
	weaponWinRate    = 0.75
	chronicleWinRate = 0.5
	radianceRate     = 0.1
)

// bannerRules picks the item once the rarity of a pull is known. Rules may
// mutate the guarantee, fate point and stable pity counters of st.
type bannerRules interface {
	resolveFiveStar(e *Engine, st *PityState) (items.ID, RateUp)
	resolveFourStar(e *Engine, st *PityState) (items.ID, RateUp)
}

func rulesFor(k BannerKind) bannerRules {
	switch k {
	case CharacterEvent1, CharacterEvent2:
		return characterEventRules{}
	case WeaponEvent:
		return weaponEventRules{}
	case StandardCharacter:
		return standardRules{}
	case StandardWeapon:
		return standardWeaponRules{}
	case StandardCharacterOnly:
		return standardCharacterOnlyRules{}
	case Novice:
		return noviceRules{}
	case Chronicled:
		return chronicledRules{}
	}
	return nil
}

type characterEventRules struct{}

func (characterEventRules) resolveFiveStar(e *Engine, st *PityState) (items.ID, RateUp) {
	st.Smooth5Char, st.Smooth5Weapon = 0, 0
	up := e.pool.RateUp5[0]
	if st.Guarantee5 || chance(characterWinRate, e.rng) {
		st.Guarantee5 = false
		return up, RateUpWon
	}
	if e.radiance && chance(radianceRate, e.rng) {
		return up, RateUpRadiance
	}
	item := pick(e.pool.Character5, e.rng)
	if item == up {
		return up, RateUpWon
	}
	st.Guarantee5 = true
	return item, RateUpNone
}

func (characterEventRules) resolveFourStar(e *Engine, st *PityState) (items.ID, RateUp) {
	if st.Guarantee4 || chance(characterWinRate, e.rng) {
		st.Guarantee4 = false
		st.Smooth4Char = 0
		return pick(e.pool.RateUp4, e.rng), RateUpWon
	}
	return e.offRateFour(st, smooth4)
}

type weaponEventRules struct{}

func (weaponEventRules) resolveFiveStar(e *Engine, st *PityState) (items.ID, RateUp) {
	st.Smooth5Char, st.Smooth5Weapon = 0, 0
	path := st.Path
	if path != 0 && st.FatePoints >= e.threshold {
		st.FatePoints = 0
		st.Guarantee5 = false
		return path, RateUpWon
	}
	var item items.ID
	if st.Guarantee5 || chance(weaponWinRate, e.rng) {
		item = pick(e.pool.RateUp5, e.rng)
	} else {
		item = pick(e.pool.Weapon5, e.rng)
		if !contains(e.pool.RateUp5, item) {
			st.Guarantee5 = true
			if path != 0 {
				st.FatePoints++
			}
			return item, RateUpNone
		}
	}
	st.Guarantee5 = false
	if path != 0 {
		if item == path {
			st.FatePoints = 0
		} else {
			st.FatePoints++
		}
	}
	return item, RateUpWon
}

func (weaponEventRules) resolveFourStar(e *Engine, st *PityState) (items.ID, RateUp) {
	if st.Guarantee4 || chance(weaponWinRate, e.rng) {
		st.Guarantee4 = false
		st.Smooth4Weapon = 0
		return pick(e.pool.RateUp4, e.rng), RateUpWon
	}
	return e.offRateFour(st, smooth4Weapon)
}

// offRateFour handles a lost 4-star coin flip on an event banner.
func (e *Engine) offRateFour(st *PityState, curve Curve) (items.ID, RateUp) {
	st.Guarantee4 = true
	item := e.stable(e.settings.Smooth4, curve, &st.Smooth4Char, &st.Smooth4Weapon, e.pool.Character4, e.pool.Weapon4)
	if contains(e.pool.RateUp4, item) {
		st.Guarantee4 = false
		return item, RateUpWon
	}
	return item, RateUpNone
}

type standardRules struct{}

func (standardRules) resolveFiveStar(e *Engine, st *PityState) (items.ID, RateUp) {
	return e.stable(e.settings.Smooth5, smooth5, &st.Smooth5Char, &st.Smooth5Weapon, e.pool.Character5, e.pool.Weapon5), RateUpNone
}

func (standardRules) resolveFourStar(e *Engine, st *PityState) (items.ID, RateUp) {
	return e.stable(e.settings.Smooth4, smooth4, &st.Smooth4Char, &st.Smooth4Weapon, e.pool.Character4, e.pool.Weapon4), RateUpNone
}

type standardWeaponRules struct{}

func (standardWeaponRules) resolveFiveStar(e *Engine, st *PityState) (items.ID, RateUp) {
	st.Smooth5Char, st.Smooth5Weapon = 0, 0
	return pick(e.pool.Weapon5, e.rng), RateUpNone
}

func (standardWeaponRules) resolveFourStar(e *Engine, st *PityState) (items.ID, RateUp) {
	return e.stable(e.settings.Smooth4, smooth4Weapon, &st.Smooth4Char, &st.Smooth4Weapon, e.pool.Character4, e.pool.Weapon4), RateUpNone
}

type standardCharacterOnlyRules struct{ standardRules }

func (standardCharacterOnlyRules) resolveFiveStar(e *Engine, st *PityState) (items.ID, RateUp) {
	st.Smooth5Char, st.Smooth5Weapon = 0, 0
	return pick(e.pool.Character5, e.rng), RateUpNone
}

type noviceRules struct{}

func (noviceRules) resolveFiveStar(e *Engine, st *PityState) (items.ID, RateUp) {
	st.Smooth5Char, st.Smooth5Weapon = 0, 0
	return pick(e.pool.Character5, e.rng), RateUpNone
}

func (noviceRules) resolveFourStar(e *Engine, st *PityState) (items.ID, RateUp) {
	st.Smooth4Char, st.Smooth4Weapon = 0, 0
	return pick(e.pool.Character4, e.rng), RateUpNone
}

// chronicledRules run like a weapon event over the path's category when a
// path is set, and like a standard banner over the whole pool otherwise.
// Without a path every drop counts as rate-up.
type chronicledRules struct{}

func (chronicledRules) resolveFiveStar(e *Engine, st *PityState) (items.ID, RateUp) {
	path := st.Path
	if path == 0 || e.threshold == 0 {
		st.Guarantee5 = false
		st.FatePoints = 0
		return e.stable(e.settings.Smooth5, smooth5, &st.Smooth5Char, &st.Smooth5Weapon, e.pool.Character5, e.pool.Weapon5), RateUpWon
	}
	st.Smooth5Char, st.Smooth5Weapon = 0, 0
	if st.FatePoints >= e.threshold || st.Guarantee5 || chance(chronicleWinRate, e.rng) {
		st.FatePoints = 0
		st.Guarantee5 = false
		return path, RateUpWon
	}
	same := e.pool.Character5
	if path.IsWeapon() {
		same = e.pool.Weapon5
	}
	item := pick(same, e.rng)
	if item == path {
		st.FatePoints = 0
		st.Guarantee5 = false
		return item, RateUpWon
	}
	st.Guarantee5 = true
	st.FatePoints++
	return item, RateUpNone
}

func (chronicledRules) resolveFourStar(e *Engine, st *PityState) (items.ID, RateUp) {
	st.Guarantee4 = false
	return e.stable(e.settings.Smooth4, smooth4, &st.Smooth4Char, &st.Smooth4Weapon, e.pool.Character4, e.pool.Weapon4), RateUpWon
}

// stable chooses between the character and weapon sub-pools of a tier and
// draws from the chosen one. The longer-waiting category is compared first:
// its wait sets the weight of getting it. The chosen category's counter
// restarts.
func (e *Engine) stable(mode SmoothMode, curve Curve, char, weapon *int, chars, weapons []items.ID) items.ID {
	switch {
	case len(weapons) == 0:
		*char = 0
		return pick(chars, e.rng)
	case len(chars) == 0:
		*weapon = 0
		return pick(weapons, e.rng)
	}
	switch mode {
	case SmoothUniform:
		return pickEither(chars, weapons, e.rng)
	case SmoothCharacters:
		*char = 0
		return pick(chars, e.rng)
	case SmoothWeapons:
		*weapon = 0
		return pick(weapons, e.rng)
	}
	weight := func(n int) float64 {
		if mode == SmoothOff {
			return smoothOffWeight
		}
		return curve.Weight(n, false)
	}
	r := e.rng.Float64()
	if *char <= *weapon {
		if r < weight(*weapon) {
			*weapon = 0
			return pick(weapons, e.rng)
		}
		*char = 0
		return pick(chars, e.rng)
	}
	if r < weight(*char) {
		*char = 0
		return pick(chars, e.rng)
	}
	*weapon = 0
	return pick(weapons, e.rng)
}
