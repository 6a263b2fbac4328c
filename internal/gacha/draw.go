package gacha

import (
	"errors"

	"github.com/xtding233/wishsim/internal/items"
)

var ErrInvalidProb = errors.New("invalid probability p; must be 0..1")

// chance reports a hit under p.
// p <= 0 => never. p >= 1 => always. otherwise rng.Float64() < p
func chance(p float64, rng RandomSource) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return rng.Float64() < p
}

// pick draws uniformly from one list.
func pick(pool []items.ID, rng RandomSource) items.ID {
	return pool[rng.IntN(len(pool))]
}

// pickEither draws uniformly from the concatenation of a and b.
func pickEither(a, b []items.ID, rng RandomSource) items.ID {
	i := rng.IntN(len(a) + len(b))
	if i < len(a) {
		return a[i]
	}
	return b[i-len(a)]
}

func contains(pool []items.ID, id items.ID) bool {
	for _, x := range pool {
		if x == id {
			return true
		}
	}
	return false
}
