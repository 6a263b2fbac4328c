package gacha

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// RandomSource supplies the entropy for pulls.
type RandomSource interface {
	Float64() float64 // [0, 1)
	IntN(n int) int   // [0, n)
}

// crypto random : default generation method
type cryptoRNG struct{}

func (cryptoRNG) uint64() uint64 {
	var buf [8]byte
	if _, err := cryptoRand.Read(buf[:]); err != nil {
		// back to math/rand/v2
		return rand.Uint64()
	}
	return binary.BigEndian.Uint64(buf[:])
}

func (c cryptoRNG) Float64() float64 {
	// 53 bits => [0, 1)
	return float64(c.uint64()>>11) / (1 << 53)
}

func (c cryptoRNG) IntN(n int) int {
	if n <= 0 {
		panic("gacha: IntN with n <= 0")
	}
	// rejection sampling keeps the result unbiased
	max := uint64(n)
	limit := ^uint64(0) - (^uint64(0) % max)
	for {
		u := c.uint64()
		if u < limit {
			return int(u % max)
		}
	}
}

func DefaultRNG() RandomSource { return cryptoRNG{} }

// Replicable RNG (Monte Carlo, -seed)
type seededRNG struct{ r *rand.Rand }

func NewSeededRNG(seed uint64) RandomSource {
	return &seededRNG{r: rand.New(rand.NewPCG(seed, 0))}
}

func (s *seededRNG) Float64() float64 { return s.r.Float64() }

func (s *seededRNG) IntN(n int) int { return s.r.IntN(n) }
