package rewards

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/xtding233/wishsim/internal/items"
	"github.com/xtding233/wishsim/internal/version"
)

// ErrUnavailable is returned for table rows that do not exist.
var ErrUnavailable = errors.New("reward table row unavailable")

//go:embed tables.yaml
var tablesYAML []byte

// Banner is the rate-up lineup of one banner phase.
type Banner struct {
	Version    string     `yaml:"version"`
	Character5 []items.ID `yaml:"character5"`
	Character4 []items.ID `yaml:"character4"`
	Weapon5    []items.ID `yaml:"weapon5"`
	Weapon4    []items.ID `yaml:"weapon4"`
}

type standard struct {
	Character5      []items.ID `yaml:"character5"`
	Character5Sizes []int      `yaml:"character5_sizes"`
	StandardOnly    int        `yaml:"standard_only"`
	Character4      []items.ID `yaml:"character4"`
	Character4Sizes []int      `yaml:"character4_sizes"`
	Weapon5         []items.ID `yaml:"weapon5"`
	Weapon4         []items.ID `yaml:"weapon4"`
	Three           []items.ID `yaml:"three"`
}

// Chronicled is the curated pool of one Chronicled Wish. Characters and
// weapons of a tier never mix within one list.
type Chronicled struct {
	Version    string     `yaml:"version"`
	Character5 []items.ID `yaml:"character5"`
	Weapon5    []items.ID `yaml:"weapon5"`
	Character4 []items.ID `yaml:"character4"`
	Weapon4    []items.ID `yaml:"weapon4"`
}

type file struct {
	Banners    []Banner     `yaml:"banners"`
	Standard   standard     `yaml:"standard"`
	Chronicled []Chronicled `yaml:"chronicled"`
}

// StandardPool is the permanent pool as it stood at one release.
// Character4 leaves out the characters that only drop from the standard
// banners; Character4All includes them.
type StandardPool struct {
	Character5    []items.ID
	Character4    []items.ID
	Character4All []items.ID
	Weapon5       []items.ID
	Weapon4       []items.ID
	Three         []items.ID
}

// Tables is immutable once loaded.
type Tables struct {
	banners    []Banner
	std        standard
	chronicled map[int]*Chronicled
}

// Load parses and cross-checks a tables document against the version resolver.
func Load(b []byte) (*Tables, error) {
	var f file
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse reward tables: %w", err)
	}
	t := &Tables{banners: f.Banners, std: f.Standard, chronicled: map[int]*Chronicled{}}
	if err := t.check(); err != nil {
		return nil, err
	}
	for i := range f.Chronicled {
		c := &f.Chronicled[i]
		idx, err := resolve(c.Version)
		if err != nil {
			return nil, fmt.Errorf("chronicled %s: %w", c.Version, err)
		}
		if len(c.Character5)+len(c.Weapon5) == 0 || len(c.Character4)+len(c.Weapon4) == 0 {
			return nil, fmt.Errorf("chronicled %s: empty pool", c.Version)
		}
		t.chronicled[idx.Banner] = c
	}
	return t, nil
}

func (t *Tables) check() error {
	var errs []string
	for i, b := range t.banners {
		idx, err := resolve(b.Version)
		switch {
		case err != nil:
			errs = append(errs, fmt.Sprintf("banner %d: %v", i, err))
		case idx.Banner != i:
			errs = append(errs, fmt.Sprintf("banner %s sits at row %d, resolves to %d", b.Version, i, idx.Banner))
		}
		if n := len(b.Character5); n < 1 || n > 2 {
			errs = append(errs, fmt.Sprintf("banner %s: %d rate-up 5-star characters", b.Version, n))
		}
		if len(b.Character4) != 3 || len(b.Weapon5) != 2 || len(b.Weapon4) != 5 {
			errs = append(errs, fmt.Sprintf("banner %s: rate-up arity", b.Version))
		}
	}
	s := t.std
	if len(s.Character5Sizes) != len(s.Character4Sizes) {
		errs = append(errs, "standard: size tables differ in length")
	}
	for i, n := range s.Character5Sizes {
		if n < 1 || n > len(s.Character5) {
			errs = append(errs, fmt.Sprintf("standard: 5-star size %d at %d", n, i))
		}
	}
	for i, n := range s.Character4Sizes {
		if n < 1 || s.StandardOnly+n > len(s.Character4) {
			errs = append(errs, fmt.Sprintf("standard: 4-star size %d at %d", n, i))
		}
	}
	if len(s.Weapon5) == 0 || len(s.Weapon4) == 0 || len(s.Three) == 0 {
		errs = append(errs, "standard: empty weapon pool")
	}
	if len(errs) > 0 {
		return fmt.Errorf("reward tables invalid: %s", strings.Join(errs, "; "))
	}
	return nil
}

func resolve(s string) (version.Index, error) {
	v, err := version.Parse(s)
	if err != nil {
		return version.Index{}, err
	}
	return version.Resolve(v, nil, false)
}

var (
	defaultOnce   sync.Once
	defaultTables *Tables
	defaultErr    error
)

// Default returns the embedded tables.
func Default() (*Tables, error) {
	defaultOnce.Do(func() {
		defaultTables, defaultErr = Load(tablesYAML)
	})
	return defaultTables, defaultErr
}

// Banners is the number of banner rows.
func (t *Tables) Banners() int { return len(t.banners) }

// Pools is the number of standard pool rows.
func (t *Tables) Pools() int { return len(t.std.Character5Sizes) }

// Banner returns the rate-up lineup of row i.
func (t *Tables) Banner(i int) (*Banner, error) {
	if i < 0 || i >= len(t.banners) {
		return nil, fmt.Errorf("%w: banner row %d of %d", ErrUnavailable, i, len(t.banners))
	}
	return &t.banners[i], nil
}

// Standard returns the permanent pool at row i. Row 0 is the Beginners' Wish.
func (t *Tables) Standard(i int) (StandardPool, error) {
	if i < 0 || i >= t.Pools() {
		return StandardPool{}, fmt.Errorf("%w: standard pool row %d of %d", ErrUnavailable, i, t.Pools())
	}
	s := t.std
	n5 := s.Character5Sizes[i]
	lo, hi := s.StandardOnly, s.StandardOnly+s.Character4Sizes[i]
	return StandardPool{
		Character5:    s.Character5[:n5:n5],
		Character4:    s.Character4[lo:hi:hi],
		Character4All: s.Character4[:hi:hi],
		Weapon5:       s.Weapon5,
		Weapon4:       s.Weapon4,
		Three:         s.Three,
	}, nil
}

// Chronicled returns the pool configured for banner row i.
func (t *Tables) Chronicled(i int) (*Chronicled, error) {
	c, ok := t.chronicled[i]
	if !ok {
		return nil, fmt.Errorf("%w: no chronicled pool at banner row %d", ErrUnavailable, i)
	}
	return c, nil
}
