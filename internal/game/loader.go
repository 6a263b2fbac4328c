package game

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Paths helper for default/profile files.
type Paths struct {
	BaseDir string // e.g. ~/.config/wishsim
}

func (p Paths) DefaultPath() string {
	return filepath.Join(p.BaseDir, "default.yaml")
}

func (p Paths) ProfilePath(name string) string {
	return filepath.Join(p.BaseDir, name+".yaml")
}

// Loader reads YAML profiles and merges default → profile.
type Loader struct {
	paths Paths

	mu    sync.RWMutex
	cache map[string]RawProfile // key: profile name, "" for default only
}

// NewLoader creates a profile loader rooted at baseDir.
func NewLoader(baseDir string) *Loader {
	return &Loader{
		paths: Paths{BaseDir: baseDir},
		cache: make(map[string]RawProfile),
	}
}

// LoadMerged loads default.yaml and overlays the named profile (optional).
// Missing files are not an error; a profile that was asked for by name is.
func (l *Loader) LoadMerged(profile string) (RawProfile, error) {
	l.mu.RLock()
	if cfg, ok := l.cache[profile]; ok {
		l.mu.RUnlock()
		return cfg, nil
	}
	l.mu.RUnlock()

	if l.paths.BaseDir == "" {
		if profile != "" {
			return RawProfile{}, fmt.Errorf("profile %q requested but no profile directory set", profile)
		}
		return RawProfile{}, nil
	}
	defCfg, _, err := readYAML(l.paths.DefaultPath())
	if err != nil {
		return RawProfile{}, fmt.Errorf("read default: %w", err)
	}
	merged := defCfg
	if profile != "" {
		p, found, err := readYAML(l.paths.ProfilePath(profile))
		if err != nil {
			return RawProfile{}, fmt.Errorf("read profile %s: %w", profile, err)
		}
		if !found {
			return RawProfile{}, fmt.Errorf("profile %q not found in %s", profile, l.paths.BaseDir)
		}
		merged = mergeRaw(defCfg, p)
	}

	l.mu.Lock()
	l.cache[profile] = merged
	l.mu.Unlock()
	return merged, nil
}

// Invalidate clears the loader's cache.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache = make(map[string]RawProfile)
}

// readYAML loads a YAML file. Missing files return a zero profile, found=false.
func readYAML(path string) (RawProfile, bool, error) {
	var cfg RawProfile
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return RawProfile{}, false, nil
		}
		return RawProfile{}, false, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return RawProfile{}, true, err
	}
	return cfg, true, nil
}

// mergeRaw overlays b onto a: anything set in b wins.
func mergeRaw(a, b RawProfile) RawProfile {
	out := a
	if b.Banner != "" {
		out.Banner = b.Banner
	}
	if b.Version != "" {
		out.Version = b.Version
	}
	if b.PoolVersion != "" {
		out.PoolVersion = b.PoolVersion
	}
	if b.Notes != "" {
		out.Notes = b.Notes
	}
	out.Pulls = pick(a.Pulls, b.Pulls)

	// state
	switch {
	case b.State == nil:
	case a.State == nil:
		c := *b.State
		out.State = &c
	default:
		s := *a.State
		s.Pity4 = pick(s.Pity4, b.State.Pity4)
		s.Pity5 = pick(s.Pity5, b.State.Pity5)
		s.Smooth4Char = pick(s.Smooth4Char, b.State.Smooth4Char)
		s.Smooth4Weapon = pick(s.Smooth4Weapon, b.State.Smooth4Weapon)
		s.Smooth5Char = pick(s.Smooth5Char, b.State.Smooth5Char)
		s.Smooth5Weapon = pick(s.Smooth5Weapon, b.State.Smooth5Weapon)
		s.Guarantee4 = pick(s.Guarantee4, b.State.Guarantee4)
		s.Guarantee5 = pick(s.Guarantee5, b.State.Guarantee5)
		s.FatePoints = pick(s.FatePoints, b.State.FatePoints)
		s.Path = pick(s.Path, b.State.Path)
		s.NoviceWishes = pick(s.NoviceWishes, b.State.NoviceWishes)
		out.State = &s
	}

	// mechanics
	switch {
	case b.Mechanics == nil:
	case a.Mechanics == nil:
		c := *b.Mechanics
		out.Mechanics = &c
	default:
		m := *a.Mechanics
		m.Pity4 = pick(m.Pity4, b.Mechanics.Pity4)
		m.Pity5 = pick(m.Pity5, b.Mechanics.Pity5)
		m.FateThreshold = pick(m.FateThreshold, b.Mechanics.FateThreshold)
		if b.Mechanics.Guarantee != "" {
			m.Guarantee = b.Mechanics.Guarantee
		}
		if b.Mechanics.Smooth4 != "" {
			m.Smooth4 = b.Mechanics.Smooth4
		}
		if b.Mechanics.Smooth5 != "" {
			m.Smooth5 = b.Mechanics.Smooth5
		}
		if b.Mechanics.Radiance != "" {
			m.Radiance = b.Mechanics.Radiance
		}
		out.Mechanics = &m
	}

	// cost
	switch {
	case b.Cost == nil:
	case a.Cost == nil:
		c := *b.Cost
		out.Cost = &c
	default:
		c := *a.Cost
		c.Primogems = pick(c.Primogems, b.Cost.Primogems)
		c.Fates = pick(c.Fates, b.Cost.Fates)
		c.BudgetCents = pick(c.BudgetCents, b.Cost.BudgetCents)
		out.Cost = &c
	}
	return out
}

// pick returns over when set, else base.
func pick[T any](base, over *T) *T {
	if over != nil {
		return over
	}
	return base
}
