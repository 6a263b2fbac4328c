package session

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/xtding233/wishsim/internal/gacha"
)

// Snapshot is the part of a run needed to continue it later.
type Snapshot struct {
	Session      string          `yaml:"session"`
	Banner       string          `yaml:"banner"`
	Version      string          `yaml:"version"`
	State        gacha.PityState `yaml:"state"`
	NoviceWishes int             `yaml:"novice_wishes,omitempty"`
}

// Summary is the report printed after a run.
type Summary struct {
	Snapshot `yaml:",inline"`

	Wishes        int `yaml:"wishes"`
	FiveStars     int `yaml:"five_stars"`
	FourStars     int `yaml:"four_stars"`
	RateUpFive    int `yaml:"rate_up_five_stars"`
	FateThreshold int `yaml:"fate_threshold,omitempty"`
}

// SaveSnapshot writes the snapshot part of sum to path.
func SaveSnapshot(path string, sum Summary) error {
	b, err := yaml.Marshal(sum.Snapshot)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot reads a snapshot written by SaveSnapshot.
func LoadSnapshot(path string) (*Snapshot, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	var snap Snapshot
	if err := yaml.Unmarshal(b, &snap); err != nil {
		return nil, fmt.Errorf("parse snapshot %s: %w", path, err)
	}
	if _, err := gacha.ParseBanner(snap.Banner); err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", path, err)
	}
	return &snap, nil
}
