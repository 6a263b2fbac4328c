package items

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

// ID identifies a character (10xx), a character's constellation item (11xx)
// or a weapon (1TRNN: type, rarity, index).
type ID int

func (id ID) IsCharacter() bool { return id >= 1000 && id < 1100 }

func (id ID) IsConstellation() bool { return id >= 1100 && id < 1200 }

func (id ID) IsWeapon() bool { return id >= 10000 }

// Rarity of a weapon, read from its id. Characters carry no rarity in the id.
func (id ID) WeaponRarity() int {
	if !id.IsWeapon() {
		return 0
	}
	return int(id/100) % 10
}

//go:embed names.yaml
var namesYAML []byte

type nameFile struct {
	Characters map[ID]string `yaml:"characters"`
	Weapons    map[ID]string `yaml:"weapons"`
}

// Catalog resolves ids to English display names.
type Catalog struct {
	characters map[ID]string
	weapons    map[ID]string
}

// Parse builds a catalog from a YAML document shaped like names.yaml.
func Parse(b []byte) (*Catalog, error) {
	var f nameFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse names: %w", err)
	}
	for id := range f.Characters {
		if !id.IsCharacter() {
			return nil, fmt.Errorf("character id %d out of range", id)
		}
	}
	for id := range f.Weapons {
		if !id.IsWeapon() {
			return nil, fmt.Errorf("weapon id %d out of range", id)
		}
	}
	return &Catalog{characters: f.Characters, weapons: f.Weapons}, nil
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
	defaultErr  error
)

// Default returns the embedded catalog.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCat, defaultErr = Parse(namesYAML)
	})
	return defaultCat, defaultErr
}

// Lookup returns the display name of id and whether it is known.
func (c *Catalog) Lookup(id ID) (string, bool) {
	switch {
	case id.IsCharacter():
		n, ok := c.characters[id]
		return n, ok
	case id.IsConstellation():
		n, ok := c.characters[id-100]
		if !ok {
			return "", false
		}
		return n + "'s Stella Fortuna", true
	case id.IsWeapon():
		n, ok := c.weapons[id]
		return n, ok
	}
	return "", false
}

// Name never fails; unknown ids render as "#<id>".
func (c *Catalog) Name(id ID) string {
	if n, ok := c.Lookup(id); ok {
		return n
	}
	return fmt.Sprintf("#%d", int(id))
}
