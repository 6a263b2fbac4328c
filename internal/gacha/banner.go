package gacha

import (
	"errors"
	"fmt"

	"github.com/xtding233/wishsim/internal/items"
	"github.com/xtding233/wishsim/internal/rewards"
	"github.com/xtding233/wishsim/internal/version"
)

// BannerKind is a pull source.
type BannerKind int

const (
	CharacterEvent1 BannerKind = iota
	CharacterEvent2
	WeaponEvent
	StandardCharacter
	StandardWeapon
	StandardCharacterOnly
	Novice
	Chronicled
	bannerKinds
)

var bannerKeys = [bannerKinds]string{
	CharacterEvent1:       "char1",
	CharacterEvent2:       "char2",
	WeaponEvent:           "weapon",
	StandardCharacter:     "std",
	StandardWeapon:        "std_weapon",
	StandardCharacterOnly: "std_char",
	Novice:                "novice",
	Chronicled:            "chronicle",
}

// Key is the short CLI name of k.
func (k BannerKind) Key() string {
	if !k.Valid() {
		return fmt.Sprintf("banner(%d)", int(k))
	}
	return bannerKeys[k]
}

func (k BannerKind) String() string { return k.Key() }

func (k BannerKind) Valid() bool { return k >= 0 && k < bannerKinds }

// Kinds lists every banner in display order.
func Kinds() []BannerKind {
	out := make([]BannerKind, 0, bannerKinds)
	for k := BannerKind(0); k < bannerKinds; k++ {
		out = append(out, k)
	}
	return out
}

// ParseBanner maps a CLI key to its kind.
func ParseBanner(key string) (BannerKind, error) {
	for k, s := range bannerKeys {
		if s == key {
			return BannerKind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidBanner, key)
}

// Family selects the rarity curves of k.
func (k BannerKind) Family() Family {
	if k == WeaponEvent || k == StandardWeapon {
		return FamilyWeapon
	}
	return FamilyStandard
}

func (k BannerKind) isCharacterEvent() bool {
	return k == CharacterEvent1 || k == CharacterEvent2
}

// HasRateUp reports whether k features rate-up items.
func (k BannerKind) HasRateUp() bool {
	return k.isCharacterEvent() || k == WeaponEvent || k == Chronicled
}

// HasPath reports whether a path item can be charted on k.
func (k BannerKind) HasPath() bool { return k == WeaponEvent || k == Chronicled }

// Pool is everything a banner can drop at one version.
type Pool struct {
	RateUp5 []items.ID
	RateUp4 []items.ID

	// sub-pools the banner rules draw from outside the rate-up
	Character5 []items.ID
	Weapon5    []items.ID
	Character4 []items.ID
	Weapon4    []items.ID
	Three      []items.ID

	// Paths are the items a player may select as epitomized / chronicled path.
	Paths []items.ID
}

// PoolFor assembles the pool of banner k at idx from the reward tables.
func PoolFor(t *rewards.Tables, k BannerKind, idx version.Index) (*Pool, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBanner, int(k))
	}
	if t == nil {
		return nil, fmt.Errorf("%w: no reward tables", ErrInvalidArguments)
	}
	if k == Novice {
		idx.Pool = 0
	}
	std, err := t.Standard(idx.Pool)
	if err != nil {
		return nil, poolErr(err)
	}
	p := &Pool{Three: std.Three}
	switch k {
	case CharacterEvent1, CharacterEvent2, WeaponEvent:
		b, err := t.Banner(idx.Banner)
		if err != nil {
			return nil, poolErr(err)
		}
		p.Character5, p.Weapon5 = std.Character5, std.Weapon5
		p.Character4, p.Weapon4 = std.Character4, std.Weapon4
		switch k {
		case WeaponEvent:
			p.RateUp5, p.RateUp4 = b.Weapon5, b.Weapon4
			p.Paths = b.Weapon5
		default:
			slot := int(k - CharacterEvent1)
			if slot >= len(b.Character5) {
				return nil, fmt.Errorf("%w: %s ran no second character banner", ErrPoolUnavailable, idx.Version)
			}
			p.RateUp5, p.RateUp4 = b.Character5[slot:slot+1], b.Character4
		}
	case StandardCharacter, StandardWeapon, StandardCharacterOnly:
		p.Character5, p.Weapon5 = std.Character5, std.Weapon5
		p.Character4, p.Weapon4 = std.Character4All, std.Weapon4
	case Novice:
		p.Character5, p.Character4 = std.Character5, std.Character4
	case Chronicled:
		c, err := t.Chronicled(idx.Banner)
		if err != nil {
			return nil, poolErr(err)
		}
		p.Character5, p.Weapon5 = c.Character5, c.Weapon5
		p.Character4, p.Weapon4 = c.Character4, c.Weapon4
		p.Paths = append(append([]items.ID{}, c.Character5...), c.Weapon5...)
	}
	return p, nil
}

func poolErr(err error) error {
	if errors.Is(err, rewards.ErrUnavailable) {
		return fmt.Errorf("%w: %v", ErrPoolUnavailable, err)
	}
	return err
}

// HasSecondCharacter reports whether Character Event Wish-2 ran at idx.
func HasSecondCharacter(t *rewards.Tables, idx version.Index) bool {
	b, err := t.Banner(idx.Banner)
	return err == nil && len(b.Character5) > 1
}
