package items

import "testing"

func TestDefaultCatalog(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	cases := map[ID]string{
		1034:  "Noelle",
		1134:  "Noelle's Stella Fortuna",
		1022:  "Venti",
		15502: "Amos' Bow",
		11301: "Cool Steel",
	}
	for id, want := range cases {
		if got := c.Name(id); got != want {
			t.Errorf("Name(%d)=%q want %q", id, got, want)
		}
	}
	if got := c.Name(999); got != "#999" {
		t.Fatalf("unknown id rendered as %q", got)
	}
}

func TestCategories(t *testing.T) {
	if !ID(1099).IsCharacter() || ID(1100).IsCharacter() {
		t.Fatalf("character range")
	}
	if !ID(12502).IsWeapon() || ID(1050).IsWeapon() {
		t.Fatalf("weapon range")
	}
	if ID(12502).WeaponRarity() != 5 || ID(14304).WeaponRarity() != 3 || ID(1050).WeaponRarity() != 0 {
		t.Fatalf("weapon rarity")
	}
}

func TestParseRejectsMisfiledIDs(t *testing.T) {
	if _, err := Parse([]byte("characters:\n  11401: \"Favonius Sword\"\n")); err == nil {
		t.Fatalf("weapon id filed under characters must fail")
	}
	if _, err := Parse([]byte("weapons:\n  1001: \"Kate\"\n")); err == nil {
		t.Fatalf("character id filed under weapons must fail")
	}
}
