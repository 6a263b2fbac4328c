package i18n

import (
	"testing"
	"testing/fstest"
)

func TestDefaultCatalogs(t *testing.T) {
	b, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	if got := b.Locales(); len(got) != 2 || got[0] != BaseLocale || got[1] != "zh-CN" {
		t.Fatalf("locales: %v", got)
	}
	if missing := b.Missing("zh-CN"); len(missing) != 0 {
		t.Fatalf("zh-CN lacks %v", missing)
	}
}

func TestMatch(t *testing.T) {
	b, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	cases := map[string]string{
		"":            "en-US",
		"C":           "en-US",
		"en_GB.UTF-8": "en-US",
		"zh_CN.UTF-8": "zh-CN",
		"zh-Hans":     "zh-CN",
		"fr-FR":       "en-US",
	}
	for in, want := range cases {
		if got := b.Match(in).String(); got != want {
			t.Errorf("Match(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestPrinter(t *testing.T) {
	b, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	en := b.Printer("en-US")
	if got := en.Sprintf("banner.novice"); got != "Beginners' Wish" {
		t.Fatalf("en: %q", got)
	}
	if got := en.Sprintf("run.header", 10, en.Sprintf("banner.std")); got != "Making 10 wishes on the Wanderlust Invocation banner" {
		t.Fatalf("en header: %q", got)
	}
	zh := b.Printer("zh-CN")
	if got := zh.Sprintf("run.header", 10, zh.Sprintf("banner.novice")); got != "在新手祈愿中进行10次祈愿" {
		t.Fatalf("zh header: %q", got)
	}
	if got := en.Sprintf("no.such.key"); got != "no.such.key" {
		t.Fatalf("unknown key: %q", got)
	}
}

func TestLoadFromFSErrors(t *testing.T) {
	cases := map[string]fstest.MapFS{
		"locale mismatch": {
			"locales/en-US.yaml": {Data: []byte("locale: \"en-US\"\nmessages:\n  a: \"b\"\n")},
			"locales/de-DE.yaml": {Data: []byte("locale: \"fr-FR\"\nmessages:\n  a: \"b\"\n")},
		},
		"no base": {
			"locales/de-DE.yaml": {Data: []byte("locale: \"de-DE\"\nmessages:\n  a: \"b\"\n")},
		},
		"empty": {
			"locales/en-US.yaml": {Data: []byte("locale: \"en-US\"\n")},
		},
		"bad yaml": {
			"locales/en-US.yaml": {Data: []byte("locale: [\n")},
		},
	}
	for name, fsys := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadFromFS(fsys); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
