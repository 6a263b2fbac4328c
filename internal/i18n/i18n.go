// Package i18n loads the localized CLI strings and hands out printers.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

// BaseLocale is the locale every other catalog is checked against.
const BaseLocale = "en-US"

//go:embed locales/*.yaml
var localesFS embed.FS

type catalogFile struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

// Bundle holds the messages of every locale.
type Bundle struct {
	builder  *catalog.Builder
	tags     []language.Tag
	matcher  language.Matcher
	messages map[string]map[string]string
}

// LoadFromFS reads locales/*.yaml from fsys. The base locale comes first in
// matching so it is the fallback.
func LoadFromFS(fsys fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(fsys, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	slices.Sort(paths)

	b := &Bundle{
		builder:  catalog.NewBuilder(catalog.Fallback(language.MustParse(BaseLocale))),
		messages: make(map[string]map[string]string),
	}
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", p, err)
		}
		var f catalogFile
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", p, err)
		}
		if want := strings.TrimSuffix(path.Base(p), ".yaml"); f.Locale != want {
			return nil, fmt.Errorf("catalog %s: locale %q must match file name", p, f.Locale)
		}
		if len(f.Messages) == 0 {
			return nil, fmt.Errorf("catalog %s: no messages", p)
		}
		tag, err := language.Parse(f.Locale)
		if err != nil {
			return nil, fmt.Errorf("catalog %s: %w", p, err)
		}
		for key, msg := range f.Messages {
			if err := b.builder.SetString(tag, key, msg); err != nil {
				return nil, fmt.Errorf("catalog %s: key %q: %w", p, key, err)
			}
		}
		b.messages[f.Locale] = f.Messages
		if f.Locale == BaseLocale {
			b.tags = slices.Insert(b.tags, 0, tag)
		} else {
			b.tags = append(b.tags, tag)
		}
	}
	if _, ok := b.messages[BaseLocale]; !ok {
		return nil, fmt.Errorf("base locale %s is not defined in catalogs", BaseLocale)
	}
	b.matcher = language.NewMatcher(b.tags)
	return b, nil
}

var (
	defaultOnce   sync.Once
	defaultBundle *Bundle
	defaultErr    error
)

// Default returns the embedded catalogs.
func Default() (*Bundle, error) {
	defaultOnce.Do(func() {
		defaultBundle, defaultErr = LoadFromFS(localesFS)
	})
	return defaultBundle, defaultErr
}

// Locales lists the loaded locales, base first.
func (b *Bundle) Locales() []string {
	out := make([]string, len(b.tags))
	for i, t := range b.tags {
		out[i] = t.String()
	}
	return out
}

// Match picks the supported tag closest to locale. It accepts POSIX
// spellings such as zh_CN.UTF-8.
func (b *Bundle) Match(locale string) language.Tag {
	locale, _, _ = strings.Cut(locale, ".")
	locale = strings.ReplaceAll(locale, "_", "-")
	if locale == "" || locale == "C" || locale == "POSIX" {
		return b.tags[0]
	}
	_, i, _ := b.matcher.Match(language.Make(locale))
	return b.tags[i]
}

// Printer returns a printer for the locale closest to locale.
func (b *Bundle) Printer(locale string) *message.Printer {
	return message.NewPrinter(b.Match(locale), message.Catalog(b.builder))
}

// Missing lists keys of the base locale that locale does not translate.
func (b *Bundle) Missing(locale string) []string {
	msgs := b.messages[locale]
	var out []string
	for key := range b.messages[BaseLocale] {
		if _, ok := msgs[key]; !ok {
			out = append(out, key)
		}
	}
	slices.Sort(out)
	return out
}
