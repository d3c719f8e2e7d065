package extractor

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/andybalholm/cascadia"
)

var ErrInvalidSelector = errors.New("invalid CSS selector")

// Selectors are the CSS rules used to locate an article on a page.
type Selectors struct {
	Title string `yaml:"title"`
	Body  string `yaml:"body"`
	// Drop lists elements removed before text is read, e.g. inline "read also" links.
	Drop []string `yaml:"drop"`
}

const DefaultPreset = "generic"

var presets = map[string]Selectors{
	"generic": {
		Title: "h1",
		Body:  "div.article-body",
	},
	"detik": {
		Title: "h1.detail__title",
		Body:  "div.detail__body-text",
		Drop:  []string{"div.detail__body-text table.linksisip", "div.detail__body-text .parallaxindetail"},
	},
	"kompas": {
		Title: "h1.read__title",
		Body:  "div.read__content",
		Drop:  []string{"p:has(strong:contains('Baca juga'))"},
	},
	"liputan6": {
		Title: "h1.read-page--header--title",
		Body:  "div.article-content-body__item-content",
	},
}

// Preset returns the selectors registered under name.
func Preset(name string) (Selectors, error) {
	if name == "" {
		name = DefaultPreset
	}
	s, ok := presets[strings.ToLower(name)]
	if !ok {
		return Selectors{}, fmt.Errorf("unknown selector preset %q (known: %s)", name, strings.Join(PresetNames(), ", "))
	}
	s.Drop = append([]string(nil), s.Drop...)
	return s, nil
}

func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Override replaces the preset rules with any non-empty explicit ones.
func (s Selectors) Override(title, body string) Selectors {
	if title != "" {
		s.Title = title
	}
	if body != "" {
		s.Body = body
	}
	return s
}

// Validate compiles every rule so a typo fails at startup instead of
// silently matching nothing on each cycle.
func (s Selectors) Validate() error {
	if s.Title == "" || s.Body == "" {
		return ErrNoSelectors
	}

	rules := append([]string{s.Title, s.Body}, s.Drop...)
	for _, rule := range rules {
		if _, err := cascadia.Compile(rule); err != nil {
			return fmt.Errorf("%w %q: %w", ErrInvalidSelector, rule, err)
		}
	}
	return nil
}
