// Package catalog holds the static flavor text shown to the user: daily
// suggestions, cycle suggestions per phase and gift ideas per category.
//
// Tables are keyed by language. Phases and gift categories are fields of a
// struct, not map keys, so every lookup is a switch over a closed enum and a
// missing entry is a load error instead of a silent runtime fallback.
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"slices"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/roach88/beloved/internal/model"
)

// FallbackLanguage is used for any language without its own table.
const FallbackLanguage = "en"

//go:embed catalog.yaml
var embedded []byte

// PhaseTexts has one list per suggestion phase.
type PhaseTexts struct {
	Menstrual  []string `yaml:"menstrual"`
	Follicular []string `yaml:"follicular"`
	Ovulation  []string `yaml:"ovulation"`
	Luteal     []string `yaml:"luteal"`
	PMS        []string `yaml:"pms"`
}

// For returns the texts for phase. An unrecognized phase gets the
// follicular list.
func (p PhaseTexts) For(phase model.SuggestionPhase) []string {
	switch phase {
	case model.SuggestionMenstrual:
		return p.Menstrual
	case model.SuggestionFollicular:
		return p.Follicular
	case model.SuggestionOvulation:
		return p.Ovulation
	case model.SuggestionLuteal:
		return p.Luteal
	case model.SuggestionPMS:
		return p.PMS
	default:
		return p.Follicular
	}
}

// GiftTexts has one list per gift category.
type GiftTexts struct {
	Flowers    []string `yaml:"flowers"`
	Alcohol    []string `yaml:"alcohol"`
	Books      []string `yaml:"books"`
	Places     []string `yaml:"places"`
	Clothes    []string `yaml:"clothes"`
	Jewelry    []string `yaml:"jewelry"`
	Cosmetics  []string `yaml:"cosmetics"`
	Hobbies    []string `yaml:"hobbies"`
	Sports     []string `yaml:"sports"`
	Music      []string `yaml:"music"`
	Movies     []string `yaml:"movies"`
	Food       []string `yaml:"food"`
	Travel     []string `yaml:"travel"`
	Technology []string `yaml:"technology"`
	Art        []string `yaml:"art"`
}

// For returns the ideas for category, or nil for an unknown category.
func (g GiftTexts) For(category model.GiftCategory) []string {
	switch category {
	case model.GiftFlowers:
		return g.Flowers
	case model.GiftAlcohol:
		return g.Alcohol
	case model.GiftBooks:
		return g.Books
	case model.GiftPlaces:
		return g.Places
	case model.GiftClothes:
		return g.Clothes
	case model.GiftJewelry:
		return g.Jewelry
	case model.GiftCosmetics:
		return g.Cosmetics
	case model.GiftHobbies:
		return g.Hobbies
	case model.GiftSports:
		return g.Sports
	case model.GiftMusic:
		return g.Music
	case model.GiftMovies:
		return g.Movies
	case model.GiftFood:
		return g.Food
	case model.GiftTravel:
		return g.Travel
	case model.GiftTechnology:
		return g.Technology
	case model.GiftArt:
		return g.Art
	default:
		return nil
	}
}

// Catalog is a parsed set of tables. Immutable after Parse.
type Catalog struct {
	DailyTexts map[string][]string   `yaml:"daily"`
	CycleTexts map[string]PhaseTexts `yaml:"cycle"`
	GiftIdeas  map[string]GiftTexts  `yaml:"gifts"`
}

var defaultCatalog = sync.OnceValues(func() (*Catalog, error) {
	return Parse(embedded)
})

// Default returns the embedded catalog. Panics if the embedded file is
// invalid, which the package tests rule out.
func Default() *Catalog {
	c, err := defaultCatalog()
	if err != nil {
		panic(fmt.Sprintf("embedded catalog: %v", err))
	}
	return c
}

// Load reads and parses a catalog file.
// Returns an error if the file doesn't exist, is malformed, contains unknown
// fields, or is missing a table.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates catalog YAML.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog YAML: %w", err)
	}
	if err := validate(&c); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return &c, nil
}

func validate(c *Catalog) error {
	if len(c.DailyTexts[FallbackLanguage]) == 0 {
		return fmt.Errorf("daily.%s is required and must be non-empty", FallbackLanguage)
	}
	if _, ok := c.CycleTexts[FallbackLanguage]; !ok {
		return fmt.Errorf("cycle.%s is required", FallbackLanguage)
	}
	if _, ok := c.GiftIdeas[FallbackLanguage]; !ok {
		return fmt.Errorf("gifts.%s is required", FallbackLanguage)
	}

	for _, lang := range sortedKeys(c.DailyTexts) {
		if err := checkLanguage(lang); err != nil {
			return fmt.Errorf("daily: %w", err)
		}
		if len(c.DailyTexts[lang]) == 0 {
			return fmt.Errorf("daily.%s must be non-empty", lang)
		}
	}
	for _, lang := range sortedKeys(c.CycleTexts) {
		if err := checkLanguage(lang); err != nil {
			return fmt.Errorf("cycle: %w", err)
		}
		texts := c.CycleTexts[lang]
		for _, phase := range model.SuggestionPhases {
			if len(texts.For(phase)) == 0 {
				return fmt.Errorf("cycle.%s.%s must be non-empty", lang, phase)
			}
		}
	}
	for _, lang := range sortedKeys(c.GiftIdeas) {
		if err := checkLanguage(lang); err != nil {
			return fmt.Errorf("gifts: %w", err)
		}
		ideas := c.GiftIdeas[lang]
		for _, category := range model.GiftCategories {
			if len(ideas.For(category)) == 0 {
				return fmt.Errorf("gifts.%s.%s must be non-empty", lang, category)
			}
		}
	}
	return nil
}

func checkLanguage(lang string) error {
	canonical, err := model.ParseLanguage(lang)
	if err != nil {
		return err
	}
	if canonical != lang {
		return fmt.Errorf("language key %q must be written as %q", lang, canonical)
	}
	return nil
}

// Daily returns the daily suggestion texts for lang, falling back to English.
func (c *Catalog) Daily(lang string) []string {
	if texts, ok := c.DailyTexts[lang]; ok {
		return slices.Clone(texts)
	}
	return slices.Clone(c.DailyTexts[FallbackLanguage])
}

// Cycle returns the cycle suggestion texts for lang and phase, falling back
// to English.
func (c *Catalog) Cycle(lang string, phase model.SuggestionPhase) []string {
	texts, ok := c.CycleTexts[lang]
	if !ok {
		texts = c.CycleTexts[FallbackLanguage]
	}
	return slices.Clone(texts.For(phase))
}

// Gifts returns the gift ideas for lang and category, falling back to
// English.
func (c *Catalog) Gifts(lang string, category model.GiftCategory) []string {
	ideas, ok := c.GiftIdeas[lang]
	if !ok {
		ideas = c.GiftIdeas[FallbackLanguage]
	}
	return slices.Clone(ideas.For(category))
}

// Languages returns every language with a daily table, sorted.
func (c *Catalog) Languages() []string {
	return sortedKeys(c.DailyTexts)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
