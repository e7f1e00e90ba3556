package model

// Phase is a stage of the menstrual cycle.
type Phase string

const (
	PhaseMenstrual  Phase = "menstrual"
	PhaseFollicular Phase = "follicular"
	PhaseOvulation  Phase = "ovulation"
	PhaseLuteal     Phase = "luteal"
)

// Phases lists every Phase in cycle order.
var Phases = []Phase{PhaseMenstrual, PhaseFollicular, PhaseOvulation, PhaseLuteal}

// Valid reports whether p is a known phase.
func (p Phase) Valid() bool {
	switch p {
	case PhaseMenstrual, PhaseFollicular, PhaseOvulation, PhaseLuteal:
		return true
	}
	return false
}

// SuggestionPhase tags a cycle suggestion. It is a Phase plus the PMS window,
// which overrides the phase for suggestion purposes.
type SuggestionPhase string

const (
	SuggestionMenstrual  SuggestionPhase = "menstrual"
	SuggestionFollicular SuggestionPhase = "follicular"
	SuggestionOvulation  SuggestionPhase = "ovulation"
	SuggestionLuteal     SuggestionPhase = "luteal"
	SuggestionPMS        SuggestionPhase = "pms"
)

// SuggestionPhases lists every SuggestionPhase.
var SuggestionPhases = []SuggestionPhase{
	SuggestionMenstrual, SuggestionFollicular, SuggestionOvulation, SuggestionLuteal, SuggestionPMS,
}

// Valid reports whether p is a known suggestion phase.
func (p SuggestionPhase) Valid() bool {
	switch p {
	case SuggestionMenstrual, SuggestionFollicular, SuggestionOvulation, SuggestionLuteal, SuggestionPMS:
		return true
	}
	return false
}

// EventKind classifies an important event.
type EventKind string

const (
	KindBirthday    EventKind = "birthday"
	KindAnniversary EventKind = "anniversary"
	KindFirstKiss   EventKind = "firstKiss"
	KindFirstDance  EventKind = "firstDance"
	KindFirstDate   EventKind = "firstDate"
	KindCustom      EventKind = "custom"
)

// EventKinds lists every EventKind.
var EventKinds = []EventKind{KindBirthday, KindAnniversary, KindFirstKiss, KindFirstDance, KindFirstDate, KindCustom}

// Valid reports whether k is a known event kind.
func (k EventKind) Valid() bool {
	switch k {
	case KindBirthday, KindAnniversary, KindFirstKiss, KindFirstDance, KindFirstDate, KindCustom:
		return true
	}
	return false
}

// Theme is the display theme.
type Theme string

const (
	ThemeLight      Theme = "light"
	ThemeDark       Theme = "dark"
	ThemeColorblind Theme = "colorblind"
)

// Themes lists every Theme.
var Themes = []Theme{ThemeLight, ThemeDark, ThemeColorblind}

// Valid reports whether t is a known theme.
func (t Theme) Valid() bool {
	switch t {
	case ThemeLight, ThemeDark, ThemeColorblind:
		return true
	}
	return false
}

// GiftCategory is a key of the preferences map.
// The set is closed: categories are never added or removed at runtime.
type GiftCategory string

const (
	GiftFlowers    GiftCategory = "flowers"
	GiftAlcohol    GiftCategory = "alcohol"
	GiftBooks      GiftCategory = "books"
	GiftPlaces     GiftCategory = "places"
	GiftClothes    GiftCategory = "clothes"
	GiftJewelry    GiftCategory = "jewelry"
	GiftCosmetics  GiftCategory = "cosmetics"
	GiftHobbies    GiftCategory = "hobbies"
	GiftSports     GiftCategory = "sports"
	GiftMusic      GiftCategory = "music"
	GiftMovies     GiftCategory = "movies"
	GiftFood       GiftCategory = "food"
	GiftTravel     GiftCategory = "travel"
	GiftTechnology GiftCategory = "technology"
	GiftArt        GiftCategory = "art"
)

// GiftCategories lists every GiftCategory in display order.
var GiftCategories = []GiftCategory{
	GiftFlowers, GiftAlcohol, GiftBooks, GiftPlaces, GiftClothes,
	GiftJewelry, GiftCosmetics, GiftHobbies, GiftSports, GiftMusic,
	GiftMovies, GiftFood, GiftTravel, GiftTechnology, GiftArt,
}

// Valid reports whether c is a known gift category.
func (c GiftCategory) Valid() bool {
	for _, known := range GiftCategories {
		if c == known {
			return true
		}
	}
	return false
}
