package model

import "maps"

// Limits of the aggregate's bounded collections.
const (
	MaxHistory          = 12
	MaxDailySuggestions = 50
	DefaultCycleLength  = 28
	DefaultPIN          = "5566"
	DefaultLanguage     = "pl"
)

// State is the ApplicationState aggregate: the single root value persisted
// as one unit and always replaced as a whole.
type State struct {
	SchemaVersion    int               `json:"schemaVersion"`
	Cycle            CycleData         `json:"cycle"`
	Preferences      Preferences       `json:"preferences"`
	ImportantEvents  []ImportantEvent  `json:"importantEvents" validate:"unique=ID,dive"`
	DailySuggestions []DailySuggestion `json:"dailySuggestions" validate:"max=50,unique=ID,dive"`
	CycleSuggestions []CycleSuggestion `json:"cycleSuggestions" validate:"unique=ID,dive"`
	PartnerNotes     []PartnerNote     `json:"partnerNotes" validate:"unique=ID,dive"`
	Settings         Settings          `json:"settings"`
}

// CycleData is the recorded cycle history plus the values derived from it.
//
// AverageCycleLengthDays, CurrentPhase and NextEventDate are derived whenever
// a history entry is recorded. They are stored rather than recomputed on read.
type CycleData struct {
	// History holds cycle start dates, most recent first, at most MaxHistory.
	History                []Date `json:"history" validate:"max=12"`
	AverageCycleLengthDays int    `json:"averageCycleLengthDays" validate:"min=1"`
	CurrentPhase           Phase  `json:"currentPhase" validate:"oneof=menstrual follicular ovulation luteal"`
	NextEventDate          Date   `json:"nextEventDate"`
}

// Preferences maps every GiftCategory to whether it is enabled.
type Preferences map[GiftCategory]bool

// Enabled returns the enabled categories in GiftCategories order.
func (p Preferences) Enabled() []GiftCategory {
	var out []GiftCategory
	for _, c := range GiftCategories {
		if p[c] {
			out = append(out, c)
		}
	}
	return out
}

// ImportantEvent is a remembered date such as a birthday.
type ImportantEvent struct {
	ID    string    `json:"id" validate:"required"`
	Label string    `json:"label"`
	Date  Date      `json:"date"`
	Kind  EventKind `json:"kind" validate:"oneof=birthday anniversary firstKiss firstDance firstDate custom"`
}

// DailySuggestion is an issued suggestion. Rating 0 means unrated.
type DailySuggestion struct {
	ID         string `json:"id" validate:"required"`
	Text       string `json:"text"`
	DateIssued Date   `json:"dateIssued"`
	Rating     int    `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	IsFavorite bool   `json:"isFavorite,omitempty"`
	Category   string `json:"category,omitempty"`
}

// CycleSuggestion is a rated suggestion tagged with the phase it was shown in.
type CycleSuggestion struct {
	ID         string          `json:"id" validate:"required"`
	Text       string          `json:"text"`
	Phase      SuggestionPhase `json:"phase" validate:"oneof=menstrual follicular ovulation luteal pms"`
	Rating     int             `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	IsFavorite bool            `json:"isFavorite,omitempty"`
}

// PartnerNote is a free-form remembered wish.
type PartnerNote struct {
	ID        string `json:"id" validate:"required"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	DateAdded Date   `json:"dateAdded"`
	Category  string `json:"category"`
}

// Settings holds user settings.
type Settings struct {
	PIN      string `json:"pin" validate:"pin"`
	Language string `json:"language" validate:"locale"`
	Theme    Theme  `json:"theme" validate:"oneof=light dark colorblind"`
}

// Default returns the state created on first run.
// The next expected event is one default cycle length after today.
func Default(today Date) State {
	prefs := make(Preferences, len(GiftCategories))
	for _, c := range GiftCategories {
		prefs[c] = false
	}
	return State{
		SchemaVersion: SchemaVersion,
		Cycle: CycleData{
			History:                []Date{},
			AverageCycleLengthDays: DefaultCycleLength,
			CurrentPhase:           PhaseFollicular,
			NextEventDate:          today.AddDays(DefaultCycleLength),
		},
		Preferences:      prefs,
		ImportantEvents:  []ImportantEvent{},
		DailySuggestions: []DailySuggestion{},
		CycleSuggestions: []CycleSuggestion{},
		PartnerNotes:     []PartnerNote{},
		Settings: Settings{
			PIN:      DefaultPIN,
			Language: DefaultLanguage,
			Theme:    ThemeDark,
		},
	}
}

// Clone returns a deep copy of s. Callers may mutate the copy freely.
// Nil collections stay nil so Clone(x) is reflect.DeepEqual to x.
func (s State) Clone() State {
	out := s
	out.Cycle.History = cloneSlice(s.Cycle.History)
	out.Preferences = maps.Clone(s.Preferences)
	out.ImportantEvents = cloneSlice(s.ImportantEvents)
	out.DailySuggestions = cloneSlice(s.DailySuggestions)
	out.CycleSuggestions = cloneSlice(s.CycleSuggestions)
	out.PartnerNotes = cloneSlice(s.PartnerNotes)
	return out
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}
