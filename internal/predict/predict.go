// Package predict derives cycle phase, mood window and the rolling average
// cycle length from recorded history.
//
// Every function is pure: for a fixed CycleData and today the result is
// always the same. Nothing here reads the clock or touches storage; callers
// pass today explicitly.
package predict

import (
	"slices"

	"github.com/roach88/beloved/internal/model"
)

// Phase boundaries, in day of cycle. Fixed constants of the model.
const (
	menstrualUntil  = 5
	follicularUntil = 13
	ovulationUntil  = 15
)

// Mood window bounds, in days until the next expected event.
const (
	pmsWindow       = 5
	menstrualWindow = 5
)

// Mood is the display tone derived from the days until the next event.
type Mood string

const (
	MoodPMS       Mood = "pms"
	MoodMenstrual Mood = "menstrual"
	MoodNeutral   Mood = "neutral"
)

// DaysBetween returns the whole civil days from `from` to `to`.
// Positive when to is after from.
func DaysBetween(from, to model.Date) int {
	return from.DaysUntil(to)
}

// DaysUntilNext returns the days from today to the next expected event.
// Negative once the expected date has passed.
func DaysUntilNext(cycle model.CycleData, today model.Date) int {
	return DaysBetween(today, cycle.NextEventDate)
}

// DayInCycle returns averageCycleLengthDays - daysUntil.
func DayInCycle(cycle model.CycleData, today model.Date) int {
	return cycle.AverageCycleLengthDays - DaysUntilNext(cycle, today)
}

// CurrentPhase returns the phase for today.
//
//	dayInCycle <= 5  -> menstrual
//	dayInCycle <= 13 -> follicular
//	dayInCycle <= 15 -> ovulation
//	otherwise        -> luteal
func CurrentPhase(cycle model.CycleData, today model.Date) model.Phase {
	day := DayInCycle(cycle, today)
	switch {
	case day <= menstrualUntil:
		return model.PhaseMenstrual
	case day <= follicularUntil:
		return model.PhaseFollicular
	case day <= ovulationUntil:
		return model.PhaseOvulation
	default:
		return model.PhaseLuteal
	}
}

// MoodWindow classifies daysUntil for display:
// 0 < daysUntil <= 5 is pms, -5 <= daysUntil <= 0 is menstrual.
func MoodWindow(daysUntil int) Mood {
	switch {
	case daysUntil > 0 && daysUntil <= pmsWindow:
		return MoodPMS
	case daysUntil <= 0 && daysUntil >= -menstrualWindow:
		return MoodMenstrual
	default:
		return MoodNeutral
	}
}

// SuggestionPhase is the tag cycle suggestions are chosen and recorded
// under: the PMS window overrides the current phase.
func SuggestionPhase(cycle model.CycleData, today model.Date) model.SuggestionPhase {
	if MoodWindow(DaysUntilNext(cycle, today)) == MoodPMS {
		return model.SuggestionPMS
	}
	switch CurrentPhase(cycle, today) {
	case model.PhaseMenstrual:
		return model.SuggestionMenstrual
	case model.PhaseOvulation:
		return model.SuggestionOvulation
	case model.PhaseLuteal:
		return model.SuggestionLuteal
	default:
		return model.SuggestionFollicular
	}
}

// Progress returns how far through the current cycle today is, as a
// percentage clamped to [0, 100].
func Progress(cycle model.CycleData, today model.Date) float64 {
	if cycle.AverageCycleLengthDays < 1 {
		return 0
	}
	avg := float64(cycle.AverageCycleLengthDays)
	p := (avg - float64(DaysUntilNext(cycle, today))) / avg * 100
	return min(max(p, 0), 100)
}

// RecordNewHistoryEntry adds newDate to the history and re-derives the
// stored values.
//
// The entry is inserted, duplicates collapse, the history is sorted most
// recent first and truncated to model.MaxHistory. With at least two entries
// the average becomes the rounded mean of the gaps between adjacent entries;
// with fewer it is left unchanged. The next event is history[0] + average
// and the phase is recomputed for today.
//
// Returns *InvalidDateError when newDate is not an ISO calendar date or lies
// after today. The input cycle is never modified.
func RecordNewHistoryEntry(cycle model.CycleData, newDate string, today model.Date) (model.CycleData, error) {
	date, err := model.ParseDate(newDate)
	if err != nil {
		return cycle, &InvalidDateError{Input: newDate, Reason: "not a calendar date (want YYYY-MM-DD)", Err: err}
	}
	if date.After(today) {
		return cycle, &InvalidDateError{Input: newDate, Reason: "date is in the future"}
	}

	history := make([]model.Date, 0, len(cycle.History)+1)
	history = append(history, cycle.History...)
	history = append(history, date)
	slices.SortFunc(history, func(a, b model.Date) int { return b.Compare(a) })
	history = slices.Compact(history)
	if len(history) > model.MaxHistory {
		history = history[:model.MaxHistory]
	}

	next := cycle
	next.History = history
	if avg, ok := AverageCycleLength(history); ok {
		next.AverageCycleLengthDays = avg
	}
	next.NextEventDate = history[0].AddDays(next.AverageCycleLengthDays)
	next.CurrentPhase = CurrentPhase(next, today)
	return next, nil
}

// AverageCycleLength returns the rounded mean gap in days between adjacent
// entries of a most-recent-first history. ok is false with fewer than two
// entries. Halves round up, so a mean of 28.5 gives 29.
func AverageCycleLength(history []model.Date) (avg int, ok bool) {
	if len(history) < 2 {
		return 0, false
	}
	sum := 0
	for i := 0; i < len(history)-1; i++ {
		sum += DaysBetween(history[i+1], history[i])
	}
	// Entries are distinct and descending, so every gap is positive.
	n := len(history) - 1
	avg = (2*sum + n) / (2 * n)
	return max(avg, 1), true
}
