package feature

import (
	"context"
	"slices"

	"github.com/roach88/beloved/internal/model"
)

// EventListLimit bounds the upcoming and past event lists.
const EventListLimit = 5

// AddEvent records an important event. The collection stays sorted by date,
// earliest first. An empty kind means custom.
func (s *Service) AddEvent(ctx context.Context, label, date string, kind model.EventKind) (model.ImportantEvent, error) {
	label = cleanText(label)
	if label == "" {
		return model.ImportantEvent{}, &InputError{Field: "label", Message: "label is required"}
	}
	d, err := model.ParseDate(cleanText(date))
	if err != nil {
		return model.ImportantEvent{}, &InputError{Field: "date", Message: err.Error()}
	}
	if kind == "" {
		kind = model.KindCustom
	}
	if !kind.Valid() {
		return model.ImportantEvent{}, &InputError{Field: "kind", Message: "unknown event kind " + string(kind)}
	}

	var added model.ImportantEvent
	_, err = s.store.Update(ctx, func(st *model.State) error {
		added = model.ImportantEvent{ID: s.ids.NewID(), Label: label, Date: d, Kind: kind}
		st.ImportantEvents = append(st.ImportantEvents, added)
		slices.SortStableFunc(st.ImportantEvents, func(a, b model.ImportantEvent) int {
			return a.Date.Compare(b.Date)
		})
		return nil
	})
	return keep(added, err)
}

// DeleteEvent removes an important event by id.
func (s *Service) DeleteEvent(ctx context.Context, id string) error {
	_, err := s.store.Update(ctx, func(st *model.State) error {
		before := len(st.ImportantEvents)
		st.ImportantEvents = slices.DeleteFunc(st.ImportantEvents, func(e model.ImportantEvent) bool { return e.ID == id })
		if len(st.ImportantEvents) == before {
			return notFound("event", id)
		}
		return nil
	})
	return err
}

// UpcomingEvents returns up to EventListLimit events on or after today,
// soonest first.
func UpcomingEvents(st model.State, today model.Date) []model.ImportantEvent {
	var out []model.ImportantEvent
	for _, e := range st.ImportantEvents {
		if !e.Date.Before(today) {
			out = append(out, e)
		}
	}
	slices.SortStableFunc(out, func(a, b model.ImportantEvent) int { return a.Date.Compare(b.Date) })
	return out[:min(len(out), EventListLimit)]
}

// PastEvents returns up to EventListLimit events before today, most recent
// first.
func PastEvents(st model.State, today model.Date) []model.ImportantEvent {
	var out []model.ImportantEvent
	for _, e := range st.ImportantEvents {
		if e.Date.Before(today) {
			out = append(out, e)
		}
	}
	slices.SortStableFunc(out, func(a, b model.ImportantEvent) int { return b.Date.Compare(a.Date) })
	return out[:min(len(out), EventListLimit)]
}
