package feature

import (
	"context"
	"slices"

	"github.com/roach88/beloved/internal/model"
)

// AddNote records a partner note, newest first.
func (s *Service) AddNote(ctx context.Context, title, content, category string) (model.PartnerNote, error) {
	title = cleanText(title)
	if title == "" {
		return model.PartnerNote{}, &InputError{Field: "title", Message: "title is required"}
	}

	var added model.PartnerNote
	_, err := s.store.Update(ctx, func(st *model.State) error {
		added = model.PartnerNote{
			ID:        s.ids.NewID(),
			Title:     title,
			Content:   cleanText(content),
			DateAdded: s.Today(),
			Category:  cleanText(category),
		}
		st.PartnerNotes = append([]model.PartnerNote{added}, st.PartnerNotes...)
		return nil
	})
	return keep(added, err)
}

// DeleteNote removes a partner note by id.
func (s *Service) DeleteNote(ctx context.Context, id string) error {
	_, err := s.store.Update(ctx, func(st *model.State) error {
		before := len(st.PartnerNotes)
		st.PartnerNotes = slices.DeleteFunc(st.PartnerNotes, func(n model.PartnerNote) bool { return n.ID == id })
		if len(st.PartnerNotes) == before {
			return notFound("note", id)
		}
		return nil
	})
	return err
}

// Notes returns the notes in category, newest first. An empty category
// returns all of them.
func Notes(st model.State, category string) []model.PartnerNote {
	category = cleanText(category)
	var out []model.PartnerNote
	for _, n := range st.PartnerNotes {
		if category == "" || n.Category == category {
			out = append(out, n)
		}
	}
	return out
}
