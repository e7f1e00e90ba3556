package schema

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validDoc = `{
	"schemaVersion": 3,
	"cycle": {"history": ["2024-03-01", "2024-02-01"], "averageCycleLengthDays": 29, "currentPhase": "luteal", "nextEventDate": "2024-03-30"},
	"preferences": {"flowers": true, "art": false},
	"importantEvents": [{"id": "e1", "label": "Birthday", "date": "2024-06-01", "kind": "birthday"}],
	"dailySuggestions": [{"id": "d1", "text": "Make her coffee", "dateIssued": "2024-03-02", "rating": 5, "isFavorite": true}],
	"cycleSuggestions": [{"id": "c1", "text": "Bring chocolate", "phase": "pms", "rating": 4}],
	"partnerNotes": [{"id": "n1", "title": "Scarf", "content": "red", "dateAdded": "2024-01-01", "category": "clothes"}],
	"settings": {"pin": "5566", "language": "pl", "theme": "dark"}
}`

func newChecker(t *testing.T) *Checker {
	t.Helper()
	c, err := New()
	require.NoError(t, err)
	return c
}

func TestCheck_Valid(t *testing.T) {
	assert.NoError(t, newChecker(t).Check([]byte(validDoc)))
}

func TestCheck_Violations(t *testing.T) {
	tests := []struct {
		name    string
		replace [2]string
		path    string
	}{
		{"bad phase", [2]string{`"currentPhase": "luteal"`, `"currentPhase": "spring"`}, "cycle.currentPhase"},
		{"bad pin", [2]string{`"pin": "5566"`, `"pin": "55a6"`}, "settings.pin"},
		{"bad theme", [2]string{`"theme": "dark"`, `"theme": "neon"`}, "settings.theme"},
		{"unknown category", [2]string{`"art": false`, `"pets": false`}, "preferences.pets"},
		{"rating out of range", [2]string{`"rating": 5`, `"rating": 6`}, "dailySuggestions.0.rating"},
		{"average below one", [2]string{`"averageCycleLengthDays": 29`, `"averageCycleLengthDays": 0`}, "cycle.averageCycleLengthDays"},
		{"malformed date", [2]string{`"nextEventDate": "2024-03-30"`, `"nextEventDate": "30.03.2024"`}, "cycle.nextEventDate"},
		{"missing partnerNotes", [2]string{`"partnerNotes": [{"id": "n1", "title": "Scarf", "content": "red", "dateAdded": "2024-01-01", "category": "clothes"}],`, ``}, "partnerNotes"},
	}

	c := newChecker(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := strings.Replace(validDoc, tt.replace[0], tt.replace[1], 1)
			require.NotEqual(t, validDoc, doc, "replacement did not apply")

			err := c.Check([]byte(doc))
			require.Error(t, err)

			var se *Error
			require.True(t, errors.As(err, &se), "want *Error, got %T: %v", err, err)
			require.NotEmpty(t, se.Issues)

			var paths []string
			for _, issue := range se.Issues {
				paths = append(paths, issue.Path)
			}
			assert.Contains(t, paths, tt.path)
		})
	}
}

func TestCheck_EmptyTextFieldsAllowed(t *testing.T) {
	doc := strings.NewReplacer(
		`"label": "Birthday"`, `"label": ""`,
		`"text": "Make her coffee"`, `"text": ""`,
		`"text": "Bring chocolate"`, `"text": ""`,
		`"title": "Scarf"`, `"title": ""`,
	).Replace(validDoc)
	require.NotEqual(t, validDoc, doc)

	assert.NoError(t, newChecker(t).Check([]byte(doc)))
}

func TestCheck_HistoryBound(t *testing.T) {
	dates := make([]string, 13)
	for i := range dates {
		dates[i] = `"2023-01-01"`
	}
	doc := strings.Replace(validDoc, `["2024-03-01", "2024-02-01"]`, "["+strings.Join(dates, ",")+"]", 1)

	err := newChecker(t).Check([]byte(doc))
	var se *Error
	require.True(t, errors.As(err, &se), "want *Error, got %v", err)
}

func TestCheck_NotJSON(t *testing.T) {
	err := newChecker(t).Check([]byte(`{"schemaVersion": `))
	require.Error(t, err)

	var se *Error
	assert.False(t, errors.As(err, &se))
}

func TestSource(t *testing.T) {
	assert.Contains(t, Source(), Definition+":")
}
