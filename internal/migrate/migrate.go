// Package migrate upgrades a decoded state document to the current schema.
//
// Migrations are an ordered list of steps, each tagged with the schema
// version it introduces. A step runs only when the document's schemaVersion
// is below the step's version, and every step checks for presence before
// writing, so applying the list twice is the same as applying it once.
//
// Steps are additive: they backfill fields that did not exist when the
// document was first persisted. They never remove, rename or rewrite a field
// that is already present. A null value counts as absent. A preference
// category missing from the preferences object reads as disabled, so
// existing preferences are never filled in.
package migrate

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Document is the raw decoded state: top-level field name to JSON value.
// Fields unknown to the current schema pass through untouched.
type Document map[string]json.RawMessage

// Step is one schema upgrade.
type Step struct {
	// Version is the schemaVersion this step introduces.
	Version int

	// Description says what the step backfills. Shown by `beloved doctor`.
	Description string

	// Apply backfills the step's fields in place.
	Apply func(Document) error
}

var (
	emptyList   = json.RawMessage("[]")
	emptyObject = json.RawMessage("{}")
)

// Steps is the ordered migration list. Versions are strictly increasing and
// the last one equals model.SchemaVersion.
var Steps = []Step{
	{
		Version:     1,
		Description: "backfill cycleSuggestions and importantEvents",
		Apply: func(doc Document) error {
			doc.setDefault("cycleSuggestions", emptyList)
			doc.setDefault("importantEvents", emptyList)
			return nil
		},
	},
	{
		Version:     2,
		Description: "backfill partnerNotes",
		Apply: func(doc Document) error {
			doc.setDefault("partnerNotes", emptyList)
			return nil
		},
	},
	{
		Version:     3,
		Description: "backfill preferences as an empty object",
		Apply: func(doc Document) error {
			doc.setDefault("preferences", emptyObject)
			return nil
		},
	},
}

// Latest returns the schema version the last step produces.
func Latest() int {
	return Steps[len(Steps)-1].Version
}

// Result reports what Apply did.
type Result struct {
	From    int
	To      int
	Applied []int
}

// Changed reports whether any step ran.
func (r Result) Changed() bool {
	return len(r.Applied) > 0
}

// Apply runs every step newer than the document's schemaVersion, in order,
// then stamps the document with Latest(). A document already at or beyond
// Latest() is left unchanged; the version never moves backwards.
func Apply(doc Document) (Result, error) {
	from, err := doc.Version()
	if err != nil {
		return Result{}, err
	}

	res := Result{From: from, To: from}
	for _, step := range Steps {
		if from >= step.Version {
			continue
		}
		if err := step.Apply(doc); err != nil {
			return res, fmt.Errorf("migrate to v%d (%s): %w", step.Version, step.Description, err)
		}
		res.Applied = append(res.Applied, step.Version)
		res.To = step.Version
	}

	if res.Changed() {
		doc["schemaVersion"] = json.RawMessage(fmt.Sprintf("%d", res.To))
	}
	return res, nil
}

// Parse decodes a plaintext document. The top level must be a JSON object.
func Parse(plaintext []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(plaintext, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("document is null")
	}
	return doc, nil
}

// Marshal encodes the document back to JSON. Keys come out sorted.
func (d Document) Marshal() ([]byte, error) {
	return json.Marshal(map[string]json.RawMessage(d))
}

// Version returns the document's schemaVersion. Absent or null means 0,
// the shape written before versioning existed.
func (d Document) Version() (int, error) {
	raw, ok := d.present("schemaVersion")
	if !ok {
		return 0, nil
	}
	var v int
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, fmt.Errorf("schemaVersion: %w", err)
	}
	if v < 0 {
		return 0, fmt.Errorf("schemaVersion: negative value %d", v)
	}
	return v, nil
}

// Has reports whether field is present and not null.
func (d Document) Has(field string) bool {
	_, ok := d.present(field)
	return ok
}

func (d Document) present(field string) (json.RawMessage, bool) {
	raw, ok := d[field]
	if !ok || isNull(raw) {
		return nil, false
	}
	return raw, true
}

func (d Document) setDefault(field string, value json.RawMessage) {
	if d.Has(field) {
		return
	}
	d[field] = value
}

func isNull(raw json.RawMessage) bool {
	return len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
