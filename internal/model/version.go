package model

// SchemaVersion is the version of the persisted document written by this
// build. It equals the version of the last migration step.
//
// Schema version history:
// 1 - Baseline document (cycle, preferences, events, suggestions, settings)
// 2 - Added partnerNotes
// 3 - Preferences carry every known gift category
const SchemaVersion = 3
