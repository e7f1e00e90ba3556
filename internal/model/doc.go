// Package model defines the ApplicationState aggregate persisted by beloved.
//
// This package contains type definitions, the default state and invariant
// validation. All other internal packages import model; model imports nothing
// internal. This keeps the aggregate the foundational layer with no circular
// dependencies.
//
// Key design constraints:
//   - The aggregate is always read and written as a whole (no partial updates)
//   - Dates are civil calendar dates, serialized as ISO "2006-01-02" strings
//   - JSON tags use camelCase to match the persisted document
//   - Enumerations are closed: unknown values fail validation
package model
