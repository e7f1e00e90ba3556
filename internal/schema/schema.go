// Package schema checks a decoded state document against the CUE
// definition of the persisted format.
//
// The Go types in internal/model are what the application reads and writes;
// this schema describes the JSON document itself, so `beloved doctor` can
// report exactly which field of a blob is out of shape before anything is
// decoded into Go values.
package schema

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
)

//go:embed state.cue
var stateCUE string

// Definition is the CUE path of the root document definition.
const Definition = "#ApplicationState"

// Issue is one schema violation.
type Issue struct {
	// Path is the dotted path of the offending field, "" for the root.
	Path    string
	Message string
}

func (i Issue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return fmt.Sprintf("%s: %s", i.Path, i.Message)
}

// Error lists every schema violation of a document.
type Error struct {
	Issues []Issue
}

func (e *Error) Error() string {
	msgs := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		msgs[i] = issue.String()
	}
	return "schema: " + strings.Join(msgs, "; ")
}

// Checker validates documents against the compiled definition.
//
// Thread-safety: cue.Context is not safe for concurrent use, so Check
// serializes callers.
type Checker struct {
	mu     sync.Mutex
	ctx    *cue.Context
	schema cue.Value
}

// New compiles the embedded schema.
func New() (*Checker, error) {
	ctx := cuecontext.New()
	v := ctx.CompileString(stateCUE, cue.Filename("state.cue"))
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("compile state schema: %w", err)
	}
	def := v.LookupPath(cue.ParsePath(Definition))
	if err := def.Err(); err != nil {
		return nil, fmt.Errorf("lookup %s: %w", Definition, err)
	}
	return &Checker{ctx: ctx, schema: def}, nil
}

// Check validates a JSON document. Returns nil, a *Error listing the
// violations, or a plain error when doc is not JSON at all.
func (c *Checker) Check(doc []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data := c.ctx.CompileBytes(doc, cue.Filename("state.json"))
	if err := data.Err(); err != nil {
		return fmt.Errorf("parse document: %w", err)
	}

	unified := c.schema.Unify(data)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return &Error{Issues: issues(err)}
	}
	return nil
}

// Source returns the embedded CUE text.
func Source() string {
	return stateCUE
}

func issues(err error) []Issue {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return []Issue{{Message: err.Error()}}
	}

	seen := make(map[string]bool, len(errs))
	out := make([]Issue, 0, len(errs))
	for _, e := range errs {
		format, args := e.Msg()
		issue := Issue{
			Path:    strings.Join(e.Path(), "."),
			Message: fmt.Sprintf(format, args...),
		}
		key := issue.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, issue)
	}
	return out
}
