package model

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/language"
)

var pinPattern = regexp.MustCompile(`^\d{4}$`)

// SupportedLanguages lists the locale tags the application ships labels for.
// "tw" is kept verbatim as the Traditional Chinese tag used by older data.
var SupportedLanguages = []string{"en", "pl", "es", "de", "ja", "zh", "tw"}

// Violation describes one broken invariant.
type Violation struct {
	Field   string
	Message string
}

func (v Violation) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

// ValidationError lists every invariant a state breaks.
// Returned by Validate; never empty.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.Error()
	}
	return "invalid state: " + strings.Join(msgs, "; ")
}

// IsValidationError returns true if err is or wraps a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("pin", func(fl validator.FieldLevel) bool {
			return ValidPIN(fl.Field().String())
		})
		_ = validate.RegisterValidation("locale", func(fl validator.FieldLevel) bool {
			_, err := ParseLanguage(fl.Field().String())
			return err == nil
		})
	})
	return validate
}

// ValidPIN reports whether pin is exactly four ASCII digits.
func ValidPIN(pin string) bool {
	return pinPattern.MatchString(pin)
}

// ParseLanguage checks that tag is a supported locale and returns its
// canonical form. Matching is case-insensitive ("PL" -> "pl").
func ParseLanguage(tag string) (string, error) {
	lower := strings.ToLower(strings.TrimSpace(tag))
	if lower == "tw" {
		return lower, nil
	}
	parsed, err := language.Parse(lower)
	if err != nil {
		return "", fmt.Errorf("invalid language tag %q: %w", tag, err)
	}
	base, _ := parsed.Base()
	for _, supported := range SupportedLanguages {
		if base.String() == supported {
			return supported, nil
		}
	}
	return "", fmt.Errorf("unsupported language %q: must be one of %v", tag, SupportedLanguages)
}

// Validate checks every invariant of the aggregate.
//
// Struct-level rules (enumerations, bounds, id uniqueness, pin format) are
// declared as validator tags on the types; cross-field rules are checked
// here. Returns nil or a *ValidationError listing all violations.
func Validate(s State) error {
	var violations []Violation

	if err := structValidator().Struct(s); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("validate state: %w", err)
		}
		for _, fe := range fieldErrs {
			violations = append(violations, Violation{
				Field:   strings.TrimPrefix(fe.Namespace(), "State."),
				Message: describeTag(fe),
			})
		}
	}

	violations = append(violations, checkHistory(s.Cycle)...)
	violations = append(violations, checkPreferences(s.Preferences)...)
	violations = append(violations, checkDates(s)...)

	if len(violations) == 0 {
		return nil
	}
	return &ValidationError{Violations: violations}
}

// checkHistory enforces strictly descending order. The length bound is a tag.
func checkHistory(c CycleData) []Violation {
	var out []Violation
	for i, d := range c.History {
		if d.IsZero() {
			out = append(out, Violation{Field: fmt.Sprintf("Cycle.History[%d]", i), Message: "date is required"})
			continue
		}
		if i > 0 && !d.Before(c.History[i-1]) {
			out = append(out, Violation{
				Field:   fmt.Sprintf("Cycle.History[%d]", i),
				Message: fmt.Sprintf("history must be strictly descending (%s follows %s)", d, c.History[i-1]),
			})
		}
	}
	if c.NextEventDate.IsZero() {
		out = append(out, Violation{Field: "Cycle.NextEventDate", Message: "date is required"})
	}
	return out
}

// checkPreferences rejects keys outside the closed category set.
// Missing keys are tolerated and read as false.
func checkPreferences(p Preferences) []Violation {
	var out []Violation
	for key := range p {
		if !key.Valid() {
			out = append(out, Violation{Field: "Preferences." + string(key), Message: "unknown gift category"})
		}
	}
	return out
}

func checkDates(s State) []Violation {
	var out []Violation
	for i, e := range s.ImportantEvents {
		if e.Date.IsZero() {
			out = append(out, Violation{Field: fmt.Sprintf("ImportantEvents[%d].Date", i), Message: "date is required"})
		}
	}
	for i, d := range s.DailySuggestions {
		if d.DateIssued.IsZero() {
			out = append(out, Violation{Field: fmt.Sprintf("DailySuggestions[%d].DateIssued", i), Message: "date is required"})
		}
	}
	return out
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "value is required"
	case "pin":
		return "pin must be exactly 4 digits"
	case "locale":
		return fmt.Sprintf("unsupported language %q", fe.Value())
	case "oneof":
		return fmt.Sprintf("%q is not one of [%s]", fe.Value(), fe.Param())
	case "unique":
		return fmt.Sprintf("%s values must be unique", fe.Param())
	case "max":
		return fmt.Sprintf("exceeds maximum of %s", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}
