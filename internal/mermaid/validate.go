// Package mermaid checks, repairs and extracts Mermaid class-diagram scripts.
package mermaid

import (
	"errors"
	"regexp"
	"strings"
)

const (
	// Directive opens every class diagram.
	Directive = "classDiagram"

	// Placeholder replaces any script that could not be produced or repaired.
	Placeholder = "classDiagram\n    class Error {\n        +message : String\n    }"

	ValidReason = "Valid syntax"
)

var (
	ErrEmptyInput       = errors.New("empty mermaid code")
	ErrMissingDirective = errors.New("missing classDiagram directive")
	ErrNoClasses        = errors.New("no class definitions")
	ErrMalformedClass   = errors.New("malformed class definition")
)

// reasons are the messages shown next to a rejected script.
var reasons = map[error]string{
	ErrEmptyInput:       "Empty Mermaid code",
	ErrMissingDirective: "Must start with 'classDiagram'",
	ErrNoClasses:        "No class definitions found",
	ErrMalformedClass:   "Invalid class definition syntax",
}

var classBlockRe = regexp.MustCompile(`class\s+\w+\s*{`)

// Result is the outcome of Validate. Err is nil when OK is true.
type Result struct {
	OK     bool
	Reason string
	Err    error
}

// Validate applies the syntax rules in order and stops at the first failure.
func Validate(script string) Result {
	trimmed := strings.TrimSpace(script)
	if trimmed == "" {
		return fail(ErrEmptyInput)
	}

	lower := strings.ToLower(trimmed)
	if !strings.HasPrefix(lower, strings.ToLower(Directive)) {
		return fail(ErrMissingDirective)
	}
	if !strings.Contains(lower, "class") {
		return fail(ErrNoClasses)
	}
	if !classBlockRe.MatchString(lower) {
		return fail(ErrMalformedClass)
	}
	return Result{OK: true, Reason: ValidReason}
}

// IsValid is Validate reduced to the (ok, reason) pair shown to users.
func IsValid(script string) (bool, string) {
	res := Validate(script)
	return res.OK, res.Reason
}

func fail(err error) Result {
	return Result{Reason: reasons[err], Err: err}
}
