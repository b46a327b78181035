package fieldflow

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError is a single field-level validation failure. It is always
// returned in a list, never raised: validation failures are expected,
// user-recoverable input problems.
type ValidationError struct {
	Path       string // dot/bracket formatted, e.g. "addresses.[0].postcode"
	Message    string // message fragment, e.g. "is required"
	FieldLabel string // resolved display label, e.g. "Postcode"
}

// String renders the error the way CLI and log output show it.
func (e ValidationError) String() string {
	return e.FieldLabel + " " + e.Message
}

// ValidationErrors is a collection of validation failures that implements
// error so layered callers (the record store, the CLI) can return it through
// an error value and recover it with AsValidationErrors.
type ValidationErrors []ValidationError

// Error summarizes the first few errors.
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(ve)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		e := ve[i]
		fmt.Fprintf(b, "%s %s at %s", e.FieldLabel, e.Message, e.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AsValidationErrors extracts ValidationErrors from an error using errors.As.
func AsValidationErrors(err error) (ValidationErrors, bool) {
	if err == nil {
		return nil, false
	}
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// PathResolutionError reports a path segment that cannot be matched against
// the schema tree. Unlike ValidationErrors it signals a configuration bug (a
// stale catalog entry, a UI path referencing a field the resolved variant
// does not carry), so callers other than label resolution and the section
// completion checker treat it as a hard failure.
type PathResolutionError struct {
	Path    Path   // the full requested path
	Segment string // the segment that failed to match, rendered
	Node    Kind   // the kind of the node the segment was applied to
}

func (e *PathResolutionError) Error() string {
	return fmt.Sprintf("fieldflow: cannot resolve segment %q of path %q against %s node", e.Segment, e.Path, e.Node)
}

// IsPathResolution reports whether err is (or wraps) a *PathResolutionError.
func IsPathResolution(err error) bool {
	var pe *PathResolutionError
	return errors.As(err, &pe)
}
