package sigil

import (
	"fmt"
	"strings"
)

// Code classifies a warning by the stage that produced it.
type Code string

const (
	WarnSidecar     Code = "sidecar"
	WarnExtract     Code = "extract"
	WarnMetadata    Code = "metadata"
	WarnNode        Code = "node"
	WarnCorrelation Code = "correlation"
	WarnVerify      Code = "verify"
)

// Warning is a non-fatal problem accumulated during a session. Page is the
// zero-based page index, or -1 when the warning is not page-scoped.
type Warning struct {
	Code    Code
	Page    int
	Message string
}

func (w Warning) String() string {
	if w.Page < 0 {
		return fmt.Sprintf("[%s] %s", w.Code, w.Message)
	}
	return fmt.Sprintf("[%s] page %d: %s", w.Code, w.Page, w.Message)
}

// FormatWarnings renders a warning list one per line for logging.
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}
