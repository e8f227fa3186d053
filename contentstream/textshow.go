package contentstream

import (
	"strings"

	"github.com/tsawler/sigil/core"
)

// TextShow is one candidate text run pulled from a content stream: the text
// an operator paints and the operator that painted it.
type TextShow struct {
	Text     string
	Operator string
}

// TextShows extracts the text painted by text-show operators, in stream
// order. It understands:
//
//	Tj - show a string
//	TJ - show an array of strings and positioning numbers
//	'  - move to next line and show a string
//	"  - set word/char spacing, move to next line, show a string
//
// Runs that paint no text (empty strings, arrays of pure positioning
// numbers) are omitted.
func TextShows(ops []Operation) []TextShow {
	var shows []TextShow

	for _, op := range ops {
		switch op.Operator {
		case "Tj", "'":
			if s, ok := lastString(op.Operands); ok && s != "" {
				shows = append(shows, TextShow{Text: s, Operator: op.Operator})
			}
		case "\"":
			// Operands are: aw ac string
			if s, ok := lastString(op.Operands); ok && s != "" {
				shows = append(shows, TextShow{Text: s, Operator: op.Operator})
			}
		case "TJ":
			if len(op.Operands) == 0 {
				continue
			}
			arr, ok := op.Operands[len(op.Operands)-1].(core.Array)
			if !ok {
				continue
			}
			var b strings.Builder
			for _, elem := range arr {
				if s, ok := elem.(core.String); ok {
					b.WriteString(string(s))
				}
			}
			if b.Len() > 0 {
				shows = append(shows, TextShow{Text: b.String(), Operator: "TJ"})
			}
		}
	}

	return shows
}

// lastString returns the final operand as a string, if it is one.
func lastString(operands []core.Object) (string, bool) {
	if len(operands) == 0 {
		return "", false
	}
	s, ok := operands[len(operands)-1].(core.String)
	return string(s), ok
}
