package correlate

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/sigil/contentstream"
	"github.com/tsawler/sigil/core"
	"github.com/tsawler/sigil/document"
	"github.com/tsawler/sigil/model"
	"github.com/tsawler/sigil/structtree"
)

// prefixLen is how many characters of a candidate the fallback prefix
// comparison uses.
const prefixLen = 10

// Warning records a page-scoped correlation problem.
type Warning struct {
	Page    int
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("page %d: %s", w.Page, w.Message)
}

// Correlator assigns marked-content ids for one export session. Not safe
// for concurrent use; one correlator per session.
type Correlator struct {
	doc     document.Document
	builder *structtree.Builder
	next    int
}

// New creates a correlator with a fresh MCID counter.
func New(doc document.Document, builder *structtree.Builder) *Correlator {
	return &Correlator{doc: doc, builder: builder}
}

// Assigned returns how many MCIDs this session has allocated so far.
func (c *Correlator) Assigned() int {
	return c.next
}

// CorrelatePage correlates one page's text positions with the nodes created
// for its elements. Every position anchored to a known element id links
// directly, with no text comparison; content-stream text runs are then
// fuzzy-matched against whatever positions remain, in stream order. Runs
// that resolve nothing are skipped. A page with no readable content stream
// produces zero references and one warning.
func (c *Correlator) CorrelatePage(page int, positions []model.TextPosition, nodes map[string]*structtree.Node) ([]model.ContentRef, []Warning) {
	data, err := c.doc.PageContents(page)
	if err != nil {
		return nil, []Warning{{Page: page, Message: fmt.Sprintf("content stream unreadable: %v", err)}}
	}
	if len(data) == 0 {
		return nil, []Warning{{Page: page, Message: "no content stream"}}
	}

	ops, err := contentstream.NewParser(data).Parse()
	if err != nil {
		return nil, []Warning{{Page: page, Message: fmt.Sprintf("content stream unparseable: %v", err)}}
	}

	var refs []model.ContentRef
	var warnings []Warning
	consumed := make([]bool, len(positions))

	// Direct strategy: the position's own element id resolves the node.
	for i, pos := range positions {
		node, ok := nodes[pos.ElementID]
		if !ok {
			continue
		}
		ref, err := c.link(page, node)
		if err != nil {
			warnings = append(warnings, Warning{Page: page, Message: err.Error()})
			continue
		}
		consumed[i] = true
		refs = append(refs, ref)
	}

	// Fuzzy fallback over the stream's text runs for the rest.
	for _, show := range contentstream.TextShows(ops) {
		idx := matchPosition(show.Text, positions, consumed)
		if idx < 0 {
			continue
		}
		node, ok := nodes[positions[idx].ElementID]
		if !ok {
			continue
		}
		consumed[idx] = true

		ref, err := c.link(page, node)
		if err != nil {
			warnings = append(warnings, Warning{Page: page, Message: err.Error()})
			continue
		}
		refs = append(refs, ref)
	}

	return refs, warnings
}

// link allocates the next MCID and appends a marked-content reference to
// the node's children.
func (c *Correlator) link(page int, node *structtree.Node) (model.ContentRef, error) {
	mcid := c.next
	mcr := core.Dict{
		"Type": core.Name("MCR"),
		"Pg":   core.Int(page),
		"MCID": core.Int(mcid),
	}
	if err := c.builder.AppendChild(node, mcr); err != nil {
		return model.ContentRef{}, err
	}
	c.next++
	return model.ContentRef{Page: page, MCID: mcid}, nil
}

// matchPosition finds the position a candidate text run belongs to. Exact
// text equality wins; otherwise normalized containment in either direction,
// then the candidate's first characters contained anywhere in the stored
// text. Returns -1 when nothing matches. Consumed positions are passed over so repeated text
// advances through its occurrences.
func matchPosition(candidate string, positions []model.TextPosition, consumed []bool) int {
	for i, pos := range positions {
		if !consumed[i] && pos.Text == candidate {
			return i
		}
	}

	cand := normalizeText(candidate)
	if cand == "" {
		return -1
	}

	for i, pos := range positions {
		if consumed[i] {
			continue
		}
		stored := normalizeText(pos.Text)
		if stored == "" {
			continue
		}
		if strings.Contains(stored, cand) || strings.Contains(cand, stored) {
			return i
		}
	}

	if len([]rune(cand)) > 3 {
		prefix := cand
		if runes := []rune(cand); len(runes) > prefixLen {
			prefix = string(runes[:prefixLen])
		}
		for i, pos := range positions {
			if consumed[i] {
				continue
			}
			if strings.Contains(normalizeText(pos.Text), prefix) {
				return i
			}
		}
	}

	return -1
}

// normalizeText prepares text for fuzzy comparison: trim surrounding
// whitespace, drop the parenthesis and backslash characters text-show
// operators wrap literals in, and fold to NFC so composed and decomposed
// accents compare equal.
func normalizeText(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Map(func(r rune) rune {
		switch r {
		case '(', ')', '\\':
			return -1
		}
		return r
	}, s)
	return norm.NFC.String(s)
}
