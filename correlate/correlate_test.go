package correlate

import (
	"errors"
	"strings"
	"testing"

	"github.com/tsawler/sigil/core"
	"github.com/tsawler/sigil/document"
	"github.com/tsawler/sigil/model"
	"github.com/tsawler/sigil/structtree"
)

func setup(t *testing.T, pages int) (*document.Memory, *structtree.Builder, *Correlator) {
	t.Helper()
	doc := document.NewMemory(pages)
	b := structtree.NewBuilder(doc)
	if err := b.InitRoot(); err != nil {
		t.Fatalf("InitRoot() error: %v", err)
	}
	return doc, b, New(doc, b)
}

func mustNode(t *testing.T, b *structtree.Builder, role string) *structtree.Node {
	t.Helper()
	node, err := b.CreateNode(role, structtree.Attrs{})
	if err != nil {
		t.Fatalf("CreateNode(%s) error: %v", role, err)
	}
	return node
}

func TestCorrelateDirectMatch(t *testing.T) {
	doc, b, c := setup(t, 1)
	doc.SetPageContents(0, []byte("BT /F1 12 Tf (Hello World) Tj ET"))

	node := mustNode(t, b, "P")
	positions := []model.TextPosition{
		{ElementID: "text_0_0", Text: "Hello World"},
	}
	nodes := map[string]*structtree.Node{"text_0_0": node}

	refs, warnings := c.CorrelatePage(0, positions, nodes)
	if len(warnings) != 0 {
		t.Fatalf("warnings = %v, want none", warnings)
	}
	if len(refs) != 1 {
		t.Fatalf("refs = %v, want one", refs)
	}
	if refs[0] != (model.ContentRef{Page: 0, MCID: 0}) {
		t.Errorf("ref = %+v", refs[0])
	}

	kids, _ := node.Dict.GetArray("K")
	if len(kids) != 1 {
		t.Fatalf("node children = %d, want one MCR", len(kids))
	}
	mcr := kids[0].(core.Dict)
	if typ, _ := mcr.GetName("Type"); typ != "MCR" {
		t.Errorf("child Type = %q, want MCR", typ)
	}
	if mcid, _ := mcr.GetInt("MCID"); mcid != 0 {
		t.Errorf("MCID = %d, want 0", mcid)
	}
	if pg, _ := mcr.GetInt("Pg"); pg != 0 {
		t.Errorf("Pg = %d, want 0", pg)
	}
}

func TestCorrelateDirectIgnoresStreamText(t *testing.T) {
	// CID and hex-encoded fonts paint text that never appears literally in
	// the stream; an anchored position still links to its node.
	doc, b, c := setup(t, 1)
	doc.SetPageContents(0, []byte("BT (zzz) Tj ET"))

	node := mustNode(t, b, "P")
	positions := []model.TextPosition{
		{ElementID: "text_0_0", Text: "Quarterly Results"},
	}
	nodes := map[string]*structtree.Node{"text_0_0": node}

	refs, warnings := c.CorrelatePage(0, positions, nodes)
	if len(warnings) != 0 {
		t.Fatalf("warnings = %v, want none", warnings)
	}
	if len(refs) != 1 {
		t.Fatalf("refs = %v, want one", refs)
	}

	kids, _ := node.Dict.GetArray("K")
	if len(kids) != 1 {
		t.Fatalf("node children = %d, want one MCR", len(kids))
	}
	if typ, _ := kids[0].(core.Dict).GetName("Type"); typ != "MCR" {
		t.Errorf("child Type = %q, want MCR", typ)
	}
}

func TestCorrelateMCIDsStrictlyIncreasing(t *testing.T) {
	doc, b, c := setup(t, 2)
	doc.SetPageContents(0, []byte("BT (alpha) Tj (beta) Tj ET"))
	doc.SetPageContents(1, []byte("BT (gamma) Tj ET"))

	nodes := map[string]*structtree.Node{
		"text_0_0": mustNode(t, b, "P"),
		"text_0_1": mustNode(t, b, "P"),
		"text_1_0": mustNode(t, b, "P"),
	}

	refs0, _ := c.CorrelatePage(0, []model.TextPosition{
		{ElementID: "text_0_0", Text: "alpha"},
		{ElementID: "text_0_1", Text: "beta"},
	}, nodes)
	refs1, _ := c.CorrelatePage(1, []model.TextPosition{
		{ElementID: "text_1_0", Text: "gamma"},
	}, nodes)

	all := append(append([]model.ContentRef{}, refs0...), refs1...)
	if len(all) != 3 {
		t.Fatalf("refs = %d, want 3", len(all))
	}
	seen := make(map[int]bool)
	for i, ref := range all {
		if ref.MCID != i {
			t.Errorf("ref %d MCID = %d, want %d", i, ref.MCID, i)
		}
		if seen[ref.MCID] {
			t.Errorf("MCID %d reused", ref.MCID)
		}
		seen[ref.MCID] = true
	}
	if c.Assigned() != 3 {
		t.Errorf("Assigned() = %d, want 3", c.Assigned())
	}
}

func TestCorrelateFuzzyContainment(t *testing.T) {
	// Candidate "(Hello)" matches stored "Hello World" once the text-show
	// wrapping is stripped.
	idx := matchPosition("(Hello)", []model.TextPosition{
		{ElementID: "text_0_0", Text: "Hello World"},
	}, make([]bool, 1))
	if idx != 0 {
		t.Errorf("matchPosition = %d, want 0", idx)
	}
}

func TestCorrelateFuzzyPrefix(t *testing.T) {
	positions := []model.TextPosition{
		{ElementID: "text_0_0", Text: "Introduction to the subject at hand"},
	}
	// Neither side contains the other; the first ten characters agree.
	idx := matchPosition("Introducti0n mangled by encoding", positions, make([]bool, 1))
	if idx != 0 {
		t.Errorf("matchPosition = %d, want prefix match", idx)
	}
}

func TestCorrelateFuzzyPrefixMidText(t *testing.T) {
	positions := []model.TextPosition{
		{ElementID: "text_0_0", Text: "Chapter 2: Introduction to the subject"},
	}
	// The candidate's first ten characters appear mid-text in the stored
	// run, not at its start.
	idx := matchPosition("Introducti0n mangled by encoding", positions, make([]bool, 1))
	if idx != 0 {
		t.Errorf("matchPosition = %d, want mid-text prefix match", idx)
	}
}

func TestCorrelateFuzzyNormalizesNFC(t *testing.T) {
	// Composed e-acute vs decomposed e + combining acute.
	positions := []model.TextPosition{
		{ElementID: "text_0_0", Text: "café menu"},
	}
	idx := matchPosition("café", positions, make([]bool, 1))
	if idx != 0 {
		t.Errorf("matchPosition = %d, want NFC-folded containment", idx)
	}
}

func TestCorrelateShortCandidateSkipsPrefix(t *testing.T) {
	positions := []model.TextPosition{
		{ElementID: "text_0_0", Text: "abcdefgh"},
	}
	if idx := matchPosition("abX", positions, make([]bool, 1)); idx != -1 {
		t.Errorf("matchPosition = %d, short candidates must not prefix-match", idx)
	}
}

func TestCorrelateRepeatedTextAdvances(t *testing.T) {
	doc, b, c := setup(t, 1)
	doc.SetPageContents(0, []byte("BT (Note) Tj (Note) Tj ET"))

	first := mustNode(t, b, "P")
	second := mustNode(t, b, "P")
	positions := []model.TextPosition{
		{ElementID: "text_0_0", Text: "Note"},
		{ElementID: "text_0_1", Text: "Note"},
	}
	nodes := map[string]*structtree.Node{"text_0_0": first, "text_0_1": second}

	refs, _ := c.CorrelatePage(0, positions, nodes)
	if len(refs) != 2 {
		t.Fatalf("refs = %d, want 2", len(refs))
	}
	for _, node := range []*structtree.Node{first, second} {
		kids, _ := node.Dict.GetArray("K")
		if len(kids) != 1 {
			t.Errorf("node children = %d, want exactly one MCR each", len(kids))
		}
	}
}

func TestCorrelateUnmatchedCandidateSkipped(t *testing.T) {
	doc, b, c := setup(t, 1)
	doc.SetPageContents(0, []byte("BT (stray run) Tj (known) Tj ET"))

	node := mustNode(t, b, "P")
	positions := []model.TextPosition{{ElementID: "text_0_0", Text: "known"}}
	nodes := map[string]*structtree.Node{"text_0_0": node}

	refs, warnings := c.CorrelatePage(0, positions, nodes)
	if len(warnings) != 0 {
		t.Errorf("warnings = %v, misses are not warnings", warnings)
	}
	if len(refs) != 1 {
		t.Errorf("refs = %d, want 1", len(refs))
	}
}

func TestCorrelatePageFailures(t *testing.T) {
	doc, b, c := setup(t, 3)
	doc.FailPageContents(0, errors.New("stream broken"))
	// Page 1 has no contents at all.
	doc.SetPageContents(2, []byte("BT (fine) Tj ET"))

	node := mustNode(t, b, "P")
	nodes := map[string]*structtree.Node{"text_2_0": node}

	refs, warnings := c.CorrelatePage(0, nil, nodes)
	if len(refs) != 0 || len(warnings) != 1 {
		t.Errorf("page 0: refs = %v, warnings = %v", refs, warnings)
	}
	if warnings[0].Page != 0 || !strings.Contains(warnings[0].Message, "unreadable") {
		t.Errorf("page 0 warning = %+v", warnings[0])
	}

	refs, warnings = c.CorrelatePage(1, nil, nodes)
	if len(refs) != 0 || len(warnings) != 1 {
		t.Errorf("page 1: refs = %v, warnings = %v", refs, warnings)
	}

	// The failing pages must not poison the healthy one.
	refs, warnings = c.CorrelatePage(2, []model.TextPosition{
		{ElementID: "text_2_0", Text: "fine"},
	}, nodes)
	if len(warnings) != 0 {
		t.Errorf("page 2 warnings = %v", warnings)
	}
	if len(refs) != 1 || refs[0].Page != 2 {
		t.Errorf("page 2 refs = %v", refs)
	}
}
