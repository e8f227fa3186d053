package structtree

import (
	"testing"

	"github.com/tsawler/sigil/core"
	"github.com/tsawler/sigil/document"
)

// childElems resolves a node's indirect children into their dictionaries.
func childElems(t *testing.T, b *Builder, node *Node) []core.Dict {
	t.Helper()
	refs := kidRefs(t, node.Dict)
	dicts := make([]core.Dict, 0, len(refs))
	for _, ref := range refs {
		obj, ok := b.doc.Resolve(ref)
		if !ok {
			t.Fatalf("child %v does not resolve", ref)
		}
		dicts = append(dicts, obj.(core.Dict))
	}
	return dicts
}

func TestBuildTable(t *testing.T) {
	b, _ := newReadyBuilder(t)

	table, diags, err := b.BuildTable(TableSpec{
		Title:        "People",
		Rows:         3,
		Cols:         3,
		Headers:      []string{"Name", "Age", "City"},
		HasHeaderRow: true,
	})
	if err != nil {
		t.Fatalf("BuildTable() error: %v", err)
	}
	if len(diags) != 0 {
		t.Fatalf("diagnostics = %v, want none", diags)
	}

	// 1 table + 3 rows + 9 cells.
	if b.NodeCount() != 13 {
		t.Errorf("NodeCount() = %d, want 13", b.NodeCount())
	}
	if s, _ := table.Dict.GetName("S"); s != "Table" {
		t.Errorf("table S = %q", s)
	}
	if title, _ := table.Dict.GetString("T"); title != "People" {
		t.Errorf("table T = %q", title)
	}

	rows := childElems(t, b, table)
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}

	wantCells := [][]struct{ typ, title string }{
		{{"TH", "Name"}, {"TH", "Age"}, {"TH", "City"}},
		{{"TD", "Cell 2,1"}, {"TD", "Cell 2,2"}, {"TD", "Cell 2,3"}},
		{{"TD", "Cell 3,1"}, {"TD", "Cell 3,2"}, {"TD", "Cell 3,3"}},
	}
	for r, row := range rows {
		if s, _ := row.GetName("S"); s != "TR" {
			t.Errorf("row %d S = %q, want TR", r, s)
		}
		refs, _ := row.GetArray("K")
		if len(refs) != 3 {
			t.Fatalf("row %d cells = %d, want 3", r, len(refs))
		}
		for c, kid := range refs {
			obj, _ := b.doc.Resolve(kid.(core.IndirectRef))
			cell := obj.(core.Dict)
			if s, _ := cell.GetName("S"); string(s) != wantCells[r][c].typ {
				t.Errorf("cell %d,%d S = %q, want %q", r+1, c+1, s, wantCells[r][c].typ)
			}
			if title, _ := cell.GetString("T"); string(title) != wantCells[r][c].title {
				t.Errorf("cell %d,%d T = %q, want %q", r+1, c+1, title, wantCells[r][c].title)
			}
		}
	}
}

func TestBuildTableShortHeaders(t *testing.T) {
	b, _ := newReadyBuilder(t)

	table, _, err := b.BuildTable(TableSpec{
		Rows:         1,
		Cols:         3,
		Headers:      []string{"Only"},
		HasHeaderRow: true,
	})
	if err != nil {
		t.Fatalf("BuildTable() error: %v", err)
	}

	rows := childElems(t, b, table)
	cells := childElems(t, b, &Node{Dict: rows[0]})
	titles := make([]string, len(cells))
	for i, cell := range cells {
		title, _ := cell.GetString("T")
		titles[i] = string(title)
	}
	want := []string{"Only", "Cell 1,2", "Cell 1,3"}
	for i := range want {
		if titles[i] != want[i] {
			t.Errorf("cell title %d = %q, want %q", i, titles[i], want[i])
		}
	}
}

func TestBuildTableDegenerate(t *testing.T) {
	tests := []struct {
		name string
		spec TableSpec
	}{
		{"zero rows", TableSpec{Rows: 0, Cols: 4}},
		{"zero cols", TableSpec{Rows: 4, Cols: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, _ := newReadyBuilder(t)
			table, diags, err := b.BuildTable(tt.spec)
			if err != nil {
				t.Fatalf("BuildTable() error: %v", err)
			}
			if len(diags) != 0 {
				t.Errorf("diagnostics = %v", diags)
			}
			if tt.spec.Rows == 0 {
				if kids, _ := table.Dict.GetArray("K"); len(kids) != 0 {
					t.Errorf("table children = %d, want 0", len(kids))
				}
			}
		})
	}
}

func TestBuildTableBeforeInit(t *testing.T) {
	b := NewBuilder(document.NewMemory(1))
	if _, _, err := b.BuildTable(TableSpec{Rows: 1, Cols: 1}); err == nil {
		t.Error("BuildTable() succeeded without root")
	}
}

func TestBuildList(t *testing.T) {
	b, _ := newReadyBuilder(t)

	list, diags, err := b.BuildList(ListSpec{
		Items:   []string{"a", "b"},
		Ordered: true,
	})
	if err != nil {
		t.Fatalf("BuildList() error: %v", err)
	}
	if len(diags) != 0 {
		t.Fatalf("diagnostics = %v, want none", diags)
	}
	if s, _ := list.Dict.GetName("S"); s != "L" {
		t.Errorf("list S = %q, want L", s)
	}

	items := childElems(t, b, list)
	if len(items) != 2 {
		t.Fatalf("items = %d, want 2", len(items))
	}

	wantLabels := []string{"1.", "2."}
	wantBodies := []string{"a", "b"}
	for i, item := range items {
		if s, _ := item.GetName("S"); s != "LI" {
			t.Errorf("item %d S = %q, want LI", i, s)
		}
		parts := childElems(t, b, &Node{Dict: item})
		if len(parts) != 2 {
			t.Fatalf("item %d parts = %d, want Lbl and LBody", i, len(parts))
		}
		lbl, body := parts[0], parts[1]
		if s, _ := lbl.GetName("S"); s != "Lbl" {
			t.Errorf("item %d first part S = %q, want Lbl", i, s)
		}
		if text, _ := lbl.GetString("ActualText"); string(text) != wantLabels[i] {
			t.Errorf("item %d label = %q, want %q", i, text, wantLabels[i])
		}
		if s, _ := body.GetName("S"); s != "LBody" {
			t.Errorf("item %d second part S = %q, want LBody", i, s)
		}
		if text, _ := body.GetString("ActualText"); string(text) != wantBodies[i] {
			t.Errorf("item %d body = %q, want %q", i, text, wantBodies[i])
		}
	}
}

func TestBuildListUnordered(t *testing.T) {
	b, _ := newReadyBuilder(t)

	list, _, err := b.BuildList(ListSpec{Items: []string{"x"}})
	if err != nil {
		t.Fatalf("BuildList() error: %v", err)
	}

	items := childElems(t, b, list)
	parts := childElems(t, b, &Node{Dict: items[0]})
	if text, _ := parts[0].GetString("ActualText"); text != "•" {
		t.Errorf("label = %q, want bullet", text)
	}
}

func TestBuildListEmpty(t *testing.T) {
	b, _ := newReadyBuilder(t)

	list, diags, err := b.BuildList(ListSpec{})
	if err != nil {
		t.Fatalf("BuildList() error: %v", err)
	}
	if len(diags) != 0 {
		t.Errorf("diagnostics = %v", diags)
	}
	if kids, _ := list.Dict.GetArray("K"); len(kids) != 0 {
		t.Errorf("list children = %d, want 0", len(kids))
	}
}
