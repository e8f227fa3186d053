package structtree

import "fmt"

// TableSpec declares a table substructure.
type TableSpec struct {
	Title        string
	Rows         int
	Cols         int
	Headers      []string
	HasHeaderRow bool
}

// ListSpec declares a list substructure.
type ListSpec struct {
	Title   string
	Items   []string
	Ordered bool
}

// BuildTable expands a table spec into a Table node with TR rows and TH/TD
// cells. Header-row cells take their titles from spec.Headers; every other
// cell gets a synthesized "Cell row,col" title (1-based). Zero rows or
// columns produce a childless Table. Failures inside the expansion are
// skipped and reported as diagnostics; the Table node is still returned.
func (b *Builder) BuildTable(spec TableSpec) (*Node, []Diagnostic, error) {
	table, err := b.CreateNode("Table", Attrs{Title: spec.Title})
	if err != nil {
		return nil, nil, err
	}

	var diags []Diagnostic
	for row := 0; row < spec.Rows; row++ {
		tr, err := b.CreateNode("TR", Attrs{})
		if err != nil {
			diags = append(diags, Diagnostic{Message: fmt.Sprintf("row %d: %v", row+1, err)})
			continue
		}
		if err := b.Attach(table, tr); err != nil {
			diags = append(diags, Diagnostic{NodeID: tr.ID, Message: err.Error()})
			continue
		}

		headerRow := spec.HasHeaderRow && row == 0
		for col := 0; col < spec.Cols; col++ {
			cellType := "TD"
			if headerRow {
				cellType = "TH"
			}
			title := fmt.Sprintf("Cell %d,%d", row+1, col+1)
			if headerRow && col < len(spec.Headers) {
				title = spec.Headers[col]
			}

			cell, err := b.CreateNode(cellType, Attrs{Title: title})
			if err != nil {
				diags = append(diags, Diagnostic{Message: fmt.Sprintf("cell %d,%d: %v", row+1, col+1, err)})
				continue
			}
			if err := b.Attach(tr, cell); err != nil {
				diags = append(diags, Diagnostic{NodeID: cell.ID, Message: err.Error()})
			}
		}
	}

	return table, diags, nil
}

// BuildList expands a list spec into an L node with one LI per item, each
// holding a Lbl (the "1." style marker for ordered lists, a bullet
// otherwise) and an LBody carrying the item text as actual text. Empty
// items produce a childless list.
func (b *Builder) BuildList(spec ListSpec) (*Node, []Diagnostic, error) {
	list, err := b.CreateNode("L", Attrs{Title: spec.Title})
	if err != nil {
		return nil, nil, err
	}

	var diags []Diagnostic
	for i, item := range spec.Items {
		li, err := b.CreateNode("LI", Attrs{})
		if err != nil {
			diags = append(diags, Diagnostic{Message: fmt.Sprintf("item %d: %v", i+1, err)})
			continue
		}
		if err := b.Attach(list, li); err != nil {
			diags = append(diags, Diagnostic{NodeID: li.ID, Message: err.Error()})
			continue
		}

		label := "•"
		if spec.Ordered {
			label = fmt.Sprintf("%d.", i+1)
		}
		lbl, err := b.CreateNode("Lbl", Attrs{ActualText: label})
		if err != nil {
			diags = append(diags, Diagnostic{Message: fmt.Sprintf("item %d label: %v", i+1, err)})
		} else if err := b.Attach(li, lbl); err != nil {
			diags = append(diags, Diagnostic{NodeID: lbl.ID, Message: err.Error()})
		}

		body, err := b.CreateNode("LBody", Attrs{ActualText: item})
		if err != nil {
			diags = append(diags, Diagnostic{Message: fmt.Sprintf("item %d body: %v", i+1, err)})
		} else if err := b.Attach(li, body); err != nil {
			diags = append(diags, Diagnostic{NodeID: body.ID, Message: err.Error()})
		}
	}

	return list, diags, nil
}
