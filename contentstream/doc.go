// Package contentstream parses PDF page content streams into operations.
//
// A content stream is a sequence of operands followed by an operator:
//
//	parser := contentstream.NewParser(streamData)
//	ops, err := parser.Parse()
//	for _, op := range ops {
//	    fmt.Printf("Operator: %s, Operands: %v\n", op.Operator, op.Operands)
//	}
//
// The structure-tree engine uses the parsed operations for one purpose:
// locating the text-show operators (Tj, TJ, ', ") whose operands carry the
// text a page actually paints, so structure nodes can be correlated with
// runs of marked content. [TextShows] pulls those candidate strings out of a
// parsed stream in paint order.
package contentstream
