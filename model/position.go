package model

// TextPosition records where one span of text sits on a page. Positions are
// produced per page during marked-content correlation and discarded after
// the pass; they are never persisted.
type TextPosition struct {
	// ElementID links the span back to an extracted element, when known.
	// Raw content-stream runs have no anchor and leave this empty.
	ElementID string
	Text      string
	BBox      Rect
	Font      string
	Size      float64
	BlockIdx  int
	LineIdx   int
	SpanIdx   int
}

// ContentRef points at a run of marked content: the page it lives on and the
// marked-content identifier assigned inside that page's content stream.
// A ContentRef belongs to exactly one structure node.
type ContentRef struct {
	Page int
	MCID int
}
