package extract

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	pdflib "github.com/ledongthuc/pdf"

	"github.com/tsawler/sigil/model"
)

// blockGapFactor bounds the vertical gap, as a multiple of font size,
// within which consecutive rows still belong to the same block.
const blockGapFactor = 1.8

// fallbackFontSize stands in when a fragment reports no size, so gap
// comparisons stay meaningful.
const fallbackFontSize = 12

// Extractor reads elements and text positions from an opened PDF. It
// implements the engine's page source interface. Close it when done.
type Extractor struct {
	file   io.Closer
	reader *pdflib.Reader
}

// Open opens a PDF file for extraction.
func Open(path string) (*Extractor, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return &Extractor{file: f, reader: reader}, nil
}

// Close releases the underlying file.
func (e *Extractor) Close() error {
	return e.file.Close()
}

// PageCount returns the number of pages.
func (e *Extractor) PageCount() int {
	return e.reader.NumPage()
}

// PageContent extracts the elements and text positions of a zero-based
// page. A page with no text yields empty slices, not an error.
func (e *Extractor) PageContent(page int) ([]model.Element, []model.TextPosition, error) {
	if page < 0 || page >= e.reader.NumPage() {
		return nil, nil, fmt.Errorf("page %d out of range [0, %d)", page, e.reader.NumPage())
	}

	p := e.reader.Page(page + 1)
	if p.V.IsNull() {
		return nil, nil, nil
	}
	rows, err := p.GetTextByRow()
	if err != nil {
		return nil, nil, fmt.Errorf("page %d: reading text rows: %w", page, err)
	}

	lines := make([]line, 0, len(rows))
	for _, row := range rows {
		if ln, ok := lineFromFragments(row.Content); ok {
			lines = append(lines, ln)
		}
	}

	elements, positions := groupLines(page, lines)
	return elements, positions, nil
}

// PageRawContents returns the decoded content stream bytes of a zero-based
// page, concatenating streams when the page stores an array of them. A page
// without contents yields nil, not an error.
func (e *Extractor) PageRawContents(page int) ([]byte, error) {
	if page < 0 || page >= e.reader.NumPage() {
		return nil, fmt.Errorf("page %d out of range [0, %d)", page, e.reader.NumPage())
	}

	p := e.reader.Page(page + 1)
	if p.V.IsNull() {
		return nil, nil
	}
	contents := p.V.Key("Contents")
	switch contents.Kind() {
	case pdflib.Stream:
		data, err := io.ReadAll(contents.Reader())
		if err != nil {
			return nil, fmt.Errorf("page %d: reading content stream: %w", page, err)
		}
		return data, nil
	case pdflib.Array:
		var buf bytes.Buffer
		for i := 0; i < contents.Len(); i++ {
			part := contents.Index(i)
			if part.Kind() != pdflib.Stream {
				continue
			}
			if _, err := buf.ReadFrom(part.Reader()); err != nil {
				return nil, fmt.Errorf("page %d: reading content stream %d: %w", page, i, err)
			}
			buf.WriteByte('\n')
		}
		return buf.Bytes(), nil
	default:
		return nil, nil
	}
}

// line is one horizontal run of text: the joined fragment texts plus the
// spans they came from.
type line struct {
	text  string
	bbox  model.Rect
	spans []span
}

type span struct {
	text string
	bbox model.Rect
	font string
	size float64
}

// lineFromFragments folds a row's fragments into a line, skipping rows with
// no visible text.
func lineFromFragments(fragments []pdflib.Text) (line, bool) {
	var ln line
	var texts []string
	for _, frag := range fragments {
		if strings.TrimSpace(frag.S) == "" {
			continue
		}
		size := frag.FontSize
		if size <= 0 {
			size = fallbackFontSize
		}
		box := model.NewRect(frag.X, frag.Y, frag.X+frag.W, frag.Y+size)
		if len(ln.spans) == 0 {
			ln.bbox = box
		} else {
			ln.bbox = ln.bbox.Union(box)
		}
		ln.spans = append(ln.spans, span{text: frag.S, bbox: box, font: frag.Font, size: size})
		texts = append(texts, frag.S)
	}
	if len(ln.spans) == 0 {
		return line{}, false
	}
	ln.text = strings.Join(texts, "")
	return ln, true
}

// groupLines clusters lines into blocks by vertical proximity and emits one
// element per block plus one text position per span. Lines are expected
// top-to-bottom, the order GetTextByRow delivers them in.
func groupLines(page int, lines []line) ([]model.Element, []model.TextPosition) {
	var elements []model.Element
	var positions []model.TextPosition

	var block []line
	flush := func() {
		if len(block) == 0 {
			return
		}
		idx := len(elements)
		id := model.TextElementID(page, idx)

		bbox := block[0].bbox
		var texts []string
		for li, ln := range block {
			bbox = bbox.Union(ln.bbox)
			texts = append(texts, ln.text)
			for si, sp := range ln.spans {
				positions = append(positions, model.TextPosition{
					ElementID: id,
					Text:      sp.text,
					BBox:      sp.bbox,
					Font:      sp.font,
					Size:      sp.size,
					BlockIdx:  idx,
					LineIdx:   li,
					SpanIdx:   si,
				})
			}
		}

		elements = append(elements, model.Element{
			ID:   id,
			Kind: model.KindText,
			BBox: bbox,
			Role: model.KindText.DefaultRole(),
			Text: strings.Join(texts, " "),
		})
		block = block[:0]
	}

	for i, ln := range lines {
		if i > 0 && startsNewBlock(lines[i-1], ln) {
			flush()
		}
		block = append(block, ln)
	}
	flush()

	return elements, positions
}

// startsNewBlock reports whether the vertical gap between two consecutive
// lines breaks the block. Coordinates grow upward, so prev sits above cur.
func startsNewBlock(prev, cur line) bool {
	size := prev.spans[0].size
	gap := prev.bbox.Y0 - cur.bbox.Y1
	if gap < 0 {
		gap = -gap
	}
	return gap > blockGapFactor*size
}
