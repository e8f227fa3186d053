package sidecar

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
)

// DocumentMeta carries document-level sidecar fields.
type DocumentMeta struct {
	Title    string `json:"title"`
	Language string `json:"language"`
	Tagged   bool   `json:"tagged"`
}

// Record is one persisted element override. Pointer and nil-able fields
// distinguish "absent" from "present but empty": an absent field never
// overrides the extracted value.
type Record struct {
	ID         string            `json:"id"`
	Role       *string           `json:"role,omitempty"`
	BBox       []float64         `json:"bbox,omitempty"`
	Text       *string           `json:"text,omitempty"`
	Title      *string           `json:"title,omitempty"`
	Properties map[string]string `json:"properties,omitempty"`
}

// Page holds the element records for one page.
type Page struct {
	Elements []Record `json:"elements"`
}

// File is a parsed, normalized sidecar. Pages is keyed by page index as a
// string, matching the persisted form.
type File struct {
	Document DocumentMeta    `json:"document"`
	Pages    map[string]Page `json:"pages"`
}

// Skeleton creates an empty sidecar for a document with the given page
// count: no title, language en-US, untagged, one empty element list per
// page.
func Skeleton(pageCount int) *File {
	f := &File{
		Document: DocumentMeta{Language: "en-US"},
		Pages:    make(map[string]Page, pageCount),
	}
	for i := 0; i < pageCount; i++ {
		f.Pages[strconv.Itoa(i)] = Page{Elements: []Record{}}
	}
	return f
}

// Page returns the records for a page index, or an empty page.
func (f *File) Page(index int) Page {
	if f == nil || f.Pages == nil {
		return Page{}
	}
	return f.Pages[strconv.Itoa(index)]
}

// SetRecord inserts or replaces the record with rec.ID on the given page.
func (f *File) SetRecord(page int, rec Record) {
	key := strconv.Itoa(page)
	if f.Pages == nil {
		f.Pages = make(map[string]Page)
	}
	p := f.Pages[key]
	for i, existing := range p.Elements {
		if existing.ID == rec.ID {
			p.Elements[i] = rec
			f.Pages[key] = p
			return
		}
	}
	p.Elements = append(p.Elements, rec)
	f.Pages[key] = p
}

// Load reads and parses a sidecar file from disk.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading sidecar: %w", err)
	}
	return Parse(data)
}

// Parse decodes sidecar JSON, accepting the shape variants described in the
// package documentation and normalizing them into the canonical form.
func Parse(data []byte) (*File, error) {
	var raw struct {
		Document DocumentMeta    `json:"document"`
		Pages    json.RawMessage `json:"pages"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing sidecar: %w", err)
	}

	f := &File{
		Document: raw.Document,
		Pages:    make(map[string]Page),
	}
	if len(raw.Pages) == 0 {
		return f, nil
	}

	switch firstToken(raw.Pages) {
	case '{':
		var pages map[string]json.RawMessage
		if err := json.Unmarshal(raw.Pages, &pages); err != nil {
			return nil, fmt.Errorf("parsing pages object: %w", err)
		}
		for key, rawPage := range pages {
			page, err := parsePage(rawPage)
			if err != nil {
				return nil, fmt.Errorf("page %s: %w", key, err)
			}
			f.Pages[key] = page
		}
	case '[':
		// Legacy array form: index in the array is the page index.
		var pages []json.RawMessage
		if err := json.Unmarshal(raw.Pages, &pages); err != nil {
			return nil, fmt.Errorf("parsing pages array: %w", err)
		}
		for i, rawPage := range pages {
			page, err := parsePage(rawPage)
			if err != nil {
				return nil, fmt.Errorf("page %d: %w", i, err)
			}
			f.Pages[strconv.Itoa(i)] = page
		}
	default:
		return nil, fmt.Errorf("pages must be an object or array")
	}

	return f, nil
}

// parsePage decodes one page entry, accepting elements as an array of
// records or as an id-keyed object.
func parsePage(data []byte) (Page, error) {
	var raw struct {
		Elements json.RawMessage `json:"elements"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Page{}, err
	}
	if len(raw.Elements) == 0 {
		return Page{Elements: []Record{}}, nil
	}

	switch firstToken(raw.Elements) {
	case '[':
		var recs []Record
		if err := json.Unmarshal(raw.Elements, &recs); err != nil {
			return Page{}, fmt.Errorf("parsing elements array: %w", err)
		}
		return Page{Elements: recs}, nil
	case '{':
		// Legacy id-keyed form. Sorted by id so normalization is
		// deterministic.
		var byID map[string]Record
		if err := json.Unmarshal(raw.Elements, &byID); err != nil {
			return Page{}, fmt.Errorf("parsing elements object: %w", err)
		}
		ids := make([]string, 0, len(byID))
		for id := range byID {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		recs := make([]Record, 0, len(ids))
		for _, id := range ids {
			rec := byID[id]
			rec.ID = id
			recs = append(recs, rec)
		}
		return Page{Elements: recs}, nil
	default:
		return Page{}, fmt.Errorf("elements must be an array or object")
	}
}

// firstToken returns the first non-whitespace byte of a JSON value.
func firstToken(data []byte) byte {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}

// Write serializes the sidecar in canonical form to w.
func (f *File) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("writing sidecar: %w", err)
	}
	return nil
}

// Save writes the sidecar to a file.
func (f *File) Save(path string) error {
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("saving sidecar: %w", err)
	}
	return nil
}
