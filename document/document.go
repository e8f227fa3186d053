package document

import (
	"fmt"

	"github.com/tsawler/sigil/core"
)

// Document is the capability set the structure-tree engine requires from a
// PDF document. Implementations are not expected to be safe for concurrent
// use; the engine drives them from a single goroutine.
type Document interface {
	// PageCount returns the number of pages.
	PageCount() int

	// Catalog returns the document catalog dictionary. The engine reads
	// and writes the StructTreeRoot, Lang, and MarkInfo entries.
	Catalog() core.Dict

	// MakeIndirect registers obj as an indirect object and returns its
	// reference.
	MakeIndirect(obj core.Object) core.IndirectRef

	// Resolve returns the object a reference points at.
	Resolve(ref core.IndirectRef) (core.Object, bool)

	// PageContents returns the decoded content stream bytes for a page
	// (0-indexed), or nil if the page has no content stream. An error
	// indicates the stream exists but cannot be read.
	PageContents(page int) ([]byte, error)
}

// Memory is an in-memory Document. The zero value is not usable; create one
// with NewMemory.
type Memory struct {
	catalog core.Dict
	info    core.Dict
	objects map[core.IndirectRef]core.Object
	nextNum int
	pages   []pageData
}

type pageData struct {
	contents []byte
	readErr  error
}

// NewMemory creates an in-memory document with the given number of empty
// pages.
func NewMemory(pageCount int) *Memory {
	return &Memory{
		catalog: core.Dict{"Type": core.Name("Catalog")},
		info:    core.Dict{},
		objects: make(map[core.IndirectRef]core.Object),
		nextNum: 1,
		pages:   make([]pageData, pageCount),
	}
}

// PageCount returns the number of pages.
func (m *Memory) PageCount() int {
	return len(m.pages)
}

// Catalog returns the catalog dictionary.
func (m *Memory) Catalog() core.Dict {
	return m.catalog
}

// Info returns the document information dictionary.
func (m *Memory) Info() core.Dict {
	return m.info
}

// MakeIndirect registers obj and returns its reference.
func (m *Memory) MakeIndirect(obj core.Object) core.IndirectRef {
	ref := core.IndirectRef{Number: m.nextNum}
	m.nextNum++
	m.objects[ref] = obj
	return ref
}

// Resolve returns the object behind ref.
func (m *Memory) Resolve(ref core.IndirectRef) (core.Object, bool) {
	obj, ok := m.objects[ref]
	return obj, ok
}

// ObjectCount returns the number of registered indirect objects.
func (m *Memory) ObjectCount() int {
	return len(m.objects)
}

// SetPageContents installs decoded content stream bytes for a page.
func (m *Memory) SetPageContents(page int, contents []byte) error {
	if page < 0 || page >= len(m.pages) {
		return fmt.Errorf("page %d out of range [0, %d)", page, len(m.pages))
	}
	m.pages[page] = pageData{contents: contents}
	return nil
}

// FailPageContents marks a page's content stream as unreadable, so
// PageContents returns err for it. Used to exercise per-page failure paths.
func (m *Memory) FailPageContents(page int, err error) error {
	if page < 0 || page >= len(m.pages) {
		return fmt.Errorf("page %d out of range [0, %d)", page, len(m.pages))
	}
	m.pages[page] = pageData{readErr: err}
	return nil
}

// PageContents returns the content stream bytes for a page.
func (m *Memory) PageContents(page int) ([]byte, error) {
	if page < 0 || page >= len(m.pages) {
		return nil, fmt.Errorf("page %d out of range [0, %d)", page, len(m.pages))
	}
	pd := m.pages[page]
	if pd.readErr != nil {
		return nil, pd.readErr
	}
	return pd.contents, nil
}
