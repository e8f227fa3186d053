package model

import (
	"fmt"
	"strings"
)

// Kind identifies what sort of content an element is.
type Kind int

const (
	KindUnknown Kind = iota
	KindText
	KindImage
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindImage:
		return "image"
	default:
		return "unknown"
	}
}

// DefaultRole returns the structure role an element of this kind gets when
// nothing more specific is known.
func (k Kind) DefaultRole() string {
	if k == KindImage {
		return "Figure"
	}
	return "P"
}

// TextElementID builds the stable identifier for the block-th text block on
// a page. Ordinals must follow extraction order for identifiers to remain
// stable across runs.
func TextElementID(page, block int) string {
	return fmt.Sprintf("text_%d_%d", page, block)
}

// ImageElementID builds the stable identifier for one placement rectangle of
// an image on a page.
func ImageElementID(page, img, rect int) string {
	return fmt.Sprintf("image_%d_%d_%d", page, img, rect)
}

// KindFromID infers an element's kind from its identifier prefix.
func KindFromID(id string) Kind {
	switch {
	case strings.HasPrefix(id, "text_"):
		return KindText
	case strings.HasPrefix(id, "image_"):
		return KindImage
	default:
		return KindUnknown
	}
}

// Element is one content unit on one page. Elements are rebuilt from
// extraction plus sidecar overrides on every reconciliation pass; they are
// not persisted.
type Element struct {
	ID    string
	Kind  Kind
	BBox  Rect
	Role  string
	Text  string
	Props Properties
}

// Equal reports value equality with another element, including property
// order.
func (e Element) Equal(other Element) bool {
	return e.ID == other.ID &&
		e.Kind == other.Kind &&
		e.BBox == other.BBox &&
		e.Role == other.Role &&
		e.Text == other.Text &&
		e.Props.Equal(other.Props)
}

// Clone returns a deep copy of the element.
func (e Element) Clone() Element {
	out := e
	out.Props = e.Props.Clone()
	return out
}

// Properties is an insertion-ordered string-to-string map used for element
// attributes such as alt_text, language, actual_text, and scope.
type Properties struct {
	keys []string
	vals map[string]string
}

// Set stores a property, preserving the insertion position of existing keys.
func (p *Properties) Set(key, value string) {
	if p.vals == nil {
		p.vals = make(map[string]string)
	}
	if _, ok := p.vals[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.vals[key] = value
}

// Get returns the value for key and whether it is present.
func (p Properties) Get(key string) (string, bool) {
	v, ok := p.vals[key]
	return v, ok
}

// Value returns the value for key, or "" when absent.
func (p Properties) Value(key string) string {
	return p.vals[key]
}

// Has reports whether key is present.
func (p Properties) Has(key string) bool {
	_, ok := p.vals[key]
	return ok
}

// Keys returns the property keys in insertion order.
func (p Properties) Keys() []string {
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

// Len returns the number of properties.
func (p Properties) Len() int {
	return len(p.keys)
}

// Clone returns a deep copy.
func (p Properties) Clone() Properties {
	var out Properties
	for _, k := range p.keys {
		out.Set(k, p.vals[k])
	}
	return out
}

// Equal reports whether two property sets hold the same keys in the same
// order with the same values.
func (p Properties) Equal(other Properties) bool {
	if len(p.keys) != len(other.keys) {
		return false
	}
	for i, k := range p.keys {
		if other.keys[i] != k {
			return false
		}
		if p.vals[k] != other.vals[k] {
			return false
		}
	}
	return true
}
