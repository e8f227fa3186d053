package model

import (
	"testing"
)

// ============================================================================
// Rect Tests
// ============================================================================

func TestNewRect(t *testing.T) {
	r := NewRect(10, 20, 110, 70)
	if r.X0 != 10 || r.Y0 != 20 || r.X1 != 110 || r.Y1 != 70 {
		t.Errorf("NewRect() = %+v, want {10, 20, 110, 70}", r)
	}
}

func TestRectFromSlice(t *testing.T) {
	tests := []struct {
		name string
		vals []float64
		want Rect
		ok   bool
	}{
		{"valid", []float64{1, 2, 3, 4}, Rect{1, 2, 3, 4}, true},
		{"too short", []float64{1, 2, 3}, Rect{}, false},
		{"too long", []float64{1, 2, 3, 4, 5}, Rect{}, false},
		{"nil", nil, Rect{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := RectFromSlice(tt.vals)
			if ok != tt.ok || got != tt.want {
				t.Errorf("RectFromSlice(%v) = %+v, %v; want %+v, %v",
					tt.vals, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestRectSliceRoundTrip(t *testing.T) {
	r := NewRect(5, 6, 7, 8)
	got, ok := RectFromSlice(r.Slice())
	if !ok || got != r {
		t.Errorf("round trip = %+v, %v; want %+v", got, ok, r)
	}
}

func TestRectDimensions(t *testing.T) {
	r := NewRect(10, 20, 110, 70)
	if r.Width() != 100 {
		t.Errorf("Width() = %v, want 100", r.Width())
	}
	if r.Height() != 50 {
		t.Errorf("Height() = %v, want 50", r.Height())
	}
	if r.Area() != 5000 {
		t.Errorf("Area() = %v, want 5000", r.Area())
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(0, 0, 100, 100)

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"inside", 50, 50, true},
		{"on edge", 0, 50, true},
		{"on corner", 100, 100, true},
		{"outside x", 101, 50, false},
		{"outside y", 50, -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestRectIntersectsAndUnion(t *testing.T) {
	a := NewRect(0, 0, 10, 10)
	b := NewRect(5, 5, 15, 15)
	c := NewRect(20, 20, 30, 30)

	if !a.Intersects(b) {
		t.Error("a should intersect b")
	}
	if a.Intersects(c) {
		t.Error("a should not intersect c")
	}

	u := a.Union(b)
	want := NewRect(0, 0, 15, 15)
	if u != want {
		t.Errorf("Union() = %+v, want %+v", u, want)
	}
}

func TestRectIsZero(t *testing.T) {
	if !(Rect{}).IsZero() {
		t.Error("zero rect not reported as zero")
	}
	if NewRect(0, 0, 100, 20).IsZero() {
		t.Error("non-zero rect reported as zero")
	}
}

// ============================================================================
// Element ID Tests
// ============================================================================

func TestElementIDs(t *testing.T) {
	if got := TextElementID(0, 3); got != "text_0_3" {
		t.Errorf("TextElementID(0, 3) = %q, want %q", got, "text_0_3")
	}
	if got := ImageElementID(2, 0, 1); got != "image_2_0_1" {
		t.Errorf("ImageElementID(2, 0, 1) = %q, want %q", got, "image_2_0_1")
	}
}

func TestKindFromID(t *testing.T) {
	tests := []struct {
		id   string
		want Kind
	}{
		{"text_0_3", KindText},
		{"image_2_0_1", KindImage},
		{"elem_5", KindUnknown},
		{"", KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if got := KindFromID(tt.id); got != tt.want {
				t.Errorf("KindFromID(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}

func TestKindStringAndDefaultRole(t *testing.T) {
	tests := []struct {
		kind     Kind
		str      string
		wantRole string
	}{
		{KindText, "text", "P"},
		{KindImage, "image", "Figure"},
		{KindUnknown, "unknown", "P"},
	}

	for _, tt := range tests {
		t.Run(tt.str, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.str {
				t.Errorf("String() = %q, want %q", got, tt.str)
			}
			if got := tt.kind.DefaultRole(); got != tt.wantRole {
				t.Errorf("DefaultRole() = %q, want %q", got, tt.wantRole)
			}
		})
	}
}

// ============================================================================
// Properties Tests
// ============================================================================

func TestPropertiesOrder(t *testing.T) {
	var p Properties
	p.Set("alt_text", "a chart")
	p.Set("language", "en-US")
	p.Set("scope", "Column")
	p.Set("alt_text", "a bar chart") // update must not reorder

	wantKeys := []string{"alt_text", "language", "scope"}
	got := p.Keys()
	if len(got) != len(wantKeys) {
		t.Fatalf("Keys() = %v, want %v", got, wantKeys)
	}
	for i, k := range wantKeys {
		if got[i] != k {
			t.Errorf("Keys()[%d] = %q, want %q", i, got[i], k)
		}
	}
	if v := p.Value("alt_text"); v != "a bar chart" {
		t.Errorf("Value(alt_text) = %q, want %q", v, "a bar chart")
	}
	if p.Len() != 3 {
		t.Errorf("Len() = %d, want 3", p.Len())
	}
}

func TestPropertiesEqual(t *testing.T) {
	build := func(pairs ...string) Properties {
		var p Properties
		for i := 0; i+1 < len(pairs); i += 2 {
			p.Set(pairs[i], pairs[i+1])
		}
		return p
	}

	tests := []struct {
		name string
		a, b Properties
		want bool
	}{
		{"both empty", Properties{}, Properties{}, true},
		{"same", build("a", "1", "b", "2"), build("a", "1", "b", "2"), true},
		{"different value", build("a", "1"), build("a", "2"), false},
		{"different order", build("a", "1", "b", "2"), build("b", "2", "a", "1"), false},
		{"different length", build("a", "1"), build("a", "1", "b", "2"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPropertiesCloneIsIndependent(t *testing.T) {
	var p Properties
	p.Set("alt_text", "original")

	c := p.Clone()
	c.Set("alt_text", "changed")
	c.Set("extra", "x")

	if v := p.Value("alt_text"); v != "original" {
		t.Errorf("original mutated: alt_text = %q", v)
	}
	if p.Has("extra") {
		t.Error("original gained key from clone")
	}
}

// ============================================================================
// Element Tests
// ============================================================================

func TestElementEqual(t *testing.T) {
	base := Element{
		ID:   "text_0_0",
		Kind: KindText,
		BBox: NewRect(0, 0, 100, 20),
		Role: "P",
		Text: "hello",
	}
	base.Props.Set("language", "en-US")

	same := base.Clone()
	if !base.Equal(same) {
		t.Error("clone should be equal")
	}

	diffRole := base.Clone()
	diffRole.Role = "H1"
	if base.Equal(diffRole) {
		t.Error("role change should break equality")
	}

	diffProps := base.Clone()
	diffProps.Props.Set("language", "fr-FR")
	if base.Equal(diffProps) {
		t.Error("property change should break equality")
	}
}

func TestElementCloneIsDeep(t *testing.T) {
	e := Element{ID: "text_0_0", Kind: KindText}
	e.Props.Set("alt_text", "a")

	c := e.Clone()
	c.Props.Set("alt_text", "b")

	if v := e.Props.Value("alt_text"); v != "a" {
		t.Errorf("original mutated through clone: %q", v)
	}
}
