package reconcile

import (
	"sort"

	"github.com/tsawler/sigil/model"
	"github.com/tsawler/sigil/sidecar"
)

// Synthesized sidecar-only elements get this bounding box when the record
// carries none.
var defaultBBox = model.NewRect(0, 0, 100, 20)

// Merge reconciles one page's extracted elements with its sidecar overrides.
//
// Extracted elements come first, in extraction order, each patched by its
// matching override if one exists. Records with no matching extracted
// element are synthesized into standalone elements and appended in record
// order. The result never contains duplicate ids, and its length is always
// len(extracted) plus the number of sidecar-only records.
func Merge(page int, extracted []model.Element, overrides *sidecar.OverrideSet) []model.Element {
	merged := make([]model.Element, 0, len(extracted))
	seen := make(map[string]bool, len(extracted))

	for _, elem := range extracted {
		out := elem.Clone()
		if overrides != nil {
			if rec, ok := overrides.Get(elem.ID); ok {
				applyRecord(&out, rec)
			}
		}
		if seen[out.ID] {
			continue
		}
		seen[out.ID] = true
		merged = append(merged, out)
	}

	if overrides == nil {
		return merged
	}

	for _, id := range overrides.IDs() {
		if seen[id] {
			continue
		}
		rec, _ := overrides.Get(id)
		merged = append(merged, synthesize(rec))
		seen[id] = true
	}

	return merged
}

// applyRecord patches an element with the fields a record carries. Absent
// fields keep the extracted value; present property keys are applied
// individually.
func applyRecord(elem *model.Element, rec sidecar.Record) {
	if rec.Role != nil {
		elem.Role = *rec.Role
	}
	if bbox, ok := model.RectFromSlice(rec.BBox); ok {
		elem.BBox = bbox
	}
	if rec.Text != nil {
		elem.Text = *rec.Text
	}
	if rec.Title != nil {
		elem.Props.Set("title", *rec.Title)
	}
	for _, key := range sortedKeys(rec.Properties) {
		elem.Props.Set(key, rec.Properties[key])
	}
}

// synthesize builds a standalone element from a sidecar-only record. The
// element kind comes from the id prefix; missing fields get documented
// defaults (bbox [0,0,100,20], empty text, role P).
func synthesize(rec sidecar.Record) model.Element {
	elem := model.Element{
		ID:   rec.ID,
		Kind: model.KindFromID(rec.ID),
		BBox: defaultBBox,
		Role: "P",
	}
	if bbox, ok := model.RectFromSlice(rec.BBox); ok {
		elem.BBox = bbox
	}
	if rec.Role != nil {
		elem.Role = *rec.Role
	}
	if rec.Text != nil {
		elem.Text = *rec.Text
	}
	if rec.Title != nil {
		elem.Props.Set("title", *rec.Title)
	}
	for _, key := range sortedKeys(rec.Properties) {
		elem.Props.Set(key, rec.Properties[key])
	}
	return elem
}

func sortedKeys(m map[string]string) []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
