package sidecar

// OverrideSet is an id-keyed view of one page's records that preserves
// record order. Reconciliation iterates it in that order, which keeps the
// placement of synthesized sidecar-only elements stable across runs.
type OverrideSet struct {
	ids  []string
	recs map[string]Record
}

// Overrides builds the override set for a page. When the same id appears
// more than once the later record wins, keeping the position of the first.
func (p Page) Overrides() *OverrideSet {
	s := &OverrideSet{recs: make(map[string]Record, len(p.Elements))}
	for _, rec := range p.Elements {
		if rec.ID == "" {
			continue
		}
		if _, seen := s.recs[rec.ID]; !seen {
			s.ids = append(s.ids, rec.ID)
		}
		s.recs[rec.ID] = rec
	}
	return s
}

// Get returns the record for id and whether it exists.
func (s *OverrideSet) Get(id string) (Record, bool) {
	rec, ok := s.recs[id]
	return rec, ok
}

// IDs returns the ids in record order.
func (s *OverrideSet) IDs() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// Len returns the number of distinct ids.
func (s *OverrideSet) Len() int {
	return len(s.ids)
}
