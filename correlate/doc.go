// Package correlate links structure tree leaves to the marked content that
// carries them in a page's content stream.
//
// A [Correlator] owns one session's marked-content id counter. MCIDs are
// allocated in stream order, strictly increasing, and never reused within a
// session. Each successful match appends a marked-content reference
// dictionary to the target node and records a [model.ContentRef].
//
// Matching tries an exact anchor first (the text run equals a known text
// position whose element maps to a node) and falls back to fuzzy matching:
// normalized containment in either direction, then a prefix comparison.
// Misses are skipped, never errors. A page whose content stream is absent
// or unreadable yields zero references and a page-scoped warning without
// affecting other pages.
package correlate
