// Package document defines the minimal document capability the
// structure-tree engine consumes, and an in-memory implementation of it.
//
// The engine never reads or writes raw PDF bytes. Everything it needs from a
// document is behind the [Document] interface: the catalog dictionary (to
// find or install a structure tree root), an indirect-object allocator (tree
// nodes are indirect objects), the page count, and per-page content stream
// bytes for marked-content correlation.
//
// [Memory] implements Document entirely in memory. It is what the engine
// builds against in tests, and what callers populate from whatever PDF
// library they use for actual file I/O.
package document
