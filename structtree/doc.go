// Package structtree builds tagged structure trees inside a PDF document.
//
// A [Builder] owns one session's mutable tree state: the structure tree
// root, a registry of created nodes, and the node id counter. The builder
// starts uninitialized; every node operation fails with [ErrNoRoot] until
// [Builder.InitRoot] has run. InitRoot either creates a fresh root with the
// full standard role map or adopts an existing root, merging missing
// standard role-map entries without touching what is already there.
//
// Composite expanders ([Builder.BuildTable], [Builder.BuildList]) turn one
// declarative spec into a multi-node substructure. They are deliberately
// lenient: a failed child is skipped and reported in the diagnostics list,
// and the composite node is still returned.
package structtree
