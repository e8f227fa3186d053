// Package reconcile merges freshly extracted page elements with persisted
// sidecar overrides into one effective element list per page.
//
// Extracted elements carry what the document actually contains; sidecar
// records carry what the user changed. [Merge] applies field-level patch
// semantics - only the fields a record actually carries replace extracted
// values - and synthesizes standalone elements for sidecar records whose id
// matches nothing in the extraction (elements the user created by hand).
//
// Merge is a pure function: re-running it on unchanged inputs produces a
// value-equal list.
package reconcile
