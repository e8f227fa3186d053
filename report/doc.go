// Package report renders remediation reports for completed tagging
// sessions: what metadata was applied, how many elements each page carries,
// how many nodes and marked-content references were created, and every
// warning the session accumulated.
//
// Reports come in two forms. [Write] emits machine-readable JSON. [WriteHTML]
// builds a markdown account of the session and renders it to HTML; the
// markdown itself is available through [Markdown] for callers that archive
// plain text.
package report
