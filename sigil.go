// Package sigil synthesizes tagged accessibility structure trees for PDF
// documents. It reconciles freshly extracted page elements with a persisted
// sidecar of user edits, builds a semantically tagged structure tree with a
// standard role map, and correlates tree leaves to marked content in each
// page's content stream.
//
// Basic usage:
//
//	result, warnings, err := sigil.New(doc, src).
//	    WithSidecarFile("report.sidecar.json").
//	    Build(ctx)
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", sigil.FormatWarnings(warnings))
//	}
//
// The lower-level packages (structtree, reconcile, correlate, sidecar) are
// also available for callers that need finer control.
package sigil

import (
	"github.com/tsawler/sigil/document"
	"github.com/tsawler/sigil/model"
	"github.com/tsawler/sigil/sidecar"
)

// Source supplies extracted content page by page: the elements in stable
// order and the text positions used for marked-content correlation. The
// extract package provides a PDF-backed implementation; tests typically use
// a SourceFunc.
type Source interface {
	PageContent(page int) ([]model.Element, []model.TextPosition, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(page int) ([]model.Element, []model.TextPosition, error)

func (f SourceFunc) PageContent(page int) ([]model.Element, []model.TextPosition, error) {
	return f(page)
}

// New creates a tagging session over doc, fed by src. Configure it with the
// fluent methods, then run the terminal Build operation. A session runs
// once; create a new one for another build.
func New(doc document.Document, src Source) *Session {
	return &Session{
		doc:     doc,
		src:     src,
		options: defaultOptions(),
	}
}

// WithSidecar supplies an already-parsed sidecar.
func (s *Session) WithSidecar(f *sidecar.File) *Session {
	s.options.sidecarFile = f
	s.options.sidecarPath = ""
	return s
}

// WithSidecarFile supplies a sidecar path, loaded when Build runs.
func (s *Session) WithSidecarFile(path string) *Session {
	s.options.sidecarPath = path
	s.options.sidecarFile = nil
	return s
}

// SkipMetadata leaves document metadata (Lang, Title, MarkInfo) untouched.
func (s *Session) SkipMetadata() *Session {
	s.options.skipMetadata = true
	return s
}

// OnProgress registers a synchronous checkpoint callback. The callback must
// not block; it stalls the whole pipeline.
func (s *Session) OnProgress(fn ProgressFunc) *Session {
	s.options.progress = fn
	return s
}

// Must is a helper that wraps a call to a function returning (T, error) and
// panics if the error is non-nil. Intended for scripts and tests.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
