package sigil

import "github.com/tsawler/sigil/sidecar"

// buildOptions holds configuration for one tagging session.
type buildOptions struct {
	// Sidecar input; at most one of these is set. A path is loaded lazily
	// when the terminal operation runs.
	sidecarFile *sidecar.File
	sidecarPath string

	// skipMetadata leaves document metadata (Lang, Title, MarkInfo) alone.
	skipMetadata bool

	// progress, when set, is invoked synchronously at each checkpoint.
	progress ProgressFunc
}

func defaultOptions() buildOptions {
	return buildOptions{}
}
