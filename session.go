package sigil

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/tsawler/sigil/core"
	"github.com/tsawler/sigil/correlate"
	"github.com/tsawler/sigil/document"
	"github.com/tsawler/sigil/model"
	"github.com/tsawler/sigil/reconcile"
	"github.com/tsawler/sigil/sidecar"
	"github.com/tsawler/sigil/structtree"
)

// Checkpoint identifies a fixed point in the build pipeline. Progress
// callbacks fire at each one, and cancellation is honored only at these
// boundaries.
type Checkpoint int

const (
	RootCreated Checkpoint = iota
	ElementsReconciled
	NodesCreated
	CorrelationDone
	SessionComplete
)

func (c Checkpoint) String() string {
	switch c {
	case RootCreated:
		return "root-created"
	case ElementsReconciled:
		return "elements-reconciled"
	case NodesCreated:
		return "nodes-created"
	case CorrelationDone:
		return "correlation-done"
	case SessionComplete:
		return "session-complete"
	default:
		return "unknown"
	}
}

// ProgressFunc receives checkpoint notifications. It runs synchronously on
// the pipeline goroutine.
type ProgressFunc func(c Checkpoint)

// Session drives one build over one document. Sessions hold mutable state
// (node registry, MCID counter) and are not reentrant: one Build per
// session, one session at a time per document.
type Session struct {
	doc      document.Document
	src      Source
	options  buildOptions
	consumed bool
}

// PageResult is the per-page outcome of a build.
type PageResult struct {
	Page     int
	Elements []model.Element
	NodeIDs  []int
	Refs     []model.ContentRef
}

// Result is the outcome of a completed build. A result from a cancelled or
// failed build is nil; the partially built tree in the document should be
// discarded.
type Result struct {
	SessionID  string
	Title      string
	Language   string
	Pages      []PageResult
	RoleCounts map[string]int
	Status     structtree.Status
}

// TotalNodes returns how many structure nodes the session created.
func (r *Result) TotalNodes() int {
	total := 0
	for _, page := range r.Pages {
		total += len(page.NodeIDs)
	}
	return total
}

// TotalRefs returns how many marked-content references were assigned.
func (r *Result) TotalRefs() int {
	total := 0
	for _, page := range r.Pages {
		total += len(page.Refs)
	}
	return total
}

// Summary renders a short human-readable account of the session.
func (r *Result) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "session %s: %d pages, %d nodes, %d content refs\n",
		r.SessionID, len(r.Pages), r.TotalNodes(), r.TotalRefs())

	roles := make([]string, 0, len(r.RoleCounts))
	for role := range r.RoleCounts {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	for _, role := range roles {
		fmt.Fprintf(&sb, "  %-8s %d\n", role, r.RoleCounts[role])
	}
	sb.WriteString(r.Status.String())
	return sb.String()
}

// Build runs the pipeline: initialize the structure root, apply document
// metadata, then per page reconcile, create nodes, and correlate marked
// content. Warnings accumulate across stages; only root initialization and
// sidecar loading are fatal. Cancellation via ctx is checked at checkpoint
// boundaries only.
func (s *Session) Build(ctx context.Context) (*Result, []Warning, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if s.consumed {
		return nil, nil, fmt.Errorf("session already consumed; create a new session")
	}
	s.consumed = true

	sc := s.options.sidecarFile
	if s.options.sidecarPath != "" {
		loaded, err := sidecar.Load(s.options.sidecarPath)
		if err != nil {
			return nil, nil, err
		}
		sc = loaded
	}

	var warnings []Warning

	builder := structtree.NewBuilder(s.doc)
	if err := builder.InitRoot(); err != nil {
		return nil, warnings, fmt.Errorf("initializing structure root: %w", err)
	}
	s.checkpoint(RootCreated)
	if err := ctx.Err(); err != nil {
		return nil, warnings, err
	}

	if !s.options.skipMetadata && sc != nil {
		warnings = append(warnings, s.applyMetadata(sc.Document)...)
	}

	pageCount := s.doc.PageCount()
	warnings = append(warnings, checkSidecarPages(sc, pageCount)...)
	merged := make([][]model.Element, pageCount)
	positions := make([][]model.TextPosition, pageCount)
	for page := 0; page < pageCount; page++ {
		elements, pagePositions, err := s.src.PageContent(page)
		if err != nil {
			warnings = append(warnings, Warning{
				Code:    WarnExtract,
				Page:    page,
				Message: fmt.Sprintf("extraction failed: %v", err),
			})
		}
		merged[page] = reconcile.Merge(page, elements, sc.Page(page).Overrides())
		positions[page] = pagePositions
	}
	s.checkpoint(ElementsReconciled)
	if err := ctx.Err(); err != nil {
		return nil, warnings, err
	}

	nodeByElement := make(map[string]*structtree.Node)
	pages := make([]PageResult, pageCount)
	roleCounts := make(map[string]int)
	for page := 0; page < pageCount; page++ {
		pages[page].Page = page
		pages[page].Elements = merged[page]
		for _, elem := range merged[page] {
			role := elem.Role
			if role == "" {
				role = elem.Kind.DefaultRole()
			}
			node, err := builder.CreateNode(role, structtree.Attrs{
				Title:      elem.Props.Value("title"),
				AltText:    elem.Props.Value("alt_text"),
				ActualText: elem.Props.Value("actual_text"),
				Language:   elem.Props.Value("language"),
			})
			if err != nil {
				warnings = append(warnings, Warning{
					Code:    WarnNode,
					Page:    page,
					Message: fmt.Sprintf("element %s: %v", elem.ID, err),
				})
				continue
			}
			nodeByElement[elem.ID] = node
			pages[page].NodeIDs = append(pages[page].NodeIDs, node.ID)
			roleCounts[role]++
		}
	}
	s.checkpoint(NodesCreated)
	if err := ctx.Err(); err != nil {
		return nil, warnings, err
	}

	correlator := correlate.New(s.doc, builder)
	for page := 0; page < pageCount; page++ {
		refs, pageWarnings := correlator.CorrelatePage(page, positions[page], nodeByElement)
		pages[page].Refs = refs
		for _, w := range pageWarnings {
			warnings = append(warnings, Warning{
				Code:    WarnCorrelation,
				Page:    w.Page,
				Message: w.Message,
			})
		}
	}
	s.checkpoint(CorrelationDone)
	if err := ctx.Err(); err != nil {
		return nil, warnings, err
	}

	for _, diag := range builder.Verify() {
		warnings = append(warnings, Warning{
			Code:    WarnVerify,
			Page:    -1,
			Message: diag.String(),
		})
	}

	result := &Result{
		SessionID:  uuid.NewString(),
		Pages:      pages,
		RoleCounts: roleCounts,
		Status:     builder.Status(),
	}
	if sc != nil {
		result.Title = sc.Document.Title
		result.Language = sc.Document.Language
	}
	s.checkpoint(SessionComplete)
	return result, warnings, nil
}

// applyMetadata writes sidecar document metadata into the document: the
// catalog language and mark-info flags, and the info title when the
// document exposes an info dictionary.
func (s *Session) applyMetadata(meta sidecar.DocumentMeta) []Warning {
	catalog := s.doc.Catalog()
	if meta.Language != "" {
		catalog.Set("Lang", core.String(meta.Language))
	}
	catalog.Set("MarkInfo", core.Dict{
		"Marked":         core.Bool(true),
		"Suspects":       core.Bool(false),
		"UserProperties": core.Bool(false),
	})

	if meta.Title != "" {
		holder, ok := s.doc.(interface{ Info() core.Dict })
		if !ok {
			return []Warning{{
				Code:    WarnMetadata,
				Page:    -1,
				Message: "document has no info dictionary; title not applied",
			}}
		}
		holder.Info().Set("Title", core.String(meta.Title))
	}
	return nil
}

// checkSidecarPages warns about sidecar page keys the document cannot
// match; their records are ignored.
func checkSidecarPages(sc *sidecar.File, pageCount int) []Warning {
	if sc == nil {
		return nil
	}
	keys := make([]string, 0, len(sc.Pages))
	for key := range sc.Pages {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var warnings []Warning
	for _, key := range keys {
		idx, err := strconv.Atoi(key)
		if err != nil || idx < 0 {
			warnings = append(warnings, Warning{
				Code:    WarnSidecar,
				Page:    -1,
				Message: fmt.Sprintf("ignoring records for invalid page key %q", key),
			})
			continue
		}
		if idx >= pageCount {
			warnings = append(warnings, Warning{
				Code:    WarnSidecar,
				Page:    idx,
				Message: fmt.Sprintf("page %d not in document (%d pages); records ignored", idx, pageCount),
			})
		}
	}
	return warnings
}

func (s *Session) checkpoint(c Checkpoint) {
	if s.options.progress != nil {
		s.options.progress(c)
	}
}
