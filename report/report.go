package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	sigil "github.com/tsawler/sigil"
)

// PageStats summarizes one page of a session.
type PageStats struct {
	Page     int `json:"page"`
	Elements int `json:"elements"`
	Nodes    int `json:"nodes"`
	Refs     int `json:"refs"`
}

// Report is the serializable account of one tagging session.
type Report struct {
	SessionID  string         `json:"session_id"`
	Generated  time.Time      `json:"generated"`
	Title      string         `json:"title,omitempty"`
	Language   string         `json:"language,omitempty"`
	Pages      []PageStats    `json:"pages"`
	RoleCounts map[string]int `json:"role_counts"`
	TotalNodes int            `json:"total_nodes"`
	TotalRefs  int            `json:"total_refs"`
	TreeStatus string         `json:"tree_status"`
	Warnings   []string       `json:"warnings,omitempty"`
}

// New assembles a report from a session result and its warnings.
func New(result *sigil.Result, warnings []sigil.Warning) *Report {
	r := &Report{
		SessionID:  result.SessionID,
		Generated:  time.Now().UTC(),
		Title:      result.Title,
		Language:   result.Language,
		RoleCounts: result.RoleCounts,
		TotalNodes: result.TotalNodes(),
		TotalRefs:  result.TotalRefs(),
		TreeStatus: result.Status.String(),
	}
	for _, page := range result.Pages {
		r.Pages = append(r.Pages, PageStats{
			Page:     page.Page,
			Elements: len(page.Elements),
			Nodes:    len(page.NodeIDs),
			Refs:     len(page.Refs),
		})
	}
	for _, w := range warnings {
		r.Warnings = append(r.Warnings, w.String())
	}
	return r
}

// Write emits the report as indented JSON.
func (r *Report) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

// Markdown renders the report as a markdown document.
func (r *Report) Markdown() string {
	var sb strings.Builder

	title := r.Title
	if title == "" {
		title = "Untitled document"
	}
	fmt.Fprintf(&sb, "# Remediation report: %s\n\n", title)
	fmt.Fprintf(&sb, "- Session: `%s`\n", r.SessionID)
	fmt.Fprintf(&sb, "- Generated: %s\n", r.Generated.Format(time.RFC3339))
	if r.Language != "" {
		fmt.Fprintf(&sb, "- Language: %s\n", r.Language)
	}
	fmt.Fprintf(&sb, "- Structure: %s\n\n", r.TreeStatus)

	sb.WriteString("## Pages\n\n")
	sb.WriteString("| Page | Elements | Nodes | Content refs |\n")
	sb.WriteString("|---|---|---|---|\n")
	for _, page := range r.Pages {
		fmt.Fprintf(&sb, "| %d | %d | %d | %d |\n", page.Page+1, page.Elements, page.Nodes, page.Refs)
	}
	sb.WriteString("\n")

	if len(r.RoleCounts) > 0 {
		sb.WriteString("## Roles\n\n")
		roles := make([]string, 0, len(r.RoleCounts))
		for role := range r.RoleCounts {
			roles = append(roles, role)
		}
		sort.Strings(roles)
		for _, role := range roles {
			fmt.Fprintf(&sb, "- %s: %d\n", role, r.RoleCounts[role])
		}
		sb.WriteString("\n")
	}

	if len(r.Warnings) > 0 {
		sb.WriteString("## Warnings\n\n")
		for _, w := range r.Warnings {
			fmt.Fprintf(&sb, "- %s\n", w)
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// WriteHTML renders the markdown report to HTML.
func (r *Report) WriteHTML(w io.Writer) error {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	if err := md.Convert([]byte(r.Markdown()), w); err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}
	return nil
}
