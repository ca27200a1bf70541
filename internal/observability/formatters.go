// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/TheSagarV/ATS-AI-RESUME/internal/rendering"
	"github.com/TheSagarV/ATS-AI-RESUME/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// RenderResult is one file written by the render command.
type RenderResult struct {
	TemplateID string
	Format     string
	Path       string
	Bytes      int
}

// EquivalenceResult is the verify outcome for one template. Err is nil when
// the preview and the export agree.
type EquivalenceResult struct {
	TemplateID string
	Err        error
}

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, clip(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// clip shortens s to n runes, marking the cut with "...".
func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// writeList appends up to limit items under a heading.
func writeList(sb *strings.Builder, heading string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(fmt.Sprintf("%s (%d):\n", heading, len(items)))
	count := min(len(items), limit)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > limit {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-limit))
	}
	sb.WriteString("\n")
}

// PrintDocument outputs a summary of a normalized document.
func (p *Printer) PrintDocument(doc *types.Document) {
	if doc == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:     %s\n", doc.FullName))
	if doc.Title != "" {
		sb.WriteString(fmt.Sprintf("Title:    %s\n", doc.Title))
	}
	contact := make([]string, 0, 3)
	for _, v := range []string{doc.Email, doc.Phone, doc.Location} {
		if v != "" {
			contact = append(contact, v)
		}
	}
	if len(contact) > 0 {
		sb.WriteString(fmt.Sprintf("Contact:  %s\n", strings.Join(contact, " | ")))
	}
	sb.WriteString(fmt.Sprintf("Design:   %s / %s / %s\n", doc.Style.Font, doc.Style.Size, doc.Style.AccentColor))
	sb.WriteString("\n")

	writeList(&sb, "Skills", doc.Skills, maxItemsToShow)
	writeList(&sb, "Experience", doc.Experience, 3)
	writeList(&sb, "Education", doc.Education, 3)

	sb.WriteString(fmt.Sprintf("Order: %s", strings.Join(doc.SectionOrder, " → ")))
	if len(doc.CustomSections) > 0 {
		sb.WriteString(fmt.Sprintf("\nCustom sections: %d", len(doc.CustomSections)))
	}

	p.printBox("NORMALIZED DOCUMENT", sb.String())
}

// PrintTemplates outputs the registered templates, default first.
func (p *Printer) PrintTemplates(infos []rendering.TemplateInfo) {
	if len(infos) == 0 {
		return
	}

	var sb strings.Builder
	for i, info := range infos {
		marker := " "
		if info.Default {
			marker = "*"
		}
		sb.WriteString(fmt.Sprintf("%s %-18s %s\n", marker, info.ID, info.Name))
		if info.Description != "" {
			sb.WriteString(fmt.Sprintf("    %s\n", info.Description))
		}
		if i < len(infos)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox(fmt.Sprintf("TEMPLATES (%d)", len(infos)), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRenderResults outputs the files written by one render run.
func (p *Printer) PrintRenderResults(results []RenderResult) {
	if len(results) == 0 {
		return
	}

	var sb strings.Builder
	total := 0
	for _, r := range results {
		sb.WriteString(fmt.Sprintf("%-18s %-5s %8d B\n", r.TemplateID, r.Format, r.Bytes))
		sb.WriteString(fmt.Sprintf("  → %s\n", r.Path))
		total += r.Bytes
	}
	sb.WriteString(fmt.Sprintf("\n%d file(s), %d bytes", len(results), total))

	p.printBox("RENDERED", sb.String())
}

// PrintEquivalence outputs the verify outcome for every template.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintEquivalence(results []EquivalenceResult) {
	var failed []EquivalenceResult
	for _, r := range results {
		if r.Err != nil {
			failed = append(failed, r)
		}
	}

	if len(failed) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, fmt.Sprintf("✅ %d TEMPLATES EQUIVALENT", len(results)))
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d of %d templates disagree:\n\n", len(failed), len(results)))
	for i, r := range failed {
		sb.WriteString(fmt.Sprintf("⚠ %s\n", r.TemplateID))
		sb.WriteString(fmt.Sprintf("  %s\n", r.Err))
		if i < len(failed)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("EQUIVALENCE FAILURES", strings.TrimSuffix(sb.String(), "\n"))
}
