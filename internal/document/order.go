package document

import (
	"strings"

	"github.com/TheSagarV/ATS-AI-RESUME/internal/types"
)

// RepairSectionOrder returns order with every built-in section id present.
//
// Existing entries keep their positions; missing built-ins are appended in
// canonical order. Empty and repeated ids are dropped (first occurrence wins).
// Custom ids without a matching entry in the custom sections are kept: they are
// skipped when the document is resolved. The input is never modified.
func RepairSectionOrder(order []string, _ []types.CustomSection) []string {
	out := make([]string, 0, len(order)+4)
	seen := make(map[string]struct{}, len(order)+4)
	for _, id := range order {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}

	for _, id := range types.BuiltinSectionIDs() {
		if _, ok := seen[id]; !ok {
			out = append(out, id)
			seen[id] = struct{}{}
		}
	}
	return out
}

// MoveSection shifts id by delta positions in the section order, clamped to the bounds.
// Unknown ids leave the order unchanged.
func MoveSection(doc types.Document, id string, delta int) types.Document {
	out := doc.Clone()
	from := indexOf(out.SectionOrder, id)
	if from < 0 || delta == 0 {
		return out
	}

	to := from + delta
	if to < 0 {
		to = 0
	}
	if to > len(out.SectionOrder)-1 {
		to = len(out.SectionOrder) - 1
	}

	order := append(out.SectionOrder[:from:from], out.SectionOrder[from+1:]...)
	order = append(order[:to], append([]string{id}, order[to:]...)...)
	out.SectionOrder = order
	return out
}

func indexOf(items []string, id string) int {
	for i, item := range items {
		if item == id {
			return i
		}
	}
	return -1
}
