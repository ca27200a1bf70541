package document

import (
	"testing"

	"github.com/TheSagarV/ATS-AI-RESUME/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestRepairSectionOrder(t *testing.T) {
	tests := []struct {
		name  string
		order []string
		want  []string
	}{
		{
			name:  "appends missing built-ins in canonical order",
			order: []string{"experience", "skills"},
			want:  []string{"experience", "skills", "summary", "education"},
		},
		{
			name:  "nil order",
			order: nil,
			want:  []string{"summary", "skills", "experience", "education"},
		},
		{
			name:  "complete order untouched",
			order: []string{"education", "custom-1", "experience", "skills", "summary"},
			want:  []string{"education", "custom-1", "experience", "skills", "summary"},
		},
		{
			name:  "duplicates collapse to first occurrence",
			order: []string{"skills", "summary", "skills", "custom-1", "custom-1"},
			want:  []string{"skills", "summary", "custom-1", "experience", "education"},
		},
		{
			name:  "dangling custom ids kept",
			order: []string{"custom-999"},
			want:  []string{"custom-999", "summary", "skills", "experience", "education"},
		},
		{
			name:  "blank ids dropped",
			order: []string{"", "  ", "education"},
			want:  []string{"education", "summary", "skills", "experience"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RepairSectionOrder(tt.order, nil))
		})
	}
}

func TestRepairSectionOrder_Properties(t *testing.T) {
	order := []string{"education", "custom-2", "summary"}
	original := append([]string(nil), order...)

	once := RepairSectionOrder(order, nil)
	assert.Equal(t, original, order, "input must not be modified")
	assert.Equal(t, once, RepairSectionOrder(once, nil), "repair must be idempotent")

	for _, id := range types.BuiltinSectionIDs() {
		assert.Contains(t, once, id)
	}
	assert.Equal(t, order, once[:len(order)], "existing entries keep their positions")
}

func TestMoveSection(t *testing.T) {
	doc := Defaults()

	moved := MoveSection(doc, "education", -2)
	assert.Equal(t, []string{"summary", "education", "skills", "experience"}, moved.SectionOrder)
	assert.Equal(t, []string{"summary", "skills", "experience", "education"}, doc.SectionOrder)

	assert.Equal(t, []string{"skills", "experience", "education", "summary"}, MoveSection(doc, "summary", 10).SectionOrder)
	assert.Equal(t, []string{"experience", "summary", "skills", "education"}, MoveSection(doc, "experience", -5).SectionOrder)
	assert.Equal(t, doc.SectionOrder, MoveSection(doc, "custom-1", 1).SectionOrder)
	assert.Equal(t, doc.SectionOrder, MoveSection(doc, "skills", 0).SectionOrder)
}
