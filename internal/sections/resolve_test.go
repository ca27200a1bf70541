package sections

import (
	"testing"

	"github.com/TheSagarV/ATS-AI-RESUME/internal/document"
	"github.com/TheSagarV/ATS-AI-RESUME/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_BuiltinWithContent(t *testing.T) {
	doc := document.Build(document.Partial{
		Summary: "Backend engineer.",
		Skills:  []string{"Go", "Rust"},
	})

	s, ok := Resolve(doc, "skills")
	require.True(t, ok)
	assert.Equal(t, Section{ID: "skills", Title: "Skills", Body: []string{"Go", "Rust"}, Builtin: true}, s)

	s, ok = Resolve(doc, "summary")
	require.True(t, ok)
	assert.Equal(t, []string{"Backend engineer."}, s.Body)
	assert.False(t, s.Placeholder)
}

func TestResolve_SummaryIsOneParagraph(t *testing.T) {
	doc := document.Build(document.Partial{Summary: "Line one.\nLine two."})

	s, ok := Resolve(doc, "summary")
	require.True(t, ok)
	assert.Equal(t, []string{"Line one.\nLine two."}, s.Body)
	assert.True(t, s.Paragraph)

	doc = document.Build(document.Partial{Summary: "- a\n- b"})
	s, ok = Resolve(doc, "summary")
	require.True(t, ok)
	assert.Equal(t, []string{"- a\n- b"}, s.Body)
	assert.True(t, s.Paragraph)

	s, ok = Resolve(doc, "skills")
	require.True(t, ok)
	assert.False(t, s.Paragraph)
}

func TestResolve_PlaceholdersAreDistinct(t *testing.T) {
	doc := document.Defaults()

	seen := map[string]string{}
	for _, id := range types.BuiltinSectionIDs() {
		s, ok := Resolve(doc, id)
		require.True(t, ok)
		assert.True(t, s.Placeholder, id)
		require.Len(t, s.Body, 1)
		assert.NotEmpty(t, s.Body[0])
		assert.Equal(t, Placeholder(id), s.Body[0])

		for other, text := range seen {
			assert.NotEqual(t, text, s.Body[0], "%s and %s share a placeholder", id, other)
		}
		seen[id] = s.Body[0]
	}

	// Placeholders are display-only.
	assert.Equal(t, "", doc.Summary)
	assert.Empty(t, doc.Skills)
}

func TestResolve_CustomSection(t *testing.T) {
	doc := document.Defaults()
	doc.CustomSections = []types.CustomSection{
		{ID: "custom-1", Title: " Awards ", Content: "- Dean's list\n\n- Scholarship\n"},
		{ID: "custom-2", Title: "Empty", Content: ""},
	}

	s, ok := Resolve(doc, "custom-1")
	require.True(t, ok)
	assert.Equal(t, Section{ID: "custom-1", Title: "Awards", Body: []string{"- Dean's list", "- Scholarship"}}, s)

	s, ok = Resolve(doc, "custom-2")
	require.True(t, ok)
	assert.Empty(t, s.Body)
	assert.False(t, s.Placeholder)
}

func TestResolve_UnknownID(t *testing.T) {
	_, ok := Resolve(document.Defaults(), "custom-999")
	assert.False(t, ok)
}

func TestResolveOrder_SkipsDanglingIDs(t *testing.T) {
	doc := document.Defaults()
	doc.CustomSections = []types.CustomSection{{ID: "custom-1", Title: "Talks", Content: "GopherCon"}}
	doc.SectionOrder = []string{"experience", "custom-999", "custom-1", "summary", "skills", "education"}

	got := ResolveOrder(doc)

	ids := make([]string, 0, len(got))
	for _, s := range got {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"experience", "custom-1", "summary", "skills", "education"}, ids)
}

func TestResolveOrder_RepairsUnrepairedOrder(t *testing.T) {
	doc := document.Defaults()
	doc.SectionOrder = []string{"education", "education"}

	got := ResolveOrder(doc)
	require.Len(t, got, 4)
	assert.Equal(t, "education", got[0].ID)
	assert.Equal(t, "summary", got[1].ID)
}

func TestFindAndWithout(t *testing.T) {
	list := ResolveOrder(document.Defaults())

	skills, ok := Find(list, "skills")
	require.True(t, ok)
	assert.Equal(t, "Skills", skills.Title)

	rest := Without(list, "skills")
	assert.Len(t, rest, 3)
	assert.Len(t, list, 4)
	_, ok = Find(rest, "skills")
	assert.False(t, ok)
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Experience", Title("experience"))
	assert.Equal(t, "", Title("custom-1"))
}
