package document

import (
	"strings"
	"testing"

	"github.com/TheSagarV/ATS-AI-RESUME/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCustomSection(t *testing.T) {
	doc := Defaults()

	updated, id := AddCustomSection(doc, "Awards", UUIDSource{})

	assert.True(t, strings.HasPrefix(id, "custom-"))
	require.Len(t, updated.CustomSections, 1)
	assert.Equal(t, types.CustomSection{ID: id, Title: "Awards"}, updated.CustomSections[0])
	assert.Equal(t, id, updated.SectionOrder[len(updated.SectionOrder)-1])
	assert.Empty(t, doc.CustomSections, "original document must not change")
}

func TestAddCustomSection_NilSourceUsesUUID(t *testing.T) {
	_, id := AddCustomSection(Defaults(), "Talks", nil)
	assert.True(t, strings.HasPrefix(id, "custom-"))
	assert.Greater(t, len(id), len("custom-"))
}

func TestCustomSectionIDs_NeverReused(t *testing.T) {
	sources := map[string]IDSource{
		"uuid":    UUIDSource{},
		"counter": &CounterSource{},
	}

	for name, src := range sources {
		t.Run(name, func(t *testing.T) {
			doc := Defaults()
			seen := map[string]bool{}

			for i := 0; i < 5; i++ {
				var id string
				doc, id = AddCustomSection(doc, "Section", src)
				assert.False(t, seen[id], "id %s reused", id)
				seen[id] = true

				// Deleting the newest section must not free its id.
				doc = RemoveCustomSection(doc, id)
			}
		})
	}
}

func TestCounterSource_SkipsObservedIDs(t *testing.T) {
	doc := Defaults()
	doc.CustomSections = []types.CustomSection{{ID: "custom-1699999999999", Title: "Old"}}
	doc.SectionOrder = append(doc.SectionOrder, "custom-1699999999999", "custom-42")

	src := &CounterSource{}
	assert.Equal(t, "custom-1700000000000", src.NextID(doc))
	assert.Equal(t, "custom-1700000000001", src.NextID(Defaults()))
}

func TestUpdateCustomSection(t *testing.T) {
	doc, id := AddCustomSection(Defaults(), "Awards", &CounterSource{})

	updated := UpdateCustomSection(doc, id, "Honours", "Dean's list\nScholarship")
	cs, ok := updated.CustomSection(id)
	require.True(t, ok)
	assert.Equal(t, "Honours", cs.Title)
	assert.Equal(t, "Dean's list\nScholarship", cs.Content)

	same := UpdateCustomSection(doc, "custom-missing", "x", "y")
	assert.Equal(t, doc, same)
}

func TestRemoveCustomSection(t *testing.T) {
	doc, first := AddCustomSection(Defaults(), "One", &CounterSource{})
	doc, second := AddCustomSection(doc, "Two", &CounterSource{})

	removed := RemoveCustomSection(doc, first)
	assert.NotContains(t, removed.SectionOrder, first)
	assert.Contains(t, removed.SectionOrder, second)
	_, ok := removed.CustomSection(first)
	assert.False(t, ok)

	// Original keeps both.
	assert.Contains(t, doc.SectionOrder, first)
	assert.Len(t, doc.CustomSections, 2)

	// Built-ins stay.
	assert.Equal(t, doc.SectionOrder, RemoveCustomSection(doc, "skills").SectionOrder)
}
