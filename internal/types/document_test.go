package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_JSONKeys(t *testing.T) {
	doc := Document{
		FullName: "Asha Rao",
		Style:    Style{Font: FontSerif, Size: SizeLarge, AccentColor: "#123456", TextColor: "#333", TemplateID: "modern"},
	}

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "Asha Rao", raw["fullName"])

	design, ok := raw["design"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "serif", design["font"])
	assert.Equal(t, "#123456", design["color"])
	assert.Equal(t, "modern", design["template"])
}

func TestDocument_Clone(t *testing.T) {
	doc := Document{
		Skills:         []string{"Go"},
		SectionOrder:   []string{"summary"},
		CustomSections: []CustomSection{{ID: "custom-1", Title: "Awards"}},
	}

	clone := doc.Clone()
	clone.Skills[0] = "Rust"
	clone.SectionOrder[0] = "skills"
	clone.CustomSections[0].Title = "Prizes"

	assert.Equal(t, "Go", doc.Skills[0])
	assert.Equal(t, "summary", doc.SectionOrder[0])
	assert.Equal(t, "Awards", doc.CustomSections[0].Title)
}

func TestDocument_CustomSection(t *testing.T) {
	doc := Document{CustomSections: []CustomSection{{ID: "custom-1", Title: "Awards"}}}

	cs, ok := doc.CustomSection("custom-1")
	assert.True(t, ok)
	assert.Equal(t, "Awards", cs.Title)

	_, ok = doc.CustomSection("custom-2")
	assert.False(t, ok)
}

func TestIsBuiltinSection(t *testing.T) {
	for _, id := range BuiltinSectionIDs() {
		assert.True(t, IsBuiltinSection(id), id)
	}
	assert.False(t, IsBuiltinSection("custom-1"))
	assert.False(t, IsBuiltinSection(""))
}

func TestCandidate_UnmarshalJSON(t *testing.T) {
	input := `{
		"fullName": "Asha Rao",
		"email": null,
		"phone": 5550100,
		"skills": "Go, Rust",
		"experience": [{"title": "Engineer"}]
	}`

	var c Candidate
	require.NoError(t, json.Unmarshal([]byte(input), &c))

	assert.Equal(t, "Asha Rao", Str(c.FullName))
	assert.Nil(t, c.Email)
	assert.Nil(t, c.Phone)
	assert.JSONEq(t, `"Go, Rust"`, string(c.Skills))
	assert.JSONEq(t, `[{"title": "Engineer"}]`, string(c.Experience))
	assert.Nil(t, c.Education)
}

func TestCandidate_UnmarshalJSON_NotObject(t *testing.T) {
	var c Candidate
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &c))
}
