package document

import (
	"strconv"
	"strings"
	"sync"

	"github.com/TheSagarV/ATS-AI-RESUME/internal/types"
	"github.com/google/uuid"
)

const customIDPrefix = "custom-"

// IDSource generates custom section ids. Ids must be unique within the document
// and never handed out twice by the same source.
type IDSource interface {
	NextID(doc types.Document) string
}

// UUIDSource issues "custom-<uuidv7>" ids.
type UUIDSource struct{}

// NextID implements IDSource.
func (UUIDSource) NextID(types.Document) string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return customIDPrefix + id.String()
}

// CounterSource issues "custom-<n>" ids with n above every numeric suffix it has seen.
type CounterSource struct {
	mu   sync.Mutex
	last int64
}

// NextID implements IDSource.
func (c *CounterSource) NextID(doc types.Document) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, cs := range doc.CustomSections {
		c.observe(cs.ID)
	}
	for _, id := range doc.SectionOrder {
		c.observe(id)
	}
	c.last++
	return customIDPrefix + strconv.FormatInt(c.last, 10)
}

func (c *CounterSource) observe(id string) {
	n, err := strconv.ParseInt(strings.TrimPrefix(id, customIDPrefix), 10, 64)
	if err == nil && strings.HasPrefix(id, customIDPrefix) && n > c.last {
		c.last = n
	}
}

// AddCustomSection appends a new custom section and its id to the order.
// It returns the updated document and the new id.
func AddCustomSection(doc types.Document, title string, ids IDSource) (types.Document, string) {
	if ids == nil {
		ids = UUIDSource{}
	}

	out := doc.Clone()
	id := ids.NextID(out)
	for {
		_, taken := out.CustomSection(id)
		if !taken && indexOf(out.SectionOrder, id) < 0 {
			break
		}
		id = ids.NextID(out)
	}

	out.CustomSections = append(out.CustomSections, types.CustomSection{ID: id, Title: title})
	out.SectionOrder = append(out.SectionOrder, id)
	return out, id
}

// UpdateCustomSection replaces the title and content of a custom section.
// Unknown ids leave the document unchanged.
func UpdateCustomSection(doc types.Document, id, title, content string) types.Document {
	out := doc.Clone()
	for i := range out.CustomSections {
		if out.CustomSections[i].ID == id {
			out.CustomSections[i].Title = title
			out.CustomSections[i].Content = content
			break
		}
	}
	return out
}

// RemoveCustomSection deletes a custom section and its order entry.
// Built-in ids cannot be removed.
func RemoveCustomSection(doc types.Document, id string) types.Document {
	out := doc.Clone()
	if types.IsBuiltinSection(id) {
		return out
	}

	sections := out.CustomSections[:0]
	for _, cs := range out.CustomSections {
		if cs.ID != id {
			sections = append(sections, cs)
		}
	}
	out.CustomSections = sections

	order := out.SectionOrder[:0]
	for _, sid := range out.SectionOrder {
		if sid != id {
			order = append(order, sid)
		}
	}
	out.SectionOrder = order
	return out
}
