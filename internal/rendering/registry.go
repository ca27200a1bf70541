package rendering

import (
	"fmt"
	"strings"
	"sync"

	"github.com/TheSagarV/ATS-AI-RESUME/internal/types"
	"gopkg.in/yaml.v3"
)

// DefaultTemplateID is the template unknown, empty and retired ids resolve to.
const DefaultTemplateID = "classic"

// TemplateInfo describes a registered template.
type TemplateInfo struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Family      string `json:"family" yaml:"family"`
	Default     bool   `json:"default" yaml:"-"`
}

// Renderer pairs a template's metadata with its layout and produces both targets.
type Renderer struct {
	info   TemplateInfo
	layout Layout
}

// NewRenderer creates a renderer for one template.
func NewRenderer(info TemplateInfo, layout Layout) *Renderer {
	return &Renderer{info: info, layout: layout}
}

// ID returns the template id.
func (r *Renderer) ID() string { return r.info.ID }

// Info returns the template metadata.
func (r *Renderer) Info() TemplateInfo { return r.info }

// Tree renders doc as a component tree for the interactive preview.
func (r *Renderer) Tree(doc types.Document) *Node {
	return r.layout.Build(NewView(doc))
}

// Markup renders doc as a self-contained A4 HTML document for export.
func (r *Renderer) Markup(doc types.Document) (string, error) {
	v := NewView(doc)
	return Markup(r.layout.Build(v), v.Theme, v.Name)
}

// Registry maps template ids to renderers. The first registered renderer is
// the fallback returned for ids that are not registered.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]*Renderer
	order     []string
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		renderers: make(map[string]*Renderer),
	}
}

// Register adds a renderer by its ID. Duplicate ids return an error.
func (r *Registry) Register(renderer *Renderer) error {
	if renderer == nil || renderer.layout == nil {
		return fmt.Errorf("rendering: renderer with a layout is required")
	}
	id := renderer.ID()
	if id == "" {
		return fmt.Errorf("rendering: template id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.renderers[id]; exists {
		return fmt.Errorf("rendering: template %q already registered", id)
	}

	r.renderers[id] = renderer
	r.order = append(r.order, id)
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(renderer *Renderer) {
	if err := r.Register(renderer); err != nil {
		panic(err)
	}
}

// Get returns the renderer for id, falling back to the default renderer when
// id is unknown. It returns nil only for an empty registry.
func (r *Registry) Get(id string) *Renderer {
	if renderer, ok := r.Lookup(id); ok {
		return renderer
	}
	return r.Default()
}

// Lookup returns the renderer registered under id, without fallback.
func (r *Registry) Lookup(id string) (*Renderer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	renderer, ok := r.renderers[id]
	return renderer, ok
}

// Default returns the first registered renderer.
func (r *Registry) Default() *Renderer {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.order) == 0 {
		return nil
	}
	return r.renderers[r.order[0]]
}

// Resolve returns the id Get would use for id.
func (r *Registry) Resolve(id string) string {
	if renderer := r.Get(id); renderer != nil {
		return renderer.ID()
	}
	return ""
}

// Has reports whether a template id is registered.
func (r *Registry) Has(id string) bool {
	_, ok := r.Lookup(id)
	return ok
}

// List returns template metadata in registration order.
func (r *Registry) List() []TemplateInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]TemplateInfo, 0, len(r.order))
	for i, id := range r.order {
		info := r.renderers[id].info
		info.Default = i == 0
		out = append(out, info)
	}
	return out
}

// layouts holds the implementation behind every catalog id.
var layouts = map[string]Layout{
	"classic":          Classic{},
	"modern":           Modern{},
	"minimal":          Minimal{},
	"clean-resume":     CleanResume{},
	"dense-ux":         DenseUX{},
	"modern-split":     ModernSplit{},
	"rounded-sections": RoundedSections{},
	"soft-sidebar":     SoftSidebar{},
	"clean-single":     CleanSingle{},
}

type catalog struct {
	Templates []TemplateInfo `yaml:"templates"`
}

// LoadCatalog reads the embedded template catalog.
func LoadCatalog() ([]TemplateInfo, error) {
	data, err := assets.ReadFile("assets/catalog.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read template catalog: %w", err)
	}
	var c catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse template catalog: %w", err)
	}
	return c.Templates, nil
}

// NewDefaultRegistry builds a registry with every catalog template, in catalog order.
func NewDefaultRegistry() (*Registry, error) {
	infos, err := LoadCatalog()
	if err != nil {
		return nil, err
	}

	reg := NewRegistry()
	for _, info := range infos {
		layout, ok := layouts[info.ID]
		if !ok {
			return nil, fmt.Errorf("rendering: no layout for template %q", info.ID)
		}
		if err := reg.Register(NewRenderer(info, layout)); err != nil {
			return nil, err
		}
	}
	if d := reg.Default(); d == nil || d.ID() != DefaultTemplateID {
		return nil, fmt.Errorf("rendering: catalog must list %q first", DefaultTemplateID)
	}
	return reg, nil
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the shared, read-only registry of built-in templates.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		reg, err := NewDefaultRegistry()
		if err != nil {
			panic(err)
		}
		defaultRegistry = reg
	})
	return defaultRegistry
}

// TemplateFor picks the template id to render doc with. An explicit request
// wins; otherwise the id saved in the document's design is used. An empty
// result resolves to the registry default.
func TemplateFor(requested string, doc types.Document) string {
	if id := strings.TrimSpace(requested); id != "" {
		return id
	}
	return strings.TrimSpace(doc.Style.TemplateID)
}
