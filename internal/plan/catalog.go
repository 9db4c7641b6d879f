package plan

import (
	"errors"
	"strings"
)

// ErrTemplateNotRegistered is returned when a goal resolves to a key without a template.
var ErrTemplateNotRegistered = errors.New("no plan template registered")

// goalTemplates maps normalized goal distances to template keys.
var goalTemplates = map[string]string{
	"5k":           Template5K,
	"10k":          Template10K,
	"half":         TemplateHalfMarathon,
	"halfmarathon": TemplateHalfMarathon,
	"21k":          TemplateHalfMarathon,
	"marathon":     TemplateMarathon,
	"fullmarathon": TemplateMarathon,
	"42k":          TemplateMarathon,
}

// Catalog resolves goals to templates.
type Catalog struct {
	templates map[string]Template
}

// NewCatalog builds a catalog over the given templates.
func NewCatalog(templates map[string]Template) *Catalog {
	return &Catalog{templates: templates}
}

// DefaultCatalog returns a catalog over DefaultTemplates.
func DefaultCatalog() *Catalog {
	return NewCatalog(DefaultTemplates)
}

// TemplateKey maps a goal distance to its template key. Unknown goals fall back to 5K.
func TemplateKey(goal string) string {
	if key, ok := goalTemplates[normalizeGoal(goal)]; ok {
		return key
	}
	return Template5K
}

// Lookup returns the template for goal along with its key.
func (c *Catalog) Lookup(goal string) (string, Template, error) {
	key := TemplateKey(goal)
	t, ok := c.templates[key]
	if !ok {
		return key, Template{}, ErrTemplateNotRegistered
	}
	return key, t, nil
}

func normalizeGoal(goal string) string {
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(strings.ToLower(strings.TrimSpace(goal)))
}
