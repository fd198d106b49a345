// Package engine binds canonical slide data to a template's layouts and
// placeholders and produces the in-memory rendered deck the pptx writer
// serializes.
//
// SYSTEM ARCHITECTURE ROLE:
// This module owns the resolution half of the pipeline: finding a layout by
// name (with every available name listed on failure; a missing layout is a
// user error, never a trigger for synthesizing shapes dynamically), finding
// a placeholder for a semantic field name, and applying formatted text runs
// and tables to slides. The deliberate absence of any dynamic-shape fallback
// is an architectural decision: silent fallbacks previously let broken
// mappings ship undetected.
package engine

import (
	"sort"

	"github.com/teknologika/Deckbuilder-sub002/internal/models"
	"github.com/teknologika/Deckbuilder-sub002/internal/naming"
)

// Template is the live template object: the ordered layout collection
// reconstructed from a template mapping.
type Template struct {
	Name    string
	Mapping *models.TemplateMapping
	layouts []*Layout
	byName  map[string]*Layout
}

// Layout is one slide layout with its placeholder table.
type Layout struct {
	Name         string
	Index        int
	Placeholders map[string]string // stringified placeholder index -> field name
}

// NewTemplate builds a template object from a loaded mapping.
func NewTemplate(name string, mapping *models.TemplateMapping) *Template {
	t := &Template{
		Name:    name,
		Mapping: mapping,
		byName:  make(map[string]*Layout, len(mapping.Layouts)),
	}
	for layoutName, lm := range mapping.Layouts {
		layout := &Layout{
			Name:         layoutName,
			Index:        lm.Index,
			Placeholders: lm.Placeholders,
		}
		t.layouts = append(t.layouts, layout)
		t.byName[layoutName] = layout
	}
	sort.Slice(t.layouts, func(i, j int) bool {
		if t.layouts[i].Index != t.layouts[j].Index {
			return t.layouts[i].Index < t.layouts[j].Index
		}
		return t.layouts[i].Name < t.layouts[j].Name
	})
	return t
}

// Layouts returns the layouts ordered by template position.
func (t *Template) Layouts() []*Layout {
	return t.layouts
}

// LayoutNames returns every layout name in template order.
func (t *Template) LayoutNames() []string {
	names := make([]string, len(t.layouts))
	for i, layout := range t.layouts {
		names[i] = layout.Name
	}
	return names
}

// FieldNames returns the layout's semantic field names sorted for stable
// error messages.
func (l *Layout) FieldNames() []string {
	fields := make([]string, 0, len(l.Placeholders))
	for _, field := range l.Placeholders {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// IsImageField reports whether a semantic field name refers to a picture
// placeholder. Image fields carry file paths, not display text, so both the
// engine and the post-generation validator treat them structurally.
func IsImageField(field string) bool {
	return containsWord(field, "image") || containsWord(field, "media")
}

// placeholderType infers a coarse semantic type for a placeholder from its
// mapped field name, for use as naming-convention input.
func placeholderType(field string) string {
	switch {
	case field == "subtitle":
		return "subtitle"
	case containsWord(field, "title"):
		return "title"
	case containsWord(field, "content"):
		return "content"
	case containsWord(field, "image"):
		return "image"
	case containsWord(field, "date"), containsWord(field, "footer"), containsWord(field, "slide_number"):
		return "footer"
	default:
		return "text"
	}
}

func containsWord(field, word string) bool {
	if field == word {
		return true
	}
	n, w := len(field), len(word)
	for i := 0; i+w <= n; i++ {
		if field[i:i+w] != word {
			continue
		}
		beforeOK := i == 0 || field[i-1] == '_'
		afterOK := i+w == n || field[i+w] == '_'
		if beforeOK && afterOK {
			return true
		}
	}
	return false
}

// NamingContexts returns one PlaceholderContext per placeholder of the
// layout, suitable for the naming convention.
func (l *Layout) NamingContexts() []models.PlaceholderContext {
	contexts := make([]models.PlaceholderContext, 0, len(l.Placeholders))
	for idx, field := range l.Placeholders {
		contexts = append(contexts, models.PlaceholderContext{
			LayoutName:      l.Name,
			PlaceholderIdx:  idx,
			PlaceholderType: placeholderType(field),
		})
	}
	sort.Slice(contexts, func(i, j int) bool {
		return contexts[i].PlaceholderIdx < contexts[j].PlaceholderIdx
	})
	return contexts
}

// ConventionNames returns the naming-convention field name for every
// placeholder index of the layout.
func (l *Layout) ConventionNames(convention *naming.Convention) map[string]string {
	names := make(map[string]string, len(l.Placeholders))
	for _, ctx := range l.NamingContexts() {
		names[ctx.PlaceholderIdx] = convention.PlaceholderName(ctx)
	}
	return names
}
