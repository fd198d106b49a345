// Package frontmatter expands structured layout shorthand into the flat
// placeholder field space a template actually exposes.
//
// SYSTEM ARCHITECTURE ROLE:
// Authors write compact, layout-specific YAML (columns: [...], comparison:
// {left:, right:}) instead of raw placeholder field names. This module owns
// the registry of structure definitions per layout and the converter that
// extracts values along dot/bracket paths and reassigns them to the field
// names pulled from the template mapping. Frontmatter for layouts without a
// structure definition passes through untouched, so generic authoring is
// never corrupted by the expansion step.
package frontmatter

import (
	"fmt"
	"strings"

	"github.com/teknologika/Deckbuilder-sub002/internal/errors"
	"github.com/teknologika/Deckbuilder-sub002/internal/models"
)

// StructureDefinition describes one layout's shorthand: the extraction rules
// (dot path → placeholder field name), the shorthand's root keys, and the
// sub-paths that must be present for the shorthand to be well formed.
type StructureDefinition struct {
	StructureType string
	MappingRules  map[string]string
	RootKeys      []string
	RequiredPaths []string
}

// Registry builds structure definitions against one template mapping, so
// the rules only ever target field names the template really has.
type Registry struct {
	mapping *models.TemplateMapping
}

// NewRegistry creates a registry bound to a template mapping.
func NewRegistry(mapping *models.TemplateMapping) *Registry {
	return &Registry{mapping: mapping}
}

// structureTemplate is a layout-independent shorthand shape; the registry
// instantiates it with the layout's real field names.
type structureTemplate struct {
	structureType string
	rootKeys      []string
	requiredPaths []string
	// rules maps extraction paths to target field names. Rules whose target
	// field is absent from the layout's mapping are dropped at build time.
	rules map[string]string
}

var structureTemplates = map[string]structureTemplate{
	"Four Columns With Titles":  columnStructure(4, true),
	"Four Columns":              columnStructure(4, false),
	"Three Columns With Titles": columnStructure(3, true),
	"Three Columns":             columnStructure(3, false),
	"Comparison": {
		structureType: "comparison_structure",
		rootKeys:      []string{"comparison"},
		requiredPaths: []string{"comparison.left", "comparison.right"},
		rules: map[string]string{
			"title":                    "title",
			"comparison.left.title":    "title_left",
			"comparison.left.content":  "content_left",
			"comparison.right.title":   "title_right",
			"comparison.right.content": "content_right",
		},
	},
	"SWOT Analysis": {
		structureType: "swot_structure",
		rootKeys:      []string{"swot"},
		requiredPaths: []string{"swot.strengths", "swot.weaknesses", "swot.opportunities", "swot.threats"},
		rules: map[string]string{
			"title":              "title",
			"swot.strengths":     "content_16",
			"swot.weaknesses":    "content_17",
			"swot.opportunities": "content_18",
			"swot.threats":       "content_19",
		},
	},
	"Picture with Caption": {
		structureType: "media_structure",
		rootKeys:      []string{"media"},
		requiredPaths: []string{"media.image_path"},
		rules: map[string]string{
			"title":            "title",
			"media.image_path": "image_1",
			"media.caption":    "text_caption_1",
		},
	},
}

// columnStructure builds the template for N-column layouts.
func columnStructure(columns int, titled bool) structureTemplate {
	st := structureTemplate{
		structureType: fmt.Sprintf("%s_column", numberWord(columns)),
		rootKeys:      []string{"columns"},
		rules:         map[string]string{"title": "title"},
	}
	if titled {
		st.structureType += "_titled"
	}
	for i := 0; i < columns; i++ {
		st.rules[fmt.Sprintf("columns[%d].content", i)] = fmt.Sprintf("content_col%d", i+1)
		if titled {
			st.rules[fmt.Sprintf("columns[%d].title", i)] = fmt.Sprintf("title_col%d", i+1)
		}
	}
	return st
}

func numberWord(n int) string {
	switch n {
	case 2:
		return "two"
	case 3:
		return "three"
	case 4:
		return "four"
	}
	return fmt.Sprintf("%d", n)
}

// SupportedLayouts lists the layouts with a structured shorthand, in no
// particular order.
func (r *Registry) SupportedLayouts() []string {
	layouts := make([]string, 0, len(structureTemplates))
	for name := range structureTemplates {
		layouts = append(layouts, name)
	}
	return layouts
}

// StructureDefinition instantiates the layout's structure template against
// the template mapping's real field names. Returns false when the layout has
// no structured shorthand.
func (r *Registry) StructureDefinition(layoutName string) (StructureDefinition, bool) {
	st, ok := structureTemplates[layoutName]
	if !ok {
		return StructureDefinition{}, false
	}

	def := StructureDefinition{
		StructureType: st.structureType,
		MappingRules:  make(map[string]string, len(st.rules)),
		RootKeys:      st.rootKeys,
		RequiredPaths: st.requiredPaths,
	}

	layoutFields := r.layoutFieldSet(layoutName)
	for path, field := range st.rules {
		// Keep the rule when the template exposes the field, or when we have
		// no mapping information for the layout at all.
		if layoutFields == nil || layoutFields[field] || field == "title" {
			def.MappingRules[path] = field
		}
	}
	return def, true
}

// layoutFieldSet returns the layout's field names, or nil when the mapping
// does not cover the layout.
func (r *Registry) layoutFieldSet(layoutName string) map[string]bool {
	if r.mapping == nil {
		return nil
	}
	layout, ok := r.mapping.Layouts[layoutName]
	if !ok {
		return nil
	}
	fields := make(map[string]bool, len(layout.Placeholders))
	for _, field := range layout.Placeholders {
		fields[field] = true
	}
	return fields
}

// Validate checks a structured frontmatter block for the sub-structures its
// layout requires. Frontmatter without a layout key, or for a layout with no
// shorthand, is always valid here.
func (r *Registry) Validate(fm map[string]interface{}) error {
	layoutName, _ := fm["layout"].(string)
	def, ok := r.StructureDefinition(layoutName)
	if !ok {
		return nil
	}

	// Only validate when the author actually used the shorthand.
	used := false
	for _, root := range def.RootKeys {
		if _, present := fm[root]; present {
			used = true
		}
	}
	if !used {
		return nil
	}

	var missing []string
	for _, path := range def.RequiredPaths {
		if _, ok := extract(fm, path); !ok {
			missing = append(missing, path)
		}
	}
	if len(missing) > 0 {
		return errors.NewValidationError(
			fmt.Sprintf("structured frontmatter for layout '%s' is missing: %s",
				layoutName, strings.Join(missing, ", ")),
			fmt.Sprintf("add the missing sections; run \"deckbuilder patterns example '%s'\" for a complete example", layoutName))
	}
	return nil
}
