package models

import "sort"

// TemplateMapping describes one PowerPoint template: each layout's position
// in the template's layout collection and its placeholder-index → semantic
// field name table. Loaded from the per-template JSON mapping file and
// treated as read-only afterwards.
type TemplateMapping struct {
	TemplateInfo TemplateInfo             `json:"template_info"`
	Layouts      map[string]LayoutMapping `json:"layouts"`
}

// TemplateInfo carries descriptive metadata from the mapping file.
type TemplateInfo struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

// LayoutMapping maps one layout's placeholders. Placeholder keys are
// stringified PowerPoint placeholder indices; template authors do not
// guarantee the indices are contiguous or ordered left-to-right.
type LayoutMapping struct {
	Index        int               `json:"index"`
	Placeholders map[string]string `json:"placeholders"`
}

// FieldNames returns the layout's semantic field names, sorted for stable
// error messages.
func (l LayoutMapping) FieldNames() []string {
	names := make([]string, 0, len(l.Placeholders))
	for _, field := range l.Placeholders {
		names = append(names, field)
	}
	sort.Strings(names)
	return names
}

// LayoutNames returns every layout name in the mapping, ordered by the
// layout's position in the template.
func (m *TemplateMapping) LayoutNames() []string {
	names := make([]string, 0, len(m.Layouts))
	for name := range m.Layouts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := m.Layouts[names[i]], m.Layouts[names[j]]
		if a.Index != b.Index {
			return a.Index < b.Index
		}
		return names[i] < names[j]
	})
	return names
}

// PlaceholderContext identifies one raw placeholder encountered during
// template analysis: the layout it belongs to, its stringified index and a
// coarse semantic type ("title", "content", "text", ...). Equality is
// structural, so contexts are usable as map keys.
type PlaceholderContext struct {
	LayoutName      string
	PlaceholderIdx  string
	PlaceholderType string
}
