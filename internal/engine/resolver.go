package engine

import (
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/teknologika/Deckbuilder-sub002/internal/errors"
	"github.com/teknologika/Deckbuilder-sub002/internal/naming"
)

// LayoutLookup is the result of a layout resolution. Exactly one of Layout
// or Available is populated, forcing callers to handle the not-found case
// explicitly instead of relying on exception flow.
type LayoutLookup struct {
	Layout    *Layout
	Available []string
}

// Found reports whether the lookup resolved.
func (r LayoutLookup) Found() bool {
	return r.Layout != nil
}

// LayoutResolver finds layouts by exact display name. There is no dynamic
// fallback: a missing layout is a hard failure carrying every valid name.
type LayoutResolver struct {
	template *Template
}

// NewLayoutResolver creates a resolver over a template.
func NewLayoutResolver(template *Template) *LayoutResolver {
	return &LayoutResolver{template: template}
}

// Resolve looks a layout up by exact name.
func (r *LayoutResolver) Resolve(name string) LayoutLookup {
	if layout, ok := r.template.byName[name]; ok {
		return LayoutLookup{Layout: layout}
	}
	return LayoutLookup{Available: r.template.LayoutNames()}
}

// GetLayoutByName resolves a layout or fails with a message that enumerates
// all available layout names plus close-match suggestions, so the author can
// self-correct without opening the mapping file.
func (r *LayoutResolver) GetLayoutByName(name string) (*Layout, error) {
	lookup := r.Resolve(name)
	if lookup.Found() {
		return lookup.Layout, nil
	}

	message := fmt.Sprintf("layout '%s' not found in template '%s'. Available layouts: %s",
		name, r.template.Name, strings.Join(lookup.Available, ", "))
	if suggestions := closeMatches(name, lookup.Available); len(suggestions) > 0 {
		message += fmt.Sprintf(". Did you mean: %s?", strings.Join(suggestions, ", "))
	}
	return nil, errors.NewAppError(errors.ErrCodeLayoutNotFound,
		message+" Fix: use one of the listed layout names in the slide's 'layout' field")
}

// closeMatches returns up to three fuzzy matches for a misspelled name.
func closeMatches(name string, available []string) []string {
	matches := fuzzy.Find(name, available)
	var suggestions []string
	for i, match := range matches {
		if i >= 3 {
			break
		}
		suggestions = append(suggestions, available[match.Index])
	}
	return suggestions
}

// PlaceholderResolver finds the placeholder index for a semantic field name
// within one layout. Resolution has two strictness levels:
//
//   - Strict (validation): only an exact field-name match from the mapping,
//     or the universal 'title'/'subtitle' keys, are accepted. This catches
//     typo'd field names before generation.
//   - Lenient (render time): additionally consults the naming convention,
//     so templates with sparse mappings still resolve. The convention is a
//     pure function of the context, which keeps lenient lookup deterministic.
type PlaceholderResolver struct {
	layout     *Layout
	convention *naming.Convention
}

// NewPlaceholderResolver creates a resolver for one layout.
func NewPlaceholderResolver(layout *Layout, convention *naming.Convention) *PlaceholderResolver {
	return &PlaceholderResolver{layout: layout, convention: convention}
}

// ResolveStrict returns the placeholder index for field under validation
// rules.
func (r *PlaceholderResolver) ResolveStrict(field string) (string, bool) {
	for idx, mapped := range r.layout.Placeholders {
		if mapped == field {
			return idx, true
		}
	}
	// 'title' and 'subtitle' are universal semantics: any template's index 0
	// is a title, and a subtitle placeholder keeps its meaning regardless of
	// the mapped name.
	switch field {
	case "title":
		if _, ok := r.layout.Placeholders["0"]; ok {
			return "0", true
		}
	case "subtitle":
		for idx, mapped := range r.layout.Placeholders {
			if mapped == "subtitle" || placeholderType(mapped) == "subtitle" {
				return idx, true
			}
		}
	}
	return "", false
}

// Resolve returns the placeholder index for field under render-time rules.
func (r *PlaceholderResolver) Resolve(field string) (string, bool) {
	if idx, ok := r.ResolveStrict(field); ok {
		return idx, true
	}
	for idx, name := range r.layout.ConventionNames(r.convention) {
		if name == field {
			return idx, true
		}
	}
	// title_top and title are interchangeable at render time.
	if field == "title" || field == "title_top" {
		if _, ok := r.layout.Placeholders["0"]; ok {
			return "0", true
		}
	}
	return "", false
}

// ResolveOrError resolves leniently or fails with the layout's valid field
// names listed.
func (r *PlaceholderResolver) ResolveOrError(field string) (string, error) {
	if idx, ok := r.Resolve(field); ok {
		return idx, nil
	}
	return "", errors.NewAppError(errors.ErrCodePlaceholderUnresolved,
		fmt.Sprintf("field '%s' has no placeholder in layout '%s'. Valid fields: %s. Fix: rename the field or pick a layout that provides it",
			field, r.layout.Name, strings.Join(r.layout.FieldNames(), ", ")))
}
