// Package validation implements the end-to-end fidelity checks around deck
// generation.
//
// SYSTEM ARCHITECTURE ROLE:
// This module is the quality gate on both sides of the rendering engine.
// Three stages run in order:
//
//  1. Markdown-to-canonical: the converted deck must preserve the authored
//     structure (one slide per section, same layouts, critical fields kept).
//  2. Pre-generation: every slide's layout must exist in the template and
//     every placeholder field must map under strict rules, so typos fail
//     before any file is produced.
//  3. Post-generation: the rendered deck must contain what the canonical
//     deck promised (slide count, layouts, content presence, tables
//     materialized).
//
// Each stage collects every discrepancy it finds and reports them together,
// so one run surfaces all problems instead of the first.
//
// VALIDATION ASYMMETRY:
// Pre-generation is deliberately stricter than render-time resolution. The
// engine's lenient resolver accepts naming-convention aliases so sparse
// mappings still render; the validator accepts only exact mapping names plus
// the universal title/subtitle semantics. A field the validator rejects but
// the engine could resolve is treated as an authoring mistake worth fixing.
package validation

import (
	"fmt"
	"strings"

	"github.com/teknologika/Deckbuilder-sub002/internal/engine"
	"github.com/teknologika/Deckbuilder-sub002/internal/errors"
	"github.com/teknologika/Deckbuilder-sub002/internal/formatting"
	"github.com/teknologika/Deckbuilder-sub002/internal/models"
	"github.com/teknologika/Deckbuilder-sub002/internal/naming"
	"github.com/teknologika/Deckbuilder-sub002/internal/tables"
)

// PresentationValidator runs the three validation stages.
type PresentationValidator struct {
	convention *naming.Convention
	tables     *tables.Handler
}

// New creates a presentation validator.
func New() *PresentationValidator {
	return &PresentationValidator{
		convention: naming.NewConvention(),
		tables:     tables.NewHandler(),
	}
}

// SourceSection is the per-section digest of the authored markdown used for
// conversion fidelity checks.
type SourceSection struct {
	Layout string
	Fields []string
}

// ValidateMarkdownToJSON checks that conversion preserved the authored
// structure: one slide per section, identical layouts in order, and the
// critical fields still present on each slide.
func (v *PresentationValidator) ValidateMarkdownToJSON(sections []SourceSection, deck *models.Deck) error {
	var errs []*errors.ValidationError

	if len(sections) != len(deck.Slides) {
		errs = append(errs, errors.NewValidationError(
			fmt.Sprintf("conversion produced %d slides from %d sections", len(deck.Slides), len(sections)),
			"every frontmatter section must become exactly one slide"))
	}

	limit := len(sections)
	if len(deck.Slides) < limit {
		limit = len(deck.Slides)
	}
	for i := 0; i < limit; i++ {
		section := sections[i]
		slide := deck.Slides[i]

		if section.Layout != "" && slide.Layout != section.Layout {
			errs = append(errs, errors.NewValidationError(
				fmt.Sprintf("layout changed during conversion from '%s' to '%s'", section.Layout, slide.Layout),
				"the converter must carry the authored layout through unchanged").ForSlide(i+1))
		}
		for _, field := range section.Fields {
			if !v.criticalField(field) {
				continue
			}
			if _, ok := slide.Placeholders[field]; !ok {
				errs = append(errs, errors.NewValidationError(
					fmt.Sprintf("field '%s' was lost during conversion", field),
					"critical fields must survive markdown-to-canonical conversion").ForSlide(i+1))
			}
		}
	}

	if agg := errors.AggregateValidationErrors("markdown-to-canonical", errs); agg != nil {
		return agg
	}
	return nil
}

// criticalField reports whether a field's loss during conversion is a
// fidelity failure. Structured shorthand roots are consumed by conversion
// and legitimately disappear.
func (v *PresentationValidator) criticalField(field string) bool {
	switch field {
	case "layout", "style", "comparison", "columns", "swot", "media",
		"header_font_size", "data_font_size":
		return false
	}
	return true
}

// ValidatePreGeneration checks every slide against the template under strict
// resolution rules. Failures name the offending field and slide and list the
// layout's valid field names.
func (v *PresentationValidator) ValidatePreGeneration(deck *models.Deck, template *engine.Template) error {
	var errs []*errors.ValidationError
	layouts := engine.NewLayoutResolver(template)

	for i, slide := range deck.Slides {
		lookup := layouts.Resolve(slide.Layout)
		if !lookup.Found() {
			errs = append(errs, errors.NewValidationError(
				fmt.Sprintf("layout '%s' does not exist in template '%s'. Available layouts: %s",
					slide.Layout, template.Name, strings.Join(lookup.Available, ", ")),
				"use one of the listed layout names").ForSlide(i+1))
			continue
		}

		layout := lookup.Layout
		resolver := engine.NewPlaceholderResolver(layout, v.convention)
		for field := range slide.Placeholders {
			if v.styleField(field) {
				continue
			}
			if _, ok := resolver.ResolveStrict(field); !ok {
				errs = append(errs, errors.NewValidationError(
					fmt.Sprintf("no placeholder accepts this field in layout '%s'. Valid fields: %s",
						layout.Name, strings.Join(layout.FieldNames(), ", ")),
					"rename the field to one of the valid names").ForSlide(i+1).ForField(field))
			}
		}
	}

	if agg := errors.AggregateValidationErrors("pre-generation", errs); agg != nil {
		return agg
	}
	return nil
}

// styleField mirrors the engine's style-key handling: these keys configure
// rendering and never name a placeholder.
func (v *PresentationValidator) styleField(field string) bool {
	switch field {
	case "style", "header_font_size", "data_font_size", "row_style", "border_style":
		return true
	}
	return false
}

// ValidatePostGeneration checks the rendered deck against the canonical deck
// it was produced from: same slide count, same layouts, every promised text
// present, every table materialized.
func (v *PresentationValidator) ValidatePostGeneration(deck *models.Deck, rendered *models.RenderedDeck) error {
	var errs []*errors.ValidationError

	if len(deck.Slides) != len(rendered.Slides) {
		errs = append(errs, errors.NewValidationError(
			fmt.Sprintf("rendered %d slides but the deck has %d", len(rendered.Slides), len(deck.Slides)),
			"every canonical slide must produce exactly one rendered slide"))
	}

	limit := len(deck.Slides)
	if len(rendered.Slides) < limit {
		limit = len(rendered.Slides)
	}
	for i := 0; i < limit; i++ {
		slide := deck.Slides[i]
		renderedSlide := rendered.Slides[i]

		if renderedSlide.LayoutName != slide.Layout {
			errs = append(errs, errors.NewValidationError(
				fmt.Sprintf("rendered with layout '%s' instead of '%s'", renderedSlide.LayoutName, slide.Layout),
				"the renderer must use the slide's requested layout").ForSlide(i+1))
		}

		slideText := normalizeForPresence(renderedSlide.Text())
		for field, value := range slide.Placeholders {
			if v.styleField(field) {
				continue
			}
			switch val := value.(type) {
			case string:
				if engine.IsImageField(field) {
					if !imageMaterialized(renderedSlide, field) {
						errs = append(errs, errors.NewValidationError(
							"image was not materialized as a picture shape",
							"image fields must render as pictures").ForSlide(i+1).ForField(field))
					}
					continue
				}
				if v.tables.DetectTable(val) {
					if !tableMaterialized(renderedSlide, field) {
						errs = append(errs, errors.NewValidationError(
							"table was not materialized as a table shape",
							"table placeholder values must render as tables").ForSlide(i+1).ForField(field))
					}
					continue
				}
				expected := normalizeForPresence(val)
				if expected == "" {
					continue
				}
				if !strings.Contains(slideText, expected) {
					errs = append(errs, errors.NewValidationError(
						"content is missing from the rendered slide",
						"the field's text must appear on the slide").ForSlide(i+1).ForField(field))
				}
			case *models.Table:
				if !tableMaterialized(renderedSlide, field) {
					errs = append(errs, errors.NewValidationError(
						"table was not materialized as a table shape",
						"table placeholder values must render as tables").ForSlide(i+1).ForField(field))
				}
			}
		}

		for _, block := range slide.Content {
			if block.Type() == "table" && len(renderedSlide.Tables) == 0 {
				errs = append(errs, errors.NewValidationError(
					"body table block produced no table shape",
					"table content blocks must render as tables").ForSlide(i+1))
				break
			}
		}
	}

	if agg := errors.AggregateValidationErrors("post-generation", errs); agg != nil {
		return agg
	}
	return nil
}

func imageMaterialized(slide *models.RenderedSlide, field string) bool {
	for _, image := range slide.Images {
		if image.Field == field {
			return true
		}
	}
	return false
}

func tableMaterialized(slide *models.RenderedSlide, field string) bool {
	for _, table := range slide.Tables {
		if table.Field == field {
			return true
		}
	}
	return false
}

// normalizeForPresence lowercases text and strips formatting markers and
// whitespace runs, so presence checks ignore styling differences. A field
// whose value is a table is checked structurally, not textually.
func normalizeForPresence(text string) string {
	stripped := strings.ToLower(formatting.StripMarkers(text))
	return strings.Join(strings.Fields(stripped), " ")
}
