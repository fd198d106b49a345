// Package converter is the single normalization boundary between
// human-authored markdown and the canonical presentation contract.
//
// SYSTEM ARCHITECTURE ROLE:
// A source document is a sequence of YAML frontmatter blocks, each followed
// by an optional markdown body. The converter splits the document, parses
// each frontmatter block, expands structured layout shorthand, detects
// markdown pipe tables embedded in string fields, and emits the canonical
// deck every downstream component consumes. Its job is only to detect and
// restructure tables; non-table text keeps its formatting markers intact
// for the render-time content builders to interpret.
package converter

import (
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/teknologika/Deckbuilder-sub002/internal/errors"
	"github.com/teknologika/Deckbuilder-sub002/internal/frontmatter"
	"github.com/teknologika/Deckbuilder-sub002/internal/models"
	"github.com/teknologika/Deckbuilder-sub002/internal/tables"
)

// DefaultLayout is used when a section's frontmatter has no layout key.
const DefaultLayout = "Title and Content"

var delimiterPattern = regexp.MustCompile(`^---\s*$`)

// Section is one (frontmatter, body) pair of the source document.
type Section struct {
	Frontmatter string
	Body        string
}

// Converter turns markdown documents into canonical decks.
type Converter struct {
	structured *frontmatter.Converter
	tables     *tables.Handler
}

// New creates a converter. The structured-frontmatter converter is built
// against the target template's mapping so shorthand expansion targets real
// field names.
func New(structured *frontmatter.Converter) *Converter {
	return &Converter{
		structured: structured,
		tables:     tables.NewHandler(),
	}
}

// SplitSections splits a document on frontmatter delimiter lines. Content
// before the first delimiter, or a frontmatter block with no closing
// delimiter, is a structural error naming the offending section.
func SplitSections(markdown string) ([]Section, error) {
	lines := strings.Split(markdown, "\n")

	var blocks []string
	var current []string
	for _, line := range lines {
		if delimiterPattern.MatchString(line) {
			blocks = append(blocks, strings.Join(current, "\n"))
			current = current[:0]
			continue
		}
		current = append(current, line)
	}
	blocks = append(blocks, strings.Join(current, "\n"))

	if len(blocks) == 0 || strings.TrimSpace(blocks[0]) != "" {
		return nil, errors.NewValidationError(
			"content found before the first frontmatter delimiter",
			"start the document with a '---' line")
	}
	blocks = blocks[1:]

	if len(blocks)%2 != 0 {
		return nil, errors.NewValidationError(
			fmt.Sprintf("section %d has an unterminated frontmatter block", len(blocks)/2+1),
			"close every frontmatter block with a '---' line")
	}

	var sections []Section
	for i := 0; i < len(blocks); i += 2 {
		sections = append(sections, Section{
			Frontmatter: blocks[i],
			Body:        strings.TrimLeft(blocks[i+1], "\n"),
		})
	}
	return sections, nil
}

// Convert parses a markdown document into the canonical deck.
func (c *Converter) Convert(markdown string) (*models.Deck, error) {
	sections, err := SplitSections(markdown)
	if err != nil {
		return nil, err
	}
	if len(sections) == 0 {
		return nil, errors.NewValidationError(
			"document contains no slides",
			"add at least one frontmatter section")
	}

	deck := &models.Deck{}
	for i, section := range sections {
		slide, err := c.convertSection(i+1, section)
		if err != nil {
			return nil, err
		}
		deck.Slides = append(deck.Slides, slide)
	}
	return deck, nil
}

func (c *Converter) convertSection(num int, section Section) (*models.Slide, error) {
	fm := map[string]interface{}{}
	if err := yaml.Unmarshal([]byte(section.Frontmatter), &fm); err != nil {
		return nil, errors.ConversionFailed(num, fmt.Errorf("invalid YAML frontmatter: %w", err))
	}
	if fm == nil {
		fm = map[string]interface{}{}
	}

	if _, ok := fm["layout"]; !ok {
		fm["layout"] = DefaultLayout
	}
	layout, ok := fm["layout"].(string)
	if !ok || layout == "" {
		return nil, errors.ConversionFailed(num, fmt.Errorf("'layout' must be a non-empty string"))
	}

	if c.structured != nil {
		if err := c.structured.Validate(fm); err != nil {
			if verr, ok := err.(*errors.ValidationError); ok {
				return nil, verr.ForSlide(num)
			}
			return nil, err
		}
		fm = c.structured.ConvertStructured(fm)
	}

	slide := &models.Slide{
		Layout:       layout,
		Placeholders: map[string]interface{}{},
		Content:      []models.ContentBlock{},
	}

	for key, value := range fm {
		switch key {
		case "layout":
			continue
		case "style":
			if style, ok := value.(string); ok {
				slide.Style = style
			}
			continue
		}
		slide.Placeholders[key] = c.convertFieldValue(value)
	}

	if body := strings.TrimSpace(section.Body); body != "" {
		slide.Content = append(slide.Content, c.convertBody(body)...)
	}

	return slide, nil
}

// convertFieldValue upgrades string fields containing markdown tables into
// structured table objects. Everything else passes through with formatting
// markers intact.
func (c *Converter) convertFieldValue(value interface{}) interface{} {
	text, ok := value.(string)
	if !ok {
		return value
	}
	if c.tables.DetectTable(text) {
		return c.tables.ParseTable(text)
	}
	return text
}

// convertBody splits a section body into content blocks: tables become table
// blocks, the surrounding prose becomes text blocks.
func (c *Converter) convertBody(body string) []models.ContentBlock {
	if c.tables.DetectTable(body) {
		// Separate table lines from prose so both survive. Classification
		// follows the same cell-splitting rule as detection, so a row
		// authored without outer pipes still lands in the table.
		var tableLines, textLines []string
		for _, line := range strings.Split(body, "\n") {
			if c.tables.IsTableLine(line) {
				tableLines = append(tableLines, line)
			} else if strings.TrimSpace(line) != "" {
				textLines = append(textLines, line)
			}
		}
		var blocks []models.ContentBlock
		if len(textLines) > 0 {
			blocks = append(blocks, models.ContentBlock{
				"type": "text",
				"text": strings.Join(textLines, "\n"),
			})
		}
		table := c.tables.ParseTable(strings.Join(tableLines, "\n"))
		blocks = append(blocks, models.ContentBlock{
			"type": "table",
			"data": table.Data,
		})
		return blocks
	}
	return []models.ContentBlock{{
		"type": "text",
		"text": body,
	}}
}
