package converter

import (
	"strings"
	"testing"

	"github.com/teknologika/Deckbuilder-sub002/internal/frontmatter"
	"github.com/teknologika/Deckbuilder-sub002/internal/models"
)

func testMapping() *models.TemplateMapping {
	return &models.TemplateMapping{
		Layouts: map[string]models.LayoutMapping{
			"Title Slide": {Index: 0, Placeholders: map[string]string{"0": "title", "1": "subtitle"}},
			"Two Content": {Index: 3, Placeholders: map[string]string{
				"0": "title", "1": "content_left", "2": "content_right",
			}},
			"Comparison": {Index: 4, Placeholders: map[string]string{
				"0": "title", "1": "title_left", "2": "content_left",
				"3": "title_right", "4": "content_right",
			}},
		},
	}
}

func newTestConverter() *Converter {
	registry := frontmatter.NewRegistry(testMapping())
	return New(frontmatter.NewConverter(registry))
}

const twoSlideDoc = `---
layout: Title Slide
title: Hello
subtitle: World
---
---
layout: Two Content
content_left: "A"
content_right: "B"
---
`

func TestConvertTwoSections(t *testing.T) {
	conv := newTestConverter()

	deck, err := conv.Convert(twoSlideDoc)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if len(deck.Slides) != 2 {
		t.Fatalf("Expected 2 slides, got %d", len(deck.Slides))
	}

	first := deck.Slides[0]
	if first.Layout != "Title Slide" {
		t.Errorf("Expected layout 'Title Slide', got '%s'", first.Layout)
	}
	if first.Placeholders["title"] != "Hello" {
		t.Errorf("Expected title 'Hello', got %v", first.Placeholders["title"])
	}
	if first.Placeholders["subtitle"] != "World" {
		t.Errorf("Expected subtitle 'World', got %v", first.Placeholders["subtitle"])
	}

	second := deck.Slides[1]
	if second.Placeholders["content_left"] != "A" || second.Placeholders["content_right"] != "B" {
		t.Errorf("Expected content_left=A content_right=B, got %v", second.Placeholders)
	}
}

func TestConvertDefaultsLayout(t *testing.T) {
	conv := newTestConverter()

	deck, err := conv.Convert("---\ntitle: No Layout\n---\nbody text\n")
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if deck.Slides[0].Layout != DefaultLayout {
		t.Errorf("Expected default layout '%s', got '%s'", DefaultLayout, deck.Slides[0].Layout)
	}
}

func TestConvertTableField(t *testing.T) {
	conv := newTestConverter()

	doc := "---\nlayout: Title and Content\ntitle: Data\ncontent: \"| H1 | H2 |\\n|---|---|\\n| **x** | y |\"\n---\n"
	deck, err := conv.Convert(doc)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}

	table, ok := deck.Slides[0].Placeholders["content"].(*models.Table)
	if !ok {
		t.Fatalf("Expected table object, got %T", deck.Slides[0].Placeholders["content"])
	}
	if table.Data[0][0].Text != "H1" {
		t.Errorf("Expected data[0][0].text == 'H1', got '%s'", table.Data[0][0].Text)
	}
	if table.Data[1][0].Text != "**x**" {
		t.Errorf("Expected raw markers preserved, got '%s'", table.Data[1][0].Text)
	}
	if !table.Data[1][0].Formatted[0].Format.Bold {
		t.Error("Expected data[1][0] first segment to be bold")
	}
}

func TestConvertStructuredComparison(t *testing.T) {
	conv := newTestConverter()

	doc := `---
layout: Comparison
title: Build vs Buy
comparison:
  left:
    title: Build
    content: Control
  right:
    title: Buy
    content: Speed
---
`
	deck, err := conv.Convert(doc)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	ph := deck.Slides[0].Placeholders
	if ph["title_left"] != "Build" || ph["content_right"] != "Speed" {
		t.Errorf("Structured shorthand not expanded: %v", ph)
	}
}

func TestConvertStructuredComparisonMissingRight(t *testing.T) {
	conv := newTestConverter()

	doc := `---
layout: Comparison
comparison:
  left:
    title: A
    content: B
---
`
	_, err := conv.Convert(doc)
	if err == nil {
		t.Fatal("Expected structured-frontmatter validation failure")
	}
	if !strings.Contains(err.Error(), "right") {
		t.Errorf("Error should mention the missing right side: %v", err)
	}
}

func TestConvertRejectsContentBeforeFirstDelimiter(t *testing.T) {
	conv := newTestConverter()

	_, err := conv.Convert("stray text\n---\ntitle: X\n---\n")
	if err == nil {
		t.Fatal("Expected error for content before first delimiter")
	}
}

func TestConvertRejectsUnterminatedFrontmatter(t *testing.T) {
	conv := newTestConverter()

	_, err := conv.Convert("---\ntitle: X\n")
	if err == nil {
		t.Fatal("Expected error for unterminated frontmatter")
	}
	if !strings.Contains(err.Error(), "section 1") {
		t.Errorf("Error should name the offending section: %v", err)
	}
}

func TestConvertRejectsInvalidYAML(t *testing.T) {
	conv := newTestConverter()

	_, err := conv.Convert("---\ntitle: [unclosed\n---\n")
	if err == nil {
		t.Fatal("Expected error for invalid YAML")
	}
	if !strings.Contains(err.Error(), "section 1") {
		t.Errorf("Error should name the offending section: %v", err)
	}
}

func TestConvertBodyBecomesContentBlocks(t *testing.T) {
	conv := newTestConverter()

	doc := "---\ntitle: Body\n---\nSome **bold** prose\n"
	deck, err := conv.Convert(doc)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	content := deck.Slides[0].Content
	if len(content) != 1 {
		t.Fatalf("Expected 1 content block, got %d", len(content))
	}
	if content[0].Type() != "text" {
		t.Errorf("Expected text block, got '%s'", content[0].Type())
	}
}

func TestConvertBodyTableBecomesTableBlock(t *testing.T) {
	conv := newTestConverter()

	doc := "---\ntitle: With Table\n---\n| A | B |\n|---|---|\n| 1 | 2 |\n"
	deck, err := conv.Convert(doc)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	content := deck.Slides[0].Content
	if len(content) != 1 || content[0].Type() != "table" {
		t.Fatalf("Expected a single table block, got %+v", content)
	}
	data, ok := content[0]["data"].([][]models.Cell)
	if !ok {
		t.Fatalf("Expected parsed cell matrix in the block, got %T", content[0]["data"])
	}
	if len(data) != 2 || data[0][0].Text != "A" {
		t.Errorf("Unexpected table data: %+v", data)
	}
}

func TestConvertBodyTableWithoutOuterPipes(t *testing.T) {
	conv := newTestConverter()

	doc := "---\ntitle: Metrics\n---\nRegion | Total\n--- | ---\nWest | 42\n"
	deck, err := conv.Convert(doc)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	content := deck.Slides[0].Content
	if len(content) != 1 || content[0].Type() != "table" {
		t.Fatalf("Expected a single table block, got %+v", content)
	}
	data, ok := content[0]["data"].([][]models.Cell)
	if !ok {
		t.Fatalf("Expected parsed cell matrix in the block, got %T", content[0]["data"])
	}
	if len(data) != 2 {
		t.Fatalf("Expected both rows routed to the table, got %d", len(data))
	}
	if data[1][0].Text != "West" || data[1][1].Text != "42" {
		t.Errorf("Unexpected second row: %+v", data[1])
	}
}
