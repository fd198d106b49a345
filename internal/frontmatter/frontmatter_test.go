package frontmatter

import (
	"strings"
	"testing"

	"github.com/teknologika/Deckbuilder-sub002/internal/models"
)

func testMapping() *models.TemplateMapping {
	return &models.TemplateMapping{
		TemplateInfo: models.TemplateInfo{Name: "default"},
		Layouts: map[string]models.LayoutMapping{
			"Comparison": {
				Index: 4,
				Placeholders: map[string]string{
					"0": "title", "1": "title_left", "2": "content_left",
					"3": "title_right", "4": "content_right",
				},
			},
			"Four Columns With Titles": {
				Index: 7,
				Placeholders: map[string]string{
					"0":  "title",
					"13": "title_col1", "14": "content_col1",
					"15": "title_col2", "16": "content_col2",
					"17": "title_col3", "18": "content_col3",
					"19": "title_col4", "20": "content_col4",
				},
			},
		},
	}
}

func TestParsePathMixedSegments(t *testing.T) {
	data := map[string]interface{}{
		"nested": []interface{}{
			map[string]interface{}{
				"deep": []interface{}{
					"zero",
					map[string]interface{}{"value": "found"},
				},
			},
		},
	}

	value, ok := extract(data, "nested[0].deep[1].value")
	if !ok {
		t.Fatal("Expected path to resolve")
	}
	if value != "found" {
		t.Errorf("Expected 'found', got %v", value)
	}
}

func TestExtractMissingPathsResolveToNothing(t *testing.T) {
	data := map[string]interface{}{
		"columns": []interface{}{
			map[string]interface{}{"title": "A"},
		},
	}

	if _, ok := extract(data, "columns[5].title"); ok {
		t.Error("Out-of-range index should not resolve")
	}
	if _, ok := extract(data, "columns[0].content"); ok {
		t.Error("Missing key should not resolve")
	}
	if _, ok := extract(data, "comparison.left.title"); ok {
		t.Error("Missing root should not resolve")
	}
}

func TestConvertComparisonStructure(t *testing.T) {
	conv := NewConverter(NewRegistry(testMapping()))

	fm := map[string]interface{}{
		"layout": "Comparison",
		"title":  "Build vs Buy",
		"comparison": map[string]interface{}{
			"left":  map[string]interface{}{"title": "Build", "content": "Control"},
			"right": map[string]interface{}{"title": "Buy", "content": "Speed"},
		},
	}

	flat := conv.ConvertStructured(fm)

	want := map[string]string{
		"title":         "Build vs Buy",
		"title_left":    "Build",
		"content_left":  "Control",
		"title_right":   "Buy",
		"content_right": "Speed",
	}
	for field, value := range want {
		if flat[field] != value {
			t.Errorf("Expected %s=%q, got %v", field, value, flat[field])
		}
	}
	if _, present := flat["comparison"]; present {
		t.Error("Structured root key should not survive conversion")
	}
}

func TestConvertColumnsStructure(t *testing.T) {
	conv := NewConverter(NewRegistry(testMapping()))

	fm := map[string]interface{}{
		"layout": "Four Columns With Titles",
		"title":  "Features",
		"columns": []interface{}{
			map[string]interface{}{"title": "Perf", "content": "Fast"},
			map[string]interface{}{"title": "Sec", "content": "Safe"},
			map[string]interface{}{"title": "UX", "content": "Simple"},
		},
	}

	flat := conv.ConvertStructured(fm)

	if flat["title_col1"] != "Perf" || flat["content_col1"] != "Fast" {
		t.Errorf("Column 1 not converted: %v", flat)
	}
	if flat["title_col3"] != "UX" || flat["content_col3"] != "Simple" {
		t.Errorf("Column 3 not converted: %v", flat)
	}
	// Only three columns authored: col4 fields must be omitted, not nil.
	if _, present := flat["title_col4"]; present {
		t.Error("Unresolvable path should omit the target key")
	}
	if _, present := flat["content_col4"]; present {
		t.Error("Unresolvable path should omit the target key")
	}
}

func TestConvertUnsupportedLayoutPassesThrough(t *testing.T) {
	conv := NewConverter(NewRegistry(testMapping()))

	fm := map[string]interface{}{
		"layout":      "Title and Content",
		"title":       "Plain",
		"content":     "Body text",
		"extra_field": "kept",
	}

	flat := conv.ConvertStructured(fm)
	if len(flat) != len(fm) {
		t.Fatalf("Expected input returned unchanged, got %v", flat)
	}
	for key, value := range fm {
		if flat[key] != value {
			t.Errorf("Key %s changed: %v -> %v", key, value, flat[key])
		}
	}
}

func TestConvertMissingLayoutKeyPassesThrough(t *testing.T) {
	conv := NewConverter(NewRegistry(testMapping()))

	fm := map[string]interface{}{"title": "No layout"}
	flat := conv.ConvertStructured(fm)
	if flat["title"] != "No layout" || len(flat) != 1 {
		t.Errorf("Expected input unchanged, got %v", flat)
	}
}

func TestValidateComparisonMissingRightSide(t *testing.T) {
	conv := NewConverter(NewRegistry(testMapping()))

	fm := map[string]interface{}{
		"layout": "Comparison",
		"comparison": map[string]interface{}{
			"left": map[string]interface{}{"title": "A", "content": "B"},
		},
	}

	err := conv.Validate(fm)
	if err == nil {
		t.Fatal("Expected validation failure for missing right side")
	}
	if !strings.Contains(err.Error(), "right") {
		t.Errorf("Error should name the missing 'right' section: %v", err)
	}
}

func TestValidateWithoutShorthandIsAccepted(t *testing.T) {
	conv := NewConverter(NewRegistry(testMapping()))

	// Comparison layout authored with flat fields instead of the shorthand.
	fm := map[string]interface{}{
		"layout":       "Comparison",
		"title":        "Direct",
		"content_left": "A",
	}
	if err := conv.Validate(fm); err != nil {
		t.Errorf("Flat authoring must not trigger structure validation: %v", err)
	}
}
