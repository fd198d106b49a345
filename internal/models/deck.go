package models

import (
	"encoding/json"
	"fmt"
)

// Deck is the canonical representation of a presentation: the single
// contract shared by the markdown converter, the validators and the
// rendering engine.
type Deck struct {
	Slides []*Slide `json:"slides"`
}

// Slide represents one slide's worth of canonical content.
type Slide struct {
	Layout       string                 `json:"layout"`
	Style        string                 `json:"style,omitempty"`
	Placeholders map[string]interface{} `json:"placeholders"`
	Content      []ContentBlock         `json:"content"`
}

// ContentBlock is a free-form body block (paragraph, bullet list, table).
// Blocks carry a "type" key; everything else is block-specific.
type ContentBlock map[string]interface{}

// Type returns the block's declared type, or "" when absent.
func (b ContentBlock) Type() string {
	if t, ok := b["type"].(string); ok {
		return t
	}
	return ""
}

// TextFormat captures run-level emphasis flags for a text segment.
type TextFormat struct {
	Bold      bool `json:"bold"`
	Italic    bool `json:"italic"`
	Underline bool `json:"underline"`
}

// TextSegment is one run of identically formatted text.
type TextSegment struct {
	Text   string     `json:"text"`
	Format TextFormat `json:"format"`
}

// Cell is a single table cell. Text holds the raw markdown; Formatted holds
// the lexed segments and is never empty: a plain cell carries one segment
// with zero format flags.
type Cell struct {
	Text      string        `json:"text"`
	Formatted []TextSegment `json:"formatted"`
}

// Table is the structured placeholder value produced when a markdown pipe
// table is detected inside a field. Rows may be ragged; consumers must not
// assume every row matches the header width.
type Table struct {
	Type         string            `json:"type"`
	Data         [][]Cell          `json:"data"`
	HeaderStyle  string            `json:"header_style,omitempty"`
	RowStyle     string            `json:"row_style,omitempty"`
	BorderStyle  string            `json:"border_style,omitempty"`
	CustomColors map[string]string `json:"custom_colors,omitempty"`
}

// PlainGrid returns the cell text matrix with formatting markers intact.
func (t *Table) PlainGrid() [][]string {
	grid := make([][]string, len(t.Data))
	for i, row := range t.Data {
		grid[i] = make([]string, len(row))
		for j, cell := range row {
			grid[i][j] = cell.Text
		}
	}
	return grid
}

// ParseDeck decodes and validates canonical presentation JSON. Violations of
// the canonical contract are reported with the exact rule that failed so
// hand-authored JSON can be corrected without reading source code.
func ParseDeck(data []byte) (*Deck, error) {
	var root interface{}
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("presentation data is not valid JSON: %w", err)
	}

	rootMap, ok := root.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("presentation data must be an object")
	}

	rawSlides, ok := rootMap["slides"]
	if !ok {
		return nil, fmt.Errorf("presentation data must have a 'slides' array")
	}
	slideList, ok := rawSlides.([]interface{})
	if !ok {
		return nil, fmt.Errorf("'slides' must be an array")
	}
	if len(slideList) == 0 {
		return nil, fmt.Errorf("'slides' must not be empty")
	}

	deck := &Deck{}
	for i, rawSlide := range slideList {
		slide, err := parseSlide(i+1, rawSlide)
		if err != nil {
			return nil, err
		}
		deck.Slides = append(deck.Slides, slide)
	}
	return deck, nil
}

func parseSlide(num int, raw interface{}) (*Slide, error) {
	slideMap, ok := raw.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("slide %d must be an object", num)
	}

	layout, ok := slideMap["layout"].(string)
	if !ok || layout == "" {
		return nil, fmt.Errorf("slide %d must have a 'layout' field", num)
	}

	slide := &Slide{
		Layout:       layout,
		Placeholders: map[string]interface{}{},
	}

	if style, ok := slideMap["style"].(string); ok {
		slide.Style = style
	}

	if rawPh, present := slideMap["placeholders"]; present {
		phMap, ok := rawPh.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("slide %d: 'placeholders' must be a mapping", num)
		}
		for field, value := range phMap {
			slide.Placeholders[field] = normalizePlaceholderValue(value)
		}
	}

	if rawContent, present := slideMap["content"]; present {
		blocks, ok := rawContent.([]interface{})
		if !ok {
			return nil, fmt.Errorf("slide %d: 'content' must be an array", num)
		}
		for _, rawBlock := range blocks {
			if block, ok := rawBlock.(map[string]interface{}); ok {
				slide.Content = append(slide.Content, ContentBlock(block))
			}
		}
	}
	if slide.Content == nil {
		slide.Content = []ContentBlock{}
	}

	return slide, nil
}

// normalizePlaceholderValue upgrades decoded table objects into *Table so the
// engine can type-switch on placeholder values.
func normalizePlaceholderValue(value interface{}) interface{} {
	obj, ok := value.(map[string]interface{})
	if !ok {
		return value
	}
	if t, _ := obj["type"].(string); t != "table" {
		return value
	}

	// Round-trip through JSON to reuse the struct tags.
	raw, err := json.Marshal(obj)
	if err != nil {
		return value
	}
	var table Table
	if err := json.Unmarshal(raw, &table); err != nil {
		return value
	}
	for i, row := range table.Data {
		for j, cell := range row {
			if len(cell.Formatted) == 0 {
				table.Data[i][j].Formatted = []TextSegment{{Text: cell.Text}}
			}
		}
	}
	return &table
}
