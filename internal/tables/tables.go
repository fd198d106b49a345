// Package tables detects and parses markdown pipe tables and places table
// shapes on rendered slides. The same detection rule serves both the
// markdown→canonical converter and render-time handling of raw body text, so
// a table can never be recognized at one stage and missed at the other.
package tables

import (
	"strings"

	"github.com/teknologika/Deckbuilder-sub002/internal/formatting"
	"github.com/teknologika/Deckbuilder-sub002/internal/models"
)

// Slide geometry in EMU, 16:9 widescreen.
const (
	emuPerInch = 914400

	marginLeft   = int64(0.4 * emuPerInch)
	contentWidth = int64(9.2 * emuPerInch)

	defaultTableTop = int64(1.0 * emuPerInch)
	tableTopGap     = int64(0.2 * emuPerInch)
	// A table is never placed lower than this regardless of how much
	// content precedes it, so it cannot run off-slide.
	maxTableTop = int64(4.5 * emuPerInch)

	defaultTableHeight = int64(3.5 * emuPerInch)
)

// Legal font size bounds for table text.
const (
	MinFontSize = 8
	MaxFontSize = 24
)

// Handler bundles the table operations used by the converter and the engine.
type Handler struct{}

// NewHandler creates a table handler.
func NewHandler() *Handler {
	return &Handler{}
}

// DetectTable reports whether text is a markdown pipe table: two or more
// lines that each contain '|' and split into at least two non-empty cells.
// A separator line (|---|---|) counts toward detection but not toward rows.
// A single data row is not a table.
func (h *Handler) DetectTable(text string) bool {
	rows := 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if !strings.Contains(line, "|") {
			continue
		}
		if isSeparatorLine(line) {
			continue
		}
		nonEmpty := 0
		for _, cell := range splitCells(line) {
			if cell != "" {
				nonEmpty++
			}
		}
		if nonEmpty >= 2 {
			rows++
		}
	}
	return rows >= 2
}

// IsTableLine reports whether a single line belongs to a pipe table: a
// separator line, or a line that splits into at least two cells. Outer pipes
// are optional, same as in DetectTable, so the converter's table/prose
// separation agrees with detection.
func (h *Handler) IsTableLine(line string) bool {
	line = strings.TrimSpace(line)
	if !strings.Contains(line, "|") {
		return false
	}
	if isSeparatorLine(line) {
		return true
	}
	return len(splitCells(line)) >= 2
}

// ParseTableStructure returns the ragged matrix of raw cell strings.
// Separator lines are skipped; outer pipes are optional; row lengths are
// preserved exactly as authored with no padding or truncation.
func (h *Handler) ParseTableStructure(text string) [][]string {
	var matrix [][]string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !strings.Contains(line, "|") {
			continue
		}
		if isSeparatorLine(line) {
			continue
		}
		matrix = append(matrix, splitCells(line))
	}
	return matrix
}

// ParseTable parses markdown table text into the structured table object,
// lexing each cell's inline formatting.
func (h *Handler) ParseTable(text string) *models.Table {
	matrix := h.ParseTableStructure(text)
	table := &models.Table{Type: "table"}
	for _, row := range matrix {
		cells := make([]models.Cell, len(row))
		for i, raw := range row {
			cells[i] = models.Cell{
				Text:      raw,
				Formatted: formatting.ParseInline(raw),
			}
		}
		table.Data = append(table.Data, cells)
	}
	return table
}

// CreateTable places a table shape on the slide. Returns nil (callers must
// check) for empty data or data containing an empty row, instead of
// raising: malformed tables are an authoring problem reported upstream.
func (h *Handler) CreateTable(slide *models.RenderedSlide, field string, data [][]models.Cell, fonts models.TableFonts, x, y, w, ht int64) *models.TableShape {
	if len(data) == 0 {
		return nil
	}
	for _, row := range data {
		if len(row) == 0 {
			return nil
		}
	}
	shape := &models.TableShape{
		Field: field,
		Data:  data,
		Fonts: fonts,
		X:     x,
		Y:     y,
		W:     w,
		H:     ht,
	}
	slide.Tables = append(slide.Tables, shape)
	return shape
}

// PositionTable returns the table's left/top offsets. With no preceding
// content the default position applies; otherwise the table sits just below
// the content, capped so it stays on the slide.
func (h *Handler) PositionTable(contentHeight int64) (left, top int64) {
	top = defaultTableTop
	if contentHeight > 0 {
		top = contentHeight + tableTopGap
		if top > maxTableTop {
			top = maxTableTop
		}
	}
	return marginLeft, top
}

// DefaultTableSize returns the standard table extent.
func (h *Handler) DefaultTableSize() (w, ht int64) {
	return contentWidth, defaultTableHeight
}

// ValidateFontSizes returns a copy of config with header_font_size and
// data_font_size clamped to the legal range. Non-numeric values are dropped
// from the active configuration; nil values are ignored silently. Other keys
// pass through untouched.
func (h *Handler) ValidateFontSizes(config map[string]interface{}) map[string]interface{} {
	cleaned := make(map[string]interface{}, len(config))
	for key, value := range config {
		if key != "header_font_size" && key != "data_font_size" {
			cleaned[key] = value
			continue
		}
		if value == nil {
			continue
		}
		size, ok := asInt(value)
		if !ok {
			continue
		}
		if size < MinFontSize {
			size = MinFontSize
		}
		if size > MaxFontSize {
			size = MaxFontSize
		}
		cleaned[key] = size
	}
	return cleaned
}

// FontsFromConfig extracts validated table fonts from a raw config map.
func (h *Handler) FontsFromConfig(config map[string]interface{}) models.TableFonts {
	cleaned := h.ValidateFontSizes(config)
	fonts := models.TableFonts{}
	if size, ok := cleaned["header_font_size"].(int); ok {
		fonts.HeaderSize = size
	}
	if size, ok := cleaned["data_font_size"].(int); ok {
		fonts.DataSize = size
	}
	return fonts
}

// isSeparatorLine matches |---|---| style delimiter rows, tolerating
// alignment colons and trailing whitespace.
func isSeparatorLine(line string) bool {
	stripped := strings.TrimSpace(line)
	if !strings.Contains(stripped, "-") {
		return false
	}
	for _, r := range stripped {
		switch r {
		case '|', '-', ':', ' ', '\t':
		default:
			return false
		}
	}
	return true
}

// splitCells splits a table line into trimmed cell strings, dropping the
// empty fragments produced by outer pipes.
func splitCells(line string) []string {
	parts := strings.Split(line, "|")
	var cells []string
	for i, part := range parts {
		cell := strings.TrimSpace(part)
		// Outer pipes produce empty first/last fragments; interior empty
		// cells are real.
		if cell == "" && (i == 0 || i == len(parts)-1) {
			continue
		}
		cells = append(cells, cell)
	}
	return cells
}

func asInt(value interface{}) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	}
	return 0, false
}
