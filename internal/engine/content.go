package engine

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/teknologika/Deckbuilder-sub002/internal/formatting"
	"github.com/teknologika/Deckbuilder-sub002/internal/models"
	"github.com/teknologika/Deckbuilder-sub002/internal/tables"
)

// Slide geometry in EMU, 16:9 widescreen (10in x 5.625in).
const (
	emuPerInch = 914400

	slideWidth  = int64(10.0 * emuPerInch)
	slideHeight = int64(5.625 * emuPerInch)

	marginLeft   = int64(0.4 * emuPerInch)
	contentWidth = int64(9.2 * emuPerInch)

	titleTop     = int64(0.3 * emuPerInch)
	titleHeight  = int64(0.9 * emuPerInch)
	bodyTop      = int64(1.4 * emuPerInch)
	bodyHeight   = int64(3.6 * emuPerInch)
	footerTop    = int64(5.1 * emuPerInch)
	footerHeight = int64(0.4 * emuPerInch)

	columnGap = int64(0.2 * emuPerInch)
)

// ContentProcessor applies canonical slide content to rendered slides:
// placeholder values become positioned text shapes or table shapes, body
// content blocks are laid out below the placeholders.
type ContentProcessor struct {
	tables *tables.Handler
}

// NewContentProcessor creates a content processor.
func NewContentProcessor() *ContentProcessor {
	return &ContentProcessor{tables: tables.NewHandler()}
}

// ApplyContent renders one canonical slide against a resolved layout. Every
// placeholder field must resolve; an unknown field is a hard error carrying
// the layout's valid names.
func (p *ContentProcessor) ApplyContent(slide *models.Slide, layout *Layout, resolver *PlaceholderResolver) (*models.RenderedSlide, error) {
	rendered := &models.RenderedSlide{
		LayoutName: layout.Name,
		Style:      slide.Style,
	}

	fonts := p.tables.FontsFromConfig(styleConfig(slide))

	// Deterministic shape order regardless of map iteration.
	fields := make([]string, 0, len(slide.Placeholders))
	for field := range slide.Placeholders {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	for _, field := range fields {
		if isStyleField(field) {
			continue
		}
		idx, err := resolver.ResolveOrError(field)
		if err != nil {
			return nil, err
		}
		if err := p.applyField(rendered, layout, field, idx, slide.Placeholders[field], fonts); err != nil {
			return nil, err
		}
	}

	if err := p.applyBody(rendered, slide.Content, fonts); err != nil {
		return nil, err
	}
	return rendered, nil
}

// applyField places one placeholder value. Table values become table shapes;
// everything else becomes a text shape with lexed formatting runs.
func (p *ContentProcessor) applyField(rendered *models.RenderedSlide, layout *Layout, field, idx string, value interface{}, fonts models.TableFonts) error {
	x, y, w, h := p.placeholderGeometry(layout, idx)

	switch v := value.(type) {
	case *models.Table:
		if shape := p.tables.CreateTable(rendered, field, v.Data, fonts, x, y, w, h); shape == nil {
			return fmt.Errorf("field '%s' holds a table with no usable rows", field)
		}
		return nil
	case string:
		if IsImageField(field) {
			rendered.Images = append(rendered.Images, &models.ImageShape{
				Field: field,
				Path:  v,
				X:     x, Y: y, W: w, H: h,
			})
			return nil
		}
		if p.tables.DetectTable(v) {
			table := p.tables.ParseTable(v)
			if shape := p.tables.CreateTable(rendered, field, table.Data, fonts, x, y, w, h); shape == nil {
				return fmt.Errorf("field '%s' holds a table with no usable rows", field)
			}
			return nil
		}
		rendered.Shapes = append(rendered.Shapes, &models.TextShape{
			Field:      field,
			Paragraphs: paragraphsOf(v),
			X:          x, Y: y, W: w, H: h,
		})
		return nil
	case nil:
		return nil
	default:
		rendered.Shapes = append(rendered.Shapes, &models.TextShape{
			Field:      field,
			Paragraphs: paragraphsOf(fmt.Sprintf("%v", v)),
			X:          x, Y: y, W: w, H: h,
		})
		return nil
	}
}

// applyBody lays the free-form content blocks below the placeholder region,
// tables positioned under whatever text precedes them.
func (p *ContentProcessor) applyBody(rendered *models.RenderedSlide, blocks []models.ContentBlock, fonts models.TableFonts) error {
	cursor := int64(0)
	for _, block := range blocks {
		switch block.Type() {
		case "table":
			data := tableDataFromBlock(block, p.tables)
			left, top := p.tables.PositionTable(cursor)
			w, h := p.tables.DefaultTableSize()
			if shape := p.tables.CreateTable(rendered, "", data, fonts, left, top, w, h); shape != nil {
				cursor = top + h
			}
		case "text", "":
			text, _ := block["text"].(string)
			if text == "" {
				continue
			}
			top := bodyTop
			if cursor > 0 {
				top = cursor + columnGap
			}
			rendered.Shapes = append(rendered.Shapes, &models.TextShape{
				Paragraphs: paragraphsOf(text),
				X:          marginLeft, Y: top, W: contentWidth, H: bodyHeight,
			})
			cursor = top + int64(len(strings.Split(text, "\n")))*int64(0.3*emuPerInch)
		}
	}
	return nil
}

// placeholderGeometry computes the shape frame for a placeholder index.
// Index 0 is the title band; remaining indices split the body region into
// equal columns in index order, with footer-range indices pinned to the
// bottom band.
func (p *ContentProcessor) placeholderGeometry(layout *Layout, idx string) (x, y, w, h int64) {
	n, _ := strconv.Atoi(idx)
	if n == 0 {
		return marginLeft, titleTop, contentWidth, titleHeight
	}
	if n >= 10 && n <= 12 {
		third := contentWidth / 3
		return marginLeft + int64(n-10)*third, footerTop, third, footerHeight
	}

	// Body indices in this layout, in order, excluding title and footers.
	var body []int
	for key := range layout.Placeholders {
		k, err := strconv.Atoi(key)
		if err != nil || k == 0 || (k >= 10 && k <= 12) {
			continue
		}
		body = append(body, k)
	}
	sort.Ints(body)

	pos := 0
	for i, k := range body {
		if k == n {
			pos = i
			break
		}
	}
	cols := len(body)
	if cols == 0 {
		cols = 1
	}
	colWidth := (contentWidth - int64(cols-1)*columnGap) / int64(cols)
	return marginLeft + int64(pos)*(colWidth+columnGap), bodyTop, colWidth, bodyHeight
}

// paragraphsOf lexes a multi-line string into formatted paragraphs.
func paragraphsOf(text string) [][]models.TextSegment {
	lines := strings.Split(text, "\n")
	paragraphs := make([][]models.TextSegment, 0, len(lines))
	for _, line := range lines {
		paragraphs = append(paragraphs, formatting.ParseInline(line))
	}
	return paragraphs
}

// tableDataFromBlock extracts the cell matrix from a table content block.
// The converter stores pre-lexed cell matrices; JSON decoding produces
// untyped rows; raw markdown text is parsed on the spot.
func tableDataFromBlock(block models.ContentBlock, handler *tables.Handler) [][]models.Cell {
	if text, ok := block["text"].(string); ok && text != "" {
		return handler.ParseTable(text).Data
	}
	if cells, ok := block["data"].([][]models.Cell); ok {
		return cells
	}
	rawData, ok := block["data"].([]interface{})
	if !ok {
		return nil
	}
	var data [][]models.Cell
	for _, rawRow := range rawData {
		rowList, ok := rawRow.([]interface{})
		if !ok {
			continue
		}
		row := make([]models.Cell, 0, len(rowList))
		for _, rawCell := range rowList {
			switch c := rawCell.(type) {
			case string:
				row = append(row, models.Cell{Text: c, Formatted: formatting.ParseInline(c)})
			case map[string]interface{}:
				text, _ := c["text"].(string)
				row = append(row, models.Cell{Text: text, Formatted: formatting.ParseInline(text)})
			}
		}
		data = append(data, row)
	}
	return data
}

// styleConfig collects the style-bearing placeholder keys for font
// validation.
func styleConfig(slide *models.Slide) map[string]interface{} {
	config := make(map[string]interface{})
	for field, value := range slide.Placeholders {
		if isStyleField(field) {
			config[field] = value
		}
	}
	return config
}

// isStyleField reports whether a placeholder key configures styling rather
// than naming a template placeholder.
func isStyleField(field string) bool {
	switch field {
	case "header_font_size", "data_font_size", "style", "row_style", "border_style":
		return true
	}
	return false
}
