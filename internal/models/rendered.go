package models

import "strings"

// RenderedDeck is the in-memory result of binding a canonical deck to a
// template. The post-generation validator inspects it before the pptx writer
// serializes it, so fidelity problems surface before a file is written.
type RenderedDeck struct {
	Title  string
	Slides []*RenderedSlide
}

// RenderedSlide holds the shapes produced for one slide.
type RenderedSlide struct {
	LayoutName string
	Style      string
	Shapes     []*TextShape
	Tables     []*TableShape
	Images     []*ImageShape
}

// TextShape is a positioned text frame with formatted runs, one paragraph
// per inner slice. Geometry is in EMU.
type TextShape struct {
	Field      string
	Paragraphs [][]TextSegment
	X, Y, W, H int64
}

// TableShape is a positioned table. Rows may be ragged.
type TableShape struct {
	Field      string
	Data       [][]Cell
	Fonts      TableFonts
	X, Y, W, H int64
}

// TableFonts carries validated font sizes for table rendering. Zero means
// "use the default".
type TableFonts struct {
	HeaderSize int
	DataSize   int
}

// ImageShape is a positioned picture referenced by file path. The writer
// loads the file at serialization time and falls back to placeholder text
// when the path cannot be read.
type ImageShape struct {
	Field      string
	Path       string
	X, Y, W, H int64
}

// Text returns every text fragment on the slide joined with newlines,
// including table cell text. Used for content-presence checks.
func (s *RenderedSlide) Text() string {
	var parts []string
	for _, shape := range s.Shapes {
		for _, para := range shape.Paragraphs {
			var line strings.Builder
			for _, seg := range para {
				line.WriteString(seg.Text)
			}
			parts = append(parts, line.String())
		}
	}
	for _, table := range s.Tables {
		for _, row := range table.Data {
			for _, cell := range row {
				for _, seg := range cell.Formatted {
					parts = append(parts, seg.Text)
				}
			}
		}
	}
	return strings.Join(parts, "\n")
}
