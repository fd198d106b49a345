// Package pptx serializes rendered decks to PowerPoint files. Text shapes
// become rich-text frames with per-run emphasis; table shapes become a
// header band plus striped row bands, which survives every PowerPoint
// renderer without relying on native table XML.
package pptx

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	ppt "github.com/VantageDataChat/GoPPT"

	"github.com/teknologika/Deckbuilder-sub002/internal/errors"
	"github.com/teknologika/Deckbuilder-sub002/internal/models"
)

const (
	emuPerInch = 914400

	slideWidth = int64(10.0 * emuPerInch)

	fontTitle     = 36
	fontBody      = 14
	fontTableHead = 11
	fontTableCell = 10

	headerRowHeight = int64(0.35 * emuPerInch)
	dataRowHeight   = int64(0.28 * emuPerInch)
)

// Writer turns rendered decks into .pptx bytes and files.
type Writer struct {
	creator string
}

// NewWriter creates a deck writer. The creator string lands in the document
// properties.
func NewWriter(creator string) *Writer {
	return &Writer{creator: creator}
}

func solidFill(argb string) *ppt.Fill {
	return ppt.NewFill().SetSolid(ppt.NewColor(argb))
}

// WriteDeck serializes a rendered deck to pptx bytes.
func (w *Writer) WriteDeck(deck *models.RenderedDeck) ([]byte, error) {
	p := ppt.New()
	p.GetDocumentProperties().Title = deck.Title
	p.GetDocumentProperties().Creator = w.creator

	for i, slide := range deck.Slides {
		var target *ppt.Slide
		if i == 0 {
			target = p.GetActiveSlide()
		} else {
			target = p.CreateSlide()
		}
		w.writeSlide(target, slide)
	}

	writer, err := ppt.NewWriter(p, ppt.WriterPowerPoint2007)
	if err != nil {
		return nil, errors.GenerationFailed(fmt.Errorf("failed to create pptx writer: %w", err))
	}
	var buf bytes.Buffer
	if err := writer.(*ppt.PPTXWriter).WriteTo(&buf); err != nil {
		return nil, errors.GenerationFailed(fmt.Errorf("failed to serialize presentation: %w", err))
	}
	return buf.Bytes(), nil
}

// WriteFile serializes the deck and writes it to path.
func (w *Writer) WriteFile(deck *models.RenderedDeck, path string) error {
	data, err := w.WriteDeck(deck)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, errors.ErrCodeStorage,
			fmt.Sprintf("failed to write %s", path))
	}
	return nil
}

func (w *Writer) writeSlide(slide *ppt.Slide, rendered *models.RenderedSlide) {
	for _, shape := range rendered.Shapes {
		w.writeTextShape(slide, shape)
	}
	for _, table := range rendered.Tables {
		w.writeTableShape(slide, table)
	}
	for _, image := range rendered.Images {
		w.writeImageShape(slide, image)
	}
}

// writeImageShape places a picture. An unreadable image path is an authoring
// gap, not a generation failure: it warns on stderr and renders a labelled
// placeholder box instead.
func (w *Writer) writeImageShape(slide *ppt.Slide, image *models.ImageShape) {
	data, err := os.ReadFile(image.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: image '%s' could not be read, using a placeholder box: %v\n", image.Path, err)
		box := slide.CreateRichTextShape()
		box.SetOffsetX(image.X).SetOffsetY(image.Y)
		box.SetWidth(image.W).SetHeight(image.H)
		box.SetFill(solidFill("FFE2E8F0"))
		run := box.CreateTextRun("[image unavailable: " + image.Path + "]")
		run.GetFont().SetSize(fontTableCell).SetColor(ppt.NewColor("FF64748B"))
		box.GetActiveParagraph().SetAlignment(
			ppt.NewAlignment().SetHorizontal(ppt.HorizontalCenter))
		return
	}

	shape := slide.CreateDrawingShape()
	shape.SetImageData(data, mimeTypeFor(image.Path))
	shape.SetOffsetX(image.X).SetOffsetY(image.Y)
	shape.SetWidth(image.W).SetHeight(image.H)
}

func mimeTypeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	default:
		return "image/png"
	}
}

func (w *Writer) writeTextShape(slide *ppt.Slide, shape *models.TextShape) {
	frame := slide.CreateRichTextShape()
	frame.SetOffsetX(shape.X).SetOffsetY(shape.Y)
	frame.SetWidth(shape.W).SetHeight(shape.H)

	size := fontBody
	isTitle := shape.Y < int64(1.2*emuPerInch) && shape.W > slideWidth/2
	if isTitle {
		size = fontTitle
	}

	for i, paragraph := range shape.Paragraphs {
		if i > 0 {
			frame.CreateParagraph()
		}
		if len(paragraph) == 0 {
			run := frame.CreateTextRun(" ")
			run.GetFont().SetSize(size)
			continue
		}
		for _, segment := range paragraph {
			run := frame.CreateTextRun(segment.Text)
			font := run.GetFont()
			font.SetSize(size)
			if segment.Format.Bold || isTitle {
				font.SetBold(true)
			}
			if segment.Format.Italic {
				font.SetItalic(true)
			}
			if segment.Format.Underline {
				font.SetUnderline(ppt.UnderlineSingle)
			}
		}
		if isTitle {
			frame.GetActiveParagraph().SetAlignment(
				ppt.NewAlignment().SetHorizontal(ppt.HorizontalCenter))
		}
	}
}

// writeTableShape emits a table as a filled header band followed by striped
// data row bands with cell text joined by column separators.
func (w *Writer) writeTableShape(slide *ppt.Slide, table *models.TableShape) {
	headerSize := table.Fonts.HeaderSize
	if headerSize == 0 {
		headerSize = fontTableHead
	}
	dataSize := table.Fonts.DataSize
	if dataSize == 0 {
		dataSize = fontTableCell
	}

	y := table.Y
	for rowIdx, row := range table.Data {
		band := slide.CreateRichTextShape()
		band.SetOffsetX(table.X).SetOffsetY(y)

		isHeader := rowIdx == 0
		height := dataRowHeight
		if isHeader {
			height = headerRowHeight
			band.SetFill(solidFill("FF3B82F6"))
		} else if rowIdx%2 == 1 {
			band.SetFill(solidFill("FFF8FAFC"))
		} else {
			band.SetFill(solidFill("FFF1F5F9"))
		}
		band.SetWidth(table.W).SetHeight(height)

		for cellIdx, cell := range row {
			if cellIdx > 0 {
				sep := band.CreateTextRun("    │    ")
				sep.GetFont().SetSize(dataSize)
			}
			segments := cell.Formatted
			if len(segments) == 0 {
				segments = []models.TextSegment{{Text: cell.Text}}
			}
			for _, segment := range segments {
				run := band.CreateTextRun(segment.Text)
				font := run.GetFont()
				if isHeader {
					font.SetSize(headerSize).SetBold(true).SetColor(ppt.ColorWhite)
					continue
				}
				font.SetSize(dataSize).SetColor(ppt.NewColor("FF334155"))
				if segment.Format.Bold {
					font.SetBold(true)
				}
				if segment.Format.Italic {
					font.SetItalic(true)
				}
				if segment.Format.Underline {
					font.SetUnderline(ppt.UnderlineSingle)
				}
			}
		}
		band.GetActiveParagraph().SetAlignment(
			ppt.NewAlignment().SetHorizontal(ppt.HorizontalCenter))

		y += height
	}
}
