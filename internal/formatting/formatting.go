// Package formatting lexes the inline emphasis markers used throughout
// slide content and table cells: ***bold italic***, ___underline___,
// **bold** and *italic*, matched in that priority order (longest marker
// first). Markers are never interpreted as semantic markdown: links, code
// spans and unknown markers pass through literally, because table cells and
// placeholder text are plain presentation text, not documents.
package formatting

import (
	"strings"

	"github.com/teknologika/Deckbuilder-sub002/internal/models"
)

// marker table, ordered outer-to-inner: the scanner tries each token at a
// given position before moving on, so *** is never misread as ** + *.
var markers = []struct {
	token  string
	format models.TextFormat
}{
	{"***", models.TextFormat{Bold: true, Italic: true}},
	{"___", models.TextFormat{Underline: true}},
	{"**", models.TextFormat{Bold: true}},
	{"*", models.TextFormat{Italic: true}},
}

// ParseInline splits text into formatted segments. The result is never
// empty: plain text yields one segment with zero format flags, and the
// concatenation of segment texts equals the input with recognized markers
// stripped. Nested markers merge their flags, so ***___x___*** yields
// bold+italic+underline.
func ParseInline(text string) []models.TextSegment {
	segs := parseInline(text, models.TextFormat{})
	if len(segs) == 0 {
		segs = []models.TextSegment{{Text: text}}
	}
	return segs
}

func parseInline(text string, inherited models.TextFormat) []models.TextSegment {
	if text == "" {
		return []models.TextSegment{{Text: "", Format: inherited}}
	}

	var segs []models.TextSegment
	rest := text
	for rest != "" {
		start, markerIdx := findMarker(rest)
		if markerIdx < 0 {
			segs = append(segs, models.TextSegment{Text: rest, Format: inherited})
			break
		}
		if start > 0 {
			segs = append(segs, models.TextSegment{Text: rest[:start], Format: inherited})
		}

		m := markers[markerIdx]
		innerStart := start + len(m.token)
		closeOffset := strings.Index(rest[innerStart:], m.token)
		inner := rest[innerStart : innerStart+closeOffset]
		rest = rest[innerStart+closeOffset+len(m.token):]

		segs = append(segs, parseInline(inner, mergeFormats(inherited, m.format))...)
	}
	return segs
}

// findMarker locates the earliest opening marker that also has a closing
// marker and non-empty inner text, returning its byte offset and index into
// the marker table. Unclosed or empty markers are treated as literal text.
func findMarker(text string) (int, int) {
	for i := 0; i < len(text); i++ {
		for mi, m := range markers {
			if !strings.HasPrefix(text[i:], m.token) {
				continue
			}
			innerStart := i + len(m.token)
			if strings.Index(text[innerStart:], m.token) <= 0 {
				continue
			}
			return i, mi
		}
	}
	return -1, -1
}

func mergeFormats(a, b models.TextFormat) models.TextFormat {
	return models.TextFormat{
		Bold:      a.Bold || b.Bold,
		Italic:    a.Italic || b.Italic,
		Underline: a.Underline || b.Underline,
	}
}

// StripMarkers returns text with all recognized emphasis markers removed.
func StripMarkers(text string) string {
	var sb strings.Builder
	for _, seg := range ParseInline(text) {
		sb.WriteString(seg.Text)
	}
	return sb.String()
}
