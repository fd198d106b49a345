package formatting

import (
	"testing"

	"github.com/teknologika/Deckbuilder-sub002/internal/models"
)

func TestParseInlinePlainText(t *testing.T) {
	segs := ParseInline("hello world")
	if len(segs) != 1 {
		t.Fatalf("Expected 1 segment, got %d", len(segs))
	}
	if segs[0].Text != "hello world" {
		t.Errorf("Expected text 'hello world', got '%s'", segs[0].Text)
	}
	if segs[0].Format != (models.TextFormat{}) {
		t.Errorf("Expected empty format, got %+v", segs[0].Format)
	}
}

func TestParseInlineEmptyText(t *testing.T) {
	segs := ParseInline("")
	if len(segs) != 1 {
		t.Fatalf("Expected 1 segment for empty text, got %d", len(segs))
	}
	if segs[0].Text != "" {
		t.Errorf("Expected empty segment text, got '%s'", segs[0].Text)
	}
}

func TestParseInlineMarkers(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		text   string
		format models.TextFormat
	}{
		{"bold", "**x**", "x", models.TextFormat{Bold: true}},
		{"italic", "*x*", "x", models.TextFormat{Italic: true}},
		{"bold italic", "***x***", "x", models.TextFormat{Bold: true, Italic: true}},
		{"underline", "___x___", "x", models.TextFormat{Underline: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segs := ParseInline(tt.input)
			if len(segs) != 1 {
				t.Fatalf("Expected 1 segment, got %d: %+v", len(segs), segs)
			}
			if segs[0].Text != tt.text {
				t.Errorf("Expected text '%s', got '%s'", tt.text, segs[0].Text)
			}
			if segs[0].Format != tt.format {
				t.Errorf("Expected format %+v, got %+v", tt.format, segs[0].Format)
			}
		})
	}
}

func TestParseInlineNestedMarkers(t *testing.T) {
	// Underline nested inside bold+italic merges all three flags.
	segs := ParseInline("***___x___***")
	if len(segs) != 1 {
		t.Fatalf("Expected 1 segment, got %d: %+v", len(segs), segs)
	}
	want := models.TextFormat{Bold: true, Italic: true, Underline: true}
	if segs[0].Format != want {
		t.Errorf("Expected format %+v, got %+v", want, segs[0].Format)
	}
	if segs[0].Text != "x" {
		t.Errorf("Expected text 'x', got '%s'", segs[0].Text)
	}
}

func TestParseInlineMixedContent(t *testing.T) {
	segs := ParseInline("plain **bold** more *italic* end")
	wantTexts := []string{"plain ", "bold", " more ", "italic", " end"}
	if len(segs) != len(wantTexts) {
		t.Fatalf("Expected %d segments, got %d: %+v", len(wantTexts), len(segs), segs)
	}
	for i, want := range wantTexts {
		if segs[i].Text != want {
			t.Errorf("Segment %d: expected '%s', got '%s'", i, want, segs[i].Text)
		}
	}
	if !segs[1].Format.Bold || segs[1].Format.Italic {
		t.Errorf("Segment 1 should be bold only, got %+v", segs[1].Format)
	}
	if !segs[3].Format.Italic || segs[3].Format.Bold {
		t.Errorf("Segment 3 should be italic only, got %+v", segs[3].Format)
	}
}

func TestParseInlineUnclosedMarkerIsLiteral(t *testing.T) {
	segs := ParseInline("a **b")
	if len(segs) != 1 {
		t.Fatalf("Expected 1 segment, got %d: %+v", len(segs), segs)
	}
	if segs[0].Text != "a **b" {
		t.Errorf("Unclosed marker should stay literal, got '%s'", segs[0].Text)
	}
}

func TestStripMarkers(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"**bold** and *italic*", "bold and italic"},
		{"___u___", "u"},
		{"no markers", "no markers"},
		{"unclosed ** stays", "unclosed ** stays"},
	}
	for _, tt := range tests {
		if got := StripMarkers(tt.input); got != tt.want {
			t.Errorf("StripMarkers(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
