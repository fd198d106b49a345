package tables

import (
	"reflect"
	"testing"

	"github.com/teknologika/Deckbuilder-sub002/internal/models"
)

func TestDetectTable(t *testing.T) {
	h := NewHandler()

	tests := []struct {
		name string
		text string
		want bool
	}{
		{
			name: "header and data row with separator",
			text: "| H1 | H2 |\n|---|---|\n| a | b |",
			want: true,
		},
		{
			name: "no separator line",
			text: "| H1 | H2 |\n| a | b |",
			want: true,
		},
		{
			name: "no outer pipes",
			text: "H1 | H2\na | b",
			want: true,
		},
		{
			name: "single row is not a table",
			text: "| H1 | H2 |",
			want: false,
		},
		{
			name: "single row with separator is not a table",
			text: "| H1 | H2 |\n|---|---|",
			want: false,
		},
		{
			name: "plain text",
			text: "just some text\nwith two lines",
			want: false,
		},
		{
			name: "single column rows",
			text: "| only |\n| one |",
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := h.DetectTable(tt.text); got != tt.want {
				t.Errorf("DetectTable(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestIsTableLine(t *testing.T) {
	h := NewHandler()
	cases := []struct {
		line string
		want bool
	}{
		{"| a | b |", true},
		{"a | b", true},
		{"|---|---|", true},
		{"--- | ---", true},
		{"plain prose", false},
		{"a |", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := h.IsTableLine(tc.line); got != tc.want {
			t.Errorf("IsTableLine(%q) = %v, want %v", tc.line, got, tc.want)
		}
	}
}

func TestParseTableStructureRoundTrip(t *testing.T) {
	h := NewHandler()

	text := "| A | B | C |\n|---|---|---|\n| 1 |  | 3 |\n| x | y | z |"
	want := [][]string{
		{"A", "B", "C"},
		{"1", "", "3"},
		{"x", "y", "z"},
	}
	got := h.ParseTableStructure(text)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseTableStructure = %v, want %v", got, want)
	}
}

func TestParseTableStructurePreservesRaggedRows(t *testing.T) {
	h := NewHandler()

	text := "| H1 | H2 | H3 |\n|---|---|---|\n| a | b |"
	got := h.ParseTableStructure(text)
	if len(got) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(got))
	}
	if len(got[0]) != 3 {
		t.Errorf("Header should keep 3 cells, got %d", len(got[0]))
	}
	if len(got[1]) != 2 {
		t.Errorf("Short row should keep 2 cells unpadded, got %d", len(got[1]))
	}
}

func TestParseTableLexesCellFormatting(t *testing.T) {
	h := NewHandler()

	table := h.ParseTable("| H1 | H2 |\n|---|---|\n| **x** | y |")
	if table.Type != "table" {
		t.Errorf("Expected type 'table', got '%s'", table.Type)
	}
	if table.Data[0][0].Text != "H1" {
		t.Errorf("Expected header text 'H1', got '%s'", table.Data[0][0].Text)
	}
	cell := table.Data[1][0]
	if cell.Text != "**x**" {
		t.Errorf("Raw cell text should keep markers, got '%s'", cell.Text)
	}
	if len(cell.Formatted) != 1 || !cell.Formatted[0].Format.Bold {
		t.Errorf("Expected bold segment, got %+v", cell.Formatted)
	}
	if cell.Formatted[0].Text != "x" {
		t.Errorf("Expected stripped segment text 'x', got '%s'", cell.Formatted[0].Text)
	}
	// Plain cells still carry one segment with an empty format.
	plain := table.Data[1][1]
	if len(plain.Formatted) != 1 || plain.Formatted[0].Format != (models.TextFormat{}) {
		t.Errorf("Plain cell should have one unformatted segment, got %+v", plain.Formatted)
	}
}

func TestCreateTableRejectsMalformedData(t *testing.T) {
	h := NewHandler()
	slide := &models.RenderedSlide{}

	if shape := h.CreateTable(slide, "content", nil, models.TableFonts{}, 0, 0, 100, 100); shape != nil {
		t.Error("Empty data should return nil")
	}
	data := [][]models.Cell{
		{{Text: "a"}},
		{},
	}
	if shape := h.CreateTable(slide, "content", data, models.TableFonts{}, 0, 0, 100, 100); shape != nil {
		t.Error("Data with an empty row should return nil")
	}
	if len(slide.Tables) != 0 {
		t.Error("Rejected tables must not be added to the slide")
	}

	good := [][]models.Cell{{{Text: "a"}, {Text: "b"}}}
	if shape := h.CreateTable(slide, "content", good, models.TableFonts{}, 0, 0, 100, 100); shape == nil {
		t.Error("Well-formed data should create a table shape")
	}
	if len(slide.Tables) != 1 {
		t.Errorf("Expected 1 table on slide, got %d", len(slide.Tables))
	}
}

func TestPositionTable(t *testing.T) {
	h := NewHandler()

	left, top := h.PositionTable(0)
	if left <= 0 || top <= 0 {
		t.Errorf("Default position must be positive, got left=%d top=%d", left, top)
	}

	contentHeight := int64(2 * emuPerInch)
	_, below := h.PositionTable(contentHeight)
	if below <= contentHeight {
		t.Errorf("Table should sit below existing content: top=%d content=%d", below, contentHeight)
	}

	huge := int64(20 * emuPerInch)
	_, capped := h.PositionTable(huge)
	if capped > maxTableTop {
		t.Errorf("Table top must be capped at %d, got %d", maxTableTop, capped)
	}
}

func TestValidateFontSizes(t *testing.T) {
	h := NewHandler()

	cleaned := h.ValidateFontSizes(map[string]interface{}{"header_font_size": 30})
	if cleaned["header_font_size"] != 24 {
		t.Errorf("Expected clamp to 24, got %v", cleaned["header_font_size"])
	}

	cleaned = h.ValidateFontSizes(map[string]interface{}{"data_font_size": 5})
	if cleaned["data_font_size"] != 8 {
		t.Errorf("Expected raise to 8, got %v", cleaned["data_font_size"])
	}

	cleaned = h.ValidateFontSizes(map[string]interface{}{"header_font_size": "bad"})
	if _, present := cleaned["header_font_size"]; present {
		t.Error("Non-numeric size should be dropped from the config")
	}

	cleaned = h.ValidateFontSizes(map[string]interface{}{"header_font_size": nil})
	if _, present := cleaned["header_font_size"]; present {
		t.Error("Nil size should be ignored silently")
	}

	cleaned = h.ValidateFontSizes(map[string]interface{}{
		"data_font_size": 12,
		"border_style":   "thin",
	})
	if cleaned["data_font_size"] != 12 {
		t.Errorf("In-range size should pass through, got %v", cleaned["data_font_size"])
	}
	if cleaned["border_style"] != "thin" {
		t.Error("Unrelated keys must pass through untouched")
	}
}
