package patterns

import "strings"

// Filename↔layout-name mapping is rule based, with explicit special cases
// for the display names that break the rules (punctuation, digits, embedded
// hyphens). The two directions must stay inverses of each other.

var filenameToLayout = map[string]string{
	"swot_analysis":          "SWOT Analysis",
	"agenda_6_textboxes":     "Agenda, 6 Textboxes",
	"title_and_6_item_lists": "Title and 6-item Lists",
	"picture_with_caption":   "Picture with Caption",
}

var layoutToFilename = map[string]string{
	"SWOT Analysis":          "swot_analysis",
	"Agenda, 6 Textboxes":    "agenda_6_textboxes",
	"Title and 6-item Lists": "title_and_6_item_lists",
	"Picture with Caption":   "picture_with_caption",
}

// LayoutNameFromFilename derives the PowerPoint layout display name from a
// pattern filename. Default rule: split on underscores and title-case each
// word, preserving a literal lowercase "and".
func LayoutNameFromFilename(filename string) string {
	base := strings.TrimSuffix(filename, ".json")
	if name, ok := filenameToLayout[base]; ok {
		return name
	}
	words := strings.Split(base, "_")
	for i, word := range words {
		if word == "and" {
			continue
		}
		words[i] = titleWord(word)
	}
	return strings.Join(words, " ")
}

// FilenameFromLayoutName derives the pattern filename (without extension)
// from a layout display name.
func FilenameFromLayoutName(layoutName string) string {
	if base, ok := layoutToFilename[layoutName]; ok {
		return base
	}
	words := strings.Fields(layoutName)
	for i, word := range words {
		words[i] = strings.ToLower(word)
	}
	return strings.Join(words, "_")
}

func titleWord(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + word[1:]
}
