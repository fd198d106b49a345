// Package naming maps raw PowerPoint placeholders to semantic field names.
//
// SYSTEM ARCHITECTURE ROLE:
// Template authors do not guarantee that placeholder indices increase
// left-to-right or top-to-bottom, so field names cannot be derived from
// index order alone. This module resolves a (layout, index, type) context
// through ordered tiers, each more general than the last, stopping at the
// first applicable rule:
//
//  1. Exact layout+index tables for known layouts
//  2. Semantic type + positional convention (left/right, col{N})
//  3. Universal semantics (index 0 is a title, 10-12 are footer slots)
//  4. Position inference for unknown layouts
//  5. A "{type}_{idx}" fallback that always produces a name
//
// The resolver is a pure function of its input: the same context always
// yields the same name, which template analysis and caching rely on.
package naming

import (
	"fmt"
	"strconv"

	"github.com/teknologika/Deckbuilder-sub002/internal/models"
)

// Convention resolves placeholder names through an ordered tier table.
type Convention struct {
	tiers []tier
}

// tier pairs a human-readable name with a resolver. A resolver returns
// (name, true) when it applies to the context, first match wins.
type tier struct {
	name    string
	resolve func(models.PlaceholderContext) (string, bool)
}

// NewConvention builds the standard tier table.
func NewConvention() *Convention {
	return &Convention{
		tiers: []tier{
			{"exact_layout_index", resolveExactLayoutIndex},
			{"type_and_position", resolveTypeAndPosition},
			{"universal_semantics", resolveUniversalSemantics},
			{"position_inference", resolvePositionInference},
			{"fallback", resolveFallback},
		},
	}
}

// PlaceholderName returns the semantic field name for the placeholder. It
// never returns an empty string: the fallback tier applies to any context.
func (c *Convention) PlaceholderName(ctx models.PlaceholderContext) string {
	for _, t := range c.tiers {
		if name, ok := t.resolve(ctx); ok {
			return name
		}
	}
	// The fallback tier always resolves; this line is unreachable.
	return fmt.Sprintf("unknown_%s", ctx.PlaceholderIdx)
}

// Tier 1: exact layout+index tables. These pin down the layouts whose
// placeholder indices are known not to follow any positional pattern.
var layoutIndexNames = map[string]map[string]string{
	"Four Columns With Titles": {
		"0":  "title_top",
		"13": "title_col1", "14": "content_col1",
		"15": "title_col2", "16": "content_col2",
		"17": "title_col3", "18": "content_col3",
		"19": "title_col4", "20": "content_col4",
	},
	"Four Columns": {
		"0":  "title_top",
		"13": "content_col1", "14": "content_col2",
		"15": "content_col3", "16": "content_col4",
	},
	"Three Columns With Titles": {
		"0":  "title_top",
		"13": "title_col1", "14": "content_col1",
		"15": "title_col2", "16": "content_col2",
		"17": "title_col3", "18": "content_col3",
	},
	"Three Columns": {
		"0":  "title_top",
		"13": "content_col1", "14": "content_col2", "15": "content_col3",
	},
	"Comparison": {
		"0": "title_top",
		"1": "title_left", "2": "content_left",
		"3": "title_right", "4": "content_right",
	},
	"Two Content": {
		"0": "title_top",
		"1": "content_left", "2": "content_right",
	},
	"Title Slide": {
		"0": "title_top",
		"1": "subtitle",
	},
	"Section Header": {
		"0": "title_top",
		"1": "text",
	},
	"SWOT Analysis": {
		"0":  "title_top",
		"16": "content_16", "17": "content_17",
		"18": "content_18", "19": "content_19",
	},
	"Picture with Caption": {
		"0": "title_top",
		"1": "image_1",
		"2": "text_caption_1",
	},
	"Agenda, 6 Textboxes": {
		"0":  "title_top",
		"28": "number_item1_1", "18": "content_item1_1",
		"29": "number_item2_1", "20": "content_item2_1",
		"30": "number_item3_1", "22": "content_item3_1",
		"31": "number_item4_1", "19": "content_item4_1",
		"32": "number_item5_1", "21": "content_item5_1",
		"33": "number_item6_1", "34": "content_item6_1",
	},
	"Title and 6-item Lists": {
		"0":  "title_top",
		"13": "title_item1_1", "14": "content_item1_1",
		"15": "title_item2_1", "16": "content_item2_1",
		"17": "title_item3_1", "18": "content_item3_1",
		"19": "title_item4_1", "20": "content_item4_1",
		"21": "title_item5_1", "22": "content_item5_1",
		"23": "title_item6_1", "24": "content_item6_1",
	},
}

func resolveExactLayoutIndex(ctx models.PlaceholderContext) (string, bool) {
	table, ok := layoutIndexNames[ctx.LayoutName]
	if !ok {
		return "", false
	}
	name, ok := table[ctx.PlaceholderIdx]
	return name, ok
}

// Tier 2: semantic type combined with index position. Covers comparison-like
// layouts the exact tables do not pin down: odd indices sit on the left,
// even on the right, and paired title/content placeholders share a side.
func resolveTypeAndPosition(ctx models.PlaceholderContext) (string, bool) {
	idx, err := strconv.Atoi(ctx.PlaceholderIdx)
	if err != nil || idx < 1 || idx > 8 {
		return "", false
	}
	switch ctx.PlaceholderType {
	case "title":
		if idx%2 == 1 {
			return "title_left", true
		}
		return "title_right", true
	case "content", "body":
		if idx%2 == 1 {
			return "content_left", true
		}
		return "content_right", true
	}
	return "", false
}

// Tier 3: universal semantics that hold across every layout.
func resolveUniversalSemantics(ctx models.PlaceholderContext) (string, bool) {
	switch ctx.PlaceholderIdx {
	case "0":
		return "title_top", true
	case "10":
		return "date_footer", true
	case "11":
		return "footer_footer", true
	case "12":
		return "slide_number_footer", true
	}
	return "", false
}

// Tier 4: position inference for unknown layouts.
func resolvePositionInference(ctx models.PlaceholderContext) (string, bool) {
	idx, err := strconv.Atoi(ctx.PlaceholderIdx)
	if err != nil {
		return "", false
	}
	ptype := ctx.PlaceholderType
	if ptype == "" {
		ptype = "content"
	}
	switch {
	case idx == 0:
		return ptype + "_top", true
	case idx == 1:
		return ptype + "_main", true
	case idx >= 10:
		return ptype + "_footer", true
	}
	return "", false
}

// Tier 5: guaranteed fallback.
func resolveFallback(ctx models.PlaceholderContext) (string, bool) {
	if ctx.PlaceholderType == "" {
		return fmt.Sprintf("unknown_%s", ctx.PlaceholderIdx), true
	}
	return fmt.Sprintf("%s_%s", ctx.PlaceholderType, ctx.PlaceholderIdx), true
}
