package engine

import (
	"github.com/teknologika/Deckbuilder-sub002/internal/models"
	"github.com/teknologika/Deckbuilder-sub002/internal/naming"
)

// Renderer binds a canonical deck to a template and produces the in-memory
// rendered deck. Rendering is all-or-nothing: the first unresolvable layout
// or field aborts with an error naming the alternatives, and no partial deck
// is returned.
type Renderer struct {
	convention *naming.Convention
	content    *ContentProcessor
}

// NewRenderer creates a renderer using the standard naming convention.
func NewRenderer() *Renderer {
	return &Renderer{
		convention: naming.NewConvention(),
		content:    NewContentProcessor(),
	}
}

// Render produces the rendered deck for a canonical deck against a template.
func (r *Renderer) Render(deck *models.Deck, template *Template) (*models.RenderedDeck, error) {
	layouts := NewLayoutResolver(template)
	rendered := &models.RenderedDeck{}

	for _, slide := range deck.Slides {
		layout, err := layouts.GetLayoutByName(slide.Layout)
		if err != nil {
			return nil, err
		}
		placeholders := NewPlaceholderResolver(layout, r.convention)
		renderedSlide, err := r.content.ApplyContent(slide, layout, placeholders)
		if err != nil {
			return nil, err
		}
		rendered.Slides = append(rendered.Slides, renderedSlide)
	}

	if rendered.Title == "" && len(deck.Slides) > 0 {
		if title, ok := deck.Slides[0].Placeholders["title"].(string); ok {
			rendered.Title = title
		}
	}
	return rendered, nil
}
