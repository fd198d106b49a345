// Package templates loads per-template mapping files: the JSON documents
// that describe each PowerPoint template's layouts and placeholder-index →
// field-name tables. Mappings are cached per Cache instance and treated as
// read-only; Invalidate forces a reload. The cache is an explicit object
// injected into consumers so tests can construct isolated instances instead
// of sharing process-global state.
package templates

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/teknologika/Deckbuilder-sub002/internal/errors"
	"github.com/teknologika/Deckbuilder-sub002/internal/models"
)

// Cache loads and caches template mappings from a template folder.
type Cache struct {
	folder string

	mu       sync.Mutex
	mappings map[string]*models.TemplateMapping
}

// NewCache creates a mapping cache over a template folder.
func NewCache(folder string) *Cache {
	return &Cache{
		folder:   folder,
		mappings: make(map[string]*models.TemplateMapping),
	}
}

// Folder returns the template folder backing the cache.
func (c *Cache) Folder() string {
	return c.folder
}

// PatternsDir returns the user pattern override directory for this folder.
func (c *Cache) PatternsDir() string {
	return filepath.Join(c.folder, "patterns")
}

// Load returns the mapping for a template name ("default" loads
// default.json). A missing mapping file is always fatal: without it no
// placeholder can be resolved.
func (c *Cache) Load(name string) (*models.TemplateMapping, error) {
	name = strings.TrimSuffix(name, ".pptx")
	name = strings.TrimSuffix(name, ".json")

	c.mu.Lock()
	defer c.mu.Unlock()

	if mapping, ok := c.mappings[name]; ok {
		return mapping, nil
	}

	path := filepath.Join(c.folder, name+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.TemplateNotFound(name, path)
		}
		return nil, errors.Wrap(err, errors.ErrCodeStorage,
			fmt.Sprintf("failed to read template mapping %s", path))
	}

	var mapping models.TemplateMapping
	if err := json.Unmarshal(data, &mapping); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidInput,
			fmt.Sprintf("template mapping %s is not valid JSON. Fix: regenerate the mapping with 'deckbuilder analyze' or correct the JSON by hand", path))
	}
	if len(mapping.Layouts) == 0 {
		return nil, errors.NewAppError(errors.ErrCodeInvalidInput,
			fmt.Sprintf("template mapping %s defines no layouts. Fix: add a 'layouts' object keyed by layout display name", path))
	}

	c.mappings[name] = &mapping
	return &mapping, nil
}

// Invalidate clears the cache so the next Load re-reads from disk.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.mappings = make(map[string]*models.TemplateMapping)
	c.mu.Unlock()
}
