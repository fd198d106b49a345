// Package patterns discovers and loads layout pattern files: JSON documents
// describing each layout's required/optional frontmatter fields, its
// structured-shorthand shape and an example YAML block. Built-in patterns
// are embedded in the binary; a {templateFolder}/patterns/ directory can
// override them per derived layout name. One malformed pattern file never
// blocks loading of the others; it is logged and skipped.
package patterns

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/teknologika/Deckbuilder-sub002/internal/models"
)

//go:embed builtin/*.json
var builtinFS embed.FS

// Loader merges built-in and user patterns into one lookup table keyed by
// the layout's PowerPoint display name. The merged table is cached until
// ClearCache is called; a Loader is safe to treat as immutable between
// explicit reloads.
type Loader struct {
	userDir string

	mu    sync.Mutex
	cache map[string]models.Pattern
}

// NewLoader creates a loader. userDir is the pattern override directory
// (normally {templateFolder}/patterns) and may point at a directory that
// does not exist; loading then degrades to built-ins only.
func NewLoader(userDir string) *Loader {
	return &Loader{userDir: userDir}
}

// Load returns the merged pattern table. Built-ins load first, then user
// patterns replace entries with the same derived layout name.
func (l *Loader) Load() (map[string]models.Pattern, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cache != nil {
		return l.cache, nil
	}

	merged := make(map[string]models.Pattern)

	entries, err := fs.ReadDir(builtinFS, "builtin")
	if err != nil {
		return nil, fmt.Errorf("failed to read built-in patterns: %w", err)
	}
	for _, entry := range entries {
		data, err := builtinFS.ReadFile("builtin/" + entry.Name())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to read built-in pattern %s: %v\n", entry.Name(), err)
			continue
		}
		addPattern(merged, entry.Name(), data)
	}

	l.loadUserPatterns(merged)

	l.cache = merged
	return merged, nil
}

// loadUserPatterns overlays patterns from the user directory. A missing
// directory is a normal condition, not an error.
func (l *Loader) loadUserPatterns(merged map[string]models.Pattern) {
	if l.userDir == "" {
		return
	}
	entries, err := os.ReadDir(l.userDir)
	if err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Warning: failed to read pattern directory %s: %v\n", l.userDir, err)
		}
		return
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(l.userDir, entry.Name()))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to read pattern %s: %v\n", entry.Name(), err)
			continue
		}
		addPattern(merged, entry.Name(), data)
	}
}

// addPattern parses, validates and merges one pattern file. Failures warn
// and skip so a single bad file cannot poison the table.
func addPattern(merged map[string]models.Pattern, filename string, data []byte) {
	var pattern models.Pattern
	if err := json.Unmarshal(data, &pattern); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: skipping pattern %s: invalid JSON: %v\n", filename, err)
		return
	}
	if err := validatePattern(&pattern); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: skipping pattern %s: %v\n", filename, err)
		return
	}
	layoutName := LayoutNameFromFilename(filename)
	merged[layoutName] = pattern
}

// validatePattern checks the required pattern fields are all present.
func validatePattern(p *models.Pattern) error {
	var missing []string
	if p.Description == "" {
		missing = append(missing, "description")
	}
	if p.YAMLPattern == nil {
		missing = append(missing, "yaml_pattern")
	}
	if len(p.Validation.RequiredFields) == 0 && len(p.Validation.OptionalFields) == 0 {
		missing = append(missing, "validation")
	}
	if p.Example == "" {
		missing = append(missing, "example")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

// ClearCache forces the next Load to re-read every pattern file.
func (l *Loader) ClearCache() {
	l.mu.Lock()
	l.cache = nil
	l.mu.Unlock()
}

// Get returns the pattern for a layout display name.
func (l *Loader) Get(layoutName string) (models.Pattern, bool, error) {
	table, err := l.Load()
	if err != nil {
		return models.Pattern{}, false, err
	}
	pattern, ok := table[layoutName]
	return pattern, ok, nil
}

// ExampleFor returns the example YAML block for a layout, or "" when no
// pattern covers it.
func (l *Loader) ExampleFor(layoutName string) string {
	pattern, ok, err := l.Get(layoutName)
	if err != nil || !ok {
		return ""
	}
	return pattern.Example
}
