// Package service provides the business logic for deck generation.
//
// SYSTEM ARCHITECTURE ROLE:
// This module wires the full pipeline behind a single facade: markdown or
// canonical JSON in, validated .pptx file out. The CLI talks only to this
// package; no interface layer reaches into the converter, engine or writer
// directly.
//
// GENERATION FLOW:
//  1. Load the template mapping and build the template object
//  2. Convert markdown to the canonical deck (JSON input skips this)
//  3. Markdown-to-canonical fidelity validation
//  4. Pre-generation validation (strict placeholder matching)
//  5. Render the deck against the template
//  6. Post-generation validation against the rendered deck
//  7. Serialize to a versioned output file
//
// Validation failures abort before any file is written, so a bad deck never
// leaves a half-correct .pptx on disk.
package service

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/teknologika/Deckbuilder-sub002/internal/converter"
	"github.com/teknologika/Deckbuilder-sub002/internal/engine"
	"github.com/teknologika/Deckbuilder-sub002/internal/errors"
	"github.com/teknologika/Deckbuilder-sub002/internal/frontmatter"
	"github.com/teknologika/Deckbuilder-sub002/internal/models"
	"github.com/teknologika/Deckbuilder-sub002/internal/naming"
	"github.com/teknologika/Deckbuilder-sub002/internal/patterns"
	"github.com/teknologika/Deckbuilder-sub002/internal/pptx"
	"github.com/teknologika/Deckbuilder-sub002/internal/templates"
	"github.com/teknologika/Deckbuilder-sub002/internal/validation"
)

// Environment variables controlling folder resolution.
const (
	EnvTemplateFolder = "DECKBUILDER_TEMPLATE_FOLDER"
	EnvOutputFolder   = "DECKBUILDER_OUTPUT_FOLDER"
)

// Service provides deck generation, template analysis and validation.
type Service struct {
	templates *templates.Cache
	patterns  *patterns.Loader
	validator *validation.PresentationValidator
	renderer  *engine.Renderer
	writer    *pptx.Writer
	outputDir string
	now       func() time.Time
}

// NewService creates a service with folders resolved from the environment.
func NewService() (*Service, error) {
	outputDir := os.Getenv(EnvOutputFolder)
	if outputDir == "" {
		outputDir = "."
	}
	return NewServiceWithFolders(resolveTemplateDir(), outputDir)
}

// resolveTemplateDir picks the template folder: environment variable first,
// then ./templates, then ~/.deckbuilder/templates, then the working
// directory.
func resolveTemplateDir() string {
	if dir := os.Getenv(EnvTemplateFolder); dir != "" {
		return dir
	}
	if info, err := os.Stat("templates"); err == nil && info.IsDir() {
		return "templates"
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidate := filepath.Join(home, ".deckbuilder", "templates")
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate
		}
	}
	return "."
}

// NewServiceWithFolders creates a service over explicit folders.
func NewServiceWithFolders(templateDir, outputDir string) (*Service, error) {
	if _, err := os.Stat(templateDir); err != nil {
		return nil, errors.NewAppError(errors.ErrCodeFileNotFound,
			fmt.Sprintf("template folder '%s' does not exist. Fix: create it or point %s at an existing folder",
				templateDir, EnvTemplateFolder))
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStorage,
			fmt.Sprintf("failed to create output folder '%s'", outputDir))
	}

	cache := templates.NewCache(templateDir)
	return &Service{
		templates: cache,
		patterns:  patterns.NewLoader(cache.PatternsDir()),
		validator: validation.New(),
		renderer:  engine.NewRenderer(),
		writer:    pptx.NewWriter("deckbuilder"),
		outputDir: outputDir,
		now:       time.Now,
	}, nil
}

// OutputDir returns the resolved output folder.
func (s *Service) OutputDir() string {
	return s.outputDir
}

// TemplateDir returns the resolved template folder.
func (s *Service) TemplateDir() string {
	return s.templates.Folder()
}

// CreateFromMarkdown converts a markdown document and generates a validated
// presentation. Returns the path of the written file.
func (s *Service) CreateFromMarkdown(markdown, templateName, outputName string) (string, error) {
	template, err := s.loadTemplate(templateName)
	if err != nil {
		return "", err
	}

	sections, err := converter.SplitSections(markdown)
	if err != nil {
		return "", err
	}

	registry := frontmatter.NewRegistry(template.Mapping)
	conv := converter.New(frontmatter.NewConverter(registry))
	deck, err := conv.Convert(markdown)
	if err != nil {
		return "", err
	}

	digests, err := sectionDigests(sections)
	if err != nil {
		return "", err
	}
	if err := s.validator.ValidateMarkdownToJSON(digests, deck); err != nil {
		return "", err
	}

	return s.generate(deck, template, outputName)
}

// CreateFromJSON parses canonical presentation JSON and generates a
// validated presentation.
func (s *Service) CreateFromJSON(data []byte, templateName, outputName string) (string, error) {
	template, err := s.loadTemplate(templateName)
	if err != nil {
		return "", err
	}
	deck, err := models.ParseDeck(data)
	if err != nil {
		return "", err
	}
	return s.generate(deck, template, outputName)
}

// generate runs validation, rendering and serialization for a canonical deck.
func (s *Service) generate(deck *models.Deck, template *engine.Template, outputName string) (string, error) {
	if err := s.validator.ValidatePreGeneration(deck, template); err != nil {
		return "", err
	}

	rendered, err := s.renderer.Render(deck, template)
	if err != nil {
		return "", err
	}

	if err := s.validator.ValidatePostGeneration(deck, rendered); err != nil {
		return "", err
	}

	path, err := pptx.VersionedPath(s.outputDir, outputName, s.now())
	if err != nil {
		return "", errors.GenerationFailed(err)
	}
	if err := s.writer.WriteFile(rendered, path); err != nil {
		return "", err
	}
	return path, nil
}

// ValidateMarkdown runs conversion and both pre-render validation stages
// without generating a file.
func (s *Service) ValidateMarkdown(markdown, templateName string) error {
	template, err := s.loadTemplate(templateName)
	if err != nil {
		return err
	}
	sections, err := converter.SplitSections(markdown)
	if err != nil {
		return err
	}
	registry := frontmatter.NewRegistry(template.Mapping)
	deck, err := converter.New(frontmatter.NewConverter(registry)).Convert(markdown)
	if err != nil {
		return err
	}
	digests, err := sectionDigests(sections)
	if err != nil {
		return err
	}
	if err := s.validator.ValidateMarkdownToJSON(digests, deck); err != nil {
		return err
	}
	return s.validator.ValidatePreGeneration(deck, template)
}

// ValidateJSON parses canonical JSON and runs pre-generation validation.
func (s *Service) ValidateJSON(data []byte, templateName string) error {
	template, err := s.loadTemplate(templateName)
	if err != nil {
		return err
	}
	deck, err := models.ParseDeck(data)
	if err != nil {
		return err
	}
	return s.validator.ValidatePreGeneration(deck, template)
}

// LayoutReport describes one layout for template analysis output.
type LayoutReport struct {
	Name         string
	Index        int
	Placeholders []PlaceholderReport
}

// PlaceholderReport pairs a placeholder index with its mapped and
// convention-derived names.
type PlaceholderReport struct {
	Index          string
	MappedField    string
	ConventionName string
}

// AnalyzeTemplate reports every layout and placeholder of a template,
// including what the naming convention would call each placeholder. Useful
// for diagnosing why a field fails strict validation.
func (s *Service) AnalyzeTemplate(templateName string) ([]LayoutReport, error) {
	template, err := s.loadTemplate(templateName)
	if err != nil {
		return nil, err
	}

	convention := naming.NewConvention()
	var reports []LayoutReport
	for _, layout := range template.Layouts() {
		report := LayoutReport{Name: layout.Name, Index: layout.Index}
		conventionNames := layout.ConventionNames(convention)

		indices := make([]string, 0, len(layout.Placeholders))
		for idx := range layout.Placeholders {
			indices = append(indices, idx)
		}
		sort.Slice(indices, func(i, j int) bool {
			return lessNumeric(indices[i], indices[j])
		})
		for _, idx := range indices {
			report.Placeholders = append(report.Placeholders, PlaceholderReport{
				Index:          idx,
				MappedField:    layout.Placeholders[idx],
				ConventionName: conventionNames[idx],
			})
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// Patterns returns all loaded structured frontmatter patterns, built-in plus
// user overrides.
func (s *Service) Patterns() (map[string]models.Pattern, error) {
	return s.patterns.Load()
}

// PatternExample returns the example markdown for one layout's pattern, or
// "" when the layout has none.
func (s *Service) PatternExample(layoutName string) string {
	return s.patterns.ExampleFor(layoutName)
}

// InvalidateCaches drops cached template mappings and patterns.
func (s *Service) InvalidateCaches() {
	s.templates.Invalidate()
	s.patterns.ClearCache()
}

func (s *Service) loadTemplate(name string) (*engine.Template, error) {
	if name == "" {
		name = "default"
	}
	mapping, err := s.templates.Load(name)
	if err != nil {
		return nil, err
	}
	return engine.NewTemplate(trimTemplateName(name), mapping), nil
}

func trimTemplateName(name string) string {
	base := filepath.Base(name)
	base = strings.TrimSuffix(base, ".pptx")
	return strings.TrimSuffix(base, ".json")
}

// sectionDigests extracts the layout and field names of each authored
// section for conversion fidelity checks.
func sectionDigests(sections []converter.Section) ([]validation.SourceSection, error) {
	digests := make([]validation.SourceSection, 0, len(sections))
	for i, section := range sections {
		fm := map[string]interface{}{}
		if err := yaml.Unmarshal([]byte(section.Frontmatter), &fm); err != nil {
			return nil, errors.ConversionFailed(i+1, fmt.Errorf("invalid YAML frontmatter: %w", err))
		}
		digest := validation.SourceSection{}
		if layout, ok := fm["layout"].(string); ok {
			digest.Layout = layout
		}
		for field := range fm {
			digest.Fields = append(digest.Fields, field)
		}
		sort.Strings(digest.Fields)
		digests = append(digests, digest)
	}
	return digests, nil
}

// lessNumeric orders placeholder index strings numerically, falling back to
// lexical order for non-numeric keys.
func lessNumeric(a, b string) bool {
	ai, aerr := strconv.Atoi(a)
	bi, berr := strconv.Atoi(b)
	if aerr == nil && berr == nil {
		return ai < bi
	}
	return a < b
}
