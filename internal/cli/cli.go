// Package cli provides headless command-line interface functionality.
//
// SYSTEM ARCHITECTURE ROLE:
// This module is the only interface layer of the system. It parses
// subcommands and flags, reads input files, delegates every operation to the
// service layer and formats results for the terminal. No business logic
// lives here.
//
// COMMANDS:
//   - create:    markdown or JSON file -> validated .pptx
//   - validate:  run validation stages without generating a file
//   - analyze:   report a template's layouts, placeholders and naming
//   - patterns:  list structured frontmatter patterns or print an example
//   - preview:   render a markdown source document in the terminal
package cli

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/teknologika/Deckbuilder-sub002/internal/service"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// CLI dispatches deckbuilder subcommands.
type CLI struct {
	service *service.Service
}

// NewCLI creates a new CLI instance.
func NewCLI(svc *service.Service) *CLI {
	return &CLI{service: svc}
}

// ExecuteCommand runs one subcommand with its arguments.
func (c *CLI) ExecuteCommand(args []string) error {
	if len(args) == 0 {
		return c.printUsage()
	}

	command := args[0]
	commandArgs := args[1:]

	switch command {
	case "create", "generate":
		return c.createDeck(commandArgs)
	case "validate", "check":
		return c.validateDeck(commandArgs)
	case "analyze":
		return c.analyzeTemplate(commandArgs)
	case "patterns":
		return c.handlePatterns(commandArgs)
	case "preview":
		return c.previewDocument(commandArgs)
	case "help":
		return c.printUsage()
	default:
		return fmt.Errorf("unknown command: %s. Use 'help' for usage information", command)
	}
}

// createDeck generates a presentation from a markdown or JSON source file.
func (c *CLI) createDeck(args []string) error {
	var inputPath, templateName, outputName string

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--template", "-t":
			if i+1 < len(args) {
				templateName = args[i+1]
				i++
			}
		case "--output", "-o":
			if i+1 < len(args) {
				outputName = args[i+1]
				i++
			}
		default:
			if inputPath == "" && !strings.HasPrefix(args[i], "-") {
				inputPath = args[i]
			}
		}
	}

	if inputPath == "" {
		return fmt.Errorf("create requires an input file. Usage: deckbuilder create <file.md|file.json> [--template name] [--output name]")
	}
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", inputPath, err)
	}
	if outputName == "" {
		outputName = baseName(inputPath)
	}

	var path string
	if strings.HasSuffix(inputPath, ".json") {
		path, err = c.service.CreateFromJSON(data, templateName, outputName)
	} else {
		path, err = c.service.CreateFromMarkdown(string(data), templateName, outputName)
	}
	if err != nil {
		return err
	}

	fmt.Println(successStyle.Render("✓ Created " + path))
	return nil
}

// validateDeck runs the validation stages on a source file without
// generating output.
func (c *CLI) validateDeck(args []string) error {
	var inputPath, templateName string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--template", "-t":
			if i+1 < len(args) {
				templateName = args[i+1]
				i++
			}
		default:
			if inputPath == "" && !strings.HasPrefix(args[i], "-") {
				inputPath = args[i]
			}
		}
	}

	if inputPath == "" {
		return fmt.Errorf("validate requires an input file. Usage: deckbuilder validate <file.md|file.json> [--template name]")
	}
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", inputPath, err)
	}

	if strings.HasSuffix(inputPath, ".json") {
		err = c.service.ValidateJSON(data, templateName)
	} else {
		err = c.service.ValidateMarkdown(string(data), templateName)
	}
	if err != nil {
		fmt.Println(errorStyle.Render("✗ " + inputPath + " failed validation"))
		return err
	}

	fmt.Println(successStyle.Render("✓ " + inputPath + " is valid"))
	return nil
}

// analyzeTemplate prints a template's layout and placeholder structure.
func (c *CLI) analyzeTemplate(args []string) error {
	templateName := "default"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		templateName = args[0]
	}

	reports, err := c.service.AnalyzeTemplate(templateName)
	if err != nil {
		return err
	}

	fmt.Println(headerStyle.Render("Template: " + templateName))
	for _, report := range reports {
		fmt.Printf("\n%s (index %d)\n", headerStyle.Render(report.Name), report.Index)
		for _, ph := range report.Placeholders {
			line := fmt.Sprintf("  [%s] %s", ph.Index, ph.MappedField)
			if ph.ConventionName != ph.MappedField {
				line += dimStyle.Render("  (convention: " + ph.ConventionName + ")")
			}
			fmt.Println(line)
		}
	}
	return nil
}

// handlePatterns lists patterns or prints one layout's example.
func (c *CLI) handlePatterns(args []string) error {
	if len(args) == 0 || args[0] == "list" {
		return c.listPatterns()
	}
	if args[0] == "example" {
		if len(args) < 2 {
			return fmt.Errorf("patterns example requires a layout name. Usage: deckbuilder patterns example '<layout>'")
		}
		return c.printPatternExample(args[1])
	}
	return fmt.Errorf("unknown patterns subcommand: %s. Use 'list' or 'example'", args[0])
}

func (c *CLI) listPatterns() error {
	patterns, err := c.service.Patterns()
	if err != nil {
		return err
	}

	names := make([]string, 0, len(patterns))
	for name := range patterns {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println(headerStyle.Render("Structured frontmatter patterns"))
	for _, name := range names {
		fmt.Printf("  %s  %s\n", name, dimStyle.Render(patterns[name].Description))
	}
	return nil
}

func (c *CLI) printPatternExample(layoutName string) error {
	example := c.service.PatternExample(layoutName)
	if example == "" {
		return fmt.Errorf("no pattern example for layout '%s'. Use 'deckbuilder patterns list' to see available layouts", layoutName)
	}

	rendered, err := glamour.Render("```yaml\n"+example+"\n```", "dark")
	if err != nil {
		// Plain output still serves if the terminal renderer fails.
		fmt.Println(example)
		return nil
	}
	fmt.Print(rendered)
	return nil
}

// previewDocument renders a markdown source file in the terminal so authors
// can sanity-check content before generating.
func (c *CLI) previewDocument(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("preview requires an input file. Usage: deckbuilder preview <file.md>")
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	rendered, err := glamour.Render(string(data), "dark")
	if err != nil {
		fmt.Println(string(data))
		return nil
	}
	fmt.Print(rendered)
	return nil
}

func (c *CLI) printUsage() error {
	fmt.Println(headerStyle.Render("deckbuilder") + " - markdown to PowerPoint generator")
	fmt.Println(`
Usage:
  deckbuilder create <file.md|file.json> [--template name] [--output name]
  deckbuilder validate <file.md|file.json> [--template name]
  deckbuilder analyze [template]
  deckbuilder patterns list
  deckbuilder patterns example '<layout>'
  deckbuilder preview <file.md>
  deckbuilder help

Environment:
  DECKBUILDER_TEMPLATE_FOLDER  folder holding template mapping files
  DECKBUILDER_OUTPUT_FOLDER    folder for generated presentations`)
	return nil
}

// baseName strips the directory and extension from an input path.
func baseName(path string) string {
	base := path
	if idx := strings.LastIndexAny(base, "/\\"); idx >= 0 {
		base = base[idx+1:]
	}
	if idx := strings.LastIndex(base, "."); idx > 0 {
		base = base[:idx]
	}
	return base
}
