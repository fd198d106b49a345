package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/teknologika/Deckbuilder-sub002/internal/cli"
	"github.com/teknologika/Deckbuilder-sub002/internal/service"
)

var version = "0.1.0"

func printHelp() {
	fmt.Printf(`deckbuilder - Markdown to PowerPoint generator

USAGE:
    deckbuilder [OPTIONS] [COMMAND]

OPTIONS:
    --help          Show this help information
    --version       Print version information
    --templates     Template folder (overrides DECKBUILDER_TEMPLATE_FOLDER)
    --output        Output folder (overrides DECKBUILDER_OUTPUT_FOLDER)

COMMANDS:
    create <file>              Generate a presentation from markdown or JSON
    validate <file>            Validate a source document without generating
    analyze [template]         Report a template's layouts and placeholders
    patterns list              List structured frontmatter patterns
    patterns example <layout>  Print an example for one layout
    preview <file.md>          Render a markdown document in the terminal
    help                       Show CLI command help

EXAMPLES:
    deckbuilder create deck.md                       # Generate with the default template
    deckbuilder create deck.md --template corporate  # Use a specific template
    deckbuilder create deck.json --output quarterly  # Canonical JSON input
    deckbuilder validate deck.md                     # Check without generating
    deckbuilder analyze default                      # Inspect layout structure
    deckbuilder patterns example 'Comparison'        # Structured frontmatter help

FOLDERS:
    Templates: DECKBUILDER_TEMPLATE_FOLDER (default: current directory)
    Output:    DECKBUILDER_OUTPUT_FOLDER   (default: current directory)
`)
}

func main() {
	var showVersion bool
	var showHelp bool
	var templateDir string
	var outputDir string

	flag.BoolVar(&showVersion, "version", false, "Print version information")
	flag.BoolVar(&showHelp, "help", false, "Show help information")
	flag.StringVar(&templateDir, "templates", "", "Template folder")
	flag.StringVar(&outputDir, "output", "", "Output folder")
	flag.Parse()

	if showHelp {
		printHelp()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("deckbuilder version %s\n", version)
		os.Exit(0)
	}

	// Flags beat environment, environment beats defaults.
	if templateDir != "" {
		os.Setenv(service.EnvTemplateFolder, templateDir)
	}
	if outputDir != "" {
		os.Setenv(service.EnvOutputFolder, outputDir)
	}

	svc, err := service.NewService()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	args := flag.Args()
	if len(args) == 0 {
		printHelp()
		os.Exit(0)
	}

	cliHandler := cli.NewCLI(svc)
	if err := cliHandler.ExecuteCommand(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
