package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"google.golang.org/genai"

	"github.com/murogrande/docdrift"
	"github.com/murogrande/docdrift/check"
	"github.com/murogrande/docdrift/fs"
	"github.com/murogrande/docdrift/gemini"
	drifthttp "github.com/murogrande/docdrift/http"
	"github.com/murogrande/docdrift/resolve"
	"github.com/murogrande/docdrift/scan"
	driftslog "github.com/murogrande/docdrift/slog"
	"github.com/murogrande/docdrift/treesitter"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docdrift"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'docdrift --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	if cmd == "check" {
		if err := m.wireCheck(ctx, cli, deps, stderr); err != nil {
			return err
		}
	}

	return kongCtx.Run(deps)
}

// wireCheck builds the detector and its collaborators from the check
// command's flags.
func (m *Main) wireCheck(ctx context.Context, cli *CLI, deps *Dependencies, stderr io.Writer) error {
	c := &cli.Check

	catalog, err := treesitter.NewCatalog(c.Root)
	if err != nil {
		fmt.Fprintln(stderr, "Hint: pass the project root with --root")
		return fmt.Errorf("failed to open project: %s", docdrift.ErrorMessage(err))
	}

	docsRoot := filepath.Join(c.Root, c.Docs)
	scanner := scan.NewScanner(docsRoot)
	resolver := resolve.NewResolver(catalog, resolve.WithReexports(c.Reexports))
	local := fs.NewLinkResolver(c.Root, docsRoot)
	validator := drifthttp.NewValidator(
		drifthttp.WithTimeout(c.Timeout),
		drifthttp.WithConcurrency(c.Concurrency),
		drifthttp.WithSkipDomains(c.SkipDomains),
	)

	detector := &check.Detector{
		Catalog:      catalog,
		Scanner:      scanner,
		Resolver:     resolver,
		Local:        local,
		External:     validator,
		Roots:        c.Modules,
		Exclude:      c.Exclude,
		DocsRoot:     docsRoot,
		IgnoreParams: c.IgnoreParams,
		Reexports:    c.Reexports,
	}

	if c.Verbose {
		logger := slog.New(slog.NewTextHandler(stderr, nil))
		detector.Catalog = driftslog.NewLoggingCatalog(catalog, logger)
		detector.External = driftslog.NewLoggingValidator(validator, logger)
	}

	nav, err := scan.LoadNav(filepath.Join(c.Root, c.Manifest))
	if err != nil {
		return err
	}
	if nav != nil {
		detector.Nav = nav
	}

	if c.Quality {
		var client *genai.Client
		if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
			client, err = genai.NewClient(ctx, &genai.ClientConfig{
				APIKey:  apiKey,
				Backend: genai.BackendGeminiAPI,
			})
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
				return fmt.Errorf("failed to connect to Gemini API: %w", err)
			}
		}
		detector.Grader = gemini.NewGrader(client)
	}

	deps.Detector = detector
	return nil
}
