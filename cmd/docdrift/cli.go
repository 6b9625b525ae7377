package main

import (
	"context"
	"io"
	"time"

	"github.com/murogrande/docdrift/check"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Detector *check.Detector
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Check CheckCmd `cmd:"" help:"Check a project's documentation for drift"`
}

// CheckCmd is the "check" subcommand.
type CheckCmd struct {
	Modules []string `arg:"" help:"Root packages whose public API is checked"`

	Root         string        `short:"r" default:"." help:"Project root directory"`
	Docs         string        `short:"d" default:"docs" help:"Documentation directory, relative to the project root"`
	Manifest     string        `default:"mkdocs.yml" help:"Nav manifest path, relative to the project root"`
	Exclude      []string      `short:"x" help:"Fully qualified submodules to skip (repeatable)"`
	Reexports    []string      `help:"Symbol names re-exported from elsewhere that need no local docs (repeatable)"`
	IgnoreParams []string      `help:"Parameter names exempt from the undocumented-parameter check (repeatable)"`
	External     bool          `short:"e" default:"true" negatable:"" help:"Validate external links over the network"`
	Quality      bool          `short:"q" help:"Grade docstring quality with Gemini (requires GEMINI_API_KEY)"`
	SkipDomains  []string      `help:"Domains never probed during external link validation (repeatable)"`
	Concurrency  int           `short:"c" default:"5" help:"Concurrent external link probe limit"`
	Timeout      time.Duration `default:"10s" help:"Per-probe timeout for external links"`
	JSON         bool          `help:"Emit the report as JSON"`
	Verbose      bool          `short:"v" help:"Log operations to stderr"`
}
