package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/harvest"
	"github.com/fwojciec/harvest/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	DB       *sqlite.DB
	Results  harvest.ResultService
	Renderer harvest.Renderer
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Enable debug logging"`

	Crawl      CrawlCmd      `cmd:"" help:"Crawl a site and extract structured data"`
	Extract    ExtractCmd    `cmd:"" help:"Extract data from a single page"`
	Strategies StrategiesCmd `cmd:"" help:"List available extraction strategies"`
	Runs       RunsCmd       `cmd:"" help:"List stored crawl runs"`
	Show       ShowCmd       `cmd:"" help:"Show the results of a stored run"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	URL        string            `arg:"" help:"Origin URL to crawl"`
	Strategy   string            `short:"s" default:"generic" enum:"generic,product,article,selector" help:"Extraction strategy"`
	Selectors  string            `short:"S" type:"existingfile" help:"Selector file (JSON or YAML) for the selector strategy"`
	Depth      int               `short:"d" default:"1" help:"Maximum link depth"`
	Pages      int               `short:"p" default:"10" help:"Maximum pages to crawl"`
	Delay      time.Duration     `default:"1s" help:"Delay between requests"`
	Timeout    time.Duration     `default:"10s" help:"Per-request timeout"`
	Follow     bool              `short:"f" help:"Follow same-domain links"`
	UserAgent  string            `name:"user-agent" default:"harvest/1.0" help:"User-Agent header"`
	Header     map[string]string `short:"H" help:"Extra request header (repeatable)"`
	Render     bool              `help:"Render pages in a headless browser"`
	RenderPlan string            `name:"render-plan" type:"existingfile" help:"Render wait/actions file (JSON or YAML)"`
	Save       bool              `help:"Persist the run to the database"`
	Output     string            `short:"o" type:"path" help:"Export results as JSON files into this directory"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	URL        string        `arg:"" help:"Page URL"`
	Strategy   string        `short:"s" default:"generic" enum:"generic,product,article,selector" help:"Extraction strategy"`
	Selectors  string        `short:"S" type:"existingfile" help:"Selector file (JSON or YAML) for the selector strategy"`
	Timeout    time.Duration `default:"10s" help:"Request timeout"`
	UserAgent  string        `name:"user-agent" default:"harvest/1.0" help:"User-Agent header"`
	Render     bool          `help:"Render the page in a headless browser"`
	RenderPlan string        `name:"render-plan" type:"existingfile" help:"Render wait/actions file (JSON or YAML)"`
}

// StrategiesCmd is the "strategies" subcommand.
type StrategiesCmd struct{}

// RunsCmd is the "runs" subcommand.
type RunsCmd struct{}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	RunID string `arg:"" help:"Run ID"`
}
