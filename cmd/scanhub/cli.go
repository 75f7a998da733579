package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/scanhub"
	"github.com/fwojciec/scanhub/aggregate"
	scangin "github.com/fwojciec/scanhub/gin"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	Logger     *slog.Logger
	Sources    scanhub.SourceRegistry
	Aggregator *aggregate.Aggregator
	Frontpages scanhub.FrontpageRegistry
	Health     scanhub.HealthChecker
	Proxy      scangin.Getter
}

// Bypass strategies for upstreams behind a bot challenge.
const (
	BypassSolver  = "solver"
	BypassBrowser = "browser"
	BypassNone    = "none"
)

// Globals are the flags shared by every command.
type Globals struct {
	FlareSolverrURL string        `name:"flaresolverr-url" env:"FLARESOLVERR_URL" default:"http://localhost:8191/v1" help:"FlareSolverr endpoint used by the solver bypass"`
	Bypass          string        `enum:"solver,browser,none" env:"SCANHUB_BYPASS" default:"solver" help:"Challenge bypass strategy (solver, browser, none)"`
	UserAgent       string        `name:"user-agent" env:"SCANHUB_USER_AGENT" help:"User-Agent sent to upstreams"`
	Timeout         time.Duration `default:"20s" help:"Per-source search timeout"`
	Retries         int           `default:"3" help:"Retries per page fetch"`
	RetryDelay      time.Duration `name:"retry-delay" default:"1s" help:"Base delay of the linear retry backoff"`
	Headed          bool          `help:"Show the browser window with --bypass=browser"`
	Verbose         bool          `short:"v" help:"Log fetches and debug output to stderr"`
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Globals

	Serve     ServeCmd     `cmd:"" help:"Run the HTTP API server"`
	Sources   SourcesCmd   `cmd:"" help:"List registered sources"`
	Search    SearchCmd    `cmd:"" help:"Search one or all sources"`
	Chapters  ChaptersCmd  `cmd:"" help:"List the chapters of a title"`
	Info      InfoCmd      `cmd:"" help:"Resolve the title and id of a title URL"`
	Health    HealthCmd    `cmd:"" help:"Probe source health"`
	Frontpage FrontpageCmd `cmd:"" help:"List or fetch frontpage sections"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr      string        `env:"SCANHUB_ADDR" default:":3000" help:"Listen address"`
	HealthTTL time.Duration `name:"health-ttl" default:"5m" help:"How long probe results are cached"`
}

// SourcesCmd is the "sources" subcommand.
type SourcesCmd struct {
	JSON bool `help:"Print JSON"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query  string `arg:"" help:"Search query"`
	Source string `short:"s" default:"all" help:"Source name, or all"`
	Stream bool   `help:"Print each source as soon as it answers"`
	JSON   bool   `help:"Print JSON"`
}

// ChaptersCmd is the "chapters" subcommand.
type ChaptersCmd struct {
	URL    string `arg:"" help:"Title URL"`
	Source string `short:"s" help:"Source name, when the URL is ambiguous"`
	JSON   bool   `help:"Print JSON"`
}

// InfoCmd is the "info" subcommand.
type InfoCmd struct {
	URL    string `arg:"" help:"Title URL"`
	Source string `short:"s" help:"Source name, when the URL is ambiguous"`
}

// HealthCmd is the "health" subcommand.
type HealthCmd struct {
	Source string `arg:"" optional:"" help:"Source name; all sources when omitted"`
	JSON   bool   `help:"Print JSON"`
}

// FrontpageCmd is the "frontpage" subcommand.
type FrontpageCmd struct {
	Source  string `arg:"" optional:"" help:"Frontpage source id; lists frontpages when omitted"`
	Section string `arg:"" optional:"" help:"Section id"`
	Page    int    `default:"1" help:"Page number"`
	Limit   int    `default:"30" help:"Items per page"`
	Days    int    `default:"7" help:"Time filter in days"`
	JSON    bool   `help:"Print JSON"`
}
