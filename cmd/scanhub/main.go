package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/scanhub"
	"github.com/fwojciec/scanhub/aggregate"
	"github.com/fwojciec/scanhub/flaresolverr"
	"github.com/fwojciec/scanhub/frontpage"
	scangin "github.com/fwojciec/scanhub/gin"
	"github.com/fwojciec/scanhub/goquery"
	"github.com/fwojciec/scanhub/health"
	"github.com/fwojciec/scanhub/htmltomarkdown"
	scanhttp "github.com/fwojciec/scanhub/http"
	"github.com/fwojciec/scanhub/resilient"
	"github.com/fwojciec/scanhub/rod"
	scanslog "github.com/fwojciec/scanhub/slog"
	"github.com/fwojciec/scanhub/sources"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	_ = m.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Renderer is the browser fallback, set when the browser bypass is
	// selected.
	Renderer scanhub.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.Renderer != nil {
		return m.Renderer.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("scanhub"),
		kong.Description("Search manga sources and list their chapters"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'scanhub --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Command() includes positional placeholders, e.g. "search <query>".
	command := strings.Fields(kongCtx.Command())[0]

	deps.Logger = newLogger(stderr, cli.Verbose, command == "serve")
	if err := m.wire(deps, cli.Globals, command); err != nil {
		return err
	}
	if command == "serve" {
		deps.Health = health.NewCache(deps.Health, cli.Serve.HealthTTL)
	}

	return kongCtx.Run(deps)
}

func newLogger(w io.Writer, verbose, serving bool) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case verbose:
		level = slog.LevelDebug
	case serving:
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// wire builds the transport stack and registries from the global flags.
// Pages go through the TLS-hardened HTTP client with retries, and through
// the browser too when it is the bypass. Challenge-guarded JSON APIs go
// through the selected bypass.
func (m *Main) wire(deps *Dependencies, g Globals, cmd string) error {
	logger := deps.Logger
	detector := goquery.NewDetector()

	ua := g.UserAgent
	if ua == "" {
		ua = scanhub.DefaultUserAgent
	}

	if g.Bypass == BypassBrowser && cmd != "sources" {
		manager, err := rod.NewBrowserManager(rod.WithHeadless(!g.Headed))
		if err != nil {
			fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed for --bypass=browser")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		m.Renderer = scanslog.NewLoggingFetcher(rod.NewFetcher(manager, rod.WithUserAgent(ua)), logger.With("fetcher", "browser"))
	}

	retrying := func(f scanhub.Fetcher) scanhub.Fetcher {
		opts := []resilient.Option{
			resilient.WithRetries(g.Retries, g.RetryDelay),
			resilient.WithChallengeDetector(detector),
			resilient.WithLogger(logger),
		}
		if m.Renderer != nil {
			opts = append(opts, resilient.WithRenderer(m.Renderer))
		}
		return scanslog.NewLoggingFetcher(resilient.NewFetcher(f, opts...), logger)
	}

	direct := scanhttp.NewFetcher(scanhttp.WithUserAgent(ua))
	pages := func(referer string) scanhub.Fetcher {
		return retrying(scanhttp.NewFetcher(
			scanhttp.WithUserAgent(ua),
			scanhttp.WithHeader("Referer", referer),
		))
	}
	plainJSON := resilient.NewJSONFetcher(retrying(direct))

	var bypass scanhub.JSONFetcher
	switch g.Bypass {
	case BypassSolver:
		bypass = flaresolverr.NewBypassFetcher(direct, flaresolverr.NewClient(g.FlareSolverrURL),
			flaresolverr.WithChallengeDetector(detector),
			flaresolverr.WithLogger(logger),
		)
	case BypassBrowser, BypassNone:
		bypass = plainJSON
	default:
		return errors.New("unknown bypass: " + g.Bypass)
	}

	srcs := sources.Default(sources.Deps{
		Pages:   pages,
		JSON:    scanslog.NewLoggingJSONFetcher(plainJSON, logger),
		Bypass:  scanslog.NewLoggingJSONFetcher(bypass, logger),
		Limiter: resilient.NewPacer(resilient.DefaultPageInterval),
	})
	deps.Sources = sources.NewRegistry(scanslog.WrapSources(srcs, logger)...)
	deps.Aggregator = aggregate.NewAggregator(deps.Sources,
		aggregate.WithTimeout(g.Timeout),
		aggregate.WithLogger(logger),
	)

	comix := frontpage.NewComix(scanslog.NewLoggingJSONFetcher(bypass, logger),
		frontpage.WithConverter(htmltomarkdown.NewConverter()),
	)
	deps.Frontpages = frontpage.NewRegistry(scanslog.NewLoggingFrontpage(comix, logger))
	deps.Health = health.NewProber(health.WithChallengeDetector(detector))
	deps.Proxy = scanhttp.NewFetcher(
		scanhttp.WithUserAgent(ua),
		scanhttp.WithCheckRedirect(scangin.CheckProxyRedirect),
	)
	return nil
}
