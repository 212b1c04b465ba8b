package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Lechtr/foerder"
	"github.com/Lechtr/foerder/crawl"
	"github.com/Lechtr/foerder/csv"
	"github.com/Lechtr/foerder/fs"
	"github.com/Lechtr/foerder/gemini"
	"github.com/Lechtr/foerder/goquery"
	foerderhttp "github.com/Lechtr/foerder/http"
	"github.com/Lechtr/foerder/rod"
	foerderslog "github.com/Lechtr/foerder/slog"
	"github.com/Lechtr/foerder/sqlite"
	"github.com/Lechtr/foerder/xlsx"
	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"google.golang.org/genai"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Real environment variables take precedence over .env.
	_ = godotenv.Load()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database used by the index and ask commands.
	DB *sqlite.DB

	// Fetcher overrides the crawl fetch backend. Used by end-to-end tests.
	Fetcher foerder.Fetcher

	closers []io.Closer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	var firstErr error
	for i := len(m.closers) - 1; i >= 0; i-- {
		if err := m.closers[i].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	m.closers = nil
	return firstErr
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
		kong.Name("foerder"),
		kong.Description("Harvest funding programs from foerderdatenbank.de"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'foerder --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	defer m.Close()

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	deps.StorePath = cli.Output
	deps.Store = foerderslog.NewLoggingRecordStore(csv.NewRecordStore(cli.Output), cli.Output, deps.Logger)

	switch cmd := strings.Fields(kongCtx.Command())[0]; cmd {
	case "crawl":
		if err := m.wireCrawler(deps, &cli.Crawl); err != nil {
			return err
		}
	case "index", "ask":
		m.DB = sqlite.NewDB(cli.DB)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set FOERDER_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", cli.DB, err)
		}
		m.closers = append(m.closers, m.DB)
		deps.Documents = sqlite.NewDocumentService(m.DB)

		if cmd == "ask" {
			if err := m.wireAsker(deps, &cli.Ask); err != nil {
				return err
			}
		}
	case "export":
		if cli.Export.XLSX != "" {
			deps.Exporter = xlsx.NewExporter(cli.Export.XLSX)
		}
		if cli.Export.Markdown != "" {
			deps.Writer = fs.NewWriter(cli.Export.Markdown)
		}
	}

	return kongCtx.Run(deps)
}

func (m *Main) wireCrawler(deps *Dependencies, c *CrawlCmd) error {
	fetcher := m.Fetcher
	if fetcher == nil {
		if c.Browser {
			f, err := rod.NewFetcher(rod.WithFetchTimeout(c.Timeout))
			if err != nil {
				fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed for --browser")
				return fmt.Errorf("failed to start browser: %w", err)
			}
			fetcher = f
		} else {
			fetcher = foerderhttp.NewFetcher(foerderhttp.WithTimeout(c.Timeout))
		}
	}
	m.closers = append(m.closers, fetcher)

	if c.Snapshots != "" {
		fetcher = fs.NewSnapshotFetcher(fetcher, c.Snapshots)
	}
	fetcher = foerderslog.NewLoggingFetcher(fetcher, deps.Logger)

	crawler := &crawl.Crawler{
		Fetcher:     fetcher,
		Listings:    goquery.NewListingParser(),
		Details:     goquery.NewDetailParser(),
		Store:       deps.Store,
		StartURL:    c.StartURL,
		PageSize:    c.PageSize,
		MaxPages:    c.MaxPages,
		MaxAttempts: c.MaxAttempts,
		DelayMin:    c.DelayMin,
		DelayMax:    c.DelayMax,
	}
	if c.DetailRPS > 0 {
		crawler.Limiter = crawl.NewDomainLimiter(c.DetailRPS)
	}
	deps.Crawler = crawler
	return nil
}

func (m *Main) wireAsker(deps *Dependencies, c *AskCmd) error {
	if c.APIKey == "" {
		fmt.Fprintln(deps.Stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
		return fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
	}

	client, err := genai.NewClient(deps.Ctx, &genai.ClientConfig{
		APIKey:  c.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fmt.Fprintln(deps.Stderr, "Hint: Check your GEMINI_API_KEY is valid")
		return fmt.Errorf("failed to connect to Gemini API: %w", err)
	}

	asker := gemini.NewAsker(client, deps.Documents, c.Model,
		gemini.WithQuery(c.Filter...),
		gemini.WithMaxDocuments(c.MaxDocuments),
	)
	deps.Asker = foerderslog.NewLoggingAsker(asker, deps.Logger)
	return nil
}
