package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/Lechtr/foerder"
	"github.com/Lechtr/foerder/crawl"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	StorePath string
	Store     foerder.RecordStore
	Crawler   *crawl.Crawler
	Documents foerder.DocumentService
	Asker     foerder.Asker
	Exporter  foerder.RecordExporter
	Writer    foerder.DocumentWriter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Output  string `short:"o" env:"FOERDER_OUTPUT" default:"foerderungen_list.csv" help:"CSV file holding the crawled programs"`
	DB      string `env:"FOERDER_DB" default:"foerder.db" help:"SQLite database for the program index"`
	Verbose bool   `short:"v" help:"Enable debug logging"`

	Crawl  CrawlCmd  `cmd:"" help:"Crawl funding programs, resuming from the CSV file if present"`
	Status StatusCmd `cmd:"" help:"Show the crawl checkpoint"`
	Index  IndexCmd  `cmd:"" help:"Index crawled programs for the assistant"`
	Ask    AskCmd    `cmd:"" help:"Ask the assistant for funding that fits a company"`
	Export ExportCmd `cmd:"" help:"Export crawled programs"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	StartURL    string        `name:"start-url" help:"First search results page (default: funding programs sorted by issue date)"`
	MaxPages    int           `default:"10" help:"Last results page to crawl (0 for no limit)"`
	PageSize    int           `default:"10" help:"Programs per results page, used to find the resume page"`
	MaxAttempts int           `default:"5" help:"Fetch attempts per page"`
	DelayMin    time.Duration `default:"5s" help:"Minimum wait before each results page"`
	DelayMax    time.Duration `default:"15s" help:"Maximum wait before each results page"`
	Timeout     time.Duration `default:"30s" help:"Per-request timeout"`
	DetailRPS   float64       `name:"detail-rps" default:"1" help:"Detail page requests per second (0 to disable)"`
	Browser     bool          `help:"Fetch with headless Chrome"`
	Snapshots   string        `type:"path" help:"Directory to save raw HTML of fetched pages"`
}

// StatusCmd is the "status" subcommand.
type StatusCmd struct {
	PageSize int `default:"10" help:"Programs per results page, used to find the resume page"`
}

// IndexCmd is the "index" subcommand.
type IndexCmd struct{}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Question string `arg:"" optional:"" help:"Free-form question; built from the company profile when omitted"`

	Location     string   `help:"Company location (state, city)"`
	Industry     string   `help:"Industry or field of activity"`
	Employees    int      `help:"Number of employees"`
	FundingType  string   `name:"funding-type" help:"Kind of funding sought, e.g. Digitalisierung"`
	Info         string   `help:"Additional information, e.g. planned projects"`
	Filter       []string `short:"f" help:"Only consider programs mentioning every term (repeatable)"`
	MaxDocuments int      `default:"200" help:"Maximum programs passed to the model"`

	APIKey string `name:"api-key" env:"GEMINI_API_KEY" help:"Gemini API key"`
	Model  string `env:"GEMINI_MODEL" default:"gemini-2.5-flash" help:"Gemini model"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	XLSX     string `name:"xlsx" type:"path" help:"Write an Excel workbook"`
	Markdown string `type:"path" help:"Write one markdown file per program into this directory"`
}
