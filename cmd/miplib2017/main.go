package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/miplib"
	"github.com/fwojciec/miplib/catalog"
	"github.com/fwojciec/miplib/crawl"
	"github.com/fwojciec/miplib/fs"
	"github.com/fwojciec/miplib/goquery"
	miplibhttp "github.com/fwojciec/miplib/http"
	miplibslog "github.com/fwojciec/miplib/slog"
	"github.com/fwojciec/miplib/sqlite"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Page fetcher, closed by Close.
	Fetcher miplib.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.Fetcher != nil {
		return m.Fetcher.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name(AppName),
		kong.Description("Retrieve information about MIPLIB 2017 instances and export it to JSON and CSV files."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags before parsing since Exit is a no-op.
	if slices.ContainsFunc(args, isHelpArg) {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	if cli.Version {
		fmt.Fprintln(stdout, version)
		return nil
	}

	cfg, err := LoadConfig(FindConfigFile(cli.Config))
	if err != nil {
		return err
	}
	settings := Resolve(cli, cfg)

	deps, err := m.wire(ctx, cli, settings, newLogger(stderr, cli.Verbose))
	if err != nil {
		return err
	}
	defer m.Close()
	deps.Stdout = stdout
	deps.Stderr = stderr

	cmd := &ExportCmd{
		JSON:     !cli.CSVOnly,
		CSV:      !cli.JSONOnly,
		Markdown: cli.Markdown,
		SQLite:   cli.SQLite,
		Download: cli.Download,
	}
	return cmd.Run(deps)
}

// wire builds the services used by the export command.
func (m *Main) wire(ctx context.Context, cli *CLI, settings Settings, logger *slog.Logger) (*Dependencies, error) {
	cat, err := loadCatalog(settings.Catalog)
	if err != nil {
		return nil, err
	}

	extractor, err := goquery.NewExtractor(cat, settings.BaseURL)
	if err != nil {
		return nil, err
	}

	var opts []miplibhttp.Option
	if settings.UserAgent != "" {
		opts = append(opts, miplibhttp.WithUserAgent(settings.UserAgent))
	}
	fetchOpts := slices.Clone(opts)
	if settings.Timeout > 0 {
		fetchOpts = append(fetchOpts, miplibhttp.WithTimeout(settings.Timeout))
	}

	m.Fetcher = miplibslog.NewLoggingFetcher(miplibhttp.NewFetcher(fetchOpts...), logger)
	downloader := miplibslog.NewLoggingDownloader(miplibhttp.NewDownloader(opts...), logger)

	return &Dependencies{
		Ctx:     ctx,
		Logger:  logger,
		Catalog: cat,
		Collector: &crawl.Collector{
			Catalog:     cat,
			Fetcher:     m.Fetcher,
			Extractor:   miplibslog.NewLoggingExtractor(extractor, logger),
			Concurrency: settings.Concurrency,
		},
		Mirror: &crawl.Mirror{
			Downloader:  downloader,
			Concurrency: settings.Concurrency,
		},
		Writer:    fs.NewWriter(cli.OutputDir),
		Snapshots: &sqliteStore{path: filepath.Join(cli.OutputDir, sqlite.FileName)},
	}, nil
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default(), nil
	}
	return catalog.Load(path)
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func isHelpArg(arg string) bool {
	return arg == "--help" || arg == "-h" || arg == "help"
}
