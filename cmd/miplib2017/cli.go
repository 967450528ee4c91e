package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/miplib"
	"github.com/fwojciec/miplib/crawl"
	"github.com/fwojciec/miplib/fs"
)

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Version     bool          `short:"v" help:"Print version and exit."`
	Download    string        `placeholder:"PATH" help:"If set, download instance files to PATH."`
	CSVOnly     bool          `name:"csv-only" xor:"format" help:"Export instance information only to a CSV file."`
	JSONOnly    bool          `name:"json-only" xor:"format" help:"Export instance information only to a JSON file."`
	Markdown    bool          `help:"Also write a Markdown summary report."`
	SQLite      bool          `name:"sqlite" help:"Also store a snapshot in a SQLite database."`
	Config      string        `placeholder:"FILE" help:"Path to a YAML configuration file."`
	Concurrency int           `short:"c" help:"Concurrent request limit, negative for unlimited (default 16)."`
	Timeout     time.Duration `short:"t" help:"Timeout per page request (default 30s)."`
	Verbose     bool          `help:"Log every request to stderr."`
	OutputDir   string        `short:"o" default:"." placeholder:"DIR" help:"Directory for exported files."`
}

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Catalog   miplib.Catalog
	Collector *crawl.Collector
	Mirror    *crawl.Mirror
	Writer    *fs.Writer
	Snapshots SnapshotStore
}

// SnapshotStore persists a catalog snapshot and returns its identifier.
type SnapshotStore interface {
	Save(ctx context.Context, instances []*miplib.Instance) (string, error)
}

// ExportCmd retrieves the catalog and writes the requested outputs.
type ExportCmd struct {
	JSON     bool
	CSV      bool
	Markdown bool
	SQLite   bool
	Download string
}
