package main

import (
	"errors"
	"fmt"

	"github.com/fwojciec/miplib"
	"github.com/fwojciec/miplib/crawl"
	"github.com/fwojciec/miplib/csv"
	"github.com/fwojciec/miplib/fs"
	"github.com/fwojciec/miplib/json"
	"github.com/fwojciec/miplib/markdown"
)

const (
	collectLabel  = "Getting instance data"
	downloadLabel = "Downloading instance files"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	if c.Download != "" {
		if err := fs.MkdirAll(c.Download); err != nil {
			return fmt.Errorf("failed to create download folder %q: %w", c.Download, err)
		}
	}

	instances, err := c.collect(deps)
	if err != nil {
		return err
	}

	if err := c.export(deps, instances); err != nil {
		return err
	}

	if c.Download != "" {
		return c.download(deps, instances)
	}
	return nil
}

func (c *ExportCmd) collect(deps *Dependencies) ([]*miplib.Instance, error) {
	var failed string
	progress := func(p miplib.Progress) {
		if p.Error != nil {
			failed = p.Name
			return
		}
		fmt.Fprint(deps.Stdout, crawl.FormatProgress(collectLabel, p))
	}

	instances, err := deps.Collector.Collect(deps.Ctx, deps.Catalog.Names(), progress)
	if err != nil {
		fmt.Fprintln(deps.Stdout)
		if failed != "" {
			fmt.Fprintf(deps.Stderr, "Failed to get information from instance %q.\nError: %s\n", failed, errorText(err))
		}
		return nil, err
	}

	fmt.Fprint(deps.Stdout, crawl.FormatDone(collectLabel))
	return instances, nil
}

func (c *ExportCmd) export(deps *Dependencies, instances []*miplib.Instance) error {
	type output struct {
		enabled  bool
		format   string
		file     string
		exporter miplib.Exporter
	}
	outputs := []output{
		{c.JSON, "JSON", json.FileName, json.NewExporter()},
		{c.CSV, "CSV", csv.FileName, csv.NewExporter()},
		{c.Markdown, "Markdown", markdown.FileName, markdown.NewExporter()},
	}

	for _, o := range outputs {
		if !o.enabled {
			continue
		}
		fmt.Fprintf(deps.Stdout, "Exporting data to %s... ", o.format)
		if err := deps.Writer.WriteExport(o.file, o.exporter, instances); err != nil {
			fmt.Fprintln(deps.Stdout)
			fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
			return fmt.Errorf("failed to export %s: %w", o.file, err)
		}
		fmt.Fprintln(deps.Stdout, "Done!")
	}

	if c.SQLite {
		fmt.Fprint(deps.Stdout, "Saving snapshot to SQLite... ")
		id, err := deps.Snapshots.Save(deps.Ctx, instances)
		if err != nil {
			fmt.Fprintln(deps.Stdout)
			fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
			return fmt.Errorf("failed to save snapshot: %w", err)
		}
		fmt.Fprintf(deps.Stdout, "Done! (%s)\n", id)
	}

	return nil
}

func (c *ExportCmd) download(deps *Dependencies, instances []*miplib.Instance) error {
	fmt.Fprintf(deps.Stdout, "Downloading instance files to folder %s...\n", c.Download)

	progress := func(p miplib.Progress) {
		if p.Error != nil {
			fmt.Fprintf(deps.Stderr, "\nFailed to download instance %q.\nError: %s\n", p.Name, errorText(p.Error))
		}
		fmt.Fprint(deps.Stdout, crawl.FormatProgress(downloadLabel, p))
	}

	downloads, err := deps.Mirror.Download(deps.Ctx, instances, c.Download, progress)

	var total int64
	for _, dl := range downloads {
		total += dl.Bytes
	}

	if err != nil {
		fmt.Fprintf(deps.Stdout, "\nDownloaded %d of %d instance files (%s).\n", len(downloads), len(instances), crawl.FormatBytes(total))
		return fmt.Errorf("%d of %d downloads failed", len(instances)-len(downloads), len(instances))
	}

	fmt.Fprint(deps.Stdout, crawl.FormatDone(downloadLabel))
	fmt.Fprintf(deps.Stdout, "Downloaded %d instance files (%s).\n", len(downloads), crawl.FormatBytes(total))
	return nil
}

// errorText returns the message of application errors and the full text of
// anything else.
func errorText(err error) string {
	var e *miplib.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
