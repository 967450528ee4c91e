// Package crawl drives the retrieval of the instance catalog: it fans out
// page fetches and file downloads and gathers their results.
package crawl

import (
	"context"
	"fmt"

	"github.com/fwojciec/miplib"
	"golang.org/x/sync/errgroup"
)

// Collector fetches and extracts the metadata of catalog instances.
// A single failure aborts the whole batch.
type Collector struct {
	Catalog   miplib.Catalog
	Fetcher   miplib.Fetcher
	Extractor miplib.Extractor

	// Concurrency limits parallel fetches. Zero or less means no limit.
	Concurrency int
}

// collectResult holds the outcome of processing a single instance.
type collectResult struct {
	position int
	name     string
	instance *miplib.Instance
	err      error
}

// Collect retrieves every named instance and returns the records in the
// order of names. Unknown names are rejected with EINVALID before anything
// is fetched. The first failure cancels outstanding fetches and is returned
// wrapped with the instance name. Progress is reported in completion order.
func (c *Collector) Collect(ctx context.Context, names []string, progress miplib.ProgressFunc) ([]*miplib.Instance, error) {
	for _, name := range names {
		if !c.Catalog.Contains(name) {
			return nil, instanceError(name, miplib.Errorf(miplib.EINVALID, "instance %q not in catalog", name))
		}
	}

	total := len(names)
	resultCh := make(chan collectResult, total)

	g, gctx := errgroup.WithContext(ctx)
	if c.Concurrency > 0 {
		g.SetLimit(c.Concurrency)
	}

	var waitErr error
	go func() {
		for i, name := range names {
			if gctx.Err() != nil {
				break
			}
			g.Go(func() error {
				inst, err := c.collectOne(gctx, name)
				if err != nil {
					err = instanceError(name, err)
				}
				resultCh <- collectResult{position: i, name: name, instance: inst, err: err}
				return err
			})
		}
		waitErr = g.Wait()
		close(resultCh)
	}()

	instances := make([]*miplib.Instance, total)
	var completed int
	var failed bool
	for result := range resultCh {
		// Results after the first failure are cancellation fallout.
		if failed {
			continue
		}
		completed++
		if result.err != nil {
			failed = true
		} else {
			instances[result.position] = result.instance
		}
		if progress != nil {
			progress(miplib.Progress{
				Name:      result.name,
				Completed: completed,
				Total:     total,
				Error:     result.err,
			})
		}
	}

	if waitErr != nil {
		return nil, waitErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return instances, nil
}

func (c *Collector) collectOne(ctx context.Context, name string) (*miplib.Instance, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	html, err := c.Fetcher.Fetch(ctx, c.Extractor.URL(name))
	if err != nil {
		return nil, err
	}

	return c.Extractor.Extract(name, html)
}

func instanceError(name string, err error) error {
	return fmt.Errorf("instance %q: %w", name, err)
}
