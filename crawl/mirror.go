package crawl

import (
	"context"
	"errors"

	"github.com/fwojciec/miplib"
	"github.com/fwojciec/miplib/fs"
	"golang.org/x/sync/errgroup"
)

// Mirror downloads instance files into a local directory.
// Failures are reported per instance and do not stop other downloads.
type Mirror struct {
	Downloader miplib.Downloader

	// Concurrency limits parallel downloads. Zero or less means no limit.
	Concurrency int
}

type mirrorResult struct {
	position int
	name     string
	download *miplib.Download
	err      error
}

// Download fetches the file of every instance into dir as <name>.mps.gz.
// It returns the successful downloads in input order and, if any download
// failed, an error joining every failure.
func (m *Mirror) Download(ctx context.Context, instances []*miplib.Instance, dir string, progress miplib.ProgressFunc) ([]*miplib.Download, error) {
	total := len(instances)
	resultCh := make(chan mirrorResult, total)

	var g errgroup.Group
	if m.Concurrency > 0 {
		g.SetLimit(m.Concurrency)
	}

	go func() {
		for i, inst := range instances {
			g.Go(func() error {
				dl, err := m.Downloader.Download(ctx, inst.URLDownload, fs.InstanceFile(dir, inst.Name))
				if err != nil {
					err = instanceError(inst.Name, err)
				} else {
					dl.Name = inst.Name
				}
				resultCh <- mirrorResult{position: i, name: inst.Name, download: dl, err: err}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	results := make([]*miplib.Download, total)
	var errs []error
	var completed int
	for result := range resultCh {
		completed++
		if result.err != nil {
			errs = append(errs, result.err)
		} else {
			results[result.position] = result.download
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

	downloads := make([]*miplib.Download, 0, total)
	for _, dl := range results {
		if dl != nil {
			downloads = append(downloads, dl)
		}
	}
	return downloads, errors.Join(errs...)
}
