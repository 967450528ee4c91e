package mock

import (
	"context"

	"github.com/fwojciec/miplib"
)

var _ miplib.Downloader = (*Downloader)(nil)

// Downloader is a mock implementation of miplib.Downloader.
type Downloader struct {
	DownloadFn func(ctx context.Context, url, dest string) (*miplib.Download, error)
}

func (d *Downloader) Download(ctx context.Context, url, dest string) (*miplib.Download, error) {
	return d.DownloadFn(ctx, url, dest)
}
