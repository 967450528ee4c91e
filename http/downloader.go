package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/miplib"
)

// DefaultDownloadTimeout bounds a single instance file download.
// Some instance files are several hundred megabytes.
const DefaultDownloadTimeout = 30 * time.Minute

// Ensure Downloader implements miplib.Downloader at compile time.
var _ miplib.Downloader = (*Downloader)(nil)

// Downloader streams remote files to disk.
type Downloader struct {
	client    *http.Client
	userAgent string
}

// NewDownloader creates a new HTTP-based Downloader.
func NewDownloader(opts ...Option) *Downloader {
	o := newOptions(DefaultDownloadTimeout, opts)
	return &Downloader{
		client:    o.client,
		userAgent: o.userAgent,
	}
}

// Download writes the response body for url to dest, truncating any
// existing file. If the request or the copy fails, dest is removed.
func (d *Downloader) Download(ctx context.Context, url, dest string) (*miplib.Download, error) {
	resp, err := get(ctx, d.client, url, d.userAgent)
	if err != nil {
		_ = os.Remove(dest)
		return nil, err
	}
	defer resp.Body.Close()

	f, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", dest, err)
	}

	h := xxhash.New()
	n, err := io.Copy(io.MultiWriter(f, h), resp.Body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(dest)
		return nil, miplib.Errorf(miplib.ETRANSPORT, "downloading %s: %v", url, err)
	}

	return &miplib.Download{
		Path:     dest,
		Bytes:    n,
		Checksum: fmt.Sprintf("%016x", h.Sum64()),
	}, nil
}
