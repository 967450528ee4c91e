package miplib

import "context"

// Fetcher retrieves raw page content from URLs.
type Fetcher interface {
	// Fetch performs a request for the URL and returns the response body.
	// Non-success status codes and network failures return ETRANSPORT.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}

// Download describes a file written by a Downloader.
type Download struct {
	Name     string
	Path     string
	Bytes    int64
	Checksum string // xxhash64, hex encoded
}

// Downloader streams remote files to disk.
type Downloader interface {
	// Download writes the body at url to dest, replacing any existing file.
	// On failure dest is removed and ETRANSPORT is returned.
	Download(ctx context.Context, url, dest string) (*Download, error)
}
