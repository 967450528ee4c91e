package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/miplib"
)

// Ensure LoggingDownloader implements miplib.Downloader.
var _ miplib.Downloader = (*LoggingDownloader)(nil)

// LoggingDownloader wraps a Downloader with debug logging.
type LoggingDownloader struct {
	next   miplib.Downloader
	logger *slog.Logger
}

// NewLoggingDownloader creates a new LoggingDownloader.
func NewLoggingDownloader(next miplib.Downloader, logger *slog.Logger) *LoggingDownloader {
	return &LoggingDownloader{next: next, logger: logger}
}

// Download delegates to the wrapped downloader and logs the operation.
func (d *LoggingDownloader) Download(ctx context.Context, url, dest string) (dl *miplib.Download, err error) {
	defer func(begin time.Time) {
		var bytes int64
		var checksum string
		if dl != nil {
			bytes, checksum = dl.Bytes, dl.Checksum
		}
		d.logger.Info("download",
			"url", url,
			"dest", dest,
			"bytes", bytes,
			"checksum", checksum,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return d.next.Download(ctx, url, dest)
}
