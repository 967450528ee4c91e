package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/miplib"
)

// Ensure LoggingExtractor implements miplib.Extractor.
var _ miplib.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with debug logging.
type LoggingExtractor struct {
	next   miplib.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next miplib.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the resulting record.
func (e *LoggingExtractor) Extract(name, html string) (inst *miplib.Instance, err error) {
	defer func(begin time.Time) {
		attrs := []any{"name", name}
		if inst != nil {
			attrs = append(attrs,
				"status", inst.Status,
				"tags", len(inst.Tags),
				"objective", inst.HasObjective(),
			)
		}
		attrs = append(attrs, "duration", time.Since(begin), "err", err)
		e.logger.Info("extract", attrs...)
	}(time.Now())
	return e.next.Extract(name, html)
}

// URL delegates to the wrapped extractor.
func (e *LoggingExtractor) URL(name string) string {
	return e.next.URL(name)
}
