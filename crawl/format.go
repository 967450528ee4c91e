package crawl

import (
	"fmt"

	"github.com/fwojciec/miplib"
)

// FormatProgress renders a progress event as an in-place status line.
// Example: ("Getting instance data", 3 of 240) → "\rGetting instance data... 3 of 240 (1.25%)"
func FormatProgress(label string, p miplib.Progress) string {
	return fmt.Sprintf("\r%s... %d of %d (%.2f%%)", label, p.Completed, p.Total, p.Percent())
}

// FormatDone renders the final status line for label, padded to overwrite
// the longest progress line.
func FormatDone(label string) string {
	return fmt.Sprintf("\r%s... Done!%24s\n", label, "")
}

// FormatBytes formats bytes in human-readable form.
func FormatBytes(bytes int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)
	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.1f GB", float64(bytes)/float64(GB))
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
