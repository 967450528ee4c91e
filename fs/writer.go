// Package fs provides file-based output for exported catalogs and
// downloaded instance files.
package fs

import (
	"bufio"
	"os"
	"path/filepath"

	"github.com/fwojciec/miplib"
)

// InstanceFileExt is the extension of downloaded instance files.
const InstanceFileExt = ".mps.gz"

// InstanceFile returns the path of the downloaded file for an instance.
// Example: ("data", "air05") → data/air05.mps.gz
func InstanceFile(dir, name string) string {
	return filepath.Join(dir, name+InstanceFileExt)
}

// Writer writes export files to a directory with atomic replace semantics.
// Each export is written to a temporary file and renamed over the target
// once complete, so a failed export never leaves a partial file behind.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// Path returns the full path of the named export file.
func (w *Writer) Path(name string) string {
	return filepath.Join(w.baseDir, name)
}

// WriteExport writes instances to the named file using exporter.
func (w *Writer) WriteExport(name string, exporter miplib.Exporter, instances []*miplib.Instance) (err error) {
	if err := os.MkdirAll(w.baseDir, 0755); err != nil {
		return err
	}

	final := w.Path(name)
	tmp := final + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp)
		}
	}()

	bw := bufio.NewWriter(f)
	if err := exporter.Export(bw, instances); err != nil {
		f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	return os.Rename(tmp, final)
}

// MkdirAll creates dir and any missing parents.
func MkdirAll(dir string) error {
	return os.MkdirAll(dir, 0755)
}
