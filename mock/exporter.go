package mock

import (
	"io"

	"github.com/fwojciec/miplib"
)

var _ miplib.Exporter = (*Exporter)(nil)

// Exporter is a mock implementation of miplib.Exporter.
type Exporter struct {
	ExportFn func(w io.Writer, instances []*miplib.Instance) error
}

func (e *Exporter) Export(w io.Writer, instances []*miplib.Instance) error {
	return e.ExportFn(w, instances)
}
