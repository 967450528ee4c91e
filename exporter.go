package miplib

import "io"

// Exporter serializes a collection of instances.
// Implementations preserve the order of the input slice.
type Exporter interface {
	Export(w io.Writer, instances []*Instance) error
}

// ExporterFunc adapts a function to the Exporter interface.
type ExporterFunc func(w io.Writer, instances []*Instance) error

// Export calls f(w, instances).
func (f ExporterFunc) Export(w io.Writer, instances []*Instance) error {
	return f(w, instances)
}
