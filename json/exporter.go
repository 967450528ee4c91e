// Package json exports instance records as an indented JSON array.
package json

import (
	"encoding/json"
	"io"

	"github.com/fwojciec/miplib"
)

// FileName is the default name of the JSON export.
const FileName = "miplib2017.json"

// Ensure Exporter implements miplib.Exporter at compile time.
var _ miplib.Exporter = (*Exporter)(nil)

// Exporter writes instances as a JSON array with 2-space indentation.
type Exporter struct{}

// NewExporter creates a new Exporter.
func NewExporter() *Exporter {
	return &Exporter{}
}

// Export writes instances to w. A nil slice is written as an empty array.
func (e *Exporter) Export(w io.Writer, instances []*miplib.Instance) error {
	if instances == nil {
		instances = []*miplib.Instance{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(instances)
}

// Import reads instances previously written by Export.
func Import(r io.Reader) ([]*miplib.Instance, error) {
	var instances []*miplib.Instance
	if err := json.NewDecoder(r).Decode(&instances); err != nil {
		return nil, miplib.Errorf(miplib.EINVALID, "invalid instance JSON: %v", err)
	}
	return instances, nil
}
