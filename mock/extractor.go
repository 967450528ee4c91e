package mock

import "github.com/fwojciec/miplib"

var _ miplib.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of miplib.Extractor.
type Extractor struct {
	ExtractFn func(name, html string) (*miplib.Instance, error)
	URLFn     func(name string) string
}

func (e *Extractor) Extract(name, html string) (*miplib.Instance, error) {
	return e.ExtractFn(name, html)
}

func (e *Extractor) URL(name string) string {
	return e.URLFn(name)
}
