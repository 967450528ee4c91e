package mock

import "github.com/fwojciec/miplib"

var _ miplib.Catalog = (*Catalog)(nil)

// Catalog is a mock implementation of miplib.Catalog.
type Catalog struct {
	NamesFn    func() []string
	ContainsFn func(name string) bool
}

func (c *Catalog) Names() []string {
	return c.NamesFn()
}

func (c *Catalog) Contains(name string) bool {
	return c.ContainsFn(name)
}
