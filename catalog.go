package miplib

// Catalog is the fixed, ordered list of known instance names.
type Catalog interface {
	// Names returns the instance names in catalog order.
	Names() []string

	// Contains reports whether name is a known instance.
	Contains(name string) bool
}
