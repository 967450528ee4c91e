// Package catalog provides the fixed list of MIPLIB 2017 instance names.
// The default list is bundled with the binary; alternative lists can be
// loaded from plain text files with one name per line.
package catalog

import (
	"bufio"
	_ "embed"
	"io"
	"os"
	"strings"

	"github.com/fwojciec/miplib"
)

//go:embed instances.txt
var bundled string

// Ensure Catalog implements miplib.Catalog at compile time.
var _ miplib.Catalog = (*Catalog)(nil)

// Catalog is an immutable, ordered set of instance names.
type Catalog struct {
	names []string
	index map[string]struct{}
}

// New creates a Catalog from names. Blank names and duplicates are dropped;
// the first occurrence determines the order.
func New(names []string) *Catalog {
	c := &Catalog{index: make(map[string]struct{}, len(names))}
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := c.index[name]; ok {
			continue
		}
		c.index[name] = struct{}{}
		c.names = append(c.names, name)
	}
	return c
}

// Default returns the bundled MIPLIB 2017 catalog.
func Default() *Catalog {
	c, _ := Parse(strings.NewReader(bundled))
	return c
}

// Parse reads a catalog with one instance name per line.
// Lines starting with '#' are comments.
func Parse(r io.Reader) (*Catalog, error) {
	var names []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names = append(names, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return New(names), nil
}

// Load reads a catalog file from disk.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, miplib.Errorf(miplib.ENOTFOUND, "catalog file %q not found", path)
		}
		return nil, err
	}
	defer f.Close()

	c, err := Parse(f)
	if err != nil {
		return nil, err
	}
	if len(c.names) == 0 {
		return nil, miplib.Errorf(miplib.EINVALID, "catalog file %q lists no instances", path)
	}
	return c, nil
}

// Names returns a copy of the instance names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.names))
	copy(names, c.names)
	return names
}

// Contains reports whether name is part of the catalog.
func (c *Catalog) Contains(name string) bool {
	_, ok := c.index[name]
	return ok
}

// Len returns the number of instances in the catalog.
func (c *Catalog) Len() int {
	return len(c.names)
}
