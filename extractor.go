package miplib

// Extractor turns an instance detail page into an Instance record.
type Extractor interface {
	// Extract parses the HTML of the detail page for the named instance.
	// Returns EINVALID if the name is not in the catalog and EMALFORMED if
	// the page lacks the expected statistics or status tables.
	Extract(name, html string) (*Instance, error)

	// URL returns the detail page URL for the named instance.
	URL(name string) string
}
