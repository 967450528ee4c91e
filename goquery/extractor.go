// Package goquery implements the miplib.Extractor for MIPLIB 2017 instance
// detail pages using github.com/PuerkitoBio/goquery.
package goquery

import (
	"math"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/miplib"
)

// DefaultBaseURL is the MIPLIB 2017 site that hosts the instance pages.
const DefaultBaseURL = "https://miplib.zib.de/"

// Selectors for the structural anchors of a detail page.
const (
	tagsSelector       = "h3"
	statisticsSelector = "#instance-statistics"
	statusRowsSelector = "table > tbody > tr"
)

// Column positions in the status table.
const (
	statusColumn    = 4
	objectiveColumn = 6
	downloadColumn  = 7
)

// Ensure Extractor implements miplib.Extractor at compile time.
var _ miplib.Extractor = (*Extractor)(nil)

// Extractor builds Instance records from instance detail pages.
type Extractor struct {
	catalog miplib.Catalog
	base    *url.URL
}

// NewExtractor creates an Extractor for instances of the given catalog.
// Relative links on the pages are resolved against baseURL; an empty
// baseURL selects DefaultBaseURL.
func NewExtractor(catalog miplib.Catalog, baseURL string) (*Extractor, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	base, err := url.Parse(baseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, miplib.Errorf(miplib.EINVALID, "invalid base URL %q", baseURL)
	}
	// Resolution against "https://host/dir" would drop "dir".
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	return &Extractor{catalog: catalog, base: base}, nil
}

// URL returns the detail page URL for the named instance.
func (e *Extractor) URL(name string) string {
	return InstanceURL(e.base, name)
}

// InstanceURL returns the detail page URL for the named instance on base.
func InstanceURL(base *url.URL, name string) string {
	ref := &url.URL{Path: "instance_details_" + name + ".html"}
	return base.ResolveReference(ref).String()
}

// Extract parses the detail page of the named instance.
func (e *Extractor) Extract(name, html string) (*miplib.Instance, error) {
	if !e.catalog.Contains(name) {
		return nil, miplib.Errorf(miplib.EINVALID, "instance %q not in catalog", name)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, miplib.Errorf(miplib.EMALFORMED, "failed to parse HTML: %v", err)
	}

	tags := extractTags(doc)

	stats := doc.Find(statisticsSelector).First()
	if stats.Length() == 0 {
		return nil, miplib.Errorf(miplib.EMALFORMED, "statistics section not found")
	}

	blocks := stats.ChildrenFiltered("div").ChildrenFiltered("div")
	if blocks.Length() < 2 {
		return nil, miplib.Errorf(miplib.EMALFORMED, "expected size and constraint statistics, found %d blocks", blocks.Length())
	}

	size, err := extractMetrics(blocks.First(), "size")
	if err != nil {
		return nil, err
	}
	constraints, err := extractMetrics(blocks.Last(), "constraint")
	if err != nil {
		return nil, err
	}

	rows := stats.Prev().Find(statusRowsSelector)
	if rows.Length() == 0 {
		return nil, miplib.Errorf(miplib.EMALFORMED, "status table not found")
	}

	inst := &miplib.Instance{
		Name:         name,
		IsInfeasible: slices.Contains(tags, miplib.TagInfeasible),
		IsBenchmark:  slices.Contains(tags, miplib.TagBenchmark),
		Size:         size,
		Constraints:  constraints,
		Tags:         tags,
		URLInfo:      e.URL(name),
	}
	hasKnownSolution := !slices.Contains(tags, miplib.TagNoSolution)

	// Every row is validated; the last one determines the record.
	var rowErr error
	rows.EachWithBreak(func(i int, row *goquery.Selection) bool {
		cells := row.ChildrenFiltered("td")
		if cells.Length() <= downloadColumn {
			rowErr = miplib.Errorf(miplib.EMALFORMED, "status row %d has %d cells, want at least %d", i+1, cells.Length(), downloadColumn+1)
			return false
		}

		token := strings.ToLower(cellText(cells, objectiveColumn))
		token = strings.TrimSpace(strings.TrimRight(token, "*"))

		href, ok := cells.Eq(downloadColumn).ChildrenFiltered("a").Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			rowErr = miplib.Errorf(miplib.EMALFORMED, "status row %d has no download link", i+1)
			return false
		}
		download, err := e.resolve(strings.TrimSpace(href))
		if err != nil {
			rowErr = err
			return false
		}

		inst.Status = cellText(cells, statusColumn)
		inst.IsUnbounded = token == "unbounded"
		inst.URLDownload = download
		inst.Objective = nil
		inst.IsOptimal = false

		if !inst.IsInfeasible && !inst.IsUnbounded && hasKnownSolution {
			v, err := parseNumber(token)
			if err != nil {
				rowErr = miplib.Errorf(miplib.EMALFORMED, "objective %q is not numeric", token)
				return false
			}
			inst.Objective = &v
			inst.IsOptimal = inst.Status != miplib.StatusOpen
		}
		return true
	})
	if rowErr != nil {
		return nil, rowErr
	}

	return inst, nil
}

// resolve resolves a link from the page against the base URL.
func (e *Extractor) resolve(href string) (string, error) {
	ref, err := url.Parse(href)
	if err != nil {
		return "", miplib.Errorf(miplib.EMALFORMED, "invalid download link %q", href)
	}
	return e.base.ResolveReference(ref).String(), nil
}

// extractTags collects the link labels of the first tag heading in document order.
func extractTags(doc *goquery.Document) []string {
	tags := make([]string, 0)
	doc.Find(tagsSelector).First().ChildrenFiltered("a").Each(func(_ int, sel *goquery.Selection) {
		tags = append(tags, strings.TrimSpace(sel.Text()))
	})
	return tags
}

// extractMetrics reads the metric rows of one statistics block.
// Duplicate metric names overwrite earlier rows.
func extractMetrics(block *goquery.Selection, kind string) (map[string]miplib.Pair, error) {
	table := block.ChildrenFiltered("table")
	if table.Length() == 0 {
		return nil, miplib.Errorf(miplib.EMALFORMED, "%s statistics table not found", kind)
	}

	metrics := make(map[string]miplib.Pair)
	var err error
	table.ChildrenFiltered("tbody").ChildrenFiltered("tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		cells := row.ChildrenFiltered("td")
		if cells.Length() < 3 {
			return true
		}

		key := metricKey(cellText(cells, 0))
		original, perr := parseNumber(cellText(cells, 1))
		if perr != nil {
			err = miplib.Errorf(miplib.EMALFORMED, "%s metric %q: original value %q is not numeric", kind, key, cellText(cells, 1))
			return false
		}
		presolved, perr := parseNumber(cellText(cells, 2))
		if perr != nil {
			err = miplib.Errorf(miplib.EMALFORMED, "%s metric %q: presolved value %q is not numeric", kind, key, cellText(cells, 2))
			return false
		}

		metrics[key] = miplib.Pair{Original: original, Presolved: presolved}
		return true
	})
	if err != nil {
		return nil, err
	}
	return metrics, nil
}

// metricKey normalizes a metric label, e.g. "Nonzero density" → "nonzero_density".
// Only the first space is replaced.
func metricKey(label string) string {
	return strings.ToLower(strings.Replace(strings.TrimSpace(label), " ", "_", 1))
}

// parseNumber coerces cell text to a finite number. Empty text is zero.
func parseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, strconv.ErrSyntax
	}
	return v, nil
}

func cellText(cells *goquery.Selection, i int) string {
	return strings.TrimSpace(cells.Eq(i).Text())
}
