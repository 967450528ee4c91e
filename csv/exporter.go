// Package csv exports instance records as a fixed-column table.
package csv

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/fwojciec/miplib"
)

// FileName is the default name of the CSV export.
const FileName = "miplib2017.csv"

// Columns is the number of fields in every row: seven scalar fields, an
// original/presolved pair per metric, and the tags and URL fields.
const Columns = 7 + 2*(6+13) + 3

// Column name prefixes for the metric pairs, aligned with
// miplib.SizeMetrics and miplib.ConstraintMetrics.
var (
	sizeColumns = []string{
		"VARIABLES",
		"BINARIES",
		"INTEGERS",
		"CONTINUOUS",
		"CONSTRAINTS",
		"NONZERO.DENSITY",
	}
	constraintColumns = []string{
		"AGGREGATION",
		"PRECEDENCE",
		"VARIABLE.BOUND",
		"SET.PARTITIONING",
		"SET.PACKING",
		"SET.COVERING",
		"CARDINALITY",
		"INVARIANT.KNAPSACK",
		"EQUATION.KNAPSACK",
		"BINPACKING",
		"KNAPSACK",
		"INTEGER.KNAPSACK",
		"MIXED.BINARY",
	}
)

// Header returns the column names in export order.
func Header() []string {
	header := []string{"NAME", "STATUS", "OBJECTIVE", "IS.INFEASIBLE", "IS.UNBOUNDED", "IS.OPTIMAL", "IS.BENCHMARK"}
	for _, prefix := range append(append([]string{}, sizeColumns...), constraintColumns...) {
		header = append(header, prefix+".ORIGINAL", prefix+".PRESOLVED")
	}
	return append(header, "TAGS", "URL.INFO", "URL.DOWNLOAD")
}

// Ensure Exporter implements miplib.Exporter at compile time.
var _ miplib.Exporter = (*Exporter)(nil)

// Exporter writes instances as CSV with one header row and one row per
// instance. Name, tags and URLs are always quoted; numbers and booleans are
// written bare; an absent objective or metric is an empty field. Rows are
// separated by "\n" without a trailing newline.
//
// encoding/csv only quotes fields on demand, so rows are formatted here.
type Exporter struct{}

// NewExporter creates a new Exporter.
func NewExporter() *Exporter {
	return &Exporter{}
}

// Export writes instances to w in input order.
func (e *Exporter) Export(w io.Writer, instances []*miplib.Instance) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(strings.Join(Header(), ","))
	for _, inst := range instances {
		bw.WriteByte('\n')
		bw.WriteString(strings.Join(Row(inst), ","))
	}
	return bw.Flush()
}

// Row formats the fields of one instance in column order.
func Row(inst *miplib.Instance) []string {
	row := make([]string, 0, Columns)
	row = append(row,
		quote(inst.Name),
		inst.Status,
		objective(inst.Objective),
		strconv.FormatBool(inst.IsInfeasible),
		strconv.FormatBool(inst.IsUnbounded),
		strconv.FormatBool(inst.IsOptimal),
		strconv.FormatBool(inst.IsBenchmark),
	)
	row = appendPairs(row, inst.Size, miplib.SizeMetrics)
	row = appendPairs(row, inst.Constraints, miplib.ConstraintMetrics)
	return append(row,
		quote(formatTags(inst.Tags)),
		quote(inst.URLInfo),
		quote(inst.URLDownload),
	)
}

func appendPairs(row []string, metrics map[string]miplib.Pair, keys []string) []string {
	for _, key := range keys {
		p, ok := metrics[key]
		if !ok {
			row = append(row, "", "")
			continue
		}
		row = append(row, formatNumber(p.Original), formatNumber(p.Presolved))
	}
	return row
}

// formatTags renders tags as "[a;b;c]". The separator keeps the field free
// of commas.
func formatTags(tags []string) string {
	return "[" + strings.Join(tags, ";") + "]"
}

func objective(v *float64) string {
	if v == nil {
		return ""
	}
	return formatNumber(*v)
}

// formatNumber writes the shortest decimal representation, e.g. 7195 or 0.0170575.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
