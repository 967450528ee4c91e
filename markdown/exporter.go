// Package markdown renders a human-readable catalog summary as GitHub
// Flavored Markdown using github.com/nao1215/markdown.
package markdown

import (
	"io"
	"strconv"

	"github.com/fwojciec/miplib"
	"github.com/nao1215/markdown"
)

// FileName is the default name of the markdown summary.
const FileName = "miplib2017.md"

// Ensure Exporter implements miplib.Exporter at compile time.
var _ miplib.Exporter = (*Exporter)(nil)

// Exporter writes a summary table of the instance catalog.
type Exporter struct{}

// NewExporter creates a new Exporter.
func NewExporter() *Exporter {
	return &Exporter{}
}

// Summary counts instances by their derived flags.
type Summary struct {
	Total      int
	Benchmark  int
	Optimal    int
	Open       int
	Infeasible int
	Unbounded  int
}

// Summarize computes the counts shown in the report header.
func Summarize(instances []*miplib.Instance) Summary {
	s := Summary{Total: len(instances)}
	for _, inst := range instances {
		if inst.IsBenchmark {
			s.Benchmark++
		}
		if inst.IsOptimal {
			s.Optimal++
		}
		if inst.Status == miplib.StatusOpen {
			s.Open++
		}
		if inst.IsInfeasible {
			s.Infeasible++
		}
		if inst.IsUnbounded {
			s.Unbounded++
		}
	}
	return s
}

// Export writes the summary report to w.
func (e *Exporter) Export(w io.Writer, instances []*miplib.Instance) error {
	md := markdown.NewMarkdown(w)

	md.H1("MIPLIB 2017 Instances")
	md.PlainText("")

	s := Summarize(instances)
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Count"},
		Rows: [][]string{
			{"Instances", strconv.Itoa(s.Total)},
			{"Benchmark", strconv.Itoa(s.Benchmark)},
			{"Solved to optimality", strconv.Itoa(s.Optimal)},
			{"Open", strconv.Itoa(s.Open)},
			{"Infeasible", strconv.Itoa(s.Infeasible)},
			{"Unbounded", strconv.Itoa(s.Unbounded)},
		},
	})
	md.PlainText("")

	md.H2("Catalog")
	md.PlainText("")

	if len(instances) == 0 {
		md.PlainText("No instances.")
		return md.Build()
	}

	rows := make([][]string, len(instances))
	for i, inst := range instances {
		rows[i] = []string{
			"[" + inst.Name + "](" + inst.URLInfo + ")",
			inst.Status,
			objective(inst),
			formatMetric(inst.Size, "variables"),
			formatMetric(inst.Size, "constraints"),
			yesNo(inst.IsBenchmark),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Instance", "Status", "Objective", "Variables", "Constraints", "Benchmark"},
		Rows:   rows,
	})

	return md.Build()
}

func objective(inst *miplib.Instance) string {
	switch {
	case inst.IsInfeasible:
		return "infeasible"
	case inst.IsUnbounded:
		return "unbounded"
	case inst.Objective == nil:
		return "-"
	}
	return strconv.FormatFloat(*inst.Objective, 'f', -1, 64)
}

func formatMetric(metrics map[string]miplib.Pair, key string) string {
	p, ok := metrics[key]
	if !ok {
		return "-"
	}
	return strconv.FormatFloat(p.Original, 'f', -1, 64)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
