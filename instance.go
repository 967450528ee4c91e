package miplib

// Status reported for instances without a proven optimal solution.
const StatusOpen = "open"

// Tags that drive the derived flags of an Instance.
const (
	TagInfeasible = "infeasible"
	TagBenchmark  = "benchmark"
	TagNoSolution = "no_solution"
)

// Size metric keys, in export order.
var SizeMetrics = []string{
	"variables",
	"binaries",
	"integers",
	"continuous",
	"constraints",
	"nonzero_density",
}

// Constraint classification keys, in export order.
var ConstraintMetrics = []string{
	"aggregations",
	"precedence",
	"variable_bound",
	"set_partitioning",
	"set_packing",
	"set_covering",
	"cardinality",
	"invariant_knapsack",
	"equation_knapsack",
	"bin_packing",
	"knapsack",
	"integer_knapsack",
	"mixed_binary",
}

// Pair holds a metric before and after presolve.
type Pair struct {
	Original  float64 `json:"original"`
	Presolved float64 `json:"presolved"`
}

// Instance is the normalized metadata of one MIPLIB 2017 instance.
// Instances are built once by an Extractor and never mutated afterwards.
type Instance struct {
	Name         string          `json:"name"`
	Status       string          `json:"status"`
	Objective    *float64        `json:"objective"` // nil when infeasible, unbounded or unsolved
	IsInfeasible bool            `json:"is_infeasible"`
	IsUnbounded  bool            `json:"is_unbounded"`
	IsOptimal    bool            `json:"is_optimal"`
	IsBenchmark  bool            `json:"is_benchmark"`
	Size         map[string]Pair `json:"size"`
	Constraints  map[string]Pair `json:"constraints"`
	Tags         []string        `json:"tags"`
	URLDownload  string          `json:"url_download"`
	URLInfo      string          `json:"url_info"`
}

// HasTag reports whether the instance carries the given tag.
func (i *Instance) HasTag(tag string) bool {
	for _, t := range i.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// HasObjective reports whether a best known objective value is available.
func (i *Instance) HasObjective() bool {
	return i.Objective != nil
}
