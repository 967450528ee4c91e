package miplib

// Progress reports completion of one item of a batch.
// Completed counts finished items (successful or not) in completion order.
type Progress struct {
	Name      string
	Completed int
	Total     int
	Error     error
}

// Percent returns the completed share of the batch in percent.
func (p Progress) Percent() float64 {
	if p.Total == 0 {
		return 100
	}
	return 100 * float64(p.Completed) / float64(p.Total)
}

// ProgressFunc is called as batch items complete.
type ProgressFunc func(Progress)
