package probe

import (
	"fmt"
	"time"
)

// Result is the outcome of one [Check].
type Result struct {
	Check   string `json:"check"`
	Kind    Kind   `json:"kind"`
	Key     string `json:"key"`
	Status  Status `json:"status"`
	Message string `json:"message"`
	Months  *int   `json:"months,omitempty"` // age checks that parsed a date
}

// Report aggregates the results of one probe run.
type Report struct {
	RunID     string        `json:"run_id"`
	CatalogID string        `json:"catalog_id"`
	URL       string        `json:"url"`
	Status    Status        `json:"status"`
	Error     string        `json:"error,omitempty"` // set when the entry could not be fetched
	Results   []Result      `json:"results"`
	Duration  time.Duration `json:"duration_ns"`
}

func (r *Report) add(res Result) {
	r.Results = append(r.Results, res)
	r.Status = Worst(r.Status, res.Status)
}

// Passed returns the number of results with status OK.
func (r *Report) Passed() int {
	n := 0
	for _, res := range r.Results {
		if res.Status == OK {
			n++
		}
	}
	return n
}

// Summary renders a one-line status text such as
// "WARNING - 2/3 checks passed for my-service".
func (r *Report) Summary() string {
	if r.Error != "" {
		return fmt.Sprintf("%s - %s", r.Status, r.Error)
	}
	return fmt.Sprintf("%s - %d/%d checks passed for %s", r.Status, r.Passed(), len(r.Results), r.CatalogID)
}
