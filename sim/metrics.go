// Summarizes a boarding run: step, stop and shuffle counts, the run status,
// and the cost model that turns them into boarding time.

package sim

import (
	"fmt"
	"io"
)

// RunStatus is the lifecycle state of a simulation run.
type RunStatus string

const (
	StatusRunning  RunStatus = "running"
	StatusComplete RunStatus = "complete" // every passenger seated
	StatusAborted  RunStatus = "aborted"  // step budget exhausted first
)

// RunResult is the summary a run reports to its caller.
type RunResult struct {
	Steps        int       `json:"steps"`
	Stops        int       `json:"stops"`
	Shuffles     int       `json:"shuffles"`
	Seated       int       `json:"seated"`
	Blocked      int       `json:"blocked"`       // passenger-steps spent unable to advance
	SeatingSteps int       `json:"seating_steps"` // steps in which at least one passenger sat
	Status       RunStatus `json:"status"`
}

// Default cost model constants, in minutes.
const (
	DefaultTimePerStop    = 1.0
	DefaultTimePerShuffle = 0.25
)

// CostModel converts run counts into boarding time. The simulation never
// reads it; callers vary it for sensitivity analysis.
type CostModel struct {
	TimePerStop    float64 `yaml:"time_per_stop" json:"time_per_stop" validate:"gte=0"`
	TimePerShuffle float64 `yaml:"time_per_shuffle" json:"time_per_shuffle" validate:"gte=0"`
}

// DefaultCostModel returns one minute per stop and a quarter minute per shuffle.
func DefaultCostModel() CostModel {
	return CostModel{
		TimePerStop:    DefaultTimePerStop,
		TimePerShuffle: DefaultTimePerShuffle,
	}
}

// TotalTime is stops*TimePerStop + shuffles*TimePerShuffle.
func (c CostModel) TotalTime(r RunResult) float64 {
	return float64(r.Stops)*c.TimePerStop + float64(r.Shuffles)*c.TimePerShuffle
}

// Print writes the run summary in the CLI's text format.
func (r RunResult) Print(w io.Writer, costs CostModel) {
	fmt.Fprintln(w, "=== Boarding Metrics ===")
	fmt.Fprintf(w, "Status               : %s\n", r.Status)
	fmt.Fprintf(w, "Steps                : %d\n", r.Steps)
	fmt.Fprintf(w, "Passengers Seated    : %d\n", r.Seated)
	fmt.Fprintf(w, "Stops                : %d\n", r.Stops)
	fmt.Fprintf(w, "Seat Shuffles        : %d\n", r.Shuffles)
	fmt.Fprintf(w, "Blocked Steps        : %d\n", r.Blocked)
	fmt.Fprintf(w, "Steps With Seating   : %d\n", r.SeatingSteps)
	fmt.Fprintf(w, "Total Time           : %.2f min\n", costs.TotalTime(r))
}
