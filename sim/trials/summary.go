package trials

import (
	"fmt"
	"io"
	"text/tabwriter"

	"gonum.org/v1/gonum/stat"

	"github.com/inference-sim/boarding-sim/sim"
)

// Outcome is the result of one trial.
type Outcome struct {
	RunID     string        `json:"run_id"`
	Policy    string        `json:"policy"`
	Trial     int           `json:"trial"`
	Seed      int64         `json:"seed"` // reproduces this trial with `run --seed`
	Result    sim.RunResult `json:"result"`
	TotalTime float64       `json:"total_time"`
}

// Summary reports the mean and standard deviation of one policy's trials.
type Summary struct {
	Policy          string  `json:"policy"`
	Trials          int     `json:"trials"`
	Completed       int     `json:"completed"`
	Aborted         int     `json:"aborted"`
	MeanSteps       float64 `json:"mean_steps"`
	StdDevSteps     float64 `json:"stddev_steps"`
	MeanStops       float64 `json:"mean_stops"`
	MeanShuffles    float64 `json:"mean_shuffles"`
	MeanBlocked     float64 `json:"mean_blocked"`
	MeanTotalTime   float64 `json:"mean_total_time"`
	StdDevTotalTime float64 `json:"stddev_total_time"`
}

// Summarize computes the Summary of outcomes, which must all belong to policy.
// Safe for empty input (returns zero-value fields).
func Summarize(policy string, outcomes []Outcome) Summary {
	s := Summary{Policy: policy, Trials: len(outcomes)}
	if len(outcomes) == 0 {
		return s
	}

	steps := make([]float64, len(outcomes))
	stops := make([]float64, len(outcomes))
	shuffles := make([]float64, len(outcomes))
	blocked := make([]float64, len(outcomes))
	times := make([]float64, len(outcomes))
	for i, o := range outcomes {
		switch o.Result.Status {
		case sim.StatusComplete:
			s.Completed++
		case sim.StatusAborted:
			s.Aborted++
		}
		steps[i] = float64(o.Result.Steps)
		stops[i] = float64(o.Result.Stops)
		shuffles[i] = float64(o.Result.Shuffles)
		blocked[i] = float64(o.Result.Blocked)
		times[i] = o.TotalTime
	}

	s.MeanSteps, s.StdDevSteps = meanStdDev(steps)
	s.MeanStops = stat.Mean(stops, nil)
	s.MeanShuffles = stat.Mean(shuffles, nil)
	s.MeanBlocked = stat.Mean(blocked, nil)
	s.MeanTotalTime, s.StdDevTotalTime = meanStdDev(times)
	return s
}

// meanStdDev is stat.MeanStdDev with a zero deviation for a single sample.
func meanStdDev(x []float64) (float64, float64) {
	if len(x) < 2 {
		return stat.Mean(x, nil), 0
	}
	return stat.MeanStdDev(x, nil)
}

// Report is the outcome of an experiment.
type Report struct {
	Layout    sim.LayoutConfig `json:"layout"`
	Costs     sim.CostModel    `json:"costs"`
	Seed      int64            `json:"seed"`
	Summaries []Summary        `json:"summaries"`
	Outcomes  []Outcome        `json:"outcomes,omitempty"`
}

// Summary returns the summary of policy, if it was part of the experiment.
func (r *Report) Summary(policy string) (Summary, bool) {
	for _, s := range r.Summaries {
		if s.Policy == policy {
			return s, true
		}
	}
	return Summary{}, false
}

// Print writes the comparison table.
func (r *Report) Print(w io.Writer) error {
	fmt.Fprintln(w, "=== Boarding Policy Comparison ===")
	fmt.Fprintf(w, "Layout : %d rows x %d seats\n", r.Layout.Rows, r.Layout.SeatsPerRow)
	fmt.Fprintf(w, "Costs  : %.2f min/stop, %.2f min/shuffle\n", r.Costs.TimePerStop, r.Costs.TimePerShuffle)
	fmt.Fprintf(w, "Seed   : %d\n\n", r.Seed)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "POLICY\tTRIALS\tABORTED\tSTEPS\tSTOPS\tSHUFFLES\tBLOCKED\tTIME (min)")
	for _, s := range r.Summaries {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.1f ± %.1f\t%.1f\t%.1f\t%.1f\t%.2f ± %.2f\n",
			s.Policy, s.Trials, s.Aborted, s.MeanSteps, s.StdDevSteps,
			s.MeanStops, s.MeanShuffles, s.MeanBlocked, s.MeanTotalTime, s.StdDevTotalTime)
	}
	return tw.Flush()
}
