// Package trials runs independent repeated boarding simulations and
// summarizes them per policy.
package trials

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/inference-sim/boarding-sim/sim"
)

// Runner executes an Experiment on a worker pool.
// Every trial builds its own SeatMap and Simulation and draws from its own
// RNG stream, so results do not depend on the number of workers.
type Runner struct {
	exp     *Experiment
	metrics *Metrics
}

// NewRunner validates exp and prepares a runner. A nil metrics gets a
// fresh registry.
func NewRunner(exp *Experiment, metrics *Metrics) (*Runner, error) {
	if err := exp.Validate(); err != nil {
		return nil, fmt.Errorf("invalid experiment: %w", err)
	}
	if metrics == nil {
		metrics = NewMetrics()
	}
	return &Runner{exp: exp, metrics: metrics}, nil
}

// Metrics returns the collectors the runner feeds.
func (r *Runner) Metrics() *Metrics {
	return r.metrics
}

// Run executes every (policy, trial) pair. Cancelling ctx stops dispatch of
// further trials; trials already running finish, and Run returns ctx.Err().
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	exp := r.exp
	workers := exp.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	costs := exp.CostModel()
	// Seeds are derived here, on the dispatching goroutine; PartitionedRNG is not thread-safe.
	seeds := sim.NewPartitionedRNG(sim.NewSimulationKey(exp.Seed))

	logrus.Infof("Running %d trials of %d policies on %d workers (seed %d)", exp.Trials, len(exp.Policies), workers, exp.Seed)

	outcomes := make([]Outcome, len(exp.Policies)*exp.Trials)
	var (
		errMu    sync.Mutex
		firstErr error
	)
	pool := newWorkerPool(workers)

dispatch:
	for pi, policy := range exp.Policies {
		for t := 0; t < exp.Trials; t++ {
			if ctx.Err() != nil {
				break dispatch
			}
			policy, t := policy, t // per-iteration copies for the closure below (go.mod predates Go 1.22 loop semantics)
			idx := pi*exp.Trials + t
			seed := seeds.SeedFor(sim.SubsystemTrial(policy, t))
			cfg := exp.RunConfig(policy, seed)
			runID := uuid.NewString()
			pool.submit(func() {
				s, err := sim.NewSimulationFromConfig(cfg)
				if err != nil {
					errMu.Lock()
					if firstErr == nil {
						firstErr = fmt.Errorf("trial %d of %s: %w", t, policy, err)
					}
					errMu.Unlock()
					return
				}
				res := s.Run()
				total := costs.TotalTime(res)
				outcomes[idx] = Outcome{
					RunID:     runID,
					Policy:    policy,
					Trial:     t,
					Seed:      seed,
					Result:    res,
					TotalTime: total,
				}
				r.metrics.Observe(policy, res, total)
			})
		}
	}

	if err := pool.close(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("experiment cancelled: %w", err)
	}
	if firstErr != nil {
		return nil, firstErr
	}

	report := &Report{
		Layout:   exp.Layout,
		Costs:    costs,
		Seed:     exp.Seed,
		Outcomes: outcomes,
	}
	for pi, policy := range exp.Policies {
		summary := Summarize(policy, outcomes[pi*exp.Trials:(pi+1)*exp.Trials])
		if summary.Aborted > 0 {
			logrus.Warnf("%s: %d of %d trials exhausted the step budget", policy, summary.Aborted, summary.Trials)
		}
		report.Summaries = append(report.Summaries, summary)
	}
	logrus.Infof("Experiment complete: %d trials", len(outcomes))
	return report, nil
}
