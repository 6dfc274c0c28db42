package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"

	dto "github.com/prometheus/client_model/go"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/boarding-sim/sim"
	"github.com/inference-sim/boarding-sim/sim/trials"
)

var (
	// CLI flags for policy comparison
	experimentPath string   // Experiment YAML; flags set explicitly override its fields
	policyNames    []string // Policies to compare
	numTrials      int      // Trials per policy
	numWorkers     int      // Worker goroutines; 0 = one per CPU
	showMetrics    bool     // Print the prometheus metric families after the report
)

// compareCmd runs repeated trials of several policies on one cabin
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare boarding policies over repeated randomized trials",
	Run: func(cmd *cobra.Command, args []string) {
		if err := checkFormat(outputFormat); err != nil {
			logrus.Fatalf("%v", err)
		}
		exp, err := experimentFromFlags(cmd)
		if err != nil {
			logrus.Fatalf("Cannot build experiment: %v", err)
		}
		runner, err := trials.NewRunner(exp, nil)
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		report, err := runner.Run(ctx)
		if err != nil {
			logrus.Fatalf("Comparison failed: %v", err)
		}

		w := cmd.OutOrStdout()
		if err := writeReport(w, report, outputFormat); err != nil {
			logrus.Fatalf("Writing report: %v", err)
		}
		if showMetrics {
			if err := writeMetrics(w, runner.Metrics()); err != nil {
				logrus.Fatalf("Writing metrics: %v", err)
			}
		}
	},
}

// experimentFromFlags loads --config when given, otherwise builds the
// experiment from flags. With --config, explicitly set flags override the
// file so that e.g. --seed can re-run a saved experiment.
func experimentFromFlags(cmd *cobra.Command) (*trials.Experiment, error) {
	costs := &sim.CostModel{TimePerStop: timePerStop, TimePerShuffle: timePerShuffle}
	if experimentPath == "" {
		layout, err := resolveLayout(cmd)
		if err != nil {
			return nil, err
		}
		return &trials.Experiment{
			Layout:   layout,
			Policies: policyNames,
			Trials:   numTrials,
			Workers:  numWorkers,
			Seed:     seed,
			MaxIter:  maxIter,
			Zones:    zones,
			Costs:    costs,
		}, nil
	}

	exp, err := trials.LoadExperiment(experimentPath)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if aircraft != "" {
		if exp.Layout, err = resolveLayout(cmd); err != nil {
			return nil, err
		}
	} else {
		if flags.Changed("rows") {
			exp.Layout.Rows = rows
		}
		if flags.Changed("seats-per-row") {
			exp.Layout.SeatsPerRow = seatsPerRow
		}
	}
	if flags.Changed("policies") {
		exp.Policies = policyNames
	}
	if flags.Changed("trials") {
		exp.Trials = numTrials
	}
	if flags.Changed("workers") {
		exp.Workers = numWorkers
	}
	if flags.Changed("seed") {
		exp.Seed = seed
	}
	if flags.Changed("max-iter") {
		exp.MaxIter = maxIter
	}
	if flags.Changed("zones") {
		exp.Zones = zones
	}
	if flags.Changed("time-per-stop") || flags.Changed("time-per-shuffle") {
		base := exp.CostModel()
		if flags.Changed("time-per-stop") {
			base.TimePerStop = timePerStop
		}
		if flags.Changed("time-per-shuffle") {
			base.TimePerShuffle = timePerShuffle
		}
		exp.Costs = &base
	}
	return exp, nil
}

// writeReport prints the comparison as a table or as JSON.
func writeReport(w io.Writer, report *trials.Report, format string) error {
	if format == formatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	return report.Print(w)
}

// writeMetrics prints every gathered counter and histogram, one series per line.
func writeMetrics(w io.Writer, m *trials.Metrics) error {
	families, err := m.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	fmt.Fprintln(w, "\n=== Prometheus Metrics ===")
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			series := seriesName(mf.GetName(), metric.GetLabel())
			switch mf.GetType() {
			case dto.MetricType_COUNTER:
				fmt.Fprintf(w, "%s %g\n", series, metric.GetCounter().GetValue())
			case dto.MetricType_HISTOGRAM:
				h := metric.GetHistogram()
				mean := 0.0
				if h.GetSampleCount() > 0 {
					mean = h.GetSampleSum() / float64(h.GetSampleCount())
				}
				fmt.Fprintf(w, "%s count=%d sum=%g mean=%.2f\n", series, h.GetSampleCount(), h.GetSampleSum(), mean)
			default:
				logrus.Debugf("Skipping metric family %s of type %s", mf.GetName(), mf.GetType())
			}
		}
	}
	return nil
}

func seriesName(name string, labels []*dto.LabelPair) string {
	if len(labels) == 0 {
		return name
	}
	pairs := make([]string, 0, len(labels))
	for _, lp := range labels {
		pairs = append(pairs, fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue()))
	}
	sort.Strings(pairs)
	return name + "{" + strings.Join(pairs, ",") + "}"
}

// addCompareFlags registers the flags of the compare command on cmd.
func addCompareFlags(cmd *cobra.Command) {
	addLayoutFlags(cmd)
	cmd.Flags().StringVar(&experimentPath, "config", "", "Experiment YAML file")
	cmd.Flags().StringSliceVar(&policyNames, "policies", sim.BoardingPolicyNames(), "Comma-separated policies to compare")
	cmd.Flags().IntVar(&numTrials, "trials", 100, "Trials per policy")
	cmd.Flags().IntVar(&numWorkers, "workers", 0, "Worker goroutines (0 = one per CPU)")
	cmd.Flags().BoolVar(&showMetrics, "metrics", false, "Print prometheus metric families after the report")
}
