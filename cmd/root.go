package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/boarding-sim/sim"
	"github.com/inference-sim/boarding-sim/sim/trace"
)

const (
	formatText = "text"
	formatJSON = "json"
)

var (
	// CLI flags for the cabin
	rows             int    // Number of seat rows
	seatsPerRow      int    // Seats across both sides of the aisle
	aircraft         string // Preset id from defaults.yaml; overrides rows/seats unless set explicitly
	defaultsFilePath string // Path to defaults.yaml

	// CLI flags for boarding
	policyName string // Boarding policy name
	zones      int    // Row zones for front-to-back/back-to-front
	seed       int64  // Seed for the boarding order
	maxIter    int    // Step budget; 0 = seats*2*rows

	// CLI flags for the cost model
	timePerStop    float64 // Minutes per passenger stop
	timePerShuffle float64 // Minutes per seat shuffle

	// CLI flags for output
	traceLevel   string // Trace verbosity (none, events)
	outputFormat string // Output format (text, json)
	logLevel     string // Log verbosity level
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "boarding-sim",
	Short: "Discrete-event simulator for airplane boarding policies",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// runOptions is everything a single run needs after flag resolution.
type runOptions struct {
	Config     sim.RunConfig
	Costs      sim.CostModel
	TraceLevel trace.TraceLevel
	Format     string
}

// runOutput is the JSON document written by `run --format json`.
type runOutput struct {
	RunID        string               `json:"run_id"`
	Policy       string               `json:"policy"`
	Seed         int64                `json:"seed"`
	Layout       sim.LayoutConfig     `json:"layout"`
	MaxIter      int                  `json:"max_iter"`
	Costs        sim.CostModel        `json:"costs"`
	Result       sim.RunResult        `json:"result"`
	TotalTime    float64              `json:"total_time"`
	Trace        *trace.BoardingTrace `json:"trace,omitempty"`
	TraceSummary *trace.TraceSummary  `json:"trace_summary,omitempty"`
}

// runCmd executes one boarding run using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Board one cabin with one policy",
	Run: func(cmd *cobra.Command, args []string) {
		layout, err := resolveLayout(cmd)
		if err != nil {
			logrus.Fatalf("Cannot resolve cabin layout: %v", err)
		}
		if !sim.IsValidBoardingPolicy(policyName) {
			logrus.Fatalf("Unknown boarding policy %q. Valid: %v", policyName, sim.BoardingPolicyNames())
		}
		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Unknown trace level %q. Valid: none, events", traceLevel)
		}
		if err := checkFormat(outputFormat); err != nil {
			logrus.Fatalf("%v", err)
		}
		if timePerStop < 0 || timePerShuffle < 0 {
			logrus.Fatalf("Cost model times must be non-negative, got stop=%v shuffle=%v", timePerStop, timePerShuffle)
		}

		opts := runOptions{
			Config: sim.RunConfig{
				Layout:  layout,
				Policy:  sim.PolicyConfig{Name: policyName, Zones: zones},
				MaxIter: maxIter,
				Seed:    seed,
			},
			Costs:      sim.CostModel{TimePerStop: timePerStop, TimePerShuffle: timePerShuffle},
			TraceLevel: trace.TraceLevel(traceLevel),
			Format:     outputFormat,
		}
		if err := runBoarding(cmd.OutOrStdout(), opts); err != nil {
			logrus.Fatalf("Boarding run failed: %v", err)
		}
		logrus.Info("Simulation complete.")
	},
}

// resolveLayout applies the --aircraft preset. Explicit --rows and
// --seats-per-row win over the preset.
func resolveLayout(cmd *cobra.Command) (sim.LayoutConfig, error) {
	layout := sim.LayoutConfig{Rows: rows, SeatsPerRow: seatsPerRow}
	if aircraft == "" {
		return layout, nil
	}
	preset, err := GetAircraftLayout(aircraft, defaultsFilePath)
	if err != nil {
		return layout, err
	}
	if !cmd.Flags().Changed("rows") {
		layout.Rows = preset.Rows
	}
	if !cmd.Flags().Changed("seats-per-row") {
		layout.SeatsPerRow = preset.SeatsPerRow
	}
	return layout, nil
}

func checkFormat(format string) error {
	if format != formatText && format != formatJSON {
		return fmt.Errorf("unknown output format %q; valid formats: %s, %s", format, formatText, formatJSON)
	}
	return nil
}

// runBoarding runs one simulation and writes its result to w.
func runBoarding(w io.Writer, opts runOptions) error {
	s, err := sim.NewSimulationFromConfig(opts.Config)
	if err != nil {
		return err
	}
	runID := uuid.NewString()
	traceConfig := trace.TraceConfig{Level: opts.TraceLevel}
	if traceConfig.Enabled() {
		s.Trace = trace.NewBoardingTrace(traceConfig, runID)
	}

	logrus.Infof("Run %s: %s on %d rows x %d seats, seed %d", runID, opts.Config.Policy.Name,
		opts.Config.Layout.Rows, opts.Config.Layout.SeatsPerRow, opts.Config.Seed)
	startTime := time.Now()
	result := s.Run()
	logrus.Infof("Run %s finished in %v", runID, time.Since(startTime))

	if opts.Format == formatJSON {
		out := runOutput{
			RunID:     runID,
			Policy:    s.PolicyName,
			Seed:      opts.Config.Seed,
			Layout:    opts.Config.Layout,
			MaxIter:   s.MaxIter,
			Costs:     opts.Costs,
			Result:    result,
			TotalTime: opts.Costs.TotalTime(result),
		}
		if s.Trace != nil {
			out.Trace = s.Trace
			out.TraceSummary = trace.Summarize(s.Trace)
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Fprintf(w, "Run %s: %s, %d rows x %d seats, seed %d\n\n", runID, s.PolicyName,
		opts.Config.Layout.Rows, opts.Config.Layout.SeatsPerRow, opts.Config.Seed)
	result.Print(w, opts.Costs)
	if s.Trace == nil {
		return nil
	}
	fmt.Fprintln(w, "\n=== Boarding Trace ===")
	if err := s.Trace.WriteText(w); err != nil {
		return err
	}
	summary := trace.Summarize(s.Trace)
	fmt.Fprintln(w, "\n=== Trace Summary ===")
	fmt.Fprintf(w, "Mean Aisle Steps     : %.2f\n", summary.MeanAisleSteps)
	fmt.Fprintf(w, "Max Aisle Steps      : %d\n", summary.MaxAisleSteps)
	fmt.Fprintf(w, "Last Seated Step     : %d\n", summary.LastSeatedStep)
	fmt.Fprintf(w, "\n%s", s.Seats)
	return nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// addLayoutFlags registers the cabin and cost flags shared by run and compare.
func addLayoutFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&rows, "rows", 30, "Number of seat rows")
	cmd.Flags().IntVar(&seatsPerRow, "seats-per-row", 6, "Seats per row across both sides of the aisle (even)")
	cmd.Flags().StringVar(&aircraft, "aircraft", "", "Aircraft preset from the defaults file (e.g. a320, e175)")
	cmd.Flags().StringVar(&defaultsFilePath, "defaults", "defaults.yaml", "Path to the aircraft defaults file")
	cmd.Flags().IntVar(&zones, "zones", 0, "Row zones for front-to-back and back-to-front (0 = one per row)")
	cmd.Flags().Int64Var(&seed, "seed", 42, "Seed for boarding order randomization")
	cmd.Flags().IntVar(&maxIter, "max-iter", 0, "Step budget before a run aborts (0 = seats*2*rows)")
	cmd.Flags().Float64Var(&timePerStop, "time-per-stop", sim.DefaultTimePerStop, "Minutes per passenger stop")
	cmd.Flags().Float64Var(&timePerShuffle, "time-per-shuffle", sim.DefaultTimePerShuffle, "Minutes per seat shuffle")
	cmd.Flags().StringVar(&outputFormat, "format", formatText, "Output format (text, json)")
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")

	addLayoutFlags(runCmd)
	runCmd.Flags().StringVar(&policyName, "policy", sim.PolicyRandom, "Boarding policy (list them with the policies command)")
	runCmd.Flags().StringVar(&traceLevel, "trace", string(trace.TraceLevelNone), "Trace verbosity (none, events)")

	addCompareFlags(compareCmd)

	// Attach subcommands to `root`
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(policiesCmd)
}
