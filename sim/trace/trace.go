package trace

import (
	"fmt"
	"io"
)

// TraceLevel controls the verbosity of boarding tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelEvents captures every admission and seating.
	TraceLevelEvents TraceLevel = "events"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:   true,
	TraceLevelEvents: true,
	"":               true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// Enabled reports whether the level records anything.
func (c TraceConfig) Enabled() bool {
	return c.Level == TraceLevelEvents
}

// BoardingTrace collects the decision records of one simulation run.
type BoardingTrace struct {
	Config     TraceConfig       `json:"-"`
	RunID      string            `json:"run_id,omitempty"`
	Admissions []AdmissionRecord `json:"admissions"`
	Seatings   []SeatingRecord   `json:"seatings"`
}

// NewBoardingTrace creates a BoardingTrace ready for recording.
func NewBoardingTrace(config TraceConfig, runID string) *BoardingTrace {
	return &BoardingTrace{
		Config:     config,
		RunID:      runID,
		Admissions: make([]AdmissionRecord, 0),
		Seatings:   make([]SeatingRecord, 0),
	}
}

// RecordAdmission appends an admission record.
func (bt *BoardingTrace) RecordAdmission(record AdmissionRecord) {
	bt.Admissions = append(bt.Admissions, record)
}

// RecordSeating appends a seating record.
func (bt *BoardingTrace) RecordSeating(record SeatingRecord) {
	bt.Seatings = append(bt.Seatings, record)
}

// WriteText writes the trace chronologically, one event per line.
// Within a step the admission precedes the seatings, matching the order in
// which the simulation resolves them.
func (bt *BoardingTrace) WriteText(w io.Writer) error {
	a, s := 0, 0
	for a < len(bt.Admissions) || s < len(bt.Seatings) {
		if a < len(bt.Admissions) && (s >= len(bt.Seatings) || bt.Admissions[a].Step <= bt.Seatings[s].Step) {
			r := bt.Admissions[a]
			if _, err := fmt.Fprintf(w, "step %d: admit %s (group %d)\n", r.Step, r.PassengerID, r.Group); err != nil {
				return err
			}
			a++
			continue
		}
		r := bt.Seatings[s]
		shuffle := ""
		if r.Shuffle {
			shuffle = ", shuffle"
		}
		if _, err := fmt.Fprintf(w, "step %d: seat %s (row %d, %d aisle steps%s)\n", r.Step, r.PassengerID, r.Row+1, r.AisleSteps, shuffle); err != nil {
			return err
		}
		s++
	}
	return nil
}
