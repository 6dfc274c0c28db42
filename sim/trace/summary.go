package trace

// TraceSummary aggregates statistics from a BoardingTrace.
type TraceSummary struct {
	Admitted         int
	Seated           int
	Shuffles         int
	MeanAisleSteps   float64
	MaxAisleSteps    int
	LastSeatedStep   int
	SeatedPerGroup   map[int]int // boarding group → passengers seated
	ShufflesPerGroup map[int]int // boarding group → shuffles caused
}

// Summarize computes aggregate statistics from a BoardingTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(bt *BoardingTrace) *TraceSummary {
	summary := &TraceSummary{
		SeatedPerGroup:   make(map[int]int),
		ShufflesPerGroup: make(map[int]int),
	}
	if bt == nil {
		return summary
	}

	summary.Admitted = len(bt.Admissions)
	summary.Seated = len(bt.Seatings)

	if len(bt.Seatings) > 0 {
		totalAisleSteps := 0
		for _, s := range bt.Seatings {
			summary.SeatedPerGroup[s.Group]++
			if s.Shuffle {
				summary.Shuffles++
				summary.ShufflesPerGroup[s.Group]++
			}
			totalAisleSteps += s.AisleSteps
			if s.AisleSteps > summary.MaxAisleSteps {
				summary.MaxAisleSteps = s.AisleSteps
			}
			if s.Step > summary.LastSeatedStep {
				summary.LastSeatedStep = s.Step
			}
		}
		summary.MeanAisleSteps = float64(totalAisleSteps) / float64(len(bt.Seatings))
	}

	return summary
}
