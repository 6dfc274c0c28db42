package sim

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/boarding-sim/sim/trace"
)

// newFixedSimulation builds a run that boards seats in exactly the given order.
func newFixedSimulation(t *testing.T, rows, seatsPerRow, maxIter int, order ...SeatID) *Simulation {
	t.Helper()
	sm := mustSeatMap(t, rows, seatsPerRow)
	if maxIter == 0 {
		maxIter = DefaultMaxIter(sm)
	}
	s, err := NewSimulation(sm, &FixedOrder{Seats: order}, maxIter, nil)
	require.NoError(t, err)
	return s
}

func TestSimulation_Scenarios(t *testing.T) {
	tests := []struct {
		name        string
		rows, seats int
		maxIter     int
		order       []SeatID
		want        RunResult
	}{
		{
			name: "single row window pair",
			rows: 1, seats: 2,
			order: []SeatID{{0, 0}, {0, 1}},
			want:  RunResult{Steps: 2, Stops: 2, Shuffles: 0, Seated: 2, Blocked: 0, SeatingSteps: 2, Status: StatusComplete},
		},
		{
			name: "aisle seat before window seat forces a shuffle",
			rows: 2, seats: 4,
			order: []SeatID{{1, 1}, {1, 0}, {1, 3}, {1, 2}, {0, 0}, {0, 1}, {0, 3}, {0, 2}},
			want:  RunResult{Steps: 11, Stops: 8, Shuffles: 1, Seated: 8, Blocked: 3, SeatingSteps: 7, Status: StatusComplete},
		},
		{
			name: "window seat before aisle seat avoids the shuffle",
			rows: 2, seats: 4,
			order: []SeatID{{1, 0}, {1, 1}, {1, 3}, {1, 2}, {0, 0}, {0, 1}, {0, 3}, {0, 2}},
			want:  RunResult{Steps: 11, Stops: 8, Shuffles: 0, Seated: 8, Blocked: 3, SeatingSteps: 7, Status: StatusComplete},
		},
		{
			name: "both sides aisle first",
			rows: 1, seats: 4,
			order: []SeatID{{0, 1}, {0, 0}, {0, 2}, {0, 3}},
			want:  RunResult{Steps: 4, Stops: 4, Shuffles: 2, Seated: 4, Blocked: 0, SeatingSteps: 4, Status: StatusComplete},
		},
		{
			name: "back to front",
			rows: 3, seats: 2,
			order: []SeatID{{2, 0}, {2, 1}, {1, 0}, {1, 1}, {0, 0}, {0, 1}},
			want:  RunResult{Steps: 8, Stops: 6, Shuffles: 0, Seated: 6, Blocked: 3, SeatingSteps: 4, Status: StatusComplete},
		},
		{
			name: "front to back",
			rows: 3, seats: 2,
			order: []SeatID{{0, 0}, {0, 1}, {1, 0}, {1, 1}, {2, 0}, {2, 1}},
			want:  RunResult{Steps: 11, Stops: 6, Shuffles: 0, Seated: 6, Blocked: 3, SeatingSteps: 6, Status: StatusComplete},
		},
		{
			name: "front to back with exhausted budget",
			rows: 3, seats: 2, maxIter: 5,
			order: []SeatID{{0, 0}, {0, 1}, {1, 0}, {1, 1}, {2, 0}, {2, 1}},
			want:  RunResult{Steps: 5, Stops: 3, Shuffles: 0, Seated: 3, Blocked: 1, SeatingSteps: 3, Status: StatusAborted},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// GIVEN a fixed boarding order
			s := newFixedSimulation(t, tt.rows, tt.seats, tt.maxIter, tt.order...)

			// WHEN the run finishes
			got := s.Run()

			// THEN every counter matches the hand-traced run
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.Seated, s.Seats.OccupiedCount())
		})
	}
}

func TestSimulation_OneRowTwoSeats_AnyPolicy(t *testing.T) {
	// GIVEN the minimal cabin
	for _, name := range BoardingPolicyNames() {
		t.Run(name, func(t *testing.T) {
			s, err := NewSimulationFromConfig(RunConfig{
				Layout: LayoutConfig{Rows: 1, SeatsPerRow: 2},
				Policy: PolicyConfig{Name: name},
				Seed:   11,
			})
			require.NoError(t, err)

			// WHEN run
			r := s.Run()

			// THEN two stops, no shuffles, two steps
			assert.Equal(t, StatusComplete, r.Status)
			assert.Equal(t, 2, r.Stops)
			assert.Equal(t, 0, r.Shuffles)
			assert.Equal(t, 2, r.Steps)
		})
	}
}

func TestSimulation_Step_AdmissionAndMovement(t *testing.T) {
	// GIVEN 3C then 1A in a 3x4 cabin
	order := []SeatID{{2, 2}, {0, 0}, {0, 1}, {0, 2}, {0, 3}, {1, 0}, {1, 1}, {1, 2}, {1, 3}, {2, 0}, {2, 1}, {2, 3}}
	s := newFixedSimulation(t, 3, 4, 0, order...)

	// WHEN one step runs, 3C enters and immediately walks to row 1
	s.Step()
	require.Len(t, s.InAisle(), 1)
	first := s.InAisle()[0]
	assert.Equal(t, "3C", first.ID)
	assert.Equal(t, 1, first.AisleRow)
	assert.Equal(t, PassengerWalking, first.State)
	assert.Equal(t, 1, first.AdmittedStep)

	// WHEN a second step runs, 3C walks onto row 2 and 1A enters at its own
	// row; 1A never moved, so 1A sits at once while 3C still stands
	s.Step()
	require.Len(t, s.InAisle(), 1)
	assert.Equal(t, PassengerStopped, first.State)
	assert.True(t, first.AtRow())
	oneA := s.Passengers[1]
	assert.Equal(t, PassengerSeated, oneA.State)
	assert.Equal(t, 2, oneA.AdmittedStep)
	assert.Equal(t, 2, oneA.SeatedStep)
	assert.Equal(t, 1, s.Aisle.Occupied())

	// WHEN a third step runs, 3C stood still for the whole step and sits,
	// together with 1B who entered at row 1
	s.Step()
	assert.Equal(t, PassengerSeated, first.State)
	assert.Equal(t, 3, first.SeatedStep)
	assert.Equal(t, 3, s.Seated)
	assert.Equal(t, 2, s.SeatingSteps)
	assert.Empty(t, s.InAisle())
}

func TestSimulation_Step_FrontRowSitsOnAdmission(t *testing.T) {
	// GIVEN 1A then 2A in a 2x2 cabin
	s := newFixedSimulation(t, 2, 2, 0, SeatID{0, 0}, SeatID{1, 0}, SeatID{0, 1}, SeatID{1, 1})

	// WHEN the first step runs
	s.Step()

	// THEN 1A entered at its own row and sat in the same step
	oneA := s.Passengers[0]
	assert.Equal(t, PassengerSeated, oneA.State)
	assert.Equal(t, 1, oneA.AdmittedStep)
	assert.Equal(t, 1, oneA.SeatedStep)
	assert.Empty(t, s.InAisle())

	// WHEN 2A is admitted and walks to row 1
	s.Step()
	twoA := s.Passengers[1]
	assert.Equal(t, PassengerStopped, twoA.State)

	// THEN 2A only sits after standing at its row for a full step
	s.Step()
	assert.Equal(t, PassengerSeated, twoA.State)
	assert.Equal(t, 2, twoA.AdmittedStep)
	assert.Equal(t, 3, twoA.SeatedStep)
}

func TestSimulation_Step_NoOpAfterCompletion(t *testing.T) {
	s := newFixedSimulation(t, 1, 2, 0, SeatID{0, 0}, SeatID{0, 1})
	s.Run()
	before := s.Result()

	s.Step()

	assert.Equal(t, before, s.Result())
}

func TestSimulation_AisleNeverShared(t *testing.T) {
	// GIVEN a random boarding of a mid-size cabin
	s, err := NewSimulationFromConfig(RunConfig{
		Layout: LayoutConfig{Rows: 12, SeatsPerRow: 6},
		Policy: PolicyConfig{Name: PolicyRandom},
		Seed:   5,
	})
	require.NoError(t, err)

	// WHEN stepping to the end
	for s.Status == StatusRunning {
		s.Step()

		// THEN no two passengers ever stand in one aisle row
		rows := make(map[int]string)
		for _, p := range s.InAisle() {
			if other, ok := rows[p.AisleRow]; ok {
				t.Fatalf("step %d: %s and %s share aisle row %d", s.StepCount, other, p.ID, p.AisleRow)
			}
			rows[p.AisleRow] = p.ID
			assert.Same(t, p, s.Aisle.Occupant(p.AisleRow))
		}
	}
	assert.Equal(t, StatusComplete, s.Status)
	assert.True(t, s.Seats.Full())
}

func TestNewSimulation_InvalidBudget(t *testing.T) {
	sm := mustSeatMap(t, 2, 2)
	_, err := NewSimulation(sm, &RandomOrder{}, 0, nil)
	assert.True(t, errors.Is(err, ErrInvalidBudget))
}

func TestNewSimulation_NilPolicyPanics(t *testing.T) {
	sm := mustSeatMap(t, 2, 2)
	assert.Panics(t, func() { _, _ = NewSimulation(sm, nil, 10, nil) })
}

func TestNewSimulation_PolicyErrorWrapped(t *testing.T) {
	sm := mustSeatMap(t, 2, 2)
	_, err := NewSimulation(sm, &FixedOrder{Seats: []SeatID{{0, 0}}}, 10, nil)
	assert.True(t, errors.Is(err, ErrInvalidOrder))
}

func TestSimulation_SameSeedSameRun(t *testing.T) {
	cfg := RunConfig{
		Layout: LayoutConfig{Rows: 20, SeatsPerRow: 6},
		Policy: PolicyConfig{Name: PolicyWindowMiddleAisle},
		Seed:   42,
	}
	a, err := NewSimulationFromConfig(cfg)
	require.NoError(t, err)
	b, err := NewSimulationFromConfig(cfg)
	require.NoError(t, err)

	assert.Equal(t, seatsOf(a.Passengers), seatsOf(b.Passengers))
	assert.Equal(t, a.Run(), b.Run())
}

func TestSimulation_NilRNGMatchesSeedZero(t *testing.T) {
	sm := mustSeatMap(t, 6, 4)
	a, err := NewSimulation(sm, &RandomOrder{}, DefaultMaxIter(sm), nil)
	require.NoError(t, err)

	b, err := NewSimulationWithRNG(RunConfig{
		Layout: LayoutConfig{Rows: 6, SeatsPerRow: 4},
		Policy: PolicyConfig{Name: PolicyRandom},
	}, rand.New(rand.NewSource(0)))
	require.NoError(t, err)

	assert.Equal(t, seatsOf(a.Passengers), seatsOf(b.Passengers))
}

func TestSimulation_Trace_RecordsEveryPassenger(t *testing.T) {
	// GIVEN a traced random run
	s, err := NewSimulationFromConfig(RunConfig{
		Layout: LayoutConfig{Rows: 8, SeatsPerRow: 6},
		Policy: PolicyConfig{Name: PolicyRandom},
		Seed:   3,
	})
	require.NoError(t, err)
	s.Trace = trace.NewBoardingTrace(trace.TraceConfig{Level: trace.TraceLevelEvents}, "run")

	// WHEN run
	r := s.Run()

	// THEN the trace agrees with the counters
	summary := trace.Summarize(s.Trace)
	assert.Equal(t, 48, summary.Admitted)
	assert.Equal(t, r.Seated, summary.Seated)
	assert.Equal(t, r.Shuffles, summary.Shuffles)
	assert.Equal(t, r.Steps, summary.LastSeatedStep)
	for i, a := range s.Trace.Admissions {
		assert.Equal(t, i, a.QueueIndex)
	}
	for _, rec := range s.Trace.Seatings {
		// a passenger needs at least one step per row walked, plus the stop
		assert.GreaterOrEqual(t, rec.AisleSteps, rec.Row+1)
	}
}

func TestSimulation_BuiltInPoliciesOrderedByCost(t *testing.T) {
	// GIVEN repeated trials of a 30x6 cabin
	const trials = 20
	layout := LayoutConfig{Rows: 30, SeatsPerRow: 6}
	meanSteps := func(policy string) float64 {
		seeds := NewPartitionedRNG(NewSimulationKey(2024))
		total := 0
		for n := 0; n < trials; n++ {
			s, err := NewSimulationFromConfig(RunConfig{
				Layout: layout,
				Policy: PolicyConfig{Name: policy},
				Seed:   seeds.SeedFor(SubsystemTrial(policy, n)),
			})
			require.NoError(t, err)
			r := s.Run()
			require.Equal(t, StatusComplete, r.Status)
			total += r.Steps
		}
		return float64(total) / trials
	}

	// WHEN averaged
	ftb := meanSteps(PolicyFrontToBack)
	btf := meanSteps(PolicyBackToFront)
	wma := meanSteps(PolicyWindowMiddleAisle)
	perfect := meanSteps(PolicySteffenPerfect)

	// THEN row-ordered policies block more than seat-category policies
	assert.Greater(t, ftb, wma)
	assert.Greater(t, ftb, perfect)
	assert.Greater(t, btf, wma)
	assert.Greater(t, btf, perfect)
}
