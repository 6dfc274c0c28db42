package sim

import (
	"math/rand"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
)

// TestBoardingInvariants uses property-based testing to verify the cabin,
// ordering and run invariants over random layouts, seeds and policies.
func TestBoardingInvariants(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping property-based test in short mode")
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	parameters.Rng.Seed(1234)

	properties := gopter.NewProperties(parameters)
	policies := BoardingPolicyNames()

	// rows in [3, 11], seats per row in {2, 4, 6, 8}
	rowsGen := gen.IntRange(3, 11)
	halfGen := gen.IntRange(1, 4)
	policyGen := gen.IntRange(0, len(policies)-1)

	properties.Property("seat map has one unique seat per position", prop.ForAll(
		func(rows, half int) bool {
			sm, err := NewSeatMap(rows, 2*half)
			if err != nil {
				return false
			}
			seen := make(map[string]bool)
			for _, id := range sm.Seats() {
				if seen[id.String()] {
					return false
				}
				seen[id.String()] = true
			}
			return len(seen) == rows*2*half && sm.OccupiedCount() == 0
		},
		rowsGen, halfGen,
	))

	properties.Property("every policy orders a permutation of the seats", prop.ForAll(
		func(rows, half int, seed int64, pi int) bool {
			sm, err := NewSeatMap(rows, 2*half)
			if err != nil {
				return false
			}
			passengers, err := NewBoardingPolicy(policies[pi], PolicyOptions{}).Order(sm, rand.New(rand.NewSource(seed)))
			if err != nil {
				return false
			}
			return checkPermutation(sm, passengers) == nil
		},
		rowsGen, halfGen, gen.Int64(), policyGen,
	))

	properties.Property("every policy completes within the default budget", prop.ForAll(
		func(rows, half int, seed int64, pi int) bool {
			s, err := NewSimulationFromConfig(RunConfig{
				Layout: LayoutConfig{Rows: rows, SeatsPerRow: 2 * half},
				Policy: PolicyConfig{Name: policies[pi]},
				Seed:   seed,
			})
			if err != nil {
				return false
			}
			r := s.Run()
			return r.Status == StatusComplete &&
				r.Steps <= DefaultMaxIter(s.Seats) &&
				r.Stops == s.Seats.NumSeats() &&
				r.Seated == s.Seats.OccupiedCount() &&
				s.Seats.Full()
		},
		rowsGen, halfGen, gen.Int64(), policyGen,
	))

	properties.Property("steffen-perfect never shuffles", prop.ForAll(
		func(rows, half int, seed int64) bool {
			s, err := NewSimulationFromConfig(RunConfig{
				Layout: LayoutConfig{Rows: rows, SeatsPerRow: 2 * half},
				Policy: PolicyConfig{Name: PolicySteffenPerfect},
				Seed:   seed,
			})
			if err != nil {
				return false
			}
			return s.Run().Shuffles == 0
		},
		rowsGen, halfGen, gen.Int64(),
	))

	properties.TestingRun(t)
}

func TestNewSeatMap_Idempotent(t *testing.T) {
	// GIVEN two seat maps built from the same arguments
	a, err := NewSeatMap(5, 6)
	require.NoError(t, err)
	b, err := NewSeatMap(5, 6)
	require.NoError(t, err)

	// THEN they are equal and independent
	require.Equal(t, a, b)
	require.NoError(t, a.Occupy(SeatID{0, 0}, "1A"))
	require.False(t, b.IsOccupied(SeatID{0, 0}))
	require.Equal(t, 0, b.OccupiedCount())
}
