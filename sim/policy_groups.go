// Seat-category boarding policies: window-middle-aisle and the two Steffen
// variants.

package sim

import (
	"math/rand"
	"sort"
)

// WindowMiddleAisle boards all window seats, then all middle seats, then all
// aisle seats. Each group is shuffled across rows and both sides.
type WindowMiddleAisle struct{}

func (w *WindowMiddleAisle) Name() string { return PolicyWindowMiddleAisle }

func (w *WindowMiddleAisle) Order(seats *SeatMap, rng *rand.Rand) ([]*Passenger, error) {
	if err := requireSeats(w.Name(), seats); err != nil {
		return nil, err
	}
	out := make([]*Passenger, 0, seats.NumSeats())
	for g, category := range []SeatCategory{CategoryWindow, CategoryMiddle, CategoryAisle} {
		group := seatsWhere(seats, func(id SeatID) bool { return seats.Category(id) == category })
		shuffleSeats(rng, group)
		out = boardGroup(out, group, g)
	}
	return out, nil
}

// SteffenModified is the four-group simplification of the Steffen method:
// odd-index rows on the left, odd-index rows on the right, then even-index
// rows left and right. Each group is shuffled, so seats within a half-row
// board in any order and shuffles still happen.
type SteffenModified struct{}

func (s *SteffenModified) Name() string { return PolicySteffenModified }

func (s *SteffenModified) Order(seats *SeatMap, rng *rand.Rand) ([]*Passenger, error) {
	if err := requireSeats(s.Name(), seats); err != nil {
		return nil, err
	}
	out := make([]*Passenger, 0, seats.NumSeats())
	g := 0
	for _, parity := range []int{1, 0} {
		for _, side := range []Side{SideLeft, SideRight} {
			group := seatsWhere(seats, func(id SeatID) bool {
				return id.Row%2 == parity && seats.SideOf(id) == side
			})
			shuffleSeats(rng, group)
			out = boardGroup(out, group, g)
			g++
		}
	}
	return out, nil
}

// SteffenPerfect boards six groups: window, middle and aisle seats, left
// side before right within each. Every group runs strictly back to front,
// and several middle seats in one half-row board window side first. Nobody
// ever has to climb over a seated neighbor. The order is deterministic.
type SteffenPerfect struct{}

func (s *SteffenPerfect) Name() string { return PolicySteffenPerfect }

func (s *SteffenPerfect) Order(seats *SeatMap, _ *rand.Rand) ([]*Passenger, error) {
	if err := requireSeats(s.Name(), seats); err != nil {
		return nil, err
	}
	out := make([]*Passenger, 0, seats.NumSeats())
	g := 0
	for _, category := range []SeatCategory{CategoryWindow, CategoryMiddle, CategoryAisle} {
		for _, side := range []Side{SideLeft, SideRight} {
			group := seatsWhere(seats, func(id SeatID) bool {
				return seats.Category(id) == category && seats.SideOf(id) == side
			})
			sort.SliceStable(group, func(i, j int) bool {
				if group[i].Row != group[j].Row {
					return group[i].Row > group[j].Row
				}
				return seats.AisleDistance(group[i]) > seats.AisleDistance(group[j])
			})
			out = boardGroup(out, group, g)
			g++
		}
	}
	return out, nil
}
