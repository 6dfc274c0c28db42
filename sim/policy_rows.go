// Row-ordered boarding policies: front-to-back, back-to-front, random, and
// an explicit caller-supplied order.

package sim

import (
	"fmt"
	"math/rand"
)

// FrontToBack boards the rows nearest the door first.
// Seats inside a zone board in random order.
type FrontToBack struct {
	Zones int // at most this many contiguous row blocks; 0 means one zone per row
}

func (f *FrontToBack) Name() string { return PolicyFrontToBack }

func (f *FrontToBack) Order(seats *SeatMap, rng *rand.Rand) ([]*Passenger, error) {
	if err := requireSeats(f.Name(), seats); err != nil {
		return nil, err
	}
	return orderZones(seats, rowZones(seats.Rows, f.Zones), rng), nil
}

// BackToFront boards the rows farthest from the door first.
// Seats inside a zone board in random order.
type BackToFront struct {
	Zones int // at most this many contiguous row blocks; 0 means one zone per row
}

func (b *BackToFront) Name() string { return PolicyBackToFront }

func (b *BackToFront) Order(seats *SeatMap, rng *rand.Rand) ([]*Passenger, error) {
	if err := requireSeats(b.Name(), seats); err != nil {
		return nil, err
	}
	zones := rowZones(seats.Rows, b.Zones)
	for i, j := 0, len(zones)-1; i < j; i, j = i+1, j-1 {
		zones[i], zones[j] = zones[j], zones[i]
	}
	return orderZones(seats, zones, rng), nil
}

// RandomOrder boards every seat in one uniformly random order.
type RandomOrder struct{}

func (r *RandomOrder) Name() string { return PolicyRandom }

func (r *RandomOrder) Order(seats *SeatMap, rng *rand.Rand) ([]*Passenger, error) {
	if err := requireSeats(r.Name(), seats); err != nil {
		return nil, err
	}
	group := seats.Seats()
	shuffleSeats(rng, group)
	return boardGroup(nil, group, 0), nil
}

// FixedOrder boards the seats exactly as listed. The list must be a
// permutation of the cabin's seats.
type FixedOrder struct {
	Seats []SeatID
}

func (f *FixedOrder) Name() string { return "fixed" }

func (f *FixedOrder) Order(seats *SeatMap, _ *rand.Rand) ([]*Passenger, error) {
	if err := requireSeats(f.Name(), seats); err != nil {
		return nil, err
	}
	passengers := boardGroup(nil, f.Seats, 0)
	if err := checkPermutation(seats, passengers); err != nil {
		return nil, fmt.Errorf("fixed order: %w", err)
	}
	return passengers, nil
}

// rowZones splits rows [0, rows) into contiguous ascending blocks of
// ceil(rows/zones) rows. zones is an upper bound: rowZones(10, 6) gives 5
// blocks of 2. zones <= 0 or zones >= rows yields one block per row.
func rowZones(rows, zones int) [][]int {
	if zones <= 0 || zones > rows {
		zones = rows
	}
	size := (rows + zones - 1) / zones
	var blocks [][]int
	for start := 0; start < rows; start += size {
		end := min(start+size, rows)
		block := make([]int, 0, end-start)
		for row := start; row < end; row++ {
			block = append(block, row)
		}
		blocks = append(blocks, block)
	}
	return blocks
}

// orderZones boards the zones in the given order, each shuffled internally.
func orderZones(seats *SeatMap, zones [][]int, rng *rand.Rand) []*Passenger {
	out := make([]*Passenger, 0, seats.NumSeats())
	for g, rows := range zones {
		group := make([]SeatID, 0, len(rows)*seats.SeatsPerRow)
		for _, row := range rows {
			for seat := 0; seat < seats.SeatsPerRow; seat++ {
				group = append(group, SeatID{Row: row, Seat: seat})
			}
		}
		shuffleSeats(rng, group)
		out = boardGroup(out, group, g)
	}
	return out
}
