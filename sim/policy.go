package sim

import (
	"fmt"
	"math/rand"
)

// BoardingPolicy decides the order in which passengers leave the gate.
// Order must return one passenger per seat of seats, each seat exactly once,
// with Group set to the passenger's boarding group. Randomized policies draw
// only from rng, so the same rng state always yields the same order.
type BoardingPolicy interface {
	Name() string
	Order(seats *SeatMap, rng *rand.Rand) ([]*Passenger, error)
}

// PolicyOptions carries the tunables of the named policies.
type PolicyOptions struct {
	// Zones is the upper bound on contiguous row blocks for front-to-back
	// and back-to-front. Blocks hold ceil(rows/Zones) rows, so fewer blocks
	// may come back. Zero means one zone per row.
	Zones int
}

const (
	PolicyFrontToBack       = "front-to-back"
	PolicyBackToFront       = "back-to-front"
	PolicyRandom            = "random"
	PolicyWindowMiddleAisle = "window-middle-aisle"
	PolicySteffenModified   = "steffen-modified"
	PolicySteffenPerfect    = "steffen-perfect"
)

// boardingPolicyNames lists the registered policies in presentation order.
var boardingPolicyNames = []string{
	PolicyFrontToBack,
	PolicyBackToFront,
	PolicyRandom,
	PolicyWindowMiddleAisle,
	PolicySteffenModified,
	PolicySteffenPerfect,
}

// BoardingPolicyNames returns the registered policy names in presentation order.
func BoardingPolicyNames() []string {
	return append([]string(nil), boardingPolicyNames...)
}

// IsValidBoardingPolicy returns true if name is a registered policy.
func IsValidBoardingPolicy(name string) bool {
	for _, n := range boardingPolicyNames {
		if n == name {
			return true
		}
	}
	return false
}

// NewBoardingPolicy creates a boarding policy by name.
// Valid names are listed by BoardingPolicyNames.
// Panics on unrecognized names.
func NewBoardingPolicy(name string, opts PolicyOptions) BoardingPolicy {
	if !IsValidBoardingPolicy(name) {
		panic(fmt.Sprintf("unknown boarding policy %q", name))
	}
	switch name {
	case PolicyFrontToBack:
		return &FrontToBack{Zones: opts.Zones}
	case PolicyBackToFront:
		return &BackToFront{Zones: opts.Zones}
	case PolicyRandom:
		return &RandomOrder{}
	case PolicyWindowMiddleAisle:
		return &WindowMiddleAisle{}
	case PolicySteffenModified:
		return &SteffenModified{}
	case PolicySteffenPerfect:
		return &SteffenPerfect{}
	default:
		panic(fmt.Sprintf("unhandled boarding policy %q", name))
	}
}

// === helpers shared by the policies ===

func requireSeats(policy string, seats *SeatMap) error {
	if seats.NumSeats() == 0 {
		return fmt.Errorf("%w: %s has no seats to order", ErrEmptyLayout, policy)
	}
	return nil
}

// shuffleSeats applies a uniform random permutation to group in place.
func shuffleSeats(rng *rand.Rand, group []SeatID) {
	if rng == nil {
		panic("shuffleSeats: rng must not be nil")
	}
	rng.Shuffle(len(group), func(i, j int) {
		group[i], group[j] = group[j], group[i]
	})
}

// boardGroup appends one passenger per seat of group, tagged with group number g.
func boardGroup(out []*Passenger, group []SeatID, g int) []*Passenger {
	for _, seat := range group {
		out = append(out, NewPassenger(seat, g))
	}
	return out
}

// seatsWhere collects the seats matching keep, row by row.
func seatsWhere(seats *SeatMap, keep func(SeatID) bool) []SeatID {
	var group []SeatID
	for _, id := range seats.Seats() {
		if keep(id) {
			group = append(group, id)
		}
	}
	return group
}
