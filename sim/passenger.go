// Defines the Passenger struct that models a single traveller in the simulation.
// Tracks the assigned seat, aisle position, boarding group and the step
// indices at which the passenger entered the aisle and sat down.

package sim

import "fmt"

// PassengerState represents the lifecycle state of a passenger.
type PassengerState string

const (
	PassengerQueued  PassengerState = "queued"
	PassengerWalking PassengerState = "walking"
	PassengerStopped PassengerState = "stopped" // standing at their row, about to sit
	PassengerSeated  PassengerState = "seated"
)

// NotBoarded is the AisleRow of a passenger that has not entered the aisle.
const NotBoarded = -1

// Passenger is one traveller with a fixed target seat, walking the aisle
// until they reach their row and sit down.
type Passenger struct {
	ID    string // seat label, unique per run
	Seat  SeatID // assigned seat, never changes
	Group int    // boarding group set by the policy; ordering only

	State    PassengerState
	AisleRow int  // current aisle row, NotBoarded before admission
	Shuffled bool // a seated neighbor had to stand up for this passenger

	AdmittedStep int // step in which the passenger entered the aisle
	SeatedStep   int // step in which the passenger sat down
}

// NewPassenger creates a queued passenger for seat.
func NewPassenger(seat SeatID, group int) *Passenger {
	return &Passenger{
		ID:       seat.String(),
		Seat:     seat,
		Group:    group,
		State:    PassengerQueued,
		AisleRow: NotBoarded,
	}
}

// TargetRow is the row the passenger walks to.
func (p *Passenger) TargetRow() int {
	return p.Seat.Row
}

// AtRow reports whether the passenger is standing in the aisle at their row.
func (p *Passenger) AtRow() bool {
	return p.AisleRow == p.Seat.Row
}

// This method returns a human-readable string representation of a Passenger.
func (p Passenger) String() string {
	return fmt.Sprintf("Passenger: (ID: %s, State: %s, AisleRow: %d, Group: %d)", p.ID, p.State, p.AisleRow, p.Group)
}
