// sim/simulator.go
package sim

import (
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/boarding-sim/sim/trace"
)

// Simulation is the core object that holds the cabin, the gate queue, the
// aisle, and the step loop of one boarding run.
type Simulation struct {
	Seats *SeatMap
	// Queue holds passengers still at the gate, in boarding order
	Queue *BoardingQueue
	Aisle *Aisle
	// Passengers lists every passenger of the run in boarding order.
	Passengers []*Passenger
	PolicyName string

	MaxIter      int
	StepCount    int
	Stops        int
	Shuffles     int
	Seated       int
	Blocked      int
	SeatingSteps int
	Status       RunStatus

	// Trace records admissions and seatings when non-nil.
	Trace *trace.BoardingTrace

	// passengers standing in the aisle, front of the boarding order first
	inAisle  []*Passenger
	admitted int
}

// DefaultMaxIter is a step budget every built-in policy completes within:
// seats * 2 * rows.
func DefaultMaxIter(seats *SeatMap) int {
	return seats.NumSeats() * 2 * seats.Rows
}

// NewSimulation orders the passengers of seats with policy and prepares a
// run limited to maxIter steps. rng drives the policy's randomization; nil
// selects the seed-0 queue stream of PartitionedRNG.
func NewSimulation(seats *SeatMap, policy BoardingPolicy, maxIter int, rng *rand.Rand) (*Simulation, error) {
	if policy == nil {
		panic("NewSimulation: policy must not be nil")
	}
	if maxIter <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidBudget, maxIter)
	}
	if rng == nil {
		rng = NewPartitionedRNG(NewSimulationKey(0)).ForSubsystem(SubsystemQueue)
	}
	passengers, err := policy.Order(seats, rng)
	if err != nil {
		return nil, fmt.Errorf("ordering passengers with %s: %w", policy.Name(), err)
	}
	queue, err := NewBoardingQueue(seats, passengers)
	if err != nil {
		return nil, fmt.Errorf("policy %s: %w", policy.Name(), err)
	}
	return &Simulation{
		Seats:      seats,
		Queue:      queue,
		Aisle:      NewAisle(seats.Rows),
		Passengers: passengers,
		PolicyName: policy.Name(),
		MaxIter:    maxIter,
		Status:     StatusRunning,
		inAisle:    make([]*Passenger, 0, seats.Rows),
	}, nil
}

// Run steps the simulation until every passenger is seated or the step
// budget is exhausted. An aborted run is reported, not returned as an error.
func (sim *Simulation) Run() RunResult {
	logrus.Infof("Boarding %d passengers with %s (max %d steps)", len(sim.Passengers), sim.PolicyName, sim.MaxIter)
	for sim.Status == StatusRunning {
		sim.Step()
	}
	if sim.Status == StatusAborted {
		logrus.Warnf("[step %05d] Step budget exhausted with %d of %d passengers seated", sim.StepCount, sim.Seated, len(sim.Passengers))
	}
	logrus.Infof("[step %05d] Boarding ended: %s", sim.StepCount, sim.Status)
	return sim.Result()
}

// Step advances the run by one discrete step:
//  1. admit the next passenger if the aisle entry is free
//  2. move every walking passenger one row if the row ahead is free,
//     front of the boarding order first
//  3. seat every passenger who stood at their row for the whole step
//
// Entering the aisle does not count as a move, so a passenger admitted
// straight into their own row (row 0) sits in the admission step. Everyone
// else stands at their row for one full step before sitting.
//
// Step is a no-op once the run has completed or aborted.
func (sim *Simulation) Step() {
	if sim.Status != StatusRunning {
		return
	}
	sim.StepCount++

	sim.admit()
	moved := sim.advance()
	sim.vacate(moved)

	switch {
	case sim.Seated == len(sim.Passengers):
		sim.Status = StatusComplete
	case sim.StepCount >= sim.MaxIter:
		sim.Status = StatusAborted
	}
}

func (sim *Simulation) admit() {
	if sim.Queue.Len() == 0 || !sim.Aisle.IsFree(0) {
		return
	}
	p := sim.Queue.Dequeue()
	sim.Aisle.Enter(p)
	p.AdmittedStep = sim.StepCount
	p.State = PassengerWalking
	if p.AtRow() {
		p.State = PassengerStopped
	}
	sim.inAisle = append(sim.inAisle, p)
	if sim.Trace != nil {
		sim.Trace.RecordAdmission(trace.AdmissionRecord{
			PassengerID: p.ID,
			Step:        sim.StepCount,
			Group:       p.Group,
			QueueIndex:  sim.admitted,
		})
	}
	sim.admitted++
	logrus.Debugf("[step %05d] Admit %s (group %d)", sim.StepCount, p.ID, p.Group)
}

// advance returns, per in-aisle index, whether that passenger moved.
func (sim *Simulation) advance() []bool {
	moved := make([]bool, len(sim.inAisle))
	for i, p := range sim.inAisle {
		if p.AtRow() {
			continue
		}
		if !sim.Aisle.Advance(p) {
			sim.Blocked++
			logrus.Tracef("[step %05d] %s blocked at row %d by %s", sim.StepCount, p.ID, p.AisleRow+1, sim.Aisle.Occupant(p.AisleRow+1).ID)
			continue
		}
		moved[i] = true
		if p.AtRow() {
			p.State = PassengerStopped
		}
	}
	return moved
}

func (sim *Simulation) vacate(moved []bool) {
	remaining := make([]*Passenger, 0, len(sim.inAisle))
	seatedBefore := sim.Seated
	for i, p := range sim.inAisle {
		if p.AtRow() && !moved[i] {
			sim.seat(p)
			continue
		}
		remaining = append(remaining, p)
	}
	sim.inAisle = remaining
	if sim.Seated > seatedBefore {
		sim.SeatingSteps++
	}
}

// seat takes p out of the aisle and into their seat. Whether a neighbor has
// to stand up is decided here, against passengers already seated.
func (sim *Simulation) seat(p *Passenger) {
	shuffle := sim.Seats.RequiresShuffle(p.Seat)
	if err := sim.Seats.Occupy(p.Seat, p.ID); err != nil {
		panic(fmt.Sprintf("[step %d] seating %s: %v", sim.StepCount, p.ID, err))
	}
	sim.Aisle.Leave(p)

	p.State = PassengerSeated
	p.Shuffled = shuffle
	p.SeatedStep = sim.StepCount

	sim.Stops++
	if shuffle {
		sim.Shuffles++
	}
	sim.Seated++

	if sim.Trace != nil {
		sim.Trace.RecordSeating(trace.SeatingRecord{
			PassengerID: p.ID,
			Step:        sim.StepCount,
			Row:         p.Seat.Row,
			Group:       p.Group,
			Shuffle:     shuffle,
			AisleSteps:  p.SeatedStep - p.AdmittedStep + 1,
		})
	}
	logrus.Debugf("[step %05d] Seat %s (shuffle=%t)", sim.StepCount, p.ID, shuffle)
}

// InAisle returns the passengers currently standing in the aisle, front of
// the boarding order first. Callers MUST NOT modify the returned slice.
func (sim *Simulation) InAisle() []*Passenger {
	return sim.inAisle
}

// Result summarizes the run so far.
func (sim *Simulation) Result() RunResult {
	return RunResult{
		Steps:        sim.StepCount,
		Stops:        sim.Stops,
		Shuffles:     sim.Shuffles,
		Seated:       sim.Seated,
		Blocked:      sim.Blocked,
		SeatingSteps: sim.SeatingSteps,
		Status:       sim.Status,
	}
}
