// Implements the BoardingQueue, which holds all passengers waiting at the gate.
// Passengers are enqueued once, in the order produced by a BoardingPolicy.

package sim

import (
	"fmt"
	"strings"
)

// BoardingQueue represents a FIFO queue of passengers waiting to enter the aisle.
// It is consumed exactly once per run.
type BoardingQueue struct {
	queue []*Passenger // FIFO queue of passengers
}

// NewBoardingQueue builds a queue from passengers and checks that they cover
// every seat of seats exactly once.
func NewBoardingQueue(seats *SeatMap, passengers []*Passenger) (*BoardingQueue, error) {
	if err := checkPermutation(seats, passengers); err != nil {
		return nil, err
	}
	bq := &BoardingQueue{queue: make([]*Passenger, 0, len(passengers))}
	for _, p := range passengers {
		bq.Enqueue(p)
	}
	return bq, nil
}

func checkPermutation(seats *SeatMap, passengers []*Passenger) error {
	if len(passengers) != seats.NumSeats() {
		return fmt.Errorf("%w: %d passengers for %d seats", ErrInvalidOrder, len(passengers), seats.NumSeats())
	}
	seen := make(map[SeatID]bool, len(passengers))
	for _, p := range passengers {
		if p == nil {
			return fmt.Errorf("%w: nil passenger", ErrInvalidOrder)
		}
		if !seats.Contains(p.Seat) {
			return fmt.Errorf("%w: seat %s outside the cabin", ErrInvalidOrder, p.Seat)
		}
		if seen[p.Seat] {
			return fmt.Errorf("%w: seat %s assigned twice", ErrInvalidOrder, p.Seat)
		}
		seen[p.Seat] = true
	}
	return nil
}

// Enqueue adds a passenger to the back of the queue.
func (bq *BoardingQueue) Enqueue(p *Passenger) {
	if p == nil {
		panic("Enqueue: passenger must not be nil")
	}
	bq.queue = append(bq.queue, p)
}

func (bq *BoardingQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, p := range bq.queue {
		sb.WriteString(p.ID)
		if i < len(bq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

// Len returns the number of passengers still at the gate.
func (bq *BoardingQueue) Len() int {
	return len(bq.queue)
}

// Peek returns the passenger at the front of the queue without removing it.
// Returns nil if the queue is empty.
func (bq *BoardingQueue) Peek() *Passenger {
	if len(bq.queue) == 0 {
		return nil
	}
	return bq.queue[0]
}

// Items returns the queue contents for iteration.
// Callers MUST NOT append to or reslice the returned slice.
func (bq *BoardingQueue) Items() []*Passenger {
	return bq.queue
}

// Dequeue removes the passenger at the front of the queue.
// Returns nil if the queue is empty.
func (bq *BoardingQueue) Dequeue() *Passenger {
	if len(bq.queue) == 0 {
		return nil
	}
	p := bq.queue[0]
	bq.queue = bq.queue[1:]
	return p
}
