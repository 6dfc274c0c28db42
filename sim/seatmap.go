// Defines the SeatMap, the cabin geometry of a single-aisle airplane.
// Seats are indexed per row from the left window to the right window:
//
//	seat#   0  1  2 | aisle | 3  4  5        (seatsPerRow = 6)
//	label   A  B  C         D  E  F
//	        W  M  A         A  M  W

package sim

import (
	"fmt"
	"strings"
)

// SeatCategory classifies a seat by its distance from the aisle.
type SeatCategory string

const (
	CategoryWindow SeatCategory = "window"
	CategoryMiddle SeatCategory = "middle"
	CategoryAisle  SeatCategory = "aisle"
)

// Side is the half of the cabin a seat belongs to.
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// SeatID identifies a seat by zero-based row and seat index within the row.
type SeatID struct {
	Row  int
	Seat int
}

// String renders the conventional seat label, e.g. row 11 seat 2 -> "12C".
func (id SeatID) String() string {
	if id.Seat >= 0 && id.Seat < 26 {
		return fmt.Sprintf("%d%c", id.Row+1, 'A'+id.Seat)
	}
	return fmt.Sprintf("%d-%d", id.Row+1, id.Seat+1)
}

// SeatMap is the cabin: Rows x SeatsPerRow seats and their occupancy.
// A SeatMap belongs to exactly one simulation run.
type SeatMap struct {
	Rows        int
	SeatsPerRow int
	occupants   []string // passenger ID per seat, row-major; "" means empty
	occupied    int
}

// NewSeatMap builds an empty cabin.
// seatsPerRow must be even so that each side holds the same seats.
func NewSeatMap(rows, seatsPerRow int) (*SeatMap, error) {
	if rows <= 0 {
		return nil, fmt.Errorf("%w: rows must be positive, got %d", ErrInvalidLayout, rows)
	}
	if seatsPerRow <= 0 {
		return nil, fmt.Errorf("%w: seats per row must be positive, got %d", ErrInvalidLayout, seatsPerRow)
	}
	if seatsPerRow%2 != 0 {
		return nil, fmt.Errorf("%w: seats per row must be even, got %d", ErrInvalidLayout, seatsPerRow)
	}
	return &SeatMap{
		Rows:        rows,
		SeatsPerRow: seatsPerRow,
		occupants:   make([]string, rows*seatsPerRow),
	}, nil
}

// NumSeats returns the number of seats in the cabin. Safe on a nil SeatMap.
func (sm *SeatMap) NumSeats() int {
	if sm == nil {
		return 0
	}
	return sm.Rows * sm.SeatsPerRow
}

// Seats returns every seat exactly once, row by row.
func (sm *SeatMap) Seats() []SeatID {
	seats := make([]SeatID, 0, sm.NumSeats())
	for row := 0; row < sm.Rows; row++ {
		for seat := 0; seat < sm.SeatsPerRow; seat++ {
			seats = append(seats, SeatID{Row: row, Seat: seat})
		}
	}
	return seats
}

// Contains reports whether id names a seat in this cabin.
func (sm *SeatMap) Contains(id SeatID) bool {
	return id.Row >= 0 && id.Row < sm.Rows && id.Seat >= 0 && id.Seat < sm.SeatsPerRow
}

func (sm *SeatMap) half() int {
	return sm.SeatsPerRow / 2
}

// SideOf returns the half of the cabin the seat is on.
func (sm *SeatMap) SideOf(id SeatID) Side {
	if id.Seat < sm.half() {
		return SideLeft
	}
	return SideRight
}

// AisleDistance returns how many seats separate id from the aisle.
// Aisle seats are 0, window seats are half-1.
func (sm *SeatMap) AisleDistance(id SeatID) int {
	if sm.SideOf(id) == SideLeft {
		return sm.half() - 1 - id.Seat
	}
	return id.Seat - sm.half()
}

// Category classifies the seat. With a single seat per side the seat is
// both window and aisle; window wins.
func (sm *SeatMap) Category(id SeatID) SeatCategory {
	switch sm.AisleDistance(id) {
	case sm.half() - 1:
		return CategoryWindow
	case 0:
		return CategoryAisle
	default:
		return CategoryMiddle
	}
}

// seatAt returns the seat on side at the given distance from the aisle.
func (sm *SeatMap) seatAt(row int, side Side, distance int) SeatID {
	if side == SideLeft {
		return SeatID{Row: row, Seat: sm.half() - 1 - distance}
	}
	return SeatID{Row: row, Seat: sm.half() + distance}
}

// NeighborsBetween returns the seats on side strictly between the aisle and
// id, nearest to the aisle first. A passenger reaching id from the aisle must
// pass every one of them. A side other than id's own yields nil.
func (sm *SeatMap) NeighborsBetween(id SeatID, side Side) []SeatID {
	if side != sm.SideOf(id) {
		return nil
	}
	distance := sm.AisleDistance(id)
	between := make([]SeatID, 0, distance)
	for d := 0; d < distance; d++ {
		between = append(between, sm.seatAt(id.Row, side, d))
	}
	return between
}

// RequiresShuffle reports whether a seated neighbor blocks the way from the
// aisle to id.
func (sm *SeatMap) RequiresShuffle(id SeatID) bool {
	for _, n := range sm.NeighborsBetween(id, sm.SideOf(id)) {
		if sm.IsOccupied(n) {
			return true
		}
	}
	return false
}

func (sm *SeatMap) index(id SeatID) int {
	if !sm.Contains(id) {
		panic(fmt.Sprintf("seat %s outside %dx%d cabin", id, sm.Rows, sm.SeatsPerRow))
	}
	return id.Row*sm.SeatsPerRow + id.Seat
}

// IsOccupied reports whether a passenger sits in id.
func (sm *SeatMap) IsOccupied(id SeatID) bool {
	return sm.occupants[sm.index(id)] != ""
}

// Occupant returns the ID of the passenger in id, or "" if empty.
func (sm *SeatMap) Occupant(id SeatID) string {
	return sm.occupants[sm.index(id)]
}

// Occupy seats passengerID in id. It fails with ErrSeatTaken if the seat is
// already occupied.
func (sm *SeatMap) Occupy(id SeatID, passengerID string) error {
	i := sm.index(id)
	if sm.occupants[i] != "" {
		return fmt.Errorf("%w: %s held by %s, wanted by %s", ErrSeatTaken, id, sm.occupants[i], passengerID)
	}
	if passengerID == "" {
		panic("Occupy: passengerID must not be empty")
	}
	sm.occupants[i] = passengerID
	sm.occupied++
	return nil
}

// OccupiedCount returns the number of occupied seats.
func (sm *SeatMap) OccupiedCount() int {
	return sm.occupied
}

// Full reports whether every seat is occupied.
func (sm *SeatMap) Full() bool {
	return sm.occupied == sm.NumSeats()
}

// Reset empties every seat.
func (sm *SeatMap) Reset() {
	clear(sm.occupants)
	sm.occupied = 0
}

// String draws the cabin one line per row, "x" for occupied and "." for
// empty, with "|" for the aisle.
func (sm *SeatMap) String() string {
	var sb strings.Builder
	for row := 0; row < sm.Rows; row++ {
		fmt.Fprintf(&sb, "%3d ", row+1)
		for seat := 0; seat < sm.SeatsPerRow; seat++ {
			if seat == sm.half() {
				sb.WriteString("| ")
			}
			if sm.IsOccupied(SeatID{Row: row, Seat: seat}) {
				sb.WriteString("x ")
			} else {
				sb.WriteString(". ")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
