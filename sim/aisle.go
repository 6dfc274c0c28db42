package sim

import "fmt"

// Aisle is the single corridor, one slot per row. Row 0 is the entry.
// A slot holds at most one passenger.
type Aisle struct {
	slots []*Passenger
}

// NewAisle creates an empty aisle spanning rows rows.
func NewAisle(rows int) *Aisle {
	return &Aisle{slots: make([]*Passenger, rows)}
}

// Len returns the number of aisle rows.
func (a *Aisle) Len() int {
	return len(a.slots)
}

// IsFree reports whether row exists and nobody stands in it.
func (a *Aisle) IsFree(row int) bool {
	return row >= 0 && row < len(a.slots) && a.slots[row] == nil
}

// Occupant returns the passenger standing in row, or nil.
func (a *Aisle) Occupant(row int) *Passenger {
	return a.slots[row]
}

// Enter places p in row 0.
func (a *Aisle) Enter(p *Passenger) {
	if a.slots[0] != nil {
		panic(fmt.Sprintf("Enter: aisle entry held by %s", a.slots[0].ID))
	}
	a.slots[0] = p
	p.AisleRow = 0
}

// Advance moves p one row toward the back. It reports false when the next
// row is occupied or p is already at the last row.
func (a *Aisle) Advance(p *Passenger) bool {
	next := p.AisleRow + 1
	if !a.IsFree(next) {
		return false
	}
	a.slots[p.AisleRow] = nil
	a.slots[next] = p
	p.AisleRow = next
	return true
}

// Leave removes p from the aisle.
func (a *Aisle) Leave(p *Passenger) {
	if a.slots[p.AisleRow] != p {
		panic(fmt.Sprintf("Leave: %s is not at aisle row %d", p.ID, p.AisleRow))
	}
	a.slots[p.AisleRow] = nil
}

// Occupied returns the number of passengers standing in the aisle.
func (a *Aisle) Occupied() int {
	n := 0
	for _, p := range a.slots {
		if p != nil {
			n++
		}
	}
	return n
}
