package sim

import "errors"

var (
	// ErrInvalidLayout is returned when cabin dimensions are non-positive or
	// seats per row is odd.
	ErrInvalidLayout = errors.New("invalid cabin layout")

	// ErrEmptyLayout is returned when a boarding policy is asked to order a
	// cabin without seats.
	ErrEmptyLayout = errors.New("empty cabin layout")

	// ErrSeatTaken signals a second passenger assigned to an occupied seat.
	// Inside the simulation loop this is an invariant violation and panics.
	ErrSeatTaken = errors.New("seat already occupied")

	// ErrInvalidOrder is returned when a boarding order is not a permutation
	// of the cabin's seats.
	ErrInvalidOrder = errors.New("boarding order is not a permutation of the cabin seats")

	// ErrInvalidBudget is returned for a non-positive step budget.
	ErrInvalidBudget = errors.New("step budget must be positive")
)
