// Package sim provides the core discrete-step simulation engine for
// single-aisle airplane boarding.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - seatmap.go: cabin geometry, seat categories, occupancy and shuffle detection
//   - passenger.go: Passenger lifecycle (queued → walking → stopped → seated)
//   - simulator.go: the step loop (admit, advance, vacate)
//
// # Boarding Policies
//
// BoardingPolicy is the single extension point. A policy turns a SeatMap and
// a *rand.Rand into the boarding order:
//   - policy_rows.go: front-to-back, back-to-front, random, fixed
//   - policy_groups.go: window-middle-aisle, steffen-modified, steffen-perfect
//
// # Randomness
//
// Nothing in this package touches the global math/rand source. Runs draw
// from PartitionedRNG streams (rng.go), so a seed reproduces a run and
// independent trials never share a generator.
//
// # Sub-packages
//   - sim/trace/: per-run admission and seating records
//   - sim/trials/: experiment files, independent repeated runs, metrics
package sim
