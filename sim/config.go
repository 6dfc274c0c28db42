package sim

import (
	"fmt"
	"math/rand"
)

// LayoutConfig groups cabin dimensions for NewSeatMap.
type LayoutConfig struct {
	Rows        int `yaml:"rows" json:"rows" validate:"gt=0"`                   // number of seat rows (must be > 0)
	SeatsPerRow int `yaml:"seats_per_row" json:"seats_per_row" validate:"gt=0"` // seats across both sides (must be > 0 and even)
}

// PolicyConfig groups boarding policy selection.
type PolicyConfig struct {
	Name  string // registered policy name, see BoardingPolicyNames
	Zones int    // max front-to-back/back-to-front row blocks; 0 = one per row
}

// RunConfig describes a single reproducible run.
type RunConfig struct {
	Layout  LayoutConfig
	Policy  PolicyConfig
	MaxIter int   // step budget; 0 selects DefaultMaxIter
	Seed    int64 // master seed for the queue RNG subsystem
}

// NewSimulationFromConfig builds a fresh SeatMap and Simulation for cfg.
// The policy draws from the SubsystemQueue stream of cfg.Seed.
func NewSimulationFromConfig(cfg RunConfig) (*Simulation, error) {
	rng := NewPartitionedRNG(NewSimulationKey(cfg.Seed)).ForSubsystem(SubsystemQueue)
	return newSimulation(cfg, rng)
}

// NewSimulationWithRNG is NewSimulationFromConfig with an explicit random
// source, for callers that derive per-run streams themselves.
func NewSimulationWithRNG(cfg RunConfig, rng *rand.Rand) (*Simulation, error) {
	return newSimulation(cfg, rng)
}

func newSimulation(cfg RunConfig, rng *rand.Rand) (*Simulation, error) {
	seats, err := NewSeatMap(cfg.Layout.Rows, cfg.Layout.SeatsPerRow)
	if err != nil {
		return nil, err
	}
	if !IsValidBoardingPolicy(cfg.Policy.Name) {
		return nil, fmt.Errorf("unknown boarding policy %q; valid policies: %v", cfg.Policy.Name, BoardingPolicyNames())
	}
	if cfg.Policy.Zones < 0 {
		return nil, fmt.Errorf("zones must be non-negative, got %d", cfg.Policy.Zones)
	}
	maxIter := cfg.MaxIter
	if maxIter == 0 {
		maxIter = DefaultMaxIter(seats)
	}
	policy := NewBoardingPolicy(cfg.Policy.Name, PolicyOptions{Zones: cfg.Policy.Zones})
	return NewSimulation(seats, policy, maxIter, rng)
}
