package trials

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/boarding-sim/sim"
)

func writeExperiment(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "experiment.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func validExperiment() *Experiment {
	return &Experiment{
		Layout:   sim.LayoutConfig{Rows: 10, SeatsPerRow: 6},
		Policies: []string{sim.PolicyBackToFront, sim.PolicySteffenPerfect},
		Trials:   5,
		Seed:     42,
	}
}

func TestLoadExperiment_FullFile(t *testing.T) {
	// GIVEN a complete experiment file
	path := writeExperiment(t, `
layout:
  rows: 30
  seats_per_row: 6
policies: [back-to-front, random, steffen-perfect]
trials: 100
workers: 4
seed: 7
max_iter: 5000
zones: 3
costs:
  time_per_stop: 0.5
  time_per_shuffle: 0.1
`)

	// WHEN loaded
	exp, err := LoadExperiment(path)
	require.NoError(t, err)

	// THEN every field is populated and valid
	require.NoError(t, exp.Validate())
	assert.Equal(t, sim.LayoutConfig{Rows: 30, SeatsPerRow: 6}, exp.Layout)
	assert.Equal(t, []string{"back-to-front", "random", "steffen-perfect"}, exp.Policies)
	assert.Equal(t, 100, exp.Trials)
	assert.Equal(t, 4, exp.Workers)
	assert.Equal(t, int64(7), exp.Seed)
	assert.Equal(t, 5000, exp.MaxIter)
	assert.Equal(t, 3, exp.Zones)
	assert.Equal(t, sim.CostModel{TimePerStop: 0.5, TimePerShuffle: 0.1}, exp.CostModel())
}

func TestLoadExperiment_UnknownKeyRejected(t *testing.T) {
	path := writeExperiment(t, `
layout:
  rows: 30
  seats_per_row: 6
policies: [random]
trials: 10
tirals: 100
`)
	_, err := LoadExperiment(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tirals")
}

func TestLoadExperiment_MissingFile(t *testing.T) {
	_, err := LoadExperiment(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading experiment")
}

func TestExperiment_CostModel_DefaultsWhenUnset(t *testing.T) {
	exp := validExperiment()
	assert.Equal(t, sim.DefaultCostModel(), exp.CostModel())
}

func TestExperiment_Validate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(e *Experiment)
		wantErr string
	}{
		{"zero rows", func(e *Experiment) { e.Layout.Rows = 0 }, "layout.rows: must be greater than 0, got 0"},
		{"odd seats", func(e *Experiment) { e.Layout.SeatsPerRow = 5 }, "layout.seats_per_row: must be even, got 5"},
		{"no policies", func(e *Experiment) { e.Policies = nil }, "policies: field is required"},
		{"empty policy list", func(e *Experiment) { e.Policies = []string{} }, "policies: must have at least 1 entries"},
		{"blank policy", func(e *Experiment) { e.Policies = []string{""} }, "policies[0]: field is required"},
		{"unknown policy", func(e *Experiment) { e.Policies = []string{"zone-by-zone"} }, `unknown boarding policy "zone-by-zone"`},
		{"duplicate policy", func(e *Experiment) { e.Policies = []string{"random", "random"} }, `"random" listed twice`},
		{"zero trials", func(e *Experiment) { e.Trials = 0 }, "trials: must be greater than 0, got 0"},
		{"negative workers", func(e *Experiment) { e.Workers = -1 }, "workers: must be at least 0, got -1"},
		{"negative max iter", func(e *Experiment) { e.MaxIter = -5 }, "max_iter: must be at least 0, got -5"},
		{"negative zones", func(e *Experiment) { e.Zones = -1 }, "zones: must be at least 0, got -1"},
		{"negative cost", func(e *Experiment) { e.Costs = &sim.CostModel{TimePerStop: -1} }, "costs.time_per_stop: must be at least 0, got -1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exp := validExperiment()
			tt.mutate(exp)
			err := exp.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestExperiment_Validate_Nil(t *testing.T) {
	var exp *Experiment
	assert.Error(t, exp.Validate())
}

func TestExperiment_RunConfig(t *testing.T) {
	exp := validExperiment()
	exp.Zones = 2
	exp.MaxIter = 99

	cfg := exp.RunConfig(sim.PolicyBackToFront, 1234)

	assert.Equal(t, sim.RunConfig{
		Layout:  exp.Layout,
		Policy:  sim.PolicyConfig{Name: sim.PolicyBackToFront, Zones: 2},
		MaxIter: 99,
		Seed:    1234,
	}, cfg)
}

func TestLoadExperiment_ShippedExample(t *testing.T) {
	path := filepath.Join("..", "..", "examples", "compare.yaml")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Skip("examples/compare.yaml not found")
	}

	exp, err := LoadExperiment(path)
	require.NoError(t, err)
	require.NoError(t, exp.Validate())
	assert.Equal(t, sim.BoardingPolicyNames(), exp.Policies)
	assert.Equal(t, sim.DefaultCostModel(), exp.CostModel())
}
