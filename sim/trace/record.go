// Package trace provides per-run recording of boarding decisions.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// AdmissionRecord captures a passenger entering the aisle.
type AdmissionRecord struct {
	PassengerID string `json:"passenger_id"`
	Step        int    `json:"step"`
	Group       int    `json:"group"`
	QueueIndex  int    `json:"queue_index"` // position in the boarding order, 0-based
}

// SeatingRecord captures a passenger leaving the aisle for their seat.
type SeatingRecord struct {
	PassengerID string `json:"passenger_id"`
	Step        int    `json:"step"`
	Row         int    `json:"row"`
	Group       int    `json:"group"`
	Shuffle     bool   `json:"shuffle"`
	AisleSteps  int    `json:"aisle_steps"` // steps spent in the aisle, admission step included
}
