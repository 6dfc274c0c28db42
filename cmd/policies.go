package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/inference-sim/boarding-sim/sim"
)

// policyDescriptions is keyed by registered policy name.
var policyDescriptions = map[string]string{
	sim.PolicyFrontToBack:       "rows nearest the door first, random within a row (or zone)",
	sim.PolicyBackToFront:       "rows farthest from the door first, random within a row (or zone)",
	sim.PolicyRandom:            "one uniformly random order",
	sim.PolicyWindowMiddleAisle: "all window seats, then middle, then aisle",
	sim.PolicySteffenModified:   "odd rows left, odd rows right, even rows left, even rows right",
	sim.PolicySteffenPerfect:    "window, middle, aisle per side, strictly back to front; never shuffles",
}

// policiesCmd lists the registered boarding policies
var policiesCmd = &cobra.Command{
	Use:   "policies",
	Short: "List the boarding policies",
	RunE: func(cmd *cobra.Command, args []string) error {
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		for _, name := range sim.BoardingPolicyNames() {
			fmt.Fprintf(tw, "%s\t%s\n", name, policyDescriptions[name])
		}
		return tw.Flush()
	},
}
