package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/curricula/internal/duration"
)

var durationCmd = &cobra.Command{
	Use:   "duration <goal>",
	Short: "Show the time budget parsed from a goal",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		goal := goalArg(args)
		if goal == "" {
			return fmt.Errorf("learning goal is required")
		}
		b := duration.Parse(goal)

		out := cmd.OutOrStdout()
		if asJSON {
			return json.NewEncoder(out).Encode(b)
		}
		explicit := "no"
		if b.IsExplicitHourConstraint {
			explicit = "yes"
		}
		fmt.Fprintf(out, "Total hours:      %d\n", b.TotalHours)
		fmt.Fprintf(out, "Label:            %s\n", b.Label)
		fmt.Fprintf(out, "Explicit hours:   %s\n", explicit)
		return nil
	},
}

func init() {
	durationCmd.Flags().Bool("json", false, "Print as JSON")
}
