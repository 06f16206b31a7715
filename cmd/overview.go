package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/curricula/internal/overview"
)

var overviewCmd = &cobra.Command{
	Use:   "overview <goal>",
	Short: "Write a short encouraging overview of a goal",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		ov, err := overview.NewService(rt.provider, rt.log).Generate(cmd.Context(), goalArg(args))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ov.Text)
		return nil
	},
}
