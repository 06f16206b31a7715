package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/curricula/internal/schedule"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule <goal>",
	Short: "Estimate a realistic timeline and lay it out day by day",
	Example: `  curricula schedule "Learn Go in 2 weeks"
  curricula schedule Learn React in 5 hours --estimate-only --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		estimateOnly, _ := cmd.Flags().GetBool("estimate-only")

		rt, err := openRuntime(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		svc := schedule.NewService(rt.provider, schedule.DefaultConfig(), rt.log)
		goal := goalArg(args)
		est, err := svc.Estimate(cmd.Context(), goal)
		if err != nil {
			return err
		}

		var plan *schedule.StudyPlan
		if !estimateOnly {
			if plan, err = svc.Plan(cmd.Context(), goal, est); err != nil {
				return err
			}
		}

		out := cmd.OutOrStdout()
		if asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if estimateOnly {
				return enc.Encode(est)
			}
			return enc.Encode(struct {
				Estimate schedule.Estimate   `json:"duration_constraint"`
				Plan     *schedule.StudyPlan `json:"study_plan"`
			}{est, plan})
		}

		fmt.Fprintf(out, "Timeline:    %d day(s), %g h/day, %d study hours\n", est.TotalDays, est.DailyStudyHours, est.StudyHours)
		fmt.Fprintf(out, "Difficulty:  %s (%s pace)\n", est.DifficultyLevel, est.RecommendedPace)
		fmt.Fprintf(out, "Rationale:   %s\n", est.Rationale)
		if plan == nil {
			return nil
		}
		for _, d := range plan.Days {
			fmt.Fprintf(out, "\nDay %d: %s (%gh)\n", d.Day, d.FocusArea, d.EstimatedHours)
			for _, o := range d.LearningObjectives {
				fmt.Fprintf(out, "  - %s\n", o)
			}
			if len(d.KeyTopics) > 0 {
				fmt.Fprintf(out, "  Topics: %s\n", strings.Join(d.KeyTopics, ", "))
			}
		}
		if plan.LearningStrategy != "" {
			fmt.Fprintf(out, "\nStrategy: %s\n", plan.LearningStrategy)
		}
		return nil
	},
}

func init() {
	scheduleCmd.Flags().Bool("json", false, "Print as JSON")
	scheduleCmd.Flags().Bool("estimate-only", false, "Skip the day-by-day plan")
}
