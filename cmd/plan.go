package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/curricula/internal/lessonplan"
	"github.com/abhisek/curricula/internal/pipeline"
)

var planCmd = &cobra.Command{
	Use:   "plan <goal>",
	Short: "Generate a syllabus and detailed lesson plan for a goal",
	Example: `  curricula plan "Learn React Native in 5 hours"
  curricula plan Master SQL in 2 weeks --format json`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		styled, _ := cmd.Flags().GetBool("styled")
		session, _ := cmd.Flags().GetString("session")
		studyHours, _ := cmd.Flags().GetInt("study-hours")
		if format != "text" && format != "json" {
			return fmt.Errorf("unknown format %q (want text or json)", format)
		}
		if studyHours < 0 {
			return fmt.Errorf("--study-hours must not be negative")
		}

		rt, err := openRuntime(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		pcfg := rt.cfg.PipelineConfig()
		if cmd.Flags().Changed("enrich") {
			pcfg.LessonPlan.Enrich, _ = cmd.Flags().GetBool("enrich")
		}

		p := pipeline.New(rt.provider, pcfg, rt.store.ArtifactRepo(), rt.log)
		res, err := p.Run(cmd.Context(), pipeline.Request{
			Goal:       goalArg(args),
			SessionID:  session,
			StudyHours: studyHours,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if format == "json" {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(res.Plan)
		}
		_, err = fmt.Fprint(out, lessonplan.Render(res.Plan, styled))
		return err
	},
}

func init() {
	planCmd.Flags().StringP("format", "f", "text", "Output format: text or json")
	planCmd.Flags().Bool("styled", false, "Color the text report")
	planCmd.Flags().Bool("enrich", false, "Ask the LLM for per-lesson content (overrides pipeline.enrich_lessons)")
	planCmd.Flags().String("session", "", "Save the result under this session id")
	planCmd.Flags().Int("study-hours", 0, "Fit the syllabus to this many study hours instead of 70% of the parsed budget")
}
