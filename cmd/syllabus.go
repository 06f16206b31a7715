package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/curricula/internal/duration"
	"github.com/abhisek/curricula/internal/pipeline"
	"github.com/abhisek/curricula/internal/syllabus"
)

var syllabusCmd = &cobra.Command{
	Use:   "syllabus <goal>",
	Short: "Build a syllabus and export it as JSON or YAML",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		outDir, _ := cmd.Flags().GetString("out")
		fit, _ := cmd.Flags().GetBool("fit")

		switch format {
		case syllabus.FormatJSON, syllabus.FormatYAML:
		default:
			return fmt.Errorf("unknown format %q (want json or yaml)", format)
		}

		rt, err := openRuntime(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		goal := goalArg(args)
		p := pipeline.New(rt.provider, rt.cfg.PipelineConfig(), nil, rt.log)
		s, err := p.Syllabus(cmd.Context(), goal)
		if err != nil {
			return err
		}
		if fit {
			s = syllabus.FitToBudget(s, float64(duration.Parse(goal).TotalHours))
		}

		if outDir == "-" {
			return syllabus.Export(cmd.OutOrStdout(), s, format)
		}

		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
		path := filepath.Join(outDir, syllabus.Filename(s.Goal, format))
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		if err := syllabus.Export(f, s, format); err != nil {
			f.Close()
			return fmt.Errorf("write %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return err
		}

		source := "templates"
		if s.AIGenerated {
			source = "LLM"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d units, %d lessons, from %s)\n",
			path, len(s.Units), s.TotalLessons(), source)
		return nil
	},
}

func init() {
	syllabusCmd.Flags().StringP("format", "f", syllabus.FormatJSON, "Export format: json or yaml")
	syllabusCmd.Flags().StringP("out", "o", ".", `Output directory, or "-" for stdout`)
	syllabusCmd.Flags().Bool("fit", false, "Trim lessons to the goal's study hours")
}
