package cmd

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/curricula/internal/config"
	"github.com/abhisek/curricula/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "curricula",
	Short: "Turn a learning goal into a syllabus and lesson plan",
	Long: `Curricula turns a free-text learning goal such as "Learn React Native in 5 hours"
into a time-boxed syllabus and a detailed lesson plan. An LLM backend is used when
an API key is configured; otherwise deterministic templates are used.`,
	SilenceUsage: true,
}

// Execute runs the CLI until it finishes or the process is interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides CURRICULA_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default: curricula.yaml in . or ~/.config/curricula)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log to stderr")

	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(syllabusCmd)
	rootCmd.AddCommand(durationCmd)
	rootCmd.AddCommand(overviewCmd)
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then CURRICULA_DB env var, then db.path from the config, then the default
// XDG path.
func resolveDBPath(cmd *cobra.Command, cfg *config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if os.Getenv("CURRICULA_DB") == "" && cfg != nil && cfg.DB.Path != "" {
		return cfg.DB.Path, store.EnsureDir(cfg.DB.Path)
	}
	return store.DefaultDBPath()
}

// goalArg joins positional args so quoting the goal is optional.
func goalArg(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
