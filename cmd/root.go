package cmd

import (
	"github.com/abhisek/lektor/internal/journal"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "lektor [topic]",
	Short: "AI audio lecturer in your terminal",
	Long: "Lektor generates a spoken mini-lesson on any topic, lets you interrupt " +
		"it with spoken questions, and quizzes you at the end.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// No topic argument means the app asks for one.
		topic := ""
		if len(args) > 0 {
			topic = args[0]
		}
		return runLesson(cmd, topic)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite journal file (overrides LEKTOR_DB env var)")
	rootCmd.Flags().String("complexity", "SIMPLE", "Lesson depth: SIMPLE or COMPLEX")
	rootCmd.Flags().String("pacing", "NORMAL", "Narration pacing: NORMAL or FAST")
	rootCmd.Flags().Bool("mute", false, "Run without audio output (timing still advances)")

	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the journal path using --db flag (highest priority),
// then LEKTOR_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, journal.EnsureDir(p)
	}
	return journal.DefaultDBPath()
}
