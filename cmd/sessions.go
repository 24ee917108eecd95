package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lektor/internal/journal"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List past lesson sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve journal path: %w", err)
		}
		rec, err := journal.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		defer rec.Close()

		sessions, err := rec.RecentSessions(context.Background(), limit)
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}

		if len(sessions) == 0 {
			fmt.Println("No sessions recorded yet.")
			return nil
		}

		fmt.Printf("%-19s  %-28s  %-8s  %-7s  %-9s  %-6s  %s\n",
			"Started", "Topic", "Depth", "Pacing", "Outcome", "Quiz", "Duration")
		fmt.Println(strings.Repeat("─", 96))

		for _, s := range sessions {
			outcome := s.Outcome
			if outcome == "" {
				outcome = "?"
			}
			quiz := "-"
			if s.QuizTotal > 0 {
				quiz = fmt.Sprintf("%d/%d", s.QuizScore, s.QuizTotal)
			}
			topic := s.Topic
			if len(topic) > 28 {
				topic = topic[:28]
			}
			fmt.Printf("%-19s  %-28s  %-8s  %-7s  %-9s  %-6s  %ds\n",
				s.StartedAt.Local().Format("2006-01-02 15:04:05"),
				topic, s.Complexity, s.Pacing, outcome, quiz, s.DurationSecs)
		}
		return nil
	},
}

var sessionsQuestionsCmd = &cobra.Command{
	Use:   "questions <session-id>",
	Short: "Show the spoken questions asked during a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve journal path: %w", err)
		}
		rec, err := journal.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		defer rec.Close()

		interruptions, err := rec.SessionInterruptions(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("query interruptions: %w", err)
		}

		if len(interruptions) == 0 {
			fmt.Println("No questions recorded for this session.")
			return nil
		}

		sep := strings.Repeat("─", 72)
		for _, in := range interruptions {
			fmt.Println(sep)
			fmt.Printf("At %.1fs into the lesson (%s):\n", float64(in.PositionMs)/1000, in.Outcome)
			if in.Transcript != "" {
				fmt.Printf("  Q: %s\n", in.Transcript)
			}
			if in.Answer != "" {
				fmt.Printf("  A: %s\n", in.Answer)
			}
		}
		return nil
	},
}

func init() {
	sessionsCmd.Flags().IntP("limit", "n", 20, "Number of sessions to show")
	sessionsCmd.AddCommand(sessionsQuestionsCmd)
}
