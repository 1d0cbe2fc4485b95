package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dev-sekhar/deepwork1/internal/schedule"
	"github.com/dev-sekhar/deepwork1/pkg/models"
)

var historyDays int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past occurrences and their outcomes",
	Long: `Show past occurrences, newest date first, with completion state
and any recorded feedback. Ended recurring sessions keep their past
occurrences here.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if historyDays < 1 {
			return fmt.Errorf("--days must be at least 1")
		}

		cfg := loadConfig()
		db, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		defs, err := db.ListDefinitions()
		if err != nil {
			return err
		}

		now := time.Now()
		to := models.DateOf(now).AddDays(-1)
		from := to.AddDays(-(historyDays - 1))
		snapshot := schedule.Snapshot(defs, from, to, now)

		if len(snapshot) == 0 {
			fmt.Printf("No occurrences between %s and %s.\n", from, to)
			return nil
		}

		// Newest first.
		for i := len(snapshot) - 1; i >= 0; i-- {
			occ := snapshot[i]
			marker := " "
			if occ.Status == models.StatusCompleted {
				marker = "✓"
			}
			fmt.Printf("%s %s  %s", occ.Date, marker, occ.Def.Name)
			if c, ok := occ.Def.CompletionOn(occ.Date); ok && c.Feedback != nil {
				fmt.Printf("  [%d/5]", c.Feedback.Rating)
				if c.Feedback.Notes != "" {
					fmt.Printf(" %s", c.Feedback.Notes)
				}
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyDays, "days", 30, "Number of past days to show")
}
