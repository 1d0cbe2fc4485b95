package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dev-sekhar/deepwork1/internal/schedule"
	"github.com/dev-sekhar/deepwork1/pkg/models"
)

var (
	completeDate   string
	completeRating int
	completeNotes  string
)

var completeCmd = &cobra.Command{
	Use:   "complete <task>",
	Short: "Record a completed occurrence",
	Long: `Record that an occurrence of a session was completed.

The task may be given by ID, ID prefix, or name. The date defaults to
today; completing the same date again replaces the earlier record. For
recurring sessions only the named date is affected; every other
occurrence stays pending.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		now := time.Now()

		date := models.DateOf(now)
		if completeDate != "" {
			var err error
			if date, err = models.ParseDate(completeDate); err != nil {
				return fmt.Errorf("parsing --date: %w", err)
			}
		}

		var feedback *models.Feedback
		if completeRating != 0 || completeNotes != "" {
			if completeRating < 1 || completeRating > 5 {
				return fmt.Errorf("--rating must be 1..5")
			}
			feedback = &models.Feedback{Rating: completeRating, Notes: completeNotes}
		}

		db, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		defs, err := db.ListDefinitions()
		if err != nil {
			return err
		}
		def, err := resolveDefinition(defs, args[0])
		if err != nil {
			return err
		}
		if !schedule.OccursOn(def, date) {
			printStatus("⚠", fmt.Sprintf("%q does not occur on %s; recording anyway", def.Name, date), color.FgYellow)
		}

		updated := schedule.RecordCompletion(*def, date, feedback, now)
		if err := db.UpdateDefinition(&updated); err != nil {
			return err
		}

		printStatus("✓", fmt.Sprintf("Completed %q on %s", def.Name, date), color.FgGreen)
		return nil
	},
}

func init() {
	completeCmd.Flags().StringVar(&completeDate, "date", "", "Occurrence date, 2006-01-02 (default today)")
	completeCmd.Flags().IntVar(&completeRating, "rating", 0, "Session rating, 1..5")
	completeCmd.Flags().StringVar(&completeNotes, "notes", "", "Session notes")
}
