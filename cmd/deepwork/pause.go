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
	pauseFrom   string
	pauseTo     string
	pauseReason string
)

var pauseCmd = &cobra.Command{
	Use:   "pause <task>",
	Short: "Pause a session over a date range",
	Long: `Pause a session over an inclusive date range.

No occurrences fall on paused dates and they never count as missed.
Pausing again with an overlapping range simply adds another interval;
ranges are kept exactly as entered.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := models.ParseDate(pauseFrom)
		if err != nil {
			return fmt.Errorf("parsing --from: %w", err)
		}
		to := from
		if pauseTo != "" {
			if to, err = models.ParseDate(pauseTo); err != nil {
				return fmt.Errorf("parsing --to: %w", err)
			}
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
		def, err := resolveDefinition(defs, args[0])
		if err != nil {
			return err
		}

		updated, err := schedule.AddPause(*def, models.PauseInterval{
			Start:  from,
			End:    to,
			Reason: pauseReason,
		})
		if err != nil {
			return err
		}
		if err := db.UpdateDefinition(&updated); err != nil {
			return err
		}

		printStatus("✓", fmt.Sprintf("Paused %q from %s through %s", def.Name, from, to), color.FgGreen)
		return nil
	},
}

var unpauseCmd = &cobra.Command{
	Use:   "unpause <task>",
	Short: "End a session's current pause today",
	Long: `End a session's most recent pause as of today.

Only the most recently added pause interval is shortened. If that
interval already ended, nothing changes.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
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
		def, err := resolveDefinition(defs, args[0])
		if err != nil {
			return err
		}
		if len(def.Pauses) == 0 {
			return fmt.Errorf("%q has no pauses", def.Name)
		}

		updated := schedule.UnpauseNow(*def, time.Now())
		if err := db.UpdateDefinition(&updated); err != nil {
			return err
		}

		last := updated.Pauses[len(updated.Pauses)-1]
		printStatus("✓", fmt.Sprintf("Pause on %q now ends %s", def.Name, last.End), color.FgGreen)
		return nil
	},
}

func init() {
	pauseCmd.Flags().StringVar(&pauseFrom, "from", "", "First paused date, 2006-01-02 (required)")
	pauseCmd.Flags().StringVar(&pauseTo, "to", "", "Last paused date, inclusive (default --from)")
	pauseCmd.Flags().StringVar(&pauseReason, "reason", "", "Why the session is paused")
	pauseCmd.MarkFlagRequired("from")
}
