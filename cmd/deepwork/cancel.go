package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dev-sekhar/deepwork1/internal/schedule"
	"github.com/dev-sekhar/deepwork1/pkg/models"
)

var cancelAsOf string

var cancelCmd = &cobra.Command{
	Use:   "cancel <task>",
	Short: "Cancel a session",
	Long: `Cancel a one-off session, or end a recurring one.

One-off sessions are soft-deleted and drop out of every listing; their
history stays in the store. Cancelling twice is harmless.

Recurring sessions are end-dated instead: occurrences stop after
--as-of (default today), while past occurrences and their completion
records remain visible in history. An earlier existing end date is
kept; cancelling never extends a session.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		asOf := models.DateOf(time.Now())
		if cancelAsOf != "" {
			var err error
			if asOf, err = models.ParseDate(cancelAsOf); err != nil {
				return fmt.Errorf("parsing --as-of: %w", err)
			}
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

		var updated models.TaskDefinition
		if def.Recurrence.IsRepeating() {
			if updated, err = schedule.EndRecurring(*def, asOf); err != nil {
				return err
			}
			printStatus("✓", fmt.Sprintf("%q ends %s", def.Name, *updated.Recurrence.End), color.FgGreen)
		} else {
			if updated, err = schedule.CancelOnce(*def); err != nil {
				return err
			}
			printStatus("✓", fmt.Sprintf("Cancelled %q", def.Name), color.FgGreen)
		}

		return db.UpdateDefinition(&updated)
	},
}

func init() {
	cancelCmd.Flags().StringVar(&cancelAsOf, "as-of", "", "Last date a recurring session may occur (default today)")
}
