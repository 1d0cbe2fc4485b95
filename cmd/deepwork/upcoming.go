package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dev-sekhar/deepwork1/internal/schedule"
	"github.com/dev-sekhar/deepwork1/internal/tui"
	"github.com/dev-sekhar/deepwork1/pkg/models"
)

var upcomingDays int

var upcomingCmd = &cobra.Command{
	Use:   "upcoming",
	Short: "Show the next days of sessions",
	Long: `Show scheduled sessions for the coming days, starting today.

Paused recurring sessions stay visible on their paused dates, marked
as paused, so an upcoming pause is never a silent gap.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if upcomingDays < 1 {
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
		from := models.DateOf(now)
		to := from.AddDays(upcomingDays - 1)
		snapshot := schedule.SnapshotWithPaused(defs, from, to, now)

		fmt.Print(tui.NewAgenda().RenderRange(from, to, snapshot))
		return nil
	},
}

func init() {
	upcomingCmd.Flags().IntVar(&upcomingDays, "days", 7, "Number of days to show")
}
