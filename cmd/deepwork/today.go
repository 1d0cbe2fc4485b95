package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dev-sekhar/deepwork1/internal/schedule"
	"github.com/dev-sekhar/deepwork1/internal/tui"
	"github.com/dev-sekhar/deepwork1/pkg/models"
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's sessions",
	Args:  cobra.NoArgs,
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

		now := time.Now()
		date := models.DateOf(now)
		snapshot := schedule.Snapshot(defs, date, date, now)

		fmt.Print(tui.NewAgenda().RenderDay(date, snapshot))
		return nil
	},
}
