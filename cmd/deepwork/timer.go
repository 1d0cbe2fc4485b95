package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dev-sekhar/deepwork1/internal/schedule"
	"github.com/dev-sekhar/deepwork1/internal/tui"
	"github.com/dev-sekhar/deepwork1/pkg/models"
)

var timerCmd = &cobra.Command{
	Use:   "timer <task>",
	Short: "Run the countdown timer for a session",
	Long: `Run a full-screen countdown timer for a session.

The timer shows the session goal and ritual checklist, counts down the
configured duration, and on natural completion offers to record the
occurrence as completed.`,
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

		timerCfg := tui.TimerConfig{
			TaskName:    def.Name,
			Duration:    def.Duration(),
			RefreshRate: cfg.TUI.RefreshRate,
		}
		if def.DeepWork != nil {
			timerCfg.Goal = def.DeepWork.Goal
			timerCfg.Ritual = def.DeepWork.Ritual
		}

		program, app := tui.NewTimerProgram(timerCfg)
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("running timer: %w", err)
		}
		if !app.Done() {
			fmt.Printf("Stopped after %s.\n", app.Elapsed().Round(time.Second))
			return nil
		}

		fmt.Print("Record this session as completed? [Y/n] ")
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		answer = strings.ToLower(strings.TrimSpace(answer))
		if answer == "n" || answer == "no" {
			return nil
		}

		now := time.Now()
		updated := schedule.RecordCompletion(*def, models.DateOf(now), nil, now)
		if err := db.UpdateDefinition(&updated); err != nil {
			return err
		}
		printStatus("✓", fmt.Sprintf("Completed %q", def.Name), color.FgGreen)
		return nil
	},
}
