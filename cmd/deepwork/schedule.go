package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/dev-sekhar/deepwork1/internal/assist"
	"github.com/dev-sekhar/deepwork1/internal/config"
	"github.com/dev-sekhar/deepwork1/internal/schedule"
	"github.com/dev-sekhar/deepwork1/pkg/models"
)

var (
	scheduleAt       string
	scheduleDuration int
	scheduleKind     string
	scheduleGoal     string
	scheduleDaily    bool
	scheduleWeekly   string
	scheduleMonthly  bool
	scheduleUntil    string
	scheduleNoAI     bool
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule <name>",
	Short: "Schedule a new focus session",
	Long: `Schedule a new focus session.

The start time is checked against your working hours and against every
session already on the calendar for that date. On overlap nothing is
saved; the blocking session and the next free slot are printed instead.

For deep work sessions with a --goal, the AI provider (when configured)
suggests a pre-session ritual and critiques the goal. Suggestions are
advisory and the session is created either way.

Examples:
  deepwork schedule "Write chapter 3" --at "2026-09-02 09:00" --duration 90 --goal "finish draft"
  deepwork schedule "Email triage" --at "2026-09-01 08:30" --duration 30 --kind shallow_work --daily
  deepwork schedule "Team review" --at "2026-09-07 14:00" --weekly mon,wed,fri --until 2026-12-19`,
	Args: cobra.ExactArgs(1),
	RunE: runSchedule,
}

func init() {
	scheduleCmd.Flags().StringVar(&scheduleAt, "at", "", "Start time, \"2006-01-02 15:04\" in local time (required)")
	scheduleCmd.Flags().IntVar(&scheduleDuration, "duration", 0, "Session length in minutes (default from config)")
	scheduleCmd.Flags().StringVar(&scheduleKind, "kind", "", "Session kind: deep_work, shallow_work, ai_assisted")
	scheduleCmd.Flags().StringVar(&scheduleGoal, "goal", "", "Session goal (deep work)")
	scheduleCmd.Flags().BoolVar(&scheduleDaily, "daily", false, "Repeat every day")
	scheduleCmd.Flags().StringVar(&scheduleWeekly, "weekly", "", "Repeat weekly on weekdays, e.g. mon,wed,fri")
	scheduleCmd.Flags().BoolVar(&scheduleMonthly, "monthly", false, "Repeat monthly on the start date's day of month")
	scheduleCmd.Flags().StringVar(&scheduleUntil, "until", "", "Last date the recurrence may occur, 2006-01-02")
	scheduleCmd.Flags().BoolVar(&scheduleNoAI, "no-ai", false, "Skip AI suggestions")
	scheduleCmd.MarkFlagRequired("at")
}

func runSchedule(cmd *cobra.Command, args []string) error {
	name := args[0]
	cfg := loadConfig()
	now := time.Now()

	start, err := time.ParseInLocation("2006-01-02 15:04", scheduleAt, time.Local)
	if err != nil {
		return fmt.Errorf("parsing --at: %w", err)
	}

	kind := models.TaskKind(scheduleKind)
	if scheduleKind == "" {
		kind = models.TaskKind(cfg.Defaults.Kind)
	}
	if !kind.Valid() {
		return fmt.Errorf("unknown kind %q", kind)
	}

	// Keep availability settings hot while the advisory calls below
	// run; an edit to the file counts before the precheck.
	checker, stopWatch, err := openWatchedChecker(cfg)
	if err != nil {
		return fmt.Errorf("loading availability settings: %w", err)
	}
	defer stopWatch()

	provider := newProvider(cfg, scheduleNoAI)

	duration := scheduleDuration
	if duration == 0 {
		duration = cfg.Defaults.DurationMinutes
		if scheduleGoal != "" {
			ctx, cancel := assistContext(cfg)
			if minutes, err := provider.SuggestDuration(ctx, scheduleGoal); err == nil {
				duration = minutes
				printStatus("ℹ", fmt.Sprintf("Suggested duration: %d minutes", minutes), color.FgCyan)
			}
			cancel()
		}
	}

	recurrence, err := buildRecurrence()
	if err != nil {
		return err
	}

	// Working-hours precheck. A closed window is a hard stop here, in
	// the command; the conflict engine below knows nothing about it.
	if ok, reason := checker.Allows(start, time.Duration(duration)*time.Minute); !ok {
		printStatus("✗", fmt.Sprintf("Outside working hours: %s", reason), color.FgRed)
		return fmt.Errorf("start time not available")
	}

	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	existing, err := db.ListDefinitions()
	if err != nil {
		return err
	}

	candidate := schedule.Candidate{
		Start:           start,
		DurationMinutes: duration,
		Recurrence:      recurrence,
	}
	if _, err := schedule.FindSlot(candidate, existing, now); err != nil {
		var conflict *schedule.ConflictError
		if errors.As(err, &conflict) {
			printStatus("✗", fmt.Sprintf("Conflicts with %q", conflict.TaskName), color.FgRed)
			fmt.Printf("  Next free slot that fits %d minutes: %s\n",
				duration, conflict.NextAvailable.Format("2006-01-02 15:04"))
			fmt.Println("  Nothing was scheduled.")
		}
		return err
	}

	def := models.TaskDefinition{
		ID:              uuid.NewString(),
		Name:            name,
		DurationMinutes: duration,
		Kind:            kind,
		AnchorStart:     start,
		Recurrence:      recurrence,
		Status:          models.StatusPending,
		CreatedAt:       now,
	}
	if kind == models.KindDeepWork && scheduleGoal != "" {
		def.DeepWork = &models.DeepWorkDetails{Goal: scheduleGoal}
	}

	mergeSuggestions(cfg, provider, &def)

	if err := def.Validate(); err != nil {
		return err
	}
	if err := db.CreateDefinition(&def); err != nil {
		return err
	}

	printStatus("✓", fmt.Sprintf("Scheduled %q (%s) at %s for %d minutes",
		def.Name, shortID(def.ID), start.Format("2006-01-02 15:04"), duration), color.FgGreen)
	if def.DeepWork != nil {
		for _, step := range def.DeepWork.Ritual {
			fmt.Printf("  ritual: %s\n", step)
		}
		if def.DeepWork.GoalCritique != "" {
			fmt.Printf("  goal critique: %s\n", def.DeepWork.GoalCritique)
		}
	}
	printUsage(provider)
	return nil
}

// buildRecurrence translates the repeat flags into a recurrence rule.
func buildRecurrence() (models.Recurrence, error) {
	set := 0
	for _, on := range []bool{scheduleDaily, scheduleWeekly != "", scheduleMonthly} {
		if on {
			set++
		}
	}
	if set > 1 {
		return models.Recurrence{}, fmt.Errorf("--daily, --weekly and --monthly are mutually exclusive")
	}

	var rec models.Recurrence
	switch {
	case scheduleDaily:
		rec = models.Daily()
	case scheduleWeekly != "":
		days, err := parseWeekdays(scheduleWeekly)
		if err != nil {
			return models.Recurrence{}, err
		}
		rec = models.Weekly(days...)
	case scheduleMonthly:
		rec = models.Monthly()
	default:
		rec = models.Once()
	}

	if scheduleUntil != "" {
		if !rec.IsRepeating() {
			return models.Recurrence{}, fmt.Errorf("--until applies only to repeating sessions")
		}
		end, err := models.ParseDate(scheduleUntil)
		if err != nil {
			return models.Recurrence{}, fmt.Errorf("parsing --until: %w", err)
		}
		rec.End = &end
	}
	return rec, nil
}

// parseWeekdays parses a comma-separated weekday list like "mon,wed,fri".
func parseWeekdays(s string) ([]time.Weekday, error) {
	byName := map[string]time.Weekday{
		"sun": time.Sunday, "mon": time.Monday, "tue": time.Tuesday,
		"wed": time.Wednesday, "thu": time.Thursday, "fri": time.Friday,
		"sat": time.Saturday,
	}

	var days []time.Weekday
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if len(part) > 3 {
			part = part[:3]
		}
		day, ok := byName[part]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", part)
		}
		days = append(days, day)
	}
	if len(days) == 0 {
		return nil, fmt.Errorf("--weekly needs at least one weekday")
	}
	return days, nil
}

// mergeSuggestions fills gaps in the definition from the AI provider.
// Failures and timeouts are absorbed; the user's values stand.
func mergeSuggestions(cfg *config.Config, provider assist.Provider, def *models.TaskDefinition) {
	if def.Kind != models.KindDeepWork || def.DeepWork == nil || def.DeepWork.Goal == "" {
		return
	}

	ctx, cancel := assistContext(cfg)
	defer cancel()

	if ritual, err := provider.SuggestRitual(ctx, def.DeepWork.Goal); err == nil {
		def.DeepWork.Ritual = ritual
	} else if !errors.Is(err, assist.ErrUnavailable) {
		printStatus("⚠", "No ritual suggestion (provider unavailable)", color.FgYellow)
	}

	if critique, err := provider.CritiqueGoal(ctx, def.DeepWork.Goal); err == nil {
		def.DeepWork.GoalCritique = critique
	}
}
