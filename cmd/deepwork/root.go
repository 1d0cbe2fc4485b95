package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dev-sekhar/deepwork1/internal/assist"
	"github.com/dev-sekhar/deepwork1/internal/availability"
	"github.com/dev-sekhar/deepwork1/internal/config"
	"github.com/dev-sekhar/deepwork1/internal/state"
	"github.com/dev-sekhar/deepwork1/pkg/models"
)

var rootCmd = &cobra.Command{
	Use:   "deepwork",
	Short: "Focus session scheduler",
	Long: `Deepwork schedules timed focus sessions: deep work, shallow work,
and AI-assisted work.

Sessions can repeat daily, weekly on chosen weekdays, or monthly.
Scheduling checks your working hours and refuses overlapping sessions,
suggesting the next free slot instead. Recurring sessions can be paused
over date ranges and each occurrence completed independently, with
optional feedback.

AI assistance (ritual suggestions, duration estimates, goal critiques,
session chat) is optional and advisory: if the provider is slow or
unconfigured, every command works with your own values.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(todayCmd)
	rootCmd.AddCommand(upcomingCmd)
	rootCmd.AddCommand(completeCmd)
	rootCmd.AddCommand(pauseCmd)
	rootCmd.AddCommand(unpauseCmd)
	rootCmd.AddCommand(cancelCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(timerCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig loads configuration, falling back to defaults on error.
func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
		return config.Default()
	}
	return cfg
}

// openStore opens and migrates the definitions database.
func openStore(cfg *config.Config) (*state.DB, error) {
	path := cfg.Paths.Database
	if path == "" {
		path = state.DefaultDBPath()
	}
	db, err := state.Open(path)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// openChecker loads the availability settings.
func openChecker(cfg *config.Config) (*availability.Checker, error) {
	return availability.NewChecker(cfg.Paths.AvailabilityFile)
}

// openWatchedChecker loads the availability settings and keeps them hot
// while the command runs, so edits to the file land before the checker
// is consulted. The caller must call stop.
func openWatchedChecker(cfg *config.Config) (checker *availability.Checker, stop func(), err error) {
	checker, err = openChecker(cfg)
	if err != nil {
		return nil, nil, err
	}
	return checker, checker.Watch(), nil
}

// newProvider builds the assistance provider. Any configuration problem
// degrades to the noop provider; assistance is never required.
func newProvider(cfg *config.Config, noAI bool) assist.Provider {
	if noAI {
		return assist.NoopProvider{}
	}
	client, err := assist.NewClient(assist.ClientConfig{
		Model:         anthropic.Model(cfg.Anthropic.Model),
		APIKey:        cfg.Anthropic.APIKey,
		UseAWSBedrock: cfg.Anthropic.UseBedrock,
		AWSRegion:     cfg.Anthropic.AWSRegion,
		AWSProfile:    cfg.Anthropic.AWSProfile,
	})
	if err != nil {
		return assist.NoopProvider{}
	}
	return assist.NewAnthropicProvider(client)
}

// assistContext bounds an advisory provider call.
func assistContext(cfg *config.Config) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), cfg.Anthropic.Timeout)
}

// resolveDefinition finds a stored definition by ID, ID prefix, or exact
// name (case-insensitive). Ambiguous prefixes and names are errors.
func resolveDefinition(defs []models.TaskDefinition, key string) (*models.TaskDefinition, error) {
	var matches []*models.TaskDefinition
	for i := range defs {
		def := &defs[i]
		if def.ID == key {
			return def, nil
		}
		if strings.HasPrefix(def.ID, key) || strings.EqualFold(def.Name, key) {
			matches = append(matches, def)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("no task matches %q", key)
	case 1:
		return matches[0], nil
	default:
		var names []string
		for _, m := range matches {
			names = append(names, fmt.Sprintf("%s (%s)", m.Name, shortID(m.ID)))
		}
		return nil, fmt.Errorf("%q is ambiguous: %s", key, strings.Join(names, ", "))
	}
}

// shortID truncates a uuid for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// printStatus prints a status line with color
func printStatus(symbol, message string, colorAttr color.Attribute) {
	c := color.New(colorAttr)
	fmt.Printf("%s %s\n", c.Sprint(symbol), message)
}

// printUsage reports the provider's token spend when any calls landed.
func printUsage(provider assist.Provider) {
	p, ok := provider.(*assist.AnthropicProvider)
	if !ok {
		return
	}
	in, out, calls := p.Usage()
	if calls == 0 {
		return
	}
	fmt.Printf("AI usage: %d calls, %d input / %d output tokens\n", calls, in, out)
}
