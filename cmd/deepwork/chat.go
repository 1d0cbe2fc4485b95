package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dev-sekhar/deepwork1/pkg/models"
)

var chatCmd = &cobra.Command{
	Use:   "chat <task>",
	Short: "Chat with the assistant about an AI-assisted session",
	Long: `Open an interactive chat for an AI-assisted session.

The transcript is stored on the session and resumes where it left off.
An empty line or Ctrl+D ends the chat; the transcript is saved either
way.`,
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
		if def.Kind != models.KindAIAssisted {
			return fmt.Errorf("%q is not an AI-assisted session", def.Name)
		}

		provider := newProvider(cfg, false)
		working := def.Clone()

		// Replay the stored transcript.
		for _, msg := range working.Chat {
			prefix := "you"
			if msg.Role == models.ChatRoleAssistant {
				prefix = "assistant"
			}
			fmt.Printf("%s: %s\n", prefix, msg.Content)
		}

		reader := bufio.NewReader(os.Stdin)
		for {
			fmt.Print("you: ")
			line, err := reader.ReadString('\n')
			if err != nil {
				break
			}
			line = strings.TrimSpace(line)
			if line == "" {
				break
			}

			working.Chat = append(working.Chat, models.ChatMessage{
				Role:    models.ChatRoleUser,
				Content: line,
			})

			ctx, cancel := assistContext(cfg)
			reply, err := provider.Chat(ctx, working.Chat)
			cancel()
			if err != nil {
				printStatus("⚠", "Assistant unavailable; your message was kept", color.FgYellow)
				continue
			}

			working.Chat = append(working.Chat, models.ChatMessage{
				Role:    models.ChatRoleAssistant,
				Content: reply,
			})
			fmt.Printf("assistant: %s\n", reply)
		}

		printUsage(provider)
		return db.UpdateDefinition(&working)
	},
}
