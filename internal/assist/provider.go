package assist

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/dev-sekhar/deepwork1/pkg/models"
)

// Provider is the assistance oracle consulted when building a session.
// Implementations may fail or time out; callers treat any error as
// "no suggestion" and carry on with user-entered values.
type Provider interface {
	// SuggestRitual returns an ordered pre-session checklist for a goal.
	SuggestRitual(ctx context.Context, goal string) ([]string, error)
	// SuggestDuration estimates a session length in minutes.
	SuggestDuration(ctx context.Context, description string) (int, error)
	// CritiqueGoal returns a short verdict on goal quality.
	CritiqueGoal(ctx context.Context, goal string) (string, error)
	// Chat continues an AI-assisted session transcript.
	Chat(ctx context.Context, transcript []models.ChatMessage) (string, error)
}

const ritualSystemPrompt = `You help people prepare for deep work sessions.
Given a session goal, reply with a short ordered ritual checklist, one
step per line, no numbering, no commentary. At most 6 steps.`

const durationSystemPrompt = `You estimate how long a focus session needs.
Given a task description, reply with a single integer: the suggested
session length in minutes, between 15 and 240. Reply with the number only.`

const critiqueSystemPrompt = `You review goals for deep work sessions.
Given a goal, reply with one or two sentences: say whether it is
specific and outcome-shaped, and if not, how to sharpen it.`

const chatSystemPrompt = `You are a focused work companion inside a
productivity timer. Keep replies short and practical; help the user
plan, unblock, and reflect on the session at hand.`

// AnthropicProvider implements Provider against the Anthropic API.
type AnthropicProvider struct {
	client *Client
}

// NewAnthropicProvider creates a provider backed by the given client.
func NewAnthropicProvider(client *Client) *AnthropicProvider {
	return &AnthropicProvider{client: client}
}

// Usage returns the token spend across this provider's calls.
func (p *AnthropicProvider) Usage() (input, output int64, calls int) {
	input, output = p.client.Tracker().Total()
	return input, output, p.client.Tracker().Calls()
}

// SuggestRitual asks for a pre-session checklist.
func (p *AnthropicProvider) SuggestRitual(ctx context.Context, goal string) ([]string, error) {
	text, err := p.complete(ctx, ritualSystemPrompt, fmt.Sprintf("Session goal: %s", goal), 512)
	if err != nil {
		return nil, err
	}

	var steps []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(line, "-*0123456789. "))
		if line != "" {
			steps = append(steps, line)
		}
	}
	if len(steps) == 0 {
		return nil, fmt.Errorf("empty ritual response")
	}
	return steps, nil
}

// SuggestDuration asks for a session length estimate.
func (p *AnthropicProvider) SuggestDuration(ctx context.Context, description string) (int, error) {
	text, err := p.complete(ctx, durationSystemPrompt, description, 16)
	if err != nil {
		return 0, err
	}

	minutes, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("malformed duration response %q: %w", text, err)
	}
	if minutes <= 0 {
		return 0, fmt.Errorf("non-positive duration suggestion %d", minutes)
	}
	return minutes, nil
}

// CritiqueGoal asks for a goal-quality verdict.
func (p *AnthropicProvider) CritiqueGoal(ctx context.Context, goal string) (string, error) {
	text, err := p.complete(ctx, critiqueSystemPrompt, goal, 256)
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("empty critique response")
	}
	return text, nil
}

// Chat sends the transcript and returns the assistant's reply.
func (p *AnthropicProvider) Chat(ctx context.Context, transcript []models.ChatMessage) (string, error) {
	if len(transcript) == 0 {
		return "", fmt.Errorf("empty transcript")
	}

	messages := make([]anthropic.MessageParam, 0, len(transcript))
	for _, msg := range transcript {
		block := anthropic.NewTextBlock(msg.Content)
		if msg.Role == models.ChatRoleAssistant {
			messages = append(messages, anthropic.NewAssistantMessage(block))
		} else {
			messages = append(messages, anthropic.NewUserMessage(block))
		}
	}

	resp, err := p.client.sdk().Messages.New(ctx, anthropic.MessageNewParams{
		Model:     p.client.Model(),
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: chatSystemPrompt},
		},
		Messages: messages,
	})
	if err != nil {
		return "", fmt.Errorf("chat call failed: %w", err)
	}
	p.client.Tracker().Add(resp.Usage.InputTokens, resp.Usage.OutputTokens)

	return textOf(resp), nil
}

// complete makes a single-turn request and returns the text output.
func (p *AnthropicProvider) complete(ctx context.Context, system, user string, maxTokens int64) (string, error) {
	resp, err := p.client.sdk().Messages.New(ctx, anthropic.MessageNewParams{
		Model:     p.client.Model(),
		MaxTokens: maxTokens,
		System: []anthropic.TextBlockParam{
			{Text: system},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(user)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("API call failed: %w", err)
	}
	p.client.Tracker().Add(resp.Usage.InputTokens, resp.Usage.OutputTokens)

	return textOf(resp), nil
}

func textOf(resp *anthropic.Message) string {
	var out string
	for _, block := range resp.Content {
		if variant, ok := block.AsAny().(anthropic.TextBlock); ok {
			out += variant.Text
		}
	}
	return out
}

// NoopProvider implements Provider with no backend. Every method
// reports absence. It backs --no-ai and environments without a key.
type NoopProvider struct{}

// SuggestRitual always reports absence.
func (NoopProvider) SuggestRitual(ctx context.Context, goal string) ([]string, error) {
	return nil, ErrUnavailable
}

// SuggestDuration always reports absence.
func (NoopProvider) SuggestDuration(ctx context.Context, description string) (int, error) {
	return 0, ErrUnavailable
}

// CritiqueGoal always reports absence.
func (NoopProvider) CritiqueGoal(ctx context.Context, goal string) (string, error) {
	return "", ErrUnavailable
}

// Chat always reports absence.
func (NoopProvider) Chat(ctx context.Context, transcript []models.ChatMessage) (string, error) {
	return "", ErrUnavailable
}

// ErrUnavailable marks a provider with no backend configured.
var ErrUnavailable = fmt.Errorf("assistance provider not configured")
