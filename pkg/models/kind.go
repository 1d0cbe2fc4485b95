package models

// TaskKind identifies the flavor of a focus session.
type TaskKind string

const (
	// KindDeepWork is an uninterrupted focus session with a goal and ritual.
	KindDeepWork TaskKind = "deep_work"
	// KindShallowWork is a lighter session with no extra payload.
	KindShallowWork TaskKind = "shallow_work"
	// KindAIAssisted is a session driven by an assistant chat transcript.
	KindAIAssisted TaskKind = "ai_assisted"
)

// Valid returns true if the kind is a known value.
func (k TaskKind) Valid() bool {
	switch k {
	case KindDeepWork, KindShallowWork, KindAIAssisted:
		return true
	default:
		return false
	}
}

// DeepWorkDetails is the payload carried by deep work definitions.
type DeepWorkDetails struct {
	// Goal is the outcome the session is aimed at.
	Goal string `json:"goal"`
	// Ritual is the ordered pre-session checklist.
	Ritual []string `json:"ritual,omitempty"`
	// GoalCritique is an optional assistant verdict on goal quality.
	GoalCritique string `json:"goal_critique,omitempty"`
}

// ChatRole identifies the author of a chat message.
type ChatRole string

const (
	// ChatRoleUser marks a message written by the user.
	ChatRoleUser ChatRole = "user"
	// ChatRoleAssistant marks a message written by the assistant.
	ChatRoleAssistant ChatRole = "assistant"
)

// ChatMessage is one entry in an AI-assisted session transcript.
type ChatMessage struct {
	// Role is who authored the message.
	Role ChatRole `json:"role"`
	// Content is the message text.
	Content string `json:"content"`
}
