package serene

import "time"

// Message roles. Ordering in a conversation is chronological and
// append-only; messages are never edited after creation.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents a single message in a conversation
type Message struct {
	Role      string    `json:"role"`      // "system", "user" or "assistant"
	Content   string    `json:"content"`   // Message content
	Timestamp time.Time `json:"timestamp"` // When the message was appended
}
