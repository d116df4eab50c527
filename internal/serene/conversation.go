package serene

import "time"

// DefaultMaxHistoryTurns is the number of non-system messages included in a
// provider submission when no window is configured. Older turns are dropped
// silently; there is no summarization.
const DefaultMaxHistoryTurns = 6

// Conversation is the ordered message log for one session. It is seeded
// with exactly one system message followed by an assistant greeting, and
// mutated only by Append and Reset. The system prompt content survives
// every Reset.
//
// A Conversation is not safe for concurrent use; each session has a single
// writer.
type Conversation struct {
	systemPrompt string
	greeting     string
	messages     []Message
}

// NewConversation creates a conversation seeded with the system prompt and
// an assistant greeting.
func NewConversation(systemPrompt, greeting string) *Conversation {
	c := &Conversation{
		systemPrompt: systemPrompt,
		greeting:     greeting,
	}
	c.seed(greeting)
	return c
}

func (c *Conversation) seed(greeting string) {
	now := time.Now()
	c.messages = []Message{
		{Role: RoleSystem, Content: c.systemPrompt, Timestamp: now},
		{Role: RoleAssistant, Content: greeting, Timestamp: now},
	}
}

// Append adds a message to the end of the log.
func (c *Conversation) Append(role, content string) {
	c.messages = append(c.messages, Message{
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	})
}

// Messages returns a copy of the full log in chronological order.
func (c *Conversation) Messages() []Message {
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// MessageCount returns the number of messages in the conversation
func (c *Conversation) MessageCount() int {
	return len(c.messages)
}

// SnapshotForSubmission returns the system message followed by the last
// maxTurns non-system messages, preserving their relative order. When fewer
// than maxTurns non-system messages exist, all of them are returned. The
// underlying log is never modified.
//
// The window exists because the provider call is costed by total message
// volume: only the instruction message plus a bounded recent window is sent.
func (c *Conversation) SnapshotForSubmission(maxTurns int) []Message {
	if maxTurns <= 0 {
		maxTurns = DefaultMaxHistoryTurns
	}

	var system, others []Message
	for _, m := range c.messages {
		if m.Role == RoleSystem {
			system = append(system, m)
			continue
		}
		others = append(others, m)
	}
	if len(others) > maxTurns {
		others = others[len(others)-maxTurns:]
	}

	snapshot := make([]Message, 0, len(system)+len(others))
	snapshot = append(snapshot, system...)
	snapshot = append(snapshot, others...)
	return snapshot
}

// Reset replaces the log with the original system message and a fresh
// greeting. An empty greeting reuses the one the conversation was created
// with.
func (c *Conversation) Reset(greeting string) {
	if greeting == "" {
		greeting = c.greeting
	}
	c.seed(greeting)
}
