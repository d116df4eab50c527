package config

import "fmt"

// The fixed conversation texts are built once from configuration at
// startup. They live here so the router and both front ends share one
// source.

// SystemPrompt returns the instruction message seeded as the first entry of
// every conversation.
func (c *Config) SystemPrompt() string {
	return fmt.Sprintf(`You are a helpful, empathetic mental health information assistant.

ROLE:
- Provide general psychoeducation and supportive, validating responses.
- Offer evidence-based coping strategies and brief self-help suggestions.

CRITICAL SAFETY RULES:
- You are NOT a licensed therapist or crisis counselor.
- Do NOT provide diagnoses or long treatment plans.
- If user mentions self-harm/suicide/imminent danger, acknowledge, provide crisis resources, encourage contacting emergency services, and keep the response brief and safety-focused.

Include this disclaimer in your first assistant message: %q`, c.WarningMessage)
}

// Greeting returns the assistant message seeded after the system prompt at
// session start.
func (c *Config) Greeting() string {
	return fmt.Sprintf("Hello! I'm here to provide general mental health information and support. %s How can I help you today?", c.WarningMessage)
}

// ResetGreeting returns the assistant message seeded after a conversation
// is cleared.
func (c *Config) ResetGreeting() string {
	return fmt.Sprintf("Conversation cleared. %s How can I help you?", c.WarningMessage)
}

// CrisisReply returns the fixed safety message, filled with the configured
// hotline and text line. It is kept short and safety focused.
func (c *Config) CrisisReply() string {
	return fmt.Sprintf(`I hear that you're in a lot of pain, and I'm very concerned about your safety.

Please reach out for immediate help:
- Crisis Hotline: %s
- Crisis Text Line: %s
- Emergency Services: Call your local emergency number now if you are in immediate danger.

You don't have to go through this alone. Please contact someone who can help right now.`, c.CrisisHotline, c.CrisisTextLine)
}

// UnavailableReply returns the fixed assistant message used when no
// provider credential is configured.
func (c *Config) UnavailableReply() string {
	return "AI unavailable: no API key configured. Provide one for this session or set it in the environment."
}

// ApologyReply returns the fixed assistant message used when a provider
// call fails.
func (c *Config) ApologyReply() string {
	return "I'm having trouble responding right now. Please try again later."
}
