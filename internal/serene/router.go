package serene

import "context"

// ReplyKind identifies which branch produced an assistant reply, so front
// ends can style crisis output without re-matching the input.
type ReplyKind int

const (
	// ReplyProvider is a normal provider completion.
	ReplyProvider ReplyKind = iota
	// ReplyCrisis is the crisis short-circuit; the provider was bypassed.
	ReplyCrisis
	// ReplyFallback is the fixed reply used when no provider is configured
	// or the provider call failed.
	ReplyFallback
)

// RouterConfig carries the fixed replies and the provider wiring for a
// Router. The reply strings are built once from configuration at startup.
type RouterConfig struct {
	Matcher          *Matcher
	Provider         Provider // nil when no credential is configured
	Params           Params
	MaxHistoryTurns  int
	CrisisReply      string
	UnavailableReply string
	ApologyReply     string
}

// Router decides, per user turn, between the crisis short-circuit and a
// provider completion, and appends the outcome to the conversation.
type Router struct {
	matcher  *Matcher
	provider Provider
	params   Params
	maxTurns int

	crisisReply      string
	unavailableReply string
	apologyReply     string
}

// NewRouter creates a router from the given wiring. A nil matcher gets the
// default crisis keyword set.
func NewRouter(rc RouterConfig) *Router {
	matcher := rc.Matcher
	if matcher == nil {
		matcher = NewMatcher()
	}
	maxTurns := rc.MaxHistoryTurns
	if maxTurns <= 0 {
		maxTurns = DefaultMaxHistoryTurns
	}
	return &Router{
		matcher:          matcher,
		provider:         rc.Provider,
		params:           rc.Params,
		maxTurns:         maxTurns,
		crisisReply:      rc.CrisisReply,
		unavailableReply: rc.UnavailableReply,
		apologyReply:     rc.ApologyReply,
	}
}

// HandleTurn appends the user message verbatim, then appends exactly one
// assistant reply:
//
//   - a crisis keyword match appends the fixed safety reply and never calls
//     the provider (latency and determinism on the safety path);
//   - with no provider configured, the fixed "AI unavailable" reply;
//   - on provider failure, the fixed apology reply;
//   - otherwise the provider completion over the bounded history snapshot.
//
// It never returns an error: every failure degrades to a fixed reply.
func (r *Router) HandleTurn(ctx context.Context, conv *Conversation, userText string) (string, ReplyKind) {
	conv.Append(RoleUser, userText)

	if r.matcher.Matches(userText) {
		conv.Append(RoleAssistant, r.crisisReply)
		return r.crisisReply, ReplyCrisis
	}

	if r.provider == nil {
		conv.Append(RoleAssistant, r.unavailableReply)
		return r.unavailableReply, ReplyFallback
	}

	snapshot := conv.SnapshotForSubmission(r.maxTurns)
	reply, err := r.provider.Complete(ctx, snapshot, r.params)
	if err != nil {
		conv.Append(RoleAssistant, r.apologyReply)
		return r.apologyReply, ReplyFallback
	}

	conv.Append(RoleAssistant, reply)
	return reply, ReplyProvider
}

// SetProvider replaces the provider, for sessions that supply an ephemeral
// API key through the UI.
func (r *Router) SetProvider(p Provider) {
	r.provider = p
}
