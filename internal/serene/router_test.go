package serene

import (
	"context"
	"errors"
	"strings"
	"testing"
)

const (
	testCrisisReply      = "Please reach out for immediate help:\n- Crisis Hotline: 988\n- Crisis Text Line: Text HELP to 741741"
	testUnavailableReply = "AI unavailable: no API key configured."
	testApologyReply     = "I'm having trouble responding right now. Please try again later."
)

// stubProvider counts calls and returns a fixed reply or error.
type stubProvider struct {
	reply        string
	err          error
	calls        int
	lastMessages []Message
	lastParams   Params
}

func (s *stubProvider) Complete(_ context.Context, messages []Message, params Params) (string, error) {
	s.calls++
	s.lastMessages = messages
	s.lastParams = params
	return s.reply, s.err
}

func newTestRouter(p Provider) *Router {
	return NewRouter(RouterConfig{
		Provider:         p,
		Params:           Params{Model: "gpt-4o-mini", MaxTokens: 512, Temperature: 0.7},
		MaxHistoryTurns:  6,
		CrisisReply:      testCrisisReply,
		UnavailableReply: testUnavailableReply,
		ApologyReply:     testApologyReply,
	})
}

func TestHandleTurnCrisisBypassesProvider(t *testing.T) {
	stub := &stubProvider{reply: "should never be used"}
	router := newTestRouter(stub)
	conv := NewConversation(testSystemPrompt, testGreeting)

	reply, kind := router.HandleTurn(context.Background(), conv, "I want to kill myself")

	if kind != ReplyCrisis {
		t.Fatalf("kind = %v, want ReplyCrisis", kind)
	}
	if stub.calls != 0 {
		t.Errorf("provider called %d times on the crisis path, want 0", stub.calls)
	}
	if !strings.Contains(reply, "988") || !strings.Contains(reply, "741741") {
		t.Errorf("crisis reply %q missing hotline or text line", reply)
	}

	messages := conv.Messages()
	if len(messages) != 4 {
		t.Fatalf("message count = %d, want 4 (seed pair + turn pair)", len(messages))
	}
	if messages[2].Role != RoleUser || messages[2].Content != "I want to kill myself" {
		t.Errorf("user message stored as {%s, %q}", messages[2].Role, messages[2].Content)
	}
	if messages[3].Role != RoleAssistant || messages[3].Content != testCrisisReply {
		t.Errorf("assistant message stored as {%s, %q}", messages[3].Role, messages[3].Content)
	}
}

func TestHandleTurnProviderReply(t *testing.T) {
	stub := &stubProvider{reply: "Try deep breathing."}
	router := newTestRouter(stub)
	conv := NewConversation(testSystemPrompt, testGreeting)
	before := conv.MessageCount()

	reply, kind := router.HandleTurn(context.Background(), conv, "I feel anxious about work")

	if kind != ReplyProvider {
		t.Fatalf("kind = %v, want ReplyProvider", kind)
	}
	if reply != "Try deep breathing." {
		t.Errorf("reply = %q, want the stub's text exactly", reply)
	}
	if stub.calls != 1 {
		t.Errorf("provider calls = %d, want 1", stub.calls)
	}
	if got := conv.MessageCount() - before; got != 2 {
		t.Errorf("store grew by %d messages, want exactly 2", got)
	}

	last := conv.Messages()[conv.MessageCount()-1]
	if last.Role != RoleAssistant || last.Content != "Try deep breathing." {
		t.Errorf("last message = {%s, %q}", last.Role, last.Content)
	}
}

func TestHandleTurnSubmitsBoundedSnapshot(t *testing.T) {
	stub := &stubProvider{reply: "ok"}
	router := newTestRouter(stub)
	conv := NewConversation(testSystemPrompt, testGreeting)

	for i := 0; i < 10; i++ {
		router.HandleTurn(context.Background(), conv, "another turn")
	}

	// 1 system message + 6-turn window, including the newest user message.
	if len(stub.lastMessages) != 7 {
		t.Fatalf("submitted %d messages, want 7", len(stub.lastMessages))
	}
	if stub.lastMessages[0].Role != RoleSystem {
		t.Errorf("first submitted message role = %s, want system", stub.lastMessages[0].Role)
	}
	newest := stub.lastMessages[len(stub.lastMessages)-1]
	if newest.Role != RoleUser || newest.Content != "another turn" {
		t.Errorf("newest submitted message = {%s, %q}, want the current user turn", newest.Role, newest.Content)
	}
	if stub.lastParams.Model != "gpt-4o-mini" || stub.lastParams.MaxTokens != 512 {
		t.Errorf("params = %+v", stub.lastParams)
	}
}

func TestHandleTurnNilProvider(t *testing.T) {
	router := newTestRouter(nil)
	conv := NewConversation(testSystemPrompt, testGreeting)

	reply, kind := router.HandleTurn(context.Background(), conv, "hello")

	if kind != ReplyFallback {
		t.Fatalf("kind = %v, want ReplyFallback", kind)
	}
	if reply != testUnavailableReply {
		t.Errorf("reply = %q, want the fixed unavailable reply", reply)
	}
}

func TestHandleTurnProviderFailure(t *testing.T) {
	stub := &stubProvider{err: &ProviderError{Provider: "openai", Err: errors.New("HTTP 500")}}
	router := newTestRouter(stub)
	conv := NewConversation(testSystemPrompt, testGreeting)
	before := conv.MessageCount()

	reply, kind := router.HandleTurn(context.Background(), conv, "hello")

	if kind != ReplyFallback {
		t.Fatalf("kind = %v, want ReplyFallback", kind)
	}
	if reply != testApologyReply {
		t.Errorf("reply = %q, want the fixed apology", reply)
	}
	if got := conv.MessageCount() - before; got != 2 {
		t.Errorf("store grew by %d messages, want exactly 2", got)
	}
}

func TestHandleTurnStoresMalformedInputVerbatim(t *testing.T) {
	stub := &stubProvider{reply: "ok"}
	router := newTestRouter(stub)
	conv := NewConversation(testSystemPrompt, testGreeting)

	input := "\x00 weird \t input \n"
	router.HandleTurn(context.Background(), conv, input)

	messages := conv.Messages()
	if messages[2].Content != input {
		t.Errorf("user input stored as %q, want verbatim %q", messages[2].Content, input)
	}
}

func TestProviderErrorUnwrap(t *testing.T) {
	inner := errors.New("boom")
	err := &ProviderError{Provider: "openai", Err: inner}

	if !errors.Is(err, inner) {
		t.Error("errors.Is failed to unwrap ProviderError")
	}
	if !strings.Contains(err.Error(), "openai") {
		t.Errorf("Error() = %q, want provider name included", err.Error())
	}
}
