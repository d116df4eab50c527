package web

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/serenelab/serene/internal/serene"
	"github.com/serenelab/serene/internal/serene/config"
)

type stubProvider struct {
	reply string
	calls int
}

func (s *stubProvider) Complete(_ context.Context, _ []serene.Message, _ serene.Params) (string, error) {
	s.calls++
	return s.reply, nil
}

func newTestServer(t *testing.T, provider serene.Provider) (*httptest.Server, *http.Client, *stubProvider) {
	t.Helper()
	stub, _ := provider.(*stubProvider)

	cfg := config.NewDefaultConfig()
	cfg.CrisisHotline = "988 Lifeline"
	cfg.CrisisTextLine = "Text HOME to 741741"

	srv := NewServer(cfg, func(token string) (serene.Provider, error) {
		return provider, nil
	})
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	return ts, &http.Client{Jar: jar}, stub
}

func getBody(t *testing.T, client *http.Client, url string) string {
	t.Helper()
	resp, err := client.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET %s status = %d", url, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return string(body)
}

func postForm(t *testing.T, client *http.Client, target string, form url.Values) string {
	t.Helper()
	resp, err := client.PostForm(target, form)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return string(body)
}

func TestIndexRendersGreetingAndSafetyBoxes(t *testing.T) {
	ts, client, _ := newTestServer(t, &stubProvider{reply: "ok"})

	body := getBody(t, client, ts.URL+"/")

	for _, want := range []string{
		"Serene",
		"988 Lifeline",
		"Text HOME to 741741",
		"This is not a substitute for professional care.",
		"How can I help you today?",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("index page missing %q", want)
		}
	}
}

func TestChatTurnRendersProviderReply(t *testing.T) {
	ts, client, stub := newTestServer(t, &stubProvider{reply: "Try deep breathing."})

	body := postForm(t, client, ts.URL+"/chat", url.Values{"message": {"I feel anxious about work"}})

	if !strings.Contains(body, "I feel anxious about work") {
		t.Error("page missing the user message")
	}
	if !strings.Contains(body, "Try deep breathing.") {
		t.Error("page missing the provider reply")
	}
	if stub.calls != 1 {
		t.Errorf("provider calls = %d, want 1", stub.calls)
	}
}

func TestChatCrisisTurnBypassesProvider(t *testing.T) {
	ts, client, stub := newTestServer(t, &stubProvider{reply: "never"})

	body := postForm(t, client, ts.URL+"/chat", url.Values{"message": {"I want to kill myself"}})

	if stub.calls != 0 {
		t.Errorf("provider calls = %d, want 0 on the crisis path", stub.calls)
	}
	if !strings.Contains(body, "988 Lifeline") {
		t.Error("crisis reply missing the hotline")
	}
	if !strings.Contains(body, "crisis-box") {
		t.Error("crisis reply not rendered inside the crisis box")
	}
}

func TestClearResetsConversation(t *testing.T) {
	ts, client, _ := newTestServer(t, &stubProvider{reply: "a unique reply marker"})

	postForm(t, client, ts.URL+"/chat", url.Values{"message": {"hello there"}})
	body := postForm(t, client, ts.URL+"/clear", url.Values{})

	if strings.Contains(body, "a unique reply marker") {
		t.Error("cleared page still shows the old reply")
	}
	if !strings.Contains(body, "Conversation cleared.") {
		t.Error("cleared page missing the reset greeting")
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	ts, _, _ := newTestServer(t, &stubProvider{reply: "session one reply"})

	jarA, _ := cookiejar.New(nil)
	jarB, _ := cookiejar.New(nil)
	clientA := &http.Client{Jar: jarA}
	clientB := &http.Client{Jar: jarB}

	postForm(t, clientA, ts.URL+"/chat", url.Values{"message": {"hello from A"}})
	body := getBody(t, clientB, ts.URL+"/")

	if strings.Contains(body, "hello from A") {
		t.Error("session B can see session A's conversation")
	}
}

func TestMoodLogExport(t *testing.T) {
	ts, client, _ := newTestServer(t, &stubProvider{reply: "ok"})

	postForm(t, client, ts.URL+"/mood", url.Values{
		"name":  {"ana"},
		"mood":  {"calm"},
		"notes": {"slept well"},
	})

	resp, err := client.Get(ts.URL + "/mood.csv")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "text/csv" {
		t.Errorf("Content-Type = %q, want text/csv", ct)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.HasPrefix(string(body), "timestamp,name,mood,notes") {
		t.Errorf("csv export missing header: %q", string(body))
	}
	if !strings.Contains(string(body), "ana,calm,slept well") {
		t.Errorf("csv export missing the entry: %q", string(body))
	}
}

func TestBreathingPage(t *testing.T) {
	ts, client, _ := newTestServer(t, &stubProvider{reply: "ok"})

	body := getBody(t, client, ts.URL+"/breathing")
	if !strings.Contains(body, "Breathe in slowly for 4 seconds.") {
		t.Error("breathing page missing the exercise text")
	}
}
