// Package web serves the browser chat UI. Each browser session gets its own
// in-memory conversation keyed by a cookie; nothing is persisted.
package web

import (
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/serenelab/serene/internal/moodlog"
	"github.com/serenelab/serene/internal/serene"
	"github.com/serenelab/serene/internal/serene/config"
	"github.com/serenelab/serene/internal/serene/support"
)

const sessionCookie = "serene_session"

// ProviderFactory builds a provider. A non-empty token overrides the
// configured credential; it is used for keys entered ephemerally through
// the UI and is never persisted.
type ProviderFactory func(token string) (serene.Provider, error)

// session is the per-browser state: one conversation, one router. The
// mutex serializes turns for a single browser session; sessions never
// share state.
type session struct {
	mu     sync.Mutex
	conv   *serene.Conversation
	router *serene.Router
	hasKey bool
}

// Server is the HTTP front end.
type Server struct {
	cfg     *config.Config
	factory ProviderFactory
	params  serene.Params
	moods   *moodlog.Log
	mux     *http.ServeMux

	mu       sync.Mutex
	sessions map[string]*session

	baseProvider serene.Provider // nil when no credential is configured
}

// NewServer wires the HTTP front end. A provider construction failure is
// not fatal: sessions run without a provider and the router degrades to
// the fixed "AI unavailable" reply until a key is supplied.
func NewServer(cfg *config.Config, factory ProviderFactory) *Server {
	params, err := cfg.Params()
	if err != nil {
		// LoadConfig falls back to the default model, so this only
		// triggers with a hand-built config; use defaults.
		params, _ = config.NewDefaultConfig().Params()
	}

	s := &Server{
		cfg:      cfg,
		factory:  factory,
		params:   params,
		moods:    moodlog.New(),
		mux:      http.NewServeMux(),
		sessions: make(map[string]*session),
	}

	if provider, err := factory(""); err != nil {
		log.Printf("provider unavailable: %v", err)
	} else {
		s.baseProvider = provider
	}

	s.mux.HandleFunc("GET /", s.handleIndex)
	s.mux.HandleFunc("POST /chat", s.handleChat)
	s.mux.HandleFunc("POST /clear", s.handleClear)
	s.mux.HandleFunc("POST /key", s.handleKey)
	s.mux.HandleFunc("POST /mood", s.handleMood)
	s.mux.HandleFunc("GET /mood.csv", s.handleMoodCSV)
	s.mux.HandleFunc("GET /breathing", s.handleBreathing)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// newRouter builds a router for one session around the given provider.
func (s *Server) newRouter(provider serene.Provider) *serene.Router {
	return serene.NewRouter(serene.RouterConfig{
		Matcher:          serene.NewMatcher(),
		Provider:         provider,
		Params:           s.params,
		MaxHistoryTurns:  s.cfg.MaxHistoryTurns,
		CrisisReply:      s.cfg.CrisisReply(),
		UnavailableReply: s.cfg.UnavailableReply(),
		ApologyReply:     s.cfg.ApologyReply(),
	})
}

// getSession returns the session for the request's cookie, creating both
// cookie and session when absent.
func (s *Server) getSession(w http.ResponseWriter, r *http.Request) *session {
	var id string
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		id = c.Value
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if id != "" {
		if sess, ok := s.sessions[id]; ok {
			return sess
		}
	}

	id = uuid.New().String()
	sess := &session{
		conv:   serene.NewConversation(s.cfg.SystemPrompt(), s.cfg.Greeting()),
		router: s.newRouter(s.baseProvider),
		hasKey: s.baseProvider != nil,
	}
	s.sessions[id] = sess

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
	})
	return sess
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	sess := s.getSession(w, r)

	sess.mu.Lock()
	messages := sess.conv.Messages()
	hasKey := sess.hasKey
	sess.mu.Unlock()

	s.renderChat(w, messages, hasKey, r.URL.Query().Get("mood") == "saved")
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	sess := s.getSession(w, r)
	message := r.FormValue("message")
	if message != "" {
		sess.mu.Lock()
		sess.router.HandleTurn(r.Context(), sess.conv, message)
		sess.mu.Unlock()
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	sess := s.getSession(w, r)
	sess.mu.Lock()
	sess.conv.Reset(s.cfg.ResetGreeting())
	sess.mu.Unlock()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleKey sets an ephemeral API key for this session only. The key lives
// in process memory and is gone when the session or the process ends.
func (s *Server) handleKey(w http.ResponseWriter, r *http.Request) {
	sess := s.getSession(w, r)
	token := r.FormValue("api_key")
	if token != "" {
		provider, err := s.factory(token)
		if err != nil {
			log.Printf("session provider unavailable: %v", err)
		} else {
			sess.mu.Lock()
			sess.router.SetProvider(provider)
			sess.hasKey = true
			sess.mu.Unlock()
		}
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleMood(w http.ResponseWriter, r *http.Request) {
	mood := r.FormValue("mood")
	if mood != "" {
		s.moods.Add(r.FormValue("name"), mood, r.FormValue("notes"))
	}
	http.Redirect(w, r, "/?mood=saved", http.StatusSeeOther)
}

func (s *Server) handleMoodCSV(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="mood-log.csv"`)
	if err := s.moods.WriteCSV(w); err != nil {
		log.Printf("mood csv export: %v", err)
	}
}

func (s *Server) handleBreathing(w http.ResponseWriter, r *http.Request) {
	s.renderBreathing(w)
}

// plainTranscript is the render fallback: when template execution fails,
// the transcript is still delivered as plain text.
func plainTranscript(w http.ResponseWriter, messages []serene.Message) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	for _, m := range messages {
		if m.Role == serene.RoleSystem {
			continue
		}
		fmt.Fprintf(w, "%s: %s\n\n", m.Role, m.Content)
	}
}

// lastUserMessage returns the most recent user message, or "".
func lastUserMessage(messages []serene.Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == serene.RoleUser {
			return messages[i].Content
		}
	}
	return ""
}

// suggestionsFor returns coping suggestions for the latest user message,
// or nil before the first user turn.
func suggestionsFor(messages []serene.Message) []string {
	last := lastUserMessage(messages)
	if last == "" {
		return nil
	}
	return support.Suggestions(last)
}
