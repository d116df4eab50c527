package web

import (
	"bytes"
	"html/template"
	"log"
	"net/http"

	"github.com/serenelab/serene/internal/serene"
	"github.com/serenelab/serene/internal/serene/support"
)

// messageView is one rendered chat bubble. Crisis is set when the content
// is the fixed safety reply so the page can show the crisis box.
type messageView struct {
	Role    string
	Content string
	Crisis  bool
}

type chatPageData struct {
	Title           string
	Warning         string
	Hotline         string
	TextLine        string
	BackgroundColor string
	Messages        []messageView
	Suggestions     []string
	MoodSaved       bool
	NeedsKey        bool
}

type breathingPageData struct {
	Title           string
	BackgroundColor string
	Exercise        string
}

var chatTemplate = template.Must(template.New("chat").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
  body { background-color: {{.BackgroundColor}}; font-family: sans-serif; max-width: 48rem; margin: 0 auto; padding: 1rem; }
  .message { padding: 0.75rem; border-radius: 0.5rem; margin: 0.5rem 0; white-space: pre-wrap; }
  .user { background-color: #e7f1ff; }
  .assistant { background-color: #f1f3f5; }
  .warning-box { background-color: #fff3cd; border: 1px solid #ffeaa7; border-radius: 0.5rem; padding: 0.75rem; margin: 0.75rem 0; }
  .crisis-box { background-color: #f8d7da; border: 1px solid #f5c6cb; border-radius: 0.5rem; padding: 0.75rem; margin: 0.75rem 0; white-space: pre-wrap; }
  .sidebar { font-size: 0.9rem; color: #444; }
  form.inline { display: inline; }
  input[type=text], input[type=password] { width: 60%; padding: 0.4rem; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p class="sidebar">A safe, informational space. Not a replacement for professional care.</p>

<div class="crisis-box"><strong>Immediate Help</strong>
Crisis Hotline: {{.Hotline}}
Crisis Text Line: {{.TextLine}}
Emergency: Call local emergency services</div>

<div class="warning-box">{{.Warning}}</div>

{{if .NeedsKey}}
<form method="post" action="/key">
  <input type="password" name="api_key" placeholder="API key (kept for this session only)">
  <input type="submit" value="Set key">
</form>
{{end}}

{{range .Messages}}
{{if .Crisis}}<div class="crisis-box">{{.Content}}</div>
{{else}}<div class="message {{.Role}}">{{.Content}}</div>
{{end}}{{end}}

<form method="post" action="/chat">
  <input type="text" name="message" placeholder="What's on your mind today?" autofocus>
  <input type="submit" value="Send">
</form>
<form class="inline" method="post" action="/clear">
  <input type="submit" value="Clear conversation">
</form>
<a href="/breathing">Breathing exercise</a>

{{if .Suggestions}}
<div class="sidebar">
<h3>Suggestions</h3>
<ul>{{range .Suggestions}}<li>{{.}}</li>{{end}}</ul>
</div>
{{end}}

<div class="sidebar">
<h3>Mood log</h3>
{{if .MoodSaved}}<p>Mood saved.</p>{{end}}
<form method="post" action="/mood">
  <input type="text" name="name" placeholder="Name (optional)">
  <input type="text" name="mood" placeholder="Mood">
  <input type="text" name="notes" placeholder="Notes (optional)">
  <input type="submit" value="Log mood">
</form>
<a href="/mood.csv">Export mood log (CSV)</a>
</div>
</body>
</html>
`))

var breathingTemplate = template.Must(template.New("breathing").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}} - Breathing Exercise</title>
<style>
  body { background-color: {{.BackgroundColor}}; font-family: sans-serif; max-width: 48rem; margin: 0 auto; padding: 1rem; }
  pre { white-space: pre-wrap; font-family: inherit; }
</style>
</head>
<body>
<h1>Breathing Exercise</h1>
<pre>{{.Exercise}}</pre>
<a href="/">Back to chat</a>
</body>
</html>
`))

func (s *Server) renderChat(w http.ResponseWriter, messages []serene.Message, hasKey, moodSaved bool) {
	crisisReply := s.cfg.CrisisReply()

	var views []messageView
	for _, m := range messages {
		if m.Role == serene.RoleSystem {
			continue
		}
		views = append(views, messageView{
			Role:    m.Role,
			Content: m.Content,
			Crisis:  m.Role == serene.RoleAssistant && m.Content == crisisReply,
		})
	}

	data := chatPageData{
		Title:           s.cfg.AppTitle,
		Warning:         s.cfg.WarningMessage,
		Hotline:         s.cfg.CrisisHotline,
		TextLine:        s.cfg.CrisisTextLine,
		BackgroundColor: s.cfg.BackgroundColor,
		Messages:        views,
		Suggestions:     suggestionsFor(messages),
		MoodSaved:       moodSaved,
		NeedsKey:        !hasKey,
	}

	var buf bytes.Buffer
	if err := chatTemplate.Execute(&buf, data); err != nil {
		log.Printf("chat page render: %v", err)
		plainTranscript(w, messages)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (s *Server) renderBreathing(w http.ResponseWriter) {
	data := breathingPageData{
		Title:           s.cfg.AppTitle,
		BackgroundColor: s.cfg.BackgroundColor,
		Exercise:        support.BreathingExercise(),
	}

	var buf bytes.Buffer
	if err := breathingTemplate.Execute(&buf, data); err != nil {
		log.Printf("breathing page render: %v", err)
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte(support.BreathingExercise()))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}
