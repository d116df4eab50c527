// Package moodlog keeps an in-memory mood journal for the lifetime of the
// process and exports it as CSV. Entries are never persisted to disk.
package moodlog

import (
	"encoding/csv"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Entry is one mood record.
type Entry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Name      string    `json:"name"`
	Mood      string    `json:"mood"`
	Notes     string    `json:"notes"`
}

// Log is an append-only, in-memory list of mood entries. Safe for
// concurrent use: the web front end appends from request handlers.
type Log struct {
	mu      sync.Mutex
	entries []Entry
}

// New returns an empty log.
func New() *Log {
	return &Log{}
}

// Add appends a new entry and returns it.
func (l *Log) Add(name, mood, notes string) Entry {
	entry := Entry{
		ID:        uuid.New().String(),
		Timestamp: time.Now(),
		Name:      name,
		Mood:      mood,
		Notes:     notes,
	}
	l.mu.Lock()
	l.entries = append(l.entries, entry)
	l.mu.Unlock()
	return entry
}

// Entries returns a copy of all entries in insertion order.
func (l *Log) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of entries.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// WriteCSV writes a header row followed by one row per entry.
func (l *Log) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"timestamp", "name", "mood", "notes"}); err != nil {
		return err
	}
	for _, e := range l.Entries() {
		row := []string{e.Timestamp.Format(time.RFC3339), e.Name, e.Mood, e.Notes}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
