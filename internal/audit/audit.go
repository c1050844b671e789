package audit

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"flight_panel/internal/models"

	"github.com/google/uuid"
)

// Header is written at the top of every fresh audit log
const Header = "USER FLIGHTS INFORMATION\n\n" +
	"Airline Number Departure Arrival Date Time Terminal Gate Status\n" +
	"______________________________________________________________\n\n"

// Journal receives a copy of every recorded block
// database.AuditRepository satisfies it.
type Journal interface {
	InsertBatch(entries []*models.AuditEntry) error
}

// Entry is one operation result to record
type Entry struct {
	Title   string
	Flights []models.Flight
	Message string
}

// Log appends operation results to the session audit file
type Log struct {
	path      string
	sessionID string
	journal   Journal
	now       func() time.Time
}

// Option configures a Log
type Option func(*Log)

// WithJournal mirrors every block into j
func WithJournal(j Journal) Option {
	return func(l *Log) {
		l.journal = j
	}
}

// WithClock sets the clock used to timestamp journal entries
func WithClock(now func() time.Time) Option {
	return func(l *Log) {
		l.now = now
	}
}

// Open truncates the file at path and writes the header
// The returned Log is usable even when err is non-nil; later appends are attempted and logged on failure.
func Open(path string, opts ...Option) (*Log, error) {
	l := &Log{
		path:      path,
		sessionID: uuid.NewString(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}

	if err := os.WriteFile(path, []byte(Header), 0o644); err != nil {
		return l, fmt.Errorf("failed to reset audit log %s: %w", path, err)
	}
	return l, nil
}

// Path returns the audit file path
func (l *Log) Path() string {
	return l.path
}

// SessionID returns the identifier stamped on journal entries
func (l *Log) SessionID() string {
	return l.sessionID
}

// Record appends one block for e
// Failures are logged and otherwise ignored.
func (l *Log) Record(e Entry) {
	body := Format(e)

	if err := l.appendText(body); err != nil {
		slog.Error("Failed to append to audit log", "path", l.path, "title", e.Title, "error", err)
	}

	if l.journal == nil {
		return
	}
	entry := &models.AuditEntry{
		SessionID:   l.sessionID,
		Title:       e.Title,
		Body:        body,
		FlightCount: len(e.Flights),
		CreatedAt:   l.now(),
	}
	if err := l.journal.InsertBatch([]*models.AuditEntry{entry}); err != nil {
		slog.Error("Failed to write audit journal", "session_id", l.sessionID, "title", e.Title, "error", err)
	}
}

func (l *Log) appendText(text string) error {
	file, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := file.WriteString(text); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// Format renders e as the block appended to the log
func Format(e Entry) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(e.Title)
	b.WriteString("\n")
	for _, f := range e.Flights {
		b.WriteString(Reflow(f.String()))
	}
	if e.Message != "" {
		b.WriteString(e.Message)
		b.WriteString("\n")
	}
	return b.String()
}

// Reflow collapses runs of whitespace to single spaces and ends the line
func Reflow(s string) string {
	return strings.Join(strings.Fields(s), " ") + "\n"
}
