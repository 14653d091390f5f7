// Package session keeps per-conversation state: the sticky leave-request
// slots gathered across turns and a bounded view of recent dialogue. Slots
// follow a fill-don't-clobber discipline so a vague later turn can never
// erase what an earlier turn established.
package session

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"leavedesk/internal/logging"
)

// Turn is one utterance in the dialogue history.
type Turn struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// Session holds the conversation state for one session ID. All methods are
// safe for concurrent use.
type Session struct {
	mu sync.Mutex

	id         string
	info       Fields
	history    []Turn
	createdAt  time.Time
	lastActive time.Time
}

// New creates an empty session.
func New(id string) *Session {
	now := time.Now()
	return &Session{
		id:         id,
		createdAt:  now,
		lastActive: now,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Info returns a copy of the current slot values.
func (s *Session) Info() Fields {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.info
}

// CreatedAt returns when the session was created.
func (s *Session) CreatedAt() time.Time {
	return s.createdAt
}

// LastActive returns the time of the most recent update.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// MergeInferred folds model-extracted values into the session, filling only
// slots that are still empty. Inferred values are hints, not corrections:
// they never overwrite state the user already established.
func (s *Session) MergeInferred(f Fields) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fillIfEmpty(&s.info.EmployeeID, f.EmployeeID)
	fillIfEmpty(&s.info.Name, f.Name)
	fillIfEmpty(&s.info.LeaveType, f.LeaveType)
	fillIfEmpty(&s.info.StartDate, f.StartDate)
	fillIfEmpty(&s.info.EndDate, f.EndDate)
	fillIfEmpty(&s.info.Reason, f.Reason)

	s.lastActive = time.Now()
	logging.SessionDebug("session %s: merged inferred fields, info now %s", s.id, s.info.describe())
}

// Overwrite applies authoritative values (explicit user input or tool
// arguments): any non-empty value replaces the slot, empty values leave the
// slot alone.
func (s *Session) Overwrite(f Fields) {
	s.mu.Lock()
	defer s.mu.Unlock()

	overwriteIfSet(&s.info.EmployeeID, f.EmployeeID)
	overwriteIfSet(&s.info.Name, f.Name)
	overwriteIfSet(&s.info.LeaveType, f.LeaveType)
	overwriteIfSet(&s.info.StartDate, f.StartDate)
	overwriteIfSet(&s.info.EndDate, f.EndDate)
	overwriteIfSet(&s.info.Reason, f.Reason)

	s.lastActive = time.Now()
	logging.SessionDebug("session %s: overwrote fields, info now %s", s.id, s.info.describe())
}

func fillIfEmpty(slot *string, value string) {
	if *slot == "" && value != "" {
		*slot = value
	}
}

func overwriteIfSet(slot *string, value string) {
	if value != "" {
		*slot = value
	}
}

// AddTurn appends one utterance to the history.
func (s *Session) AddTurn(role, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, Turn{Role: role, Content: content})
	s.lastActive = time.Now()
}

// RecentHistory returns up to n most recent turns, oldest first.
func (s *Session) RecentHistory(n int) []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := len(s.history) - n
	if start < 0 {
		start = 0
	}
	out := make([]Turn, len(s.history)-start)
	copy(out, s.history[start:])
	return out
}

// HistoryLen returns the number of recorded turns.
func (s *Session) HistoryLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.history)
}

// Context renders the known slots as a single line for prompt injection,
// e.g. "Employee ID: EMP001; Name: John; Current leave type: casual_leave". When
// nothing is known it returns "No user context available".
func (s *Session) Context() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.info.contextLine()
}

func (f Fields) contextLine() string {
	var parts []string
	add := func(label, value string) {
		if value != "" {
			parts = append(parts, fmt.Sprintf("%s: %s", label, value))
		}
	}
	add("Employee ID", f.EmployeeID)
	add("Name", f.Name)
	add("Current leave type", f.LeaveType)
	add("Current start date", f.StartDate)
	add("Current end date", f.EndDate)
	add("Leave reason", f.Reason)

	if len(parts) == 0 {
		return "No user context available"
	}
	return strings.Join(parts, "; ")
}

// describe is a compact form for debug logs.
func (f Fields) describe() string {
	return f.contextLine()
}

// MissingInfo lists which identity slots are still empty. Employee ID and
// name are what the assistant solicits conversationally; the request slots
// are gathered as the leave discussion unfolds.
func (s *Session) MissingInfo() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var missing []string
	if s.info.EmployeeID == "" {
		missing = append(missing, "Employee ID")
	}
	if s.info.Name == "" {
		missing = append(missing, "Name")
	}
	return missing
}

// InfoComplete reports whether the session knows who it is talking to.
func (s *Session) InfoComplete() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.info.EmployeeID != "" && s.info.Name != ""
}

// Ready reports whether every slot needed to submit a leave application is
// filled: employee ID, leave type, start date, end date and reason.
func (s *Session) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.info.EmployeeID != "" &&
		s.info.LeaveType != "" &&
		s.info.StartDate != "" &&
		s.info.EndDate != "" &&
		s.info.Reason != ""
}
