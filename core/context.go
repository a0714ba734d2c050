package core

import "github.com/google/uuid"

// SessionContext is the mutable state shared by all agents for one user
// session. It lives in memory only: created empty at session start, mutated
// exclusively through staged tool mutations applied by the runner, and
// discarded at session end.
//
// The user id is a pointer so "unverified" is distinguishable from a literal
// user 0. The exit flag is monotonic: once requested it is never cleared.
//
// No locking: exactly one turn is in flight per session and tool execution
// is synchronous, so there is no concurrent access within a session.
type SessionContext struct {
	id            string
	userID        *int64
	exitRequested bool
}

// NewSessionContext creates an empty context with a fresh session id.
func NewSessionContext() *SessionContext {
	return &SessionContext{id: uuid.NewString()}
}

// ID returns the session identifier.
func (s *SessionContext) ID() string { return s.id }

// UserID returns the verified user id and true, or zero and false while the
// session is unverified.
func (s *SessionContext) UserID() (int64, bool) {
	if s.userID == nil {
		return 0, false
	}
	return *s.userID, true
}

// SetUserID records the verified user id.
func (s *SessionContext) SetUserID(id int64) { s.userID = &id }

// RequestExit sets the exit flag. The flag is monotonic.
func (s *SessionContext) RequestExit() { s.exitRequested = true }

// ExitRequested reports whether session termination has been requested.
func (s *SessionContext) ExitRequested() bool { return s.exitRequested }
