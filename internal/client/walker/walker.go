// Package walker drives server-paged study sessions. The backend owns the
// cursor: the client never decides which item comes next, it only asks for
// the current page and reports the learner's action. Exam and flashcard
// traversal share this shape and plug in through the Ops interface.
package walker

import (
	"context"
	"errors"
	"sync"
)

// ErrTerminated is returned once a session has been observed finished.
// Finishing is one-way: no further fetches or advances are issued after it.
var ErrTerminated = errors.New("session already finished")

// Snapshot is the server's view of the session at one point in time.
type Snapshot struct {
	// Index is the zero-based position of the current item.
	Index int
	// Total is the number of items in the session.
	Total int
	// Terminal reports that the session is over and holds no current item.
	Terminal bool
	// Status carries the server's wording for a terminal session, e.g.
	// "submitted" or "expired".
	Status string
	// Item is the mode-specific payload (exam question, flashcard).
	Item any
}

// Advance is the learner's action on the current item.
type Advance struct {
	// Answer is the response being recorded, empty when skipping.
	Answer string
	// Action names the transition: next, previous, skip or submit.
	Action string
}

// Result is the server's acknowledgement of an advance.
type Result struct {
	// Index is the new cursor position.
	Index int
	// Completed reports that the advance ended the session.
	Completed bool
}

// Ops is the mode-specific session protocol.
type Ops interface {
	// Start opens a session over the given resource and returns its id.
	Start(ctx context.Context, resourceID int64) (string, error)
	// Current fetches the page at the server's cursor.
	Current(ctx context.Context, sessionID string) (*Snapshot, error)
	// Advance reports an action and moves the server's cursor.
	Advance(ctx context.Context, sessionID string, adv Advance) (*Result, error)
}

// Session is one walk through a paged resource.
type Session struct {
	ops Ops
	id  string

	mu      sync.Mutex
	current *Snapshot
	done    bool
}

// Start opens a new session and fetches its first page.
func Start(ctx context.Context, ops Ops, resourceID int64) (*Session, error) {
	id, err := ops.Start(ctx, resourceID)
	if err != nil {
		return nil, err
	}
	s := Attach(ops, id)
	if _, err := s.Fetch(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Attach wraps an already-open session id without contacting the server.
func Attach(ops Ops, sessionID string) *Session {
	return &Session{ops: ops, id: sessionID}
}

func (s *Session) ID() string {
	return s.id
}

// Current returns the most recently fetched snapshot, or nil before the
// first fetch.
func (s *Session) Current() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Done reports whether the session has been observed finished.
func (s *Session) Done() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

// Fetch refreshes the snapshot from the server. A terminal snapshot marks
// the session done; the snapshot itself is still returned so the caller can
// show the closing status.
func (s *Session) Fetch(ctx context.Context) (*Snapshot, error) {
	s.mu.Lock()
	if s.done {
		s.mu.Unlock()
		return nil, ErrTerminated
	}
	s.mu.Unlock()

	snap, err := s.ops.Current(ctx, s.id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.current = snap
	if snap.Terminal {
		s.done = true
	}
	s.mu.Unlock()
	return snap, nil
}

// Advance reports the learner's action. When the server answers that the
// session completed, the session is marked done and no further calls are
// issued.
func (s *Session) Advance(ctx context.Context, adv Advance) (*Result, error) {
	s.mu.Lock()
	if s.done {
		s.mu.Unlock()
		return nil, ErrTerminated
	}
	s.mu.Unlock()

	res, err := s.ops.Advance(ctx, s.id, adv)
	if err != nil {
		return nil, err
	}

	if res.Completed {
		s.mu.Lock()
		s.done = true
		s.mu.Unlock()
	}
	return res, nil
}
