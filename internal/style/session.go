package style

import (
	"sync"

	"github.com/cristianadrielbraun/qrsheet/internal/qr"
)

// Session is one user's page state. Requests for the same session can run
// concurrently, so every access goes through the mutex.
type Session struct {
	ID string

	mu      sync.Mutex
	state   State
	logoGen uint64
	canvas  *qr.Canvas
}

// LogoTicket identifies one logo read started with BeginLogoRead.
type LogoTicket struct {
	gen uint64
}

func newSession(id string, state State, canvas *qr.Canvas) *Session {
	return &Session{ID: id, state: state, canvas: canvas}
}

// State returns a copy of the current selections.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Canvas returns the session's preview canvas.
func (s *Session) Canvas() *qr.Canvas {
	return s.canvas
}

// Update applies fn to the state under the session lock and returns the result.
// Logo fields must go through the logo methods instead.
func (s *Session) Update(fn func(st *State)) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.state)
	return s.state
}

// SetBuiltInLogo toggles the built-in logo. Any logo read still in flight
// is superseded.
func (s *Session) SetBuiltInLogo(enabled bool) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logoGen++
	s.state.SetBuiltInLogo(enabled)
	return s.state
}

// ClearCustomLogo handles an emptied file selection. Any logo read still in
// flight is superseded.
func (s *Session) ClearCustomLogo() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logoGen++
	s.state.ClearCustomLogo()
	return s.state
}

// BeginLogoRead registers a new upload and supersedes older ones.
func (s *Session) BeginLogoRead() LogoTicket {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logoGen++
	return LogoTicket{gen: s.logoGen}
}

// CompleteLogoRead applies the result of the read identified by t. It is a
// no-op returning false when another logo action started after t.
func (s *Session) CompleteLogoRead(t LogoTicket, dataURI string) (State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.gen != s.logoGen {
		return s.state, false
	}
	s.state.SetCustomLogo(dataURI)
	return s.state, true
}

// Sync calls fn with the current state while holding the session lock, so
// work derived from the state observes changes in order.
func (s *Session) Sync(fn func(st State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.state)
}
