package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/repolens-dev/repolens/internal/apperr"
	"github.com/repolens-dev/repolens/internal/graph"
	"github.com/repolens-dev/repolens/internal/layers"
)

// Session binds an analysis to a layer-engine state. All state transitions
// go through the session so concurrent callers observe consistent versions.
type Session struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	Analysis *Analysis `json:"-"`

	mu    sync.Mutex
	state *layers.State
}

type sessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{sessions: make(map[string]*Session)}
}

// NewSession registers a fresh session over an analysis.
func (e *Engine) NewSession(a *Analysis) *Session {
	s := &Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		Analysis:  a,
		state:     layers.NewState(a.Category),
	}

	e.sessions.mu.Lock()
	e.sessions.sessions[s.ID] = s
	e.sessions.mu.Unlock()

	e.logger.Info("session created", "session", s.ID, "root", a.Root)
	return s
}

// Session looks up a live session by id.
func (e *Engine) Session(id string) (*Session, error) {
	e.sessions.mu.RLock()
	s, ok := e.sessions.sessions[id]
	e.sessions.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: session %q", apperr.ErrNotFound, id)
	}
	return s, nil
}

// CloseSession drops a session from the registry.
func (e *Engine) CloseSession(id string) error {
	e.sessions.mu.Lock()
	defer e.sessions.mu.Unlock()
	if _, ok := e.sessions.sessions[id]; !ok {
		return fmt.Errorf("%w: session %q", apperr.ErrNotFound, id)
	}
	delete(e.sessions.sessions, id)
	return nil
}

// State returns the session's current layer state.
func (s *Session) State() *layers.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SetLayer performs a manual, locking layer change.
func (s *Session) SetLayer(n int) (*layers.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := s.state.SetLayer(n)
	if err != nil {
		return nil, err
	}
	s.state = next
	return next, nil
}

// Unlock clears the manual layer lock.
func (s *Session) Unlock() *layers.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.state.Unlock()
	return s.state
}

// Focus sets or clears the focused unit. An empty unit resets to layer 1.
// A unit must exist in the analysis before it can take focus.
func (s *Session) Focus(unit string, layer int) (*layers.State, error) {
	if unit != "" {
		if _, ok := s.Analysis.Units.Unit(unit); !ok && !s.Analysis.Snapshot.HasNode(unit) {
			return nil, fmt.Errorf("%w: unit %q", apperr.ErrNodeNotFound, unit)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := s.state.Focus(unit, layer)
	if err != nil {
		return nil, err
	}
	s.state = next
	return next, nil
}

// Expand drills into an aggregate unit and returns the updated view.
func (s *Session) Expand(unitID string) (*layers.UnitGraph, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, view, err := layers.Expand(s.state, unitID, s.Analysis.Snapshot, s.Analysis.Units)
	if err != nil {
		return nil, err
	}
	s.state = next
	return view, nil
}

// Undo restores the state before the last manual layer change.
func (s *Session) Undo() *layers.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.state.Undo()
	return s.state
}

// View renders the unit graph for the current state, including any
// expanded aggregates.
func (s *Session) View() *layers.UnitGraph {
	s.mu.Lock()
	defer s.mu.Unlock()
	return layers.Render(s.state, s.Analysis.Snapshot, s.Analysis.Units)
}

// LayerConfig returns the disclosure configuration for the session's
// current layer.
func (s *Session) LayerConfig() layers.LayerConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	cfg, _ := layers.LayerConfiguration(s.state.CurrentLayer)
	return cfg
}

// Risk returns the risk indicator for a node, when one was computed.
func (a *Analysis) Risk(node string) (graph.Risk, bool) {
	r, ok := a.Risks[node]
	return r, ok
}
