package layers

import (
	"fmt"

	"github.com/repolens-dev/repolens/internal/apperr"
)

// State is the per-session semantic layer state. It is an explicitly
// passed, versioned value: every transition returns a new State, so a
// failed transition leaves the caller's copy untouched and no partial
// mutation can ever be observed.
type State struct {
	Version       int             `json:"version"`
	CurrentLayer  int             `json:"currentLayer"`
	FocusedUnit   string          `json:"focusedUnit,omitempty"`
	ExpandedUnits map[string]bool `json:"expandedUnits"`
	RevealDepth   int             `json:"revealDepth"`
	Locked        bool            `json:"locked"`
	Previous      *State          `json:"previous,omitempty"`
}

// NewState creates the default session state: layer 1, unlocked, no
// expansions, reveal depth derived from the size category.
func NewState(category SizeCategory) *State {
	return &State{
		CurrentLayer:  1,
		ExpandedUnits: make(map[string]bool),
		RevealDepth:   RevealDepth(category),
	}
}

// SetLayer performs a manual layer change: validates n, captures the prior
// state into the one-slot Previous, sets the layer and locks it so
// automatic layer suggestions stop applying until unlocked.
func (s *State) SetLayer(n int) (*State, error) {
	if n < 1 || n > 4 {
		return nil, fmt.Errorf("%w: layer %d not in [1,4]", apperr.ErrOutOfRange, n)
	}

	next := s.clone()
	next.Previous = s.undoSnapshot()
	next.CurrentLayer = n
	next.Locked = true
	next.Version++
	return next, nil
}

// Unlock clears the lock flag and nothing else: the layer number stays.
func (s *State) Unlock() *State {
	next := s.clone()
	next.Locked = false
	next.Version++
	return next
}

// Focus sets the focused unit. A non-zero layer additionally performs the
// layer-transition side effects of SetLayer. An empty unit clears focus
// and returns to layer 1, independent of the lock flag.
func (s *State) Focus(unit string, layer int) (*State, error) {
	if unit == "" {
		next := s.clone()
		next.FocusedUnit = ""
		next.CurrentLayer = 1
		next.Version++
		return next, nil
	}

	next := s.clone()
	if layer != 0 {
		withLayer, err := s.SetLayer(layer)
		if err != nil {
			return nil, err
		}
		next = withLayer
	}
	next.FocusedUnit = unit
	if layer == 0 {
		next.Version++
	}
	return next, nil
}

// Undo restores the one-slot previous state captured by the last manual
// layer change. Without a captured state it is a no-op.
func (s *State) Undo() *State {
	if s.Previous == nil {
		return s
	}
	return s.Previous.clone()
}

func (s *State) clone() *State {
	next := *s
	next.ExpandedUnits = make(map[string]bool, len(s.ExpandedUnits))
	for id := range s.ExpandedUnits {
		next.ExpandedUnits[id] = true
	}
	return &next
}

// undoSnapshot copies the current state with its own Previous stripped,
// keeping the undo slot exactly one level deep.
func (s *State) undoSnapshot() *State {
	prev := s.clone()
	prev.Previous = nil
	return prev
}
