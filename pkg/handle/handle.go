// Package handle defines the ownership token returned by an injector's apply
// and required by its remove.
package handle

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jihwankim/chaos-harness/pkg/target"
)

// Handle is the opaque identity + metadata record for an active injection.
type Handle struct {
	ID           string
	InjectorName string
	Target       target.Target
	StartedAt    time.Time
	Metadata     map[string]interface{}
}

// New mints a Handle for a freshly applied injection. Metadata may be nil.
func New(injectorName string, t target.Target, metadata map[string]interface{}) Handle {
	if metadata == nil {
		metadata = map[string]interface{}{}
	}
	return Handle{
		ID:           uuid.NewString(),
		InjectorName: injectorName,
		Target:       t,
		StartedAt:    time.Now().UTC(),
		Metadata:     metadata,
	}
}

// Duration reports how long the injection identified by this handle has
// been active, measured from StartedAt to now.
func (h Handle) Duration() time.Duration {
	return time.Since(h.StartedAt)
}

// State is the Executor-side record pairing a Handle with its active flag.
// active transitions true -> false exactly once, on remove.
type State struct {
	mu     sync.RWMutex
	handle Handle
	active bool
}

// NewState wraps h as an active injection state.
func NewState(h Handle) *State {
	return &State{handle: h, active: true}
}

func (s *State) Handle() Handle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.handle
}

func (s *State) IsActive() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// Deactivate flips the state to inactive. It is safe to call more than once;
// only the first call has effect.
func (s *State) Deactivate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = false
}
