package injection

import (
	"context"
	"sync"

	"github.com/jihwankim/chaos-harness/pkg/chaoserr"
	"github.com/jihwankim/chaos-harness/pkg/handle"
	"github.com/jihwankim/chaos-harness/pkg/target"
	"github.com/jihwankim/chaos-harness/pkg/telemetry"
)

// Executor is the front door for injection: it resolves an injector by name,
// invokes apply, tracks active handles, and drives remove / bulk-remove.
type Executor struct {
	registry *Registry

	mu     sync.RWMutex
	active map[string]*handle.State

	log *telemetry.Logger
}

// NewExecutor wraps registry with an empty active-handle table.
func NewExecutor(registry *Registry, log *telemetry.Logger) *Executor {
	if log == nil {
		log = telemetry.New(telemetry.Config{Level: telemetry.LevelInfo, Format: telemetry.FormatText})
	}
	return &Executor{
		registry: registry,
		active:   make(map[string]*handle.State),
		log:      log,
	}
}

// Inject resolves name in the registry, applies it to t, and records the
// resulting handle as active.
func (e *Executor) Inject(ctx context.Context, name string, t target.Target) (handle.Handle, error) {
	injector, ok := e.registry.Get(name)
	if !ok {
		return handle.Handle{}, chaoserr.New(chaoserr.InvalidConfig, "no injector registered for %q", name)
	}

	h, err := injector.Apply(ctx, t)
	if err != nil {
		return handle.Handle{}, err
	}

	state := handle.NewState(h)
	e.mu.Lock()
	e.active[h.ID] = state
	e.mu.Unlock()

	return h, nil
}

// Remove resolves h.InjectorName in the registry, removes the effect, and
// drops the handle from the active table (whether or not it was present).
func (e *Executor) Remove(ctx context.Context, h handle.Handle) error {
	injector, ok := e.registry.Get(h.InjectorName)
	if !ok {
		return chaoserr.New(chaoserr.InvalidConfig, "no injector registered for %q", h.InjectorName)
	}

	err := injector.Remove(ctx, h)

	e.mu.Lock()
	if state, found := e.active[h.ID]; found {
		state.Deactivate()
		delete(e.active, h.ID)
	}
	e.mu.Unlock()

	return err
}

// RemoveAll drains every active handle. Individual remove failures are
// logged and do not abort the iteration; RemoveAll always returns nil.
func (e *Executor) RemoveAll(ctx context.Context) error {
	for _, h := range e.ListActive() {
		if err := e.Remove(ctx, h); err != nil {
			e.log.Warn("failed to remove injection during drain", "id", h.ID, "injector", h.InjectorName, "error", err.Error())
		}
	}
	return nil
}

// ListActive returns a snapshot of currently active handles.
func (e *Executor) ListActive() []handle.Handle {
	e.mu.RLock()
	defer e.mu.RUnlock()
	handles := make([]handle.Handle, 0, len(e.active))
	for _, state := range e.active {
		handles = append(handles, state.Handle())
	}
	return handles
}

// GetState looks up the active state for a handle id.
func (e *Executor) GetState(id string) (*handle.State, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	s, ok := e.active[id]
	return s, ok
}

// ListInjectors delegates to the underlying registry.
func (e *Executor) ListInjectors() []string {
	return e.registry.List()
}
