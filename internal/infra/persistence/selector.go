// Package persistence chooses the record store backend at startup.
package persistence

import (
	"context"
	"log/slog"
	"sync"

	"ridehail/config"
	domainerrors "ridehail/internal/domain/errors"
	"ridehail/internal/domain/repository"
	"ridehail/internal/errors"
	"ridehail/internal/infra/persistence/memory"
)

// State is a step of backend selection. Selection moves forward only:
// Unselected → HealthChecking → RemoteActive | LocalFallback.
type State int

const (
	StateUnselected State = iota
	StateHealthChecking
	StateRemoteActive
	StateLocalFallback
)

func (s State) String() string {
	switch s {
	case StateUnselected:
		return "unselected"
	case StateHealthChecking:
		return "health_checking"
	case StateRemoteActive:
		return "remote_active"
	case StateLocalFallback:
		return "local_fallback"
	default:
		return "unknown"
	}
}

// RemoteStore is a backend that needs a one-time setup before serving.
type RemoteStore interface {
	repository.Store
	// Init is idempotent.
	Init(ctx context.Context) error
}

// Opener connects to a remote backend.
type Opener func(ctx context.Context) (RemoteStore, error)

// Selector picks the active store once per process.
type Selector struct {
	mu      sync.RWMutex
	once    sync.Once
	state   State
	active  repository.Store
	cause   error
	backend string
	local   *memory.Store
	openers map[string]Opener
	logger  *slog.Logger
}

func NewSelector(backend string, local *memory.Store, openers map[string]Opener, logger *slog.Logger) *Selector {
	if logger == nil {
		logger = slog.Default()
	}

	return &Selector{
		state:   StateUnselected,
		backend: backend,
		local:   local,
		openers: openers,
		logger:  logger.With(slog.String("component", "store_selector")),
	}
}

// Select runs the selection the first time it is called and returns the
// active store. Later calls return the same store without re-probing.
func (s *Selector) Select(ctx context.Context) repository.Store {
	s.once.Do(func() {
		s.selectOnce(ctx)
	})

	return s.Store()
}

func (s *Selector) selectOnce(ctx context.Context) {
	if s.backend == "" || s.backend == config.BackendMemory {
		s.transition(ctx, StateLocalFallback, s.local, nil)

		return
	}

	s.transition(ctx, StateHealthChecking, nil, nil)

	remote, err := s.openRemote(ctx)
	if err != nil {
		s.transition(ctx, StateLocalFallback, s.local, errors.Join(domainerrors.ErrUpstreamUnavailable, err))

		return
	}

	s.transition(ctx, StateRemoteActive, remote, nil)
}

func (s *Selector) openRemote(ctx context.Context) (RemoteStore, error) {
	open, ok := s.openers[s.backend]
	if !ok {
		return nil, errors.Errorf("unknown storage backend %q", s.backend)
	}

	remote, err := open(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", s.backend)
	}
	if err := remote.Init(ctx); err != nil {
		_ = remote.Close()

		return nil, errors.Wrapf(err, "init %s", s.backend)
	}
	if err := remote.Ping(ctx); err != nil {
		_ = remote.Close()

		return nil, errors.Wrapf(err, "ping %s", s.backend)
	}

	return remote, nil
}

func (s *Selector) transition(ctx context.Context, to State, store repository.Store, cause error) {
	s.mu.Lock()
	from := s.state
	s.state = to
	if store != nil {
		s.active = store
	}
	s.cause = cause
	s.mu.Unlock()

	attrs := []slog.Attr{
		slog.String("from", from.String()),
		slog.String("to", to.String()),
		slog.String("requested", s.backend),
	}
	if store != nil {
		attrs = append(attrs, slog.String("backend", store.Backend()))
	}
	if cause != nil {
		attrs = append(attrs, slog.String("cause", cause.Error()))
		s.logger.LogAttrs(ctx, slog.LevelWarn, "Record store falling back to memory", attrs...)

		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "Record store selection", attrs...)
}

// State returns the current selection state.
func (s *Selector) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state
}

// Store returns the active store, or nil before selection completes.
func (s *Selector) Store() repository.Store {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.active
}

// Cause returns why the remote backend was rejected, if it was.
func (s *Selector) Cause() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.cause
}

// Local returns the in-process store, which is always available.
func (s *Selector) Local() *memory.Store {
	return s.local
}
