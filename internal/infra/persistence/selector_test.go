package persistence

import (
	"context"
	"sync/atomic"
	"testing"

	"ridehail/config"
	domainerrors "ridehail/internal/domain/errors"
	"ridehail/internal/errors"
	"ridehail/internal/infra/persistence/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRemote reuses the memory store but reports itself as a remote backend.
type fakeRemote struct {
	*memory.Store
	initErr error
	pingErr error
	closed  bool
}

func (f *fakeRemote) Backend() string { return config.BackendFirestore }

func (f *fakeRemote) Init(context.Context) error { return f.initErr }

func (f *fakeRemote) Ping(context.Context) error { return f.pingErr }

func (f *fakeRemote) Close() error {
	f.closed = true

	return nil
}

func TestSelector_MemoryConfigured(t *testing.T) {
	local := memory.NewStore(nil)
	sel := NewSelector(config.BackendMemory, local, nil, nil)
	assert.Equal(t, StateUnselected, sel.State())

	store := sel.Select(context.Background())
	assert.Same(t, local, store)
	assert.Equal(t, StateLocalFallback, sel.State())
	assert.NoError(t, sel.Cause())
}

func TestSelector_RemoteActive(t *testing.T) {
	remote := &fakeRemote{Store: memory.NewStore(nil)}
	var opened atomic.Int32
	sel := NewSelector(config.BackendFirestore, memory.NewStore(nil), map[string]Opener{
		config.BackendFirestore: func(context.Context) (RemoteStore, error) {
			opened.Add(1)

			return remote, nil
		},
	}, nil)

	store := sel.Select(context.Background())
	assert.Same(t, remote, store)
	assert.Equal(t, StateRemoteActive, sel.State())
	assert.Equal(t, "firestore", store.Backend())

	// never re-evaluated
	assert.Same(t, remote, sel.Select(context.Background()))
	assert.EqualValues(t, 1, opened.Load())
}

func TestSelector_FallsBack(t *testing.T) {
	tests := []struct {
		name   string
		opener Opener
		closed bool
	}{
		{
			name: "open fails",
			opener: func(context.Context) (RemoteStore, error) {
				return nil, errors.New("dial tcp: connection refused")
			},
		},
		{
			name: "init fails",
			opener: func(context.Context) (RemoteStore, error) {
				return &fakeRemote{Store: memory.NewStore(nil), initErr: errors.New("permission denied")}, nil
			},
			closed: true,
		},
		{
			name: "ping fails",
			opener: func(context.Context) (RemoteStore, error) {
				return &fakeRemote{Store: memory.NewStore(nil), pingErr: errors.New("deadline exceeded")}, nil
			},
			closed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var remote RemoteStore
			local := memory.NewStore(nil)
			sel := NewSelector(config.BackendFirestore, local, map[string]Opener{
				config.BackendFirestore: func(ctx context.Context) (RemoteStore, error) {
					var err error
					remote, err = tt.opener(ctx)

					return remote, err
				},
			}, nil)

			store := sel.Select(context.Background())
			assert.Same(t, local, store)
			assert.Equal(t, StateLocalFallback, sel.State())
			require.Error(t, sel.Cause())
			assert.ErrorIs(t, sel.Cause(), domainerrors.ErrUpstreamUnavailable)
			if tt.closed {
				fr, ok := remote.(*fakeRemote)
				require.True(t, ok)
				assert.True(t, fr.closed)
			}
		})
	}
}

func TestSelector_UnknownBackend(t *testing.T) {
	local := memory.NewStore(nil)
	sel := NewSelector("cassandra", local, map[string]Opener{}, nil)

	assert.Same(t, local, sel.Select(context.Background()))
	assert.Equal(t, StateLocalFallback, sel.State())
	assert.Contains(t, sel.Cause().Error(), "cassandra")
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "remote_active", StateRemoteActive.String())
	assert.Equal(t, "unknown", State(42).String())
}
