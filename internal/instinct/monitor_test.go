package instinct

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewMonitor_NilStore(t *testing.T) {
	_, err := NewMonitor(nil, zap.NewNop())
	require.Error(t, err)
}

func TestMonitor_ReportsExternalWrites(t *testing.T) {
	s, path := newTestStore(t)
	_, err := s.AddOrUpdate(Instinct{ID: "p1"})
	require.NoError(t, err)

	m, err := NewMonitor(s, zap.NewNop())
	require.NoError(t, err)
	defer m.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, m.Start(ctx))

	// Let the store's own write age past the attribution grace window.
	time.Sleep(ownWriteGrace + 200*time.Millisecond)

	// Simulate another process rewriting the store file.
	require.NoError(t, os.WriteFile(path, []byte(`{"instincts": [], "version": "1.0", "lastUpdated": null}`+"\n"), 0600))

	select {
	case ev := <-m.Events():
		require.Equal(t, s.Path(), ev.Path)
	case <-time.After(3 * time.Second):
		t.Fatal("expected an external modification event")
	}
}

func TestMonitor_IgnoresOwnWrites(t *testing.T) {
	s, _ := newTestStore(t)

	m, err := NewMonitor(s, zap.NewNop())
	require.NoError(t, err)
	defer m.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, m.Start(ctx))

	_, err = s.AddOrUpdate(Instinct{ID: "p1"})
	require.NoError(t, err)

	select {
	case ev := <-m.Events():
		t.Fatalf("own write must not be reported, got %+v", ev)
	case <-time.After(300 * time.Millisecond):
		// No event: the store's own save was attributed correctly.
	}
}

func TestMonitor_StopIsIdempotent(t *testing.T) {
	s, _ := newTestStore(t)

	m, err := NewMonitor(s, zap.NewNop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, m.Start(ctx))

	m.Stop()
	m.Stop() // no-op
}
