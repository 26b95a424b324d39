package api

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/scrabblegame-go/internal/testutil"
)

func TestServerShutdownRunsHooks(t *testing.T) {
	cfg := DefaultServerConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port = 0

	server := NewServer(nil, cfg, testutil.NopLogger())
	assert.Equal(t, "127.0.0.1:0", server.Addr())

	var called atomic.Bool
	done := make(chan struct{})
	server.OnShutdown(func() {
		called.Store(true)
		close(done)
	})

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	require.NoError(t, server.Shutdown(context.Background()))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("shutdown hook did not run")
	}
	assert.True(t, called.Load())

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}
