//go:build unix

package shutdown

import (
	"context"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatch_SignalsTriggerOneShutdown(t *testing.T) {
	handle := &countingCloser{}
	lifecycle := &countingLifecycle{}
	exits := &exitRecorder{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := New(discardLogger(), lifecycle, cancel, exits.exit)
	c.Attach(handle)
	c.Watch(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGABRT)

	require.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGTERM))
	require.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGINT))

	select {
	case <-c.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("signal did not trigger shutdown")
	}

	// Give the second signal time to be delivered and dropped.
	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, int32(1), handle.calls.Load())
	assert.Equal(t, int32(1), lifecycle.uninit.Load())
	assert.Equal(t, []int{0}, exits.calls())
}
