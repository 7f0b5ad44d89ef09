package cli

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer is a bytes.Buffer safe for the spinner goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newTestSpinner(ctx context.Context, msg string) (*Spinner, *syncBuffer) {
	var buf syncBuffer
	s := newSpinnerWithContext(ctx, msg)
	s.w = &buf
	return s, &buf
}

func TestSpinnerDrawsMessage(t *testing.T) {
	s, buf := newTestSpinner(context.Background(), "Loading dataset")
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Update("Rendering")
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	got := buf.String()
	assert.Contains(t, got, "Loading dataset")
	assert.Contains(t, got, "Rendering")
	assert.False(t, s.Cancelled(), "Stop should not count as cancellation")
}

func TestSpinnerStopIdempotent(t *testing.T) {
	s, _ := newTestSpinner(context.Background(), "Testing...")
	s.Start()
	s.Stop()
	s.Stop()
}

func TestSpinnerContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s, _ := newTestSpinner(ctx, "Waiting...")
	s.Start()

	cancel()
	require.Eventually(t, func() bool {
		select {
		case <-s.stopped:
			return true
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond, "spinner did not stop after cancellation")
	assert.True(t, s.Cancelled(), "Cancelled() should report parent cancellation")
	s.Stop()
}

func TestSpinnerStopWithStatus(t *testing.T) {
	buf := captureOutput(t)

	s, _ := newTestSpinner(context.Background(), "Testing...")
	s.Start()
	s.StopWithSuccess("Done!")
	s2, _ := newTestSpinner(context.Background(), "Testing...")
	s2.Start()
	s2.StopWithError("Failed!")

	assert.Contains(t, buf.String(), "Done!")
	assert.Contains(t, buf.String(), "Failed!")
}
