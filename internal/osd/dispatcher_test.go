package osd

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherStepRunsInOrder(t *testing.T) {
	b := &recordingBackend{w: 640, h: 480}
	d := NewDispatcher(New(b), 8, nil)
	ctx := context.Background()

	require.NoError(t, d.Show(ctx, 1, 10, "first"))
	require.NoError(t, d.Hide(ctx))
	require.NoError(t, d.Show(ctx, 2, 10, "second"))

	assert.Equal(t, 3, d.Step())
	assert.Equal(t, 0, d.Step())

	require.Len(t, b.opened, 2)
	assert.True(t, b.opened[0].closed)
	assert.False(t, b.opened[1].closed)
	assert.Equal(t, "second", d.overlay.State().Title)
}

func TestDispatcherRunHidesOnExit(t *testing.T) {
	b := &recordingBackend{w: 640, h: 480}
	d := NewDispatcher(New(b), 1, nil)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	require.NoError(t, d.Show(ctx, 5, 10, "t"))
	// the queue holds one entry, so this returns once the first show was taken
	require.NoError(t, d.Show(ctx, 6, 10, "t"))
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	require.NotEmpty(t, b.opened)
	assert.True(t, b.last().closed)
	assert.False(t, d.overlay.Shown())
}

func TestDispatcherEnqueueHonorsContext(t *testing.T) {
	d := NewDispatcher(New(&recordingBackend{}), 1, nil)
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, d.Hide(ctx))
	cancel()
	assert.ErrorIs(t, d.Hide(ctx), context.Canceled)
}

func TestDispatcherLogsFailures(t *testing.T) {
	b := &recordingBackend{failOpen: true}
	d := NewDispatcher(New(b), 2, nil)
	require.NoError(t, d.Show(context.Background(), 1, 2, "t"))
	assert.Equal(t, 1, d.Step())
	assert.False(t, d.overlay.Shown())
}
