package app

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/projectname/internal/logging"
)

func TestLoop_RunsTasksInOrder(t *testing.T) {
	l := NewLoop(nil)
	l.Start()
	defer l.Stop()

	var got []int
	for i := 0; i < 5; i++ {
		i := i
		require.True(t, l.Post(func() { got = append(got, i) }))
	}
	require.NoError(t, l.Flush(context.Background()))

	assert.Equal(t, []int{0, 1, 2, 3, 4}, got)
}

func TestLoop_PostFromTask(t *testing.T) {
	l := NewLoop(nil)
	l.Start()
	defer l.Stop()

	var got []string
	l.Post(func() {
		got = append(got, "outer")
		l.Post(func() { got = append(got, "inner") })
	})
	require.NoError(t, l.Flush(context.Background()))
	require.NoError(t, l.Flush(context.Background()))

	assert.Equal(t, []string{"outer", "inner"}, got)
}

func TestLoop_PanicIsRecovered(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoop(logging.New(logging.Config{Level: logging.LevelDebug, Output: &buf}))
	l.Start()
	defer l.Stop()

	ran := false
	l.Post(func() { panic("boom") })
	l.Post(func() { ran = true })
	require.NoError(t, l.Flush(context.Background()))

	assert.True(t, ran)
	assert.Contains(t, buf.String(), "task panic: boom")
}

func TestLoop_Stop(t *testing.T) {
	l := NewLoop(nil)
	l.Start()
	l.Stop()
	l.Stop()

	assert.False(t, l.Post(func() {}))
	assert.ErrorIs(t, l.Flush(context.Background()), ErrLoopStopped)

	select {
	case <-l.Done():
	case <-time.After(time.Second):
		t.Fatal("loop did not exit")
	}
}

func TestLoop_StopWithoutStart(t *testing.T) {
	l := NewLoop(nil)
	l.Stop()
	assert.False(t, l.Post(func() {}))
}

func TestLoop_FlushHonorsContext(t *testing.T) {
	l := NewLoop(nil)
	defer l.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	// Not started, so the barrier never runs.
	assert.ErrorIs(t, l.Flush(ctx), context.DeadlineExceeded)
}
