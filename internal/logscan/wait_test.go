package logscan

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWait_FindsLineAppendedLater(t *testing.T) {
	path := filepath.Join(t.TempDir(), "e2mgr.log")
	require.NoError(t, os.WriteFile(path, []byte("starting\n"), 0644))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- Wait(ctx, path, LineMatcher{"connected"})
	}()

	time.Sleep(100 * time.Millisecond)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	require.NoError(t, err)
	_, err = f.WriteString("RAN test1 connected\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	assert.NoError(t, <-done)
}

func TestWait_FileCreatedLater(t *testing.T) {
	path := filepath.Join(t.TempDir(), "monitor.log")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- Wait(ctx, path, LineMatcher{"PUBLISH"})
	}()

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte(`"PUBLISH" "ch" "test1_ADDED"`+"\n"), 0644))

	assert.NoError(t, <-done)
}

func TestWait_TimesOut(t *testing.T) {
	path := filepath.Join(t.TempDir(), "e2mgr.log")
	require.NoError(t, os.WriteFile(path, []byte("nothing here\n"), 0644))

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	err := Wait(ctx, path, LineMatcher{"never"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestWait_MissingDirectory(t *testing.T) {
	err := Wait(context.Background(), filepath.Join(t.TempDir(), "nope", "e2mgr.log"), LineMatcher{"x"})
	assert.Error(t, err)
}
