package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestRun_CallsBackOnWriteAndStops(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "strategy.csv")
	other := filepath.Join(dir, "other.csv")
	require.NoError(t, os.WriteFile(path, []byte("v1\n"), 0o644))

	w, err := New(path)
	require.NoError(t, err)

	calls := make(chan struct{}, 10)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, 20*time.Millisecond, func() { calls <- struct{}{} }) }()

	// Writes to other files in the directory are ignored.
	require.NoError(t, os.WriteFile(other, []byte("x\n"), 0o644))
	select {
	case <-calls:
		t.Fatalf("callback fired for an unrelated file")
	case <-time.After(150 * time.Millisecond):
	}

	// A burst of writes is coalesced.
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte("v2\n"), 0o644))
	}
	select {
	case <-calls:
	case <-time.After(3 * time.Second):
		t.Fatalf("no callback after writing the watched file")
	}

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatalf("Run did not return after cancel")
	}
}

func TestNew_MissingDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope", "strategy.csv"))
	require.Error(t, err)
}
