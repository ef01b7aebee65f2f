package cmd

import (
	"bytes"
	"context"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// syncBuffer is a bytes.Buffer safe for one writer and one reader goroutine.
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

func TestWatchFile_RerankOnChange(t *testing.T) {
	path := writeInput(t, t.TempDir(), "web.txt", sitesInput)

	s := mustSession(t, defaultConfig())
	defer s.close(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var out syncBuffer
	done := make(chan error, 1)
	go func() {
		done <- watchFile(ctx, s, &out, path, 20*time.Millisecond)
	}()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "maps.com 0.30")
	}, 2*time.Second, 10*time.Millisecond, "initial ranking not printed")

	require.NoError(t, os.WriteFile(path, []byte("1 1\nx.org y.org\n"), 0o644))

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "x.org 0.50\ny.org 0.50\n")
	}, 2*time.Second, 10*time.Millisecond, "change not re-ranked")

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watchFile did not stop after cancel")
	}
}

func TestWatchFile_SurvivesBadInput(t *testing.T) {
	path := writeInput(t, t.TempDir(), "web.txt", "not a header\n")

	s := mustSession(t, defaultConfig())
	defer s.close(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var out syncBuffer
	done := make(chan error, 1)
	go func() {
		done <- watchFile(ctx, s, &out, path, 20*time.Millisecond)
	}()

	// The watcher may not be running yet, so keep saving until it notices.
	require.Eventually(t, func() bool {
		if err := os.WriteFile(path, []byte("1 1\na b\n"), 0o644); err != nil {
			return false
		}
		return strings.Contains(out.String(), "a 0.50\nb 0.50\n")
	}, 3*time.Second, 50*time.Millisecond, "fixed input not ranked")

	cancel()
	require.NoError(t, <-done)
}
