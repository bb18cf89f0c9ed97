package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func writeScene(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
}

func newTestWatcher(t *testing.T, path string, logger *zap.Logger) (*Watcher, chan *Scene) {
	t.Helper()
	changes := make(chan *Scene, 8)
	w, err := NewWatcher(path, func(s *Scene) { changes <- s }, logger)
	require.NoError(t, err)
	w.SetDebounce(20 * time.Millisecond)
	return w, changes
}

// waitFPS waits for a reload carrying fps. A save can surface as a
// truncate then a write, so earlier reloads are skipped.
func waitFPS(t *testing.T, changes <-chan *Scene, fps float64) {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case s := <-changes:
			if s.FPS == fps {
				return
			}
		case <-timeout:
			t.Fatalf("timed out waiting for reload with fps %v", fps)
		}
	}
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "scene.yaml")
	writeScene(t, path, "fps: 10\n")

	w, changes := newTestWatcher(t, path, nil)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	writeScene(t, path, "fps: 42\n")
	waitFPS(t, changes, 42)
}

func TestWatcherIgnoresSiblingFiles(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "scene.yaml")
	writeScene(t, path, "fps: 10\n")

	w, changes := newTestWatcher(t, path, nil)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	writeScene(t, filepath.Join(dir, "other.yaml"), "fps: 1\n")
	select {
	case s := <-changes:
		t.Fatalf("unexpected reload: %+v", s)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherSkipsInvalidScene(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "scene.yaml")
	writeScene(t, path, "fps: 10\n")

	core, logs := observer.New(zap.DebugLevel)
	w, changes := newTestWatcher(t, path, zap.New(core))
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	writeScene(t, path, "behaviors: [{type: spin}]\n")
	require.Eventually(t, func() bool {
		return logs.FilterMessage("scene reload failed, keeping previous scene").Len() > 0
	}, 5*time.Second, 10*time.Millisecond)

	writeScene(t, path, "fps: 5\n")
	waitFPS(t, changes, 5)
}

func TestWatcherRunStopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "scene.yaml")
	writeScene(t, path, "fps: 10\n")
	w, _ := newTestWatcher(t, path, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	require.ErrorIs(t, w.Start(context.Background()), errWatcherClosed)
}

func TestWatcherStopWithoutStart(t *testing.T) {
	defer goleak.VerifyNone(t)

	w, _ := newTestWatcher(t, filepath.Join(t.TempDir(), "scene.yaml"), nil)
	w.Stop()
	w.Stop()
}
