package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"backdate/internal/logging"
	"backdate/internal/sidecar"
)

func newTestService(t *testing.T, root string, passCount *atomic.Int32) (*Service, context.Context, context.CancelFunc) {
	t.Helper()
	runFn := func(_ context.Context) error {
		passCount.Add(1)
		return nil
	}
	svc := NewService(root, runFn, nil, logging.NewNop())
	svc.SetDebounce(50 * time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return svc, ctx, cancel
}

func writeSidecarFile(t *testing.T, dir, base string) {
	t.Helper()
	path := filepath.Join(dir, base+sidecar.Suffix)
	if err := os.WriteFile(path, []byte(`{"photoTakenTime":{"timestamp":"1736899200"}}`), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestNewSidecarTriggersPass(t *testing.T) {
	root := t.TempDir()
	var passCount atomic.Int32
	svc, ctx, cancel := newTestService(t, root, &passCount)

	go svc.Start(ctx)
	time.Sleep(100 * time.Millisecond) // let the watcher initialize and finish the initial pass

	writeSidecarFile(t, root, "photo.jpg")

	time.Sleep(300 * time.Millisecond)
	cancel()
	time.Sleep(50 * time.Millisecond)

	if got := passCount.Load(); got != 2 {
		t.Errorf("expected initial pass plus one triggered pass, got %d", got)
	}
}

func TestBurstCoalesces(t *testing.T) {
	root := t.TempDir()
	var passCount atomic.Int32
	svc, ctx, cancel := newTestService(t, root, &passCount)

	go svc.Start(ctx)
	time.Sleep(100 * time.Millisecond)

	for i := 0; i < 5; i++ {
		writeSidecarFile(t, root, fmt.Sprintf("photo-%d.jpg", i))
	}

	time.Sleep(300 * time.Millisecond)
	cancel()
	time.Sleep(50 * time.Millisecond)

	if got := passCount.Load(); got != 2 {
		t.Errorf("expected one coalesced pass after the burst, got %d", got)
	}
}

func TestMediaWritesIgnored(t *testing.T) {
	root := t.TempDir()
	var passCount atomic.Int32
	svc, ctx, cancel := newTestService(t, root, &passCount)

	go svc.Start(ctx)
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(root, "clip.mp4"), []byte("media-bytes"), 0o644); err != nil {
		t.Fatal(err)
	}

	time.Sleep(300 * time.Millisecond)
	cancel()
	time.Sleep(50 * time.Millisecond)

	if got := passCount.Load(); got != 1 {
		t.Errorf("expected only the initial pass, got %d", got)
	}
}

func TestNewDirectoryIsWatched(t *testing.T) {
	root := t.TempDir()
	var passCount atomic.Int32
	svc, ctx, cancel := newTestService(t, root, &passCount)

	go svc.Start(ctx)
	time.Sleep(100 * time.Millisecond)

	album := filepath.Join(root, "album")
	if err := os.Mkdir(album, 0o755); err != nil {
		t.Fatal(err)
	}
	time.Sleep(300 * time.Millisecond) // the new directory settles into its own pass

	before := passCount.Load()
	writeSidecarFile(t, album, "photo.jpg")
	time.Sleep(300 * time.Millisecond)
	cancel()
	time.Sleep(50 * time.Millisecond)

	if got := passCount.Load(); got != before+1 {
		t.Errorf("expected a pass for the sidecar in the new directory, got %d after %d", got, before)
	}
}

func TestRecreatedDirectoryIsRewatched(t *testing.T) {
	root := t.TempDir()
	album := filepath.Join(root, "album")
	if err := os.Mkdir(album, 0o755); err != nil {
		t.Fatal(err)
	}

	var passCount atomic.Int32
	svc, ctx, cancel := newTestService(t, root, &passCount)

	go svc.Start(ctx)
	time.Sleep(100 * time.Millisecond)

	if err := os.Remove(album); err != nil {
		t.Fatal(err)
	}
	time.Sleep(100 * time.Millisecond)
	if err := os.Mkdir(album, 0o755); err != nil {
		t.Fatal(err)
	}
	time.Sleep(300 * time.Millisecond)

	before := passCount.Load()
	writeSidecarFile(t, album, "photo.jpg")
	time.Sleep(300 * time.Millisecond)
	cancel()
	time.Sleep(50 * time.Millisecond)

	if got := passCount.Load(); got != before+1 {
		t.Errorf("expected a pass for the sidecar in the recreated directory, got %d after %d", got, before)
	}
}

func TestFailedPassKeepsWatching(t *testing.T) {
	root := t.TempDir()
	var passCount atomic.Int32
	runFn := func(_ context.Context) error {
		passCount.Add(1)
		return errors.New("tree is locked")
	}
	svc := NewService(root, runFn, nil, logging.NewNop())
	svc.SetDebounce(50 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go svc.Start(ctx)
	time.Sleep(100 * time.Millisecond)

	writeSidecarFile(t, root, "first.jpg")
	time.Sleep(300 * time.Millisecond)
	writeSidecarFile(t, root, "second.jpg")
	time.Sleep(300 * time.Millisecond)
	cancel()
	time.Sleep(50 * time.Millisecond)

	if got := passCount.Load(); got != 3 {
		t.Errorf("expected failing passes to keep the watcher alive, got %d", got)
	}
}

func TestStartMissingRoot(t *testing.T) {
	var passCount atomic.Int32
	svc, ctx, _ := newTestService(t, filepath.Join(t.TempDir(), "gone"), &passCount)

	if err := svc.Start(ctx); err == nil {
		t.Fatal("expected an error for a missing root")
	}
	if got := passCount.Load(); got != 0 {
		t.Errorf("expected no passes, got %d", got)
	}
}

func TestContextCancellation(t *testing.T) {
	root := t.TempDir()
	var passCount atomic.Int32
	svc, ctx, cancel := newTestService(t, root, &passCount)

	done := make(chan struct{})
	go func() {
		svc.Start(ctx)
		close(done)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not return after context cancellation")
	}
}
