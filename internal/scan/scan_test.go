package scan_test

import (
	"os"
	"path/filepath"
	"testing"

	"backdate/internal/scan"
	"backdate/internal/sidecar"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestCollect(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "a.jpg"))
	touch(t, filepath.Join(root, "a.jpg"+sidecar.Suffix))
	touch(t, filepath.Join(root, "album", "b.mp4"))
	touch(t, filepath.Join(root, "album", "b.mp4"+sidecar.Suffix))
	touch(t, filepath.Join(root, "album", "notes.txt"))
	touch(t, filepath.Join(root, "album-metadata.json"))
	touch(t, filepath.Join(root, ".supplemental-metadata.json"))

	got, err := scan.Collect(root, nil)
	if err != nil {
		t.Fatalf("Collect returned error: %v", err)
	}
	want := []string{
		filepath.Join(root, "a.jpg"+sidecar.Suffix),
		filepath.Join(root, "album", "b.mp4"+sidecar.Suffix),
	}
	if len(got) != len(want) {
		t.Fatalf("collected %d paths, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("path[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCollect_DeterministicOrder(t *testing.T) {
	root := t.TempDir()
	names := []string{"c.jpg", "a.jpg", "b.jpg"}
	for _, n := range names {
		touch(t, filepath.Join(root, n+sidecar.Suffix))
	}

	first, err := scan.Collect(root, nil)
	if err != nil {
		t.Fatal(err)
	}
	second, err := scan.Collect(root, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != 3 || len(second) != 3 {
		t.Fatalf("expected 3 paths per scan, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("scan order not stable: %v vs %v", first, second)
		}
	}
	// WalkDir yields lexical order.
	if filepath.Base(first[0]) != "a.jpg"+sidecar.Suffix {
		t.Fatalf("expected lexical order, got %v", first)
	}
}

func TestCollect_MissingRoot(t *testing.T) {
	if _, err := scan.Collect(filepath.Join(t.TempDir(), "absent"), nil); err == nil {
		t.Fatal("expected error for missing root")
	}
}

func TestCollect_SymlinksNotFollowed(t *testing.T) {
	outside := t.TempDir()
	touch(t, filepath.Join(outside, "x.jpg"+sidecar.Suffix))

	root := t.TempDir()
	if err := os.Symlink(outside, filepath.Join(root, "linked")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	got, err := scan.Collect(root, nil)
	if err != nil {
		t.Fatalf("Collect returned error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected symlinked tree to be ignored, got %v", got)
	}
}

func TestCollect_EmptyTree(t *testing.T) {
	got, err := scan.Collect(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("Collect returned error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no paths, got %v", got)
	}
}
