package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"backdate/internal/sidecar"
)

// WriteMedia creates a small stand-in media file at path, creating parent
// directories as needed.
func WriteMedia(t testing.TB, path string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte("media-bytes"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteSidecar writes a Takeout sidecar for the media file at mediaPath
// carrying the given epoch timestamp and returns the sidecar path.
func WriteSidecar(t testing.TB, mediaPath string, epoch int64) string {
	t.Helper()

	path := mediaPath + sidecar.Suffix
	payload := fmt.Sprintf(`{"photoTakenTime":{"timestamp":"%d"}}`, epoch)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// WriteSidecarPayload writes raw sidecar JSON next to mediaPath for tests
// exercising malformed or unusual documents.
func WriteSidecarPayload(t testing.TB, mediaPath, payload string) string {
	t.Helper()

	path := mediaPath + sidecar.Suffix
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
