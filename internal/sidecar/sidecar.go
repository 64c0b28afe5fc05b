package sidecar

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Suffix is the exact sidecar naming pattern appended to a media file name.
// Matching is case-sensitive; the exporter writes it literally.
const Suffix = ".supplemental-metadata.json"

// ErrNoMatch reports that a path does not follow the sidecar naming pattern.
var ErrNoMatch = errors.New("not a sidecar path")

// IsSidecar reports whether path names a sidecar for some media file.
func IsSidecar(path string) bool {
	_, err := MediaPath(path)
	return err == nil
}

// MediaPath derives the media file path a sidecar describes by stripping the
// metadata suffix. The transformation is purely syntactic; nothing is checked
// against the filesystem. Paths without the suffix, or with no media name
// left once it is stripped, return ErrNoMatch.
func MediaPath(path string) (string, error) {
	rest, ok := strings.CutSuffix(path, Suffix)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNoMatch, path)
	}
	if rest == "" || strings.HasSuffix(rest, string(filepath.Separator)) {
		return "", fmt.Errorf("%w: no media name before suffix: %s", ErrNoMatch, path)
	}
	return rest, nil
}
