// Package media classifies files by extension so the pipeline knows which
// probe backend and which write tag set apply.
package media

import (
	"path/filepath"
	"strings"
)

// Kind groups media files by how their embedded dates are read and written.
type Kind int

const (
	// KindImage covers the containers the in-process EXIF reader understands.
	KindImage Kind = iota
	// KindVideo covers known video containers; writes include the
	// QuickTime-style create/track tags.
	KindVideo
	// KindOther covers everything else; probing goes through the external
	// tool and writes use the image tag set.
	KindOther
)

var exifImageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".tif":  {},
	".tiff": {},
}

var videoExtensions = map[string]struct{}{
	".mp4":  {},
	".mov":  {},
	".avi":  {},
	".mkv":  {},
	".m4v":  {},
	".3gp":  {},
	".webm": {},
	".flv":  {},
	".wmv":  {},
}

// Classify reports the media kind for path based on its extension.
// Matching is case-insensitive; content is never sniffed.
func Classify(path string) Kind {
	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := exifImageExtensions[ext]; ok {
		return KindImage
	}
	if _, ok := videoExtensions[ext]; ok {
		return KindVideo
	}
	return KindOther
}

// IsVideo reports whether path carries a known video container extension.
func IsVideo(path string) bool {
	return Classify(path) == KindVideo
}

func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindVideo:
		return "video"
	default:
		return "other"
	}
}
