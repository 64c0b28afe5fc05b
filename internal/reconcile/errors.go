package reconcile

import "errors"

var (
	// ErrMatch tags sidecar paths that do not follow the naming pattern.
	ErrMatch = errors.New("sidecar match error")
	// ErrDuplicateTarget tags sidecars whose media file is already claimed
	// by an earlier sidecar in the same run.
	ErrDuplicateTarget = errors.New("duplicate media target")
	// ErrMediaAccess tags stat failures other than plain non-existence.
	ErrMediaAccess = errors.New("media access error")
	// ErrProbe tags failed embedded-date probes.
	ErrProbe = errors.New("probe error")
	// ErrSidecarParse tags unreadable or malformed sidecar documents.
	ErrSidecarParse = errors.New("sidecar parse error")
	// ErrWrite tags failed date writes.
	ErrWrite = errors.New("write error")
)

// Class maps an item error to the short label recorded in run history.
func Class(err error) string {
	switch {
	case errors.Is(err, ErrMatch):
		return "match"
	case errors.Is(err, ErrDuplicateTarget):
		return "duplicate-target"
	case errors.Is(err, ErrMediaAccess):
		return "media-access"
	case errors.Is(err, ErrProbe):
		return "probe"
	case errors.Is(err, ErrSidecarParse):
		return "sidecar-parse"
	case errors.Is(err, ErrWrite):
		return "write"
	default:
		return "unknown"
	}
}
