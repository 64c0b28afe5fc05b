package reconcile

// Item pairs a sidecar with the media file it describes.
type Item struct {
	SidecarPath string
	MediaPath   string
}

// Outcome is the terminal state of one item. Every item ends in exactly one.
type Outcome int

const (
	// OutcomeUpdated means the capture date was written into the media file.
	OutcomeUpdated Outcome = iota
	// OutcomeSkippedHasDate means the media file already carried a date.
	OutcomeSkippedHasDate
	// OutcomeSkippedMissingMedia means the sidecar's media file does not exist.
	OutcomeSkippedMissingMedia
	// OutcomeSkippedMissingTimestamp means the sidecar holds no usable epoch.
	OutcomeSkippedMissingTimestamp
	// OutcomeError means processing failed; the cause travels on the result.
	OutcomeError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeUpdated:
		return "updated"
	case OutcomeSkippedHasDate:
		return "skipped-has-date"
	case OutcomeSkippedMissingMedia:
		return "skipped-missing-media"
	case OutcomeSkippedMissingTimestamp:
		return "skipped-missing-timestamp"
	case OutcomeError:
		return "error"
	default:
		return "unknown"
	}
}

// Result is the terminal record for one item. Err is set only for
// OutcomeError.
type Result struct {
	Item    Item
	Outcome Outcome
	Err     error
}
