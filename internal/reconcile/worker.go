package reconcile

import (
	"context"
	"errors"
	"fmt"
	"os"

	"backdate/internal/media"
	"backdate/internal/probe"
	"backdate/internal/sidecar"
)

// Writer stamps a capture date into a media file.
type Writer interface {
	WriteDate(ctx context.Context, path string, epoch int64, video bool) error
}

// NopWriter satisfies Writer without touching anything. Dry runs substitute
// it so the pipeline reports what it would update.
type NopWriter struct{}

// WriteDate implements Writer.
func (NopWriter) WriteDate(ctx context.Context, path string, epoch int64, video bool) error {
	return nil
}

// Worker processes one item at a time. It holds no per-item state, so a
// single Worker is shared safely by every goroutine in the pool.
type Worker struct {
	Prober probe.Prober
	Writer Writer
}

// Process runs one item through the pipeline: media stat, embedded-date
// probe, sidecar parse, date write. Each step either settles the item or
// hands it to the next; the write is the only mutation and the final step.
func (w *Worker) Process(ctx context.Context, item Item) Result {
	if _, err := os.Stat(item.MediaPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Result{Item: item, Outcome: OutcomeSkippedMissingMedia}
		}
		return fail(item, ErrMediaAccess, err)
	}

	hasDate, err := w.Prober.HasCaptureDate(ctx, item.MediaPath)
	if err != nil {
		return fail(item, ErrProbe, err)
	}
	if hasDate {
		return Result{Item: item, Outcome: OutcomeSkippedHasDate}
	}

	rec, err := sidecar.ReadFile(item.SidecarPath)
	if err != nil {
		return fail(item, ErrSidecarParse, err)
	}
	epoch, ok := rec.Timestamp()
	if !ok {
		return Result{Item: item, Outcome: OutcomeSkippedMissingTimestamp}
	}

	if err := w.Writer.WriteDate(ctx, item.MediaPath, epoch, media.IsVideo(item.MediaPath)); err != nil {
		return fail(item, ErrWrite, err)
	}
	return Result{Item: item, Outcome: OutcomeUpdated}
}

func fail(item Item, marker, err error) Result {
	return Result{Item: item, Outcome: OutcomeError, Err: fmt.Errorf("%w: %w", marker, err)}
}
