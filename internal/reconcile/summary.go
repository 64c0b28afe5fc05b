package reconcile

import "sync/atomic"

// Summary aggregates outcome counters. All increments are atomic, so workers
// record results without coordination.
type Summary struct {
	found            atomic.Int64
	updated          atomic.Int64
	hasDate          atomic.Int64
	missingMedia     atomic.Int64
	missingTimestamp atomic.Int64
	failed           atomic.Int64
}

func (s *Summary) addFound(n int64) {
	s.found.Add(n)
}

func (s *Summary) record(o Outcome) {
	switch o {
	case OutcomeUpdated:
		s.updated.Add(1)
	case OutcomeSkippedHasDate:
		s.hasDate.Add(1)
	case OutcomeSkippedMissingMedia:
		s.missingMedia.Add(1)
	case OutcomeSkippedMissingTimestamp:
		s.missingTimestamp.Add(1)
	case OutcomeError:
		s.failed.Add(1)
	}
}

// Counts is an immutable snapshot of a summary. For a completed run the
// categories sum to Found.
type Counts struct {
	Found                   int64
	Updated                 int64
	SkippedHasDate          int64
	SkippedMissingMedia     int64
	SkippedMissingTimestamp int64
	Errors                  int64
}

// Counts snapshots the current counter values.
func (s *Summary) Counts() Counts {
	return Counts{
		Found:                   s.found.Load(),
		Updated:                 s.updated.Load(),
		SkippedHasDate:          s.hasDate.Load(),
		SkippedMissingMedia:     s.missingMedia.Load(),
		SkippedMissingTimestamp: s.missingTimestamp.Load(),
		Errors:                  s.failed.Load(),
	}
}

// Skipped is the total across all skip categories.
func (c Counts) Skipped() int64 {
	return c.SkippedHasDate + c.SkippedMissingMedia + c.SkippedMissingTimestamp
}
