package reconcile_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"backdate/internal/reconcile"
	"backdate/internal/sidecar"
)

// fakeProcessor settles each item by path prefix: "err-" fails, "skip-"
// reports an existing date, everything else updates.
type fakeProcessor struct {
	mu   sync.Mutex
	seen []string
}

func (f *fakeProcessor) Process(ctx context.Context, item reconcile.Item) reconcile.Result {
	f.mu.Lock()
	f.seen = append(f.seen, item.SidecarPath)
	f.mu.Unlock()
	base := filepath.Base(item.SidecarPath)
	switch {
	case strings.HasPrefix(base, "err-"):
		return reconcile.Result{Item: item, Outcome: reconcile.OutcomeError, Err: fmt.Errorf("%w: boom", reconcile.ErrWrite)}
	case strings.HasPrefix(base, "skip-"):
		return reconcile.Result{Item: item, Outcome: reconcile.OutcomeSkippedHasDate}
	default:
		return reconcile.Result{Item: item, Outcome: reconcile.OutcomeUpdated}
	}
}

func planOf(names ...string) reconcile.Plan {
	paths := make([]string, 0, len(names))
	for _, n := range names {
		paths = append(paths, n+sidecar.Suffix)
	}
	return reconcile.NewPlan(paths)
}

func TestPoolRun_Counts(t *testing.T) {
	plan := planOf("a.jpg", "skip-b.jpg", "err-c.jpg", "d.mp4", "skip-e.png")
	proc := &fakeProcessor{}
	var results []reconcile.Result
	pool := &reconcile.Pool{Workers: 3, Processor: proc, OnResult: func(r reconcile.Result) {
		results = append(results, r)
	}}

	counts, err := pool.Run(context.Background(), plan)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if counts.Found != 5 {
		t.Fatalf("found = %d, want 5", counts.Found)
	}
	if counts.Updated != 2 || counts.SkippedHasDate != 2 || counts.Errors != 1 {
		t.Fatalf("unexpected counts: %+v", counts)
	}
	if got := counts.Updated + counts.Skipped() + counts.Errors; got != counts.Found {
		t.Fatalf("categories sum to %d, want %d", got, counts.Found)
	}
	if len(results) != 5 {
		t.Fatalf("OnResult saw %d results, want 5", len(results))
	}
	if len(proc.seen) != 5 {
		t.Fatalf("processor saw %d items, want 5", len(proc.seen))
	}
}

func TestPoolRun_WorkerCountEquivalence(t *testing.T) {
	names := make([]string, 0, 40)
	for i := 0; i < 40; i++ {
		switch i % 4 {
		case 0:
			names = append(names, fmt.Sprintf("err-%02d.jpg", i))
		case 1:
			names = append(names, fmt.Sprintf("skip-%02d.jpg", i))
		default:
			names = append(names, fmt.Sprintf("ok-%02d.jpg", i))
		}
	}

	var want reconcile.Counts
	for idx, workers := range []int{1, 4, 32} {
		pool := &reconcile.Pool{Workers: workers, Processor: &fakeProcessor{}}
		counts, err := pool.Run(context.Background(), planOf(names...))
		if err != nil {
			t.Fatalf("Run(workers=%d) returned error: %v", workers, err)
		}
		if idx == 0 {
			want = counts
			continue
		}
		if counts != want {
			t.Fatalf("counts with %d workers = %+v, want %+v", workers, counts, want)
		}
	}
}

func TestPoolRun_SettledDeliveredFirst(t *testing.T) {
	plan := reconcile.NewPlan([]string{
		"not-a-sidecar.json",
		"a.jpg" + sidecar.Suffix,
	})
	var order []reconcile.Outcome
	pool := &reconcile.Pool{Workers: 1, Processor: &fakeProcessor{}, OnResult: func(r reconcile.Result) {
		order = append(order, r.Outcome)
	}}

	counts, err := pool.Run(context.Background(), plan)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if counts.Found != 2 || counts.Errors != 1 || counts.Updated != 1 {
		t.Fatalf("unexpected counts: %+v", counts)
	}
	if len(order) != 2 || order[0] != reconcile.OutcomeError {
		t.Fatalf("expected settled error first, got %v", order)
	}
}

func TestPoolRun_EmptyPlan(t *testing.T) {
	pool := &reconcile.Pool{Workers: 4, Processor: &fakeProcessor{}}
	counts, err := pool.Run(context.Background(), reconcile.Plan{})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if counts != (reconcile.Counts{}) {
		t.Fatalf("expected zero counts, got %+v", counts)
	}
}

func TestPoolRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pool := &reconcile.Pool{Workers: 2, Processor: &fakeProcessor{}}
	_, err := pool.Run(ctx, planOf("a.jpg", "b.jpg", "c.jpg"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

// statefulStore backs both the prober and the writer: writing a date makes
// later probes of the same path report one.
type statefulStore struct {
	mu    sync.Mutex
	dated map[string]bool
}

func (s *statefulStore) HasCaptureDate(ctx context.Context, path string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dated[path], nil
}

func (s *statefulStore) WriteDate(ctx context.Context, path string, epoch int64, video bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dated[path] = true
	return nil
}

func TestPoolRun_SecondPassIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	paths := make([]string, 0, 6)
	for i := 0; i < 6; i++ {
		mediaPath := filepath.Join(dir, fmt.Sprintf("img-%d.jpg", i))
		if err := os.WriteFile(mediaPath, []byte("media"), 0o644); err != nil {
			t.Fatal(err)
		}
		sidecarPath := mediaPath + sidecar.Suffix
		if err := os.WriteFile(sidecarPath, []byte(`{"photoTakenTime":{"timestamp":"1482184800"}}`), 0o644); err != nil {
			t.Fatal(err)
		}
		paths = append(paths, sidecarPath)
	}

	store := &statefulStore{dated: map[string]bool{}}
	worker := &reconcile.Worker{Prober: store, Writer: store}
	pool := &reconcile.Pool{Workers: 3, Processor: worker}

	first, err := pool.Run(context.Background(), reconcile.NewPlan(paths))
	if err != nil {
		t.Fatalf("first run returned error: %v", err)
	}
	if first.Updated != 6 || first.Errors != 0 {
		t.Fatalf("first run counts: %+v", first)
	}

	second, err := pool.Run(context.Background(), reconcile.NewPlan(paths))
	if err != nil {
		t.Fatalf("second run returned error: %v", err)
	}
	if second.Updated != 0 {
		t.Fatalf("second run updated %d files, want 0", second.Updated)
	}
	if second.SkippedHasDate != 6 {
		t.Fatalf("second run skipped-has-date = %d, want 6", second.SkippedHasDate)
	}
}
