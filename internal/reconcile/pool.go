package reconcile

import (
	"context"
	"runtime"
	"sync"
)

// Processor turns one item into a terminal result.
type Processor interface {
	Process(ctx context.Context, item Item) Result
}

// Pool fans plan items out to a fixed set of goroutines sharing one
// Processor. Items are handed over a channel, so completion order is
// unrelated to plan order.
type Pool struct {
	// Workers is the goroutine count; zero or less means one per CPU.
	Workers int
	// Processor handles each item. Required.
	Processor Processor
	// OnResult, when set, observes every terminal result. It is invoked from
	// a single goroutine, so observers need no locking of their own.
	OnResult func(Result)
}

// Run processes the whole plan and returns the aggregated counters. Settled
// results are delivered first, then the pool drains the items. Run returns
// once every item is terminal; the error is non-nil only when the context
// ended before the plan was fully processed.
func (p *Pool) Run(ctx context.Context, plan Plan) (Counts, error) {
	summary := &Summary{}
	summary.addFound(int64(plan.Size()))

	for _, res := range plan.Settled {
		summary.record(res.Outcome)
		if p.OnResult != nil {
			p.OnResult(res)
		}
	}

	workers := p.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	jobs := make(chan Item)
	results := make(chan Result, len(plan.Items))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range jobs {
				results <- p.Processor.Process(ctx, item)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, item := range plan.Items {
			select {
			case jobs <- item:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	for res := range results {
		summary.record(res.Outcome)
		if p.OnResult != nil {
			p.OnResult(res)
		}
	}
	return summary.Counts(), ctx.Err()
}
