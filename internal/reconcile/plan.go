package reconcile

import (
	"fmt"

	"backdate/internal/sidecar"
)

// Plan is the reconciliation workload: pool-bound items plus results settled
// during planning (bad matches, duplicate targets).
type Plan struct {
	Items   []Item
	Settled []Result
}

// Size is the total number of sidecars the plan accounts for.
func (p Plan) Size() int {
	return len(p.Items) + len(p.Settled)
}

// NewPlan converts scanned sidecar paths into work items. Paths that do not
// match the naming pattern become error results immediately. When several
// sidecars resolve to the same media file, the first one in scan order keeps
// the item and each later one is settled as an error naming the winner; this
// is what guarantees at most one writer per media file.
func NewPlan(paths []string) Plan {
	plan := Plan{Items: make([]Item, 0, len(paths))}
	claimed := make(map[string]string, len(paths))
	for _, path := range paths {
		mediaPath, err := sidecar.MediaPath(path)
		if err != nil {
			plan.Settled = append(plan.Settled, Result{
				Item:    Item{SidecarPath: path},
				Outcome: OutcomeError,
				Err:     fmt.Errorf("%w: %w", ErrMatch, err),
			})
			continue
		}
		if winner, ok := claimed[mediaPath]; ok {
			plan.Settled = append(plan.Settled, Result{
				Item:    Item{SidecarPath: path, MediaPath: mediaPath},
				Outcome: OutcomeError,
				Err:     fmt.Errorf("%w: already claimed by %s", ErrDuplicateTarget, winner),
			})
			continue
		}
		claimed[mediaPath] = path
		plan.Items = append(plan.Items, Item{SidecarPath: path, MediaPath: mediaPath})
	}
	return plan
}
