package tasks

import (
	"sort"
	"strings"
)

// FilterOptions is the predicate set for deriving a task-instance view.
type FilterOptions struct {
	Statuses []InstanceStatus
	Search   string
	MineOnly bool
	OwnerID  int64
}

// FilterInstances derives an ordered view without mutating the input.
// Ordering is by period start, id as tiebreak.
func FilterInstances(items []Instance, opts FilterOptions) []Instance {
	statusSet := make(map[InstanceStatus]bool, len(opts.Statuses))
	for _, s := range opts.Statuses {
		statusSet[s] = true
	}
	search := strings.ToLower(strings.TrimSpace(opts.Search))

	out := make([]Instance, 0, len(items))
	for _, in := range items {
		if len(statusSet) > 0 && !statusSet[in.Status] {
			continue
		}
		if opts.MineOnly && in.HolderID != opts.OwnerID {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(in.Title), search) &&
			!strings.Contains(strings.ToLower(in.Description), search) {
			continue
		}
		out = append(out, in)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].PeriodStart != out[j].PeriodStart {
			return out[i].PeriodStart < out[j].PeriodStart
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// PendingSwaps returns the unresolved swap requests, oldest first, so the
// approval queue is stable while decisions are made.
func PendingSwaps(swaps []SwapRequest) []SwapRequest {
	out := make([]SwapRequest, 0, len(swaps))
	for _, s := range swaps {
		if !s.Resolved() {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// ResolvableBy narrows swaps to those the user may decide.
func ResolvableBy(swaps []SwapRequest, userID int64, isAdmin bool) []SwapRequest {
	out := make([]SwapRequest, 0, len(swaps))
	for _, s := range swaps {
		if s.CanResolve(userID, isAdmin) {
			out = append(out, s)
		}
	}
	return out
}

// SwapByID finds a swap request, nil when absent.
func SwapByID(swaps []SwapRequest, id int64) *SwapRequest {
	for i := range swaps {
		if swaps[i].ID == id {
			return &swaps[i]
		}
	}
	return nil
}
