package requests

import (
	"sort"
	"strings"
)

// FilterOptions is the predicate set for deriving a request view.
type FilterOptions struct {
	// Statuses restricts the view to these statuses. Empty means every
	// status except REJECTED, which only shows when asked for explicitly.
	Statuses []Status

	// Search is a case-insensitive substring match on item and vendor name.
	Search string

	// MineOnly keeps requests created by OwnerID.
	MineOnly bool
	OwnerID  int64
}

// Filter derives an ordered view of reqs without mutating the input.
// Ordering is newest first, id as tiebreak.
func Filter(reqs []Request, opts FilterOptions) []Request {
	statusSet := make(map[Status]bool, len(opts.Statuses))
	for _, s := range opts.Statuses {
		statusSet[s] = true
	}
	search := strings.ToLower(strings.TrimSpace(opts.Search))

	out := make([]Request, 0, len(reqs))
	for _, r := range reqs {
		if len(statusSet) > 0 {
			if !statusSet[r.Status] {
				continue
			}
		} else if r.Status == StatusRejected {
			continue
		}
		if opts.MineOnly && r.RequestedByID != opts.OwnerID {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(r.ItemName), search) &&
			!strings.Contains(strings.ToLower(r.VendorName), search) {
			continue
		}
		out = append(out, r)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

// CountByStatus computes tab badge counts from the full collection.
func CountByStatus(reqs []Request) map[Status]int {
	counts := make(map[Status]int, 5)
	for _, r := range reqs {
		counts[r.Status]++
	}
	return counts
}

// EligibleIDs narrows a batch selection to the ids whose current status
// permits the action. Ids not present in the collection are dropped. The
// batch endpoint only ever receives ids the action is valid for.
func EligibleIDs(reqs []Request, selected []int64, action Action) []int64 {
	required, ok := RequiredStatus(action)
	if !ok {
		return nil
	}

	byID := make(map[int64]Status, len(reqs))
	for _, r := range reqs {
		byID[r.ID] = r.Status
	}

	out := make([]int64, 0, len(selected))
	for _, id := range selected {
		if status, found := byID[id]; found && status == required {
			out = append(out, id)
		}
	}
	return out
}

// ByID finds a request in the collection. The result is a copy, so callers
// never hold a pointer into the backing slice.
func ByID(reqs []Request, id int64) (Request, bool) {
	for i := range reqs {
		if reqs[i].ID == id {
			return reqs[i], true
		}
	}
	return Request{}, false
}
