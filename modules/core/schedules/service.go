package schedules

import (
	"sort"
	"strings"
	"time"
)

// FilterOptions is the predicate set for deriving an event view.
type FilterOptions struct {
	// From/To restrict to events whose date falls inside [From, To].
	// Zero values leave the corresponding bound open.
	From time.Time
	To   time.Time

	// Statuses restricts to these statuses. Empty means everything except
	// cancelled, which only shows when explicitly widened.
	Statuses []Status

	// Search is a case-insensitive substring match on title and description.
	Search string

	// MineOnly keeps events created by OwnerID.
	MineOnly bool
	OwnerID  int64
}

// Filter derives an ordered view of events without mutating the input.
// Ordering is by date, then start time, then id.
func Filter(events []Event, opts FilterOptions) []Event {
	statusSet := make(map[Status]bool, len(opts.Statuses))
	for _, s := range opts.Statuses {
		statusSet[s] = true
	}
	search := strings.ToLower(strings.TrimSpace(opts.Search))

	out := make([]Event, 0, len(events))
	for _, e := range events {
		if len(statusSet) > 0 {
			if !statusSet[e.Status] {
				continue
			}
		} else if e.Status == StatusCancelled {
			continue
		}
		if opts.MineOnly && e.CreatedByID != opts.OwnerID {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(e.Title), search) &&
			!strings.Contains(strings.ToLower(e.Description), search) {
			continue
		}
		if !opts.From.IsZero() || !opts.To.IsZero() {
			day, err := e.Day()
			if err != nil {
				continue
			}
			if !opts.From.IsZero() && day.Before(opts.From) {
				continue
			}
			if !opts.To.IsZero() && day.After(opts.To) {
				continue
			}
		}
		out = append(out, e)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		si, sj := "", ""
		if out[i].StartTime != nil {
			si = *out[i].StartTime
		}
		if out[j].StartTime != nil {
			sj = *out[j].StartTime
		}
		if si != sj {
			return si < sj
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// UpcomingCount counts non-cancelled events on or after day.
func UpcomingCount(events []Event, day time.Time) int {
	n := 0
	for _, e := range events {
		if e.Status == StatusCancelled {
			continue
		}
		d, err := e.Day()
		if err != nil {
			continue
		}
		if !d.Before(day.Truncate(24 * time.Hour)) {
			n++
		}
	}
	return n
}
