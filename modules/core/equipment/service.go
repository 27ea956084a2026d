package equipment

import (
	"sort"
	"strings"
)

// FilterOptions is the predicate set for deriving an equipment view.
type FilterOptions struct {
	Search        string
	OnlyBookable  bool
	OnlyAvailable bool
}

// Filter derives an ordered view without mutating the input. Ordering is
// by name, id as tiebreak.
func Filter(items []Equipment, opts FilterOptions) []Equipment {
	search := strings.ToLower(strings.TrimSpace(opts.Search))

	out := make([]Equipment, 0, len(items))
	for _, e := range items {
		if opts.OnlyBookable && !e.Bookable {
			continue
		}
		if opts.OnlyAvailable && !e.Available() {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(e.Name), search) &&
			!strings.Contains(strings.ToLower(e.Location), search) {
			continue
		}
		out = append(out, e)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// InUseCount counts equipment currently in use.
func InUseCount(items []Equipment) int {
	n := 0
	for _, e := range items {
		if e.InUse {
			n++
		}
	}
	return n
}
