package inventory

import (
	"sort"
	"time"
)

// GroupKey identifies a product across its stock instances.
type GroupKey struct {
	Name          string
	VendorID      int64
	CatalogNumber string
}

// Group folds the stock instances of one product. It owns no identity
// beyond its derived key and is recomputed from scratch whenever the
// underlying item list is replaced.
type Group struct {
	Key        GroupKey
	VendorName string
	Items      []Item

	// Derived aggregate counts
	InstanceCount int
	TotalQuantity int
	ExpiredCount  int
	ExpiringCount int
	GoodCount     int
	LowStockCount int
}

// GroupItems partitions items into groups keyed by (name, vendor id,
// catalog number). Every item lands in exactly one group; the input is not
// mutated. Groups come back ordered by name, then vendor id, then catalog
// number; members keep their input order.
func GroupItems(items []Item, now time.Time) []Group {
	byKey := make(map[GroupKey]*Group)
	order := make([]GroupKey, 0)

	for _, it := range items {
		key := GroupKey{Name: it.Name, VendorID: it.VendorID, CatalogNumber: it.CatalogNumber}
		g, ok := byKey[key]
		if !ok {
			g = &Group{Key: key, VendorName: it.VendorName}
			byKey[key] = g
			order = append(order, key)
		}
		g.Items = append(g.Items, it)
		g.InstanceCount++
		g.TotalQuantity += it.Quantity
		switch it.ExpirationStatusAt(now) {
		case Expired:
			g.ExpiredCount++
		case ExpiringSoon:
			g.ExpiringCount++
		default:
			g.GoodCount++
		}
		if it.LowStock {
			g.LowStockCount++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		if order[i].Name != order[j].Name {
			return order[i].Name < order[j].Name
		}
		if order[i].VendorID != order[j].VendorID {
			return order[i].VendorID < order[j].VendorID
		}
		return order[i].CatalogNumber < order[j].CatalogNumber
	})

	out := make([]Group, 0, len(order))
	for _, key := range order {
		out = append(out, *byKey[key])
	}
	return out
}
