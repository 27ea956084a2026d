package inventory

import "time"

// ExpirationStatus is derived client-side from the expiration date delta.
type ExpirationStatus string

const (
	Expired      ExpirationStatus = "EXPIRED"
	ExpiringSoon ExpirationStatus = "EXPIRING_SOON"
	Good         ExpirationStatus = "GOOD"
)

// ExpiringSoonWindow is how far ahead an expiration date counts as "soon".
const ExpiringSoonWindow = 30 * 24 * time.Hour

// Item is one physical stock instance (a bottle, a box, a vial lot).
type Item struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	VendorID       int64  `json:"vendor"`
	VendorName     string `json:"vendor_name,omitempty"`
	CatalogNumber  string `json:"catalog_number,omitempty"`
	Quantity       int    `json:"quantity"`
	Location       string `json:"location,omitempty"`
	ExpirationDate string `json:"expiration_date,omitempty"` // "2006-01-02"
	LowStock       bool   `json:"is_low_stock"`
}

// ExpirationStatusAt derives the expiration status relative to now. Items
// without an expiration date are GOOD.
func (i Item) ExpirationStatusAt(now time.Time) ExpirationStatus {
	if i.ExpirationDate == "" {
		return Good
	}
	exp, err := time.Parse("2006-01-02", i.ExpirationDate)
	if err != nil {
		return Good
	}
	today := now.Truncate(24 * time.Hour)
	if exp.Before(today) {
		return Expired
	}
	if exp.Sub(today) <= ExpiringSoonWindow {
		return ExpiringSoon
	}
	return Good
}
