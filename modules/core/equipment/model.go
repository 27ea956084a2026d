package equipment

import (
	"fmt"
	"time"
)

// Equipment is a bookable instrument or shared resource.
// Invariant: InUse implies CurrentUserID is set; the backend enforces it,
// Normalize repairs records that violate it rather than rendering them.
type Equipment struct {
	ID              int64      `json:"id"`
	Name            string     `json:"name"`
	Location        string     `json:"location,omitempty"`
	Bookable        bool       `json:"is_bookable"`
	InUse           bool       `json:"is_in_use"`
	CurrentUserID   int64      `json:"current_user,omitempty"`
	CurrentUserName string     `json:"current_user_name,omitempty"`
	UsageStartedAt  *time.Time `json:"usage_started_at,omitempty"`
}

// Normalize clears an in-use flag with no user behind it so the invariant
// holds for everything downstream.
func (e *Equipment) Normalize() {
	if e.InUse && e.CurrentUserID == 0 {
		e.InUse = false
		e.UsageStartedAt = nil
	}
}

// UsageDuration renders how long the current usage has been running, for
// display next to the current user. Empty when idle.
func (e Equipment) UsageDuration(now time.Time) string {
	if !e.InUse || e.UsageStartedAt == nil {
		return ""
	}
	d := now.Sub(*e.UsageStartedAt)
	if d < 0 {
		d = 0
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}

// Available reports whether the equipment can be booked right now.
func (e Equipment) Available() bool {
	return e.Bookable && !e.InUse
}
