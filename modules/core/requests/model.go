package requests

import "time"

// Status is the purchase-request workflow state. The workflow is strictly
// forward-moving: NEW -> APPROVED -> ORDERED -> RECEIVED, with REJECTED as a
// terminal side-exit from NEW.
type Status string

const (
	StatusNew      Status = "NEW"
	StatusApproved Status = "APPROVED"
	StatusOrdered  Status = "ORDERED"
	StatusReceived Status = "RECEIVED"
	StatusRejected Status = "REJECTED"
)

// Valid reports whether s is a known workflow status.
func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusApproved, StatusOrdered, StatusReceived, StatusRejected:
		return true
	}
	return false
}

// Terminal reports whether no further action applies to s.
func (s Status) Terminal() bool {
	return s == StatusRejected
}

// Action is a workflow action on a purchase request. Every action has a
// batch variant operating on a set of ids atomically server-side.
type Action string

const (
	ActionApprove      Action = "approve"
	ActionReject       Action = "reject"
	ActionPlaceOrder   Action = "place_order"
	ActionMarkReceived Action = "mark_received"
	ActionReorder      Action = "reorder"
)

// RequiredStatus returns the status a request must be in for the action to
// apply. ok is false for unknown actions.
func RequiredStatus(a Action) (Status, bool) {
	switch a {
	case ActionApprove, ActionReject:
		return StatusNew, true
	case ActionPlaceOrder:
		return StatusApproved, true
	case ActionMarkReceived:
		return StatusOrdered, true
	case ActionReorder:
		return StatusReceived, true
	}
	return "", false
}

// NextStatus returns the status a request lands in after the action.
// Reorder does not transition the source request; it creates a NEW clone
// server-side, so its next status refers to the clone.
func NextStatus(a Action) (Status, bool) {
	switch a {
	case ActionApprove:
		return StatusApproved, true
	case ActionReject:
		return StatusRejected, true
	case ActionPlaceOrder:
		return StatusOrdered, true
	case ActionMarkReceived:
		return StatusReceived, true
	case ActionReorder:
		return StatusNew, true
	}
	return "", false
}

// CanApply reports whether the action is valid for a request currently in
// status s.
func CanApply(a Action, s Status) bool {
	required, ok := RequiredStatus(a)
	return ok && required == s
}

// Request is a purchase request as served by the backend.
type Request struct {
	ID              int64     `json:"id"`
	ItemName        string    `json:"item_name"`
	VendorID        int64     `json:"vendor"`
	VendorName      string    `json:"vendor_name,omitempty"`
	CatalogNumber   string    `json:"catalog_number,omitempty"`
	UnitPrice       float64   `json:"unit_price"`
	Quantity        int       `json:"quantity"`
	Status          Status    `json:"status"`
	RequestedByID   int64     `json:"requested_by"`
	RequestedByName string    `json:"requested_by_name,omitempty"`
	FundID          int64     `json:"fund,omitempty"`
	Location        string    `json:"location,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TotalPrice returns unit price times quantity.
func (r Request) TotalPrice() float64 {
	return r.UnitPrice * float64(r.Quantity)
}

// HistoryEntry is one workflow transition of a request.
type HistoryEntry struct {
	ID        int64     `json:"id"`
	RequestID int64     `json:"request"`
	Action    string    `json:"action"`
	Actor     string    `json:"actor_name"`
	Note      string    `json:"note,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
