package tasks

import "time"

// InstanceStatus is the state of one recurring-task occurrence.
type InstanceStatus string

const (
	InstancePending    InstanceStatus = "pending"
	InstanceInProgress InstanceStatus = "in_progress"
	InstanceCompleted  InstanceStatus = "completed"
)

// Instance is one scheduled occurrence of a recurring chore (media prep,
// autoclave run, animal checks). The holder is the assignee currently on
// the hook; CandidateIDs lists everyone eligible for an open swap.
type Instance struct {
	ID           int64          `json:"id"`
	Title        string         `json:"title"`
	Description  string         `json:"description,omitempty"`
	PeriodStart  string         `json:"period_start"` // "2006-01-02"
	PeriodEnd    string         `json:"period_end"`
	HolderID     int64          `json:"assignee"`
	HolderName   string         `json:"assignee_name,omitempty"`
	CandidateIDs []int64        `json:"candidates,omitempty"`
	Status       InstanceStatus `json:"status"`
}

// SwapKind distinguishes the two approval routes.
type SwapKind string

const (
	// SwapTask is a recurring-task reassignment; an admin resolves it.
	SwapTask SwapKind = "task-swap"
	// SwapMeeting is a meeting-presenter reassignment; the named target
	// user resolves it.
	SwapMeeting SwapKind = "meeting-swap"
)

// SwapStatus is the lifecycle of a swap request. Approve and reject are
// one-way terminal transitions.
type SwapStatus string

const (
	SwapPending  SwapStatus = "pending"
	SwapApproved SwapStatus = "approved"
	SwapRejected SwapStatus = "rejected"
)

// SwapRequest is a proposal to reassign a task instance or presentation
// slot. TargetID of 0 means an open swap to anyone eligible.
type SwapRequest struct {
	ID            int64      `json:"id"`
	Kind          SwapKind   `json:"request_type"`
	InstanceID    int64      `json:"instance,omitempty"`
	RequesterID   int64      `json:"requester"`
	RequesterName string     `json:"requester_name,omitempty"`
	TargetID      int64      `json:"target,omitempty"`
	TargetName    string     `json:"target_name,omitempty"`
	Reason        string     `json:"reason,omitempty"`
	Status        SwapStatus `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
}

// Open reports whether the swap targets anyone eligible rather than a
// named user.
func (s SwapRequest) Open() bool {
	return s.TargetID == 0
}

// Resolved reports whether a decision has been made.
func (s SwapRequest) Resolved() bool {
	return s.Status != SwapPending
}

// CanResolve reports whether the given user may decide this swap: admins
// for task swaps, the named target for meeting swaps. Already resolved
// requests can never be decided again.
func (s SwapRequest) CanResolve(userID int64, isAdmin bool) bool {
	if s.Resolved() {
		return false
	}
	switch s.Kind {
	case SwapTask:
		return isAdmin
	case SwapMeeting:
		return s.TargetID != 0 && s.TargetID == userID
	}
	return false
}
