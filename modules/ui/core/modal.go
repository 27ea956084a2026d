package core

import (
	"sync"

	"github.com/qiyaolin/labops/modules/core/tasks"
)

// ApprovalFlow tracks the single swap approval modal. At most one swap
// can be pending at a time, and a decision in flight blocks both a second
// submit and a close-and-reopen race.
type ApprovalFlow struct {
	mu       sync.Mutex
	open     bool
	kind     tasks.SwapKind
	id       int64
	detail   *tasks.SwapRequest
	inFlight bool
}

// NewApprovalFlow creates a closed flow
func NewApprovalFlow() *ApprovalFlow {
	return &ApprovalFlow{}
}

// Open marks a swap as pending. Returns false when another swap is
// already open; the caller must close it first.
func (f *ApprovalFlow) Open(kind tasks.SwapKind, id int64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.open {
		return false
	}
	f.open = true
	f.kind = kind
	f.id = id
	f.detail = nil
	return true
}

// SetDetail installs the fetched swap detail. Ignored when the modal was
// closed, or reopened on a different swap, while the fetch ran.
func (f *ApprovalFlow) SetDetail(detail *tasks.SwapRequest) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.open || detail == nil || detail.ID != f.id || detail.Kind != f.kind {
		return false
	}
	f.detail = detail
	return true
}

// Begin claims the in-flight slot for a decision. Returns false when the
// modal is closed, the detail has not arrived, or a decision is already
// on the wire.
func (f *ApprovalFlow) Begin() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.open || f.detail == nil || f.inFlight {
		return false
	}
	f.inFlight = true
	return true
}

// Fail releases the in-flight slot after a rejected decision, keeping the
// modal open so the user can retry or close it.
func (f *ApprovalFlow) Fail() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inFlight = false
}

// Close dismisses the modal and clears all pending state
func (f *ApprovalFlow) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.open = false
	f.detail = nil
	f.inFlight = false
	f.id = 0
	f.kind = ""
}

// Current returns the pending swap, or nil when the modal is closed or
// the detail fetch has not completed.
func (f *ApprovalFlow) Current() *tasks.SwapRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.open || f.detail == nil {
		return nil
	}
	d := *f.detail
	return &d
}

// Pending reports whether a swap is open and which one
func (f *ApprovalFlow) Pending() (tasks.SwapKind, int64, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.kind, f.id, f.open
}

// InFlight reports whether a decision is on the wire
func (f *ApprovalFlow) InFlight() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.inFlight
}
