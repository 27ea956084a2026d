package core

import (
	"sync"
	"time"

	"github.com/qiyaolin/labops/modules/core/equipment"
	"github.com/qiyaolin/labops/modules/core/inventory"
	"github.com/qiyaolin/labops/modules/core/requests"
	"github.com/qiyaolin/labops/modules/core/schedules"
	"github.com/qiyaolin/labops/modules/core/tasks"
)

// Kind names one server-backed collection held by the store
type Kind string

const (
	KindRequests  Kind = "requests"
	KindSchedules Kind = "schedules"
	KindEquipment Kind = "equipment"
	KindTasks     Kind = "tasks"
	KindSwaps     Kind = "swaps"
	KindItems     Kind = "items"
)

// Store is the single in-memory copy of all server collections. Loads
// replace a collection wholesale; derived views filter on read and never
// mutate the stored slices.
//
// Each Replace carries the ticket from the Begin that started its load.
// Only the latest ticket per kind wins, so a slow response that was
// overtaken by a newer load is discarded instead of clobbering it.
type Store struct {
	mu sync.RWMutex

	requests  []requests.Request
	schedules []schedules.Event
	equipment []equipment.Equipment
	instances []tasks.Instance
	swaps     []tasks.SwapRequest
	items     []inventory.Item

	issued map[Kind]uint64
	loaded map[Kind]time.Time
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		issued: make(map[Kind]uint64),
		loaded: make(map[Kind]time.Time),
	}
}

// Begin issues a load ticket for a kind. Every issued ticket invalidates
// all earlier outstanding tickets for the same kind.
func (s *Store) Begin(kind Kind) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued[kind]++
	return s.issued[kind]
}

// current reports whether a ticket is still the latest for its kind.
// Caller holds the lock.
func (s *Store) current(kind Kind, ticket uint64) bool {
	if ticket != s.issued[kind] {
		return false
	}
	s.loaded[kind] = time.Now()
	return true
}

// LoadedAt returns when a collection last completed a load
func (s *Store) LoadedAt(kind Kind) time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded[kind]
}

// ============================================
// Wholesale replacement (one method per kind)
// ============================================

// ReplaceRequests installs a freshly loaded request collection. Returns
// false when the ticket was overtaken and the data was discarded.
func (s *Store) ReplaceRequests(ticket uint64, rs []requests.Request) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.current(KindRequests, ticket) {
		return false
	}
	s.requests = rs
	return true
}

// ReplaceSchedules installs a freshly loaded event collection
func (s *Store) ReplaceSchedules(ticket uint64, evs []schedules.Event) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.current(KindSchedules, ticket) {
		return false
	}
	s.schedules = evs
	return true
}

// ReplaceEquipment installs a freshly loaded equipment collection
func (s *Store) ReplaceEquipment(ticket uint64, eq []equipment.Equipment) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.current(KindEquipment, ticket) {
		return false
	}
	s.equipment = eq
	return true
}

// ReplaceInstances installs a freshly loaded task instance collection
func (s *Store) ReplaceInstances(ticket uint64, ins []tasks.Instance) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.current(KindTasks, ticket) {
		return false
	}
	s.instances = ins
	return true
}

// ReplaceSwaps installs a freshly loaded swap request collection
func (s *Store) ReplaceSwaps(ticket uint64, sw []tasks.SwapRequest) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.current(KindSwaps, ticket) {
		return false
	}
	s.swaps = sw
	return true
}

// ReplaceItems installs a freshly loaded inventory collection
func (s *Store) ReplaceItems(ticket uint64, its []inventory.Item) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.current(KindItems, ticket) {
		return false
	}
	s.items = its
	return true
}

// ============================================
// Optimistic mutation
// ============================================

// MutateRequests applies an optimistic local edit outside the ticket
// discipline. It returns a snapshot of the collection as it was before
// the edit, for rollback when the server rejects the action.
func (s *Store) MutateRequests(fn func([]requests.Request) []requests.Request) []requests.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := append([]requests.Request(nil), s.requests...)
	s.requests = fn(append([]requests.Request(nil), s.requests...))
	return prev
}

// RestoreRequests rolls the collection back to a snapshot
func (s *Store) RestoreRequests(prev []requests.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = prev
}

// MutateEquipment applies an optimistic local edit to the equipment board
func (s *Store) MutateEquipment(fn func([]equipment.Equipment) []equipment.Equipment) []equipment.Equipment {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := append([]equipment.Equipment(nil), s.equipment...)
	s.equipment = fn(append([]equipment.Equipment(nil), s.equipment...))
	return prev
}

// RestoreEquipment rolls the equipment board back to a snapshot
func (s *Store) RestoreEquipment(prev []equipment.Equipment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.equipment = prev
}

// ============================================
// Read views (copies, never the stored slice)
// ============================================

// Requests returns a copy of the full request collection
func (s *Store) Requests() []requests.Request {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]requests.Request(nil), s.requests...)
}

// FilteredRequests returns the request view for the given filter
func (s *Store) FilteredRequests(opts requests.FilterOptions) []requests.Request {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return requests.Filter(s.requests, opts)
}

// RequestCounts returns the per-status badge counts
func (s *Store) RequestCounts() map[requests.Status]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return requests.CountByStatus(s.requests)
}

// RequestByID looks up one request
func (s *Store) RequestByID(id int64) (requests.Request, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return requests.ByID(s.requests, id)
}

// EligibleRequestIDs filters a batch selection down to the ids an action
// can actually apply to
func (s *Store) EligibleRequestIDs(selected []int64, action requests.Action) []int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return requests.EligibleIDs(s.requests, selected, action)
}

// Schedules returns a copy of the full event collection
func (s *Store) Schedules() []schedules.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]schedules.Event(nil), s.schedules...)
}

// FilteredSchedules returns the calendar view for the given filter
func (s *Store) FilteredSchedules(opts schedules.FilterOptions) []schedules.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return schedules.Filter(s.schedules, opts)
}

// UpcomingEventCount counts events from today onward
func (s *Store) UpcomingEventCount(now time.Time) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return schedules.UpcomingCount(s.schedules, now)
}

// Equipment returns a copy of the equipment board
func (s *Store) Equipment() []equipment.Equipment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]equipment.Equipment(nil), s.equipment...)
}

// FilteredEquipment returns the equipment view for the given filter
func (s *Store) FilteredEquipment(opts equipment.FilterOptions) []equipment.Equipment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return equipment.Filter(s.equipment, opts)
}

// EquipmentInUse counts devices currently checked out
func (s *Store) EquipmentInUse() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return equipment.InUseCount(s.equipment)
}

// Instances returns a copy of the task instance collection
func (s *Store) Instances() []tasks.Instance {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]tasks.Instance(nil), s.instances...)
}

// FilteredInstances returns the task view for the given filter
func (s *Store) FilteredInstances(opts tasks.FilterOptions) []tasks.Instance {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return tasks.FilterInstances(s.instances, opts)
}

// Swaps returns a copy of the swap request collection
func (s *Store) Swaps() []tasks.SwapRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]tasks.SwapRequest(nil), s.swaps...)
}

// PendingSwaps returns unresolved swaps, oldest first
func (s *Store) PendingSwaps() []tasks.SwapRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return tasks.PendingSwaps(s.swaps)
}

// ResolvableSwaps returns the pending swaps the given user may decide
func (s *Store) ResolvableSwaps(userID int64, isAdmin bool) []tasks.SwapRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return tasks.ResolvableBy(s.swaps, userID, isAdmin)
}

// Items returns a copy of the inventory collection
func (s *Store) Items() []inventory.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]inventory.Item(nil), s.items...)
}

// ItemGroups returns the inventory partitioned into display groups
func (s *Store) ItemGroups(now time.Time) []inventory.Group {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return inventory.GroupItems(s.items, now)
}
