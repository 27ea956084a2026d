package core

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/qiyaolin/labops/modules/core/equipment"
	"github.com/qiyaolin/labops/modules/core/requests"
	"github.com/qiyaolin/labops/modules/core/schedules"
	"github.com/qiyaolin/labops/modules/core/tasks"
	"github.com/qiyaolin/labops/modules/platform/config"
	"github.com/qiyaolin/labops/modules/platform/session"
)

// AppPresenter is the main presenter implementation. Every user event
// follows the same shape: validate against the store, apply the edit
// locally, send the call, then reconcile by reloading the touched
// collection - or roll the edit back when the server says no.
type AppPresenter struct {
	mu sync.RWMutex

	// Services
	backend Backend
	sess    *session.Session
	config  *config.Config
	log     *zap.Logger

	// Persists config changes (welcome banner, layout preference).
	// Optional; nil when the presenter runs without a config file.
	ConfigSaver func(*config.Config) error

	// State
	store *Store
	state *AppState
	flow  *ApprovalFlow

	// Per-view filters
	requestFilter  requests.FilterOptions
	scheduleFilter schedules.FilterOptions

	// Callbacks
	stateCallbacks        []func(StateUpdate)
	notificationCallbacks []func(*Notification)

	// Context
	ctx    context.Context
	cancel context.CancelFunc
}

// NewAppPresenter creates a new application presenter
func NewAppPresenter(backend Backend, sess *session.Session, cfg *config.Config, log *zap.Logger) *AppPresenter {
	if log == nil {
		log = zap.NewNop()
	}
	return &AppPresenter{
		backend:               backend,
		sess:                  sess,
		config:                cfg,
		log:                   log,
		store:                 NewStore(),
		state:                 NewAppState(),
		flow:                  NewApprovalFlow(),
		stateCallbacks:        make([]func(StateUpdate), 0),
		notificationCallbacks: make([]func(*Notification), 0),
	}
}

// NewPresenter is a convenience constructor that returns the Presenter interface
func NewPresenter(backend Backend, sess *session.Session, cfg *config.Config, log *zap.Logger) Presenter {
	return NewAppPresenter(backend, sess, cfg, log)
}

// Store exposes the aggregation store for views that render raw collections
func (p *AppPresenter) Store() *Store {
	return p.store
}

// Initialize sets up the presenter and performs the first full load
func (p *AppPresenter) Initialize(ctx context.Context) error {
	p.ctx, p.cancel = context.WithCancel(ctx)

	if err := p.Refresh(); err != nil {
		// A failed first load is survivable: the UI shows empty
		// collections and the error notification explains why
		p.log.Warn("initial load failed", zap.Error(err))
	}

	p.state.mu.Lock()
	p.state.Initializing = false
	p.state.IsConnected = true
	p.state.LastRefresh = time.Now()
	p.state.mu.Unlock()

	p.broadcastFullState()
	return nil
}

// Refresh reloads every collection from the backend. Each reload takes a
// ticket so a stale concurrent response cannot overwrite a newer one.
func (p *AppPresenter) Refresh() error {
	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	keep(p.reloadRequests())
	keep(p.reloadSchedules())
	keep(p.reloadEquipment())
	keep(p.reloadTasks())
	keep(p.reloadItems())

	p.state.mu.Lock()
	p.state.LastRefresh = time.Now()
	p.state.IsConnected = firstErr == nil
	p.state.mu.Unlock()

	p.broadcastFullState()
	if firstErr != nil {
		p.notifyError("Refresh failed", firstErr.Error())
	}
	return firstErr
}

// Shutdown cleans up resources
func (p *AppPresenter) Shutdown() error {
	if p.cancel != nil {
		p.cancel()
	}
	return nil
}

// Subscribe registers a callback for state updates
func (p *AppPresenter) Subscribe(callback func(StateUpdate)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stateCallbacks = append(p.stateCallbacks, callback)
}

// SubscribeNotifications registers a callback for notifications
func (p *AppPresenter) SubscribeNotifications(callback func(*Notification)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.notificationCallbacks = append(p.notificationCallbacks, callback)
}

// GetViewModel returns the current view model for a view type
func (p *AppPresenter) GetViewModel(viewType ViewModelType) (ViewModel, error) {
	p.state.mu.RLock()
	defer p.state.mu.RUnlock()

	switch viewType {
	case VMDashboard:
		return p.state.Dashboard, nil
	case VMRequests:
		return p.state.Requests, nil
	case VMSchedule:
		return p.state.Schedule, nil
	case VMEquipment:
		return p.state.Equipment, nil
	case VMTasks:
		return p.state.Tasks, nil
	case VMInventory:
		return p.state.Inventory, nil
	}
	return nil, fmt.Errorf("unknown view type: %s", viewType)
}

// HandleEvent processes a user event
func (p *AppPresenter) HandleEvent(event *Event) error {
	switch event.Type {
	// Navigation
	case EventNavigate:
		return p.handleNavigate(event)
	case EventRefresh:
		return p.Refresh()
	case EventQuit:
		return p.Shutdown()

	// Request events
	case EventRequestAction:
		return p.handleRequestAction(event)
	case EventBatchAction:
		return p.handleBatchAction(event)
	case EventDeleteRequest:
		return p.handleDeleteRequest(event)
	case EventViewHistory:
		return p.handleViewHistory(event)

	// Schedule events
	case EventCreateSchedule:
		return p.handleCreateSchedule(event)
	case EventUpdateSchedule:
		return p.handleUpdateSchedule(event)
	case EventDeleteSchedule:
		return p.handleDeleteSchedule(event)

	// Equipment events
	case EventBookEquipment, EventCancelBooking, EventCheckout:
		return p.handleEquipmentAction(event)

	// Task events
	case EventCompleteTask:
		return p.handleCompleteTask(event)
	case EventOpenSwap:
		return p.handleOpenSwap(event)
	case EventApproveSwap:
		return p.handleResolveSwap(event, true)
	case EventRejectSwap:
		return p.handleResolveSwap(event, false)
	case EventCloseSwap:
		return p.handleCloseSwap(event)

	// UI state events
	case EventFilter:
		return p.handleFilter(event)
	case EventToggleLayout:
		return p.handleToggleLayout(event)
	case EventDismissWelcome:
		return p.handleDismissWelcome(event)
	}
	return fmt.Errorf("unhandled event type: %s", event.Type)
}

// ============================================
// Reloads
// ============================================

func (p *AppPresenter) reloadRequests() error {
	ticket := p.store.Begin(KindRequests)
	rs, err := p.backend.ListRequests(p.ctx)
	if err != nil {
		return err
	}
	if p.store.ReplaceRequests(ticket, rs) {
		p.refreshRequestsVM()
	}
	return nil
}

func (p *AppPresenter) reloadSchedules() error {
	ticket := p.store.Begin(KindSchedules)
	evs, err := p.backend.ListSchedules(p.ctx)
	if err != nil {
		return err
	}
	if p.store.ReplaceSchedules(ticket, evs) {
		p.refreshScheduleVM()
	}
	return nil
}

func (p *AppPresenter) reloadEquipment() error {
	ticket := p.store.Begin(KindEquipment)
	eq, err := p.backend.ListEquipment(p.ctx)
	if err != nil {
		return err
	}
	if p.store.ReplaceEquipment(ticket, eq) {
		p.refreshEquipmentVM()
	}
	return nil
}

func (p *AppPresenter) reloadTasks() error {
	insTicket := p.store.Begin(KindTasks)
	ins, err := p.backend.ListTaskInstances(p.ctx)
	if err != nil {
		return err
	}
	p.store.ReplaceInstances(insTicket, ins)

	swTicket := p.store.Begin(KindSwaps)
	sw, err := p.backend.ListSwapRequests(p.ctx)
	if err != nil {
		return err
	}
	if p.store.ReplaceSwaps(swTicket, sw) {
		p.refreshTasksVM()
	}
	return nil
}

func (p *AppPresenter) reloadItems() error {
	ticket := p.store.Begin(KindItems)
	its, err := p.backend.ListItems(p.ctx)
	if err != nil {
		return err
	}
	if p.store.ReplaceItems(ticket, its) {
		p.refreshInventoryVM()
	}
	return nil
}

// OnChangeHint reloads the collection named by a push hint. Unknown
// resources trigger a full refresh rather than being dropped.
func (p *AppPresenter) OnChangeHint(resource string) {
	var err error
	switch resource {
	case string(KindRequests):
		err = p.reloadRequests()
	case string(KindSchedules):
		err = p.reloadSchedules()
	case string(KindEquipment):
		err = p.reloadEquipment()
	case string(KindTasks), string(KindSwaps):
		err = p.reloadTasks()
	case string(KindItems):
		err = p.reloadItems()
	default:
		err = p.Refresh()
		return
	}
	if err != nil {
		p.log.Warn("push reload failed", zap.String("resource", resource), zap.Error(err))
	}
	p.refreshDashboardVM()
}

// ============================================
// Navigation and UI state
// ============================================

func (p *AppPresenter) handleNavigate(event *Event) error {
	target := ViewModelType(event.Target)
	switch target {
	case VMDashboard, VMRequests, VMSchedule, VMEquipment, VMTasks, VMInventory:
		p.state.SetCurrentView(target)
		p.broadcastView(target)
		return nil
	}
	return fmt.Errorf("unknown navigation target: %s", event.Target)
}

func (p *AppPresenter) handleFilter(event *Event) error {
	text, _ := event.Value.(string)
	switch ViewModelType(event.Target) {
	case VMSchedule:
		p.mu.Lock()
		p.scheduleFilter.Search = text
		p.mu.Unlock()
		p.refreshScheduleVM()
	default:
		p.mu.Lock()
		p.requestFilter.Search = text
		if statuses, ok := event.Data["status"]; ok && statuses != "" {
			p.requestFilter.Statuses = []requests.Status{requests.Status(statuses)}
		} else {
			p.requestFilter.Statuses = nil
		}
		p.requestFilter.MineOnly = event.Data["mine"] == "true"
		p.requestFilter.OwnerID = p.sess.CurrentUserID()
		p.mu.Unlock()
		p.refreshRequestsVM()
	}
	return nil
}

func (p *AppPresenter) handleToggleLayout(event *Event) error {
	if p.config == nil || p.config.UI == nil {
		return nil
	}
	switch p.config.UI.Mode {
	case string(PrefCards):
		p.config.UI.Mode = string(PrefTable)
	default:
		p.config.UI.Mode = string(PrefCards)
	}
	p.saveConfig()
	p.broadcastFullState()
	return nil
}

func (p *AppPresenter) handleDismissWelcome(event *Event) error {
	if p.config == nil || p.config.UI == nil {
		return nil
	}
	p.config.UI.WelcomeDismissed = true
	p.saveConfig()
	p.refreshDashboardVM()
	return nil
}

func (p *AppPresenter) saveConfig() {
	if p.ConfigSaver == nil {
		return
	}
	if err := p.ConfigSaver(p.config); err != nil {
		p.log.Warn("config save failed", zap.Error(err))
	}
}

// ============================================
// Purchase requests
// ============================================

func (p *AppPresenter) handleRequestAction(event *Event) error {
	req, ok := p.store.RequestByID(event.ID)
	if !ok {
		p.notifyError("Unknown request", fmt.Sprintf("Request #%d is not in the current list", event.ID))
		return nil
	}
	if !requests.CanApply(event.Action, req.Status) {
		p.notifyError("Not allowed", fmt.Sprintf("Cannot %s a %s request", event.Action, req.Status))
		return nil
	}

	// Reorder clones server-side; there is nothing to edit locally
	var prev []requests.Request
	if event.Action != requests.ActionReorder {
		next, _ := requests.NextStatus(event.Action)
		prev = p.store.MutateRequests(func(rs []requests.Request) []requests.Request {
			for i := range rs {
				if rs[i].ID == event.ID {
					rs[i].Status = next
					rs[i].UpdatedAt = time.Now()
				}
			}
			return rs
		})
		p.refreshRequestsVM()
	}

	err := p.callRequestAction(event)
	if err != nil {
		if prev != nil {
			p.store.RestoreRequests(prev)
			p.refreshRequestsVM()
		}
		p.notifyError("Action failed", err.Error())
		return nil
	}

	if rerr := p.reloadRequests(); rerr != nil {
		p.log.Warn("reload after action failed", zap.Error(rerr))
	}
	p.refreshDashboardVM()
	p.notifySuccess("Done", fmt.Sprintf("Request #%d: %s", event.ID, event.Action))
	return nil
}

func (p *AppPresenter) callRequestAction(event *Event) error {
	switch event.Action {
	case requests.ActionApprove:
		return p.backend.ApproveRequest(p.ctx, event.ID)
	case requests.ActionReject:
		return p.backend.RejectRequest(p.ctx, event.ID)
	case requests.ActionPlaceOrder:
		fundID, _ := strconv.ParseInt(event.Data["fund"], 10, 64)
		return p.backend.PlaceOrder(p.ctx, event.ID, fundID)
	case requests.ActionMarkReceived:
		return p.backend.MarkReceived(p.ctx, event.ID, event.Data["location"])
	case requests.ActionReorder:
		return p.backend.Reorder(p.ctx, event.ID)
	}
	return fmt.Errorf("unknown request action: %s", event.Action)
}

func (p *AppPresenter) handleBatchAction(event *Event) error {
	if !event.Confirmed {
		// The view owns the confirmation dialog; an unconfirmed batch
		// event never reaches the network
		return nil
	}
	eligible := p.store.EligibleRequestIDs(event.IDs, event.Action)
	if len(eligible) == 0 {
		// Nothing the action can apply to: silent no-op
		return nil
	}

	next, _ := requests.NextStatus(event.Action)
	var prev []requests.Request
	if event.Action != requests.ActionReorder {
		prev = p.store.MutateRequests(func(rs []requests.Request) []requests.Request {
			for i := range rs {
				for _, id := range eligible {
					if rs[i].ID == id {
						rs[i].Status = next
						rs[i].UpdatedAt = time.Now()
					}
				}
			}
			return rs
		})
		p.refreshRequestsVM()
	}

	var err error
	switch event.Action {
	case requests.ActionApprove:
		err = p.backend.BatchApprove(p.ctx, eligible)
	case requests.ActionReject:
		err = p.backend.BatchReject(p.ctx, eligible)
	case requests.ActionPlaceOrder:
		fundID, _ := strconv.ParseInt(event.Data["fund"], 10, 64)
		err = p.backend.BatchPlaceOrder(p.ctx, eligible, fundID)
	case requests.ActionMarkReceived:
		err = p.backend.BatchMarkReceived(p.ctx, eligible, event.Data["location"])
	case requests.ActionReorder:
		err = p.backend.BatchReorder(p.ctx, eligible)
	default:
		err = fmt.Errorf("unknown batch action: %s", event.Action)
	}

	if err != nil {
		// The batch is all-or-nothing on the server, so the rollback
		// restores every optimistic edit at once
		if prev != nil {
			p.store.RestoreRequests(prev)
			p.refreshRequestsVM()
		}
		p.notifyError("Batch failed", err.Error())
		return nil
	}

	if rerr := p.reloadRequests(); rerr != nil {
		p.log.Warn("reload after batch failed", zap.Error(rerr))
	}
	p.refreshDashboardVM()
	p.notifySuccess("Batch done", fmt.Sprintf("%s applied to %d request(s)", event.Action, len(eligible)))
	return nil
}

func (p *AppPresenter) handleDeleteRequest(event *Event) error {
	if _, ok := p.store.RequestByID(event.ID); !ok {
		p.notifyError("Unknown request", fmt.Sprintf("Request #%d is not in the current list", event.ID))
		return nil
	}
	prev := p.store.MutateRequests(func(rs []requests.Request) []requests.Request {
		out := rs[:0]
		for _, r := range rs {
			if r.ID != event.ID {
				out = append(out, r)
			}
		}
		return out
	})
	p.refreshRequestsVM()

	if err := p.backend.DeleteRequest(p.ctx, event.ID); err != nil {
		p.store.RestoreRequests(prev)
		p.refreshRequestsVM()
		p.notifyError("Delete failed", err.Error())
		return nil
	}
	if rerr := p.reloadRequests(); rerr != nil {
		p.log.Warn("reload after delete failed", zap.Error(rerr))
	}
	p.refreshDashboardVM()
	p.notifySuccess("Deleted", fmt.Sprintf("Request #%d removed", event.ID))
	return nil
}

func (p *AppPresenter) handleViewHistory(event *Event) error {
	entries, err := p.backend.RequestHistory(p.ctx, event.ID)
	if err != nil {
		p.notifyError("History unavailable", err.Error())
		return nil
	}
	p.state.mu.Lock()
	p.state.Requests.HistoryFor = event.ID
	p.state.Requests.History = entries
	p.state.mu.Unlock()
	p.broadcastView(VMRequests)
	return nil
}

// ============================================
// Schedules
// ============================================

func (p *AppPresenter) handleCreateSchedule(event *Event) error {
	ev, ok := event.Value.(schedules.Event)
	if !ok {
		return fmt.Errorf("create_schedule event carries no schedule")
	}
	if err := ev.Validate(); err != nil {
		p.notifyError("Invalid event", err.Error())
		return nil
	}
	if err := p.backend.CreateSchedule(p.ctx, ev); err != nil {
		p.notifyError("Create failed", err.Error())
		return nil
	}
	if rerr := p.reloadSchedules(); rerr != nil {
		p.log.Warn("reload after create failed", zap.Error(rerr))
	}
	p.refreshDashboardVM()
	p.notifySuccess("Created", ev.Title)
	return nil
}

func (p *AppPresenter) handleUpdateSchedule(event *Event) error {
	ev, ok := event.Value.(schedules.Event)
	if !ok {
		return fmt.Errorf("update_schedule event carries no schedule")
	}
	if err := ev.Validate(); err != nil {
		p.notifyError("Invalid event", err.Error())
		return nil
	}
	if err := p.backend.UpdateSchedule(p.ctx, ev); err != nil {
		p.notifyError("Update failed", err.Error())
		return nil
	}
	if rerr := p.reloadSchedules(); rerr != nil {
		p.log.Warn("reload after update failed", zap.Error(rerr))
	}
	p.notifySuccess("Updated", ev.Title)
	return nil
}

func (p *AppPresenter) handleDeleteSchedule(event *Event) error {
	if err := p.backend.DeleteSchedule(p.ctx, event.ID); err != nil {
		p.notifyError("Delete failed", err.Error())
		return nil
	}
	if rerr := p.reloadSchedules(); rerr != nil {
		p.log.Warn("reload after delete failed", zap.Error(rerr))
	}
	p.refreshDashboardVM()
	p.notifySuccess("Deleted", fmt.Sprintf("Event #%d removed", event.ID))
	return nil
}

// ============================================
// Equipment
// ============================================

func (p *AppPresenter) handleEquipmentAction(event *Event) error {
	userID := p.sess.CurrentUserID()

	var prev []equipment.Equipment
	var err error
	switch event.Type {
	case EventBookEquipment:
		err = p.backend.BookEquipment(p.ctx, event.ID)
	case EventCancelBooking:
		err = p.backend.CancelBooking(p.ctx, event.ID)
	case EventCheckout:
		// Optimistically flip the board so the device shows as taken
		now := time.Now()
		prev = p.store.MutateEquipment(func(eq []equipment.Equipment) []equipment.Equipment {
			for i := range eq {
				if eq[i].ID == event.ID && !eq[i].InUse {
					eq[i].InUse = true
					eq[i].CurrentUserID = userID
					eq[i].UsageStartedAt = &now
				}
			}
			return eq
		})
		p.refreshEquipmentVM()
		err = p.backend.CheckoutEquipment(p.ctx, event.ID)
	}

	if err != nil {
		if prev != nil {
			p.store.RestoreEquipment(prev)
			p.refreshEquipmentVM()
		}
		p.notifyError("Equipment action failed", err.Error())
		return nil
	}
	if rerr := p.reloadEquipment(); rerr != nil {
		p.log.Warn("reload after equipment action failed", zap.Error(rerr))
	}
	p.refreshDashboardVM()
	return nil
}

// ============================================
// Tasks and swaps
// ============================================

func (p *AppPresenter) handleCompleteTask(event *Event) error {
	if err := p.backend.CompleteTask(p.ctx, event.ID); err != nil {
		p.notifyError("Complete failed", err.Error())
		return nil
	}
	if rerr := p.reloadTasks(); rerr != nil {
		p.log.Warn("reload after complete failed", zap.Error(rerr))
	}
	p.refreshDashboardVM()
	p.notifySuccess("Task completed", fmt.Sprintf("Task #%d", event.ID))
	return nil
}

func (p *AppPresenter) handleOpenSwap(event *Event) error {
	if !p.flow.Open(event.SwapKind, event.ID) {
		// One pending swap at a time
		return nil
	}
	detail, err := p.backend.GetSwapRequest(p.ctx, event.SwapKind, event.ID)
	if err != nil {
		p.flow.Close()
		p.notifyError("Swap unavailable", err.Error())
		return nil
	}
	if detail.Resolved() {
		p.flow.Close()
		p.notifyInfo("Already resolved", "This swap request was decided elsewhere")
		if rerr := p.reloadTasks(); rerr != nil {
			p.log.Warn("reload after stale swap failed", zap.Error(rerr))
		}
		return nil
	}
	p.flow.SetDetail(detail)
	p.refreshTasksVM()
	return nil
}

func (p *AppPresenter) handleResolveSwap(event *Event, approve bool) error {
	kind, id, open := p.flow.Pending()
	if !open {
		return nil
	}
	detail := p.flow.Current()
	if detail == nil {
		return nil
	}
	if !detail.CanResolve(p.sess.CurrentUserID(), p.sess.Admin()) {
		p.notifyError("Not allowed", "You cannot decide this swap request")
		return nil
	}
	if !p.flow.Begin() {
		// A decision is already on the wire
		return nil
	}

	if err := p.backend.ResolveSwap(p.ctx, kind, id, approve); err != nil {
		p.flow.Fail()
		p.notifyError("Decision failed", err.Error())
		return nil
	}

	// Success: close the modal and do exactly one full reload so every
	// collection the swap touched (tasks, schedules) is fresh
	p.flow.Close()
	p.refreshTasksVM()
	if err := p.Refresh(); err != nil {
		p.log.Warn("reload after swap decision failed", zap.Error(err))
	}
	verdict := "rejected"
	if approve {
		verdict = "approved"
	}
	p.notifySuccess("Swap "+verdict, fmt.Sprintf("Swap request #%d", id))
	return nil
}

func (p *AppPresenter) handleCloseSwap(event *Event) error {
	if p.flow.InFlight() {
		// The decision already left; keep the modal until it lands
		return nil
	}
	p.flow.Close()
	p.refreshTasksVM()
	return nil
}

// ============================================
// View model refreshers
// ============================================

func (p *AppPresenter) refreshRequestsVM() {
	p.mu.RLock()
	filter := p.requestFilter
	p.mu.RUnlock()

	vm := &RequestsVM{
		BaseViewModel: BaseViewModel{VMType: VMRequests, UpdatedAt: time.Now()},
		Requests:      p.store.FilteredRequests(filter),
		StatusCounts:  p.store.RequestCounts(),
		Filter:        filter,
	}
	p.state.UpdateViewModel(vm)
	p.broadcastView(VMRequests)
}

func (p *AppPresenter) refreshScheduleVM() {
	p.mu.RLock()
	filter := p.scheduleFilter
	p.mu.RUnlock()

	vm := &ScheduleVM{
		BaseViewModel: BaseViewModel{VMType: VMSchedule, UpdatedAt: time.Now()},
		Events:        p.store.FilteredSchedules(filter),
		Filter:        filter,
	}
	p.state.UpdateViewModel(vm)
	p.broadcastView(VMSchedule)
}

func (p *AppPresenter) refreshEquipmentVM() {
	vm := &EquipmentVM{
		BaseViewModel: BaseViewModel{VMType: VMEquipment, UpdatedAt: time.Now()},
		Equipment:     p.store.FilteredEquipment(equipment.FilterOptions{}),
		InUse:         p.store.EquipmentInUse(),
	}
	p.state.UpdateViewModel(vm)
	p.broadcastView(VMEquipment)
}

func (p *AppPresenter) refreshTasksVM() {
	vm := &TasksVM{
		BaseViewModel: BaseViewModel{VMType: VMTasks, UpdatedAt: time.Now()},
		Instances:     p.store.FilteredInstances(tasks.FilterOptions{}),
		Swaps:         p.store.PendingSwaps(),
		Resolvable:    p.store.ResolvableSwaps(p.sess.CurrentUserID(), p.sess.Admin()),
		OpenSwap:      p.flow.Current(),
	}
	p.state.UpdateViewModel(vm)
	p.broadcastView(VMTasks)
}

func (p *AppPresenter) refreshInventoryVM() {
	vm := &InventoryVM{
		BaseViewModel: BaseViewModel{VMType: VMInventory, UpdatedAt: time.Now()},
		Groups:        p.store.ItemGroups(time.Now()),
	}
	p.state.UpdateViewModel(vm)
	p.broadcastView(VMInventory)
}

func (p *AppPresenter) refreshDashboardVM() {
	counts := p.store.RequestCounts()
	groups := p.store.ItemGroups(time.Now())
	expiring, lowStock := 0, 0
	for _, g := range groups {
		expiring += g.ExpiredCount + g.ExpiringCount
		lowStock += g.LowStockCount
	}

	welcomeDismissed := false
	if p.config != nil && p.config.UI != nil {
		welcomeDismissed = p.config.UI.WelcomeDismissed
	}

	vm := &DashboardVM{
		BaseViewModel:    BaseViewModel{VMType: VMDashboard, UpdatedAt: time.Now()},
		Username:         p.sess.CurrentUsername(),
		IsAdmin:          p.sess.Admin(),
		WelcomeDismissed: welcomeDismissed,
		NewRequests:      counts[requests.StatusNew],
		ApprovedRequests: counts[requests.StatusApproved],
		OrderedRequests:  counts[requests.StatusOrdered],
		UpcomingEvents:   p.store.UpcomingEventCount(time.Now()),
		EquipmentInUse:   p.store.EquipmentInUse(),
		PendingSwaps:     len(p.store.PendingSwaps()),
		ExpiringItems:    expiring,
		LowStockItems:    lowStock,
	}
	p.state.UpdateViewModel(vm)
	p.broadcastView(VMDashboard)
}

// broadcastFullState rebuilds and sends every view model
func (p *AppPresenter) broadcastFullState() {
	p.refreshRequestsVM()
	p.refreshScheduleVM()
	p.refreshEquipmentVM()
	p.refreshTasksVM()
	p.refreshInventoryVM()
	p.refreshDashboardVM()
}

func (p *AppPresenter) broadcastView(viewType ViewModelType) {
	vm, err := p.GetViewModel(viewType)
	if err != nil || vm == nil {
		return
	}
	p.mu.RLock()
	callbacks := p.stateCallbacks
	p.mu.RUnlock()

	update := StateUpdate{ViewType: viewType, ViewModel: vm}
	for _, cb := range callbacks {
		cb(update)
	}
}

// ============================================
// Notifications
// ============================================

func (p *AppPresenter) notify(n *Notification) {
	p.state.AddNotification(n)
	p.mu.RLock()
	callbacks := p.notificationCallbacks
	p.mu.RUnlock()
	for _, cb := range callbacks {
		cb(n)
	}
}

func (p *AppPresenter) notifySuccess(title, message string) {
	p.notify(NewNotification(NotifySuccess, title, message))
}

func (p *AppPresenter) notifyInfo(title, message string) {
	p.notify(NewNotification(NotifyInfo, title, message))
}

func (p *AppPresenter) notifyError(title, message string) {
	p.notify(NewNotification(NotifyError, title, message))
}
