package core

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qiyaolin/labops/modules/core/equipment"
	"github.com/qiyaolin/labops/modules/core/inventory"
	"github.com/qiyaolin/labops/modules/core/requests"
	"github.com/qiyaolin/labops/modules/core/schedules"
	"github.com/qiyaolin/labops/modules/core/tasks"
	"github.com/qiyaolin/labops/modules/platform/config"
	"github.com/qiyaolin/labops/modules/platform/session"
)

// fakeBackend records every call and serves canned collections. Set
// failWith to make a named call return an error.
type fakeBackend struct {
	mu    sync.Mutex
	calls []string

	requests  []requests.Request
	schedules []schedules.Event
	equipment []equipment.Equipment
	instances []tasks.Instance
	swaps     []tasks.SwapRequest
	items     []inventory.Item

	failWith map[string]error

	lastBatchIDs []int64
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{failWith: make(map[string]error)}
}

func (b *fakeBackend) record(name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, name)
	return b.failWith[name]
}

func (b *fakeBackend) count(name string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, c := range b.calls {
		if c == name {
			n++
		}
	}
	return n
}

func (b *fakeBackend) ListRequests(ctx context.Context) ([]requests.Request, error) {
	if err := b.record("ListRequests"); err != nil {
		return nil, err
	}
	return append([]requests.Request(nil), b.requests...), nil
}

func (b *fakeBackend) RequestHistory(ctx context.Context, id int64) ([]requests.HistoryEntry, error) {
	if err := b.record("RequestHistory"); err != nil {
		return nil, err
	}
	return []requests.HistoryEntry{{RequestID: id, Action: "created"}}, nil
}

func (b *fakeBackend) ApproveRequest(ctx context.Context, id int64) error {
	return b.record("ApproveRequest")
}

func (b *fakeBackend) RejectRequest(ctx context.Context, id int64) error {
	return b.record("RejectRequest")
}

func (b *fakeBackend) PlaceOrder(ctx context.Context, id, fundID int64) error {
	return b.record("PlaceOrder")
}

func (b *fakeBackend) MarkReceived(ctx context.Context, id int64, location string) error {
	return b.record("MarkReceived")
}

func (b *fakeBackend) Reorder(ctx context.Context, id int64) error {
	return b.record("Reorder")
}

func (b *fakeBackend) DeleteRequest(ctx context.Context, id int64) error {
	return b.record("DeleteRequest")
}

func (b *fakeBackend) batch(name string, ids []int64) error {
	err := b.record(name)
	b.mu.Lock()
	b.lastBatchIDs = append([]int64(nil), ids...)
	b.mu.Unlock()
	return err
}

func (b *fakeBackend) BatchApprove(ctx context.Context, ids []int64) error {
	return b.batch("BatchApprove", ids)
}

func (b *fakeBackend) BatchReject(ctx context.Context, ids []int64) error {
	return b.batch("BatchReject", ids)
}

func (b *fakeBackend) BatchPlaceOrder(ctx context.Context, ids []int64, fundID int64) error {
	return b.batch("BatchPlaceOrder", ids)
}

func (b *fakeBackend) BatchMarkReceived(ctx context.Context, ids []int64, location string) error {
	return b.batch("BatchMarkReceived", ids)
}

func (b *fakeBackend) BatchReorder(ctx context.Context, ids []int64) error {
	return b.batch("BatchReorder", ids)
}

func (b *fakeBackend) ListSchedules(ctx context.Context) ([]schedules.Event, error) {
	if err := b.record("ListSchedules"); err != nil {
		return nil, err
	}
	return append([]schedules.Event(nil), b.schedules...), nil
}

func (b *fakeBackend) CreateSchedule(ctx context.Context, ev schedules.Event) error {
	return b.record("CreateSchedule")
}

func (b *fakeBackend) UpdateSchedule(ctx context.Context, ev schedules.Event) error {
	return b.record("UpdateSchedule")
}

func (b *fakeBackend) DeleteSchedule(ctx context.Context, id int64) error {
	return b.record("DeleteSchedule")
}

func (b *fakeBackend) ListEquipment(ctx context.Context) ([]equipment.Equipment, error) {
	if err := b.record("ListEquipment"); err != nil {
		return nil, err
	}
	return append([]equipment.Equipment(nil), b.equipment...), nil
}

func (b *fakeBackend) BookEquipment(ctx context.Context, id int64) error {
	return b.record("BookEquipment")
}

func (b *fakeBackend) CancelBooking(ctx context.Context, id int64) error {
	return b.record("CancelBooking")
}

func (b *fakeBackend) CheckoutEquipment(ctx context.Context, id int64) error {
	return b.record("CheckoutEquipment")
}

func (b *fakeBackend) ListTaskInstances(ctx context.Context) ([]tasks.Instance, error) {
	if err := b.record("ListTaskInstances"); err != nil {
		return nil, err
	}
	return append([]tasks.Instance(nil), b.instances...), nil
}

func (b *fakeBackend) CompleteTask(ctx context.Context, id int64) error {
	return b.record("CompleteTask")
}

func (b *fakeBackend) ListSwapRequests(ctx context.Context) ([]tasks.SwapRequest, error) {
	if err := b.record("ListSwapRequests"); err != nil {
		return nil, err
	}
	return append([]tasks.SwapRequest(nil), b.swaps...), nil
}

func (b *fakeBackend) GetSwapRequest(ctx context.Context, kind tasks.SwapKind, id int64) (*tasks.SwapRequest, error) {
	if err := b.record("GetSwapRequest"); err != nil {
		return nil, err
	}
	for _, s := range b.swaps {
		if s.Kind == kind && s.ID == id {
			s := s
			return &s, nil
		}
	}
	return nil, assert.AnError
}

func (b *fakeBackend) ResolveSwap(ctx context.Context, kind tasks.SwapKind, id int64, approve bool) error {
	if approve {
		return b.record("ResolveSwap:approve")
	}
	return b.record("ResolveSwap:reject")
}

func (b *fakeBackend) ListItems(ctx context.Context) ([]inventory.Item, error) {
	if err := b.record("ListItems"); err != nil {
		return nil, err
	}
	return append([]inventory.Item(nil), b.items...), nil
}

// newTestPresenter wires a presenter over a fake backend and runs the
// initial load.
func newTestPresenter(t *testing.T, backend *fakeBackend, admin bool) *AppPresenter {
	t.Helper()
	sess := session.New()
	sess.SetCredentials("tok-1", 7, "vera", admin)
	p := NewAppPresenter(backend, sess, config.DefaultConfig(), nil)
	require.NoError(t, p.Initialize(context.Background()))
	return p
}

func TestInitializeLoadsEveryCollection(t *testing.T) {
	backend := newFakeBackend()
	backend.requests = []requests.Request{{ID: 1, ItemName: "taq polymerase", Status: requests.StatusNew}}

	p := newTestPresenter(t, backend, false)

	assert.Equal(t, 1, backend.count("ListRequests"))
	assert.Equal(t, 1, backend.count("ListSchedules"))
	assert.Equal(t, 1, backend.count("ListEquipment"))
	assert.Equal(t, 1, backend.count("ListTaskInstances"))
	assert.Equal(t, 1, backend.count("ListSwapRequests"))
	assert.Equal(t, 1, backend.count("ListItems"))

	vm, err := p.GetViewModel(VMRequests)
	require.NoError(t, err)
	assert.Len(t, vm.(*RequestsVM).Requests, 1)
}

func TestApproveAppliesOptimisticallyThenReloads(t *testing.T) {
	backend := newFakeBackend()
	backend.requests = []requests.Request{{ID: 1, ItemName: "pipette tips", Status: requests.StatusNew}}

	p := newTestPresenter(t, backend, true)

	// Server answers the reload with the real post-action state
	backend.requests[0].Status = requests.StatusApproved

	require.NoError(t, p.HandleEvent(RequestActionEvent(requests.ActionApprove, 1)))

	assert.Equal(t, 1, backend.count("ApproveRequest"))
	assert.Equal(t, 2, backend.count("ListRequests"), "one initial load plus one reconcile reload")

	req, ok := p.Store().RequestByID(1)
	require.True(t, ok)
	assert.Equal(t, requests.StatusApproved, req.Status)
}

func TestApproveInvalidStatusNeverHitsNetwork(t *testing.T) {
	backend := newFakeBackend()
	backend.requests = []requests.Request{{ID: 1, Status: requests.StatusOrdered}}

	p := newTestPresenter(t, backend, true)

	require.NoError(t, p.HandleEvent(RequestActionEvent(requests.ActionApprove, 1)))

	assert.Equal(t, 0, backend.count("ApproveRequest"))
	assert.Equal(t, 1, backend.count("ListRequests"))

	notes := SelectNotifications(p.state)
	require.NotEmpty(t, notes)
	assert.Equal(t, NotifyError, notes[len(notes)-1].Type)
}

func TestFailedActionRollsBack(t *testing.T) {
	backend := newFakeBackend()
	backend.requests = []requests.Request{{ID: 1, Status: requests.StatusNew}}

	p := newTestPresenter(t, backend, true)
	backend.failWith["ApproveRequest"] = assert.AnError

	require.NoError(t, p.HandleEvent(RequestActionEvent(requests.ActionApprove, 1)))

	req, ok := p.Store().RequestByID(1)
	require.True(t, ok)
	assert.Equal(t, requests.StatusNew, req.Status, "optimistic edit must be rolled back")
	assert.Equal(t, 1, backend.count("ListRequests"), "no reconcile reload after a failure")

	notes := SelectNotifications(p.state)
	require.NotEmpty(t, notes)
	assert.Equal(t, NotifyError, notes[len(notes)-1].Type)
	assert.Equal(t, 5, notes[len(notes)-1].Duration)
}

func TestFailedDeleteRestoresRow(t *testing.T) {
	backend := newFakeBackend()
	backend.requests = []requests.Request{
		{ID: 1, Status: requests.StatusNew},
		{ID: 2, Status: requests.StatusApproved},
	}

	p := newTestPresenter(t, backend, true)
	backend.failWith["DeleteRequest"] = assert.AnError

	require.NoError(t, p.HandleEvent(NewEvent(EventDeleteRequest).WithID(1)))

	assert.Len(t, p.Store().Requests(), 2, "deleted row must come back after the failure")
}

func TestBatchSendsOnlyEligibleIDs(t *testing.T) {
	backend := newFakeBackend()
	backend.requests = []requests.Request{
		{ID: 1, Status: requests.StatusNew},
		{ID: 2, Status: requests.StatusApproved},
		{ID: 3, Status: requests.StatusNew},
	}

	p := newTestPresenter(t, backend, true)

	require.NoError(t, p.HandleEvent(BatchActionEvent(requests.ActionApprove, []int64{1, 2, 3})))

	assert.Equal(t, 1, backend.count("BatchApprove"), "a batch is one call, not one per id")
	assert.Equal(t, []int64{1, 3}, backend.lastBatchIDs)
}

func TestBatchWithNoEligibleIDsIsSilent(t *testing.T) {
	backend := newFakeBackend()
	backend.requests = []requests.Request{{ID: 2, Status: requests.StatusApproved}}

	p := newTestPresenter(t, backend, true)
	before := len(SelectNotifications(p.state))

	require.NoError(t, p.HandleEvent(BatchActionEvent(requests.ActionApprove, []int64{2})))

	assert.Equal(t, 0, backend.count("BatchApprove"))
	assert.Len(t, SelectNotifications(p.state), before, "empty batch stays silent")
}

func TestUnconfirmedBatchNeverHitsNetwork(t *testing.T) {
	backend := newFakeBackend()
	backend.requests = []requests.Request{{ID: 1, Status: requests.StatusNew}}

	p := newTestPresenter(t, backend, true)

	ev := NewEvent(EventBatchAction).WithAction(requests.ActionApprove).WithIDs([]int64{1})
	require.NoError(t, p.HandleEvent(ev))

	assert.Equal(t, 0, backend.count("BatchApprove"))
}

func TestFailedBatchRollsBackAllRows(t *testing.T) {
	backend := newFakeBackend()
	backend.requests = []requests.Request{
		{ID: 1, Status: requests.StatusNew},
		{ID: 3, Status: requests.StatusNew},
	}

	p := newTestPresenter(t, backend, true)
	backend.failWith["BatchApprove"] = assert.AnError

	require.NoError(t, p.HandleEvent(BatchActionEvent(requests.ActionApprove, []int64{1, 3})))

	for _, id := range []int64{1, 3} {
		req, ok := p.Store().RequestByID(id)
		require.True(t, ok)
		assert.Equal(t, requests.StatusNew, req.Status)
	}
}

func TestCheckoutRollsBackOnFailure(t *testing.T) {
	backend := newFakeBackend()
	backend.equipment = []equipment.Equipment{{ID: 4, Name: "centrifuge", Bookable: true}}

	p := newTestPresenter(t, backend, false)
	backend.failWith["CheckoutEquipment"] = assert.AnError

	require.NoError(t, p.HandleEvent(NewEvent(EventCheckout).WithID(4)))

	eq := p.Store().Equipment()
	require.Len(t, eq, 1)
	assert.False(t, eq[0].InUse)
	assert.Zero(t, eq[0].CurrentUserID)
}

func TestNavigateUpdatesCurrentView(t *testing.T) {
	backend := newFakeBackend()
	p := newTestPresenter(t, backend, false)

	require.NoError(t, p.HandleEvent(NavigateEvent(VMInventory)))
	assert.Equal(t, VMInventory, p.state.GetCurrentViewModel().Type())

	assert.Error(t, p.HandleEvent(NavigateEvent("kitchen")))
}

func TestSuccessNotificationExpiresFaster(t *testing.T) {
	n := NewNotification(NotifySuccess, "Done", "ok")
	assert.Equal(t, 3, n.Duration)
	assert.Equal(t, 5, NewNotification(NotifyError, "Nope", "bad").Duration)
}
