package core

import (
	"context"

	"github.com/qiyaolin/labops/modules/core/equipment"
	"github.com/qiyaolin/labops/modules/core/inventory"
	"github.com/qiyaolin/labops/modules/core/requests"
	"github.com/qiyaolin/labops/modules/core/schedules"
	"github.com/qiyaolin/labops/modules/core/tasks"
)

// View is the interface that all UI implementations must satisfy
type View interface {
	// Initialize sets up the view
	Initialize(presenter Presenter) error

	// Run starts the view's main loop (blocking)
	Run(ctx context.Context) error

	// Stop gracefully stops the view
	Stop() error

	// UpdateState updates the view with new state
	UpdateState(update StateUpdate)

	// ShowNotification displays a notification
	ShowNotification(notification *Notification)

	// GetCurrentView returns the current active view type
	GetCurrentView() ViewModelType
}

// Presenter handles the business logic and prepares view models.
// It's the bridge between the backend client and the views.
type Presenter interface {
	// Initialize sets up the presenter and performs the first load
	Initialize(ctx context.Context) error

	// HandleEvent processes a user event
	HandleEvent(event *Event) error

	// GetViewModel returns the current view model for a view type
	GetViewModel(viewType ViewModelType) (ViewModel, error)

	// Subscribe registers a callback for state updates
	Subscribe(callback func(StateUpdate))

	// SubscribeNotifications registers a callback for notifications
	SubscribeNotifications(callback func(*Notification))

	// Refresh forces a reload of all collections
	Refresh() error

	// Shutdown cleans up resources
	Shutdown() error
}

// Backend is the slice of the API client the presenter depends on.
// *api.Client satisfies it; tests substitute a recording fake.
type Backend interface {
	// Purchase requests
	ListRequests(ctx context.Context) ([]requests.Request, error)
	RequestHistory(ctx context.Context, id int64) ([]requests.HistoryEntry, error)
	ApproveRequest(ctx context.Context, id int64) error
	RejectRequest(ctx context.Context, id int64) error
	PlaceOrder(ctx context.Context, id, fundID int64) error
	MarkReceived(ctx context.Context, id int64, location string) error
	Reorder(ctx context.Context, id int64) error
	DeleteRequest(ctx context.Context, id int64) error
	BatchApprove(ctx context.Context, ids []int64) error
	BatchReject(ctx context.Context, ids []int64) error
	BatchPlaceOrder(ctx context.Context, ids []int64, fundID int64) error
	BatchMarkReceived(ctx context.Context, ids []int64, location string) error
	BatchReorder(ctx context.Context, ids []int64) error

	// Schedules
	ListSchedules(ctx context.Context) ([]schedules.Event, error)
	CreateSchedule(ctx context.Context, ev schedules.Event) error
	UpdateSchedule(ctx context.Context, ev schedules.Event) error
	DeleteSchedule(ctx context.Context, id int64) error

	// Equipment
	ListEquipment(ctx context.Context) ([]equipment.Equipment, error)
	BookEquipment(ctx context.Context, id int64) error
	CancelBooking(ctx context.Context, id int64) error
	CheckoutEquipment(ctx context.Context, id int64) error

	// Tasks and swaps
	ListTaskInstances(ctx context.Context) ([]tasks.Instance, error)
	CompleteTask(ctx context.Context, id int64) error
	ListSwapRequests(ctx context.Context) ([]tasks.SwapRequest, error)
	GetSwapRequest(ctx context.Context, kind tasks.SwapKind, id int64) (*tasks.SwapRequest, error)
	ResolveSwap(ctx context.Context, kind tasks.SwapKind, id int64, approve bool) error

	// Inventory
	ListItems(ctx context.Context) ([]inventory.Item, error)
}
