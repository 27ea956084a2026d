package core

import (
	"time"

	"github.com/qiyaolin/labops/modules/core/equipment"
	"github.com/qiyaolin/labops/modules/core/inventory"
	"github.com/qiyaolin/labops/modules/core/requests"
	"github.com/qiyaolin/labops/modules/core/schedules"
	"github.com/qiyaolin/labops/modules/core/tasks"
)

// ViewModelType identifies the type of view model
type ViewModelType string

const (
	VMDashboard ViewModelType = "dashboard"
	VMRequests  ViewModelType = "requests"
	VMSchedule  ViewModelType = "schedule"
	VMEquipment ViewModelType = "equipment"
	VMTasks     ViewModelType = "tasks"
	VMInventory ViewModelType = "inventory"
)

// ViewModel is the base interface for all view models
type ViewModel interface {
	Type() ViewModelType
	LastUpdated() time.Time
}

// BaseViewModel provides common fields for all view models
type BaseViewModel struct {
	VMType    ViewModelType `json:"type"`
	UpdatedAt time.Time     `json:"updated_at"`
	Error     string        `json:"error,omitempty"`
	IsLoading bool          `json:"is_loading"`
}

func (vm *BaseViewModel) Type() ViewModelType    { return vm.VMType }
func (vm *BaseViewModel) LastUpdated() time.Time { return vm.UpdatedAt }

// DashboardVM summarizes every collection for the landing view
type DashboardVM struct {
	BaseViewModel
	Username         string `json:"username"`
	IsAdmin          bool   `json:"is_admin"`
	WelcomeDismissed bool   `json:"welcome_dismissed"`
	NewRequests      int    `json:"new_requests"`
	ApprovedRequests int    `json:"approved_requests"`
	OrderedRequests  int    `json:"ordered_requests"`
	UpcomingEvents   int    `json:"upcoming_events"`
	EquipmentInUse   int    `json:"equipment_in_use"`
	PendingSwaps     int    `json:"pending_swaps"`
	ExpiringItems    int    `json:"expiring_items"`
	LowStockItems    int    `json:"low_stock_items"`
}

// RequestsVM holds the purchase request list view state
type RequestsVM struct {
	BaseViewModel
	Requests     []requests.Request      `json:"requests"`
	StatusCounts map[requests.Status]int `json:"status_counts"`
	Filter       requests.FilterOptions  `json:"filter"`
	Selected     []int64                 `json:"selected,omitempty"`
	HistoryFor   int64                   `json:"history_for,omitempty"`
	History      []requests.HistoryEntry `json:"history,omitempty"`
}

// ScheduleVM holds the calendar view state
type ScheduleVM struct {
	BaseViewModel
	Events []schedules.Event       `json:"events"`
	Filter schedules.FilterOptions `json:"filter"`
}

// EquipmentVM holds the equipment board state
type EquipmentVM struct {
	BaseViewModel
	Equipment []equipment.Equipment   `json:"equipment"`
	Filter    equipment.FilterOptions `json:"filter"`
	InUse     int                     `json:"in_use"`
}

// TasksVM holds task instances plus the swap inbox
type TasksVM struct {
	BaseViewModel
	Instances  []tasks.Instance    `json:"instances"`
	Swaps      []tasks.SwapRequest `json:"swaps"`
	Resolvable []tasks.SwapRequest `json:"resolvable"`
	OpenSwap   *tasks.SwapRequest  `json:"open_swap,omitempty"` // Swap shown in the approval modal
}

// InventoryVM holds the grouped stock view
type InventoryVM struct {
	BaseViewModel
	Groups []inventory.Group `json:"groups"`
	Search string            `json:"search,omitempty"`
}
