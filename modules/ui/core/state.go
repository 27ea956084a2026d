package core

import (
	"sync"
	"time"
)

// AppState represents the global application state
type AppState struct {
	mu sync.RWMutex

	// Current view
	CurrentView ViewModelType

	// View models (cached)
	Dashboard *DashboardVM
	Requests  *RequestsVM
	Schedule  *ScheduleVM
	Equipment *EquipmentVM
	Tasks     *TasksVM
	Inventory *InventoryVM

	// Global state
	IsConnected   bool
	Initializing  bool // True until the first full load completes
	LastRefresh   time.Time
	Notifications []*Notification
}

// NewAppState creates a new application state
func NewAppState() *AppState {
	return &AppState{
		CurrentView:   VMDashboard,
		Initializing:  true,
		Dashboard:     &DashboardVM{BaseViewModel: BaseViewModel{VMType: VMDashboard}},
		Requests:      &RequestsVM{BaseViewModel: BaseViewModel{VMType: VMRequests}},
		Schedule:      &ScheduleVM{BaseViewModel: BaseViewModel{VMType: VMSchedule}},
		Equipment:     &EquipmentVM{BaseViewModel: BaseViewModel{VMType: VMEquipment}},
		Tasks:         &TasksVM{BaseViewModel: BaseViewModel{VMType: VMTasks}},
		Inventory:     &InventoryVM{BaseViewModel: BaseViewModel{VMType: VMInventory}},
		Notifications: make([]*Notification, 0),
	}
}

// GetCurrentViewModel returns the view model for the current view
func (s *AppState) GetCurrentViewModel() ViewModel {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch s.CurrentView {
	case VMRequests:
		return s.Requests
	case VMSchedule:
		return s.Schedule
	case VMEquipment:
		return s.Equipment
	case VMTasks:
		return s.Tasks
	case VMInventory:
		return s.Inventory
	default:
		return s.Dashboard
	}
}

// SetCurrentView changes the current view
func (s *AppState) SetCurrentView(view ViewModelType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.CurrentView = view
}

// UpdateViewModel updates a specific view model
func (s *AppState) UpdateViewModel(vm ViewModel) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch v := vm.(type) {
	case *DashboardVM:
		s.Dashboard = v
	case *RequestsVM:
		s.Requests = v
	case *ScheduleVM:
		s.Schedule = v
	case *EquipmentVM:
		s.Equipment = v
	case *TasksVM:
		s.Tasks = v
	case *InventoryVM:
		s.Inventory = v
	}
}

// AddNotification adds a notification
func (s *AppState) AddNotification(n *Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Notifications = append(s.Notifications, n)
}

// RemoveNotification removes a notification
func (s *AppState) RemoveNotification(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index >= 0 && index < len(s.Notifications) {
		s.Notifications = append(s.Notifications[:index], s.Notifications[index+1:]...)
	}
}

// ClearNotifications clears all notifications
func (s *AppState) ClearNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Notifications = make([]*Notification, 0)
}

// SelectNotifications returns all notifications
func SelectNotifications(state *AppState) []*Notification {
	state.mu.RLock()
	defer state.mu.RUnlock()
	return state.Notifications
}
