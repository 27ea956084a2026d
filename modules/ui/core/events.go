package core

import (
	"github.com/qiyaolin/labops/modules/core/requests"
	"github.com/qiyaolin/labops/modules/core/tasks"
)

// EventType identifies the type of UI event
type EventType string

const (
	// Navigation events
	EventNavigate EventType = "navigate"
	EventRefresh  EventType = "refresh"
	EventQuit     EventType = "quit"

	// Request events
	EventRequestAction EventType = "request_action"
	EventBatchAction   EventType = "batch_action"
	EventDeleteRequest EventType = "delete_request"
	EventViewHistory   EventType = "view_history"

	// Schedule events
	EventCreateSchedule EventType = "create_schedule"
	EventUpdateSchedule EventType = "update_schedule"
	EventDeleteSchedule EventType = "delete_schedule"

	// Equipment events
	EventBookEquipment EventType = "book_equipment"
	EventCancelBooking EventType = "cancel_booking"
	EventCheckout      EventType = "checkout_equipment"

	// Task events
	EventCompleteTask EventType = "complete_task"
	EventOpenSwap     EventType = "open_swap"
	EventApproveSwap  EventType = "approve_swap"
	EventRejectSwap   EventType = "reject_swap"
	EventCloseSwap    EventType = "close_swap"

	// UI state events
	EventFilter         EventType = "filter"
	EventToggleLayout   EventType = "toggle_layout"
	EventDismissWelcome EventType = "dismiss_welcome"
)

// Event represents a user action in the UI
type Event struct {
	Type      EventType         `json:"type"`
	Target    string            `json:"target,omitempty"` // View or element target
	ID        int64             `json:"id,omitempty"`
	IDs       []int64           `json:"ids,omitempty"`
	Action    requests.Action   `json:"action,omitempty"`
	SwapKind  tasks.SwapKind    `json:"swap_kind,omitempty"`
	Confirmed bool              `json:"confirmed,omitempty"` // Set once the user passed the confirmation dialog
	Value     interface{}       `json:"value,omitempty"`     // Generic payload
	Data      map[string]string `json:"data,omitempty"`      // Additional data (fund, location, ...)
}

// NewEvent creates a new event
func NewEvent(eventType EventType) *Event {
	return &Event{
		Type: eventType,
		Data: make(map[string]string),
	}
}

// WithTarget sets the target
func (e *Event) WithTarget(target string) *Event {
	e.Target = target
	return e
}

// WithID sets the resource ID
func (e *Event) WithID(id int64) *Event {
	e.ID = id
	return e
}

// WithIDs sets the batch selection
func (e *Event) WithIDs(ids []int64) *Event {
	e.IDs = ids
	return e
}

// WithAction sets the request action
func (e *Event) WithAction(action requests.Action) *Event {
	e.Action = action
	return e
}

// WithSwapKind sets the swap request kind
func (e *Event) WithSwapKind(kind tasks.SwapKind) *Event {
	e.SwapKind = kind
	return e
}

// WithConfirmed marks the event as confirmed
func (e *Event) WithConfirmed() *Event {
	e.Confirmed = true
	return e
}

// WithValue sets the value
func (e *Event) WithValue(value interface{}) *Event {
	e.Value = value
	return e
}

// WithData adds data key-value pairs
func (e *Event) WithData(key, value string) *Event {
	if e.Data == nil {
		e.Data = make(map[string]string)
	}
	e.Data[key] = value
	return e
}

// ============================================
// Notification events (from presenter to view)
// ============================================

// NotificationType identifies the type of notification
type NotificationType string

const (
	NotifyInfo    NotificationType = "info"
	NotifySuccess NotificationType = "success"
	NotifyWarning NotificationType = "warning"
	NotifyError   NotificationType = "error"
)

// Notification represents a message to display to the user. Non-error
// notifications expire after 3 seconds, errors stay for 5.
type Notification struct {
	Type        NotificationType `json:"type"`
	Title       string           `json:"title"`
	Message     string           `json:"message"`
	Duration    int              `json:"duration"` // seconds, 0 = persistent
	Dismissable bool             `json:"dismissable"`
}

// NewNotification creates a new notification
func NewNotification(ntype NotificationType, title, message string) *Notification {
	duration := 3
	if ntype == NotifyError {
		duration = 5
	}
	return &Notification{
		Type:        ntype,
		Title:       title,
		Message:     message,
		Duration:    duration,
		Dismissable: true,
	}
}

// ============================================
// State update events (from presenter to view)
// ============================================

// StateUpdate represents a state change notification
type StateUpdate struct {
	ViewType  ViewModelType `json:"view_type"`
	ViewModel ViewModel     `json:"view_model"`
}

// ============================================
// Common event helpers
// ============================================

// NavigateEvent creates a navigation event
func NavigateEvent(target ViewModelType) *Event {
	return NewEvent(EventNavigate).WithTarget(string(target))
}

// RequestActionEvent creates a single-request action event
func RequestActionEvent(action requests.Action, id int64) *Event {
	return NewEvent(EventRequestAction).WithAction(action).WithID(id)
}

// BatchActionEvent creates a confirmed batch action event
func BatchActionEvent(action requests.Action, ids []int64) *Event {
	return NewEvent(EventBatchAction).WithAction(action).WithIDs(ids).WithConfirmed()
}

// FilterEvent creates a filter event
func FilterEvent(filterText string) *Event {
	return NewEvent(EventFilter).WithValue(filterText)
}
