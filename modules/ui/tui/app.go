package tui

import (
	"context"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/qiyaolin/labops/modules/ui/core"
)

// TUIView implements the core.View interface for Bubble Tea
type TUIView struct {
	mu             sync.RWMutex
	presenter      core.Presenter
	program        *tea.Program
	model          *Model
	ctx            context.Context
	cancel         context.CancelFunc
	selector       core.ViewSelector
	pref           core.LayoutPreference
	pendingUpdates []core.StateUpdate // Buffered state updates if received before program starts
}

// NewTUIView creates a new TUI view
func NewTUIView(selector core.ViewSelector, pref core.LayoutPreference) *TUIView {
	return &TUIView{selector: selector, pref: pref}
}

// Initialize sets up the view with a presenter
func (v *TUIView) Initialize(presenter core.Presenter) error {
	v.mu.Lock()
	v.presenter = presenter
	v.model = NewModel(presenter, v.selector, v.pref)
	v.mu.Unlock()

	// Subscribe outside the lock: the callback may call UpdateState
	presenter.Subscribe(func(update core.StateUpdate) {
		v.UpdateState(update)
	})
	presenter.SubscribeNotifications(func(n *core.Notification) {
		v.ShowNotification(n)
	})

	return nil
}

// Run starts the TUI main loop (blocking)
func (v *TUIView) Run(ctx context.Context) error {
	v.mu.Lock()
	v.ctx, v.cancel = context.WithCancel(ctx)
	pendingUpdates := v.pendingUpdates
	v.pendingUpdates = nil
	v.program = tea.NewProgram(
		*v.model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	program := v.program
	v.mu.Unlock()

	type runResult struct {
		model tea.Model
		err   error
	}
	resultCh := make(chan runResult, 1)
	go func() {
		finalModel, err := program.Run()
		resultCh <- runResult{model: finalModel, err: err}
	}()

	// Apply updates that arrived before the program started
	for _, update := range pendingUpdates {
		program.Send(stateUpdateMsg{update: update})
	}

	select {
	case <-v.ctx.Done():
		program.Quit()
		return v.ctx.Err()
	case result := <-resultCh:
		v.mu.Lock()
		if finalModel, ok := result.model.(Model); ok {
			v.model = &finalModel
		}
		v.mu.Unlock()
		return result.err
	}
}

// Stop gracefully stops the TUI
func (v *TUIView) Stop() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.cancel != nil {
		v.cancel()
	}
	if v.program != nil {
		v.program.Quit()
	}
	return nil
}

// UpdateState updates the view with new state from the presenter
func (v *TUIView) UpdateState(update core.StateUpdate) {
	v.mu.Lock()
	program := v.program
	if program == nil {
		// Buffer if program not started yet
		v.pendingUpdates = append(v.pendingUpdates, update)
		v.mu.Unlock()
		return
	}
	v.mu.Unlock()

	program.Send(stateUpdateMsg{update: update})
}

// ShowNotification displays a notification
func (v *TUIView) ShowNotification(notification *core.Notification) {
	v.mu.RLock()
	program := v.program
	v.mu.RUnlock()

	if program != nil {
		program.Send(notificationMsg{notification: notification})
	}
}

// GetCurrentView returns the current active view type
func (v *TUIView) GetCurrentView() core.ViewModelType {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if v.model != nil {
		return v.model.currentView
	}
	return core.VMDashboard
}

// ===========================================
// ViewFactory implementation
// ===========================================

// TUIFactory creates TUI views
type TUIFactory struct {
	Selector core.ViewSelector
	Pref     core.LayoutPreference
}

// NewTUIFactory creates a new TUI factory
func NewTUIFactory(selector core.ViewSelector, pref core.LayoutPreference) *TUIFactory {
	return &TUIFactory{Selector: selector, Pref: pref}
}

// CreateView creates a TUI view
func (f *TUIFactory) CreateView(_ string, presenter core.Presenter) (core.View, error) {
	view := NewTUIView(f.Selector, f.Pref)
	if err := view.Initialize(presenter); err != nil {
		return nil, fmt.Errorf("failed to initialize TUI view: %w", err)
	}
	return view, nil
}

// AvailableTypes returns the available view types
func (f *TUIFactory) AvailableTypes() []string {
	return []string{"tui"}
}
