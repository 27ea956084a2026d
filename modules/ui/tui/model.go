package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/qiyaolin/labops/modules/core/requests"
	"github.com/qiyaolin/labops/modules/core/schedules"
	"github.com/qiyaolin/labops/modules/ui/core"
)

// tabOrder is the Tab/Shift+Tab cycle through the views
var tabOrder = []core.ViewModelType{
	core.VMDashboard,
	core.VMRequests,
	core.VMSchedule,
	core.VMEquipment,
	core.VMTasks,
	core.VMInventory,
}

// confirmDialog holds a destructive or batch action awaiting a yes/no
type confirmDialog struct {
	message string
	event   *core.Event
}

// activeNotification pairs a notification with its expiry deadline
type activeNotification struct {
	n         *core.Notification
	expiresAt time.Time
}

// scheduleForm is the inline editor for creating or editing an event
type scheduleForm struct {
	editID int64 // 0 = create
	inputs []textinput.Model
	focus  int
}

const (
	formTitle = iota
	formDate
	formStart
	formEnd
	formLocation
	formFieldCount
)

// Model is the main Bubble Tea model for the TUI
type Model struct {
	// Core
	presenter core.Presenter
	state     *core.AppState
	keys      KeyMap
	selector  core.ViewSelector
	pref      core.LayoutPreference

	// UI state
	width       int
	height      int
	ready       bool
	currentView core.ViewModelType

	// List cursor and scrolling
	mainIndex    int
	scrollOffset int
	visibleRows  int

	// Batch selection (requests view)
	selected map[int64]bool

	// View-specific state
	filterText   string
	filterActive bool
	mineOnly     bool
	showHelp     bool
	showHistory  bool
	dialog       *confirmDialog
	form         *scheduleForm

	// Components
	help    help.Model
	spinner spinner.Model

	// Notifications
	notifications []activeNotification
}

// NewModel creates a new TUI model
func NewModel(presenter core.Presenter, selector core.ViewSelector, pref core.LayoutPreference) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(ColorPrimary)

	h := help.New()
	h.ShowAll = false
	h.Styles.ShortKey = HelpKeyStyle
	h.Styles.ShortDesc = HelpDescStyle
	h.Styles.ShortSeparator = HelpDescStyle

	// Fetch initial state from presenter (already loaded)
	state := core.NewAppState()
	if presenter != nil {
		for _, vt := range tabOrder {
			if vm, err := presenter.GetViewModel(vt); err == nil && vm != nil {
				state.UpdateViewModel(vm)
			}
		}
	}

	return &Model{
		presenter:     presenter,
		state:         state,
		keys:          DefaultKeyMap(),
		selector:      selector,
		pref:          pref,
		currentView:   core.VMDashboard,
		selected:      make(map[int64]bool),
		help:          h,
		spinner:       s,
		visibleRows:   10,
		notifications: make([]activeNotification, 0),
	}
}

// variant picks the rendering for the current view from the live width
func (m *Model) variant() core.Variant {
	return m.selector.Select(m.width, m.currentView, m.pref)
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		tea.WindowSize(),
	)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.visibleRows = m.height - 9
		if m.visibleRows < 3 {
			m.visibleRows = 3
		}

	case tea.KeyMsg:
		if m.form != nil {
			cmd := m.handleFormKey(msg)
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
		} else if m.dialog != nil {
			cmd := m.handleDialogKey(msg)
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
		} else if m.filterActive {
			cmd := m.handleFilterInput(msg)
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
		} else if m.showHelp {
			m.showHelp = false
		} else {
			cmd := m.handleKeyPress(msg)
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case stateUpdateMsg:
		m.state.UpdateViewModel(msg.update.ViewModel)
		m.clampCursor()

	case notificationMsg:
		dur := time.Duration(msg.notification.Duration) * time.Second
		if dur <= 0 {
			dur = 3 * time.Second
		}
		m.notifications = append(m.notifications, activeNotification{
			n:         msg.notification,
			expiresAt: time.Now().Add(dur),
		})
		cmds = append(cmds, tea.Tick(dur, func(t time.Time) tea.Msg {
			return notifyExpireMsg(t)
		}))

	case notifyExpireMsg:
		now := time.Time(msg)
		kept := m.notifications[:0]
		for _, a := range m.notifications {
			if a.expiresAt.After(now) {
				kept = append(kept, a)
			}
		}
		m.notifications = kept

	case errMsg:
		m.notifications = append(m.notifications, activeNotification{
			n:         core.NewNotification(core.NotifyError, "Error", msg.err.Error()),
			expiresAt: time.Now().Add(5 * time.Second),
		})
	}

	return m, tea.Batch(cmds...)
}

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "\n  Loading..."
	}

	header := m.renderHeader()
	tabs := m.renderTabs()
	main := m.renderMainContent()
	footer := m.renderFooter()

	body := lipgloss.JoinVertical(lipgloss.Left, header, tabs, main, footer)

	if m.form != nil {
		return m.overlay(body, m.renderForm())
	}
	if m.dialog != nil {
		return m.overlay(body, m.renderDialog())
	}
	if swap := m.openSwap(); swap != nil {
		return m.overlay(body, m.renderSwapModal(swap))
	}
	return body
}

// sendEvent dispatches a UI event to the presenter off the render loop
func (m *Model) sendEvent(ev *core.Event) tea.Cmd {
	presenter := m.presenter
	return func() tea.Msg {
		if presenter == nil {
			return nil
		}
		if err := presenter.HandleEvent(ev); err != nil {
			return errMsg{err: err}
		}
		return nil
	}
}

// openSwap returns the swap in the approval modal, nil when closed
func (m *Model) openSwap() *tasksOpenSwap {
	vm := m.state.Tasks
	if vm == nil || vm.OpenSwap == nil {
		return nil
	}
	return &tasksOpenSwap{swap: vm.OpenSwap}
}

// handleKeyPress processes keyboard input outside dialogs and forms
func (m *Model) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	// The swap modal owns the keyboard while it is open
	if m.openSwap() != nil {
		return m.handleSwapModalKey(msg)
	}

	if msg.String() == "esc" {
		if m.showHistory {
			m.showHistory = false
			return nil
		}
		if len(m.selected) > 0 {
			m.selected = make(map[int64]bool)
			return nil
		}
		if m.filterText != "" {
			m.filterText = ""
			return m.sendEvent(core.FilterEvent("").WithTarget(string(m.currentView)))
		}
		return nil
	}

	switch {
	// Quit
	case key.Matches(msg, m.keys.Quit):
		return tea.Sequence(m.sendEvent(core.NewEvent(core.EventQuit)), tea.Quit)

	// Help toggle
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return nil

	// View cycling
	case key.Matches(msg, m.keys.Tab):
		return m.cycleView(1)
	case key.Matches(msg, m.keys.ShiftTab):
		return m.cycleView(-1)

	// Direct view tabs
	case key.Matches(msg, m.keys.GoDashboard):
		return m.switchView(core.VMDashboard)
	case key.Matches(msg, m.keys.GoRequests):
		return m.switchView(core.VMRequests)
	case key.Matches(msg, m.keys.GoSchedule):
		return m.switchView(core.VMSchedule)
	case key.Matches(msg, m.keys.GoEquipment):
		return m.switchView(core.VMEquipment)
	case key.Matches(msg, m.keys.GoTasks):
		return m.switchView(core.VMTasks)
	case key.Matches(msg, m.keys.GoInventory):
		return m.switchView(core.VMInventory)

	// Cursor
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
		return nil
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
		return nil
	case key.Matches(msg, m.keys.PageUp):
		m.moveCursor(-m.visibleRows)
		return nil
	case key.Matches(msg, m.keys.PageDown):
		m.moveCursor(m.visibleRows)
		return nil
	case key.Matches(msg, m.keys.Home):
		m.mainIndex = 0
		m.scrollOffset = 0
		return nil
	case key.Matches(msg, m.keys.End):
		m.moveCursor(m.listLen())
		return nil

	// Refresh
	case key.Matches(msg, m.keys.Refresh):
		return m.sendEvent(core.NewEvent(core.EventRefresh))

	// Search
	case key.Matches(msg, m.keys.Filter):
		m.filterActive = true
		return nil

	// Layout toggle
	case key.Matches(msg, m.keys.Layout):
		if m.pref == core.PrefCards {
			m.pref = core.PrefTable
		} else {
			m.pref = core.PrefCards
		}
		return m.sendEvent(core.NewEvent(core.EventToggleLayout))
	}

	switch m.currentView {
	case core.VMDashboard:
		return m.handleDashboardKey(msg)
	case core.VMRequests:
		return m.handleRequestsKey(msg)
	case core.VMSchedule:
		return m.handleScheduleKey(msg)
	case core.VMEquipment:
		return m.handleEquipmentKey(msg)
	case core.VMTasks:
		return m.handleTasksKey(msg)
	}
	return nil
}

func (m *Model) handleDashboardKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Enter) && !m.state.Dashboard.WelcomeDismissed {
		return m.sendEvent(core.NewEvent(core.EventDismissWelcome))
	}
	return nil
}

func (m *Model) handleRequestsKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Space):
		if req, ok := m.cursorRequest(); ok {
			if m.selected[req.ID] {
				delete(m.selected, req.ID)
			} else {
				m.selected[req.ID] = true
			}
			m.moveCursor(1)
		}
		return nil

	case key.Matches(msg, m.keys.Approve):
		return m.requestAction(requests.ActionApprove)
	case key.Matches(msg, m.keys.Reject):
		return m.requestAction(requests.ActionReject)
	case key.Matches(msg, m.keys.Order):
		return m.requestAction(requests.ActionPlaceOrder)
	case key.Matches(msg, m.keys.Received):
		return m.requestAction(requests.ActionMarkReceived)
	case key.Matches(msg, m.keys.Reorder):
		return m.requestAction(requests.ActionReorder)

	case key.Matches(msg, m.keys.Delete):
		if req, ok := m.cursorRequest(); ok {
			m.dialog = &confirmDialog{
				message: fmt.Sprintf("Delete request #%d (%s)?", req.ID, req.ItemName),
				event:   core.NewEvent(core.EventDeleteRequest).WithID(req.ID),
			}
		}
		return nil

	case key.Matches(msg, m.keys.History):
		if req, ok := m.cursorRequest(); ok {
			m.showHistory = true
			return m.sendEvent(core.NewEvent(core.EventViewHistory).WithID(req.ID))
		}
		return nil

	case key.Matches(msg, m.keys.Mine):
		m.mineOnly = !m.mineOnly
		ev := core.FilterEvent(m.filterText).WithTarget(string(core.VMRequests))
		if m.mineOnly {
			ev = ev.WithData("mine", "true")
		}
		return m.sendEvent(ev)
	}
	return nil
}

// requestAction routes an action key: with an active selection it becomes
// a batch behind a confirmation dialog naming the exact count, otherwise
// it applies to the row under the cursor.
func (m *Model) requestAction(action requests.Action) tea.Cmd {
	if len(m.selected) > 0 {
		ids := make([]int64, 0, len(m.selected))
		for id := range m.selected {
			ids = append(ids, id)
		}
		m.dialog = &confirmDialog{
			message: fmt.Sprintf("Apply %s to %d selected request(s)?", action, len(ids)),
			event:   core.BatchActionEvent(action, ids),
		}
		m.selected = make(map[int64]bool)
		return nil
	}
	if req, ok := m.cursorRequest(); ok {
		return m.sendEvent(core.RequestActionEvent(action, req.ID))
	}
	return nil
}

func (m *Model) handleScheduleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.New):
		m.form = newScheduleForm(nil)
		return textinput.Blink

	case key.Matches(msg, m.keys.Enter):
		if ev, ok := m.cursorSchedule(); ok {
			m.form = newScheduleForm(&ev)
			return textinput.Blink
		}
		return nil

	case key.Matches(msg, m.keys.Delete):
		if ev, ok := m.cursorSchedule(); ok {
			m.dialog = &confirmDialog{
				message: fmt.Sprintf("Delete event %q on %s?", ev.Title, ev.Date),
				event:   core.NewEvent(core.EventDeleteSchedule).WithID(ev.ID),
			}
		}
		return nil
	}
	return nil
}

func (m *Model) handleEquipmentKey(msg tea.KeyMsg) tea.Cmd {
	eq, ok := m.cursorEquipment()
	if !ok {
		return nil
	}
	switch {
	case key.Matches(msg, m.keys.Book):
		return m.sendEvent(core.NewEvent(core.EventBookEquipment).WithID(eq.ID))
	case key.Matches(msg, m.keys.Reject):
		return m.sendEvent(core.NewEvent(core.EventCancelBooking).WithID(eq.ID))
	case key.Matches(msg, m.keys.Checkout):
		return m.sendEvent(core.NewEvent(core.EventCheckout).WithID(eq.ID))
	}
	return nil
}

func (m *Model) handleTasksKey(msg tea.KeyMsg) tea.Cmd {
	vm := m.state.Tasks
	switch {
	case key.Matches(msg, m.keys.Complete):
		if m.mainIndex < len(vm.Instances) {
			ins := vm.Instances[m.mainIndex]
			return m.sendEvent(core.NewEvent(core.EventCompleteTask).WithID(ins.ID))
		}
		return nil

	case key.Matches(msg, m.keys.Enter):
		// Swap rows follow the instance rows in the combined list
		swapIdx := m.mainIndex - len(vm.Instances)
		if swapIdx >= 0 && swapIdx < len(vm.Resolvable) {
			sw := vm.Resolvable[swapIdx]
			return m.sendEvent(core.NewEvent(core.EventOpenSwap).WithSwapKind(sw.Kind).WithID(sw.ID))
		}
		return nil
	}
	return nil
}

func (m *Model) handleSwapModalKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Approve):
		return m.sendEvent(core.NewEvent(core.EventApproveSwap))
	case key.Matches(msg, m.keys.Reject):
		return m.sendEvent(core.NewEvent(core.EventRejectSwap))
	case key.Matches(msg, m.keys.Escape):
		return m.sendEvent(core.NewEvent(core.EventCloseSwap))
	}
	return nil
}

func (m *Model) handleDialogKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "enter":
		ev := m.dialog.event
		m.dialog = nil
		return m.sendEvent(ev)
	case "n", "esc":
		m.dialog = nil
	}
	return nil
}

func (m *Model) handleFilterInput(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		m.filterActive = false
		return m.sendEvent(core.FilterEvent(m.filterText).WithTarget(string(m.currentView)))
	case "esc":
		m.filterActive = false
		m.filterText = ""
		return m.sendEvent(core.FilterEvent("").WithTarget(string(m.currentView)))
	case "backspace":
		if len(m.filterText) > 0 {
			m.filterText = m.filterText[:len(m.filterText)-1]
		}
	default:
		if len(msg.Runes) > 0 {
			m.filterText += string(msg.Runes)
		}
	}
	return nil
}

// ============================================
// Schedule form
// ============================================

func newScheduleForm(edit *schedules.Event) *scheduleForm {
	f := &scheduleForm{inputs: make([]textinput.Model, formFieldCount)}
	placeholders := []string{"Title", "2006-01-02", "15:04 (optional)", "15:04 (optional)", "Location (optional)"}
	for i := range f.inputs {
		in := textinput.New()
		in.Placeholder = placeholders[i]
		in.CharLimit = 80
		f.inputs[i] = in
	}
	if edit != nil {
		f.editID = edit.ID
		f.inputs[formTitle].SetValue(edit.Title)
		f.inputs[formDate].SetValue(edit.Date)
		if edit.StartTime != nil {
			f.inputs[formStart].SetValue(*edit.StartTime)
		}
		if edit.EndTime != nil {
			f.inputs[formEnd].SetValue(*edit.EndTime)
		}
		f.inputs[formLocation].SetValue(edit.Location)
	}
	f.inputs[formTitle].Focus()
	return f
}

func (m *Model) handleFormKey(msg tea.KeyMsg) tea.Cmd {
	f := m.form
	switch msg.String() {
	case "esc":
		m.form = nil
		return nil
	case "tab", "down":
		f.inputs[f.focus].Blur()
		f.focus = (f.focus + 1) % formFieldCount
		return f.inputs[f.focus].Focus()
	case "shift+tab", "up":
		f.inputs[f.focus].Blur()
		f.focus = (f.focus + formFieldCount - 1) % formFieldCount
		return f.inputs[f.focus].Focus()
	case "enter":
		ev := f.toEvent()
		m.form = nil
		if f.editID != 0 {
			return m.sendEvent(core.NewEvent(core.EventUpdateSchedule).WithID(f.editID).WithValue(ev))
		}
		return m.sendEvent(core.NewEvent(core.EventCreateSchedule).WithValue(ev))
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *scheduleForm) toEvent() schedules.Event {
	ev := schedules.Event{
		ID:       f.editID,
		Title:    f.inputs[formTitle].Value(),
		Date:     f.inputs[formDate].Value(),
		Location: f.inputs[formLocation].Value(),
		Status:   schedules.StatusScheduled,
	}
	if v := f.inputs[formStart].Value(); v != "" {
		ev.StartTime = &v
	}
	if v := f.inputs[formEnd].Value(); v != "" {
		ev.EndTime = &v
	}
	return ev
}

// ============================================
// Cursor helpers
// ============================================

func (m *Model) switchView(view core.ViewModelType) tea.Cmd {
	if view == m.currentView {
		return nil
	}
	m.currentView = view
	m.mainIndex = 0
	m.scrollOffset = 0
	m.showHistory = false
	return m.sendEvent(core.NavigateEvent(view))
}

func (m *Model) cycleView(dir int) tea.Cmd {
	cur := 0
	for i, v := range tabOrder {
		if v == m.currentView {
			cur = i
			break
		}
	}
	next := (cur + dir + len(tabOrder)) % len(tabOrder)
	return m.switchView(tabOrder[next])
}

func (m *Model) listLen() int {
	switch m.currentView {
	case core.VMRequests:
		return len(m.state.Requests.Requests)
	case core.VMSchedule:
		return len(m.state.Schedule.Events)
	case core.VMEquipment:
		return len(m.state.Equipment.Equipment)
	case core.VMTasks:
		return len(m.state.Tasks.Instances) + len(m.state.Tasks.Resolvable)
	case core.VMInventory:
		return len(m.state.Inventory.Groups)
	}
	return 0
}

func (m *Model) moveCursor(delta int) {
	max := m.listLen() - 1
	m.mainIndex += delta
	if m.mainIndex < 0 {
		m.mainIndex = 0
	}
	if m.mainIndex > max {
		m.mainIndex = max
	}
	if m.mainIndex < 0 {
		m.mainIndex = 0
	}
	// Keep the cursor inside the visible window
	if m.mainIndex < m.scrollOffset {
		m.scrollOffset = m.mainIndex
	}
	if m.mainIndex >= m.scrollOffset+m.visibleRows {
		m.scrollOffset = m.mainIndex - m.visibleRows + 1
	}
}

func (m *Model) clampCursor() {
	max := m.listLen() - 1
	if m.mainIndex > max {
		m.mainIndex = max
	}
	if m.mainIndex < 0 {
		m.mainIndex = 0
	}
	if m.scrollOffset > m.mainIndex {
		m.scrollOffset = m.mainIndex
	}
}

func (m *Model) cursorRequest() (requests.Request, bool) {
	rs := m.state.Requests.Requests
	if m.mainIndex >= 0 && m.mainIndex < len(rs) {
		return rs[m.mainIndex], true
	}
	return requests.Request{}, false
}

func (m *Model) cursorSchedule() (schedules.Event, bool) {
	evs := m.state.Schedule.Events
	if m.mainIndex >= 0 && m.mainIndex < len(evs) {
		return evs[m.mainIndex], true
	}
	return schedules.Event{}, false
}

func (m *Model) cursorEquipment() (eq equipmentRow, ok bool) {
	all := m.state.Equipment.Equipment
	if m.mainIndex >= 0 && m.mainIndex < len(all) {
		return equipmentRow{all[m.mainIndex]}, true
	}
	return equipmentRow{}, false
}

// ============================================
// Messages
// ============================================

type stateUpdateMsg struct {
	update core.StateUpdate
}

type notificationMsg struct {
	notification *core.Notification
}

type notifyExpireMsg time.Time

type errMsg struct {
	err error
}

func (e errMsg) Error() string { return e.err.Error() }
