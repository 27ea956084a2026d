package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keyboard shortcuts
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding
	Tab      key.Binding
	ShiftTab key.Binding

	// View tabs
	GoDashboard key.Binding
	GoRequests  key.Binding
	GoSchedule  key.Binding
	GoEquipment key.Binding
	GoTasks     key.Binding
	GoInventory key.Binding

	// Actions
	Enter   key.Binding
	Space   key.Binding
	Escape  key.Binding
	Refresh key.Binding

	// Request actions
	Approve  key.Binding
	Reject   key.Binding
	Order    key.Binding
	Received key.Binding
	Reorder  key.Binding
	Delete   key.Binding
	History  key.Binding

	// Schedule / equipment / task actions
	New      key.Binding
	Book     key.Binding
	Checkout key.Binding
	Complete key.Binding

	// Other
	Filter key.Binding
	Mine   key.Binding
	Layout key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("PgUp", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("PgDn", "page down"),
		),
		Home: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("Home", "go to start"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("End/G", "go to end"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "next view"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-Tab", "prev view"),
		),

		// View tabs
		GoDashboard: key.NewBinding(
			key.WithKeys("ctrl+1"),
			key.WithHelp("C-1", "dashboard"),
		),
		GoRequests: key.NewBinding(
			key.WithKeys("ctrl+2"),
			key.WithHelp("C-2", "requests"),
		),
		GoSchedule: key.NewBinding(
			key.WithKeys("ctrl+3"),
			key.WithHelp("C-3", "schedule"),
		),
		GoEquipment: key.NewBinding(
			key.WithKeys("ctrl+4"),
			key.WithHelp("C-4", "equipment"),
		),
		GoTasks: key.NewBinding(
			key.WithKeys("ctrl+5"),
			key.WithHelp("C-5", "tasks"),
		),
		GoInventory: key.NewBinding(
			key.WithKeys("ctrl+6"),
			key.WithHelp("C-6", "inventory"),
		),

		// Actions
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "open"),
		),
		Space: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("Space", "select"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "back/cancel"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("C-r", "refresh"),
		),

		// Request actions
		Approve: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "approve"),
		),
		Reject: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "reject"),
		),
		Order: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "place order"),
		),
		Received: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "mark received"),
		),
		Reorder: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "reorder"),
		),
		Delete: key.NewBinding(
			key.WithKeys("delete", "backspace"),
			key.WithHelp("Del", "delete"),
		),
		History: key.NewBinding(
			key.WithKeys("H"),
			key.WithHelp("H", "history"),
		),

		// Schedule / equipment / task actions
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new event"),
		),
		Book: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "book"),
		),
		Checkout: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "check out"),
		),
		Complete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "mark done"),
		),

		// Other
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Mine: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "only mine"),
		),
		Layout: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "table/cards"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns a brief help display
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.Enter, k.Space, k.Tab,
		k.Refresh, k.Help, k.Quit,
	}
}

// FullHelp returns detailed help for all keys
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		// Navigation
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Tab, k.ShiftTab},
		// Views
		{k.GoDashboard, k.GoRequests, k.GoSchedule, k.GoEquipment, k.GoTasks, k.GoInventory},
		// Requests
		{k.Approve, k.Reject, k.Order, k.Received, k.Reorder, k.Delete, k.History},
		// Schedule / equipment / tasks
		{k.New, k.Book, k.Checkout, k.Complete},
		// Other
		{k.Filter, k.Mine, k.Layout, k.Refresh, k.Help, k.Quit},
	}
}
