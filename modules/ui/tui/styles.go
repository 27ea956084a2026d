package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/qiyaolin/labops/modules/core/inventory"
	"github.com/qiyaolin/labops/modules/core/requests"
)

// Layout constants
const (
	GapHorizontal = 1 // Horizontal gap between panels/cards
	GapVertical   = 1 // Vertical gap between sections
)

// Color palette
var (
	ColorPrimary   = lipgloss.Color("#7C3AED") // Purple
	ColorSecondary = lipgloss.Color("#06B6D4") // Cyan
	ColorSuccess   = lipgloss.Color("#10B981") // Green
	ColorWarning   = lipgloss.Color("#F59E0B") // Orange
	ColorError     = lipgloss.Color("#EF4444") // Red
	ColorMuted     = lipgloss.Color("#6B7280") // Gray
	ColorText      = lipgloss.Color("#F9FAFB") // Light
	ColorBg        = lipgloss.Color("#111827") // Dark
	ColorBgAlt     = lipgloss.Color("#1F2937") // Dark alt
	ColorBorder    = lipgloss.Color("#374151") // Gray border
)

// Base styles
var (
	BaseStyle = lipgloss.NewStyle().
			Background(ColorBg).
			Foreground(ColorText)

	// Header
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Background(ColorBgAlt).
			Padding(0, 1)

	// Title
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// Subtitle
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// Status indicators
	StatusNewStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Bold(true)

	StatusApprovedStyle = lipgloss.NewStyle().
				Foreground(ColorSuccess)

	StatusOrderedStyle = lipgloss.NewStyle().
				Foreground(ColorWarning)

	StatusReceivedStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)

	StatusRejectedStyle = lipgloss.NewStyle().
				Foreground(ColorError)

	// Navigation
	NavItemStyle = lipgloss.NewStyle().
			Padding(0, 2)

	NavItemActiveStyle = lipgloss.NewStyle().
				Padding(0, 2).
				Background(ColorPrimary).
				Foreground(ColorText).
				Bold(true)

	// Panels
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1)

	PanelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary).
			MarginBottom(1)

	// Table
	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorSecondary).
				BorderBottom(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(ColorBorder)

	TableRowStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	TableRowSelectedStyle = lipgloss.NewStyle().
				Background(ColorBgAlt).
				Foreground(ColorText).
				Bold(true)

	// Cards
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	CardSelectedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorPrimary).
				Padding(0, 1)

	// Notifications
	NotifyInfoStyle = lipgloss.NewStyle().
			Background(ColorSecondary).
			Foreground(ColorText).
			Padding(0, 1)

	NotifySuccessStyle = lipgloss.NewStyle().
				Background(ColorSuccess).
				Foreground(ColorText).
				Padding(0, 1)

	NotifyWarningStyle = lipgloss.NewStyle().
				Background(ColorWarning).
				Foreground(ColorBg).
				Padding(0, 1)

	NotifyErrorStyle = lipgloss.NewStyle().
				Background(ColorError).
				Foreground(ColorText).
				Padding(0, 1)

	// Help
	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Bold(true)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// Input
	InputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	InputFocusedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorPrimary).
				Padding(0, 1)

	// Dialog
	DialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(1, 2).
			Background(ColorBgAlt)

	DialogTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorPrimary).
				MarginBottom(1)

	// Button
	ButtonStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Background(ColorBgAlt).
			Foreground(ColorText)

	ButtonActiveStyle = lipgloss.NewStyle().
				Padding(0, 2).
				Background(ColorPrimary).
				Foreground(ColorText).
				Bold(true)
)

// Icons (using Unicode symbols for cross-platform compatibility)
const (
	IconInUse     = "●"
	IconFree      = "○"
	IconError     = "✗"
	IconSuccess   = "✓"
	IconWarning   = "⚠"
	IconPending   = "◐"
	IconSelected  = "▣"
	IconUnchecked = "☐"
	IconArrowUp   = "↑"
	IconArrowDn   = "↓"
	IconCalendar  = "▤"
	IconRefresh   = "↻"
)

// StatusStyle returns the style for a purchase request status badge
func StatusStyle(s requests.Status) lipgloss.Style {
	switch s {
	case requests.StatusNew:
		return StatusNewStyle
	case requests.StatusApproved:
		return StatusApprovedStyle
	case requests.StatusOrdered:
		return StatusOrderedStyle
	case requests.StatusReceived:
		return StatusReceivedStyle
	case requests.StatusRejected:
		return StatusRejectedStyle
	}
	return TableRowStyle
}

// ExpirationIcon renders the icon for an inventory expiration bucket
func ExpirationIcon(s inventory.ExpirationStatus) string {
	switch s {
	case inventory.Expired:
		return StatusRejectedStyle.Render(IconError)
	case inventory.ExpiringSoon:
		return StatusOrderedStyle.Render(IconWarning)
	default:
		return StatusApprovedStyle.Render(IconSuccess)
	}
}

// EquipmentIcon renders the in-use marker for one device
func EquipmentIcon(inUse bool) string {
	if inUse {
		return StatusOrderedStyle.Render(IconInUse)
	}
	return StatusApprovedStyle.Render(IconFree)
}
