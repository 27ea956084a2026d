package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/qiyaolin/labops/modules/core/equipment"
	"github.com/qiyaolin/labops/modules/core/inventory"
	"github.com/qiyaolin/labops/modules/core/tasks"
	"github.com/qiyaolin/labops/modules/ui/core"
)

// equipmentRow wraps one device for cursor helpers
type equipmentRow struct {
	equipment.Equipment
}

// tasksOpenSwap wraps the swap shown in the approval modal
type tasksOpenSwap struct {
	swap *tasks.SwapRequest
}

// ============================================
// Chrome
// ============================================

func (m Model) renderHeader() string {
	title := HeaderStyle.Render(" labops ")

	user := m.state.Dashboard.Username
	if user == "" {
		user = "not signed in"
	}
	badge := ""
	if m.state.Dashboard.IsAdmin {
		badge = " (admin)"
	}
	right := SubtitleStyle.Render(user + badge)

	gap := m.width - lipgloss.Width(title) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return title + strings.Repeat(" ", gap) + right
}

func (m Model) renderTabs() string {
	labels := map[core.ViewModelType]string{
		core.VMDashboard: "Dashboard",
		core.VMRequests:  "Requests",
		core.VMSchedule:  "Schedule",
		core.VMEquipment: "Equipment",
		core.VMTasks:     "Tasks",
		core.VMInventory: "Inventory",
	}

	var parts []string
	for _, vt := range tabOrder {
		label := labels[vt]
		if vt == core.VMRequests {
			if n := m.state.Dashboard.NewRequests; n > 0 {
				label = fmt.Sprintf("%s (%d)", label, n)
			}
		}
		if vt == core.VMTasks {
			if n := m.state.Dashboard.PendingSwaps; n > 0 {
				label = fmt.Sprintf("%s (%d)", label, n)
			}
		}
		if vt == m.currentView {
			parts = append(parts, NavItemActiveStyle.Render(label))
		} else {
			parts = append(parts, NavItemStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) renderFooter() string {
	var left string
	if m.filterActive {
		left = InputFocusedStyle.Render("/" + m.filterText + "█")
	} else if m.filterText != "" {
		left = SubtitleStyle.Render("filter: " + m.filterText)
	} else if m.showHelp {
		m.help.ShowAll = true
		left = m.help.View(m.keys)
	} else {
		left = m.help.View(m.keys)
	}

	notes := m.renderNotifications()
	if notes == "" {
		return left
	}
	return lipgloss.JoinVertical(lipgloss.Left, notes, left)
}

func (m Model) renderNotifications() string {
	if len(m.notifications) == 0 {
		return ""
	}
	var parts []string
	for _, a := range m.notifications {
		n := a.n
		text := n.Title
		if n.Message != "" {
			text += ": " + n.Message
		}
		switch n.Type {
		case core.NotifySuccess:
			parts = append(parts, NotifySuccessStyle.Render(text))
		case core.NotifyWarning:
			parts = append(parts, NotifyWarningStyle.Render(text))
		case core.NotifyError:
			parts = append(parts, NotifyErrorStyle.Render(text))
		default:
			parts = append(parts, NotifyInfoStyle.Render(text))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) renderMainContent() string {
	var content string
	switch m.currentView {
	case core.VMRequests:
		content = m.renderRequests()
	case core.VMSchedule:
		content = m.renderSchedule()
	case core.VMEquipment:
		content = m.renderEquipment()
	case core.VMTasks:
		content = m.renderTasks()
	case core.VMInventory:
		content = m.renderInventory()
	default:
		content = m.renderDashboard()
	}
	return lipgloss.NewStyle().Height(m.height - 6).Render(content)
}

// ============================================
// Dashboard
// ============================================

func (m Model) renderDashboard() string {
	vm := m.state.Dashboard

	var b strings.Builder
	if !vm.WelcomeDismissed {
		welcome := PanelStyle.Render(
			TitleStyle.Render("Welcome to labops") + "\n" +
				SubtitleStyle.Render("Purchase requests, schedules, equipment, tasks and inventory\nin one place. Press Enter to dismiss, ? for shortcuts."))
		b.WriteString(welcome + "\n")
	}

	cards := []struct {
		title string
		value int
		style lipgloss.Style
	}{
		{"New requests", vm.NewRequests, StatusNewStyle},
		{"Approved", vm.ApprovedRequests, StatusApprovedStyle},
		{"Ordered", vm.OrderedRequests, StatusOrderedStyle},
		{"Upcoming events", vm.UpcomingEvents, StatusNewStyle},
		{"Equipment in use", vm.EquipmentInUse, StatusOrderedStyle},
		{"Pending swaps", vm.PendingSwaps, StatusNewStyle},
		{"Expiring items", vm.ExpiringItems, StatusRejectedStyle},
		{"Low stock", vm.LowStockItems, StatusOrderedStyle},
	}

	var row []string
	var rows []string
	perRow := 4
	if m.variant() == core.VariantCompact {
		perRow = 2
	}
	for i, c := range cards {
		card := CardStyle.Render(
			PanelTitleStyle.Render(c.title) + "\n" + c.style.Render(fmt.Sprintf("%d", c.value)))
		row = append(row, card)
		if (i+1)%perRow == 0 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	b.WriteString(lipgloss.JoinVertical(lipgloss.Left, rows...))
	return b.String()
}

// ============================================
// Requests
// ============================================

func (m Model) renderRequests() string {
	vm := m.state.Requests
	if m.showHistory && vm.HistoryFor != 0 {
		return m.renderRequestHistory()
	}
	if len(vm.Requests) == 0 {
		return SubtitleStyle.Render("\n  No purchase requests match the current filter.")
	}

	counts := fmt.Sprintf("NEW %d  APPROVED %d  ORDERED %d  RECEIVED %d",
		vm.StatusCounts["NEW"], vm.StatusCounts["APPROVED"],
		vm.StatusCounts["ORDERED"], vm.StatusCounts["RECEIVED"])
	head := PanelTitleStyle.Render("Purchase Requests") + "  " + SubtitleStyle.Render(counts)

	compact := m.variant() == core.VariantCompact

	var rows []string
	if !compact {
		rows = append(rows, TableHeaderStyle.Render(
			fmt.Sprintf("   %-4s %-28s %-14s %8s %4s  %-10s", "ID", "Item", "Vendor", "Total", "Qty", "Status")))
	}

	end := m.scrollOffset + m.visibleRows
	if end > len(vm.Requests) {
		end = len(vm.Requests)
	}
	for i := m.scrollOffset; i < end; i++ {
		r := vm.Requests[i]
		mark := IconUnchecked
		if m.selected[r.ID] {
			mark = IconSelected
		}
		var line string
		if compact {
			line = fmt.Sprintf("%s #%d %s %s", mark, r.ID, truncate(r.ItemName, 20), StatusStyle(r.Status).Render(string(r.Status)))
		} else {
			line = fmt.Sprintf("%s %-4d %-28s %-14s %8.2f %4d  %s",
				mark, r.ID, truncate(r.ItemName, 28), truncate(r.VendorName, 14),
				r.TotalPrice(), r.Quantity, StatusStyle(r.Status).Render(string(r.Status)))
		}
		if i == m.mainIndex {
			rows = append(rows, TableRowSelectedStyle.Render(line))
		} else {
			rows = append(rows, TableRowStyle.Render(line))
		}
	}
	return head + "\n" + strings.Join(rows, "\n")
}

func (m Model) renderRequestHistory() string {
	vm := m.state.Requests
	head := PanelTitleStyle.Render(fmt.Sprintf("History for request #%d", vm.HistoryFor))
	if len(vm.History) == 0 {
		return head + "\n" + SubtitleStyle.Render("  no history entries")
	}
	var rows []string
	for _, h := range vm.History {
		rows = append(rows, fmt.Sprintf("  %s  %-14s %s %s",
			h.Timestamp.Format("2006-01-02 15:04"), h.Action, h.Actor, SubtitleStyle.Render(h.Note)))
	}
	return head + "\n" + strings.Join(rows, "\n") + "\n" + SubtitleStyle.Render("  Esc to go back")
}

// ============================================
// Schedule
// ============================================

func (m Model) renderSchedule() string {
	vm := m.state.Schedule
	head := PanelTitleStyle.Render("Schedule") + "  " + SubtitleStyle.Render("n new, Enter edit, Del delete")
	if len(vm.Events) == 0 {
		return head + "\n" + SubtitleStyle.Render("  No upcoming events.")
	}

	var rows []string
	lastDate := ""
	for i, ev := range vm.Events {
		if ev.Date != lastDate {
			rows = append(rows, TitleStyle.Render(IconCalendar+" "+ev.Date))
			lastDate = ev.Date
		}
		line := fmt.Sprintf("  %-13s %-30s %s", ev.TimeRange(), truncate(ev.Title, 30), SubtitleStyle.Render(ev.Location))
		if i == m.mainIndex {
			line = TableRowSelectedStyle.Render(line)
		}
		rows = append(rows, line)
	}
	return head + "\n" + strings.Join(rows, "\n")
}

// ============================================
// Equipment
// ============================================

func (m Model) renderEquipment() string {
	vm := m.state.Equipment
	head := PanelTitleStyle.Render("Equipment") + "  " +
		SubtitleStyle.Render(fmt.Sprintf("%d in use  -  b book, c check out, x cancel booking", vm.InUse))
	if len(vm.Equipment) == 0 {
		return head + "\n" + SubtitleStyle.Render("  No equipment registered.")
	}

	now := time.Now()
	var rows []string
	for i, eq := range vm.Equipment {
		status := "free"
		if eq.InUse {
			status = eq.CurrentUserName
			if d := eq.UsageDuration(now); d != "" {
				status += " for " + d
			}
		}
		line := fmt.Sprintf("%s %-24s %-16s %s",
			EquipmentIcon(eq.InUse), truncate(eq.Name, 24), truncate(eq.Location, 16), SubtitleStyle.Render(status))
		if i == m.mainIndex {
			line = TableRowSelectedStyle.Render(line)
		}
		rows = append(rows, line)
	}
	return head + "\n" + strings.Join(rows, "\n")
}

// ============================================
// Tasks
// ============================================

func (m Model) renderTasks() string {
	vm := m.state.Tasks

	var b strings.Builder
	b.WriteString(PanelTitleStyle.Render("My Tasks") + "  " + SubtitleStyle.Render("d mark done") + "\n")
	if len(vm.Instances) == 0 {
		b.WriteString(SubtitleStyle.Render("  Nothing assigned.") + "\n")
	}
	for i, ins := range vm.Instances {
		icon := IconPending
		if ins.Status == tasks.InstanceCompleted {
			icon = IconSuccess
		}
		line := fmt.Sprintf("%s %-30s %s - %s  %s",
			icon, truncate(ins.Title, 30), ins.PeriodStart, ins.PeriodEnd, SubtitleStyle.Render(string(ins.Status)))
		if i == m.mainIndex {
			line = TableRowSelectedStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n" + PanelTitleStyle.Render("Swap Requests") + "  " + SubtitleStyle.Render("Enter to review") + "\n")
	if len(vm.Resolvable) == 0 {
		b.WriteString(SubtitleStyle.Render("  Nothing waiting on you."))
	}
	for i, sw := range vm.Resolvable {
		kind := "task"
		if sw.Kind == tasks.SwapMeeting {
			kind = "meeting"
		}
		line := fmt.Sprintf("%s #%-4d %-8s from %-16s %s",
			IconPending, sw.ID, kind, truncate(sw.RequesterName, 16), SubtitleStyle.Render(truncate(sw.Reason, 30)))
		if i+len(vm.Instances) == m.mainIndex {
			line = TableRowSelectedStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

// ============================================
// Inventory
// ============================================

func (m Model) renderInventory() string {
	vm := m.state.Inventory
	head := PanelTitleStyle.Render("Inventory")
	if len(vm.Groups) == 0 {
		return head + "\n" + SubtitleStyle.Render("  No stock on record.")
	}

	var rows []string
	for i, g := range vm.Groups {
		worst := ExpirationIcon(worstBucket(g.ExpiredCount, g.ExpiringCount))
		line := fmt.Sprintf("%s %-28s %-14s x%-4d %s",
			worst, truncate(g.Key.Name, 28), truncate(g.VendorName, 14), g.TotalQuantity,
			SubtitleStyle.Render(fmt.Sprintf("%d lots  %d expired  %d expiring  %d low",
				g.InstanceCount, g.ExpiredCount, g.ExpiringCount, g.LowStockCount)))
		if i == m.mainIndex {
			line = TableRowSelectedStyle.Render(line)
		}
		rows = append(rows, line)
	}
	return head + "\n" + strings.Join(rows, "\n")
}

// ============================================
// Overlays
// ============================================

func (m Model) renderDialog() string {
	body := DialogTitleStyle.Render("Confirm") + "\n" +
		m.dialog.message + "\n\n" +
		ButtonActiveStyle.Render("y: yes") + " " + ButtonStyle.Render("n: no")
	return DialogStyle.Render(body)
}

func (m Model) renderForm() string {
	f := m.form
	title := "New Event"
	if f.editID != 0 {
		title = fmt.Sprintf("Edit Event #%d", f.editID)
	}
	labels := []string{"Title", "Date", "Start", "End", "Location"}
	var b strings.Builder
	b.WriteString(DialogTitleStyle.Render(title) + "\n")
	for i, in := range f.inputs {
		b.WriteString(fmt.Sprintf("%-9s %s\n", labels[i], in.View()))
	}
	b.WriteString("\n" + SubtitleStyle.Render("Enter save, Tab next field, Esc cancel"))
	return DialogStyle.Render(b.String())
}

func (m Model) renderSwapModal(open *tasksOpenSwap) string {
	sw := open.swap
	kind := "Task swap"
	if sw.Kind == tasks.SwapMeeting {
		kind = "Meeting swap"
	}
	target := "anyone eligible"
	if !sw.Open() {
		target = sw.TargetName
	}
	body := DialogTitleStyle.Render(fmt.Sprintf("%s #%d", kind, sw.ID)) + "\n" +
		fmt.Sprintf("From:   %s\n", sw.RequesterName) +
		fmt.Sprintf("To:     %s\n", target) +
		fmt.Sprintf("Reason: %s\n\n", sw.Reason) +
		ButtonActiveStyle.Render("a: approve") + " " +
		ButtonStyle.Render("x: reject") + " " +
		ButtonStyle.Render("esc: close")
	return DialogStyle.Render(body)
}

// overlay centers a box over the body
func (m Model) overlay(body, box string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// ============================================
// Helpers
// ============================================

// truncate cuts on runes so multi-byte names never split mid-character
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

func worstBucket(expired, expiring int) inventory.ExpirationStatus {
	if expired > 0 {
		return inventory.Expired
	}
	if expiring > 0 {
		return inventory.ExpiringSoon
	}
	return inventory.Good
}
