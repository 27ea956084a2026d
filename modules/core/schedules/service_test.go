package schedules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func fixtureEvents() []Event {
	return []Event{
		{ID: 1, Title: "Group meeting", Description: "weekly sync", Date: "2026-03-02", StartTime: strptr("10:00"), EndTime: strptr("11:00"), Status: StatusScheduled, CreatedByID: 7},
		{ID: 2, Title: "Confocal training", Date: "2026-03-02", StartTime: strptr("09:00"), EndTime: strptr("10:00"), Status: StatusScheduled, CreatedByID: 9},
		{ID: 3, Title: "Lab cleanup", Date: "2026-03-05", Status: StatusCompleted, CreatedByID: 7},
		{ID: 4, Title: "Journal club", Date: "2026-03-09", Status: StatusCancelled, CreatedByID: 9},
	}
}

func TestValidate(t *testing.T) {
	ok := Event{Title: "Seminar", Date: "2026-03-02", StartTime: strptr("09:00"), EndTime: strptr("10:30")}
	require.NoError(t, ok.Validate())

	allDay := Event{Title: "Retreat", Date: "2026-03-02"}
	require.NoError(t, allDay.Validate())

	tests := []struct {
		name string
		ev   Event
	}{
		{"missing title", Event{Date: "2026-03-02"}},
		{"bad date", Event{Title: "x", Date: "03/02/2026"}},
		{"bad start", Event{Title: "x", Date: "2026-03-02", StartTime: strptr("9 am")}},
		{"end before start", Event{Title: "x", Date: "2026-03-02", StartTime: strptr("14:00"), EndTime: strptr("13:00")}},
		{"unknown status", Event{Title: "x", Date: "2026-03-02", Status: Status("paused")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.ev.Validate())
		})
	}
}

func TestFilterDefaultExcludesCancelled(t *testing.T) {
	view := Filter(fixtureEvents(), FilterOptions{})
	assert.Len(t, view, 3)
	for _, e := range view {
		assert.NotEqual(t, StatusCancelled, e.Status)
	}

	widened := Filter(fixtureEvents(), FilterOptions{
		Statuses: []Status{StatusScheduled, StatusInProgress, StatusCompleted, StatusCancelled},
	})
	assert.Len(t, widened, 4)
}

func TestFilterOrderingByDateThenTime(t *testing.T) {
	view := Filter(fixtureEvents(), FilterOptions{})
	require.Len(t, view, 3)
	// Same-day events ordered by start time: training at 09:00 first
	assert.Equal(t, int64(2), view[0].ID)
	assert.Equal(t, int64(1), view[1].ID)
	assert.Equal(t, int64(3), view[2].ID)
}

func TestFilterDateRange(t *testing.T) {
	from := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
	view := Filter(fixtureEvents(), FilterOptions{From: from})
	require.Len(t, view, 1)
	assert.Equal(t, int64(3), view[0].ID)
}

func TestFilterSearchCaseInsensitive(t *testing.T) {
	view := Filter(fixtureEvents(), FilterOptions{Search: "WEEKLY"})
	require.Len(t, view, 1)
	assert.Equal(t, int64(1), view[0].ID)
}

func TestFilterMineOnly(t *testing.T) {
	view := Filter(fixtureEvents(), FilterOptions{MineOnly: true, OwnerID: 9})
	require.Len(t, view, 1) // the cancelled one stays hidden
	assert.Equal(t, int64(2), view[0].ID)
}

func TestTimeRange(t *testing.T) {
	assert.Equal(t, "10:00 - 11:00", fixtureEvents()[0].TimeRange())
	assert.Equal(t, "all day", fixtureEvents()[2].TimeRange())
}

func TestUpcomingCount(t *testing.T) {
	day := time.Date(2026, 3, 4, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, UpcomingCount(fixtureEvents(), day))
}
