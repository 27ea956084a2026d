package schedules

import (
	"fmt"
	"time"
)

// Status of a calendar event.
type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// Valid reports whether s is a known event status.
func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Event is a calendar event (group meeting, seminar, booking slot).
// Date is a calendar date "2006-01-02"; StartTime/EndTime are local
// times-of-day "15:04" and may both be absent for all-day events.
type Event struct {
	ID             int64   `json:"id"`
	Title          string  `json:"title"`
	Description    string  `json:"description,omitempty"`
	Date           string  `json:"date"`
	StartTime      *string `json:"start_time,omitempty"`
	EndTime        *string `json:"end_time,omitempty"`
	Location       string  `json:"location,omitempty"`
	Status         Status  `json:"status"`
	AttendeesCount int     `json:"attendees_count"`
	CreatedByID    int64   `json:"created_by"`
}

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// Day parses the event date.
func (e Event) Day() (time.Time, error) {
	return time.Parse(dateLayout, e.Date)
}

// Validate checks the invariants a form submission must satisfy before the
// event is sent to the backend: parseable date, parseable times, and
// start <= end when both are present.
func (e Event) Validate() error {
	if e.Title == "" {
		return fmt.Errorf("title is required")
	}
	if _, err := time.Parse(dateLayout, e.Date); err != nil {
		return fmt.Errorf("invalid date %q: %w", e.Date, err)
	}
	var start, end time.Time
	if e.StartTime != nil {
		t, err := time.Parse(timeLayout, *e.StartTime)
		if err != nil {
			return fmt.Errorf("invalid start time %q: %w", *e.StartTime, err)
		}
		start = t
	}
	if e.EndTime != nil {
		t, err := time.Parse(timeLayout, *e.EndTime)
		if err != nil {
			return fmt.Errorf("invalid end time %q: %w", *e.EndTime, err)
		}
		end = t
	}
	if e.StartTime != nil && e.EndTime != nil && end.Before(start) {
		return fmt.Errorf("start time %s is after end time %s", *e.StartTime, *e.EndTime)
	}
	if e.Status != "" && !e.Status.Valid() {
		return fmt.Errorf("unknown status %q", e.Status)
	}
	return nil
}

// TimeRange renders the event's time window for display.
func (e Event) TimeRange() string {
	switch {
	case e.StartTime != nil && e.EndTime != nil:
		return *e.StartTime + " - " + *e.EndTime
	case e.StartTime != nil:
		return *e.StartTime
	default:
		return "all day"
	}
}
