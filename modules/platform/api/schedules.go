package api

import (
	"context"
	"fmt"

	"github.com/qiyaolin/labops/modules/core/schedules"
)

// ListSchedules fetches all calendar events.
func (c *Client) ListSchedules(ctx context.Context) ([]schedules.Event, error) {
	req, err := c.authed(ctx)
	if err != nil {
		return nil, err
	}
	var out []schedules.Event
	resp, err := req.SetResult(&out).Get("/schedules/")
	if err := c.check(resp, err); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateSchedule submits a new event.
func (c *Client) CreateSchedule(ctx context.Context, ev schedules.Event) error {
	req, err := c.authed(ctx)
	if err != nil {
		return err
	}
	resp, err := req.SetBody(ev).Post("/schedules/")
	return c.check(resp, err)
}

// UpdateSchedule replaces an existing event.
func (c *Client) UpdateSchedule(ctx context.Context, ev schedules.Event) error {
	req, err := c.authed(ctx)
	if err != nil {
		return err
	}
	resp, err := req.SetBody(ev).Put(fmt.Sprintf("/schedules/%d/", ev.ID))
	return c.check(resp, err)
}

// DeleteSchedule removes an event.
func (c *Client) DeleteSchedule(ctx context.Context, id int64) error {
	req, err := c.authed(ctx)
	if err != nil {
		return err
	}
	resp, err := req.Delete(fmt.Sprintf("/schedules/%d/", id))
	return c.check(resp, err)
}
