package api

import (
	"context"
	"fmt"

	"github.com/qiyaolin/labops/modules/core/equipment"
)

// ListEquipment fetches all equipment records, normalized so the
// in-use-implies-user invariant holds downstream.
func (c *Client) ListEquipment(ctx context.Context) ([]equipment.Equipment, error) {
	req, err := c.authed(ctx)
	if err != nil {
		return nil, err
	}
	var out []equipment.Equipment
	resp, err := req.SetResult(&out).Get("/equipment/")
	if err := c.check(resp, err); err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Normalize()
	}
	return out, nil
}

// BookEquipment starts a usage session on a bookable instrument.
func (c *Client) BookEquipment(ctx context.Context, id int64) error {
	return c.equipmentAction(ctx, id, "book")
}

// CancelBooking releases the caller's booking.
func (c *Client) CancelBooking(ctx context.Context, id int64) error {
	return c.equipmentAction(ctx, id, "cancel_booking")
}

// CheckoutEquipment ends the current usage session.
func (c *Client) CheckoutEquipment(ctx context.Context, id int64) error {
	return c.equipmentAction(ctx, id, "checkout")
}

func (c *Client) equipmentAction(ctx context.Context, id int64, action string) error {
	req, err := c.authed(ctx)
	if err != nil {
		return err
	}
	resp, err := req.Post(fmt.Sprintf("/equipment/%d/%s/", id, action))
	return c.check(resp, err)
}
