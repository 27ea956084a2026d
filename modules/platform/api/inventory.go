package api

import (
	"context"

	"github.com/qiyaolin/labops/modules/core/inventory"
)

// ListItems fetches all inventory stock instances.
func (c *Client) ListItems(ctx context.Context) ([]inventory.Item, error) {
	req, err := c.authed(ctx)
	if err != nil {
		return nil, err
	}
	var out []inventory.Item
	resp, err := req.SetResult(&out).Get("/items/")
	if err := c.check(resp, err); err != nil {
		return nil, err
	}
	return out, nil
}
