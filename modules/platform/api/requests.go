package api

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/qiyaolin/labops/modules/core/requests"
)

// ListRequests fetches all purchase requests.
func (c *Client) ListRequests(ctx context.Context) ([]requests.Request, error) {
	req, err := c.authed(ctx)
	if err != nil {
		return nil, err
	}
	var out []requests.Request
	resp, err := req.SetResult(&out).Get("/requests/")
	if err := c.check(resp, err); err != nil {
		return nil, err
	}
	return out, nil
}

// RequestHistory fetches the workflow transitions of one request.
func (c *Client) RequestHistory(ctx context.Context, id int64) ([]requests.HistoryEntry, error) {
	req, err := c.authed(ctx)
	if err != nil {
		return nil, err
	}
	var out []requests.HistoryEntry
	resp, err := req.SetResult(&out).Get(fmt.Sprintf("/requests/%d/history/", id))
	if err := c.check(resp, err); err != nil {
		return nil, err
	}
	return out, nil
}

// ApproveRequest moves a NEW request to APPROVED.
func (c *Client) ApproveRequest(ctx context.Context, id int64) error {
	return c.requestAction(ctx, id, "approve", nil)
}

// RejectRequest terminally rejects a NEW request.
func (c *Client) RejectRequest(ctx context.Context, id int64) error {
	return c.requestAction(ctx, id, "reject", nil)
}

// PlaceOrder moves an APPROVED request to ORDERED, charging the fund.
func (c *Client) PlaceOrder(ctx context.Context, id, fundID int64) error {
	return c.requestAction(ctx, id, "place_order", map[string]any{"fund": fundID})
}

// MarkReceived moves an ORDERED request to RECEIVED at the given location.
func (c *Client) MarkReceived(ctx context.Context, id int64, location string) error {
	return c.requestAction(ctx, id, "mark_received", map[string]any{"location": location})
}

// Reorder clones a RECEIVED request into a fresh NEW one.
func (c *Client) Reorder(ctx context.Context, id int64) error {
	return c.requestAction(ctx, id, "reorder", nil)
}

// DeleteRequest removes a request outright.
func (c *Client) DeleteRequest(ctx context.Context, id int64) error {
	req, err := c.authed(ctx)
	if err != nil {
		return err
	}
	resp, err := req.Delete(fmt.Sprintf("/requests/%d/", id))
	return c.check(resp, err)
}

func (c *Client) requestAction(ctx context.Context, id int64, action string, body map[string]any) error {
	req, err := c.authed(ctx)
	if err != nil {
		return err
	}
	if body != nil {
		req.SetBody(body)
	}
	resp, err := req.Post(fmt.Sprintf("/requests/%d/%s/", id, action))
	return c.check(resp, err)
}

// Batch variants. The backend applies each batch atomically; the client
// sends one call and treats the response as all-or-nothing. An idempotency
// key guards against double-submit on flaky connections.

// BatchApprove approves a set of NEW requests.
func (c *Client) BatchApprove(ctx context.Context, ids []int64) error {
	return c.batchAction(ctx, "batch_approve", ids, nil)
}

// BatchReject rejects a set of NEW requests.
func (c *Client) BatchReject(ctx context.Context, ids []int64) error {
	return c.batchAction(ctx, "batch_reject", ids, nil)
}

// BatchPlaceOrder orders a set of APPROVED requests against one fund.
func (c *Client) BatchPlaceOrder(ctx context.Context, ids []int64, fundID int64) error {
	return c.batchAction(ctx, "batch_place_order", ids, map[string]any{"fund": fundID})
}

// BatchMarkReceived receives a set of ORDERED requests at one location.
func (c *Client) BatchMarkReceived(ctx context.Context, ids []int64, location string) error {
	return c.batchAction(ctx, "batch_mark_received", ids, map[string]any{"location": location})
}

// BatchReorder clones a set of RECEIVED requests.
func (c *Client) BatchReorder(ctx context.Context, ids []int64) error {
	return c.batchAction(ctx, "batch_reorder", ids, nil)
}

func (c *Client) batchAction(ctx context.Context, action string, ids []int64, extra map[string]any) error {
	req, err := c.authed(ctx)
	if err != nil {
		return err
	}
	body := map[string]any{"ids": ids}
	for k, v := range extra {
		body[k] = v
	}
	resp, err := req.
		SetHeader("X-Idempotency-Key", uuid.NewString()).
		SetBody(body).
		Post("/requests/" + action + "/")
	return c.check(resp, err)
}
