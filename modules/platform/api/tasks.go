package api

import (
	"context"
	"fmt"

	"github.com/qiyaolin/labops/modules/core/tasks"
)

// ListTaskInstances fetches all recurring-task occurrences.
func (c *Client) ListTaskInstances(ctx context.Context) ([]tasks.Instance, error) {
	req, err := c.authed(ctx)
	if err != nil {
		return nil, err
	}
	var out []tasks.Instance
	resp, err := req.SetResult(&out).Get("/task-instances/")
	if err := c.check(resp, err); err != nil {
		return nil, err
	}
	return out, nil
}

// CompleteTask marks a task instance completed.
func (c *Client) CompleteTask(ctx context.Context, id int64) error {
	req, err := c.authed(ctx)
	if err != nil {
		return err
	}
	resp, err := req.Post(fmt.Sprintf("/task-instances/%d/complete/", id))
	return c.check(resp, err)
}

// ListSwapRequests fetches swap requests of both kinds, merged.
func (c *Client) ListSwapRequests(ctx context.Context) ([]tasks.SwapRequest, error) {
	req, err := c.authed(ctx)
	if err != nil {
		return nil, err
	}
	var taskSwaps []tasks.SwapRequest
	resp, err := req.SetResult(&taskSwaps).Get("/task-swap-requests/")
	if err := c.check(resp, err); err != nil {
		return nil, err
	}

	req, err = c.authed(ctx)
	if err != nil {
		return nil, err
	}
	var meetingSwaps []tasks.SwapRequest
	resp, err = req.SetResult(&meetingSwaps).Get("/swap-requests/")
	if err := c.check(resp, err); err != nil {
		return nil, err
	}

	for i := range taskSwaps {
		taskSwaps[i].Kind = tasks.SwapTask
	}
	for i := range meetingSwaps {
		meetingSwaps[i].Kind = tasks.SwapMeeting
	}
	return append(taskSwaps, meetingSwaps...), nil
}

// GetSwapRequest fetches one swap request's detail.
func (c *Client) GetSwapRequest(ctx context.Context, kind tasks.SwapKind, id int64) (*tasks.SwapRequest, error) {
	req, err := c.authed(ctx)
	if err != nil {
		return nil, err
	}
	var out tasks.SwapRequest
	resp, err := req.SetResult(&out).Get(fmt.Sprintf("/%s/%d/", swapCollection(kind), id))
	if err := c.check(resp, err); err != nil {
		return nil, err
	}
	out.Kind = kind
	return &out, nil
}

// ResolveSwap decides a pending swap request. Task swaps go through the
// admin approval route, meeting swaps through the target-user route.
func (c *Client) ResolveSwap(ctx context.Context, kind tasks.SwapKind, id int64, approve bool) error {
	req, err := c.authed(ctx)
	if err != nil {
		return err
	}
	action := "reject"
	if approve {
		switch kind {
		case tasks.SwapTask:
			action = "approve_by_admin"
		case tasks.SwapMeeting:
			action = "approve_by_target"
		}
	}
	resp, err := req.Post(fmt.Sprintf("/%s/%d/%s/", swapCollection(kind), id, action))
	return c.check(resp, err)
}

func swapCollection(kind tasks.SwapKind) string {
	if kind == tasks.SwapMeeting {
		return "swap-requests"
	}
	return "task-swap-requests"
}
