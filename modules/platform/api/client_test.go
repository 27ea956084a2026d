package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qiyaolin/labops/modules/core/requests"
	"github.com/qiyaolin/labops/modules/platform/session"
)

func authedSession(t *testing.T) *session.Session {
	t.Helper()
	s := session.New()
	s.SetCredentials("sekrit-token", 7, "mei", false)
	return s
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second, authedSession(t), nil), srv
}

func TestNoTokenShortCircuits(t *testing.T) {
	called := false
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	// Swap in an unauthenticated session
	c.sess = session.New()

	_, err := c.ListRequests(context.Background())
	assert.ErrorIs(t, err, ErrNoToken)
	assert.False(t, called, "no network call may be attempted without a token")
}

func TestAuthHeaderAndDecoding(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Token sekrit-token", r.Header.Get("Authorization"))
		assert.Equal(t, "/api/requests/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]requests.Request{
			{ID: 1, ItemName: "Taq polymerase", Status: requests.StatusNew},
		})
	}))

	got, err := c.ListRequests(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Taq polymerase", got[0].ItemName)
	assert.Equal(t, requests.StatusNew, got[0].Status)
}

func TestNon2xxCarriesBodyText(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"detail": "request is not NEW"}`))
	}))

	err := c.ApproveRequest(context.Background(), 42)
	require.Error(t, err)

	var serr *StatusError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, http.StatusConflict, serr.Code)
	assert.Contains(t, serr.Body, "request is not NEW")
}

func TestBatchApprovePayload(t *testing.T) {
	var got struct {
		IDs []int64 `json:"ids"`
	}
	var idempotencyKey string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/requests/batch_approve/", r.URL.Path)
		idempotencyKey = r.Header.Get("X-Idempotency-Key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))

	require.NoError(t, c.BatchApprove(context.Background(), []int64{1, 3}))
	assert.Equal(t, []int64{1, 3}, got.IDs)
	assert.NotEmpty(t, idempotencyKey)
}

func TestBatchPlaceOrderIncludesFund(t *testing.T) {
	var got map[string]any
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
	}))

	require.NoError(t, c.BatchPlaceOrder(context.Background(), []int64{2}, 5))
	assert.EqualValues(t, 5, got["fund"])
}

func TestActionPaths(t *testing.T) {
	var paths []string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
	}))
	ctx := context.Background()

	require.NoError(t, c.PlaceOrder(ctx, 9, 2))
	require.NoError(t, c.MarkReceived(ctx, 9, "Freezer B"))
	require.NoError(t, c.Reorder(ctx, 9))
	require.NoError(t, c.DeleteRequest(ctx, 9))
	require.NoError(t, c.BookEquipment(ctx, 4))
	require.NoError(t, c.CancelBooking(ctx, 4))
	require.NoError(t, c.CompleteTask(ctx, 11))

	assert.Equal(t, []string{
		"POST /api/requests/9/place_order/",
		"POST /api/requests/9/mark_received/",
		"POST /api/requests/9/reorder/",
		"DELETE /api/requests/9/",
		"POST /api/equipment/4/book/",
		"POST /api/equipment/4/cancel_booking/",
		"POST /api/task-instances/11/complete/",
	}, paths)
}

func TestSwapRoutes(t *testing.T) {
	var paths []string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
	}))
	ctx := context.Background()

	require.NoError(t, c.ResolveSwap(ctx, "task-swap", 3, true))
	require.NoError(t, c.ResolveSwap(ctx, "task-swap", 3, false))
	require.NoError(t, c.ResolveSwap(ctx, "meeting-swap", 8, true))
	require.NoError(t, c.ResolveSwap(ctx, "meeting-swap", 8, false))

	assert.Equal(t, []string{
		"/api/task-swap-requests/3/approve_by_admin/",
		"/api/task-swap-requests/3/reject/",
		"/api/swap-requests/8/approve_by_target/",
		"/api/swap-requests/8/reject/",
	}, paths)
}

func TestLoginNeedsNoToken(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/login/", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token": "abc", "user_id": 7, "username": "mei", "is_admin": true}`))
	}))
	c.sess = session.New()

	res, err := c.Login(context.Background(), "mei", "pw")
	require.NoError(t, err)
	assert.Equal(t, "abc", res.Token)
	assert.True(t, res.IsAdmin)
}
