package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qiyaolin/labops/modules/core/requests"
)

func storeRequests(statuses ...requests.Status) []requests.Request {
	rs := make([]requests.Request, len(statuses))
	for i, s := range statuses {
		rs[i] = requests.Request{ID: int64(i + 1), ItemName: "item", Status: s}
	}
	return rs
}

func TestStoreReplaceIsWholesale(t *testing.T) {
	s := NewStore()

	ticket := s.Begin(KindRequests)
	require.True(t, s.ReplaceRequests(ticket, storeRequests(requests.StatusNew, requests.StatusApproved)))
	assert.Len(t, s.Requests(), 2)

	ticket = s.Begin(KindRequests)
	require.True(t, s.ReplaceRequests(ticket, storeRequests(requests.StatusOrdered)))
	got := s.Requests()
	require.Len(t, got, 1)
	assert.Equal(t, requests.StatusOrdered, got[0].Status)
}

func TestStoreStaleTicketDiscarded(t *testing.T) {
	s := NewStore()

	slow := s.Begin(KindRequests)
	fast := s.Begin(KindRequests)

	// The newer load lands first
	require.True(t, s.ReplaceRequests(fast, storeRequests(requests.StatusApproved)))

	// The overtaken load must not clobber it
	assert.False(t, s.ReplaceRequests(slow, storeRequests(requests.StatusNew, requests.StatusNew)))

	got := s.Requests()
	require.Len(t, got, 1)
	assert.Equal(t, requests.StatusApproved, got[0].Status)
}

func TestStoreTicketsArePerKind(t *testing.T) {
	s := NewStore()

	reqTicket := s.Begin(KindRequests)
	s.Begin(KindSchedules)

	// A newer schedule ticket does not invalidate the request load
	assert.True(t, s.ReplaceRequests(reqTicket, storeRequests(requests.StatusNew)))
}

func TestStoreReadsReturnCopies(t *testing.T) {
	s := NewStore()
	ticket := s.Begin(KindRequests)
	require.True(t, s.ReplaceRequests(ticket, storeRequests(requests.StatusNew)))

	view := s.Requests()
	view[0].Status = requests.StatusRejected

	got := s.Requests()
	assert.Equal(t, requests.StatusNew, got[0].Status)
}

func TestStoreMutateReturnsSnapshotForRollback(t *testing.T) {
	s := NewStore()
	ticket := s.Begin(KindRequests)
	require.True(t, s.ReplaceRequests(ticket, storeRequests(requests.StatusNew)))

	prev := s.MutateRequests(func(rs []requests.Request) []requests.Request {
		rs[0].Status = requests.StatusApproved
		return rs
	})
	assert.Equal(t, requests.StatusApproved, s.Requests()[0].Status)
	assert.Equal(t, requests.StatusNew, prev[0].Status)

	s.RestoreRequests(prev)
	assert.Equal(t, requests.StatusNew, s.Requests()[0].Status)
}

func TestStoreEligibleRequestIDs(t *testing.T) {
	s := NewStore()
	ticket := s.Begin(KindRequests)
	require.True(t, s.ReplaceRequests(ticket, storeRequests(
		requests.StatusNew,      // id 1
		requests.StatusApproved, // id 2
		requests.StatusNew,      // id 3
	)))

	eligible := s.EligibleRequestIDs([]int64{1, 2, 3}, requests.ActionApprove)
	assert.Equal(t, []int64{1, 3}, eligible)

	assert.Empty(t, s.EligibleRequestIDs([]int64{2}, requests.ActionApprove))
}
