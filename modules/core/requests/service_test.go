package requests

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fixtureRequests() []Request {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return []Request{
		{ID: 1, ItemName: "Taq polymerase", VendorName: "NEB", Status: StatusNew, RequestedByID: 7, CreatedAt: base},
		{ID: 2, ItemName: "Pipette tips 200ul", VendorName: "Rainin", Status: StatusApproved, RequestedByID: 7, CreatedAt: base.Add(time.Hour)},
		{ID: 3, ItemName: "DMEM media", VendorName: "Gibco", Status: StatusOrdered, RequestedByID: 9, CreatedAt: base.Add(2 * time.Hour)},
		{ID: 4, ItemName: "Nitrile gloves M", VendorName: "Kimberly", Status: StatusReceived, RequestedByID: 9, CreatedAt: base.Add(3 * time.Hour)},
		{ID: 5, ItemName: "Taq polymerase", VendorName: "NEB", Status: StatusRejected, RequestedByID: 7, CreatedAt: base.Add(4 * time.Hour)},
	}
}

func TestStatusMachine(t *testing.T) {
	tests := []struct {
		action   Action
		from     Status
		to       Status
		canApply bool
	}{
		{ActionApprove, StatusNew, StatusApproved, true},
		{ActionReject, StatusNew, StatusRejected, true},
		{ActionPlaceOrder, StatusApproved, StatusOrdered, true},
		{ActionMarkReceived, StatusOrdered, StatusReceived, true},
		{ActionReorder, StatusReceived, StatusNew, true},
		// No skipping: APPROVED may not go straight to RECEIVED
		{ActionMarkReceived, StatusApproved, "", false},
		{ActionApprove, StatusApproved, "", false},
		{ActionPlaceOrder, StatusNew, "", false},
		{ActionReject, StatusRejected, "", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.canApply, CanApply(tt.action, tt.from),
			"CanApply(%s, %s)", tt.action, tt.from)
		if tt.canApply {
			next, ok := NextStatus(tt.action)
			assert.True(t, ok)
			assert.Equal(t, tt.to, next)
		}
	}
}

func TestFilterByStatusIsExact(t *testing.T) {
	reqs := fixtureRequests()
	counts := CountByStatus(reqs)

	for _, s := range []Status{StatusNew, StatusApproved, StatusOrdered, StatusReceived, StatusRejected} {
		view := Filter(reqs, FilterOptions{Statuses: []Status{s}})
		// Exactly the subset with that status, and the badge count matches
		assert.Len(t, view, counts[s], "status %s", s)
		for _, r := range view {
			assert.Equal(t, s, r.Status)
		}
	}
}

func TestFilterDefaultExcludesRejected(t *testing.T) {
	view := Filter(fixtureRequests(), FilterOptions{})
	assert.Len(t, view, 4)
	for _, r := range view {
		assert.NotEqual(t, StatusRejected, r.Status)
	}

	// Widening to the explicit status brings rejected back
	widened := Filter(fixtureRequests(), FilterOptions{Statuses: []Status{StatusRejected}})
	assert.Len(t, widened, 1)
}

func TestFilterSearchAndMine(t *testing.T) {
	reqs := fixtureRequests()

	bySearch := Filter(reqs, FilterOptions{Search: "taq"})
	assert.Len(t, bySearch, 1) // the rejected duplicate stays hidden
	assert.Equal(t, int64(1), bySearch[0].ID)

	mine := Filter(reqs, FilterOptions{MineOnly: true, OwnerID: 9})
	assert.Len(t, mine, 2)
	for _, r := range mine {
		assert.Equal(t, int64(9), r.RequestedByID)
	}
}

func TestFilterOrderingNewestFirst(t *testing.T) {
	view := Filter(fixtureRequests(), FilterOptions{})
	for i := 1; i < len(view); i++ {
		assert.False(t, view[i].CreatedAt.After(view[i-1].CreatedAt))
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	reqs := fixtureRequests()
	_ = Filter(reqs, FilterOptions{Statuses: []Status{StatusNew}, Search: "taq"})
	assert.Equal(t, fixtureRequests(), reqs)
}

func TestEligibleIDsMixedSelection(t *testing.T) {
	reqs := fixtureRequests()

	// Selecting a NEW and an APPROVED request, batch approve must submit
	// only the NEW id
	ids := EligibleIDs(reqs, []int64{1, 2}, ActionApprove)
	assert.Equal(t, []int64{1}, ids)

	// Unknown ids are dropped
	ids = EligibleIDs(reqs, []int64{1, 999}, ActionApprove)
	assert.Equal(t, []int64{1}, ids)

	// Empty selection stays empty
	assert.Empty(t, EligibleIDs(reqs, nil, ActionApprove))

	// Unknown action yields nothing
	assert.Empty(t, EligibleIDs(reqs, []int64{1}, Action("explode")))
}

func TestTotalPrice(t *testing.T) {
	r := Request{UnitPrice: 12.5, Quantity: 4}
	assert.InDelta(t, 50.0, r.TotalPrice(), 1e-9)
}

func TestByIDReturnsCopy(t *testing.T) {
	reqs := fixtureRequests()

	r, ok := ByID(reqs, 3)
	assert.True(t, ok)
	assert.Equal(t, "DMEM media", r.ItemName)

	// The result is detached from the collection
	r.Status = StatusRejected
	assert.Equal(t, StatusOrdered, reqs[2].Status)

	_, ok = ByID(reqs, 999)
	assert.False(t, ok)
}
