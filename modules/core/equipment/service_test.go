package equipment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timeptr(t time.Time) *time.Time { return &t }

func fixtureEquipment() []Equipment {
	started := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)
	return []Equipment{
		{ID: 1, Name: "Confocal microscope", Location: "Room 210", Bookable: true, InUse: true, CurrentUserID: 7, CurrentUserName: "mei", UsageStartedAt: timeptr(started)},
		{ID: 2, Name: "Centrifuge", Location: "Room 210", Bookable: true},
		{ID: 3, Name: "Autoclave", Location: "Core facility", Bookable: false},
	}
}

func TestNormalizeRepairsOrphanedInUse(t *testing.T) {
	e := Equipment{ID: 9, Name: "PCR machine", InUse: true}
	e.Normalize()
	assert.False(t, e.InUse)
	assert.Nil(t, e.UsageStartedAt)

	// A consistent record is left alone
	ok := fixtureEquipment()[0]
	ok.Normalize()
	assert.True(t, ok.InUse)
}

func TestUsageDuration(t *testing.T) {
	e := fixtureEquipment()[0]
	now := time.Date(2026, 3, 2, 11, 45, 0, 0, time.UTC)
	assert.Equal(t, "2h 15m", e.UsageDuration(now))

	short := time.Date(2026, 3, 2, 9, 42, 0, 0, time.UTC)
	assert.Equal(t, "12m", e.UsageDuration(short))

	idle := fixtureEquipment()[1]
	assert.Equal(t, "", idle.UsageDuration(now))
}

func TestFilterAvailability(t *testing.T) {
	items := fixtureEquipment()

	bookable := Filter(items, FilterOptions{OnlyBookable: true})
	assert.Len(t, bookable, 2)

	available := Filter(items, FilterOptions{OnlyAvailable: true})
	require.Len(t, available, 1)
	assert.Equal(t, "Centrifuge", available[0].Name)
}

func TestFilterSearchMatchesLocation(t *testing.T) {
	view := Filter(fixtureEquipment(), FilterOptions{Search: "core"})
	require.Len(t, view, 1)
	assert.Equal(t, "Autoclave", view[0].Name)
}

func TestFilterOrderedByName(t *testing.T) {
	view := Filter(fixtureEquipment(), FilterOptions{})
	require.Len(t, view, 3)
	assert.Equal(t, "Autoclave", view[0].Name)
	assert.Equal(t, "Centrifuge", view[1].Name)
	assert.Equal(t, "Confocal microscope", view[2].Name)
}

func TestInUseCount(t *testing.T) {
	assert.Equal(t, 1, InUseCount(fixtureEquipment()))
}
