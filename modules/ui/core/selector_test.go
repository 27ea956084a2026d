package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectorNarrowWidthForcesCompact(t *testing.T) {
	sel := NewViewSelector(0)
	assert.Equal(t, DefaultBreakpoint, sel.Breakpoint)

	// Preference never overrides a narrow width
	assert.Equal(t, VariantCompact, sel.Select(600, VMRequests, PrefTable))
	assert.Equal(t, VariantCompact, sel.Select(767, VMRequests, PrefCards))
	assert.Equal(t, VariantTable, sel.Select(768, VMRequests, PrefTable))
}

func TestSelectorCrossingTheBreakpoint(t *testing.T) {
	sel := NewViewSelector(0)

	// Shrinking a 900-wide table view below the breakpoint flips it
	// to compact, growing it back restores the preference
	assert.Equal(t, VariantTable, sel.Select(900, VMRequests, PrefTable))
	assert.Equal(t, VariantCompact, sel.Select(600, VMRequests, PrefTable))
	assert.Equal(t, VariantTable, sel.Select(900, VMRequests, PrefTable))
}

func TestSelectorPreferenceAboveBreakpoint(t *testing.T) {
	sel := NewViewSelector(0)

	assert.Equal(t, VariantCards, sel.Select(1024, VMRequests, PrefCards))
	assert.Equal(t, VariantTable, sel.Select(1024, VMInventory, PrefTable))
}

func TestSelectorUnknownWidthUsesPreference(t *testing.T) {
	sel := NewViewSelector(0)

	assert.Equal(t, VariantTable, sel.Select(0, VMRequests, PrefTable))
	assert.Equal(t, VariantCards, sel.Select(-1, VMRequests, PrefCards))
}

func TestSelectorPerTabDefaults(t *testing.T) {
	sel := NewViewSelector(0)

	assert.Equal(t, VariantCards, sel.Select(1024, VMDashboard, PrefAuto))
	assert.Equal(t, VariantCards, sel.Select(1024, VMInventory, PrefAuto))
	assert.Equal(t, VariantTable, sel.Select(1024, VMRequests, PrefAuto))
	assert.Equal(t, VariantTable, sel.Select(1024, VMSchedule, PrefAuto))
}

func TestSelectorIsPure(t *testing.T) {
	sel := NewViewSelector(120)

	first := sel.Select(100, VMRequests, PrefCards)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, sel.Select(100, VMRequests, PrefCards))
	}
}

func TestSelectorCustomBreakpoint(t *testing.T) {
	sel := NewViewSelector(100)

	assert.Equal(t, VariantCompact, sel.Select(99, VMRequests, PrefTable))
	assert.Equal(t, VariantTable, sel.Select(100, VMRequests, PrefTable))
}
