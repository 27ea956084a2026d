package tui

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/qiyaolin/labops/modules/core/inventory"
)

func TestTruncateKeepsShortStrings(t *testing.T) {
	assert.Equal(t, "DMEM media", truncate("DMEM media", 20))
	assert.Equal(t, "", truncate("", 10))
}

func TestTruncateEllipsis(t *testing.T) {
	assert.Equal(t, "Nitrile gl...", truncate("Nitrile gloves M size", 13))
	assert.Equal(t, "Ni", truncate("Nitrile", 2))
}

func TestTruncateCutsOnRunes(t *testing.T) {
	// Accented vendor and reagent names must never split mid-rune
	for _, s := range []string{"Réactifs Génériques SARL", "β-mercaptoethanol 14.3M", "培养基 DMEM 高糖"} {
		for max := 1; max < 20; max++ {
			out := truncate(s, max)
			assert.True(t, utf8.ValidString(out), "truncate(%q, %d) = %q", s, max, out)
			assert.LessOrEqual(t, len([]rune(out)), max)
		}
	}
}

func TestWorstBucket(t *testing.T) {
	assert.Equal(t, inventory.Expired, worstBucket(1, 3))
	assert.Equal(t, inventory.ExpiringSoon, worstBucket(0, 2))
	assert.Equal(t, inventory.Good, worstBucket(0, 0))
}
