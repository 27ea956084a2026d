package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryResolvesNamesAndAliases(t *testing.T) {
	InitRegistry()

	byName := GetCommand("requests")
	require.NotNil(t, byName)
	byAlias := GetCommand("req")
	require.NotNil(t, byAlias)
	assert.Same(t, byName, byAlias)

	assert.Nil(t, GetCommand("centrifuge"))
}

func TestRegistryListingOrder(t *testing.T) {
	InitRegistry()

	cmds := GetAllCommands()
	require.NotEmpty(t, cmds)
	for i := 1; i < len(cmds); i++ {
		if cmds[i].Order == cmds[i-1].Order {
			assert.Less(t, cmds[i-1].Name, cmds[i].Name)
		} else {
			assert.Less(t, cmds[i-1].Order, cmds[i].Order)
		}
	}

	// Every registered category has a place in the help listing
	known := make(map[string]bool, len(categoryOrder))
	for _, c := range categoryOrder {
		known[c] = true
	}
	for _, cmd := range cmds {
		assert.True(t, known[cmd.Category], "category %q not listed", cmd.Category)
	}
}

func TestRegistryCompletionNames(t *testing.T) {
	InitRegistry()

	names := GetCommandNames()
	assert.Contains(t, names, "dashboard")
	assert.Contains(t, names, "ui")
	assert.Contains(t, names, "cfg")
	assert.IsNonDecreasing(t, names)
}
