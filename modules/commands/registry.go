package commands

import (
	"fmt"
	"sort"
	"strings"
)

// CommandHandler executes a command with its remaining arguments.
type CommandHandler func(args []string) error

// SubCommand is a named mode of a command, listed in help and offered to
// tab completion. Dispatch happens inside the parent handler.
type SubCommand struct {
	Name        string
	Description string
}

// Command is one registry entry. Order controls the listing position
// inside a category.
type Command struct {
	Name        string
	Aliases     []string
	Category    string
	Description string
	Usage       string
	Examples    []string
	Handler     CommandHandler
	SubCommands []SubCommand
	Order       int
}

// categoryOrder fixes the help listing; categories not named here are
// not printed.
var categoryOrder = []string{
	"Account",
	"Lab Data",
	"Configuration",
	"Interface",
}

type registry struct {
	commands map[string]*Command
	aliases  map[string]string
}

var globalRegistry *registry

// InitRegistry builds the global registry and registers every command.
func InitRegistry() {
	globalRegistry = &registry{
		commands: make(map[string]*Command),
		aliases:  make(map[string]string),
	}

	registerAuthCommands()
	registerDataCommands()
	registerConfigCommands()
	registerUICommands()
}

// RegisterCommand adds a command and its aliases to the registry.
func RegisterCommand(cmd *Command) {
	if globalRegistry == nil {
		InitRegistry()
	}

	globalRegistry.commands[cmd.Name] = cmd
	for _, alias := range cmd.Aliases {
		globalRegistry.aliases[alias] = cmd.Name
	}
}

// GetCommand resolves a name or alias, nil when unknown.
func GetCommand(name string) *Command {
	if globalRegistry == nil {
		return nil
	}
	if cmd, ok := globalRegistry.commands[name]; ok {
		return cmd
	}
	if canonical, ok := globalRegistry.aliases[name]; ok {
		return globalRegistry.commands[canonical]
	}
	return nil
}

// GetAllCommands returns every command ordered by Order, name as tiebreak.
func GetAllCommands() []*Command {
	if globalRegistry == nil {
		return nil
	}

	out := make([]*Command, 0, len(globalRegistry.commands))
	for _, cmd := range globalRegistry.commands {
		out = append(out, cmd)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// PrintCommands writes the categorized command listing.
func PrintCommands() {
	byCategory := make(map[string][]*Command)
	for _, cmd := range GetAllCommands() {
		byCategory[cmd.Category] = append(byCategory[cmd.Category], cmd)
	}

	for _, category := range categoryOrder {
		cmds := byCategory[category]
		if len(cmds) == 0 {
			continue
		}

		fmt.Printf("  %s:\n", category)
		for _, cmd := range cmds {
			aliases := ""
			if len(cmd.Aliases) > 0 {
				aliases = fmt.Sprintf(" (%s)", strings.Join(cmd.Aliases, ", "))
			}
			fmt.Printf("    %-20s %s%s\n", cmd.Name, cmd.Description, aliases)
		}
		fmt.Println()
	}
}

// PrintCommandHelp writes the detailed help of one command.
func PrintCommandHelp(name string) {
	cmd := GetCommand(name)
	if cmd == nil {
		fmt.Printf("Unknown command: %s\n", name)
		return
	}

	fmt.Printf("Command: %s\n", cmd.Name)
	if len(cmd.Aliases) > 0 {
		fmt.Printf("Aliases: %s\n", strings.Join(cmd.Aliases, ", "))
	}
	fmt.Printf("Category: %s\n", cmd.Category)
	fmt.Println()
	fmt.Printf("Description:\n  %s\n", cmd.Description)

	if cmd.Usage != "" {
		fmt.Printf("\nUsage:\n  %s\n", cmd.Usage)
	}

	if len(cmd.SubCommands) > 0 {
		fmt.Println("\nSub-commands:")
		for _, sub := range cmd.SubCommands {
			fmt.Printf("  %-15s %s\n", sub.Name, sub.Description)
		}
	}

	if len(cmd.Examples) > 0 {
		fmt.Println("\nExamples:")
		for _, example := range cmd.Examples {
			fmt.Printf("  %s\n", example)
		}
	}
}

// GetCommandNames returns every name and alias, sorted, for completion.
func GetCommandNames() []string {
	if globalRegistry == nil {
		return nil
	}

	names := make([]string, 0, len(globalRegistry.commands)+len(globalRegistry.aliases))
	for name := range globalRegistry.commands {
		names = append(names, name)
	}
	for alias := range globalRegistry.aliases {
		names = append(names, alias)
	}
	sort.Strings(names)
	return names
}
