package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/qiyaolin/labops/modules"
	"github.com/qiyaolin/labops/modules/commands"
)

func main() {
	args := os.Args[1:]

	// Extract global flags
	var cmdArgs []string
	for i := 0; i < len(args); i++ {
		arg := args[i]

		switch {
		case arg == "--config" || arg == "-c":
			if i+1 < len(args) {
				commands.SetConfigPath(args[i+1])
				i++
			}
		case strings.HasPrefix(arg, "--config="):
			commands.SetConfigPath(strings.TrimPrefix(arg, "--config="))
		case arg == "--version" || arg == "-V":
			printVersion()
			return
		case arg == "--help" || arg == "-h":
			printHelp()
			return
		default:
			cmdArgs = append(cmdArgs, arg)
		}
	}

	commands.InitRegistry()

	// No command defaults to the dashboard for a signed-in session and the
	// shell otherwise
	if len(cmdArgs) == 0 {
		cmdArgs = []string{defaultCommand()}
	}

	cmdName := cmdArgs[0]
	cmdRemainingArgs := cmdArgs[1:]

	switch cmdName {
	case "version":
		printVersion()
		return
	case "help":
		if len(cmdRemainingArgs) > 0 {
			commands.PrintCommandHelp(cmdRemainingArgs[0])
		} else {
			printHelp()
		}
		return
	}

	cmd := commands.GetCommand(cmdName)
	if cmd == nil {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmdName)
		fmt.Fprintf(os.Stderr, "Run 'labops help' for usage.\n")
		os.Exit(1)
	}

	if err := cmd.Handler(cmdRemainingArgs); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func defaultCommand() string {
	if err := commands.InitContext(); err != nil {
		return "shell"
	}
	if ctx := commands.GetContext(); ctx != nil && ctx.Session.HasToken() {
		return "dashboard"
	}
	return "shell"
}

func printVersion() {
	fmt.Printf("%s version %s\n", modules.AppName, modules.AppVersion)
}

func printHelp() {
	fmt.Printf("%s - %s\n", modules.AppName, modules.AppDescription)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  labops [flags] [command] [arguments]")
	fmt.Println()
	fmt.Println("Global Flags:")
	fmt.Println("  -c, --config <path>    Path to config file")
	fmt.Println("  -V, --version          Print version")
	fmt.Println("  -h, --help             Print help")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println()

	commands.PrintCommands()

	fmt.Println()
	fmt.Println("Use 'labops help <command>' for more information about a command.")
}
