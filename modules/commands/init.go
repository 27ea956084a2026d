package commands

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/qiyaolin/labops/modules/platform/api"
	"github.com/qiyaolin/labops/modules/platform/config"
	"github.com/qiyaolin/labops/modules/platform/logger"
	"github.com/qiyaolin/labops/modules/platform/session"
)

// AppContext holds application-wide context
type AppContext struct {
	Config  *config.Config
	Loader  *config.Loader
	Session *session.Session
	Client  *api.Client
	Log     *zap.Logger
}

var (
	globalContext  *AppContext
	configOverride string
)

// SetConfigPath overrides the config file location before the first
// InitContext call. Used by the --config global flag.
func SetConfigPath(path string) {
	configOverride = path
}

// InitContext initializes the application context. Repeat calls reuse the
// existing context so shell commands do not reload state on every line.
func InitContext() error {
	if globalContext != nil {
		return nil
	}

	configPath := configOverride
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	loader := config.NewLoader(configPath)
	cfg, err := loader.LoadWithCreate(true)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.Logger.Level, cfg.Logger.Format, cfg.Logger.Path)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	sess, err := session.Load(session.DefaultPath())
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	client := api.New(cfg.Backend.BaseURL, cfg.Backend.Timeout(), sess, log)

	globalContext = &AppContext{
		Config:  cfg,
		Loader:  loader,
		Session: sess,
		Client:  client,
		Log:     log,
	}

	return nil
}

// GetContext returns the global application context
func GetContext() *AppContext {
	return globalContext
}

// registerAuthCommands registers account commands
func registerAuthCommands() {
	RegisterCommand(&Command{
		Name:        "login",
		Category:    "Account",
		Description: "Sign in and store an API token",
		Usage:       "labops login <username>",
		Examples: []string{
			"labops login vera",
		},
		Handler: loginCommand,
		Order:   10,
	})

	RegisterCommand(&Command{
		Name:        "logout",
		Category:    "Account",
		Description: "Drop the stored API token",
		Usage:       "labops logout",
		Examples: []string{
			"labops logout",
		},
		Handler: logoutCommand,
		Order:   11,
	})

	RegisterCommand(&Command{
		Name:        "status",
		Aliases:     []string{"st"},
		Category:    "Account",
		Description: "Show session and backend status",
		Usage:       "labops status",
		Examples: []string{
			"labops status",
		},
		Handler: statusCommand,
		Order:   12,
	})
}

// registerDataCommands registers read-only list commands
func registerDataCommands() {
	RegisterCommand(&Command{
		Name:        "requests",
		Aliases:     []string{"req"},
		Category:    "Lab Data",
		Description: "List purchase requests",
		Usage:       "labops requests [--status <status>] [--mine]",
		Examples: []string{
			"labops requests",
			"labops requests --status NEW",
			"labops req --mine",
		},
		Handler: requestsCommand,
		Order:   20,
	})

	RegisterCommand(&Command{
		Name:        "schedule",
		Aliases:     []string{"cal"},
		Category:    "Lab Data",
		Description: "List upcoming events",
		Usage:       "labops schedule [--mine]",
		Examples: []string{
			"labops schedule",
			"labops cal --mine",
		},
		Handler: scheduleCommand,
		Order:   21,
	})

	RegisterCommand(&Command{
		Name:        "equipment",
		Aliases:     []string{"eq"},
		Category:    "Lab Data",
		Description: "Show the equipment board",
		Usage:       "labops equipment [--available]",
		Examples: []string{
			"labops equipment",
			"labops eq --available",
		},
		Handler: equipmentCommand,
		Order:   22,
	})

	RegisterCommand(&Command{
		Name:        "inventory",
		Aliases:     []string{"inv"},
		Category:    "Lab Data",
		Description: "List inventory grouped by product",
		Usage:       "labops inventory",
		Examples: []string{
			"labops inventory",
		},
		Handler: inventoryCommand,
		Order:   23,
	})
}

// registerConfigCommands registers configuration commands
func registerConfigCommands() {
	RegisterCommand(&Command{
		Name:        "config",
		Aliases:     []string{"cfg"},
		Category:    "Configuration",
		Description: "Configuration management",
		Usage:       "labops config <subcommand>",
		SubCommands: []SubCommand{
			{Name: "show", Description: "Show current configuration"},
			{Name: "path", Description: "Show config file path"},
			{Name: "init", Description: "Write a default config file"},
		},
		Examples: []string{
			"labops config show",
			"labops cfg path",
		},
		Handler: configCommand,
		Order:   30,
	})
}

// registerUICommands registers UI-related commands
func registerUICommands() {
	RegisterCommand(&Command{
		Name:        "dashboard",
		Aliases:     []string{"ui"},
		Category:    "Interface",
		Description: "Launch the interactive dashboard",
		Usage:       "labops dashboard",
		Examples: []string{
			"labops dashboard",
		},
		Handler: dashboardCommand,
		Order:   40,
	})

	RegisterCommand(&Command{
		Name:        "shell",
		Aliases:     []string{"sh"},
		Category:    "Interface",
		Description: "Start interactive shell",
		Usage:       "labops shell",
		Examples: []string{
			"labops shell",
			"labops sh",
		},
		Handler: shellCommand,
		Order:   41,
	})
}
