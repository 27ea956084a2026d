package commands

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/qiyaolin/labops/modules/core/equipment"
	"github.com/qiyaolin/labops/modules/core/inventory"
	"github.com/qiyaolin/labops/modules/core/requests"
	"github.com/qiyaolin/labops/modules/core/schedules"
	"github.com/qiyaolin/labops/modules/platform/config"
	"github.com/qiyaolin/labops/modules/platform/push"
	uicore "github.com/qiyaolin/labops/modules/ui/core"
	"github.com/qiyaolin/labops/modules/ui/tui"
)

// ============================================
// Account
// ============================================

func loginCommand(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: labops login <username>")
	}
	if err := InitContext(); err != nil {
		return err
	}
	appCtx := GetContext()
	username := args[0]

	fmt.Printf("Password for %s: ", username)
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}

	result, err := appCtx.Client.Login(context.Background(), username, string(pw))
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	appCtx.Session.SetCredentials(result.Token, result.UserID, result.Username, result.IsAdmin)
	if err := appCtx.Session.Save(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	role := "member"
	if result.IsAdmin {
		role = "admin"
	}
	fmt.Printf("Signed in as %s (%s).\n", result.Username, role)
	return nil
}

func logoutCommand(args []string) error {
	if err := InitContext(); err != nil {
		return err
	}
	appCtx := GetContext()
	appCtx.Session.Clear()
	if err := appCtx.Session.Save(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	fmt.Println("Signed out.")
	return nil
}

func statusCommand(args []string) error {
	if err := InitContext(); err != nil {
		return err
	}
	appCtx := GetContext()

	fmt.Printf("Backend:  %s\n", appCtx.Config.Backend.BaseURL)
	fmt.Printf("Config:   %s\n", appCtx.Loader.GetPath())
	if !appCtx.Session.HasToken() {
		fmt.Println("Session:  not signed in")
		return nil
	}
	role := "member"
	if appCtx.Session.Admin() {
		role = "admin"
	}
	fmt.Printf("Session:  %s (%s)\n", appCtx.Session.CurrentUsername(), role)
	return nil
}

// ============================================
// Lab data
// ============================================

func requestsCommand(args []string) error {
	if err := InitContext(); err != nil {
		return err
	}
	appCtx := GetContext()

	opts := requests.FilterOptions{}
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--status":
			if i+1 < len(args) {
				i++
				opts.Statuses = []requests.Status{requests.Status(strings.ToUpper(args[i]))}
			}
		case "--mine":
			opts.MineOnly = true
			opts.OwnerID = appCtx.Session.CurrentUserID()
		}
	}

	all, err := appCtx.Client.ListRequests(context.Background())
	if err != nil {
		return err
	}

	rows := requests.Filter(all, opts)
	if len(rows) == 0 {
		fmt.Println("No purchase requests.")
		return nil
	}

	counts := requests.CountByStatus(all)
	fmt.Printf("NEW %d  APPROVED %d  ORDERED %d  RECEIVED %d\n\n",
		counts[requests.StatusNew], counts[requests.StatusApproved],
		counts[requests.StatusOrdered], counts[requests.StatusReceived])

	fmt.Printf("%-5s %-30s %-16s %10s %5s  %s\n", "ID", "ITEM", "VENDOR", "TOTAL", "QTY", "STATUS")
	for _, r := range rows {
		fmt.Printf("%-5d %-30.30s %-16.16s %10.2f %5d  %s\n",
			r.ID, r.ItemName, r.VendorName, r.TotalPrice(), r.Quantity, r.Status)
	}
	return nil
}

func scheduleCommand(args []string) error {
	if err := InitContext(); err != nil {
		return err
	}
	appCtx := GetContext()

	opts := schedules.FilterOptions{}
	for _, a := range args {
		if a == "--mine" {
			opts.MineOnly = true
			opts.OwnerID = appCtx.Session.CurrentUserID()
		}
	}

	all, err := appCtx.Client.ListSchedules(context.Background())
	if err != nil {
		return err
	}

	rows := schedules.Filter(all, opts)
	if len(rows) == 0 {
		fmt.Println("No events.")
		return nil
	}

	lastDate := ""
	for _, ev := range rows {
		if ev.Date != lastDate {
			fmt.Printf("\n%s\n", ev.Date)
			lastDate = ev.Date
		}
		loc := ""
		if ev.Location != "" {
			loc = " @ " + ev.Location
		}
		fmt.Printf("  %-13s %s%s\n", ev.TimeRange(), ev.Title, loc)
	}
	return nil
}

func equipmentCommand(args []string) error {
	if err := InitContext(); err != nil {
		return err
	}
	appCtx := GetContext()

	opts := equipment.FilterOptions{}
	for _, a := range args {
		if a == "--available" {
			opts.OnlyAvailable = true
		}
	}

	all, err := appCtx.Client.ListEquipment(context.Background())
	if err != nil {
		return err
	}

	rows := equipment.Filter(all, opts)
	if len(rows) == 0 {
		fmt.Println("No equipment.")
		return nil
	}

	now := time.Now()
	for _, eq := range rows {
		state := "free"
		if eq.InUse {
			state = eq.CurrentUserName
			if d := eq.UsageDuration(now); d != "" {
				state += " for " + d
			}
		}
		fmt.Printf("%-26.26s %-18.18s %s\n", eq.Name, eq.Location, state)
	}
	return nil
}

func inventoryCommand(args []string) error {
	if err := InitContext(); err != nil {
		return err
	}
	appCtx := GetContext()

	items, err := appCtx.Client.ListItems(context.Background())
	if err != nil {
		return err
	}

	groups := inventory.GroupItems(items, time.Now())
	if len(groups) == 0 {
		fmt.Println("No stock on record.")
		return nil
	}

	fmt.Printf("%-30s %-16s %5s %5s %8s %9s %4s\n",
		"PRODUCT", "VENDOR", "LOTS", "QTY", "EXPIRED", "EXPIRING", "LOW")
	for _, g := range groups {
		fmt.Printf("%-30.30s %-16.16s %5d %5d %8d %9d %4d\n",
			g.Key.Name, g.VendorName, g.InstanceCount, g.TotalQuantity,
			g.ExpiredCount, g.ExpiringCount, g.LowStockCount)
	}
	return nil
}

// ============================================
// Configuration
// ============================================

func configCommand(args []string) error {
	if len(args) == 0 {
		PrintCommandHelp("config")
		return nil
	}
	switch args[0] {
	case "show":
		return configShowCommand()
	case "path":
		return configPathCommand()
	case "init":
		return configInitCommand()
	}
	return fmt.Errorf("unknown config subcommand: %s", args[0])
}

func configShowCommand() error {
	if err := InitContext(); err != nil {
		return err
	}
	out, err := yaml.Marshal(GetContext().Config)
	if err != nil {
		return err
	}
	fmt.Print(string(out))
	return nil
}

func configPathCommand() error {
	if err := InitContext(); err != nil {
		return err
	}
	fmt.Println(GetContext().Loader.GetPath())
	return nil
}

func configInitCommand() error {
	loader := config.NewLoader(config.FindConfigFile())
	if loader.Exists() {
		fmt.Printf("Config already exists at %s\n", loader.GetPath())
		return nil
	}
	if err := loader.Save(config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Printf("Wrote default config to %s\n", loader.GetPath())
	return nil
}

// ============================================
// Interface
// ============================================

func dashboardCommand(args []string) error {
	if err := InitContext(); err != nil {
		return err
	}
	appCtx := GetContext()

	if !appCtx.Session.HasToken() {
		return fmt.Errorf("not signed in; run 'labops login <username>' first")
	}

	presenter := uicore.NewAppPresenter(appCtx.Client, appCtx.Session, appCtx.Config, appCtx.Log)
	presenter.ConfigSaver = appCtx.Loader.Save

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := presenter.Initialize(ctx); err != nil {
		return fmt.Errorf("failed to initialize presenter: %w", err)
	}
	defer presenter.Shutdown()

	// Change-feed push keeps the dashboard fresh without polling
	if appCtx.Config.Backend.PushEnabled {
		listener := push.New(appCtx.Config.Backend.BaseURL, appCtx.Session, appCtx.Log, presenter.OnChangeHint)
		go listener.Run(ctx)
	}

	selector := uicore.NewViewSelector(appCtx.Config.UI.CompactBreakpoint)
	pref := uicore.LayoutPreference(appCtx.Config.UI.Mode)

	tuiView := tui.NewTUIView(selector, pref)
	if err := tuiView.Initialize(presenter); err != nil {
		return fmt.Errorf("failed to initialize TUI: %w", err)
	}

	if err := tuiView.Run(ctx); err != nil && err != context.Canceled {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

func shellCommand(args []string) error {
	if err := InitContext(); err != nil {
		return err
	}
	return StartShell()
}
