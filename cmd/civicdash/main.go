package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/civicsense/civicdash/internal/cache"
	"github.com/civicsense/civicdash/internal/civic"
	"github.com/civicsense/civicdash/internal/config"
	"github.com/civicsense/civicdash/internal/logging"
	"github.com/civicsense/civicdash/internal/refresh"
	"github.com/civicsense/civicdash/internal/tui"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	orgID := flag.String("org", "", "organization id (overrides config)")
	noTUI := flag.Bool("no-tui", false, "disable TUI mode")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if *orgID != "" {
		cfg.OrgID = *orgID
	}

	// Auto-detect TUI capability
	enableTUI := !*noTUI && os.Getenv("CIVICDASH_TUI") != "0" &&
		isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())

	logger, logCloser, err := logging.New(cfg.LogFile, cfg.Log.Level, enableTUI)
	if err != nil {
		fmt.Fprintf(os.Stderr, "setup logger: %v\n", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	client := civic.NewClient(cfg.APIBaseURL, cfg.RequestTimeout, logger)
	snapCache := cache.New(cfg.CacheTTL)
	controller := refresh.New(client, snapCache, refresh.Options{
		OrgID:               cfg.OrgID,
		AutoRefresh:         *cfg.AutoRefresh,
		AutoRefreshInterval: cfg.AutoRefreshInterval,
	}, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// One-shot organization listing for the header; the dashboard
	// works without it.
	orgs, err := client.Organizations(ctx)
	if err != nil {
		logger.Warn("list organizations failed", "err", err)
	}

	if enableTUI {
		// TUI mode: controller polls in the background, TUI renders
		// in the foreground.
		go func() {
			if err := controller.Run(ctx); err != nil && ctx.Err() == nil {
				logger.Error("controller error", "err", err)
			}
		}()

		m := tui.NewModel(controller, orgs, cfg.TUI.RefreshInterval)
		p := tea.NewProgram(m, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "TUI error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Headless mode: poll and log only.
	logger.Info("civicdash starting (headless)", "config", *configPath, "org", cfg.OrgID)
	if err := controller.Run(ctx); err != nil {
		logger.Error("controller error", "err", err)
		os.Exit(1)
	}
}
