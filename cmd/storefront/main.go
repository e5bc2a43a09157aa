package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"storefront/clients"
	"storefront/common/logger"
	"storefront/config"
	"storefront/session"
	"storefront/ui"
)

func main() {
	cfg := config.Load()

	// The TUI owns the terminal; logs go to a file.
	logger.InitializeFile(cfg.Env, cfg.LogFile)
	defer zap.L().Sync()

	zap.L().Info("Storefront starting",
		zap.String("api", cfg.APIBaseURL),
		zap.Int("pageSize", cfg.PageSize),
	)

	gateway := clients.NewCatalogClient(cfg.APIBaseURL, cfg.RequestTimeout)
	sess := session.New(cfg.PageSize)

	program := tea.NewProgram(ui.NewModel(gateway, sess), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		zap.L().Error("Program exited with error", zap.Error(err))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
