package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"shipping_portal_backend/internal/lookup"
	"shipping_portal_backend/internal/tui"
	"shipping_portal_backend/platform/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	client := lookup.NewAPIClient(cfg.GetClientAPIURL(), cfg.GetCarrierTimeout())

	app := tui.NewApp(client)
	program := tea.NewProgram(app, tea.WithAltScreen())
	app.Bind(program.Send)

	if _, err := program.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "shipdesk:", err)
		os.Exit(1)
	}
}
