package reminders

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/amacleod/pulse/internal/cli"
)

var (
	enabledStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	disabledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type StatusCmd struct{}

func (c *StatusCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	settings := ctx.Reminders.LoadSettings()

	state := disabledStyle.Render("disabled")
	if settings.Enabled {
		state = enabledStyle.Render("enabled")
	}
	fmt.Printf("Daily reminder: %s\n", state)
	fmt.Printf("  Time:        %02d:%02d\n", settings.Hour, settings.Minute)
	if settings.NotificationID != "" {
		fmt.Printf("  Schedule ID: %s\n", settings.NotificationID)
	}

	if settings.Enabled {
		if ctx.Reminders.HasPermissions() {
			fmt.Println("  Permission:  granted")
		} else {
			fmt.Println("  Permission:  not granted (is the agent running?)")
		}
	}
	return nil
}
