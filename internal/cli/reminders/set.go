package reminders

import (
	"errors"
	"fmt"

	"github.com/amacleod/pulse/internal/cli"
	"github.com/amacleod/pulse/internal/reminder"
)

type SetCmd struct {
	On   bool   `help:"Enable the daily reminder." xor:"state"`
	Off  bool   `help:"Disable the daily reminder." xor:"state"`
	Time string `help:"Reminder time (HH:MM)."`
}

func (c *SetCmd) Validate() error {
	if !c.On && !c.Off && c.Time == "" {
		return fmt.Errorf("specify --on, --off, or --time")
	}
	return nil
}

func (c *SetCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	settings := ctx.Reminders.LoadSettings()

	if c.Time != "" {
		hour, minute, err := cli.ParseClock(c.Time)
		if err != nil {
			return err
		}
		settings.Hour = hour
		settings.Minute = minute
	}
	if c.On {
		settings.Enabled = true
	}
	if c.Off {
		settings.Enabled = false
	}

	applied, err := ctx.Reminders.Apply(settings)
	if err != nil {
		if errors.Is(err, reminder.ErrNotAllowed) {
			fmt.Println("Not allowed: notification permission was denied. Reminder stays disabled.")
			return nil
		}
		return fmt.Errorf("failed to update reminder: %w", err)
	}

	if applied.Enabled {
		fmt.Printf("✓ Daily reminder set for %02d:%02d\n", applied.Hour, applied.Minute)
	} else {
		fmt.Println("✓ Daily reminder disabled")
	}
	return nil
}
