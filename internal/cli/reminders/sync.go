package reminders

import (
	"fmt"

	"github.com/amacleod/pulse/internal/cli"
)

// SyncCmd reconciles the cached reminder settings against the agent's
// schedule list. It is idempotent and safe to run on every shell start.
type SyncCmd struct{}

func (c *SyncCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	before := ctx.Reminders.LoadSettings()
	after := ctx.Reminders.Reconcile(before)

	if after != before {
		if err := ctx.Reminders.SaveSettings(after); err != nil {
			return fmt.Errorf("failed to persist reconciled settings: %w", err)
		}
		fmt.Println("Reminder schedule reconciled.")
		return nil
	}
	fmt.Println("Reminder schedule already in sync.")
	return nil
}
