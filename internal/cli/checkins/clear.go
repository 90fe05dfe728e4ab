package checkins

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/amacleod/pulse/internal/cli"
)

type ClearCmd struct {
	Yes bool `help:"Skip the confirmation prompt."`
}

func (c *ClearCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	if !c.Yes {
		var confirmed bool
		err := huh.NewConfirm().
			Title("Delete ALL recorded check-ins?").
			Description("This cannot be undone.").
			Value(&confirmed).
			Run()
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := ctx.Checkins.ClearAll(); err != nil {
		return fmt.Errorf("failed to clear check-ins: %w", err)
	}
	fmt.Println("All check-ins cleared.")
	return nil
}
