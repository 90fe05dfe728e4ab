package checkins

import (
	"fmt"

	"github.com/amacleod/pulse/internal/cli"
)

type PurgeCmd struct {
	Days int `help:"Retention window in calendar days, including today." default:"90"`
}

func (c *PurgeCmd) Validate() error {
	if c.Days < 1 {
		return fmt.Errorf("retention window must be at least 1 day")
	}
	return nil
}

func (c *PurgeCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	removed, err := ctx.Checkins.PurgeOlderThan(c.Days)
	if err != nil {
		return fmt.Errorf("failed to purge check-ins: %w", err)
	}

	if removed == 0 {
		fmt.Println("Nothing to purge.")
		return nil
	}
	fmt.Printf("Purged %d check-in(s) older than %d days.\n", removed, c.Days)
	return nil
}
