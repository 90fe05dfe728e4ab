package checkins

import (
	"fmt"

	"github.com/amacleod/pulse/internal/cli"
	"github.com/amacleod/pulse/internal/tui"
)

type TrendsCmd struct{}

func (c *TrendsCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	checkins, err := ctx.Checkins.LoadAll()
	if err != nil {
		return fmt.Errorf("failed to load check-ins: %w", err)
	}

	return tui.RunTrends(checkins)
}
