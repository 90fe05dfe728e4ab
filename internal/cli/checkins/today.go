package checkins

import (
	"fmt"
	"time"

	"github.com/amacleod/pulse/internal/checkin"
	"github.com/amacleod/pulse/internal/cli"
)

type TodayCmd struct{}

func (c *TodayCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	dateKey := checkin.DateKey(time.Now())
	record, err := ctx.Checkins.LoadForDate(dateKey)
	if err != nil {
		return fmt.Errorf("failed to load check-in: %w", err)
	}

	if record == nil {
		fmt.Printf("No check-in recorded for %s yet. Run 'pulse add'.\n", dateKey)
		return nil
	}

	fmt.Printf("%s  energy=%d mood=%d focus=%d\n", record.DateKey, record.Energy, record.Mood, record.Focus)
	fmt.Printf("Last updated %s\n", formatUpdatedAt(*record))
	return nil
}
