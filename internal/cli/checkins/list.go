package checkins

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/amacleod/pulse/internal/checkin"
	"github.com/amacleod/pulse/internal/cli"
	"github.com/amacleod/pulse/internal/models"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

type ListCmd struct {
	Days int `help:"Only show check-ins from the last N days." default:"0"`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	checkins, err := ctx.Checkins.LoadAll()
	if err != nil {
		return fmt.Errorf("failed to load check-ins: %w", err)
	}

	if c.Days > 0 {
		cutoff := checkin.DateKey(time.Now().AddDate(0, 0, -(c.Days - 1)))
		filtered := checkins[:0]
		for _, record := range checkins {
			if record.DateKey >= cutoff {
				filtered = append(filtered, record)
			}
		}
		checkins = filtered
	}

	if len(checkins) == 0 {
		fmt.Println("No check-ins recorded yet. Run 'pulse add' to record today's.")
		return nil
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("%-12s %8s %8s %8s  %s", "Date", "Energy", "Mood", "Focus", "Updated")))
	for _, record := range checkins {
		fmt.Printf("%-12s %8d %8d %8d  %s\n",
			record.DateKey, record.Energy, record.Mood, record.Focus,
			dimStyle.Render(formatUpdatedAt(record)))
	}
	fmt.Println(dimStyle.Render(strconv.Itoa(len(checkins)) + " check-ins"))
	return nil
}

func formatUpdatedAt(record models.DailyCheckin) string {
	return time.UnixMilli(record.UpdatedAt).Local().Format("2006-01-02 15:04")
}
