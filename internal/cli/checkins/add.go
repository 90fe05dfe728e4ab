package checkins

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/amacleod/pulse/internal/checkin"
	"github.com/amacleod/pulse/internal/cli"
	"github.com/amacleod/pulse/internal/constants"
)

type AddCmd struct {
	Energy int    `help:"Energy level (1-10)." default:"0"`
	Mood   int    `help:"Mood level (1-10)." default:"0"`
	Focus  int    `help:"Focus level (1-10)." default:"0"`
	Date   string `help:"Date to record for (YYYY-MM-DD, defaults to today)."`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	var date time.Time
	if c.Date != "" {
		parsed, err := cli.ParseDate(c.Date)
		if err != nil {
			return err
		}
		date = parsed
	}

	// Collect any metric not given as a flag through an interactive form.
	if c.Energy == 0 || c.Mood == 0 || c.Focus == 0 {
		if err := c.promptMissing(); err != nil {
			return err
		}
	}

	for _, metric := range []struct {
		name  string
		value int
	}{
		{"energy", c.Energy},
		{"mood", c.Mood},
		{"focus", c.Focus},
	} {
		if err := cli.ValidateMetric(metric.name, metric.value); err != nil {
			return err
		}
	}

	record, err := ctx.Checkins.UpsertToday(checkin.UpsertInput{
		Energy: c.Energy,
		Mood:   c.Mood,
		Focus:  c.Focus,
		Date:   date,
	})
	if err != nil {
		return fmt.Errorf("failed to save check-in: %w", err)
	}

	fmt.Printf("✓ Check-in saved for %s (energy=%d mood=%d focus=%d)\n",
		record.DateKey, record.Energy, record.Mood, record.Focus)
	return nil
}

func (c *AddCmd) promptMissing() error {
	var fields []huh.Field
	var energy, mood, focus string

	if c.Energy == 0 {
		fields = append(fields, metricInput("Energy", &energy))
	}
	if c.Mood == 0 {
		fields = append(fields, metricInput("Mood", &mood))
	}
	if c.Focus == 0 {
		fields = append(fields, metricInput("Focus", &focus))
	}

	form := huh.NewForm(huh.NewGroup(fields...))
	if err := form.Run(); err != nil {
		return err
	}

	c.Energy, _ = strconv.Atoi(energy)
	c.Mood, _ = strconv.Atoi(mood)
	c.Focus, _ = strconv.Atoi(focus)
	return nil
}

func metricInput(title string, value *string) huh.Field {
	return huh.NewInput().
		Title(fmt.Sprintf("%s (1-10)", title)).
		Value(value).
		Validate(func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil {
				return fmt.Errorf("enter a number")
			}
			if n < constants.MetricMin || n > constants.MetricMax {
				return fmt.Errorf("must be between %d and %d", constants.MetricMin, constants.MetricMax)
			}
			return nil
		})
}
