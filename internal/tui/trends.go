package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amacleod/pulse/internal/models"
)

var (
	baseStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))

	summaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Padding(0, 1)
)

type trendsModel struct {
	table   table.Model
	summary string
}

func (m trendsModel) Init() tea.Cmd { return nil }

func (m trendsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m trendsModel) View() string {
	return baseStyle.Render(m.table.View()) + "\n" +
		summaryStyle.Render(m.summary) + "\n" +
		helpStyle.Render("↑/↓ scroll · q quit")
}

// RunTrends shows an interactive history of check-ins with per-metric
// averages. Records are expected sorted ascending by date key; the view shows
// newest first.
func RunTrends(checkins []models.DailyCheckin) error {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Energy", Width: 8},
		{Title: "Mood", Width: 8},
		{Title: "Focus", Width: 8},
	}

	rows := make([]table.Row, 0, len(checkins))
	for i := len(checkins) - 1; i >= 0; i-- {
		record := checkins[i]
		rows = append(rows, table.Row{
			record.DateKey,
			strconv.Itoa(record.Energy),
			strconv.Itoa(record.Mood),
			strconv.Itoa(record.Focus),
		})
	}

	height := len(rows)
	if height > 15 {
		height = 15
	}
	if height < 1 {
		height = 1
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))
	t.SetStyles(styles)

	m := trendsModel{
		table:   t,
		summary: summarize(checkins),
	}

	_, err := tea.NewProgram(m).Run()
	return err
}

func summarize(checkins []models.DailyCheckin) string {
	if len(checkins) == 0 {
		return "No check-ins recorded yet."
	}

	var energy, mood, focus int
	for _, record := range checkins {
		energy += record.Energy
		mood += record.Mood
		focus += record.Focus
	}
	n := float64(len(checkins))
	return fmt.Sprintf("%d day(s) · avg energy %.1f · avg mood %.1f · avg focus %.1f",
		len(checkins), float64(energy)/n, float64(mood)/n, float64(focus)/n)
}
