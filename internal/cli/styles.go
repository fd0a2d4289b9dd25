package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/mmeshcher/bonus-tracker/internal/lifecycle"
	"github.com/mmeshcher/bonus-tracker/internal/model"
)

var palette = map[string]lipgloss.Color{
	"gray":   lipgloss.Color("245"),
	"blue":   lipgloss.Color("33"),
	"indigo": lipgloss.Color("63"),
	"purple": lipgloss.Color("135"),
	"green":  lipgloss.Color("34"),
	"red":    lipgloss.Color("160"),
}

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	overdueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("160")).
			Bold(true)
)

func badge(status model.BonusStatus) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("231")).
		Background(palette[lifecycle.Color(status)]).
		Padding(0, 1).
		Render(lifecycle.Label(status))
}

func money(v float64) string {
	return "$" + humanize.FormatFloat("#,###.##", v)
}

func percent(v float64) string {
	return humanize.FormatFloat("#,###.##", v) + "%"
}

func progressBar(pct int) string {
	const width = 20
	filled := pct * width / 100
	bar := make([]rune, width)
	for i := range bar {
		if i < filled {
			bar[i] = '█'
		} else {
			bar[i] = '░'
		}
	}
	return fmt.Sprintf("%s %3d%%", string(bar), pct)
}

func checkmark(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}
