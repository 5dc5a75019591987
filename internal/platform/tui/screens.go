package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/cupid-arrow/internal/ranking"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)
	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
	accentStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

var logo = []string{
	` ___ _   _ ___ ___ ___      _   ___ ___  _____      __`,
	`/ __| | | | _ \_ _|   \    /_\ | _ \ _ \/ _ \ \    / /`,
	`| (__| |_| |  _/| || |) |  / _ \|   /   / (_) \ \/\/ / `,
	` \___|\___/|_| |___|___/  /_/ \_\_|_\_|_\\___/ \_/\_/  `,
}

// viewStart renders the title screen.
func (m Model) viewStart() string {
	var b strings.Builder

	b.WriteString("\n")
	if m.width >= len(logo[0])+2 {
		for _, line := range logo {
			b.WriteString(titleStyle.UnsetMarginBottom().Render(centerText(line, m.width)))
			b.WriteString("\n")
		}
	} else {
		b.WriteString(titleStyle.Render(centerText("♥ CUPID ARROW ♥", m.width)))
	}
	b.WriteString("\n\n")

	lines := []string{
		"Dodge the falling arrows " + string(ArrowChar) + " and keep your hearts.",
		string(ConfusionChar) + " confuses you (double damage), " + string(SlowChar) + " slows you down.",
		"",
		"←/→ or A/D  move",
		"1  shield    2  speed boost",
	}
	for _, line := range lines {
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(accentStyle.Render(centerText("Enter: Play  |  R: Rankings  |  Q: Quit", m.width)))
	b.WriteString("\n")
	return b.String()
}

// viewNameInput renders the game over screen with name entry.
func (m Model) viewNameInput() string {
	snap := m.ctrl.Snapshot()
	var b strings.Builder

	b.WriteString("\n\n")
	b.WriteString(titleStyle.Render(centerText("GAME OVER", m.width)))
	b.WriteString("\n")
	b.WriteString(accentStyle.Render(centerText(fmt.Sprintf("Final score %d  |  Level %d", snap.FinalScore, snap.Level), m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText("New high score! Enter your name:", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(boxStyle.Render(m.name.View()), m.width))
	b.WriteString("\n")

	switch {
	case m.submitting:
		b.WriteString(subtleStyle.Render(centerText("Saving...", m.width)))
	case m.inputErr != "":
		b.WriteString(errorStyle.Render(centerText(m.inputErr, m.width)))
	}
	b.WriteString("\n\n")
	b.WriteString(subtleStyle.Render(centerText("Enter: Save  |  Esc: Skip", m.width)))
	return b.String()
}

// viewRankings renders the leaderboard.
func (m Model) viewRankings() string {
	var b strings.Builder

	title := "RANKINGS"
	if m.ctrl.RankingsLoading() {
		title += "  (loading)"
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n")

	if res, ok := m.ctrl.LastSubmission(); ok {
		line := fmt.Sprintf("%s scored %d", res.Entry.Name, res.Entry.Score)
		if res.Rank > 0 {
			line += fmt.Sprintf(" and ranked #%d", res.Rank)
		}
		b.WriteString(accentStyle.Render(centerText(line, m.width)))
		b.WriteString("\n")
	} else if snap := m.ctrl.Snapshot(); snap.Lives == 0 {
		b.WriteString(centerText(fmt.Sprintf("Final score %d", snap.FinalScore), m.width))
		b.WriteString("\n")
	}

	if len(m.table.Rows()) == 0 {
		b.WriteString(centerText(boxStyle.Render(subtleStyle.Italic(true).Padding(1, 4).Render("No rankings yet.")), m.width))
	} else {
		b.WriteString(centerText(boxStyle.Render(m.table.View()), m.width))
	}
	b.WriteString("\n")

	if notice := m.ctrl.Notice(); notice != "" {
		b.WriteString(errorStyle.Render(centerText(notice, m.width)))
		b.WriteString("\n")
	}

	b.WriteString(subtleStyle.Render(centerText(m.help.View(m.keys), m.width)))
	return b.String()
}

// rankingsTableHeight leaves room for the title, border, notices and help.
func rankingsTableHeight(height int) int {
	return max(min(height-9, ranking.MaxEntries+1), 3)
}

// newRankingsTable creates the leaderboard table.
func newRankingsTable(height int) table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Name", Width: ranking.MaxNameLength * 2},
		{Title: "Score", Width: 8},
		{Title: "Level", Width: 6},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(rankingsTableHeight(height)),
	)

	// Table styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("205")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// setRows fills the table with entries, selecting the highlighted rank.
func (m *Model) setRows(entries []ranking.Entry) {
	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			e.Name,
			fmt.Sprintf("%d", e.Score),
			fmt.Sprintf("%d", e.Level),
		}
	}
	m.table.SetRows(rows)

	if m.highlight > 0 && m.highlight <= len(rows) {
		m.table.SetCursor(m.highlight - 1)
	} else {
		m.table.GotoTop()
	}
}
