package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"habitboard/internal/dates"
	"habitboard/internal/models"
	"habitboard/internal/scoring"
)

type SessionState int

const (
	StateWeek SessionState = iota
	StateLeaderboard
)

// Model is a read-only dashboard over a bundle snapshot: a week grid of
// completions per user and the computed leaderboard. Mutations go through the
// CLI commands; the dashboard never writes.
type Model struct {
	bundle   models.Bundle
	state    SessionState
	keys     KeyMap
	help     help.Model
	board    table.Model
	week     []string
	today    string
	userIdx  int
	width    int
	height   int
	quitting bool
}

func New(bundle models.Bundle) Model {
	today := dates.Today()
	m := Model{
		bundle: bundle,
		state:  StateWeek,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		week:   dates.WeekWindow(time.Now()),
		today:  today,
	}
	m.board = newBoardTable(bundle, today)
	return m
}

func newBoardTable(bundle models.Bundle, today string) table.Model {
	statsByUser := scoring.ComputeAllStats(bundle, today)
	board := scoring.BuildLeaderboard(bundle.Users, statsByUser, today)

	columns := []table.Column{
		{Title: "#", Width: 3},
		{Title: "Name", Width: 20},
		{Title: "Points", Width: 8},
		{Title: "Streak", Width: 8},
		{Title: "Longest", Width: 8},
		{Title: "Done", Width: 6},
	}

	rows := make([]table.Row, 0, len(board))
	for _, e := range board {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", e.Rank),
			e.User.Name,
			fmt.Sprintf("%d", e.Stats.TotalPoints),
			fmt.Sprintf("%d", e.Stats.Streak),
			fmt.Sprintf("%d", e.Stats.LongestStreak),
			fmt.Sprintf("%d", e.Stats.HabitsCompleted),
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		Foreground(lipgloss.Color("212")).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))
	t.SetStyles(s)

	return t
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil

		case key.Matches(msg, m.keys.Tab), key.Matches(msg, m.keys.ShiftTab):
			if m.state == StateWeek {
				m.state = StateLeaderboard
				m.board.Focus()
			} else {
				m.state = StateWeek
				m.board.Blur()
			}
			return m, nil

		case key.Matches(msg, m.keys.Left):
			if m.state == StateWeek && len(m.bundle.Users) > 0 {
				m.userIdx = (m.userIdx - 1 + len(m.bundle.Users)) % len(m.bundle.Users)
			}
			return m, nil

		case key.Matches(msg, m.keys.Right):
			if m.state == StateWeek && len(m.bundle.Users) > 0 {
				m.userIdx = (m.userIdx + 1) % len(m.bundle.Users)
			}
			return m, nil
		}
	}

	if m.state == StateLeaderboard {
		var cmd tea.Cmd
		m.board, cmd = m.board.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	switch m.state {
	case StateWeek:
		b.WriteString(m.renderWeek())
	case StateLeaderboard:
		b.WriteString(m.board.View())
	}

	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) renderTabs() string {
	tabs := []string{"This Week", "Leaderboard"}
	rendered := make([]string, len(tabs))
	for i, name := range tabs {
		if SessionState(i) == m.state {
			rendered[i] = activeTabStyle.Render(name)
		} else {
			rendered[i] = inactiveTabStyle.Render(name)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) renderWeek() string {
	if len(m.bundle.Users) == 0 {
		return dimStyle.Render("No users yet. Add one with 'habitboard user add'.")
	}

	user := m.bundle.Users[m.userIdx]

	// Completions for this user, keyed by habit and day.
	done := make(map[string]bool)
	for _, e := range m.bundle.Entries {
		if e.UserID == user.ID && e.Completed {
			done[e.HabitID+"|"+e.Day] = true
		}
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(user.Name))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  (%d/%d)", m.userIdx+1, len(m.bundle.Users))))
	b.WriteString("\n\n")

	// Day-of-week header, today highlighted.
	b.WriteString(strings.Repeat(" ", 22))
	for _, day := range m.week {
		label := weekdayLabel(day)
		if day == m.today {
			b.WriteString(todayStyle.Render(label))
		} else {
			b.WriteString(dimStyle.Render(label))
		}
		b.WriteString("  ")
	}
	b.WriteString("\n")

	rows := 0
	for _, h := range m.bundle.Habits {
		if !h.IsActive {
			continue
		}
		rows++
		b.WriteString(fmt.Sprintf("%-22s", truncate(h.Title, 20)))
		for _, day := range m.week {
			if done[h.ID+"|"+day] {
				b.WriteString(doneStyle.Render("✓"))
			} else {
				b.WriteString(missedStyle.Render("·"))
			}
			b.WriteString("   ")
		}
		b.WriteString("\n")
	}

	if rows == 0 {
		b.WriteString(dimStyle.Render("No active habits.\n"))
	}
	return b.String()
}

func weekdayLabel(day string) string {
	t, err := dates.Parse(day)
	if err != nil {
		return "??"
	}
	return t.Format("Mon")[:2]
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
