package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"habitboard/internal/constants"
	"habitboard/internal/dates"
	"habitboard/internal/models"
	"habitboard/internal/scoring"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	goldStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type LeaderboardCmd struct {
	By  string `help:"Ordering: primary points board, or an auxiliary view." enum:"points,longest,completed" default:"points"`
	Top int    `help:"Show only the top N users (0 = all)." default:"0"`
}

func (c *LeaderboardCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	snap, err := ctx.Store.Snapshot()
	if err != nil {
		return err
	}

	if len(snap.Users) == 0 {
		fmt.Println("No users found.")
		return nil
	}

	today := dates.Today()
	stats := scoring.ComputeAllStats(snap, today)
	board := scoring.BuildLeaderboard(snap.Users, stats, today)

	switch c.By {
	case constants.LeaderboardByLongest:
		board = scoring.TopByLongestStreak(board, c.Top)
		fmt.Println(headerStyle.Render("Longest streaks"))
	case constants.LeaderboardByCompleted:
		board = scoring.TopByCompletions(board, c.Top)
		fmt.Println(headerStyle.Render("Most completions"))
	default:
		if c.Top > 0 && c.Top < len(board) {
			board = board[:c.Top]
		}
		fmt.Println(headerStyle.Render("Leaderboard"))
	}

	fmt.Println(renderBoard(board))
	return nil
}

func renderBoard(board []models.LeaderboardEntry) string {
	var b strings.Builder

	b.WriteString(dimStyle.Render(fmt.Sprintf("%-5s %-20s %8s %8s %8s %6s", "RANK", "USER", "POINTS", "STREAK", "LONGEST", "DONE")))
	b.WriteString("\n")

	for _, e := range board {
		line := fmt.Sprintf("%-5s %-20s %8d %8d %8d %6d",
			fmt.Sprintf("#%d", e.Rank), e.User.Name,
			e.Stats.TotalPoints, e.Stats.Streak, e.Stats.LongestStreak, e.Stats.HabitsCompleted)
		if e.Rank == 1 {
			line = goldStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}
