package cli

import (
	"fmt"

	"habitboard/internal/dates"
	"habitboard/internal/scoring"
)

type StatsCmd struct {
	User string `arg:"" help:"User name or id."`
}

func (c *StatsCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	user, err := resolveUser(ctx, c.User)
	if err != nil {
		return err
	}

	snap, err := ctx.Store.Snapshot()
	if err != nil {
		return err
	}

	stats := scoring.ComputeStats(snap.Entries, snap.Habits, user.ID, dates.Today())

	fmt.Printf("Stats for %s:\n", user.Name)
	fmt.Printf("  Total points:    %d\n", stats.TotalPoints)
	fmt.Printf("  Current streak:  %d day(s)\n", stats.Streak)
	fmt.Printf("  Longest streak:  %d day(s)\n", stats.LongestStreak)
	fmt.Printf("  Completions:     %d\n", stats.HabitsCompleted)
	if stats.HabitsCompleted > 0 {
		fmt.Printf("  Last active:     %s\n", stats.LastActive)
	} else {
		fmt.Printf("  Last active:     never\n")
	}

	return nil
}
