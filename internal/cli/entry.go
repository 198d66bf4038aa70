package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"habitboard/internal/dates"
	"habitboard/internal/logger"
	"habitboard/internal/models"
)

type MarkCmd struct {
	Habit string `arg:"" help:"Habit title or id."`
	User  string `arg:"" help:"User name or id."`
	Date  string `help:"Day in YYYY-MM-DD format (default: today)." default:""`
	Note  string `help:"Optional note for this entry." default:""`
}

func (c *MarkCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := resolveHabit(ctx, c.Habit)
	if err != nil {
		return err
	}
	user, err := resolveUser(ctx, c.User)
	if err != nil {
		return err
	}
	day, err := resolveDay(c.Date)
	if err != nil {
		return err
	}

	// Toggle semantics: an existing entry has its flag flipped in place so
	// there is never more than one entry per (habit, user, day).
	existing, err := ctx.Store.GetEntry(habit.ID, user.ID, day)
	if err == nil {
		existing.Completed = !existing.Completed
		if existing.Completed {
			now := time.Now()
			existing.CompletedAt = &now
		} else {
			existing.CompletedAt = nil
		}
		if c.Note != "" {
			existing.Notes = c.Note
		}
		if err := ctx.Store.UpdateEntry(existing); err != nil {
			return err
		}

		verb := "Unmarked"
		if existing.Completed {
			verb = "Marked"
		}
		logger.Debug("entry toggled", "habit", habit.ID, "user", user.ID, "day", day, "completed", existing.Completed)
		fmt.Printf("%s %q for %s on %s\n", verb, habit.Title, user.Name, day)
		return nil
	}

	now := time.Now()
	entry := models.HabitEntry{
		ID:          uuid.New().String(),
		HabitID:     habit.ID,
		UserID:      user.ID,
		Day:         day,
		Completed:   true,
		Notes:       c.Note,
		CompletedAt: &now,
	}
	if err := ctx.Store.AddEntry(entry); err != nil {
		return err
	}

	logger.Debug("entry added", "habit", habit.ID, "user", user.ID, "day", day)
	fmt.Printf("Marked %q for %s on %s\n", habit.Title, user.Name, day)
	return nil
}

type TodayCmd struct {
	User string `arg:"" help:"User name or id."`
}

func (c *TodayCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	user, err := resolveUser(ctx, c.User)
	if err != nil {
		return err
	}
	habits, err := ctx.Store.GetAllHabits(false)
	if err != nil {
		return err
	}

	if len(habits) == 0 {
		fmt.Println("No active habits.")
		return nil
	}

	today := dates.Today()
	fmt.Printf("Today (%s) for %s:\n", today, user.Name)
	for _, habit := range habits {
		mark := "[ ]"
		entry, err := ctx.Store.GetEntry(habit.ID, user.ID, today)
		if err == nil && entry.Completed {
			mark = "[x]"
		}
		fmt.Printf("  %s %s (%d pts)\n", mark, habit.Title, habit.Points)
	}

	return nil
}
