package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"habitboard/internal/logger"
	"habitboard/internal/models"
)

type HabitCmd struct {
	Add        HabitAddCmd        `cmd:"" help:"Add a new habit."`
	List       HabitListCmd       `cmd:"" help:"List habits."`
	Edit       HabitEditCmd       `cmd:"" help:"Edit an existing habit."`
	Deactivate HabitDeactivateCmd `cmd:"" help:"Deactivate a habit (kept for history)."`
	Restore    HabitRestoreCmd    `cmd:"" help:"Reactivate a habit."`
}

type HabitAddCmd struct {
	Title       string `arg:"" help:"Habit title."`
	Owner       string `arg:"" help:"User who owns the habit (name or id)."`
	Description string `help:"Free-text description." default:""`
	Category    string `help:"Category label." default:"general"`
	Frequency   string `help:"Target frequency." enum:"daily,weekly" default:"daily"`
	Points      int    `help:"Points awarded per completion." default:"10"`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	owner, err := resolveUser(ctx, c.Owner)
	if err != nil {
		return err
	}

	if _, err := ctx.Store.GetHabitByTitle(c.Title); err == nil {
		return fmt.Errorf("habit with title %q already exists", c.Title)
	}
	if c.Points < 0 {
		return fmt.Errorf("points must not be negative")
	}

	habit := models.Habit{
		ID:              uuid.New().String(),
		Title:           c.Title,
		Description:     c.Description,
		Category:        c.Category,
		TargetFrequency: models.Frequency(c.Frequency),
		Points:          c.Points,
		CreatedBy:       owner.ID,
		CreatedAt:       time.Now(),
		IsActive:        true,
	}

	if err := ctx.Store.AddHabit(habit); err != nil {
		return err
	}

	logger.Info("habit added", "id", habit.ID, "title", habit.Title, "points", habit.Points)
	fmt.Printf("Added habit: %s (%d points, %s)\n", habit.Title, habit.Points, habit.TargetFrequency)
	return nil
}

type HabitListCmd struct {
	All bool `help:"Include deactivated habits."`
}

func (c *HabitListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habits, err := ctx.Store.GetAllHabits(c.All)
	if err != nil {
		return err
	}

	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	for _, habit := range habits {
		status := ""
		if !habit.IsActive {
			status = " [INACTIVE]"
		}
		fmt.Printf("%s (%s, %d pts, %s)%s\n", habit.Title, habit.Category, habit.Points, habit.TargetFrequency, status)
	}

	return nil
}

type HabitEditCmd struct {
	Habit     string `arg:"" help:"Habit title or id."`
	Title     string `help:"New title." default:""`
	Points    int    `help:"New point value (-1 keeps the current value)." default:"-1"`
	Frequency string `help:"New target frequency." enum:"daily,weekly,keep" default:"keep"`
	Category  string `help:"New category." default:""`
}

func (c *HabitEditCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := resolveHabit(ctx, c.Habit)
	if err != nil {
		return err
	}

	if c.Title != "" {
		habit.Title = c.Title
	}
	if c.Points >= 0 && c.Points != habit.Points {
		// Entries carry no point snapshot, so this recomputes history too.
		fmt.Printf("Note: changing points from %d to %d also changes past totals for this habit.\n", habit.Points, c.Points)
		habit.Points = c.Points
	}
	if c.Frequency != "keep" {
		habit.TargetFrequency = models.Frequency(c.Frequency)
	}
	if c.Category != "" {
		habit.Category = c.Category
	}

	if err := ctx.Store.UpdateHabit(habit); err != nil {
		return err
	}

	fmt.Printf("Updated habit: %s\n", habit.Title)
	return nil
}

type HabitDeactivateCmd struct {
	Habit string `arg:"" help:"Habit title or id."`
}

func (c *HabitDeactivateCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := resolveHabit(ctx, c.Habit)
	if err != nil {
		return err
	}

	if err := ctx.Store.DeactivateHabit(habit.ID); err != nil {
		return err
	}

	fmt.Printf("Deactivated habit: %s (entries and points are kept)\n", habit.Title)
	return nil
}

type HabitRestoreCmd struct {
	Habit string `arg:"" help:"Habit title or id."`
}

func (c *HabitRestoreCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := resolveHabit(ctx, c.Habit)
	if err != nil {
		return err
	}

	if err := ctx.Store.RestoreHabit(habit.ID); err != nil {
		return err
	}

	fmt.Printf("Restored habit: %s\n", habit.Title)
	return nil
}
