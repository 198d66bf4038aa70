package main

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"habitboard/internal/cli"
	"habitboard/internal/constants"
	"habitboard/internal/errors"
	"habitboard/internal/logger"
	"habitboard/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"path" default:"~/.config/habitboard/habitboard.db"`
	Debug   bool   `help:"Enable debug logging."`

	Init        cli.InitCmd        `cmd:"" help:"Initialize habitboard storage."`
	Tui         cli.TuiCmd         `cmd:"" help:"Launch the interactive dashboard." default:"1"`
	User        cli.UserCmd        `cmd:"" help:"Manage users."`
	Habit       cli.HabitCmd       `cmd:"" help:"Manage habits."`
	Mark        cli.MarkCmd        `cmd:"" help:"Toggle a habit's completion for a day."`
	Today       cli.TodayCmd       `cmd:"" help:"Show a user's habits for today."`
	Stats       cli.StatsCmd       `cmd:"" help:"Show a user's stats."`
	Leaderboard cli.LeaderboardCmd `cmd:"" help:"Show the leaderboard."`
	Data        cli.DataCmd        `cmd:"" help:"Export, import, and share data."`
	Group       cli.GroupCmd       `cmd:"" help:"Sync data through shared groups."`
	Doctor      cli.DoctorCmd      `cmd:"" help:"Run diagnostics."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Shared habit tracker with streaks and a leaderboard"),
		kong.UsageOnError(),
		kong.Vars{"version": constants.Version},
	)

	configDir := filepath.Dir(CLI.Config)
	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: configDir}); err != nil {
		errors.Fatal(err)
	}

	// Determine storage type based on extension
	var store storage.Provider
	if strings.HasSuffix(CLI.Config, ".json") {
		store = storage.NewJSONStore(CLI.Config)
	} else {
		store = storage.NewSQLiteStore(CLI.Config)
	}
	defer store.Close()

	appCtx := &cli.Context{
		Store:      store,
		GroupsPath: filepath.Join(configDir, constants.GroupsFileName),
		Debug:      CLI.Debug,
	}

	errors.Fatal(ctx.Run(appCtx))
}
