package cli

import (
	"fmt"

	"habitboard/internal/dates"
	"habitboard/internal/keyring"
	"habitboard/internal/models"
	"habitboard/internal/storage"
	syncstore "habitboard/internal/sync"
)

type Context struct {
	Store      storage.Provider
	GroupsPath string
	Debug      bool
}

// resolveUser accepts either a user id or a display name.
func resolveUser(ctx *Context, ref string) (models.User, error) {
	if user, err := ctx.Store.GetUser(ref); err == nil {
		return user, nil
	}
	user, err := ctx.Store.GetUserByName(ref)
	if err != nil {
		return models.User{}, fmt.Errorf("user %q not found", ref)
	}
	return user, nil
}

// resolveHabit accepts either a habit id or a title.
func resolveHabit(ctx *Context, ref string) (models.Habit, error) {
	if habit, err := ctx.Store.GetHabit(ref); err == nil {
		return habit, nil
	}
	habit, err := ctx.Store.GetHabitByTitle(ref)
	if err != nil {
		return models.Habit{}, fmt.Errorf("habit %q not found", ref)
	}
	return habit, nil
}

// resolveDay validates an optional --date flag, defaulting to today.
func resolveDay(day string) (string, error) {
	if day == "" {
		return dates.Today(), nil
	}
	if _, err := dates.Parse(day); err != nil {
		return "", err
	}
	return day, nil
}

// openGroupStore picks the sync backend: the shared postgres database when a
// connection string is in the keyring, the local groups file otherwise.
func openGroupStore(ctx *Context) (syncstore.Store, error) {
	connStr, err := keyring.GetSyncConnection()
	if err == nil {
		return syncstore.NewPostgresStore(connStr)
	}
	if err != keyring.ErrNotFound {
		return nil, err
	}
	return syncstore.NewLocalStore(ctx.GroupsPath), nil
}
