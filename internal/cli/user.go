package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"habitboard/internal/logger"
	"habitboard/internal/models"
)

type UserCmd struct {
	Add  UserAddCmd  `cmd:"" help:"Add a new user."`
	List UserListCmd `cmd:"" help:"List users."`
}

type UserAddCmd struct {
	Name  string `help:"Display name." default:""`
	Email string `help:"Contact email." default:""`
}

func (c *UserAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	name, email := c.Name, c.Email
	if name == "" {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Name").
					Value(&name).
					Validate(func(s string) error {
						if strings.TrimSpace(s) == "" {
							return fmt.Errorf("name cannot be empty")
						}
						return nil
					}),
				huh.NewInput().
					Title("Email").
					Value(&email),
			),
		)
		if err := form.Run(); err != nil {
			return err
		}
	}

	if _, err := ctx.Store.GetUserByName(name); err == nil {
		return fmt.Errorf("user with name %q already exists", name)
	}

	user := models.User{
		ID:       uuid.New().String(),
		Name:     name,
		Email:    email,
		JoinedAt: time.Now(),
	}

	if err := ctx.Store.AddUser(user); err != nil {
		return err
	}

	logger.Info("user added", "id", user.ID, "name", user.Name)
	fmt.Printf("Added user: %s\n", user.Name)
	return nil
}

type UserListCmd struct{}

func (c *UserListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	users, err := ctx.Store.GetAllUsers()
	if err != nil {
		return err
	}

	if len(users) == 0 {
		fmt.Println("No users found.")
		return nil
	}

	for _, user := range users {
		line := user.Name
		if user.Email != "" {
			line += fmt.Sprintf(" <%s>", user.Email)
		}
		fmt.Printf("%s (joined %s)\n", line, user.JoinedAt.Format("2006-01-02"))
	}

	return nil
}
