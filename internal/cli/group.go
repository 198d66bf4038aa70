package cli

import (
	"fmt"

	"habitboard/internal/keyring"
	"habitboard/internal/logger"
	"habitboard/internal/validation"
)

type GroupCmd struct {
	Create  GroupCreateCmd  `cmd:"" help:"Create a group from the local data and print its code."`
	Join    GroupJoinCmd    `cmd:"" help:"Replace local data with a group's bundle."`
	Push    GroupPushCmd    `cmd:"" help:"Replace a group's bundle with the local data."`
	Pull    GroupPullCmd    `cmd:"" help:"Replace local data with a group's latest bundle."`
	List    GroupListCmd    `cmd:"" help:"List known groups."`
	Connect GroupConnectCmd `cmd:"" help:"Configure a shared sync database."`
}

type GroupCreateCmd struct {
	Name string `arg:"" help:"Group name."`
}

func (c *GroupCreateCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	snap, err := ctx.Store.Snapshot()
	if err != nil {
		return err
	}

	groups, err := openGroupStore(ctx)
	if err != nil {
		return err
	}
	defer groups.Close()

	group, err := groups.Create(c.Name, snap)
	if err != nil {
		return err
	}

	logger.Info("group created", "name", group.Name, "code", group.Code)
	fmt.Printf("Created group %q. Share this code to let others join:\n%s\n", group.Name, group.Code)
	return nil
}

type GroupJoinCmd struct {
	Code string `arg:"" help:"Group code."`
}

func (c *GroupJoinCmd) Run(ctx *Context) error {
	return pullGroup(ctx, c.Code)
}

type GroupPullCmd struct {
	Code string `arg:"" help:"Group code."`
}

func (c *GroupPullCmd) Run(ctx *Context) error {
	return pullGroup(ctx, c.Code)
}

// pullGroup replaces the local snapshot with the group's bundle. Join and pull
// are the same operation; join is just the first pull.
func pullGroup(ctx *Context, code string) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	groups, err := openGroupStore(ctx)
	if err != nil {
		return err
	}
	defer groups.Close()

	group, err := groups.Get(code)
	if err != nil {
		return err
	}

	vr := validation.ValidateBundle(group.Data)
	if vr.HasErrors() {
		return fmt.Errorf("group bundle is invalid:\n%s", vr.FormatReport())
	}

	if err := ctx.Store.Replace(group.Data); err != nil {
		return err
	}

	logger.Info("group pulled", "code", code, "lastUpdated", group.LastUpdated)
	fmt.Printf("Replaced local data with group %q (updated %s)\n",
		group.Name, group.LastUpdated.Format("2006-01-02 15:04"))
	return nil
}

type GroupPushCmd struct {
	Code string `arg:"" help:"Group code."`
}

func (c *GroupPushCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	snap, err := ctx.Store.Snapshot()
	if err != nil {
		return err
	}

	groups, err := openGroupStore(ctx)
	if err != nil {
		return err
	}
	defer groups.Close()

	if err := groups.Update(c.Code, snap); err != nil {
		return err
	}

	logger.Info("group pushed", "code", c.Code)
	fmt.Printf("Pushed local data to group %s (last write wins)\n", c.Code)
	return nil
}

type GroupListCmd struct{}

func (c *GroupListCmd) Run(ctx *Context) error {
	groups, err := openGroupStore(ctx)
	if err != nil {
		return err
	}
	defer groups.Close()

	list, err := groups.List()
	if err != nil {
		return err
	}

	if len(list) == 0 {
		fmt.Println("No groups found.")
		return nil
	}

	for _, g := range list {
		fmt.Printf("%s  %s (%d users, updated %s)\n",
			g.Code, g.Name, len(g.Data.Users), g.LastUpdated.Format("2006-01-02 15:04"))
	}
	return nil
}

type GroupConnectCmd struct {
	ConnString string `arg:"" optional:"" help:"Postgres connection string for the shared sync database."`
	Clear      bool   `help:"Forget the stored connection and sync locally again."`
}

func (c *GroupConnectCmd) Run(ctx *Context) error {
	if c.Clear {
		if err := keyring.DeleteSyncConnection(); err != nil {
			return err
		}
		fmt.Println("Removed sync database connection; groups are stored locally again.")
		return nil
	}

	if c.ConnString == "" {
		return fmt.Errorf("provide a connection string or --clear")
	}

	if err := keyring.SetSyncConnection(c.ConnString); err != nil {
		return err
	}

	fmt.Println("Stored sync database connection in the OS keyring.")
	return nil
}
