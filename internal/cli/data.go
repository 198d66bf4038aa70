package cli

import (
	"fmt"
	"os"

	"habitboard/internal/logger"
	"habitboard/internal/share"
)

type DataCmd struct {
	Export DataExportCmd `cmd:"" help:"Export all data to a JSON file."`
	Import DataImportCmd `cmd:"" help:"Replace all data from a JSON file."`
	Share  DataShareCmd  `cmd:"" help:"Print a share code for the current data."`
	Join   DataJoinCmd   `cmd:"" help:"Replace all data from a share code."`
}

type DataExportCmd struct {
	Output string `arg:"" help:"Output file path." type:"path"`
}

func (c *DataExportCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	snap, err := ctx.Store.Snapshot()
	if err != nil {
		return err
	}

	data, err := share.Export(snap)
	if err != nil {
		return err
	}

	if err := os.WriteFile(c.Output, data, 0600); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}

	fmt.Printf("Exported %d users, %d habits, %d entries to %s\n",
		len(snap.Users), len(snap.Habits), len(snap.Entries), c.Output)
	return nil
}

type DataImportCmd struct {
	File string `arg:"" help:"Bundle file to import." type:"existingfile"`
}

func (c *DataImportCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	data, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}

	bundle, err := share.Import(data)
	if err != nil {
		return err
	}

	// Whole-bundle replacement, not a merge.
	if err := ctx.Store.Replace(bundle); err != nil {
		return err
	}

	logger.Info("bundle imported", "users", len(bundle.Users), "habits", len(bundle.Habits), "entries", len(bundle.Entries))
	fmt.Printf("Imported %d users, %d habits, %d entries (previous data replaced)\n",
		len(bundle.Users), len(bundle.Habits), len(bundle.Entries))
	return nil
}

type DataShareCmd struct{}

func (c *DataShareCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	snap, err := ctx.Store.Snapshot()
	if err != nil {
		return err
	}

	code, err := share.EncodeCode(snap)
	if err != nil {
		return err
	}

	fmt.Println(code)
	return nil
}

type DataJoinCmd struct {
	Code string `arg:"" help:"Share code produced by 'data share'."`
}

func (c *DataJoinCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	bundle, err := share.DecodeCode(c.Code)
	if err != nil {
		return err
	}

	if err := ctx.Store.Replace(bundle); err != nil {
		return err
	}

	fmt.Printf("Replaced local data with shared bundle (%d users, %d habits, %d entries)\n",
		len(bundle.Users), len(bundle.Habits), len(bundle.Entries))
	return nil
}
