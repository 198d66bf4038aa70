package cli

import (
	"fmt"

	"habitboard/internal/logger"
)

type InitCmd struct{}

func (c *InitCmd) Run(ctx *Context) error {
	if err := ctx.Store.Init(); err != nil {
		return err
	}

	logger.Info("storage initialized", "path", ctx.Store.GetConfigPath())
	fmt.Printf("Initialized habitboard storage at %s\n", ctx.Store.GetConfigPath())
	fmt.Println("Add yourself with 'habitboard user add', then add habits and start marking.")
	return nil
}
