package cli

import "fmt"

type InitCmd struct{}

func (c *InitCmd) Run(ctx *Context) error {
	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized ritual storage at: %s\n", ctx.Store.Path())
	fmt.Printf("Seeded %d default steps. Edit them with 'ritual step'.\n", len(ctx.Store.Steps()))
	return nil
}
