package cli

import (
	"fmt"

	"ritual/internal/validation"
)

type ReflectAddCmd struct {
	Text string `arg:"" help:"Reflection text (at most 160 characters)."`
	Day  string `short:"d" help:"Owning day (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *ReflectAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	day, err := resolveDay(ctx, c.Day)
	if err != nil {
		return err
	}

	if result := validation.New().ValidateReflection(c.Text); result.HasConflicts() {
		return policyError(result)
	}

	entry, err := ctx.Store.AddReflection(c.Text, day)
	if err != nil {
		return err
	}
	if entry.ID == "" {
		fmt.Println("Nothing to add: reflection was empty.")
		return nil
	}

	fmt.Printf("Added reflection for %s (ID: %s)\n", day, entry.ID)
	return nil
}

type ReflectListCmd struct {
	Limit int `short:"n" help:"Show at most N entries." default:"10"`
}

func (c *ReflectListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	entries := ctx.Store.Reflections()
	if len(entries) == 0 {
		fmt.Println("No reflections yet. Add one with 'ritual reflect add'.")
		return nil
	}

	shown := entries
	if c.Limit > 0 && len(shown) > c.Limit {
		shown = shown[:c.Limit]
	}

	for _, entry := range shown {
		fmt.Printf("  %s  %s\n      %s  (ID: %s)\n",
			entry.Day, entry.CreatedAt.Format("15:04"), entry.Text, entry.ID)
	}
	if len(entries) > len(shown) {
		fmt.Printf("  … %d more\n", len(entries)-len(shown))
	}
	return nil
}

type ReflectDeleteCmd struct {
	ID string `arg:"" help:"Reflection id to delete."`
}

func (c *ReflectDeleteCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	if err := ctx.Store.DeleteReflection(c.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted reflection %s (if it existed)\n", c.ID)
	return nil
}
