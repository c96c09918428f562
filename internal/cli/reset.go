package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

type ResetDayCmd struct {
	Day string `arg:"" help:"Day to clear (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *ResetDayCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	day, err := resolveDay(ctx, c.Day)
	if err != nil {
		return err
	}

	if err := ctx.Store.ClearDay(day); err != nil {
		return err
	}
	fmt.Printf("Cleared %s\n", day)
	return nil
}

type ResetWeekCmd struct {
	Day string `arg:"" help:"Window end day (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *ResetWeekCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	endDay, err := resolveDay(ctx, c.Day)
	if err != nil {
		return err
	}

	if err := ctx.Store.ResetWeek(endDay); err != nil {
		return err
	}
	fmt.Printf("Cleared the 7 days ending %s\n", endDay)
	return nil
}

type ResetAllCmd struct {
	Yes bool `short:"y" help:"Skip the confirmation prompt."`
}

func (c *ResetAllCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	if !c.Yes {
		fmt.Println("⚠️  WARNING: This clears all steps, history, reflections, and settings.")
		fmt.Print("Continue? [y/N]: ")

		reader := bufio.NewReader(os.Stdin)
		response, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			fmt.Println("Reset cancelled.")
			return nil
		}
	}

	if err := ctx.Store.ResetAll(); err != nil {
		return err
	}
	fmt.Printf("Reset everything; reseeded %d default steps.\n", len(ctx.Store.Steps()))
	return nil
}
