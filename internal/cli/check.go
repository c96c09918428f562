package cli

import (
	"fmt"

	"ritual/internal/stats"
	"ritual/internal/validation"
)

type CheckCmd struct {
	Step   string `arg:"" help:"Step index or id to toggle."`
	Day    string `short:"d" help:"Day (YYYY-MM-DD or 'today')." default:"today"`
	Done   bool   `help:"Force completed instead of toggling." xor:"force"`
	Undone bool   `help:"Force not-completed instead of toggling." xor:"force"`
}

func (c *CheckCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	day, err := resolveDay(ctx, c.Day)
	if err != nil {
		return err
	}

	step, err := findStep(ctx, c.Step)
	if err != nil {
		return err
	}

	switch {
	case c.Done:
		err = ctx.Store.SetStepDone(day, step.ID, true)
	case c.Undone:
		err = ctx.Store.SetStepDone(day, step.ID, false)
	default:
		err = ctx.Store.ToggleStep(day, step.ID)
	}
	if err != nil {
		return err
	}

	rec, err := ctx.Store.Record(day)
	if err != nil {
		return err
	}

	state := "not completed"
	if rec.HasCompleted(step.ID) {
		state = "completed"
	}
	fmt.Printf("%s: %s is now %s\n", day, stepLabel(step), state)
	fmt.Printf("Progress: %.0f%%\n", ctx.Store.Progress(day)*100)
	if ctx.Store.RoutineComplete(day) {
		fmt.Println("Routine complete! 🎉")
	}
	return nil
}

type MoodCmd struct {
	Mood  *int   `arg:"" optional:"" help:"Mood index 0 (awful) to 4 (great)."`
	Day   string `short:"d" help:"Day (YYYY-MM-DD or 'today')." default:"today"`
	Clear bool   `help:"Clear the recorded mood."`
}

func (c *MoodCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	day, err := resolveDay(ctx, c.Day)
	if err != nil {
		return err
	}

	if c.Clear {
		if err := ctx.Store.SetMood(day, nil); err != nil {
			return err
		}
		fmt.Printf("%s: mood cleared\n", day)
		return nil
	}

	if c.Mood == nil {
		rec, err := ctx.Store.Record(day)
		if err != nil {
			return err
		}
		if rec.Mood == nil {
			fmt.Printf("%s: no mood recorded\n", day)
		} else {
			fmt.Printf("%s: mood %d (%s)\n", day, *rec.Mood, moodLabel(*rec.Mood))
		}
		return nil
	}

	if result := validation.New().ValidateMood(*c.Mood); result.HasConflicts() {
		return policyError(result)
	}

	if err := ctx.Store.SetMood(day, c.Mood); err != nil {
		return err
	}
	fmt.Printf("%s: mood set to %d (%s)\n", day, *c.Mood, moodLabel(*c.Mood))
	return nil
}

type DayCmd struct {
	Day string `arg:"" help:"Day to show (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *DayCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	day, err := resolveDay(ctx, c.Day)
	if err != nil {
		return err
	}

	rec, err := ctx.Store.Record(day)
	if err != nil {
		return err
	}

	fmt.Printf("Ritual for %s:\n\n", day)
	for _, step := range ctx.Store.Steps() {
		if !step.Active {
			continue
		}
		status := " "
		if rec.HasCompleted(step.ID) {
			status = "x"
		}
		fmt.Printf("  [%s] %s\n", status, stepLabel(step))
	}

	fmt.Printf("\nProgress: %.0f%%\n", ctx.Store.Progress(day)*100)
	if rec.Mood != nil {
		fmt.Printf("Mood: %d (%s)\n", *rec.Mood, moodLabel(*rec.Mood))
	}
	fmt.Printf("\n“%s”\n", stats.AdviceOfTheDay(day))
	return nil
}
