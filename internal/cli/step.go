package cli

import (
	"fmt"
	"strings"

	"ritual/internal/models"
	"ritual/internal/validation"
)

type StepAddCmd struct {
	Title string `arg:"" help:"Step title."`
	Emoji string `short:"e" help:"Icon glyph (at most 2 graphemes)."`
}

func (c *StepAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	// Validate the prospective list before mutating; the store itself does
	// not enforce routine-size policy.
	candidate := ctx.Store.Steps()
	candidate = append(candidate, previewStep(c.Title, c.Emoji))
	if result := validation.New().ValidateSteps(candidate); result.HasConflicts() {
		return policyError(result)
	}

	step, err := ctx.Store.AddStep(c.Title, c.Emoji)
	if err != nil {
		return err
	}

	fmt.Printf("Added step: %s (ID: %s)\n", stepLabel(step), step.ID)
	return nil
}

type StepListCmd struct{}

func (c *StepListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	steps := ctx.Store.Steps()
	if len(steps) == 0 {
		fmt.Println("No steps defined. Add one with 'ritual step add'.")
		return nil
	}

	today := ctx.Store.TodayKey()
	rec, err := ctx.Store.Record(today)
	if err != nil {
		return err
	}

	for i, step := range steps {
		status := " "
		if rec.HasCompleted(step.ID) {
			status = "x"
		}
		activeNote := ""
		if !step.Active {
			activeNote = "  (inactive)"
		}
		fmt.Printf("  %d. [%s] %s%s\n", i, status, stepLabel(step), activeNote)
	}
	return nil
}

type StepEditCmd struct {
	Step   string  `arg:"" help:"Step index or id."`
	Title  *string `help:"New title."`
	Emoji  *string `help:"New icon glyph."`
	Active *bool   `help:"Set active flag."`
}

func (c *StepEditCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	step, err := findStep(ctx, c.Step)
	if err != nil {
		return err
	}

	if c.Title != nil {
		step.Title = *c.Title
	}
	if c.Emoji != nil {
		step.Emoji = *c.Emoji
	}
	if c.Active != nil {
		step.Active = *c.Active
	}

	candidate := ctx.Store.Steps()
	for i := range candidate {
		if candidate[i].ID == step.ID {
			candidate[i] = step
		}
	}
	if result := validation.New().ValidateSteps(candidate); result.HasConflicts() {
		return policyError(result)
	}

	if err := ctx.Store.UpdateStep(step); err != nil {
		return err
	}

	fmt.Printf("Updated step: %s\n", stepLabel(step))
	return nil
}

type StepDeleteCmd struct {
	Step string `arg:"" help:"Step index or id."`
}

func (c *StepDeleteCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	step, err := findStep(ctx, c.Step)
	if err != nil {
		return err
	}

	candidate := ctx.Store.Steps()
	kept := candidate[:0]
	for _, s := range candidate {
		if s.ID != step.ID {
			kept = append(kept, s)
		}
	}
	if result := validation.New().ValidateSteps(kept); result.HasConflicts() {
		return policyError(result)
	}

	if err := ctx.Store.RemoveStep(step.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted step: %s (completions scrubbed from history)\n", stepLabel(step))
	return nil
}

type StepReorderCmd struct {
	Indices string `arg:"" help:"Comma-separated indices to move, e.g. 0,2."`
	Dest    int    `arg:"" help:"Destination index."`
}

func (c *StepReorderCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	indices, err := parseIndices(c.Indices)
	if err != nil {
		return err
	}

	if err := ctx.Store.ReorderSteps(indices, c.Dest); err != nil {
		return err
	}

	fmt.Println("Reordered steps:")
	list := &StepListCmd{}
	return list.Run(ctx)
}

func previewStep(title, emoji string) models.RoutineStep {
	return models.RoutineStep{ID: "pending", Title: title, Emoji: emoji, Active: true}
}

func policyError(result validation.ValidationResult) error {
	messages := make([]string, 0, len(result.Conflicts))
	for _, conflict := range result.Conflicts {
		messages = append(messages, conflict.Message)
	}
	return fmt.Errorf("refusing change: %s", strings.Join(messages, "; "))
}
