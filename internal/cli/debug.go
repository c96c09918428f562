package cli

import (
	"encoding/json"
	"fmt"
)

type DebugCmd struct {
	Path      *DebugPathCmd      `cmd:"" help:"Show store path."`
	DumpDay   *DebugDumpDayCmd   `cmd:"" help:"Dump a day record as JSON."`
	DumpSteps *DebugDumpStepsCmd `cmd:"" help:"Dump the step list as JSON."`
	DumpState *DebugDumpStateCmd `cmd:"" help:"Dump the full store state as JSON."`
}

type DebugPathCmd struct{}

func (cmd *DebugPathCmd) Run(ctx *Context) error {
	// Output in machine-readable format
	output := map[string]string{
		"path": ctx.Store.Path(),
	}

	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}

	fmt.Println(string(jsonBytes))
	return nil
}

type DebugDumpDayCmd struct {
	Day string `arg:"" optional:"" default:"today" help:"Day to dump (YYYY-MM-DD or 'today')."`
}

func (cmd *DebugDumpDayCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load store: %w", err)
	}

	day, err := resolveDay(ctx, cmd.Day)
	if err != nil {
		return err
	}

	record, err := ctx.Store.Record(day)
	if err != nil {
		return fmt.Errorf("failed to read record: %w", err)
	}

	jsonBytes, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	fmt.Println(string(jsonBytes))
	return nil
}

type DebugDumpStepsCmd struct{}

func (cmd *DebugDumpStepsCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load store: %w", err)
	}

	jsonBytes, err := json.MarshalIndent(ctx.Store.Steps(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal steps: %w", err)
	}

	fmt.Println(string(jsonBytes))
	return nil
}

type DebugDumpStateCmd struct{}

func (cmd *DebugDumpStateCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load store: %w", err)
	}

	data, err := ctx.Store.ExportBackup()
	if err != nil {
		return fmt.Errorf("failed to dump state: %w", err)
	}

	fmt.Println(string(data))
	return nil
}
