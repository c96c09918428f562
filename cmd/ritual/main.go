package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"ritual/internal/cli"
	"ritual/internal/storage"
	"ritual/internal/store"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Store file path." type:"path" default:"~/.config/ritual/ritual.db"`

	Init    cli.InitCmd  `cmd:"" help:"Initialize ritual storage."`
	Tui     cli.TuiCmd   `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Day     cli.DayCmd   `cmd:"" help:"Show a day's routine checklist."`
	Check   cli.CheckCmd `cmd:"" help:"Toggle or set a step's completion."`
	Mood    cli.MoodCmd  `cmd:"" help:"Show or set a day's mood."`
	Stats   cli.StatsCmd `cmd:"" help:"Show the weekly streak and completion bars."`
	Step    struct {
		Add     cli.StepAddCmd     `cmd:"" help:"Add a new routine step."`
		List    cli.StepListCmd    `cmd:"" help:"List routine steps."`
		Edit    cli.StepEditCmd    `cmd:"" help:"Edit an existing step."`
		Delete  cli.StepDeleteCmd  `cmd:"" help:"Delete a step and its history."`
		Reorder cli.StepReorderCmd `cmd:"" help:"Move steps to a new position."`
	} `cmd:"" help:"Manage routine steps."`
	Reflect struct {
		Add    cli.ReflectAddCmd    `cmd:"" help:"Add a reflection."`
		List   cli.ReflectListCmd   `cmd:"" help:"List reflections."`
		Delete cli.ReflectDeleteCmd `cmd:"" help:"Delete a reflection."`
	} `cmd:"" help:"Manage reflections."`
	Settings struct {
		Show cli.SettingsShowCmd `cmd:"" help:"Show current settings."`
		Set  cli.SettingsSetCmd  `cmd:"" help:"Change settings."`
	} `cmd:"" help:"Manage settings."`
	Backup struct {
		Export  cli.BackupExportCmd  `cmd:"" help:"Export all data to a backup file."`
		Import  cli.BackupImportCmd  `cmd:"" help:"Import data from a backup file."`
		List    cli.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore data from a backup."`
	} `cmd:"" help:"Manage backups."`
	Reset struct {
		Day  cli.ResetDayCmd  `cmd:"" help:"Clear a day's completions and mood."`
		Week cli.ResetWeekCmd `cmd:"" help:"Clear the current seven-day window."`
		All  cli.ResetAllCmd  `cmd:"" help:"Wipe everything and reseed defaults."`
	} `cmd:"" help:"Reset stored data."`
	Doctor cli.DoctorCmd `cmd:"" help:"Run health checks on the store."`
	Debug  cli.DebugCmd  `cmd:"" help:"Debugging helpers."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("ritual"),
		kong.Description("Tiny daily routine and mood tracker"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	// Determine storage type based on extension
	var provider storage.Provider
	if strings.HasSuffix(CLI.Config, ".json") {
		provider = storage.NewJSONStore(CLI.Config)
	} else {
		provider = storage.NewSQLiteStore(CLI.Config)
	}

	appCtx := &cli.Context{
		Store: store.New(provider),
	}

	err := ctx.Run(appCtx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
