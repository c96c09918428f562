package cli

import (
	"fmt"

	"ritual/internal/models"
	"ritual/internal/validation"
)

type SettingsShowCmd struct{}

func (c *SettingsShowCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	settings := ctx.Store.Settings()
	fmt.Printf("Haptics: %v\n", settings.Haptics)
	fmt.Printf("Sound:   %v\n", settings.Sound)
	fmt.Printf("Theme:   %s\n", settings.Theme)
	if settings.Reminder == nil {
		fmt.Println("Daily reminder: off")
	} else {
		fmt.Printf("Daily reminder: %02d:%02d\n", settings.Reminder.Hour, settings.Reminder.Minute)
	}
	return nil
}

type SettingsSetCmd struct {
	Haptics       *bool  `help:"Enable or disable haptics."`
	Sound         *bool  `help:"Enable or disable sound."`
	Theme         string `help:"Theme name."`
	Reminder      string `help:"Daily reminder time (HH:MM)."`
	ClearReminder bool   `help:"Turn the daily reminder off."`
}

func (c *SettingsSetCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	var reminder *models.ReminderTime
	if c.Reminder != "" {
		var hour, minute int
		if _, err := fmt.Sscanf(c.Reminder, "%d:%d", &hour, &minute); err != nil {
			return fmt.Errorf("invalid reminder time %q, use HH:MM: %w", c.Reminder, err)
		}
		reminder = &models.ReminderTime{Hour: hour, Minute: minute}
	}

	mutate := func(cur models.Settings) models.Settings {
		if c.Haptics != nil {
			cur.Haptics = *c.Haptics
		}
		if c.Sound != nil {
			cur.Sound = *c.Sound
		}
		if c.Theme != "" {
			cur.Theme = c.Theme
		}
		if c.ClearReminder {
			cur.Reminder = nil
		} else if reminder != nil {
			cur.Reminder = reminder
		}
		return cur
	}

	if result := validation.New().ValidateSettings(mutate(ctx.Store.Settings())); result.HasConflicts() {
		return policyError(result)
	}

	if err := ctx.Store.UpdateSettings(mutate); err != nil {
		return err
	}

	show := &SettingsShowCmd{}
	return show.Run(ctx)
}
