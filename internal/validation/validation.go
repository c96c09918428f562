// Package validation holds the policy checks the store deliberately does
// not enforce: step-count bounds, emoji width, reflection length, and
// settings ranges. Callers validate before mutating the store.
package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"ritual/internal/constants"
	"ritual/internal/models"
)

type ConflictType string

const (
	ConflictTooFewActiveSteps  ConflictType = "too_few_active_steps"
	ConflictTooManySteps       ConflictType = "too_many_steps"
	ConflictEmptyTitle         ConflictType = "empty_title"
	ConflictEmojiTooWide       ConflictType = "emoji_too_wide"
	ConflictReflectionTooLong  ConflictType = "reflection_too_long"
	ConflictMoodOutOfRange     ConflictType = "mood_out_of_range"
	ConflictReminderOutOfRange ConflictType = "reminder_out_of_range"
)

type Conflict struct {
	Type    ConflictType
	Message string
}

type ValidationResult struct {
	Conflicts []Conflict
}

func (r ValidationResult) HasConflicts() bool {
	return len(r.Conflicts) > 0
}

func (r *ValidationResult) add(t ConflictType, format string, args ...any) {
	r.Conflicts = append(r.Conflicts, Conflict{
		Type:    t,
		Message: fmt.Sprintf(format, args...),
	})
}

type Validator struct{}

func New() *Validator {
	return &Validator{}
}

// ValidateSteps checks a prospective step list against the routine-size
// policy and per-step field rules.
func (v *Validator) ValidateSteps(steps []models.RoutineStep) ValidationResult {
	var result ValidationResult

	if len(steps) > constants.MaxSteps {
		result.add(ConflictTooManySteps, "at most %d steps allowed, got %d", constants.MaxSteps, len(steps))
	}

	active := 0
	for _, step := range steps {
		if step.Active {
			active++
		}
		if strings.TrimSpace(step.Title) == "" {
			result.add(ConflictEmptyTitle, "step %s has an empty title", step.ID)
		}
		if step.Emoji != "" {
			if n := uniseg.GraphemeClusterCount(step.Emoji); n > constants.MaxEmojiGraphemes {
				result.add(ConflictEmojiTooWide, "step %s emoji spans %d graphemes, at most %d allowed",
					step.ID, n, constants.MaxEmojiGraphemes)
			}
		}
	}

	if active < constants.MinActiveSteps {
		result.add(ConflictTooFewActiveSteps, "at least %d active step(s) required, got %d",
			constants.MinActiveSteps, active)
	}

	return result
}

// ValidateReflection checks reflection text against the length cap.
func (v *Validator) ValidateReflection(text string) ValidationResult {
	var result ValidationResult

	if n := utf8.RuneCountInString(strings.TrimSpace(text)); n > constants.MaxReflectionChars {
		result.add(ConflictReflectionTooLong, "reflection is %d characters, at most %d allowed",
			n, constants.MaxReflectionChars)
	}

	return result
}

// ValidateMood checks a mood index against the [MoodMin, MoodMax] range.
func (v *Validator) ValidateMood(mood int) ValidationResult {
	var result ValidationResult

	if mood < constants.MoodMin || mood > constants.MoodMax {
		result.add(ConflictMoodOutOfRange, "mood %d outside [%d, %d]",
			mood, constants.MoodMin, constants.MoodMax)
	}

	return result
}

// ValidateSettings checks the reminder time-of-day ranges.
func (v *Validator) ValidateSettings(settings models.Settings) ValidationResult {
	var result ValidationResult

	if r := settings.Reminder; r != nil {
		if r.Hour < 0 || r.Hour > 23 {
			result.add(ConflictReminderOutOfRange, "reminder hour %d outside [0, 23]", r.Hour)
		}
		if r.Minute < 0 || r.Minute > 59 {
			result.add(ConflictReminderOutOfRange, "reminder minute %d outside [0, 59]", r.Minute)
		}
	}

	return result
}
