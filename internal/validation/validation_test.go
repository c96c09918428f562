package validation

import (
	"testing"

	"ritual/internal/models"
)

func hasConflict(result ValidationResult, t ConflictType) bool {
	for _, conflict := range result.Conflicts {
		if conflict.Type == t {
			return true
		}
	}
	return false
}

func TestValidateSteps_Bounds(t *testing.T) {
	validator := New()

	var tooMany []models.RoutineStep
	for i := 0; i < 6; i++ {
		tooMany = append(tooMany, models.RoutineStep{ID: "s", Title: "Step", Active: true})
	}
	result := validator.ValidateSteps(tooMany)
	if !hasConflict(result, ConflictTooManySteps) {
		t.Error("expected too-many-steps conflict")
	}

	noneActive := []models.RoutineStep{
		{ID: "1", Title: "Step A", Active: false},
		{ID: "2", Title: "Step B", Active: false},
	}
	result = validator.ValidateSteps(noneActive)
	if !hasConflict(result, ConflictTooFewActiveSteps) {
		t.Error("expected too-few-active-steps conflict")
	}

	ok := []models.RoutineStep{
		{ID: "1", Title: "Step A", Emoji: "💧", Active: true},
	}
	if validator.ValidateSteps(ok).HasConflicts() {
		t.Error("expected a valid step list to pass")
	}
}

func TestValidateSteps_EmptyTitle(t *testing.T) {
	validator := New()

	result := validator.ValidateSteps([]models.RoutineStep{
		{ID: "1", Title: "   ", Active: true},
	})
	if !hasConflict(result, ConflictEmptyTitle) {
		t.Error("expected empty-title conflict for whitespace title")
	}
}

func TestValidateSteps_EmojiGraphemes(t *testing.T) {
	validator := New()

	// A family emoji joined with ZWJs is a single grapheme cluster despite
	// being many runes; it must pass.
	joined := []models.RoutineStep{
		{ID: "1", Title: "Family time", Emoji: "👨‍👩‍👧‍👦", Active: true},
	}
	if validator.ValidateSteps(joined).HasConflicts() {
		t.Error("expected a single-cluster emoji to pass")
	}

	wide := []models.RoutineStep{
		{ID: "1", Title: "Step", Emoji: "🏃🏃🏃", Active: true},
	}
	if !hasConflict(validator.ValidateSteps(wide), ConflictEmojiTooWide) {
		t.Error("expected three-cluster emoji to be rejected")
	}
}

func TestValidateReflection_Length(t *testing.T) {
	validator := New()

	long := make([]rune, 161)
	for i := range long {
		long[i] = 'ä' // multi-byte runes count as single characters
	}
	result := validator.ValidateReflection(string(long))
	if !hasConflict(result, ConflictReflectionTooLong) {
		t.Error("expected 161-character reflection to be rejected")
	}

	if validator.ValidateReflection(string(long[:160])).HasConflicts() {
		t.Error("expected 160-character reflection to pass")
	}
}

func TestValidateMood(t *testing.T) {
	validator := New()

	for _, mood := range []int{0, 4} {
		if validator.ValidateMood(mood).HasConflicts() {
			t.Errorf("expected mood %d to pass", mood)
		}
	}
	for _, mood := range []int{-1, 5} {
		if !hasConflict(validator.ValidateMood(mood), ConflictMoodOutOfRange) {
			t.Errorf("expected mood %d to be rejected", mood)
		}
	}
}

func TestValidateSettings_Reminder(t *testing.T) {
	validator := New()

	ok := models.Settings{Reminder: &models.ReminderTime{Hour: 23, Minute: 59}}
	if validator.ValidateSettings(ok).HasConflicts() {
		t.Error("expected 23:59 reminder to pass")
	}

	none := models.Settings{}
	if validator.ValidateSettings(none).HasConflicts() {
		t.Error("expected nil reminder to pass")
	}

	bad := models.Settings{Reminder: &models.ReminderTime{Hour: 24, Minute: 60}}
	result := validator.ValidateSettings(bad)
	if len(result.Conflicts) != 2 {
		t.Errorf("expected both hour and minute conflicts, got %d", len(result.Conflicts))
	}
}
