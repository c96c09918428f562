package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"ritual/internal/models"
	"ritual/internal/storage"
	"ritual/internal/store"
)

func newTestModel(t *testing.T, steps []models.RoutineStep) Model {
	t.Helper()

	s := store.New(storage.NewMemoryStore())
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := s.SetSteps(steps); err != nil {
		t.Fatalf("SetSteps failed: %v", err)
	}
	return NewModel(s)
}

func pressKey(t *testing.T, m Model, r rune) Model {
	t.Helper()

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	next, ok := updated.(Model)
	if !ok {
		t.Fatalf("Update returned %T, expected Model", updated)
	}
	return next
}

func TestConfirmDelete_KeepsLastActiveStep(t *testing.T) {
	m := newTestModel(t, []models.RoutineStep{
		{ID: "a", Title: "Stretch", Active: true},
	})
	m.state = StateConfirmDelete
	m.stepToDelete = "a"

	m = pressKey(t, m, 'y')

	if got := len(m.store.Steps()); got != 1 {
		t.Fatalf("last active step was deleted, %d steps remain", got)
	}
	if m.status == "" {
		t.Error("expected a policy conflict message for the refused delete")
	}
	if m.state != StateToday {
		t.Errorf("expected to return to the Today tab, got state %d", m.state)
	}
}

func TestConfirmDelete_RemovesStepWhenPolicyAllows(t *testing.T) {
	m := newTestModel(t, []models.RoutineStep{
		{ID: "a", Title: "Stretch", Active: true},
		{ID: "b", Title: "Hydrate", Active: true},
	})
	m.state = StateConfirmDelete
	m.stepToDelete = "b"

	m = pressKey(t, m, 'y')

	steps := m.store.Steps()
	if len(steps) != 1 || steps[0].ID != "a" {
		t.Fatalf("expected only step a to remain, got %v", steps)
	}
	if m.status != "" {
		t.Errorf("unexpected status after allowed delete: %s", m.status)
	}
}

func TestConfirmDelete_DeclineLeavesStepsUntouched(t *testing.T) {
	m := newTestModel(t, []models.RoutineStep{
		{ID: "a", Title: "Stretch", Active: true},
		{ID: "b", Title: "Hydrate", Active: true},
	})
	m.state = StateConfirmDelete
	m.stepToDelete = "b"

	m = pressKey(t, m, 'n')

	if got := len(m.store.Steps()); got != 2 {
		t.Fatalf("expected both steps to survive a declined delete, got %d", got)
	}
	if m.state != StateToday {
		t.Errorf("expected to return to the Today tab, got state %d", m.state)
	}
}
