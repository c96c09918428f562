package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"ritual/internal/constants"
	"ritual/internal/models"
	"ritual/internal/validation"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		if m.tracker.Poll() {
			m.today = m.tracker.Current()
			m.cursor = 0
			m.status = ""
		}
		return m, tickCmd()
	}

	switch m.state {
	case StateAddStep, StateAddReflection:
		return m.updateForm(msg)
	case StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Tab):
		m.state = (m.state + 1) % tabCount
		m.cursor = 0
		m.status = ""

	case key.Matches(msg, m.keys.ShiftTab):
		m.state = (m.state - 1 + tabCount) % tabCount
		m.cursor = 0
		m.status = ""

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < m.listLen()-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Toggle):
		if m.state == StateToday {
			steps := m.activeSteps()
			if m.cursor < len(steps) {
				if err := m.store.ToggleStep(m.today, steps[m.cursor].ID); err != nil {
					m.status = err.Error()
				}
			}
		}

	case key.Matches(msg, m.keys.Mood):
		if m.state == StateToday {
			m.cycleMood()
		}

	case key.Matches(msg, m.keys.Add):
		if m.state == StateToday {
			m.form, m.stepForm = m.newStepForm()
			m.state = StateAddStep
			return m, m.form.Init()
		}

	case key.Matches(msg, m.keys.Reflect):
		m.form, m.reflForm = m.newReflectionForm()
		m.state = StateAddReflection
		return m, m.form.Init()

	case key.Matches(msg, m.keys.Delete):
		switch m.state {
		case StateToday:
			steps := m.activeSteps()
			if m.cursor < len(steps) {
				m.stepToDelete = steps[m.cursor].ID
				m.state = StateConfirmDelete
			}
		case StateReflections:
			entries := m.store.Reflections()
			if m.cursor < len(entries) {
				if err := m.store.DeleteReflection(entries[m.cursor].ID); err != nil {
					m.status = err.Error()
				}
				if m.cursor >= len(entries)-1 && m.cursor > 0 {
					m.cursor--
				}
			}
		}
	}

	return m, nil
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		if m.state == StateAddStep {
			m.submitStep()
			m.state = StateToday
		} else {
			m.submitReflection()
			m.state = StateReflections
		}
		m.form = nil
	case huh.StateAborted:
		if m.state == StateAddReflection {
			m.state = StateReflections
		} else {
			m.state = StateToday
		}
		m.form = nil
	}

	return m, cmd
}

func (m *Model) submitStep() {
	title := strings.TrimSpace(m.stepForm.Title)
	emoji := strings.TrimSpace(m.stepForm.Emoji)
	candidate := append(m.store.Steps(), models.RoutineStep{Title: title, Emoji: emoji, Active: true})
	if result := validation.New().ValidateSteps(candidate); result.HasConflicts() {
		m.status = result.Conflicts[0].Message
		return
	}
	if _, err := m.store.AddStep(title, emoji); err != nil {
		m.status = err.Error()
		return
	}
	m.status = ""
}

func (m *Model) submitReflection() {
	text := strings.TrimSpace(m.reflForm.Text)
	if text == "" {
		return
	}
	if result := validation.New().ValidateReflection(text); result.HasConflicts() {
		m.status = result.Conflicts[0].Message
		return
	}
	if _, err := m.store.AddReflection(text, m.today); err != nil {
		m.status = err.Error()
		return
	}
	m.cursor = 0
	m.status = ""
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y":
		// The surviving list must still satisfy routine-size policy; the
		// store itself does not enforce it.
		var kept []models.RoutineStep
		for _, step := range m.store.Steps() {
			if step.ID != m.stepToDelete {
				kept = append(kept, step)
			}
		}
		if result := validation.New().ValidateSteps(kept); result.HasConflicts() {
			m.status = result.Conflicts[0].Message
		} else if err := m.store.RemoveStep(m.stepToDelete); err != nil {
			m.status = err.Error()
		} else {
			if m.cursor > 0 {
				m.cursor--
			}
			m.status = ""
		}
		m.stepToDelete = ""
		m.state = StateToday
	case "n", "esc", "q":
		m.stepToDelete = ""
		m.state = StateToday
	}

	return m, nil
}

func (m Model) activeSteps() []models.RoutineStep {
	var active []models.RoutineStep
	for _, step := range m.store.Steps() {
		if step.Active {
			active = append(active, step)
		}
	}
	return active
}

func (m Model) listLen() int {
	switch m.state {
	case StateToday:
		return len(m.activeSteps())
	case StateReflections:
		return len(m.store.Reflections())
	}
	return 0
}

func (m *Model) cycleMood() {
	rec, err := m.store.Record(m.today)
	if err != nil {
		m.status = err.Error()
		return
	}

	var next *int
	switch {
	case rec.Mood == nil:
		v := constants.MoodMin
		next = &v
	case *rec.Mood >= constants.MoodMax:
		next = nil
	default:
		v := *rec.Mood + 1
		next = &v
	}

	if err := m.store.SetMood(m.today, next); err != nil {
		m.status = err.Error()
	}
}
