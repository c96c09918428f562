package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"ritual/internal/rollover"
	"ritual/internal/store"
)

type SessionState int

const (
	StateToday SessionState = iota
	StateWeek
	StateReflections
	StateAddStep
	StateAddReflection
	StateConfirmDelete
)

// tabCount is the number of top-level tabs cycled by tab/shift+tab.
const tabCount = 3

type StepFormModel struct {
	Title string
	Emoji string
}

type ReflectionFormModel struct {
	Text string
}

type tickMsg time.Time

type Model struct {
	store    *store.Store
	tracker  *rollover.Tracker
	state    SessionState
	keys     KeyMap
	help     help.Model
	form     *huh.Form
	stepForm *StepFormModel
	reflForm *ReflectionFormModel

	today        string
	cursor       int
	stepToDelete string
	status       string
	quitting     bool
	width        int
	height       int
}

func NewModel(s *store.Store) Model {
	tracker := rollover.New(time.Local, func(day string) {})

	return Model{
		store:   s,
		tracker: tracker,
		state:   StateToday,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		today:   s.TodayKey(),
	}
}

func (m Model) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(rollover.DefaultInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) newStepForm() (*huh.Form, *StepFormModel) {
	fm := &StepFormModel{}
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&fm.Title),
			huh.NewInput().
				Title("Emoji (optional)").
				Value(&fm.Emoji),
		),
	)
	return form, fm
}

func (m Model) newReflectionForm() (*huh.Form, *ReflectionFormModel) {
	fm := &ReflectionFormModel{}
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Reflection").
				CharLimit(160).
				Value(&fm.Text),
		),
	)
	return form, fm
}
