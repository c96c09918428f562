package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"ritual/internal/daykey"
	"ritual/internal/stats"
)

var moodNames = []string{"awful", "low", "okay", "good", "great"}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateToday:
		content = docStyle.Render(m.viewToday())
	case StateWeek:
		content = docStyle.Render(m.viewWeek())
	case StateReflections:
		content = docStyle.Render(m.viewReflections())
	case StateAddStep, StateAddReflection:
		content = docStyle.Render(m.form.View())
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	sections := []string{m.viewTabs(), content}
	if m.status != "" {
		sections = append(sections, dangerStyle.Render(m.status))
	}
	sections = append(sections, m.help.View(m.keys))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Today", "Week", "Reflections"} {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewToday() string {
	steps := m.activeSteps()
	if len(steps) == 0 {
		return dimStyle.Render("No active steps. Press 'a' to add one.")
	}

	rec, err := m.store.Record(m.today)
	if err != nil {
		return dangerStyle.Render(err.Error())
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", m.today)
	for i, step := range steps {
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}
		mark := "[ ]"
		line := fmt.Sprintf("%s %s", mark, stepLine(step.Emoji, step.Title))
		if rec.HasCompleted(step.ID) {
			line = doneStyle.Render(fmt.Sprintf("[x] %s", stepLine(step.Emoji, step.Title)))
		}
		fmt.Fprintf(&b, "%s%s\n", cursor, line)
	}

	fmt.Fprintf(&b, "\nProgress: %.0f%%", m.store.Progress(m.today)*100)
	if m.store.RoutineComplete(m.today) {
		b.WriteString("  🎉")
	}
	if rec.Mood != nil && *rec.Mood >= 0 && *rec.Mood < len(moodNames) {
		fmt.Fprintf(&b, "\nMood: %s", moodNames[*rec.Mood])
	} else {
		b.WriteString("\n" + dimStyle.Render("Mood: not set"))
	}
	fmt.Fprintf(&b, "\n\n%s", dimStyle.Render("“"+stats.AdviceOfTheDay(m.today)+"”"))

	return b.String()
}

func (m Model) viewWeek() string {
	snap := m.store.WeeklySnapshot(m.today)
	keys := daykey.LastNDays(len(snap.Bars), m.today)

	var b strings.Builder
	fmt.Fprintf(&b, "Streak: %d day(s)\n\n", snap.Streak)
	for i, count := range snap.Bars {
		active := len(m.store.ActiveStepIDs())
		filled := barFilledStyle.Render(strings.Repeat("█", count))
		empty := ""
		if active > count {
			empty = barEmptyStyle.Render(strings.Repeat("░", active-count))
		}
		fmt.Fprintf(&b, "%s  %s%s %d\n", keys[i], filled, empty, count)
	}

	if math.IsNaN(snap.AvgMood) {
		b.WriteString(dimStyle.Render("\nNo moods recorded this week."))
	} else {
		fmt.Fprintf(&b, "\nAverage mood: %.1f", snap.AvgMood)
	}

	return b.String()
}

func (m Model) viewReflections() string {
	entries := m.store.Reflections()
	if len(entries) == 0 {
		return dimStyle.Render("No reflections yet. Press 'r' to add one.")
	}

	var b strings.Builder
	for i, entry := range entries {
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}
		fmt.Fprintf(&b, "%s%s  %s\n", cursor, dimStyle.Render(entry.Day), entry.Text)
	}
	return b.String()
}

func (m Model) viewConfirmDelete() string {
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render("Delete this step and its completion history?"),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}

func stepLine(emoji, title string) string {
	if emoji != "" {
		return emoji + " " + title
	}
	return title
}
