package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"ritual/internal/daykey"
)

var (
	barFilledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	barEmptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	streakStyle    = lipgloss.NewStyle().Bold(true)
)

type StatsCmd struct {
	Day string `arg:"" help:"Window end day (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *StatsCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	endDay, err := resolveDay(ctx, c.Day)
	if err != nil {
		return err
	}

	snap := ctx.Store.WeeklySnapshot(endDay)
	activeCount := len(ctx.Store.ActiveStepIDs())
	keys := daykey.LastNDays(len(snap.Bars), endDay)

	fmt.Printf("Week ending %s:\n\n", endDay)
	for i, count := range snap.Bars {
		day := keys[i]
		filled := count
		if filled > activeCount {
			filled = activeCount
		}
		bar := barFilledStyle.Render(strings.Repeat("█", filled)) +
			barEmptyStyle.Render(strings.Repeat("░", max(activeCount-filled, 0)))
		fmt.Printf("  %s  %s  %d/%d\n", day, bar, count, activeCount)
	}

	fmt.Printf("\n%s\n", streakStyle.Render(fmt.Sprintf("Streak: %d day(s)", snap.Streak)))
	if math.IsNaN(snap.AvgMood) {
		fmt.Println("Average mood: no moods recorded this week")
	} else {
		fmt.Printf("Average mood: %.1f (%s)\n", snap.AvgMood, moodLabel(int(math.Round(snap.AvgMood))))
	}
	return nil
}
