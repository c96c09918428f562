package cli

import (
	"fmt"
	"strconv"
	"strings"

	"ritual/internal/daykey"
	"ritual/internal/models"
	"ritual/internal/store"
)

type Context struct {
	Store *store.Store
}

var moodLabels = [...]string{"awful", "low", "okay", "good", "great"}

func moodLabel(mood int) string {
	if mood < 0 || mood >= len(moodLabels) {
		return "unknown"
	}
	return moodLabels[mood]
}

// resolveDay turns "today" or a YYYY-MM-DD literal into a validated day key.
func resolveDay(ctx *Context, arg string) (string, error) {
	if arg == "today" || arg == "" {
		return ctx.Store.TodayKey(), nil
	}
	if _, err := daykey.Parse(arg); err != nil {
		return "", fmt.Errorf("invalid day %q, use YYYY-MM-DD or 'today': %w", arg, err)
	}
	return arg, nil
}

// findStep resolves a step by list index (as shown by 'ritual step list') or
// by id.
func findStep(ctx *Context, arg string) (models.RoutineStep, error) {
	steps := ctx.Store.Steps()

	if idx, err := strconv.Atoi(arg); err == nil {
		if idx < 0 || idx >= len(steps) {
			return models.RoutineStep{}, fmt.Errorf("step index %d out of range [0, %d)", idx, len(steps))
		}
		return steps[idx], nil
	}

	for _, step := range steps {
		if step.ID == arg {
			return step, nil
		}
	}

	return models.RoutineStep{}, fmt.Errorf("no step with index or id %q", arg)
}

func parseIndices(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	indices := make([]int, 0, len(parts))
	for _, part := range parts {
		idx, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid index %q: %w", part, err)
		}
		indices = append(indices, idx)
	}
	return indices, nil
}

func stepLabel(step models.RoutineStep) string {
	if step.Emoji != "" {
		return step.Emoji + " " + step.Title
	}
	return step.Title
}
