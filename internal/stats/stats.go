// Package stats derives weekly statistics from day records. Every function
// is pure: records come in through a Lookup, and nothing here retains state.
package stats

import (
	"hash/fnv"
	"math"

	"ritual/internal/constants"
	"ritual/internal/daykey"
	"ritual/internal/models"
)

// Lookup returns the record for a day key, reporting whether one exists.
// An absent day counts as zero completions and no mood.
type Lookup func(day string) (models.DayRecord, bool)

// Weekly computes the snapshot for the 7-day window ending at endDay.
//
// A day qualifies for the streak when every id in activeIDs appears in its
// completed list. A non-qualifying day resets the streak, with one
// exception: when that day is endDay itself the running streak is kept,
// because the final day is usually still in progress and should not zero
// out an otherwise unbroken run.
func Weekly(lookup Lookup, endDay string, activeIDs []string) models.StatsSnapshot {
	keys := daykey.LastNDays(constants.WindowDays, endDay)

	active := make(map[string]bool, len(activeIDs))
	for _, id := range activeIDs {
		active[id] = true
	}

	bars := make([]int, 0, len(keys))
	var moods []int
	streak, run := 0, 0

	for _, key := range keys {
		count := 0
		if rec, ok := lookup(key); ok {
			for _, id := range rec.Completed {
				if active[id] {
					count++
				}
			}
			if rec.Mood != nil {
				moods = append(moods, *rec.Mood)
			}
		}
		bars = append(bars, count)

		qualifies := len(active) > 0 && count >= len(active)
		switch {
		case qualifies:
			run++
			streak = run
		case key == endDay:
			// Final day in progress; leave the run intact.
		default:
			run = 0
			streak = 0
		}
	}

	avg := math.NaN()
	if len(moods) > 0 {
		sum := 0
		for _, m := range moods {
			sum += m
		}
		avg = float64(sum) / float64(len(moods))
	}

	return models.StatsSnapshot{Streak: streak, Bars: bars, AvgMood: avg}
}

// Progress returns the completed fraction of active steps for a single day,
// 0 when no steps are active.
func Progress(rec models.DayRecord, activeIDs []string) float64 {
	if len(activeIDs) == 0 {
		return 0
	}

	done := 0
	for _, id := range activeIDs {
		if rec.HasCompleted(id) {
			done++
		}
	}
	return float64(done) / float64(len(activeIDs))
}

// RoutineComplete reports whether every active step was completed that day.
// An empty active set never counts as complete.
func RoutineComplete(rec models.DayRecord, activeIDs []string) bool {
	if len(activeIDs) == 0 {
		return false
	}

	for _, id := range activeIDs {
		if !rec.HasCompleted(id) {
			return false
		}
	}
	return true
}

var advice = []string{
	"Small steps beat grand plans.",
	"Tie a new habit to one you already have.",
	"Done is better than perfect.",
	"Missing one day is noise; missing two is a trend.",
	"Make the first step stupidly easy.",
	"Track the action, not the outcome.",
	"Your environment votes on your habits. Stack the ballot.",
	"Celebrate the checkmark, not just the result.",
	"A routine you resent won't survive. Trim it.",
	"Show up on the bad days; the good days take care of themselves.",
}

// AdviceOfTheDay picks a fixed line of advice for the given day key. The
// selection is stable: the same key always yields the same line.
func AdviceOfTheDay(day string) string {
	h := fnv.New32a()
	h.Write([]byte(day))
	return advice[h.Sum32()%uint32(len(advice))]
}
