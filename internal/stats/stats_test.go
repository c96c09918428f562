package stats

import (
	"math"
	"testing"

	"ritual/internal/models"
)

func lookupFrom(days map[string]models.DayRecord) Lookup {
	return func(day string) (models.DayRecord, bool) {
		rec, ok := days[day]
		return rec, ok
	}
}

func intPtr(v int) *int { return &v }

// Days D-6..D-1 complete both active steps, day D completes neither. The
// streak must survive the incomplete final day: it is still in progress.
func TestWeekly_IncompleteEndDayKeepsStreak(t *testing.T) {
	active := []string{"a", "b"}
	days := map[string]models.DayRecord{}
	for _, day := range []string{
		"2025-03-04", "2025-03-05", "2025-03-06",
		"2025-03-07", "2025-03-08", "2025-03-09",
	} {
		days[day] = models.DayRecord{Day: day, Completed: []string{"a", "b"}}
	}
	days["2025-03-10"] = models.DayRecord{Day: "2025-03-10", Completed: []string{}}

	snap := Weekly(lookupFrom(days), "2025-03-10", active)

	if snap.Streak != 6 {
		t.Errorf("expected streak 6 with incomplete end day, got %d", snap.Streak)
	}
}

// A non-qualifying day in the middle of the window resets the streak; only
// the run after it counts.
func TestWeekly_MidWindowFailureResetsStreak(t *testing.T) {
	active := []string{"a", "b"}
	days := map[string]models.DayRecord{}
	for _, day := range []string{
		"2025-03-04", "2025-03-05", "2025-03-06",
		"2025-03-08", "2025-03-09", "2025-03-10",
	} {
		days[day] = models.DayRecord{Day: day, Completed: []string{"a", "b"}}
	}
	// 2025-03-07 (D-3) completes only one of two steps.
	days["2025-03-07"] = models.DayRecord{Day: "2025-03-07", Completed: []string{"a"}}

	snap := Weekly(lookupFrom(days), "2025-03-10", active)

	if snap.Streak != 3 {
		t.Errorf("expected streak 3 after mid-window reset, got %d", snap.Streak)
	}
}

// A run that ended days ago must not be reported; the reset zeroes the
// streak, not just the running counter.
func TestWeekly_StaleRunDoesNotLinger(t *testing.T) {
	active := []string{"a"}
	days := map[string]models.DayRecord{
		"2025-03-04": {Day: "2025-03-04", Completed: []string{"a"}},
	}

	snap := Weekly(lookupFrom(days), "2025-03-10", active)

	if snap.Streak != 0 {
		t.Errorf("expected streak 0 for a run broken before the end day, got %d", snap.Streak)
	}
}

func TestWeekly_BarsCountOnlyActiveSteps(t *testing.T) {
	days := map[string]models.DayRecord{
		"2025-03-09": {Day: "2025-03-09", Completed: []string{"a", "b", "ghost"}},
		"2025-03-10": {Day: "2025-03-10", Completed: []string{"a"}},
	}

	snap := Weekly(lookupFrom(days), "2025-03-10", []string{"a", "b"})

	if len(snap.Bars) != 7 {
		t.Fatalf("expected 7 bars, got %d", len(snap.Bars))
	}
	if snap.Bars[5] != 2 {
		t.Errorf("expected 2 active completions on D-1 (ghost id dropped), got %d", snap.Bars[5])
	}
	if snap.Bars[6] != 1 {
		t.Errorf("expected 1 active completion on the end day, got %d", snap.Bars[6])
	}
	for i := 0; i < 5; i++ {
		if snap.Bars[i] != 0 {
			t.Errorf("expected 0 completions on absent day %d, got %d", i, snap.Bars[i])
		}
	}
}

func TestWeekly_EmptyActiveSet(t *testing.T) {
	days := map[string]models.DayRecord{
		"2025-03-10": {Day: "2025-03-10", Completed: []string{"a", "b"}},
	}

	snap := Weekly(lookupFrom(days), "2025-03-10", nil)

	if snap.Streak != 0 {
		t.Errorf("expected streak 0 with no active steps, got %d", snap.Streak)
	}
	for i, bar := range snap.Bars {
		if bar != 0 {
			t.Errorf("expected bar %d to be 0 with no active steps, got %d", i, bar)
		}
	}
}

func TestWeekly_AverageMood(t *testing.T) {
	days := map[string]models.DayRecord{
		"2025-03-08": {Day: "2025-03-08", Mood: intPtr(1)},
		"2025-03-10": {Day: "2025-03-10", Mood: intPtr(4)},
	}

	snap := Weekly(lookupFrom(days), "2025-03-10", nil)

	if snap.AvgMood != 2.5 {
		t.Errorf("expected average mood 2.5, got %v", snap.AvgMood)
	}
}

// No recorded moods must yield NaN, never zero: callers special-case the
// display and a silent 0 would read as "worst mood all week".
func TestWeekly_NoMoodsIsNaN(t *testing.T) {
	days := map[string]models.DayRecord{
		"2025-03-10": {Day: "2025-03-10", Completed: []string{"a"}},
	}

	snap := Weekly(lookupFrom(days), "2025-03-10", []string{"a"})

	if !math.IsNaN(snap.AvgMood) {
		t.Errorf("expected NaN average mood for an empty mood list, got %v", snap.AvgMood)
	}
}

func TestProgress(t *testing.T) {
	rec := models.DayRecord{Day: "2025-03-10", Completed: []string{"a", "c"}}

	if got := Progress(rec, []string{"a", "b"}); got != 0.5 {
		t.Errorf("expected progress 0.5, got %v", got)
	}
	if got := Progress(rec, nil); got != 0 {
		t.Errorf("expected progress 0 with no active steps, got %v", got)
	}
}

func TestRoutineComplete(t *testing.T) {
	rec := models.DayRecord{Day: "2025-03-10", Completed: []string{"a", "b"}}

	if !RoutineComplete(rec, []string{"a", "b"}) {
		t.Error("expected routine complete when all active steps are done")
	}
	if RoutineComplete(rec, []string{"a", "b", "c"}) {
		t.Error("expected routine incomplete with a missing active step")
	}
	if RoutineComplete(rec, nil) {
		t.Error("expected empty active set to never count as complete")
	}
}

func TestAdviceOfTheDay_Stable(t *testing.T) {
	first := AdviceOfTheDay("2025-03-10")
	second := AdviceOfTheDay("2025-03-10")

	if first != second {
		t.Errorf("advice must be stable per day key: %q vs %q", first, second)
	}
	if first == "" {
		t.Error("expected non-empty advice")
	}
}
