package models

// StatsSnapshot is a derived weekly view over day records. It is never
// persisted, so it carries no JSON tags; AvgMood is NaN when no day in the
// window has a recorded mood and must not be marshaled as-is.
type StatsSnapshot struct {
	// Streak is the length of the consecutive fully-completed run ending at
	// or immediately before the window's final day.
	Streak int
	// Bars holds the per-day completed-step counts, oldest first.
	Bars []int
	// AvgMood is the arithmetic mean of recorded moods, NaN when there are none.
	AvgMood float64
}
