package models

import "time"

// DayRecord holds one calendar day's completions and mood, keyed by day.
// Completed keeps append order and may contain ids of steps that have since
// been deactivated; removal of a step from the store cascades here.
type DayRecord struct {
	Day       string   `json:"day"` // YYYY-MM-DD format
	Completed []string `json:"completed"`
	Mood      *int     `json:"mood,omitempty"` // 0..4, nil when unset
}

// EmptyDayRecord returns a fresh record for day with no completions and no mood.
func EmptyDayRecord(day string) DayRecord {
	return DayRecord{Day: day, Completed: []string{}}
}

// HasCompleted reports whether stepID is in the record's completed list.
func (r DayRecord) HasCompleted(stepID string) bool {
	for _, id := range r.Completed {
		if id == stepID {
			return true
		}
	}
	return false
}

// ReflectionEntry is a short free-text note attached to a day.
type ReflectionEntry struct {
	ID        string    `json:"id"`
	Day       string    `json:"day"` // YYYY-MM-DD format
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
