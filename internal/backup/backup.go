// Package backup encodes the full store state to a single versioned JSON
// envelope and back, and manages timestamped backup files on disk.
package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"ritual/internal/constants"
	"ritual/internal/models"
)

// ErrInvalidBackup wraps every decode failure so callers can branch on it.
var ErrInvalidBackup = errors.New("invalid backup")

// Envelope is the backup file format: a versioned full copy of the store's
// entities. The version field is carried through round-trips untouched; it
// is not yet used for migration dispatch.
type Envelope struct {
	Version     int                         `json:"version"`
	ExportedAt  time.Time                   `json:"exported_at"`
	Steps       []models.RoutineStep        `json:"steps"`
	DayRecords  map[string]models.DayRecord `json:"day_records"`
	Reflections []models.ReflectionEntry    `json:"reflections"`
	Settings    models.Settings             `json:"settings"`
}

// New builds a current-version envelope around a copy of the given state.
func New(steps []models.RoutineStep, days map[string]models.DayRecord, reflections []models.ReflectionEntry, settings models.Settings, exportedAt time.Time) Envelope {
	return Envelope{
		Version:     constants.BackupVersion,
		ExportedAt:  exportedAt,
		Steps:       steps,
		DayRecords:  days,
		Reflections: reflections,
		Settings:    settings,
	}
}

// Encode serializes the envelope as indented JSON.
func Encode(env Envelope) ([]byte, error) {
	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize backup: %w", err)
	}
	return data, nil
}

// Decode parses and validates a backup payload. The returned error wraps
// ErrInvalidBackup for malformed bytes or an unusable schema; callers must
// not touch their own state until Decode succeeds.
func Decode(data []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}

	if env.Version < 1 {
		return Envelope{}, fmt.Errorf("%w: unsupported version %d", ErrInvalidBackup, env.Version)
	}

	if env.DayRecords == nil {
		env.DayRecords = make(map[string]models.DayRecord)
	}

	return env, nil
}

// Merge folds incoming into current additively:
//   - steps: append incoming steps whose id is not already present
//   - day records: union completed-id sets per day; an incoming non-null
//     mood overwrites, a null one leaves the existing mood alone
//   - reflections: append incoming entries whose id is not already present,
//     then re-sort newest first
//   - settings: left untouched
//
// Merging the same envelope twice yields the same state as merging it once.
func Merge(current, incoming Envelope) Envelope {
	merged := current

	stepIDs := make(map[string]bool, len(current.Steps))
	for _, step := range current.Steps {
		stepIDs[step.ID] = true
	}
	for _, step := range incoming.Steps {
		if !stepIDs[step.ID] {
			merged.Steps = append(merged.Steps, step)
			stepIDs[step.ID] = true
		}
	}

	days := make(map[string]models.DayRecord, len(current.DayRecords))
	for day, rec := range current.DayRecords {
		days[day] = rec
	}
	for day, incomingRec := range incoming.DayRecords {
		existing, ok := days[day]
		if !ok {
			existing = models.EmptyDayRecord(day)
		}
		days[day] = mergeDayRecord(existing, incomingRec)
	}
	merged.DayRecords = days

	reflectionIDs := make(map[string]bool, len(current.Reflections))
	for _, entry := range current.Reflections {
		reflectionIDs[entry.ID] = true
	}
	merged.Reflections = append([]models.ReflectionEntry(nil), current.Reflections...)
	for _, entry := range incoming.Reflections {
		if !reflectionIDs[entry.ID] {
			merged.Reflections = append(merged.Reflections, entry)
			reflectionIDs[entry.ID] = true
		}
	}
	sort.SliceStable(merged.Reflections, func(i, j int) bool {
		return merged.Reflections[i].CreatedAt.After(merged.Reflections[j].CreatedAt)
	})

	return merged
}

func mergeDayRecord(existing, incoming models.DayRecord) models.DayRecord {
	merged := models.DayRecord{
		Day:       existing.Day,
		Completed: append([]string(nil), existing.Completed...),
		Mood:      existing.Mood,
	}

	for _, id := range incoming.Completed {
		if !merged.HasCompleted(id) {
			merged.Completed = append(merged.Completed, id)
		}
	}

	if incoming.Mood != nil {
		mood := *incoming.Mood
		merged.Mood = &mood
	}

	return merged
}
