// Package store owns the canonical in-memory state (steps, day records,
// reflections, settings) and mirrors every mutation to its storage Provider
// before returning. A single mutex serializes all operations: most of them
// read then write, and the day-rollover poller runs concurrently with
// user-triggered calls.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"ritual/internal/backup"
	"ritual/internal/constants"
	"ritual/internal/daykey"
	"ritual/internal/models"
	"ritual/internal/stats"
	"ritual/internal/storage"
)

type Store struct {
	mu       sync.Mutex
	provider storage.Provider

	// now and loc are injectable for tests; TodayKey and reflection
	// timestamps derive from them.
	now func() time.Time
	loc *time.Location

	steps       []models.RoutineStep
	days        map[string]models.DayRecord
	reflections []models.ReflectionEntry
	settings    models.Settings

	subscribers map[int]func()
	nextSubID   int
}

func New(provider storage.Provider) *Store {
	return &Store{
		provider:    provider,
		now:         time.Now,
		loc:         time.Local,
		days:        make(map[string]models.DayRecord),
		settings:    models.DefaultSettings(),
		subscribers: make(map[int]func()),
	}
}

// SetClock replaces the store's notion of wall-clock time and time zone.
func (s *Store) SetClock(now func() time.Time, loc *time.Location) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
	s.loc = loc
}

// Init initializes the underlying storage and seeds the default state.
func (s *Store) Init() error {
	if err := s.provider.Init(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.steps = seedSteps()
	s.days = make(map[string]models.DayRecord)
	s.reflections = nil
	s.settings = models.DefaultSettings()
	return s.persistAll()
}

// Load reads all four entity blobs into memory. A missing blob keeps its
// empty default; a corrupt one is reported on stderr and also falls back to
// the default, so corruption self-heals at the cost of that blob's data.
func (s *Store) Load() error {
	if err := s.provider.Load(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var steps []models.RoutineStep
	if ok, err := s.decode(constants.KeySteps, &steps); err != nil {
		return err
	} else if ok {
		s.steps = steps
	}

	var days map[string]models.DayRecord
	if ok, err := s.decode(constants.KeyDays, &days); err != nil {
		return err
	} else if ok && days != nil {
		s.days = days
	}

	var reflections []models.ReflectionEntry
	if ok, err := s.decode(constants.KeyReflections, &reflections); err != nil {
		return err
	} else if ok {
		s.reflections = reflections
	}

	var settings models.Settings
	if ok, err := s.decode(constants.KeySettings, &settings); err != nil {
		return err
	} else if ok {
		s.settings = settings
	}

	return nil
}

func (s *Store) Close() error {
	return s.provider.Close()
}

// Path returns the path of the underlying storage backend.
func (s *Store) Path() string {
	return s.provider.Path()
}

// Provider exposes the underlying storage backend for backend-specific
// diagnostics.
func (s *Store) Provider() storage.Provider {
	return s.provider
}

// decode reads key into dst. Missing and corrupt blobs both report ok=false
// so the caller keeps its default; only provider failures surface as errors.
func (s *Store) decode(key string, dst any) (bool, error) {
	data, found, err := s.provider.Get(key)
	if err != nil {
		return false, fmt.Errorf("failed to read %q blob: %w", key, err)
	}
	if !found {
		return false, nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: corrupt %q blob, falling back to empty default: %v\n", key, err)
		return false, nil
	}
	return true, nil
}

func (s *Store) persist(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %q blob: %w", key, err)
	}
	if err := s.provider.Put(key, data); err != nil {
		return fmt.Errorf("failed to write %q blob: %w", key, err)
	}
	return nil
}

// persistAll writes all four blobs in one provider batch. Callers hold mu.
func (s *Store) persistAll() error {
	blobs := make(map[string][]byte, 4)
	for key, v := range map[string]any{
		constants.KeySteps:       s.steps,
		constants.KeyDays:        s.days,
		constants.KeyReflections: s.reflections,
		constants.KeySettings:    s.settings,
	} {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode %q blob: %w", key, err)
		}
		blobs[key] = data
	}
	return s.provider.PutAll(blobs)
}

// Subscribe registers a callback invoked after every successful mutation
// and returns its unsubscribe func. Callbacks run outside the store's lock.
func (s *Store) Subscribe(fn func()) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

func (s *Store) notify() {
	s.mu.Lock()
	fns := make([]func(), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// TodayKey returns the current local day key.
func (s *Store) TodayKey() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return daykey.Format(s.now(), s.loc)
}

func seedSteps() []models.RoutineStep {
	steps := make([]models.RoutineStep, 0, len(constants.DefaultStepSeeds))
	for _, seed := range constants.DefaultStepSeeds {
		steps = append(steps, models.RoutineStep{
			ID:     uuid.New().String(),
			Title:  seed.Title,
			Emoji:  seed.Emoji,
			Active: true,
		})
	}
	return steps
}

// --- Steps ---

// Steps returns a copy of the step list in display order.
func (s *Store) Steps() []models.RoutineStep {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.RoutineStep(nil), s.steps...)
}

// ActiveStepIDs returns the ids of currently active steps, in step order.
func (s *Store) ActiveStepIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeStepIDsLocked()
}

func (s *Store) activeStepIDsLocked() []string {
	ids := make([]string, 0, len(s.steps))
	for _, step := range s.steps {
		if step.Active {
			ids = append(ids, step.ID)
		}
	}
	return ids
}

// SetSteps replaces the whole step list.
func (s *Store) SetSteps(steps []models.RoutineStep) error {
	s.mu.Lock()
	s.steps = append([]models.RoutineStep(nil), steps...)
	err := s.persist(constants.KeySteps, s.steps)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.notify()
	return nil
}

// AddStep appends an active step with a fresh id.
func (s *Store) AddStep(title, emoji string) (models.RoutineStep, error) {
	step := models.RoutineStep{
		ID:     uuid.New().String(),
		Title:  title,
		Emoji:  emoji,
		Active: true,
	}

	s.mu.Lock()
	s.steps = append(s.steps, step)
	err := s.persist(constants.KeySteps, s.steps)
	s.mu.Unlock()
	if err != nil {
		return models.RoutineStep{}, err
	}

	s.notify()
	return step, nil
}

// UpdateStep replaces the step with a matching id, a no-op when absent.
func (s *Store) UpdateStep(step models.RoutineStep) error {
	s.mu.Lock()
	updated := false
	for i := range s.steps {
		if s.steps[i].ID == step.ID {
			s.steps[i] = step
			updated = true
			break
		}
	}
	var err error
	if updated {
		err = s.persist(constants.KeySteps, s.steps)
	}
	s.mu.Unlock()
	if err != nil {
		return err
	}

	if updated {
		s.notify()
	}
	return nil
}

// RemoveStep deletes the step and cascades the removal of its id from every
// day record's completed list.
func (s *Store) RemoveStep(id string) error {
	s.mu.Lock()

	kept := s.steps[:0]
	for _, step := range s.steps {
		if step.ID != id {
			kept = append(kept, step)
		}
	}
	s.steps = kept

	daysTouched := false
	for day, rec := range s.days {
		if !rec.HasCompleted(id) {
			continue
		}
		completed := make([]string, 0, len(rec.Completed)-1)
		for _, cid := range rec.Completed {
			if cid != id {
				completed = append(completed, cid)
			}
		}
		rec.Completed = completed
		s.days[day] = rec
		daysTouched = true
	}

	blobs := map[string]any{constants.KeySteps: s.steps}
	if daysTouched {
		blobs[constants.KeyDays] = s.days
	}
	err := s.persistSome(blobs)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.notify()
	return nil
}

func (s *Store) persistSome(values map[string]any) error {
	blobs := make(map[string][]byte, len(values))
	for key, v := range values {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode %q blob: %w", key, err)
		}
		blobs[key] = data
	}
	return s.provider.PutAll(blobs)
}

// ReorderSteps extracts the elements at movingIndices as a block (in
// ascending original order) and reinserts it at destIndex, adjusted down by
// the number of moved indices originally left of the destination. This
// mirrors "move selected rows to position X" list semantics.
func (s *Store) ReorderSteps(movingIndices []int, destIndex int) error {
	s.mu.Lock()

	indices := make([]int, 0, len(movingIndices))
	seen := make(map[int]bool, len(movingIndices))
	for _, idx := range movingIndices {
		if idx >= 0 && idx < len(s.steps) && !seen[idx] {
			indices = append(indices, idx)
			seen[idx] = true
		}
	}
	sort.Ints(indices)

	block := make([]models.RoutineStep, 0, len(indices))
	for _, idx := range indices {
		block = append(block, s.steps[idx])
	}

	remaining := make([]models.RoutineStep, 0, len(s.steps)-len(indices))
	for i, step := range s.steps {
		if !seen[i] {
			remaining = append(remaining, step)
		}
	}

	insert := destIndex
	for _, idx := range indices {
		if idx < destIndex {
			insert--
		}
	}
	if insert < 0 {
		insert = 0
	}
	if insert > len(remaining) {
		insert = len(remaining)
	}

	reordered := make([]models.RoutineStep, 0, len(s.steps))
	reordered = append(reordered, remaining[:insert]...)
	reordered = append(reordered, block...)
	reordered = append(reordered, remaining[insert:]...)
	s.steps = reordered

	err := s.persist(constants.KeySteps, s.steps)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.notify()
	return nil
}

// --- Day records ---

// Record returns the record for day, lazily creating and persisting an
// empty one on first access.
func (s *Store) Record(day string) (models.DayRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recordLocked(day)
}

func (s *Store) recordLocked(day string) (models.DayRecord, error) {
	rec, ok := s.days[day]
	if !ok {
		rec = models.EmptyDayRecord(day)
		s.days[day] = rec
		if err := s.persist(constants.KeyDays, s.days); err != nil {
			return models.DayRecord{}, err
		}
	}
	return copyRecord(rec), nil
}

func copyRecord(rec models.DayRecord) models.DayRecord {
	out := models.DayRecord{
		Day:       rec.Day,
		Completed: append([]string(nil), rec.Completed...),
	}
	if rec.Mood != nil {
		mood := *rec.Mood
		out.Mood = &mood
	}
	return out
}

// ToggleStep flips stepID's membership in day's completed list.
func (s *Store) ToggleStep(day, stepID string) error {
	return s.setCompletion(day, stepID, nil)
}

// SetStepDone forces stepID's membership in day's completed list.
func (s *Store) SetStepDone(day, stepID string, done bool) error {
	return s.setCompletion(day, stepID, &done)
}

func (s *Store) setCompletion(day, stepID string, force *bool) error {
	s.mu.Lock()

	rec, ok := s.days[day]
	if !ok {
		rec = models.EmptyDayRecord(day)
	}

	member := rec.HasCompleted(stepID)
	target := !member
	if force != nil {
		target = *force
	}

	switch {
	case target && !member:
		rec.Completed = append(rec.Completed, stepID)
	case !target && member:
		completed := make([]string, 0, len(rec.Completed)-1)
		for _, id := range rec.Completed {
			if id != stepID {
				completed = append(completed, id)
			}
		}
		rec.Completed = completed
	}

	s.days[day] = rec
	err := s.persist(constants.KeyDays, s.days)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.notify()
	return nil
}

// SetMood records day's mood; nil clears it.
func (s *Store) SetMood(day string, mood *int) error {
	s.mu.Lock()

	rec, ok := s.days[day]
	if !ok {
		rec = models.EmptyDayRecord(day)
	}
	if mood != nil {
		m := *mood
		rec.Mood = &m
	} else {
		rec.Mood = nil
	}

	s.days[day] = rec
	err := s.persist(constants.KeyDays, s.days)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.notify()
	return nil
}

// ClearDay replaces day's record with an empty one. The key stays.
func (s *Store) ClearDay(day string) error {
	s.mu.Lock()
	s.days[day] = models.EmptyDayRecord(day)
	err := s.persist(constants.KeyDays, s.days)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.notify()
	return nil
}

// --- Reflections ---

// Reflections returns a copy of the reflection list, newest first.
func (s *Store) Reflections() []models.ReflectionEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.ReflectionEntry(nil), s.reflections...)
}

// AddReflection inserts a new entry at the front of the list. Text that is
// empty after trimming is ignored and the zero entry is returned.
func (s *Store) AddReflection(text, day string) (models.ReflectionEntry, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.ReflectionEntry{}, nil
	}

	s.mu.Lock()
	entry := models.ReflectionEntry{
		ID:        uuid.New().String(),
		Day:       day,
		Text:      text,
		CreatedAt: s.now(),
	}
	s.reflections = append([]models.ReflectionEntry{entry}, s.reflections...)
	err := s.persist(constants.KeyReflections, s.reflections)
	s.mu.Unlock()
	if err != nil {
		return models.ReflectionEntry{}, err
	}

	s.notify()
	return entry, nil
}

// DeleteReflection removes the entry with the given id, a no-op when absent.
func (s *Store) DeleteReflection(id string) error {
	s.mu.Lock()
	removed := false
	kept := s.reflections[:0]
	for _, entry := range s.reflections {
		if entry.ID == id {
			removed = true
			continue
		}
		kept = append(kept, entry)
	}
	s.reflections = kept

	var err error
	if removed {
		err = s.persist(constants.KeyReflections, s.reflections)
	}
	s.mu.Unlock()
	if err != nil {
		return err
	}

	if removed {
		s.notify()
	}
	return nil
}

// --- Derived values ---

// WeeklySnapshot computes the 7-day snapshot ending at endDay against the
// currently active step ids.
func (s *Store) WeeklySnapshot(endDay string) models.StatsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.weeklySnapshotLocked(endDay, s.activeStepIDsLocked())
}

// WeeklySnapshotFor computes the snapshot against an explicit active set.
func (s *Store) WeeklySnapshotFor(endDay string, activeIDs []string) models.StatsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.weeklySnapshotLocked(endDay, activeIDs)
}

func (s *Store) weeklySnapshotLocked(endDay string, activeIDs []string) models.StatsSnapshot {
	lookup := func(day string) (models.DayRecord, bool) {
		rec, ok := s.days[day]
		return rec, ok
	}
	return stats.Weekly(lookup, endDay, activeIDs)
}

// Progress returns day's completed fraction of active steps, 0 when none
// are active.
func (s *Store) Progress(day string) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return stats.Progress(s.days[day], s.activeStepIDsLocked())
}

// RoutineComplete reports whether every active step was completed on day.
func (s *Store) RoutineComplete(day string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return stats.RoutineComplete(s.days[day], s.activeStepIDsLocked())
}

// --- Resets ---

// ResetWeek clears every day in the 7-day window ending at endDay.
func (s *Store) ResetWeek(endDay string) error {
	s.mu.Lock()
	for _, day := range daykey.LastNDays(constants.WindowDays, endDay) {
		s.days[day] = models.EmptyDayRecord(day)
	}
	err := s.persist(constants.KeyDays, s.days)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.notify()
	return nil
}

// ResetAll clears everything, restores default settings, and re-seeds the
// default step set so the app is never left with zero steps.
func (s *Store) ResetAll() error {
	s.mu.Lock()
	s.steps = seedSteps()
	s.days = make(map[string]models.DayRecord)
	s.reflections = nil
	s.settings = models.DefaultSettings()
	err := s.persistAll()
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.notify()
	return nil
}

// --- Settings ---

// Settings returns the current settings record.
func (s *Store) Settings() models.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// UpdateSettings applies mutate to the current settings atomically.
func (s *Store) UpdateSettings(mutate func(models.Settings) models.Settings) error {
	s.mu.Lock()
	s.settings = mutate(s.settings)
	err := s.persist(constants.KeySettings, s.settings)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.notify()
	return nil
}

// --- Backup ---

// ExportBackup serializes the entire state as a versioned JSON envelope.
func (s *Store) ExportBackup() ([]byte, error) {
	s.mu.Lock()
	env := backup.New(
		append([]models.RoutineStep(nil), s.steps...),
		copyDays(s.days),
		append([]models.ReflectionEntry(nil), s.reflections...),
		s.settings,
		s.now(),
	)
	s.mu.Unlock()

	return backup.Encode(env)
}

// ImportBackup replaces or merges state from an exported envelope. The
// store is left untouched unless the payload decodes fully; merge mode
// unions day records and appends unknown steps and reflections, leaving
// settings alone.
func (s *Store) ImportBackup(data []byte, merge bool) error {
	incoming, err := backup.Decode(data)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if merge {
		current := backup.New(s.steps, s.days, s.reflections, s.settings, s.now())
		merged := backup.Merge(current, incoming)
		s.steps = merged.Steps
		s.days = merged.DayRecords
		s.reflections = merged.Reflections
	} else {
		s.steps = incoming.Steps
		s.days = incoming.DayRecords
		s.reflections = incoming.Reflections
		s.settings = incoming.Settings
	}
	if s.days == nil {
		s.days = make(map[string]models.DayRecord)
	}
	persistErr := s.persistAll()
	s.mu.Unlock()
	if persistErr != nil {
		return persistErr
	}

	s.notify()
	return nil
}

func copyDays(days map[string]models.DayRecord) map[string]models.DayRecord {
	out := make(map[string]models.DayRecord, len(days))
	for day, rec := range days {
		out[day] = copyRecord(rec)
	}
	return out
}
