package daykey

import (
	"testing"
	"time"
)

func TestFormat_StableWithinDay(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("failed to load location: %v", err)
	}

	morning := time.Date(2025, 3, 10, 0, 0, 1, 0, loc)
	night := time.Date(2025, 3, 10, 23, 59, 59, 0, loc)

	if Format(morning, loc) != Format(night, loc) {
		t.Errorf("expected identical keys within one local day, got %s and %s",
			Format(morning, loc), Format(night, loc))
	}
	if got := Format(morning, loc); got != "2025-03-10" {
		t.Errorf("expected 2025-03-10, got %s", got)
	}
}

func TestFormat_CrossesMidnightByOneDay(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("failed to load location: %v", err)
	}

	before := time.Date(2025, 3, 10, 23, 59, 59, 0, loc)
	after := before.Add(2 * time.Second)

	if got := Format(after, loc); got != "2025-03-11" {
		t.Errorf("expected 2025-03-11 after midnight, got %s", got)
	}
}

func TestFormat_TimeZoneIsAnInput(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Fatalf("failed to load location: %v", err)
	}

	// 23:00 UTC on the 10th is already the 11th in Tokyo.
	instant := time.Date(2025, 3, 10, 23, 0, 0, 0, time.UTC)

	if got := Format(instant, time.UTC); got != "2025-03-10" {
		t.Errorf("expected 2025-03-10 in UTC, got %s", got)
	}
	if got := Format(instant, tokyo); got != "2025-03-11" {
		t.Errorf("expected 2025-03-11 in Tokyo, got %s", got)
	}
}

func TestLastNDays_Window(t *testing.T) {
	got := LastNDays(7, "2025-03-10")

	want := []string{
		"2025-03-04", "2025-03-05", "2025-03-06", "2025-03-07",
		"2025-03-08", "2025-03-09", "2025-03-10",
	}

	if len(got) != len(want) {
		t.Fatalf("expected %d keys, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("key %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestLastNDays_CrossesMonthBoundary(t *testing.T) {
	got := LastNDays(3, "2025-03-01")

	want := []string{"2025-02-27", "2025-02-28", "2025-03-01"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("key %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

// An unparseable end key degrades to a single-element window rather than an
// error. This quirk is intentional; see LastNDays.
func TestLastNDays_MalformedEndKeyDegrades(t *testing.T) {
	got := LastNDays(7, "not-a-day")

	if len(got) != 1 {
		t.Fatalf("expected single-element fallback, got %d elements", len(got))
	}
	if got[0] != "not-a-day" {
		t.Errorf("expected the end key unchanged, got %s", got[0])
	}
}
