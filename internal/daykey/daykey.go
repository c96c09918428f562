// Package daykey converts wall-clock instants to calendar-day identifiers
// ("YYYY-MM-DD") and produces rolling windows of them. Everything here is
// pure: the time zone is always an explicit input.
package daykey

import "time"

// Layout is the fixed, locale-invariant day key format.
const Layout = "2006-01-02"

// Format floors t to its calendar day in loc and renders it as YYYY-MM-DD.
func Format(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(Layout)
}

// Parse converts a day key back to the midnight UTC instant of that day.
func Parse(key string) (time.Time, error) {
	return time.Parse(Layout, key)
}

// LastNDays returns the n consecutive day keys ending at and including
// endKey, oldest first. An unparseable endKey degrades to a single-element
// window holding endKey unchanged: persisted data may carry odd keys, and a
// degenerate window renders as an empty week instead of an error. Callers
// that want to fail loudly should Parse first.
func LastNDays(n int, endKey string) []string {
	end, err := Parse(endKey)
	if err != nil {
		return []string{endKey}
	}

	keys := make([]string, 0, n)
	for i := n - 1; i >= 0; i-- {
		keys = append(keys, end.AddDate(0, 0, -i).Format(Layout))
	}
	return keys
}
