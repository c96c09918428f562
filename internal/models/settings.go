package models

// ReminderTime is a local time of day for the daily reminder.
type ReminderTime struct {
	Hour   int `json:"hour"`   // 0..23
	Minute int `json:"minute"` // 0..59
}

// Settings is the single app-settings record. Reminder is nil when no daily
// reminder is configured.
type Settings struct {
	Haptics  bool          `json:"haptics"`
	Sound    bool          `json:"sound"`
	Theme    string        `json:"theme"`
	Reminder *ReminderTime `json:"reminder,omitempty"`
}

// DefaultSettings returns the settings a fresh install starts with.
func DefaultSettings() Settings {
	return Settings{
		Haptics: true,
		Sound:   true,
		Theme:   "system",
	}
}
