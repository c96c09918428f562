package models

// RoutineStep represents a single habit item checked off daily
type RoutineStep struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Emoji  string `json:"emoji"`
	Active bool   `json:"active"`
}
