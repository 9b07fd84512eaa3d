package model

import "time"

// WellnessEntry is a daily mood log. Mood is an integer in [1,5];
// entries are append-only.
type WellnessEntry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Mood      int       `json:"mood"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
