package model

// HealthTip is a static wellness tip served from a fixed catalog.
type HealthTip struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
}
