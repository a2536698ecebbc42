package models

import "time"

// Slot is a fixed weekly recurring interval usable for class placement.
// Times are "HH:MM" strings; day_of_week runs 0 (Monday) to 6 (Sunday).
type Slot struct {
	ID        string    `db:"id" json:"id"`
	Code      string    `db:"code" json:"code"`
	DayOfWeek int       `db:"day_of_week" json:"day_of_week"`
	StartTime string    `db:"start_time" json:"start_time"`
	EndTime   string    `db:"end_time" json:"end_time"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// DayNames maps day_of_week to its short display label.
var DayNames = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// DayName returns the display label for a 0-6 day index.
func DayName(day int) string {
	if day < 0 || day >= len(DayNames) {
		return "?"
	}
	return DayNames[day]
}
