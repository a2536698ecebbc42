package models

import "time"

// Student belongs to a batch (cohort, e.g. graduation year) and a section.
type Student struct {
	ID         string    `db:"id" json:"id"`
	RollNumber string    `db:"roll_number" json:"roll_number"`
	Name       string    `db:"name" json:"name"`
	Program    string    `db:"program" json:"program"`
	Batch      string    `db:"batch" json:"batch"`
	Section    string    `db:"section" json:"section"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}
