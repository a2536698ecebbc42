package models

import "time"

// Enrollment links a student to a course. Unique per (course, student).
type Enrollment struct {
	ID        string    `db:"id" json:"id"`
	CourseID  string    `db:"course_id" json:"course_id"`
	StudentID string    `db:"student_id" json:"student_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// EnrolledStudent is an enrollment joined with the student's identity and
// batch label, as consumed by the exam scheduler and seating placer.
type EnrolledStudent struct {
	CourseID   string `db:"course_id" json:"course_id"`
	StudentID  string `db:"student_id" json:"student_id"`
	RollNumber string `db:"roll_number" json:"roll_number"`
	Name       string `db:"name" json:"name"`
	Batch      string `db:"batch" json:"batch"`
	Section    string `db:"section" json:"section"`
}
