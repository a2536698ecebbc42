package models

import "time"

// Course carries weekly hour demand split by session type. One slot equals
// one instance of an hour of demand for scheduling purposes.
type Course struct {
	ID             string    `db:"id" json:"id"`
	Code           string    `db:"code" json:"code"`
	Name           string    `db:"name" json:"name"`
	LectureHours   int       `db:"lecture_hours" json:"lecture_hours"`
	TutorialHours  int       `db:"tutorial_hours" json:"tutorial_hours"`
	PracticalHours int       `db:"practical_hours" json:"practical_hours"`
	SelfStudyHours int       `db:"self_study_hours" json:"self_study_hours"`
	Credits        int       `db:"credits" json:"credits"`
	IsHalfSemester bool      `db:"is_half_semester" json:"is_half_semester"`
	IsElective     bool      `db:"is_elective" json:"is_elective"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`

	// InstructorIDs is populated from the course_instructors join; the first
	// entry is the primary instructor for scheduling.
	InstructorIDs []string `db:"-" json:"instructor_ids"`
}

// PrimaryInstructor returns the first assigned instructor, or empty.
func (c Course) PrimaryInstructor() string {
	if len(c.InstructorIDs) == 0 {
		return ""
	}
	return c.InstructorIDs[0]
}
