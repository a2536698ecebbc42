package models

import "time"

// Timetable is the scoping container for generated class sessions.
type Timetable struct {
	ID            string     `db:"id" json:"id"`
	Name          string     `db:"name" json:"name"`
	EffectiveFrom *time.Time `db:"effective_from" json:"effective_from,omitempty"`
	EffectiveTo   *time.Time `db:"effective_to" json:"effective_to,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}

// ClassSession is one committed placement. Unique per
// (timetable, course, slot, section).
type ClassSession struct {
	ID           string    `db:"id" json:"id"`
	TimetableID  string    `db:"timetable_id" json:"timetable_id"`
	CourseID     string    `db:"course_id" json:"course_id"`
	SlotID       string    `db:"slot_id" json:"slot_id"`
	RoomID       string    `db:"room_id" json:"room_id"`
	InstructorID string    `db:"instructor_id" json:"instructor_id"`
	Section      string    `db:"section" json:"section"`
	IsTutorial   bool      `db:"is_tutorial" json:"is_tutorial"`
	IsPractical  bool      `db:"is_practical" json:"is_practical"`
	ColorCode    string    `db:"color_code" json:"color_code"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// TypeLabel names the session type for display surfaces.
func (s ClassSession) TypeLabel() string {
	switch {
	case s.IsTutorial:
		return "Tutorial"
	case s.IsPractical:
		return "Practical"
	default:
		return "Lecture"
	}
}

// SessionDetail is a ClassSession flattened with its joined slot, course,
// room, and instructor columns, as read by audit and display queries.
type SessionDetail struct {
	ID             string `db:"id" json:"id"`
	TimetableID    string `db:"timetable_id" json:"timetable_id"`
	CourseID       string `db:"course_id" json:"course_id"`
	CourseCode     string `db:"course_code" json:"course_code"`
	CourseName     string `db:"course_name" json:"course_name"`
	SlotID         string `db:"slot_id" json:"slot_id"`
	DayOfWeek      int    `db:"day_of_week" json:"day_of_week"`
	StartTime      string `db:"start_time" json:"start_time"`
	EndTime        string `db:"end_time" json:"end_time"`
	RoomID         string `db:"room_id" json:"room_id"`
	RoomCode       string `db:"room_code" json:"room_code"`
	RoomName       string `db:"room_name" json:"room_name"`
	InstructorID   string `db:"instructor_id" json:"instructor_id"`
	InstructorName string `db:"instructor_name" json:"instructor_name"`
	Section        string `db:"section" json:"section"`
	IsTutorial     bool   `db:"is_tutorial" json:"is_tutorial"`
	IsPractical    bool   `db:"is_practical" json:"is_practical"`
	ColorCode      string `db:"color_code" json:"color_code"`
}

// TypeLabel names the session type for display surfaces.
func (s SessionDetail) TypeLabel() string {
	switch {
	case s.IsTutorial:
		return "Tutorial"
	case s.IsPractical:
		return "Practical"
	default:
		return "Lecture"
	}
}
