package models

import "time"

// Exam is a one-shot examination for a course. Unique per (course, date).
type Exam struct {
	ID        string    `db:"id" json:"id"`
	CourseID  string    `db:"course_id" json:"course_id"`
	Date      time.Time `db:"date" json:"date"`
	StartTime string    `db:"start_time" json:"start_time"`
	EndTime   string    `db:"end_time" json:"end_time"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ExamRoomAllocation reserves part of a room's capacity for an exam.
// Unique per (exam, room).
type ExamRoomAllocation struct {
	ID           string    `db:"id" json:"id"`
	ExamID       string    `db:"exam_id" json:"exam_id"`
	RoomID       string    `db:"room_id" json:"room_id"`
	CapacityUsed int       `db:"capacity_used" json:"capacity_used"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// SeatingAssignment pins one student to a grid cell in an exam room.
// Unique per (exam, room, row, col).
type SeatingAssignment struct {
	ID        string    `db:"id" json:"id"`
	ExamID    string    `db:"exam_id" json:"exam_id"`
	RoomID    string    `db:"room_id" json:"room_id"`
	StudentID string    `db:"student_id" json:"student_id"`
	RowIndex  int       `db:"row_index" json:"row_index"`
	ColIndex  int       `db:"col_index" json:"col_index"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// InvigilationDuty assigns a professor to watch one exam room.
// Unique per (exam, professor, room).
type InvigilationDuty struct {
	ID          string    `db:"id" json:"id"`
	ExamID      string    `db:"exam_id" json:"exam_id"`
	ProfessorID string    `db:"professor_id" json:"professor_id"`
	RoomID      string    `db:"room_id" json:"room_id"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// SeatingDetail joins a seating assignment with student identity for
// chart rendering.
type SeatingDetail struct {
	RoomID      string `db:"room_id" json:"room_id"`
	RoomCode    string `db:"room_code" json:"room_code"`
	StudentID   string `db:"student_id" json:"student_id"`
	RollNumber  string `db:"roll_number" json:"roll_number"`
	StudentName string `db:"student_name" json:"student_name"`
	RowIndex    int    `db:"row_index" json:"row_index"`
	ColIndex    int    `db:"col_index" json:"col_index"`
}
