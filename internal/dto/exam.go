package dto

// GenerateExamsRequest anchors the exam window to a start date; planned
// day offsets 0-6 are added to it.
type GenerateExamsRequest struct {
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
}

// ExamSummary is one scheduled exam with joined course identity.
type ExamSummary struct {
	ID         string `json:"id"`
	CourseID   string `json:"course_id"`
	CourseCode string `json:"course_code"`
	CourseName string `json:"course_name"`
	Date       string `json:"date"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	Enrolled   int    `json:"enrolled"`
	Fallback   bool   `json:"fallback"`
}

// GenerateExamsResponse reports one global exam scheduling run.
type GenerateExamsResponse struct {
	CreatedExams int           `json:"created_exams"`
	Exams        []ExamSummary `json:"exams"`
	Status       string        `json:"status"`
}

// SeatingCell is one occupied grid cell in the seating chart.
type SeatingCell struct {
	RollNumber  string `json:"roll_number"`
	StudentName string `json:"student_name"`
	Row         int    `json:"row"`
	Col         int    `json:"col"`
}

// RoomSeatingChart is the per-room seating view.
type RoomSeatingChart struct {
	RoomID   string        `json:"room_id"`
	RoomCode string        `json:"room_code"`
	Seats    []SeatingCell `json:"seats"`
}

// SeatingResponse reports a seating placement run for one exam.
type SeatingResponse struct {
	ExamID   string             `json:"exam_id"`
	Seated   int                `json:"seated"`
	Unseated int                `json:"unseated"`
	Rooms    []RoomSeatingChart `json:"rooms,omitempty"`
}

// AllocationView is one exam room allocation with the joined room code.
type AllocationView struct {
	RoomID   string `json:"room_id"`
	RoomCode string `json:"room_code"`
	Capacity int    `json:"capacity"`
	Assigned int    `json:"assigned"`
}

// DutyView is one invigilation duty with joined names.
type DutyView struct {
	ProfessorID   string `json:"professor_id"`
	ProfessorName string `json:"professor_name"`
	RoomID        string `json:"room_id"`
	RoomCode      string `json:"room_code"`
}

// InvigilationResponse reports duty assignment for one exam.
type InvigilationResponse struct {
	ExamID string     `json:"exam_id"`
	Duties []DutyView `json:"duties"`
}
