package dto

// Audit responses are produced by the conflict auditor; everything else in
// this file covers catalog entity CRUD.

// CourseRequest creates or updates a course and its instructor links.
type CourseRequest struct {
	Code           string   `json:"code" validate:"required,max=20"`
	Name           string   `json:"name" validate:"required,max=200"`
	LectureHours   int      `json:"lecture_hours" validate:"min=0,max=20"`
	TutorialHours  int      `json:"tutorial_hours" validate:"min=0,max=20"`
	PracticalHours int      `json:"practical_hours" validate:"min=0,max=20"`
	SelfStudyHours int      `json:"self_study_hours" validate:"min=0,max=40"`
	Credits        int      `json:"credits" validate:"min=0,max=30"`
	IsHalfSemester bool     `json:"is_half_semester"`
	IsElective     bool     `json:"is_elective"`
	InstructorIDs  []string `json:"instructor_ids" validate:"omitempty,dive,uuid"`
}

// ProfessorRequest creates or updates a professor.
type ProfessorRequest struct {
	Name       string `json:"name" validate:"required,max=120"`
	Email      string `json:"email" validate:"required,email"`
	Department string `json:"department" validate:"max=120"`
}

// StudentRequest creates or updates a student.
type StudentRequest struct {
	RollNumber string `json:"roll_number" validate:"required,max=30"`
	Name       string `json:"name" validate:"required,max=120"`
	Program    string `json:"program" validate:"max=120"`
	Batch      string `json:"batch" validate:"required,max=20"`
	Section    string `json:"section" validate:"required,max=10"`
}

// RoomRequest creates or updates a room.
type RoomRequest struct {
	Code     string `json:"code" validate:"required,max=20"`
	Name     string `json:"name" validate:"max=120"`
	Building string `json:"building" validate:"max=120"`
	Capacity int    `json:"capacity" validate:"required,min=1,max=2000"`
	Kind     string `json:"kind" validate:"required,oneof=CLASSROOM LAB HALL"`
}

// SlotRequest creates or updates a weekly slot.
type SlotRequest struct {
	Code      string `json:"code" validate:"required,max=20"`
	DayOfWeek int    `json:"day_of_week" validate:"min=0,max=6"`
	StartTime string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime   string `json:"end_time" validate:"required,datetime=15:04"`
}

// AvailabilityRequest declares one availability window for a professor
// or a room, depending on the route it is posted to.
type AvailabilityRequest struct {
	DayOfWeek int    `json:"day_of_week" validate:"min=0,max=6"`
	StartTime string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime   string `json:"end_time" validate:"required,datetime=15:04"`
}

// AvailabilityWindowsRequest replaces the full window set of one
// professor or room.
type AvailabilityWindowsRequest struct {
	Windows []AvailabilityRequest `json:"windows" validate:"required,min=1,dive"`
}

// EnrollmentRequest links students to a course.
type EnrollmentRequest struct {
	StudentIDs []string `json:"student_ids" validate:"required,min=1,dive,uuid"`
}

// ListQuery carries the shared pagination and search parameters.
type ListQuery struct {
	Page    int    `form:"page" json:"page" validate:"omitempty,min=1"`
	PerPage int    `form:"per_page" json:"per_page" validate:"omitempty,min=1,max=200"`
	Search  string `form:"search" json:"search" validate:"omitempty,max=120"`
}
