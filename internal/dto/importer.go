package dto

// CSV import rows. Column headers follow the exported CSV templates; gocsv
// maps them by the csv tag. Numeric fields stay strings so a blank cell
// does not abort the whole file; the import service parses and reports
// per-row errors.

// CourseCSVRow is one row of a course import file.
type CourseCSVRow struct {
	Code           string `csv:"code"`
	Name           string `csv:"name"`
	LectureHours   string `csv:"lecture_hours"`
	TutorialHours  string `csv:"tutorial_hours"`
	PracticalHours string `csv:"practical_hours"`
	SelfStudyHours string `csv:"self_study_hours"`
	Credits        string `csv:"credits"`
	InstructorMail string `csv:"instructor_email"`
}

// ProfessorCSVRow is one row of a professor import file.
type ProfessorCSVRow struct {
	Name       string `csv:"name"`
	Email      string `csv:"email"`
	Department string `csv:"department"`
}

// StudentCSVRow is one row of a student import file.
type StudentCSVRow struct {
	RollNumber string `csv:"roll_number"`
	Name       string `csv:"name"`
	Program    string `csv:"program"`
	Batch      string `csv:"batch"`
	Section    string `csv:"section"`
}

// RoomCSVRow is one row of a room import file.
type RoomCSVRow struct {
	Code     string `csv:"code"`
	Name     string `csv:"name"`
	Building string `csv:"building"`
	Capacity string `csv:"capacity"`
	Kind     string `csv:"kind"`
}

// ImportRowError reports one rejected row.
type ImportRowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportResult summarises one CSV import run. Existing records matched by
// their natural key are updated, not duplicated.
type ImportResult struct {
	Created int              `json:"created"`
	Updated int              `json:"updated"`
	Skipped int              `json:"skipped"`
	Errors  []ImportRowError `json:"errors,omitempty"`
}

// Reject records one skipped row with its reason.
func (r *ImportResult) Reject(row int, message string) {
	r.Skipped++
	r.Errors = append(r.Errors, ImportRowError{Row: row, Message: message})
}
