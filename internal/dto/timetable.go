package dto

import "github.com/noah-isme/campus-timetable-api/internal/scheduling"

// CreateTimetableRequest names a new timetable container.
type CreateTimetableRequest struct {
	Name          string  `json:"name" validate:"required,max=120"`
	EffectiveFrom *string `json:"effective_from" validate:"omitempty,datetime=2006-01-02"`
	EffectiveTo   *string `json:"effective_to" validate:"omitempty,datetime=2006-01-02"`
}

// GenerateTimetableResponse reports one generator run over a timetable.
type GenerateTimetableResponse struct {
	TimetableID       string                              `json:"timetable_id"`
	CreatedSessions   int                                 `json:"created_sessions"`
	SectionsProcessed int                                 `json:"sections_processed"`
	Conflicts         []string                            `json:"conflicts"`
	SelfStudy         map[string]scheduling.SelfStudyPlan `json:"self_study_distribution,omitempty"`
	Status            string                              `json:"status"`
	Message           string                              `json:"message,omitempty"`
}

// RescheduleResponse extends the generate result with the count of
// (course, section) pairs whose sessions were torn down and rebuilt.
type RescheduleResponse struct {
	Rescheduled       int                                 `json:"rescheduled"`
	CreatedSessions   int                                 `json:"created_sessions,omitempty"`
	SectionsProcessed int                                 `json:"sections_processed,omitempty"`
	Conflicts         []string                            `json:"conflicts,omitempty"`
	SelfStudy         map[string]scheduling.SelfStudyPlan `json:"self_study_distribution,omitempty"`
	Status            string                              `json:"status"`
	Message           string                              `json:"message,omitempty"`
}

// TimetableDataQuery filters the timetable data view.
type TimetableDataQuery struct {
	Section string `form:"section" json:"section"`
	Day     *int   `form:"day" json:"day" validate:"omitempty,min=0,max=6"`
}

// SessionView is one session as rendered in the timetable data view.
type SessionView struct {
	ID             string `json:"id"`
	CourseCode     string `json:"course_code"`
	CourseName     string `json:"course_name"`
	Section        string `json:"section"`
	Day            string `json:"day"`
	DayOfWeek      int    `json:"day_of_week"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	RoomCode       string `json:"room_code"`
	InstructorName string `json:"instructor_name"`
	SessionType    string `json:"session_type"`
	ColorCode      string `json:"color_code"`
}

// TimetableDataResponse groups the data view by day label.
type TimetableDataResponse struct {
	TimetableID string                   `json:"timetable_id"`
	Days        map[string][]SessionView `json:"days"`
	Total       int                      `json:"total"`
}

// TimetableStatistics summarises committed placements per timetable.
type TimetableStatistics struct {
	TimetableID     string         `json:"timetable_id"`
	TotalSessions   int            `json:"total_sessions"`
	Lectures        int            `json:"lectures"`
	Tutorials       int            `json:"tutorials"`
	Practicals      int            `json:"practicals"`
	SessionsPerDay  map[string]int `json:"sessions_per_day"`
	RoomUtilization map[string]int `json:"room_utilization"`
	InstructorLoad  map[string]int `json:"instructor_load"`
}

// OptimizeResponse reports a regeneration pass and whether it improved
// on the committed schedule.
type OptimizeResponse struct {
	Improved        bool     `json:"improved"`
	PreviousCount   int      `json:"previous_count"`
	CreatedSessions int      `json:"created_sessions"`
	Conflicts       []string `json:"conflicts,omitempty"`
	Status          string   `json:"status"`
}

// ClearResponse reports how many sessions a clear removed.
type ClearResponse struct {
	Removed int `json:"removed"`
}

// SectionListResponse lists the distinct sections known to a timetable.
type SectionListResponse struct {
	Sections []string `json:"sections"`
}
