package dto

// CalendarEvent is one session or exam rendered as a calendar entry.
type CalendarEvent struct {
	UID         string `json:"uid"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
	DayOfWeek   *int   `json:"day_of_week,omitempty"`
	Date        string `json:"date,omitempty"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	ColorCode   string `json:"color_code,omitempty"`
}

// CalendarSyncResponse reports an enqueued synchronisation run.
type CalendarSyncResponse struct {
	Enqueued int    `json:"enqueued"`
	Status   string `json:"status"`
	Note     string `json:"note,omitempty"`
}
