package scheduling

import (
	"fmt"
	"sort"
)

// Audit conflict types.
const (
	ConflictInstructorDoubleBooking = "instructor_double_booking"
	ConflictRoomDoubleBooking       = "room_double_booking"
	ConflictInsufficientBreak       = "insufficient_break"
)

// Audit statuses.
const (
	AuditConflictsFound = "conflicts_found"
	AuditNoConflicts    = "no_conflicts"
)

// AuditSession is the auditor's flattened view of one committed session.
type AuditSession struct {
	CourseCode     string
	InstructorID   string
	InstructorName string
	RoomID         string
	RoomCode       string
	Section        string
	Day            int
	Start          int
	End            int
}

// AuditConflict names the parties of one detected violation. Field usage
// varies by Type; unused fields stay empty.
type AuditConflict struct {
	Type        string   `json:"type"`
	Instructor  string   `json:"instructor,omitempty"`
	Room        string   `json:"room,omitempty"`
	Day         string   `json:"day,omitempty"`
	Time        string   `json:"time,omitempty"`
	BreakTime   string   `json:"break_time,omitempty"`
	Courses     []string `json:"courses,omitempty"`
	Rooms       []string `json:"rooms,omitempty"`
	Instructors []string `json:"instructors,omitempty"`
}

// AuditResult is the full conflict report for one timetable.
type AuditResult struct {
	Conflicts     []AuditConflict `json:"conflicts"`
	ConflictCount int             `json:"conflict_count"`
	Status        string          `json:"status"`
}

// Audit scans committed sessions for violations the generator never
// produces itself: double-booked instructors or rooms on overlapping
// intervals, and same-day instructor sessions separated by less than
// minBreak minutes. Intended for data edited outside the generator.
func Audit(sessions []AuditSession, minBreak int, dayName func(int) string) AuditResult {
	var conflicts []AuditConflict

	byInstructor := groupBy(sessions, func(s AuditSession) string { return s.InstructorID })
	for _, instructorID := range sortedKeys(byInstructor) {
		group := byInstructor[instructorID]
		for i, a := range group {
			for _, b := range group[i+1:] {
				if a.Day == b.Day && overlaps(a.Start, a.End, b.Start, b.End) {
					conflicts = append(conflicts, AuditConflict{
						Type:       ConflictInstructorDoubleBooking,
						Instructor: a.InstructorName,
						Day:        dayName(a.Day),
						Time:       fmt.Sprintf("%s-%s", FormatClock(a.Start), FormatClock(a.End)),
						Courses:    []string{a.CourseCode, b.CourseCode},
						Rooms:      []string{a.RoomCode, b.RoomCode},
					})
				}
			}
		}
	}

	byRoom := groupBy(sessions, func(s AuditSession) string { return s.RoomID })
	for _, roomID := range sortedKeys(byRoom) {
		group := byRoom[roomID]
		for i, a := range group {
			for _, b := range group[i+1:] {
				if a.Day == b.Day && overlaps(a.Start, a.End, b.Start, b.End) {
					conflicts = append(conflicts, AuditConflict{
						Type:        ConflictRoomDoubleBooking,
						Room:        a.RoomCode,
						Day:         dayName(a.Day),
						Time:        fmt.Sprintf("%s-%s", FormatClock(a.Start), FormatClock(a.End)),
						Courses:     []string{a.CourseCode, b.CourseCode},
						Instructors: []string{a.InstructorName, b.InstructorName},
					})
				}
			}
		}
	}

	for _, instructorID := range sortedKeys(byInstructor) {
		group := byInstructor[instructorID]
		sort.SliceStable(group, func(i, j int) bool {
			if group[i].Day == group[j].Day {
				return group[i].Start < group[j].Start
			}
			return group[i].Day < group[j].Day
		})
		for i := 0; i < len(group)-1; i++ {
			a, b := group[i], group[i+1]
			if a.Day == b.Day && !breakRespected(a.End, b.Start, minBreak) {
				conflicts = append(conflicts, AuditConflict{
					Type:       ConflictInsufficientBreak,
					Instructor: a.InstructorName,
					Day:        dayName(a.Day),
					BreakTime:  fmt.Sprintf("Less than %d minutes", minBreak),
					Courses:    []string{a.CourseCode, b.CourseCode},
				})
			}
		}
	}

	status := AuditNoConflicts
	if len(conflicts) > 0 {
		status = AuditConflictsFound
	}
	return AuditResult{Conflicts: conflicts, ConflictCount: len(conflicts), Status: status}
}

func groupBy(sessions []AuditSession, key func(AuditSession) string) map[string][]AuditSession {
	grouped := make(map[string][]AuditSession)
	for _, s := range sessions {
		grouped[key(s)] = append(grouped[key(s)], s)
	}
	return grouped
}

func sortedKeys(m map[string][]AuditSession) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
