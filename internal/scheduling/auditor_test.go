package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDayNames = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

func testDayName(day int) string { return testDayNames[day] }

func TestAuditCleanTimetable(t *testing.T) {
	sessions := []AuditSession{
		{CourseCode: "CS101", InstructorID: "prof-1", InstructorName: "Dr. Rao", RoomID: "room-1", RoomCode: "C-101", Day: 0, Start: 540, End: 600},
		{CourseCode: "CS102", InstructorID: "prof-1", InstructorName: "Dr. Rao", RoomID: "room-1", RoomCode: "C-101", Day: 0, Start: 660, End: 720},
	}

	result := Audit(sessions, 15, testDayName)

	assert.Equal(t, AuditNoConflicts, result.Status)
	assert.Equal(t, 0, result.ConflictCount)
	assert.Empty(t, result.Conflicts)
}

func TestAuditInstructorDoubleBooking(t *testing.T) {
	sessions := []AuditSession{
		{CourseCode: "CS101", InstructorID: "prof-1", InstructorName: "Dr. Rao", RoomID: "room-1", RoomCode: "C-101", Day: 1, Start: 540, End: 600},
		{CourseCode: "CS102", InstructorID: "prof-1", InstructorName: "Dr. Rao", RoomID: "room-2", RoomCode: "C-102", Day: 1, Start: 570, End: 630},
	}

	result := Audit(sessions, 15, testDayName)

	require.Equal(t, AuditConflictsFound, result.Status)
	require.NotEmpty(t, result.Conflicts)
	conflict := result.Conflicts[0]
	assert.Equal(t, ConflictInstructorDoubleBooking, conflict.Type)
	assert.Equal(t, "Dr. Rao", conflict.Instructor)
	assert.Equal(t, "Tue", conflict.Day)
	assert.Equal(t, "09:00-10:00", conflict.Time)
	assert.Equal(t, []string{"CS101", "CS102"}, conflict.Courses)
	assert.Equal(t, []string{"C-101", "C-102"}, conflict.Rooms)
}

func TestAuditRoomDoubleBooking(t *testing.T) {
	sessions := []AuditSession{
		{CourseCode: "CS101", InstructorID: "prof-1", InstructorName: "Dr. Rao", RoomID: "room-1", RoomCode: "C-101", Day: 2, Start: 540, End: 600},
		{CourseCode: "CS102", InstructorID: "prof-2", InstructorName: "Dr. Iyer", RoomID: "room-1", RoomCode: "C-101", Day: 2, Start: 540, End: 600},
	}

	result := Audit(sessions, 15, testDayName)

	require.Equal(t, AuditConflictsFound, result.Status)
	require.Len(t, result.Conflicts, 1)
	conflict := result.Conflicts[0]
	assert.Equal(t, ConflictRoomDoubleBooking, conflict.Type)
	assert.Equal(t, "C-101", conflict.Room)
	assert.Equal(t, "Wed", conflict.Day)
	assert.Equal(t, []string{"CS101", "CS102"}, conflict.Courses)
	assert.Equal(t, []string{"Dr. Rao", "Dr. Iyer"}, conflict.Instructors)
}

func TestAuditInsufficientBreak(t *testing.T) {
	sessions := []AuditSession{
		{CourseCode: "CS101", InstructorID: "prof-1", InstructorName: "Dr. Rao", RoomID: "room-1", RoomCode: "C-101", Day: 0, Start: 540, End: 600},
		{CourseCode: "CS102", InstructorID: "prof-1", InstructorName: "Dr. Rao", RoomID: "room-2", RoomCode: "C-102", Day: 0, Start: 610, End: 670},
	}

	result := Audit(sessions, 15, testDayName)

	require.Equal(t, AuditConflictsFound, result.Status)
	require.Len(t, result.Conflicts, 1)
	conflict := result.Conflicts[0]
	assert.Equal(t, ConflictInsufficientBreak, conflict.Type)
	assert.Equal(t, "Dr. Rao", conflict.Instructor)
	assert.Equal(t, "Mon", conflict.Day)
	assert.Equal(t, "Less than 15 minutes", conflict.BreakTime)
	assert.Equal(t, []string{"CS101", "CS102"}, conflict.Courses)
}

func TestAuditBackToBackSessionsOnlyBreakViolation(t *testing.T) {
	// Touching intervals do not overlap, so the only finding is the break.
	sessions := []AuditSession{
		{CourseCode: "CS101", InstructorID: "prof-1", InstructorName: "Dr. Rao", RoomID: "room-1", RoomCode: "C-101", Day: 0, Start: 540, End: 600},
		{CourseCode: "CS102", InstructorID: "prof-1", InstructorName: "Dr. Rao", RoomID: "room-2", RoomCode: "C-102", Day: 0, Start: 600, End: 660},
	}

	result := Audit(sessions, 15, testDayName)

	require.Len(t, result.Conflicts, 1)
	assert.Equal(t, ConflictInsufficientBreak, result.Conflicts[0].Type)
}

func TestAuditDifferentDaysNoConflict(t *testing.T) {
	sessions := []AuditSession{
		{CourseCode: "CS101", InstructorID: "prof-1", InstructorName: "Dr. Rao", RoomID: "room-1", RoomCode: "C-101", Day: 0, Start: 540, End: 600},
		{CourseCode: "CS102", InstructorID: "prof-1", InstructorName: "Dr. Rao", RoomID: "room-1", RoomCode: "C-101", Day: 1, Start: 540, End: 600},
	}

	result := Audit(sessions, 15, testDayName)

	assert.Equal(t, AuditNoConflicts, result.Status)
}

func TestAuditEmptyTimetable(t *testing.T) {
	result := Audit(nil, 15, testDayName)

	assert.Equal(t, AuditNoConflicts, result.Status)
	assert.Equal(t, 0, result.ConflictCount)
}
