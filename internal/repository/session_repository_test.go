package repository

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-timetable-api/internal/models"
)

func newSessionRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestSessionRepositoryReplaceWithinTx(t *testing.T) {
	db, mock, cleanup := newSessionRepoMock(t)
	defer cleanup()
	repo := NewSessionRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM class_sessions WHERE timetable_id").
		WithArgs("tt-1").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("INSERT INTO class_sessions").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	ctx := context.Background()
	tx, err := repo.Begin(ctx)
	require.NoError(t, err)

	removed, err := repo.DeleteByTimetableTx(ctx, tx, "tt-1")
	require.NoError(t, err)
	require.Equal(t, 3, removed)

	sessions := []models.ClassSession{{
		TimetableID:  "tt-1",
		CourseID:     "course-1",
		SlotID:       "slot-1",
		RoomID:       "room-1",
		InstructorID: "prof-1",
		Section:      "A",
		ColorCode:    "#e54444",
	}}
	require.NoError(t, repo.BulkCreateTx(ctx, tx, sessions))
	require.NotEmpty(t, sessions[0].ID, "bulk insert assigns ids")

	require.NoError(t, tx.Commit())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepositoryDeleteByIDs(t *testing.T) {
	db, mock, cleanup := newSessionRepoMock(t)
	defer cleanup()
	repo := NewSessionRepository(db)

	mock.ExpectExec("DELETE FROM class_sessions WHERE id IN").
		WithArgs("cs-1", "cs-2").
		WillReturnResult(sqlmock.NewResult(0, 2))

	removed, err := repo.DeleteByIDs(context.Background(), []string{"cs-1", "cs-2"})
	require.NoError(t, err)
	require.Equal(t, 2, removed)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepositoryDeleteByIDsEmpty(t *testing.T) {
	db, mock, cleanup := newSessionRepoMock(t)
	defer cleanup()
	repo := NewSessionRepository(db)

	removed, err := repo.DeleteByIDs(context.Background(), nil)
	require.NoError(t, err)
	require.Zero(t, removed)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepositoryListDetailsFilters(t *testing.T) {
	db, mock, cleanup := newSessionRepoMock(t)
	defer cleanup()
	repo := NewSessionRepository(db)

	rows := sqlmock.NewRows([]string{
		"id", "timetable_id", "course_id", "course_code", "course_name",
		"slot_id", "day_of_week", "start_time", "end_time",
		"room_id", "room_code", "room_name",
		"instructor_id", "instructor_name",
		"section", "is_tutorial", "is_practical", "color_code",
	}).AddRow(
		"cs-1", "tt-1", "course-1", "CS101", "Algorithms",
		"slot-1", 0, "09:00", "10:00",
		"room-1", "C-101", "Lecture Hall",
		"prof-1", "Dr. Rao",
		"A", false, false, "#e54444",
	)
	mock.ExpectQuery("SELECT cs.id, cs.timetable_id").
		WithArgs("tt-1", "A", 0).
		WillReturnRows(rows)

	day := 0
	details, err := repo.ListDetails(context.Background(), "tt-1", "A", &day)
	require.NoError(t, err)
	require.Len(t, details, 1)
	require.Equal(t, "CS101", details[0].CourseCode)
	require.Equal(t, "Lecture", details[0].TypeLabel())
	require.NoError(t, mock.ExpectationsWereMet())
}
