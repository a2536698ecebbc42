package service

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-timetable-api/internal/dto"
	"github.com/noah-isme/campus-timetable-api/internal/models"
	appErrors "github.com/noah-isme/campus-timetable-api/pkg/errors"
)

type enrollmentStub struct {
	counts   map[string]int
	enrolled []models.EnrolledStudent
}

func (e *enrollmentStub) CountByCourse(context.Context) (map[string]int, error) {
	return e.counts, nil
}

func (e *enrollmentStub) ListEnrolledByCourse(_ context.Context, courseID string) ([]models.EnrolledStudent, error) {
	var out []models.EnrolledStudent
	for _, st := range e.enrolled {
		if st.CourseID == courseID {
			out = append(out, st)
		}
	}
	return out, nil
}

func (e *enrollmentStub) ListAllEnrolled(context.Context) ([]models.EnrolledStudent, error) {
	return e.enrolled, nil
}

type professorRosterStub struct {
	professors []models.Professor
}

func (p *professorRosterStub) ListAll(context.Context) ([]models.Professor, error) {
	return p.professors, nil
}

type examStoreStub struct {
	db          *sqlx.DB
	mock        sqlmock.Sqlmock
	exams       map[string]*models.Exam
	allocations map[string][]models.ExamRoomAllocation
	seats       map[string][]models.SeatingAssignment
	duties      map[string][]models.InvigilationDuty
	students    map[string]models.EnrolledStudent
	roomCodes   map[string]string
	nextID      int
}

func newExamStoreStub(t *testing.T) *examStoreStub {
	t.Helper()
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = raw.Close() })
	mock.MatchExpectationsInOrder(false)
	return &examStoreStub{
		db:          sqlx.NewDb(raw, "sqlmock"),
		mock:        mock,
		exams:       make(map[string]*models.Exam),
		allocations: make(map[string][]models.ExamRoomAllocation),
		seats:       make(map[string][]models.SeatingAssignment),
		duties:      make(map[string][]models.InvigilationDuty),
		students:    make(map[string]models.EnrolledStudent),
		roomCodes:   make(map[string]string),
	}
}

func (s *examStoreStub) Begin(ctx context.Context) (*sqlx.Tx, error) {
	s.mock.ExpectBegin()
	s.mock.ExpectCommit()
	s.mock.ExpectRollback()
	return s.db.BeginTxx(ctx, nil)
}

func (s *examStoreStub) DeleteAllTx(context.Context, *sqlx.Tx) error {
	s.exams = make(map[string]*models.Exam)
	s.allocations = make(map[string][]models.ExamRoomAllocation)
	return nil
}

func (s *examStoreStub) CreateTx(_ context.Context, _ *sqlx.Tx, exam *models.Exam, allocations []models.ExamRoomAllocation) error {
	if exam.ID == "" {
		s.nextID++
		exam.ID = fmt.Sprintf("exam-%d", s.nextID)
	}
	s.exams[exam.ID] = exam
	s.allocations[exam.ID] = allocations
	return nil
}

func (s *examStoreStub) FindByID(_ context.Context, id string) (*models.Exam, error) {
	exam, ok := s.exams[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return exam, nil
}

func (s *examStoreStub) ListAll(context.Context) ([]models.Exam, error) {
	out := make([]models.Exam, 0, len(s.exams))
	for _, e := range s.exams {
		out = append(out, *e)
	}
	return out, nil
}

func (s *examStoreStub) ListAllocations(_ context.Context, examID string) ([]models.ExamRoomAllocation, error) {
	return s.allocations[examID], nil
}

func (s *examStoreStub) ReplaceSeating(_ context.Context, examID string, seats []models.SeatingAssignment) error {
	s.seats[examID] = seats
	return nil
}

func (s *examStoreStub) ListSeatingDetails(_ context.Context, examID string) ([]models.SeatingDetail, error) {
	var out []models.SeatingDetail
	for _, seat := range s.seats[examID] {
		st := s.students[seat.StudentID]
		out = append(out, models.SeatingDetail{
			RoomID:      seat.RoomID,
			RoomCode:    s.roomCodes[seat.RoomID],
			StudentID:   seat.StudentID,
			RollNumber:  st.RollNumber,
			StudentName: st.Name,
			RowIndex:    seat.RowIndex,
			ColIndex:    seat.ColIndex,
		})
	}
	return out, nil
}

func (s *examStoreStub) ReplaceDuties(_ context.Context, examID string, duties []models.InvigilationDuty) error {
	s.duties[examID] = duties
	return nil
}

func (s *examStoreStub) ListDuties(_ context.Context, examID string) ([]models.InvigilationDuty, error) {
	return s.duties[examID], nil
}

func examFixture(t *testing.T) (*ExamService, *enrollmentStub, *examStoreStub, *catalogStub) {
	t.Helper()

	catalog := &catalogStub{
		courses: []models.Course{
			{ID: "c-1", Code: "CS101", Name: "Programming", InstructorIDs: []string{"p-1"}},
			{ID: "c-2", Code: "MA101", Name: "Calculus", InstructorIDs: []string{"p-2"}},
		},
		roomWindows: []models.RoomAvailability{
			{RoomID: "r-hall", DayOfWeek: 0, StartTime: "09:00", EndTime: "17:00"},
			{RoomID: "r-hall", DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00"},
		},
	}
	rooms := &roomCatalogStub{rooms: []models.Room{
		{ID: "r-hall", Code: "HALL-1", Capacity: 100, Kind: models.RoomKindHall},
		{ID: "r-1", Code: "CR-101", Capacity: 36, Kind: models.RoomKindClassroom},
	}}

	enrollments := &enrollmentStub{
		counts: map[string]int{"c-1": 4, "c-2": 6},
	}
	for i := 0; i < 4; i++ {
		enrollments.enrolled = append(enrollments.enrolled, models.EnrolledStudent{
			CourseID: "c-1", StudentID: fmt.Sprintf("st-a%d", i),
			RollNumber: fmt.Sprintf("2023CS%03d", i), Name: fmt.Sprintf("Student A%d", i), Batch: "2023",
		})
	}
	for i := 0; i < 6; i++ {
		enrollments.enrolled = append(enrollments.enrolled, models.EnrolledStudent{
			CourseID: "c-2", StudentID: fmt.Sprintf("st-b%d", i),
			RollNumber: fmt.Sprintf("2023MA%03d", i), Name: fmt.Sprintf("Student B%d", i), Batch: "2023",
		})
	}

	roster := &professorRosterStub{professors: []models.Professor{
		{ID: "p-1", Name: "Rao"},
		{ID: "p-2", Name: "Iyer"},
	}}

	store := newExamStoreStub(t)
	store.roomCodes["r-hall"] = "HALL-1"
	for _, st := range enrollments.enrolled {
		store.students[st.StudentID] = st
	}

	svc := NewExamService(catalog, rooms, enrollments, roster, catalog, store,
		nil, zap.NewNop(), ExamConfig{SeatingSeed: 42})
	return svc, enrollments, store, catalog
}

func TestExamServiceGenerateSchedulesEnrolledCourses(t *testing.T) {
	svc, _, store, _ := examFixture(t)

	resp, err := svc.Generate(context.Background(), dto.GenerateExamsRequest{StartDate: "2026-03-02"})
	require.NoError(t, err)

	require.Equal(t, 2, resp.CreatedExams)
	require.Len(t, resp.Exams, 2)

	// Larger course first, shared batch pushes the second to the next day.
	assert.Equal(t, "MA101", resp.Exams[0].CourseCode)
	assert.Equal(t, "2026-03-02", resp.Exams[0].Date)
	assert.Equal(t, "CS101", resp.Exams[1].CourseCode)
	assert.Equal(t, "2026-03-03", resp.Exams[1].Date)
	assert.Equal(t, "09:00", resp.Exams[0].StartTime)
	assert.Equal(t, "17:00", resp.Exams[0].EndTime)
	assert.False(t, resp.Exams[0].Fallback)
	assert.Len(t, store.exams, 2)
}

func TestExamServiceGenerateReplacesPreviousSchedule(t *testing.T) {
	svc, _, store, _ := examFixture(t)

	first, err := svc.Generate(context.Background(), dto.GenerateExamsRequest{StartDate: "2026-03-02"})
	require.NoError(t, err)
	second, err := svc.Generate(context.Background(), dto.GenerateExamsRequest{StartDate: "2026-04-06"})
	require.NoError(t, err)

	assert.Equal(t, first.CreatedExams, second.CreatedExams)
	assert.Len(t, store.exams, 2)
	for _, exam := range store.exams {
		assert.Equal(t, "2026-04", exam.Date.Format("2006-01"))
	}
}

func TestExamServiceGenerateRequiresEnrollments(t *testing.T) {
	svc, enrollments, _, _ := examFixture(t)
	enrollments.counts = map[string]int{}

	_, err := svc.Generate(context.Background(), dto.GenerateExamsRequest{StartDate: "2026-03-02"})
	require.Error(t, err)

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrMissingCatalog.Code, appErr.Code)
}

func TestExamServiceGenerateRejectsBadDate(t *testing.T) {
	svc, _, _, _ := examFixture(t)

	_, err := svc.Generate(context.Background(), dto.GenerateExamsRequest{StartDate: "02-03-2026"})
	require.Error(t, err)

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestExamServiceSeatingCommitsChart(t *testing.T) {
	svc, _, store, _ := examFixture(t)
	_, err := svc.Generate(context.Background(), dto.GenerateExamsRequest{StartDate: "2026-03-02"})
	require.NoError(t, err)

	var examID string
	for id, exam := range store.exams {
		if exam.CourseID == "c-2" {
			examID = id
		}
	}
	require.NotEmpty(t, examID)

	resp, err := svc.Seating(context.Background(), examID)
	require.NoError(t, err)

	assert.Equal(t, 6, resp.Seated)
	assert.Equal(t, 0, resp.Unseated)
	require.Len(t, resp.Rooms, 1)
	assert.Equal(t, "HALL-1", resp.Rooms[0].RoomCode)
	assert.Len(t, resp.Rooms[0].Seats, 6)
	assert.Len(t, store.seats[examID], 6)

	// No two students share a grid cell.
	cells := make(map[[2]int]struct{})
	for _, seat := range store.seats[examID] {
		key := [2]int{seat.RowIndex, seat.ColIndex}
		_, dup := cells[key]
		require.False(t, dup)
		cells[key] = struct{}{}
	}
}

func TestExamServiceSeatingReproducibleWithSeed(t *testing.T) {
	svc, _, store, _ := examFixture(t)
	_, err := svc.Generate(context.Background(), dto.GenerateExamsRequest{StartDate: "2026-03-02"})
	require.NoError(t, err)

	var examID string
	for id := range store.exams {
		examID = id
		break
	}

	first, err := svc.Seating(context.Background(), examID)
	require.NoError(t, err)
	second, err := svc.Seating(context.Background(), examID)
	require.NoError(t, err)

	assert.Equal(t, first.Rooms, second.Rooms)
}

func TestExamServiceSeatingRequiresAllocations(t *testing.T) {
	svc, _, store, _ := examFixture(t)
	store.exams["exam-x"] = &models.Exam{ID: "exam-x", CourseID: "c-1"}

	_, err := svc.Seating(context.Background(), "exam-x")
	require.Error(t, err)

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrPreconditionFailed.Code, appErr.Code)
}

func TestExamServiceSeatingUnknownExam(t *testing.T) {
	svc, _, _, _ := examFixture(t)

	_, err := svc.Seating(context.Background(), "exam-missing")
	require.Error(t, err)

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestExamServiceInvigilationRoundRobin(t *testing.T) {
	svc, _, store, _ := examFixture(t)
	_, err := svc.Generate(context.Background(), dto.GenerateExamsRequest{StartDate: "2026-03-02"})
	require.NoError(t, err)

	var examID string
	for id := range store.exams {
		examID = id
		break
	}

	resp, err := svc.Invigilation(context.Background(), examID)
	require.NoError(t, err)

	require.Len(t, resp.Duties, 1)
	assert.Equal(t, "p-1", resp.Duties[0].ProfessorID)
	assert.Equal(t, "Rao", resp.Duties[0].ProfessorName)
	assert.Equal(t, "HALL-1", resp.Duties[0].RoomCode)
	assert.Len(t, store.duties[examID], 1)
}

func TestExamServiceInvigilationRequiresProfessors(t *testing.T) {
	svc, _, store, _ := examFixture(t)
	store.exams["exam-x"] = &models.Exam{ID: "exam-x", CourseID: "c-1"}
	svc.professors = &professorRosterStub{}

	_, err := svc.Invigilation(context.Background(), "exam-x")
	require.Error(t, err)

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrMissingCatalog.Code, appErr.Code)
}

func TestExamServiceListJoinsCourses(t *testing.T) {
	svc, _, _, _ := examFixture(t)
	_, err := svc.Generate(context.Background(), dto.GenerateExamsRequest{StartDate: "2026-03-02"})
	require.NoError(t, err)

	exams, err := svc.List(context.Background())
	require.NoError(t, err)

	require.Len(t, exams, 2)
	codes := []string{exams[0].CourseCode, exams[1].CourseCode}
	assert.ElementsMatch(t, []string{"CS101", "MA101"}, codes)
	for _, e := range exams {
		assert.NotEmpty(t, e.CourseName)
		assert.Positive(t, e.Enrolled)
	}
}

func TestExamServiceAllocationsJoinsRooms(t *testing.T) {
	svc, _, _, _ := examFixture(t)
	resp, err := svc.Generate(context.Background(), dto.GenerateExamsRequest{StartDate: "2026-03-02"})
	require.NoError(t, err)
	examID := resp.Exams[0].ID

	allocations, err := svc.Allocations(context.Background(), examID)
	require.NoError(t, err)

	require.Len(t, allocations, 1)
	assert.Equal(t, "HALL-1", allocations[0].RoomCode)
	assert.Equal(t, 100, allocations[0].Capacity)
	assert.Equal(t, resp.Exams[0].Enrolled, allocations[0].Assigned)
}

func TestExamServiceAllocationsUnknownExam(t *testing.T) {
	svc, _, _, _ := examFixture(t)

	_, err := svc.Allocations(context.Background(), "ghost")
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestExamServiceDutiesReadsCommittedAssignments(t *testing.T) {
	svc, _, _, _ := examFixture(t)
	resp, err := svc.Generate(context.Background(), dto.GenerateExamsRequest{StartDate: "2026-03-02"})
	require.NoError(t, err)
	examID := resp.Exams[0].ID

	_, err = svc.Invigilation(context.Background(), examID)
	require.NoError(t, err)

	duties, err := svc.Duties(context.Background(), examID)
	require.NoError(t, err)

	require.Len(t, duties.Duties, 1)
	assert.Equal(t, "HALL-1", duties.Duties[0].RoomCode)
	assert.NotEmpty(t, duties.Duties[0].ProfessorName)
}

func TestExamServiceDutiesEmptyBeforeAssignment(t *testing.T) {
	svc, _, _, _ := examFixture(t)
	resp, err := svc.Generate(context.Background(), dto.GenerateExamsRequest{StartDate: "2026-03-02"})
	require.NoError(t, err)
	examID := resp.Exams[0].ID

	duties, err := svc.Duties(context.Background(), examID)
	require.NoError(t, err)
	assert.Empty(t, duties.Duties)
}
