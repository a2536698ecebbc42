package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-timetable-api/internal/dto"
	"github.com/noah-isme/campus-timetable-api/internal/models"
	"github.com/noah-isme/campus-timetable-api/internal/scheduling"
	appErrors "github.com/noah-isme/campus-timetable-api/pkg/errors"
)

type catalogStub struct {
	courses     []models.Course
	slots       []models.Slot
	rooms       []models.Room
	profWindows []models.ProfessorAvailability
	roomWindows []models.RoomAvailability
	blackouts   []models.BlackoutWindow
	sections    []string
}

func (c *catalogStub) ListAllWithInstructors(context.Context) ([]models.Course, error) {
	return c.courses, nil
}

func (c *catalogStub) ListAll(context.Context) ([]models.Slot, error) { return c.slots, nil }

func (c *catalogStub) ListProfessorWindows(context.Context) ([]models.ProfessorAvailability, error) {
	return c.profWindows, nil
}

func (c *catalogStub) ListRoomWindows(context.Context) ([]models.RoomAvailability, error) {
	return c.roomWindows, nil
}

func (c *catalogStub) ListBlackouts(context.Context) ([]models.BlackoutWindow, error) {
	return c.blackouts, nil
}

func (c *catalogStub) DistinctSections(context.Context) ([]string, error) { return c.sections, nil }

// roomCatalogStub separates the room reader because catalogStub's ListAll
// already serves slots.
type roomCatalogStub struct {
	rooms []models.Room
}

func (r *roomCatalogStub) ListAll(context.Context) ([]models.Room, error) { return r.rooms, nil }

type timetableStoreStub struct {
	timetables map[string]*models.Timetable
	touched    int
}

func newTimetableStoreStub(ids ...string) *timetableStoreStub {
	s := &timetableStoreStub{timetables: make(map[string]*models.Timetable)}
	for _, id := range ids {
		s.timetables[id] = &models.Timetable{ID: id, Name: "Semester " + id, CreatedAt: time.Now()}
	}
	return s
}

func (s *timetableStoreStub) List(context.Context) ([]models.Timetable, error) {
	out := make([]models.Timetable, 0, len(s.timetables))
	for _, t := range s.timetables {
		out = append(out, *t)
	}
	return out, nil
}

func (s *timetableStoreStub) FindByID(_ context.Context, id string) (*models.Timetable, error) {
	t, ok := s.timetables[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return t, nil
}

func (s *timetableStoreStub) Create(_ context.Context, t *models.Timetable) error {
	if t.ID == "" {
		t.ID = "tt-new"
	}
	s.timetables[t.ID] = t
	return nil
}

func (s *timetableStoreStub) Touch(_ context.Context, id string) error {
	s.touched++
	return nil
}

func (s *timetableStoreStub) Delete(_ context.Context, id string) error {
	if _, ok := s.timetables[id]; !ok {
		return sql.ErrNoRows
	}
	delete(s.timetables, id)
	return nil
}

// sessionStoreStub backs Begin with sqlmock so the commit path exercises a
// real *sqlx.Tx; the bulk operations record their input instead of
// touching it.
type sessionStoreStub struct {
	db        *sqlx.DB
	mock      sqlmock.Sqlmock
	committed []models.ClassSession
	deleted   int
	count     int
	torn      []string
	details   []models.SessionDetail
}

func newSessionStoreStub(t *testing.T) *sessionStoreStub {
	t.Helper()
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = raw.Close() })
	mock.MatchExpectationsInOrder(false)
	return &sessionStoreStub{db: sqlx.NewDb(raw, "sqlmock"), mock: mock}
}

func (s *sessionStoreStub) Begin(ctx context.Context) (*sqlx.Tx, error) {
	s.mock.ExpectBegin()
	s.mock.ExpectCommit()
	s.mock.ExpectRollback()
	return s.db.BeginTxx(ctx, nil)
}

func (s *sessionStoreStub) DeleteByTimetableTx(_ context.Context, _ *sqlx.Tx, _ string) (int, error) {
	removed := len(s.committed)
	s.committed = nil
	return removed, nil
}

func (s *sessionStoreStub) BulkCreateTx(_ context.Context, _ *sqlx.Tx, sessions []models.ClassSession) error {
	s.committed = append(s.committed, sessions...)
	return nil
}

func (s *sessionStoreStub) DeleteByTimetable(_ context.Context, _ string) (int, error) {
	removed := len(s.committed)
	s.committed = nil
	s.deleted += removed
	return removed, nil
}

func (s *sessionStoreStub) CountByTimetable(context.Context, string) (int, error) {
	if s.count > 0 {
		return s.count, nil
	}
	return len(s.committed), nil
}

func (s *sessionStoreStub) DeleteByIDs(_ context.Context, ids []string) (int, error) {
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	var kept []models.SessionDetail
	for _, d := range s.details {
		if _, gone := drop[d.ID]; !gone {
			kept = append(kept, d)
		}
	}
	removed := len(s.details) - len(kept)
	s.details = kept
	s.torn = append(s.torn, ids...)
	return removed, nil
}

func (s *sessionStoreStub) ListDetails(_ context.Context, _ string, section string, day *int) ([]models.SessionDetail, error) {
	var out []models.SessionDetail
	for _, d := range s.details {
		if section != "" && d.Section != section {
			continue
		}
		if day != nil && d.DayOfWeek != *day {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

type cacheStub struct {
	store map[string][]byte
}

func (c *cacheStub) Get(_ context.Context, key string, dest interface{}) error {
	payload, ok := c.store[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(payload, dest)
}

func (c *cacheStub) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	if c.store == nil {
		c.store = make(map[string][]byte)
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.store[key] = payload
	return nil
}

func (c *cacheStub) DeleteByPattern(_ context.Context, _ string) error {
	c.store = nil
	return nil
}

type observerStub struct {
	statuses  []string
	conflicts int
}

func (o *observerStub) ObserveGeneration(status string, conflicts int, _ time.Duration) {
	o.statuses = append(o.statuses, status)
	o.conflicts += conflicts
}

func workingWeek(professorID string) []models.ProfessorAvailability {
	windows := make([]models.ProfessorAvailability, 0, 5)
	for day := 0; day < 5; day++ {
		windows = append(windows, models.ProfessorAvailability{
			ProfessorID: professorID, DayOfWeek: day, StartTime: "08:00", EndTime: "18:00",
		})
	}
	return windows
}

func openRoomWeek(roomID string) []models.RoomAvailability {
	windows := make([]models.RoomAvailability, 0, 5)
	for day := 0; day < 5; day++ {
		windows = append(windows, models.RoomAvailability{
			RoomID: roomID, DayOfWeek: day, StartTime: "08:00", EndTime: "18:00",
		})
	}
	return windows
}

// committedWeek mirrors the detail rows a successful fixture run leaves
// behind: one CS101 session per slot, all taught by p-1 in r-1.
func committedWeek(timetableID string) []models.SessionDetail {
	details := make([]models.SessionDetail, 0, 3)
	for day := 0; day < 3; day++ {
		details = append(details, models.SessionDetail{
			ID:           fmt.Sprintf("cs-%d", day+1),
			TimetableID:  timetableID,
			CourseID:     "c-1",
			CourseCode:   "CS101",
			Section:      "A",
			DayOfWeek:    day,
			StartTime:    "09:00",
			EndTime:      "10:00",
			RoomID:       "r-1",
			InstructorID: "p-1",
		})
	}
	return details
}

func serviceFixture(t *testing.T) (*TimetableService, *catalogStub, *sessionStoreStub, *timetableStoreStub, *observerStub) {
	t.Helper()
	catalog := &catalogStub{
		courses: []models.Course{
			{ID: "c-1", Code: "CS101", Name: "Programming", LectureHours: 2, TutorialHours: 1, InstructorIDs: []string{"p-1"}},
		},
		slots: []models.Slot{
			{ID: "s-1", Code: "MON-1", DayOfWeek: 0, StartTime: "09:00", EndTime: "10:00"},
			{ID: "s-2", Code: "TUE-1", DayOfWeek: 1, StartTime: "09:00", EndTime: "10:00"},
			{ID: "s-3", Code: "WED-1", DayOfWeek: 2, StartTime: "09:00", EndTime: "10:00"},
		},
		profWindows: workingWeek("p-1"),
		roomWindows: openRoomWeek("r-1"),
		sections:    []string{"A"},
	}
	rooms := &roomCatalogStub{rooms: []models.Room{
		{ID: "r-1", Code: "CR-101", Capacity: 60, Kind: models.RoomKindClassroom},
	}}
	timetables := newTimetableStoreStub("tt-1")
	sessions := newSessionStoreStub(t)
	observer := &observerStub{}

	svc := NewTimetableService(
		catalog, catalog, rooms, catalog, catalog,
		timetables, sessions, &cacheStub{}, observer,
		nil, zap.NewNop(),
		TimetableConfig{CacheEnabled: true},
	)
	return svc, catalog, sessions, timetables, observer
}

func TestTimetableServiceGenerateCommitsSessions(t *testing.T) {
	svc, _, sessions, timetables, observer := serviceFixture(t)

	resp, err := svc.Generate(context.Background(), "tt-1")
	require.NoError(t, err)

	assert.Equal(t, scheduling.StatusSuccess, resp.Status)
	assert.Equal(t, 3, resp.CreatedSessions)
	assert.Equal(t, 1, resp.SectionsProcessed)
	assert.Empty(t, resp.Conflicts)
	assert.Len(t, sessions.committed, 3)
	assert.Equal(t, 1, timetables.touched)
	assert.Equal(t, []string{scheduling.StatusSuccess}, observer.statuses)

	for _, committed := range sessions.committed {
		assert.Equal(t, "tt-1", committed.TimetableID)
		assert.Equal(t, "p-1", committed.InstructorID)
	}
}

func TestTimetableServiceGeneratePartialReportsConflicts(t *testing.T) {
	svc, catalog, _, _, observer := serviceFixture(t)
	// Only one usable slot for three required hours.
	catalog.slots = catalog.slots[:1]

	resp, err := svc.Generate(context.Background(), "tt-1")
	require.NoError(t, err)

	assert.Equal(t, scheduling.StatusPartial, resp.Status)
	assert.Equal(t, 1, resp.CreatedSessions)
	assert.NotEmpty(t, resp.Conflicts)
	assert.Positive(t, observer.conflicts)
}

func TestTimetableServiceGenerateMissingCatalog(t *testing.T) {
	svc, catalog, sessions, _, _ := serviceFixture(t)
	catalog.courses = nil

	resp, err := svc.Generate(context.Background(), "tt-1")
	require.NoError(t, err)

	assert.Equal(t, scheduling.StatusError, resp.Status)
	assert.Equal(t, "missing essential data (courses, slots, or rooms)", resp.Message)
	assert.Empty(t, sessions.committed)
}

func TestTimetableServiceGenerateUnknownTimetable(t *testing.T) {
	svc, _, _, _, _ := serviceFixture(t)

	_, err := svc.Generate(context.Background(), "tt-missing")
	require.Error(t, err)

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestTimetableServiceRescheduleNoChanges(t *testing.T) {
	svc, _, sessions, _, _ := serviceFixture(t)
	sessions.details = committedWeek("tt-1")

	resp, err := svc.Reschedule(context.Background(), "tt-1")
	require.NoError(t, err)

	assert.Equal(t, 0, resp.Rescheduled)
	assert.Equal(t, scheduling.StatusNoChanges, resp.Status)
	assert.Empty(t, sessions.torn)
	assert.Empty(t, sessions.committed)
	assert.Len(t, sessions.details, 3, "valid sessions stay committed")
}

func TestTimetableServiceRescheduleRebuildsAfterWindowRemoval(t *testing.T) {
	svc, catalog, sessions, _, _ := serviceFixture(t)
	_, err := svc.Generate(context.Background(), "tt-1")
	require.NoError(t, err)
	require.Len(t, sessions.committed, 3)
	sessions.details = committedWeek("tt-1")

	// The room loses its Monday window; a fourth slot keeps a full
	// regeneration possible.
	catalog.roomWindows = catalog.roomWindows[1:]
	catalog.slots = append(catalog.slots, models.Slot{
		ID: "s-4", Code: "THU-1", DayOfWeek: 3, StartTime: "09:00", EndTime: "10:00",
	})

	resp, err := svc.Reschedule(context.Background(), "tt-1")
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Rescheduled, "one (course, section) pair affected")
	assert.Equal(t, scheduling.StatusSuccess, resp.Status)
	assert.Equal(t, 3, resp.CreatedSessions)
	assert.Equal(t, []string{"cs-1"}, sessions.torn)
	assert.Len(t, sessions.committed, 3)
}

func TestTimetableServiceRescheduleTearsDownWhenInstructorUnavailable(t *testing.T) {
	svc, catalog, sessions, _, _ := serviceFixture(t)
	_, err := svc.Generate(context.Background(), "tt-1")
	require.NoError(t, err)
	require.Len(t, sessions.committed, 3)
	sessions.details = committedWeek("tt-1")

	catalog.profWindows = nil

	resp, err := svc.Reschedule(context.Background(), "tt-1")
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Rescheduled)
	assert.Equal(t, scheduling.StatusPartial, resp.Status)
	assert.NotEmpty(t, resp.Conflicts)
	assert.Len(t, sessions.torn, 3, "every invalidated session is deleted")
	assert.Empty(t, sessions.details)
	assert.Empty(t, sessions.committed, "nothing placeable without instructor windows")
}

func TestTimetableServiceRescheduleUnknownTimetable(t *testing.T) {
	svc, _, _, _, _ := serviceFixture(t)

	_, err := svc.Reschedule(context.Background(), "tt-missing")
	require.Error(t, err)

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestTimetableServiceOptimizeKeepsBetterSchedule(t *testing.T) {
	svc, _, sessions, _, _ := serviceFixture(t)
	sessions.count = 1

	resp, err := svc.Optimize(context.Background(), "tt-1")
	require.NoError(t, err)

	assert.True(t, resp.Improved)
	assert.Equal(t, 1, resp.PreviousCount)
	assert.Equal(t, 3, resp.CreatedSessions)
	assert.Len(t, sessions.committed, 3)
}

func TestTimetableServiceOptimizeKeepsCurrentWhenNotBetter(t *testing.T) {
	svc, _, sessions, timetables, _ := serviceFixture(t)
	sessions.count = 5

	resp, err := svc.Optimize(context.Background(), "tt-1")
	require.NoError(t, err)

	assert.False(t, resp.Improved)
	assert.Equal(t, 5, resp.PreviousCount)
	assert.Equal(t, 5, resp.CreatedSessions)
	assert.Zero(t, timetables.touched)
}

func TestTimetableServiceClear(t *testing.T) {
	svc, _, sessions, _, _ := serviceFixture(t)
	_, err := svc.Generate(context.Background(), "tt-1")
	require.NoError(t, err)
	require.Len(t, sessions.committed, 3)

	resp, err := svc.Clear(context.Background(), "tt-1")
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Removed)
	assert.Empty(t, sessions.committed)
}

func TestTimetableServiceDataGroupsByDayAndCaches(t *testing.T) {
	svc, _, sessions, _, _ := serviceFixture(t)
	sessions.details = []models.SessionDetail{
		{ID: "cs-1", CourseCode: "CS101", Section: "A", DayOfWeek: 0, StartTime: "09:00", EndTime: "10:00", RoomCode: "CR-101", InstructorName: "Rao"},
		{ID: "cs-2", CourseCode: "CS101", Section: "A", DayOfWeek: 1, StartTime: "09:00", EndTime: "10:00", RoomCode: "CR-101", InstructorName: "Rao", IsTutorial: true},
	}

	resp, err := svc.Data(context.Background(), "tt-1", dto.TimetableDataQuery{})
	require.NoError(t, err)

	require.Len(t, resp.Days["Mon"], 1)
	require.Len(t, resp.Days["Tue"], 1)
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, "Lecture", resp.Days["Mon"][0].SessionType)
	assert.Equal(t, "Tutorial", resp.Days["Tue"][0].SessionType)

	// Second read must come from cache even after the store changes.
	sessions.details = nil
	cached, err := svc.Data(context.Background(), "tt-1", dto.TimetableDataQuery{})
	require.NoError(t, err)
	assert.Equal(t, 2, cached.Total)
}

func TestTimetableServiceDataSectionFilter(t *testing.T) {
	svc, _, sessions, _, _ := serviceFixture(t)
	sessions.details = []models.SessionDetail{
		{ID: "cs-1", Section: "A", DayOfWeek: 0, StartTime: "09:00", EndTime: "10:00"},
		{ID: "cs-2", Section: "B", DayOfWeek: 0, StartTime: "10:00", EndTime: "11:00"},
	}

	resp, err := svc.Data(context.Background(), "tt-1", dto.TimetableDataQuery{Section: "B"})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, "cs-2", resp.Days["Mon"][0].ID)
}

func TestTimetableServiceStatistics(t *testing.T) {
	svc, _, sessions, _, _ := serviceFixture(t)
	sessions.details = []models.SessionDetail{
		{DayOfWeek: 0, RoomCode: "CR-101", InstructorName: "Rao"},
		{DayOfWeek: 0, RoomCode: "CR-101", InstructorName: "Rao", IsTutorial: true},
		{DayOfWeek: 2, RoomCode: "LAB-1", InstructorName: "Iyer", IsPractical: true},
	}

	stats, err := svc.Statistics(context.Background(), "tt-1")
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalSessions)
	assert.Equal(t, 1, stats.Lectures)
	assert.Equal(t, 1, stats.Tutorials)
	assert.Equal(t, 1, stats.Practicals)
	assert.Equal(t, 2, stats.SessionsPerDay["Mon"])
	assert.Equal(t, 2, stats.RoomUtilization["CR-101"])
	assert.Equal(t, 1, stats.InstructorLoad["Iyer"])
}

func TestTimetableServiceConflictsAudit(t *testing.T) {
	svc, _, sessions, _, _ := serviceFixture(t)
	sessions.details = []models.SessionDetail{
		{CourseCode: "CS101", InstructorID: "p-1", InstructorName: "Rao", RoomID: "r-1", RoomCode: "CR-101", Section: "A", DayOfWeek: 0, StartTime: "09:00", EndTime: "10:00"},
		{CourseCode: "MA101", InstructorID: "p-1", InstructorName: "Rao", RoomID: "r-2", RoomCode: "CR-102", Section: "B", DayOfWeek: 0, StartTime: "09:30", EndTime: "10:30"},
	}

	result, err := svc.Conflicts(context.Background(), "tt-1")
	require.NoError(t, err)

	assert.Equal(t, scheduling.AuditConflictsFound, result.Status)
	assert.NotEmpty(t, result.Conflicts)
}

func TestTimetableServiceConflictsClean(t *testing.T) {
	svc, _, sessions, _, _ := serviceFixture(t)
	sessions.details = []models.SessionDetail{
		{CourseCode: "CS101", InstructorID: "p-1", RoomID: "r-1", Section: "A", DayOfWeek: 0, StartTime: "09:00", EndTime: "10:00"},
		{CourseCode: "MA101", InstructorID: "p-2", RoomID: "r-2", Section: "A", DayOfWeek: 0, StartTime: "09:00", EndTime: "10:00"},
	}

	result, err := svc.Conflicts(context.Background(), "tt-1")
	require.NoError(t, err)

	assert.Equal(t, scheduling.AuditNoConflicts, result.Status)
	assert.Empty(t, result.Conflicts)
}

func TestTimetableServiceSectionsFallback(t *testing.T) {
	svc, catalog, _, _, _ := serviceFixture(t)
	catalog.sections = nil

	resp, err := svc.Sections(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, resp.Sections)
}

func TestTimetableServiceCreateValidatesDates(t *testing.T) {
	svc, _, _, _, _ := serviceFixture(t)

	bad := "31-01-2026"
	_, err := svc.Create(context.Background(), dto.CreateTimetableRequest{Name: "Odd 2026", EffectiveFrom: &bad})
	require.Error(t, err)

	good := "2026-01-31"
	created, err := svc.Create(context.Background(), dto.CreateTimetableRequest{Name: "Odd 2026", EffectiveFrom: &good})
	require.NoError(t, err)
	require.NotNil(t, created.EffectiveFrom)
	assert.Equal(t, good, created.EffectiveFrom.Format("2006-01-02"))
}
