package service

import (
	"context"
	"database/sql"
	"errors"
	"hash/fnv"
	"math/rand"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-timetable-api/internal/dto"
	"github.com/noah-isme/campus-timetable-api/internal/models"
	"github.com/noah-isme/campus-timetable-api/internal/scheduling"
	appErrors "github.com/noah-isme/campus-timetable-api/pkg/errors"
)

type enrollmentReader interface {
	CountByCourse(ctx context.Context) (map[string]int, error)
	ListEnrolledByCourse(ctx context.Context, courseID string) ([]models.EnrolledStudent, error)
	ListAllEnrolled(ctx context.Context) ([]models.EnrolledStudent, error)
}

type professorRoster interface {
	ListAll(ctx context.Context) ([]models.Professor, error)
}

type roomWindowReader interface {
	ListRoomWindows(ctx context.Context) ([]models.RoomAvailability, error)
}

type examStore interface {
	Begin(ctx context.Context) (*sqlx.Tx, error)
	DeleteAllTx(ctx context.Context, tx *sqlx.Tx) error
	CreateTx(ctx context.Context, tx *sqlx.Tx, exam *models.Exam, allocations []models.ExamRoomAllocation) error
	FindByID(ctx context.Context, id string) (*models.Exam, error)
	ListAll(ctx context.Context) ([]models.Exam, error)
	ListAllocations(ctx context.Context, examID string) ([]models.ExamRoomAllocation, error)
	ReplaceSeating(ctx context.Context, examID string, seats []models.SeatingAssignment) error
	ListSeatingDetails(ctx context.Context, examID string) ([]models.SeatingDetail, error)
	ReplaceDuties(ctx context.Context, examID string, duties []models.InvigilationDuty) error
	ListDuties(ctx context.Context, examID string) ([]models.InvigilationDuty, error)
}

// ExamConfig tunes seating randomisation. A fixed SeatingSeed makes
// charts reproducible across runs; zero falls back to wall-clock seeding.
type ExamConfig struct {
	SeatingSeed int64
}

// ExamService orchestrates exam scheduling, seating placement, and
// invigilation duty assignment.
type ExamService struct {
	courses     courseCatalogReader
	rooms       roomCatalogReader
	enrollments enrollmentReader
	professors  professorRoster
	windows     roomWindowReader
	exams       examStore
	validator   *validator.Validate
	logger      *zap.Logger
	config      ExamConfig

	// generateMu serialises global exam regeneration; examLocks serialise
	// per-exam seating and duty replacement.
	generateMu sync.Mutex
	examLocks  sync.Map
}

// NewExamService wires the exam orchestrator.
func NewExamService(
	courses courseCatalogReader,
	rooms roomCatalogReader,
	enrollments enrollmentReader,
	professors professorRoster,
	windows roomWindowReader,
	exams examStore,
	validate *validator.Validate,
	logger *zap.Logger,
	cfg ExamConfig,
) *ExamService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExamService{
		courses:     courses,
		rooms:       rooms,
		enrollments: enrollments,
		professors:  professors,
		windows:     windows,
		exams:       exams,
		validator:   validate,
		logger:      logger,
		config:      cfg,
	}
}

func (s *ExamService) lockFor(examID string) *sync.Mutex {
	mu, _ := s.examLocks.LoadOrStore(examID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// Generate replaces the entire exam schedule. Day offsets produced by the
// planner are anchored to the requested start date.
func (s *ExamService) Generate(ctx context.Context, req dto.GenerateExamsRequest) (*dto.GenerateExamsResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid exam generation payload")
	}
	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid start date")
	}

	s.generateMu.Lock()
	defer s.generateMu.Unlock()

	courses, err := s.courses.ListAllWithInstructors(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load courses")
	}
	counts, err := s.enrollments.CountByCourse(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count enrollments")
	}
	enrolled, err := s.enrollments.ListAllEnrolled(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load enrollments")
	}
	rooms, err := s.rooms.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load rooms")
	}
	windows, err := s.windows.ListRoomWindows(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load room availability")
	}

	batchesByCourse := make(map[string][]string)
	for _, e := range enrolled {
		if e.Batch == "" {
			continue
		}
		if !lo.Contains(batchesByCourse[e.CourseID], e.Batch) {
			batchesByCourse[e.CourseID] = append(batchesByCourse[e.CourseID], e.Batch)
		}
	}

	examCourses := make([]scheduling.ExamCourse, 0, len(courses))
	courseByID := make(map[string]models.Course, len(courses))
	for _, c := range courses {
		courseByID[c.ID] = c
		if counts[c.ID] == 0 {
			continue
		}
		examCourses = append(examCourses, scheduling.ExamCourse{
			ID:       c.ID,
			Code:     c.Code,
			Enrolled: counts[c.ID],
			Batches:  batchesByCourse[c.ID],
		})
	}
	if len(examCourses) == 0 || len(rooms) == 0 {
		return nil, appErrors.Clone(appErrors.ErrMissingCatalog, "no enrolled courses or rooms to schedule exams for")
	}

	schedRooms := make([]scheduling.Room, 0, len(rooms))
	for _, rm := range rooms {
		schedRooms = append(schedRooms, scheduling.Room{ID: rm.ID, Code: rm.Code, Capacity: rm.Capacity, Kind: scheduling.RoomKind(rm.Kind)})
	}
	schedWindows := make(map[string][]scheduling.Window)
	for _, w := range windows {
		start, end, err := parseInterval(w.StartTime, w.EndTime)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "corrupt room availability window")
		}
		schedWindows[w.RoomID] = append(schedWindows[w.RoomID], scheduling.Window{Day: w.DayOfWeek, Start: start, End: end})
	}

	plan := scheduling.PlanExams(examCourses, schedRooms, schedWindows)

	tx, err := s.exams.Begin(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open transaction")
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := s.exams.DeleteAllTx(ctx, tx); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to replace exams")
	}

	summaries := make([]dto.ExamSummary, 0, len(plan.Exams))
	for _, planned := range plan.Exams {
		exam := &models.Exam{
			CourseID:  planned.CourseID,
			Date:      startDate.AddDate(0, 0, planned.Day),
			StartTime: scheduling.FormatClock(planned.Start),
			EndTime:   scheduling.FormatClock(planned.End),
		}
		allocations := make([]models.ExamRoomAllocation, 0, len(planned.Allocations))
		for _, a := range planned.Allocations {
			allocations = append(allocations, models.ExamRoomAllocation{RoomID: a.RoomID, CapacityUsed: a.CapacityUsed})
		}
		if err := s.exams.CreateTx(ctx, tx, exam, allocations); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to insert exam")
		}

		course := courseByID[planned.CourseID]
		summaries = append(summaries, dto.ExamSummary{
			ID:         exam.ID,
			CourseID:   planned.CourseID,
			CourseCode: course.Code,
			CourseName: course.Name,
			Date:       exam.Date.Format("2006-01-02"),
			StartTime:  exam.StartTime,
			EndTime:    exam.EndTime,
			Enrolled:   counts[planned.CourseID],
			Fallback:   planned.Fallback,
		})
	}

	if err := tx.Commit(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to commit exams")
	}
	committed = true

	s.logger.Info("exam schedule generated", zap.Int("exams", len(summaries)))

	return &dto.GenerateExamsResponse{
		CreatedExams: len(summaries),
		Exams:        summaries,
		Status:       scheduling.StatusSuccess,
	}, nil
}

// List returns the committed exam schedule with joined course identity.
func (s *ExamService) List(ctx context.Context) ([]dto.ExamSummary, error) {
	exams, err := s.exams.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list exams")
	}
	courses, err := s.courses.ListAllWithInstructors(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load courses")
	}
	counts, err := s.enrollments.CountByCourse(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count enrollments")
	}
	courseByID := lo.KeyBy(courses, func(c models.Course) string { return c.ID })

	summaries := make([]dto.ExamSummary, 0, len(exams))
	for _, e := range exams {
		course := courseByID[e.CourseID]
		summaries = append(summaries, dto.ExamSummary{
			ID:         e.ID,
			CourseID:   e.CourseID,
			CourseCode: course.Code,
			CourseName: course.Name,
			Date:       e.Date.Format("2006-01-02"),
			StartTime:  e.StartTime,
			EndTime:    e.EndTime,
			Enrolled:   counts[e.CourseID],
		})
	}
	return summaries, nil
}

// Seating builds and commits the mixed seating chart for one exam.
func (s *ExamService) Seating(ctx context.Context, examID string) (*dto.SeatingResponse, error) {
	mu := s.lockFor(examID)
	mu.Lock()
	defer mu.Unlock()

	exam, err := s.findExam(ctx, examID)
	if err != nil {
		return nil, err
	}

	allocations, err := s.exams.ListAllocations(ctx, examID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load exam room allocations")
	}
	if len(allocations) == 0 {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "exam has no room allocations")
	}

	students, err := s.enrollments.ListEnrolledByCourse(ctx, exam.CourseID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load enrolled students")
	}

	rooms, err := s.rooms.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load rooms")
	}
	capacityByRoom := make(map[string]int, len(rooms))
	for _, rm := range rooms {
		capacityByRoom[rm.ID] = rm.Capacity
	}

	seatingRooms := make([]scheduling.SeatingRoom, 0, len(allocations))
	for _, a := range allocations {
		seatingRooms = append(seatingRooms, scheduling.SeatingRoom{
			RoomID:       a.RoomID,
			RoomCapacity: capacityByRoom[a.RoomID],
			CapacityUsed: a.CapacityUsed,
		})
	}

	studentIDs := make([]string, 0, len(students))
	for _, st := range students {
		studentIDs = append(studentIDs, st.StudentID)
	}

	result := scheduling.PlanSeating(seatingRooms, studentIDs, rand.New(rand.NewSource(s.seatingSeed(examID))))

	seats := make([]models.SeatingAssignment, 0, len(result.Seats))
	for _, seat := range result.Seats {
		seats = append(seats, models.SeatingAssignment{
			RoomID:    seat.RoomID,
			StudentID: seat.StudentID,
			RowIndex:  seat.Row,
			ColIndex:  seat.Col,
		})
	}
	if err := s.exams.ReplaceSeating(ctx, examID, seats); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to commit seating")
	}

	charts, err := s.seatingCharts(ctx, examID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("seating placed",
		zap.String("exam_id", examID),
		zap.Int("seated", result.Seated),
		zap.Int("unseated", result.Unseated))

	return &dto.SeatingResponse{
		ExamID:   examID,
		Seated:   result.Seated,
		Unseated: result.Unseated,
		Rooms:    charts,
	}, nil
}

// SeatingChart returns the committed seating chart without replanning.
func (s *ExamService) SeatingChart(ctx context.Context, examID string) (*dto.SeatingResponse, error) {
	if _, err := s.findExam(ctx, examID); err != nil {
		return nil, err
	}
	charts, err := s.seatingCharts(ctx, examID)
	if err != nil {
		return nil, err
	}
	seated := 0
	for _, chart := range charts {
		seated += len(chart.Seats)
	}
	return &dto.SeatingResponse{ExamID: examID, Seated: seated, Rooms: charts}, nil
}

// Allocations returns the exam's committed room allocations with joined
// room codes and capacities.
func (s *ExamService) Allocations(ctx context.Context, examID string) ([]dto.AllocationView, error) {
	if _, err := s.findExam(ctx, examID); err != nil {
		return nil, err
	}
	allocations, err := s.exams.ListAllocations(ctx, examID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load exam room allocations")
	}
	rooms, err := s.rooms.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load rooms")
	}
	roomByID := make(map[string]models.Room, len(rooms))
	for _, rm := range rooms {
		roomByID[rm.ID] = rm
	}

	views := make([]dto.AllocationView, 0, len(allocations))
	for _, a := range allocations {
		rm := roomByID[a.RoomID]
		views = append(views, dto.AllocationView{
			RoomID:   a.RoomID,
			RoomCode: rm.Code,
			Capacity: rm.Capacity,
			Assigned: a.CapacityUsed,
		})
	}
	return views, nil
}

// Duties returns the exam's committed invigilation duties without
// reassigning.
func (s *ExamService) Duties(ctx context.Context, examID string) (*dto.InvigilationResponse, error) {
	if _, err := s.findExam(ctx, examID); err != nil {
		return nil, err
	}
	duties, err := s.exams.ListDuties(ctx, examID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load duties")
	}
	professors, err := s.professors.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load professors")
	}
	rooms, err := s.rooms.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load rooms")
	}
	nameByID := make(map[string]string, len(professors))
	for _, p := range professors {
		nameByID[p.ID] = p.Name
	}
	codeByRoom := make(map[string]string, len(rooms))
	for _, rm := range rooms {
		codeByRoom[rm.ID] = rm.Code
	}

	views := make([]dto.DutyView, 0, len(duties))
	for _, d := range duties {
		views = append(views, dto.DutyView{
			ProfessorID:   d.ProfessorID,
			ProfessorName: nameByID[d.ProfessorID],
			RoomID:        d.RoomID,
			RoomCode:      codeByRoom[d.RoomID],
		})
	}
	return &dto.InvigilationResponse{ExamID: examID, Duties: views}, nil
}

// Invigilation assigns professors to the exam's rooms round-robin and
// commits the duties.
func (s *ExamService) Invigilation(ctx context.Context, examID string) (*dto.InvigilationResponse, error) {
	mu := s.lockFor(examID)
	mu.Lock()
	defer mu.Unlock()

	if _, err := s.findExam(ctx, examID); err != nil {
		return nil, err
	}

	allocations, err := s.exams.ListAllocations(ctx, examID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load exam room allocations")
	}
	professors, err := s.professors.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load professors")
	}
	if len(professors) == 0 {
		return nil, appErrors.Clone(appErrors.ErrMissingCatalog, "no professors available for invigilation")
	}

	professorIDs := make([]string, 0, len(professors))
	nameByID := make(map[string]string, len(professors))
	for _, p := range professors {
		professorIDs = append(professorIDs, p.ID)
		nameByID[p.ID] = p.Name
	}
	roomIDs := make([]string, 0, len(allocations))
	for _, a := range allocations {
		roomIDs = append(roomIDs, a.RoomID)
	}

	assigned := scheduling.AssignInvigilators(professorIDs, roomIDs)
	duties := make([]models.InvigilationDuty, 0, len(assigned))
	for _, d := range assigned {
		duties = append(duties, models.InvigilationDuty{ProfessorID: d.ProfessorID, RoomID: d.RoomID})
	}
	if err := s.exams.ReplaceDuties(ctx, examID, duties); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to commit duties")
	}

	rooms, err := s.rooms.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load rooms")
	}
	codeByRoom := make(map[string]string, len(rooms))
	for _, rm := range rooms {
		codeByRoom[rm.ID] = rm.Code
	}

	views := make([]dto.DutyView, 0, len(duties))
	for _, d := range duties {
		views = append(views, dto.DutyView{
			ProfessorID:   d.ProfessorID,
			ProfessorName: nameByID[d.ProfessorID],
			RoomID:        d.RoomID,
			RoomCode:      codeByRoom[d.RoomID],
		})
	}
	return &dto.InvigilationResponse{ExamID: examID, Duties: views}, nil
}

func (s *ExamService) findExam(ctx context.Context, examID string) (*models.Exam, error) {
	exam, err := s.exams.FindByID(ctx, examID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "exam not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load exam")
	}
	return exam, nil
}

func (s *ExamService) seatingCharts(ctx context.Context, examID string) ([]dto.RoomSeatingChart, error) {
	details, err := s.exams.ListSeatingDetails(ctx, examID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load seating")
	}

	byRoom := make(map[string]*dto.RoomSeatingChart)
	var order []string
	for _, d := range details {
		chart, ok := byRoom[d.RoomID]
		if !ok {
			chart = &dto.RoomSeatingChart{RoomID: d.RoomID, RoomCode: d.RoomCode}
			byRoom[d.RoomID] = chart
			order = append(order, d.RoomID)
		}
		chart.Seats = append(chart.Seats, dto.SeatingCell{
			RollNumber:  d.RollNumber,
			StudentName: d.StudentName,
			Row:         d.RowIndex,
			Col:         d.ColIndex,
		})
	}

	// details arrive ordered by room code, so insertion order is stable.
	charts := make([]dto.RoomSeatingChart, 0, len(order))
	for _, roomID := range order {
		charts = append(charts, *byRoom[roomID])
	}
	return charts, nil
}

// seatingSeed derives a per-exam seed so distinct exams shuffle
// differently while one exam's chart stays reproducible.
func (s *ExamService) seatingSeed(examID string) int64 {
	if s.config.SeatingSeed == 0 {
		return time.Now().UnixNano()
	}
	h := fnv.New64a()
	_, _ = h.Write([]byte(examID))
	return s.config.SeatingSeed ^ int64(h.Sum64())
}
