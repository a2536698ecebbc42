package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-timetable-api/internal/dto"
	"github.com/noah-isme/campus-timetable-api/internal/models"
	appErrors "github.com/noah-isme/campus-timetable-api/pkg/errors"
)

type courseStore interface {
	List(ctx context.Context, search string, page, perPage int) ([]models.Course, int, error)
	FindByID(ctx context.Context, id string) (*models.Course, error)
	FindByCode(ctx context.Context, code string) (*models.Course, error)
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id string) error
}

type professorStore interface {
	List(ctx context.Context, search string, page, perPage int) ([]models.Professor, int, error)
	FindByID(ctx context.Context, id string) (*models.Professor, error)
	FindByEmail(ctx context.Context, email string) (*models.Professor, error)
	Create(ctx context.Context, professor *models.Professor) error
	Update(ctx context.Context, professor *models.Professor) error
	Delete(ctx context.Context, id string) error
}

type studentStore interface {
	List(ctx context.Context, search string, page, perPage int) ([]models.Student, int, error)
	FindByID(ctx context.Context, id string) (*models.Student, error)
	FindByRollNumber(ctx context.Context, rollNumber string) (*models.Student, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id string) error
}

type roomStore interface {
	List(ctx context.Context, search string, page, perPage int) ([]models.Room, int, error)
	FindByID(ctx context.Context, id string) (*models.Room, error)
	FindByCode(ctx context.Context, code string) (*models.Room, error)
	Create(ctx context.Context, room *models.Room) error
	Update(ctx context.Context, room *models.Room) error
	Delete(ctx context.Context, id string) error
}

type slotStore interface {
	ListAll(ctx context.Context) ([]models.Slot, error)
	FindByID(ctx context.Context, id string) (*models.Slot, error)
	Create(ctx context.Context, slot *models.Slot) error
	Update(ctx context.Context, slot *models.Slot) error
	Delete(ctx context.Context, id string) error
}

type availabilityStore interface {
	ListByProfessor(ctx context.Context, professorID string) ([]models.ProfessorAvailability, error)
	ReplaceProfessorWindows(ctx context.Context, professorID string, windows []models.ProfessorAvailability) error
	ListRoomWindows(ctx context.Context) ([]models.RoomAvailability, error)
	ReplaceRoomWindows(ctx context.Context, roomID string, windows []models.RoomAvailability) error
	ListBlackouts(ctx context.Context) ([]models.BlackoutWindow, error)
	CreateBlackout(ctx context.Context, blackout *models.BlackoutWindow) error
	DeleteBlackout(ctx context.Context, id string) error
}

type enrollmentStore interface {
	Enroll(ctx context.Context, courseID string, studentIDs []string) (int, error)
	Unenroll(ctx context.Context, courseID, studentID string) error
	ListEnrolledByCourse(ctx context.Context, courseID string) ([]models.EnrolledStudent, error)
}

// CatalogService covers CRUD for the scheduling inputs: courses,
// professors, students, rooms, slots, availability windows, blackouts,
// and enrollments.
type CatalogService struct {
	courses      courseStore
	professors   professorStore
	students     studentStore
	rooms        roomStore
	slots        slotStore
	availability availabilityStore
	enrollments  enrollmentStore
	validator    *validator.Validate
	logger       *zap.Logger
}

// NewCatalogService wires the catalog CRUD surface.
func NewCatalogService(
	courses courseStore,
	professors professorStore,
	students studentStore,
	rooms roomStore,
	slots slotStore,
	availability availabilityStore,
	enrollments enrollmentStore,
	validate *validator.Validate,
	logger *zap.Logger,
) *CatalogService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{
		courses:      courses,
		professors:   professors,
		students:     students,
		rooms:        rooms,
		slots:        slots,
		availability: availability,
		enrollments:  enrollments,
		validator:    validate,
		logger:       logger,
	}
}

func (s *CatalogService) paging(query dto.ListQuery) (int, int) {
	page := query.Page
	if page < 1 {
		page = 1
	}
	perPage := query.PerPage
	if perPage < 1 {
		perPage = 20
	}
	return page, perPage
}

// ListCourses pages through courses matching an optional search term.
func (s *CatalogService) ListCourses(ctx context.Context, query dto.ListQuery) ([]models.Course, *models.Pagination, error) {
	page, perPage := s.paging(query)
	courses, total, err := s.courses.List(ctx, query.Search, page, perPage)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
	}
	return courses, models.NewPagination(page, perPage, total), nil
}

// GetCourse loads one course with its instructor links.
func (s *CatalogService) GetCourse(ctx context.Context, id string) (*models.Course, error) {
	course, err := s.courses.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	return course, nil
}

// CreateCourse inserts a course; the code must be unused.
func (s *CatalogService) CreateCourse(ctx context.Context, req dto.CourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}
	existing, err := s.courses.FindByCode(ctx, req.Code)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to look up course")
	}
	if existing != nil {
		return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("course %s already exists", req.Code))
	}

	course := courseFromRequest(req)
	if err := s.courses.Create(ctx, course); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create course")
	}
	return course, nil
}

// UpdateCourse replaces a course's fields and instructor links.
func (s *CatalogService) UpdateCourse(ctx context.Context, id string, req dto.CourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}
	if _, err := s.GetCourse(ctx, id); err != nil {
		return nil, err
	}

	course := courseFromRequest(req)
	course.ID = id
	if err := s.courses.Update(ctx, course); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update course")
	}
	return course, nil
}

// DeleteCourse removes a course and, via cascade, its sessions, exams,
// and enrollments.
func (s *CatalogService) DeleteCourse(ctx context.Context, id string) error {
	if err := s.courses.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete course")
	}
	return nil
}

// ListProfessors pages through professors.
func (s *CatalogService) ListProfessors(ctx context.Context, query dto.ListQuery) ([]models.Professor, *models.Pagination, error) {
	page, perPage := s.paging(query)
	professors, total, err := s.professors.List(ctx, query.Search, page, perPage)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list professors")
	}
	return professors, models.NewPagination(page, perPage, total), nil
}

// CreateProfessor inserts a professor; the email must be unused.
func (s *CatalogService) CreateProfessor(ctx context.Context, req dto.ProfessorRequest) (*models.Professor, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid professor payload")
	}
	existing, err := s.professors.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to look up professor")
	}
	if existing != nil {
		return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("professor %s already exists", req.Email))
	}

	professor := &models.Professor{Name: req.Name, Email: req.Email, Department: req.Department}
	if err := s.professors.Create(ctx, professor); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create professor")
	}
	return professor, nil
}

// UpdateProfessor replaces a professor's fields.
func (s *CatalogService) UpdateProfessor(ctx context.Context, id string, req dto.ProfessorRequest) (*models.Professor, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid professor payload")
	}
	if _, err := s.professors.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "professor not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load professor")
	}

	professor := &models.Professor{ID: id, Name: req.Name, Email: req.Email, Department: req.Department}
	if err := s.professors.Update(ctx, professor); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update professor")
	}
	return professor, nil
}

// DeleteProfessor removes a professor.
func (s *CatalogService) DeleteProfessor(ctx context.Context, id string) error {
	if err := s.professors.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "professor not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete professor")
	}
	return nil
}

// ProfessorAvailability lists a professor's declared windows.
func (s *CatalogService) ProfessorAvailability(ctx context.Context, professorID string) ([]models.ProfessorAvailability, error) {
	windows, err := s.availability.ListByProfessor(ctx, professorID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list availability")
	}
	return windows, nil
}

// ReplaceProfessorAvailability swaps the professor's full window set.
func (s *CatalogService) ReplaceProfessorAvailability(ctx context.Context, professorID string, req dto.AvailabilityWindowsRequest) ([]models.ProfessorAvailability, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid availability payload")
	}
	if _, err := s.professors.FindByID(ctx, professorID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "professor not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load professor")
	}

	windows := make([]models.ProfessorAvailability, 0, len(req.Windows))
	for _, w := range req.Windows {
		if _, _, err := parseInterval(w.StartTime, w.EndTime); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid availability window")
		}
		windows = append(windows, models.ProfessorAvailability{
			ProfessorID: professorID, DayOfWeek: w.DayOfWeek, StartTime: w.StartTime, EndTime: w.EndTime,
		})
	}
	if err := s.availability.ReplaceProfessorWindows(ctx, professorID, windows); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to replace availability")
	}
	return windows, nil
}

// ListStudents pages through students.
func (s *CatalogService) ListStudents(ctx context.Context, query dto.ListQuery) ([]models.Student, *models.Pagination, error) {
	page, perPage := s.paging(query)
	students, total, err := s.students.List(ctx, query.Search, page, perPage)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}
	return students, models.NewPagination(page, perPage, total), nil
}

// CreateStudent inserts a student; the roll number must be unused.
func (s *CatalogService) CreateStudent(ctx context.Context, req dto.StudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	existing, err := s.students.FindByRollNumber(ctx, req.RollNumber)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to look up student")
	}
	if existing != nil {
		return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("student %s already exists", req.RollNumber))
	}

	student := &models.Student{
		RollNumber: req.RollNumber, Name: req.Name,
		Program: req.Program, Batch: req.Batch, Section: req.Section,
	}
	if err := s.students.Create(ctx, student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create student")
	}
	return student, nil
}

// UpdateStudent replaces a student's fields.
func (s *CatalogService) UpdateStudent(ctx context.Context, id string, req dto.StudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	if _, err := s.students.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}

	student := &models.Student{
		ID: id, RollNumber: req.RollNumber, Name: req.Name,
		Program: req.Program, Batch: req.Batch, Section: req.Section,
	}
	if err := s.students.Update(ctx, student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update student")
	}
	return student, nil
}

// DeleteStudent removes a student.
func (s *CatalogService) DeleteStudent(ctx context.Context, id string) error {
	if err := s.students.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete student")
	}
	return nil
}

// ListRooms pages through rooms.
func (s *CatalogService) ListRooms(ctx context.Context, query dto.ListQuery) ([]models.Room, *models.Pagination, error) {
	page, perPage := s.paging(query)
	rooms, total, err := s.rooms.List(ctx, query.Search, page, perPage)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list rooms")
	}
	return rooms, models.NewPagination(page, perPage, total), nil
}

// CreateRoom inserts a room; the code must be unused.
func (s *CatalogService) CreateRoom(ctx context.Context, req dto.RoomRequest) (*models.Room, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid room payload")
	}
	existing, err := s.rooms.FindByCode(ctx, req.Code)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to look up room")
	}
	if existing != nil {
		return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("room %s already exists", req.Code))
	}

	room := &models.Room{
		Code: req.Code, Name: req.Name, Building: req.Building,
		Capacity: req.Capacity, Kind: models.RoomKind(req.Kind),
	}
	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create room")
	}
	return room, nil
}

// UpdateRoom replaces a room's fields.
func (s *CatalogService) UpdateRoom(ctx context.Context, id string, req dto.RoomRequest) (*models.Room, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid room payload")
	}
	if _, err := s.rooms.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "room not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load room")
	}

	room := &models.Room{
		ID: id, Code: req.Code, Name: req.Name, Building: req.Building,
		Capacity: req.Capacity, Kind: models.RoomKind(req.Kind),
	}
	if err := s.rooms.Update(ctx, room); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update room")
	}
	return room, nil
}

// DeleteRoom removes a room.
func (s *CatalogService) DeleteRoom(ctx context.Context, id string) error {
	if err := s.rooms.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "room not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete room")
	}
	return nil
}

// RoomAvailability lists a room's declared windows.
func (s *CatalogService) RoomAvailability(ctx context.Context, roomID string) ([]models.RoomAvailability, error) {
	windows, err := s.availability.ListRoomWindows(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list availability")
	}
	var out []models.RoomAvailability
	for _, w := range windows {
		if w.RoomID == roomID {
			out = append(out, w)
		}
	}
	return out, nil
}

// ReplaceRoomAvailability swaps the room's full window set.
func (s *CatalogService) ReplaceRoomAvailability(ctx context.Context, roomID string, req dto.AvailabilityWindowsRequest) ([]models.RoomAvailability, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid availability payload")
	}
	if _, err := s.rooms.FindByID(ctx, roomID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "room not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load room")
	}

	windows := make([]models.RoomAvailability, 0, len(req.Windows))
	for _, w := range req.Windows {
		if _, _, err := parseInterval(w.StartTime, w.EndTime); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid availability window")
		}
		windows = append(windows, models.RoomAvailability{
			RoomID: roomID, DayOfWeek: w.DayOfWeek, StartTime: w.StartTime, EndTime: w.EndTime,
		})
	}
	if err := s.availability.ReplaceRoomWindows(ctx, roomID, windows); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to replace availability")
	}
	return windows, nil
}

// ListSlots returns every weekly slot ordered by day and start.
func (s *CatalogService) ListSlots(ctx context.Context) ([]models.Slot, error) {
	slots, err := s.slots.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list slots")
	}
	return slots, nil
}

// CreateSlot inserts a weekly slot after checking the interval is real.
func (s *CatalogService) CreateSlot(ctx context.Context, req dto.SlotRequest) (*models.Slot, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid slot payload")
	}
	if _, _, err := parseInterval(req.StartTime, req.EndTime); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid slot interval")
	}

	slot := &models.Slot{Code: req.Code, DayOfWeek: req.DayOfWeek, StartTime: req.StartTime, EndTime: req.EndTime}
	if err := s.slots.Create(ctx, slot); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create slot")
	}
	return slot, nil
}

// UpdateSlot replaces a slot's fields.
func (s *CatalogService) UpdateSlot(ctx context.Context, id string, req dto.SlotRequest) (*models.Slot, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid slot payload")
	}
	if _, _, err := parseInterval(req.StartTime, req.EndTime); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid slot interval")
	}
	if _, err := s.slots.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "slot not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load slot")
	}

	slot := &models.Slot{ID: id, Code: req.Code, DayOfWeek: req.DayOfWeek, StartTime: req.StartTime, EndTime: req.EndTime}
	if err := s.slots.Update(ctx, slot); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update slot")
	}
	return slot, nil
}

// DeleteSlot removes a slot.
func (s *CatalogService) DeleteSlot(ctx context.Context, id string) error {
	if err := s.slots.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "slot not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete slot")
	}
	return nil
}

// ListBlackouts returns the campus-wide blocked windows.
func (s *CatalogService) ListBlackouts(ctx context.Context) ([]models.BlackoutWindow, error) {
	blackouts, err := s.availability.ListBlackouts(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list blackout windows")
	}
	return blackouts, nil
}

// CreateBlackout blocks one weekly window for all placements.
func (s *CatalogService) CreateBlackout(ctx context.Context, req dto.AvailabilityRequest) (*models.BlackoutWindow, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid blackout payload")
	}
	if _, _, err := parseInterval(req.StartTime, req.EndTime); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid blackout window")
	}

	blackout := &models.BlackoutWindow{DayOfWeek: req.DayOfWeek, StartTime: req.StartTime, EndTime: req.EndTime}
	if err := s.availability.CreateBlackout(ctx, blackout); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create blackout window")
	}
	return blackout, nil
}

// DeleteBlackout removes one blocked window.
func (s *CatalogService) DeleteBlackout(ctx context.Context, id string) error {
	if err := s.availability.DeleteBlackout(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "blackout window not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete blackout window")
	}
	return nil
}

// Enroll links students to a course, skipping pairs that already exist.
func (s *CatalogService) Enroll(ctx context.Context, courseID string, req dto.EnrollmentRequest) (int, error) {
	if err := s.validator.Struct(req); err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid enrollment payload")
	}
	if _, err := s.GetCourse(ctx, courseID); err != nil {
		return 0, err
	}
	created, err := s.enrollments.Enroll(ctx, courseID, req.StudentIDs)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to enroll students")
	}
	return created, nil
}

// Unenroll removes one student from a course.
func (s *CatalogService) Unenroll(ctx context.Context, courseID, studentID string) error {
	if err := s.enrollments.Unenroll(ctx, courseID, studentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "enrollment not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to unenroll student")
	}
	return nil
}

// EnrolledStudents lists a course's enrolled students in roll order.
func (s *CatalogService) EnrolledStudents(ctx context.Context, courseID string) ([]models.EnrolledStudent, error) {
	if _, err := s.GetCourse(ctx, courseID); err != nil {
		return nil, err
	}
	students, err := s.enrollments.ListEnrolledByCourse(ctx, courseID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list enrolled students")
	}
	return students, nil
}

func courseFromRequest(req dto.CourseRequest) *models.Course {
	return &models.Course{
		Code:           req.Code,
		Name:           req.Name,
		LectureHours:   req.LectureHours,
		TutorialHours:  req.TutorialHours,
		PracticalHours: req.PracticalHours,
		SelfStudyHours: req.SelfStudyHours,
		Credits:        req.Credits,
		IsHalfSemester: req.IsHalfSemester,
		IsElective:     req.IsElective,
		InstructorIDs:  req.InstructorIDs,
	}
}
