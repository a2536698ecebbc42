package service

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gocarina/gocsv"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-timetable-api/internal/dto"
	"github.com/noah-isme/campus-timetable-api/internal/models"
	appErrors "github.com/noah-isme/campus-timetable-api/pkg/errors"
)

type courseImporter interface {
	FindByCode(ctx context.Context, code string) (*models.Course, error)
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, course *models.Course) error
}

type professorImporter interface {
	FindByEmail(ctx context.Context, email string) (*models.Professor, error)
	Create(ctx context.Context, professor *models.Professor) error
	Update(ctx context.Context, professor *models.Professor) error
}

type studentImporter interface {
	FindByRollNumber(ctx context.Context, rollNumber string) (*models.Student, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
}

type roomImporter interface {
	FindByCode(ctx context.Context, code string) (*models.Room, error)
	Create(ctx context.Context, room *models.Room) error
	Update(ctx context.Context, room *models.Room) error
}

// ImportService ingests CSV files, updating records matched by their
// natural key and creating the rest. Rejected rows never abort the run.
type ImportService struct {
	courses    courseImporter
	professors professorImporter
	students   studentImporter
	rooms      roomImporter
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewImportService wires the CSV importer.
func NewImportService(
	courses courseImporter,
	professors professorImporter,
	students studentImporter,
	rooms roomImporter,
	validate *validator.Validate,
	logger *zap.Logger,
) *ImportService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImportService{
		courses:    courses,
		professors: professors,
		students:   students,
		rooms:      rooms,
		validator:  validate,
		logger:     logger,
	}
}

// ImportCourses ingests a course CSV. Instructor links are resolved by
// email when the column is present.
func (s *ImportService) ImportCourses(ctx context.Context, reader io.Reader) (*dto.ImportResult, error) {
	var rows []dto.CourseCSVRow
	if err := gocsv.Unmarshal(reader, &rows); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "malformed course csv")
	}

	result := &dto.ImportResult{}
	for i, row := range rows {
		rowNum := i + 2 // header is row 1
		code := strings.TrimSpace(row.Code)
		if code == "" || strings.TrimSpace(row.Name) == "" {
			result.Reject(rowNum, "code and name are required")
			continue
		}

		lecture, err := parseHours(row.LectureHours)
		if err != nil {
			result.Reject(rowNum, fmt.Sprintf("lecture_hours: %v", err))
			continue
		}
		tutorial, err := parseHours(row.TutorialHours)
		if err != nil {
			result.Reject(rowNum, fmt.Sprintf("tutorial_hours: %v", err))
			continue
		}
		practical, err := parseHours(row.PracticalHours)
		if err != nil {
			result.Reject(rowNum, fmt.Sprintf("practical_hours: %v", err))
			continue
		}
		selfStudy, err := parseHours(row.SelfStudyHours)
		if err != nil {
			result.Reject(rowNum, fmt.Sprintf("self_study_hours: %v", err))
			continue
		}
		credits, err := parseHours(row.Credits)
		if err != nil {
			result.Reject(rowNum, fmt.Sprintf("credits: %v", err))
			continue
		}

		var instructorIDs []string
		if email := strings.TrimSpace(row.InstructorMail); email != "" {
			professor, err := s.professors.FindByEmail(ctx, email)
			if err != nil {
				return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve instructor")
			}
			if professor == nil {
				result.Reject(rowNum, fmt.Sprintf("unknown instructor %s", email))
				continue
			}
			instructorIDs = []string{professor.ID}
		}

		existing, err := s.courses.FindByCode(ctx, code)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to look up course")
		}

		course := models.Course{
			Code:           code,
			Name:           strings.TrimSpace(row.Name),
			LectureHours:   lecture,
			TutorialHours:  tutorial,
			PracticalHours: practical,
			SelfStudyHours: selfStudy,
			Credits:        credits,
			InstructorIDs:  instructorIDs,
		}
		if existing != nil {
			course.ID = existing.ID
			if err := s.courses.Update(ctx, &course); err != nil {
				return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update course")
			}
			result.Updated++
			continue
		}
		if err := s.courses.Create(ctx, &course); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create course")
		}
		result.Created++
	}

	s.logImport("courses", result)
	return result, nil
}

// ImportProfessors ingests a professor CSV keyed by email.
func (s *ImportService) ImportProfessors(ctx context.Context, reader io.Reader) (*dto.ImportResult, error) {
	var rows []dto.ProfessorCSVRow
	if err := gocsv.Unmarshal(reader, &rows); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "malformed professor csv")
	}

	result := &dto.ImportResult{}
	for i, row := range rows {
		rowNum := i + 2
		email := strings.TrimSpace(row.Email)
		name := strings.TrimSpace(row.Name)
		if email == "" || name == "" {
			result.Reject(rowNum, "name and email are required")
			continue
		}

		existing, err := s.professors.FindByEmail(ctx, email)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to look up professor")
		}
		professor := models.Professor{Name: name, Email: email, Department: strings.TrimSpace(row.Department)}
		if existing != nil {
			professor.ID = existing.ID
			if err := s.professors.Update(ctx, &professor); err != nil {
				return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update professor")
			}
			result.Updated++
			continue
		}
		if err := s.professors.Create(ctx, &professor); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create professor")
		}
		result.Created++
	}

	s.logImport("professors", result)
	return result, nil
}

// ImportStudents ingests a student CSV keyed by roll number.
func (s *ImportService) ImportStudents(ctx context.Context, reader io.Reader) (*dto.ImportResult, error) {
	var rows []dto.StudentCSVRow
	if err := gocsv.Unmarshal(reader, &rows); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "malformed student csv")
	}

	result := &dto.ImportResult{}
	for i, row := range rows {
		rowNum := i + 2
		roll := strings.TrimSpace(row.RollNumber)
		name := strings.TrimSpace(row.Name)
		if roll == "" || name == "" {
			result.Reject(rowNum, "roll_number and name are required")
			continue
		}

		existing, err := s.students.FindByRollNumber(ctx, roll)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to look up student")
		}
		student := models.Student{
			RollNumber: roll,
			Name:       name,
			Program:    strings.TrimSpace(row.Program),
			Batch:      strings.TrimSpace(row.Batch),
			Section:    strings.TrimSpace(row.Section),
		}
		if existing != nil {
			student.ID = existing.ID
			if err := s.students.Update(ctx, &student); err != nil {
				return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update student")
			}
			result.Updated++
			continue
		}
		if err := s.students.Create(ctx, &student); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create student")
		}
		result.Created++
	}

	s.logImport("students", result)
	return result, nil
}

// ImportRooms ingests a room CSV keyed by code.
func (s *ImportService) ImportRooms(ctx context.Context, reader io.Reader) (*dto.ImportResult, error) {
	var rows []dto.RoomCSVRow
	if err := gocsv.Unmarshal(reader, &rows); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "malformed room csv")
	}

	result := &dto.ImportResult{}
	for i, row := range rows {
		rowNum := i + 2
		code := strings.TrimSpace(row.Code)
		if code == "" {
			result.Reject(rowNum, "code is required")
			continue
		}
		capacity, err := strconv.Atoi(strings.TrimSpace(row.Capacity))
		if err != nil || capacity < 1 {
			result.Reject(rowNum, "capacity must be a positive integer")
			continue
		}
		kind := models.RoomKind(strings.ToUpper(strings.TrimSpace(row.Kind)))
		switch kind {
		case models.RoomKindClassroom, models.RoomKindLab, models.RoomKindHall:
		default:
			result.Reject(rowNum, fmt.Sprintf("unknown room kind %q", row.Kind))
			continue
		}

		existing, err := s.rooms.FindByCode(ctx, code)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to look up room")
		}
		room := models.Room{
			Code:     code,
			Name:     strings.TrimSpace(row.Name),
			Building: strings.TrimSpace(row.Building),
			Capacity: capacity,
			Kind:     kind,
		}
		if existing != nil {
			room.ID = existing.ID
			if err := s.rooms.Update(ctx, &room); err != nil {
				return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update room")
			}
			result.Updated++
			continue
		}
		if err := s.rooms.Create(ctx, &room); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create room")
		}
		result.Created++
	}

	s.logImport("rooms", result)
	return result, nil
}

func (s *ImportService) logImport(entity string, result *dto.ImportResult) {
	s.logger.Info("csv import finished",
		zap.String("entity", entity),
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
		zap.Int("rejected", len(result.Errors)))
}

// parseHours reads a non-negative integer cell, treating blank as zero.
func parseHours(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("not an integer")
	}
	if value < 0 {
		return 0, fmt.Errorf("must not be negative")
	}
	return value, nil
}
