package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/noah-isme/campus-timetable-api/internal/models"
	appErrors "github.com/noah-isme/campus-timetable-api/pkg/errors"
	"github.com/noah-isme/campus-timetable-api/pkg/export"
)

type sessionDetailReader interface {
	ListDetails(ctx context.Context, timetableID string, section string, day *int) ([]models.SessionDetail, error)
}

type timetableReader interface {
	FindByID(ctx context.Context, id string) (*models.Timetable, error)
}

type examDetailReader interface {
	FindByID(ctx context.Context, id string) (*models.Exam, error)
	ListSeatingDetails(ctx context.Context, examID string) ([]models.SeatingDetail, error)
}

// ExportService renders committed schedules into downloadable CSV and
// PDF documents.
type ExportService struct {
	timetables timetableReader
	sessions   sessionDetailReader
	exams      examDetailReader
	courses    courseCatalogReader
	logger     *zap.Logger
}

// NewExportService wires the document exporter.
func NewExportService(
	timetables timetableReader,
	sessions sessionDetailReader,
	exams examDetailReader,
	courses courseCatalogReader,
	logger *zap.Logger,
) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		timetables: timetables,
		sessions:   sessions,
		exams:      exams,
		courses:    courses,
		logger:     logger,
	}
}

// TimetableCSV renders every committed session of the timetable as CSV,
// optionally filtered to one section.
func (s *ExportService) TimetableCSV(ctx context.Context, timetableID, section string) ([]byte, string, error) {
	timetable, details, err := s.loadTimetable(ctx, timetableID, section)
	if err != nil {
		return nil, "", err
	}

	data := export.Dataset{
		Headers: []string{"day", "start_time", "end_time", "course_code", "course_name", "section", "type", "room", "instructor"},
	}
	for _, d := range details {
		data.Rows = append(data.Rows, map[string]string{
			"day":         models.DayName(d.DayOfWeek),
			"start_time":  d.StartTime,
			"end_time":    d.EndTime,
			"course_code": d.CourseCode,
			"course_name": d.CourseName,
			"section":     d.Section,
			"type":        d.TypeLabel(),
			"room":        d.RoomCode,
			"instructor":  d.InstructorName,
		})
	}

	payload, err := export.NewCSVExporter().Render(data)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
	}

	filename := fmt.Sprintf("timetable-%s.csv", timetable.ID)
	if section != "" {
		filename = fmt.Sprintf("timetable-%s-%s.csv", timetable.ID, section)
	}
	return payload, filename, nil
}

// TimetablePDF renders the weekly grid for one section of the timetable.
func (s *ExportService) TimetablePDF(ctx context.Context, timetableID, section string) ([]byte, string, error) {
	timetable, details, err := s.loadTimetable(ctx, timetableID, section)
	if err != nil {
		return nil, "", err
	}

	title := timetable.Name
	if section != "" {
		title = fmt.Sprintf("%s - Section %s", timetable.Name, section)
	}

	grid := export.TimetableGrid{Title: title, DayLabels: models.DayNames[:5]}
	for _, d := range details {
		grid.Cells = append(grid.Cells, export.GridCell{
			Day:       d.DayOfWeek,
			StartTime: d.StartTime,
			EndTime:   d.EndTime,
			Title:     fmt.Sprintf("%s (%s)", d.CourseCode, d.TypeLabel()),
			Subtitle:  d.RoomCode,
			ColorCode: d.ColorCode,
		})
	}

	payload, err := export.TimetablePDF(grid)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render timetable pdf")
	}

	s.logger.Info("timetable pdf rendered",
		zap.String("timetable_id", timetableID),
		zap.String("section", section),
		zap.Int("sessions", len(details)))

	filename := fmt.Sprintf("timetable-%s.pdf", timetable.ID)
	if section != "" {
		filename = fmt.Sprintf("timetable-%s-%s.pdf", timetable.ID, section)
	}
	return payload, filename, nil
}

// SeatingPDF renders the committed seating chart of one exam, one page
// per room with roll numbers on their grid coordinates.
func (s *ExportService) SeatingPDF(ctx context.Context, examID string) ([]byte, string, error) {
	exam, err := s.exams.FindByID(ctx, examID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", appErrors.Clone(appErrors.ErrNotFound, "exam not found")
		}
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load exam")
	}

	details, err := s.exams.ListSeatingDetails(ctx, examID)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load seating")
	}
	if len(details) == 0 {
		return nil, "", appErrors.Clone(appErrors.ErrPreconditionFailed, "exam has no committed seating chart")
	}

	title := fmt.Sprintf("%s Exam %s %s-%s", s.courseCode(ctx, exam.CourseID), exam.Date.Format("2006-01-02"), exam.StartTime, exam.EndTime)

	byRoom := make(map[string]*export.SeatingChart)
	var order []string
	for _, d := range details {
		chart, ok := byRoom[d.RoomID]
		if !ok {
			chart = &export.SeatingChart{Title: title, RoomCode: d.RoomCode}
			byRoom[d.RoomID] = chart
			order = append(order, d.RoomID)
		}
		chart.Seats = append(chart.Seats, export.SeatLabel{
			Row:   d.RowIndex,
			Col:   d.ColIndex,
			Label: d.RollNumber,
		})
	}
	charts := make([]export.SeatingChart, 0, len(order))
	for _, roomID := range order {
		charts = append(charts, *byRoom[roomID])
	}

	payload, err := export.SeatingPDF(charts)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render seating pdf")
	}
	return payload, fmt.Sprintf("seating-%s.pdf", examID), nil
}

func (s *ExportService) loadTimetable(ctx context.Context, timetableID, section string) (*models.Timetable, []models.SessionDetail, error) {
	timetable, err := s.timetables.FindByID(ctx, timetableID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "timetable not found")
		}
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timetable")
	}
	details, err := s.sessions.ListDetails(ctx, timetableID, section, nil)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load sessions")
	}
	return timetable, details, nil
}

// courseCode is best-effort title decoration; the export still renders
// when the course lookup fails.
func (s *ExportService) courseCode(ctx context.Context, courseID string) string {
	courses, err := s.courses.ListAllWithInstructors(ctx)
	if err != nil {
		return "Course"
	}
	for _, c := range courses {
		if c.ID == courseID {
			return c.Code
		}
	}
	return "Course"
}
