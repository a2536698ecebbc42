package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-timetable-api/internal/dto"
	"github.com/noah-isme/campus-timetable-api/internal/models"
	appErrors "github.com/noah-isme/campus-timetable-api/pkg/errors"
	"github.com/noah-isme/campus-timetable-api/pkg/jobs"
)

// CalendarPusher delivers one calendar event to an external calendar
// backend. Enabled reports whether a backend is configured at all.
type CalendarPusher interface {
	Enabled() bool
	Push(ctx context.Context, event dto.CalendarEvent) error
}

// NopCalendarPusher is the default backend: nothing is configured, so
// sync requests report zero synced events instead of failing.
type NopCalendarPusher struct{}

// Enabled always reports false.
func (NopCalendarPusher) Enabled() bool { return false }

// Push discards the event.
func (NopCalendarPusher) Push(context.Context, dto.CalendarEvent) error { return nil }

// LogCalendarPusher writes events to the application log. It stands in
// for a real calendar backend in deployments that enable sync without
// configuring one.
type LogCalendarPusher struct {
	Logger *zap.Logger
}

// Enabled always reports true.
func (LogCalendarPusher) Enabled() bool { return true }

// Push logs the event.
func (p LogCalendarPusher) Push(_ context.Context, event dto.CalendarEvent) error {
	logger := p.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Info("calendar event pushed",
		zap.String("uid", event.UID),
		zap.String("title", event.Title),
		zap.String("location", event.Location))
	return nil
}

// CalendarConfig tunes the background push queue.
type CalendarConfig struct {
	Workers    int
	BufferSize int
}

// CalendarService maps committed sessions to calendar events and hands
// them to the configured pusher through a background worker queue.
type CalendarService struct {
	timetables timetableReader
	sessions   sessionDetailReader
	pusher     CalendarPusher
	queue      *jobs.Queue
	logger     *zap.Logger
}

// NewCalendarService wires the calendar synchroniser. The queue must be
// started with Start before Sync can enqueue.
func NewCalendarService(
	timetables timetableReader,
	sessions sessionDetailReader,
	pusher CalendarPusher,
	logger *zap.Logger,
	cfg CalendarConfig,
) *CalendarService {
	if pusher == nil {
		pusher = NopCalendarPusher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &CalendarService{
		timetables: timetables,
		sessions:   sessions,
		pusher:     pusher,
		logger:     logger,
	}
	s.queue = jobs.NewQueue("calendar-sync", s.handlePush, jobs.QueueConfig{
		Workers:    cfg.Workers,
		BufferSize: cfg.BufferSize,
		Logger:     logger,
	})
	return s
}

// Start launches the push workers.
func (s *CalendarService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains the push workers.
func (s *CalendarService) Stop() {
	s.queue.Stop()
}

// Sync enqueues one calendar event per committed session of the
// timetable. When no calendar backend is configured the run is a no-op.
func (s *CalendarService) Sync(ctx context.Context, timetableID string) (*dto.CalendarSyncResponse, error) {
	timetable, details, err := s.load(ctx, timetableID)
	if err != nil {
		return nil, err
	}

	if !s.pusher.Enabled() {
		return &dto.CalendarSyncResponse{Enqueued: 0, Status: "skipped", Note: "calendar not configured"}, nil
	}

	enqueued := 0
	for _, d := range details {
		day := d.DayOfWeek
		event := dto.CalendarEvent{
			UID:         fmt.Sprintf("%s@%s", d.ID, timetable.ID),
			Title:       fmt.Sprintf("%s %s (%s)", d.CourseCode, d.CourseName, d.Section),
			Description: fmt.Sprintf("%s, %s - %s", d.TypeLabel(), d.InstructorName, d.RoomCode),
			Location:    d.RoomCode,
			DayOfWeek:   &day,
			StartTime:   d.StartTime,
			EndTime:     d.EndTime,
			ColorCode:   d.ColorCode,
		}
		if err := s.queue.Enqueue(jobs.Job{ID: uuid.NewString(), Type: "calendar.push", Payload: event}); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to enqueue calendar event")
		}
		enqueued++
	}

	s.logger.Info("calendar sync enqueued",
		zap.String("timetable_id", timetableID),
		zap.Int("events", enqueued))

	return &dto.CalendarSyncResponse{Enqueued: enqueued, Status: "queued"}, nil
}

func (s *CalendarService) handlePush(ctx context.Context, job jobs.Job) error {
	event, ok := job.Payload.(dto.CalendarEvent)
	if !ok {
		return fmt.Errorf("unexpected payload type for job %s", job.ID)
	}
	return s.pusher.Push(ctx, event)
}

func (s *CalendarService) load(ctx context.Context, timetableID string) (*models.Timetable, []models.SessionDetail, error) {
	timetable, err := s.timetables.FindByID(ctx, timetableID)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, "timetable not found")
	}
	details, err := s.sessions.ListDetails(ctx, timetableID, "", nil)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load sessions")
	}
	return timetable, details, nil
}
