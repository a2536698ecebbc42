package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-timetable-api/internal/dto"
	"github.com/noah-isme/campus-timetable-api/internal/models"
	"github.com/noah-isme/campus-timetable-api/internal/scheduling"
	appErrors "github.com/noah-isme/campus-timetable-api/pkg/errors"
)

type courseCatalogReader interface {
	ListAllWithInstructors(ctx context.Context) ([]models.Course, error)
}

type slotCatalogReader interface {
	ListAll(ctx context.Context) ([]models.Slot, error)
}

type roomCatalogReader interface {
	ListAll(ctx context.Context) ([]models.Room, error)
}

type availabilityReader interface {
	ListProfessorWindows(ctx context.Context) ([]models.ProfessorAvailability, error)
	ListRoomWindows(ctx context.Context) ([]models.RoomAvailability, error)
	ListBlackouts(ctx context.Context) ([]models.BlackoutWindow, error)
}

type sectionReader interface {
	DistinctSections(ctx context.Context) ([]string, error)
}

type timetableStore interface {
	List(ctx context.Context) ([]models.Timetable, error)
	FindByID(ctx context.Context, id string) (*models.Timetable, error)
	Create(ctx context.Context, timetable *models.Timetable) error
	Touch(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type sessionStore interface {
	Begin(ctx context.Context) (*sqlx.Tx, error)
	DeleteByTimetableTx(ctx context.Context, tx *sqlx.Tx, timetableID string) (int, error)
	BulkCreateTx(ctx context.Context, tx *sqlx.Tx, sessions []models.ClassSession) error
	DeleteByTimetable(ctx context.Context, timetableID string) (int, error)
	CountByTimetable(ctx context.Context, timetableID string) (int, error)
	DeleteByIDs(ctx context.Context, ids []string) (int, error)
	ListDetails(ctx context.Context, timetableID string, section string, day *int) ([]models.SessionDetail, error)
}

type viewCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

type generationObserver interface {
	ObserveGeneration(status string, conflicts int, duration time.Duration)
}

// TimetableConfig tunes generation and view caching.
type TimetableConfig struct {
	MinBreakMinutes int
	WorkingDays     int
	CacheEnabled    bool
	ViewTTL         time.Duration
	StatsTTL        time.Duration
}

// TimetableService orchestrates timetable lifecycle: generation,
// rescheduling, optimization, conflict auditing, and read views.
type TimetableService struct {
	courses      courseCatalogReader
	slots        slotCatalogReader
	rooms        roomCatalogReader
	availability availabilityReader
	sections     sectionReader
	timetables   timetableStore
	sessions     sessionStore
	cache        viewCache
	metrics      generationObserver
	validator    *validator.Validate
	logger       *zap.Logger
	config       TimetableConfig

	// locks serialises runs per timetable so two concurrent generate or
	// reschedule calls cannot interleave their replace-and-insert commits.
	locks sync.Map
}

// NewTimetableService wires the timetable orchestrator.
func NewTimetableService(
	courses courseCatalogReader,
	slots slotCatalogReader,
	rooms roomCatalogReader,
	availability availabilityReader,
	sections sectionReader,
	timetables timetableStore,
	sessions sessionStore,
	cache viewCache,
	metrics generationObserver,
	validate *validator.Validate,
	logger *zap.Logger,
	cfg TimetableConfig,
) *TimetableService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MinBreakMinutes <= 0 {
		cfg.MinBreakMinutes = 15
	}
	if cfg.WorkingDays <= 0 {
		cfg.WorkingDays = 5
	}
	if cfg.ViewTTL <= 0 {
		cfg.ViewTTL = 5 * time.Minute
	}
	if cfg.StatsTTL <= 0 {
		cfg.StatsTTL = 5 * time.Minute
	}
	return &TimetableService{
		courses:      courses,
		slots:        slots,
		rooms:        rooms,
		availability: availability,
		sections:     sections,
		timetables:   timetables,
		sessions:     sessions,
		cache:        cache,
		metrics:      metrics,
		validator:    validate,
		logger:       logger,
		config:       cfg,
	}
}

func (s *TimetableService) lockFor(timetableID string) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(timetableID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// Create stores a new timetable container.
func (s *TimetableService) Create(ctx context.Context, req dto.CreateTimetableRequest) (*models.Timetable, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid timetable payload")
	}

	timetable := &models.Timetable{Name: req.Name}
	if req.EffectiveFrom != nil {
		from, err := time.Parse("2006-01-02", *req.EffectiveFrom)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid effective_from date")
		}
		timetable.EffectiveFrom = &from
	}
	if req.EffectiveTo != nil {
		to, err := time.Parse("2006-01-02", *req.EffectiveTo)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid effective_to date")
		}
		timetable.EffectiveTo = &to
	}

	if err := s.timetables.Create(ctx, timetable); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create timetable")
	}
	return timetable, nil
}

// List returns every timetable container.
func (s *TimetableService) List(ctx context.Context) ([]models.Timetable, error) {
	timetables, err := s.timetables.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list timetables")
	}
	return timetables, nil
}

// Get loads one timetable container.
func (s *TimetableService) Get(ctx context.Context, id string) (*models.Timetable, error) {
	timetable, err := s.timetables.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "timetable not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timetable")
	}
	return timetable, nil
}

// Delete removes a timetable and its sessions.
func (s *TimetableService) Delete(ctx context.Context, id string) error {
	if err := s.timetables.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "timetable not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete timetable")
	}
	s.invalidate(ctx, id)
	return nil
}

// Generate runs a full placement pass and commits the result, replacing any
// previously committed sessions of the timetable in one transaction.
func (s *TimetableService) Generate(ctx context.Context, timetableID string) (*dto.GenerateTimetableResponse, error) {
	mu := s.lockFor(timetableID)
	mu.Lock()
	defer mu.Unlock()
	return s.generate(ctx, timetableID)
}

// generate is Generate's body; callers hold the timetable's lock.
func (s *TimetableService) generate(ctx context.Context, timetableID string) (*dto.GenerateTimetableResponse, error) {
	started := time.Now()
	if _, err := s.Get(ctx, timetableID); err != nil {
		return nil, err
	}

	cat, err := s.buildCatalog(ctx)
	if err != nil {
		return nil, err
	}

	gen := scheduling.Generator{MinBreakMinutes: s.config.MinBreakMinutes, WorkingDays: s.config.WorkingDays}
	result := gen.Run(cat)

	if result.Status == scheduling.StatusError {
		s.observe(result, started)
		return &dto.GenerateTimetableResponse{
			TimetableID: timetableID,
			Conflicts:   []string{},
			SelfStudy:   result.SelfStudy,
			Status:      result.Status,
			Message:     result.Message,
		}, nil
	}

	if err := s.commitSessions(ctx, timetableID, result.Sessions); err != nil {
		return nil, err
	}
	s.invalidate(ctx, timetableID)
	s.observe(result, started)

	s.logger.Info("timetable generated",
		zap.String("timetable_id", timetableID),
		zap.Int("sessions", len(result.Sessions)),
		zap.Int("conflicts", len(result.Conflicts)),
		zap.String("status", result.Status))

	return &dto.GenerateTimetableResponse{
		TimetableID:       timetableID,
		CreatedSessions:   len(result.Sessions),
		SectionsProcessed: result.SectionsProcessed,
		Conflicts:         orEmpty(result.Conflicts),
		SelfStudy:         result.SelfStudy,
		Status:            result.Status,
	}, nil
}

// Reschedule re-validates every committed session against the current
// catalog. Sessions whose instructor or room no longer holds a covering
// window for their slot, or whose slot now overlaps a blackout, are torn
// down and the timetable is regenerated in full. Rescheduled counts the
// distinct (course, section) pairs the teardown touched.
func (s *TimetableService) Reschedule(ctx context.Context, timetableID string) (*dto.RescheduleResponse, error) {
	mu := s.lockFor(timetableID)
	mu.Lock()
	defer mu.Unlock()

	if _, err := s.Get(ctx, timetableID); err != nil {
		return nil, err
	}

	committed, err := s.sessions.ListDetails(ctx, timetableID, "", nil)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load sessions")
	}

	cat, err := s.buildCatalog(ctx)
	if err != nil {
		return nil, err
	}

	var invalid []string
	pairs := make(map[string]struct{})
	for _, sess := range committed {
		if stillPlaceable(cat, sess) {
			continue
		}
		invalid = append(invalid, sess.ID)
		pairs[sess.CourseID+"/"+sess.Section] = struct{}{}
	}
	if len(invalid) == 0 {
		return &dto.RescheduleResponse{Rescheduled: 0, Status: scheduling.StatusNoChanges}, nil
	}

	if _, err := s.sessions.DeleteByIDs(ctx, invalid); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete invalidated sessions")
	}
	s.invalidate(ctx, timetableID)

	generated, err := s.generate(ctx, timetableID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("timetable rescheduled",
		zap.String("timetable_id", timetableID),
		zap.Int("invalid_sessions", len(invalid)),
		zap.Int("affected_pairs", len(pairs)),
		zap.String("status", generated.Status))

	return &dto.RescheduleResponse{
		Rescheduled:       len(pairs),
		CreatedSessions:   generated.CreatedSessions,
		SectionsProcessed: generated.SectionsProcessed,
		Conflicts:         generated.Conflicts,
		SelfStudy:         generated.SelfStudy,
		Status:            generated.Status,
		Message:           generated.Message,
	}, nil
}

// stillPlaceable reports whether the catalog still covers the session's
// day and interval for both its instructor and room, clear of blackouts.
func stillPlaceable(cat *scheduling.Catalog, sess models.SessionDetail) bool {
	start, end, err := parseInterval(sess.StartTime, sess.EndTime)
	if err != nil {
		return false
	}
	if !cat.ProfAvailable(sess.InstructorID, sess.DayOfWeek, start, end) {
		return false
	}
	if !cat.RoomAvailable(sess.RoomID, sess.DayOfWeek, start, end) {
		return false
	}
	return !cat.BlackedOut(sess.DayOfWeek, start, end)
}

// Optimize re-runs placement against the live catalog and keeps the new
// schedule only when it places more sessions than the committed one.
func (s *TimetableService) Optimize(ctx context.Context, timetableID string) (*dto.OptimizeResponse, error) {
	mu := s.lockFor(timetableID)
	mu.Lock()
	defer mu.Unlock()

	if _, err := s.Get(ctx, timetableID); err != nil {
		return nil, err
	}

	previous, err := s.sessions.CountByTimetable(ctx, timetableID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count sessions")
	}

	cat, err := s.buildCatalog(ctx)
	if err != nil {
		return nil, err
	}
	gen := scheduling.Generator{MinBreakMinutes: s.config.MinBreakMinutes, WorkingDays: s.config.WorkingDays}
	result := gen.Run(cat)

	if result.Status == scheduling.StatusError || len(result.Sessions) <= previous {
		return &dto.OptimizeResponse{
			Improved:        false,
			PreviousCount:   previous,
			CreatedSessions: previous,
			Conflicts:       result.Conflicts,
			Status:          result.Status,
		}, nil
	}

	if err := s.commitSessions(ctx, timetableID, result.Sessions); err != nil {
		return nil, err
	}
	s.invalidate(ctx, timetableID)

	return &dto.OptimizeResponse{
		Improved:        true,
		PreviousCount:   previous,
		CreatedSessions: len(result.Sessions),
		Conflicts:       result.Conflicts,
		Status:          result.Status,
	}, nil
}

// Clear removes every committed session of the timetable.
func (s *TimetableService) Clear(ctx context.Context, timetableID string) (*dto.ClearResponse, error) {
	mu := s.lockFor(timetableID)
	mu.Lock()
	defer mu.Unlock()

	if _, err := s.Get(ctx, timetableID); err != nil {
		return nil, err
	}

	removed, err := s.sessions.DeleteByTimetable(ctx, timetableID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clear sessions")
	}
	s.invalidate(ctx, timetableID)
	return &dto.ClearResponse{Removed: removed}, nil
}

// Data returns the timetable's sessions grouped by day label, served from
// cache when enabled.
func (s *TimetableService) Data(ctx context.Context, timetableID string, query dto.TimetableDataQuery) (*dto.TimetableDataResponse, error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid data query")
	}
	if _, err := s.Get(ctx, timetableID); err != nil {
		return nil, err
	}

	key := s.dataKey(timetableID, query)
	if s.config.CacheEnabled && s.cache != nil {
		var cached dto.TimetableDataResponse
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			return &cached, nil
		} else if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("timetable view cache read failed", zap.Error(err))
		}
	}

	details, err := s.sessions.ListDetails(ctx, timetableID, query.Section, query.Day)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load sessions")
	}

	days := make(map[string][]dto.SessionView)
	for _, d := range details {
		view := dto.SessionView{
			ID:             d.ID,
			CourseCode:     d.CourseCode,
			CourseName:     d.CourseName,
			Section:        d.Section,
			Day:            models.DayName(d.DayOfWeek),
			DayOfWeek:      d.DayOfWeek,
			StartTime:      d.StartTime,
			EndTime:        d.EndTime,
			RoomCode:       d.RoomCode,
			InstructorName: d.InstructorName,
			SessionType:    d.TypeLabel(),
			ColorCode:      d.ColorCode,
		}
		days[view.Day] = append(days[view.Day], view)
	}

	resp := &dto.TimetableDataResponse{TimetableID: timetableID, Days: days, Total: len(details)}
	if s.config.CacheEnabled && s.cache != nil {
		if err := s.cache.Set(ctx, key, resp, s.config.ViewTTL); err != nil {
			s.logger.Warn("timetable view cache write failed", zap.Error(err))
		}
	}
	return resp, nil
}

// Statistics summarises the committed schedule.
func (s *TimetableService) Statistics(ctx context.Context, timetableID string) (*dto.TimetableStatistics, error) {
	if _, err := s.Get(ctx, timetableID); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("timetable:%s:stats", timetableID)
	if s.config.CacheEnabled && s.cache != nil {
		var cached dto.TimetableStatistics
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			return &cached, nil
		}
	}

	details, err := s.sessions.ListDetails(ctx, timetableID, "", nil)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load sessions")
	}

	stats := &dto.TimetableStatistics{
		TimetableID:     timetableID,
		TotalSessions:   len(details),
		SessionsPerDay:  make(map[string]int),
		RoomUtilization: make(map[string]int),
		InstructorLoad:  make(map[string]int),
	}
	for _, d := range details {
		switch {
		case d.IsTutorial:
			stats.Tutorials++
		case d.IsPractical:
			stats.Practicals++
		default:
			stats.Lectures++
		}
		stats.SessionsPerDay[models.DayName(d.DayOfWeek)]++
		stats.RoomUtilization[d.RoomCode]++
		stats.InstructorLoad[d.InstructorName]++
	}

	if s.config.CacheEnabled && s.cache != nil {
		if err := s.cache.Set(ctx, key, stats, s.config.StatsTTL); err != nil {
			s.logger.Warn("statistics cache write failed", zap.Error(err))
		}
	}
	return stats, nil
}

// Conflicts audits the committed schedule for violations introduced by
// out-of-band edits.
func (s *TimetableService) Conflicts(ctx context.Context, timetableID string) (*scheduling.AuditResult, error) {
	if _, err := s.Get(ctx, timetableID); err != nil {
		return nil, err
	}

	details, err := s.sessions.ListDetails(ctx, timetableID, "", nil)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load sessions")
	}

	audit := make([]scheduling.AuditSession, 0, len(details))
	for _, d := range details {
		start, err := scheduling.ParseClock(d.StartTime)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "corrupt slot time")
		}
		end, err := scheduling.ParseClock(d.EndTime)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "corrupt slot time")
		}
		audit = append(audit, scheduling.AuditSession{
			CourseCode:     d.CourseCode,
			InstructorID:   d.InstructorID,
			InstructorName: d.InstructorName,
			RoomID:         d.RoomID,
			RoomCode:       d.RoomCode,
			Section:        d.Section,
			Day:            d.DayOfWeek,
			Start:          start,
			End:            end,
		})
	}

	result := scheduling.Audit(audit, s.config.MinBreakMinutes, models.DayName)
	return &result, nil
}

// Sections lists the distinct sections the generator schedules for.
func (s *TimetableService) Sections(ctx context.Context) (*dto.SectionListResponse, error) {
	sections, err := s.sections.DistinctSections(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list sections")
	}
	if len(sections) == 0 {
		sections = []string{"A"}
	}
	return &dto.SectionListResponse{Sections: sections}, nil
}

// buildCatalog snapshots every catalog table into the pure scheduling
// representation. All clock strings are parsed here so the core never
// touches storage formats.
func (s *TimetableService) buildCatalog(ctx context.Context) (*scheduling.Catalog, error) {
	courses, err := s.courses.ListAllWithInstructors(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load courses")
	}
	slots, err := s.slots.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load slots")
	}
	rooms, err := s.rooms.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load rooms")
	}
	profWindows, err := s.availability.ListProfessorWindows(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load professor availability")
	}
	roomWindows, err := s.availability.ListRoomWindows(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load room availability")
	}
	blackouts, err := s.availability.ListBlackouts(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load blackout windows")
	}
	sections, err := s.sections.DistinctSections(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load sections")
	}

	cat := &scheduling.Catalog{
		Sections:    sections,
		ProfWindows: make(map[string][]scheduling.Window),
		RoomWindows: make(map[string][]scheduling.Window),
	}

	for _, c := range courses {
		cat.Courses = append(cat.Courses, scheduling.Course{
			ID:             c.ID,
			Code:           c.Code,
			Name:           c.Name,
			LectureHours:   c.LectureHours,
			TutorialHours:  c.TutorialHours,
			PracticalHours: c.PracticalHours,
			SelfStudyHours: c.SelfStudyHours,
			Instructors:    c.InstructorIDs,
		})
	}
	for _, sl := range slots {
		start, end, err := parseInterval(sl.StartTime, sl.EndTime)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, fmt.Sprintf("corrupt slot %s", sl.Code))
		}
		cat.Slots = append(cat.Slots, scheduling.Slot{ID: sl.ID, Code: sl.Code, Day: sl.DayOfWeek, Start: start, End: end})
	}
	for _, rm := range rooms {
		cat.Rooms = append(cat.Rooms, scheduling.Room{ID: rm.ID, Code: rm.Code, Capacity: rm.Capacity, Kind: scheduling.RoomKind(rm.Kind)})
	}
	for _, w := range profWindows {
		start, end, err := parseInterval(w.StartTime, w.EndTime)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "corrupt professor availability window")
		}
		cat.ProfWindows[w.ProfessorID] = append(cat.ProfWindows[w.ProfessorID], scheduling.Window{Day: w.DayOfWeek, Start: start, End: end})
	}
	for _, w := range roomWindows {
		start, end, err := parseInterval(w.StartTime, w.EndTime)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "corrupt room availability window")
		}
		cat.RoomWindows[w.RoomID] = append(cat.RoomWindows[w.RoomID], scheduling.Window{Day: w.DayOfWeek, Start: start, End: end})
	}
	for _, b := range blackouts {
		start, end, err := parseInterval(b.StartTime, b.EndTime)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "corrupt blackout window")
		}
		cat.Blackouts = append(cat.Blackouts, scheduling.Window{Day: b.DayOfWeek, Start: start, End: end})
	}
	return cat, nil
}

// commitSessions replaces the timetable's sessions in one transaction.
func (s *TimetableService) commitSessions(ctx context.Context, timetableID string, placed []scheduling.PlacedSession) error {
	tx, err := s.sessions.Begin(ctx)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open transaction")
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err := s.sessions.DeleteByTimetableTx(ctx, tx, timetableID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to replace sessions")
	}

	sessions := make([]models.ClassSession, 0, len(placed))
	for _, p := range placed {
		sessions = append(sessions, models.ClassSession{
			TimetableID:  timetableID,
			CourseID:     p.CourseID,
			SlotID:       p.SlotID,
			RoomID:       p.RoomID,
			InstructorID: p.InstructorID,
			Section:      p.Section,
			IsTutorial:   p.IsTutorial,
			IsPractical:  p.IsPractical,
			ColorCode:    p.ColorCode,
		})
	}
	if err := s.sessions.BulkCreateTx(ctx, tx, sessions); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to insert sessions")
	}

	if err := tx.Commit(); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to commit sessions")
	}
	committed = true

	if err := s.timetables.Touch(ctx, timetableID); err != nil {
		s.logger.Warn("failed to touch timetable", zap.Error(err))
	}
	return nil
}

func (s *TimetableService) invalidate(ctx context.Context, timetableID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, fmt.Sprintf("timetable:%s:*", timetableID)); err != nil {
		s.logger.Warn("cache invalidation failed", zap.String("timetable_id", timetableID), zap.Error(err))
	}
}

func (s *TimetableService) dataKey(timetableID string, query dto.TimetableDataQuery) string {
	day := "all"
	if query.Day != nil {
		day = fmt.Sprintf("%d", *query.Day)
	}
	section := query.Section
	if section == "" {
		section = "all"
	}
	return fmt.Sprintf("timetable:%s:data:%s:%s", timetableID, section, day)
}

func (s *TimetableService) observe(result scheduling.GenerateResult, started time.Time) {
	if s.metrics == nil {
		return
	}
	s.metrics.ObserveGeneration(result.Status, len(result.Conflicts), time.Since(started))
}

func parseInterval(startRaw, endRaw string) (int, int, error) {
	start, err := scheduling.ParseClock(startRaw)
	if err != nil {
		return 0, 0, err
	}
	end, err := scheduling.ParseClock(endRaw)
	if err != nil {
		return 0, 0, err
	}
	if end <= start {
		return 0, 0, fmt.Errorf("interval %s-%s is empty", startRaw, endRaw)
	}
	return start, end, nil
}

func orEmpty(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
