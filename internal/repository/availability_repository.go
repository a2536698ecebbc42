package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/campus-timetable-api/internal/models"
)

// AvailabilityRepository handles professor and room availability windows
// plus the campus-wide blackout windows.
type AvailabilityRepository struct {
	db *sqlx.DB
}

// NewAvailabilityRepository constructs the repository.
func NewAvailabilityRepository(db *sqlx.DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

// ListProfessorWindows returns every professor availability window.
func (r *AvailabilityRepository) ListProfessorWindows(ctx context.Context) ([]models.ProfessorAvailability, error) {
	var windows []models.ProfessorAvailability
	const query = `SELECT id, professor_id, day_of_week, start_time, end_time, created_at, updated_at FROM professor_availability ORDER BY professor_id, day_of_week, start_time`
	if err := r.db.SelectContext(ctx, &windows, query); err != nil {
		return nil, fmt.Errorf("list professor availability: %w", err)
	}
	return windows, nil
}

// ListByProfessor returns one professor's windows.
func (r *AvailabilityRepository) ListByProfessor(ctx context.Context, professorID string) ([]models.ProfessorAvailability, error) {
	var windows []models.ProfessorAvailability
	const query = `SELECT id, professor_id, day_of_week, start_time, end_time, created_at, updated_at FROM professor_availability WHERE professor_id = $1 ORDER BY day_of_week, start_time`
	if err := r.db.SelectContext(ctx, &windows, query, professorID); err != nil {
		return nil, fmt.Errorf("list professor availability: %w", err)
	}
	return windows, nil
}

// ReplaceProfessorWindows swaps the full window set of one professor.
func (r *AvailabilityRepository) ReplaceProfessorWindows(ctx context.Context, professorID string, windows []models.ProfessorAvailability) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace professor availability: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM professor_availability WHERE professor_id = $1`, professorID); err != nil {
		return fmt.Errorf("clear professor availability: %w", err)
	}
	now := time.Now().UTC()
	for i := range windows {
		windows[i].ID = uuid.NewString()
		windows[i].ProfessorID = professorID
		windows[i].CreatedAt = now
		windows[i].UpdatedAt = now
		if _, err = tx.NamedExecContext(ctx, `INSERT INTO professor_availability (id, professor_id, day_of_week, start_time, end_time, created_at, updated_at) VALUES (:id, :professor_id, :day_of_week, :start_time, :end_time, :created_at, :updated_at)`, &windows[i]); err != nil {
			return fmt.Errorf("insert professor availability: %w", err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit replace professor availability: %w", err)
	}
	return nil
}

// ListRoomWindows returns every room availability window.
func (r *AvailabilityRepository) ListRoomWindows(ctx context.Context) ([]models.RoomAvailability, error) {
	var windows []models.RoomAvailability
	const query = `SELECT id, room_id, day_of_week, start_time, end_time, created_at, updated_at FROM room_availability ORDER BY room_id, day_of_week, start_time`
	if err := r.db.SelectContext(ctx, &windows, query); err != nil {
		return nil, fmt.Errorf("list room availability: %w", err)
	}
	return windows, nil
}

// ReplaceRoomWindows swaps the full window set of one room.
func (r *AvailabilityRepository) ReplaceRoomWindows(ctx context.Context, roomID string, windows []models.RoomAvailability) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace room availability: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM room_availability WHERE room_id = $1`, roomID); err != nil {
		return fmt.Errorf("clear room availability: %w", err)
	}
	now := time.Now().UTC()
	for i := range windows {
		windows[i].ID = uuid.NewString()
		windows[i].RoomID = roomID
		windows[i].CreatedAt = now
		windows[i].UpdatedAt = now
		if _, err = tx.NamedExecContext(ctx, `INSERT INTO room_availability (id, room_id, day_of_week, start_time, end_time, created_at, updated_at) VALUES (:id, :room_id, :day_of_week, :start_time, :end_time, :created_at, :updated_at)`, &windows[i]); err != nil {
			return fmt.Errorf("insert room availability: %w", err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit replace room availability: %w", err)
	}
	return nil
}

// ListBlackouts returns every blackout window.
func (r *AvailabilityRepository) ListBlackouts(ctx context.Context) ([]models.BlackoutWindow, error) {
	var blackouts []models.BlackoutWindow
	const query = `SELECT id, day_of_week, start_time, end_time, created_at, updated_at FROM blackout_windows ORDER BY day_of_week, start_time`
	if err := r.db.SelectContext(ctx, &blackouts, query); err != nil {
		return nil, fmt.Errorf("list blackout windows: %w", err)
	}
	return blackouts, nil
}

// CreateBlackout stores one blackout window.
func (r *AvailabilityRepository) CreateBlackout(ctx context.Context, blackout *models.BlackoutWindow) error {
	if blackout.ID == "" {
		blackout.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	blackout.CreatedAt = now
	blackout.UpdatedAt = now
	const query = `INSERT INTO blackout_windows (id, day_of_week, start_time, end_time, created_at, updated_at) VALUES (:id, :day_of_week, :start_time, :end_time, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, blackout); err != nil {
		return fmt.Errorf("create blackout window: %w", err)
	}
	return nil
}

// DeleteBlackout removes one blackout window.
func (r *AvailabilityRepository) DeleteBlackout(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM blackout_windows WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete blackout window: %w", err)
	}
	return nil
}
