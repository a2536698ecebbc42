package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/campus-timetable-api/internal/models"
)

const timetableColumns = "id, name, effective_from, effective_to, created_at, updated_at"

// TimetableRepository handles persistence of timetable containers.
type TimetableRepository struct {
	db *sqlx.DB
}

// NewTimetableRepository constructs the repository.
func NewTimetableRepository(db *sqlx.DB) *TimetableRepository {
	return &TimetableRepository{db: db}
}

// List returns every timetable, newest first.
func (r *TimetableRepository) List(ctx context.Context) ([]models.Timetable, error) {
	var timetables []models.Timetable
	query := fmt.Sprintf("SELECT %s FROM timetables ORDER BY created_at DESC", timetableColumns)
	if err := r.db.SelectContext(ctx, &timetables, query); err != nil {
		return nil, fmt.Errorf("list timetables: %w", err)
	}
	return timetables, nil
}

// FindByID loads a timetable by id.
func (r *TimetableRepository) FindByID(ctx context.Context, id string) (*models.Timetable, error) {
	var timetable models.Timetable
	query := fmt.Sprintf("SELECT %s FROM timetables WHERE id = $1", timetableColumns)
	if err := r.db.GetContext(ctx, &timetable, query, id); err != nil {
		return nil, err
	}
	return &timetable, nil
}

// Create stores a new timetable container.
func (r *TimetableRepository) Create(ctx context.Context, timetable *models.Timetable) error {
	if timetable.ID == "" {
		timetable.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	timetable.CreatedAt = now
	timetable.UpdatedAt = now

	const query = `INSERT INTO timetables (id, name, effective_from, effective_to, created_at, updated_at) VALUES (:id, :name, :effective_from, :effective_to, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, timetable); err != nil {
		return fmt.Errorf("create timetable: %w", err)
	}
	return nil
}

// Touch bumps the timetable's updated_at after a generation run.
func (r *TimetableRepository) Touch(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE timetables SET updated_at = $1 WHERE id = $2`, time.Now().UTC(), id); err != nil {
		return fmt.Errorf("touch timetable: %w", err)
	}
	return nil
}

// Delete removes a timetable; its sessions cascade.
func (r *TimetableRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM timetables WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete timetable: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete timetable: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
