package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/campus-timetable-api/internal/models"
)

// SessionRepository handles persistence of committed class sessions.
type SessionRepository struct {
	db *sqlx.DB
}

// NewSessionRepository constructs the repository.
func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Begin opens a transaction for a replace-and-insert generation commit.
func (r *SessionRepository) Begin(ctx context.Context) (*sqlx.Tx, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin session tx: %w", err)
	}
	return tx, nil
}

// DeleteByTimetableTx removes every session of a timetable inside tx and
// returns the count removed.
func (r *SessionRepository) DeleteByTimetableTx(ctx context.Context, tx *sqlx.Tx, timetableID string) (int, error) {
	res, err := tx.ExecContext(ctx, `DELETE FROM class_sessions WHERE timetable_id = $1`, timetableID)
	if err != nil {
		return 0, fmt.Errorf("delete sessions: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete sessions: %w", err)
	}
	return int(affected), nil
}

// BulkCreateTx inserts sessions inside an existing transaction.
func (r *SessionRepository) BulkCreateTx(ctx context.Context, tx *sqlx.Tx, sessions []models.ClassSession) error {
	now := time.Now().UTC()
	for i := range sessions {
		payload := sessions[i]
		if payload.ID == "" {
			payload.ID = uuid.NewString()
		}
		payload.CreatedAt = now
		payload.UpdatedAt = now

		if _, err := tx.NamedExecContext(ctx, `INSERT INTO class_sessions (id, timetable_id, course_id, slot_id, room_id, instructor_id, section, is_tutorial, is_practical, color_code, created_at, updated_at) VALUES (:id, :timetable_id, :course_id, :slot_id, :room_id, :instructor_id, :section, :is_tutorial, :is_practical, :color_code, :created_at, :updated_at)`, &payload); err != nil {
			return fmt.Errorf("bulk insert session: %w", err)
		}
		sessions[i] = payload
	}
	return nil
}

// DeleteByTimetable removes every session of a timetable outside any
// caller transaction and returns the count removed.
func (r *SessionRepository) DeleteByTimetable(ctx context.Context, timetableID string) (int, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM class_sessions WHERE timetable_id = $1`, timetableID)
	if err != nil {
		return 0, fmt.Errorf("delete sessions: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete sessions: %w", err)
	}
	return int(affected), nil
}

// CountByTimetable returns the number of committed sessions.
func (r *SessionRepository) CountByTimetable(ctx context.Context, timetableID string) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM class_sessions WHERE timetable_id = $1`, timetableID); err != nil {
		return 0, fmt.Errorf("count sessions: %w", err)
	}
	return total, nil
}

// DeleteByIDs removes the named sessions and returns the count removed.
// The reschedule engine tears down sessions invalidated by catalog
// changes before rerunning the generator.
func (r *SessionRepository) DeleteByIDs(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf("DELETE FROM class_sessions WHERE id IN (%s)", strings.Join(placeholders, ", "))
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete sessions by id: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete sessions by id: %w", err)
	}
	return int(affected), nil
}

// ListDetails returns a timetable's sessions flattened with their joined
// slot, course, room, and instructor columns, ordered by day and start.
func (r *SessionRepository) ListDetails(ctx context.Context, timetableID string, section string, day *int) ([]models.SessionDetail, error) {
	base := `SELECT cs.id, cs.timetable_id, cs.course_id, c.code AS course_code, c.name AS course_name,
cs.slot_id, sl.day_of_week, sl.start_time, sl.end_time,
cs.room_id, rm.code AS room_code, rm.name AS room_name,
cs.instructor_id, p.name AS instructor_name,
cs.section, cs.is_tutorial, cs.is_practical, cs.color_code
FROM class_sessions cs
JOIN courses c ON c.id = cs.course_id
JOIN slots sl ON sl.id = cs.slot_id
JOIN rooms rm ON rm.id = cs.room_id
JOIN professors p ON p.id = cs.instructor_id
WHERE cs.timetable_id = $1`
	args := []interface{}{timetableID}

	if section != "" {
		args = append(args, section)
		base += fmt.Sprintf(" AND cs.section = $%d", len(args))
	}
	if day != nil {
		args = append(args, *day)
		base += fmt.Sprintf(" AND sl.day_of_week = $%d", len(args))
	}
	base += " ORDER BY sl.day_of_week ASC, sl.start_time ASC, c.code ASC"

	var details []models.SessionDetail
	if err := r.db.SelectContext(ctx, &details, base, args...); err != nil {
		return nil, fmt.Errorf("list session details: %w", err)
	}
	return details, nil
}
