package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/campus-timetable-api/internal/models"
)

// ExamRepository handles persistence of exams, their room allocations,
// seating assignments, and invigilation duties.
type ExamRepository struct {
	db *sqlx.DB
}

// NewExamRepository constructs the repository.
func NewExamRepository(db *sqlx.DB) *ExamRepository {
	return &ExamRepository{db: db}
}

// Begin opens a transaction for a replace-and-insert exam commit.
func (r *ExamRepository) Begin(ctx context.Context) (*sqlx.Tx, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin exam tx: %w", err)
	}
	return tx, nil
}

// DeleteAllTx wipes every exam inside tx; allocations, seating, and
// duties cascade. Exam generation is a global replace.
func (r *ExamRepository) DeleteAllTx(ctx context.Context, tx *sqlx.Tx) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM exams`); err != nil {
		return fmt.Errorf("delete exams: %w", err)
	}
	return nil
}

// CreateTx inserts one exam and its room allocations inside tx.
func (r *ExamRepository) CreateTx(ctx context.Context, tx *sqlx.Tx, exam *models.Exam, allocations []models.ExamRoomAllocation) error {
	if exam.ID == "" {
		exam.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	exam.CreatedAt = now
	exam.UpdatedAt = now

	if _, err := tx.NamedExecContext(ctx, `INSERT INTO exams (id, course_id, date, start_time, end_time, created_at, updated_at) VALUES (:id, :course_id, :date, :start_time, :end_time, :created_at, :updated_at)`, exam); err != nil {
		return fmt.Errorf("create exam: %w", err)
	}

	for i := range allocations {
		allocations[i].ID = uuid.NewString()
		allocations[i].ExamID = exam.ID
		allocations[i].CreatedAt = now
		if _, err := tx.NamedExecContext(ctx, `INSERT INTO exam_room_allocations (id, exam_id, room_id, capacity_used, created_at) VALUES (:id, :exam_id, :room_id, :capacity_used, :created_at)`, &allocations[i]); err != nil {
			return fmt.Errorf("create exam room allocation: %w", err)
		}
	}
	return nil
}

// FindByID loads an exam by id.
func (r *ExamRepository) FindByID(ctx context.Context, id string) (*models.Exam, error) {
	var exam models.Exam
	const query = `SELECT id, course_id, date, start_time, end_time, created_at, updated_at FROM exams WHERE id = $1`
	if err := r.db.GetContext(ctx, &exam, query, id); err != nil {
		return nil, err
	}
	return &exam, nil
}

// ListAll returns every exam ordered by date and course.
func (r *ExamRepository) ListAll(ctx context.Context) ([]models.Exam, error) {
	var exams []models.Exam
	const query = `SELECT id, course_id, date, start_time, end_time, created_at, updated_at FROM exams ORDER BY date ASC, course_id ASC`
	if err := r.db.SelectContext(ctx, &exams, query); err != nil {
		return nil, fmt.Errorf("list exams: %w", err)
	}
	return exams, nil
}

// ListAllocations returns an exam's room allocations in insertion order.
func (r *ExamRepository) ListAllocations(ctx context.Context, examID string) ([]models.ExamRoomAllocation, error) {
	var allocations []models.ExamRoomAllocation
	const query = `SELECT id, exam_id, room_id, capacity_used, created_at FROM exam_room_allocations WHERE exam_id = $1 ORDER BY created_at ASC, id ASC`
	if err := r.db.SelectContext(ctx, &allocations, query, examID); err != nil {
		return nil, fmt.Errorf("list exam room allocations: %w", err)
	}
	return allocations, nil
}

// ReplaceSeating swaps the full seating assignment set of one exam.
func (r *ExamRepository) ReplaceSeating(ctx context.Context, examID string, seats []models.SeatingAssignment) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace seating: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM seating_assignments WHERE exam_id = $1`, examID); err != nil {
		return fmt.Errorf("clear seating: %w", err)
	}
	now := time.Now().UTC()
	for i := range seats {
		seats[i].ID = uuid.NewString()
		seats[i].ExamID = examID
		seats[i].CreatedAt = now
		if _, err = tx.NamedExecContext(ctx, `INSERT INTO seating_assignments (id, exam_id, room_id, student_id, row_index, col_index, created_at) VALUES (:id, :exam_id, :room_id, :student_id, :row_index, :col_index, :created_at)`, &seats[i]); err != nil {
			return fmt.Errorf("insert seating assignment: %w", err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit replace seating: %w", err)
	}
	return nil
}

// ListSeatingDetails returns an exam's seating joined with student
// identity, ordered by room then grid position.
func (r *ExamRepository) ListSeatingDetails(ctx context.Context, examID string) ([]models.SeatingDetail, error) {
	var details []models.SeatingDetail
	const query = `SELECT sa.room_id, rm.code AS room_code, sa.student_id, s.roll_number, s.name AS student_name, sa.row_index, sa.col_index
FROM seating_assignments sa
JOIN rooms rm ON rm.id = sa.room_id
JOIN students s ON s.id = sa.student_id
WHERE sa.exam_id = $1
ORDER BY rm.code ASC, sa.row_index ASC, sa.col_index ASC`
	if err := r.db.SelectContext(ctx, &details, query, examID); err != nil {
		return nil, fmt.Errorf("list seating details: %w", err)
	}
	return details, nil
}

// ReplaceDuties swaps the invigilation duty set of one exam.
func (r *ExamRepository) ReplaceDuties(ctx context.Context, examID string, duties []models.InvigilationDuty) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace duties: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM invigilation_duties WHERE exam_id = $1`, examID); err != nil {
		return fmt.Errorf("clear duties: %w", err)
	}
	now := time.Now().UTC()
	for i := range duties {
		duties[i].ID = uuid.NewString()
		duties[i].ExamID = examID
		duties[i].CreatedAt = now
		if _, err = tx.NamedExecContext(ctx, `INSERT INTO invigilation_duties (id, exam_id, professor_id, room_id, created_at) VALUES (:id, :exam_id, :professor_id, :room_id, :created_at)`, &duties[i]); err != nil {
			return fmt.Errorf("insert invigilation duty: %w", err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit replace duties: %w", err)
	}
	return nil
}

// ListDuties returns an exam's duties in insertion order.
func (r *ExamRepository) ListDuties(ctx context.Context, examID string) ([]models.InvigilationDuty, error) {
	var duties []models.InvigilationDuty
	const query = `SELECT id, exam_id, professor_id, room_id, created_at FROM invigilation_duties WHERE exam_id = $1 ORDER BY created_at ASC, id ASC`
	if err := r.db.SelectContext(ctx, &duties, query, examID); err != nil {
		return nil, fmt.Errorf("list invigilation duties: %w", err)
	}
	return duties, nil
}
