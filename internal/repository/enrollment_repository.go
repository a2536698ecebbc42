package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/campus-timetable-api/internal/models"
)

// EnrollmentRepository handles persistence of course enrollments.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository constructs the repository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// Enroll links students to a course, skipping pairs that already exist.
func (r *EnrollmentRepository) Enroll(ctx context.Context, courseID string, studentIDs []string) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin enroll: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	created := 0
	now := time.Now().UTC()
	for _, studentID := range studentIDs {
		var res int64
		result, execErr := tx.ExecContext(ctx, `INSERT INTO enrollments (id, course_id, student_id, created_at) VALUES ($1, $2, $3, $4) ON CONFLICT (course_id, student_id) DO NOTHING`, uuid.NewString(), courseID, studentID, now)
		if execErr != nil {
			err = fmt.Errorf("enroll student: %w", execErr)
			return 0, err
		}
		if res, execErr = result.RowsAffected(); execErr != nil {
			err = fmt.Errorf("enroll student: %w", execErr)
			return 0, err
		}
		created += int(res)
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit enroll: %w", err)
	}
	return created, nil
}

// Unenroll removes one student from a course.
func (r *EnrollmentRepository) Unenroll(ctx context.Context, courseID, studentID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM enrollments WHERE course_id = $1 AND student_id = $2`, courseID, studentID); err != nil {
		return fmt.Errorf("unenroll student: %w", err)
	}
	return nil
}

// ListEnrolledByCourse returns a course's students joined with identity and
// batch, in roll-number order. The exam scheduler and seating placer both
// depend on this ordering.
func (r *EnrollmentRepository) ListEnrolledByCourse(ctx context.Context, courseID string) ([]models.EnrolledStudent, error) {
	var students []models.EnrolledStudent
	const query = `SELECT e.course_id, e.student_id, s.roll_number, s.name, s.batch, s.section
FROM enrollments e
JOIN students s ON s.id = e.student_id
WHERE e.course_id = $1
ORDER BY s.roll_number ASC`
	if err := r.db.SelectContext(ctx, &students, query, courseID); err != nil {
		return nil, fmt.Errorf("list enrolled students: %w", err)
	}
	return students, nil
}

// ListAllEnrolled returns every enrollment joined with student identity,
// grouped by course in roll-number order.
func (r *EnrollmentRepository) ListAllEnrolled(ctx context.Context) ([]models.EnrolledStudent, error) {
	var students []models.EnrolledStudent
	const query = `SELECT e.course_id, e.student_id, s.roll_number, s.name, s.batch, s.section
FROM enrollments e
JOIN students s ON s.id = e.student_id
ORDER BY e.course_id, s.roll_number ASC`
	if err := r.db.SelectContext(ctx, &students, query); err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	return students, nil
}

// CountByCourse returns enrollment head counts keyed by course id.
func (r *EnrollmentRepository) CountByCourse(ctx context.Context) (map[string]int, error) {
	type row struct {
		CourseID string `db:"course_id"`
		Total    int    `db:"total"`
	}
	var rows []row
	const query = `SELECT course_id, COUNT(*) AS total FROM enrollments GROUP BY course_id`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("count enrollments: %w", err)
	}
	counts := make(map[string]int, len(rows))
	for _, r := range rows {
		counts[r.CourseID] = r.Total
	}
	return counts, nil
}
