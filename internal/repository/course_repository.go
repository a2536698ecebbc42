package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/campus-timetable-api/internal/models"
)

const courseColumns = "id, code, name, lecture_hours, tutorial_hours, practical_hours, self_study_hours, credits, is_half_semester, is_elective, created_at, updated_at"

// CourseRepository handles persistence of courses and their instructor links.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository constructs the repository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// List returns courses with optional search and pagination.
func (r *CourseRepository) List(ctx context.Context, search string, page, perPage int) ([]models.Course, int, error) {
	base := "FROM courses WHERE 1=1"
	var args []interface{}

	if search = normalizeSearch(search); search != "" {
		base += fmt.Sprintf(" AND (code ILIKE $%d OR name ILIKE $%d)", len(args)+1, len(args)+1)
		args = append(args, "%"+search+"%")
	}

	if page < 1 {
		page = 1
	}
	if perPage <= 0 || perPage > 200 {
		perPage = 20
	}
	offset := (page - 1) * perPage

	query := fmt.Sprintf("SELECT %s %s ORDER BY code ASC LIMIT %d OFFSET %d", courseColumns, base, perPage, offset)
	var courses []models.Course
	if err := r.db.SelectContext(ctx, &courses, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list courses: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, fmt.Sprintf("SELECT COUNT(*) %s", base), args...); err != nil {
		return nil, 0, fmt.Errorf("count courses: %w", err)
	}
	return courses, total, nil
}

// ListAllWithInstructors loads every course with its instructor IDs in
// link order, as consumed by the generator snapshot.
func (r *CourseRepository) ListAllWithInstructors(ctx context.Context) ([]models.Course, error) {
	var courses []models.Course
	query := fmt.Sprintf("SELECT %s FROM courses ORDER BY code ASC", courseColumns)
	if err := r.db.SelectContext(ctx, &courses, query); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	if len(courses) == 0 {
		return courses, nil
	}

	type link struct {
		CourseID     string `db:"course_id"`
		InstructorID string `db:"professor_id"`
	}
	var links []link
	const linkQuery = `SELECT course_id, professor_id FROM course_instructors ORDER BY course_id, position ASC`
	if err := r.db.SelectContext(ctx, &links, linkQuery); err != nil {
		return nil, fmt.Errorf("list course instructors: %w", err)
	}

	byCourse := make(map[string][]string, len(courses))
	for _, l := range links {
		byCourse[l.CourseID] = append(byCourse[l.CourseID], l.InstructorID)
	}
	for i := range courses {
		courses[i].InstructorIDs = byCourse[courses[i].ID]
	}
	return courses, nil
}

// FindByID loads a course and its instructor links.
func (r *CourseRepository) FindByID(ctx context.Context, id string) (*models.Course, error) {
	var course models.Course
	query := fmt.Sprintf("SELECT %s FROM courses WHERE id = $1", courseColumns)
	if err := r.db.GetContext(ctx, &course, query, id); err != nil {
		return nil, err
	}
	const linkQuery = `SELECT professor_id FROM course_instructors WHERE course_id = $1 ORDER BY position ASC`
	if err := r.db.SelectContext(ctx, &course.InstructorIDs, linkQuery, id); err != nil {
		return nil, fmt.Errorf("load course instructors: %w", err)
	}
	return &course, nil
}

// FindByCode loads a course by its natural key. Returns (nil, nil) when
// absent so import flows can branch on existence.
func (r *CourseRepository) FindByCode(ctx context.Context, code string) (*models.Course, error) {
	var course models.Course
	query := fmt.Sprintf("SELECT %s FROM courses WHERE code = $1", courseColumns)
	if err := r.db.GetContext(ctx, &course, query, code); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find course by code: %w", err)
	}
	return &course, nil
}

// Create stores a new course and its instructor links.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	if course.ID == "" {
		course.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	course.CreatedAt = now
	course.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create course: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const query = `INSERT INTO courses (id, code, name, lecture_hours, tutorial_hours, practical_hours, self_study_hours, credits, is_half_semester, is_elective, created_at, updated_at) VALUES (:id, :code, :name, :lecture_hours, :tutorial_hours, :practical_hours, :self_study_hours, :credits, :is_half_semester, :is_elective, :created_at, :updated_at)`
	if _, err = tx.NamedExecContext(ctx, query, course); err != nil {
		return fmt.Errorf("create course: %w", err)
	}
	if err = r.replaceInstructorsTx(ctx, tx, course.ID, course.InstructorIDs); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit create course: %w", err)
	}
	return nil
}

// Update modifies a course and replaces its instructor links.
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	course.UpdatedAt = time.Now().UTC()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update course: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const query = `UPDATE courses SET code = :code, name = :name, lecture_hours = :lecture_hours, tutorial_hours = :tutorial_hours, practical_hours = :practical_hours, self_study_hours = :self_study_hours, credits = :credits, is_half_semester = :is_half_semester, is_elective = :is_elective, updated_at = :updated_at WHERE id = :id`
	if _, err = tx.NamedExecContext(ctx, query, course); err != nil {
		return fmt.Errorf("update course: %w", err)
	}
	if err = r.replaceInstructorsTx(ctx, tx, course.ID, course.InstructorIDs); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit update course: %w", err)
	}
	return nil
}

func (r *CourseRepository) replaceInstructorsTx(ctx context.Context, tx *sqlx.Tx, courseID string, instructorIDs []string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM course_instructors WHERE course_id = $1`, courseID); err != nil {
		return fmt.Errorf("clear course instructors: %w", err)
	}
	for i, instructorID := range instructorIDs {
		if _, err := tx.ExecContext(ctx, `INSERT INTO course_instructors (id, course_id, professor_id, position) VALUES ($1, $2, $3, $4)`, uuid.NewString(), courseID, instructorID, i); err != nil {
			return fmt.Errorf("link course instructor: %w", err)
		}
	}
	return nil
}

// Delete removes a course; links and enrollments cascade.
func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// normalizeSearch trims and collapses inner whitespace for ILIKE use.
func normalizeSearch(raw string) string {
	return strings.Join(strings.Fields(raw), " ")
}
