package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"

	"course-platform-backend/internal/domains/enrollment/model"
	"course-platform-backend/pkg/database"
)

type postgresEnrollmentRepository struct{}

// NewPostgresEnrollmentRepository returns the pgx-backed enrollment gateway.
// The repository is stateless; connections arrive per call.
func NewPostgresEnrollmentRepository() EnrollmentRepository {
	return &postgresEnrollmentRepository{}
}

const enrollmentColumns = "id, user_id, course_id, created_at, updated_at"

func scanEnrollment(row pgx.Row) (*model.Enrollment, error) {
	var e model.Enrollment
	err := row.Scan(&e.ID, &e.UserID, &e.CourseID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// =====================================================
// WRITES
// =====================================================

func (r *postgresEnrollmentRepository) Create(ctx context.Context, db database.DBTX, enrollment *model.Enrollment) error {
	query := `
		INSERT INTO course_enrollment (id, user_id, course_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := db.Exec(ctx, query,
		enrollment.ID,
		enrollment.UserID,
		enrollment.CourseID,
		enrollment.CreatedAt,
		enrollment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create enrollment: %w", err)
	}
	return nil
}

func (r *postgresEnrollmentRepository) Delete(ctx context.Context, db database.DBTX, id uuid.UUID) error {
	tag, err := db.Exec(ctx, `DELETE FROM course_enrollment WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete enrollment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrEnrollmentNotFound
	}
	return nil
}

func (r *postgresEnrollmentRepository) DeleteByUserAndCourse(ctx context.Context, db database.DBTX, userID, courseID uuid.UUID) (int, error) {
	tag, err := db.Exec(ctx,
		`DELETE FROM course_enrollment WHERE user_id = $1 AND course_id = $2`,
		userID, courseID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete enrollments: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// =====================================================
// READS
// =====================================================

func (r *postgresEnrollmentRepository) FindByID(ctx context.Context, db database.DBTX, id uuid.UUID) (*model.Enrollment, error) {
	query := fmt.Sprintf(`SELECT %s FROM course_enrollment WHERE id = $1`, enrollmentColumns)

	enrollment, err := scanEnrollment(db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("failed to find enrollment: %w", err)
	}
	return enrollment, nil
}

func (r *postgresEnrollmentRepository) FindByUserAndCourse(ctx context.Context, db database.DBTX, userID, courseID uuid.UUID) (*model.Enrollment, error) {
	// Duplicates are possible; the earliest row is the canonical one.
	query := fmt.Sprintf(`
		SELECT %s FROM course_enrollment
		WHERE user_id = $1 AND course_id = $2
		ORDER BY created_at ASC
		LIMIT 1`, enrollmentColumns)

	enrollment, err := scanEnrollment(db.QueryRow(ctx, query, userID, courseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("failed to find enrollment: %w", err)
	}
	return enrollment, nil
}

func (r *postgresEnrollmentRepository) FindByUser(ctx context.Context, db database.DBTX, userID uuid.UUID, limit, offset int) ([]*model.EnrollmentWithCourse, int, error) {
	query := `
		SELECT e.id, e.user_id, e.course_id, e.created_at, e.updated_at,
		       c.name, c.price, c.category_tag, c.thumbnail, c.rating, c.created_at
		FROM course_enrollment e
		JOIN course c ON c.id = e.course_id
		WHERE e.user_id = $1
		ORDER BY e.created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list enrollments: %w", err)
	}
	defer rows.Close()

	var enrollments []*model.EnrollmentWithCourse
	for rows.Next() {
		var e model.EnrollmentWithCourse
		var tags pq.StringArray
		err := rows.Scan(
			&e.ID, &e.UserID, &e.CourseID, &e.CreatedAt, &e.UpdatedAt,
			&e.CourseName, &e.Price, &tags, &e.Thumbnail, &e.Rating, &e.CourseCreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan enrollment: %w", err)
		}
		e.CategoryTag = []string(tags)
		enrollments = append(enrollments, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate enrollments: %w", err)
	}

	var total int
	err = db.QueryRow(ctx,
		`SELECT COUNT(*) FROM course_enrollment WHERE user_id = $1`, userID,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count enrollments: %w", err)
	}

	return enrollments, total, nil
}

func (r *postgresEnrollmentRepository) FindByCourse(ctx context.Context, db database.DBTX, courseID uuid.UUID, limit, offset int) ([]*model.Enrollment, int, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM course_enrollment
		WHERE course_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, enrollmentColumns)

	rows, err := db.Query(ctx, query, courseID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list enrollments: %w", err)
	}
	defer rows.Close()

	var enrollments []*model.Enrollment
	for rows.Next() {
		var e model.Enrollment
		if err := rows.Scan(&e.ID, &e.UserID, &e.CourseID, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan enrollment: %w", err)
		}
		enrollments = append(enrollments, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate enrollments: %w", err)
	}

	total, err := r.CountByCourse(ctx, db, courseID)
	if err != nil {
		return nil, 0, err
	}
	return enrollments, total, nil
}

func (r *postgresEnrollmentRepository) Exists(ctx context.Context, db database.DBTX, userID, courseID uuid.UUID) (bool, error) {
	var exists bool
	err := db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM course_enrollment WHERE user_id = $1 AND course_id = $2)`,
		userID, courseID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check enrollment: %w", err)
	}
	return exists, nil
}

func (r *postgresEnrollmentRepository) CountByCourse(ctx context.Context, db database.DBTX, courseID uuid.UUID) (int, error) {
	var count int
	err := db.QueryRow(ctx,
		`SELECT COUNT(*) FROM course_enrollment WHERE course_id = $1`, courseID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count enrollments: %w", err)
	}
	return count, nil
}

func (r *postgresEnrollmentRepository) CountByUser(ctx context.Context, db database.DBTX, userID uuid.UUID) (int, error) {
	var count int
	err := db.QueryRow(ctx,
		`SELECT COUNT(*) FROM course_enrollment WHERE user_id = $1`, userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count enrollments: %w", err)
	}
	return count, nil
}

func (r *postgresEnrollmentRepository) UserStatistics(ctx context.Context, db database.DBTX, userID uuid.UUID) (*model.UserStatisticsResponse, error) {
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE c.price = 0),
		       COUNT(*) FILTER (WHERE c.price > 0),
		       COALESCE(SUM(c.price), 0)
		FROM course_enrollment e
		JOIN course c ON c.id = e.course_id
		WHERE e.user_id = $1`

	var stats model.UserStatisticsResponse
	err := db.QueryRow(ctx, query, userID).Scan(
		&stats.TotalEnrollments,
		&stats.FreeCourses,
		&stats.PaidCourses,
		&stats.TotalSpent,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate user statistics: %w", err)
	}
	return &stats, nil
}

// =====================================================
// ELIGIBILITY
// =====================================================

func (r *postgresEnrollmentRepository) CheckEligibility(ctx context.Context, db database.DBTX, userID, courseID uuid.UUID) (*Eligibility, error) {
	query := `
		SELECT EXISTS(SELECT 1 FROM users WHERE id = $1),
		       EXISTS(SELECT 1 FROM course WHERE id = $2),
		       EXISTS(SELECT 1 FROM course_enrollment WHERE user_id = $1 AND course_id = $2)`

	var e Eligibility
	err := db.QueryRow(ctx, query, userID, courseID).Scan(
		&e.UserExists,
		&e.CourseExists,
		&e.AlreadyEnrolled,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to check eligibility: %w", err)
	}
	return &e, nil
}

func (r *postgresEnrollmentRepository) UserExists(ctx context.Context, db database.DBTX, userID uuid.UUID) (bool, error) {
	var exists bool
	err := db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, userID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check user: %w", err)
	}
	return exists, nil
}
