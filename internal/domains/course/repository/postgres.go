package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"

	"course-platform-backend/internal/domains/course/model"
	"course-platform-backend/pkg/database"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

const courseColumns = `
	id, name, price, category_tag, thumbnail, rating, created_by,
	created_at, updated_at`

type postgresCourseRepository struct{}

func NewPostgresCourseRepository() CourseRepository {
	return &postgresCourseRepository{}
}

func scanCourse(row pgx.Row) (*model.Course, error) {
	course := &model.Course{}
	var tags []string

	err := row.Scan(
		&course.ID,
		&course.Name,
		&course.Price,
		pq.Array(&tags),
		&course.Thumbnail,
		&course.Rating,
		&course.CreatedBy,
		&course.CreatedAt,
		&course.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	course.CategoryTag = tags
	return course, nil
}

// =====================================================
// FIND BY ID
// =====================================================

func (r *postgresCourseRepository) FindByID(ctx context.Context, db database.DBTX, id uuid.UUID) (*model.Course, error) {
	query := `SELECT` + courseColumns + ` FROM course WHERE id = $1`

	course, err := scanCourse(db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	return course, nil
}

// =====================================================
// LIST
// =====================================================

func (r *postgresCourseRepository) List(ctx context.Context, db database.DBTX, filter *model.CourseFilter) ([]*model.Course, int, error) {
	query := `SELECT` + courseColumns + ` FROM course WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM course WHERE 1=1`

	args := []interface{}{}
	countArgs := []interface{}{}
	argCount := 1

	// Tag filter uses array overlap: a course matches when its tag array
	// contains ANY of the requested tags.
	if len(filter.CategoryTags) > 0 {
		clause := fmt.Sprintf(" AND category_tag && $%d::text[]", argCount)
		query += clause
		countQuery += clause
		args = append(args, pq.Array(filter.CategoryTags))
		countArgs = append(countArgs, pq.Array(filter.CategoryTags))
		argCount++
	}

	if filter.CreatedBy != nil {
		clause := fmt.Sprintf(" AND created_by = $%d", argCount)
		query += clause
		countQuery += clause
		args = append(args, *filter.CreatedBy)
		countArgs = append(countArgs, *filter.CreatedBy)
		argCount++
	}

	query += " ORDER BY created_at DESC"
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCount, argCount+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list courses: %w", err)
	}
	defer rows.Close()

	var courses []*model.Course
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read courses: %w", err)
	}

	var total int
	if err := db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count courses: %w", err)
	}

	return courses, total, nil
}

// =====================================================
// CREATE
// =====================================================

func (r *postgresCourseRepository) Create(ctx context.Context, db database.DBTX, course *model.Course) error {
	query := `
		INSERT INTO course (
			id, name, price, category_tag, thumbnail, rating, created_by,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := db.Exec(ctx, query,
		course.ID,
		course.Name,
		course.Price,
		pq.Array([]string(course.CategoryTag)),
		course.Thumbnail,
		course.Rating,
		course.CreatedBy,
		course.CreatedAt,
		course.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create course: %w", err)
	}

	return nil
}

// =====================================================
// UPDATE (PARTIAL)
// =====================================================

func (r *postgresCourseRepository) Update(ctx context.Context, db database.DBTX, id uuid.UUID, changes *model.CourseChanges) (*model.Course, error) {
	sets := []string{"updated_at = NOW()"}
	args := []interface{}{id}
	argCount := 2

	if changes.Name != nil {
		sets = append(sets, fmt.Sprintf("name = $%d", argCount))
		args = append(args, *changes.Name)
		argCount++
	}
	if changes.Price != nil {
		sets = append(sets, fmt.Sprintf("price = $%d", argCount))
		args = append(args, *changes.Price)
		argCount++
	}
	if changes.CategoryTag != nil {
		sets = append(sets, fmt.Sprintf("category_tag = $%d", argCount))
		args = append(args, pq.Array(changes.CategoryTag))
		argCount++
	}
	if changes.Thumbnail != nil {
		sets = append(sets, fmt.Sprintf("thumbnail = $%d", argCount))
		args = append(args, *changes.Thumbnail)
		argCount++
	}
	if changes.Rating != nil {
		sets = append(sets, fmt.Sprintf("rating = $%d", argCount))
		args = append(args, *changes.Rating)
		argCount++
	}

	query := fmt.Sprintf(
		`UPDATE course SET %s WHERE id = $1 RETURNING`+courseColumns,
		strings.Join(sets, ", "),
	)

	course, err := scanCourse(db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to update course: %w", err)
	}

	return course, nil
}

// =====================================================
// DELETE
// =====================================================

func (r *postgresCourseRepository) Delete(ctx context.Context, db database.DBTX, id uuid.UUID) error {
	query := `DELETE FROM course WHERE id = $1`

	result, err := db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrCourseNotFound
	}

	return nil
}

// =====================================================
// EXISTENCE CHECKS
// =====================================================

func (r *postgresCourseRepository) Exists(ctx context.Context, db database.DBTX, id uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM course WHERE id = $1)`

	var exists bool
	if err := db.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check course existence: %w", err)
	}
	return exists, nil
}

func (r *postgresCourseRepository) CreatorExists(ctx context.Context, db database.DBTX, userID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`

	var exists bool
	if err := db.QueryRow(ctx, query, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return exists, nil
}

// =====================================================
// SEARCH BY NAME
// =====================================================

func (r *postgresCourseRepository) SearchByName(ctx context.Context, db database.DBTX, query string, limit, offset int) ([]*model.Course, int, error) {
	pattern := "%" + query + "%"

	listQuery := `SELECT` + courseColumns + `
		FROM course
		WHERE name ILIKE $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := db.Query(ctx, listQuery, pattern, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search courses: %w", err)
	}
	defer rows.Close()

	var courses []*model.Course
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read courses: %w", err)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM course WHERE name ILIKE $1`
	if err := db.QueryRow(ctx, countQuery, pattern).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count courses: %w", err)
	}

	return courses, total, nil
}

// =====================================================
// LIST BY CREATOR
// =====================================================

func (r *postgresCourseRepository) ListByCreator(ctx context.Context, db database.DBTX, creatorID uuid.UUID, limit, offset int) ([]*model.Course, int, error) {
	filter := &model.CourseFilter{
		Limit:     limit,
		Offset:    offset,
		CreatedBy: &creatorID,
	}
	return r.List(ctx, db, filter)
}

// =====================================================
// POPULARITY RANKING
// =====================================================

func (r *postgresCourseRepository) ListPopular(ctx context.Context, db database.DBTX, limit int) ([]*model.PopularCourse, error) {
	query := `
		SELECT
			c.id, c.name, c.price, c.category_tag, c.thumbnail, c.rating,
			c.created_by, c.created_at, c.updated_at,
			COUNT(e.id) AS enrollment_count
		FROM course c
		LEFT JOIN course_enrollment e ON e.course_id = c.id
		GROUP BY c.id
		ORDER BY enrollment_count DESC, c.created_at DESC
		LIMIT $1
	`

	rows, err := db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list popular courses: %w", err)
	}
	defer rows.Close()

	var courses []*model.PopularCourse
	for rows.Next() {
		entry := &model.PopularCourse{}
		var tags []string

		err := rows.Scan(
			&entry.ID,
			&entry.Name,
			&entry.Price,
			pq.Array(&tags),
			&entry.Thumbnail,
			&entry.Rating,
			&entry.CreatedBy,
			&entry.CreatedAt,
			&entry.UpdatedAt,
			&entry.EnrollmentCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan popular course: %w", err)
		}

		entry.CategoryTag = tags
		courses = append(courses, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read popular courses: %w", err)
	}

	return courses, nil
}

// =====================================================
// STATISTICS
// =====================================================

func (r *postgresCourseRepository) Statistics(ctx context.Context, db database.DBTX) (*model.CourseStatisticsResponse, error) {
	query := `
		SELECT
			COUNT(*) AS total_courses,
			COUNT(*) FILTER (WHERE price = 0) AS free_courses,
			COALESCE(ROUND(AVG(price), 2), 0) AS average_price,
			COALESCE(MIN(price), 0) AS min_price,
			COALESCE(MAX(price), 0) AS max_price
		FROM course
	`

	stats := &model.CourseStatisticsResponse{}
	err := db.QueryRow(ctx, query).Scan(
		&stats.TotalCourses,
		&stats.FreeCourses,
		&stats.AveragePrice,
		&stats.MinPrice,
		&stats.MaxPrice,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get course statistics: %w", err)
	}

	return stats, nil
}
