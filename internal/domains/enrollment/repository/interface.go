package repository

import (
	"context"

	"github.com/google/uuid"

	"course-platform-backend/internal/domains/enrollment/model"
	"course-platform-backend/pkg/database"
)

// EnrollmentRepository is the storage gateway for enrollments. Every method
// takes the connection handle explicitly so callers choose between the pool
// and an open transaction.
type EnrollmentRepository interface {
	Create(ctx context.Context, db database.DBTX, enrollment *model.Enrollment) error
	FindByID(ctx context.Context, db database.DBTX, id uuid.UUID) (*model.Enrollment, error)
	// FindByUserAndCourse returns the earliest enrollment for the pair, or
	// model.ErrEnrollmentNotFound when none exists.
	FindByUserAndCourse(ctx context.Context, db database.DBTX, userID, courseID uuid.UUID) (*model.Enrollment, error)
	// FindByUser lists the user's enrollments joined with their courses,
	// newest first, and returns the unpaginated total.
	FindByUser(ctx context.Context, db database.DBTX, userID uuid.UUID, limit, offset int) ([]*model.EnrollmentWithCourse, int, error)
	FindByCourse(ctx context.Context, db database.DBTX, courseID uuid.UUID, limit, offset int) ([]*model.Enrollment, int, error)
	Delete(ctx context.Context, db database.DBTX, id uuid.UUID) error
	DeleteByUserAndCourse(ctx context.Context, db database.DBTX, userID, courseID uuid.UUID) (int, error)
	Exists(ctx context.Context, db database.DBTX, userID, courseID uuid.UUID) (bool, error)
	CountByCourse(ctx context.Context, db database.DBTX, courseID uuid.UUID) (int, error)
	CountByUser(ctx context.Context, db database.DBTX, userID uuid.UUID) (int, error)
	UserStatistics(ctx context.Context, db database.DBTX, userID uuid.UUID) (*model.UserStatisticsResponse, error)

	// CheckEligibility verifies in one round trip that the user and the
	// course both exist and that no enrollment links them yet.
	CheckEligibility(ctx context.Context, db database.DBTX, userID, courseID uuid.UUID) (*Eligibility, error)
	UserExists(ctx context.Context, db database.DBTX, userID uuid.UUID) (bool, error)
}

// Eligibility is the result of the pre-enrollment probe.
type Eligibility struct {
	UserExists      bool
	CourseExists    bool
	AlreadyEnrolled bool
}

// Eligible reports whether enrollment may proceed.
func (e *Eligibility) Eligible() bool {
	return e.UserExists && e.CourseExists && !e.AlreadyEnrolled
}
