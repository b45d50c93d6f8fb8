package service

import (
	"context"

	"github.com/google/uuid"

	coursemodel "course-platform-backend/internal/domains/course/model"
	"course-platform-backend/internal/domains/enrollment/model"
	"course-platform-backend/pkg/database"
)

// ServiceInterface is the enrollment use-case layer. The caller identity is
// always present; handlers reject unauthenticated requests before reaching
// the service.
type ServiceInterface interface {
	Enroll(ctx context.Context, userID uuid.UUID, req model.EnrollRequest) (*model.EnrollmentResponse, error)
	MyCourses(ctx context.Context, userID uuid.UUID, req model.MyCoursesRequest) (*model.MyCoursesResponse, error)
	Unenroll(ctx context.Context, userID, enrollmentID uuid.UUID) (*model.UnenrollResponse, error)
	MyStatistics(ctx context.Context, userID uuid.UUID) (*model.UserStatisticsResponse, error)
}

// CourseReader is the slice of the catalog gateway enrollment needs when
// confirming a course and building the enroll payload.
type CourseReader interface {
	FindByID(ctx context.Context, db database.DBTX, id uuid.UUID) (*coursemodel.Course, error)
}
