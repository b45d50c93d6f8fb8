package service

import (
	"context"

	"github.com/google/uuid"

	"course-platform-backend/internal/domains/course/model"
	"course-platform-backend/pkg/database"
)

// ServiceInterface is the course use-case layer. Each method is a stateless
// single-shot operation: validated input plus caller identity in, success
// output or taxonomy error out.
type ServiceInterface interface {
	ListCourses(ctx context.Context, req model.ListCoursesRequest) (*model.CourseListResponse, error)
	GetCourse(ctx context.Context, id uuid.UUID) (*model.CourseResponse, error)
	// CreateCourse accepts anonymous callers; callerID is non-nil only when
	// the request was authenticated and becomes the creator attribution.
	CreateCourse(ctx context.Context, callerID *uuid.UUID, req model.CreateCourseRequest) (*model.CourseResponse, error)
	UpdateCourse(ctx context.Context, id uuid.UUID, req model.UpdateCourseRequest) (*model.CourseResponse, error)
	DeleteCourse(ctx context.Context, id uuid.UUID) (*model.DeleteCourseResponse, error)

	SearchCourses(ctx context.Context, req model.SearchCoursesRequest) (*model.CourseListResponse, error)
	PopularCourses(ctx context.Context, limit *int) ([]model.PopularCourseResponse, error)
	CourseStatistics(ctx context.Context) (*model.CourseStatisticsResponse, error)
}

// EnrollmentCounter is the slice of the enrollment gateway the course domain
// needs for its delete guard.
type EnrollmentCounter interface {
	CountByCourse(ctx context.Context, db database.DBTX, courseID uuid.UUID) (int, error)
}
