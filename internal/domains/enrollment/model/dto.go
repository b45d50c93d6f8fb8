package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"course-platform-backend/internal/shared/validate"
)

// =====================================================
// REQUEST DTOs
// =====================================================

// EnrollRequest is the body of POST /enrollments. The course id arrives as a
// string so a malformed value fails schema validation instead of JSON binding.
type EnrollRequest struct {
	CourseID string `json:"courseId"`
}

func (r EnrollRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CourseID,
			validation.Required.Error("courseId is required"),
			is.UUID.Error("courseId must be a valid UUID"),
		),
	)
}

// CourseUUID parses the already-validated course id.
func (r EnrollRequest) CourseUUID() (uuid.UUID, error) {
	return uuid.Parse(r.CourseID)
}

// MyCoursesRequest paginates the authenticated user's enrollment listing.
type MyCoursesRequest struct {
	Limit  *int `form:"limit"`
	Offset *int `form:"offset"`
}

func (r MyCoursesRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Limit,
			validation.Min(validate.LimitMin).Error("limit must be at least 1"),
			validation.Max(validate.LimitMax).Error("limit must be at most 100"),
		),
		validation.Field(&r.Offset,
			validation.Min(0).Error("offset must not be negative"),
		),
	)
}

// =====================================================
// RESPONSE DTOs
// =====================================================

// EnrollmentResponse is returned by enroll and single-enrollment reads.
// Price is numeric here, unlike the catalog's decimal-string rendering.
type EnrollmentResponse struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"userId"`
	CourseID   uuid.UUID `json:"courseId"`
	CourseName string    `json:"courseName"`
	Price      float64   `json:"price"`
	Status     string    `json:"status"`
	EnrolledAt time.Time `json:"enrolledAt"`
}

// EnrolledCourseSummary is one line of the my-courses listing.
type EnrolledCourseSummary struct {
	EnrollmentID uuid.UUID        `json:"enrollmentId"`
	CourseID     uuid.UUID        `json:"courseId"`
	Name         string           `json:"name"`
	Price        float64          `json:"price"`
	CategoryTag  []string         `json:"categoryTag"`
	Thumbnail    *string          `json:"thumbnail"`
	Rating       *decimal.Decimal `json:"rating"`
	Status       string           `json:"status"`
	EnrolledAt   time.Time        `json:"enrolledAt"`
}

// EnrollmentStats summarizes the listing. Completed stays zero until
// progression tracking lands. TotalSpent, AveragePrice and Categories are
// reduced over the fetched page of rows, not the whole enrollment history.
type EnrollmentStats struct {
	Total        int      `json:"total"`
	Active       int      `json:"active"`
	Completed    int      `json:"completed"`
	TotalSpent   float64  `json:"totalSpent"`
	AveragePrice float64  `json:"averagePrice"`
	Categories   []string `json:"categories"`
}

// MyCoursesResponse is the full my-courses payload.
type MyCoursesResponse struct {
	Courses []EnrolledCourseSummary `json:"courses"`
	Stats   EnrollmentStats         `json:"stats"`
	Total   int                     `json:"total"`
	Limit   int                     `json:"limit"`
	Offset  int                     `json:"offset"`
}

// UnenrollResponse acknowledges a successful unenroll.
type UnenrollResponse struct {
	Success bool      `json:"success"`
	ID      uuid.UUID `json:"id"`
}

// UserStatisticsResponse aggregates one user's enrollment activity.
type UserStatisticsResponse struct {
	TotalEnrollments int     `json:"totalEnrollments"`
	FreeCourses      int     `json:"freeCourses"`
	PaidCourses      int     `json:"paidCourses"`
	TotalSpent       float64 `json:"totalSpent"`
}
