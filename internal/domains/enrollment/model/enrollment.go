package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	coursemodel "course-platform-backend/internal/domains/course/model"
)

// EnrollmentStatus classifies an enrollment in API responses. The storage
// model does not track progression yet, so every stored enrollment reports
// as active.
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
)

// Enrollment ties a user to a course. Duplicate (user, course) pairs are not
// blocked at the storage level; the service checks before inserting.
type Enrollment struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"userId" db:"user_id"`
	CourseID  uuid.UUID `json:"courseId" db:"course_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// EnrollmentWithCourse is the joined row shape used by listings, carrying
// the catalog fields alongside the enrollment itself.
type EnrollmentWithCourse struct {
	Enrollment
	CourseName      string           `json:"courseName" db:"course_name"`
	Price           decimal.Decimal  `json:"price" db:"price"`
	CategoryTag     []string         `json:"categoryTag" db:"category_tag"`
	Thumbnail       *string          `json:"thumbnail" db:"thumbnail"`
	Rating          *decimal.Decimal `json:"rating" db:"rating"`
	CourseCreatedAt time.Time        `json:"courseCreatedAt" db:"course_created_at"`
}

// ToSummary renders the joined row as a my-courses line item.
func (e *EnrollmentWithCourse) ToSummary() EnrolledCourseSummary {
	price, _ := e.Price.Float64()
	return EnrolledCourseSummary{
		EnrollmentID: e.ID,
		CourseID:     e.CourseID,
		Name:         e.CourseName,
		Price:        price,
		CategoryTag:  e.CategoryTag,
		Thumbnail:    e.Thumbnail,
		Rating:       e.Rating,
		Status:       StatusActive,
		EnrolledAt:   e.CreatedAt,
	}
}

// ToResponse renders the joined row as a single-enrollment payload.
func (e *EnrollmentWithCourse) ToResponse() *EnrollmentResponse {
	price, _ := e.Price.Float64()
	return &EnrollmentResponse{
		ID:         e.ID,
		UserID:     e.UserID,
		CourseID:   e.CourseID,
		CourseName: e.CourseName,
		Price:      price,
		Status:     StatusActive,
		EnrolledAt: e.CreatedAt,
	}
}

// NewResponse builds the enroll payload from a fresh enrollment plus the
// course it targets, without a second read of the joined row.
func NewResponse(e *Enrollment, course *coursemodel.Course) *EnrollmentResponse {
	price, _ := course.Price.Float64()
	return &EnrollmentResponse{
		ID:         e.ID,
		UserID:     e.UserID,
		CourseID:   e.CourseID,
		CourseName: course.Name,
		Price:      price,
		Status:     StatusActive,
		EnrolledAt: e.CreatedAt,
	}
}
