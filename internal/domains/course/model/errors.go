package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Taxonomy kinds for course operations. Every kind carries structured details
// a caller can act on, not just display text.
const (
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeValidationFailed    = "VALIDATION_FAILED"
	ErrCodeInvalidPrice        = "INVALID_PRICE"
	ErrCodeInvalidCategoryTags = "INVALID_CATEGORY_TAGS"
	ErrCodeInvalidRating       = "INVALID_RATING"
	ErrCodeFreeCourseHighRated = "FREE_COURSE_HIGH_RATING"
	ErrCodeCreatorNotFound     = "CREATOR_NOT_FOUND"
	ErrCodeUnauthorizedAccess  = "UNAUTHORIZED_ACCESS"
	ErrCodeCannotDelete        = "CANNOT_DELETE"
	ErrCodeCannotUpdate        = "CANNOT_UPDATE"
)

// Sentinel errors used between repository and service.
var (
	ErrCourseNotFound = errors.New("course not found")
)

// CourseError is the typed taxonomy error shared by every layer.
type CourseError struct {
	Code    string
	Message string
	Details map[string]interface{}
	Err     error
}

func (e *CourseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *CourseError) Unwrap() error {
	return e.Err
}

// Error constructors

func NewCourseNotFoundError(id uuid.UUID) *CourseError {
	return &CourseError{
		Code:    ErrCodeNotFound,
		Message: "Course not found",
		Details: map[string]interface{}{"id": id.String()},
		Err:     ErrCourseNotFound,
	}
}

func NewValidationFailedError(field, reason string) *CourseError {
	return &CourseError{
		Code:    ErrCodeValidationFailed,
		Message: fmt.Sprintf("Validation failed on %s: %s", field, reason),
		Details: map[string]interface{}{"field": field, "reason": reason},
	}
}

func NewInvalidPriceError(price, reason string) *CourseError {
	return &CourseError{
		Code:    ErrCodeInvalidPrice,
		Message: fmt.Sprintf("Invalid price: %s", reason),
		Details: map[string]interface{}{"price": price, "reason": reason},
	}
}

func NewInvalidCategoryTagsError(tags []string, reason string) *CourseError {
	return &CourseError{
		Code:    ErrCodeInvalidCategoryTags,
		Message: fmt.Sprintf("Invalid category tags [%s]: %s", strings.Join(tags, ", "), reason),
		Details: map[string]interface{}{"tags": tags, "reason": reason},
	}
}

func NewInvalidRatingError(rating, reason string) *CourseError {
	return &CourseError{
		Code:    ErrCodeInvalidRating,
		Message: fmt.Sprintf("Invalid rating: %s", reason),
		Details: map[string]interface{}{"rating": rating, "reason": reason},
	}
}

func NewFreeCourseHighRatingError(price, rating string) *CourseError {
	return &CourseError{
		Code:    ErrCodeFreeCourseHighRated,
		Message: "Free courses cannot have a rating above 3.0",
		Details: map[string]interface{}{"price": price, "rating": rating},
	}
}

func NewCreatorNotFoundError(creatorID uuid.UUID) *CourseError {
	return &CourseError{
		Code:    ErrCodeCreatorNotFound,
		Message: "The creating user does not exist",
		Details: map[string]interface{}{"creatorId": creatorID.String()},
	}
}

func NewUnauthorizedAccessError(courseID, userID uuid.UUID) *CourseError {
	return &CourseError{
		Code:    ErrCodeUnauthorizedAccess,
		Message: "You are not allowed to access this course",
		Details: map[string]interface{}{"courseId": courseID.String(), "userId": userID.String()},
	}
}

func NewCannotDeleteError(id uuid.UUID, reason string) *CourseError {
	return &CourseError{
		Code:    ErrCodeCannotDelete,
		Message: fmt.Sprintf("Course cannot be deleted: %s", reason),
		Details: map[string]interface{}{"id": id.String(), "reason": reason},
	}
}

func NewCannotUpdateError(id uuid.UUID, reason string) *CourseError {
	return &CourseError{
		Code:    ErrCodeCannotUpdate,
		Message: fmt.Sprintf("Course cannot be updated: %s", reason),
		Details: map[string]interface{}{"id": id.String(), "reason": reason},
	}
}

// NewDatabaseError wraps an unexpected storage failure. The raw error is kept
// for logs; the outward payload only names the database as the failing field.
func NewDatabaseError(err error) *CourseError {
	return &CourseError{
		Code:    ErrCodeValidationFailed,
		Message: "An internal error occurred while accessing storage",
		Details: map[string]interface{}{"field": "database", "reason": "operation failed"},
		Err:     err,
	}
}
