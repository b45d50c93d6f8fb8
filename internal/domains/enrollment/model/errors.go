package model

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// =====================================================
// ERROR CODES
// =====================================================

const (
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeCourseNotFound     = "COURSE_NOT_FOUND"
	ErrCodeUserNotFound       = "USER_NOT_FOUND"
	ErrCodeAlreadyEnrolled    = "ALREADY_ENROLLED"
	ErrCodeEnrollmentFailed   = "ENROLLMENT_FAILED"
	ErrCodeCannotUnenroll     = "CANNOT_UNENROLL"
	ErrCodeUnauthorizedAccess = "UNAUTHORIZED_ACCESS"
	ErrCodeValidationFailed   = "VALIDATION_FAILED"
	ErrCodeUnauthorized       = "UNAUTHORIZED"
)

// Sentinel errors surfaced by the repository layer.
var (
	ErrEnrollmentNotFound = errors.New("enrollment not found")
)

// EnrollmentError is the structured error the enrollment API returns.
type EnrollmentError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
	Err     error          `json:"-"`
}

func (e *EnrollmentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *EnrollmentError) Unwrap() error {
	return e.Err
}

// =====================================================
// CONSTRUCTORS
// =====================================================

func NewEnrollmentNotFoundError(id uuid.UUID) *EnrollmentError {
	return &EnrollmentError{
		Code:    ErrCodeNotFound,
		Message: "enrollment not found",
		Details: map[string]any{"enrollmentId": id.String()},
	}
}

func NewCourseNotFoundError(courseID uuid.UUID) *EnrollmentError {
	return &EnrollmentError{
		Code:    ErrCodeCourseNotFound,
		Message: "course not found",
		Details: map[string]any{"courseId": courseID.String()},
	}
}

func NewUserNotFoundError(userID uuid.UUID) *EnrollmentError {
	return &EnrollmentError{
		Code:    ErrCodeUserNotFound,
		Message: "user not found",
		Details: map[string]any{"userId": userID.String()},
	}
}

// NewAlreadyEnrolledError names the earliest existing enrollment so clients
// can recover the id they already hold.
func NewAlreadyEnrolledError(userID, courseID, existingID uuid.UUID) *EnrollmentError {
	return &EnrollmentError{
		Code:    ErrCodeAlreadyEnrolled,
		Message: "user is already enrolled in this course",
		Details: map[string]any{
			"userId":       userID.String(),
			"courseId":     courseID.String(),
			"enrollmentId": existingID.String(),
		},
	}
}

func NewEnrollmentFailedError(userID, courseID uuid.UUID, err error) *EnrollmentError {
	reason := "enrollment could not be completed"
	if err != nil {
		reason = err.Error()
	}
	return &EnrollmentError{
		Code:    ErrCodeEnrollmentFailed,
		Message: "enrollment could not be completed",
		Details: map[string]any{
			"userId":   userID.String(),
			"courseId": courseID.String(),
			"reason":   reason,
		},
		Err: err,
	}
}

func NewCannotUnenrollError(id uuid.UUID, reason string) *EnrollmentError {
	return &EnrollmentError{
		Code:    ErrCodeCannotUnenroll,
		Message: reason,
		Details: map[string]any{"enrollmentId": id.String()},
	}
}

func NewUnauthorizedAccessError(enrollmentID, userID uuid.UUID) *EnrollmentError {
	return &EnrollmentError{
		Code:    ErrCodeUnauthorizedAccess,
		Message: "enrollment belongs to another user",
		Details: map[string]any{
			"enrollmentId": enrollmentID.String(),
			"userId":       userID.String(),
		},
	}
}

func NewValidationFailedError(field, reason string) *EnrollmentError {
	return &EnrollmentError{
		Code:    ErrCodeValidationFailed,
		Message: reason,
		Details: map[string]any{"field": field},
	}
}

func NewUnauthorizedError(operation string) *EnrollmentError {
	return &EnrollmentError{
		Code:    ErrCodeUnauthorized,
		Message: "authentication required",
		Details: map[string]any{"operation": operation},
	}
}

// NewDatabaseError folds an unexpected storage failure into the public
// contract after it has been logged once at the service layer.
func NewDatabaseError(err error) *EnrollmentError {
	return &EnrollmentError{
		Code:    ErrCodeValidationFailed,
		Message: "operation could not be completed",
		Details: map[string]any{"field": "database"},
		Err:     err,
	}
}
