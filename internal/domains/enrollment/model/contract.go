package model

import "course-platform-backend/internal/shared/contract"

// Operations declares the enrollment API surface and the closed error set
// each endpoint may return.
func Operations() []contract.Operation {
	return []contract.Operation{
		{
			Name:   "enrollCourse",
			Method: "POST",
			Path:   "/api/v1/enrollments",
			Auth:   "required",
			Errors: []string{
				ErrCodeUnauthorized,
				ErrCodeValidationFailed,
				ErrCodeCourseNotFound,
				ErrCodeUserNotFound,
				ErrCodeAlreadyEnrolled,
				ErrCodeEnrollmentFailed,
			},
		},
		{
			Name:   "myCourses",
			Method: "GET",
			Path:   "/api/v1/enrollments/my-courses",
			Auth:   "required",
			Errors: []string{
				ErrCodeUnauthorized,
				ErrCodeValidationFailed,
			},
		},
		{
			Name:   "unenrollCourse",
			Method: "DELETE",
			Path:   "/api/v1/enrollments/:id",
			Auth:   "required",
			Errors: []string{
				ErrCodeUnauthorized,
				ErrCodeValidationFailed,
				ErrCodeNotFound,
				ErrCodeUnauthorizedAccess,
				ErrCodeCannotUnenroll,
			},
		},
		{
			Name:   "myStatistics",
			Method: "GET",
			Path:   "/api/v1/enrollments/statistics",
			Auth:   "required",
			Errors: []string{
				ErrCodeUnauthorized,
				ErrCodeValidationFailed,
			},
		},
	}
}
