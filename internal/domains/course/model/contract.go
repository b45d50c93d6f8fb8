package model

import "course-platform-backend/internal/shared/contract"

// Operations is the closed contract table for the course domain: one entry
// per boundary operation with the exact error kinds it may raise.
func Operations() []contract.Operation {
	return []contract.Operation{
		{
			Name:   "listCourses",
			Method: "GET",
			Path:   "/api/v1/courses",
			Auth:   "public",
			Errors: []string{ErrCodeValidationFailed, ErrCodeInvalidCategoryTags},
		},
		{
			Name:   "getCourse",
			Method: "GET",
			Path:   "/api/v1/courses/:id",
			Auth:   "public",
			Errors: []string{ErrCodeNotFound, ErrCodeValidationFailed},
		},
		{
			Name:   "createCourse",
			Method: "POST",
			Path:   "/api/v1/courses",
			Auth:   "optional",
			Errors: []string{
				ErrCodeValidationFailed, ErrCodeInvalidPrice, ErrCodeInvalidCategoryTags,
				ErrCodeInvalidRating, ErrCodeFreeCourseHighRated, ErrCodeCreatorNotFound,
			},
		},
		{
			Name:   "updateCourse",
			Method: "PUT",
			Path:   "/api/v1/courses/:id",
			Auth:   "public",
			Errors: []string{
				ErrCodeNotFound, ErrCodeValidationFailed, ErrCodeInvalidPrice,
				ErrCodeInvalidCategoryTags, ErrCodeInvalidRating,
				ErrCodeFreeCourseHighRated, ErrCodeCannotUpdate,
			},
		},
		{
			Name:   "deleteCourse",
			Method: "DELETE",
			Path:   "/api/v1/courses/:id",
			Auth:   "public",
			Errors: []string{ErrCodeNotFound, ErrCodeValidationFailed, ErrCodeCannotDelete},
		},
		{
			Name:   "searchCourses",
			Method: "GET",
			Path:   "/api/v1/courses/search",
			Auth:   "public",
			Errors: []string{ErrCodeValidationFailed},
		},
		{
			Name:   "popularCourses",
			Method: "GET",
			Path:   "/api/v1/courses/popular",
			Auth:   "public",
			Errors: []string{ErrCodeValidationFailed},
		},
		{
			Name:   "courseStatistics",
			Method: "GET",
			Path:   "/api/v1/courses/statistics",
			Auth:   "public",
			Errors: []string{ErrCodeValidationFailed},
		},
	}
}
