// Package validator holds the pure business rules for course data: no I/O,
// deterministic, usable on full or partial input. Shape checks (types,
// lengths, decimal formats) belong to the request schemas; the rules here are
// the ones a schema cannot express.
package validator

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"course-platform-backend/internal/domains/course/model"
)

// Reasons that callers dispatch on. Kept as constants so the error
// translation layer does not match on message prose.
const (
	ReasonRequired             = "required"
	ReasonFreeCourseHighRating = "free courses cannot be rated above 3.0"
)

// Result is the outcome of one rule.
type Result struct {
	Valid  bool
	Field  string
	Reason string
}

func valid() Result {
	return Result{Valid: true}
}

func invalid(field, reason string) Result {
	return Result{Valid: false, Field: field, Reason: reason}
}

// CourseInput is a partial view of course data under validation. Nil fields
// are absent and skipped, which is what makes partial updates checkable.
type CourseInput struct {
	Name        *string
	Price       *string
	CategoryTag []string
	Rating      *string
	Thumbnail   *string
}

// ValidateCourseName checks the name rule: non-empty, at most 255 characters.
func ValidateCourseName(name string) Result {
	if strings.TrimSpace(name) == "" {
		return invalid("name", ReasonRequired)
	}
	if len(name) > 255 {
		return invalid("name", "must be at most 255 characters")
	}
	return valid()
}

// ValidateCoursePrice checks a decimal-string price: parseable, non-negative,
// at most 2 fractional digits.
func ValidateCoursePrice(price string) Result {
	d, err := decimal.NewFromString(price)
	if err != nil {
		return invalid("price", "must be a decimal number")
	}
	if d.IsNegative() {
		return invalid("price", "must not be negative")
	}
	if d.Exponent() < -2 {
		return invalid("price", "must have at most 2 decimal places")
	}
	return valid()
}

// ValidateCategoryTags checks the whitelist rule: non-empty, at most 2 tags,
// every element exactly one of the allowed values. Unknown tags are named.
func ValidateCategoryTags(tags []string) Result {
	if len(tags) == 0 {
		return invalid("categoryTag", ReasonRequired)
	}
	if len(tags) > 2 {
		return invalid("categoryTag", "must contain at most 2 tags")
	}

	var unknown []string
	for _, tag := range tags {
		if !model.CategoryTag(tag).IsValid() {
			unknown = append(unknown, tag)
		}
	}
	if len(unknown) > 0 {
		return invalid("categoryTag", fmt.Sprintf(
			"unknown tags: %s (allowed: %s)",
			strings.Join(unknown, ", "),
			strings.Join(model.CategoryTagWhitelist(), ", "),
		))
	}
	return valid()
}

// ValidateCourseRating checks the rating rule against the course price.
// Range [1.0, 5.0] with at most 1 fractional digit; a course priced exactly
// zero must not be rated above 3.0. price may be empty when unknown, in which
// case only the range rule applies.
func ValidateCourseRating(rating, price string) Result {
	r, err := decimal.NewFromString(rating)
	if err != nil {
		return invalid("rating", "must be a decimal number")
	}
	if r.Exponent() < -1 {
		return invalid("rating", "must have at most 1 decimal place")
	}
	if r.LessThan(decimal.RequireFromString("1.0")) || r.GreaterThan(decimal.RequireFromString("5.0")) {
		return invalid("rating", "must be between 1.0 and 5.0")
	}

	if price != "" {
		p, perr := decimal.NewFromString(price)
		if perr == nil && p.IsZero() && r.GreaterThan(decimal.RequireFromString("3.0")) {
			return invalid("rating", ReasonFreeCourseHighRating)
		}
	}
	return valid()
}

// ValidateThumbnailURL checks that the thumbnail is an absolute http(s) URL.
func ValidateThumbnailURL(thumbnail string) Result {
	u, err := url.ParseRequestURI(thumbnail)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return invalid("thumbnail", "must be an absolute http(s) URL")
	}
	return valid()
}

// ValidateCompleteCourse runs every applicable rule over the fields present
// in the input and returns the failures in the fixed order
// name, price, categoryTag, rating, thumbnail. Callers surface the first
// failure; the full slice is returned so nothing is lost.
func ValidateCompleteCourse(input CourseInput) []Result {
	var failures []Result

	if input.Name != nil {
		if r := ValidateCourseName(*input.Name); !r.Valid {
			failures = append(failures, r)
		}
	}
	if input.Price != nil {
		if r := ValidateCoursePrice(*input.Price); !r.Valid {
			failures = append(failures, r)
		}
	}
	if input.CategoryTag != nil {
		if r := ValidateCategoryTags(input.CategoryTag); !r.Valid {
			failures = append(failures, r)
		}
	}
	if input.Rating != nil {
		price := ""
		if input.Price != nil {
			price = *input.Price
		}
		if r := ValidateCourseRating(*input.Rating, price); !r.Valid {
			failures = append(failures, r)
		}
	}
	if input.Thumbnail != nil {
		if r := ValidateThumbnailURL(*input.Thumbnail); !r.Valid {
			failures = append(failures, r)
		}
	}

	return failures
}

// FirstFailure returns the first failure of an ordered run, or nil.
func FirstFailure(results []Result) *Result {
	if len(results) == 0 {
		return nil
	}
	return &results[0]
}

// CanCourseBeDeleted decides the delete guard: a course is deletable only
// while nothing references it.
func CanCourseBeDeleted(course *model.Course, enrollmentCount int) (bool, string) {
	if enrollmentCount > 0 {
		return false, fmt.Sprintf("course has %d enrollment(s)", enrollmentCount)
	}
	return true, ""
}

// CanCourseBeUpdated is a placeholder invariant: no state machine restricts
// updates today, every course is updatable.
func CanCourseBeUpdated(course *model.Course) (bool, string) {
	return true, ""
}
