package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"course-platform-backend/internal/shared/validate"
)

// =====================================================
// INPUT SCHEMAS
// =====================================================
// These reject malformed shape before any handler logic runs. Business rules
// that span fields (tag whitelist, price/rating correlation) live in the
// validator package, not here.

// CreateCourseRequest is the payload for POST /courses.
// Price and rating are decimal strings to keep exact precision on the wire.
type CreateCourseRequest struct {
	Name        string   `json:"name"`
	Price       *string  `json:"price,omitempty"`
	CategoryTag []string `json:"categoryTag"`
	Thumbnail   *string  `json:"thumbnail,omitempty"`
	Rating      *string  `json:"rating,omitempty"`
}

func (r CreateCourseRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Price,
			validate.DecimalString(2),
			validate.DecimalMin("0"),
		),
		validation.Field(&r.CategoryTag,
			validation.Required.Error("categoryTag is required"),
			validation.Each(validation.Required, validation.Length(1, 50)),
		),
		validation.Field(&r.Thumbnail, validate.AbsoluteURL()),
		validation.Field(&r.Rating,
			validate.DecimalString(1),
			validate.DecimalRange("1.0", "5.0"),
		),
	)
}

// UpdateCourseRequest is the payload for PUT /courses/:id.
// Every field is optional; only supplied fields are written.
type UpdateCourseRequest struct {
	Name        *string  `json:"name,omitempty"`
	Price       *string  `json:"price,omitempty"`
	CategoryTag []string `json:"categoryTag,omitempty"`
	Thumbnail   *string  `json:"thumbnail,omitempty"`
	Rating      *string  `json:"rating,omitempty"`
}

func (r UpdateCourseRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Length(1, 255)),
		validation.Field(&r.Price,
			validate.DecimalString(2),
			validate.DecimalMin("0"),
		),
		validation.Field(&r.CategoryTag,
			validation.Each(validation.Required, validation.Length(1, 50)),
		),
		validation.Field(&r.Thumbnail, validate.AbsoluteURL()),
		validation.Field(&r.Rating,
			validate.DecimalString(1),
			validate.DecimalRange("1.0", "5.0"),
		),
	)
}

// IsEmpty reports whether the update carries no fields at all.
func (r UpdateCourseRequest) IsEmpty() bool {
	return r.Name == nil && r.Price == nil && r.CategoryTag == nil &&
		r.Thumbnail == nil && r.Rating == nil
}

// ListCoursesRequest are the query parameters for GET /courses.
// Limit and offset are pointers so "absent" and "zero" stay distinguishable;
// the service fills in the default.
type ListCoursesRequest struct {
	Limit       *int     `form:"limit"`
	Offset      *int     `form:"offset"`
	CategoryTag []string `form:"categoryTag"`
}

func (r ListCoursesRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Limit,
			validation.Min(validate.LimitMin).Error("limit must be at least 1"),
			validation.Max(validate.LimitMax).Error("limit must be at most 100"),
		),
		validation.Field(&r.Offset,
			validation.Min(0).Error("offset must not be negative"),
		),
		validation.Field(&r.CategoryTag,
			validation.Each(validation.Required, validation.Length(1, 50)),
		),
	)
}

// SearchCoursesRequest are the query parameters for GET /courses/search.
type SearchCoursesRequest struct {
	Query  string `form:"q"`
	Limit  *int   `form:"limit"`
	Offset *int   `form:"offset"`
}

func (r SearchCoursesRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Query,
			validation.Required.Error("q is required"),
			validation.Length(1, 200),
		),
		validation.Field(&r.Limit,
			validation.Min(validate.LimitMin),
			validation.Max(validate.LimitMax),
		),
		validation.Field(&r.Offset, validation.Min(0)),
	)
}

// =====================================================
// OUTPUT SCHEMAS
// =====================================================

// CourseResponse is the single-entity response shape. decimal.Decimal
// marshals as a quoted string, so price and rating stay exact on the wire.
type CourseResponse struct {
	ID          uuid.UUID        `json:"id"`
	Name        string           `json:"name"`
	Price       decimal.Decimal  `json:"price"`
	CategoryTag []string         `json:"categoryTag"`
	Thumbnail   *string          `json:"thumbnail,omitempty"`
	Rating      *decimal.Decimal `json:"rating,omitempty"`
	CreatedBy   *uuid.UUID       `json:"createdBy,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// CourseListResponse is the paginated list shape with echoed pagination.
type CourseListResponse struct {
	Courses []CourseResponse `json:"courses"`
	Total   int              `json:"total"`
	Limit   int              `json:"limit"`
	Offset  int              `json:"offset"`
}

// DeleteCourseResponse acknowledges a successful delete.
type DeleteCourseResponse struct {
	Success bool      `json:"success"`
	ID      uuid.UUID `json:"id"`
}

// PopularCourseResponse pairs a course with its enrollment count.
type PopularCourseResponse struct {
	CourseResponse
	EnrollmentCount int `json:"enrollmentCount"`
}

// CourseStatisticsResponse aggregates the whole catalog.
type CourseStatisticsResponse struct {
	TotalCourses int             `json:"totalCourses"`
	FreeCourses  int             `json:"freeCourses"`
	AveragePrice decimal.Decimal `json:"averagePrice"`
	MinPrice     decimal.Decimal `json:"minPrice"`
	MaxPrice     decimal.Decimal `json:"maxPrice"`
}

// =====================================================
// REPOSITORY FILTER
// =====================================================

// CourseFilter narrows List queries. CategoryTags uses OR semantics: a course
// matches when its tag array overlaps ANY of the requested tags.
type CourseFilter struct {
	Limit        int
	Offset       int
	CategoryTags []string
	CreatedBy    *uuid.UUID
}
