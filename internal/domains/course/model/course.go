package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// CategoryTag classifies a course's program affiliation.
// The whitelist is closed and case-sensitive.
type CategoryTag string

const (
	CategoryTagPrakerja CategoryTag = "prakerja"
	CategoryTagSPL      CategoryTag = "spl"
)

func (t CategoryTag) IsValid() bool {
	switch t {
	case CategoryTagPrakerja, CategoryTagSPL:
		return true
	}
	return false
}

func (t CategoryTag) String() string {
	return string(t)
}

// CategoryTagWhitelist returns the allowed tags in display order.
func CategoryTagWhitelist() []string {
	return []string{string(CategoryTagPrakerja), string(CategoryTagSPL)}
}

// Course is a catalog entry.
type Course struct {
	ID   uuid.UUID `json:"id" db:"id"`
	Name string    `json:"name" db:"name"`

	// Exact decimal, 2 fractional digits. Never a binary float.
	Price decimal.Decimal `json:"price" db:"price"`

	CategoryTag pq.StringArray `json:"categoryTag" db:"category_tag"`

	Thumbnail *string          `json:"thumbnail" db:"thumbnail"`
	Rating    *decimal.Decimal `json:"rating" db:"rating"`

	// Set only when the creating caller was authenticated. Nulled when the
	// referenced user is deleted.
	CreatedBy *uuid.UUID `json:"createdBy" db:"created_by"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// IsFree reports whether the course costs exactly zero.
func (c *Course) IsFree() bool {
	return c.Price.IsZero()
}

// HasTag reports whether the course carries the given category tag.
func (c *Course) HasTag(tag string) bool {
	for _, t := range c.CategoryTag {
		if t == tag {
			return true
		}
	}
	return false
}

// CourseChanges is the parsed partial-write set for an update. Nil means
// "leave the column untouched"; clearing a value back to null is not a
// supported operation.
type CourseChanges struct {
	Name        *string
	Price       *decimal.Decimal
	CategoryTag []string
	Thumbnail   *string
	Rating      *decimal.Decimal
}

// PopularCourse pairs a course with how many enrollments reference it.
type PopularCourse struct {
	Course
	EnrollmentCount int
}

// ToResponse converts PopularCourse to PopularCourseResponse.
func (p *PopularCourse) ToResponse() PopularCourseResponse {
	return PopularCourseResponse{
		CourseResponse:  *p.Course.ToResponse(),
		EnrollmentCount: p.EnrollmentCount,
	}
}

// ToResponse converts Course to CourseResponse.
func (c *Course) ToResponse() *CourseResponse {
	return &CourseResponse{
		ID:          c.ID,
		Name:        c.Name,
		Price:       c.Price,
		CategoryTag: []string(c.CategoryTag),
		Thumbnail:   c.Thumbnail,
		Rating:      c.Rating,
		CreatedBy:   c.CreatedBy,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
