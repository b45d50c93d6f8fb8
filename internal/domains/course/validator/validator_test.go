package validator

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"course-platform-backend/internal/domains/course/model"
)

func strPtr(s string) *string {
	return &s
}

func TestValidateCourseName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		valid   bool
	}{
		{"valid name", "Go for Backend Engineers", true},
		{"empty", "", false},
		{"whitespace only", "   ", false},
		{"at limit", strings.Repeat("a", 255), true},
		{"over limit", strings.Repeat("a", 256), false},
		{"single char", "x", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidateCourseName(tt.input)
			assert.Equal(t, tt.valid, res.Valid)
			if !tt.valid {
				assert.Equal(t, "name", res.Field)
			}
		})
	}
}

func TestValidateCoursePrice(t *testing.T) {
	tests := []struct {
		name  string
		price string
		valid bool
	}{
		{"zero", "0", true},
		{"zero with decimals", "0.00", true},
		{"positive", "149.99", true},
		{"integer", "200", true},
		{"negative", "-1", false},
		{"three decimal places", "9.999", false},
		{"not a number", "abc", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidateCoursePrice(tt.price)
			assert.Equal(t, tt.valid, res.Valid)
		})
	}
}

func TestValidateCategoryTags(t *testing.T) {
	tests := []struct {
		name  string
		tags  []string
		valid bool
	}{
		{"single allowed tag", []string{"prakerja"}, true},
		{"both allowed tags", []string{"prakerja", "spl"}, true},
		{"empty list", []string{}, false},
		{"unknown tag", []string{"foo"}, false},
		{"mixed known and unknown", []string{"prakerja", "foo"}, false},
		{"case sensitive", []string{"Prakerja"}, false},
		{"too many tags", []string{"prakerja", "spl", "prakerja"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidateCategoryTags(tt.tags)
			assert.Equal(t, tt.valid, res.Valid)
			if !tt.valid {
				assert.Equal(t, "categoryTag", res.Field)
			}
		})
	}
}

func TestValidateCategoryTagsNamesUnknownTags(t *testing.T) {
	res := ValidateCategoryTags([]string{"golang", "spl"})
	assert.False(t, res.Valid)
	assert.Contains(t, res.Reason, "golang")
	assert.NotContains(t, res.Reason, "unknown tags: spl")
}

func TestValidateCourseRating(t *testing.T) {
	tests := []struct {
		name   string
		rating string
		price  string
		valid  bool
		reason string
	}{
		{"mid range paid", "4.5", "100.00", true, ""},
		{"lower bound", "1.0", "100.00", true, ""},
		{"upper bound", "5.0", "100.00", true, ""},
		{"below range", "0.9", "100.00", false, ""},
		{"above range", "5.1", "100.00", false, ""},
		{"two decimal places", "4.55", "100.00", false, ""},
		{"free course at ceiling", "3.0", "0.00", true, ""},
		{"free course above ceiling", "3.1", "0.00", false, ReasonFreeCourseHighRating},
		{"free course top rating", "5.0", "0", false, ReasonFreeCourseHighRating},
		{"paid course above free ceiling", "4.8", "10.00", true, ""},
		{"unknown price skips correlation", "4.8", "", true, ""},
		{"not a number", "high", "0.00", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidateCourseRating(tt.rating, tt.price)
			assert.Equal(t, tt.valid, res.Valid)
			if tt.reason != "" {
				assert.Equal(t, tt.reason, res.Reason)
			}
		})
	}
}

func TestValidateThumbnailURL(t *testing.T) {
	tests := []struct {
		name      string
		thumbnail string
		valid     bool
	}{
		{"https", "https://cdn.example.com/img.png", true},
		{"http", "http://cdn.example.com/img.png", true},
		{"relative path", "/img.png", false},
		{"missing scheme", "cdn.example.com/img.png", false},
		{"ftp scheme", "ftp://cdn.example.com/img.png", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidateThumbnailURL(tt.thumbnail)
			assert.Equal(t, tt.valid, res.Valid)
		})
	}
}

func TestValidateCompleteCourseOrdering(t *testing.T) {
	// Every field invalid: the first reported failure must be the name,
	// then price, then tags, then rating, then thumbnail.
	input := CourseInput{
		Name:        strPtr(""),
		Price:       strPtr("-5"),
		CategoryTag: []string{"bogus"},
		Rating:      strPtr("9.9"),
		Thumbnail:   strPtr("not-a-url"),
	}

	failures := ValidateCompleteCourse(input)
	assert.Len(t, failures, 5)
	assert.Equal(t, "name", failures[0].Field)
	assert.Equal(t, "price", failures[1].Field)
	assert.Equal(t, "categoryTag", failures[2].Field)
	assert.Equal(t, "rating", failures[3].Field)
	assert.Equal(t, "thumbnail", failures[4].Field)

	first := FirstFailure(failures)
	assert.NotNil(t, first)
	assert.Equal(t, "name", first.Field)
}

func TestValidateCompleteCourseSkipsAbsentFields(t *testing.T) {
	// Partial input: only the supplied fields are checked.
	input := CourseInput{
		Price: strPtr("10.00"),
	}

	failures := ValidateCompleteCourse(input)
	assert.Empty(t, failures)
	assert.Nil(t, FirstFailure(failures))
}

func TestValidateCompleteCourseFreeCourseCorrelation(t *testing.T) {
	input := CourseInput{
		Name:        strPtr("Free Intro"),
		Price:       strPtr("0.00"),
		CategoryTag: []string{"prakerja"},
		Rating:      strPtr("4.5"),
	}

	first := FirstFailure(ValidateCompleteCourse(input))
	assert.NotNil(t, first)
	assert.Equal(t, "rating", first.Field)
	assert.Equal(t, ReasonFreeCourseHighRating, first.Reason)
}

func TestCanCourseBeDeleted(t *testing.T) {
	course := &model.Course{Name: "Any", Price: decimal.NewFromInt(10)}

	ok, _ := CanCourseBeDeleted(course, 0)
	assert.True(t, ok)

	ok, reason := CanCourseBeDeleted(course, 3)
	assert.False(t, ok)
	assert.Contains(t, reason, "3")
}

func TestCanCourseBeUpdated(t *testing.T) {
	ok, reason := CanCourseBeUpdated(&model.Course{Name: "Any"})
	assert.True(t, ok)
	assert.Empty(t, reason)
}
