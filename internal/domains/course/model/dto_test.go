package model

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int {
	return &i
}

func strPtr(s string) *string {
	return &s
}

func TestCreateCourseRequestValidate(t *testing.T) {
	valid := CreateCourseRequest{
		Name:        "Intro to Go",
		Price:       strPtr("49.99"),
		CategoryTag: []string{"prakerja"},
		Rating:      strPtr("4.5"),
		Thumbnail:   strPtr("https://cdn.example.com/go.png"),
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name string
		mut  func(r *CreateCourseRequest)
	}{
		{"missing name", func(r *CreateCourseRequest) { r.Name = "" }},
		{"missing tags", func(r *CreateCourseRequest) { r.CategoryTag = nil }},
		{"negative price", func(r *CreateCourseRequest) { r.Price = strPtr("-10.00") }},
		{"price precision", func(r *CreateCourseRequest) { r.Price = strPtr("10.999") }},
		{"non-numeric price", func(r *CreateCourseRequest) { r.Price = strPtr("free") }},
		{"rating below range", func(r *CreateCourseRequest) { r.Rating = strPtr("0.5") }},
		{"rating above range", func(r *CreateCourseRequest) { r.Rating = strPtr("5.5") }},
		{"rating precision", func(r *CreateCourseRequest) { r.Rating = strPtr("4.55") }},
		{"relative thumbnail", func(r *CreateCourseRequest) { r.Thumbnail = strPtr("/go.png") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mut(&req)
			assert.Error(t, req.Validate())
		})
	}
}

func TestCreateCourseRequestOptionalFields(t *testing.T) {
	// Price, rating and thumbnail are all optional at the schema level.
	req := CreateCourseRequest{
		Name:        "Minimal",
		CategoryTag: []string{"spl"},
	}
	assert.NoError(t, req.Validate())
}

func TestUpdateCourseRequestValidate(t *testing.T) {
	assert.NoError(t, UpdateCourseRequest{}.Validate())
	assert.True(t, UpdateCourseRequest{}.IsEmpty())

	withName := UpdateCourseRequest{Name: strPtr("Renamed")}
	assert.NoError(t, withName.Validate())
	assert.False(t, withName.IsEmpty())

	assert.Error(t, UpdateCourseRequest{Price: strPtr("-1")}.Validate())
	assert.Error(t, UpdateCourseRequest{Rating: strPtr("6.0")}.Validate())
	assert.Error(t, UpdateCourseRequest{Thumbnail: strPtr("not a url")}.Validate())
}

func TestListCoursesRequestBounds(t *testing.T) {
	tests := []struct {
		name  string
		req   ListCoursesRequest
		valid bool
	}{
		{"absent limit and offset", ListCoursesRequest{}, true},
		{"limit lower bound", ListCoursesRequest{Limit: intPtr(1)}, true},
		{"limit upper bound", ListCoursesRequest{Limit: intPtr(100)}, true},
		{"limit zero", ListCoursesRequest{Limit: intPtr(0)}, false},
		{"limit over max", ListCoursesRequest{Limit: intPtr(101)}, false},
		{"offset zero", ListCoursesRequest{Offset: intPtr(0)}, true},
		{"offset negative", ListCoursesRequest{Offset: intPtr(-1)}, false},
		{"with tags", ListCoursesRequest{CategoryTag: []string{"prakerja"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestSearchCoursesRequestValidate(t *testing.T) {
	assert.NoError(t, SearchCoursesRequest{Query: "go"}.Validate())
	assert.Error(t, SearchCoursesRequest{}.Validate())
	assert.Error(t, SearchCoursesRequest{Query: "go", Limit: intPtr(0)}.Validate())
}

func TestCourseResponsePriceRendersAsString(t *testing.T) {
	// Decimal fields must serialize as quoted strings so clients never see
	// float artifacts.
	resp := CourseResponse{
		Name:  "Pricing",
		Price: decimal.RequireFromString("149.99"),
	}

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"price":"149.99"`)
}

func TestCategoryTagWhitelist(t *testing.T) {
	assert.ElementsMatch(t, []string{"prakerja", "spl"}, CategoryTagWhitelist())
	assert.True(t, CategoryTag("prakerja").IsValid())
	assert.True(t, CategoryTag("spl").IsValid())
	assert.False(t, CategoryTag("Prakerja").IsValid())
	assert.False(t, CategoryTag("").IsValid())
}
