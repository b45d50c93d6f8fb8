package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"course-platform-backend/internal/domains/course/model"
	"course-platform-backend/internal/domains/course/service"
	"course-platform-backend/internal/shared/middleware"
	"course-platform-backend/internal/shared/response"
)

type CourseHandler struct {
	service service.ServiceInterface
}

func NewCourseHandler(s service.ServiceInterface) *CourseHandler {
	return &CourseHandler{service: s}
}

// =====================================================
// PUBLIC READ ENDPOINTS
// =====================================================

// List handles GET /api/v1/courses
func (h *CourseHandler) List(c *gin.Context) {
	// Step 1: Bind query parameters
	var req model.ListCoursesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, model.ErrCodeValidationFailed, "invalid query parameters", err.Error())
		return
	}

	// Step 2: Validate bounds and tag shape
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, model.ErrCodeValidationFailed, "validation failed", err)
		return
	}

	// Step 3: Call service
	result, err := h.service.ListCourses(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, result.Courses, &response.Meta{
		Limit:  result.Limit,
		Offset: result.Offset,
		Total:  result.Total,
	})
}

// Get handles GET /api/v1/courses/:id
func (h *CourseHandler) Get(c *gin.Context) {
	id, ok := h.courseID(c)
	if !ok {
		return
	}

	course, err := h.service.GetCourse(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, course)
}

// Search handles GET /api/v1/courses/search
func (h *CourseHandler) Search(c *gin.Context) {
	var req model.SearchCoursesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, model.ErrCodeValidationFailed, "invalid query parameters", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, model.ErrCodeValidationFailed, "validation failed", err)
		return
	}

	result, err := h.service.SearchCourses(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, result.Courses, &response.Meta{
		Limit:  result.Limit,
		Offset: result.Offset,
		Total:  result.Total,
	})
}

// Popular handles GET /api/v1/courses/popular
func (h *CourseHandler) Popular(c *gin.Context) {
	var req struct {
		Limit *int `form:"limit"`
	}
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, model.ErrCodeValidationFailed, "invalid query parameters", err.Error())
		return
	}

	popular, err := h.service.PopularCourses(c.Request.Context(), req.Limit)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, popular)
}

// Statistics handles GET /api/v1/courses/statistics
func (h *CourseHandler) Statistics(c *gin.Context) {
	stats, err := h.service.CourseStatistics(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, stats)
}

// =====================================================
// WRITE ENDPOINTS
// =====================================================

// Create handles POST /api/v1/courses
func (h *CourseHandler) Create(c *gin.Context) {
	// Step 1: Bind request body
	var req model.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, model.ErrCodeValidationFailed, "invalid request body", err.Error())
		return
	}

	// Step 2: Schema validation
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, model.ErrCodeValidationFailed, "validation failed", err)
		return
	}

	// Step 3: Creator attribution when the request was authenticated
	var callerID *uuid.UUID
	if id, ok := middleware.CurrentUserID(c); ok {
		callerID = &id
	}

	// Step 4: Call service
	course, err := h.service.CreateCourse(c.Request.Context(), callerID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, course)
}

// Update handles PUT /api/v1/courses/:id
func (h *CourseHandler) Update(c *gin.Context) {
	id, ok := h.courseID(c)
	if !ok {
		return
	}

	var req model.UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, model.ErrCodeValidationFailed, "invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, model.ErrCodeValidationFailed, "validation failed", err)
		return
	}

	course, err := h.service.UpdateCourse(c.Request.Context(), id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, course)
}

// Delete handles DELETE /api/v1/courses/:id
func (h *CourseHandler) Delete(c *gin.Context) {
	id, ok := h.courseID(c)
	if !ok {
		return
	}

	result, err := h.service.DeleteCourse(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// =====================================================
// HELPERS
// =====================================================

func (h *CourseHandler) courseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, model.ErrCodeValidationFailed, "course id must be a valid UUID", gin.H{"id": c.Param("id")})
		return uuid.Nil, false
	}
	return id, true
}

// handleError translates taxonomy errors into their HTTP shape. Anything
// the taxonomy does not cover becomes an opaque 500.
func (h *CourseHandler) handleError(c *gin.Context, err error) {
	var courseErr *model.CourseError
	if !errors.As(err, &courseErr) {
		response.InternalServerError(c, "internal server error")
		return
	}

	status := http.StatusInternalServerError
	switch courseErr.Code {
	case model.ErrCodeNotFound, model.ErrCodeCreatorNotFound:
		status = http.StatusNotFound
	case model.ErrCodeValidationFailed, model.ErrCodeInvalidPrice,
		model.ErrCodeInvalidCategoryTags, model.ErrCodeInvalidRating,
		model.ErrCodeFreeCourseHighRated:
		status = http.StatusBadRequest
	case model.ErrCodeUnauthorizedAccess:
		status = http.StatusForbidden
	case model.ErrCodeCannotDelete, model.ErrCodeCannotUpdate:
		status = http.StatusConflict
	}

	if len(courseErr.Details) > 0 {
		response.ErrorWithDetails(c, status, courseErr.Code, courseErr.Message, courseErr.Details)
		return
	}
	response.ErrorResponse(c, status, courseErr.Code, courseErr.Message)
}
