package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"course-platform-backend/internal/domains/enrollment/model"
	"course-platform-backend/internal/domains/enrollment/service"
	"course-platform-backend/internal/shared/middleware"
	"course-platform-backend/internal/shared/response"
)

type EnrollmentHandler struct {
	service service.ServiceInterface
}

func NewEnrollmentHandler(s service.ServiceInterface) *EnrollmentHandler {
	return &EnrollmentHandler{service: s}
}

// Enroll handles POST /api/v1/enrollments
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	// Step 1: Caller identity (auth middleware already ran)
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	// Step 2: Bind and validate body
	var req model.EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, model.ErrCodeValidationFailed, "invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, model.ErrCodeValidationFailed, "validation failed", err)
		return
	}

	// Step 3: Call service
	enrollment, err := h.service.Enroll(c.Request.Context(), userID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, enrollment)
}

// MyCourses handles GET /api/v1/enrollments/my-courses
func (h *EnrollmentHandler) MyCourses(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req model.MyCoursesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, model.ErrCodeValidationFailed, "invalid query parameters", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, model.ErrCodeValidationFailed, "validation failed", err)
		return
	}

	result, err := h.service.MyCourses(c.Request.Context(), userID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, result, &response.Meta{
		Limit:  result.Limit,
		Offset: result.Offset,
		Total:  result.Total,
	})
}

// Unenroll handles DELETE /api/v1/enrollments/:id
func (h *EnrollmentHandler) Unenroll(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	enrollmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, model.ErrCodeValidationFailed, "enrollment id must be a valid UUID", gin.H{"id": c.Param("id")})
		return
	}

	result, err := h.service.Unenroll(c.Request.Context(), userID, enrollmentID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Statistics handles GET /api/v1/enrollments/statistics
func (h *EnrollmentHandler) Statistics(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	stats, err := h.service.MyStatistics(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, stats)
}

// =====================================================
// HELPERS
// =====================================================

func (h *EnrollmentHandler) currentUser(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		// Should not happen behind AuthMiddleware; kept as a guard for
		// misconfigured routes.
		uerr := model.NewUnauthorizedError(c.Request.Method + " " + c.FullPath())
		response.ErrorWithDetails(c, http.StatusUnauthorized, uerr.Code, uerr.Message, uerr.Details)
		return uuid.Nil, false
	}
	return userID, true
}

func (h *EnrollmentHandler) handleError(c *gin.Context, err error) {
	var enrollErr *model.EnrollmentError
	if !errors.As(err, &enrollErr) {
		response.InternalServerError(c, "internal server error")
		return
	}

	status := http.StatusInternalServerError
	switch enrollErr.Code {
	case model.ErrCodeNotFound, model.ErrCodeCourseNotFound, model.ErrCodeUserNotFound:
		status = http.StatusNotFound
	case model.ErrCodeAlreadyEnrolled, model.ErrCodeCannotUnenroll:
		status = http.StatusConflict
	case model.ErrCodeValidationFailed:
		status = http.StatusBadRequest
	case model.ErrCodeUnauthorized:
		status = http.StatusUnauthorized
	case model.ErrCodeUnauthorizedAccess:
		status = http.StatusForbidden
	case model.ErrCodeEnrollmentFailed:
		status = http.StatusInternalServerError
	}

	if len(enrollErr.Details) > 0 {
		response.ErrorWithDetails(c, status, enrollErr.Code, enrollErr.Message, enrollErr.Details)
		return
	}
	response.ErrorResponse(c, status, enrollErr.Code, enrollErr.Message)
}
