package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"course-platform-backend/internal/shared/middleware"
	"course-platform-backend/internal/shared/response"
	"course-platform-backend/pkg/container"
)

// NewRouter assembles the gin engine: global middleware, health probes and
// the versioned API surface.
func NewRouter(c *container.Container) *gin.Engine {
	if c.Config.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	router.GET("/health", func(ctx *gin.Context) {
		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			response.ErrorResponse(ctx, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "database unreachable")
			return
		}
		response.Success(ctx, http.StatusOK, gin.H{
			"status":  "ok",
			"name":    c.Config.App.Name,
			"version": c.Config.App.Version,
		})
	})

	v1 := router.Group("/api/v1")
	{
		// Contract introspection: the full operation table with error sets.
		v1.GET("/contracts", func(ctx *gin.Context) {
			response.Success(ctx, http.StatusOK, c.Contracts.Operations())
		})

		courses := v1.Group("/courses")
		{
			courses.GET("", c.CourseHandler.List)
			courses.GET("/search", c.CourseHandler.Search)
			courses.GET("/popular", c.CourseHandler.Popular)
			courses.GET("/statistics", c.CourseHandler.Statistics)
			courses.GET("/:id", c.CourseHandler.Get)

			// Creation works anonymously; a valid token adds attribution.
			courses.POST("", middleware.OptionalAuthMiddleware(c.JWT), c.CourseHandler.Create)
			courses.PUT("/:id", c.CourseHandler.Update)
			courses.DELETE("/:id", c.CourseHandler.Delete)
		}

		enrollments := v1.Group("/enrollments")
		enrollments.Use(middleware.AuthMiddleware(c.JWT))
		{
			enrollments.POST("", c.EnrollmentHandler.Enroll)
			enrollments.GET("/my-courses", c.EnrollmentHandler.MyCourses)
			enrollments.GET("/statistics", c.EnrollmentHandler.Statistics)
			enrollments.DELETE("/:id", c.EnrollmentHandler.Unenroll)
		}
	}

	return router
}
