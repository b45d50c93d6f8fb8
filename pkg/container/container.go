package container

import (
	"context"
	"fmt"

	"course-platform-backend/internal/config"
	coursehandler "course-platform-backend/internal/domains/course/handler"
	coursemodel "course-platform-backend/internal/domains/course/model"
	courserepo "course-platform-backend/internal/domains/course/repository"
	courseservice "course-platform-backend/internal/domains/course/service"
	enrollmenthandler "course-platform-backend/internal/domains/enrollment/handler"
	enrollmentmodel "course-platform-backend/internal/domains/enrollment/model"
	enrollmentrepo "course-platform-backend/internal/domains/enrollment/repository"
	enrollmentservice "course-platform-backend/internal/domains/enrollment/service"
	infracache "course-platform-backend/internal/infrastructure/cache"
	"course-platform-backend/internal/infrastructure/database"
	"course-platform-backend/internal/shared/contract"
	"course-platform-backend/pkg/jwt"
	"course-platform-backend/pkg/logger"
)

// Container owns every long-lived dependency and wires the layers together
// in one place: config, database, cache, token manager, repositories,
// services, handlers and the operation registry.
type Container struct {
	Config *config.Config
	DB     *database.PostgresDB
	Cache  *infracache.RedisCache
	JWT    *jwt.Manager

	CourseRepo     courserepo.CourseRepository
	EnrollmentRepo enrollmentrepo.EnrollmentRepository

	CourseService     courseservice.ServiceInterface
	EnrollmentService enrollmentservice.ServiceInterface

	CourseHandler     *coursehandler.CourseHandler
	EnrollmentHandler *enrollmenthandler.EnrollmentHandler

	Contracts *contract.Registry
}

// New builds the container bottom-up. It fails fast: a misconfigured
// dependency aborts startup instead of surfacing later under load.
func New(ctx context.Context) (*Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}
	db := database.NewPostgresDB(dbConfig)
	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	redisCache := infracache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	jwtManager := jwt.NewManager(cfg.JWT.Secret)

	// Repositories are stateless; the pool travels with each call.
	courseRepository := courserepo.NewPostgresCourseRepository()
	enrollmentRepository := enrollmentrepo.NewPostgresEnrollmentRepository()

	courseService := courseservice.NewCourseService(db.Pool, courseRepository, enrollmentRepository, redisCache)
	enrollmentService := enrollmentservice.NewEnrollmentService(db.Pool, enrollmentRepository, courseRepository, redisCache)

	registry := contract.NewRegistry()
	registry.Register(coursemodel.Operations()...)
	registry.Register(enrollmentmodel.Operations()...)

	logger.Info("container initialized", map[string]interface{}{
		"environment": cfg.App.Environment,
		"operations":  len(registry.Operations()),
	})

	return &Container{
		Config:            cfg,
		DB:                db,
		Cache:             redisCache,
		JWT:               jwtManager,
		CourseRepo:        courseRepository,
		EnrollmentRepo:    enrollmentRepository,
		CourseService:     courseService,
		EnrollmentService: enrollmentService,
		CourseHandler:     coursehandler.NewCourseHandler(courseService),
		EnrollmentHandler: enrollmenthandler.NewEnrollmentHandler(enrollmentService),
		Contracts:         registry,
	}, nil
}

// Close releases every held resource in reverse construction order.
func (c *Container) Close() {
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			logger.Error("failed to close redis", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
