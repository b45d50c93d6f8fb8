package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	coursemodel "course-platform-backend/internal/domains/course/model"
	"course-platform-backend/internal/domains/enrollment/model"
	"course-platform-backend/internal/domains/enrollment/repository"
	"course-platform-backend/internal/shared/validate"
	"course-platform-backend/pkg/cache"
	"course-platform-backend/pkg/database"
	"course-platform-backend/pkg/logger"
)

const enrollmentCacheTTL = 2 * time.Minute

// runInTx is a seam so tests can run the enroll write without a live pool.
var runInTx = database.WithTransaction

type enrollmentService struct {
	pool    *pgxpool.Pool
	repo    repository.EnrollmentRepository
	courses CourseReader
	cache   cache.Cache
}

// NewEnrollmentService wires the enrollment use cases against the shared
// pool, the enrollment gateway and the catalog reader.
func NewEnrollmentService(pool *pgxpool.Pool, repo repository.EnrollmentRepository, courses CourseReader, c cache.Cache) ServiceInterface {
	return &enrollmentService{
		pool:    pool,
		repo:    repo,
		courses: courses,
		cache:   c,
	}
}

// =====================================================
// ENROLL
// =====================================================

func (s *enrollmentService) Enroll(ctx context.Context, userID uuid.UUID, req model.EnrollRequest) (*model.EnrollmentResponse, error) {
	courseID, err := req.CourseUUID()
	if err != nil {
		return nil, model.NewValidationFailedError("courseId", "courseId must be a valid UUID")
	}

	// Combined probe first as the fast-path screen; only a failed screen
	// runs the targeted checks that name the cause. All of it happens before
	// the insert; a concurrent enroll between the checks and the write is
	// accepted as a duplicate row.
	eligibility, err := s.repo.CheckEligibility(ctx, s.pool, userID, courseID)
	if err != nil {
		return nil, s.storageError("check eligibility", err)
	}

	course, err := s.courses.FindByID(ctx, s.pool, courseID)
	if err != nil {
		if errors.Is(err, coursemodel.ErrCourseNotFound) {
			return nil, model.NewCourseNotFoundError(courseID)
		}
		return nil, s.storageError("load course", err)
	}

	if !eligibility.Eligible() {
		if !eligibility.UserExists {
			// Confirm before rejecting; the probe may predate a fresh signup.
			userExists, err := s.repo.UserExists(ctx, s.pool, userID)
			if err != nil {
				return nil, s.storageError("check user", err)
			}
			if !userExists {
				return nil, model.NewUserNotFoundError(userID)
			}
		}

		if eligibility.AlreadyEnrolled {
			existing, err := s.repo.FindByUserAndCourse(ctx, s.pool, userID, courseID)
			if err != nil && !errors.Is(err, model.ErrEnrollmentNotFound) {
				return nil, s.storageError("load existing enrollment", err)
			}
			if existing != nil {
				return nil, model.NewAlreadyEnrolledError(userID, courseID, existing.ID)
			}
		}
	}

	now := time.Now().UTC()
	enrollment := &model.Enrollment{
		ID:        uuid.New(),
		UserID:    userID,
		CourseID:  courseID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = runInTx(ctx, s.pool, func(tx pgx.Tx) error {
		return s.repo.Create(ctx, tx, enrollment)
	})
	if err != nil {
		logger.Error("enroll", err)
		return nil, model.NewEnrollmentFailedError(userID, courseID, err)
	}

	s.invalidateUserCache(ctx, userID)
	return model.NewResponse(enrollment, course), nil
}

// =====================================================
// MY COURSES
// =====================================================

func (s *enrollmentService) MyCourses(ctx context.Context, userID uuid.UUID, req model.MyCoursesRequest) (*model.MyCoursesResponse, error) {
	limit := validate.DefaultLimit
	if req.Limit != nil {
		limit = *req.Limit
	}
	offset := 0
	if req.Offset != nil {
		offset = *req.Offset
	}
	if limit < validate.LimitMin || limit > validate.LimitMax {
		return nil, model.NewValidationFailedError("limit", fmt.Sprintf("limit must be between %d and %d", validate.LimitMin, validate.LimitMax))
	}
	if offset < 0 {
		return nil, model.NewValidationFailedError("offset", "offset must not be negative")
	}

	cacheKey := userCacheKey(userID, limit, offset)
	var cached model.MyCoursesResponse
	if found, err := s.cache.Get(ctx, cacheKey, &cached); err != nil {
		logger.Error("enrollment cache lookup failed", err)
	} else if found {
		return &cached, nil
	}

	enrollments, total, err := s.repo.FindByUser(ctx, s.pool, userID, limit, offset)
	if err != nil {
		return nil, s.storageError("list my courses", err)
	}

	summaries := make([]model.EnrolledCourseSummary, 0, len(enrollments))
	for _, e := range enrollments {
		summaries = append(summaries, e.ToSummary())
	}

	resp := &model.MyCoursesResponse{
		Courses: summaries,
		Stats:   reduceStats(enrollments, total),
		Total:   total,
		Limit:   limit,
		Offset:  offset,
	}
	if err := s.cache.Set(ctx, cacheKey, resp, enrollmentCacheTTL); err != nil {
		logger.Error("enrollment cache store failed", err)
	}
	return resp, nil
}

// =====================================================
// UNENROLL
// =====================================================

func (s *enrollmentService) Unenroll(ctx context.Context, userID, enrollmentID uuid.UUID) (*model.UnenrollResponse, error) {
	enrollment, err := s.repo.FindByID(ctx, s.pool, enrollmentID)
	if err != nil {
		if errors.Is(err, model.ErrEnrollmentNotFound) {
			return nil, model.NewEnrollmentNotFoundError(enrollmentID)
		}
		return nil, s.storageError("load enrollment", err)
	}

	if enrollment.UserID != userID {
		return nil, model.NewUnauthorizedAccessError(enrollmentID, userID)
	}

	if ok, reason := canUnenroll(enrollment); !ok {
		return nil, model.NewCannotUnenrollError(enrollmentID, reason)
	}

	if err := s.repo.Delete(ctx, s.pool, enrollmentID); err != nil {
		if errors.Is(err, model.ErrEnrollmentNotFound) {
			return nil, model.NewEnrollmentNotFoundError(enrollmentID)
		}
		return nil, s.storageError("delete enrollment", err)
	}

	s.invalidateUserCache(ctx, userID)
	return &model.UnenrollResponse{Success: true, ID: enrollmentID}, nil
}

// =====================================================
// STATISTICS
// =====================================================

func (s *enrollmentService) MyStatistics(ctx context.Context, userID uuid.UUID) (*model.UserStatisticsResponse, error) {
	stats, err := s.repo.UserStatistics(ctx, s.pool, userID)
	if err != nil {
		return nil, s.storageError("user statistics", err)
	}
	return stats, nil
}

// =====================================================
// HELPERS
// =====================================================

// reduceStats folds the fetched page into the listing summary: spend,
// average price and the distinct categories come from the rows in hand,
// while total/active use the unpaginated count.
func reduceStats(rows []*model.EnrollmentWithCourse, total int) model.EnrollmentStats {
	spent := decimal.Zero
	categories := []string{}
	seen := make(map[string]bool)
	for _, row := range rows {
		spent = spent.Add(row.Price)
		for _, tag := range row.CategoryTag {
			if !seen[tag] {
				seen[tag] = true
				categories = append(categories, tag)
			}
		}
	}

	average := decimal.Zero
	if len(rows) > 0 {
		average = spent.Div(decimal.NewFromInt(int64(len(rows))))
	}

	totalSpent, _ := spent.Float64()
	averagePrice, _ := average.Float64()
	return model.EnrollmentStats{
		Total:        total,
		Active:       total,
		Completed:    0,
		TotalSpent:   totalSpent,
		AveragePrice: averagePrice,
		Categories:   categories,
	}
}

// canUnenroll is the policy hook for future restrictions (e.g. completed
// courses). No rule blocks unenrollment today.
func canUnenroll(_ *model.Enrollment) (bool, string) {
	return true, ""
}

func (s *enrollmentService) storageError(op string, err error) error {
	var eerr *model.EnrollmentError
	if errors.As(err, &eerr) {
		return eerr
	}
	logger.Error(op, err)
	return model.NewDatabaseError(err)
}

func (s *enrollmentService) invalidateUserCache(ctx context.Context, userID uuid.UUID) {
	pattern := fmt.Sprintf("enrollments:user:%s:*", userID)
	if err := s.cache.DeletePattern(ctx, pattern); err != nil {
		logger.Error("enrollment cache invalidation failed", err)
	}
}

func userCacheKey(userID uuid.UUID, limit, offset int) string {
	return fmt.Sprintf("enrollments:user:%s:%d:%d", userID, limit, offset)
}
