package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"course-platform-backend/internal/domains/course/model"
	"course-platform-backend/internal/domains/course/repository"
	"course-platform-backend/internal/domains/course/validator"
	"course-platform-backend/internal/shared/validate"
	"course-platform-backend/pkg/cache"
	"course-platform-backend/pkg/logger"
)

const (
	courseCacheTTL     = 5 * time.Minute
	courseCachePattern = "courses:*"
)

type courseService struct {
	pool        *pgxpool.Pool
	repo        repository.CourseRepository
	enrollments EnrollmentCounter
	cache       cache.Cache
}

// NewCourseService wires the course use cases against the shared pool,
// the course repository and the enrollment counter used by the delete guard.
func NewCourseService(pool *pgxpool.Pool, repo repository.CourseRepository, enrollments EnrollmentCounter, c cache.Cache) ServiceInterface {
	return &courseService{
		pool:        pool,
		repo:        repo,
		enrollments: enrollments,
		cache:       c,
	}
}

// =====================================================
// READ OPERATIONS
// =====================================================

func (s *courseService) ListCourses(ctx context.Context, req model.ListCoursesRequest) (*model.CourseListResponse, error) {
	limit := validate.DefaultLimit
	if req.Limit != nil {
		limit = *req.Limit
	}
	offset := 0
	if req.Offset != nil {
		offset = *req.Offset
	}

	// Bounds were already checked at the schema boundary; re-check here so the
	// service stays safe when called from other code paths.
	if limit < validate.LimitMin || limit > validate.LimitMax {
		return nil, model.NewValidationFailedError("limit", fmt.Sprintf("limit must be between %d and %d", validate.LimitMin, validate.LimitMax))
	}
	if offset < 0 {
		return nil, model.NewValidationFailedError("offset", "offset must not be negative")
	}

	if len(req.CategoryTag) > 0 {
		if res := validator.ValidateCategoryTags(req.CategoryTag); !res.Valid {
			return nil, model.NewInvalidCategoryTagsError(req.CategoryTag, res.Reason)
		}
	}

	cacheKey := listCacheKey(limit, offset, req.CategoryTag)
	var cached model.CourseListResponse
	if found, err := s.cache.Get(ctx, cacheKey, &cached); err != nil {
		logger.Error("course cache lookup failed", err)
	} else if found {
		return &cached, nil
	}

	filter := model.CourseFilter{
		Limit:        limit,
		Offset:       offset,
		CategoryTags: req.CategoryTag,
	}
	courses, total, err := s.repo.List(ctx, s.pool, &filter)
	if err != nil {
		return nil, s.storageError("list courses", err)
	}

	resp := &model.CourseListResponse{
		Courses: toResponses(courses),
		Total:   total,
		Limit:   limit,
		Offset:  offset,
	}
	if err := s.cache.Set(ctx, cacheKey, resp, courseCacheTTL); err != nil {
		logger.Error("course cache store failed", err)
	}
	return resp, nil
}

func (s *courseService) GetCourse(ctx context.Context, id uuid.UUID) (*model.CourseResponse, error) {
	course, err := s.repo.FindByID(ctx, s.pool, id)
	if err != nil {
		if errors.Is(err, model.ErrCourseNotFound) {
			return nil, model.NewCourseNotFoundError(id)
		}
		return nil, s.storageError("get course", err)
	}
	return course.ToResponse(), nil
}

func (s *courseService) SearchCourses(ctx context.Context, req model.SearchCoursesRequest) (*model.CourseListResponse, error) {
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
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, model.NewValidationFailedError("q", "search query must not be empty")
	}

	courses, total, err := s.repo.SearchByName(ctx, s.pool, query, limit, offset)
	if err != nil {
		return nil, s.storageError("search courses", err)
	}
	return &model.CourseListResponse{
		Courses: toResponses(courses),
		Total:   total,
		Limit:   limit,
		Offset:  offset,
	}, nil
}

func (s *courseService) PopularCourses(ctx context.Context, limit *int) ([]model.PopularCourseResponse, error) {
	n := validate.DefaultPopularLimit
	if limit != nil {
		n = *limit
	}
	if n < validate.LimitMin || n > validate.LimitMax {
		return nil, model.NewValidationFailedError("limit", fmt.Sprintf("limit must be between %d and %d", validate.LimitMin, validate.LimitMax))
	}

	popular, err := s.repo.ListPopular(ctx, s.pool, n)
	if err != nil {
		return nil, s.storageError("popular courses", err)
	}
	out := make([]model.PopularCourseResponse, 0, len(popular))
	for _, p := range popular {
		out = append(out, p.ToResponse())
	}
	return out, nil
}

func (s *courseService) CourseStatistics(ctx context.Context) (*model.CourseStatisticsResponse, error) {
	stats, err := s.repo.Statistics(ctx, s.pool)
	if err != nil {
		return nil, s.storageError("course statistics", err)
	}
	return stats, nil
}

// =====================================================
// WRITE OPERATIONS
// =====================================================

func (s *courseService) CreateCourse(ctx context.Context, callerID *uuid.UUID, req model.CreateCourseRequest) (*model.CourseResponse, error) {
	price := "0.00"
	if req.Price != nil {
		price = *req.Price
	}

	// A nil tag slice means "absent" to the partial validator; creation
	// requires tags, so normalize to empty and let the rule fire.
	tags := req.CategoryTag
	if tags == nil {
		tags = []string{}
	}
	input := validator.CourseInput{
		Name:        &req.Name,
		Price:       &price,
		CategoryTag: tags,
		Rating:      req.Rating,
		Thumbnail:   req.Thumbnail,
	}
	if failure := validator.FirstFailure(validator.ValidateCompleteCourse(input)); failure != nil {
		return nil, taxonomyError(input, *failure)
	}

	if callerID != nil {
		ok, err := s.repo.CreatorExists(ctx, s.pool, *callerID)
		if err != nil {
			return nil, s.storageError("check creator", err)
		}
		if !ok {
			return nil, model.NewCreatorNotFoundError(*callerID)
		}
	}

	priceDec, err := decimal.NewFromString(price)
	if err != nil {
		return nil, model.NewInvalidPriceError(price, "price must be a decimal number")
	}
	var rating *decimal.Decimal
	if req.Rating != nil {
		r, err := decimal.NewFromString(*req.Rating)
		if err != nil {
			return nil, model.NewInvalidRatingError(*req.Rating, "rating must be a decimal number")
		}
		rating = &r
	}

	now := time.Now().UTC()
	course := &model.Course{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(req.Name),
		Price:       priceDec,
		CategoryTag: pq.StringArray(tags),
		Thumbnail:   req.Thumbnail,
		Rating:      rating,
		CreatedBy:   callerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, s.pool, course); err != nil {
		return nil, s.storageError("create course", err)
	}

	s.invalidateCache(ctx)
	return course.ToResponse(), nil
}

func (s *courseService) UpdateCourse(ctx context.Context, id uuid.UUID, req model.UpdateCourseRequest) (*model.CourseResponse, error) {
	existing, err := s.repo.FindByID(ctx, s.pool, id)
	if err != nil {
		if errors.Is(err, model.ErrCourseNotFound) {
			return nil, model.NewCourseNotFoundError(id)
		}
		return nil, s.storageError("load course for update", err)
	}

	// Validate the merged view of the record, so a partial update cannot move
	// the stored course into an invalid state (e.g. dropping the price to zero
	// while an existing rating stays above the free-course ceiling).
	merged := mergeForValidation(existing, req)
	if failure := validator.FirstFailure(validator.ValidateCompleteCourse(merged)); failure != nil {
		return nil, taxonomyError(merged, *failure)
	}

	if ok, reason := validator.CanCourseBeUpdated(existing); !ok {
		return nil, model.NewCannotUpdateError(id, reason)
	}

	changes := &model.CourseChanges{CategoryTag: req.CategoryTag, Thumbnail: req.Thumbnail}
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		changes.Name = &trimmed
	}
	if req.Price != nil {
		p, err := decimal.NewFromString(*req.Price)
		if err != nil {
			return nil, model.NewInvalidPriceError(*req.Price, "price must be a decimal number")
		}
		changes.Price = &p
	}
	if req.Rating != nil {
		r, err := decimal.NewFromString(*req.Rating)
		if err != nil {
			return nil, model.NewInvalidRatingError(*req.Rating, "rating must be a decimal number")
		}
		changes.Rating = &r
	}

	updated, err := s.repo.Update(ctx, s.pool, id, changes)
	if err != nil {
		if errors.Is(err, model.ErrCourseNotFound) {
			return nil, model.NewCourseNotFoundError(id)
		}
		return nil, s.storageError("update course", err)
	}

	s.invalidateCache(ctx)
	return updated.ToResponse(), nil
}

func (s *courseService) DeleteCourse(ctx context.Context, id uuid.UUID) (*model.DeleteCourseResponse, error) {
	course, err := s.repo.FindByID(ctx, s.pool, id)
	if err != nil {
		if errors.Is(err, model.ErrCourseNotFound) {
			return nil, model.NewCourseNotFoundError(id)
		}
		return nil, s.storageError("load course for delete", err)
	}

	count, err := s.enrollments.CountByCourse(ctx, s.pool, id)
	if err != nil {
		return nil, s.storageError("count enrollments", err)
	}
	if ok, reason := validator.CanCourseBeDeleted(course, count); !ok {
		return nil, model.NewCannotDeleteError(id, reason)
	}

	if err := s.repo.Delete(ctx, s.pool, id); err != nil {
		if errors.Is(err, model.ErrCourseNotFound) {
			return nil, model.NewCourseNotFoundError(id)
		}
		return nil, s.storageError("delete course", err)
	}

	s.invalidateCache(ctx)
	return &model.DeleteCourseResponse{Success: true, ID: id}, nil
}

// =====================================================
// HELPERS
// =====================================================

// storageError logs an unexpected storage failure and folds it into the
// public error contract. Errors already carrying a taxonomy code pass
// through untouched.
func (s *courseService) storageError(op string, err error) error {
	var cerr *model.CourseError
	if errors.As(err, &cerr) {
		return cerr
	}
	logger.Error(op, err)
	return model.NewDatabaseError(err)
}

func (s *courseService) invalidateCache(ctx context.Context) {
	if err := s.cache.DeletePattern(ctx, courseCachePattern); err != nil {
		logger.Error("course cache invalidation failed", err)
	}
}

func listCacheKey(limit, offset int, tags []string) string {
	if len(tags) == 0 {
		return fmt.Sprintf("courses:list:%d:%d", limit, offset)
	}
	return fmt.Sprintf("courses:list:%d:%d:%s", limit, offset, strings.Join(tags, ","))
}

func toResponses(courses []*model.Course) []model.CourseResponse {
	out := make([]model.CourseResponse, 0, len(courses))
	for _, c := range courses {
		out = append(out, *c.ToResponse())
	}
	return out
}

// mergeForValidation overlays the requested changes on the stored course and
// renders the result back into request form, so the complete-course validator
// sees the record as it would exist after the update.
func mergeForValidation(existing *model.Course, req model.UpdateCourseRequest) validator.CourseInput {
	name := existing.Name
	if req.Name != nil {
		name = *req.Name
	}
	price := existing.Price.StringFixed(2)
	if req.Price != nil {
		price = *req.Price
	}
	tags := []string(existing.CategoryTag)
	if req.CategoryTag != nil {
		tags = req.CategoryTag
	}
	var rating *string
	if existing.Rating != nil {
		r := existing.Rating.StringFixed(1)
		rating = &r
	}
	if req.Rating != nil {
		rating = req.Rating
	}
	thumbnail := existing.Thumbnail
	if req.Thumbnail != nil {
		thumbnail = req.Thumbnail
	}
	return validator.CourseInput{
		Name:        &name,
		Price:       &price,
		CategoryTag: tags,
		Rating:      rating,
		Thumbnail:   thumbnail,
	}
}

// taxonomyError maps the first validation failure onto the field-specific
// error code the API contract promises for it.
func taxonomyError(in validator.CourseInput, f validator.Result) *model.CourseError {
	switch f.Field {
	case "price":
		return model.NewInvalidPriceError(derefString(in.Price), f.Reason)
	case "categoryTag":
		return model.NewInvalidCategoryTagsError(in.CategoryTag, f.Reason)
	case "rating":
		if f.Reason == validator.ReasonFreeCourseHighRating {
			return model.NewFreeCourseHighRatingError(derefString(in.Price), derefString(in.Rating))
		}
		return model.NewInvalidRatingError(derefString(in.Rating), f.Reason)
	default:
		return model.NewValidationFailedError(f.Field, f.Reason)
	}
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
