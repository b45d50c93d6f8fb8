package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	coursemodel "course-platform-backend/internal/domains/course/model"
	"course-platform-backend/internal/domains/enrollment/model"
	"course-platform-backend/internal/domains/enrollment/repository"
	"course-platform-backend/pkg/database"
)

// =====================================================
// MOCKS
// =====================================================

type mockEnrollmentRepository struct {
	mock.Mock
}

func (m *mockEnrollmentRepository) Create(ctx context.Context, db database.DBTX, enrollment *model.Enrollment) error {
	args := m.Called(ctx, db, enrollment)
	return args.Error(0)
}

func (m *mockEnrollmentRepository) FindByID(ctx context.Context, db database.DBTX, id uuid.UUID) (*model.Enrollment, error) {
	args := m.Called(ctx, db, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Enrollment), args.Error(1)
}

func (m *mockEnrollmentRepository) FindByUserAndCourse(ctx context.Context, db database.DBTX, userID, courseID uuid.UUID) (*model.Enrollment, error) {
	args := m.Called(ctx, db, userID, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Enrollment), args.Error(1)
}

func (m *mockEnrollmentRepository) FindByUser(ctx context.Context, db database.DBTX, userID uuid.UUID, limit, offset int) ([]*model.EnrollmentWithCourse, int, error) {
	args := m.Called(ctx, db, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*model.EnrollmentWithCourse), args.Int(1), args.Error(2)
}

func (m *mockEnrollmentRepository) FindByCourse(ctx context.Context, db database.DBTX, courseID uuid.UUID, limit, offset int) ([]*model.Enrollment, int, error) {
	args := m.Called(ctx, db, courseID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*model.Enrollment), args.Int(1), args.Error(2)
}

func (m *mockEnrollmentRepository) Delete(ctx context.Context, db database.DBTX, id uuid.UUID) error {
	args := m.Called(ctx, db, id)
	return args.Error(0)
}

func (m *mockEnrollmentRepository) DeleteByUserAndCourse(ctx context.Context, db database.DBTX, userID, courseID uuid.UUID) (int, error) {
	args := m.Called(ctx, db, userID, courseID)
	return args.Int(0), args.Error(1)
}

func (m *mockEnrollmentRepository) Exists(ctx context.Context, db database.DBTX, userID, courseID uuid.UUID) (bool, error) {
	args := m.Called(ctx, db, userID, courseID)
	return args.Bool(0), args.Error(1)
}

func (m *mockEnrollmentRepository) CountByCourse(ctx context.Context, db database.DBTX, courseID uuid.UUID) (int, error) {
	args := m.Called(ctx, db, courseID)
	return args.Int(0), args.Error(1)
}

func (m *mockEnrollmentRepository) CountByUser(ctx context.Context, db database.DBTX, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, db, userID)
	return args.Int(0), args.Error(1)
}

func (m *mockEnrollmentRepository) UserStatistics(ctx context.Context, db database.DBTX, userID uuid.UUID) (*model.UserStatisticsResponse, error) {
	args := m.Called(ctx, db, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserStatisticsResponse), args.Error(1)
}

func (m *mockEnrollmentRepository) CheckEligibility(ctx context.Context, db database.DBTX, userID, courseID uuid.UUID) (*repository.Eligibility, error) {
	args := m.Called(ctx, db, userID, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.Eligibility), args.Error(1)
}

func (m *mockEnrollmentRepository) UserExists(ctx context.Context, db database.DBTX, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, db, userID)
	return args.Bool(0), args.Error(1)
}

type mockCourseReader struct {
	mock.Mock
}

func (m *mockCourseReader) FindByID(ctx context.Context, db database.DBTX, id uuid.UUID) (*coursemodel.Course, error) {
	args := m.Called(ctx, db, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*coursemodel.Course), args.Error(1)
}

type mockCache struct {
	mock.Mock
}

func (m *mockCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	args := m.Called(ctx, key, dest)
	return args.Bool(0), args.Error(1)
}

func (m *mockCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *mockCache) Delete(ctx context.Context, keys ...string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}

func (m *mockCache) DeletePattern(ctx context.Context, pattern string) error {
	args := m.Called(ctx, pattern)
	return args.Error(0)
}

func (m *mockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// =====================================================
// FIXTURES
// =====================================================

func newTestService(t *testing.T) (*mockEnrollmentRepository, *mockCourseReader, *mockCache, ServiceInterface) {
	t.Helper()
	prev := runInTx
	runInTx = func(ctx context.Context, _ *pgxpool.Pool, fn database.TxFunc) error {
		return fn(nil)
	}
	t.Cleanup(func() { runInTx = prev })

	repo := new(mockEnrollmentRepository)
	courses := new(mockCourseReader)
	c := new(mockCache)
	svc := NewEnrollmentService(nil, repo, courses, c)
	return repo, courses, c, svc
}

func eligible() *repository.Eligibility {
	return &repository.Eligibility{UserExists: true, CourseExists: true}
}

func testCourse(id uuid.UUID) *coursemodel.Course {
	return &coursemodel.Course{
		ID:    id,
		Name:  "Backend with Go",
		Price: decimal.RequireFromString("149.99"),
	}
}

func enrollErrCode(t *testing.T, err error) string {
	t.Helper()
	var eerr *model.EnrollmentError
	require.ErrorAs(t, err, &eerr)
	return eerr.Code
}

// =====================================================
// ENROLL
// =====================================================

func TestEnrollSuccess(t *testing.T) {
	repo, courses, c, svc := newTestService(t)
	userID, courseID := uuid.New(), uuid.New()

	repo.On("CheckEligibility", mock.Anything, mock.Anything, userID, courseID).Return(eligible(), nil)
	courses.On("FindByID", mock.Anything, mock.Anything, courseID).Return(testCourse(courseID), nil)
	repo.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(e *model.Enrollment) bool {
		return e.UserID == userID && e.CourseID == courseID && e.ID != uuid.Nil
	})).Return(nil)
	c.On("DeletePattern", mock.Anything, mock.Anything).Return(nil)

	resp, err := svc.Enroll(context.Background(), userID, model.EnrollRequest{CourseID: courseID.String()})

	require.NoError(t, err)
	assert.Equal(t, userID, resp.UserID)
	assert.Equal(t, courseID, resp.CourseID)
	assert.Equal(t, "Backend with Go", resp.CourseName)
	assert.InDelta(t, 149.99, resp.Price, 0.001)
	assert.Equal(t, model.StatusActive, resp.Status)
	// A clean eligibility screen skips the targeted checks.
	repo.AssertNotCalled(t, "UserExists", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "FindByUserAndCourse", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
}

func TestEnrollCourseNotFound(t *testing.T) {
	repo, courses, _, svc := newTestService(t)
	userID, courseID := uuid.New(), uuid.New()

	repo.On("CheckEligibility", mock.Anything, mock.Anything, userID, courseID).
		Return(&repository.Eligibility{UserExists: true, CourseExists: false}, nil)
	courses.On("FindByID", mock.Anything, mock.Anything, courseID).Return(nil, coursemodel.ErrCourseNotFound)

	_, err := svc.Enroll(context.Background(), userID, model.EnrollRequest{CourseID: courseID.String()})

	assert.Equal(t, model.ErrCodeCourseNotFound, enrollErrCode(t, err))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestEnrollUserNotFound(t *testing.T) {
	repo, courses, _, svc := newTestService(t)
	userID, courseID := uuid.New(), uuid.New()

	repo.On("CheckEligibility", mock.Anything, mock.Anything, userID, courseID).
		Return(&repository.Eligibility{UserExists: false, CourseExists: true}, nil)
	courses.On("FindByID", mock.Anything, mock.Anything, courseID).Return(testCourse(courseID), nil)
	repo.On("UserExists", mock.Anything, mock.Anything, userID).Return(false, nil)

	_, err := svc.Enroll(context.Background(), userID, model.EnrollRequest{CourseID: courseID.String()})

	assert.Equal(t, model.ErrCodeUserNotFound, enrollErrCode(t, err))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestEnrollAlreadyEnrolledReportsFirstEnrollment(t *testing.T) {
	repo, courses, _, svc := newTestService(t)
	userID, courseID := uuid.New(), uuid.New()
	existingID := uuid.New()

	repo.On("CheckEligibility", mock.Anything, mock.Anything, userID, courseID).
		Return(&repository.Eligibility{UserExists: true, CourseExists: true, AlreadyEnrolled: true}, nil)
	courses.On("FindByID", mock.Anything, mock.Anything, courseID).Return(testCourse(courseID), nil)
	repo.On("FindByUserAndCourse", mock.Anything, mock.Anything, userID, courseID).
		Return(&model.Enrollment{ID: existingID, UserID: userID, CourseID: courseID}, nil)

	_, err := svc.Enroll(context.Background(), userID, model.EnrollRequest{CourseID: courseID.String()})

	var eerr *model.EnrollmentError
	require.ErrorAs(t, err, &eerr)
	assert.Equal(t, model.ErrCodeAlreadyEnrolled, eerr.Code)
	assert.Equal(t, existingID.String(), eerr.Details["enrollmentId"])
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestEnrollInsertFailure(t *testing.T) {
	repo, courses, _, svc := newTestService(t)
	userID, courseID := uuid.New(), uuid.New()

	repo.On("CheckEligibility", mock.Anything, mock.Anything, userID, courseID).Return(eligible(), nil)
	courses.On("FindByID", mock.Anything, mock.Anything, courseID).Return(testCourse(courseID), nil)
	repo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("insert failed"))

	_, err := svc.Enroll(context.Background(), userID, model.EnrollRequest{CourseID: courseID.String()})

	var eerr *model.EnrollmentError
	require.ErrorAs(t, err, &eerr)
	assert.Equal(t, model.ErrCodeEnrollmentFailed, eerr.Code)
	assert.Equal(t, userID.String(), eerr.Details["userId"])
	assert.Equal(t, courseID.String(), eerr.Details["courseId"])
	assert.Equal(t, "insert failed", eerr.Details["reason"])
}

func TestEnrollMalformedCourseID(t *testing.T) {
	_, _, _, svc := newTestService(t)

	_, err := svc.Enroll(context.Background(), uuid.New(), model.EnrollRequest{CourseID: "not-a-uuid"})

	assert.Equal(t, model.ErrCodeValidationFailed, enrollErrCode(t, err))
}

// =====================================================
// MY COURSES
// =====================================================

func TestMyCoursesStats(t *testing.T) {
	repo, _, c, svc := newTestService(t)
	userID := uuid.New()

	rows := []*model.EnrollmentWithCourse{
		{
			Enrollment:  model.Enrollment{ID: uuid.New(), UserID: userID, CourseID: uuid.New()},
			CourseName:  "Free Intro",
			Price:       decimal.Zero,
			CategoryTag: []string{"prakerja"},
		},
		{
			Enrollment:  model.Enrollment{ID: uuid.New(), UserID: userID, CourseID: uuid.New()},
			CourseName:  "Paid Deep Dive",
			Price:       decimal.RequireFromString("99.00"),
			CategoryTag: []string{"prakerja", "spl"},
		},
	}
	c.On("Get", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
	c.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	repo.On("FindByUser", mock.Anything, mock.Anything, userID, 50, 0).Return(rows, 2, nil)

	resp, err := svc.MyCourses(context.Background(), userID, model.MyCoursesRequest{})

	require.NoError(t, err)
	assert.Len(t, resp.Courses, 2)
	assert.Equal(t, 2, resp.Stats.Total)
	assert.Equal(t, 2, resp.Stats.Active)
	assert.Equal(t, 0, resp.Stats.Completed)
	assert.InDelta(t, 99.00, resp.Stats.TotalSpent, 0.001)
	assert.InDelta(t, 49.50, resp.Stats.AveragePrice, 0.001)
	assert.Equal(t, []string{"prakerja", "spl"}, resp.Stats.Categories)
	for _, course := range resp.Courses {
		assert.Equal(t, model.StatusActive, course.Status)
	}
	repo.AssertExpectations(t)
}

func TestMyCoursesEmptyStats(t *testing.T) {
	repo, _, c, svc := newTestService(t)
	userID := uuid.New()

	c.On("Get", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
	c.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	repo.On("FindByUser", mock.Anything, mock.Anything, userID, 50, 0).
		Return([]*model.EnrollmentWithCourse{}, 0, nil)

	resp, err := svc.MyCourses(context.Background(), userID, model.MyCoursesRequest{})

	require.NoError(t, err)
	assert.Zero(t, resp.Stats.TotalSpent)
	assert.Zero(t, resp.Stats.AveragePrice)
	assert.Empty(t, resp.Stats.Categories)
	assert.NotNil(t, resp.Stats.Categories)
}

func TestMyCoursesRejectsOutOfRangeLimit(t *testing.T) {
	_, _, _, svc := newTestService(t)
	userID := uuid.New()

	limit := 0
	_, err := svc.MyCourses(context.Background(), userID, model.MyCoursesRequest{Limit: &limit})

	assert.Equal(t, model.ErrCodeValidationFailed, enrollErrCode(t, err))
}

// =====================================================
// UNENROLL
// =====================================================

func TestUnenrollSuccess(t *testing.T) {
	repo, _, c, svc := newTestService(t)
	userID, enrollmentID := uuid.New(), uuid.New()

	repo.On("FindByID", mock.Anything, mock.Anything, enrollmentID).
		Return(&model.Enrollment{ID: enrollmentID, UserID: userID, CourseID: uuid.New()}, nil)
	repo.On("Delete", mock.Anything, mock.Anything, enrollmentID).Return(nil)
	c.On("DeletePattern", mock.Anything, mock.Anything).Return(nil)

	resp, err := svc.Unenroll(context.Background(), userID, enrollmentID)

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, enrollmentID, resp.ID)
	repo.AssertExpectations(t)
}

func TestUnenrollNotFound(t *testing.T) {
	repo, _, _, svc := newTestService(t)
	enrollmentID := uuid.New()

	repo.On("FindByID", mock.Anything, mock.Anything, enrollmentID).Return(nil, model.ErrEnrollmentNotFound)

	_, err := svc.Unenroll(context.Background(), uuid.New(), enrollmentID)

	assert.Equal(t, model.ErrCodeNotFound, enrollErrCode(t, err))
}

func TestUnenrollOtherUsersEnrollment(t *testing.T) {
	repo, _, _, svc := newTestService(t)
	owner, intruder, enrollmentID := uuid.New(), uuid.New(), uuid.New()

	repo.On("FindByID", mock.Anything, mock.Anything, enrollmentID).
		Return(&model.Enrollment{ID: enrollmentID, UserID: owner, CourseID: uuid.New()}, nil)

	_, err := svc.Unenroll(context.Background(), intruder, enrollmentID)

	assert.Equal(t, model.ErrCodeUnauthorizedAccess, enrollErrCode(t, err))
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

// =====================================================
// STATISTICS
// =====================================================

func TestMyStatistics(t *testing.T) {
	repo, _, _, svc := newTestService(t)
	userID := uuid.New()

	repo.On("UserStatistics", mock.Anything, mock.Anything, userID).
		Return(&model.UserStatisticsResponse{TotalEnrollments: 3, FreeCourses: 1, PaidCourses: 2, TotalSpent: 248.99}, nil)

	stats, err := svc.MyStatistics(context.Background(), userID)

	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalEnrollments)
	assert.Equal(t, 2, stats.PaidCourses)
}
