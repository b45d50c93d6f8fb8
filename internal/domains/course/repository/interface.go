package repository

import (
	"context"

	"github.com/google/uuid"

	"course-platform-backend/internal/domains/course/model"
	"course-platform-backend/pkg/database"
)

// CourseRepository is the persistence gateway for courses. Every method takes
// the active connection/session explicitly so calls compose inside a single
// transaction when a caller needs one.
//
// A not-found read returns model.ErrCourseNotFound; the gateway knows nothing
// about the boundary taxonomy.
type CourseRepository interface {
	FindByID(ctx context.Context, db database.DBTX, id uuid.UUID) (*model.Course, error)
	List(ctx context.Context, db database.DBTX, filter *model.CourseFilter) ([]*model.Course, int, error)
	Create(ctx context.Context, db database.DBTX, course *model.Course) error
	// Update writes only the supplied fields and always refreshes updated_at.
	Update(ctx context.Context, db database.DBTX, id uuid.UUID, changes *model.CourseChanges) (*model.Course, error)
	// Delete is an unconditional hard delete; the decision to allow it is the
	// caller's job.
	Delete(ctx context.Context, db database.DBTX, id uuid.UUID) error

	Exists(ctx context.Context, db database.DBTX, id uuid.UUID) (bool, error)
	SearchByName(ctx context.Context, db database.DBTX, query string, limit, offset int) ([]*model.Course, int, error)
	ListByCreator(ctx context.Context, db database.DBTX, creatorID uuid.UUID, limit, offset int) ([]*model.Course, int, error)
	ListPopular(ctx context.Context, db database.DBTX, limit int) ([]*model.PopularCourse, error)
	Statistics(ctx context.Context, db database.DBTX) (*model.CourseStatisticsResponse, error)

	// CreatorExists probes the externally owned users table.
	CreatorExists(ctx context.Context, db database.DBTX, userID uuid.UUID) (bool, error)
}
