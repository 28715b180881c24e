package service

import (
	"context"
	"time"

	"github.com/madhava-poojari/swimschool-api/internal/models"
)

// Repositories are implemented by store.Store (postgres) and memstore.Store.
// Lookups return apperr.ErrNotFound when the row is missing.

type UserRepository interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// GetUserByIdentifier matches the email or the username.
	GetUserByIdentifier(ctx context.Context, identifier string) (*models.User, error)
	UserExists(ctx context.Context, email, username string) (bool, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	DeleteUser(ctx context.Context, id string) error
	UpdateUserRole(ctx context.Context, id string, role models.Role) error
}

type CourseRepository interface {
	CreateCourse(ctx context.Context, c *models.Course) error
	GetCourseByID(ctx context.Context, id string) (*models.Course, error)
	ListActiveCourses(ctx context.Context) ([]*models.Course, error)
	UpdateCourseImage(ctx context.Context, id, imageURL, imageKey string) error

	CreateSchedule(ctx context.Context, s *models.Schedule) error
	GetScheduleByID(ctx context.Context, id string) (*models.Schedule, error)
	ListActiveSchedules(ctx context.Context, courseID string) ([]*models.Schedule, error)
}

// EnrollmentTx is the view of the store inside a course critical section.
type EnrollmentTx interface {
	CountActiveByStudentCourse(ctx context.Context, studentID, courseID string) (int64, error)
	CountActiveBySchedule(ctx context.Context, scheduleID string) (int64, error)
	CreateEnrollment(ctx context.Context, e *models.Enrollment) error
}

type EnrollmentRepository interface {
	// WithCourseLock runs fn while holding the admission lock of courseID.
	// No other WithCourseLock call for the same course runs concurrently, and
	// if fn returns an error nothing it wrote is kept.
	WithCourseLock(ctx context.Context, courseID string, fn func(tx EnrollmentTx) error) error
	ListEnrollmentsByStudent(ctx context.Context, studentID string) ([]*models.Enrollment, error)
}

type PoolRepository interface {
	CreatePool(ctx context.Context, p *models.Pool) error
	ListActivePools(ctx context.Context) ([]*models.Pool, error)
}

type TokenRepository interface {
	SaveRefreshToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error
	// RotateRefreshToken revokes the live token oldHash, stores newHash and returns the owner.
	RotateRefreshToken(ctx context.Context, oldHash, newHash string, newExpiry time.Time) (string, error)
	RevokeRefreshToken(ctx context.Context, tokenHash string) error
	DeleteExpiredTokens(ctx context.Context) error
}
