package store

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/madhava-poojari/swimschool-api/internal/apperr"
	"github.com/madhava-poojari/swimschool-api/internal/models"
	"github.com/madhava-poojari/swimschool-api/internal/service"
)

// WithCourseLock runs fn in a transaction holding a row lock on the course.
// Every booking for the course, and so for each of its schedules, queues on that lock.
func (s *Store) WithCourseLock(ctx context.Context, courseID string, fn func(tx service.EnrollmentTx) error) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c models.Course
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			First(&c, "id = ?", courseID).Error; err != nil {
			return notFound(err)
		}
		return fn(&enrollmentTx{db: tx})
	})
}

func (s *Store) ListEnrollmentsByStudent(ctx context.Context, studentID string) ([]*models.Enrollment, error) {
	var res []*models.Enrollment
	err := s.DB.WithContext(ctx).
		Preload("Course").Preload("Course.Instructor").
		Preload("Schedule").
		Where("student_id = ?", studentID).
		Order("enrollment_date desc").
		Find(&res).Error
	return res, err
}

type enrollmentTx struct {
	db *gorm.DB
}

func (t *enrollmentTx) CountActiveByStudentCourse(ctx context.Context, studentID, courseID string) (int64, error) {
	var n int64
	err := t.db.WithContext(ctx).Model(&models.Enrollment{}).
		Where("student_id = ? AND course_id = ? AND status IN ?", studentID, courseID, models.ActiveEnrollmentStatuses).
		Count(&n).Error
	return n, err
}

func (t *enrollmentTx) CountActiveBySchedule(ctx context.Context, scheduleID string) (int64, error) {
	var n int64
	err := t.db.WithContext(ctx).Model(&models.Enrollment{}).
		Where("schedule_id = ? AND status IN ?", scheduleID, models.ActiveEnrollmentStatuses).
		Count(&n).Error
	return n, err
}

func (t *enrollmentTx) CreateEnrollment(ctx context.Context, e *models.Enrollment) error {
	err := t.db.WithContext(ctx).Omit("Course", "Schedule").Create(e).Error
	return duplicate(err, apperr.ErrAlreadyEnrolled)
}
