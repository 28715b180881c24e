package store

import (
	"context"

	"github.com/madhava-poojari/swimschool-api/internal/models"
)

/* ------------------ Courses ------------------ */

func (s *Store) CreateCourse(ctx context.Context, c *models.Course) error {
	return s.DB.WithContext(ctx).Omit("Instructor").Create(c).Error
}

func (s *Store) GetCourseByID(ctx context.Context, id string) (*models.Course, error) {
	var c models.Course
	if err := s.DB.WithContext(ctx).Preload("Instructor").First(&c, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func (s *Store) ListActiveCourses(ctx context.Context) ([]*models.Course, error) {
	var res []*models.Course
	err := s.DB.WithContext(ctx).
		Preload("Instructor").
		Where("is_active = ?", true).
		Order("created_at desc").
		Find(&res).Error
	return res, err
}

/* ------------------ Schedules ------------------ */

func (s *Store) CreateSchedule(ctx context.Context, sc *models.Schedule) error {
	return s.DB.WithContext(ctx).Omit("Course").Create(sc).Error
}

func (s *Store) GetScheduleByID(ctx context.Context, id string) (*models.Schedule, error) {
	var sc models.Schedule
	if err := s.DB.WithContext(ctx).First(&sc, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &sc, nil
}

func (s *Store) ListActiveSchedules(ctx context.Context, courseID string) ([]*models.Schedule, error) {
	var res []*models.Schedule
	err := s.DB.WithContext(ctx).
		Where("course_id = ? AND is_active = ?", courseID, true).
		Order("day_of_week asc, start_time asc").
		Find(&res).Error
	return res, err
}
