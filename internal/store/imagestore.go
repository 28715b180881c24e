package store

import (
	"context"
	"time"

	"github.com/madhava-poojari/swimschool-api/internal/apperr"
	"github.com/madhava-poojari/swimschool-api/internal/models"
)

// UpdateCourseImage records the stored cover image of a course.
func (s *Store) UpdateCourseImage(ctx context.Context, courseID, imageURL, imageKey string) error {
	res := s.DB.WithContext(ctx).Model(&models.Course{}).Where("id = ?", courseID).
		Updates(map[string]interface{}{"image_url": imageURL, "image_key": imageKey, "updated_at": time.Now()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
