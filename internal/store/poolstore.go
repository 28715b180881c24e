package store

import (
	"context"

	"github.com/madhava-poojari/swimschool-api/internal/models"
)

func (s *Store) CreatePool(ctx context.Context, p *models.Pool) error {
	return s.DB.WithContext(ctx).Create(p).Error
}

func (s *Store) ListActivePools(ctx context.Context) ([]*models.Pool, error) {
	var res []*models.Pool
	err := s.DB.WithContext(ctx).Where("is_active = ?", true).Order("name asc").Find(&res).Error
	return res, err
}
