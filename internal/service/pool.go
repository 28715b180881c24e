package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/madhava-poojari/swimschool-api/internal/models"
	"github.com/madhava-poojari/swimschool-api/internal/utils"
	"github.com/madhava-poojari/swimschool-api/internal/validation"
)

type PoolInput struct {
	Name                string  `json:"name" validate:"required,min=2"`
	Description         string  `json:"description,omitempty"`
	Length              float64 `json:"length" validate:"gte=10"`
	Width               float64 `json:"width" validate:"gte=5"`
	Depth               float64 `json:"depth" validate:"gte=0.5"`
	Temperature         float64 `json:"temperature" validate:"gte=20,lte=32"`
	Capacity            int     `json:"capacity" validate:"gte=1"`
	MaintenanceSchedule string  `json:"maintenanceSchedule,omitempty"`
}

type PoolService struct {
	pools     PoolRepository
	validator *validation.Validator
}

func NewPoolService(pools PoolRepository, v *validation.Validator) *PoolService {
	return &PoolService{pools: pools, validator: v}
}

func (s *PoolService) List(ctx context.Context) ([]*models.Pool, error) {
	pools, err := s.pools.ListActivePools(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pools: %w", err)
	}
	return pools, nil
}

func (s *PoolService) Create(ctx context.Context, in PoolInput) (*models.Pool, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := s.validator.Struct(in); err != nil {
		return nil, err
	}
	p := &models.Pool{
		ID:                  utils.GenerateID(),
		Name:                in.Name,
		Description:         in.Description,
		Length:              in.Length,
		Width:               in.Width,
		Depth:               in.Depth,
		Temperature:         in.Temperature,
		Capacity:            in.Capacity,
		IsActive:            true,
		MaintenanceSchedule: in.MaintenanceSchedule,
		CreatedAt:           time.Now(),
	}
	if err := s.pools.CreatePool(ctx, p); err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	return p, nil
}
