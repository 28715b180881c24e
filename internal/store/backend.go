package store

import (
	"context"

	"github.com/madhava-poojari/swimschool-api/internal/config"
	"github.com/madhava-poojari/swimschool-api/internal/service"
	"github.com/madhava-poojari/swimschool-api/internal/store/memstore"
)

// Backend is everything the services and the health check need from a store.
type Backend interface {
	service.UserRepository
	service.CourseRepository
	service.EnrollmentRepository
	service.PoolRepository
	service.TokenRepository

	Ping(ctx context.Context) error
	Reset(ctx context.Context) error
	Close() error
}

var (
	_ Backend = (*Store)(nil)
	_ Backend = (*memstore.Store)(nil)
)

// Open returns the store selected by STORE_DRIVER.
func Open(cfg *config.Config) (Backend, error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		return memstore.New(), nil
	}
	return NewGormStore(cfg)
}
