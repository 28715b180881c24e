package main

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/madhava-poojari/swimschool-api/internal/config"
	"github.com/madhava-poojari/swimschool-api/internal/models"
	"github.com/madhava-poojari/swimschool-api/internal/service"
	"github.com/madhava-poojari/swimschool-api/internal/store/memstore"
	"github.com/madhava-poojari/swimschool-api/internal/utils"
	"github.com/madhava-poojari/swimschool-api/internal/validation"
)

func TestSeed_LoadsDemoData(t *testing.T) {
	ctx := context.Background()
	db := memstore.New()
	v := validation.New()
	users := service.NewUserService(db, v, bcrypt.MinCost)
	courses := service.NewCourseService(db, db, utils.NewFileStorage(t.TempDir(), "http://localhost:8080"), v, zerolog.Nop())
	pools := service.NewPoolService(db, v)

	// twice: the reset makes it repeatable
	for i := 0; i < 2; i++ {
		require.NoError(t, seed(ctx, db, users, courses, pools, "123456", zerolog.Nop()))
	}

	all, err := users.List(ctx)
	require.NoError(t, err)
	roles := map[models.Role]int{}
	for _, u := range all {
		roles[u.Role]++
	}
	assert.Equal(t, map[models.Role]int{models.RoleAdmin: 1, models.RoleInstructor: 2}, roles)

	list, err := courses.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 4)
	schedules := 0
	for _, c := range list {
		s, err := courses.ListSchedules(ctx, c.ID)
		require.NoError(t, err)
		schedules += len(s)
		for _, sc := range s {
			assert.Equal(t, time.Now().Year(), sc.StartDate.Year())
		}
	}
	assert.Equal(t, 6, schedules)

	p, err := pools.List(ctx)
	require.NoError(t, err)
	assert.Len(t, p, 1)

	admin, err := users.Authenticate(ctx, service.LoginInput{Identifier: "admin", Password: "123456"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)
}

func TestRun_Modes(t *testing.T) {
	cfg := &config.Config{
		Env:         "test",
		StoreDriver: config.StoreDriverMemory,
		BcryptCost:  bcrypt.MinCost,
		UploadDir:   t.TempDir(),
	}
	assert.NoError(t, run(cfg, zerolog.Nop(), "admin", "123456"))
	assert.NoError(t, run(cfg, zerolog.Nop(), "seed", "123456"))
	assert.Error(t, run(cfg, zerolog.Nop(), "drop", "123456"))
}
