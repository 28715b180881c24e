package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/madhava-poojari/swimschool-api/internal/config"
	"github.com/madhava-poojari/swimschool-api/internal/server"
	"github.com/madhava-poojari/swimschool-api/internal/store"
	"github.com/madhava-poojari/swimschool-api/internal/utils"
)

func memoryConfig(t *testing.T) *config.Config {
	return &config.Config{
		Env:             "test",
		StoreDriver:     config.StoreDriverMemory,
		JWTSecret:       "main-test-secret-0123",
		AccessTokenTTL:  time.Minute,
		RefreshTokenTTL: time.Hour,
		BcryptCost:      4,
		UploadDir:       t.TempDir(),
		UploadBaseURL:   "http://localhost:8080",
	}
}

func TestNewFileStore_LocalWithoutR2(t *testing.T) {
	cfg := memoryConfig(t)
	_, ok := newFileStore(cfg, zerolog.Nop()).(*utils.FileStorage)
	assert.True(t, ok)

	cfg.R2AccessKeyID, cfg.R2SecretAccessKey = "k", "s"
	cfg.R2Endpoint, cfg.R2BucketName, cfg.R2PublicURL = "https://acct.r2.cloudflarestorage.com", "b", "https://img.test"
	_, ok = newFileStore(cfg, zerolog.Nop()).(*utils.R2Storage)
	assert.True(t, ok)
}

func TestNewServices_ServeHealth(t *testing.T) {
	cfg := memoryConfig(t)
	db, err := store.Open(cfg)
	require.NoError(t, err)
	defer db.Close()

	svc, tokens := newServices(cfg, db, newFileStore(cfg, zerolog.Nop()), zerolog.Nop())
	assert.NotNil(t, svc.Users)
	assert.NotNil(t, svc.Auth)
	assert.NotNil(t, svc.Courses)
	assert.NotNil(t, svc.Pools)
	assert.NotNil(t, svc.Enrollments)

	h := server.NewServer(cfg, zerolog.Nop(), svc, tokens, db).Handler()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPurgeTokens_StopsOnCancel(t *testing.T) {
	cfg := memoryConfig(t)
	db, err := store.Open(cfg)
	require.NoError(t, err)
	svc, _ := newServices(cfg, db, newFileStore(cfg, zerolog.Nop()), zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		purgeTokens(ctx, svc.Auth, zerolog.Nop())
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("purgeTokens did not return after cancel")
	}
}
