package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	v1 "github.com/madhava-poojari/swimschool-api/internal/api/v1"
	"github.com/madhava-poojari/swimschool-api/internal/auth"
	"github.com/madhava-poojari/swimschool-api/internal/config"
	"github.com/madhava-poojari/swimschool-api/internal/logger"
	"github.com/madhava-poojari/swimschool-api/internal/server"
	"github.com/madhava-poojari/swimschool-api/internal/service"
	"github.com/madhava-poojari/swimschool-api/internal/store"
	"github.com/madhava-poojari/swimschool-api/internal/utils"
	"github.com/madhava-poojari/swimschool-api/internal/validation"
)

const (
	shutdownTimeout = 10 * time.Second
	tokenPurgeEvery = time.Hour
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := zerolog.New(zerolog.NewConsoleWriter())
		boot.Error().Err(err).Msg("load config")
		os.Exit(1)
	}
	log := logger.New(cfg)

	if err := run(cfg, log); err != nil {
		log.Error().Err(err).Msg("api stopped")
		logger.Flush()
		os.Exit(1)
	}
	logger.Flush()
}

// run serves until SIGINT/SIGTERM or a listener failure, then drains.
func run(cfg *config.Config, log zerolog.Logger) error {
	db, err := store.Open(cfg)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.StoreDriver, err)
	}
	defer db.Close()
	log.Info().Str("driver", cfg.StoreDriver).Msg("store ready")

	svc, tokens := newServices(cfg, db, newFileStore(cfg, log), log)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	go purgeTokens(ctx, svc.Auth, log)

	srv := server.NewServer(cfg, log, svc, tokens, db).NewHTTPServer()
	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.BindAddr).Str("env", cfg.Env).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		return fmt.Errorf("listen: %w", err)
	}

	log.Info().Msg("shutting down")
	shutdownCtx, done := context.WithTimeout(context.Background(), shutdownTimeout)
	defer done()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}

func newServices(cfg *config.Config, db store.Backend, files utils.FileStore, log zerolog.Logger) (v1.Services, *auth.TokenManager) {
	validator := validation.New()
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL)

	var google service.GoogleVerifier
	if cfg.GoogleEnabled() {
		google = auth.NewGoogleVerifier(cfg)
	}

	users := service.NewUserService(db, validator, cfg.BcryptCost)
	return v1.Services{
		Users:       users,
		Auth:        service.NewAuthService(users, db, db, tokens, google, cfg.RefreshTokenTTL),
		Courses:     service.NewCourseService(db, db, files, validator, log),
		Pools:       service.NewPoolService(db, validator),
		Enrollments: service.NewEnrollmentService(db, db, db, validator),
	}, tokens
}

func newFileStore(cfg *config.Config, log zerolog.Logger) utils.FileStore {
	if cfg.UseR2() {
		log.Info().Str("bucket", cfg.R2BucketName).Msg("course images stored in R2")
		return utils.NewR2Storage(cfg.R2AccessKeyID, cfg.R2SecretAccessKey, cfg.R2Endpoint, cfg.R2BucketName, cfg.R2PublicURL)
	}
	log.Info().Str("dir", cfg.UploadDir).Msg("course images stored on disk")
	return utils.NewFileStorage(cfg.UploadDir, cfg.UploadBaseURL)
}

func purgeTokens(ctx context.Context, a *service.AuthService, log zerolog.Logger) {
	t := time.NewTicker(tokenPurgeEvery)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if err := a.PurgeExpired(ctx); err != nil && ctx.Err() == nil {
				log.Warn().Err(err).Msg("purge expired refresh tokens")
			}
		}
	}
}
