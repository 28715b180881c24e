package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	v1 "github.com/madhava-poojari/swimschool-api/internal/api/v1"
	"github.com/madhava-poojari/swimschool-api/internal/auth"
	"github.com/madhava-poojari/swimschool-api/internal/config"
)

type Server struct {
	cfg    *config.Config
	log    zerolog.Logger
	svc    v1.Services
	tokens *auth.TokenManager
	pinger v1.Pinger
}

func NewServer(cfg *config.Config, log zerolog.Logger, svc v1.Services, tokens *auth.TokenManager, pinger v1.Pinger) *Server {
	return &Server{cfg: cfg, log: log, svc: svc, tokens: tokens, pinger: pinger}
}

// Handler builds the root router: request logging, CORS, the JSON API under /api
// and, for local storage, the uploaded files under /uploads.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(hlog.NewHandler(s.log))
	r.Use(hlog.RequestIDHandler("req_id", "X-Request-Id"))
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Stringer("url", r.URL).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("request")
	}))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	api := v1.NewAPI(s.cfg, s.svc, s.tokens, s.pinger)
	r.Mount("/api", api.Routes())

	if !s.cfg.UseR2() {
		fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(s.cfg.UploadDir)))
		r.Get("/uploads/*", fs.ServeHTTP)
	}
	return r
}

func (s *Server) NewHTTPServer() *http.Server {
	return &http.Server{
		Addr:              s.cfg.BindAddr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
