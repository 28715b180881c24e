package v1

import (
	"github.com/go-chi/chi/v5"

	"github.com/madhava-poojari/swimschool-api/internal/auth"
	"github.com/madhava-poojari/swimschool-api/internal/config"
	"github.com/madhava-poojari/swimschool-api/internal/models"
	"github.com/madhava-poojari/swimschool-api/internal/service"
)

// Services bundles what the handlers call into.
type Services struct {
	Users       *service.UserService
	Auth        *service.AuthService
	Courses     *service.CourseService
	Pools       *service.PoolService
	Enrollments *service.EnrollmentService
}

type API struct {
	cfg    *config.Config
	router *chi.Mux
	svc    Services
	tokens *auth.TokenManager
	pinger Pinger
}

func NewAPI(cfg *config.Config, svc Services, tokens *auth.TokenManager, pinger Pinger) *API {
	api := &API{cfg: cfg, router: chi.NewRouter(), svc: svc, tokens: tokens, pinger: pinger}
	api.routes()
	return api
}

func (a *API) Routes() *chi.Mux {
	return a.router
}

func (a *API) routes() {
	authH := NewAuthHandler(a.cfg, a.svc.Users, a.svc.Auth)
	userH := NewUserHandler()
	adminH := NewAdminHandler(a.svc.Users)
	courseH := NewCourseHandler(a.svc.Courses)
	imageH := NewImageHandler(a.svc.Courses)
	poolH := NewPoolHandler(a.svc.Pools)
	enrollH := NewEnrollmentHandler(a.svc.Enrollments)

	authn := auth.AuthMiddleware(a.tokens, a.svc.Users)
	adminOnly := auth.RoleMiddleware(models.RoleAdmin)

	r := a.router
	r.Post("/register", authH.Register)
	r.Post("/login", authH.Login)
	r.Route("/auth", func(r chi.Router) {
		r.Post("/refresh", authH.Refresh)
		r.Post("/logout", authH.Logout)
		r.Post("/google", authH.GoogleSignIn)
	})

	r.Route("/courses", func(r chi.Router) {
		r.Get("/", courseH.ListCourses)
		r.Get("/{id}/schedules", courseH.ListSchedules)
		r.Group(func(r chi.Router) {
			r.Use(authn, adminOnly)
			r.Post("/", courseH.CreateCourse)
			r.Post("/{id}/image", imageH.UploadCourseImage)
		})
	})
	r.With(authn, adminOnly).Post("/schedules", courseH.CreateSchedule)

	r.Route("/pools", func(r chi.Router) {
		r.Get("/", poolH.ListPools)
		r.With(authn, adminOnly).Post("/", poolH.CreatePool)
	})

	r.Route("/enrollments", func(r chi.Router) {
		r.Use(authn)
		r.Post("/", enrollH.CreateEnrollment)
		r.Get("/", enrollH.ListEnrollments)
	})

	r.Route("/users", func(r chi.Router) {
		r.Use(authn)
		r.Get("/me", userH.GetSelfProfile)
		// All admin routes require authentication and admin role
		r.Group(func(r chi.Router) {
			r.Use(adminOnly)
			r.Get("/", adminH.ListUsers)
			r.Delete("/{id}", adminH.DeleteUser)
			r.Put("/{id}/promote", adminH.PromoteUser)
		})
	})

	r.Get("/health", HealthHandler(a.pinger))
}
