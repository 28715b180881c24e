package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/madhava-poojari/swimschool-api/internal/auth"
	"github.com/madhava-poojari/swimschool-api/internal/models"
	"github.com/madhava-poojari/swimschool-api/internal/service"
	"github.com/madhava-poojari/swimschool-api/internal/store/memstore"
	"github.com/madhava-poojari/swimschool-api/internal/utils"
	"github.com/madhava-poojari/swimschool-api/internal/validation"
)

type fixture struct {
	store       *memstore.Store
	users       *service.UserService
	auth        *service.AuthService
	courses     *service.CourseService
	pools       *service.PoolService
	enrollments *service.EnrollmentService
	tokens      *auth.TokenManager
	uploadDir   string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := memstore.New()
	v := validation.New()
	dir := t.TempDir()
	users := service.NewUserService(st, v, bcrypt.MinCost)
	tokens := auth.NewTokenManager("test-secret-0123456789", 15*time.Minute)
	return &fixture{
		store:       st,
		users:       users,
		auth:        service.NewAuthService(users, st, st, tokens, nil, time.Hour),
		courses:     service.NewCourseService(st, st, utils.NewFileStorage(dir, "http://localhost:8080"), v, zerolog.Nop()),
		pools:       service.NewPoolService(st, v),
		enrollments: service.NewEnrollmentService(st, st, st, v),
		tokens:      tokens,
		uploadDir:   dir,
	}
}

func registerInput(username string) service.RegisterInput {
	return service.RegisterInput{
		Name:     "Deniz",
		Surname:  "Yılmaz",
		Email:    username + "@example.com",
		Phone:    "05550001122",
		Username: username,
		Password: "secret123",
		Age:      25,
	}
}

func (f *fixture) student(t *testing.T, username string) *models.User {
	t.Helper()
	u, err := f.users.Register(context.Background(), registerInput(username))
	require.NoError(t, err)
	return u
}

func (f *fixture) instructor(t *testing.T, username string) *models.User {
	t.Helper()
	u, err := f.users.CreateWithRole(context.Background(), registerInput(username), models.RoleInstructor)
	require.NoError(t, err)
	return u
}

// courseWithSchedule creates a course with maxStudents seats and one Monday schedule.
func (f *fixture) courseWithSchedule(t *testing.T, maxStudents int) (*models.Course, *models.Schedule) {
	t.Helper()
	ctx := context.Background()
	coach := f.instructor(t, fmt.Sprintf("coach_%d_%d", maxStudents, time.Now().UnixNano()))
	c, err := f.courses.Create(ctx, service.CourseInput{
		Name:        "Çocuk Yüzme Kursu",
		Description: "Temel yüzme eğitimi ve su güvenliği",
		Level:       models.LevelBeginner,
		AgeGroup:    models.AgeGroupChildren,
		Duration:    45,
		MaxStudents: maxStudents,
		Price:       800,
	}, coach.ID)
	require.NoError(t, err)
	sc := f.schedule(t, c.ID, 1, "16:00", "16:45")
	return c, sc
}

func (f *fixture) schedule(t *testing.T, courseID string, day int, start, end string) *models.Schedule {
	t.Helper()
	sc, err := f.courses.CreateSchedule(context.Background(), service.ScheduleInput{
		CourseID:  courseID,
		DayOfWeek: day,
		StartTime: start,
		EndTime:   end,
		StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return sc
}
