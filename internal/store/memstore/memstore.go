// Package memstore is an in-memory implementation of the service repositories.
// It backs STORE_DRIVER=memory and the tests.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/madhava-poojari/swimschool-api/internal/apperr"
	"github.com/madhava-poojari/swimschool-api/internal/models"
	"github.com/madhava-poojari/swimschool-api/internal/service"
	"github.com/madhava-poojari/swimschool-api/internal/utils"
)

var (
	_ service.UserRepository       = (*Store)(nil)
	_ service.CourseRepository     = (*Store)(nil)
	_ service.EnrollmentRepository = (*Store)(nil)
	_ service.PoolRepository       = (*Store)(nil)
	_ service.TokenRepository      = (*Store)(nil)
)

type Store struct {
	mutex sync.RWMutex

	users       map[string]*models.User
	courses     map[string]*models.Course
	schedules   map[string]*models.Schedule
	enrollments map[string]*models.Enrollment
	pools       map[string]*models.Pool
	tokens      map[string]*models.RefreshToken // by hash

	lockMu      sync.Mutex
	courseLocks map[string]*sync.Mutex
}

func New() *Store {
	s := &Store{courseLocks: map[string]*sync.Mutex{}}
	s.init()
	return s
}

func (s *Store) init() {
	s.users = map[string]*models.User{}
	s.courses = map[string]*models.Course{}
	s.schedules = map[string]*models.Schedule{}
	s.enrollments = map[string]*models.Enrollment{}
	s.pools = map[string]*models.Pool{}
	s.tokens = map[string]*models.RefreshToken{}
}

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Reset(context.Context) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.init()
	return nil
}

func (s *Store) Close() error { return nil }

/* ------------------ Users ------------------ */

func (s *Store) CreateUser(_ context.Context, u *models.User) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for _, existing := range s.users {
		if existing.Email == u.Email || existing.Username == u.Username {
			return apperr.ErrUserExists
		}
	}
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *Store) GetUserByID(_ context.Context, id string) (*models.User, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if u, ok := s.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, apperr.ErrNotFound
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	return s.findUser(func(u *models.User) bool { return u.Email == email })
}

func (s *Store) GetUserByIdentifier(_ context.Context, identifier string) (*models.User, error) {
	email := strings.ToLower(identifier)
	return s.findUser(func(u *models.User) bool { return u.Email == email || u.Username == identifier })
}

func (s *Store) findUser(match func(*models.User) bool) (*models.User, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	for _, u := range s.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (s *Store) UserExists(_ context.Context, email, username string) (bool, error) {
	u, err := s.findUser(func(u *models.User) bool { return u.Email == email || u.Username == username })
	return u != nil, ignoreNotFound(err)
}

func (s *Store) ListUsers(context.Context) ([]*models.User, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	res := make([]*models.User, 0, len(s.users))
	for _, u := range s.users {
		cp := *u
		res = append(res, &cp)
	}
	sort.SliceStable(res, func(i, j int) bool { return res[i].CreatedAt.After(res[j].CreatedAt) })
	return res, nil
}

func (s *Store) DeleteUser(_ context.Context, id string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, ok := s.users[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(s.users, id)
	for h, t := range s.tokens {
		if t.UserID == id {
			delete(s.tokens, h)
		}
	}
	return nil
}

func (s *Store) UpdateUserRole(_ context.Context, id string, role models.Role) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	u, ok := s.users[id]
	if !ok {
		return apperr.ErrNotFound
	}
	u.Role = role
	u.UpdatedAt = time.Now()
	return nil
}

/* ------------------ Courses & schedules ------------------ */

func (s *Store) CreateCourse(_ context.Context, c *models.Course) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	cp := *c
	cp.Instructor, cp.InstructorInfo = nil, nil
	s.courses[c.ID] = &cp
	return nil
}

// course returns a copy with the instructor attached. Caller holds the read lock.
func (s *Store) course(id string) (*models.Course, bool) {
	c, ok := s.courses[id]
	if !ok {
		return nil, false
	}
	cp := *c
	if u, ok := s.users[c.InstructorID]; ok {
		ucp := *u
		cp.Instructor = &ucp
	}
	return &cp, true
}

func (s *Store) GetCourseByID(_ context.Context, id string) (*models.Course, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if c, ok := s.course(id); ok {
		return c, nil
	}
	return nil, apperr.ErrNotFound
}

func (s *Store) ListActiveCourses(context.Context) ([]*models.Course, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	res := []*models.Course{}
	for id, c := range s.courses {
		if c.IsActive {
			cp, _ := s.course(id)
			res = append(res, cp)
		}
	}
	sort.SliceStable(res, func(i, j int) bool { return res[i].CreatedAt.After(res[j].CreatedAt) })
	return res, nil
}

func (s *Store) UpdateCourseImage(_ context.Context, id, imageURL, imageKey string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	c, ok := s.courses[id]
	if !ok {
		return apperr.ErrNotFound
	}
	c.ImageURL, c.ImageKey = imageURL, imageKey
	c.UpdatedAt = time.Now()
	return nil
}

func (s *Store) CreateSchedule(_ context.Context, sc *models.Schedule) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	cp := *sc
	cp.Course = nil
	s.schedules[sc.ID] = &cp
	return nil
}

func (s *Store) GetScheduleByID(_ context.Context, id string) (*models.Schedule, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if sc, ok := s.schedules[id]; ok {
		cp := *sc
		return &cp, nil
	}
	return nil, apperr.ErrNotFound
}

func (s *Store) ListActiveSchedules(_ context.Context, courseID string) ([]*models.Schedule, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	res := []*models.Schedule{}
	for _, sc := range s.schedules {
		if sc.CourseID == courseID && sc.IsActive {
			cp := *sc
			res = append(res, &cp)
		}
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].DayOfWeek != res[j].DayOfWeek {
			return res[i].DayOfWeek < res[j].DayOfWeek
		}
		return res[i].StartTime < res[j].StartTime
	})
	return res, nil
}

/* ------------------ Pools ------------------ */

func (s *Store) CreatePool(_ context.Context, p *models.Pool) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	cp := *p
	s.pools[p.ID] = &cp
	return nil
}

func (s *Store) ListActivePools(context.Context) ([]*models.Pool, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	res := []*models.Pool{}
	for _, p := range s.pools {
		if p.IsActive {
			cp := *p
			res = append(res, &cp)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Name < res[j].Name })
	return res, nil
}

/* ------------------ Refresh tokens ------------------ */

func (s *Store) SaveRefreshToken(_ context.Context, userID, tokenHash string, expiresAt time.Time) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.tokens[tokenHash] = &models.RefreshToken{
		ID:        utils.GenerateID(),
		UserID:    userID,
		TokenHash: tokenHash,
		IssuedAt:  time.Now(),
		ExpiresAt: expiresAt,
	}
	return nil
}

func (s *Store) RotateRefreshToken(_ context.Context, oldHash, newHash string, newExpiry time.Time) (string, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	old, ok := s.tokens[oldHash]
	if !ok || old.Revoked || !old.ExpiresAt.After(time.Now()) {
		return "", apperr.ErrNotFound
	}
	old.Revoked = true
	s.tokens[newHash] = &models.RefreshToken{
		ID:        utils.GenerateID(),
		UserID:    old.UserID,
		TokenHash: newHash,
		IssuedAt:  time.Now(),
		ExpiresAt: newExpiry,
	}
	return old.UserID, nil
}

func (s *Store) RevokeRefreshToken(_ context.Context, tokenHash string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if t, ok := s.tokens[tokenHash]; ok {
		t.Revoked = true
	}
	return nil
}

func (s *Store) DeleteExpiredTokens(context.Context) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	now := time.Now()
	for h, t := range s.tokens {
		if t.ExpiresAt.Before(now) {
			delete(s.tokens, h)
		}
	}
	return nil
}

func ignoreNotFound(err error) error {
	if err == apperr.ErrNotFound {
		return nil
	}
	return err
}
