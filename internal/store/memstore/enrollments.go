package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/madhava-poojari/swimschool-api/internal/apperr"
	"github.com/madhava-poojari/swimschool-api/internal/models"
	"github.com/madhava-poojari/swimschool-api/internal/service"
)

func (s *Store) courseLock(courseID string) *sync.Mutex {
	s.lockMu.Lock()
	defer s.lockMu.Unlock()

	m, ok := s.courseLocks[courseID]
	if !ok {
		m = &sync.Mutex{}
		s.courseLocks[courseID] = m
	}
	return m
}

// WithCourseLock serialises fn with every other call for the same course.
// Enrollments created by fn are buffered and only committed when fn succeeds.
func (s *Store) WithCourseLock(ctx context.Context, courseID string, fn func(tx service.EnrollmentTx) error) error {
	s.mutex.RLock()
	_, ok := s.courses[courseID]
	s.mutex.RUnlock()
	if !ok {
		return apperr.ErrNotFound
	}

	lock := s.courseLock(courseID)
	lock.Lock()
	defer lock.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	tx := &memTx{store: s}
	if err := fn(tx); err != nil {
		return err
	}
	return s.commit(tx.pending)
}

func (s *Store) commit(pending []*models.Enrollment) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for _, e := range pending {
		for _, existing := range s.enrollments {
			if existing.StudentID == e.StudentID && existing.CourseID == e.CourseID && existing.Status.IsActive() && e.Status.IsActive() {
				return apperr.ErrAlreadyEnrolled
			}
		}
	}
	for _, e := range pending {
		s.enrollments[e.ID] = e
	}
	return nil
}

func (s *Store) ListEnrollmentsByStudent(_ context.Context, studentID string) ([]*models.Enrollment, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	res := []*models.Enrollment{}
	for _, e := range s.enrollments {
		if e.StudentID != studentID {
			continue
		}
		cp := *e
		if c, ok := s.course(e.CourseID); ok {
			cp.Course = c
		}
		if sc, ok := s.schedules[e.ScheduleID]; ok {
			scp := *sc
			cp.Schedule = &scp
		}
		res = append(res, &cp)
	}
	sort.SliceStable(res, func(i, j int) bool { return res[i].EnrollmentDate.After(res[j].EnrollmentDate) })
	return res, nil
}

// memTx reads committed enrollments plus the ones buffered in this section.
type memTx struct {
	store   *Store
	pending []*models.Enrollment
}

func (t *memTx) count(match func(*models.Enrollment) bool) int64 {
	t.store.mutex.RLock()
	defer t.store.mutex.RUnlock()

	var n int64
	for _, e := range t.store.enrollments {
		if e.Status.IsActive() && match(e) {
			n++
		}
	}
	for _, e := range t.pending {
		if e.Status.IsActive() && match(e) {
			n++
		}
	}
	return n
}

func (t *memTx) CountActiveByStudentCourse(_ context.Context, studentID, courseID string) (int64, error) {
	return t.count(func(e *models.Enrollment) bool { return e.StudentID == studentID && e.CourseID == courseID }), nil
}

func (t *memTx) CountActiveBySchedule(_ context.Context, scheduleID string) (int64, error) {
	return t.count(func(e *models.Enrollment) bool { return e.ScheduleID == scheduleID }), nil
}

func (t *memTx) CreateEnrollment(_ context.Context, e *models.Enrollment) error {
	cp := *e
	cp.Course, cp.Schedule = nil, nil
	t.pending = append(t.pending, &cp)
	return nil
}
