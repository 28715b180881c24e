package memstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/madhava-poojari/swimschool-api/internal/apperr"
	"github.com/madhava-poojari/swimschool-api/internal/models"
	"github.com/madhava-poojari/swimschool-api/internal/service"
)

func seedCourse(t *testing.T, s *Store) *models.Course {
	t.Helper()
	c := &models.Course{ID: "c1", Name: "Kurs", MaxStudents: 2, IsActive: true, CreatedAt: time.Now()}
	require.NoError(t, s.CreateCourse(context.Background(), c))
	return c
}

func TestWithCourseLock_RollsBackOnError(t *testing.T) {
	s := New()
	ctx := context.Background()
	c := seedCourse(t, s)

	boom := errors.New("boom")
	err := s.WithCourseLock(ctx, c.ID, func(tx service.EnrollmentTx) error {
		require.NoError(t, tx.CreateEnrollment(ctx, &models.Enrollment{
			ID: "e1", StudentID: "s1", CourseID: c.ID, ScheduleID: "sc1", Status: models.EnrollmentPending,
		}))
		n, err := tx.CountActiveBySchedule(ctx, "sc1")
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	list, err := s.ListEnrollmentsByStudent(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestWithCourseLock_UnknownCourse(t *testing.T) {
	s := New()
	err := s.WithCourseLock(context.Background(), "missing", func(service.EnrollmentTx) error { return nil })
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCounts_IgnoreInactiveStatuses(t *testing.T) {
	s := New()
	ctx := context.Background()
	c := seedCourse(t, s)

	err := s.WithCourseLock(ctx, c.ID, func(tx service.EnrollmentTx) error {
		for i, st := range []models.EnrollmentStatus{models.EnrollmentCancelled, models.EnrollmentCompleted, models.EnrollmentConfirmed} {
			if err := tx.CreateEnrollment(ctx, &models.Enrollment{
				ID: string(rune('a' + i)), StudentID: "s1", CourseID: c.ID, ScheduleID: "sc1", Status: st,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)

	err = s.WithCourseLock(ctx, c.ID, func(tx service.EnrollmentTx) error {
		n, _ := tx.CountActiveBySchedule(ctx, "sc1")
		assert.EqualValues(t, 1, n)
		n, _ = tx.CountActiveByStudentCourse(ctx, "s1", c.ID)
		assert.EqualValues(t, 1, n)
		return nil
	})
	require.NoError(t, err)
}

func TestCreateUser_Unique(t *testing.T) {
	s := New()
	ctx := context.Background()
	require.NoError(t, s.CreateUser(ctx, &models.User{ID: "u1", Email: "a@x.com", Username: "a"}))
	assert.ErrorIs(t, s.CreateUser(ctx, &models.User{ID: "u2", Email: "a@x.com", Username: "b"}), apperr.ErrUserExists)
	assert.ErrorIs(t, s.CreateUser(ctx, &models.User{ID: "u3", Email: "c@x.com", Username: "a"}), apperr.ErrUserExists)

	ok, err := s.UserExists(ctx, "zzz@x.com", "zzz")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRefreshTokens(t *testing.T) {
	s := New()
	ctx := context.Background()
	require.NoError(t, s.SaveRefreshToken(ctx, "u1", "h1", time.Now().Add(time.Hour)))
	require.NoError(t, s.SaveRefreshToken(ctx, "u1", "expired", time.Now().Add(-time.Minute)))

	uid, err := s.RotateRefreshToken(ctx, "h1", "h2", time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, "u1", uid)

	_, err = s.RotateRefreshToken(ctx, "h1", "h3", time.Now().Add(time.Hour))
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	_, err = s.RotateRefreshToken(ctx, "expired", "h4", time.Now().Add(time.Hour))
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	require.NoError(t, s.DeleteExpiredTokens(ctx))
	s.mutex.RLock()
	_, stillThere := s.tokens["expired"]
	s.mutex.RUnlock()
	assert.False(t, stillThere)
}
