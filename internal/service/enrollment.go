package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/madhava-poojari/swimschool-api/internal/apperr"
	"github.com/madhava-poojari/swimschool-api/internal/models"
	"github.com/madhava-poojari/swimschool-api/internal/utils"
	"github.com/madhava-poojari/swimschool-api/internal/validation"
)

type EnrollmentInput struct {
	StudentID  string `json:"studentId,omitempty"`
	CourseID   string `json:"course" validate:"required"`
	ScheduleID string `json:"schedule" validate:"required"`
	Notes      string `json:"notes,omitempty" validate:"max=1000"`
}

type EnrollmentService struct {
	courses     CourseRepository
	users       UserRepository
	enrollments EnrollmentRepository
	validator   *validation.Validator
	now         func() time.Time
}

func NewEnrollmentService(courses CourseRepository, users UserRepository, enrollments EnrollmentRepository, v *validation.Validator) *EnrollmentService {
	return &EnrollmentService{courses: courses, users: users, enrollments: enrollments, validator: v, now: time.Now}
}

// CreateEnrollment books a student on a schedule of a course.
//
// At most one pending or confirmed enrollment may exist per (student, course), and the
// active enrollments of a schedule never exceed the course's MaxStudents. Both checks and
// the insert run under the course lock, so concurrent bookings cannot overshoot.
func (s *EnrollmentService) CreateEnrollment(ctx context.Context, in EnrollmentInput) (*models.Enrollment, error) {
	in.Notes = strings.TrimSpace(in.Notes)
	if err := s.validator.Struct(in); err != nil {
		return nil, err
	}
	if in.StudentID == "" {
		return nil, apperr.NewValidation("studentId", "studentId alanı zorunludur")
	}

	course, err := s.courses.GetCourseByID(ctx, in.CourseID)
	if err != nil {
		return nil, err
	}
	schedule, err := s.courses.GetScheduleByID(ctx, in.ScheduleID)
	if err != nil {
		return nil, err
	}
	if schedule.CourseID != course.ID {
		return nil, apperr.NewValidation("schedule", "Program bu kursa ait değil")
	}
	if _, err := s.users.GetUserByID(ctx, in.StudentID); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.NewValidation("studentId", "Öğrenci bulunamadı")
		}
		return nil, fmt.Errorf("load student: %w", err)
	}

	var created *models.Enrollment
	err = s.enrollments.WithCourseLock(ctx, course.ID, func(tx EnrollmentTx) error {
		n, err := tx.CountActiveByStudentCourse(ctx, in.StudentID, course.ID)
		if err != nil {
			return fmt.Errorf("count student enrollments: %w", err)
		}
		if n > 0 {
			return apperr.ErrAlreadyEnrolled
		}
		taken, err := tx.CountActiveBySchedule(ctx, schedule.ID)
		if err != nil {
			return fmt.Errorf("count schedule enrollments: %w", err)
		}
		if taken >= int64(course.MaxStudents) {
			return apperr.ErrScheduleFull
		}
		now := s.now()
		e := &models.Enrollment{
			ID:             utils.GenerateID(),
			StudentID:      in.StudentID,
			CourseID:       course.ID,
			ScheduleID:     schedule.ID,
			Status:         models.EnrollmentPending,
			EnrollmentDate: now,
			PaymentStatus:  models.PaymentPending,
			PaymentAmount:  course.Price,
			Notes:          in.Notes,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := tx.CreateEnrollment(ctx, e); err != nil {
			return err
		}
		created = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	course.AttachInstructor()
	created.Course = course
	created.Schedule = schedule
	return created, nil
}

// ListStudentEnrollments returns a student's enrollments, newest first.
func (s *EnrollmentService) ListStudentEnrollments(ctx context.Context, studentID string) ([]*models.Enrollment, error) {
	if studentID == "" {
		return nil, apperr.NewValidation("studentId", "Öğrenci ID'si gerekli")
	}
	list, err := s.enrollments.ListEnrollmentsByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	for _, e := range list {
		if e.Course != nil {
			e.Course.AttachInstructor()
		}
	}
	return list, nil
}
