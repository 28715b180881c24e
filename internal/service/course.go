package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/madhava-poojari/swimschool-api/internal/apperr"
	"github.com/madhava-poojari/swimschool-api/internal/models"
	"github.com/madhava-poojari/swimschool-api/internal/utils"
	"github.com/madhava-poojari/swimschool-api/internal/validation"
)

type CourseInput struct {
	Name         string             `json:"name" validate:"required,min=3"`
	Description  string             `json:"description" validate:"required,min=10"`
	Level        models.CourseLevel `json:"level" validate:"required,oneof=beginner intermediate advanced"`
	AgeGroup     models.AgeGroup    `json:"ageGroup" validate:"required,oneof=children adults all"`
	Duration     int                `json:"duration" validate:"gte=30,lte=180"`
	MaxStudents  int                `json:"maxStudents" validate:"gte=1,lte=20"`
	Price        float64            `json:"price" validate:"gte=0"`
	InstructorID string             `json:"instructor,omitempty"`
}

type ScheduleInput struct {
	CourseID  string    `json:"course" validate:"required"`
	DayOfWeek int       `json:"dayOfWeek" validate:"gte=0,lte=6"`
	StartTime string    `json:"startTime" validate:"required,hhmm"`
	EndTime   string    `json:"endTime" validate:"required,hhmm"`
	StartDate time.Time `json:"startDate" validate:"required"`
	EndDate   time.Time `json:"endDate" validate:"required"`
}

type CourseService struct {
	courses   CourseRepository
	users     UserRepository
	files     utils.FileStore
	validator *validation.Validator
	log       zerolog.Logger
}

func NewCourseService(courses CourseRepository, users UserRepository, files utils.FileStore, v *validation.Validator, log zerolog.Logger) *CourseService {
	return &CourseService{courses: courses, users: users, files: files, validator: v, log: log}
}

// ListActive returns active courses, newest first, with their instructor.
func (s *CourseService) ListActive(ctx context.Context) ([]*models.Course, error) {
	courses, err := s.courses.ListActiveCourses(ctx)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	for _, c := range courses {
		c.AttachInstructor()
	}
	return courses, nil
}

// Create adds a course. The instructor defaults to callerID.
func (s *CourseService) Create(ctx context.Context, in CourseInput, callerID string) (*models.Course, error) {
	if err := s.validator.Struct(in); err != nil {
		return nil, err
	}
	if in.InstructorID == "" {
		in.InstructorID = callerID
	}
	instructor, err := s.users.GetUserByID(ctx, in.InstructorID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.NewValidation("instructor", "Eğitmen bulunamadı")
		}
		return nil, fmt.Errorf("load instructor: %w", err)
	}
	if instructor.Role != models.RoleInstructor && instructor.Role != models.RoleAdmin {
		return nil, apperr.NewValidation("instructor", "Seçilen kullanıcı eğitmen değil")
	}

	now := time.Now()
	c := &models.Course{
		ID:           utils.GenerateID(),
		Name:         in.Name,
		Description:  in.Description,
		Level:        in.Level,
		AgeGroup:     in.AgeGroup,
		Duration:     in.Duration,
		MaxStudents:  in.MaxStudents,
		Price:        in.Price,
		InstructorID: instructor.ID,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.courses.CreateCourse(ctx, c); err != nil {
		return nil, fmt.Errorf("create course: %w", err)
	}
	c.Instructor = instructor
	c.AttachInstructor()
	return c, nil
}

func (s *CourseService) CreateSchedule(ctx context.Context, in ScheduleInput) (*models.Schedule, error) {
	if err := s.validator.Struct(in); err != nil {
		return nil, err
	}
	verr := &apperr.ValidationError{}
	if !timeBefore(in.StartTime, in.EndTime) {
		verr.Add("endTime", "Bitiş saati başlangıç saatinden sonra olmalı")
	}
	if in.EndDate.Before(in.StartDate) {
		verr.Add("endDate", "Bitiş tarihi başlangıç tarihinden önce olamaz")
	}
	if len(verr.FieldErrors) > 0 {
		return nil, verr
	}
	if _, err := s.courses.GetCourseByID(ctx, in.CourseID); err != nil {
		return nil, err
	}
	sc := &models.Schedule{
		ID:        utils.GenerateID(),
		CourseID:  in.CourseID,
		DayOfWeek: in.DayOfWeek,
		StartTime: normalizeHHMM(in.StartTime),
		EndTime:   normalizeHHMM(in.EndTime),
		StartDate: in.StartDate.UTC(),
		EndDate:   in.EndDate.UTC(),
		IsActive:  true,
		CreatedAt: time.Now(),
	}
	if err := s.courses.CreateSchedule(ctx, sc); err != nil {
		return nil, fmt.Errorf("create schedule: %w", err)
	}
	return sc, nil
}

// ListSchedules returns the active schedules of a course ordered by day and start time.
func (s *CourseService) ListSchedules(ctx context.Context, courseID string) ([]*models.Schedule, error) {
	if _, err := s.courses.GetCourseByID(ctx, courseID); err != nil {
		return nil, err
	}
	return s.courses.ListActiveSchedules(ctx, courseID)
}

// SetImage stores a cover image for the course and drops the previous one.
func (s *CourseService) SetImage(ctx context.Context, courseID, filename string, r io.Reader) (*models.Course, error) {
	c, err := s.courses.GetCourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	key, err := s.files.SaveFile(ctx, "courses", filename, r)
	if err != nil {
		return nil, fmt.Errorf("save image: %w", err)
	}
	url, err := s.files.URL(ctx, key)
	if err != nil {
		_ = s.files.DeleteFile(ctx, key)
		return nil, fmt.Errorf("image url: %w", err)
	}
	if err := s.courses.UpdateCourseImage(ctx, c.ID, url, key); err != nil {
		_ = s.files.DeleteFile(ctx, key)
		return nil, fmt.Errorf("update course image: %w", err)
	}
	if c.ImageKey != "" {
		if err := s.files.DeleteFile(ctx, c.ImageKey); err != nil {
			s.log.Warn().Err(err).Str("key", c.ImageKey).Msg("delete previous course image")
		}
	}
	c.ImageURL, c.ImageKey = url, key
	c.AttachInstructor()
	return c, nil
}

// timeBefore compares two valid "H:MM"/"HH:MM" strings.
func timeBefore(a, b string) bool {
	return minutes(a) < minutes(b)
}

func minutes(hhmm string) int {
	var h, m int
	_, _ = fmt.Sscanf(hhmm, "%d:%d", &h, &m)
	return h*60 + m
}

func normalizeHHMM(hhmm string) string {
	n := minutes(hhmm)
	return fmt.Sprintf("%02d:%02d", n/60, n%60)
}
