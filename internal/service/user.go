package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"gorm.io/datatypes"

	"github.com/madhava-poojari/swimschool-api/internal/apperr"
	"github.com/madhava-poojari/swimschool-api/internal/models"
	"github.com/madhava-poojari/swimschool-api/internal/utils"
	"github.com/madhava-poojari/swimschool-api/internal/validation"
)

type RegisterInput struct {
	Name             string                   `json:"name" validate:"required,min=2"`
	Surname          string                   `json:"surname" validate:"required,min=2"`
	Email            string                   `json:"email" validate:"required,email"`
	Phone            string                   `json:"phone" validate:"required,min=10"`
	Username         string                   `json:"username" validate:"required,min=3"`
	Password         string                   `json:"password" validate:"required,min=6"`
	Age              int                      `json:"age" validate:"required,gte=3,lte=100"`
	EmergencyContact *models.EmergencyContact `json:"emergencyContact,omitempty"`
	MedicalInfo      *models.MedicalInfo      `json:"medicalInfo,omitempty"`
}

func (in *RegisterInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Surname = strings.TrimSpace(in.Surname)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)
	in.Username = strings.TrimSpace(in.Username)
}

type LoginInput struct {
	Identifier string `json:"identifier" validate:"required,min=3"`
	Password   string `json:"password" validate:"required,min=6"`
}

type UserService struct {
	users      UserRepository
	validator  *validation.Validator
	bcryptCost int

	dummyOnce sync.Once
	dummyHash string
}

func NewUserService(users UserRepository, v *validation.Validator, bcryptCost int) *UserService {
	return &UserService{users: users, validator: v, bcryptCost: bcryptCost}
}

// Register creates a student account.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.normalize()
	if err := s.validator.Struct(in); err != nil {
		return nil, err
	}
	exists, err := s.users.UserExists(ctx, in.Email, in.Username)
	if err != nil {
		return nil, fmt.Errorf("check existing user: %w", err)
	}
	if exists {
		return nil, apperr.ErrUserExists
	}
	u, err := s.newUser(in, models.RoleStudent)
	if err != nil {
		return nil, err
	}
	if err := s.users.CreateUser(ctx, u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

func (s *UserService) newUser(in RegisterInput, role models.Role) (*models.User, error) {
	hash, err := utils.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	now := time.Now()
	u := &models.User{
		ID:           utils.GenerateID(),
		Name:         in.Name,
		Surname:      in.Surname,
		Email:        in.Email,
		Phone:        in.Phone,
		Username:     in.Username,
		PasswordHash: hash,
		Role:         role,
		Age:          in.Age,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if in.EmergencyContact != nil && in.EmergencyContact.Complete() {
		u.EmergencyContact = datatypes.NewJSONType(*in.EmergencyContact)
	}
	if in.MedicalInfo != nil {
		u.MedicalInfo = datatypes.NewJSONType(*in.MedicalInfo)
	}
	return u, nil
}

// Authenticate checks the password of the user matched by email or username.
// Unknown users and wrong passwords both return apperr.ErrInvalidCredentials.
func (s *UserService) Authenticate(ctx context.Context, in LoginInput) (*models.User, error) {
	in.Identifier = strings.TrimSpace(in.Identifier)
	if err := s.validator.Struct(in); err != nil {
		return nil, err
	}
	u, err := s.users.GetUserByIdentifier(ctx, in.Identifier)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			// keep timing close to a real comparison
			_, _ = utils.ComparePasswordAndHash(in.Password, s.dummy())
			return nil, apperr.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	ok, err := utils.ComparePasswordAndHash(in.Password, u.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("compare password: %w", err)
	}
	if !ok {
		return nil, apperr.ErrInvalidCredentials
	}
	return u, nil
}

func (s *UserService) dummy() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = utils.HashPassword(utils.RandomToken()[:16], s.bcryptCost)
	})
	return s.dummyHash
}

func (s *UserService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.users.GetUserByID(ctx, id)
}

func (s *UserService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.users.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

// List returns every user, newest first.
func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.users.DeleteUser(ctx, id)
}

// Promote turns a user into an instructor. Admins cannot be promoted.
func (s *UserService) Promote(ctx context.Context, id string) (*models.User, error) {
	u, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u.Role == models.RoleAdmin {
		return nil, apperr.ErrAdminPromotion
	}
	if u.Role != models.RoleInstructor {
		if err := s.users.UpdateUserRole(ctx, id, models.RoleInstructor); err != nil {
			return nil, fmt.Errorf("promote user: %w", err)
		}
		u.Role = models.RoleInstructor
	}
	return u, nil
}

// EnsureAdmin creates the admin account unless a user with the same username exists.
// The boolean reports whether a user was created.
func (s *UserService) EnsureAdmin(ctx context.Context, in RegisterInput) (*models.User, bool, error) {
	in.normalize()
	if err := s.validator.Struct(in); err != nil {
		return nil, false, err
	}
	existing, err := s.users.GetUserByIdentifier(ctx, in.Username)
	switch {
	case err == nil:
		return existing, false, nil
	case !errors.Is(err, apperr.ErrNotFound):
		return nil, false, fmt.Errorf("find admin: %w", err)
	}
	u, err := s.newUser(in, models.RoleAdmin)
	if err != nil {
		return nil, false, err
	}
	if err := s.users.CreateUser(ctx, u); err != nil {
		return nil, false, fmt.Errorf("create admin: %w", err)
	}
	return u, true, nil
}

// CreateWithRole is used by the seeder to add staff accounts.
func (s *UserService) CreateWithRole(ctx context.Context, in RegisterInput, role models.Role) (*models.User, error) {
	in.normalize()
	if err := s.validator.Struct(in); err != nil {
		return nil, err
	}
	u, err := s.newUser(in, role)
	if err != nil {
		return nil, err
	}
	if err := s.users.CreateUser(ctx, u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}
