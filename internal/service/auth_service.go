package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/chenaniah/academy-api/internal/config"
	"github.com/chenaniah/academy-api/internal/dto"
	"github.com/chenaniah/academy-api/internal/repository"
	"github.com/chenaniah/academy-api/internal/utils"
)

// ErrInvalidCredentials indicates a failed login attempt.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService authenticates admins, coordinators and students.
type AuthService interface {
	AdminLogin(ctx context.Context, payload dto.LoginRequest) (dto.LoginResponse, error)
	CoordinatorLogin(ctx context.Context, payload dto.LoginRequest) (dto.LoginResponse, error)
	StudentLogin(ctx context.Context, payload dto.LoginRequest) (dto.LoginResponse, error)
	ResetStudentPassword(ctx context.Context, payload dto.ResetPasswordRequest) error
}

type authService struct {
	students  repository.StudentRepository
	cfg       config.Config
	validator *validator.Validate
	tokens    *TokenIssuer
	logger    zerolog.Logger
}

// NewAuthService constructs the authentication service.
func NewAuthService(studentRepo repository.StudentRepository, cfg config.Config, validate *validator.Validate, tokens *TokenIssuer, logger zerolog.Logger) AuthService {
	return &authService{
		students:  studentRepo,
		cfg:       cfg,
		validator: validate,
		tokens:    tokens,
		logger:    logger.With().Str("component", "auth_service").Logger(),
	}
}

func secureEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

func (s *authService) AdminLogin(ctx context.Context, payload dto.LoginRequest) (dto.LoginResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.LoginResponse{}, err
	}

	if !secureEqual(payload.Username, s.cfg.AdminUsername) || !secureEqual(payload.Password, s.cfg.AdminPassword) {
		return dto.LoginResponse{}, ErrInvalidCredentials
	}

	token, err := s.tokens.IssueRole(payload.Username, RoleAdmin)
	if err != nil {
		return dto.LoginResponse{}, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info().Str("username", payload.Username).Msg("admin login")

	return dto.LoginResponse{Token: token, Role: RoleAdmin, Username: payload.Username}, nil
}

func (s *authService) CoordinatorLogin(ctx context.Context, payload dto.LoginRequest) (dto.LoginResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.LoginResponse{}, err
	}

	for _, account := range s.cfg.Coordinators {
		if secureEqual(payload.Username, account.Username) && secureEqual(payload.Password, account.Password) {
			token, err := s.tokens.IssueRole(payload.Username, RoleCoordinator)
			if err != nil {
				return dto.LoginResponse{}, fmt.Errorf("failed to issue token: %w", err)
			}

			s.logger.Info().Str("username", payload.Username).Msg("coordinator login")

			return dto.LoginResponse{Token: token, Role: RoleCoordinator, Username: payload.Username}, nil
		}
	}

	return dto.LoginResponse{}, ErrInvalidCredentials
}

func (s *authService) StudentLogin(ctx context.Context, payload dto.LoginRequest) (dto.LoginResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.LoginResponse{}, err
	}

	student, err := s.students.FindByUsername(ctx, payload.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.LoginResponse{}, ErrInvalidCredentials
		}
		return dto.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(student.PasswordHash), []byte(payload.Password)); err != nil {
		return dto.LoginResponse{}, ErrInvalidCredentials
	}

	token, err := s.tokens.IssueStudent(student.ID, student.Username)
	if err != nil {
		return dto.LoginResponse{}, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info().Uint("student_id", student.ID).Msg("student login")

	profile := NewStudentProfile(student)

	return dto.LoginResponse{
		Token:    token,
		Role:     RoleStudent,
		Username: student.Username,
		Student:  &profile,
	}, nil
}

// ResetStudentPassword replaces a student's password after the account
// phone is confirmed by its trailing-digit key.
func (s *authService) ResetStudentPassword(ctx context.Context, payload dto.ResetPasswordRequest) error {
	if err := s.validator.Struct(payload); err != nil {
		return NewBusinessError("Username, phone and new password are required", CodeValidationError)
	}
	if len(payload.NewPassword) < 6 || len(payload.NewPassword) > 128 {
		return NewBusinessError("Password must be between 6 and 128 characters", CodeValidationError)
	}

	student, err := s.students.FindByUsername(ctx, payload.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewBusinessError("No account found with the provided username and phone number", "")
		}
		return err
	}

	if !utils.SamePhone(student.Phone, payload.Phone) {
		return NewBusinessError("No account found with the provided username and phone number", "")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	student.PasswordHash = string(hash)
	if err := s.students.Update(ctx, &student); err != nil {
		return err
	}

	s.logger.Info().Uint("student_id", student.ID).Msg("student password reset")

	return nil
}
