package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/noxarianet-commits/olahraga-smk1-sragi/internal/dto"
	"github.com/noxarianet-commits/olahraga-smk1-sragi/internal/models"
	"github.com/noxarianet-commits/olahraga-smk1-sragi/internal/repository"
)

var (
	// ErrInvalidCredentials indicates the identifier or password did not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserNotFound indicates the requested account does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrIdentifierTaken indicates the NIS or email is already registered.
	ErrIdentifierTaken = errors.New("nis or email already registered")
	// ErrIdentifierRequired indicates a registration without a usable login identifier.
	ErrIdentifierRequired = errors.New("students need a nis, staff an email address")
)

// AuthService handles login, registration and password management.
type AuthService interface {
	Login(ctx context.Context, payload dto.LoginRequest) (dto.LoginResponse, error)
	Register(ctx context.Context, payload dto.RegisterRequest) (dto.UserResponse, error)
	Profile(ctx context.Context, userID uint) (dto.UserResponse, error)
	ChangePassword(ctx context.Context, userID uint, payload dto.ChangePasswordRequest) error
	ResetPassword(ctx context.Context, userID uint, newPassword string) error
}

type authService struct {
	users     repository.UserRepository
	validator *validator.Validate
	secret    string
	tokenTTL  time.Duration
	logger    zerolog.Logger
	now       func() time.Time
}

// NewAuthService constructs the auth service.
func NewAuthService(users repository.UserRepository, validator *validator.Validate, secret string, tokenTTL time.Duration, logger zerolog.Logger) AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &authService{
		users:     users,
		validator: validator,
		secret:    secret,
		tokenTTL:  tokenTTL,
		logger:    logger.With().Str("component", "auth_service").Logger(),
		now:       time.Now,
	}
}

func (s *authService) Login(ctx context.Context, payload dto.LoginRequest) (dto.LoginResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.LoginResponse{}, err
	}

	user, err := s.users.FindByIdentifier(ctx, payload.Identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.LoginResponse{}, ErrInvalidCredentials
		}
		return dto.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(payload.Password)); err != nil {
		return dto.LoginResponse{}, ErrInvalidCredentials
	}

	token, err := s.signToken(user)
	if err != nil {
		s.logger.Error().Err(err).Uint("user_id", user.ID).Msg("failed to sign token")
		return dto.LoginResponse{}, err
	}

	s.logger.Info().Uint("user_id", user.ID).Str("role", user.Role).Msg("user logged in")

	return dto.LoginResponse{Token: token, User: dto.NewUserResponse(user)}, nil
}

func (s *authService) Register(ctx context.Context, payload dto.RegisterRequest) (dto.UserResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.UserResponse{}, err
	}

	identifier := payload.NIS
	if payload.Role != models.RoleStudent {
		identifier = payload.Email
	}
	if strings.TrimSpace(identifier) == "" {
		return dto.UserResponse{}, ErrIdentifierRequired
	}

	if _, err := s.users.FindByIdentifier(ctx, identifier); err == nil {
		return dto.UserResponse{}, ErrIdentifierTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.UserResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return dto.UserResponse{}, err
	}

	user := models.User{
		Name:         strings.TrimSpace(payload.Name),
		Role:         payload.Role,
		PasswordHash: string(hash),
	}
	if payload.Role == models.RoleStudent {
		user.NIS = strings.TrimSpace(payload.NIS)
		user.ClassID = payload.ClassID
	} else {
		user.Email = strings.ToLower(strings.TrimSpace(payload.Email))
	}

	if err := s.users.Create(ctx, &user); err != nil {
		s.logger.Error().Err(err).Str("role", payload.Role).Msg("failed to create user")
		return dto.UserResponse{}, err
	}

	s.logger.Info().Uint("user_id", user.ID).Str("role", user.Role).Msg("user registered")

	return dto.NewUserResponse(user), nil
}

func (s *authService) Profile(ctx context.Context, userID uint) (dto.UserResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UserResponse{}, ErrUserNotFound
		}
		return dto.UserResponse{}, err
	}
	return dto.NewUserResponse(user), nil
}

func (s *authService) ChangePassword(ctx context.Context, userID uint, payload dto.ChangePasswordRequest) error {
	if err := s.validator.Struct(payload); err != nil {
		return err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(payload.CurrentPassword)); err != nil {
		return ErrInvalidCredentials
	}

	return s.ResetPassword(ctx, userID, payload.NewPassword)
}

func (s *authService) ResetPassword(ctx context.Context, userID uint, newPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.users.UpdatePassword(ctx, userID, string(hash)); err != nil {
		s.logger.Error().Err(err).Uint("user_id", userID).Msg("failed to update password")
		return err
	}

	s.logger.Info().Uint("user_id", userID).Msg("password updated")
	return nil
}

func (s *authService) signToken(user models.User) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"name": user.Name,
		"iat":  now.Unix(),
		"exp":  now.Add(s.tokenTTL).Unix(),
	}
	if user.ClassID != nil {
		claims["class_id"] = *user.ClassID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}
