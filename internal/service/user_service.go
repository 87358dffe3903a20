package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noxarianet-commits/olahraga-smk1-sragi/internal/dto"
	"github.com/noxarianet-commits/olahraga-smk1-sragi/internal/repository"
)

// ErrSelfDelete indicates an admin tried to delete their own account.
var ErrSelfDelete = errors.New("cannot delete your own account")

// UserService exposes account management operations.
type UserService interface {
	List(ctx context.Context, req dto.UserListRequest) (dto.UserListResponse, error)
	Get(ctx context.Context, id uint) (dto.UserResponse, error)
	Delete(ctx context.Context, actor Actor, id uint) error
}

type userService struct {
	repo   repository.UserRepository
	audit  AuditRecorder
	logger zerolog.Logger
}

// NewUserService constructs the user management service.
func NewUserService(repo repository.UserRepository, audit AuditRecorder, logger zerolog.Logger) UserService {
	return &userService{
		repo:   repo,
		audit:  audit,
		logger: logger.With().Str("component", "user_service").Logger(),
	}
}

func (s *userService) List(ctx context.Context, req dto.UserListRequest) (dto.UserListResponse, error) {
	filter := repository.UserFilter{
		Role:     req.Role,
		ClassID:  req.ClassID,
		Search:   req.Search,
		Page:     maxInt(req.Page, 1),
		PageSize: clampPageSize(req.PageSize),
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list users")
		return dto.UserListResponse{}, err
	}

	responses := make([]dto.UserResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, dto.NewUserResponse(item))
	}

	return dto.UserListResponse{
		Items:      responses,
		Pagination: buildPagination(filter.Page, filter.PageSize, total),
	}, nil
}

func (s *userService) Get(ctx context.Context, id uint) (dto.UserResponse, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UserResponse{}, ErrUserNotFound
		}
		return dto.UserResponse{}, err
	}
	return dto.NewUserResponse(user), nil
}

func (s *userService) Delete(ctx context.Context, actor Actor, id uint) error {
	if actor.ID == id {
		return ErrSelfDelete
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Uint("user_id", id).Msg("failed to delete user")
		return err
	}

	s.logger.Info().Uint("user_id", id).Uint("actor_id", actor.ID).Msg("user deleted")

	if s.audit != nil {
		entry := AuditEntry{
			ActorID:    actor.ID,
			ActorRole:  actor.Role,
			Action:     "delete",
			EntityType: "user",
			EntityID:   &id,
		}
		if _, err := s.audit.Record(ctx, entry); err != nil {
			s.logger.Warn().Err(err).Msg("failed to record audit entry")
		}
	}

	return nil
}
