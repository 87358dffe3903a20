package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noxarianet-commits/olahraga-smk1-sragi/internal/dto"
	"github.com/noxarianet-commits/olahraga-smk1-sragi/internal/models"
	"github.com/noxarianet-commits/olahraga-smk1-sragi/internal/repository"
)

var (
	// ErrClassNotFound indicates the requested class does not exist.
	ErrClassNotFound = errors.New("class not found")
	// ErrClassNotEmpty indicates a class still has enrolled students.
	ErrClassNotEmpty = errors.New("class still has enrolled students")
)

// ClassService exposes class management operations.
type ClassService interface {
	List(ctx context.Context, filter repository.ClassFilter) (dto.ClassListResponse, error)
	Get(ctx context.Context, id uint) (dto.ClassResponse, error)
	Create(ctx context.Context, payload dto.ClassCreateRequest) (dto.ClassResponse, error)
	Delete(ctx context.Context, id uint) error
}

type classService struct {
	repo      repository.ClassRepository
	users     repository.UserRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewClassService constructs the class management service.
func NewClassService(repo repository.ClassRepository, users repository.UserRepository, validator *validator.Validate, logger zerolog.Logger) ClassService {
	return &classService{
		repo:      repo,
		users:     users,
		validator: validator,
		logger:    logger.With().Str("component", "class_service").Logger(),
	}
}

func (s *classService) List(ctx context.Context, filter repository.ClassFilter) (dto.ClassListResponse, error) {
	filter.Page = maxInt(filter.Page, 1)
	filter.PageSize = clampPageSize(filter.PageSize)

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list classes")
		return dto.ClassListResponse{}, err
	}

	responses := make([]dto.ClassResponse, 0, len(items))
	for _, item := range items {
		count, err := s.users.CountByClass(ctx, item.ID)
		if err != nil {
			return dto.ClassListResponse{}, err
		}
		responses = append(responses, dto.NewClassResponse(item, count))
	}

	return dto.ClassListResponse{
		Items:      responses,
		Pagination: buildPagination(filter.Page, filter.PageSize, total),
	}, nil
}

func (s *classService) Get(ctx context.Context, id uint) (dto.ClassResponse, error) {
	class, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ClassResponse{}, ErrClassNotFound
		}
		return dto.ClassResponse{}, err
	}

	count, err := s.users.CountByClass(ctx, id)
	if err != nil {
		return dto.ClassResponse{}, err
	}

	return dto.NewClassResponse(class, count), nil
}

func (s *classService) Create(ctx context.Context, payload dto.ClassCreateRequest) (dto.ClassResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ClassResponse{}, err
	}

	class := models.Class{
		Name:       payload.Name,
		GradeLevel: payload.GradeLevel,
		SchoolYear: payload.SchoolYear,
		TeacherID:  payload.TeacherID,
	}

	if err := s.repo.Create(ctx, &class); err != nil {
		s.logger.Error().Err(err).Str("class", payload.Name).Msg("failed to create class")
		return dto.ClassResponse{}, err
	}

	s.logger.Info().Uint("class_id", class.ID).Str("class", class.Name).Msg("class created")

	return dto.NewClassResponse(class, 0), nil
}

func (s *classService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrClassNotFound
		}
		return err
	}

	count, err := s.users.CountByClass(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrClassNotEmpty
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Uint("class_id", id).Msg("failed to delete class")
		return err
	}

	s.logger.Info().Uint("class_id", id).Msg("class deleted")
	return nil
}
