package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noxarianet-commits/olahraga-smk1-sragi/internal/dto"
	"github.com/noxarianet-commits/olahraga-smk1-sragi/internal/models"
	"github.com/noxarianet-commits/olahraga-smk1-sragi/internal/observability"
	"github.com/noxarianet-commits/olahraga-smk1-sragi/internal/repository"
)

// ErrActivityNotFound indicates the requested activity does not exist.
var ErrActivityNotFound = errors.New("activity not found")

// ErrSubmitForbidden indicates a non-student tried to submit a report.
var ErrSubmitForbidden = errors.New("only students can submit activities")

// Actor identifies the authenticated caller of a service operation.
type Actor struct {
	ID      uint
	Role    string
	ClassID *uint
}

// IsStaff reports whether the actor may review submissions.
func (a Actor) IsStaff() bool {
	return a.Role == models.RoleTeacher || a.Role == models.RoleAdmin
}

// ActivityService exposes activity list and submission operations.
type ActivityService interface {
	List(ctx context.Context, actor Actor, req dto.ActivityListRequest) (dto.ActivityListResponse, error)
	ListPending(ctx context.Context, actor Actor, req dto.ActivityListRequest) (dto.ActivityListResponse, error)
	Submit(ctx context.Context, actor Actor, payload dto.ActivitySubmitRequest) (dto.ActivityResponse, error)
}

type activityService struct {
	repo      repository.ActivityRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewActivityService constructs the activity service.
func NewActivityService(repo repository.ActivityRepository, validator *validator.Validate, logger zerolog.Logger) ActivityService {
	return &activityService{
		repo:      repo,
		validator: validator,
		logger:    logger.With().Str("component", "activity_service").Logger(),
	}
}

// List returns a filtered, paginated activity page. Students always see only
// their own reports; teachers are scoped to their class unless they filter
// explicitly; admins see everything. Repeated identical calls are pure reads.
func (s *activityService) List(ctx context.Context, actor Actor, req dto.ActivityListRequest) (dto.ActivityListResponse, error) {
	start := time.Now()
	defer func() {
		observability.ActivityListLatency().Observe(time.Since(start).Seconds())
	}()

	filter := repository.ActivityFilter{
		StudentID: req.StudentID,
		ClassID:   req.ClassID,
		Status:    strings.ToLower(strings.TrimSpace(req.Status)),
		Search:    req.Search,
		Page:      maxInt(req.Page, 1),
		PageSize:  clampPageSize(req.PageSize),
	}

	switch actor.Role {
	case models.RoleStudent:
		filter.StudentID = actor.ID
		filter.ClassID = 0
	case models.RoleTeacher:
		if filter.ClassID == 0 && filter.StudentID == 0 && actor.ClassID != nil {
			filter.ClassID = *actor.ClassID
		}
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list activities")
		return dto.ActivityListResponse{}, err
	}

	return dto.ActivityListResponse{
		Items:      mapActivities(items),
		Pagination: buildPagination(filter.Page, filter.PageSize, total),
	}, nil
}

// ListPending returns the review queue. Scoping and pagination follow List;
// the status filter is forced to pending.
func (s *activityService) ListPending(ctx context.Context, actor Actor, req dto.ActivityListRequest) (dto.ActivityListResponse, error) {
	req.Status = models.StatusPending
	return s.List(ctx, actor, req)
}

// Submit records a new daily exercise report. Validation failures surface
// before any write; the status is always pending regardless of input.
func (s *activityService) Submit(ctx context.Context, actor Actor, payload dto.ActivitySubmitRequest) (dto.ActivityResponse, error) {
	if actor.Role != models.RoleStudent {
		return dto.ActivityResponse{}, ErrSubmitForbidden
	}

	if err := s.validator.Struct(payload); err != nil {
		return dto.ActivityResponse{}, err
	}

	activity := models.Activity{
		StudentID:    actor.ID,
		ActivityType: payload.ActivityType,
		Count:        payload.Count,
		ImageURL:     payload.ImageURL,
		ImageProofID: payload.ImageProofID,
		Status:       models.StatusPending,
	}

	if err := s.repo.Create(ctx, &activity); err != nil {
		s.logger.Error().Err(err).Uint("student_id", actor.ID).Msg("failed to create activity")
		return dto.ActivityResponse{}, err
	}

	observability.ActivitySubmissions().WithLabelValues(payload.ActivityType).Inc()
	s.logger.Info().
		Uint("activity_id", activity.ID).
		Uint("student_id", actor.ID).
		Str("type", payload.ActivityType).
		Msg("activity submitted")

	created, err := s.repo.FindByID(ctx, activity.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ActivityResponse{}, ErrActivityNotFound
		}
		return dto.ActivityResponse{}, err
	}

	return dto.NewActivityResponse(created), nil
}

func mapActivities(items []models.Activity) []dto.ActivityResponse {
	responses := make([]dto.ActivityResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, dto.NewActivityResponse(item))
	}
	return responses
}
