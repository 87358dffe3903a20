package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noxarianet-commits/olahraga-smk1-sragi/internal/dto"
	"github.com/noxarianet-commits/olahraga-smk1-sragi/internal/models"
	"github.com/noxarianet-commits/olahraga-smk1-sragi/internal/repository"
)

var (
	// ErrAnnouncementNotFound indicates the announcement does not exist.
	ErrAnnouncementNotFound = errors.New("announcement not found")
	// ErrAnnouncementTargetMissing indicates a class-targeted announcement without a class.
	ErrAnnouncementTargetMissing = errors.New("class-targeted announcements need a target class")
)

// AnnouncementService exposes announcement operations.
type AnnouncementService interface {
	List(ctx context.Context, actor Actor, page, pageSize int) (dto.AnnouncementListResponse, error)
	Create(ctx context.Context, actor Actor, payload dto.AnnouncementCreateRequest) (dto.AnnouncementResponse, error)
	Delete(ctx context.Context, actor Actor, id uint) error
}

type announcementService struct {
	repo      repository.AnnouncementRepository
	validator *validator.Validate
	cache     *redis.Client
	ttl       time.Duration
	logger    zerolog.Logger
	policy    *bluemonday.Policy
}

// NewAnnouncementService constructs the announcement service.
func NewAnnouncementService(repo repository.AnnouncementRepository, validator *validator.Validate, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) AnnouncementService {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	policy := bluemonday.UGCPolicy()
	policy.AllowElements("p", "strong", "em", "a", "ul", "ol", "li", "br")
	policy.AllowAttrs("href", "title", "target").OnElements("a")
	return &announcementService{
		repo:      repo,
		validator: validator,
		cache:     cache,
		ttl:       ttl,
		logger:    logger.With().Str("component", "announcement_service").Logger(),
		policy:    policy,
	}
}

// List returns announcements visible to the caller: everything for staff,
// school-wide plus own-class for students.
func (s *announcementService) List(ctx context.Context, actor Actor, page, pageSize int) (dto.AnnouncementListResponse, error) {
	page = maxInt(page, 1)
	pageSize = clampPageSize(pageSize)

	var classScope uint
	if actor.Role == models.RoleStudent && actor.ClassID != nil {
		classScope = *actor.ClassID
	}

	cacheKey := ""
	if s.cache != nil {
		cacheKey = fmt.Sprintf("announcements:v1:%d:%d:%d", classScope, page, pageSize)
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil && cached != "" {
			var response dto.AnnouncementListResponse
			if err := json.Unmarshal([]byte(cached), &response); err == nil {
				response.CacheHit = true
				return response, nil
			}
		}
	}

	items, total, err := s.repo.List(ctx, repository.AnnouncementFilter{
		ClassID:  classScope,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return dto.AnnouncementListResponse{}, err
	}

	responses := make([]dto.AnnouncementResponse, 0, len(items))
	for _, item := range items {
		resp := dto.NewAnnouncementResponse(item)
		resp.Title = strings.TrimSpace(resp.Title)
		resp.Content = s.policy.Sanitize(resp.Content)
		responses = append(responses, resp)
	}

	response := dto.AnnouncementListResponse{
		Items:      responses,
		Pagination: buildPagination(page, pageSize, total),
	}

	if cacheKey != "" && s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.ttl).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to cache announcements")
			}
		}
	}

	return response, nil
}

func (s *announcementService) Create(ctx context.Context, actor Actor, payload dto.AnnouncementCreateRequest) (dto.AnnouncementResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AnnouncementResponse{}, err
	}

	if payload.TargetType == models.TargetClass && payload.TargetClassID == nil {
		return dto.AnnouncementResponse{}, ErrAnnouncementTargetMissing
	}

	announcement := models.Announcement{
		Title:      strings.TrimSpace(payload.Title),
		Content:    s.policy.Sanitize(payload.Content),
		TargetType: payload.TargetType,
		AuthorID:   actor.ID,
	}
	if payload.TargetType == models.TargetClass {
		announcement.TargetClassID = payload.TargetClassID
	}

	if err := s.repo.Create(ctx, &announcement); err != nil {
		s.logger.Error().Err(err).Msg("failed to create announcement")
		return dto.AnnouncementResponse{}, err
	}

	s.invalidateCache(ctx)
	s.logger.Info().Uint("announcement_id", announcement.ID).Msg("announcement published")

	return dto.NewAnnouncementResponse(announcement), nil
}

func (s *announcementService) Delete(ctx context.Context, actor Actor, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAnnouncementNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Uint("announcement_id", id).Msg("failed to delete announcement")
		return err
	}

	s.invalidateCache(ctx)
	s.logger.Info().Uint("announcement_id", id).Uint("actor_id", actor.ID).Msg("announcement deleted")
	return nil
}

func (s *announcementService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	iter := s.cache.Scan(ctx, 0, "announcements:v1:*", 0).Iterator()
	for iter.Next(ctx) {
		if err := s.cache.Del(ctx, iter.Val()).Err(); err != nil {
			s.logger.Warn().Err(err).Msg("failed to invalidate announcement cache")
		}
	}
	if err := iter.Err(); err != nil {
		s.logger.Warn().Err(err).Msg("announcement cache scan failed")
	}
}
