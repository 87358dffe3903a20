package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noxarianet-commits/olahraga-smk1-sragi/internal/dto"
	"github.com/noxarianet-commits/olahraga-smk1-sragi/internal/models"
	"github.com/noxarianet-commits/olahraga-smk1-sragi/internal/repository"
)

// DashboardService produces aggregated per-role dashboard metrics.
type DashboardService interface {
	Student(ctx context.Context, actor Actor) (dto.StudentDashboardResponse, error)
	Teacher(ctx context.Context, actor Actor) (dto.TeacherDashboardResponse, error)
	Admin(ctx context.Context) (dto.AdminDashboardResponse, error)
}

type dashboardService struct {
	activities    repository.ActivityRepository
	users         repository.UserRepository
	classes       repository.ClassRepository
	announcements AnnouncementService
	cache         *redis.Client
	cacheTTL      time.Duration
	logger        zerolog.Logger
	now           func() time.Time
}

// NewDashboardService builds the dashboard aggregator.
func NewDashboardService(activities repository.ActivityRepository, users repository.UserRepository, classes repository.ClassRepository, announcements AnnouncementService, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) DashboardService {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &dashboardService{
		activities:    activities,
		users:         users,
		classes:       classes,
		announcements: announcements,
		cache:         cache,
		cacheTTL:      ttl,
		logger:        logger.With().Str("component", "dashboard_service").Logger(),
		now:           time.Now,
	}
}

func (s *dashboardService) Student(ctx context.Context, actor Actor) (dto.StudentDashboardResponse, error) {
	cacheKey := fmt.Sprintf("dashboard:student:%d", actor.ID)

	var cached dto.StudentDashboardResponse
	if s.readCache(ctx, cacheKey, &cached) {
		cached.CacheHit = true
		return cached, nil
	}

	counts, err := s.activities.CountByStudent(ctx, actor.ID)
	if err != nil {
		return dto.StudentDashboardResponse{}, err
	}

	today := s.startOfToday()
	todayItems, _, err := s.activities.List(ctx, repository.ActivityFilter{
		StudentID: actor.ID,
		PageSize:  maxPageSize,
	})
	if err != nil {
		return dto.StudentDashboardResponse{}, err
	}

	response := dto.StudentDashboardResponse{
		VerifiedCount: counts[models.StatusVerified],
		PendingCount:  counts[models.StatusPending],
		RejectedCount: counts[models.StatusRejected],
	}
	response.TotalActivities = response.VerifiedCount + response.PendingCount + response.RejectedCount

	response.TodayActivities = make([]dto.ActivityResponse, 0)
	for _, item := range todayItems {
		if item.CreatedAt.Before(today) {
			continue
		}
		response.TodayActivities = append(response.TodayActivities, dto.NewActivityResponse(item))
	}

	if s.announcements != nil {
		announcements, err := s.announcements.List(ctx, actor, 1, 5)
		if err != nil {
			s.logger.Warn().Err(err).Msg("failed to load recent announcements")
		} else {
			response.RecentAnnouncements = announcements.Items
		}
	}

	s.writeCache(ctx, cacheKey, response)
	return response, nil
}

func (s *dashboardService) Teacher(ctx context.Context, actor Actor) (dto.TeacherDashboardResponse, error) {
	cacheKey := fmt.Sprintf("dashboard:teacher:%d", actor.ID)

	var cached dto.TeacherDashboardResponse
	if s.readCache(ctx, cacheKey, &cached) {
		cached.CacheHit = true
		return cached, nil
	}

	var classID uint
	if actor.ClassID != nil {
		classID = *actor.ClassID
	}

	pendingItems, pendingTotal, err := s.activities.List(ctx, repository.ActivityFilter{
		ClassID:  classID,
		Status:   models.StatusPending,
		PageSize: 5,
	})
	if err != nil {
		return dto.TeacherDashboardResponse{}, err
	}

	today := s.startOfToday()
	verifiedToday, err := s.activities.CountByStatus(ctx, models.StatusVerified, &today)
	if err != nil {
		return dto.TeacherDashboardResponse{}, err
	}

	var studentCount int64
	if classID > 0 {
		studentCount, err = s.users.CountByClass(ctx, classID)
		if err != nil {
			return dto.TeacherDashboardResponse{}, err
		}
	}

	response := dto.TeacherDashboardResponse{
		PendingReviewCount: pendingTotal,
		VerifiedToday:      verifiedToday,
		ClassStudentCount:  studentCount,
		RecentPending:      mapActivities(pendingItems),
	}

	s.writeCache(ctx, cacheKey, response)
	return response, nil
}

func (s *dashboardService) Admin(ctx context.Context) (dto.AdminDashboardResponse, error) {
	const cacheKey = "dashboard:admin"

	var cached dto.AdminDashboardResponse
	if s.readCache(ctx, cacheKey, &cached) {
		cached.CacheHit = true
		return cached, nil
	}

	response := dto.AdminDashboardResponse{}

	var err error
	if response.TotalStudents, err = s.users.CountByRole(ctx, models.RoleStudent); err != nil {
		return dto.AdminDashboardResponse{}, err
	}
	if response.TotalTeachers, err = s.users.CountByRole(ctx, models.RoleTeacher); err != nil {
		return dto.AdminDashboardResponse{}, err
	}
	if response.TotalClasses, err = s.classes.Count(ctx); err != nil {
		return dto.AdminDashboardResponse{}, err
	}
	if response.TotalActivities, err = s.activities.CountByStatus(ctx, "", nil); err != nil {
		return dto.AdminDashboardResponse{}, err
	}
	if response.PendingReview, err = s.activities.CountByStatus(ctx, models.StatusPending, nil); err != nil {
		return dto.AdminDashboardResponse{}, err
	}
	if response.VerifiedOverall, err = s.activities.CountByStatus(ctx, models.StatusVerified, nil); err != nil {
		return dto.AdminDashboardResponse{}, err
	}
	if response.RejectedOverall, err = s.activities.CountByStatus(ctx, models.StatusRejected, nil); err != nil {
		return dto.AdminDashboardResponse{}, err
	}

	today := s.startOfToday()
	if response.SubmissionsToday, err = s.activities.CountByStatus(ctx, "", &today); err != nil {
		return dto.AdminDashboardResponse{}, err
	}

	s.writeCache(ctx, cacheKey, response)
	return response, nil
}

func (s *dashboardService) startOfToday() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func (s *dashboardService) readCache(ctx context.Context, key string, out interface{}) bool {
	if s.cache == nil {
		return false
	}
	cached, err := s.cache.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read dashboard cache")
		}
		return false
	}
	return json.Unmarshal([]byte(cached), out) == nil
}

func (s *dashboardService) writeCache(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, payload, s.cacheTTL).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to store dashboard cache")
	}
}
