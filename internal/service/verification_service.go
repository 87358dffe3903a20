package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noxarianet-commits/olahraga-smk1-sragi/internal/dto"
	"github.com/noxarianet-commits/olahraga-smk1-sragi/internal/models"
	"github.com/noxarianet-commits/olahraga-smk1-sragi/internal/observability"
	"github.com/noxarianet-commits/olahraga-smk1-sragi/internal/repository"
)

var (
	// ErrVerifyForbidden indicates the caller lacks the reviewer role.
	ErrVerifyForbidden = errors.New("only teachers and admins can verify activities")
	// ErrInvalidTransition indicates the activity already reached a terminal status.
	ErrInvalidTransition = errors.New("activity has already been reviewed")
	// ErrInvalidDecision indicates an unknown verification decision.
	ErrInvalidDecision = errors.New("decision must be verified or rejected")
	// ErrDeleteForbidden indicates the caller may not delete the activity.
	ErrDeleteForbidden = errors.New("not allowed to delete this activity")
)

// CanDelete is the single deletion capability: students may remove their own
// reports only while still pending, staff may remove any report.
func CanDelete(role, status string, isOwner bool) bool {
	switch role {
	case models.RoleTeacher, models.RoleAdmin:
		return true
	case models.RoleStudent:
		return isOwner && status == models.StatusPending
	}
	return false
}

// VerificationService drives the pending → verified/rejected lifecycle and
// enforces the deletion rules.
type VerificationService interface {
	Verify(ctx context.Context, actor Actor, activityID uint, decision, note string) (dto.ActivityResponse, error)
	Delete(ctx context.Context, actor Actor, activityID uint) error
}

type verificationService struct {
	repo   repository.ActivityRepository
	audit  AuditRecorder
	logger zerolog.Logger
	now    func() time.Time
}

// NewVerificationService constructs the verification workflow.
func NewVerificationService(repo repository.ActivityRepository, audit AuditRecorder, logger zerolog.Logger) VerificationService {
	return &verificationService{
		repo:   repo,
		audit:  audit,
		logger: logger.With().Str("component", "verification_service").Logger(),
		now:    time.Now,
	}
}

// Verify applies a reviewer decision to a pending activity. The write is
// guarded by a status precondition: when two reviewers race, the first commit
// wins and the second observes the terminal state as ErrInvalidTransition.
func (s *verificationService) Verify(ctx context.Context, actor Actor, activityID uint, decision, note string) (dto.ActivityResponse, error) {
	if !actor.IsStaff() {
		return dto.ActivityResponse{}, ErrVerifyForbidden
	}

	decision = strings.ToLower(strings.TrimSpace(decision))
	if decision != models.StatusVerified && decision != models.StatusRejected {
		return dto.ActivityResponse{}, ErrInvalidDecision
	}

	if _, err := s.repo.FindByID(ctx, activityID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ActivityResponse{}, ErrActivityNotFound
		}
		return dto.ActivityResponse{}, err
	}

	updated, err := s.repo.UpdateStatusIfPending(ctx, activityID, repository.VerificationUpdate{
		Status:       decision,
		Notes:        note,
		VerifiedByID: actor.ID,
		VerifiedAt:   s.now(),
	})
	if err != nil {
		s.logger.Error().Err(err).Uint("activity_id", activityID).Msg("failed to write verification")
		return dto.ActivityResponse{}, err
	}
	if !updated {
		observability.VerificationDecisions().WithLabelValues("conflict").Inc()
		return dto.ActivityResponse{}, ErrInvalidTransition
	}

	observability.VerificationDecisions().WithLabelValues(decision).Inc()
	s.logger.Info().
		Uint("activity_id", activityID).
		Uint("reviewer_id", actor.ID).
		Str("decision", decision).
		Msg("activity reviewed")

	s.recordAudit(ctx, actor, "verify_"+decision, activityID, map[string]interface{}{
		"decision": decision,
		"has_note": note != "",
	})

	activity, err := s.repo.FindByID(ctx, activityID)
	if err != nil {
		return dto.ActivityResponse{}, err
	}
	return dto.NewActivityResponse(activity), nil
}

// Delete removes an activity server-side. Authorization is resolved through
// CanDelete so every caller shares one policy.
func (s *verificationService) Delete(ctx context.Context, actor Actor, activityID uint) error {
	activity, err := s.repo.FindByID(ctx, activityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrActivityNotFound
		}
		return err
	}

	if !CanDelete(actor.Role, activity.Status, actor.ID == activity.StudentID) {
		return ErrDeleteForbidden
	}

	if err := s.repo.Delete(ctx, activityID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrActivityNotFound
		}
		s.logger.Error().Err(err).Uint("activity_id", activityID).Msg("failed to delete activity")
		return err
	}

	s.logger.Info().
		Uint("activity_id", activityID).
		Uint("actor_id", actor.ID).
		Str("actor_role", actor.Role).
		Msg("activity deleted")

	s.recordAudit(ctx, actor, "delete", activityID, map[string]interface{}{
		"status_at_delete": activity.Status,
		"owner_delete":     actor.ID == activity.StudentID,
	})

	return nil
}

func (s *verificationService) recordAudit(ctx context.Context, actor Actor, action string, activityID uint, metadata map[string]interface{}) {
	if s.audit == nil {
		return
	}
	entry := AuditEntry{
		ActorID:    actor.ID,
		ActorRole:  actor.Role,
		Action:     action,
		EntityType: "activity",
		EntityID:   &activityID,
		Metadata:   metadata,
	}
	if _, err := s.audit.Record(ctx, entry); err != nil {
		s.logger.Warn().Err(err).Msg("failed to record audit entry")
	}
}
