package service

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/noxarianet-commits/olahraga-smk1-sragi/internal/models"
	"github.com/noxarianet-commits/olahraga-smk1-sragi/internal/repository"
)

type memoryActivityRepo struct {
	activities map[uint]models.Activity
	nextID     uint
}

func newMemoryActivityRepo() *memoryActivityRepo {
	return &memoryActivityRepo{
		activities: make(map[uint]models.Activity),
		nextID:     1,
	}
}

func (m *memoryActivityRepo) Create(_ context.Context, activity *models.Activity) error {
	activity.ID = m.nextID
	activity.CreatedAt = time.Now()
	m.nextID++
	m.activities[activity.ID] = *activity
	return nil
}

func (m *memoryActivityRepo) FindByID(_ context.Context, id uint) (models.Activity, error) {
	activity, ok := m.activities[id]
	if !ok {
		return models.Activity{}, gorm.ErrRecordNotFound
	}
	return activity, nil
}

func (m *memoryActivityRepo) List(_ context.Context, filter repository.ActivityFilter) ([]models.Activity, int64, error) {
	results := make([]models.Activity, 0, len(m.activities))
	for _, activity := range m.activities {
		if filter.StudentID != 0 && activity.StudentID != filter.StudentID {
			continue
		}
		if filter.Status != "" && activity.Status != filter.Status {
			continue
		}
		results = append(results, activity)
	}
	return results, int64(len(results)), nil
}

func (m *memoryActivityRepo) UpdateStatusIfPending(_ context.Context, id uint, update repository.VerificationUpdate) (bool, error) {
	activity, ok := m.activities[id]
	if !ok || activity.Status != models.StatusPending {
		return false, nil
	}

	verifiedAt := update.VerifiedAt
	verifiedBy := update.VerifiedByID
	activity.Status = update.Status
	activity.Notes = update.Notes
	activity.VerifiedByID = &verifiedBy
	activity.VerifiedAt = &verifiedAt
	m.activities[id] = activity

	return true, nil
}

func (m *memoryActivityRepo) Delete(_ context.Context, id uint) error {
	if _, ok := m.activities[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.activities, id)
	return nil
}

func (m *memoryActivityRepo) CountByStudent(_ context.Context, studentID uint) (map[string]int64, error) {
	counts := make(map[string]int64)
	for _, activity := range m.activities {
		if activity.StudentID == studentID {
			counts[activity.Status]++
		}
	}
	return counts, nil
}

func (m *memoryActivityRepo) CountByStatus(_ context.Context, status string, since *time.Time) (int64, error) {
	var total int64
	for _, activity := range m.activities {
		if status != "" && activity.Status != status {
			continue
		}
		if since != nil && activity.CreatedAt.Before(*since) {
			continue
		}
		total++
	}
	return total, nil
}

func seedActivity(t *testing.T, repo *memoryActivityRepo, studentID uint, status string) uint {
	t.Helper()

	activity := models.Activity{
		StudentID:    studentID,
		ActivityType: models.ActivityPushup,
		Count:        30,
		ImageURL:     "https://img.example.com/proof.jpg",
		Status:       status,
	}
	require.NoError(t, repo.Create(context.Background(), &activity))

	return activity.ID
}

func newVerificationService(repo repository.ActivityRepository) VerificationService {
	return NewVerificationService(repo, nil, zerolog.New(io.Discard))
}

func TestVerifyAppliesDecision(t *testing.T) {
	repo := newMemoryActivityRepo()
	id := seedActivity(t, repo, 3, models.StatusPending)
	svc := newVerificationService(repo)

	teacher := Actor{ID: 9, Role: models.RoleTeacher}
	result, err := svc.Verify(context.Background(), teacher, id, models.StatusRejected, "retake photo")
	require.NoError(t, err)
	require.Equal(t, models.StatusRejected, result.Status)
	require.Equal(t, "retake photo", result.Notes)
	require.NotNil(t, result.VerifiedByID)
	require.Equal(t, uint(9), *result.VerifiedByID)
	require.NotNil(t, result.VerifiedAt)
}

func TestVerifyTerminalActivityFails(t *testing.T) {
	repo := newMemoryActivityRepo()
	svc := newVerificationService(repo)
	teacher := Actor{ID: 9, Role: models.RoleTeacher}

	for _, status := range []string{models.StatusVerified, models.StatusRejected} {
		id := seedActivity(t, repo, 3, status)

		for _, decision := range []string{models.StatusVerified, models.StatusRejected} {
			_, err := svc.Verify(context.Background(), teacher, id, decision, "")
			require.ErrorIs(t, err, ErrInvalidTransition)
		}

		stored, err := repo.FindByID(context.Background(), id)
		require.NoError(t, err)
		require.Equal(t, status, stored.Status)
	}
}

func TestVerifyFirstDecisionWins(t *testing.T) {
	repo := newMemoryActivityRepo()
	id := seedActivity(t, repo, 3, models.StatusPending)
	svc := newVerificationService(repo)

	first := Actor{ID: 9, Role: models.RoleTeacher}
	second := Actor{ID: 10, Role: models.RoleAdmin}

	_, err := svc.Verify(context.Background(), first, id, models.StatusVerified, "good form")
	require.NoError(t, err)

	_, err = svc.Verify(context.Background(), second, id, models.StatusRejected, "blurry")
	require.ErrorIs(t, err, ErrInvalidTransition)

	stored, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, models.StatusVerified, stored.Status)
	require.Equal(t, "good form", stored.Notes)
	require.Equal(t, uint(9), *stored.VerifiedByID)
}

func TestVerifyRequiresStaffRole(t *testing.T) {
	repo := newMemoryActivityRepo()
	id := seedActivity(t, repo, 3, models.StatusPending)
	svc := newVerificationService(repo)

	student := Actor{ID: 3, Role: models.RoleStudent}
	_, err := svc.Verify(context.Background(), student, id, models.StatusVerified, "")
	require.ErrorIs(t, err, ErrVerifyForbidden)
}

func TestVerifyRejectsUnknownDecision(t *testing.T) {
	repo := newMemoryActivityRepo()
	id := seedActivity(t, repo, 3, models.StatusPending)
	svc := newVerificationService(repo)

	teacher := Actor{ID: 9, Role: models.RoleTeacher}
	_, err := svc.Verify(context.Background(), teacher, id, "approved", "")
	require.ErrorIs(t, err, ErrInvalidDecision)
}

func TestVerifyMissingActivity(t *testing.T) {
	svc := newVerificationService(newMemoryActivityRepo())

	teacher := Actor{ID: 9, Role: models.RoleTeacher}
	_, err := svc.Verify(context.Background(), teacher, 123, models.StatusVerified, "")
	require.ErrorIs(t, err, ErrActivityNotFound)
}

func TestStudentDeletesOwnPendingActivity(t *testing.T) {
	repo := newMemoryActivityRepo()
	id := seedActivity(t, repo, 3, models.StatusPending)
	svc := newVerificationService(repo)

	student := Actor{ID: 3, Role: models.RoleStudent}
	require.NoError(t, svc.Delete(context.Background(), student, id))

	_, err := repo.FindByID(context.Background(), id)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestStudentCannotDeleteRejectedActivity(t *testing.T) {
	repo := newMemoryActivityRepo()
	id := seedActivity(t, repo, 3, models.StatusPending)
	svc := newVerificationService(repo)

	teacher := Actor{ID: 9, Role: models.RoleTeacher}
	_, err := svc.Verify(context.Background(), teacher, id, models.StatusRejected, "retake photo")
	require.NoError(t, err)

	student := Actor{ID: 3, Role: models.RoleStudent}
	err = svc.Delete(context.Background(), student, id)
	require.ErrorIs(t, err, ErrDeleteForbidden)
}

func TestStudentCannotDeleteForeignActivity(t *testing.T) {
	repo := newMemoryActivityRepo()
	id := seedActivity(t, repo, 3, models.StatusPending)
	svc := newVerificationService(repo)

	other := Actor{ID: 4, Role: models.RoleStudent}
	err := svc.Delete(context.Background(), other, id)
	require.ErrorIs(t, err, ErrDeleteForbidden)
}

func TestAdminDeletesVerifiedActivity(t *testing.T) {
	repo := newMemoryActivityRepo()
	id := seedActivity(t, repo, 3, models.StatusVerified)
	svc := newVerificationService(repo)

	admin := Actor{ID: 1, Role: models.RoleAdmin}
	require.NoError(t, svc.Delete(context.Background(), admin, id))
}

// vanishingActivityRepo drops the row between the service's read and its
// delete, modelling a concurrent deletion.
type vanishingActivityRepo struct {
	*memoryActivityRepo
}

func (m *vanishingActivityRepo) Delete(ctx context.Context, id uint) error {
	delete(m.activities, id)
	return m.memoryActivityRepo.Delete(ctx, id)
}

func TestDeleteReportsConcurrentlyRemovedActivity(t *testing.T) {
	repo := newMemoryActivityRepo()
	id := seedActivity(t, repo, 3, models.StatusPending)
	svc := newVerificationService(&vanishingActivityRepo{memoryActivityRepo: repo})

	admin := Actor{ID: 1, Role: models.RoleAdmin}
	err := svc.Delete(context.Background(), admin, id)
	require.ErrorIs(t, err, ErrActivityNotFound)
}

func TestCanDeleteCapability(t *testing.T) {
	cases := []struct {
		name    string
		role    string
		status  string
		isOwner bool
		want    bool
	}{
		{"student own pending", models.RoleStudent, models.StatusPending, true, true},
		{"student own verified", models.RoleStudent, models.StatusVerified, true, false},
		{"student own rejected", models.RoleStudent, models.StatusRejected, true, false},
		{"student foreign pending", models.RoleStudent, models.StatusPending, false, false},
		{"teacher any status", models.RoleTeacher, models.StatusRejected, false, true},
		{"admin any status", models.RoleAdmin, models.StatusVerified, false, true},
		{"unknown role", "guest", models.StatusPending, true, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, CanDelete(tc.role, tc.status, tc.isOwner))
		})
	}
}
