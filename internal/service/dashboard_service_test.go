package service

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/noxarianet-commits/olahraga-smk1-sragi/internal/models"
	"github.com/noxarianet-commits/olahraga-smk1-sragi/internal/repository"
)

type memoryClassRepo struct {
	classes map[uint]models.Class
	nextID  uint
}

func newMemoryClassRepo() *memoryClassRepo {
	return &memoryClassRepo{
		classes: make(map[uint]models.Class),
		nextID:  1,
	}
}

func (m *memoryClassRepo) Create(_ context.Context, class *models.Class) error {
	class.ID = m.nextID
	m.nextID++
	m.classes[class.ID] = *class
	return nil
}

func (m *memoryClassRepo) FindByID(_ context.Context, id uint) (models.Class, error) {
	class, ok := m.classes[id]
	if !ok {
		return models.Class{}, gorm.ErrRecordNotFound
	}
	return class, nil
}

func (m *memoryClassRepo) List(_ context.Context, _ repository.ClassFilter) ([]models.Class, int64, error) {
	results := make([]models.Class, 0, len(m.classes))
	for _, class := range m.classes {
		results = append(results, class)
	}
	return results, int64(len(results)), nil
}

func (m *memoryClassRepo) Delete(_ context.Context, id uint) error {
	if _, ok := m.classes[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.classes, id)
	return nil
}

func (m *memoryClassRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.classes)), nil
}

func newDashboardFixture(t *testing.T) (*memoryActivityRepo, *memoryUserRepo, *memoryClassRepo, DashboardService) {
	t.Helper()

	activities := newMemoryActivityRepo()
	users := newMemoryUserRepo()
	classes := newMemoryClassRepo()

	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	svc := NewDashboardService(activities, users, classes, nil, cache, time.Minute, zerolog.New(io.Discard))

	return activities, users, classes, svc
}

func TestStudentDashboardCountsByStatus(t *testing.T) {
	activities, _, _, svc := newDashboardFixture(t)

	seedActivity(t, activities, 3, models.StatusVerified)
	seedActivity(t, activities, 3, models.StatusVerified)
	seedActivity(t, activities, 3, models.StatusPending)
	seedActivity(t, activities, 3, models.StatusRejected)
	seedActivity(t, activities, 4, models.StatusPending)

	student := Actor{ID: 3, Role: models.RoleStudent}
	result, err := svc.Student(context.Background(), student)
	require.NoError(t, err)
	require.Equal(t, int64(4), result.TotalActivities)
	require.Equal(t, int64(2), result.VerifiedCount)
	require.Equal(t, int64(1), result.PendingCount)
	require.Equal(t, int64(1), result.RejectedCount)
	require.Len(t, result.TodayActivities, 4)
	require.False(t, result.CacheHit)
}

func TestStudentDashboardSecondReadIsCached(t *testing.T) {
	activities, _, _, svc := newDashboardFixture(t)
	seedActivity(t, activities, 3, models.StatusPending)

	student := Actor{ID: 3, Role: models.RoleStudent}
	_, err := svc.Student(context.Background(), student)
	require.NoError(t, err)

	seedActivity(t, activities, 3, models.StatusPending)

	cached, err := svc.Student(context.Background(), student)
	require.NoError(t, err)
	require.True(t, cached.CacheHit)
	require.Equal(t, int64(1), cached.TotalActivities)
}

func TestAdminDashboardAggregates(t *testing.T) {
	activities, users, classes, svc := newDashboardFixture(t)

	seedUser(t, users, models.RoleStudent, "1001", "", "rahasia1")
	seedUser(t, users, models.RoleStudent, "1002", "", "rahasia1")
	seedUser(t, users, models.RoleTeacher, "", "guru@sekolah.sch.id", "rahasia1")
	require.NoError(t, classes.Create(context.Background(), &models.Class{Name: "X TKJ 1", GradeLevel: 10, SchoolYear: "2026/2027"}))

	seedActivity(t, activities, 1, models.StatusPending)
	seedActivity(t, activities, 1, models.StatusVerified)
	seedActivity(t, activities, 2, models.StatusRejected)

	result, err := svc.Admin(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(2), result.TotalStudents)
	require.Equal(t, int64(1), result.TotalTeachers)
	require.Equal(t, int64(1), result.TotalClasses)
	require.Equal(t, int64(3), result.TotalActivities)
	require.Equal(t, int64(1), result.PendingReview)
	require.Equal(t, int64(1), result.VerifiedOverall)
	require.Equal(t, int64(1), result.RejectedOverall)
	require.Equal(t, int64(3), result.SubmissionsToday)
}

func TestTeacherDashboardQueue(t *testing.T) {
	activities, users, _, svc := newDashboardFixture(t)

	classID := uint(1)
	student := seedUser(t, users, models.RoleStudent, "1001", "", "rahasia1")
	student.ClassID = &classID
	users.users[student.ID] = student

	seedActivity(t, activities, student.ID, models.StatusPending)
	seedActivity(t, activities, student.ID, models.StatusVerified)

	teacher := Actor{ID: 9, Role: models.RoleTeacher, ClassID: &classID}
	result, err := svc.Teacher(context.Background(), teacher)
	require.NoError(t, err)
	require.Equal(t, int64(1), result.PendingReviewCount)
	require.Equal(t, int64(1), result.VerifiedToday)
	require.Equal(t, int64(1), result.ClassStudentCount)
	require.Len(t, result.RecentPending, 1)
}
