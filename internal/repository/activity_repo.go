package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/noxarianet-commits/olahraga-smk1-sragi/internal/models"
)

// ActivityFilter narrows activity list queries. Search matches the student
// name, NIS or class name through a join.
type ActivityFilter struct {
	StudentID uint
	ClassID   uint
	Status    string
	Search    string
	Page      int
	PageSize  int
}

// VerificationUpdate carries the fields written when a reviewer decides.
type VerificationUpdate struct {
	Status       string
	Notes        string
	VerifiedByID uint
	VerifiedAt   time.Time
}

// ActivityRepository exposes persistence helpers for activity reports.
type ActivityRepository interface {
	Create(ctx context.Context, activity *models.Activity) error
	FindByID(ctx context.Context, id uint) (models.Activity, error)
	List(ctx context.Context, filter ActivityFilter) ([]models.Activity, int64, error)
	UpdateStatusIfPending(ctx context.Context, id uint, update VerificationUpdate) (bool, error)
	Delete(ctx context.Context, id uint) error
	CountByStudent(ctx context.Context, studentID uint) (map[string]int64, error)
	CountByStatus(ctx context.Context, status string, since *time.Time) (int64, error)
}

type activityRepository struct {
	db *gorm.DB
}

// NewActivityRepository constructs the repository implementation.
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(ctx context.Context, activity *models.Activity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

func (r *activityRepository) FindByID(ctx context.Context, id uint) (models.Activity, error) {
	var activity models.Activity
	err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Student.Class").
		First(&activity, id).Error
	return activity, err
}

func (r *activityRepository) List(ctx context.Context, filter ActivityFilter) ([]models.Activity, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Activity{})

	if filter.StudentID > 0 {
		query = query.Where("activities.student_id = ?", filter.StudentID)
	}

	if filter.Status != "" {
		query = query.Where("activities.status = ?", filter.Status)
	}

	needsJoin := filter.ClassID > 0 || strings.TrimSpace(filter.Search) != ""
	if needsJoin {
		query = query.Joins("JOIN users ON users.id = activities.student_id")
	}

	if filter.ClassID > 0 {
		query = query.Where("users.class_id = ?", filter.ClassID)
	}

	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.
			Joins("LEFT JOIN classes ON classes.id = users.class_id").
			Where("LOWER(users.name) LIKE ? OR users.nis LIKE ? OR LOWER(classes.name) LIKE ?", pattern, pattern, pattern)
	}

	countQuery := query.Session(&gorm.Session{})
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.PageSize > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		offset := (page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	var items []models.Activity
	err := query.
		Preload("Student").
		Preload("Student.Class").
		Order("activities.created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// UpdateStatusIfPending writes the verification decision guarded by the
// pending precondition. It returns false when no row matched, meaning another
// reviewer already moved the activity to a terminal status.
func (r *activityRepository) UpdateStatusIfPending(ctx context.Context, id uint, update VerificationUpdate) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Activity{}).
		Where("id = ? AND status = ?", id, models.StatusPending).
		Updates(map[string]interface{}{
			"status":         update.Status,
			"notes":          update.Notes,
			"verified_by_id": update.VerifiedByID,
			"verified_at":    update.VerifiedAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Delete removes an activity. A row that vanished between the caller's read
// and the delete surfaces as gorm.ErrRecordNotFound instead of a silent no-op.
func (r *activityRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Activity{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *activityRepository) CountByStudent(ctx context.Context, studentID uint) (map[string]int64, error) {
	type statusCount struct {
		Status string
		Total  int64
	}

	var rows []statusCount
	err := r.db.WithContext(ctx).
		Model(&models.Activity{}).
		Select("status, COUNT(*) AS total").
		Where("student_id = ?", studentID).
		Group("status").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}

func (r *activityRepository) CountByStatus(ctx context.Context, status string, since *time.Time) (int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Activity{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if since != nil {
		query = query.Where("created_at >= ?", *since)
	}

	var total int64
	err := query.Count(&total).Error
	return total, err
}
