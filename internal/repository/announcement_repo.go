package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noxarianet-commits/olahraga-smk1-sragi/internal/models"
)

// AnnouncementFilter narrows announcement list queries. ClassID scopes the
// result to school-wide announcements plus those targeted at that class.
type AnnouncementFilter struct {
	ClassID  uint
	Page     int
	PageSize int
}

// AnnouncementRepository exposes persistence helpers for announcements.
type AnnouncementRepository interface {
	Create(ctx context.Context, announcement *models.Announcement) error
	FindByID(ctx context.Context, id uint) (models.Announcement, error)
	List(ctx context.Context, filter AnnouncementFilter) ([]models.Announcement, int64, error)
	Delete(ctx context.Context, id uint) error
}

type announcementRepository struct {
	db *gorm.DB
}

// NewAnnouncementRepository constructs the repository implementation.
func NewAnnouncementRepository(db *gorm.DB) AnnouncementRepository {
	return &announcementRepository{db: db}
}

func (r *announcementRepository) Create(ctx context.Context, announcement *models.Announcement) error {
	return r.db.WithContext(ctx).Create(announcement).Error
}

func (r *announcementRepository) FindByID(ctx context.Context, id uint) (models.Announcement, error) {
	var announcement models.Announcement
	err := r.db.WithContext(ctx).Preload("Author").First(&announcement, id).Error
	return announcement, err
}

func (r *announcementRepository) List(ctx context.Context, filter AnnouncementFilter) ([]models.Announcement, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Announcement{})

	if filter.ClassID > 0 {
		query = query.Where("target_type = ? OR target_class_id = ?", models.TargetAll, filter.ClassID)
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

	var items []models.Announcement
	if err := query.Preload("Author").Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *announcementRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Announcement{}, id).Error
}
