package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noxarianet-commits/olahraga-smk1-sragi/internal/models"
)

// ClassFilter narrows class list queries.
type ClassFilter struct {
	SchoolYear string
	TeacherID  uint
	Page       int
	PageSize   int
}

// ClassRepository exposes persistence helpers for classes.
type ClassRepository interface {
	Create(ctx context.Context, class *models.Class) error
	FindByID(ctx context.Context, id uint) (models.Class, error)
	List(ctx context.Context, filter ClassFilter) ([]models.Class, int64, error)
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

type classRepository struct {
	db *gorm.DB
}

// NewClassRepository constructs the repository implementation.
func NewClassRepository(db *gorm.DB) ClassRepository {
	return &classRepository{db: db}
}

func (r *classRepository) Create(ctx context.Context, class *models.Class) error {
	return r.db.WithContext(ctx).Create(class).Error
}

func (r *classRepository) FindByID(ctx context.Context, id uint) (models.Class, error) {
	var class models.Class
	err := r.db.WithContext(ctx).Preload("Teacher").First(&class, id).Error
	return class, err
}

func (r *classRepository) List(ctx context.Context, filter ClassFilter) ([]models.Class, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Class{})

	if filter.SchoolYear != "" {
		query = query.Where("school_year = ?", filter.SchoolYear)
	}

	if filter.TeacherID > 0 {
		query = query.Where("teacher_id = ?", filter.TeacherID)
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

	var items []models.Class
	if err := query.Preload("Teacher").Order("grade_level ASC, name ASC").Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *classRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Class{}, id).Error
}

func (r *classRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Class{}).Count(&total).Error
	return total, err
}
