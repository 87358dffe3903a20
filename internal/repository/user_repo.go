package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/noxarianet-commits/olahraga-smk1-sragi/internal/models"
)

// UserFilter narrows account list queries.
type UserFilter struct {
	Role     string
	ClassID  uint
	Search   string
	Page     int
	PageSize int
}

// UserRepository exposes persistence helpers for accounts.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uint) (models.User, error)
	FindByIdentifier(ctx context.Context, identifier string) (models.User, error)
	List(ctx context.Context, filter UserFilter) ([]models.User, int64, error)
	UpdatePassword(ctx context.Context, id uint, passwordHash string) error
	Delete(ctx context.Context, id uint) error
	CountByRole(ctx context.Context, role string) (int64, error)
	CountByClass(ctx context.Context, classID uint) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository constructs the repository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Preload("Class").First(&user, id).Error
	return user, err
}

// FindByIdentifier resolves a login identifier: digits match a student NIS,
// anything else an email address.
func (r *userRepository) FindByIdentifier(ctx context.Context, identifier string) (models.User, error) {
	identifier = strings.TrimSpace(identifier)

	var user models.User
	err := r.db.WithContext(ctx).
		Preload("Class").
		Where("nis = ? OR email = ?", identifier, strings.ToLower(identifier)).
		First(&user).Error
	return user, err
}

func (r *userRepository) List(ctx context.Context, filter UserFilter) ([]models.User, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.User{})

	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}

	if filter.ClassID > 0 {
		query = query.Where("class_id = ?", filter.ClassID)
	}

	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR nis LIKE ? OR LOWER(email) LIKE ?", pattern, pattern, pattern)
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

	var items []models.User
	if err := query.Preload("Class").Order("name ASC").Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("password_hash", passwordHash).Error
}

func (r *userRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.User{}, id).Error
}

func (r *userRepository) CountByRole(ctx context.Context, role string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("role = ?", role).
		Count(&total).Error
	return total, err
}

func (r *userRepository) CountByClass(ctx context.Context, classID uint) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("class_id = ? AND role = ?", classID, models.RoleStudent).
		Count(&total).Error
	return total, err
}
