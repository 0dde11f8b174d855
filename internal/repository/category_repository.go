package repository

import (
	"context"

	"github.com/rivalscott04/wastebank-sub000/internal/model"
	"gorm.io/gorm"
)

// CategoryRepository is the pricing catalog. Soft-deleted categories are
// invisible to FindByID and List.
type CategoryRepository interface {
	Create(ctx context.Context, c *model.WasteCategory) error
	FindByID(ctx context.Context, id uint64) (*model.WasteCategory, error)
	List(ctx context.Context) ([]model.WasteCategory, error)
	Update(ctx context.Context, c *model.WasteCategory) error
	SoftDelete(ctx context.Context, id uint64) error
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, c *model.WasteCategory) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *categoryRepository) FindByID(ctx context.Context, id uint64) (*model.WasteCategory, error) {
	var c model.WasteCategory
	if err := r.db.WithContext(ctx).
		Where("is_deleted = ?", false).
		First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepository) List(ctx context.Context) ([]model.WasteCategory, error) {
	var list []model.WasteCategory
	if err := r.db.WithContext(ctx).
		Where("is_deleted = ?", false).
		Order("name ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *categoryRepository) Update(ctx context.Context, c *model.WasteCategory) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *categoryRepository) SoftDelete(ctx context.Context, id uint64) error {
	res := r.db.WithContext(ctx).
		Model(&model.WasteCategory{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Update("is_deleted", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
