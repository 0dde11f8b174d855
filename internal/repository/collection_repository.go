package repository

import (
	"context"

	"github.com/rivalscott04/wastebank-sub000/internal/model"
	"gorm.io/gorm"
)

type CollectionFilter struct {
	UserID uint64 // zero means every user
	Status model.CollectionStatus
}

type CollectionRepository interface {
	Create(ctx context.Context, c *model.WasteCollection) error
	FindByID(ctx context.Context, id uint64) (*model.WasteCollection, error)
	List(ctx context.Context, f CollectionFilter, limit, offset int) ([]model.WasteCollection, int64, error)
	UpdateStatus(ctx context.Context, id uint64, status model.CollectionStatus) error
	UpdateStatusIf(ctx context.Context, id uint64, from, to model.CollectionStatus) (int64, error)
}

type collectionRepository struct {
	db *gorm.DB
}

func NewCollectionRepository(db *gorm.DB) CollectionRepository {
	return &collectionRepository{db: db}
}

// Create inserts the collection together with its items.
func (r *collectionRepository) Create(ctx context.Context, c *model.WasteCollection) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *collectionRepository) FindByID(ctx context.Context, id uint64) (*model.WasteCollection, error) {
	var c model.WasteCollection
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *collectionRepository) List(ctx context.Context, f CollectionFilter, limit, offset int) ([]model.WasteCollection, int64, error) {
	limit, offset = Page(limit, offset)
	q := r.db.WithContext(ctx).Model(&model.WasteCollection{})
	if f.UserID != 0 {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []model.WasteCollection
	if err := q.Preload("Items").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// UpdateStatus writes the status unconditionally.
func (r *collectionRepository) UpdateStatus(ctx context.Context, id uint64, status model.CollectionStatus) error {
	return r.db.WithContext(ctx).
		Model(&model.WasteCollection{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *collectionRepository) UpdateStatusIf(ctx context.Context, id uint64, from, to model.CollectionStatus) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.WasteCollection{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
