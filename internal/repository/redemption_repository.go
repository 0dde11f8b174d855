package repository

import (
	"context"
	"time"

	"github.com/rivalscott04/wastebank-sub000/internal/model"
	"gorm.io/gorm"
)

type RedemptionFilter struct {
	UserID uint64
	Status model.RedemptionStatus
}

type RedemptionRepository interface {
	Create(ctx context.Context, rd *model.RewardRedemption) error
	FindByID(ctx context.Context, id uint64) (*model.RewardRedemption, error)
	List(ctx context.Context, f RedemptionFilter, limit, offset int) ([]model.RewardRedemption, int64, error)
	UpdateStatusIf(ctx context.Context, id uint64, from, to model.RedemptionStatus) (int64, error)
}

type redemptionRepository struct {
	db *gorm.DB
}

func NewRedemptionRepository(db *gorm.DB) RedemptionRepository {
	return &redemptionRepository{db: db}
}

func (r *redemptionRepository) Create(ctx context.Context, rd *model.RewardRedemption) error {
	return r.db.WithContext(ctx).Create(rd).Error
}

func (r *redemptionRepository) FindByID(ctx context.Context, id uint64) (*model.RewardRedemption, error) {
	var rd model.RewardRedemption
	if err := r.db.WithContext(ctx).First(&rd, id).Error; err != nil {
		return nil, err
	}
	return &rd, nil
}

func (r *redemptionRepository) List(ctx context.Context, f RedemptionFilter, limit, offset int) ([]model.RewardRedemption, int64, error) {
	limit, offset = Page(limit, offset)
	q := r.db.WithContext(ctx).Model(&model.RewardRedemption{})
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
	var list []model.RewardRedemption
	if err := q.Order("id DESC").Limit(limit).Offset(offset).Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// UpdateStatusIf moves the redemption from one status to another only if it
// is still in from. Zero rows affected means somebody else moved it first.
func (r *redemptionRepository) UpdateStatusIf(ctx context.Context, id uint64, from, to model.RedemptionStatus) (int64, error) {
	updates := map[string]interface{}{"status": to}
	if to != model.RedemptionStatusPending {
		updates["processed_at"] = time.Now()
	}
	res := r.db.WithContext(ctx).
		Model(&model.RewardRedemption{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
