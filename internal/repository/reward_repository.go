package repository

import (
	"context"

	"github.com/rivalscott04/wastebank-sub000/internal/model"
	"gorm.io/gorm"
)

type RewardRepository interface {
	Create(ctx context.Context, r *model.Reward) error
	FindByID(ctx context.Context, id uint64) (*model.Reward, error)
	List(ctx context.Context, activeOnly bool) ([]model.Reward, error)
	Update(ctx context.Context, r *model.Reward) error
	TakeStock(ctx context.Context, id uint64) (int64, error)
	ReturnStock(ctx context.Context, id uint64) error
}

type rewardRepository struct {
	db *gorm.DB
}

func NewRewardRepository(db *gorm.DB) RewardRepository {
	return &rewardRepository{db: db}
}

func (r *rewardRepository) Create(ctx context.Context, rw *model.Reward) error {
	return r.db.WithContext(ctx).Create(rw).Error
}

func (r *rewardRepository) FindByID(ctx context.Context, id uint64) (*model.Reward, error) {
	var rw model.Reward
	if err := r.db.WithContext(ctx).First(&rw, id).Error; err != nil {
		return nil, err
	}
	return &rw, nil
}

func (r *rewardRepository) List(ctx context.Context, activeOnly bool) ([]model.Reward, error) {
	q := r.db.WithContext(ctx).Model(&model.Reward{})
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var list []model.Reward
	if err := q.Order("points_required ASC, id ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *rewardRepository) Update(ctx context.Context, rw *model.Reward) error {
	return r.db.WithContext(ctx).Save(rw).Error
}

// TakeStock removes one unit if any is left on an active reward. It returns
// the number of rows changed, so zero means nothing was taken.
func (r *rewardRepository) TakeStock(ctx context.Context, id uint64) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Reward{}).
		Where("id = ? AND stock > 0 AND is_active = ?", id, true).
		Update("stock", gorm.Expr("stock - 1"))
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *rewardRepository) ReturnStock(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).
		Model(&model.Reward{}).
		Where("id = ?", id).
		Update("stock", gorm.Expr("stock + 1")).Error
}
