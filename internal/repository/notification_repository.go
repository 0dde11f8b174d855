package repository

import (
	"context"

	"github.com/rivalscott04/wastebank-sub000/internal/model"
	"gorm.io/gorm"
)

// NotificationFilter narrows a user's inbox. Zero fields match everything.
type NotificationFilter struct {
	UserID       uint64
	UnreadOnly   bool
	Type         string
	CollectionID uint64
	RedemptionID uint64
}

func (f NotificationFilter) apply(q *gorm.DB) *gorm.DB {
	q = q.Where("user_id = ?", f.UserID)
	if f.UnreadOnly {
		q = q.Where("read_at IS NULL")
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.CollectionID != 0 {
		q = q.Where("collection_id = ?", f.CollectionID)
	}
	if f.RedemptionID != 0 {
		q = q.Where("redemption_id = ?", f.RedemptionID)
	}
	return q
}

type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) error
	List(ctx context.Context, f NotificationFilter, limit int) ([]model.Notification, error)
	MarkRead(ctx context.Context, f NotificationFilter) (int64, error)
	CountUnread(ctx context.Context, userID uint64) (int64, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *model.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

// List returns the newest matching notifications first. A filter without a
// user matches nothing.
func (r *notificationRepository) List(ctx context.Context, f NotificationFilter, limit int) ([]model.Notification, error) {
	if f.UserID == 0 {
		return nil, nil
	}
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	var list []model.Notification
	q := f.apply(r.db.WithContext(ctx).Model(&model.Notification{}))
	if err := q.Order("created_at DESC, id DESC").Limit(limit).Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// MarkRead stamps read_at on the unread notifications matching f and
// returns how many changed.
func (r *notificationRepository) MarkRead(ctx context.Context, f NotificationFilter) (int64, error) {
	if f.UserID == 0 {
		return 0, nil
	}
	f.UnreadOnly = true
	res := f.apply(r.db.WithContext(ctx).Model(&model.Notification{})).
		Update("read_at", r.db.NowFunc())
	return res.RowsAffected, res.Error
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID uint64) (int64, error) {
	var cnt int64
	err := NotificationFilter{UserID: userID, UnreadOnly: true}.
		apply(r.db.WithContext(ctx).Model(&model.Notification{})).
		Count(&cnt).Error
	return cnt, err
}
