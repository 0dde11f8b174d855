package repository

import (
	"context"

	"github.com/rivalscott04/wastebank-sub000/internal/model"
	"gorm.io/gorm"
)

type TransactionFilter struct {
	UserID        uint64
	PaymentStatus model.PaymentStatus
}

type TransactionRepository interface {
	Create(ctx context.Context, t *model.Transaction) error
	FindByID(ctx context.Context, id uint64) (*model.Transaction, error)
	FindByCollection(ctx context.Context, collectionID uint64) (*model.Transaction, error)
	List(ctx context.Context, f TransactionFilter, limit, offset int) ([]model.Transaction, int64, error)
	UpdatePaymentStatus(ctx context.Context, id uint64, status model.PaymentStatus) error
}

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

// Create inserts the header and then its items.
func (r *transactionRepository) Create(ctx context.Context, t *model.Transaction) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *transactionRepository) FindByID(ctx context.Context, id uint64) (*model.Transaction, error) {
	var t model.Transaction
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *transactionRepository) FindByCollection(ctx context.Context, collectionID uint64) (*model.Transaction, error) {
	var t model.Transaction
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("waste_collection_id = ?", collectionID).
		First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *transactionRepository) List(ctx context.Context, f TransactionFilter, limit, offset int) ([]model.Transaction, int64, error) {
	limit, offset = Page(limit, offset)
	q := r.db.WithContext(ctx).Model(&model.Transaction{})
	if f.UserID != 0 {
		q = q.Where("user_id = ?", f.UserID)
	}
	switch f.PaymentStatus {
	case "":
	case model.PaymentStatusCompleted, model.PaymentStatusPaid:
		// legacy rows may still carry "paid"
		q = q.Where("payment_status IN ?", []model.PaymentStatus{model.PaymentStatusCompleted, model.PaymentStatusPaid})
	default:
		q = q.Where("payment_status = ?", f.PaymentStatus)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []model.Transaction
	if err := q.Preload("Items").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *transactionRepository) UpdatePaymentStatus(ctx context.Context, id uint64, status model.PaymentStatus) error {
	return r.db.WithContext(ctx).
		Model(&model.Transaction{}).
		Where("id = ?", id).
		Update("payment_status", status).Error
}
