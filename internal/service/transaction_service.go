package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rivalscott04/wastebank-sub000/internal/model"
	"github.com/rivalscott04/wastebank-sub000/internal/reqctx"
	"github.com/rivalscott04/wastebank-sub000/internal/repository"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TransactionItemInput is one admin-entered line. PricePerKg and
// PointsEarned are only honoured when caller pricing is trusted.
type TransactionItemInput struct {
	CategoryID   uint64
	Weight       decimal.Decimal
	PricePerKg   decimal.Decimal
	PointsEarned int64
}

type CreateTransactionInput struct {
	UserID            uint64
	WasteCollectionID *uint64
	Items             []TransactionItemInput
	PaymentMethod     string
	PaymentStatus     string
	Notes             string
}

type TransactionService interface {
	Create(ctx context.Context, p Principal, in CreateTransactionInput) (*model.Transaction, error)
	Get(ctx context.Context, p Principal, id uint64) (*model.Transaction, error)
	List(ctx context.Context, p Principal, paymentStatus string, limit, offset int) ([]model.Transaction, int64, error)
	UpdatePayment(ctx context.Context, p Principal, id uint64, status string) (*model.Transaction, error)
}

type transactionService struct {
	store              *repository.Store
	notify             NotificationService
	trustCallerPricing bool
}

func NewTransactionService(store *repository.Store, notify NotificationService, trustCallerPricing bool) TransactionService {
	return &transactionService{store: store, notify: notify, trustCallerPricing: trustCallerPricing}
}

func (s *transactionService) validate(in *CreateTransactionInput) (model.PaymentMethod, model.PaymentStatus, error) {
	if in.UserID == 0 {
		return "", "", wrap(ErrValidation, "user_id is required")
	}
	if len(in.Items) == 0 {
		return "", "", wrap(ErrValidation, "at least one item is required")
	}
	method := model.PaymentMethod(strings.TrimSpace(in.PaymentMethod))
	if method == "" {
		method = model.PaymentMethodCash
	}
	if !method.Valid() {
		return "", "", wrap(ErrValidation, fmt.Sprintf("unknown payment_method %q", in.PaymentMethod))
	}
	status := model.PaymentStatusCompleted
	if in.PaymentStatus != "" {
		st, ok := model.NormalizePaymentStatus(in.PaymentStatus)
		if !ok {
			return "", "", wrap(ErrInvalidStatus, fmt.Sprintf("unknown payment_status %q", in.PaymentStatus))
		}
		status = st
	}
	for _, it := range in.Items {
		if it.CategoryID == 0 {
			return "", "", wrap(ErrValidation, "category_id is required")
		}
		if !it.Weight.Round(2).IsPositive() {
			return "", "", wrap(ErrValidation, "weight must be at least 0.01 kg")
		}
		if s.trustCallerPricing && (it.PricePerKg.IsNegative() || it.PointsEarned < 0) {
			return "", "", wrap(ErrValidation, "price_per_kg and points_earned must not be negative")
		}
	}
	return method, status, nil
}

// Create records an admin-entered transaction and credits its points to the
// customer. With caller pricing trusted the supplied per-item price and
// points are used as is; otherwise every line is priced from the catalog.
func (s *transactionService) Create(ctx context.Context, p Principal, in CreateTransactionInput) (*model.Transaction, error) {
	if !p.IsAdmin() {
		return nil, ErrForbidden
	}
	method, status, err := s.validate(&in)
	if err != nil {
		return nil, err
	}

	var txn *model.Transaction
	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		if _, err := tx.Users.FindByID(ctx, in.UserID); err != nil {
			return notFound(err, fmt.Sprintf("user %d not found", in.UserID))
		}
		if in.WasteCollectionID != nil {
			c, err := tx.Collections.FindByID(ctx, *in.WasteCollectionID)
			if err != nil {
				return notFound(err, "collection not found")
			}
			if c.UserID != in.UserID {
				return wrap(ErrValidation, "collection belongs to another user")
			}
			_, err = tx.Transactions.FindByCollection(ctx, c.ID)
			if err == nil {
				return wrap(ErrConflict, "collection already has a transaction")
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}

		lines := make([]LineQuote, 0, len(in.Items))
		for _, it := range in.Items {
			cat, err := tx.Categories.FindByID(ctx, it.CategoryID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return wrap(ErrValidation, fmt.Sprintf("category %d not found", it.CategoryID))
				}
				return err
			}
			weight := it.Weight.Round(2)
			if s.trustCallerPricing {
				lines = append(lines, quote(cat.ID, weight, it.PricePerKg, it.PointsEarned))
			} else {
				lines = append(lines, QuoteLine(cat, weight))
			}
		}

		txn = buildTransaction(in.UserID, in.WasteCollectionID, lines, method, status, strings.TrimSpace(in.Notes))
		if err := tx.Transactions.Create(ctx, txn); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return wrap(ErrConflict, "collection already has a transaction")
			}
			return err
		}
		return creditPoints(ctx, tx.Users, in.UserID, txn.TotalPoints)
	})
	if err != nil {
		return nil, err
	}

	reqctx.Logger(ctx).Info("manual transaction recorded",
		zap.Uint64("transaction_id", txn.ID),
		zap.Uint64("user_id", txn.UserID),
		zap.Bool("caller_pricing", s.trustCallerPricing),
		zap.String("total_amount", txn.TotalAmount.String()),
		zap.Int64("total_points", txn.TotalPoints),
		zap.Uint64("by", p.UserID))
	s.notify.Notify(ctx, &model.Notification{
		UserID:        txn.UserID,
		Type:          model.NotificationTransaction,
		Title:         "Transaksi baru",
		Body:          fmt.Sprintf("Setoran %s kg tercatat: Rp %s, +%d poin.", txn.TotalWeight.String(), txn.TotalAmount.StringFixed(0), txn.TotalPoints),
		TransactionID: uint64Ptr(txn.ID),
	})
	return txn, nil
}

func (s *transactionService) Get(ctx context.Context, p Principal, id uint64) (*model.Transaction, error) {
	t, err := s.store.Transactions.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "transaction not found")
	}
	if !p.owns(t.UserID) {
		return nil, ErrForbidden
	}
	return t, nil
}

func (s *transactionService) List(ctx context.Context, p Principal, paymentStatus string, limit, offset int) ([]model.Transaction, int64, error) {
	f := repository.TransactionFilter{}
	if paymentStatus != "" {
		st, ok := model.NormalizePaymentStatus(paymentStatus)
		if !ok {
			return nil, 0, wrap(ErrInvalidStatus, fmt.Sprintf("unknown payment_status %q", paymentStatus))
		}
		f.PaymentStatus = st
	}
	if !p.IsAdmin() {
		f.UserID = p.UserID
	}
	return s.store.Transactions.List(ctx, f, limit, offset)
}

// UpdatePayment patches payment_status only; totals and items never change.
func (s *transactionService) UpdatePayment(ctx context.Context, p Principal, id uint64, status string) (*model.Transaction, error) {
	if !p.IsAdmin() {
		return nil, ErrForbidden
	}
	st, ok := model.NormalizePaymentStatus(status)
	if !ok {
		return nil, wrap(ErrInvalidStatus, fmt.Sprintf("unknown payment_status %q", status))
	}
	if _, err := s.store.Transactions.FindByID(ctx, id); err != nil {
		return nil, notFound(err, "transaction not found")
	}
	if err := s.store.Transactions.UpdatePaymentStatus(ctx, id, st); err != nil {
		return nil, err
	}
	reqctx.Logger(ctx).Info("payment status updated",
		zap.Uint64("transaction_id", id),
		zap.String("payment_status", string(st)),
		zap.Uint64("by", p.UserID))
	return s.store.Transactions.FindByID(ctx, id)
}
