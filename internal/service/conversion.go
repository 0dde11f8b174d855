package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rivalscott04/wastebank-sub000/internal/model"
	"github.com/rivalscott04/wastebank-sub000/internal/reqctx"
	"github.com/rivalscott04/wastebank-sub000/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const conversionNote = "Transaksi otomatis dari penjemputan sampah yang telah selesai"

// convertCollection turns a completed collection into a cash transaction
// priced at the catalog's current rates and credits the earned points to the
// collection owner. Items whose category is gone are skipped. A collection
// with nothing left to price yields no transaction.
//
// If a transaction already references the collection it is returned with
// created=false and nothing is written.
func convertCollection(ctx context.Context, tx *repository.Store, collectionID uint64) (txn *model.Transaction, created bool, err error) {
	log := reqctx.Logger(ctx).With(zap.Uint64("collection_id", collectionID))

	c, err := tx.Collections.FindByID(ctx, collectionID)
	if err != nil {
		return nil, false, fmt.Errorf("reload collection: %w", err)
	}
	if len(c.Items) == 0 {
		log.Info("completed collection has no items; nothing to convert")
		return nil, false, nil
	}

	existing, err := tx.Transactions.FindByCollection(ctx, collectionID)
	if err == nil {
		log.Info("collection already converted", zap.Uint64("transaction_id", existing.ID))
		return existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("lookup transaction: %w", err)
	}

	lines := make([]LineQuote, 0, len(c.Items))
	for _, it := range c.Items {
		cat, err := tx.Categories.FindByID(ctx, it.CategoryID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn("skipping item with unknown category", zap.Uint64("category_id", it.CategoryID))
			continue
		}
		if err != nil {
			return nil, false, fmt.Errorf("lookup category %d: %w", it.CategoryID, err)
		}
		lines = append(lines, QuoteLine(cat, it.EstimatedWeight))
	}
	if len(lines) == 0 {
		log.Info("no priceable items; nothing to convert")
		return nil, false, nil
	}

	cid := c.ID
	txn = buildTransaction(c.UserID, &cid, lines, model.PaymentMethodCash, model.PaymentStatusCompleted, conversionNote)
	if err := tx.Transactions.Create(ctx, txn); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, false, wrap(ErrConflict, "collection already converted")
		}
		return nil, false, fmt.Errorf("create transaction: %w", err)
	}
	if err := creditPoints(ctx, tx.Users, c.UserID, txn.TotalPoints); err != nil {
		return nil, false, err
	}

	log.Info("collection converted",
		zap.Uint64("transaction_id", txn.ID),
		zap.Uint64("user_id", c.UserID),
		zap.String("total_amount", txn.TotalAmount.String()),
		zap.String("total_weight", txn.TotalWeight.String()),
		zap.Int64("total_points", txn.TotalPoints),
		zap.Int("items", len(txn.Items)))
	return txn, true, nil
}
