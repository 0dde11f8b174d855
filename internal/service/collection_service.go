package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rivalscott04/wastebank-sub000/internal/model"
	"github.com/rivalscott04/wastebank-sub000/internal/reqctx"
	"github.com/rivalscott04/wastebank-sub000/internal/repository"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CollectionItemInput struct {
	CategoryID      uint64
	EstimatedWeight decimal.Decimal
}

type CreateCollectionInput struct {
	PickupAddress  string
	PickupDate     time.Time
	PickupTimeSlot string
	Notes          string
	Items          []CollectionItemInput
}

// StatusChange is the outcome of an admin status update. Transaction is set
// when the collection is completed and has something to convert; Converted
// tells whether this call created it.
type StatusChange struct {
	Collection  *model.WasteCollection
	Transaction *model.Transaction
	Converted   bool
}

type CollectionService interface {
	Create(ctx context.Context, p Principal, in CreateCollectionInput) (*model.WasteCollection, error)
	Get(ctx context.Context, p Principal, id uint64) (*model.WasteCollection, error)
	List(ctx context.Context, p Principal, status string, limit, offset int) ([]model.WasteCollection, int64, error)
	UpdateStatus(ctx context.Context, p Principal, id uint64, status string) (*StatusChange, error)
	Cancel(ctx context.Context, p Principal, id uint64) (*model.WasteCollection, error)
}

type collectionService struct {
	store  *repository.Store
	notify NotificationService
}

func NewCollectionService(store *repository.Store, notify NotificationService) CollectionService {
	return &collectionService{store: store, notify: notify}
}

// mergeItems folds items of the same category into one line, summing the
// weights and keeping first-seen order.
func mergeItems(in []CollectionItemInput) ([]model.WasteCollectionItem, error) {
	if len(in) == 0 {
		return nil, wrap(ErrValidation, "at least one item is required")
	}
	idx := make(map[uint64]int, len(in))
	out := make([]model.WasteCollectionItem, 0, len(in))
	for _, it := range in {
		if it.CategoryID == 0 {
			return nil, wrap(ErrValidation, "category_id is required")
		}
		// the stored weight has 2 decimals and must stay positive
		w := it.EstimatedWeight.Round(2)
		if !w.IsPositive() {
			return nil, wrap(ErrValidation, "estimated_weight must be at least 0.01 kg")
		}
		if i, ok := idx[it.CategoryID]; ok {
			out[i].EstimatedWeight = out[i].EstimatedWeight.Add(w)
			continue
		}
		idx[it.CategoryID] = len(out)
		out = append(out, model.WasteCollectionItem{CategoryID: it.CategoryID, EstimatedWeight: w})
	}
	return out, nil
}

func (s *collectionService) Create(ctx context.Context, p Principal, in CreateCollectionInput) (*model.WasteCollection, error) {
	if p.UserID == 0 {
		return nil, ErrForbidden
	}
	addr := strings.TrimSpace(in.PickupAddress)
	if addr == "" {
		return nil, wrap(ErrValidation, "pickup_address is required")
	}
	if in.PickupDate.IsZero() {
		return nil, wrap(ErrValidation, "pickup_date is required")
	}
	items, err := mergeItems(in.Items)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		if _, err := s.store.Categories.FindByID(ctx, it.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, wrap(ErrValidation, fmt.Sprintf("category %d not found", it.CategoryID))
			}
			return nil, err
		}
	}

	c := &model.WasteCollection{
		UserID:         p.UserID,
		PickupAddress:  addr,
		PickupDate:     in.PickupDate,
		PickupTimeSlot: strings.TrimSpace(in.PickupTimeSlot),
		Status:         model.CollectionStatusPending,
		Notes:          strings.TrimSpace(in.Notes),
		Items:          items,
	}
	if err := s.store.Collections.Create(ctx, c); err != nil {
		return nil, err
	}
	reqctx.Logger(ctx).Info("pickup requested",
		zap.Uint64("collection_id", c.ID),
		zap.Uint64("user_id", c.UserID),
		zap.Int("items", len(c.Items)))
	return c, nil
}

func (s *collectionService) Get(ctx context.Context, p Principal, id uint64) (*model.WasteCollection, error) {
	c, err := s.store.Collections.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "collection not found")
	}
	if !p.owns(c.UserID) {
		return nil, ErrForbidden
	}
	return c, nil
}

func (s *collectionService) List(ctx context.Context, p Principal, status string, limit, offset int) ([]model.WasteCollection, int64, error) {
	f := repository.CollectionFilter{Status: model.CollectionStatus(status)}
	if status != "" && !f.Status.Valid() {
		return nil, 0, wrap(ErrInvalidStatus, fmt.Sprintf("unknown status %q", status))
	}
	if !p.IsAdmin() {
		f.UserID = p.UserID
	}
	return s.store.Collections.List(ctx, f, limit, offset)
}

// UpdateStatus writes the new status and, when it is completed, converts the
// collection into a transaction. Both happen in one database transaction.
func (s *collectionService) UpdateStatus(ctx context.Context, p Principal, id uint64, status string) (*StatusChange, error) {
	if !p.IsAdmin() {
		return nil, ErrForbidden
	}
	st := model.CollectionStatus(status)
	if !st.Valid() {
		return nil, wrap(ErrInvalidStatus, fmt.Sprintf("unknown status %q", status))
	}

	change := &StatusChange{}
	var previous model.CollectionStatus
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		c, err := tx.Collections.FindByID(ctx, id)
		if err != nil {
			return notFound(err, "collection not found")
		}
		previous = c.Status
		if err := tx.Collections.UpdateStatus(ctx, id, st); err != nil {
			return err
		}
		if st == model.CollectionStatusCompleted {
			txn, created, err := convertCollection(ctx, tx, id)
			if err != nil {
				return err
			}
			change.Transaction = txn
			change.Converted = created
		}
		change.Collection, err = tx.Collections.FindByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	c := change.Collection
	reqctx.Logger(ctx).Info("collection status updated",
		zap.Uint64("collection_id", c.ID),
		zap.String("from", string(previous)),
		zap.String("to", string(c.Status)),
		zap.Uint64("by", p.UserID))
	if previous != c.Status {
		s.notify.Notify(ctx, &model.Notification{
			UserID:       c.UserID,
			Type:         model.NotificationCollectionStatus,
			Title:        "Status penjemputan diperbarui",
			Body:         fmt.Sprintf("Penjemputan #%d sekarang berstatus %s.", c.ID, c.Status),
			CollectionID: uint64Ptr(c.ID),
		})
	}
	if change.Converted {
		t := change.Transaction
		s.notify.Notify(ctx, &model.Notification{
			UserID:        t.UserID,
			Type:          model.NotificationTransaction,
			Title:         "Poin bertambah",
			Body:          fmt.Sprintf("Penjemputan #%d selesai: %s kg, Rp %s, +%d poin.", c.ID, t.TotalWeight.String(), t.TotalAmount.StringFixed(0), t.TotalPoints),
			CollectionID:  uint64Ptr(c.ID),
			TransactionID: uint64Ptr(t.ID),
		})
	}
	return change, nil
}

// Cancel lets the owner withdraw a pickup request that staff has not picked up yet.
func (s *collectionService) Cancel(ctx context.Context, p Principal, id uint64) (*model.WasteCollection, error) {
	c, err := s.store.Collections.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "collection not found")
	}
	if c.UserID != p.UserID {
		return nil, ErrForbidden
	}
	if c.Status == model.CollectionStatusCancelled {
		return c, nil
	}
	if c.Status != model.CollectionStatusPending {
		return nil, wrap(ErrInvalidStatus, "only pending collections can be cancelled")
	}
	n, err := s.store.Collections.UpdateStatusIf(ctx, id, model.CollectionStatusPending, model.CollectionStatusCancelled)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, wrap(ErrConflict, "collection status changed, reload and retry")
	}
	return s.store.Collections.FindByID(ctx, id)
}
