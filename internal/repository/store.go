package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var ErrDBNotReady = errors.New("database not initialized")

// Store bundles the repositories so a workflow can run several of them
// inside one database transaction.
type Store struct {
	db *gorm.DB

	Users         UserRepository
	Categories    CategoryRepository
	Collections   CollectionRepository
	Transactions  TransactionRepository
	Rewards       RewardRepository
	Redemptions   RedemptionRepository
	Notifications NotificationRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:            db,
		Users:         NewUserRepository(db),
		Categories:    NewCategoryRepository(db),
		Collections:   NewCollectionRepository(db),
		Transactions:  NewTransactionRepository(db),
		Rewards:       NewRewardRepository(db),
		Redemptions:   NewRedemptionRepository(db),
		Notifications: NewNotificationRepository(db),
	}
}

// Transaction runs fn against a Store bound to a single database
// transaction. Returning an error from fn rolls every write back.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	if s.db == nil {
		return ErrDBNotReady
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

// DB exposes the underlying handle for health checks.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Page clamps list paging the same way for every repository.
func Page(limit, offset int) (int, int) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
