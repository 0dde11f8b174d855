package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rivalscott04/wastebank-sub000/internal/model"
	"github.com/rivalscott04/wastebank-sub000/internal/repository"
	"gorm.io/gorm"
)

// creditPoints is the only place a balance grows. Manual transactions,
// pickup conversion and redemption refunds all go through it so the stored
// rank never drifts from the balance.
func creditPoints(ctx context.Context, users repository.UserRepository, userID uint64, points int64) error {
	if points <= 0 {
		return nil
	}
	if err := users.AddPoints(ctx, userID, points); err != nil {
		return fmt.Errorf("credit points: %w", err)
	}
	return refreshRank(ctx, users, userID)
}

func debitPoints(ctx context.Context, users repository.UserRepository, userID uint64, points int64) error {
	if points <= 0 {
		return nil
	}
	if err := users.DeductPoints(ctx, userID, points); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInsufficientPoints
		}
		return fmt.Errorf("debit points: %w", err)
	}
	return refreshRank(ctx, users, userID)
}

func refreshRank(ctx context.Context, users repository.UserRepository, userID uint64) error {
	u, err := users.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("reload user: %w", err)
	}
	rank := model.RankFor(u.Points)
	if u.Rank == rank {
		return nil
	}
	return users.SetRank(ctx, userID, rank)
}
