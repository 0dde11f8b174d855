package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rivalscott04/wastebank-sub000/internal/model"
	"github.com/rivalscott04/wastebank-sub000/internal/reqctx"
	"github.com/rivalscott04/wastebank-sub000/internal/repository"
	"go.uber.org/zap"
)

type RedemptionService interface {
	Create(ctx context.Context, p Principal, rewardID uint64) (*model.RewardRedemption, error)
	Get(ctx context.Context, p Principal, id uint64) (*model.RewardRedemption, error)
	List(ctx context.Context, p Principal, status string, limit, offset int) ([]model.RewardRedemption, int64, error)
	UpdateStatus(ctx context.Context, p Principal, id uint64, status string) (*model.RewardRedemption, error)
	Cancel(ctx context.Context, p Principal, id uint64) (*model.RewardRedemption, error)
}

type redemptionService struct {
	store  *repository.Store
	notify NotificationService
	now    func() time.Time
}

func NewRedemptionService(store *repository.Store, notify NotificationService) RedemptionService {
	return &redemptionService{store: store, notify: notify, now: time.Now}
}

// Create holds the reward's points and one unit of stock in escrow and
// records a pending redemption. Stock and balance are taken with conditional
// updates so two requests racing for the last unit cannot both win.
func (s *redemptionService) Create(ctx context.Context, p Principal, rewardID uint64) (*model.RewardRedemption, error) {
	if p.UserID == 0 {
		return nil, ErrForbidden
	}
	if rewardID == 0 {
		return nil, wrap(ErrValidation, "reward_id is required")
	}

	var (
		rd     *model.RewardRedemption
		reward *model.Reward
	)
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		reward, err = tx.Rewards.FindByID(ctx, rewardID)
		if err != nil {
			return notFound(err, "reward not found")
		}
		if !reward.IsActive {
			return wrap(ErrRewardUnavailable, "reward is not active")
		}
		if reward.Expired(s.now()) {
			return wrap(ErrRewardUnavailable, "reward has expired")
		}
		if reward.Stock <= 0 {
			return ErrOutOfStock
		}
		user, err := tx.Users.FindByID(ctx, p.UserID)
		if err != nil {
			return notFound(err, "user not found")
		}
		if user.Points < reward.PointsRequired {
			return wrap(ErrInsufficientPoints, fmt.Sprintf("insufficient points: need %d, have %d", reward.PointsRequired, user.Points))
		}

		n, err := tx.Rewards.TakeStock(ctx, reward.ID)
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrOutOfStock
		}
		if err := debitPoints(ctx, tx.Users, user.ID, reward.PointsRequired); err != nil {
			return err
		}
		rd = &model.RewardRedemption{
			UserID:      user.ID,
			RewardID:    reward.ID,
			PointsSpent: reward.PointsRequired,
			Status:      model.RedemptionStatusPending,
		}
		return tx.Redemptions.Create(ctx, rd)
	})
	if err != nil {
		return nil, err
	}

	reqctx.Logger(ctx).Info("reward redeemed",
		zap.Uint64("redemption_id", rd.ID),
		zap.Uint64("user_id", rd.UserID),
		zap.Uint64("reward_id", rd.RewardID),
		zap.Int64("points_spent", rd.PointsSpent))
	s.notify.Notify(ctx, &model.Notification{
		UserID:       rd.UserID,
		Type:         model.NotificationRedemption,
		Title:        "Penukaran poin diajukan",
		Body:         fmt.Sprintf("Penukaran %s (-%d poin) menunggu persetujuan.", reward.Name, rd.PointsSpent),
		RedemptionID: uint64Ptr(rd.ID),
	})
	return rd, nil
}

func (s *redemptionService) Get(ctx context.Context, p Principal, id uint64) (*model.RewardRedemption, error) {
	rd, err := s.store.Redemptions.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "redemption not found")
	}
	if !p.owns(rd.UserID) {
		return nil, ErrForbidden
	}
	return rd, nil
}

func (s *redemptionService) List(ctx context.Context, p Principal, status string, limit, offset int) ([]model.RewardRedemption, int64, error) {
	f := repository.RedemptionFilter{Status: model.RedemptionStatus(status)}
	if status != "" && !f.Status.Valid() {
		return nil, 0, wrap(ErrInvalidStatus, fmt.Sprintf("unknown status %q", status))
	}
	if !p.IsAdmin() {
		f.UserID = p.UserID
	}
	return s.store.Redemptions.List(ctx, f, limit, offset)
}

func (s *redemptionService) UpdateStatus(ctx context.Context, p Principal, id uint64, status string) (*model.RewardRedemption, error) {
	if !p.IsAdmin() {
		return nil, ErrForbidden
	}
	st := model.RedemptionStatus(status)
	if !st.Valid() {
		return nil, wrap(ErrInvalidStatus, fmt.Sprintf("unknown status %q", status))
	}
	return s.transition(ctx, p, id, st, nil)
}

// Cancel lets the owner withdraw a redemption that is still pending.
func (s *redemptionService) Cancel(ctx context.Context, p Principal, id uint64) (*model.RewardRedemption, error) {
	return s.transition(ctx, p, id, model.RedemptionStatusCancelled, func(rd *model.RewardRedemption) error {
		if rd.UserID != p.UserID {
			return ErrForbidden
		}
		if rd.Status != model.RedemptionStatusPending && rd.Status != model.RedemptionStatusCancelled {
			return wrap(ErrInvalidStatus, "only pending redemptions can be cancelled")
		}
		return nil
	})
}

// transition moves a redemption to status to. Entering rejected or cancelled
// hands the escrowed points and stock unit back exactly once; a redemption
// that already released its escrow cannot move again. Setting the current
// status again is a no-op.
func (s *redemptionService) transition(ctx context.Context, p Principal, id uint64, to model.RedemptionStatus, check func(*model.RewardRedemption) error) (*model.RewardRedemption, error) {
	var (
		out      *model.RewardRedemption
		from     model.RedemptionStatus
		released bool
	)
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		rd, err := tx.Redemptions.FindByID(ctx, id)
		if err != nil {
			return notFound(err, "redemption not found")
		}
		if check != nil {
			if err := check(rd); err != nil {
				return err
			}
		}
		from = rd.Status
		if rd.Status == to {
			out = rd
			return nil
		}
		if rd.Status.ReleasesEscrow() {
			return wrap(ErrInvalidStatus, fmt.Sprintf("redemption is already %s", rd.Status))
		}

		n, err := tx.Redemptions.UpdateStatusIf(ctx, rd.ID, rd.Status, to)
		if err != nil {
			return err
		}
		if n == 0 {
			return wrap(ErrConflict, "redemption status changed, reload and retry")
		}
		if to.ReleasesEscrow() {
			if err := creditPoints(ctx, tx.Users, rd.UserID, rd.PointsSpent); err != nil {
				return err
			}
			if err := tx.Rewards.ReturnStock(ctx, rd.RewardID); err != nil {
				return err
			}
			released = true
		}
		out, err = tx.Redemptions.FindByID(ctx, rd.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if from == to {
		return out, nil
	}

	reqctx.Logger(ctx).Info("redemption status updated",
		zap.Uint64("redemption_id", out.ID),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
		zap.Bool("refunded", released),
		zap.Uint64("by", p.UserID))
	body := fmt.Sprintf("Penukaran #%d sekarang berstatus %s.", out.ID, out.Status)
	if released {
		body = fmt.Sprintf("Penukaran #%d %s, %d poin dikembalikan.", out.ID, out.Status, out.PointsSpent)
	}
	s.notify.Notify(ctx, &model.Notification{
		UserID:       out.UserID,
		Type:         model.NotificationRedemption,
		Title:        "Status penukaran diperbarui",
		Body:         body,
		RedemptionID: uint64Ptr(out.ID),
	})
	return out, nil
}
