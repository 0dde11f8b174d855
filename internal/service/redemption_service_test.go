package service

import (
	"testing"
	"time"

	"github.com/rivalscott04/wastebank-sub000/internal/model"
	"github.com/stretchr/testify/require"
)

func (f *fixture) stock(t *testing.T, r *model.Reward) int64 {
	t.Helper()
	got, err := f.store.Rewards.FindByID(f.ctx, r.ID)
	require.NoError(t, err)
	return got.Stock
}

func (f *fixture) countRedemptions(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.store.DB().Model(&model.RewardRedemption{}).Count(&n).Error)
	return n
}

func TestRedeemRejections(t *testing.T) {
	past := time.Now().Add(-24 * time.Hour)
	cases := []struct {
		name    string
		points  int64
		stock   int64
		active  bool
		expiry  *time.Time
		wantErr error
	}{
		{"not enough points", 800, 5, true, nil, ErrInsufficientPoints},
		{"out of stock", 5000, 0, true, nil, ErrOutOfStock},
		{"expired", 5000, 5, true, &past, ErrRewardUnavailable},
		{"inactive", 5000, 5, false, nil, ErrRewardUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			svc := NewRedemptionService(f.store, f.notify)
			u, p := f.nasabah(t, tc.points)
			r := f.reward(t, 1000, tc.stock, tc.active, tc.expiry)

			_, err := svc.Create(f.ctx, p, r.ID)
			require.ErrorIs(t, err, tc.wantErr)
			require.Equal(t, tc.points, f.reload(t, u).Points)
			require.Equal(t, tc.stock, f.stock(t, r))
			require.Zero(t, f.countRedemptions(t))
		})
	}
}

func TestRedeemUnknownReward(t *testing.T) {
	f := newFixture(t)
	svc := NewRedemptionService(f.store, f.notify)
	_, p := f.nasabah(t, 5000)

	_, err := svc.Create(f.ctx, p, 404)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRedeemLastUnit(t *testing.T) {
	f := newFixture(t)
	svc := NewRedemptionService(f.store, f.notify)
	u, p := f.nasabah(t, 1200)
	r := f.reward(t, 1000, 1, true, nil)

	rd, err := svc.Create(f.ctx, p, r.ID)
	require.NoError(t, err)
	require.Equal(t, model.RedemptionStatusPending, rd.Status)
	require.Equal(t, int64(1000), rd.PointsSpent)

	after := f.reload(t, u)
	require.Equal(t, int64(200), after.Points)
	require.Equal(t, model.RankBronze, after.Rank)
	require.Zero(t, f.stock(t, r))

	_, err = svc.Create(f.ctx, p, r.ID)
	require.ErrorIs(t, err, ErrOutOfStock)
	require.Equal(t, int64(200), f.reload(t, u).Points)
	require.Equal(t, int64(1), f.countRedemptions(t))
}

func TestCancelRedemptionRefundsOnce(t *testing.T) {
	f := newFixture(t)
	svc := NewRedemptionService(f.store, f.notify)
	u, p := f.nasabah(t, 1200)
	r := f.reward(t, 1000, 3, true, nil)

	rd, err := svc.Create(f.ctx, p, r.ID)
	require.NoError(t, err)

	got, err := svc.UpdateStatus(f.ctx, f.admin, rd.ID, "cancelled")
	require.NoError(t, err)
	require.Equal(t, model.RedemptionStatusCancelled, got.Status)
	require.NotNil(t, got.ProcessedAt)
	require.Equal(t, int64(1200), f.reload(t, u).Points)
	require.Equal(t, model.RankSilver, f.reload(t, u).Rank)
	require.Equal(t, int64(3), f.stock(t, r))

	_, err = svc.UpdateStatus(f.ctx, f.admin, rd.ID, "cancelled")
	require.NoError(t, err)
	_, err = svc.Cancel(f.ctx, p, rd.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1200), f.reload(t, u).Points)
	require.Equal(t, int64(3), f.stock(t, r))

	_, err = svc.UpdateStatus(f.ctx, f.admin, rd.ID, "rejected")
	require.ErrorIs(t, err, ErrInvalidStatus)
	_, err = svc.UpdateStatus(f.ctx, f.admin, rd.ID, "approved")
	require.ErrorIs(t, err, ErrInvalidStatus)
	require.Equal(t, int64(1200), f.reload(t, u).Points)
}

func TestRejectApprovedRedemptionRefunds(t *testing.T) {
	f := newFixture(t)
	svc := NewRedemptionService(f.store, f.notify)
	u, p := f.nasabah(t, 2500)
	r := f.reward(t, 1000, 2, true, nil)

	rd, err := svc.Create(f.ctx, p, r.ID)
	require.NoError(t, err)
	_, err = svc.UpdateStatus(f.ctx, f.admin, rd.ID, "approved")
	require.NoError(t, err)
	require.Equal(t, int64(1500), f.reload(t, u).Points)

	_, err = svc.Cancel(f.ctx, p, rd.ID)
	require.ErrorIs(t, err, ErrInvalidStatus)

	got, err := svc.UpdateStatus(f.ctx, f.admin, rd.ID, "rejected")
	require.NoError(t, err)
	require.Equal(t, model.RedemptionStatusRejected, got.Status)
	require.Equal(t, int64(2500), f.reload(t, u).Points)
	require.Equal(t, int64(2), f.stock(t, r))
}

func TestCompleteRedemptionKeepsEscrow(t *testing.T) {
	f := newFixture(t)
	svc := NewRedemptionService(f.store, f.notify)
	u, p := f.nasabah(t, 1000)
	r := f.reward(t, 1000, 1, true, nil)

	rd, err := svc.Create(f.ctx, p, r.ID)
	require.NoError(t, err)
	got, err := svc.UpdateStatus(f.ctx, f.admin, rd.ID, "completed")
	require.NoError(t, err)
	require.Equal(t, model.RedemptionStatusCompleted, got.Status)
	require.NotNil(t, got.ProcessedAt)
	require.Zero(t, f.reload(t, u).Points)
	require.Zero(t, f.stock(t, r))
}

func TestRedemptionAccess(t *testing.T) {
	f := newFixture(t)
	svc := NewRedemptionService(f.store, f.notify)
	_, p := f.nasabah(t, 1000)
	_, stranger := f.nasabah(t, 0)
	r := f.reward(t, 500, 5, true, nil)

	rd, err := svc.Create(f.ctx, p, r.ID)
	require.NoError(t, err)

	_, err = svc.UpdateStatus(f.ctx, p, rd.ID, "approved")
	require.ErrorIs(t, err, ErrForbidden)
	_, err = svc.UpdateStatus(f.ctx, f.admin, rd.ID, "shipped")
	require.ErrorIs(t, err, ErrInvalidStatus)
	_, err = svc.Cancel(f.ctx, stranger, rd.ID)
	require.ErrorIs(t, err, ErrForbidden)
	_, err = svc.Get(f.ctx, stranger, rd.ID)
	require.ErrorIs(t, err, ErrForbidden)
	_, err = svc.Get(f.ctx, f.admin, 999)
	require.ErrorIs(t, err, ErrNotFound)

	list, total, err := svc.List(f.ctx, stranger, "", 0, 0)
	require.NoError(t, err)
	require.Zero(t, total)
	require.Empty(t, list)
	_, total, err = svc.List(f.ctx, f.admin, "pending", 0, 0)
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
}
