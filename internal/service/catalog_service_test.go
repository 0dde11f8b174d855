package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestCategoryLifecycle(t *testing.T) {
	f := newFixture(t)
	svc := NewCategoryService(f.store.Categories)
	_, p := f.nasabah(t, 0)
	price := decimal.RequireFromString("3500.456")
	points := int64(35)

	_, err := svc.Create(f.ctx, p, CategoryInput{Name: "Kardus"})
	require.ErrorIs(t, err, ErrForbidden)

	c, err := svc.Create(f.ctx, f.admin, CategoryInput{Name: " Kardus ", PricePerKg: &price, PointsPerKg: &points})
	require.NoError(t, err)
	require.Equal(t, "Kardus", c.Name)
	require.True(t, dec("3500.46").Equal(c.Price()))

	neg := decimal.NewFromInt(-1)
	_, err = svc.Update(f.ctx, f.admin, c.ID, CategoryInput{Name: "Kardus", PricePerKg: &neg})
	require.ErrorIs(t, err, ErrValidation)

	updated, err := svc.Update(f.ctx, f.admin, c.ID, CategoryInput{Name: "Kardus Bekas"})
	require.NoError(t, err)
	require.False(t, updated.PricePerKg.Valid)
	require.Zero(t, updated.Points())

	require.NoError(t, svc.Delete(f.ctx, f.admin, c.ID))
	_, err = svc.Get(f.ctx, c.ID)
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, svc.Delete(f.ctx, f.admin, c.ID), ErrNotFound)

	list, err := svc.List(f.ctx)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestRewardVisibility(t *testing.T) {
	f := newFixture(t)
	svc := NewRewardService(f.store.Rewards)
	_, p := f.nasabah(t, 0)
	inactive := false
	expiry := time.Now().Add(72 * time.Hour)

	_, err := svc.Create(f.ctx, p, RewardInput{Name: "Pulsa", PointsRequired: 100})
	require.ErrorIs(t, err, ErrForbidden)
	_, err = svc.Create(f.ctx, f.admin, RewardInput{Name: "Pulsa", PointsRequired: 0})
	require.ErrorIs(t, err, ErrValidation)

	active, err := svc.Create(f.ctx, f.admin, RewardInput{Name: "Pulsa", PointsRequired: 1000, Stock: 5, ExpiryDate: &expiry})
	require.NoError(t, err)
	require.True(t, active.IsActive)
	hidden, err := svc.Create(f.ctx, f.admin, RewardInput{Name: "Tas", PointsRequired: 500, Stock: 1, IsActive: &inactive})
	require.NoError(t, err)
	require.False(t, hidden.IsActive)

	list, err := svc.List(f.ctx, p)
	require.NoError(t, err)
	require.Len(t, list, 1)
	list, err = svc.List(f.ctx, f.admin)
	require.NoError(t, err)
	require.Len(t, list, 2)

	_, err = svc.Get(f.ctx, p, hidden.ID)
	require.ErrorIs(t, err, ErrNotFound)
	_, err = svc.Get(f.ctx, f.admin, hidden.ID)
	require.NoError(t, err)

	upd, err := svc.Update(f.ctx, f.admin, active.ID, RewardInput{Name: "Pulsa 10rb", PointsRequired: 1000, Stock: 0})
	require.NoError(t, err)
	require.Zero(t, upd.Stock)
	require.True(t, upd.IsActive)
}
