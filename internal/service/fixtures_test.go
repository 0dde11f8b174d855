package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rivalscott04/wastebank-sub000/internal/model"
	"github.com/rivalscott04/wastebank-sub000/internal/repository"
	"github.com/rivalscott04/wastebank-sub000/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	ctx    context.Context
	store  *repository.Store
	notify NotificationService
	admin  Principal
	seq    int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := repository.NewStore(testutil.NewDB(t))
	f := &fixture{
		ctx:    context.Background(),
		store:  store,
		notify: NewNotificationService(store.Notifications),
	}
	admin := f.user(t, model.RoleAdmin, 0)
	f.admin = Principal{UserID: admin.ID, Role: model.RoleAdmin}
	return f
}

func (f *fixture) user(t *testing.T, role model.Role, points int64) *model.User {
	t.Helper()
	f.seq++
	u := &model.User{
		Name:         fmt.Sprintf("user %d", f.seq),
		Email:        fmt.Sprintf("user%d@example.com", f.seq),
		PasswordHash: "x",
		Role:         role,
		Points:       points,
		Rank:         model.RankFor(points),
	}
	require.NoError(t, f.store.Users.Create(f.ctx, u))
	return u
}

func (f *fixture) nasabah(t *testing.T, points int64) (*model.User, Principal) {
	t.Helper()
	u := f.user(t, model.RoleNasabah, points)
	return u, Principal{UserID: u.ID, Role: model.RoleNasabah}
}

func (f *fixture) category(t *testing.T, price string, points int64) *model.WasteCategory {
	t.Helper()
	f.seq++
	c := &model.WasteCategory{
		Name:        fmt.Sprintf("category %d", f.seq),
		PricePerKg:  decimal.NewNullDecimal(decimal.RequireFromString(price)),
		PointsPerKg: &points,
	}
	require.NoError(t, f.store.Categories.Create(f.ctx, c))
	return c
}

func (f *fixture) collection(t *testing.T, userID uint64, items ...model.WasteCollectionItem) *model.WasteCollection {
	t.Helper()
	c := &model.WasteCollection{
		UserID:        userID,
		PickupAddress: "Jl. Melati 1",
		PickupDate:    time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC),
		Status:        model.CollectionStatusPending,
		Items:         items,
	}
	require.NoError(t, f.store.Collections.Create(f.ctx, c))
	return c
}

func (f *fixture) reward(t *testing.T, required, stock int64, active bool, expiry *time.Time) *model.Reward {
	t.Helper()
	f.seq++
	r := &model.Reward{
		Name:           fmt.Sprintf("reward %d", f.seq),
		PointsRequired: required,
		Stock:          stock,
		IsActive:       active,
		ExpiryDate:     expiry,
	}
	require.NoError(t, f.store.Rewards.Create(f.ctx, r))
	return r
}

func (f *fixture) reload(t *testing.T, u *model.User) *model.User {
	t.Helper()
	got, err := f.store.Users.FindByID(f.ctx, u.ID)
	require.NoError(t, err)
	return got
}

func (f *fixture) countTransactions(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.store.DB().Model(&model.Transaction{}).Count(&n).Error)
	return n
}

func item(categoryID uint64, weight string) model.WasteCollectionItem {
	return model.WasteCollectionItem{CategoryID: categoryID, EstimatedWeight: decimal.RequireFromString(weight)}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
