package service

import (
	"testing"

	"github.com/rivalscott04/wastebank-sub000/internal/model"
	"github.com/stretchr/testify/require"
)

func TestCreateTransactionTrustsCallerPricing(t *testing.T) {
	f := newFixture(t)
	svc := NewTransactionService(f.store, f.notify, true)
	u, _ := f.nasabah(t, 0)
	cat := f.category(t, "5000", 50)

	txn, err := svc.Create(f.ctx, f.admin, CreateTransactionInput{
		UserID: u.ID,
		Items: []TransactionItemInput{
			{CategoryID: cat.ID, Weight: dec("2"), PricePerKg: dec("4000"), PointsEarned: 40},
		},
		PaymentMethod: "bank_transfer",
		Notes:         "setoran langsung",
	})
	require.NoError(t, err)
	require.True(t, dec("8000").Equal(txn.TotalAmount))
	require.Equal(t, int64(40), txn.TotalPoints)
	require.Equal(t, model.PaymentMethodBankTransfer, txn.PaymentMethod)
	require.Equal(t, model.PaymentStatusCompleted, txn.PaymentStatus)
	require.Nil(t, txn.WasteCollectionID)
	require.Equal(t, int64(40), f.reload(t, u).Points)
}

func TestCreateTransactionFromCatalog(t *testing.T) {
	f := newFixture(t)
	svc := NewTransactionService(f.store, f.notify, false)
	u, _ := f.nasabah(t, 0)
	cat := f.category(t, "5000", 50)

	txn, err := svc.Create(f.ctx, f.admin, CreateTransactionInput{
		UserID: u.ID,
		Items: []TransactionItemInput{
			{CategoryID: cat.ID, Weight: dec("2"), PricePerKg: dec("1"), PointsEarned: 9999},
		},
	})
	require.NoError(t, err)
	require.True(t, dec("10000").Equal(txn.TotalAmount))
	require.Equal(t, int64(100), txn.TotalPoints)
	require.True(t, dec("5000").Equal(txn.Items[0].PricePerKg))
	require.Equal(t, model.PaymentMethodCash, txn.PaymentMethod)
	require.Equal(t, int64(100), f.reload(t, u).Points)
}

func TestCreateTransactionUpdatesRank(t *testing.T) {
	f := newFixture(t)
	svc := NewTransactionService(f.store, f.notify, true)
	u, _ := f.nasabah(t, 900)
	cat := f.category(t, "1000", 10)

	_, err := svc.Create(f.ctx, f.admin, CreateTransactionInput{
		UserID: u.ID,
		Items:  []TransactionItemInput{{CategoryID: cat.ID, Weight: dec("10"), PricePerKg: dec("1000"), PointsEarned: 100}},
	})
	require.NoError(t, err)
	got := f.reload(t, u)
	require.Equal(t, int64(1000), got.Points)
	require.Equal(t, model.RankSilver, got.Rank)
}

func TestCreateTransactionRejects(t *testing.T) {
	f := newFixture(t)
	svc := NewTransactionService(f.store, f.notify, true)
	u, p := f.nasabah(t, 0)
	other, _ := f.nasabah(t, 0)
	cat := f.category(t, "5000", 50)
	line := []TransactionItemInput{{CategoryID: cat.ID, Weight: dec("1"), PricePerKg: dec("5000"), PointsEarned: 50}}

	_, err := svc.Create(f.ctx, p, CreateTransactionInput{UserID: u.ID, Items: line})
	require.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Create(f.ctx, f.admin, CreateTransactionInput{UserID: 999, Items: line})
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Create(f.ctx, f.admin, CreateTransactionInput{UserID: u.ID})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(f.ctx, f.admin, CreateTransactionInput{UserID: u.ID, Items: line, PaymentMethod: "cheque"})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(f.ctx, f.admin, CreateTransactionInput{UserID: u.ID, Items: line, PaymentStatus: "refunded"})
	require.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.Create(f.ctx, f.admin, CreateTransactionInput{
		UserID: u.ID,
		Items:  []TransactionItemInput{{CategoryID: cat.ID, Weight: dec("0")}},
	})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(f.ctx, f.admin, CreateTransactionInput{
		UserID: u.ID,
		Items:  []TransactionItemInput{{CategoryID: cat.ID, Weight: dec("0.001"), PricePerKg: dec("5000"), PointsEarned: 7}},
	})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(f.ctx, f.admin, CreateTransactionInput{
		UserID: u.ID,
		Items:  []TransactionItemInput{{CategoryID: 31337, Weight: dec("1")}},
	})
	require.ErrorIs(t, err, ErrValidation)

	c := f.collection(t, other.ID, item(cat.ID, "1"))
	_, err = svc.Create(f.ctx, f.admin, CreateTransactionInput{UserID: u.ID, WasteCollectionID: &c.ID, Items: line})
	require.ErrorIs(t, err, ErrValidation)

	require.Zero(t, f.countTransactions(t))
	require.Zero(t, f.reload(t, u).Points)
}

func TestCreateTransactionForConvertedCollection(t *testing.T) {
	f := newFixture(t)
	svc := NewTransactionService(f.store, f.notify, true)
	collections := NewCollectionService(f.store, f.notify)
	u, _ := f.nasabah(t, 0)
	cat := f.category(t, "5000", 50)
	c := f.collection(t, u.ID, item(cat.ID, "1"))
	_, err := collections.UpdateStatus(f.ctx, f.admin, c.ID, "completed")
	require.NoError(t, err)

	_, err = svc.Create(f.ctx, f.admin, CreateTransactionInput{
		UserID:            u.ID,
		WasteCollectionID: &c.ID,
		Items:             []TransactionItemInput{{CategoryID: cat.ID, Weight: dec("1"), PricePerKg: dec("5000"), PointsEarned: 50}},
	})
	require.ErrorIs(t, err, ErrConflict)
	require.Equal(t, int64(1), f.countTransactions(t))
	require.Equal(t, int64(50), f.reload(t, u).Points)
}

func TestUpdatePayment(t *testing.T) {
	f := newFixture(t)
	svc := NewTransactionService(f.store, f.notify, true)
	u, p := f.nasabah(t, 0)
	cat := f.category(t, "5000", 50)

	txn, err := svc.Create(f.ctx, f.admin, CreateTransactionInput{
		UserID:        u.ID,
		Items:         []TransactionItemInput{{CategoryID: cat.ID, Weight: dec("1"), PricePerKg: dec("5000"), PointsEarned: 50}},
		PaymentStatus: "pending",
	})
	require.NoError(t, err)
	require.Equal(t, model.PaymentStatusPending, txn.PaymentStatus)

	got, err := svc.UpdatePayment(f.ctx, f.admin, txn.ID, "paid")
	require.NoError(t, err)
	require.Equal(t, model.PaymentStatusCompleted, got.PaymentStatus)
	require.True(t, txn.TotalAmount.Equal(got.TotalAmount))
	require.Len(t, got.Items, 1)

	_, err = svc.UpdatePayment(f.ctx, f.admin, txn.ID, "bogus")
	require.ErrorIs(t, err, ErrInvalidStatus)
	_, err = svc.UpdatePayment(f.ctx, f.admin, 999, "completed")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = svc.UpdatePayment(f.ctx, p, txn.ID, "cancelled")
	require.ErrorIs(t, err, ErrForbidden)

	list, total, err := svc.List(f.ctx, p, "paid", 0, 0)
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Len(t, list, 1)

	_, err = svc.Get(f.ctx, p, txn.ID)
	require.NoError(t, err)
}
