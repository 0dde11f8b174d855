package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rivalscott04/wastebank-sub000/internal/config"
	"github.com/rivalscott04/wastebank-sub000/internal/handler"
	"github.com/rivalscott04/wastebank-sub000/internal/model"
	"github.com/rivalscott04/wastebank-sub000/internal/repository"
	"github.com/rivalscott04/wastebank-sub000/internal/service"
	"github.com/rivalscott04/wastebank-sub000/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type api struct {
	t   *testing.T
	srv *Server
}

func (a *api) call(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.srv.ServeHTTP(w, req)
	return w
}

func (a *api) decode(w *httptest.ResponseRecorder, want int, out interface{}) {
	a.t.Helper()
	require.Equal(a.t, want, w.Code, w.Body.String())
	if out != nil {
		require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), out))
	}
}

func (a *api) login(email, password string) string {
	a.t.Helper()
	var tok handler.TokenResponse
	a.decode(a.call(http.MethodPost, "/api/auth/login", "", map[string]string{"email": email, "password": password}), http.StatusOK, &tok)
	require.NotEmpty(a.t, tok.Token)
	return tok.Token
}

func setup(t *testing.T) (*api, string) {
	t.Helper()
	gdb := testutil.NewDB(t)
	cfg := &config.Config{JWTSecret: "test-secret", JWTTTL: time.Hour, TrustCallerPricing: true, GitSHA: "abc123"}
	a := &api{t: t, srv: New(gdb, cfg)}

	users := service.NewUserService(repository.NewStore(gdb).Users)
	_, err := users.Register(context.Background(), service.RegisterInput{
		Name: "Admin", Email: "admin@example.com", Password: "admin-pass-1", Role: model.RoleAdmin,
	})
	require.NoError(t, err)
	return a, a.login("admin@example.com", "admin-pass-1")
}

func TestHealthz(t *testing.T) {
	a, _ := setup(t)
	var body map[string]string
	a.decode(a.call(http.MethodGet, "/healthz", "", nil), http.StatusOK, &body)
	require.Equal(t, "abc123", body["git_sha"])
}

func TestAuthRequired(t *testing.T) {
	a, _ := setup(t)
	w := a.call(http.MethodGet, "/api/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	w = a.call(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "admin@example.com", "password": "nope-nope"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPickupToRedemptionFlow(t *testing.T) {
	a, admin := setup(t)

	var me handler.UserResponse
	a.decode(a.call(http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Siti", "email": "siti@example.com", "password": "rahasia123",
	}), http.StatusCreated, &me)
	require.Equal(t, "nasabah", me.Role)
	siti := a.login("siti@example.com", "rahasia123")

	var cat handler.CategoryResponse
	a.decode(a.call(http.MethodPost, "/api/waste-categories", siti, map[string]interface{}{"name": "Plastik"}), http.StatusForbidden, nil)
	a.decode(a.call(http.MethodPost, "/api/waste-categories", admin, map[string]interface{}{
		"name": "Plastik PET", "price_per_kg": 5000, "points_per_kg": 50,
	}), http.StatusCreated, &cat)

	var wc handler.CollectionResponse
	a.decode(a.call(http.MethodPost, "/api/waste-collections", siti, map[string]interface{}{
		"pickup_address": "Jl. Melati 1",
		"pickup_date":    "2026-10-20",
		"items":          []map[string]interface{}{{"category_id": cat.ID, "estimated_weight": 3.0}},
	}), http.StatusCreated, &wc)
	require.Equal(t, "pending", wc.Status)

	statusPath := fmt.Sprintf("/api/waste-collections/%d/status", wc.ID)
	a.decode(a.call(http.MethodPatch, statusPath, siti, map[string]string{"status": "completed"}), http.StatusForbidden, nil)
	a.decode(a.call(http.MethodPatch, statusPath, admin, map[string]string{"status": "finished"}), http.StatusBadRequest, nil)
	a.decode(a.call(http.MethodPatch, "/api/waste-collections/999/status", admin, map[string]string{"status": "completed"}), http.StatusNotFound, nil)

	var change handler.StatusChangeResponse
	a.decode(a.call(http.MethodPatch, statusPath, admin, map[string]string{"status": "completed"}), http.StatusOK, &change)
	require.True(t, change.Converted)
	require.Equal(t, "completed", change.Collection.Status)
	require.NotNil(t, change.Transaction)
	require.True(t, decimal.NewFromInt(15000).Equal(change.Transaction.TotalAmount))
	require.Equal(t, int64(150), change.Transaction.TotalPoints)

	a.decode(a.call(http.MethodGet, "/api/me", siti, nil), http.StatusOK, &me)
	require.Equal(t, int64(150), me.Points)
	require.Equal(t, model.RankBronze, me.Rank)

	var txn handler.TransactionResponse
	a.decode(a.call(http.MethodPatch, fmt.Sprintf("/api/transactions/%d/payment", change.Transaction.ID), admin,
		map[string]string{"payment_status": "paid"}), http.StatusOK, &txn)
	require.Equal(t, "completed", txn.PaymentStatus)

	var reward handler.RewardResponse
	a.decode(a.call(http.MethodPost, "/api/rewards", admin, map[string]interface{}{
		"name": "Tas Kain", "points_required": 100, "stock": 1,
	}), http.StatusCreated, &reward)

	var rd handler.RedemptionResponse
	a.decode(a.call(http.MethodPost, "/api/reward-redemptions", siti, map[string]uint64{"reward_id": reward.ID}), http.StatusCreated, &rd)
	require.Equal(t, "pending", rd.Status)

	var errBody handler.ErrorResponse
	a.decode(a.call(http.MethodPost, "/api/reward-redemptions", siti, map[string]uint64{"reward_id": reward.ID}), http.StatusBadRequest, &errBody)
	require.Equal(t, "out_of_stock", errBody.Error.Code)

	a.decode(a.call(http.MethodPatch, fmt.Sprintf("/api/reward-redemptions/%d/status", rd.ID), siti,
		map[string]string{"status": "approved"}), http.StatusForbidden, nil)
	a.decode(a.call(http.MethodPost, fmt.Sprintf("/api/reward-redemptions/%d/cancel", rd.ID), siti, nil), http.StatusOK, &rd)
	require.Equal(t, "cancelled", rd.Status)

	a.decode(a.call(http.MethodGet, "/api/me", siti, nil), http.StatusOK, &me)
	require.Equal(t, int64(150), me.Points)

	var notes struct {
		Notifications []handler.NotificationResponse `json:"notifications"`
		UnreadCount   int64                          `json:"unread_count"`
	}
	a.decode(a.call(http.MethodGet, "/api/notifications", siti, nil), http.StatusOK, &notes)
	require.NotZero(t, notes.UnreadCount)
	a.decode(a.call(http.MethodGet, "/api/notifications?type=transaction", siti, nil), http.StatusOK, &notes)
	require.NotEmpty(t, notes.Notifications)
	for _, n := range notes.Notifications {
		require.Equal(t, "transaction", n.Type)
	}
	a.decode(a.call(http.MethodGet, "/api/notifications?type=promo", siti, nil), http.StatusBadRequest, nil)
	a.decode(a.call(http.MethodGet, "/api/notifications?collection_id=abc", siti, nil), http.StatusBadRequest, nil)
	a.decode(a.call(http.MethodPost, "/api/notifications/read", siti, nil), http.StatusOK, nil)
	a.decode(a.call(http.MethodGet, "/api/notifications", siti, nil), http.StatusOK, &notes)
	require.Zero(t, notes.UnreadCount)
}

func TestManualTransactionValidation(t *testing.T) {
	a, admin := setup(t)

	a.decode(a.call(http.MethodPost, "/api/transactions", admin, map[string]interface{}{
		"user_id": 1,
	}), http.StatusBadRequest, nil)

	var list handler.ListResponse[handler.TransactionResponse]
	a.decode(a.call(http.MethodGet, "/api/transactions?payment_status=paid", admin, nil), http.StatusOK, &list)
	require.Zero(t, list.Total)
}
