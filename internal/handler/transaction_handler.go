package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rivalscott04/wastebank-sub000/internal/model"
	"github.com/rivalscott04/wastebank-sub000/internal/service"
	"github.com/shopspring/decimal"
)

type TransactionHandler struct {
	svc service.TransactionService
}

func NewTransactionHandler(svc service.TransactionService) *TransactionHandler {
	return &TransactionHandler{svc: svc}
}

type transactionItemRequest struct {
	CategoryID   uint64          `json:"category_id" validate:"required"`
	Weight       decimal.Decimal `json:"weight"`
	PricePerKg   decimal.Decimal `json:"price_per_kg"`
	PointsEarned int64           `json:"points_earned"`
}

type createTransactionRequest struct {
	UserID            uint64                   `json:"user_id" validate:"required"`
	WasteCollectionID *uint64                  `json:"waste_collection_id"`
	Items             []transactionItemRequest `json:"items" validate:"required,min=1,dive"`
	PaymentMethod     string                   `json:"payment_method"`
	PaymentStatus     string                   `json:"payment_status"`
	Notes             string                   `json:"notes" validate:"max=2000"`
}

type paymentRequest struct {
	PaymentStatus string `json:"payment_status" validate:"required"`
}

type TransactionItemResponse struct {
	ID           uint64          `json:"id"`
	CategoryID   uint64          `json:"category_id"`
	Weight       decimal.Decimal `json:"weight"`
	PricePerKg   decimal.Decimal `json:"price_per_kg"`
	PointsEarned int64           `json:"points_earned"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

type TransactionResponse struct {
	ID                uint64                    `json:"id"`
	UserID            uint64                    `json:"user_id"`
	WasteCollectionID *uint64                   `json:"waste_collection_id"`
	TotalAmount       decimal.Decimal           `json:"total_amount"`
	TotalWeight       decimal.Decimal           `json:"total_weight"`
	TotalPoints       int64                     `json:"total_points"`
	PaymentMethod     string                    `json:"payment_method"`
	PaymentStatus     string                    `json:"payment_status"`
	Notes             string                    `json:"notes"`
	Items             []TransactionItemResponse `json:"items"`
	CreatedAt         string                    `json:"created_at"`
	UpdatedAt         string                    `json:"updated_at"`
}

func toTransactionResponse(t *model.Transaction) TransactionResponse {
	items := make([]TransactionItemResponse, 0, len(t.Items))
	for _, it := range t.Items {
		items = append(items, TransactionItemResponse{
			ID:           it.ID,
			CategoryID:   it.CategoryID,
			Weight:       it.Weight,
			PricePerKg:   it.PricePerKg,
			PointsEarned: it.PointsEarned,
			Subtotal:     it.Subtotal,
		})
	}
	status := t.PaymentStatus
	if norm, ok := model.NormalizePaymentStatus(string(status)); ok {
		status = norm
	}
	return TransactionResponse{
		ID:                t.ID,
		UserID:            t.UserID,
		WasteCollectionID: t.WasteCollectionID,
		TotalAmount:       t.TotalAmount,
		TotalWeight:       t.TotalWeight,
		TotalPoints:       t.TotalPoints,
		PaymentMethod:     string(t.PaymentMethod),
		PaymentStatus:     string(status),
		Notes:             t.Notes,
		Items:             items,
		CreatedAt:         t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         t.UpdatedAt.Format(time.RFC3339),
	}
}

func (h *TransactionHandler) Create(c echo.Context) error {
	p, ok := principal(c)
	if !ok {
		return unauthorized(c)
	}
	var req createTransactionRequest
	if msg := bindAndValidate(c, &req); msg != "" {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", msg))
	}
	in := service.CreateTransactionInput{
		UserID:            req.UserID,
		WasteCollectionID: req.WasteCollectionID,
		PaymentMethod:     req.PaymentMethod,
		PaymentStatus:     req.PaymentStatus,
		Notes:             req.Notes,
	}
	for _, it := range req.Items {
		in.Items = append(in.Items, service.TransactionItemInput{
			CategoryID:   it.CategoryID,
			Weight:       it.Weight,
			PricePerKg:   it.PricePerKg,
			PointsEarned: it.PointsEarned,
		})
	}
	t, err := h.svc.Create(c.Request().Context(), p, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, toTransactionResponse(t))
}

func (h *TransactionHandler) UpdatePayment(c echo.Context) error {
	p, ok := principal(c)
	if !ok {
		return unauthorized(c)
	}
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid transaction id"))
	}
	var req paymentRequest
	if msg := bindAndValidate(c, &req); msg != "" {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", msg))
	}
	t, err := h.svc.UpdatePayment(c.Request().Context(), p, id, req.PaymentStatus)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toTransactionResponse(t))
}

func (h *TransactionHandler) Get(c echo.Context) error {
	p, ok := principal(c)
	if !ok {
		return unauthorized(c)
	}
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid transaction id"))
	}
	t, err := h.svc.Get(c.Request().Context(), p, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toTransactionResponse(t))
}

func (h *TransactionHandler) List(c echo.Context) error {
	p, ok := principal(c)
	if !ok {
		return unauthorized(c)
	}
	limit, offset := paging(c)
	list, total, err := h.svc.List(c.Request().Context(), p, c.QueryParam("payment_status"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	resp := make([]TransactionResponse, 0, len(list))
	for i := range list {
		resp = append(resp, toTransactionResponse(&list[i]))
	}
	return c.JSON(http.StatusOK, ListResponse[TransactionResponse]{Items: resp, Total: total})
}
