package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rivalscott04/wastebank-sub000/internal/model"
	"github.com/rivalscott04/wastebank-sub000/internal/service"
	"github.com/shopspring/decimal"
)

type CollectionHandler struct {
	svc service.CollectionService
}

func NewCollectionHandler(svc service.CollectionService) *CollectionHandler {
	return &CollectionHandler{svc: svc}
}

type collectionItemRequest struct {
	CategoryID      uint64          `json:"category_id" validate:"required"`
	EstimatedWeight decimal.Decimal `json:"estimated_weight"`
}

type createCollectionRequest struct {
	PickupAddress  string                  `json:"pickup_address" validate:"required"`
	PickupDate     string                  `json:"pickup_date" validate:"required"`
	PickupTimeSlot string                  `json:"pickup_time_slot" validate:"max=32"`
	Notes          string                  `json:"notes" validate:"max=2000"`
	Items          []collectionItemRequest `json:"items" validate:"required,min=1,dive"`
}

type statusRequest struct {
	Status string `json:"status" validate:"required"`
}

type CollectionItemResponse struct {
	ID              uint64           `json:"id"`
	CategoryID      uint64           `json:"category_id"`
	EstimatedWeight decimal.Decimal  `json:"estimated_weight"`
	ActualWeight    *decimal.Decimal `json:"actual_weight"`
}

type CollectionResponse struct {
	ID              uint64                   `json:"id"`
	UserID          uint64                   `json:"user_id"`
	PickupAddress   string                   `json:"pickup_address"`
	PickupDate      string                   `json:"pickup_date"`
	PickupTimeSlot  string                   `json:"pickup_time_slot"`
	Status          string                   `json:"status"`
	Notes           string                   `json:"notes"`
	AssignedStaffID *uint64                  `json:"assigned_staff_id"`
	Items           []CollectionItemResponse `json:"items"`
	CreatedAt       string                   `json:"created_at"`
	UpdatedAt       string                   `json:"updated_at"`
}

type StatusChangeResponse struct {
	Collection  CollectionResponse   `json:"collection"`
	Transaction *TransactionResponse `json:"transaction,omitempty"`
	Converted   bool                 `json:"converted"`
}

const dateLayout = "2006-01-02"

func parsePickupDate(s string) (time.Time, bool) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func toCollectionResponse(wc *model.WasteCollection) CollectionResponse {
	items := make([]CollectionItemResponse, 0, len(wc.Items))
	for _, it := range wc.Items {
		var actual *decimal.Decimal
		if it.ActualWeight.Valid {
			v := it.ActualWeight.Decimal
			actual = &v
		}
		items = append(items, CollectionItemResponse{
			ID:              it.ID,
			CategoryID:      it.CategoryID,
			EstimatedWeight: it.EstimatedWeight,
			ActualWeight:    actual,
		})
	}
	return CollectionResponse{
		ID:              wc.ID,
		UserID:          wc.UserID,
		PickupAddress:   wc.PickupAddress,
		PickupDate:      wc.PickupDate.Format(dateLayout),
		PickupTimeSlot:  wc.PickupTimeSlot,
		Status:          string(wc.Status),
		Notes:           wc.Notes,
		AssignedStaffID: wc.AssignedStaffID,
		Items:           items,
		CreatedAt:       wc.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       wc.UpdatedAt.Format(time.RFC3339),
	}
}

func (h *CollectionHandler) Create(c echo.Context) error {
	p, ok := principal(c)
	if !ok {
		return unauthorized(c)
	}
	var req createCollectionRequest
	if msg := bindAndValidate(c, &req); msg != "" {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", msg))
	}
	date, ok := parsePickupDate(req.PickupDate)
	if !ok {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "pickup_date must be YYYY-MM-DD"))
	}
	in := service.CreateCollectionInput{
		PickupAddress:  req.PickupAddress,
		PickupDate:     date,
		PickupTimeSlot: req.PickupTimeSlot,
		Notes:          req.Notes,
	}
	for _, it := range req.Items {
		in.Items = append(in.Items, service.CollectionItemInput{
			CategoryID:      it.CategoryID,
			EstimatedWeight: it.EstimatedWeight,
		})
	}
	wc, err := h.svc.Create(c.Request().Context(), p, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, toCollectionResponse(wc))
}

func (h *CollectionHandler) Get(c echo.Context) error {
	p, ok := principal(c)
	if !ok {
		return unauthorized(c)
	}
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid collection id"))
	}
	wc, err := h.svc.Get(c.Request().Context(), p, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toCollectionResponse(wc))
}

func (h *CollectionHandler) List(c echo.Context) error {
	p, ok := principal(c)
	if !ok {
		return unauthorized(c)
	}
	limit, offset := paging(c)
	list, total, err := h.svc.List(c.Request().Context(), p, c.QueryParam("status"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	resp := make([]CollectionResponse, 0, len(list))
	for i := range list {
		resp = append(resp, toCollectionResponse(&list[i]))
	}
	return c.JSON(http.StatusOK, ListResponse[CollectionResponse]{Items: resp, Total: total})
}

// UpdateStatus is the admin transition. Completing a collection converts it
// into a transaction in the same request.
func (h *CollectionHandler) UpdateStatus(c echo.Context) error {
	p, ok := principal(c)
	if !ok {
		return unauthorized(c)
	}
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid collection id"))
	}
	var req statusRequest
	if msg := bindAndValidate(c, &req); msg != "" {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", msg))
	}
	change, err := h.svc.UpdateStatus(c.Request().Context(), p, id, req.Status)
	if err != nil {
		return respondError(c, err)
	}
	resp := StatusChangeResponse{
		Collection: toCollectionResponse(change.Collection),
		Converted:  change.Converted,
	}
	if change.Transaction != nil {
		t := toTransactionResponse(change.Transaction)
		resp.Transaction = &t
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *CollectionHandler) Cancel(c echo.Context) error {
	p, ok := principal(c)
	if !ok {
		return unauthorized(c)
	}
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid collection id"))
	}
	wc, err := h.svc.Cancel(c.Request().Context(), p, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toCollectionResponse(wc))
}
