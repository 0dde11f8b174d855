package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rivalscott04/wastebank-sub000/internal/model"
	"github.com/rivalscott04/wastebank-sub000/internal/service"
)

type RedemptionHandler struct {
	svc service.RedemptionService
}

func NewRedemptionHandler(svc service.RedemptionService) *RedemptionHandler {
	return &RedemptionHandler{svc: svc}
}

type redeemRequest struct {
	RewardID uint64 `json:"reward_id" validate:"required"`
}

type RedemptionResponse struct {
	ID          uint64  `json:"id"`
	UserID      uint64  `json:"user_id"`
	RewardID    uint64  `json:"reward_id"`
	PointsSpent int64   `json:"points_spent"`
	Status      string  `json:"status"`
	ProcessedAt *string `json:"processed_at"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

func toRedemptionResponse(r *model.RewardRedemption) RedemptionResponse {
	var processedAt *string
	if r.ProcessedAt != nil {
		val := r.ProcessedAt.Format(time.RFC3339)
		processedAt = &val
	}
	return RedemptionResponse{
		ID:          r.ID,
		UserID:      r.UserID,
		RewardID:    r.RewardID,
		PointsSpent: r.PointsSpent,
		Status:      string(r.Status),
		ProcessedAt: processedAt,
		CreatedAt:   r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   r.UpdatedAt.Format(time.RFC3339),
	}
}

func (h *RedemptionHandler) Create(c echo.Context) error {
	p, ok := principal(c)
	if !ok {
		return unauthorized(c)
	}
	var req redeemRequest
	if msg := bindAndValidate(c, &req); msg != "" {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", msg))
	}
	r, err := h.svc.Create(c.Request().Context(), p, req.RewardID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, toRedemptionResponse(r))
}

func (h *RedemptionHandler) Get(c echo.Context) error {
	p, ok := principal(c)
	if !ok {
		return unauthorized(c)
	}
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid redemption id"))
	}
	r, err := h.svc.Get(c.Request().Context(), p, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toRedemptionResponse(r))
}

func (h *RedemptionHandler) List(c echo.Context) error {
	p, ok := principal(c)
	if !ok {
		return unauthorized(c)
	}
	limit, offset := paging(c)
	list, total, err := h.svc.List(c.Request().Context(), p, c.QueryParam("status"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	resp := make([]RedemptionResponse, 0, len(list))
	for i := range list {
		resp = append(resp, toRedemptionResponse(&list[i]))
	}
	return c.JSON(http.StatusOK, ListResponse[RedemptionResponse]{Items: resp, Total: total})
}

func (h *RedemptionHandler) UpdateStatus(c echo.Context) error {
	p, ok := principal(c)
	if !ok {
		return unauthorized(c)
	}
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid redemption id"))
	}
	var req statusRequest
	if msg := bindAndValidate(c, &req); msg != "" {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", msg))
	}
	r, err := h.svc.UpdateStatus(c.Request().Context(), p, id, req.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toRedemptionResponse(r))
}

func (h *RedemptionHandler) Cancel(c echo.Context) error {
	p, ok := principal(c)
	if !ok {
		return unauthorized(c)
	}
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid redemption id"))
	}
	r, err := h.svc.Cancel(c.Request().Context(), p, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toRedemptionResponse(r))
}
