package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rivalscott04/wastebank-sub000/internal/model"
	"github.com/rivalscott04/wastebank-sub000/internal/service"
)

type RewardHandler struct {
	svc service.RewardService
}

func NewRewardHandler(svc service.RewardService) *RewardHandler {
	return &RewardHandler{svc: svc}
}

type rewardRequest struct {
	Name           string     `json:"name" validate:"required,max=120"`
	Description    string     `json:"description"`
	PointsRequired int64      `json:"points_required" validate:"gt=0"`
	Stock          int64      `json:"stock" validate:"gte=0"`
	IsActive       *bool      `json:"is_active"`
	ExpiryDate     *time.Time `json:"expiry_date"`
}

func (r rewardRequest) input() service.RewardInput {
	return service.RewardInput{
		Name:           r.Name,
		Description:    r.Description,
		PointsRequired: r.PointsRequired,
		Stock:          r.Stock,
		IsActive:       r.IsActive,
		ExpiryDate:     r.ExpiryDate,
	}
}

type RewardResponse struct {
	ID             uint64  `json:"id"`
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	PointsRequired int64   `json:"points_required"`
	Stock          int64   `json:"stock"`
	IsActive       bool    `json:"is_active"`
	ExpiryDate     *string `json:"expiry_date"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

func toRewardResponse(r *model.Reward) RewardResponse {
	var expiry *string
	if r.ExpiryDate != nil {
		val := r.ExpiryDate.Format(time.RFC3339)
		expiry = &val
	}
	return RewardResponse{
		ID:             r.ID,
		Name:           r.Name,
		Description:    r.Description,
		PointsRequired: r.PointsRequired,
		Stock:          r.Stock,
		IsActive:       r.IsActive,
		ExpiryDate:     expiry,
		CreatedAt:      r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      r.UpdatedAt.Format(time.RFC3339),
	}
}

func (h *RewardHandler) List(c echo.Context) error {
	p, ok := principal(c)
	if !ok {
		return unauthorized(c)
	}
	list, err := h.svc.List(c.Request().Context(), p)
	if err != nil {
		return respondError(c, err)
	}
	resp := make([]RewardResponse, 0, len(list))
	for i := range list {
		resp = append(resp, toRewardResponse(&list[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *RewardHandler) Get(c echo.Context) error {
	p, ok := principal(c)
	if !ok {
		return unauthorized(c)
	}
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid reward id"))
	}
	r, err := h.svc.Get(c.Request().Context(), p, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toRewardResponse(r))
}

func (h *RewardHandler) Create(c echo.Context) error {
	p, ok := principal(c)
	if !ok {
		return unauthorized(c)
	}
	var req rewardRequest
	if msg := bindAndValidate(c, &req); msg != "" {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", msg))
	}
	r, err := h.svc.Create(c.Request().Context(), p, req.input())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, toRewardResponse(r))
}

func (h *RewardHandler) Update(c echo.Context) error {
	p, ok := principal(c)
	if !ok {
		return unauthorized(c)
	}
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid reward id"))
	}
	var req rewardRequest
	if msg := bindAndValidate(c, &req); msg != "" {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", msg))
	}
	r, err := h.svc.Update(c.Request().Context(), p, id, req.input())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toRewardResponse(r))
}
