package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rivalscott04/wastebank-sub000/internal/model"
	"github.com/rivalscott04/wastebank-sub000/internal/service"
	"github.com/shopspring/decimal"
)

type CategoryHandler struct {
	svc service.CategoryService
}

func NewCategoryHandler(svc service.CategoryService) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

type categoryRequest struct {
	Name        string           `json:"name" validate:"required,max=120"`
	Description string           `json:"description"`
	PricePerKg  *decimal.Decimal `json:"price_per_kg"`
	PointsPerKg *int64           `json:"points_per_kg" validate:"omitempty,gte=0"`
}

func (r categoryRequest) input() service.CategoryInput {
	return service.CategoryInput{
		Name:        r.Name,
		Description: r.Description,
		PricePerKg:  r.PricePerKg,
		PointsPerKg: r.PointsPerKg,
	}
}

type CategoryResponse struct {
	ID          uint64           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	PricePerKg  *decimal.Decimal `json:"price_per_kg"`
	PointsPerKg *int64           `json:"points_per_kg"`
	CreatedAt   string           `json:"created_at"`
	UpdatedAt   string           `json:"updated_at"`
}

func toCategoryResponse(cat *model.WasteCategory) CategoryResponse {
	var price *decimal.Decimal
	if cat.PricePerKg.Valid {
		v := cat.PricePerKg.Decimal
		price = &v
	}
	return CategoryResponse{
		ID:          cat.ID,
		Name:        cat.Name,
		Description: cat.Description,
		PricePerKg:  price,
		PointsPerKg: cat.PointsPerKg,
		CreatedAt:   cat.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   cat.UpdatedAt.Format(time.RFC3339),
	}
}

func (h *CategoryHandler) List(c echo.Context) error {
	list, err := h.svc.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	resp := make([]CategoryResponse, 0, len(list))
	for i := range list {
		resp = append(resp, toCategoryResponse(&list[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *CategoryHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid category id"))
	}
	cat, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toCategoryResponse(cat))
}

func (h *CategoryHandler) Create(c echo.Context) error {
	p, ok := principal(c)
	if !ok {
		return unauthorized(c)
	}
	var req categoryRequest
	if msg := bindAndValidate(c, &req); msg != "" {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", msg))
	}
	cat, err := h.svc.Create(c.Request().Context(), p, req.input())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, toCategoryResponse(cat))
}

func (h *CategoryHandler) Update(c echo.Context) error {
	p, ok := principal(c)
	if !ok {
		return unauthorized(c)
	}
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid category id"))
	}
	var req categoryRequest
	if msg := bindAndValidate(c, &req); msg != "" {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", msg))
	}
	cat, err := h.svc.Update(c.Request().Context(), p, id, req.input())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toCategoryResponse(cat))
}

func (h *CategoryHandler) Delete(c echo.Context) error {
	p, ok := principal(c)
	if !ok {
		return unauthorized(c)
	}
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid category id"))
	}
	if err := h.svc.Delete(c.Request().Context(), p, id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
