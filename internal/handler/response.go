package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rivalscott04/wastebank-sub000/internal/model"
	"github.com/rivalscott04/wastebank-sub000/internal/reqctx"
	"github.com/rivalscott04/wastebank-sub000/internal/service"
	"go.uber.org/zap"
)

type errorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error errorPayload `json:"error"`
}

func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		Error: errorPayload{
			Code:    code,
			Message: message,
		},
	}
}

type ListResponse[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
}

// respondError maps service errors onto status codes. Anything unknown is
// logged and reported as a bare 500.
func respondError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", err.Error()))
	case errors.Is(err, service.ErrForbidden):
		return c.JSON(http.StatusForbidden, NewErrorResponse("forbidden", "not allowed"))
	case errors.Is(err, service.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("invalid_credentials", "email or password is incorrect"))
	case errors.Is(err, service.ErrConflict):
		return c.JSON(http.StatusConflict, NewErrorResponse("conflict", err.Error()))
	case errors.Is(err, service.ErrInvalidStatus):
		return c.JSON(http.StatusBadRequest, NewErrorResponse("invalid_status", err.Error()))
	case errors.Is(err, service.ErrInsufficientPoints):
		return c.JSON(http.StatusBadRequest, NewErrorResponse("insufficient_points", err.Error()))
	case errors.Is(err, service.ErrOutOfStock):
		return c.JSON(http.StatusBadRequest, NewErrorResponse("out_of_stock", err.Error()))
	case errors.Is(err, service.ErrRewardUnavailable):
		return c.JSON(http.StatusBadRequest, NewErrorResponse("reward_unavailable", err.Error()))
	case errors.Is(err, service.ErrValidation):
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	reqctx.Logger(c.Request().Context()).Error("request failed",
		zap.String("method", c.Request().Method),
		zap.String("path", c.Path()),
		zap.Error(err))
	return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "internal server error"))
}

func principal(c echo.Context) (service.Principal, bool) {
	uid, _ := c.Get("uid").(uint64)
	if uid == 0 {
		return service.Principal{}, false
	}
	role, _ := c.Get("role").(string)
	return service.Principal{UserID: uid, Role: model.Role(role)}, true
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
}

func parseID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}

func paging(c echo.Context) (int, int) {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	return limit, offset
}
