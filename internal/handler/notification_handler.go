package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rivalscott04/wastebank-sub000/internal/model"
	"github.com/rivalscott04/wastebank-sub000/internal/repository"
	"github.com/rivalscott04/wastebank-sub000/internal/service"
)

type NotificationHandler struct {
	svc service.NotificationService
}

func NewNotificationHandler(svc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

type NotificationResponse struct {
	ID            uint64  `json:"id"`
	Type          string  `json:"type"`
	Title         string  `json:"title"`
	Body          string  `json:"body"`
	CollectionID  *uint64 `json:"collection_id,omitempty"`
	TransactionID *uint64 `json:"transaction_id,omitempty"`
	RedemptionID  *uint64 `json:"redemption_id,omitempty"`
	Read          bool    `json:"read"`
	CreatedAt     string  `json:"created_at"`
}

func toNotificationResponse(n model.Notification) NotificationResponse {
	return NotificationResponse{
		ID:            n.ID,
		Type:          n.Type,
		Title:         n.Title,
		Body:          n.Body,
		CollectionID:  n.CollectionID,
		TransactionID: n.TransactionID,
		RedemptionID:  n.RedemptionID,
		Read:          n.ReadAt != nil,
		CreatedAt:     n.CreatedAt.Format(time.RFC3339),
	}
}

// notificationFilter reads type, collection_id and redemption_id from the query.
func notificationFilter(c echo.Context, userID uint64) (repository.NotificationFilter, string) {
	f := repository.NotificationFilter{UserID: userID, Type: c.QueryParam("type")}
	for name, dst := range map[string]*uint64{
		"collection_id": &f.CollectionID,
		"redemption_id": &f.RedemptionID,
	} {
		raw := c.QueryParam(name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || v == 0 {
			return f, "invalid " + name
		}
		*dst = v
	}
	return f, ""
}

func (h *NotificationHandler) List(c echo.Context) error {
	p, ok := principal(c)
	if !ok {
		return unauthorized(c)
	}
	f, msg := notificationFilter(c, p.UserID)
	if msg != "" {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", msg))
	}
	f.UnreadOnly = c.QueryParam("unread_only") != "false"
	limit := 20
	if lStr := c.QueryParam("limit"); lStr != "" {
		if lParsed, err := strconv.Atoi(lStr); err == nil && lParsed > 0 {
			limit = lParsed
		}
	}
	list, unreadCount, err := h.svc.List(c.Request().Context(), f, limit)
	if err != nil {
		return respondError(c, err)
	}
	resp := make([]NotificationResponse, 0, len(list))
	for _, n := range list {
		resp = append(resp, toNotificationResponse(n))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"notifications": resp,
		"unread_count":  unreadCount,
	})
}

// MarkRead accepts the same filters as List; without any it clears the inbox.
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	p, ok := principal(c)
	if !ok {
		return unauthorized(c)
	}
	f, msg := notificationFilter(c, p.UserID)
	if msg != "" {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", msg))
	}
	n, err := h.svc.MarkRead(c.Request().Context(), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"status": "ok", "marked": n})
}
