package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/rivalscott04/wastebank-sub000/internal/reqctx"
)

// RequestContext copies the request id assigned by echo's RequestID
// middleware onto the request context so service logs can carry it.
func RequestContext(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		rid := c.Response().Header().Get(echo.HeaderXRequestID)
		if rid != "" {
			req := c.Request()
			c.SetRequest(req.WithContext(reqctx.WithRID(req.Context(), rid)))
		}
		return next(c)
	}
}
