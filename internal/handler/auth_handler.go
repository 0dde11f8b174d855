package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rivalscott04/wastebank-sub000/internal/auth"
	"github.com/rivalscott04/wastebank-sub000/internal/service"
)

type AuthHandler struct {
	users  service.UserService
	issuer *auth.TokenIssuer
}

func NewAuthHandler(users service.UserService, issuer *auth.TokenIssuer) *AuthHandler {
	return &AuthHandler{users: users, issuer: issuer}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required,max=120"`
	Email    string `json:"email" validate:"required,email,max=191"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Phone    string `json:"phone" validate:"max=32"`
	Address  string `json:"address"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type TokenResponse struct {
	Token     string       `json:"token"`
	TokenType string       `json:"token_type"`
	ExpiresAt string       `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// Register creates a nasabah account. Admins are provisioned by the seeder.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if msg := bindAndValidate(c, &req); msg != "" {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", msg))
	}
	u, err := h.users.Register(c.Request().Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Address:  req.Address,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, toUserResponse(u))
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if msg := bindAndValidate(c, &req); msg != "" {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", msg))
	}
	u, err := h.users.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	token, exp, err := h.issuer.Issue(u.ID, string(u.Role))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, TokenResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresAt: exp.Format(time.RFC3339),
		User:      toUserResponse(u),
	})
}
