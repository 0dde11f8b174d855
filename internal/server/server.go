package server

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rivalscott04/wastebank-sub000/internal/auth"
	"github.com/rivalscott04/wastebank-sub000/internal/config"
	"github.com/rivalscott04/wastebank-sub000/internal/handler"
	appmw "github.com/rivalscott04/wastebank-sub000/internal/middleware"
	"github.com/rivalscott04/wastebank-sub000/internal/model"
	"github.com/rivalscott04/wastebank-sub000/internal/repository"
	"github.com/rivalscott04/wastebank-sub000/internal/service"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Server struct {
	e *echo.Echo
}

func New(db *gorm.DB, cfg *config.Config) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(appmw.RequestContext)
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			}
			if v.Error != nil {
				zap.L().Warn("request", append(fields, zap.Error(v.Error))...)
				return nil
			}
			zap.L().Info("request", fields...)
			return nil
		},
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Content-Type", "Authorization", echo.HeaderXRequestID},
		AllowCredentials: true,
		AllowOriginFunc:  allowOrigin(cfg.CORSOrigins),
	}))

	store := repository.NewStore(db)
	issuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)
	authMw := appmw.NewAuthMiddleware(issuer)
	adminOnly := appmw.RequireRole(model.RoleAdmin)
	anyRole := appmw.RequireRole(model.RoleAdmin, model.RoleNasabah)

	notifySvc := service.NewNotificationService(store.Notifications)
	userSvc := service.NewUserService(store.Users)
	categorySvc := service.NewCategoryService(store.Categories)
	collectionSvc := service.NewCollectionService(store, notifySvc)
	transactionSvc := service.NewTransactionService(store, notifySvc, cfg.TrustCallerPricing)
	rewardSvc := service.NewRewardService(store.Rewards)
	redemptionSvc := service.NewRedemptionService(store, notifySvc)

	authHandler := handler.NewAuthHandler(userSvc, issuer)
	userHandler := handler.NewUserHandler(userSvc)
	categoryHandler := handler.NewCategoryHandler(categorySvc)
	collectionHandler := handler.NewCollectionHandler(collectionSvc)
	transactionHandler := handler.NewTransactionHandler(transactionSvc)
	rewardHandler := handler.NewRewardHandler(rewardSvc)
	redemptionHandler := handler.NewRedemptionHandler(redemptionSvc)
	notifHandler := handler.NewNotificationHandler(notifySvc)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"ok":         "true",
			"git_sha":    cfg.GitSHA,
			"build_time": cfg.BuildTime,
		})
	})

	api := e.Group("/api")
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	priv := api.Group("", authMw.RequireAuth, anyRole)
	priv.GET("/me", userHandler.Me)
	priv.GET("/users", userHandler.List, adminOnly)
	priv.GET("/users/:id", userHandler.Get, adminOnly)

	priv.GET("/waste-categories", categoryHandler.List)
	priv.GET("/waste-categories/:id", categoryHandler.Get)
	priv.POST("/waste-categories", categoryHandler.Create, adminOnly)
	priv.PUT("/waste-categories/:id", categoryHandler.Update, adminOnly)
	priv.DELETE("/waste-categories/:id", categoryHandler.Delete, adminOnly)

	priv.POST("/waste-collections", collectionHandler.Create)
	priv.GET("/waste-collections", collectionHandler.List)
	priv.GET("/waste-collections/:id", collectionHandler.Get)
	priv.PATCH("/waste-collections/:id/status", collectionHandler.UpdateStatus, adminOnly)
	priv.POST("/waste-collections/:id/cancel", collectionHandler.Cancel)

	priv.POST("/transactions", transactionHandler.Create, adminOnly)
	priv.GET("/transactions", transactionHandler.List)
	priv.GET("/transactions/:id", transactionHandler.Get)
	priv.PATCH("/transactions/:id/payment", transactionHandler.UpdatePayment, adminOnly)

	priv.GET("/rewards", rewardHandler.List)
	priv.GET("/rewards/:id", rewardHandler.Get)
	priv.POST("/rewards", rewardHandler.Create, adminOnly)
	priv.PUT("/rewards/:id", rewardHandler.Update, adminOnly)

	priv.POST("/reward-redemptions", redemptionHandler.Create)
	priv.GET("/reward-redemptions", redemptionHandler.List)
	priv.GET("/reward-redemptions/:id", redemptionHandler.Get)
	priv.PATCH("/reward-redemptions/:id/status", redemptionHandler.UpdateStatus, adminOnly)
	priv.POST("/reward-redemptions/:id/cancel", redemptionHandler.Cancel)

	priv.GET("/notifications", notifHandler.List)
	priv.POST("/notifications/read", notifHandler.MarkRead)

	return &Server{e: e}
}

// allowOrigin admits local dev origins plus the configured list.
func allowOrigin(origins []string) func(string) (bool, error) {
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		o = strings.TrimRight(strings.ToLower(strings.TrimSpace(o)), "/")
		if o != "" {
			allowed[o] = struct{}{}
		}
	}
	return func(origin string) (bool, error) {
		low := strings.ToLower(origin)
		if strings.HasPrefix(low, "http://localhost:") || strings.HasPrefix(low, "http://127.0.0.1:") ||
			strings.HasPrefix(low, "https://localhost:") || strings.HasPrefix(low, "https://127.0.0.1:") {
			return true, nil
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false, nil
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return false, nil
		}
		_, ok := allowed[strings.TrimRight(low, "/")]
		return ok, nil
	}
}

func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.e.ServeHTTP(w, r)
}
