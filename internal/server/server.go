package server

import (
	"log/slog"
	"net/http"

	"biobag/internal/config"
	"biobag/internal/handler"
	"biobag/internal/middleware"
	"biobag/internal/repository"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// ルーティングに渡すハンドラ一式。Documentはnilなら登録しない
type Handlers struct {
	Health       *handler.HealthHandler
	Product      *handler.ProductHandler
	AdminProduct *handler.AdminProductHandler
	Order        *handler.OrderHandler
	AdminOrder   *handler.AdminOrderHandler
	Contact      *handler.ContactHandler
	Auth         *handler.AuthHandler
	AuditLog     *handler.AuditLogHandler
	Document     *handler.DocumentHandler
}

// echoを組み立てる（HTTPサーバーとLambdaで共通）
func New(cfg config.Config, logger *slog.Logger, h Handlers, userRepo repository.UserRepository) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins(),
		AllowMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowHeaders: []string{
			echo.HeaderOrigin, echo.HeaderContentType,
			echo.HeaderAccept, echo.HeaderAuthorization,
		},
	}))

	RegisterRoutes(e, cfg, h, userRepo)
	return e
}

func RegisterRoutes(e *echo.Echo, cfg config.Config, h Handlers, userRepo repository.UserRepository) {
	//public
	h.Health.RegisterRoutes(e)
	h.Product.RegisterRoutes(e)
	h.Order.RegisterRoutes(e)
	h.Contact.RegisterRoutes(e)
	h.Auth.RegisterRoutes(e)

	//admin: JWT → token_version → ADMIN
	admin := e.Group("/admin",
		middleware.AuthJWT(cfg.JWTSecret),
		middleware.TokenVersionGuard(userRepo),
		middleware.AdminRoleGuard(),
	)
	h.AdminProduct.RegisterRoutes(admin)
	h.AdminOrder.RegisterRoutes(admin)
	h.Contact.RegisterAdminRoutes(admin)
	h.AuditLog.RegisterRoutes(admin)
	h.Auth.RegisterAdminRoutes(admin)

	if h.Document != nil {
		h.Document.RegisterRoutes(e.Group("/api"))
	}
}
