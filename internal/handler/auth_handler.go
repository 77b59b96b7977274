package handler

import (
	"errors"
	"log/slog"
	"net/http"

	auth "biobag/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	loginUC  *auth.LoginUsecase
	revokeUC *auth.RevokeSessionsUsecase
}

// DIコンストラクタ
func NewAuthHandler(loginUC *auth.LoginUsecase, revokeUC *auth.RevokeSessionsUsecase) *AuthHandler {
	return &AuthHandler{loginUC: loginUC, revokeUC: revokeUC}
}

// /auth/login のリクエストボディ。
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/auth/login", h.login)
}

// 全端末ログアウト（token_version +1）
func (h *AuthHandler) RegisterAdminRoutes(admin *echo.Group) {
	admin.POST("/sessions/revoke", h.revokeSessions)
}

func (h *AuthHandler) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	out, err := h.loginUC.Execute(c.Request().Context(), auth.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrMissingCredentials):
			return badRequest(c, err.Error())
		case errors.Is(err, auth.ErrInvalidCredentials):
			return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid credentials"})
		case errors.Is(err, auth.ErrUserInactive):
			return c.JSON(http.StatusForbidden, ErrorResponse{Error: "forbidden"})
		default:
			slog.ErrorContext(c.Request().Context(), "login failed", "error", err)
			return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
		}
	}

	return c.JSON(http.StatusOK, out)
}

func (h *AuthHandler) revokeSessions(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.revokeUC.Execute(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, auth.ErrUnauthorized) {
			return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		}
		slog.ErrorContext(c.Request().Context(), "revoke sessions failed", "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
	return c.JSON(http.StatusOK, out)
}
