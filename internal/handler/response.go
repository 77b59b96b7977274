package handler

import (
	"log/slog"
	"net/http"

	"biobag/internal/middleware"
	"biobag/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// 更新系の成功レスポンス { message: string }
type SuccessResponse struct {
	Message string `json:"message"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		//原因はログにだけ出す
		if he.Status >= http.StatusInternalServerError {
			slog.ErrorContext(c.Request().Context(), he.Message,
				"error", he.Err,
				"method", c.Request().Method,
				"path", c.Path(),
			)
		}
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	//500
	slog.ErrorContext(c.Request().Context(), "unhandled error",
		"error", err,
		"method", c.Request().Method,
		"path", c.Path(),
	)
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

// AuthJWTが入れた管理者ID（監査ログ用）
func getUserIDFromContext(c echo.Context) (string, bool) {
	return middleware.UserIDFrom(c)
}
