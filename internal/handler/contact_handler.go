package handler

import (
	"net/http"
	"strconv"

	"biobag/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ContactHandler struct {
	uc *usecase.ContactUsecase
}

func NewContactHandler(uc *usecase.ContactUsecase) *ContactHandler {
	return &ContactHandler{uc: uc}
}

type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Message string `json:"message"`
}

// 問い合わせフォーム（匿名）
func (h *ContactHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/contacts", h.submit)
}

// 一覧・既読・削除は管理者のみ
func (h *ContactHandler) RegisterAdminRoutes(admin *echo.Group) {
	admin.GET("/contacts", h.list)
	admin.PATCH("/contacts/:id/read", h.markRead)
	admin.DELETE("/contacts/:id", h.deleteContact)
}

func (h *ContactHandler) submit(c echo.Context) error {
	var req ContactRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	out, err := h.uc.Submit(c.Request().Context(), usecase.SubmitContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Company: req.Company,
		Message: req.Message,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *ContactHandler) list(c echo.Context) error {
	unreadOnly := false
	if v := c.QueryParam("unread"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return badRequest(c, "invalid unread")
		}
		unreadOnly = b
	}

	out, err := h.uc.List(c.Request().Context(), unreadOnly)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ContactHandler) markRead(c echo.Context) error {
	if err := h.uc.MarkRead(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "updated"})
}

func (h *ContactHandler) deleteContact(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
}
