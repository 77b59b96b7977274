package handler

import (
	"net/http"

	"biobag/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 注文（匿名）と公開追跡
type OrderHandler struct {
	uc *usecase.OrderUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/orders", h.placeOrder)
	e.GET("/orders/track/:order_number", h.track)
}

func (h *OrderHandler) placeOrder(c echo.Context) error {
	var req PlaceOrderRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	out, err := h.uc.PlaceOrder(c.Request().Context(), req.toInput())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *OrderHandler) track(c echo.Context) error {
	out, err := h.uc.TrackOrder(c.Request().Context(), usecase.TrackOrderInput{
		OrderNumber: c.Param("order_number"),
		Email:       c.QueryParam("email"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
