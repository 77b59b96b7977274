package handler

import (
	"net/http"
	"strconv"

	"biobag/internal/usecase"

	"github.com/labstack/echo/v4"
)

// MongoDB側のAPI。?id= があれば1件、なければ一覧
type DocumentHandler struct {
	uc *usecase.DocumentUsecase
}

func NewDocumentHandler(uc *usecase.DocumentUsecase) *DocumentHandler {
	return &DocumentHandler{uc: uc}
}

type documentProductUpdateRequest struct {
	ID string `json:"id"`
	ProductRequest
}

type documentOrderUpdateRequest struct {
	ID     string  `json:"id"`
	Status *string `json:"status"`
	Notes  *string `json:"notes"`
}

type DeletedResponse struct {
	Deleted bool `json:"deleted"`
}

func (h *DocumentHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/mongodb-products", h.getProducts)
	g.POST("/mongodb-products", h.createProduct)
	g.PUT("/mongodb-products", h.updateProduct)
	g.DELETE("/mongodb-products", h.deleteProduct)

	g.GET("/mongodb-orders", h.getOrders)
	g.POST("/mongodb-orders", h.createOrder)
	g.PUT("/mongodb-orders", h.updateOrder)
	g.DELETE("/mongodb-orders", h.deleteOrder)
}

func (h *DocumentHandler) getProducts(c echo.Context) error {
	ctx := c.Request().Context()

	if id := c.QueryParam("id"); id != "" {
		p, err := h.uc.GetProduct(ctx, id)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, p)
	}

	activeOnly := false
	if v := c.QueryParam("activeOnly"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return badRequest(c, "invalid activeOnly")
		}
		activeOnly = b
	}

	out, err := h.uc.ListProducts(ctx, activeOnly)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *DocumentHandler) createProduct(c echo.Context) error {
	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	p, err := h.uc.CreateProduct(c.Request().Context(), req.toInput())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *DocumentHandler) updateProduct(c echo.Context) error {
	var req documentProductUpdateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	p, err := h.uc.UpdateProduct(c.Request().Context(), req.ID, req.ProductRequest.toInput())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *DocumentHandler) deleteProduct(c echo.Context) error {
	deleted, err := h.uc.DeleteProduct(c.Request().Context(), c.QueryParam("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, DeletedResponse{Deleted: deleted})
}

func (h *DocumentHandler) getOrders(c echo.Context) error {
	ctx := c.Request().Context()

	if id := c.QueryParam("id"); id != "" {
		o, err := h.uc.GetOrder(ctx, id)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, o)
	}

	out, err := h.uc.ListOrders(ctx)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *DocumentHandler) createOrder(c echo.Context) error {
	var req PlaceOrderRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	out, err := h.uc.CreateOrder(c.Request().Context(), req.toInput())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

// statusとnotesだけ
func (h *DocumentHandler) updateOrder(c echo.Context) error {
	var req documentOrderUpdateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	out, err := h.uc.UpdateOrder(c.Request().Context(), req.ID, usecase.UpdateOrderDocumentInput{
		Status: req.Status,
		Notes:  req.Notes,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *DocumentHandler) deleteOrder(c echo.Context) error {
	deleted, err := h.uc.DeleteOrder(c.Request().Context(), c.QueryParam("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, DeletedResponse{Deleted: deleted})
}
