package handler

import (
	"net/http"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 購入と注文履歴のHTTP
type OrderHandler struct {
	uc *usecase.OrderUsecase
}

// DI
func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

type PurchaseRequest struct {
	ProductIDs []int64 `json:"product_ids"`
}

func (h *OrderHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/purchase", h.purchase)
	g.GET("/orders", h.listOrders)
}

func (h *OrderHandler) purchase(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req PurchaseRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	orders, err := h.uc.Purchase(c.Request().Context(), userID, usecase.PurchaseInput{
		ProductIDs: req.ProductIDs,
	})
	if err != nil {
		return writeError(c, err)
	}
	return okJSON(c, http.StatusCreated, "purchase completed", orders)
}

func (h *OrderHandler) listOrders(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	items, err := h.uc.ListMyOrders(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return okJSON(c, http.StatusOK, "", items)
}
