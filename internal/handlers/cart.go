package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/hcnails/studio/internal/cart"
	"github.com/hcnails/studio/internal/events"
	"github.com/hcnails/studio/internal/repository"
)

// CartHandler serves the visitor's cart, keyed by the cart_id cookie and
// rehydrated from storage on every request.
type CartHandler struct {
	Storage  cart.Storage
	Products repository.Products
	Producer *events.Producer
	Log      *slog.Logger
}

type cartView struct {
	Items      []cart.Line     `json:"items"`
	TotalItems uint            `json:"total_items"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

func (h *CartHandler) open(c echo.Context) (*cart.Store, string) {
	key := cartID(c)
	return cart.Open(key, h.Storage, h.Log), key
}

func view(s *cart.Store) cartView {
	return cartView{
		Items:      s.Lines(),
		TotalItems: s.TotalItems(),
		TotalPrice: s.TotalPrice(),
	}
}

func (h *CartHandler) GetCart(c echo.Context) error {
	store, _ := h.open(c)
	return c.JSON(http.StatusOK, view(store))
}

func (h *CartHandler) AddToCart(c echo.Context) error {
	var req struct {
		ProductID uint   `json:"product_id"`
		Size      string `json:"size"`
		Quantity  uint   `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	product, err := h.Products.Get(c.Request().Context(), req.ProductID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errorResponse(c, http.StatusNotFound, errors.New("product not found"))
		}
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	store, key := h.open(c)
	store.AddItem(product, req.Size, req.Quantity)

	publish(c, h.Log, h.Producer, events.TopicCart, key, map[string]any{
		"type":      "cart_item_added",
		"cartID":    key,
		"productID": req.ProductID,
		"size":      req.Size,
	})
	return c.JSON(http.StatusOK, view(store))
}

// UpdateQuantity sets a line's quantity verbatim. Zero is rejected here;
// removal is an explicit separate action.
func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	var req struct {
		ProductID uint   `json:"product_id"`
		Size      string `json:"size"`
		Quantity  uint   `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}
	if req.Quantity < 1 {
		return errorResponse(c, http.StatusBadRequest, errors.New("quantity must be at least 1"))
	}

	store, key := h.open(c)
	store.UpdateQuantity(req.ProductID, req.Size, req.Quantity)

	publish(c, h.Log, h.Producer, events.TopicCart, key, map[string]any{
		"type":      "cart_quantity_updated",
		"cartID":    key,
		"productID": req.ProductID,
		"size":      req.Size,
		"quantity":  req.Quantity,
	})
	return c.JSON(http.StatusOK, view(store))
}

func (h *CartHandler) RemoveFromCart(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return errorResponse(c, http.StatusBadRequest, errors.New("invalid id"))
	}
	size := c.QueryParam("size")

	store, key := h.open(c)
	store.RemoveItem(uint(id), size)

	publish(c, h.Log, h.Producer, events.TopicCart, key, map[string]any{
		"type":      "cart_item_removed",
		"cartID":    key,
		"productID": id,
		"size":      size,
	})
	return c.JSON(http.StatusOK, view(store))
}

func (h *CartHandler) ClearCart(c echo.Context) error {
	store, key := h.open(c)
	store.Clear()

	publish(c, h.Log, h.Producer, events.TopicCart, key, map[string]any{
		"type":   "cart_cleared",
		"cartID": key,
	})
	return c.JSON(http.StatusOK, view(store))
}
