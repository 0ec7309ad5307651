package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/hcnails/studio/internal/cart"
	"github.com/hcnails/studio/internal/checkout"
	"github.com/hcnails/studio/internal/events"
)

type CheckoutHandler struct {
	Storage  cart.Storage
	Checkout *checkout.Service
	Producer *events.Producer
	Log      *slog.Logger
}

// GetTotals previews subtotal, shipping and total for the current cart.
func (h *CheckoutHandler) GetTotals(c echo.Context) error {
	store := cart.Open(cartID(c), h.Storage, h.Log)
	subtotal, shipping, total := checkout.Totals(store.Lines())
	return c.JSON(http.StatusOK, totalsView(subtotal, shipping, total))
}

// SubmitOrder performs the guarded checkout action. The cart is cleared
// only when the order and all its items are written.
func (h *CheckoutHandler) SubmitOrder(c echo.Context) error {
	var form checkout.Form
	if err := c.Bind(&form); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	key := cartID(c)
	store := cart.Open(key, h.Storage, h.Log)

	order, items, err := h.Checkout.Submit(c.Request().Context(), store, form)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrEmptyCart), errors.Is(err, checkout.ErrMissingFields):
			return errorResponse(c, http.StatusBadRequest, err)
		}
		h.Log.Error("checkout failed", "cartID", key, "error", err)
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	publish(c, h.Log, h.Producer, events.TopicOrders, order.Reference, map[string]any{
		"type":      "order_created",
		"orderID":   order.ID,
		"reference": order.Reference,
		"total":     order.TotalAmount,
		"items":     len(items),
	})
	return c.JSON(http.StatusCreated, echo.Map{
		"order_id":  order.ID,
		"reference": order.Reference,
		"status":    order.Status,
		"total":     order.TotalAmount,
		"items":     items,
	})
}

func totalsView(subtotal, shipping, total decimal.Decimal) echo.Map {
	return echo.Map{
		"subtotal": subtotal,
		"shipping": shipping,
		"total":    total,
	}
}
