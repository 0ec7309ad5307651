// Package checkout turns the current cart into an order. Not a state
// machine: one guarded action collecting contact, shipping and payment
// fields, then a single atomic order-plus-items write.
package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hcnails/studio/internal/cart"
	"github.com/hcnails/studio/internal/models"
	"github.com/hcnails/studio/internal/repository"
)

// Flat shipping fee, waived once the subtotal clears the threshold.
var (
	ShippingFee           = decimal.RequireFromString("5.99")
	FreeShippingThreshold = decimal.NewFromInt(30)
)

var (
	ErrEmptyCart     = errors.New("cart is empty")
	ErrMissingFields = errors.New("name, email and shipping address are required")
)

type Form struct {
	Name            string                 `json:"name"`
	Email           string                 `json:"email"`
	Phone           string                 `json:"phone"`
	Address         models.ShippingAddress `json:"address"`
	PaymentMethod   string                 `json:"payment_method"`
	PaymentUsername string                 `json:"payment_username"`
}

func (f Form) validate() error {
	switch {
	case f.Name == "", f.Email == "",
		f.Address.Street == "", f.Address.City == "",
		f.Address.State == "", f.Address.Zip == "":
		return ErrMissingFields
	}
	return nil
}

// Totals derives subtotal, shipping and total for a set of cart lines.
func Totals(lines []cart.Line) (subtotal, shipping, total decimal.Decimal) {
	subtotal = decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.Price.Mul(decimal.NewFromUint64(uint64(l.Quantity))))
	}
	shipping = ShippingFee
	if subtotal.GreaterThan(FreeShippingThreshold) {
		shipping = decimal.Zero
	}
	return subtotal, shipping, subtotal.Add(shipping)
}

type Service struct {
	Orders repository.Orders
}

// Submit writes the order and its items, snapshotting each line's price.
// The cart is cleared only after the write succeeds; on failure it is left
// untouched so the user can retry.
func (s *Service) Submit(ctx context.Context, c *cart.Store, form Form) (*models.Order, []models.OrderItem, error) {
	lines := c.Lines()
	if len(lines) == 0 {
		return nil, nil, ErrEmptyCart
	}
	if err := form.validate(); err != nil {
		return nil, nil, err
	}

	_, _, total := Totals(lines)
	order := &models.Order{
		Reference:       uuid.NewString(),
		Status:          models.OrderStatusPending,
		TotalAmount:     total,
		CustomerName:    form.Name,
		CustomerEmail:   form.Email,
		CustomerPhone:   form.Phone,
		ShippingAddress: form.Address,
		PaymentStatus:   models.PaymentStatusPending,
		PaymentMethod:   form.PaymentMethod,
		PaymentDetails:  models.PaymentDetails{Username: form.PaymentUsername},
	}

	items := make([]models.OrderItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, models.OrderItem{
			ProductID:   l.ProductID,
			Quantity:    l.Quantity,
			Size:        l.Size,
			PriceAtTime: l.Price,
		})
	}

	if err := s.Orders.CreateWithItems(ctx, order, items); err != nil {
		return nil, nil, fmt.Errorf("submit order: %w", err)
	}

	c.Clear()
	return order, items, nil
}
