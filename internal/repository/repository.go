// Package repository is the gateway to the hosted data backend. The cart,
// wizard and checkout logic only see these interfaces, so tests run against
// fakes without a database.
package repository

import (
	"context"

	"github.com/hcnails/studio/internal/models"
)

// ProductFilter narrows the shop listing. Zero values mean "no filter".
type ProductFilter struct {
	Category string
	Featured bool
	Offset   int
	Limit    int
}

type Products interface {
	List(ctx context.Context, f ProductFilter) ([]models.Product, int64, error)
	Get(ctx context.Context, id uint) (*models.Product, error)
}

type Services interface {
	ListActive(ctx context.Context) ([]models.Service, error)
}

type Bookings interface {
	Create(ctx context.Context, b *models.Booking) error
	// ListWithService joins each booking to its service for display,
	// ordered by booking date then time. An empty status lists everything.
	ListWithService(ctx context.Context, status string) ([]models.BookingWithService, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	UpdatePaymentStatus(ctx context.Context, id uint, status string) error
}

type Orders interface {
	// CreateWithItems persists the order and its line items atomically.
	CreateWithItems(ctx context.Context, o *models.Order, items []models.OrderItem) error
}
