package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/hcnails/studio/internal/models"
)

var ErrNotFound = errors.New("record not found")

type GormProducts struct {
	DB *gorm.DB
}

func (r *GormProducts) List(ctx context.Context, f ProductFilter) ([]models.Product, int64, error) {
	base := r.DB.WithContext(ctx).Model(&models.Product{})
	if f.Category != "" {
		base = base.Where("category = ?", f.Category)
	}
	if f.Featured {
		base = base.Where("is_featured = ?", true)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	q := base.Session(&gorm.Session{}).Order("id ASC")
	if f.Limit > 0 {
		q = q.Offset(f.Offset).Limit(f.Limit)
	}
	var items []models.Product
	if err := q.Find(&items).Error; err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	return items, total, nil
}

func (r *GormProducts) Get(ctx context.Context, id uint) (*models.Product, error) {
	var p models.Product
	if err := r.DB.WithContext(ctx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}
	return &p, nil
}

type GormServices struct {
	DB *gorm.DB
}

func (r *GormServices) ListActive(ctx context.Context) ([]models.Service, error) {
	var items []models.Service
	err := r.DB.WithContext(ctx).
		Where("is_active = ?", true).
		Order("price ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	return items, nil
}

type GormBookings struct {
	DB *gorm.DB
}

func (r *GormBookings) Create(ctx context.Context, b *models.Booking) error {
	if err := r.DB.WithContext(ctx).Create(b).Error; err != nil {
		return fmt.Errorf("create booking: %w", err)
	}
	return nil
}

func (r *GormBookings) ListWithService(ctx context.Context, status string) ([]models.BookingWithService, error) {
	q := r.DB.WithContext(ctx).Model(&models.Booking{}).
		Select("bookings.*, services.name AS service_name, services.price AS service_price, services.duration_minutes").
		Joins("JOIN services ON services.id = bookings.service_id").
		Order("bookings.booking_date ASC, bookings.booking_time ASC")
	if status != "" {
		q = q.Where("bookings.status = ?", status)
	}

	var rows []models.BookingWithService
	if err := q.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return rows, nil
}

func (r *GormBookings) UpdateStatus(ctx context.Context, id uint, status string) error {
	return r.updateColumn(ctx, id, "status", status)
}

func (r *GormBookings) UpdatePaymentStatus(ctx context.Context, id uint, status string) error {
	return r.updateColumn(ctx, id, "payment_status", status)
}

func (r *GormBookings) updateColumn(ctx context.Context, id uint, column, value string) error {
	res := r.DB.WithContext(ctx).Model(&models.Booking{}).Where("id = ?", id).Update(column, value)
	if res.Error != nil {
		return fmt.Errorf("update booking %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

type GormOrders struct {
	DB *gorm.DB
}

// CreateWithItems runs both inserts in one transaction, so a failed item
// insert never leaves an order row behind.
func (r *GormOrders) CreateWithItems(ctx context.Context, o *models.Order, items []models.OrderItem) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(o).Error; err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		for i := range items {
			items[i].OrderID = o.ID
			if err := tx.Create(&items[i]).Error; err != nil {
				return fmt.Errorf("create order item: %w", err)
			}
		}
		return nil
	})
}
