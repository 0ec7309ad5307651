package repository

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hcnails/studio/internal/models"
)

func initTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Product{},
		&models.Service{},
		&models.Booking{},
		&models.Order{},
		&models.OrderItem{},
	)
	require.NoError(t, err)
	return db
}

func TestProductListFilters(t *testing.T) {
	db := initTestDB(t)
	repo := &GormProducts{DB: db}

	db.Create(&models.Product{Name: "chrome set", Price: decimal.NewFromInt(25), Category: "press-ons", IsFeatured: true})
	db.Create(&models.Product{Name: "french tips", Price: decimal.NewFromInt(23), Category: "press-ons"})
	db.Create(&models.Product{Name: "cuticle oil", Price: decimal.NewFromInt(9), Category: "care"})

	items, total, err := repo.List(context.Background(), ProductFilter{})
	require.NoError(t, err)
	require.Len(t, items, 3)
	require.EqualValues(t, 3, total)

	items, total, err = repo.List(context.Background(), ProductFilter{Category: "press-ons"})
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.EqualValues(t, 2, total)

	items, _, err = repo.List(context.Background(), ProductFilter{Featured: true})
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "chrome set", items[0].Name)

	items, total, err = repo.List(context.Background(), ProductFilter{Limit: 2})
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.EqualValues(t, 3, total)
}

func TestProductGet(t *testing.T) {
	db := initTestDB(t)
	repo := &GormProducts{DB: db}

	p := models.Product{Name: "chrome set", Price: decimal.NewFromInt(25), Sizes: models.StringList{"S", "M"}}
	db.Create(&p)

	got, err := repo.Get(context.Background(), p.ID)
	require.NoError(t, err)
	require.Equal(t, "chrome set", got.Name)
	require.Equal(t, models.StringList{"S", "M"}, got.Sizes)

	_, err = repo.Get(context.Background(), 999)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestServicesListActive(t *testing.T) {
	db := initTestDB(t)
	repo := &GormServices{DB: db}

	db.Create(&models.Service{Name: "Custom Design", Price: decimal.NewFromInt(45), DurationMinutes: 60, IsActive: true})
	db.Create(&models.Service{Name: "Ready-Made Set", Price: decimal.NewFromInt(35), DurationMinutes: 30, IsActive: true})
	db.Create(&models.Service{Name: "Retired", Price: decimal.NewFromInt(99), DurationMinutes: 90, IsActive: false})

	services, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, services, 2)
	require.Equal(t, "Ready-Made Set", services[0].Name, "ordered by price ascending")
}

func TestBookingsCreateListUpdate(t *testing.T) {
	db := initTestDB(t)
	repo := &GormBookings{DB: db}

	svc := models.Service{Name: "Custom Design", Price: decimal.NewFromInt(45), DurationMinutes: 60, IsActive: true}
	db.Create(&svc)

	later := models.Booking{
		ServiceID: svc.ID, BookingDate: "2026-09-02", BookingTime: "2:00pm",
		CustomerName: "Jane Doe", CustomerEmail: "jane@example.com",
		Status: models.BookingStatusPending, PaymentStatus: models.PaymentStatusPending,
	}
	earlier := models.Booking{
		ServiceID: svc.ID, BookingDate: "2026-09-01", BookingTime: "11:00am",
		CustomerName: "May Lin", CustomerEmail: "may@example.com",
		Status: models.BookingStatusPending, PaymentStatus: models.PaymentStatusPending,
	}
	require.NoError(t, repo.Create(context.Background(), &later))
	require.NoError(t, repo.Create(context.Background(), &earlier))

	rows, err := repo.ListWithService(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "2026-09-01", rows[0].BookingDate, "ordered by date then time")
	require.Equal(t, "Custom Design", rows[0].ServiceName)
	require.Equal(t, uint(60), rows[0].DurationMinutes)

	require.NoError(t, repo.UpdateStatus(context.Background(), later.ID, models.BookingStatusConfirmed))
	require.NoError(t, repo.UpdatePaymentStatus(context.Background(), later.ID, models.PaymentStatusPaid))

	rows, err = repo.ListWithService(context.Background(), models.BookingStatusConfirmed)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "Jane Doe", rows[0].CustomerName)
	require.Equal(t, models.PaymentStatusPaid, rows[0].PaymentStatus)

	require.ErrorIs(t, repo.UpdateStatus(context.Background(), 999, models.BookingStatusCancelled), ErrNotFound)
}

func TestOrdersCreateWithItems(t *testing.T) {
	db := initTestDB(t)
	repo := &GormOrders{DB: db}

	order := models.Order{
		Reference:    "ref-123",
		Status:       models.OrderStatusPending,
		TotalAmount:  decimal.RequireFromString("70.97"),
		CustomerName: "Jane Doe", CustomerEmail: "jane@example.com",
		ShippingAddress: models.ShippingAddress{Street: "123 Main St", City: "Springfield", State: "OR", Zip: "97477", Country: "USA"},
		PaymentStatus:   models.PaymentStatusPending,
	}
	items := []models.OrderItem{
		{ProductID: 1, Quantity: 1, Size: "M", PriceAtTime: decimal.RequireFromString("24.99")},
		{ProductID: 2, Quantity: 2, Size: "S", PriceAtTime: decimal.RequireFromString("22.99")},
	}

	require.NoError(t, repo.CreateWithItems(context.Background(), &order, items))
	require.NotZero(t, order.ID)

	var stored []models.OrderItem
	require.NoError(t, db.Where("order_id = ?", order.ID).Find(&stored).Error)
	require.Len(t, stored, 2)
	require.True(t, stored[0].PriceAtTime.Equal(decimal.RequireFromString("24.99")))

	var fetched models.Order
	require.NoError(t, db.First(&fetched, order.ID).Error)
	require.Equal(t, "Springfield", fetched.ShippingAddress.City)
}
