package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hcnails/studio/internal/cart"
	"github.com/hcnails/studio/internal/checkout"
	"github.com/hcnails/studio/internal/models"
	"github.com/hcnails/studio/internal/repository"
)

type testEnv struct {
	E        *echo.Echo
	DB       *gorm.DB
	Storage  *cart.MemoryStorage
	Cart     *CartHandler
	Booking  *BookingHandler
	Checkout *CheckoutHandler
	Product  *ProductHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Product{},
		&models.Service{},
		&models.Booking{},
		&models.Order{},
		&models.OrderItem{},
	))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	storage := cart.NewMemoryStorage()

	products := &repository.GormProducts{DB: db}
	services := &repository.GormServices{DB: db}
	bookings := &repository.GormBookings{DB: db}
	orders := &repository.GormOrders{DB: db}

	return &testEnv{
		E:       echo.New(),
		DB:      db,
		Storage: storage,
		Cart: &CartHandler{
			Storage: storage, Products: products, Log: logger,
		},
		Booking: &BookingHandler{
			Bookings: bookings, Services: services, Log: logger,
		},
		Checkout: &CheckoutHandler{
			Storage:  storage,
			Checkout: &checkout.Service{Orders: orders},
			Log:      logger,
		},
		Product: &ProductHandler{
			DB: db, Repo: products, Log: logger,
		},
	}
}

func (env *testEnv) doJSONRequest(t *testing.T, method, target string, body any, cookies ...*http.Cookie) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	return rec, env.E.NewContext(req, rec)
}

func cartCookie(id string) *http.Cookie {
	return &http.Cookie{Name: "cart_id", Value: id, Path: "/"}
}

func (env *testEnv) seedProduct(t *testing.T, name, price string, sizes ...string) models.Product {
	t.Helper()
	p := models.Product{
		Name:          name,
		Price:         decimal.RequireFromString(price),
		Category:      "press-ons",
		StockQuantity: 10,
		Sizes:         models.StringList(sizes),
	}
	require.NoError(t, env.DB.Create(&p).Error)
	return p
}

func (env *testEnv) seedService(t *testing.T, name string, price int64, minutes uint) models.Service {
	t.Helper()
	s := models.Service{
		Name:            name,
		Price:           decimal.NewFromInt(price),
		DurationMinutes: minutes,
		IsActive:        true,
	}
	require.NoError(t, env.DB.Create(&s).Error)
	return s
}
