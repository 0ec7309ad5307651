package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/hcnails/studio/internal/auth"
	"github.com/hcnails/studio/internal/cart"
	"github.com/hcnails/studio/internal/checkout"
	"github.com/hcnails/studio/internal/config"
	"github.com/hcnails/studio/internal/events"
	"github.com/hcnails/studio/internal/handlers"
	"github.com/hcnails/studio/internal/logging"
	"github.com/hcnails/studio/internal/repository"
	"github.com/hcnails/studio/internal/search"
	httpserver "github.com/hcnails/studio/internal/transport/http"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	storage, err := cart.NewFileStorage(configuration.CART_DIR)
	if err != nil {
		log.Fatalf("cart storage init failed: %v", err)
	}

	var producer *events.Producer
	if configuration.KAFKA_ADDRESS != "" {
		producer = events.NewProducer([]string{configuration.KAFKA_ADDRESS})
	}

	var searchHandler *handlers.SearchHandler
	esClient, err := search.NewClient(configuration)
	if err != nil {
		logger.Warn("search unavailable, continuing without it", "error", err)
	} else {
		searchHandler = &handlers.SearchHandler{ES: esClient}
	}

	productsRepo := &repository.GormProducts{DB: db}
	servicesRepo := &repository.GormServices{DB: db}
	bookingsRepo := &repository.GormBookings{DB: db}
	ordersRepo := &repository.GormOrders{DB: db}

	admin := &auth.Admin{
		Email:        configuration.ADMIN_EMAIL,
		PasswordHash: configuration.ADMIN_PASSWORD_HASH,
		JWTSecret:    []byte(configuration.JWT_SECRET),
	}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			ctx := logging.IntoContext(req.Context(), logger)
			c.SetRequest(req.WithContext(ctx))
			return next(c)
		}
	})

	deps := httpserver.Deps{
		Admin: admin,
		ProductHandler: &handlers.ProductHandler{
			DB: db, Repo: productsRepo, ES: esClient, Producer: producer, Log: logger,
		},
		CartHandler: &handlers.CartHandler{
			Storage: storage, Products: productsRepo, Producer: producer, Log: logger,
		},
		BookingHandler: &handlers.BookingHandler{
			Bookings: bookingsRepo, Services: servicesRepo, Producer: producer, Log: logger,
		},
		CheckoutHandler: &handlers.CheckoutHandler{
			Storage:  storage,
			Checkout: &checkout.Service{Orders: ordersRepo},
			Producer: producer,
			Log:      logger,
		},
		SearchHandler: searchHandler,
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         configuration.HTTP_ADDR,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if err := producer.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
