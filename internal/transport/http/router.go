package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/hcnails/studio/internal/auth"
	"github.com/hcnails/studio/internal/handlers"
)

type Deps struct {
	Admin           *auth.Admin
	ProductHandler  *handlers.ProductHandler
	CartHandler     *handlers.CartHandler
	BookingHandler  *handlers.BookingHandler
	CheckoutHandler *handlers.CheckoutHandler
	SearchHandler   *handlers.SearchHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	v1 := e.Group("/api/v1")

	products := v1.Group("/products")
	products.GET("", d.ProductHandler.GetProducts)
	products.GET("/:id", d.ProductHandler.GetProduct)

	if d.SearchHandler != nil {
		v1.GET("/search", d.SearchHandler.Search)
	}

	v1.GET("/services", d.BookingHandler.GetServices)
	v1.GET("/availability", d.BookingHandler.GetAvailability)
	v1.POST("/bookings", d.BookingHandler.CreateBooking)

	cart := v1.Group("/cart")
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("", d.CartHandler.AddToCart)
	cart.PATCH("", d.CartHandler.UpdateQuantity)
	cart.DELETE("/:id", d.CartHandler.RemoveFromCart)
	cart.DELETE("", d.CartHandler.ClearCart)

	v1.GET("/checkout/totals", d.CheckoutHandler.GetTotals)
	v1.POST("/checkout", d.CheckoutHandler.SubmitOrder)

	v1.POST("/admin/login", d.Admin.Login)

	admin := v1.Group("/admin", d.Admin.RequireAdmin)
	admin.POST("/logout", d.Admin.Logout)
	admin.GET("/bookings", d.BookingHandler.ListBookings)
	admin.PATCH("/bookings/:id/status", d.BookingHandler.UpdateStatus)
	admin.PATCH("/bookings/:id/payment", d.BookingHandler.UpdatePaymentStatus)
	admin.POST("/products", d.ProductHandler.CreateProduct)
	admin.PATCH("/products/:id", d.ProductHandler.PatchProduct)
	admin.DELETE("/products/:id", d.ProductHandler.DeleteProduct)
}
