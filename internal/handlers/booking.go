package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/hcnails/studio/internal/booking"
	"github.com/hcnails/studio/internal/events"
	"github.com/hcnails/studio/internal/models"
	"github.com/hcnails/studio/internal/repository"
)

type BookingHandler struct {
	Bookings repository.Bookings
	Services repository.Services
	Producer *events.Producer
	Log      *slog.Logger
}

// GetServices returns the active service list, falling back to the built-in
// set when the read fails so the flow stays usable.
func (h *BookingHandler) GetServices(c echo.Context) error {
	services := booking.LoadServices(c.Request().Context(), h.Services)
	return c.JSON(http.StatusOK, services)
}

// GetAvailability exposes the fixed slot list and the booking window so the
// client renders exactly what the wizard will accept.
func (h *BookingHandler) GetAvailability(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"slots":       booking.Slots(),
		"window_days": booking.BookingWindowDays,
	})
}

type bookingRequest struct {
	ServiceID         uint     `json:"service_id"`
	Date              string   `json:"date"`
	Time              string   `json:"time"`
	Name              string   `json:"name"`
	Email             string   `json:"email"`
	Phone             string   `json:"phone"`
	Notes             string   `json:"notes"`
	InspirationImages []string `json:"inspiration_images"`
}

// CreateBooking drives a wizard instance through its guarded transitions
// with the submitted fields. Any guard failure stops the flow with a 400
// and nothing is inserted.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	var req bookingRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	ctx := c.Request().Context()

	var selected *models.Service
	for _, svc := range booking.LoadServices(ctx, h.Services) {
		if svc.ID == req.ServiceID {
			s := svc
			selected = &s
			break
		}
	}

	w := booking.NewWizard(h.Bookings)
	if err := w.SelectService(selected); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}
	if err := w.SelectDateTime(req.Date, req.Time); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}
	if err := w.SetDetails(booking.Details{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		Notes: req.Notes,
	}); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}
	for _, url := range req.InspirationImages {
		if !w.Board().AddPasted(url) {
			w.Board().AddTyped(url)
		}
	}

	b, err := w.Submit(ctx)
	if err != nil {
		if errors.Is(err, booking.ErrMissingName) || errors.Is(err, booking.ErrMissingEmail) {
			return errorResponse(c, http.StatusBadRequest, err)
		}
		h.Log.Error("booking insert failed", "error", err)
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	summary, err := w.Summary()
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	publish(c, h.Log, h.Producer, events.TopicBookings, strconv.Itoa(int(b.ID)), map[string]any{
		"type":      "booking_created",
		"bookingID": b.ID,
		"serviceID": b.ServiceID,
		"date":      b.BookingDate,
		"time":      b.BookingTime,
	})
	return c.JSON(http.StatusCreated, echo.Map{
		"booking": b,
		"summary": summary,
	})
}

// ListBookings is the admin view: every booking joined to its service,
// ordered by date and time, optionally filtered by status.
func (h *BookingHandler) ListBookings(c echo.Context) error {
	status := c.QueryParam("status")
	if status != "" && !validBookingStatus(status) {
		return errorResponse(c, http.StatusBadRequest, errors.New("unknown status"))
	}

	rows, err := h.Bookings.ListWithService(c.Request().Context(), status)
	if err != nil {
		h.Log.Error("booking list failed", "error", err)
		rows = []models.BookingWithService{}
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *BookingHandler) UpdateStatus(c echo.Context) error {
	return h.updateBooking(c, "status")
}

func (h *BookingHandler) UpdatePaymentStatus(c echo.Context) error {
	return h.updateBooking(c, "payment_status")
}

func (h *BookingHandler) updateBooking(c echo.Context, field string) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return errorResponse(c, http.StatusBadRequest, errors.New("invalid id"))
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	ctx := c.Request().Context()
	switch field {
	case "status":
		if !validBookingStatus(req.Status) {
			return errorResponse(c, http.StatusBadRequest, errors.New("unknown status"))
		}
		err = h.Bookings.UpdateStatus(ctx, uint(id), req.Status)
	case "payment_status":
		if !validPaymentStatus(req.Status) {
			return errorResponse(c, http.StatusBadRequest, errors.New("unknown payment status"))
		}
		err = h.Bookings.UpdatePaymentStatus(ctx, uint(id), req.Status)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errorResponse(c, http.StatusNotFound, err)
		}
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	publish(c, h.Log, h.Producer, events.TopicBookings, strconv.Itoa(id), map[string]any{
		"type":      "booking_" + field + "_updated",
		"bookingID": id,
		field:       req.Status,
	})
	return c.JSON(http.StatusOK, echo.Map{"id": id, field: req.Status})
}

func validBookingStatus(s string) bool {
	switch s {
	case models.BookingStatusPending, models.BookingStatusConfirmed,
		models.BookingStatusCompleted, models.BookingStatusCancelled:
		return true
	}
	return false
}

func validPaymentStatus(s string) bool {
	switch s {
	case models.PaymentStatusPending, models.PaymentStatusPaid, models.PaymentStatusRefunded:
		return true
	}
	return false
}
