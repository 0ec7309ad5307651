// Package booking implements the multi-step booking wizard as an explicit
// state machine: enumerated steps with guarded transitions, decoupled from
// any rendering. A wizard instance lives for one booking attempt; reaching
// Confirmed is terminal and a fresh instance is needed to book again.
package booking

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hcnails/studio/internal/models"
	"github.com/hcnails/studio/internal/repository"
)

type Step int

const (
	StepSelectService Step = iota
	StepSelectDateTime
	StepEnterDetails
	StepConfirmed
)

func (s Step) String() string {
	switch s {
	case StepSelectService:
		return "selecting_service"
	case StepSelectDateTime:
		return "selecting_date_time"
	case StepEnterDetails:
		return "entering_details"
	case StepConfirmed:
		return "confirmed"
	}
	return fmt.Sprintf("Step(%d)", int(s))
}

// BookingWindowDays bounds how far ahead a date may be picked.
const BookingWindowDays = 14

var (
	ErrNoService     = errors.New("no service selected")
	ErrNoDate        = errors.New("no date selected")
	ErrPastDate      = errors.New("date is in the past")
	ErrDateTooFar    = errors.New("date is outside the booking window")
	ErrBadDate       = errors.New("date must be formatted as YYYY-MM-DD")
	ErrNoTime        = errors.New("no time slot selected")
	ErrUnknownSlot   = errors.New("time is not an offered slot")
	ErrMissingName   = errors.New("name is required")
	ErrMissingEmail  = errors.New("a valid email is required")
	ErrAlreadyBooked = errors.New("booking already confirmed")
	ErrCannotGoBack  = errors.New("no previous step")
	ErrWrongStep     = errors.New("action not available at this step")
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type Details struct {
	Name  string
	Email string
	Phone string
	Notes string
}

type Wizard struct {
	step     Step
	service  *models.Service
	date     string
	timeSlot string
	details  Details
	images   *Board

	repo repository.Bookings
	now  func() time.Time
}

func NewWizard(repo repository.Bookings) *Wizard {
	return &Wizard{
		step:   StepSelectService,
		images: &Board{},
		repo:   repo,
		now:    time.Now,
	}
}

func (w *Wizard) Step() Step { return w.step }

func (w *Wizard) Board() *Board { return w.images }

// SelectService records the chosen service and advances.
func (w *Wizard) SelectService(svc *models.Service) error {
	if w.step != StepSelectService {
		return ErrWrongStep
	}
	if svc == nil {
		return ErrNoService
	}
	w.service = svc
	w.step = StepSelectDateTime
	return nil
}

// SelectDateTime validates the chosen day and slot and advances. The date
// must be today or later and within the booking window; the time must come
// from the generated slot set.
func (w *Wizard) SelectDateTime(date, slot string) error {
	if w.step != StepSelectDateTime {
		return ErrWrongStep
	}
	if date == "" {
		return ErrNoDate
	}
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return ErrBadDate
	}
	today := w.today()
	if day.Before(today) {
		return ErrPastDate
	}
	if day.After(today.AddDate(0, 0, BookingWindowDays)) {
		return ErrDateTooFar
	}
	if slot == "" {
		return ErrNoTime
	}
	if !ValidSlot(slot) {
		return ErrUnknownSlot
	}
	w.date = date
	w.timeSlot = slot
	w.step = StepEnterDetails
	return nil
}

// SetDetails stores the contact fields without validating; validation
// happens on Submit so partially filled forms are fine.
func (w *Wizard) SetDetails(d Details) error {
	if w.step != StepEnterDetails {
		return ErrWrongStep
	}
	d.Phone = FormatPhone(d.Phone)
	w.details = d
	return nil
}

// Back steps to the previous screen. The initial and terminal steps have
// nowhere to go.
func (w *Wizard) Back() error {
	switch w.step {
	case StepSelectDateTime:
		w.step = StepSelectService
	case StepEnterDetails:
		w.step = StepSelectDateTime
	default:
		return ErrCannotGoBack
	}
	return nil
}

// Submit performs the single network side effect of the flow: one booking
// insert. On failure the wizard stays at EnteringDetails for a retry.
func (w *Wizard) Submit(ctx context.Context) (*models.Booking, error) {
	if w.step == StepConfirmed {
		return nil, ErrAlreadyBooked
	}
	if w.step != StepEnterDetails {
		return nil, ErrWrongStep
	}
	if w.details.Name == "" {
		return nil, ErrMissingName
	}
	if !emailPattern.MatchString(w.details.Email) {
		return nil, ErrMissingEmail
	}

	b := &models.Booking{
		ServiceID:         w.service.ID,
		BookingDate:       w.date,
		BookingTime:       w.timeSlot,
		CustomerName:      w.details.Name,
		CustomerEmail:     w.details.Email,
		CustomerPhone:     w.details.Phone,
		Notes:             w.details.Notes,
		InspirationImages: w.images.URLs(),
		Status:            models.BookingStatusPending,
		PaymentStatus:     models.PaymentStatusPending,
	}
	if err := w.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	w.step = StepConfirmed
	return b, nil
}

// Summary is the confirmation screen's data, built purely from state the
// wizard already holds.
type Summary struct {
	ServiceName string          `json:"service_name"`
	Date        string          `json:"date"`
	Time        string          `json:"time"`
	Price       decimal.Decimal `json:"price"`
}

func (w *Wizard) Summary() (Summary, error) {
	if w.step != StepConfirmed {
		return Summary{}, ErrWrongStep
	}
	return Summary{
		ServiceName: w.service.Name,
		Date:        w.date,
		Time:        w.timeSlot,
		Price:       w.service.Price,
	}, nil
}

func (w *Wizard) today() time.Time {
	n := w.now()
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, n.Location())
}
