package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Booking lifecycle statuses, advanced only from the admin view.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCompleted = "completed"
	BookingStatusCancelled = "cancelled"
)

const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusRefunded = "refunded"
)

const OrderStatusPending = "pending"

// StringList is stored as a JSON array in a single column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	return string(b), err
}

func (l *StringList) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	}
	return fmt.Errorf("cannot scan %T into StringList", src)
}

type ShippingAddress struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
}

func (a ShippingAddress) Value() (driver.Value, error) {
	b, err := json.Marshal(a)
	return string(b), err
}

func (a *ShippingAddress) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	}
	return fmt.Errorf("cannot scan %T into ShippingAddress", src)
}

// PaymentDetails holds the buyer's Venmo/Zelle handle.
type PaymentDetails struct {
	Username string `json:"username"`
}

func (p PaymentDetails) Value() (driver.Value, error) {
	b, err := json.Marshal(p)
	return string(b), err
}

func (p *PaymentDetails) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	}
	return fmt.Errorf("cannot scan %T into PaymentDetails", src)
}

type Product struct {
	ID            uint            `gorm:"primaryKey;autoIncrement"  json:"id"`
	Name          string          `gorm:"not null"                  json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `gorm:"type:numeric;not null"     json:"price"`
	ImageURL      string          `json:"image_url"`
	Images        StringList      `gorm:"type:text"                 json:"images"`
	Category      string          `gorm:"index"                     json:"category"`
	StockQuantity uint            `json:"stock_quantity"`
	IsFeatured    bool            `gorm:"default:false"             json:"is_featured"`
	Tags          StringList      `gorm:"type:text"                 json:"tags"`
	Sizes         StringList      `gorm:"type:text"                 json:"sizes"`
}

type Service struct {
	ID              uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Name            string          `gorm:"not null"                 json:"name"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `gorm:"type:numeric;not null"    json:"price"`
	DurationMinutes uint            `gorm:"not null"                 json:"duration_minutes"`
	IsActive        bool            `gorm:"default:true"             json:"is_active"`
}

// Booking dates are calendar days stored as "2006-01-02"; times are slot
// labels from the generated business-hours set.
type Booking struct {
	ID                uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	ServiceID         uint       `gorm:"index;not null"           json:"service_id"`
	BookingDate       string     `gorm:"not null"                 json:"booking_date"`
	BookingTime       string     `gorm:"not null"                 json:"booking_time"`
	CustomerName      string     `gorm:"not null"                 json:"customer_name"`
	CustomerEmail     string     `gorm:"not null"                 json:"customer_email"`
	CustomerPhone     string     `json:"customer_phone"`
	Notes             string     `json:"notes"`
	InspirationImages StringList `gorm:"type:text"                json:"inspiration_images"`
	Status            string     `gorm:"not null;default:pending" json:"status"`
	PaymentStatus     string     `gorm:"not null;default:pending" json:"payment_status"`
	CreatedAt         int64      `gorm:"autoCreateTime"           json:"created_at"`
}

type Order struct {
	ID              uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Reference       string          `gorm:"uniqueIndex;not null"     json:"reference"`
	Status          string          `gorm:"not null;default:pending" json:"status"`
	TotalAmount     decimal.Decimal `gorm:"type:numeric;not null"    json:"total_amount"`
	CustomerName    string          `gorm:"not null"                 json:"customer_name"`
	CustomerEmail   string          `gorm:"not null"                 json:"customer_email"`
	CustomerPhone   string          `json:"customer_phone"`
	ShippingAddress ShippingAddress `gorm:"type:text"                json:"shipping_address"`
	PaymentStatus   string          `gorm:"not null;default:pending" json:"payment_status"`
	PaymentMethod   string          `json:"payment_method"`
	PaymentDetails  PaymentDetails  `gorm:"type:text"                json:"payment_details"`
	CreatedAt       int64           `gorm:"autoCreateTime"           json:"created_at"`
}

// OrderItem captures the price at purchase time so later product price
// changes never alter historical orders.
type OrderItem struct {
	ID          uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID     uint            `gorm:"index;not null"           json:"order_id"`
	ProductID   uint            `gorm:"not null"                 json:"product_id"`
	Quantity    uint            `gorm:"not null"                 json:"quantity"`
	Size        string          `json:"size"`
	PriceAtTime decimal.Decimal `gorm:"type:numeric;not null"    json:"price_at_time"`
}

// BookingWithService is the admin listing row, joined for display.
type BookingWithService struct {
	Booking
	ServiceName     string          `json:"service_name"`
	ServicePrice    decimal.Decimal `json:"service_price"`
	DurationMinutes uint            `json:"duration_minutes"`
}
