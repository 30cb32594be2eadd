package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
)

// Booking is a reservation against one villa. VillaID is an informal
// reference (no FK constraint); a booking whose villa is gone still shows
// up on reports under a sentinel villa name.
type Booking struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	VillaID uint `gorm:"index;column:villa_id" json:"villaId"`

	// Calendar dates, YYYY-MM-DD. Check-out is strictly after check-in.
	CheckInDate  string `gorm:"size:32;column:check_in_date" json:"checkInDate"`
	CheckOutDate string `gorm:"size:32;column:check_out_date" json:"checkOutDate"`

	Guests int    `json:"guests"`
	Name   string `gorm:"size:255" json:"name"`
	Email  string `gorm:"size:255" json:"email"`
	Phone  string `gorm:"size:64" json:"phone"`

	OrderID       string  `gorm:"uniqueIndex;size:64;column:order_id" json:"orderId"`
	PaymentID     string  `gorm:"size:128;column:payment_id" json:"paymentId,omitempty"`
	PaymentStatus string  `gorm:"size:32;default:pending" json:"paymentStatus"`
	Amount        float64 `json:"amount"`

	ExtraBed      int     `gorm:"default:0" json:"extraBed"`
	PriceExtraBed float64 `gorm:"default:0" json:"priceExtraBed"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
