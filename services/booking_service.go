package services

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"villa-backend/models"
	"villa-backend/utils"

	mysqldrv "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type BookingService struct {
	DB *gorm.DB
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{DB: db}
}

// CreateBookingInput is what the public booking form submits. OrderID and
// payment status are server-assigned.
type CreateBookingInput struct {
	VillaID       uint
	CheckInDate   string
	CheckOutDate  string
	Guests        int
	Name          string
	Email         string
	Phone         string
	Amount        float64
	ExtraBed      int
	PriceExtraBed float64
}

// BookingPatch carries the fields a partial update may touch. Nil means
// "leave alone".
type BookingPatch struct {
	PaymentStatus *string
	PaymentID     *string
	Amount        *float64
	ExtraBed      *int
	PriceExtraBed *float64
}

func isDuplicateKey(err error) bool {
	var myErr *mysqldrv.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1062
	}
	// fallback for non-mysql pools (tests)
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}

func (s *BookingService) List() ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.DB.Order("id").Find(&bookings).Error
	return bookings, err
}

func (s *BookingService) GetByID(id uint) (models.Booking, error) {
	var booking models.Booking
	err := s.DB.First(&booking, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return booking, ErrNotFound
	}
	return booking, err
}

// Create validates the stay window, derives the amount from the villa price
// when the form did not send one, and inserts with a fresh orderId. On an
// orderId unique collision the id is regenerated and the insert retried.
func (s *BookingService) Create(in CreateBookingInput) (models.Booking, error) {
	checkIn, err := time.Parse(dateLayout, in.CheckInDate)
	if err != nil {
		return models.Booking{}, ErrInvalidInput
	}
	checkOut, err := time.Parse(dateLayout, in.CheckOutDate)
	if err != nil {
		return models.Booking{}, ErrInvalidInput
	}
	if !checkOut.After(checkIn) {
		return models.Booking{}, ErrInvalidInput
	}
	if in.Guests < 1 || in.Guests > 10 {
		return models.Booking{}, ErrInvalidInput
	}

	amount := in.Amount
	if amount == 0 {
		// best-effort: villa price per night x nights
		var villa models.Villa
		if err := s.DB.First(&villa, in.VillaID).Error; err == nil {
			if price, perr := strconv.ParseFloat(strings.TrimSpace(villa.Price), 64); perr == nil {
				nights := int(checkOut.Sub(checkIn).Hours() / 24)
				amount = price * float64(nights)
			}
		}
	}

	booking := models.Booking{
		VillaID:       in.VillaID,
		CheckInDate:   in.CheckInDate,
		CheckOutDate:  in.CheckOutDate,
		Guests:        in.Guests,
		Name:          strings.TrimSpace(in.Name),
		Email:         strings.TrimSpace(in.Email),
		Phone:         strings.TrimSpace(in.Phone),
		PaymentStatus: models.PaymentPending,
		Amount:        amount,
		ExtraBed:      in.ExtraBed,
		PriceExtraBed: in.PriceExtraBed,
	}

	// insert with retries on orderId collision
	maxRetries := 5
	var createErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		orderID, gErr := utils.GenerateOrderID()
		if gErr != nil {
			return models.Booking{}, gErr
		}
		booking.OrderID = orderID

		createErr = s.DB.Create(&booking).Error
		if createErr == nil {
			return booking, nil
		}
		if isDuplicateKey(createErr) {
			log.Printf("orderId collision (attempt %d) - retrying", attempt+1)
			continue
		}
		return models.Booking{}, fmt.Errorf("failed to create booking: %w", createErr)
	}
	return models.Booking{}, fmt.Errorf("failed to create booking after retries: %w", createErr)
}

// Patch applies a partial update; untouched fields keep their values.
func (s *BookingService) Patch(id uint, patch BookingPatch) (models.Booking, error) {
	booking, err := s.GetByID(id)
	if err != nil {
		return booking, err
	}

	updates := map[string]any{}
	if patch.PaymentStatus != nil {
		updates["payment_status"] = *patch.PaymentStatus
	}
	if patch.PaymentID != nil {
		updates["payment_id"] = *patch.PaymentID
	}
	if patch.Amount != nil {
		updates["amount"] = *patch.Amount
	}
	if patch.ExtraBed != nil {
		updates["extra_bed"] = *patch.ExtraBed
	}
	if patch.PriceExtraBed != nil {
		updates["price_extra_bed"] = *patch.PriceExtraBed
	}
	if len(updates) == 0 {
		return booking, nil
	}

	if err := s.DB.Model(&booking).Updates(updates).Error; err != nil {
		return booking, fmt.Errorf("failed to update booking: %w", err)
	}
	return s.GetByID(id)
}

func (s *BookingService) Delete(id uint) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	return s.DB.Delete(&models.Booking{}, id).Error
}

// GetByOrderID resolves a booking through the orderId, the only stable join
// key a ledger entry keeps.
func (s *BookingService) GetByOrderID(orderID string) (models.Booking, error) {
	var booking models.Booking
	err := s.DB.Where("order_id = ?", orderID).First(&booking).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return booking, ErrNotFound
	}
	return booking, err
}

// UpdateExtraBedByOrderID is the ledger point edit: only the extra-bed pair
// is written, everything else on the booking stays untouched.
func (s *BookingService) UpdateExtraBedByOrderID(orderID string, extraBed int, priceExtraBed float64) (models.Booking, error) {
	booking, err := s.GetByOrderID(orderID)
	if err != nil {
		return booking, err
	}

	err = s.DB.Model(&booking).Updates(map[string]any{
		"extra_bed":       extraBed,
		"price_extra_bed": priceExtraBed,
	}).Error
	if err != nil {
		return booking, fmt.Errorf("failed to update extra bed: %w", err)
	}
	booking.ExtraBed = extraBed
	booking.PriceExtraBed = priceExtraBed
	return booking, nil
}

// DeleteByOrderID is the ledger point delete.
func (s *BookingService) DeleteByOrderID(orderID string) error {
	booking, err := s.GetByOrderID(orderID)
	if err != nil {
		return err
	}
	return s.DB.Delete(&booking).Error
}
