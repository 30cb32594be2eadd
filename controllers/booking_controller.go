package controllers

import (
	"net/http"

	"villa-backend/services"
	"villa-backend/utils"

	"github.com/gin-gonic/gin"
)

type createBookingPayload struct {
	VillaID      uint   `json:"villaId" binding:"required"`
	CheckInDate  string `json:"checkInDate" binding:"required"`
	CheckOutDate string `json:"checkOutDate" binding:"required"`
	Guests       int    `json:"guests" binding:"required,min=1,max=10"`
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Phone        string `json:"phone"`

	// optional: when zero the amount is derived from the villa price
	Amount        float64 `json:"amount"`
	ExtraBed      int     `json:"extraBed"`
	PriceExtraBed float64 `json:"priceExtraBed"`
}

type patchBookingPayload struct {
	PaymentStatus *string  `json:"paymentStatus"`
	PaymentID     *string  `json:"paymentId"`
	Amount        *float64 `json:"amount"`
	ExtraBed      *int     `json:"extraBed"`
	PriceExtraBed *float64 `json:"priceExtraBed"`
}

type BookingController struct {
	BookingSvc *services.BookingService
}

func NewBookingController(svc *services.BookingService) *BookingController {
	return &BookingController{BookingSvc: svc}
}

func (bc *BookingController) GetBookings(c *gin.Context) {
	bookings, err := bc.BookingSvc.List()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bookings)
}

func (bc *BookingController) GetBookingByID(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	booking, err := bc.BookingSvc.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

// CreateBooking takes the public booking form. The orderId and the pending
// payment status are assigned server-side.
func (bc *BookingController) CreateBooking(c *gin.Context) {
	var payload createBookingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}

	booking, err := bc.BookingSvc.Create(services.CreateBookingInput{
		VillaID:       payload.VillaID,
		CheckInDate:   payload.CheckInDate,
		CheckOutDate:  payload.CheckOutDate,
		Guests:        payload.Guests,
		Name:          payload.Name,
		Email:         payload.Email,
		Phone:         payload.Phone,
		Amount:        payload.Amount,
		ExtraBed:      payload.ExtraBed,
		PriceExtraBed: payload.PriceExtraBed,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, booking)
}

// PatchBooking handles the partial update; absent fields keep their values.
func (bc *BookingController) PatchBooking(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var payload patchBookingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}

	booking, err := bc.BookingSvc.Patch(id, services.BookingPatch{
		PaymentStatus: payload.PaymentStatus,
		PaymentID:     payload.PaymentID,
		Amount:        payload.Amount,
		ExtraBed:      payload.ExtraBed,
		PriceExtraBed: payload.PriceExtraBed,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

func (bc *BookingController) DeleteBooking(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := bc.BookingSvc.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "booking deleted")
}
