package services

import (
	"strings"
	"testing"

	"villa-backend/models"

	"github.com/DATA-DOG/go-sqlmock"
	mysqldrv "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return gormDB, mock
}

func bookingRow(id uint, orderID string, extraBed int, priceExtraBed float64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "villa_id", "check_in_date", "check_out_date", "guests",
		"name", "email", "phone", "order_id", "payment_status", "amount",
		"extra_bed", "price_extra_bed",
	}).AddRow(
		id, 1, "2026-03-01", "2026-03-03", 2,
		"Andi", "andi@example.com", "0812", orderID, "pending", 500000,
		extraBed, priceExtraBed,
	)
}

func TestUpdateExtraBedByOrderID(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewBookingService(db)

	mock.ExpectQuery("SELECT (.+) FROM `bookings`").
		WillReturnRows(bookingRow(7, "ORDER-123-4", 0, 0))
	mock.ExpectExec("UPDATE `bookings` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))

	booking, err := svc.UpdateExtraBedByOrderID("ORDER-123-4", 2, 150000)
	require.NoError(t, err)
	assert.Equal(t, 2, booking.ExtraBed)
	assert.Equal(t, 150000.0, booking.PriceExtraBed)
	assert.Equal(t, 500000.0, booking.Amount, "other fields untouched")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateExtraBedByOrderIDIsIdempotent(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewBookingService(db)

	// same edit applied twice yields the same stored state
	for i := 0; i < 2; i++ {
		mock.ExpectQuery("SELECT (.+) FROM `bookings`").
			WillReturnRows(bookingRow(7, "ORDER-123-4", 2, 150000))
		mock.ExpectExec("UPDATE `bookings` SET").
			WillReturnResult(sqlmock.NewResult(0, 1))
	}

	first, err := svc.UpdateExtraBedByOrderID("ORDER-123-4", 2, 150000)
	require.NoError(t, err)
	second, err := svc.UpdateExtraBedByOrderID("ORDER-123-4", 2, 150000)
	require.NoError(t, err)
	assert.Equal(t, first.ExtraBed, second.ExtraBed)
	assert.Equal(t, first.PriceExtraBed, second.PriceExtraBed)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateExtraBedByOrderIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewBookingService(db)

	mock.ExpectQuery("SELECT (.+) FROM `bookings`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.UpdateExtraBedByOrderID("ORDER-missing", 1, 100)
	assert.ErrorIs(t, err, ErrNotFound)

	// nothing was written
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteByOrderID(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewBookingService(db)

	mock.ExpectQuery("SELECT (.+) FROM `bookings`").
		WillReturnRows(bookingRow(7, "ORDER-123-4", 0, 0))
	mock.ExpectExec("UPDATE `bookings` SET `deleted_at`").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, svc.DeleteByOrderID("ORDER-123-4"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteByOrderIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewBookingService(db)

	mock.ExpectQuery("SELECT (.+) FROM `bookings`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	err := svc.DeleteByOrderID("ORDER-missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingValidation(t *testing.T) {
	db, _ := newMockDB(t)
	svc := NewBookingService(db)

	base := CreateBookingInput{
		VillaID:      1,
		CheckInDate:  "2026-03-01",
		CheckOutDate: "2026-03-03",
		Guests:       2,
		Name:         "Andi",
		Email:        "andi@example.com",
		Amount:       500000,
	}

	bad := base
	bad.CheckOutDate = "2026-03-01" // not strictly after check-in
	_, err := svc.Create(bad)
	assert.ErrorIs(t, err, ErrInvalidInput)

	bad = base
	bad.CheckInDate = "01/03/2026"
	_, err = svc.Create(bad)
	assert.ErrorIs(t, err, ErrInvalidInput)

	bad = base
	bad.Guests = 11
	_, err = svc.Create(bad)
	assert.ErrorIs(t, err, ErrInvalidInput)

	bad = base
	bad.Guests = 0
	_, err = svc.Create(bad)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateBookingAssignsOrderID(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewBookingService(db)

	mock.ExpectExec("INSERT INTO `bookings`").
		WillReturnResult(sqlmock.NewResult(1, 1))

	booking, err := svc.Create(CreateBookingInput{
		VillaID:      1,
		CheckInDate:  "2026-03-01",
		CheckOutDate: "2026-03-03",
		Guests:       2,
		Name:         "Andi",
		Email:        "andi@example.com",
		Amount:       500000,
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(booking.OrderID, "ORDER-"))
	assert.Equal(t, models.PaymentPending, booking.PaymentStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingRetriesOnOrderIDCollision(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewBookingService(db)

	mock.ExpectExec("INSERT INTO `bookings`").
		WillReturnError(&mysqldrv.MySQLError{Number: 1062, Message: "Duplicate entry"})
	mock.ExpectExec("INSERT INTO `bookings`").
		WillReturnResult(sqlmock.NewResult(2, 1))

	booking, err := svc.Create(CreateBookingInput{
		VillaID:      1,
		CheckInDate:  "2026-03-01",
		CheckOutDate: "2026-03-03",
		Guests:       2,
		Name:         "Andi",
		Email:        "andi@example.com",
		Amount:       500000,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, booking.OrderID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
