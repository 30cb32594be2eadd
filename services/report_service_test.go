package services

import (
	"math"
	"testing"
	"time"

	"villa-backend/models"
	"villa-backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

func testVillas() map[uint]models.Villa {
	return map[uint]models.Villa{
		1: {ID: 1, Name: "Villa Sago", Capacity: "6", Owner: "rina", OwnerID: 10},
		2: {ID: 2, Name: "Villa Bungsu", Capacity: "4", Owner: "dodi", OwnerID: 20},
	}
}

func TestBuildLedgerRevenueSplit(t *testing.T) {
	bookings := []models.Booking{
		{VillaID: 1, CheckInDate: "2026-03-01", CheckOutDate: "2026-03-03", Name: "Andi",
			OrderID: "ORDER-1-1", PaymentStatus: "paid", Amount: 1000000, Guests: 4},
	}

	entries := BuildLedger(bookings, testVillas())
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, 1, e.ID)
	assert.Equal(t, "Villa Sago", e.Villa)
	assert.Equal(t, 1000000.0, e.VillaPrice)
	assert.Equal(t, 1000000.0, e.Deposite)
	assert.Equal(t, 600000.0, e.OwnerShare)
	assert.Equal(t, 400000.0, e.ManagerShare)
	assert.Equal(t, 4, e.Guests)
	assert.Equal(t, 6, e.VillaCapacity)
	assert.Equal(t, "ORDER-1-1", e.Notes)
}

func TestBuildLedgerShareDriftAtMostOne(t *testing.T) {
	// independent rounding may drift the share sum by up to one unit
	amounts := []float64{1, 3, 7, 99, 101, 12345, 999999, 777777.5}
	for _, amount := range amounts {
		entries := BuildLedger([]models.Booking{{VillaID: 1, Amount: amount}}, testVillas())
		require.Len(t, entries, 1)
		e := entries[0]
		assert.Equal(t, math.Round(amount*0.6), e.OwnerShare)
		assert.Equal(t, math.Round(amount*0.4), e.ManagerShare)
		assert.LessOrEqual(t, math.Abs(e.OwnerShare+e.ManagerShare-amount), 1.0,
			"amount %v", amount)
	}
}

func TestBuildLedgerUnknownVillaSentinel(t *testing.T) {
	bookings := []models.Booking{
		{VillaID: 99, Amount: 100, OrderID: "ORDER-2-5"},
	}
	entries := BuildLedger(bookings, testVillas())
	require.Len(t, entries, 1)
	assert.Equal(t, "Unknown Villa", entries[0].Villa)
	assert.Equal(t, 0, entries[0].VillaCapacity)
}

func TestBuildLedgerReassignsSequenceIDs(t *testing.T) {
	bookings := []models.Booking{
		{VillaID: 1, OrderID: "ORDER-1"},
		{VillaID: 2, OrderID: "ORDER-2"},
		{VillaID: 1, OrderID: "ORDER-3"},
	}
	entries := BuildLedger(bookings, testVillas())
	require.Len(t, entries, 3)
	for i, e := range entries {
		assert.Equal(t, i+1, e.ID)
	}
}

func TestFilterBookingsByCheckInInclusiveBounds(t *testing.T) {
	from := mustDate(t, "2026-03-01")
	to := mustDate(t, "2026-03-31")

	bookings := []models.Booking{
		{OrderID: "on-from", CheckInDate: "2026-03-01"},
		{OrderID: "on-to", CheckInDate: "2026-03-31"},
		{OrderID: "inside", CheckInDate: "2026-03-15"},
		{OrderID: "day-before", CheckInDate: "2026-02-28"},
		{OrderID: "day-after", CheckInDate: "2026-04-01"},
		{OrderID: "garbage-date", CheckInDate: "not-a-date"},
	}

	filtered := FilterBookingsByCheckIn(bookings, from, to)
	require.Len(t, filtered, 3)

	kept := map[string]bool{}
	for _, b := range filtered {
		kept[b.OrderID] = true
	}
	assert.True(t, kept["on-from"])
	assert.True(t, kept["on-to"])
	assert.True(t, kept["inside"])
}

func TestSumPaidTotalsExcludesPending(t *testing.T) {
	bookings := []models.Booking{
		{VillaID: 1, PaymentStatus: "paid", Amount: 500000, ExtraBed: 1, PriceExtraBed: 50000},
		{VillaID: 1, PaymentStatus: "pending", Amount: 300000, ExtraBed: 2, PriceExtraBed: 70000},
	}
	entries := BuildLedger(bookings, testVillas())
	require.Len(t, entries, 2, "pending entries stay in the itemized list")

	totals := SumPaidTotals(entries)
	assert.Equal(t, 500000.0, totals.VillaPrice)
	assert.Equal(t, 500000.0, totals.Deposite)
	assert.Equal(t, 1, totals.ExtraBed)
	assert.Equal(t, 50000.0, totals.PriceExtraBed)
	assert.Equal(t, 300000.0, totals.OwnerShare)
	assert.Equal(t, 200000.0, totals.ManagerShare)
}

func TestSumPaidTotalsAllUnpaidIsZero(t *testing.T) {
	bookings := []models.Booking{
		{VillaID: 1, PaymentStatus: "pending", Amount: 100},
		{VillaID: 2, PaymentStatus: "pending", Amount: 200},
	}
	totals := SumPaidTotals(BuildLedger(bookings, testVillas()))
	assert.Equal(t, FinancialTotals{}, totals)
}

func TestSummarizeBookings(t *testing.T) {
	from := mustDate(t, "2026-03-01")
	to := mustDate(t, "2026-03-10")

	bookings := []models.Booking{
		{CheckInDate: "2026-03-01", CheckOutDate: "2026-03-03", Amount: 400}, // 2 nights
		{CheckInDate: "2026-03-05", CheckOutDate: "2026-03-08", Amount: 200}, // 3 nights
	}

	summary := SummarizeBookings(bookings, 2, from, to)
	assert.Equal(t, 600.0, summary.TotalRevenue)
	assert.Equal(t, 2, summary.TotalBookings)
	assert.Equal(t, 300.0, summary.AverageBookingValue)
	// 5 booked nights over (10 days x 2 villas)
	assert.InDelta(t, 25.0, summary.OccupancyRate, 0.001)
}

func TestSummarizeBookingsEmpty(t *testing.T) {
	from := mustDate(t, "2026-03-01")
	to := mustDate(t, "2026-03-10")

	summary := SummarizeBookings(nil, 2, from, to)
	assert.Equal(t, 0.0, summary.TotalRevenue)
	assert.Equal(t, 0, summary.TotalBookings)
	assert.Equal(t, 0.0, summary.AverageBookingValue)
	assert.Equal(t, 0.0, summary.OccupancyRate)

	// no villas at all: occupancy stays zero instead of dividing by zero
	summary = SummarizeBookings([]models.Booking{{CheckInDate: "2026-03-02", CheckOutDate: "2026-03-04"}}, 0, from, to)
	assert.Equal(t, 0.0, summary.OccupancyRate)
}

func TestGroupByVillaRoleScoping(t *testing.T) {
	villas := testVillas()
	bookings := []models.Booking{
		{VillaID: 1, Amount: 100},
		{VillaID: 2, Amount: 200},
		{VillaID: 2, Amount: 400},
		{VillaID: 99, Amount: 50}, // orphan booking
	}

	admin := utils.Identity{UserID: 1, Username: "boss", Role: "admin"}
	groups := GroupByVilla(bookings, villas, admin)
	require.Len(t, groups, 3, "admin sees every group, orphans included")
	assert.Equal(t, "Villa Sago", groups[0].VillaName)
	assert.Equal(t, "Villa Bungsu", groups[1].VillaName)
	assert.Equal(t, 600.0, groups[1].TotalRevenue)
	assert.Equal(t, 2, groups[1].TotalBookings)
	assert.Equal(t, 300.0, groups[1].AverageBookingValue)
	assert.Equal(t, "Unknown Villa", groups[2].VillaName)

	owner := utils.Identity{UserID: 20, Username: "dodi", Role: "owner"}
	groups = GroupByVilla(bookings, villas, owner)
	require.Len(t, groups, 1, "owner sees only villas linked to their id")
	assert.Equal(t, uint(2), groups[0].VillaID)

	staff := utils.Identity{UserID: 30, Username: "sari", Role: "staff"}
	groups = GroupByVilla(bookings, villas, staff)
	assert.Empty(t, groups)
}

func TestParseReportRange(t *testing.T) {
	from, to, err := ParseReportRange("2026-03-01", "2026-03-31")
	require.NoError(t, err)
	assert.True(t, to.After(from))

	_, _, err = ParseReportRange("2026-03-31", "2026-03-01")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, _, err = ParseReportRange("yesterday", "2026-03-01")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
