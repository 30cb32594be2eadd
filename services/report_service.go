package services

import (
	"math"
	"strconv"
	"strings"
	"time"

	"villa-backend/models"
	"villa-backend/utils"

	"gorm.io/gorm"
)

// Revenue split applied to every booking amount.
const (
	ownerShareRate   = 0.6
	managerShareRate = 0.4
)

const unknownVillaName = "Unknown Villa"

// LedgerEntry is the derived, non-persisted financial view of one booking
// joined with its villa. The sequence id is reassigned per filtered set;
// Notes carries the orderId, the only stable key back to the booking.
type LedgerEntry struct {
	ID             int     `json:"id"`
	DateIn         string  `json:"dateIn"`
	DateOut        string  `json:"dateOut"`
	VisitorName    string  `json:"visitorName"`
	PersonInCharge string  `json:"personInCharge"`
	Deposite       float64 `json:"deposite"`
	Villa          string  `json:"villa"`
	Guests         int     `json:"guests"`
	VillaCapacity  int     `json:"villaCapacity"`
	ExtraBed       int     `json:"extraBed"`
	PriceExtraBed  float64 `json:"priceExtraBed"`
	VillaPrice     float64 `json:"villaPrice"`
	OwnerShare     float64 `json:"ownerShare"`
	ManagerShare   float64 `json:"managerShare"`
	Notes          string  `json:"notes"`
	PaymentStatus  string  `json:"paymentStatus"`
}

// ReportSummary covers the whole filtered set, paid or not.
type ReportSummary struct {
	TotalRevenue        float64 `json:"totalRevenue"`
	TotalBookings       int     `json:"totalBookings"`
	AverageBookingValue float64 `json:"averageBookingValue"`
	OccupancyRate       float64 `json:"occupancyRate"`
}

// FinancialTotals sums only entries whose payment status is "paid".
type FinancialTotals struct {
	Deposite      float64 `json:"deposite"`
	ExtraBed      int     `json:"extraBed"`
	PriceExtraBed float64 `json:"priceExtraBed"`
	VillaPrice    float64 `json:"villaPrice"`
	OwnerShare    float64 `json:"ownerShare"`
	ManagerShare  float64 `json:"managerShare"`
}

// FinancialReport is the full build output and the exporter's input
// contract.
type FinancialReport struct {
	From    string          `json:"from"`
	To      string          `json:"to"`
	Entries []LedgerEntry   `json:"entries"`
	Summary ReportSummary   `json:"summary"`
	Totals  FinancialTotals `json:"financialTotals"`
}

// VillaGroupSummary is one group of the per-villa report view.
type VillaGroupSummary struct {
	VillaID             uint    `json:"villaId"`
	VillaName           string  `json:"villaName"`
	TotalRevenue        float64 `json:"totalRevenue"`
	TotalBookings       int     `json:"totalBookings"`
	AverageBookingValue float64 `json:"averageBookingValue"`
}

// FilterBookingsByCheckIn keeps bookings whose check-in date falls within
// [from, to], inclusive on both ends. Unparseable check-in dates drop the
// booking from the filtered set.
func FilterBookingsByCheckIn(bookings []models.Booking, from, to time.Time) []models.Booking {
	filtered := make([]models.Booking, 0, len(bookings))
	for _, b := range bookings {
		checkIn, err := time.Parse(dateLayout, b.CheckInDate)
		if err != nil {
			continue
		}
		if checkIn.Before(from) || checkIn.After(to) {
			continue
		}
		filtered = append(filtered, b)
	}
	return filtered
}

// BuildLedger joins each booking to its villa and computes the derived
// financial fields. A missing villa never fails the build; the entry gets
// the sentinel name instead.
func BuildLedger(bookings []models.Booking, villas map[uint]models.Villa) []LedgerEntry {
	entries := make([]LedgerEntry, 0, len(bookings))
	for i, b := range bookings {
		villaName := unknownVillaName
		villaCapacity := 0
		if villa, ok := villas[b.VillaID]; ok {
			villaName = villa.Name
			if c, err := strconv.Atoi(strings.TrimSpace(villa.Capacity)); err == nil {
				villaCapacity = c
			}
		}

		villaPrice := b.Amount
		entries = append(entries, LedgerEntry{
			ID:             i + 1,
			DateIn:         b.CheckInDate,
			DateOut:        b.CheckOutDate,
			VisitorName:    b.Name,
			PersonInCharge: b.Name,
			Deposite:       b.Amount,
			Villa:          villaName,
			Guests:         b.Guests,
			VillaCapacity:  villaCapacity,
			ExtraBed:       b.ExtraBed,
			PriceExtraBed:  b.PriceExtraBed,
			VillaPrice:     villaPrice,
			OwnerShare:     math.Round(villaPrice * ownerShareRate),
			ManagerShare:   math.Round(villaPrice * managerShareRate),
			Notes:          b.OrderID,
			PaymentStatus:  b.PaymentStatus,
		})
	}
	return entries
}

// SumPaidTotals folds the paid entries into the financial totals. Unpaid
// entries stay in the itemized list but contribute nothing here.
func SumPaidTotals(entries []LedgerEntry) FinancialTotals {
	var totals FinancialTotals
	for _, e := range entries {
		if e.PaymentStatus != models.PaymentPaid {
			continue
		}
		totals.Deposite += e.Deposite
		totals.ExtraBed += e.ExtraBed
		totals.PriceExtraBed += e.PriceExtraBed
		totals.VillaPrice += e.VillaPrice
		totals.OwnerShare += e.OwnerShare
		totals.ManagerShare += e.ManagerShare
	}
	return totals
}

func nightCount(b models.Booking) int {
	checkIn, err := time.Parse(dateLayout, b.CheckInDate)
	if err != nil {
		return 0
	}
	checkOut, err := time.Parse(dateLayout, b.CheckOutDate)
	if err != nil {
		return 0
	}
	nights := int(math.Ceil(checkOut.Sub(checkIn).Hours() / 24))
	if nights < 0 {
		return 0
	}
	return nights
}

// SummarizeBookings computes the headline metrics over the filtered set.
// Occupancy is the coarse approximation the dashboard has always shown:
// booked nights over (days in range x villa count).
func SummarizeBookings(filtered []models.Booking, villaCount int, from, to time.Time) ReportSummary {
	var summary ReportSummary
	for _, b := range filtered {
		summary.TotalRevenue += b.Amount
	}
	summary.TotalBookings = len(filtered)
	if summary.TotalBookings > 0 {
		summary.AverageBookingValue = summary.TotalRevenue / float64(summary.TotalBookings)
	}

	days := int(math.Ceil(to.Sub(from).Hours()/24)) + 1
	totalPossible := days * villaCount
	if totalPossible > 0 {
		bookedNights := 0
		for _, b := range filtered {
			bookedNights += nightCount(b)
		}
		summary.OccupancyRate = float64(bookedNights) / float64(totalPossible) * 100
	}
	return summary
}

// GroupByVilla builds the role-scoped per-villa view. Admins see every
// group, owners only the villas linked to their user id, anyone else gets
// an empty grouping. Group order follows first appearance in the filtered
// bookings.
func GroupByVilla(filtered []models.Booking, villas map[uint]models.Villa, caller utils.Identity) []VillaGroupSummary {
	summaries := []VillaGroupSummary{}
	if caller.Role != models.RoleAdmin && caller.Role != models.RoleOwner {
		return summaries
	}

	grouped := map[uint][]models.Booking{}
	order := []uint{}
	for _, b := range filtered {
		if _, seen := grouped[b.VillaID]; !seen {
			order = append(order, b.VillaID)
		}
		grouped[b.VillaID] = append(grouped[b.VillaID], b)
	}

	for _, villaID := range order {
		villa, found := villas[villaID]
		if caller.Role == models.RoleOwner {
			if !found || villa.OwnerID != caller.UserID {
				continue
			}
		}

		name := unknownVillaName
		if found {
			name = villa.Name
		}

		group := grouped[villaID]
		total := 0.0
		for _, b := range group {
			total += b.Amount
		}
		avg := 0.0
		if len(group) > 0 {
			avg = total / float64(len(group))
		}
		summaries = append(summaries, VillaGroupSummary{
			VillaID:             villaID,
			VillaName:           name,
			TotalRevenue:        total,
			TotalBookings:       len(group),
			AverageBookingValue: avg,
		})
	}
	return summaries
}

// ReportService fetches the two collections and runs the pure build steps.
// The build itself does no I/O and holds no state.
type ReportService struct {
	DB *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{DB: db}
}

func (s *ReportService) fetch() ([]models.Booking, []models.Villa, error) {
	var bookings []models.Booking
	if err := s.DB.Order("id").Find(&bookings).Error; err != nil {
		return nil, nil, err
	}
	var villas []models.Villa
	if err := s.DB.Order("id").Find(&villas).Error; err != nil {
		return nil, nil, err
	}
	return bookings, villas, nil
}

func villaMap(villas []models.Villa) map[uint]models.Villa {
	m := make(map[uint]models.Villa, len(villas))
	for _, v := range villas {
		m[v.ID] = v
	}
	return m
}

// ParseReportRange validates a [from, to] pair of calendar dates.
func ParseReportRange(fromStr, toStr string) (time.Time, time.Time, error) {
	from, err := time.Parse(dateLayout, fromStr)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidInput
	}
	to, err := time.Parse(dateLayout, toStr)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidInput
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, ErrInvalidInput
	}
	return from, to, nil
}

// BuildFinancialReport runs the full build for [from, to].
func (s *ReportService) BuildFinancialReport(fromStr, toStr string) (FinancialReport, error) {
	from, to, err := ParseReportRange(fromStr, toStr)
	if err != nil {
		return FinancialReport{}, err
	}

	bookings, villas, err := s.fetch()
	if err != nil {
		return FinancialReport{}, err
	}

	filtered := FilterBookingsByCheckIn(bookings, from, to)
	entries := BuildLedger(filtered, villaMap(villas))

	return FinancialReport{
		From:    fromStr,
		To:      toStr,
		Entries: entries,
		Summary: SummarizeBookings(filtered, len(villas), from, to),
		Totals:  SumPaidTotals(entries),
	}, nil
}

// VillaSummaries runs the role-scoped per-villa view for [from, to].
func (s *ReportService) VillaSummaries(fromStr, toStr string, caller utils.Identity) ([]VillaGroupSummary, error) {
	from, to, err := ParseReportRange(fromStr, toStr)
	if err != nil {
		return nil, err
	}

	bookings, villas, err := s.fetch()
	if err != nil {
		return nil, err
	}

	filtered := FilterBookingsByCheckIn(bookings, from, to)
	return GroupByVilla(filtered, villaMap(villas), caller), nil
}
