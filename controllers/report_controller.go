package controllers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"villa-backend/services"
	"villa-backend/utils"

	"github.com/gin-gonic/gin"
)

type patchEntryPayload struct {
	ExtraBed      int     `json:"extraBed" binding:"min=0"`
	PriceExtraBed float64 `json:"priceExtraBed" binding:"min=0"`
}

type ReportController struct {
	ReportSvc  *services.ReportService
	BookingSvc *services.BookingService
}

func NewReportController(reportSvc *services.ReportService, bookingSvc *services.BookingService) *ReportController {
	return &ReportController{ReportSvc: reportSvc, BookingSvc: bookingSvc}
}

// reportRange reads from/to query params, defaulting to the dashboard's
// usual window: first day of the current month through today.
func reportRange(c *gin.Context) (string, string) {
	now := time.Now()
	from := c.Query("from")
	if from == "" {
		from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).Format("2006-01-02")
	}
	to := c.Query("to")
	if to == "" {
		to = now.Format("2006-01-02")
	}
	return from, to
}

// GetFinancialReport handles GET /api/reports/financial.
func (rc *ReportController) GetFinancialReport(c *gin.Context) {
	from, to := reportRange(c)
	report, err := rc.ReportSvc.BuildFinancialReport(from, to)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, report)
}

// GetVillaSummaries handles GET /api/reports/villas. The engine scopes the
// groups by the caller's role; the gate already guaranteed admin or owner.
func (rc *ReportController) GetVillaSummaries(c *gin.Context) {
	identity, _ := utils.CurrentIdentity(c)
	from, to := reportRange(c)
	summaries, err := rc.ReportSvc.VillaSummaries(from, to, identity)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, summaries)
}

// ExportFinancialReport streams the reconciled ledger as CSV. The document
// layout itself (the PDF) stays with the client; this is the exporter's
// input contract in a portable shape.
func (rc *ReportController) ExportFinancialReport(c *gin.Context) {
	from, to := reportRange(c)
	report, err := rc.ReportSvc.BuildFinancialReport(from, to)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("financial-report-%s-%s.csv", from, to)
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{
		"No", "Date In", "Date Out", "Visitor Name", "Person In Charge",
		"Deposite", "Villa", "Guests", "Extra Bed", "Price Extra Bed",
		"Villa Price", "Owner Share", "Manager Share", "Notes", "Payment Status",
	})
	for _, e := range report.Entries {
		_ = w.Write([]string{
			strconv.Itoa(e.ID),
			e.DateIn,
			e.DateOut,
			e.VisitorName,
			e.PersonInCharge,
			strconv.FormatFloat(e.Deposite, 'f', -1, 64),
			e.Villa,
			strconv.Itoa(e.Guests),
			strconv.Itoa(e.ExtraBed),
			strconv.FormatFloat(e.PriceExtraBed, 'f', -1, 64),
			strconv.FormatFloat(e.VillaPrice, 'f', -1, 64),
			strconv.FormatFloat(e.OwnerShare, 'f', -1, 64),
			strconv.FormatFloat(e.ManagerShare, 'f', -1, 64),
			e.Notes,
			e.PaymentStatus,
		})
	}
	_ = w.Write([]string{
		"", "", "", "", "TOTAL (paid)",
		strconv.FormatFloat(report.Totals.Deposite, 'f', -1, 64),
		"", "",
		strconv.Itoa(report.Totals.ExtraBed),
		strconv.FormatFloat(report.Totals.PriceExtraBed, 'f', -1, 64),
		strconv.FormatFloat(report.Totals.VillaPrice, 'f', -1, 64),
		strconv.FormatFloat(report.Totals.OwnerShare, 'f', -1, 64),
		strconv.FormatFloat(report.Totals.ManagerShare, 'f', -1, 64),
		"", "",
	})
	w.Flush()
}

// PatchEntry is the ledger point edit: resolve the source booking by the
// orderId carried in the entry's notes, then write only the extra-bed pair.
func (rc *ReportController) PatchEntry(c *gin.Context) {
	orderID := c.Param("orderId")
	if orderID == "" {
		utils.JSONError(c, http.StatusBadRequest, "orderId is required")
		return
	}
	var payload patchEntryPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}

	booking, err := rc.BookingSvc.UpdateExtraBedByOrderID(orderID, payload.ExtraBed, payload.PriceExtraBed)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

// DeleteEntry removes the source booking behind a ledger entry.
func (rc *ReportController) DeleteEntry(c *gin.Context) {
	orderID := c.Param("orderId")
	if orderID == "" {
		utils.JSONError(c, http.StatusBadRequest, "orderId is required")
		return
	}
	if err := rc.BookingSvc.DeleteByOrderID(orderID); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "entry deleted")
}

// ReportPage backs the /report page path. The gate has already enforced the
// admin/owner restriction; the page just gets the default build.
func (rc *ReportController) ReportPage(c *gin.Context) {
	from, to := reportRange(c)
	report, err := rc.ReportSvc.BuildFinancialReport(from, to)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, report)
}
