package handlers

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"asokatrip/models"
	"asokatrip/services/export"
	"asokatrip/services/report"
)

// Export download name prefixes.
const (
	bookingExportPrefix = "laporan_pesanan_asoka"
	summaryExportPrefix = "ringkasan_laporan_asoka"
)

// ReportLoader loads filtered booking reports and the dashboard.
type ReportLoader interface {
	Load(ctx context.Context, viewKey string, f models.PeriodFilter) (*models.BookingReport, error)
	Dashboard(ctx context.Context) (*models.DashboardSummary, error)
}

// ReportHandler serves the report page, its PDF exports and the dashboard.
type ReportHandler struct {
	Reports ReportLoader
	loc     *time.Location
	now     func() time.Time
}

func NewReportHandler(reports ReportLoader, loc *time.Location) *ReportHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportHandler{Reports: reports, loc: loc, now: time.Now}
}

// GetReportHandler returns the period, summary and bookings for ?filter=&start=&end=.
func (h *ReportHandler) GetReportHandler(c *gin.Context) {
	r, ok := h.load(c, "reports")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, r)
}

// ExportSummaryHandler downloads the report summary as PDF.
func (h *ReportHandler) ExportSummaryHandler(c *gin.Context) {
	r, ok := h.load(c, "reports-export")
	if !ok {
		return
	}
	now := h.now()
	h.sendPDF(c, report.FileName(summaryExportPrefix, r.Period.Filter.Token, now), report.SummaryTable(r, h.loc, now))
}

// ListBookingsHandler returns the filtered booking list with its summary.
func (h *ReportHandler) ListBookingsHandler(c *gin.Context) {
	r, ok := h.load(c, "bookings")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, r)
}

// ExportBookingsHandler downloads the filtered booking list as PDF.
func (h *ReportHandler) ExportBookingsHandler(c *gin.Context) {
	r, ok := h.load(c, "bookings-export")
	if !ok {
		return
	}
	now := h.now()
	h.sendPDF(c, report.FileName(bookingExportPrefix, r.Period.Filter.Token, now), report.BookingTable(r, h.loc, now))
}

// DashboardHandler returns the dashboard summary.
func (h *ReportHandler) DashboardHandler(c *gin.Context) {
	d, err := h.Reports.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, "dashboard", err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// load binds the period filter and runs it under a view key scoped to the admin, so a newer request
// from the same screen supersedes an older one.
func (h *ReportHandler) load(c *gin.Context, view string) (*models.BookingReport, bool) {
	var f models.PeriodFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		bindError(c, err)
		return nil, false
	}
	r, err := h.Reports.Load(c.Request.Context(), viewKey(c, view), f)
	if err != nil {
		respondError(c, "load "+view, err)
		return nil, false
	}
	return r, true
}

func (h *ReportHandler) sendPDF(c *gin.Context, name string, t export.Table) {
	var buf bytes.Buffer
	if err := export.Render(&buf, t); err != nil {
		respondError(c, "export", err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

func viewKey(c *gin.Context, view string) string {
	return adminUID(c) + ":" + view
}
