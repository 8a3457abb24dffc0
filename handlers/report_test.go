package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"asokatrip/models"
	"asokatrip/services/period"
	"asokatrip/services/report"
)

var jakarta = time.FixedZone("WIB", 7*3600)

func sampleReport(token models.FilterToken) *models.BookingReport {
	bookings := []models.Booking{
		{ID: "b1", GuestName: "Budi", GuestPhone: "0812", PackageName: "Bromo Sunrise", Pax: 2, TripDate: "2024-03-20", TotalAmount: 1500000, PaymentStatus: models.PaymentPaid, CreatedAt: time.Date(2024, 3, 15, 3, 0, 0, 0, time.UTC)},
		{ID: "b2", GuestName: "Sari", GuestPhone: "0813", PackageName: "Ijen Blue Fire", Pax: 1, TripDate: "2024-03-21", TotalAmount: 500000, PaymentStatus: models.PaymentPending, CreatedAt: time.Date(2024, 3, 14, 3, 0, 0, 0, time.UTC)},
	}
	return &models.BookingReport{
		RequestID: 7,
		Period:    models.Period{Filter: models.PeriodFilter{Token: token}, Label: "Bulan Ini"},
		Summary:   report.Aggregate(bookings),
		Bookings:  bookings,
	}
}

func newReportRouter(reports ReportLoader) *ReportHandler {
	h := NewReportHandler(reports, jakarta)
	h.now = func() time.Time { return time.Date(2024, 3, 15, 10, 30, 0, 0, jakarta) }
	return h
}

func TestGetReportScopesViewToAdmin(t *testing.T) {
	reports := new(MockReports)
	f := models.PeriodFilter{Token: models.FilterMonth}
	reports.On("Load", mock.Anything, "admin-1:reports", f).Return(sampleReport(models.FilterMonth), nil)

	r := newRouter()
	r.GET("/reports", newReportRouter(reports).GetReportHandler)
	w := doJSON(r, http.MethodGet, "/reports?filter=month", "")

	require.Equal(t, http.StatusOK, w.Code)
	var got models.BookingReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, int64(1500000), got.Summary.TotalRevenue)
	assert.Equal(t, 2, got.Summary.TotalBookingCount)
	assert.Len(t, got.Bookings, 2)
	reports.AssertExpectations(t)
}

func TestListBookingsCustomRange(t *testing.T) {
	reports := new(MockReports)
	f := models.PeriodFilter{Token: models.FilterCustom, Start: "2024-03-01", End: "2024-03-10"}
	reports.On("Load", mock.Anything, "admin-1:bookings", f).Return(sampleReport(models.FilterCustom), nil)

	r := newRouter()
	r.GET("/bookings", newReportRouter(reports).ListBookingsHandler)
	w := doJSON(r, http.MethodGet, "/bookings?filter=custom&start=2024-03-01&end=2024-03-10", "")

	assert.Equal(t, http.StatusOK, w.Code)
	reports.AssertExpectations(t)
}

func TestGetReportInvalidRange(t *testing.T) {
	reports := new(MockReports)
	reports.On("Load", mock.Anything, mock.Anything, mock.Anything).Return(nil, period.ErrInvalidDateRange)

	r := newRouter()
	r.GET("/reports", newReportRouter(reports).GetReportHandler)
	w := doJSON(r, http.MethodGet, "/reports?filter=custom&start=2024-03-10&end=2024-03-01", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetReportSuperseded(t *testing.T) {
	reports := new(MockReports)
	reports.On("Load", mock.Anything, mock.Anything, mock.Anything).Return(nil, report.ErrSuperseded)

	r := newRouter()
	r.GET("/reports", newReportRouter(reports).GetReportHandler)
	w := doJSON(r, http.MethodGet, "/reports?filter=week", "")

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestExportBookingsPDF(t *testing.T) {
	reports := new(MockReports)
	reports.On("Load", mock.Anything, "admin-1:bookings-export", mock.Anything).Return(sampleReport(models.FilterMonth), nil)

	r := newRouter()
	r.GET("/bookings/export.pdf", newReportRouter(reports).ExportBookingsHandler)
	w := doJSON(r, http.MethodGet, "/bookings/export.pdf?filter=month", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "laporan_pesanan_asoka_month_")
	assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF"))
}

func TestExportSummaryPDF(t *testing.T) {
	reports := new(MockReports)
	reports.On("Load", mock.Anything, "admin-1:reports-export", mock.Anything).Return(sampleReport(models.FilterAll), nil)

	r := newRouter()
	r.GET("/reports/export.pdf", newReportRouter(reports).ExportSummaryHandler)
	w := doJSON(r, http.MethodGet, "/reports/export.pdf", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "ringkasan_laporan_asoka_all_")
	assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF"))
}

func TestDashboard(t *testing.T) {
	reports := new(MockReports)
	reports.On("Dashboard", mock.Anything).Return(&models.DashboardSummary{TotalTrips: 4, TotalBookings: 9, PendingBookings: 2}, nil)

	r := newRouter()
	r.GET("/dashboard", newReportRouter(reports).DashboardHandler)
	w := doJSON(r, http.MethodGet, "/dashboard", "")

	require.Equal(t, http.StatusOK, w.Code)
	var got models.DashboardSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, int64(4), got.TotalTrips)
	assert.Equal(t, 2, got.PendingBookings)
}
