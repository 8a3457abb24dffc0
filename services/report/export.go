package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"asokatrip/models"
	"asokatrip/services/export"
	"asokatrip/services/period"
)

var (
	// BookingColumns are the bookings table headers.
	BookingColumns = []string{"Tgl Pesan", "Tamu", "Paket", "Pax", "Tgl Trip", "Total", "Status"}
	bookingWidths  = []float64{20, 40, 0, 10, 20, 25, 15}

	// SummaryColumns are the summary table headers.
	SummaryColumns = []string{"Metrik", "Nilai"}
)

var idPrinter = message.NewPrinter(language.Indonesian)

var shortMonths = [...]string{"Jan", "Feb", "Mar", "Apr", "Mei", "Jun", "Jul", "Agu", "Sep", "Okt", "Nov", "Des"}

// FormatIDR formats whole rupiah with Indonesian digit grouping, e.g. "Rp 1.500.000".
func FormatIDR(amount int64) string {
	return "Rp " + idPrinter.Sprintf("%d", amount)
}

// FormatDate renders a date as "15 Mar 2024".
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), shortMonths[t.Month()-1], t.Year())
}

// formatTripDate renders a YYYY-MM-DD trip date, or "-" when it cannot be parsed.
func formatTripDate(s string) string {
	t, err := time.Parse(period.DateLayout, s)
	if err != nil {
		return "-"
	}
	return FormatDate(t)
}

func exportedAt(now time.Time) string {
	return "Diekspor pada: " + now.Format("2/1/2006 15.04.05")
}

// BookingRows converts bookings to table rows in BookingColumns order. Creation dates are shown in
// loc.
func BookingRows(bookings []models.Booking, loc *time.Location) [][]string {
	rows := make([][]string, 0, len(bookings))
	for _, b := range bookings {
		created := "-"
		if !b.CreatedAt.IsZero() {
			created = FormatDate(b.CreatedAt.In(loc))
		}
		rows = append(rows, []string{
			created,
			b.GuestName + "\n" + b.GuestPhone,
			b.PackageName,
			strconv.Itoa(b.Pax),
			formatTripDate(b.TripDate),
			FormatIDR(b.TotalAmount),
			strings.ToUpper(string(b.PaymentStatus)),
		})
	}
	return rows
}

// SummaryRows lists the report metrics in SummaryColumns order.
func SummaryRows(r *models.BookingReport) [][]string {
	return [][]string{
		{"Filter Aktif", r.Period.Label},
		{"Total Pendapatan (Paid)", FormatIDR(r.Summary.TotalRevenue)},
		{"Jumlah Pesanan (Paid)", strconv.Itoa(r.Summary.PaidBookingCount)},
		{"Rata-rata Nilai Pesanan (Paid)", FormatIDR(r.Summary.AverageOrderValue)},
		{"Total Semua Pesanan (termasuk pending/cancel)", strconv.Itoa(r.Summary.TotalBookingCount)},
	}
}

// BookingTable is the printable bookings list of a report.
func BookingTable(r *models.BookingReport, loc *time.Location, now time.Time) export.Table {
	return export.Table{
		Title:    "Laporan Pesanan Asoka Trip",
		Subtitle: "Filter: " + r.Period.Label,
		Columns:  BookingColumns,
		Widths:   bookingWidths,
		Rows:     BookingRows(r.Bookings, loc),
		Footer:   exportedAt(now.In(loc)),
		FontSize: 8,
	}
}

// SummaryTable is the printable metrics summary of a report.
func SummaryTable(r *models.BookingReport, loc *time.Location, now time.Time) export.Table {
	return export.Table{
		Title:           "Ringkasan Laporan Pesanan Asoka Trip",
		Subtitle:        "Filter: " + r.Period.Label,
		Columns:         SummaryColumns,
		Widths:          []float64{100, 0},
		Rows:            SummaryRows(r),
		Footer:          exportedAt(now.In(loc)),
		FontSize:        10,
		BoldFirstColumn: true,
	}
}

// FileName is the download name of an export, e.g. laporan_pesanan_asoka_month_1710473400000.pdf.
func FileName(prefix string, token models.FilterToken, now time.Time) string {
	if token == "" {
		token = models.FilterAll
	}
	return fmt.Sprintf("%s_%s_%d.pdf", prefix, token, now.UnixMilli())
}
