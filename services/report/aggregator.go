package report

import (
	"github.com/shopspring/decimal"

	"asokatrip/models"
)

// Aggregate reduces a booking list to its revenue summary. Only paid bookings count towards revenue
// and the average; the total count includes every status. It has no side effects.
func Aggregate(bookings []models.Booking) models.BookingSummary {
	var sum models.BookingSummary
	for _, b := range bookings {
		if b.PaymentStatus != models.PaymentPaid {
			continue
		}
		sum.TotalRevenue += b.TotalAmount
		sum.PaidBookingCount++
	}
	sum.TotalBookingCount = len(bookings)
	sum.AverageOrderValue = averageOrderValue(sum.TotalRevenue, sum.PaidBookingCount)
	return sum
}

// averageOrderValue divides exactly and rounds half up to a whole rupiah.
func averageOrderValue(revenue int64, count int) int64 {
	if count == 0 {
		return 0
	}
	avg := decimal.NewFromInt(revenue).Div(decimal.NewFromInt(int64(count)))
	return avg.Round(0).IntPart()
}
