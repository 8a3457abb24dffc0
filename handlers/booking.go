package handlers

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"asokatrip/database/docstore"
	"asokatrip/models"
	"asokatrip/services/booking"
	"asokatrip/services/report"
)

const streamKeepAlive = 25 * time.Second

// BookingHandler serves booking management and the live booking feed.
type BookingHandler struct {
	Bookings  booking.BookingService
	keepAlive time.Duration
}

func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Bookings: svc, keepAlive: streamKeepAlive}
}

// CreateBookingHandler stores a manually entered booking.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	var in models.ManualBookingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		bindError(c, err)
		return
	}
	b, err := h.Bookings.CreateManual(c.Request.Context(), in)
	if err != nil {
		respondError(c, "create booking", err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	b, err := h.Bookings.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "get booking", err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// UpdateStatusHandler overwrites a booking's payment status.
func (h *BookingHandler) UpdateStatusHandler(c *gin.Context) {
	var req models.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	id := c.Param("id")
	if err := h.Bookings.UpdatePaymentStatus(c.Request.Context(), id, req.PaymentStatus); err != nil {
		respondError(c, "update booking status", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "paymentStatus": req.PaymentStatus})
}

func (h *BookingHandler) DeleteBookingHandler(c *gin.Context) {
	if err := h.Bookings.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, "delete booking", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// StreamBookingsHandler pushes the filtered booking list as server-sent events. Every change to the
// bookings in the period produces a "bookings" event with the full list and its summary.
// ?limit= caps the list, e.g. for the dashboard's recent bookings.
func (h *BookingHandler) StreamBookingsHandler(c *gin.Context) {
	var f models.PeriodFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		bindError(c, err)
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	if limit < 0 {
		limit = 0
	}

	sub, err := h.Bookings.Subscribe(c.Request.Context(), f, limit)
	if err != nil {
		respondError(c, "subscribe bookings", err)
		return
	}
	defer sub.Close()

	logger := getLogger(c).With(zap.String("filter", sub.Period.Label))
	logger.Debug("Booking stream opened")

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")

	h.streamBookings(c, logger, sub.Period, sub)
	logger.Debug("Booking stream closed")
}

// bookingFeed is the part of a booking.Subscription the stream reads. Updates is closed once the
// feed ends and Err explains why.
type bookingFeed interface {
	Updates() <-chan []models.Booking
	Err() error
}

// streamBookings writes every list from feed until it ends or the client goes away. Lists already
// buffered when the feed ends are still delivered.
func (h *BookingHandler) streamBookings(c *gin.Context, logger *zap.Logger, p models.Period, feed bookingFeed) {
	keepAlive := time.NewTicker(h.keepAlive)
	defer keepAlive.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case list, ok := <-feed.Updates():
			if !ok {
				h.streamEnded(c, logger, feed)
				return false
			}
			c.SSEvent("bookings", gin.H{
				"period":   p,
				"summary":  report.Aggregate(list),
				"bookings": list,
			})
			return true
		case <-keepAlive.C:
			c.SSEvent("ping", time.Now().Unix())
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

// streamEnded reports a subscription failure to the client before the stream closes.
func (h *BookingHandler) streamEnded(c *gin.Context, logger *zap.Logger, feed bookingFeed) {
	err := feed.Err()
	if err == nil {
		return
	}
	logger.Warn("Booking stream failed", zap.Error(err))
	if link := docstore.IndexLink(err); link != "" {
		c.SSEvent("error", gin.H{"error": msgMissingIndex, "indexUrl": link})
		return
	}
	c.SSEvent("error", gin.H{"error": msgLoadFailed})
}
