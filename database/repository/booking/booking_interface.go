package bookingRepo

import (
	"context"
	"time"

	"asokatrip/database/docstore"
	"asokatrip/models"
)

// Collection is the bookings collection name.
const Collection = "bookings"

// BookingRepository defines methods for booking data access.
type BookingRepository interface {
	// Create stores a new booking and assigns its ID.
	Create(ctx context.Context, b *models.Booking) error
	// GetByID retrieves a booking by its ID.
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// UpdatePaymentStatus overwrites the payment status of a booking.
	UpdatePaymentStatus(ctx context.Context, id string, status models.PaymentStatus, at time.Time) error
	// Delete removes a booking permanently.
	Delete(ctx context.Context, id string) error
	// Find returns the bookings matching q in query order.
	Find(ctx context.Context, q docstore.Query) ([]models.Booking, error)
	// Watch signals every change to the bookings matching q.
	Watch(ctx context.Context, q docstore.Query) (docstore.Watcher, error)
}
