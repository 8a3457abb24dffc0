package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"asokatrip/database/docstore"
	docRepo "asokatrip/database/repository/document"
	"asokatrip/metrics"
	"asokatrip/models"
)

// StoreBookingRepo implements BookingRepository on the document store.
type StoreBookingRepo struct {
	docs *docRepo.Repo[models.Booking]
}

// NewStoreBookingRepo creates a BookingRepository backed by store.
func NewStoreBookingRepo(store docstore.Store, m *metrics.Metrics) BookingRepository {
	return &StoreBookingRepo{docs: docRepo.New[models.Booking](store, Collection, m)}
}

func (r *StoreBookingRepo) Create(ctx context.Context, b *models.Booking) error {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now()
	}
	if _, err := r.docs.Create(ctx, b); err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (r *StoreBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	return r.docs.GetByID(ctx, id)
}

func (r *StoreBookingRepo) UpdatePaymentStatus(ctx context.Context, id string, status models.PaymentStatus, at time.Time) error {
	return r.docs.Update(ctx, id, map[string]interface{}{
		"paymentStatus": string(status),
		"updatedAt":     at,
	})
}

func (r *StoreBookingRepo) Delete(ctx context.Context, id string) error {
	return r.docs.Delete(ctx, id)
}

func (r *StoreBookingRepo) Find(ctx context.Context, q docstore.Query) ([]models.Booking, error) {
	return r.docs.Find(ctx, q)
}

func (r *StoreBookingRepo) Watch(ctx context.Context, q docstore.Query) (docstore.Watcher, error) {
	return r.docs.Watch(ctx, q)
}
