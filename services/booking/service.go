package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"asokatrip/database/docstore"
	"asokatrip/database/repository"
	"asokatrip/metrics"
	"asokatrip/models"
	"asokatrip/services/notification"
	"asokatrip/services/period"
	"asokatrip/services/report"
	"asokatrip/utils"
)

// PackageLookup resolves catalog packages referenced by a booking.
type PackageLookup interface {
	GetByID(ctx context.Context, id string) (*models.TripPackage, error)
}

// BookingService manages bookings entered by the admin.
type BookingService interface {
	CreateManual(ctx context.Context, in models.ManualBookingInput) (*models.Booking, error)
	Get(ctx context.Context, id string) (*models.Booking, error)
	UpdatePaymentStatus(ctx context.Context, id string, status models.PaymentStatus) error
	Delete(ctx context.Context, id string) error
	Subscribe(ctx context.Context, f models.PeriodFilter, limit int) (*Subscription, error)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	repo     repository.BookingRepository
	packages PackageLookup
	notifier notification.NotificationService
	resolver *period.Resolver
	metrics  *metrics.Metrics
	now      func() time.Time
}

func NewDefaultBookingService(
	repo repository.BookingRepository,
	packages PackageLookup,
	notifier notification.NotificationService,
	resolver *period.Resolver,
	m *metrics.Metrics,
) *DefaultBookingService {
	if notifier == nil {
		notifier = notification.Noop{}
	}
	return &DefaultBookingService{
		repo:     repo,
		packages: packages,
		notifier: notifier,
		resolver: resolver,
		metrics:  m,
		now:      time.Now,
	}
}

// CreateManual validates an admin-entered booking, prices it and stores it. Catalog bookings take
// their name from the package; their amount is computed from the package price only when the
// operator left it at 0. Custom bookings keep the operator's name, amount and itinerary details.
func (s *DefaultBookingService) CreateManual(ctx context.Context, in models.ManualBookingInput) (*models.Booking, error) {
	if err := validateManual(&in); err != nil {
		return nil, err
	}

	b := &models.Booking{
		GuestName:     in.GuestName,
		GuestPhone:    in.GuestPhone,
		GuestEmail:    in.GuestEmail,
		PackageID:     in.PackageID,
		Pax:           in.Pax,
		TripDate:      in.TripDate,
		TotalAmount:   in.TotalAmount,
		PaymentStatus: in.PaymentStatus,
		Source:        models.SourceManual,
		Notes:         in.Notes,
		CreatedAt:     s.now(),
	}

	if b.IsCustom() {
		b.PackageName = in.CustomPackageName
		b.CustomDuration = in.CustomDuration
		b.CustomLocation = in.CustomLocation
		b.CustomFeatures = in.CustomFeatures
		b.CustomExclusions = in.CustomExclusions
		b.CustomItinerary = in.CustomItinerary
	} else {
		pkg, err := s.packages.GetByID(ctx, in.PackageID)
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrPackageNotFound, in.PackageID)
		}
		if err != nil {
			return nil, fmt.Errorf("load package %s: %w", in.PackageID, err)
		}
		b.PackageName = pkg.Name
		if b.TotalAmount == 0 {
			b.TotalAmount = CalculateTotal(pkg, in.Pax)
		}
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.BookingsCreated.Inc()
	}
	utils.GetLogger().Info("Booking created",
		zap.String("bookingId", b.ID),
		zap.String("packageId", b.PackageID),
		zap.Int64("totalAmount", b.TotalAmount))

	if err := s.notifier.NotifyNewBooking(ctx, b); err != nil {
		utils.GetLogger().Warn("Failed to notify admins of new booking", zap.String("bookingId", b.ID), zap.Error(err))
	}
	return b, nil
}

func (s *DefaultBookingService) Get(ctx context.Context, id string) (*models.Booking, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdatePaymentStatus overwrites the status. Any state may move to any other; concurrent updates
// are last-write-wins.
func (s *DefaultBookingService) UpdatePaymentStatus(ctx context.Context, id string, status models.PaymentStatus) error {
	if !status.Valid() {
		return NewValidationError("paymentStatus", "Status pembayaran tidak dikenal.")
	}
	if err := s.repo.UpdatePaymentStatus(ctx, id, status, s.now()); err != nil {
		return err
	}
	utils.GetLogger().Info("Booking status updated", zap.String("bookingId", id), zap.String("status", string(status)))
	return nil
}

// Delete removes the booking permanently.
func (s *DefaultBookingService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	utils.GetLogger().Info("Booking deleted", zap.String("bookingId", id))
	return nil
}

// Subscribe opens a live view of the bookings in f's period. The first update carries the current
// list; later ones follow every change until ctx is done or the subscription is closed.
func (s *DefaultBookingService) Subscribe(ctx context.Context, f models.PeriodFilter, limit int) (*Subscription, error) {
	p, err := s.resolver.Period(f, s.now())
	if err != nil {
		return nil, err
	}
	q := report.BuildBookingQuery(p.Interval, limit)

	ctx, cancel := context.WithCancel(ctx)
	w, err := s.repo.Watch(ctx, q)
	if err != nil {
		cancel()
		return nil, err
	}
	sub := newSubscription(p, cancel)
	go sub.run(ctx, s.repo, q, w)
	return sub, nil
}

func validateManual(in *models.ManualBookingInput) error {
	in.GuestName = strings.TrimSpace(in.GuestName)
	in.GuestPhone = strings.TrimSpace(in.GuestPhone)
	in.GuestEmail = strings.TrimSpace(in.GuestEmail)
	in.PackageID = strings.TrimSpace(in.PackageID)
	in.CustomPackageName = strings.TrimSpace(in.CustomPackageName)
	in.TripDate = strings.TrimSpace(in.TripDate)

	if in.GuestName == "" || in.GuestPhone == "" || in.PackageID == "" || in.TripDate == "" {
		return NewValidationError("required", "Nama, Telepon, Paket/Custom, dan Tanggal Trip wajib diisi.")
	}
	if _, err := time.Parse(period.DateLayout, in.TripDate); err != nil {
		return NewValidationError("tripDate", "Tanggal Trip harus berformat YYYY-MM-DD.")
	}
	if in.Pax < 1 {
		return NewValidationError("pax", "Jumlah pax minimal 1.")
	}
	if in.TotalAmount < 0 {
		return NewValidationError("totalAmount", "Total Harga tidak boleh negatif.")
	}
	if in.PaymentStatus == "" {
		in.PaymentStatus = models.PaymentPending
	}
	if !in.PaymentStatus.Valid() {
		return NewValidationError("paymentStatus", "Status pembayaran tidak dikenal.")
	}
	if in.PackageID == models.CustomPackageID {
		if in.CustomPackageName == "" {
			return NewValidationError("customPackageName", "Nama Paket Custom wajib diisi.")
		}
		if in.TotalAmount <= 0 {
			return NewValidationError("totalAmount", "Total Harga untuk paket custom wajib diisi (lebih dari 0).")
		}
	}
	return nil
}
