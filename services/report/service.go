package report

import (
	"context"
	"time"

	"go.uber.org/zap"

	"asokatrip/database/docstore"
	"asokatrip/metrics"
	"asokatrip/models"
	"asokatrip/services/period"
	"asokatrip/utils"
)

const (
	// RecentLimit is the number of bookings shown in the dashboard's recent list.
	RecentLimit = 5
	// scheduleWindow is how many of the newest bookings feed the dashboard trip schedule.
	scheduleWindow = 20
)

// BookingFinder runs booking queries.
type BookingFinder interface {
	Find(ctx context.Context, q docstore.Query) ([]models.Booking, error)
}

// PackageCounter counts catalog packages.
type PackageCounter interface {
	Count(ctx context.Context) (int64, error)
}

// Service loads filtered booking reports and the dashboard summary.
type Service struct {
	bookings BookingFinder
	packages PackageCounter
	resolver *period.Resolver
	tracker  *Tracker
	timeout  time.Duration
	metrics  *metrics.Metrics
	now      func() time.Time
}

// NewService wires a report Service. timeout bounds each query; zero means no bound beyond the
// caller's context.
func NewService(bookings BookingFinder, packages PackageCounter, resolver *period.Resolver, tracker *Tracker, timeout time.Duration, m *metrics.Metrics) *Service {
	if tracker == nil {
		tracker = NewTracker()
	}
	return &Service{
		bookings: bookings,
		packages: packages,
		resolver: resolver,
		tracker:  tracker,
		timeout:  timeout,
		metrics:  m,
		now:      time.Now,
	}
}

// Load resolves f, queries the bookings in that period and summarises them. viewKey identifies the
// admin session and screen; a newer Load for the same key cancels this one, which then returns
// ErrSuperseded. An invalid period returns period.ErrInvalidDateRange before any query runs.
func (s *Service) Load(ctx context.Context, viewKey string, f models.PeriodFilter) (*models.BookingReport, error) {
	p, err := s.resolver.Period(f, s.now())
	if err != nil {
		return nil, err
	}

	ctx, id, release := s.tracker.Begin(ctx, viewKey)
	defer release()

	list, err := s.find(ctx, BuildBookingQuery(p.Interval, 0))
	if !s.tracker.Current(viewKey, id) {
		if s.metrics != nil {
			s.metrics.SupersededLoads.Inc()
		}
		utils.GetLogger().Debug("Report load superseded", zap.String("view", viewKey), zap.Uint64("requestId", id))
		return nil, ErrSuperseded
	}
	if err != nil {
		return nil, err
	}

	return &models.BookingReport{
		RequestID: id,
		Period:    p,
		Summary:   Aggregate(list),
		Bookings:  list,
	}, nil
}

// Dashboard returns the catalog size, all-time booking totals, the newest bookings and the trip
// schedule around today.
func (s *Service) Dashboard(ctx context.Context) (*models.DashboardSummary, error) {
	trips, err := s.packages.Count(ctx)
	if err != nil {
		return nil, err
	}
	all, err := s.find(ctx, BuildBookingQuery(nil, 0))
	if err != nil {
		return nil, err
	}

	summary := Aggregate(all)
	out := &models.DashboardSummary{
		TotalTrips:     trips,
		TotalBookings:  summary.TotalBookingCount,
		TotalRevenue:   summary.TotalRevenue,
		RecentBookings: head(all, RecentLimit),
	}
	for _, b := range all {
		if b.PaymentStatus == models.PaymentPending {
			out.PendingBookings++
		}
	}
	out.Schedule = Schedule(head(all, scheduleWindow), s.now().In(s.resolver.Location()))
	return out, nil
}

// Schedule groups bookings by trip date: today, tomorrow, or already past. Later trips and bookings
// without a trip date are left out.
func Schedule(bookings []models.Booking, today time.Time) models.TripSchedule {
	todayStr := today.Format(period.DateLayout)
	tomorrowStr := today.AddDate(0, 0, 1).Format(period.DateLayout)

	sched := models.TripSchedule{
		Today:     []models.Booking{},
		Tomorrow:  []models.Booking{},
		Completed: []models.Booking{},
	}
	for _, b := range bookings {
		switch {
		case b.TripDate == "":
		case b.TripDate == todayStr:
			sched.Today = append(sched.Today, b)
		case b.TripDate == tomorrowStr:
			sched.Tomorrow = append(sched.Tomorrow, b)
		case b.TripDate < todayStr:
			sched.Completed = append(sched.Completed, b)
		}
	}
	return sched
}

func (s *Service) find(ctx context.Context, q docstore.Query) ([]models.Booking, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	return s.bookings.Find(ctx, q)
}

func head(list []models.Booking, n int) []models.Booking {
	if len(list) > n {
		return list[:n]
	}
	return list
}
