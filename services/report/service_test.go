package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"asokatrip/database/docstore"
	"asokatrip/models"
	"asokatrip/services/period"
)

type MockBookingFinder struct {
	mock.Mock
}

func (m *MockBookingFinder) Find(ctx context.Context, q docstore.Query) ([]models.Booking, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Booking), args.Error(1)
}

type MockPackageCounter struct {
	mock.Mock
}

func (m *MockPackageCounter) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

var wib = time.FixedZone("WIB", 7*60*60)

func newTestService(f BookingFinder, p PackageCounter) *Service {
	s := NewService(f, p, period.NewResolver(wib, time.Monday), NewTracker(), time.Second, nil)
	s.now = func() time.Time { return time.Date(2024, 3, 15, 10, 0, 0, 0, wib) }
	return s
}

func TestLoadMonth(t *testing.T) {
	finder := &MockBookingFinder{}
	svc := newTestService(finder, nil)

	want := BuildBookingQuery(&models.Interval{
		Start: time.Date(2024, 3, 1, 0, 0, 0, 0, wib),
		End:   time.Date(2024, 3, 31, 23, 59, 59, 999_000_000, wib),
	}, 0)
	list := []models.Booking{
		{ID: "b2", TotalAmount: 200, PaymentStatus: models.PaymentPaid},
		{ID: "b1", TotalAmount: 100, PaymentStatus: models.PaymentPending},
	}
	finder.On("Find", mock.Anything, want).Return(list, nil)

	rep, err := svc.Load(context.Background(), "uid:report", models.PeriodFilter{Token: models.FilterMonth})
	require.NoError(t, err)
	assert.Equal(t, "Bulan Ini", rep.Period.Label)
	assert.Equal(t, list, rep.Bookings)
	assert.Equal(t, models.BookingSummary{TotalRevenue: 200, PaidBookingCount: 1, AverageOrderValue: 200, TotalBookingCount: 2}, rep.Summary)
	assert.NotZero(t, rep.RequestID)
	finder.AssertExpectations(t)
}

func TestLoadInvalidRangeSkipsQuery(t *testing.T) {
	finder := &MockBookingFinder{}
	svc := newTestService(finder, nil)

	_, err := svc.Load(context.Background(), "uid:report", models.PeriodFilter{
		Token: models.FilterCustom, Start: "2024-03-10", End: "2024-03-01",
	})
	assert.ErrorIs(t, err, period.ErrInvalidDateRange)
	finder.AssertNotCalled(t, "Find", mock.Anything, mock.Anything)
}

func TestLoadPropagatesMissingIndex(t *testing.T) {
	finder := &MockBookingFinder{}
	svc := newTestService(finder, nil)

	idxErr := &docstore.IndexError{Collection: "bookings", Link: "https://console.firebase.google.com/x", Cause: errors.New("boom")}
	finder.On("Find", mock.Anything, mock.Anything).Return(nil, idxErr)

	_, err := svc.Load(context.Background(), "uid:report", models.PeriodFilter{Token: models.FilterYear})
	assert.ErrorIs(t, err, docstore.ErrMissingIndex)
	assert.Equal(t, "https://console.firebase.google.com/x", docstore.IndexLink(err))
}

func TestLoadSuperseded(t *testing.T) {
	finder := &MockBookingFinder{}
	svc := newTestService(finder, nil)

	started := make(chan struct{})
	finder.On("Find", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		close(started)
		<-args.Get(0).(context.Context).Done()
	}).Return(nil, context.Canceled).Once()
	finder.On("Find", mock.Anything, mock.Anything).Return([]models.Booking{}, nil).Once()

	errCh := make(chan error, 1)
	go func() {
		_, err := svc.Load(context.Background(), "uid:bookings", models.PeriodFilter{Token: models.FilterWeek})
		errCh <- err
	}()
	<-started

	rep, err := svc.Load(context.Background(), "uid:bookings", models.PeriodFilter{Token: models.FilterMonth})
	require.NoError(t, err)
	assert.Equal(t, "Bulan Ini", rep.Period.Label)

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, ErrSuperseded)
	case <-time.After(2 * time.Second):
		t.Fatal("first load was not cancelled")
	}
}

func TestDashboard(t *testing.T) {
	finder := &MockBookingFinder{}
	counter := &MockPackageCounter{}
	svc := newTestService(finder, counter)

	list := []models.Booking{
		{ID: "6", TripDate: "2024-03-15", TotalAmount: 100, PaymentStatus: models.PaymentPaid},
		{ID: "5", TripDate: "2024-03-16", TotalAmount: 300, PaymentStatus: models.PaymentPending},
		{ID: "4", TripDate: "2024-03-01", TotalAmount: 200, PaymentStatus: models.PaymentPaid},
		{ID: "3", TripDate: "2024-04-01", TotalAmount: 50, PaymentStatus: models.PaymentCancelled},
		{ID: "2", TotalAmount: 10, PaymentStatus: models.PaymentPending},
		{ID: "1", TripDate: "2024-02-01", TotalAmount: 400, PaymentStatus: models.PaymentPaid},
	}
	counter.On("Count", mock.Anything).Return(int64(7), nil)
	finder.On("Find", mock.Anything, BuildBookingQuery(nil, 0)).Return(list, nil)

	d, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), d.TotalTrips)
	assert.Equal(t, 6, d.TotalBookings)
	assert.Equal(t, 2, d.PendingBookings)
	assert.Equal(t, int64(700), d.TotalRevenue)
	assert.Len(t, d.RecentBookings, RecentLimit)
	assert.Equal(t, "6", d.RecentBookings[0].ID)

	require.Len(t, d.Schedule.Today, 1)
	assert.Equal(t, "6", d.Schedule.Today[0].ID)
	require.Len(t, d.Schedule.Tomorrow, 1)
	assert.Equal(t, "5", d.Schedule.Tomorrow[0].ID)
	assert.Len(t, d.Schedule.Completed, 2)
}

func TestDashboardCountFailure(t *testing.T) {
	counter := &MockPackageCounter{}
	svc := newTestService(&MockBookingFinder{}, counter)
	counter.On("Count", mock.Anything).Return(int64(0), docstore.ErrQueryFailed)

	_, err := svc.Dashboard(context.Background())
	assert.ErrorIs(t, err, docstore.ErrQueryFailed)
}
