package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"

	"asokatrip/models"
	"asokatrip/services/booking"
	"asokatrip/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testAdmin = &models.AdminUser{UID: "admin-1", Email: "admin@asoka.id"}

// newRouter returns an engine whose requests carry testAdmin, as after AdminAuthMiddleware.
func newRouter() *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(utils.ContextAdminKey, testAdmin)
		c.Next()
	})
	return r
}

func doJSON(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type MockReports struct {
	mock.Mock
}

func (m *MockReports) Load(ctx context.Context, viewKey string, f models.PeriodFilter) (*models.BookingReport, error) {
	args := m.Called(ctx, viewKey, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingReport), args.Error(1)
}

func (m *MockReports) Dashboard(ctx context.Context) (*models.DashboardSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DashboardSummary), args.Error(1)
}

type MockBookings struct {
	mock.Mock
}

func (m *MockBookings) CreateManual(ctx context.Context, in models.ManualBookingInput) (*models.Booking, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookings) Get(ctx context.Context, id string) (*models.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookings) UpdatePaymentStatus(ctx context.Context, id string, status models.PaymentStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockBookings) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockBookings) Subscribe(ctx context.Context, f models.PeriodFilter, limit int) (*booking.Subscription, error) {
	args := m.Called(ctx, f, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Subscription), args.Error(1)
}

type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) pkg(args mock.Arguments) (*models.TripPackage, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TripPackage), args.Error(1)
}

func (m *MockCatalog) Create(ctx context.Context, in models.PackageInput, vendorID string) (*models.TripPackage, error) {
	return m.pkg(m.Called(ctx, in, vendorID))
}

func (m *MockCatalog) Update(ctx context.Context, id string, in models.PackageInput, vendorID string) (*models.TripPackage, error) {
	return m.pkg(m.Called(ctx, id, in, vendorID))
}

func (m *MockCatalog) Get(ctx context.Context, id string) (*models.TripPackage, error) {
	return m.pkg(m.Called(ctx, id))
}

func (m *MockCatalog) GetPublic(ctx context.Context, slugOrID string) (*models.TripPackage, error) {
	return m.pkg(m.Called(ctx, slugOrID))
}

func (m *MockCatalog) List(ctx context.Context, status models.PackageStatus) ([]models.TripPackage, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]models.TripPackage), args.Error(1)
}

func (m *MockCatalog) ListPublic(ctx context.Context, limit int) ([]models.TripPackage, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]models.TripPackage), args.Error(1)
}

func (m *MockCatalog) ToggleStatus(ctx context.Context, id string) (*models.TripPackage, error) {
	return m.pkg(m.Called(ctx, id))
}

func (m *MockCatalog) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCatalog) AddImages(ctx context.Context, id string, urls []string) (*models.TripPackage, error) {
	return m.pkg(m.Called(ctx, id, urls))
}

func (m *MockCatalog) RemoveImage(ctx context.Context, id, url string) (*models.TripPackage, error) {
	return m.pkg(m.Called(ctx, id, url))
}

func (m *MockCatalog) Options(ctx context.Context) ([]models.PackageOption, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.PackageOption), args.Error(1)
}

func (m *MockCatalog) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockSection[T any] struct {
	mock.Mock
}

func (m *MockSection[T]) one(args mock.Arguments) (*T, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockSection[T]) List(ctx context.Context) ([]T, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]T), args.Error(1)
}

func (m *MockSection[T]) Get(ctx context.Context, id string) (*T, error) {
	return m.one(m.Called(ctx, id))
}

func (m *MockSection[T]) Create(ctx context.Context, doc *T) (*T, error) {
	return m.one(m.Called(ctx, doc))
}

func (m *MockSection[T]) Update(ctx context.Context, id string, doc *T) (*T, error) {
	return m.one(m.Called(ctx, id, doc))
}

func (m *MockSection[T]) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) UploadFile(ctx context.Context, r io.Reader, filename, folder string) (string, error) {
	args := m.Called(ctx, r, filename, folder)
	return args.String(0), args.Error(1)
}

func (m *MockStorage) DeleteFile(ctx context.Context, publicURL string) error {
	return m.Called(ctx, publicURL).Error(0)
}
