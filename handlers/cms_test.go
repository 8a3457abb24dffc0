package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"asokatrip/models"
	"asokatrip/services/cms"
)

func newFAQRouter(section ContentSection[models.FAQ]) *gin.Engine {
	r := newRouter()
	NewSectionHandler[models.FAQ]("faqs", section).Register(r.Group("/faqs"))
	return r
}

func TestSectionList(t *testing.T) {
	section := new(MockSection[models.FAQ])
	section.On("List", mock.Anything).Return([]models.FAQ{{ID: "f1", Question: "Berangkat jam berapa?"}}, nil)

	w := doJSON(newFAQRouter(section), http.MethodGet, "/faqs", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"faqs":[`)
	assert.Contains(t, w.Body.String(), "Berangkat jam berapa?")
}

func TestSectionListEmptyIsArray(t *testing.T) {
	section := new(MockSection[models.FAQ])
	section.On("List", mock.Anything).Return(nil, nil)

	w := doJSON(newFAQRouter(section), http.MethodGet, "/faqs", "")

	assert.JSONEq(t, `{"faqs":[]}`, w.Body.String())
}

func TestSectionCreate(t *testing.T) {
	section := new(MockSection[models.FAQ])
	section.On("Create", mock.Anything, &models.FAQ{Question: "Q", Answer: "A"}).Return(&models.FAQ{ID: "f1", Question: "Q", Answer: "A"}, nil)

	w := doJSON(newFAQRouter(section), http.MethodPost, "/faqs", `{"question":"Q","answer":"A"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	section.AssertExpectations(t)
}

func TestSectionCreateValidation(t *testing.T) {
	section := new(MockSection[models.FAQ])
	section.On("Create", mock.Anything, mock.Anything).Return(nil, &cms.ValidationError{Message: "Pertanyaan dan Jawaban wajib diisi."})

	w := doJSON(newFAQRouter(section), http.MethodPost, "/faqs", `{"question":""}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Pertanyaan dan Jawaban wajib diisi.")
}

func TestSectionUpdateAndDelete(t *testing.T) {
	section := new(MockSection[models.FAQ])
	section.On("Update", mock.Anything, "f1", mock.Anything).Return(&models.FAQ{ID: "f1", Question: "Q2"}, nil)
	section.On("Delete", mock.Anything, "f1").Return(nil)
	section.On("Get", mock.Anything, "gone").Return(nil, cms.ErrNotFound)

	r := newFAQRouter(section)
	assert.Equal(t, http.StatusOK, doJSON(r, http.MethodPut, "/faqs/f1", `{"question":"Q2","answer":"A"}`).Code)
	assert.Equal(t, http.StatusNoContent, doJSON(r, http.MethodDelete, "/faqs/f1", "").Code)
	assert.Equal(t, http.StatusNotFound, doJSON(r, http.MethodGet, "/faqs/gone", "").Code)
}

type MockSite struct {
	mock.Mock
}

func (m *MockSite) Landing(ctx context.Context) (*models.LandingPage, error) {
	args := m.Called(ctx)
	return args.Get(0).(*models.LandingPage), args.Error(1)
}

func (m *MockSite) SaveLanding(ctx context.Context, in models.LandingPage) (*models.LandingPage, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LandingPage), args.Error(1)
}

func (m *MockSite) SaveFooter(ctx context.Context, in models.FooterSettings) error {
	return m.Called(ctx, in).Error(0)
}

func (m *MockSite) Gallery(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockSite) AddGalleryImages(ctx context.Context, urls []string) ([]string, error) {
	args := m.Called(ctx, urls)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockSite) RemoveGalleryImage(ctx context.Context, url string) ([]string, error) {
	args := m.Called(ctx, url)
	return args.Get(0).([]string), args.Error(1)
}

func newSettingsRouter(site SiteSettings) *gin.Engine {
	h := NewSettingsHandler(site)
	r := newRouter()
	r.GET("/landing", h.GetLandingHandler)
	r.PUT("/landing", h.SaveLandingHandler)
	r.PUT("/footer", h.SaveFooterHandler)
	r.GET("/gallery", h.GetGalleryHandler)
	r.POST("/gallery", h.AddGalleryImagesHandler)
	r.DELETE("/gallery", h.RemoveGalleryImageHandler)
	return r
}

func TestSaveLandingTooManyHeroImages(t *testing.T) {
	site := new(MockSite)
	site.On("SaveLanding", mock.Anything, mock.Anything).Return(nil, &cms.ValidationError{Message: "Maksimal 5 gambar slider."})

	w := doJSON(newSettingsRouter(site), http.MethodPut, "/landing",
		`{"siteName":"Asoka","heroImages":["1","2","3","4","5","6"]}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Maksimal 5 gambar slider.")
}

func TestSaveFooter(t *testing.T) {
	site := new(MockSite)
	site.On("SaveFooter", mock.Anything, models.FooterSettings{CopyrightText: "© 2024 Asoka Trip"}).Return(nil)

	w := doJSON(newSettingsRouter(site), http.MethodPut, "/footer", `{"copyrightText":"© 2024 Asoka Trip"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	site.AssertExpectations(t)
}

func TestGalleryRoundTrip(t *testing.T) {
	site := new(MockSite)
	site.On("Gallery", mock.Anything).Return([]string{"a"}, nil)
	site.On("AddGalleryImages", mock.Anything, []string{"b"}).Return([]string{"a", "b"}, nil)
	site.On("RemoveGalleryImage", mock.Anything, "a").Return([]string{"b"}, nil)

	r := newSettingsRouter(site)
	assert.JSONEq(t, `{"imageUrls":["a"]}`, doJSON(r, http.MethodGet, "/gallery", "").Body.String())
	assert.JSONEq(t, `{"imageUrls":["a","b"]}`, doJSON(r, http.MethodPost, "/gallery", `{"urls":["b"]}`).Body.String())
	assert.JSONEq(t, `{"imageUrls":["b"]}`, doJSON(r, http.MethodDelete, "/gallery", `{"url":"a"}`).Body.String())
}
