package cms

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"asokatrip/database/docstore"
	contentRepo "asokatrip/database/repository/content"
	"asokatrip/models"
)

type MockDocs[T any] struct {
	mock.Mock
	name string
}

func (m *MockDocs[T]) Name() string { return m.name }

func (m *MockDocs[T]) Find(ctx context.Context, q docstore.Query) ([]T, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]T), args.Error(1)
}

func (m *MockDocs[T]) GetByID(ctx context.Context, id string) (*T, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockDocs[T]) Create(ctx context.Context, doc *T) (string, error) {
	args := m.Called(ctx, doc)
	return args.String(0), args.Error(1)
}

func (m *MockDocs[T]) Save(ctx context.Context, id string, doc *T) error {
	return m.Called(ctx, id, doc).Error(0)
}

func (m *MockDocs[T]) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockSingleton[T any] struct {
	mock.Mock
}

func (m *MockSingleton[T]) GetOrZero(ctx context.Context, id string) (*T, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockSingleton[T]) Merge(ctx context.Context, id string, fields map[string]interface{}) error {
	return m.Called(ctx, id, fields).Error(0)
}

type MockPackages struct {
	mock.Mock
}

func (m *MockPackages) ListPublic(ctx context.Context, limit int) ([]models.TripPackage, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TripPackage), args.Error(1)
}

type MockCleaner struct {
	mock.Mock
}

func (m *MockCleaner) EnqueueMediaCleanup(ctx context.Context, urls []string) error {
	return m.Called(ctx, urls).Error(0)
}

type fixture struct {
	svc          *Service
	blog         *MockDocs[models.BlogPost]
	testimonials *MockDocs[models.Testimonial]
	faqs         *MockDocs[models.FAQ]
	whyUs        *MockDocs[models.WhyUsPoint]
	destinations *MockDocs[models.Destination]
	settings     *MockSingleton[models.LandingPage]
	gallery      *MockSingleton[models.Gallery]
	packages     *MockPackages
	cleaner      *MockCleaner
}

func newFixture() *fixture {
	f := &fixture{
		blog:         &MockDocs[models.BlogPost]{name: contentRepo.BlogPosts},
		testimonials: &MockDocs[models.Testimonial]{name: contentRepo.Testimonials},
		faqs:         &MockDocs[models.FAQ]{name: contentRepo.FAQs},
		whyUs:        &MockDocs[models.WhyUsPoint]{name: contentRepo.WhyUsPoints},
		destinations: &MockDocs[models.Destination]{name: contentRepo.Destinations},
		settings:     new(MockSingleton[models.LandingPage]),
		gallery:      new(MockSingleton[models.Gallery]),
		packages:     new(MockPackages),
		cleaner:      new(MockCleaner),
	}
	f.svc = NewService(Collections{
		Blog:         f.blog,
		Testimonials: f.testimonials,
		FAQs:         f.faqs,
		WhyUs:        f.whyUs,
		Destinations: f.destinations,
		Settings:     f.settings,
		Gallery:      f.gallery,
	}, f.packages, f.cleaner)
	return f
}

func TestCreatePostDerivesSlugAndStamps(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.blog.On("Create", ctx, mock.AnythingOfType("*models.BlogPost")).Return("post-1", nil)

	post, err := f.svc.Blog.Create(ctx, &models.BlogPost{Title: "Tips Ke Bromo Saat Musim Hujan", Content: "...", ImageURL: "img"})
	require.NoError(t, err)
	assert.Equal(t, "tips-ke-bromo-saat-musim-hujan", post.Slug)
	assert.Equal(t, models.PostDraft, post.Status)
	assert.False(t, post.CreatedAt.IsZero())
}

func TestCreatePostValidation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.Blog.Create(ctx, &models.BlogPost{Title: "x"})
	require.True(t, IsValidationError(err))
	assert.Equal(t, "Judul dan Konten Artikel wajib diisi.", err.Error())

	_, err = f.svc.Blog.Create(ctx, &models.BlogPost{Title: "x", Content: "y"})
	assert.EqualError(t, err, "Gambar utama wajib diupload.")
	f.blog.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpdateKeepsCreatedAtAndCleansOldImage(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	f.destinations.On("GetByID", ctx, "d1").Return(&models.Destination{ID: "d1", Name: "Ijen", ImageURL: "old", CreatedAt: created}, nil)
	f.destinations.On("Save", ctx, "d1", mock.Anything).Return(nil)
	f.cleaner.On("EnqueueMediaCleanup", ctx, []string{"old"}).Return(nil)

	d, err := f.svc.Destinations.Update(ctx, "d1", &models.Destination{Name: "Kawah Ijen", ImageURL: "new"})
	require.NoError(t, err)
	assert.Equal(t, "d1", d.ID)
	assert.Equal(t, created, d.CreatedAt)
	f.cleaner.AssertExpectations(t)
}

func TestDeleteMissingEntry(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.faqs.On("GetByID", ctx, "nope").Return(nil, docstore.ErrNotFound)

	err := f.svc.FAQs.Delete(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
	f.faqs.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteTestimonialHasNoMedia(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.testimonials.On("GetByID", ctx, "t1").Return(&models.Testimonial{ID: "t1"}, nil)
	f.testimonials.On("Delete", ctx, "t1").Return(nil)

	require.NoError(t, f.svc.Testimonials.Delete(ctx, "t1"))
	f.cleaner.AssertNotCalled(t, "EnqueueMediaCleanup", mock.Anything, mock.Anything)
}

func TestPublishedPost(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	bySlug := func(slug string) docstore.Query {
		return docstore.Query{Limit: 1}.Where("slug", docstore.Eq, slug)
	}
	f.blog.On("Find", ctx, bySlug("rilis")).Return([]models.BlogPost{{ID: "b1", Status: models.PostPublished}}, nil)
	f.blog.On("Find", ctx, bySlug("draf")).Return([]models.BlogPost{{ID: "b2", Status: models.PostDraft}}, nil)
	f.blog.On("Find", ctx, bySlug("b3")).Return([]models.BlogPost{}, nil)
	f.blog.On("GetByID", ctx, "b3").Return(&models.BlogPost{ID: "b3", Status: models.PostPublished}, nil)

	p, err := f.svc.PublishedPost(ctx, "rilis")
	require.NoError(t, err)
	assert.Equal(t, "b1", p.ID)

	_, err = f.svc.PublishedPost(ctx, "draf")
	assert.ErrorIs(t, err, ErrNotFound)

	p, err = f.svc.PublishedPost(ctx, "b3")
	require.NoError(t, err)
	assert.Equal(t, "b3", p.ID)
}

func TestSaveLandingMergesOnlyLandingFields(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	current := &models.LandingPage{SiteName: "Asoka", LogoURL: "logo-old", HeroImages: []string{"h1", "h2"}}
	current.CopyrightText = "© Asoka"
	f.settings.On("GetOrZero", ctx, contentRepo.LandingPageID).Return(current, nil)
	f.settings.On("Merge", ctx, contentRepo.LandingPageID, mock.MatchedBy(func(m map[string]interface{}) bool {
		_, hasFooter := m["copyrightText"]
		return m["siteName"] == "Asoka Trip" && !hasFooter
	})).Return(nil)
	f.cleaner.On("EnqueueMediaCleanup", ctx, []string{"logo-old", "h1"}).Return(nil)

	out, err := f.svc.SaveLanding(ctx, models.LandingPage{SiteName: " Asoka Trip ", LogoURL: "logo-new", HeroImages: []string{"h2"}})
	require.NoError(t, err)
	assert.Equal(t, "© Asoka", out.CopyrightText)
	f.settings.AssertExpectations(t)
	f.cleaner.AssertExpectations(t)
}

func TestSaveLandingValidation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.SaveLanding(ctx, models.LandingPage{})
	assert.EqualError(t, err, "Nama Website wajib diisi.")

	_, err = f.svc.SaveLanding(ctx, models.LandingPage{SiteName: "A", HeroImages: make([]string, MaxHeroImages+1)})
	assert.True(t, IsValidationError(err))
}

func TestSaveFooter(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	footer := models.FooterSettings{CopyrightText: "© 2024"}
	f.settings.On("Merge", ctx, contentRepo.LandingPageID, footer.Fields()).Return(nil)

	require.NoError(t, f.svc.SaveFooter(ctx, footer))
	f.settings.AssertExpectations(t)
}

func TestGalleryAddRemove(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.gallery.On("GetOrZero", ctx, contentRepo.GalleryID).Return(&models.Gallery{ImageURLs: []string{"g1"}}, nil).Once()
	f.gallery.On("Merge", ctx, contentRepo.GalleryID, map[string]interface{}{"imageUrls": []string{"g1", "g2"}}).Return(nil).Once()

	images, err := f.svc.AddGalleryImages(ctx, []string{"g1", "g2"})
	require.NoError(t, err)
	assert.Equal(t, []string{"g1", "g2"}, images)

	f.gallery.On("GetOrZero", ctx, contentRepo.GalleryID).Return(&models.Gallery{ImageURLs: []string{"g1", "g2"}}, nil).Once()
	f.gallery.On("Merge", ctx, contentRepo.GalleryID, map[string]interface{}{"imageUrls": []string{"g2"}}).Return(nil).Once()
	f.cleaner.On("EnqueueMediaCleanup", ctx, []string{"g1"}).Return(nil)

	images, err = f.svc.RemoveGalleryImage(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, []string{"g2"}, images)
	f.gallery.AssertExpectations(t)
}

func TestGalleryLimit(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	full := make([]string, MaxGalleryImages)
	for i := range full {
		full[i] = time.Duration(i).String()
	}
	f.gallery.On("GetOrZero", ctx, contentRepo.GalleryID).Return(&models.Gallery{ImageURLs: full}, nil)

	_, err := f.svc.AddGalleryImages(ctx, []string{"one-more"})
	assert.True(t, IsValidationError(err))
	f.gallery.AssertNotCalled(t, "Merge", mock.Anything, mock.Anything, mock.Anything)
}

func TestPublicLandingUsesSectionLimits(t *testing.T) {
	f := newFixture()
	ctx := mock.Anything

	asc := func(limit int) docstore.Query {
		return docstore.Query{OrderBy: "createdAt", Direction: docstore.Asc, Limit: limit}
	}
	desc := func(limit int) docstore.Query {
		return docstore.Query{OrderBy: "createdAt", Direction: docstore.Desc, Limit: limit}
	}

	f.settings.On("GetOrZero", ctx, contentRepo.LandingPageID).Return(&models.LandingPage{SiteName: "Asoka Trip"}, nil)
	f.packages.On("ListPublic", ctx, 6).Return([]models.TripPackage{{ID: "p1"}}, nil)
	f.whyUs.On("Find", ctx, asc(6)).Return([]models.WhyUsPoint{{ID: "w1"}}, nil)
	f.blog.On("Find", ctx, desc(3).Where("status", docstore.Eq, "published")).Return([]models.BlogPost{{ID: "b1"}}, nil)
	f.gallery.On("GetOrZero", ctx, contentRepo.GalleryID).Return(&models.Gallery{}, nil)
	f.testimonials.On("Find", ctx, desc(5)).Return([]models.Testimonial{{ID: "t1"}}, nil)
	f.faqs.On("Find", ctx, asc(5)).Return([]models.FAQ{{ID: "f1"}}, nil)

	out, err := f.svc.PublicLanding(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Asoka Trip", out.Settings.SiteName)
	assert.Len(t, out.Packages, 1)
	assert.Len(t, out.Articles, 1)
	assert.Equal(t, []string{}, out.Gallery)
	assert.Len(t, out.FAQs, 1)
}

func TestPublicLandingFailsWhenASectionFails(t *testing.T) {
	f := newFixture()
	ctx := mock.Anything

	f.settings.On("GetOrZero", ctx, contentRepo.LandingPageID).Return(&models.LandingPage{}, nil)
	f.packages.On("ListPublic", ctx, 6).Return(nil, &docstore.IndexError{Collection: "packages"})
	f.whyUs.On("Find", ctx, mock.Anything).Return([]models.WhyUsPoint{}, nil)
	f.blog.On("Find", ctx, mock.Anything).Return([]models.BlogPost{}, nil)
	f.gallery.On("GetOrZero", ctx, contentRepo.GalleryID).Return(&models.Gallery{}, nil)
	f.testimonials.On("Find", ctx, mock.Anything).Return([]models.Testimonial{}, nil)
	f.faqs.On("Find", ctx, mock.Anything).Return([]models.FAQ{}, nil)

	_, err := f.svc.PublicLanding(context.Background())
	assert.ErrorIs(t, err, docstore.ErrMissingIndex)
}
