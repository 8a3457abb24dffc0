// Package cms edits the public site content: blog, testimonials, FAQs, "why us" points,
// destinations, the landing page settings and the photo gallery.
package cms

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"asokatrip/database/docstore"
	"asokatrip/database/repository"
	contentRepo "asokatrip/database/repository/content"
	docRepo "asokatrip/database/repository/document"
	"asokatrip/models"
	"asokatrip/services/tasks"
	"asokatrip/utils"
)

// Limits on the singleton image lists.
const (
	MaxHeroImages    = 5
	MaxGalleryImages = 100
)

// Home page section sizes.
const (
	landingPackages     = 6
	landingWhyUs        = 6
	landingArticles     = 3
	landingTestimonials = 5
	landingFAQs         = 5
)

// Singleton is access to one fixed document.
type Singleton[T any] interface {
	GetOrZero(ctx context.Context, id string) (*T, error)
	Merge(ctx context.Context, id string, fields map[string]interface{}) error
}

// PublicPackages lists the packages shown on the home page.
type PublicPackages interface {
	ListPublic(ctx context.Context, limit int) ([]models.TripPackage, error)
}

// Collections is the storage behind a Service.
type Collections struct {
	Blog         Documents[models.BlogPost]
	Testimonials Documents[models.Testimonial]
	FAQs         Documents[models.FAQ]
	WhyUs        Documents[models.WhyUsPoint]
	Destinations Documents[models.Destination]
	Settings     Singleton[models.LandingPage]
	Gallery      Singleton[models.Gallery]
}

// FromRepos adapts the content repositories.
func FromRepos(r *repository.ContentRepos) Collections {
	return Collections{
		Blog:         r.Blog,
		Testimonials: r.Testimonials,
		FAQs:         r.FAQs,
		WhyUs:        r.WhyUs,
		Destinations: r.Destinations,
		Settings:     r.Settings,
		Gallery:      r.Gallery,
	}
}

// Service edits site content and assembles the public home page.
type Service struct {
	Blog         *Section[models.BlogPost, *models.BlogPost]
	Testimonials *Section[models.Testimonial, *models.Testimonial]
	FAQs         *Section[models.FAQ, *models.FAQ]
	WhyUs        *Section[models.WhyUsPoint, *models.WhyUsPoint]
	Destinations *Section[models.Destination, *models.Destination]

	blog     Documents[models.BlogPost]
	settings Singleton[models.LandingPage]
	gallery  Singleton[models.Gallery]
	packages PublicPackages
	cleaner  tasks.MediaCleaner
}

func NewService(c Collections, packages PublicPackages, cleaner tasks.MediaCleaner) *Service {
	if cleaner == nil {
		cleaner = tasks.NoopCleaner{}
	}
	now := time.Now
	asc := docstore.Query{OrderBy: "createdAt", Direction: docstore.Asc}

	return &Service{
		Blog: &Section[models.BlogPost, *models.BlogPost]{
			docs: c.Blog, order: docRepo.Newest(), validate: validatePost, cleaner: cleaner, now: now,
			media: func(p *models.BlogPost) []string { return []string{p.ImageURL} },
		},
		Testimonials: &Section[models.Testimonial, *models.Testimonial]{
			docs: c.Testimonials, order: docRepo.Newest(), validate: validateTestimonial, cleaner: cleaner, now: now,
		},
		FAQs: &Section[models.FAQ, *models.FAQ]{
			docs: c.FAQs, order: asc, validate: validateFAQ, cleaner: cleaner, now: now,
		},
		WhyUs: &Section[models.WhyUsPoint, *models.WhyUsPoint]{
			docs: c.WhyUs, order: asc, validate: validateWhyUs, cleaner: cleaner, now: now,
		},
		Destinations: &Section[models.Destination, *models.Destination]{
			docs: c.Destinations, order: docstore.Query{OrderBy: "name", Direction: docstore.Asc},
			validate: validateDestination, cleaner: cleaner, now: now,
			media: func(d *models.Destination) []string { return []string{d.ImageURL} },
		},
		blog:     c.Blog,
		settings: c.Settings,
		gallery:  c.Gallery,
		packages: packages,
		cleaner:  cleaner,
	}
}

// PublishedPosts returns the newest published posts, at most limit when limit > 0.
func (s *Service) PublishedPosts(ctx context.Context, limit int) ([]models.BlogPost, error) {
	q := docRepo.Newest().Where("status", docstore.Eq, string(models.PostPublished))
	q.Limit = limit
	return s.blog.Find(ctx, q)
}

// PublishedPost finds a published post by slug, falling back to its id.
func (s *Service) PublishedPost(ctx context.Context, slugOrID string) (*models.BlogPost, error) {
	q := docstore.Query{Limit: 1}.Where("slug", docstore.Eq, slugOrID)
	posts, err := s.blog.Find(ctx, q)
	if err != nil {
		return nil, err
	}
	var post *models.BlogPost
	if len(posts) > 0 {
		post = &posts[0]
	} else if post, err = s.Blog.Get(ctx, slugOrID); err != nil {
		return nil, err
	}
	if post.Status != models.PostPublished {
		return nil, ErrNotFound
	}
	return post, nil
}

// Landing returns the landing page settings, empty when never saved.
func (s *Service) Landing(ctx context.Context) (*models.LandingPage, error) {
	return s.settings.GetOrZero(ctx, contentRepo.LandingPageID)
}

// SaveLanding merges the landing page fields, leaving the footer untouched. A replaced logo and
// removed slider images are queued for deletion.
func (s *Service) SaveLanding(ctx context.Context, in models.LandingPage) (*models.LandingPage, error) {
	in.SiteName = strings.TrimSpace(in.SiteName)
	if in.SiteName == "" {
		return nil, invalid("Nama Website wajib diisi.")
	}
	if len(in.HeroImages) > MaxHeroImages {
		return nil, invalid("Maksimal 5 gambar slider.")
	}
	current, err := s.Landing(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.settings.Merge(ctx, contentRepo.LandingPageID, in.LandingFields()); err != nil {
		return nil, err
	}

	enqueueCleanup(ctx, s.cleaner, dropped(append([]string{current.LogoURL}, current.HeroImages...),
		append([]string{in.LogoURL}, in.HeroImages...)))

	in.FooterSettings = current.FooterSettings
	return &in, nil
}

// SaveFooter merges the footer fields into the landing page document.
func (s *Service) SaveFooter(ctx context.Context, in models.FooterSettings) error {
	return s.settings.Merge(ctx, contentRepo.LandingPageID, in.Fields())
}

// Gallery returns the gallery images, empty when never saved.
func (s *Service) Gallery(ctx context.Context) ([]string, error) {
	g, err := s.gallery.GetOrZero(ctx, contentRepo.GalleryID)
	if err != nil {
		return nil, err
	}
	if g.ImageURLs == nil {
		return []string{}, nil
	}
	return g.ImageURLs, nil
}

// AddGalleryImages appends new images, skipping duplicates.
func (s *Service) AddGalleryImages(ctx context.Context, urls []string) ([]string, error) {
	images, err := s.Gallery(ctx)
	if err != nil {
		return nil, err
	}
	have := make(map[string]bool, len(images))
	for _, u := range images {
		have[u] = true
	}
	for _, u := range urls {
		if u = strings.TrimSpace(u); u != "" && !have[u] {
			images = append(images, u)
			have[u] = true
		}
	}
	if len(images) > MaxGalleryImages {
		return nil, invalid("Galeri maksimal 100 foto.")
	}
	if err := s.gallery.Merge(ctx, contentRepo.GalleryID, map[string]interface{}{"imageUrls": images}); err != nil {
		return nil, err
	}
	return images, nil
}

// RemoveGalleryImage removes url from the gallery and queues it for deletion.
func (s *Service) RemoveGalleryImage(ctx context.Context, url string) ([]string, error) {
	images, err := s.Gallery(ctx)
	if err != nil {
		return nil, err
	}
	kept := make([]string, 0, len(images))
	for _, u := range images {
		if u != url {
			kept = append(kept, u)
		}
	}
	if len(kept) == len(images) {
		return images, nil
	}
	if err := s.gallery.Merge(ctx, contentRepo.GalleryID, map[string]interface{}{"imageUrls": kept}); err != nil {
		return nil, err
	}
	enqueueCleanup(ctx, s.cleaner, []string{url})
	return kept, nil
}

// PublicLanding loads every home page section concurrently.
func (s *Service) PublicLanding(ctx context.Context) (*models.PublicLanding, error) {
	out := &models.PublicLanding{}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		settings, err := s.Landing(ctx)
		if err == nil {
			out.Settings = *settings
		}
		return err
	})
	g.Go(func() (err error) {
		out.Packages, err = s.packages.ListPublic(ctx, landingPackages)
		return err
	})
	g.Go(func() (err error) {
		out.WhyUs, err = s.WhyUs.Latest(ctx, landingWhyUs)
		return err
	})
	g.Go(func() (err error) {
		out.Articles, err = s.PublishedPosts(ctx, landingArticles)
		return err
	})
	g.Go(func() (err error) {
		out.Gallery, err = s.Gallery(ctx)
		return err
	})
	g.Go(func() (err error) {
		out.Testimonials, err = s.Testimonials.Latest(ctx, landingTestimonials)
		return err
	})
	g.Go(func() (err error) {
		out.FAQs, err = s.FAQs.Latest(ctx, landingFAQs)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func validatePost(p *models.BlogPost) error {
	p.Title = strings.TrimSpace(p.Title)
	if p.Title == "" || strings.TrimSpace(p.Content) == "" {
		return invalid("Judul dan Konten Artikel wajib diisi.")
	}
	if p.ImageURL == "" {
		return invalid("Gambar utama wajib diupload.")
	}
	if p.Status == "" {
		p.Status = models.PostDraft
	}
	if !p.Status.Valid() {
		return invalid("Status artikel tidak dikenal.")
	}
	p.Slug = utils.Slugify(p.Slug)
	if p.Slug == "" {
		p.Slug = utils.Slugify(p.Title)
	}
	return nil
}

func validateTestimonial(t *models.Testimonial) error {
	if strings.TrimSpace(t.CustomerName) == "" || strings.TrimSpace(t.Quote) == "" {
		return invalid("Nama pelanggan dan isi testimoni wajib diisi.")
	}
	if t.Rating < 0 || t.Rating > 5 {
		return invalid("Rating harus antara 0 dan 5.")
	}
	return nil
}

func validateFAQ(f *models.FAQ) error {
	if strings.TrimSpace(f.Icon) == "" || strings.TrimSpace(f.Question) == "" || strings.TrimSpace(f.Answer) == "" {
		return invalid("Ikon, Pertanyaan, dan Jawaban wajib diisi.")
	}
	return nil
}

func validateWhyUs(w *models.WhyUsPoint) error {
	if strings.TrimSpace(w.Title) == "" {
		return invalid("Judul poin wajib diisi.")
	}
	if strings.TrimSpace(w.Icon) == "" {
		return invalid("Ikon wajib dipilih.")
	}
	return nil
}

func validateDestination(d *models.Destination) error {
	if strings.TrimSpace(d.Name) == "" {
		return invalid("Nama destinasi wajib diisi.")
	}
	if d.ImageURL == "" {
		return invalid("Foto destinasi wajib diupload.")
	}
	return nil
}
