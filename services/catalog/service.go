package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"asokatrip/database/docstore"
	"asokatrip/database/repository"
	"asokatrip/models"
	"asokatrip/services/tasks"
	"asokatrip/utils"
)

// Form defaults for a new package.
const (
	DefaultUnit       = "/pax"
	DefaultButtonText = "Chat via WA"
	DefaultCategory   = "private-wisata-alam"
)

// maxSlugSuffix bounds the search for a free generated slug.
const maxSlugSuffix = 50

// CatalogService manages the trip package catalog.
type CatalogService interface {
	Create(ctx context.Context, in models.PackageInput, vendorID string) (*models.TripPackage, error)
	Update(ctx context.Context, id string, in models.PackageInput, vendorID string) (*models.TripPackage, error)
	Get(ctx context.Context, id string) (*models.TripPackage, error)
	GetPublic(ctx context.Context, slugOrID string) (*models.TripPackage, error)
	List(ctx context.Context, status models.PackageStatus) ([]models.TripPackage, error)
	ListPublic(ctx context.Context, limit int) ([]models.TripPackage, error)
	ToggleStatus(ctx context.Context, id string) (*models.TripPackage, error)
	Delete(ctx context.Context, id string) error
	AddImages(ctx context.Context, id string, urls []string) (*models.TripPackage, error)
	RemoveImage(ctx context.Context, id, url string) (*models.TripPackage, error)
	Options(ctx context.Context) ([]models.PackageOption, error)
	Count(ctx context.Context) (int64, error)
}

// DefaultCatalogService implements CatalogService.
type DefaultCatalogService struct {
	repo    repository.PackageRepository
	cleaner tasks.MediaCleaner
}

func NewDefaultCatalogService(repo repository.PackageRepository, cleaner tasks.MediaCleaner) *DefaultCatalogService {
	if cleaner == nil {
		cleaner = tasks.NoopCleaner{}
	}
	return &DefaultCatalogService{repo: repo, cleaner: cleaner}
}

// Create stores a new package. A blank slug is generated from the name and made unique with a
// numeric suffix; an explicit slug that is already taken fails with ErrSlugTaken.
func (s *DefaultCatalogService) Create(ctx context.Context, in models.PackageInput, vendorID string) (*models.TripPackage, error) {
	if err := normalize(&in); err != nil {
		return nil, err
	}
	slug, err := s.uniqueSlug(ctx, in.Slug, in.Name, "")
	if err != nil {
		return nil, err
	}

	p := &models.TripPackage{}
	apply(p, in)
	p.Slug = slug
	p.VendorID = vendorID
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	utils.GetLogger().Info("Package created", zap.String("packageId", p.ID), zap.String("slug", p.Slug))
	return p, nil
}

// Update replaces the editable fields of a package. Images dropped from the list are queued for
// deletion from storage.
func (s *DefaultCatalogService) Update(ctx context.Context, id string, in models.PackageInput, vendorID string) (*models.TripPackage, error) {
	if err := normalize(&in); err != nil {
		return nil, err
	}
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	slug, err := s.uniqueSlug(ctx, in.Slug, in.Name, id)
	if err != nil {
		return nil, err
	}

	removed := missing(p.ImageURLs, in.ImageURLs)
	apply(p, in)
	p.Slug = slug
	if vendorID != "" {
		p.VendorID = vendorID
	}
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}
	s.cleanup(ctx, removed)
	return p, nil
}

func (s *DefaultCatalogService) Get(ctx context.Context, id string) (*models.TripPackage, error) {
	p, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, ErrPackageNotFound
	}
	return p, err
}

// GetPublic finds an active package by slug, falling back to the document id for links created
// before the package had a slug.
func (s *DefaultCatalogService) GetPublic(ctx context.Context, slugOrID string) (*models.TripPackage, error) {
	p, err := s.repo.GetBySlug(ctx, slugOrID)
	if errors.Is(err, docstore.ErrNotFound) {
		p, err = s.Get(ctx, slugOrID)
	}
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, ErrPackageNotFound
		}
		return nil, err
	}
	if p.Status != models.PackageActive {
		return nil, ErrPackageNotFound
	}
	return p, nil
}

// List returns packages newest first; an empty status lists all of them.
func (s *DefaultCatalogService) List(ctx context.Context, status models.PackageStatus) ([]models.TripPackage, error) {
	return s.repo.List(ctx, status)
}

// ListPublic returns the newest active packages, at most limit when limit > 0.
func (s *DefaultCatalogService) ListPublic(ctx context.Context, limit int) ([]models.TripPackage, error) {
	list, err := s.repo.List(ctx, models.PackageActive)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

// ToggleStatus flips a package between active and draft.
func (s *DefaultCatalogService) ToggleStatus(ctx context.Context, id string) (*models.TripPackage, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	next := models.PackageActive
	if p.Status == models.PackageActive {
		next = models.PackageDraft
	}
	if err := s.repo.Patch(ctx, id, map[string]interface{}{"status": next}); err != nil {
		return nil, err
	}
	p.Status = next
	return p, nil
}

// Delete removes the package and queues its images for deletion.
func (s *DefaultCatalogService) Delete(ctx context.Context, id string) error {
	p, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	utils.GetLogger().Info("Package deleted", zap.String("packageId", id))
	s.cleanup(ctx, p.ImageURLs)
	return nil
}

// AddImages appends uploaded image URLs, skipping ones already attached.
func (s *DefaultCatalogService) AddImages(ctx context.Context, id string, urls []string) (*models.TripPackage, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	have := make(map[string]bool, len(p.ImageURLs))
	for _, u := range p.ImageURLs {
		have[u] = true
	}
	for _, u := range urls {
		if u = strings.TrimSpace(u); u != "" && !have[u] {
			p.ImageURLs = append(p.ImageURLs, u)
			have[u] = true
		}
	}
	if err := s.repo.Patch(ctx, id, map[string]interface{}{"imageUrls": p.ImageURLs}); err != nil {
		return nil, err
	}
	return p, nil
}

// RemoveImage detaches url from the package and queues it for deletion.
func (s *DefaultCatalogService) RemoveImage(ctx context.Context, id, url string) (*models.TripPackage, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	kept := make([]string, 0, len(p.ImageURLs))
	for _, u := range p.ImageURLs {
		if u != url {
			kept = append(kept, u)
		}
	}
	if len(kept) == len(p.ImageURLs) {
		return p, nil
	}
	if err := s.repo.Patch(ctx, id, map[string]interface{}{"imageUrls": kept}); err != nil {
		return nil, err
	}
	p.ImageURLs = kept
	s.cleanup(ctx, []string{url})
	return p, nil
}

// Options lists active packages by name for the manual booking form.
func (s *DefaultCatalogService) Options(ctx context.Context) ([]models.PackageOption, error) {
	list, err := s.repo.List(ctx, models.PackageActive)
	if err != nil {
		return nil, err
	}
	opts := make([]models.PackageOption, 0, len(list))
	for _, p := range list {
		opts = append(opts, models.PackageOption{ID: p.ID, Name: p.Name, Price: p.Price, Unit: p.Unit})
	}
	sort.SliceStable(opts, func(i, j int) bool {
		return strings.ToLower(opts[i].Name) < strings.ToLower(opts[j].Name)
	})
	return opts, nil
}

func (s *DefaultCatalogService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// uniqueSlug picks the slug for package selfID ("" for a new package).
func (s *DefaultCatalogService) uniqueSlug(ctx context.Context, explicit, name, selfID string) (string, error) {
	if explicit != "" {
		base := utils.Slugify(explicit)
		if base == "" {
			return "", fmt.Errorf("%w: slug %q has no usable characters", ErrInvalidPackage, explicit)
		}
		free, err := s.slugFree(ctx, base, selfID)
		if err != nil {
			return "", err
		}
		if !free {
			return "", ErrSlugTaken
		}
		return base, nil
	}

	base := utils.Slugify(name)
	if base == "" {
		base = "paket"
	}
	for n := 1; n <= maxSlugSuffix; n++ {
		candidate := base
		if n > 1 {
			candidate = base + "-" + strconv.Itoa(n)
		}
		free, err := s.slugFree(ctx, candidate, selfID)
		if err != nil {
			return "", err
		}
		if free {
			return candidate, nil
		}
	}
	return "", ErrSlugTaken
}

func (s *DefaultCatalogService) slugFree(ctx context.Context, slug, selfID string) (bool, error) {
	existing, err := s.repo.GetBySlug(ctx, slug)
	if errors.Is(err, docstore.ErrNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return existing.ID == selfID, nil
}

func (s *DefaultCatalogService) cleanup(ctx context.Context, urls []string) {
	if len(urls) == 0 {
		return
	}
	if err := s.cleaner.EnqueueMediaCleanup(ctx, urls); err != nil {
		utils.GetLogger().Warn("Failed to queue image cleanup", zap.Strings("urls", urls), zap.Error(err))
	}
}

func normalize(in *models.PackageInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Slug = strings.TrimSpace(in.Slug)
	if in.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidPackage)
	}
	if in.Status == "" {
		in.Status = models.PackageDraft
	}
	if !in.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidPackage, in.Status)
	}
	if in.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidPackage)
	}
	if in.MinPax < 0 || in.MaxPax < 0 || (in.MaxPax > 0 && in.MinPax > in.MaxPax) {
		return fmt.Errorf("%w: minPax must not exceed maxPax", ErrInvalidPackage)
	}
	if in.Unit == "" {
		in.Unit = DefaultUnit
	}
	if in.ButtonText == "" {
		in.ButtonText = DefaultButtonText
	}
	if in.Category == "" {
		in.Category = DefaultCategory
	}
	if in.Features == nil {
		in.Features = []string{}
	}
	if in.ImageURLs == nil {
		in.ImageURLs = []string{}
	}
	return nil
}

func apply(p *models.TripPackage, in models.PackageInput) {
	p.Name = in.Name
	p.Category = in.Category
	p.Status = in.Status
	p.Price = in.Price
	p.Unit = in.Unit
	p.ButtonText = in.ButtonText
	p.MinPax = in.MinPax
	p.MaxPax = in.MaxPax
	p.Duration = in.Duration
	p.Location = in.Location
	p.Description = in.Description
	p.Features = in.Features
	p.Exclusions = in.Exclusions
	p.Itinerary = in.Itinerary
	p.Terms = in.Terms
	p.ImageURLs = in.ImageURLs
	p.YoutubeURL = in.YoutubeURL
}

// missing returns the entries of before that are not in after.
func missing(before, after []string) []string {
	keep := make(map[string]bool, len(after))
	for _, u := range after {
		keep[u] = true
	}
	var out []string
	for _, u := range before {
		if !keep[u] {
			out = append(out, u)
		}
	}
	return out
}
