package catalogRepo

import (
	"context"
	"fmt"
	"time"

	"asokatrip/database/docstore"
	docRepo "asokatrip/database/repository/document"
	"asokatrip/metrics"
	"asokatrip/models"
)

// StorePackageRepo implements PackageRepository on the document store.
type StorePackageRepo struct {
	docs *docRepo.Repo[models.TripPackage]
}

// NewStorePackageRepo creates a PackageRepository backed by store.
func NewStorePackageRepo(store docstore.Store, m *metrics.Metrics) PackageRepository {
	return &StorePackageRepo{docs: docRepo.New[models.TripPackage](store, Collection, m)}
}

func (r *StorePackageRepo) Create(ctx context.Context, p *models.TripPackage) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	if _, err := r.docs.Create(ctx, p); err != nil {
		return fmt.Errorf("failed to create package: %w", err)
	}
	return nil
}

func (r *StorePackageRepo) Save(ctx context.Context, p *models.TripPackage) error {
	now := time.Now()
	p.UpdatedAt = &now
	if err := r.docs.Save(ctx, p.ID, p); err != nil {
		return fmt.Errorf("failed to update package %s: %w", p.ID, err)
	}
	return nil
}

func (r *StorePackageRepo) GetByID(ctx context.Context, id string) (*models.TripPackage, error) {
	return r.docs.GetByID(ctx, id)
}

func (r *StorePackageRepo) GetBySlug(ctx context.Context, slug string) (*models.TripPackage, error) {
	q := docstore.Query{}.Where("slug", docstore.Eq, slug)
	return r.docs.FindOne(ctx, q)
}

// List filters on status in memory when asked, so the listing never needs a status+createdAt
// composite index.
func (r *StorePackageRepo) List(ctx context.Context, status models.PackageStatus) ([]models.TripPackage, error) {
	all, err := r.docs.Find(ctx, docRepo.Newest())
	if err != nil {
		return nil, err
	}
	if status == "" {
		return all, nil
	}
	out := make([]models.TripPackage, 0, len(all))
	for _, p := range all {
		if p.Status == status {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *StorePackageRepo) Count(ctx context.Context) (int64, error) {
	return r.docs.Count(ctx, docstore.Query{})
}

func (r *StorePackageRepo) Patch(ctx context.Context, id string, fields map[string]interface{}) error {
	fields["updatedAt"] = time.Now()
	return r.docs.Update(ctx, id, fields)
}

func (r *StorePackageRepo) Delete(ctx context.Context, id string) error {
	return r.docs.Delete(ctx, id)
}
