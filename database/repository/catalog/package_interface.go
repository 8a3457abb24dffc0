package catalogRepo

import (
	"context"

	"asokatrip/models"
)

// Collection is the trip packages collection name.
const Collection = "packages"

// PackageRepository defines methods for trip package data access.
type PackageRepository interface {
	// Create stores a new package and assigns its ID.
	Create(ctx context.Context, p *models.TripPackage) error
	// Save replaces an existing package.
	Save(ctx context.Context, p *models.TripPackage) error
	// GetByID retrieves a package by its ID.
	GetByID(ctx context.Context, id string) (*models.TripPackage, error)
	// GetBySlug retrieves a package by its URL slug.
	GetBySlug(ctx context.Context, slug string) (*models.TripPackage, error)
	// List returns packages newest first, restricted to status when it is non-empty.
	List(ctx context.Context, status models.PackageStatus) ([]models.TripPackage, error)
	// Count returns the number of packages in the catalog.
	Count(ctx context.Context) (int64, error)
	// Patch updates selected fields of a package.
	Patch(ctx context.Context, id string, fields map[string]interface{}) error
	// Delete removes a package permanently.
	Delete(ctx context.Context, id string) error
}
