// models/package.go
package models

import "time"

// PackageStatus controls whether a package is listed on the public site.
type PackageStatus string

const (
	PackageActive PackageStatus = "active"
	PackageDraft  PackageStatus = "draft"
)

func (s PackageStatus) Valid() bool {
	return s == PackageActive || s == PackageDraft
}

// TripPackage is a sellable trip in the catalog.
type TripPackage struct {
	ID          string        `json:"id" bson:"id" firestore:"-"`
	Name        string        `json:"name" bson:"name" firestore:"name"`
	Slug        string        `json:"slug" bson:"slug" firestore:"slug"`
	Category    string        `json:"category" bson:"category" firestore:"category"` // e.g., "Open Trip", "Private Trip"
	Status      PackageStatus `json:"status" bson:"status" firestore:"status"`
	Price       int64         `json:"price" bson:"price" firestore:"price"`
	Unit        string        `json:"unit" bson:"unit" firestore:"unit"` // e.g., "/pax", "/trip"
	ButtonText  string        `json:"buttonText" bson:"buttonText" firestore:"buttonText"`
	MinPax      int           `json:"minPax" bson:"minPax" firestore:"minPax"`
	MaxPax      int           `json:"maxPax" bson:"maxPax" firestore:"maxPax"`
	Duration    string        `json:"duration" bson:"duration" firestore:"duration"`
	Location    string        `json:"location" bson:"location" firestore:"location"`
	Description string        `json:"description" bson:"description" firestore:"description"`
	Features    []string      `json:"features" bson:"features" firestore:"features"`
	Exclusions  string        `json:"exclusions" bson:"exclusions" firestore:"exclusions"`
	Itinerary   string        `json:"itinerary" bson:"itinerary" firestore:"itinerary"`
	Terms       string        `json:"terms" bson:"terms" firestore:"terms"`
	ImageURLs   []string      `json:"imageUrls" bson:"imageUrls" firestore:"imageUrls"`
	YoutubeURL  string        `json:"youtubeUrl,omitempty" bson:"youtubeUrl,omitempty" firestore:"youtubeUrl,omitempty"`
	VendorID    string        `json:"vendorId,omitempty" bson:"vendorId,omitempty" firestore:"vendorId,omitempty"`
	CreatedAt   time.Time     `json:"createdAt" bson:"createdAt" firestore:"createdAt"`
	UpdatedAt   *time.Time    `json:"updatedAt,omitempty" bson:"updatedAt,omitempty" firestore:"updatedAt,omitempty"`
}

func (p *TripPackage) SetID(id string) { p.ID = id }

// PackageInput is the create/edit form for a package. Slug is derived from Name when empty.
type PackageInput struct {
	Name        string        `json:"name" binding:"required"`
	Slug        string        `json:"slug"`
	Category    string        `json:"category"`
	Status      PackageStatus `json:"status"`
	Price       int64         `json:"price" binding:"gte=0"`
	Unit        string        `json:"unit"`
	ButtonText  string        `json:"buttonText"`
	MinPax      int           `json:"minPax"`
	MaxPax      int           `json:"maxPax"`
	Duration    string        `json:"duration"`
	Location    string        `json:"location"`
	Description string        `json:"description"`
	Features    []string      `json:"features"`
	Exclusions  string        `json:"exclusions"`
	Itinerary   string        `json:"itinerary"`
	Terms       string        `json:"terms"`
	ImageURLs   []string      `json:"imageUrls"`
	YoutubeURL  string        `json:"youtubeUrl"`
}

// PackageOption is the trimmed view used by the manual booking form's package picker.
type PackageOption struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
	Unit  string `json:"unit"`
}
