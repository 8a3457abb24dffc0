package contentRepo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"asokatrip/database/docstore"
	docRepo "asokatrip/database/repository/document"
	"asokatrip/metrics"
	"asokatrip/models"
)

// Collection names of the site content.
const (
	BlogPosts    = "blogPosts"
	Testimonials = "testimonials"
	FAQs         = "faqs"
	WhyUsPoints  = "whyUsPoints"
	Destinations = "destinations"
	Settings     = "settings"
	Gallery      = "gallery"
)

// Singleton document keys.
const (
	LandingPageID = "landingPage"
	GalleryID     = "main"
)

// Repos groups typed access to every content collection.
type Repos struct {
	Blog         *docRepo.Repo[models.BlogPost]
	Testimonials *docRepo.Repo[models.Testimonial]
	FAQs         *docRepo.Repo[models.FAQ]
	WhyUs        *docRepo.Repo[models.WhyUsPoint]
	Destinations *docRepo.Repo[models.Destination]
	Settings     *docRepo.Repo[models.LandingPage]
	Gallery      *docRepo.Repo[models.Gallery]
}

func NewRepos(store docstore.Store, m *metrics.Metrics) *Repos {
	return &Repos{
		Blog:         docRepo.New[models.BlogPost](store, BlogPosts, m),
		Testimonials: docRepo.New[models.Testimonial](store, Testimonials, m),
		FAQs:         docRepo.New[models.FAQ](store, FAQs, m),
		WhyUs:        docRepo.New[models.WhyUsPoint](store, WhyUsPoints, m),
		Destinations: docRepo.New[models.Destination](store, Destinations, m),
		Settings:     docRepo.New[models.LandingPage](store, Settings, m),
		Gallery:      docRepo.New[models.Gallery](store, Gallery, m),
	}
}

// EnsureIndexes creates the MongoDB indexes for content listings.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	listed := []string{BlogPosts, Testimonials, FAQs, WhyUsPoints, Destinations}
	for _, name := range listed {
		indexModels := []mongo.IndexModel{
			{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		}
		if name == BlogPosts {
			indexModels = append(indexModels, mongo.IndexModel{Keys: bson.D{{Key: "slug", Value: 1}}})
		}
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, indexModels); err != nil {
			return fmt.Errorf("failed to create %s indexes: %w", name, err)
		}
	}
	for _, name := range []string{Settings, Gallery} {
		idx := mongo.IndexModel{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)}
		if _, err := db.Collection(name).Indexes().CreateOne(ctx, idx); err != nil {
			return fmt.Errorf("failed to create %s indexes: %w", name, err)
		}
	}
	return nil
}
