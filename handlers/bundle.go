package handlers

import (
	"asokatrip/middleware"
	"asokatrip/models"
)

// HandlerBundle groups the endpoint handlers and what the router needs besides them.
type HandlerBundle struct {
	Auth     *AuthHandler
	Bookings *BookingHandler
	Reports  *ReportHandler
	Packages *PackageHandler
	Settings *SettingsHandler
	Storage  *StorageHandler
	Public   *PublicHandler

	// Content sections
	Blog         *SectionHandler[models.BlogPost]
	Testimonials *SectionHandler[models.Testimonial]
	FAQs         *SectionHandler[models.FAQ]
	WhyUs        *SectionHandler[models.WhyUsPoint]
	Destinations *SectionHandler[models.Destination]

	Health   *HealthHandler
	Verifier middleware.TokenVerifier
	Limiter  *middleware.RateLimiter
}
