package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"asokatrip/handlers"
	"asokatrip/metrics"
	"asokatrip/middleware"
	"asokatrip/utils"
)

// RegisterAuthRoutes registers sign-in and account endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/login", hb.Auth.SignInHandler)
		api.POST("/reset-password", hb.Auth.PasswordResetHandler)

		// Protected routes (Require Authentication)
		protected := api.Group("")
		protected.Use(middleware.AdminAuthMiddleware(hb.Verifier))
		protected.GET("/me", hb.Auth.MeHandler)
		protected.PUT("/me", hb.Auth.UpdateAccountHandler)
		protected.POST("/logout", hb.Auth.SignOutHandler)
	}
}

// RegisterAdminRoutes registers the dashboard, bookings, reports, catalog and content editors.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// EventSource cannot send headers; only the stream accepts the token from the query.
	r.GET("/api/admin/bookings/stream", middleware.StreamAuthMiddleware(hb.Verifier), hb.Bookings.StreamBookingsHandler)

	admin := r.Group("/api/admin")
	admin.Use(middleware.AdminAuthMiddleware(hb.Verifier))

	admin.GET("/dashboard", hb.Reports.DashboardHandler)

	bookings := admin.Group("/bookings")
	{
		bookings.GET("", hb.Reports.ListBookingsHandler)
		bookings.GET("/export.pdf", hb.Reports.ExportBookingsHandler)
		bookings.POST("", hb.Bookings.CreateBookingHandler)
		bookings.GET("/:id", hb.Bookings.GetBookingHandler)
		bookings.PATCH("/:id/status", hb.Bookings.UpdateStatusHandler)
		bookings.DELETE("/:id", hb.Bookings.DeleteBookingHandler)
	}

	reports := admin.Group("/reports")
	{
		reports.GET("", hb.Reports.GetReportHandler)
		reports.GET("/export.pdf", hb.Reports.ExportSummaryHandler)
	}

	packages := admin.Group("/packages")
	{
		packages.GET("", hb.Packages.ListPackagesHandler)
		packages.GET("/options", hb.Packages.PackageOptionsHandler)
		packages.POST("", hb.Packages.CreatePackageHandler)
		packages.GET("/:id", hb.Packages.GetPackageHandler)
		packages.PUT("/:id", hb.Packages.UpdatePackageHandler)
		packages.PATCH("/:id/status", hb.Packages.TogglePackageStatusHandler)
		packages.DELETE("/:id", hb.Packages.DeletePackageHandler)
		packages.POST("/:id/images", hb.Packages.AddImagesHandler)
		packages.DELETE("/:id/images", hb.Packages.RemoveImageHandler)
	}

	hb.Blog.Register(admin.Group("/blog"))
	hb.Testimonials.Register(admin.Group("/testimonials"))
	hb.FAQs.Register(admin.Group("/faqs"))
	hb.WhyUs.Register(admin.Group("/why-us"))
	hb.Destinations.Register(admin.Group("/destinations"))

	settings := admin.Group("/settings")
	{
		settings.GET("/landing", hb.Settings.GetLandingHandler)
		settings.PUT("/landing", hb.Settings.SaveLandingHandler)
		settings.PUT("/footer", hb.Settings.SaveFooterHandler)
		settings.GET("/gallery", hb.Settings.GetGalleryHandler)
		settings.POST("/gallery", hb.Settings.AddGalleryImagesHandler)
		settings.DELETE("/gallery", hb.Settings.RemoveGalleryImageHandler)
	}

	admin.POST("/uploads/:folder", hb.Storage.UploadFileHandler)
}

// RegisterPublicRoutes registers the read-only website API.
func RegisterPublicRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/public")
	{
		api.GET("/landing", hb.Public.LandingHandler)
		api.GET("/packages", hb.Public.PackagesHandler)
		api.GET("/packages/:slug", hb.Public.PackageHandler)
		api.GET("/blog", hb.Public.PostsHandler)
		api.GET("/blog/:slug", hb.Public.PostHandler)
		api.GET("/gallery", hb.Public.GalleryHandler)
		api.GET("/destinations", hb.Public.DestinationsHandler)
	}
}

// RegisterHealthRoutes registers the health check and the prometheus scrape endpoint.
func RegisterHealthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.Health.StatusHandler)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, origins []string, m *metrics.Metrics) {
	r.Use(utils.ErrorHandler())
	r.Use(middleware.RequestLogger())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	if m != nil {
		r.Use(middleware.MetricsMiddleware(m))
	}
	if hb.Limiter != nil {
		r.Use(hb.Limiter.Middleware())
	}

	RegisterHealthRoutes(r, hb)
	RegisterAuthRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterPublicRoutes(r, hb)
}
