package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"asokatrip/config"
	"asokatrip/cron"
	"asokatrip/database"
	"asokatrip/database/repository"
	"asokatrip/handlers"
	"asokatrip/metrics"
	"asokatrip/middleware"
	"asokatrip/models"
	"asokatrip/routes"
	"asokatrip/services/auth"
	"asokatrip/services/booking"
	"asokatrip/services/catalog"
	"asokatrip/services/cms"
	"asokatrip/services/notification"
	"asokatrip/services/period"
	"asokatrip/services/report"
	"asokatrip/services/storage"
	"asokatrip/services/tasks"
	"asokatrip/utils"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}
	utils.InitializeLogger(cfg.IsProduction(), cfg.LogLevel)
	logger := utils.GetLogger()
	defer logger.Sync()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	fb, err := utils.InitFirebase(ctx, cfg)
	if err != nil {
		logger.Fatal("main: failed to initialize firebase", zap.Error(err))
	}
	defer fb.Close()

	store, err := database.OpenStore(ctx, cfg, fb.Firestore)
	if err != nil {
		logger.Fatal("main: failed to open document store", zap.Error(err))
	}
	defer store.Close(context.Background())

	m := metrics.NewMetrics("asokatrip", nil)

	// repositories.
	bookingRepo := repository.NewStoreBookingRepo(store, m)
	packageRepo := repository.NewStorePackageRepo(store, m)
	contentRepos := repository.NewContentRepos(store, m)

	// media storage and the cleanup queue.
	var media storage.StorageService
	if cfg.StorageBackend == "cloudinary" {
		media, err = storage.NewCloudinaryStorageService(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
		if err != nil {
			logger.Fatal("main: failed to initialize cloudinary storage", zap.Error(err))
		}
	} else {
		media, err = storage.NewFirebaseStorageService(fb.Storage, cfg.FirebaseBucket)
		if err != nil {
			logger.Fatal("main: failed to initialize firebase storage", zap.Error(err))
		}
	}

	queueClient := asynq.NewClient(cron.QueueRedisOpt(cfg))
	defer queueClient.Close()
	cleaner := tasks.NewEnqueuer(queueClient)
	worker := cron.InitMediaWorker(ctx, cfg, media)

	// auth.
	authRedis, err := utils.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisAuthDB)
	if err != nil {
		logger.Fatal("main: failed to connect to redis", zap.Error(err))
	}
	defer authRedis.Close()
	passwords, err := auth.NewIdentityToolkit(ctx, cfg.FirebaseAPIKey)
	if err != nil {
		logger.Fatal("main: failed to initialize identity toolkit", zap.Error(err))
	}
	authService := auth.NewDefaultAuthService(fb.Auth, passwords, auth.NewRedisSessionCache(authRedis))

	// services.
	var notifier notification.NotificationService = notification.Noop{}
	if n, err := notification.NewDefaultNotificationService(fb.Messaging, cfg.AdminNotifyTopic); err != nil {
		logger.Warn("main: admin push notifications disabled", zap.Error(err))
	} else {
		notifier = n
	}

	resolver := period.NewResolver(cfg.Location(), cfg.WeekStartDay())
	catalogService := catalog.NewDefaultCatalogService(packageRepo, cleaner)
	bookingService := booking.NewDefaultBookingService(bookingRepo, packageRepo, notifier, resolver, m)
	reportService := report.NewService(bookingRepo, catalogService, resolver, report.NewTracker(), cfg.QueryTimeout, m)
	contentService := cms.NewService(cms.FromRepos(contentRepos), catalogService, cleaner)

	health := utils.NewHealthMonitor(store, store.Backend(), authRedis)
	health.Start(ctx, time.Minute)

	limiter := middleware.NewRateLimiter(cfg.MaxRequestsPerMin)
	go sweepVisitors(ctx, limiter)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Auth:     handlers.NewAuthHandler(authService),
		Bookings: handlers.NewBookingHandler(bookingService),
		Reports:  handlers.NewReportHandler(reportService, resolver.Location()),
		Packages: handlers.NewPackageHandler(catalogService),
		Settings: handlers.NewSettingsHandler(contentService),
		Storage:  handlers.NewStorageHandler(media),
		Public:   handlers.NewPublicHandler(contentService, catalogService, contentService.Destinations),

		Blog:         handlers.NewSectionHandler[models.BlogPost]("posts", contentService.Blog),
		Testimonials: handlers.NewSectionHandler[models.Testimonial]("testimonials", contentService.Testimonials),
		FAQs:         handlers.NewSectionHandler[models.FAQ]("faqs", contentService.FAQs),
		WhyUs:        handlers.NewSectionHandler[models.WhyUsPoint]("whyUs", contentService.WhyUs),
		Destinations: handlers.NewSectionHandler[models.Destination]("destinations", contentService.Destinations),

		Health:   &handlers.HealthHandler{Monitor: health},
		Verifier: authService,
		Limiter:  limiter,
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Fatal("main: invalid TRUSTED_PROXIES", zap.Error(err))
	}
	routes.RegisterRoutes(router, handlerBundle, cfg.CORSOrigins, m)

	srv := newServer(ctx, "0.0.0.0:"+cfg.AppPort, router)

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	if worker != nil {
		worker.Shutdown()
	}

	logger.Sugar().Info("main: server stopped gracefully")
}

// newServer derives every request context from ctx, so cancelling it ends open streams before
// Shutdown waits on them.
func newServer(ctx context.Context, addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:        addr,
		Handler:     handler,
		BaseContext: func(net.Listener) context.Context { return ctx },
	}
}

// sweepVisitors drops idle rate limiter entries until ctx is done.
func sweepVisitors(ctx context.Context, limiter *middleware.RateLimiter) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			limiter.Sweep(now)
		}
	}
}
