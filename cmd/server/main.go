package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/drivehub/rental-backend/internal/config"
	"github.com/drivehub/rental-backend/internal/database"
	"github.com/drivehub/rental-backend/internal/handlers"
	"github.com/drivehub/rental-backend/internal/middleware"
	"github.com/drivehub/rental-backend/internal/services"
	"github.com/drivehub/rental-backend/internal/storage"
	"github.com/drivehub/rental-backend/pkg/jwt"
)

var (
	version   = "1.0.0"
	buildTime = "unknown"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	logger.Info("Starting DriveHub Rental Backend")
	logger.Infof("Version: %s, Build Time: %s", version, buildTime)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	// Set log level
	logLevel, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.Warn("Invalid log level, using INFO")
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Set Gin mode
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// Initialize database connection
	logger.Info("Connecting to database...")
	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	logger.Info("Database connection established")

	// Initialize storage backend for car image uploads
	uploadBackend, err := storage.New(cfg.Storage)
	if err != nil {
		logger.Fatalf("Failed to initialize storage backend: %v", err)
	}

	// Initialize repositories
	userRepo := database.NewUserRepository(db)
	storeRepo := database.NewStoreRepository(db)
	cityRepo := database.NewCityRepository(db)
	carRepo := database.NewCarRepository(db)
	offerRepo := database.NewCarOfferRepository(db)
	inquiryRepo := database.NewInquiryRepository(db)
	// Booking and pick-and-drop repositories run transactions and need
	// the concrete connection
	bookingRepo := database.NewBookingRepository(db.DB)
	pickAndDropRepo := database.NewPickAndDropRepository(db.DB)

	// Initialize services
	logger.Info("Initializing services...")
	jwtService := jwt.NewService(
		cfg.JWT.Secret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	authService := services.NewAuthService(userRepo, jwtService, logger)
	pricingService := services.NewPricingService(cfg.RateTable)
	bookingService := services.NewBookingService(bookingRepo, carRepo, offerRepo, pricingService, logger)
	listingService := services.NewListingService(carRepo, offerRepo, storeRepo, logger)
	availabilityService := services.NewAvailabilityService(bookingRepo)
	pickAndDropService := services.NewPickAndDropService(pickAndDropRepo, logger)
	cacheService := services.NewCacheService(cfg.Redis, logger)
	defer cacheService.Close()

	// Start the booking lifecycle sweep
	cronService := services.NewCronService(cfg.Cron, bookingService, logger)
	if err := cronService.Start(); err != nil {
		logger.Fatalf("Failed to start cron service: %v", err)
	}

	logger.Info("Services initialized")

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, userRepo)
	carHandler := handlers.NewCarHandler(listingService, availabilityService, carRepo, storeRepo)
	offerHandler := handlers.NewCarOfferHandler(offerRepo, carRepo, storeRepo)
	bookingHandler := handlers.NewBookingHandler(bookingService, storeRepo)
	pickAndDropHandler := handlers.NewPickAndDropHandler(pickAndDropService)
	storeHandler := handlers.NewStoreHandler(storeRepo, bookingService)
	cityHandler := handlers.NewCityHandler(cityRepo, cacheService)
	inquiryHandler := handlers.NewInquiryHandler(inquiryRepo, storeRepo)
	uploadHandler := handlers.NewUploadHandler(uploadBackend)

	// Initialize Gin router
	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))
	router.Use(middleware.PrometheusMiddleware())

	// CORS configuration
	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	router.Use(cors.New(corsConfig))

	// Operational endpoints
	router.GET("/health", healthCheckHandler(db))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Serve uploaded images when running on local storage
	if local, ok := uploadBackend.(*storage.LocalBackend); ok {
		router.Static(cfg.Storage.PublicURL, local.Dir())
	}

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Authentication routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)

			authProtected := auth.Group("")
			authProtected.Use(middleware.AuthMiddleware(jwtService))
			{
				authProtected.GET("/me", authHandler.Me)
			}
		}

		// Public catalog
		cars := v1.Group("/cars")
		{
			cars.GET("", carHandler.ListCars)
			cars.GET("/:id", carHandler.GetCar)
			cars.GET("/:id/offers", offerHandler.ListByCar)
			cars.GET("/:id/availability", carHandler.CheckAvailability)

			carsProtected := cars.Group("")
			carsProtected.Use(middleware.AuthMiddleware(jwtService), middleware.RequireRole("store_owner", "admin"))
			{
				carsProtected.POST("", carHandler.CreateCar)
				carsProtected.PUT("/:id", carHandler.UpdateCar)
				carsProtected.DELETE("/:id", carHandler.DeleteCar)
			}
		}

		// Reference data (redis-cached)
		v1.GET("/cities", cityHandler.ListCities)
		v1.GET("/cities/:id/areas", cityHandler.ListAreas)

		// Store registration and public profile
		stores := v1.Group("/stores")
		{
			stores.GET("/:id", storeHandler.GetPublic)

			storesProtected := stores.Group("")
			storesProtected.Use(middleware.AuthMiddleware(jwtService), middleware.RequireRole("store_owner", "admin"))
			{
				storesProtected.POST("", storeHandler.Create)
				storesProtected.GET("/my-store", storeHandler.MyStore)
				storesProtected.PUT("/my-store", storeHandler.Update)
				storesProtected.GET("/my-store/cars", carHandler.MyCars)
				storesProtected.GET("/my-store/bookings", storeHandler.MyStoreBookings)
				storesProtected.GET("/my-store/inquiries", inquiryHandler.ListMyStoreInquiries)
			}
		}

		// Offer management (store owners)
		offers := v1.Group("/car-offers")
		offers.Use(middleware.AuthMiddleware(jwtService), middleware.RequireRole("store_owner", "admin"))
		{
			offers.POST("", offerHandler.Create)
			offers.PUT("/:id", offerHandler.Update)
			offers.DELETE("/:id", offerHandler.Delete)
		}

		// Bookings (protected)
		bookings := v1.Group("/bookings")
		bookings.Use(middleware.AuthMiddleware(jwtService))
		{
			bookings.POST("", bookingHandler.CreateBooking)
			bookings.GET("", bookingHandler.ListMyBookings)
			bookings.GET("/:id", bookingHandler.GetBooking)
			bookings.PATCH("/:id/status", bookingHandler.UpdateStatus)
			bookings.POST("/:id/cancel", bookingHandler.CancelBooking)
		}

		// Pick-and-drop ride shares
		pickAndDrop := v1.Group("/pick-and-drop")
		{
			pickAndDrop.GET("", pickAndDropHandler.Search)

			pickAndDropProtected := pickAndDrop.Group("")
			pickAndDropProtected.Use(middleware.AuthMiddleware(jwtService))
			{
				pickAndDropProtected.GET("/my-services", pickAndDropHandler.MyServices)
				pickAndDropProtected.POST("", pickAndDropHandler.Create)
				pickAndDropProtected.PUT("/:id", pickAndDropHandler.Update)
				pickAndDropProtected.DELETE("/:id", pickAndDropHandler.Delete)
			}

			pickAndDrop.GET("/:id", pickAndDropHandler.Get)
		}

		// Inquiries
		inquiries := v1.Group("/inquiries")
		inquiries.Use(middleware.AuthMiddleware(jwtService))
		{
			inquiries.POST("", inquiryHandler.Create)
			inquiries.POST("/:id/reply", inquiryHandler.Reply)
			inquiries.POST("/:id/close", inquiryHandler.Close)
		}

		// Uploads (store owners)
		uploads := v1.Group("/uploads")
		uploads.Use(middleware.AuthMiddleware(jwtService), middleware.RequireRole("store_owner", "admin"))
		{
			uploads.POST("", uploadHandler.Upload)
		}
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Infof("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	cronService.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited successfully")
}

// requestLogger middleware for logging HTTP requests
func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		fields := logrus.Fields{
			"status":     c.Writer.Status(),
			"method":     c.Request.Method,
			"path":       path,
			"query":      query,
			"ip":         c.ClientIP(),
			"latency_ms": time.Since(start).Milliseconds(),
			"user_agent": c.Request.UserAgent(),
		}

		if userCtx, exists := middleware.GetUserContext(c); exists {
			fields["user_id"] = userCtx.UserID
		}

		entry := logger.WithFields(fields)

		status := c.Writer.Status()
		switch {
		case len(c.Errors) > 0:
			entry.WithField("errors", c.Errors.String()).Error("Request failed with errors")
		case status >= 500:
			entry.Error("Request completed with server error")
		case status >= 400:
			entry.Warn("Request completed with client error")
		default:
			entry.Info("Request completed successfully")
		}
	}
}

// healthCheckHandler returns a health check endpoint
func healthCheckHandler(db database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"database": "unhealthy",
				"error":    err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"database":  "healthy",
			"version":   version,
			"timestamp": time.Now().Unix(),
		})
	}
}
