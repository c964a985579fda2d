package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"commerce-service/internal/clients"
	"commerce-service/internal/config"
	"commerce-service/internal/events"
	"commerce-service/internal/handlers"
	"commerce-service/internal/middleware"
	"commerce-service/internal/repository"
	"commerce-service/internal/services"
)

// @title Commerce Service API
// @version 1.0.0
// @description Storefront commerce domain: catalog, cart, wishlist, reviews, analytics and checkout

// @contact.name Commerce API Support
// @contact.email support@example.com

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.bearer BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Initialize configuration
	cfg := config.Load()

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	if cfg.Environment == "production" {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(logrus.DebugLevel)
	}

	// Initialize Redis client for the product cache
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Printf("WARNING: Failed to parse Redis URL: %v (continuing without Redis)", err)
		redisOpts = &redis.Options{Addr: "localhost:6379"}
	}
	redisClient := redis.NewClient(redisOpts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Printf("WARNING: Failed to connect to Redis: %v (caching will be disabled)", err)
	} else {
		log.Println("✓ Redis connected successfully")
	}
	cancel()

	// Initialize repositories
	productsRepo := repository.NewProductsRepository(db, redisClient)
	cartRepo := repository.NewCartRepository(db)
	wishlistRepo := repository.NewWishlistRepository(db)
	reviewsRepo := repository.NewReviewsRepository(db)
	customersRepo := repository.NewCustomersRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	ordersRepo := repository.NewOrdersRepository(db)

	// Initialize event publisher for the audit trail only if NATS_URL is set
	var eventsPublisher *events.Publisher
	if cfg.NATSURL != "" {
		eventsPublisher, err = events.NewPublisher(cfg.NATSURL, logger)
		if err != nil {
			log.Printf("WARNING: Failed to initialize events publisher: %v (continuing without event publishing)", err)
		} else {
			log.Println("✓ Events publisher initialized (NATS connected)")
		}
	} else {
		log.Println("NATS_URL not set, skipping event publishing initialization")
	}
	defer func() {
		if eventsPublisher != nil {
			eventsPublisher.Close()
		}
	}()

	// Initialize clients
	storageClient := clients.NewStorageClient(cfg.StorageServiceURL)
	paymentClient := clients.NewPaymentClient(cfg.PaymentServiceURL, cfg.PaymentAPIKey)

	// Initialize services
	catalogService := services.NewCatalogService(productsRepo, storageClient, eventsPublisher, logger)
	cartService := services.NewCartService(cartRepo, productsRepo, storageClient, logger)
	wishlistService := services.NewWishlistService(wishlistRepo, productsRepo, storageClient, logger)
	reviewService := services.NewReviewService(reviewsRepo, productsRepo, customersRepo, eventsPublisher, logger)
	analyticsService := services.NewAnalyticsService(analyticsRepo, logger)
	salesService := services.NewSalesService(ordersRepo, productsRepo, storageClient, redisClient, logger)
	checkoutService := services.NewCheckoutService(cartService, ordersRepo, paymentClient, eventsPublisher, cfg.Currency, logger)

	// Initialize handlers
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	cartHandler := handlers.NewCartHandler(cartService)
	wishlistHandler := handlers.NewWishlistHandler(wishlistService)
	reviewsHandler := handlers.NewReviewsHandler(reviewService, customersRepo, logger)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService, logger)
	salesHandler := handlers.NewSalesHandler(salesService)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)

	// Initialize Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	// Health check endpoints (no auth required)
	router.GET("/health", handlers.HealthCheck)
	router.GET("/ready", handlers.HealthCheck)

	api := router.Group("/api/v1")

	// Public storefront routes; identity is resolved when present so the
	// wishlist can no-op silently for anonymous callers
	public := api.Group("")
	public.Use(middleware.OptionalAuth(cfg.JWTSecret))
	{
		public.GET("/products", catalogHandler.ListProducts)
		public.GET("/products/:id", catalogHandler.GetProduct)
		public.GET("/products/top-selling", salesHandler.GetTopSelling)
		public.GET("/products/:id/reviews", reviewsHandler.ListByProduct)
		public.GET("/reviews/featured", reviewsHandler.ListFeatured)

		public.POST("/wishlist/items", wishlistHandler.AddItem)
		public.DELETE("/wishlist/items/:productId", wishlistHandler.RemoveItem)
		public.DELETE("/wishlist", wishlistHandler.Clear)
		public.GET("/wishlist", wishlistHandler.GetWishlist)
		public.GET("/wishlist/contains/:productId", wishlistHandler.Contains)

		public.GET("/cart/count", cartHandler.GetCount)

		public.POST("/analytics/views", analyticsHandler.RecordView)
	}

	// Authenticated routes
	authed := api.Group("")
	authed.Use(middleware.RequireAuth(cfg.JWTSecret))
	{
		authed.POST("/cart/items", cartHandler.AddItem)
		authed.PUT("/cart/items/:id", cartHandler.SetQuantity)
		authed.DELETE("/cart/items/:id", cartHandler.RemoveItem)
		authed.DELETE("/cart/products/:productId", cartHandler.RemoveProduct)
		authed.DELETE("/cart", cartHandler.Clear)
		authed.GET("/cart", cartHandler.GetCart)

		authed.POST("/reviews", reviewsHandler.SubmitReview)
		authed.DELETE("/reviews/:id", reviewsHandler.DeleteReview)
		authed.GET("/me/reviews", reviewsHandler.ListMine)

		authed.POST("/checkout/intent", checkoutHandler.CreateIntent)
		authed.POST("/checkout/confirm", checkoutHandler.Confirm)
		authed.GET("/me/orders", checkoutHandler.ListOrders)
	}

	// Admin routes gated on the admin API key
	admin := api.Group("/admin")
	admin.Use(middleware.RequireAdmin(cfg.AdminAPIKey))
	{
		admin.POST("/products", catalogHandler.CreateProduct)
		admin.PUT("/products/:id", catalogHandler.UpdateProduct)
		admin.DELETE("/products/:id", catalogHandler.DeleteProduct)

		admin.DELETE("/reviews/:id", reviewsHandler.AdminDeleteReview)
		admin.PATCH("/reviews/:id/featured", reviewsHandler.ToggleFeatured)

		admin.GET("/analytics/views/total", analyticsHandler.GetTotals)
		admin.GET("/analytics/views/recent", analyticsHandler.GetRecent)
		admin.GET("/analytics/views/range", analyticsHandler.GetRange)
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Commerce service starting on port %s", cfg.Port)
		if err := router.Run(":" + cfg.Port); err != nil {
			log.Fatal("Failed to start server:", err)
		}
	}()

	<-quit
	log.Println("Shutting down commerce-service...")
	log.Println("Commerce service stopped")
}
