// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/baxtbl4b/app-goroshina-sub001/internal/config"
	"github.com/baxtbl4b/app-goroshina-sub001/internal/domain/booking"
	"github.com/baxtbl4b/app-goroshina-sub001/internal/domain/cart"
	"github.com/baxtbl4b/app-goroshina-sub001/internal/domain/catalog"
	"github.com/baxtbl4b/app-goroshina-sub001/internal/domain/favorites"
	"github.com/baxtbl4b/app-goroshina-sub001/internal/domain/user"
	"github.com/baxtbl4b/app-goroshina-sub001/internal/domain/vehicle"
	"github.com/baxtbl4b/app-goroshina-sub001/internal/interfaces/http/handlers"
	"github.com/baxtbl4b/app-goroshina-sub001/internal/interfaces/http/middleware"
	"github.com/baxtbl4b/app-goroshina-sub001/internal/pkg/auth"
	"github.com/baxtbl4b/app-goroshina-sub001/internal/pkg/kvstore"
	"github.com/baxtbl4b/app-goroshina-sub001/internal/pkg/pdf"
	"github.com/baxtbl4b/app-goroshina-sub001/internal/pkg/sms"
)

// SetupRoutes wires every service and handler onto the API route group.
// Session-scoped stores (cart, favorites, comparison, booking drafts) share
// one redis-backed adapter and one notifier so a mutation in one feature is
// observable by every other.
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config, logger *logrus.Logger) {
	adapter := kvstore.NewRedisAdapter(redisClient)
	notifier := kvstore.NewNotifier()

	catalogService := catalog.NewService(db, cfg)
	cartStore := cart.NewStore(adapter, notifier, catalogService, logger, cfg.Session.TTL)
	favoritesStore := favorites.NewStore(favorites.DefaultDomain, adapter, notifier, logger, cfg.Session.TTL)
	comparisonStore := favorites.NewStore("comparison", adapter, notifier, logger, cfg.Session.TTL)
	bookingService := booking.NewService(db, adapter, notifier, cfg, logger)
	pdfService := pdf.NewService(cfg)
	smsProvider := sms.NewProvider(cfg, logger)
	userService := user.NewService(db, redisClient, cfg, smsProvider, logger)
	fitmentClient := vehicle.NewClient(cfg)
	jwtManager := auth.NewJWTManager(cfg)

	setupAuthRoutes(rg, userService, jwtManager, cfg)
	setupCatalogRoutes(rg, db, cfg)
	setupCartRoutes(rg, cartStore, cfg)
	setupFavoritesRoutes(rg, "/favorites", favoritesStore, catalogService, cfg)
	setupFavoritesRoutes(rg, "/comparison", comparisonStore, catalogService, cfg)
	setupBookingRoutes(rg, bookingService, pdfService, cfg)
	setupVehicleRoutes(rg, fitmentClient, cfg)
}

// setupAuthRoutes sets up SMS-code authentication and profile routes
func setupAuthRoutes(rg *gin.RouterGroup, userService *user.Service, jwtManager *auth.JWTManager, cfg *config.Config) {
	authHandler := handlers.NewAuthHandler(userService, cfg)

	authGroup := rg.Group("/auth")
	{
		// Public auth endpoints
		authGroup.POST("/request-code", authHandler.RequestCode)
		authGroup.POST("/verify-code", authHandler.VerifyCode)
		authGroup.POST("/refresh", authHandler.RefreshToken)

		// Protected auth endpoints
		protected := authGroup.Group("")
		protected.Use(middleware.AuthMiddleware(jwtManager))
		{
			protected.GET("/profile", authHandler.GetProfile)
			protected.PUT("/profile", authHandler.UpdateProfile)
		}
	}
}

// setupCatalogRoutes sets up catalog browsing routes
func setupCatalogRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	catalogHandler := handlers.NewCatalogHandler(db, cfg)

	rg.GET("/catalog/:kind", catalogHandler.ListProducts)
	rg.GET("/products/:id", catalogHandler.GetProduct)
}

// setupCartRoutes sets up cart routes
func setupCartRoutes(rg *gin.RouterGroup, store *cart.Store, cfg *config.Config) {
	cartHandler := handlers.NewCartHandler(store, cfg)

	cartGroup := rg.Group("/cart")
	{
		cartGroup.GET("", cartHandler.GetCart)
		cartGroup.GET("/count", cartHandler.GetCartCount)
		cartGroup.POST("/items", cartHandler.AddItem)
		cartGroup.DELETE("/items/:id", cartHandler.RemoveItem)
		cartGroup.DELETE("", cartHandler.ClearCart)
	}
}

// setupFavoritesRoutes sets up one domain-tagged product-set store's routes.
// Called once per namespace (/favorites, /comparison).
func setupFavoritesRoutes(rg *gin.RouterGroup, path string, store *favorites.Store, catalogService *catalog.Service, cfg *config.Config) {
	handler := handlers.NewFavoritesHandler(store, catalogService, cfg)

	group := rg.Group(path)
	{
		group.GET("", handler.List)
		group.GET("/count", handler.Count)
		group.GET("/check/:id", handler.Check)
		group.POST("/toggle", handler.Toggle)
	}
}

// setupBookingRoutes sets up service booking routes
func setupBookingRoutes(rg *gin.RouterGroup, bookingService *booking.Service, pdfService *pdf.Service, cfg *config.Config) {
	bookingHandler := handlers.NewBookingHandler(bookingService, pdfService, cfg)

	bookingGroup := rg.Group("/booking")
	{
		bookingGroup.GET("/stores", bookingHandler.ListStores)
		bookingGroup.GET("/orders/:number", bookingHandler.GetOrder)
		bookingGroup.GET("/orders/:number/receipt", bookingHandler.DownloadReceipt)

		bookingGroup.GET("/:type/draft", bookingHandler.GetDraft)
		bookingGroup.PUT("/:type/draft", bookingHandler.SaveDraft)
		bookingGroup.POST("/:type/package", bookingHandler.ApplyPackage)
		bookingGroup.GET("/:type/quote", bookingHandler.Quote)
		bookingGroup.POST("/:type/confirm", bookingHandler.Confirm)
	}
}

// setupVehicleRoutes sets up vehicle selector routes
func setupVehicleRoutes(rg *gin.RouterGroup, fitment vehicle.Fitment, cfg *config.Config) {
	vehicleHandler := handlers.NewVehicleHandler(fitment, cfg)

	vehicleGroup := rg.Group("/vehicle")
	{
		vehicleGroup.GET("", vehicleHandler.GetState)
		vehicleGroup.POST("/input", vehicleHandler.Input)
		vehicleGroup.POST("/brand", vehicleHandler.SelectBrand)
		vehicleGroup.POST("/model", vehicleHandler.SelectModel)
		vehicleGroup.POST("/year", vehicleHandler.SelectYear)
		vehicleGroup.POST("/back", vehicleHandler.Back)
		vehicleGroup.POST("/reset", vehicleHandler.Reset)
	}
}
