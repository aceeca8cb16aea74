package routes

import (
	"istore-api/internal/adapters/http/handlers"
	"istore-api/internal/adapters/http/middleware"
	"istore-api/internal/adapters/persistence/repositories"
	"istore-api/internal/config"
	"istore-api/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	productRepo := repositories.NewProductRepository(db)
	voucherRepo := repositories.NewVoucherRepository(db)
	cartRepo := repositories.NewCartRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	txManager := repositories.NewTxManager(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, cfg)
	userService := services.NewUserService(userRepo, orderRepo)
	catalogService := services.NewCatalogService(productRepo)
	cartService := services.NewCartService(cartRepo, productRepo)
	checkoutService := services.NewCheckoutService(txManager, cfg)
	orderService := services.NewOrderService(orderRepo, txManager, cfg)
	voucherService := services.NewVoucherService(voucherRepo, txManager)
	dashboardService := services.NewDashboardService(userRepo, productRepo, voucherRepo, orderRepo)
	chatService := services.NewChatService(userRepo, orderRepo, productRepo, cfg)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	productHandler := handlers.NewProductHandler(catalogService)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(checkoutService, orderService)
	voucherHandler := handlers.NewVoucherHandler(voucherService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	chatHandler := handlers.NewChatHandler(chatService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	setupAPIV1Routes(apiV1, healthHandler, authHandler, userHandler, productHandler,
		cartHandler, orderHandler, voucherHandler, dashboardHandler, chatHandler, cfg)
}

// setupAPIV1Routes configures API v1 routes
func setupAPIV1Routes(
	router fiber.Router,
	healthHandler *handlers.HealthHandler,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	productHandler *handlers.ProductHandler,
	cartHandler *handlers.CartHandler,
	orderHandler *handlers.OrderHandler,
	voucherHandler *handlers.VoucherHandler,
	dashboardHandler *handlers.DashboardHandler,
	chatHandler *handlers.ChatHandler,
	cfg *config.Config,
) {
	// API Info
	router.Get("/", healthHandler.APIInfo)

	// Auth routes (public)
	authRoutes := router.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, cfg)

	// Catalog routes (public, cacheable)
	productRoutes := router.Group("/products")
	setupProductRoutes(productRoutes, productHandler)

	// Cart routes (authenticated)
	cartRoutes := router.Group("/cart")
	cartRoutes.Use(middleware.AuthMiddleware(cfg))
	setupCartRoutes(cartRoutes, cartHandler)

	// Order routes. Checkout takes OptionalAuth so guests can buy;
	// lookup is public for order tracking.
	orderRoutes := router.Group("/orders")
	orderRoutes.Post("/", middleware.OptionalAuth(cfg), middleware.StrictRateLimiter(), orderHandler.Checkout)
	orderRoutes.Get("/:id", orderHandler.GetByID)

	// Voucher routes
	voucherRoutes := router.Group("/vouchers")
	voucherRoutes.Get("/available", voucherHandler.ListAvailable)
	voucherRoutes.Post("/redeem", middleware.AuthMiddleware(cfg), middleware.StrictRateLimiter(), voucherHandler.Redeem)

	// Profile routes (authenticated)
	profileRoutes := router.Group("/profile")
	profileRoutes.Use(middleware.AuthMiddleware(cfg))
	profileRoutes.Use(middleware.NoCacheHeaders())
	profileRoutes.Get("/", userHandler.GetProfile)

	// Chat concierge (authenticated)
	chatRoutes := router.Group("/chat")
	chatRoutes.Use(middleware.AuthMiddleware(cfg))
	chatRoutes.Post("/", chatHandler.Ask)

	// Admin routes
	adminRoutes := router.Group("/admin")
	adminRoutes.Use(middleware.AuthMiddleware(cfg))
	adminRoutes.Use(middleware.AdminOnly())
	setupAdminRoutes(adminRoutes, productHandler, orderHandler, voucherHandler, userHandler, dashboardHandler)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	// Public routes (rate limited against credential stuffing)
	router.Post("/register", middleware.AuthRateLimiter(), handler.Register)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/refresh", handler.RefreshToken)
	router.Post("/logout", handler.Logout)

	// Protected routes
	router.Get("/me", middleware.AuthMiddleware(cfg), handler.Me)
	router.Post("/logout-all", middleware.AuthMiddleware(cfg), handler.LogoutAll)
}

// setupProductRoutes configures public catalog routes
func setupProductRoutes(router fiber.Router, handler *handlers.ProductHandler) {
	router.Use(middleware.CatalogCache())
	router.Get("/", handler.List)
	router.Get("/search", handler.Search)
	router.Get("/:id", handler.GetByID)
}

// setupCartRoutes configures cart routes (authenticated)
func setupCartRoutes(router fiber.Router, handler *handlers.CartHandler) {
	router.Use(middleware.NoCacheHeaders())
	router.Get("/", handler.Get)
	router.Post("/add", handler.AddItem)
	router.Delete("/item/:productId", handler.RemoveItem)
}

// setupAdminRoutes configures admin routes (Admin only)
func setupAdminRoutes(
	router fiber.Router,
	productHandler *handlers.ProductHandler,
	orderHandler *handlers.OrderHandler,
	voucherHandler *handlers.VoucherHandler,
	userHandler *handlers.UserHandler,
	dashboardHandler *handlers.DashboardHandler,
) {
	// Dashboard
	router.Get("/dashboard", dashboardHandler.GetAdminDashboard)

	// Orders
	router.Get("/orders", orderHandler.List)
	router.Put("/orders/:id/status", orderHandler.UpdateStatus)

	// Catalog
	router.Post("/products", productHandler.Create)
	router.Put("/products/:id/stock", productHandler.SetStock)

	// Vouchers
	router.Get("/vouchers", voucherHandler.List)
	router.Post("/vouchers", voucherHandler.Create)

	// Users
	router.Get("/users", userHandler.List)
}
