package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-shopify-sync/internal/handler"
	"go-shopify-sync/internal/middleware"
	"go-shopify-sync/internal/model"
	"go-shopify-sync/internal/repository"
	"go-shopify-sync/internal/service"
	"go-shopify-sync/internal/shopify"
	"go-shopify-sync/internal/ws"
	"go-shopify-sync/pkg/database"
	applogger "go-shopify-sync/pkg/logger"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	zlog := applogger.NewWithDefaults()
	defer zlog.Sync()

	// 2. Setup Database
	db := database.ConnectDB()
	// Auto Migrate (use a dedicated migration tool in production)
	db.AutoMigrate(&model.Product{}, &model.Variant{}, &model.ProductImage{}, &model.User{})

	// 3. Seed default admin user
	seedAdmin(db, zlog)

	// 4. Shopify gateway
	shopifyClient := shopify.NewClient(shopify.ConfigFromEnv(), zlog)

	// 5. WebSocket Hub
	wsHub := ws.NewHub(zlog)
	go wsHub.Run()

	// 6. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)
	variantRepo := repository.NewVariantRepo(db)
	imageRepo := repository.NewImageRepo(db)
	userRepo := repository.NewUserRepo(db)

	productService := service.NewProductService(productRepo, db, shopifyClient, wsHub, zlog)
	variantService := service.NewVariantService(variantRepo, productRepo, db, shopifyClient, zlog)
	imageService := service.NewImageService(imageRepo, productRepo, shopifyClient, zlog)
	importService := service.NewImportService(productRepo, db, shopifyClient, wsHub, zlog)
	syncService := service.NewSyncService(productRepo, db, shopifyClient, zlog)
	searchService := service.NewSearchService(db, variantRepo)
	authService := service.NewAuthService(userRepo)

	productHandler := handler.NewProductHandler(productService)
	variantHandler := handler.NewVariantHandler(variantService)
	imageHandler := handler.NewImageHandler(imageService)
	syncHandler := handler.NewSyncHandler(syncService, importService)
	searchHandler := handler.NewSearchHandler(searchService)
	healthHandler := handler.NewHealthHandler(db, shopifyClient, productRepo)
	authHandler := handler.NewAuthHandler(authService)

	// 7. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName:   "Shopify Sync v1.0",
		BodyLimit: 12 << 20, // image uploads
	})

	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	// 8. Routes
	app.Get("/health", healthHandler.Index)
	app.Get("/health/detailed", healthHandler.Detailed)
	app.Get("/health/database", healthHandler.Database)
	app.Get("/health/shopify", healthHandler.Shopify)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", authHandler.Me)
	auth.Post("/refresh", authHandler.Refresh)
	auth.Post("/logout", authHandler.Logout)

	protected := api.Group("", middleware.RequireAuth(userRepo))

	// Products
	protected.Get("/products", productHandler.List)
	protected.Post("/products", productHandler.Create)
	protected.Post("/products/bulk", productHandler.BulkCreate)
	protected.Patch("/products/bulk", productHandler.BulkUpdate)
	protected.Delete("/products/bulk", productHandler.BulkDelete)
	protected.Get("/products/bulk/status/:operationId", productHandler.BulkStatus)
	protected.Get("/products/:id", productHandler.Get)
	protected.Put("/products/:id", productHandler.Update)
	protected.Delete("/products/:id", productHandler.Delete)

	// Variants
	protected.Get("/products/:id/variants", variantHandler.ListForProduct)
	protected.Post("/products/:id/variants", variantHandler.Create)
	protected.Get("/variants", variantHandler.List)
	protected.Get("/variants/:id", variantHandler.Get)
	protected.Put("/variants/:id", variantHandler.Update)
	protected.Delete("/variants/:id", variantHandler.Delete)
	protected.Patch("/variants/:id/inventory", variantHandler.UpdateInventory)

	// Images
	protected.Post("/products/:id/images", imageHandler.Upload)
	protected.Delete("/products/:id/images/:imageId", imageHandler.Delete)

	// Shopify sync
	shopifyGroup := protected.Group("/shopify")
	shopifyGroup.Post("/import", syncHandler.Import)
	shopifyGroup.Post("/export/bulk", syncHandler.ExportBulk)
	shopifyGroup.Post("/export/:id", syncHandler.Export)
	shopifyGroup.Get("/status", syncHandler.Status)
	shopifyGroup.Get("/validate", syncHandler.Validate)
	shopifyGroup.Get("/conflicts", syncHandler.Conflicts)

	// Search
	search := protected.Group("/search")
	search.Get("/products", searchHandler.Products)
	search.Get("/variants", searchHandler.Variants)
	search.Get("/suggestions", searchHandler.Suggestions)
	search.Get("/filters", searchHandler.Filters)

	// WebSocket feed of sync events
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 9. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}
	zlog.Info("server exited")
}

// seedAdmin creates the default admin user if it doesn't exist
func seedAdmin(db *gorm.DB, zlog *zap.Logger) {
	userRepo := repository.NewUserRepo(db)

	if _, err := userRepo.FindByEmail("admin@example.com"); err == nil {
		return
	}

	admin := &model.User{
		Email:    "admin@example.com",
		FullName: "Administrator",
		IsActive: true,
	}
	if err := admin.SetPassword("admin123"); err != nil {
		zlog.Warn("failed to hash admin password", zap.Error(err))
		return
	}
	if err := userRepo.Create(admin); err != nil {
		zlog.Warn("failed to create admin user", zap.Error(err))
		return
	}
	zlog.Info("admin user created", zap.String("email", "admin@example.com"))
}
