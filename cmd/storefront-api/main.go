package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/1804coins/storefront-api/docs"
	"github.com/1804coins/storefront-api/internal/api/handlers"
	"github.com/1804coins/storefront-api/internal/api/middleware"
	"github.com/1804coins/storefront-api/internal/cache"
	"github.com/1804coins/storefront-api/internal/config"
	"github.com/1804coins/storefront-api/internal/health"
	"github.com/1804coins/storefront-api/internal/metrics"
	repository "github.com/1804coins/storefront-api/internal/repositories"
	"github.com/1804coins/storefront-api/internal/seed"
	service "github.com/1804coins/storefront-api/internal/services"
	"github.com/1804coins/storefront-api/internal/telemetry"
	"github.com/1804coins/storefront-api/pkg/sendgrid"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

//	@title			Storefront API
//	@version		1.0
//	@description	Collectible coin storefront backend with cart and checkout.
//	@BasePath		/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Tracing setup
	shutdownTracing, err := telemetry.SetupTracing(context.Background(), &cfg.Telemetry)
	if err != nil {
		slog.Error("❌ Error initializing tracing", "error", err.Error())
		os.Exit(1)
	}

	// Database setup
	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", "error", err.Error())
		os.Exit(1)
	}

	// Redis setup
	redisClient, err := repository.NewRedisClient(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", "error", err.Error())
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}
	}()

	rateLimitRepo := repository.NewRateLimitRepo(redisClient, cfg)

	jwtKey := []byte(cfg.Security.JWTKey)
	emailClient := sendgrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	userService := service.NewUserService(repos.User, rateLimitRepo, jwtKey)
	userHandler := handlers.NewUserHandler(userService)
	catalogCache := cache.NewRedisCache(redisClient, &cfg.Cache)
	productService := service.NewCachedProductService(service.NewProductService(repos.Product), catalogCache)
	productHandler := handlers.NewProductHandler(productService)
	cartService := service.NewCartService(repos.Cart, repos.Product, repos.Order)
	cartHandler := handlers.NewCartHandler(cartService)
	commentService := service.NewCommentService(repos.Comment, repos.Product)
	commentHandler := handlers.NewCommentHandler(commentService)
	contactService := service.NewContactService(repos.Contact, emailClient, cfg.SendGrid.ContactInbox)
	contactHandler := handlers.NewContactHandler(contactService)
	adminHandler := handlers.NewAdminHandler(productService, contactService, &cfg.Security)
	authMiddleware := middleware.NewAuthMiddleware(jwtKey)
	adminMiddleware := middleware.NewAdminMiddleware(&cfg.Security)

	// Seed the catalog on an empty database
	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 10*time.Second)
	if err := seed.EnsureProducts(seedCtx, repos.Product); err != nil {
		slog.Warn("⚠️ Catalog seeding failed", slog.String("error", err.Error()))
	}
	cancelSeed()

	healthHandler, err := health.NewHealthHandler(cfg, &health.Endpoints{DB: repos.DB, RedisClient: redisClient})
	if err != nil {
		slog.Error("❌ Error creating health handler", "error", err.Error())
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("POST /api/v1/auth/register", userHandler.Register())
	routerMux.HandleFunc("POST /api/v1/auth/login", userHandler.Login())
	routerMux.HandleFunc("GET /api/v1/auth/me", authMiddleware.Authenticate(userHandler.Profile()))
	routerMux.HandleFunc("GET /api/v1/products", productHandler.ListProducts())
	routerMux.HandleFunc("GET /api/v1/products/{id}", productHandler.GetProduct())
	routerMux.HandleFunc("GET /api/v1/products/{id}/comments", commentHandler.ListComments())
	routerMux.HandleFunc("POST /api/v1/products/{id}/comments", authMiddleware.Authenticate(commentHandler.CreateComment()))
	routerMux.HandleFunc("POST /api/v1/comments/{id}/like", authMiddleware.Authenticate(commentHandler.ToggleLike()))
	routerMux.HandleFunc("GET /api/v1/cart", authMiddleware.Authenticate(cartHandler.GetCart()))
	routerMux.HandleFunc("POST /api/v1/cart/add", authMiddleware.Authenticate(cartHandler.AddItem()))
	routerMux.HandleFunc("PUT /api/v1/cart/update", authMiddleware.Authenticate(cartHandler.UpdateItem()))
	routerMux.HandleFunc("DELETE /api/v1/cart/remove/{productId}", authMiddleware.Authenticate(cartHandler.RemoveItem()))
	routerMux.HandleFunc("DELETE /api/v1/cart/clear", authMiddleware.Authenticate(cartHandler.ClearCart()))
	routerMux.HandleFunc("POST /api/v1/cart/checkout", authMiddleware.Authenticate(cartHandler.Checkout()))
	routerMux.HandleFunc("GET /api/v1/cart/orders", authMiddleware.Authenticate(cartHandler.ListOrders()))
	routerMux.HandleFunc("POST /api/v1/contact", contactHandler.SubmitContact())
	routerMux.HandleFunc("GET /api/v1/admin/products", authMiddleware.Authenticate(adminMiddleware.RequireAdmin(adminHandler.ListProducts())))
	routerMux.HandleFunc("POST /api/v1/admin/products", authMiddleware.Authenticate(adminMiddleware.RequireAdmin(adminHandler.CreateProduct())))
	routerMux.HandleFunc("PUT /api/v1/admin/products/{id}", authMiddleware.Authenticate(adminMiddleware.RequireAdmin(adminHandler.UpdateProduct())))
	routerMux.HandleFunc("DELETE /api/v1/admin/products/{id}", authMiddleware.Authenticate(adminMiddleware.RequireAdmin(adminHandler.DeleteProduct())))
	routerMux.HandleFunc("GET /api/v1/admin/contacts", authMiddleware.Authenticate(adminMiddleware.RequireAdmin(adminHandler.ListContacts())))
	routerMux.HandleFunc("GET /api/v1/admin/check", authMiddleware.Authenticate(adminHandler.CheckAdmin()))
	routerMux.Handle("GET /health", healthHandler.Handler())
	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = middleware.Logging(handler)
	handler = metrics.Middleware(handler)
	handler = otelhttp.NewHandler(handler, "storefront-api")

	// Setup http server
	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.Any("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.Error("⚠️ Tracing shutdown encountered an issue", slog.String("error", err.Error()))
	}
}
