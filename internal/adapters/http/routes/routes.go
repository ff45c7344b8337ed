package routes

import (
	"libraryhub/internal/adapters/http/handlers"
	"libraryhub/internal/adapters/http/middleware"
	"libraryhub/internal/adapters/persistence/repositories"
	"libraryhub/internal/config"
	"libraryhub/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	bookRepo := repositories.NewBookRepository(db)
	borrowingRepo := repositories.NewBorrowingRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)

	// Initialize services
	bookService := services.NewBookService(bookRepo, borrowingRepo, userRepo)
	userService := services.NewUserService(userRepo, borrowingRepo, refreshTokenRepo, cfg)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	bookHandler := handlers.NewBookHandler(bookService)
	userHandler := handlers.NewUserHandler(userService, cfg)
	borrowingHandler := handlers.NewBorrowingHandler(borrowingRepo)

	auth := middleware.AuthMiddleware(cfg)
	adminOnly := middleware.AdminOnly()
	authLimiter := middleware.AuthRateLimiter()

	// Health check
	app.Get("/health", healthHandler.HealthCheck)

	// Book routes. /stats must be registered before /:title.
	books := app.Group("/books")
	books.Get("/", bookHandler.List)
	books.Get("/stats", auth, adminOnly, bookHandler.Stats)
	books.Post("/borrow", auth, bookHandler.Borrow)
	books.Post("/return", auth, bookHandler.Return)
	books.Post("/add", auth, adminOnly, bookHandler.Add)
	books.Get("/:title", bookHandler.GetByTitle)

	// User routes
	users := app.Group("/users")
	users.Post("/register", authLimiter, userHandler.Register)
	users.Post("/login", authLimiter, userHandler.Login)
	users.Post("/refresh", userHandler.Refresh)
	users.Post("/logout", userHandler.Logout)
	users.Get("/all", auth, adminOnly, userHandler.ListUsers)
	users.Get("/borrowings", auth, adminOnly, userHandler.ListBorrowings)

	// Admin borrowing ledger (paginated)
	app.Get("/borrowings", auth, adminOnly, borrowingHandler.ListLedger)

	// Static frontend
	app.Static("/", cfg.WebDir)
}
