package router

import (
	"time"

	"github.com/bismillahdumoro-svg/zyracafe/internal/config"
	"github.com/bismillahdumoro-svg/zyracafe/internal/handler"
	"github.com/bismillahdumoro-svg/zyracafe/internal/middleware"
	"github.com/bismillahdumoro-svg/zyracafe/internal/repository"
	"github.com/bismillahdumoro-svg/zyracafe/internal/service"
	"github.com/bismillahdumoro-svg/zyracafe/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:   []string{"X-Request-ID"},
		MaxAge:          12 * time.Hour,
	}))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	shiftRepo := repository.NewShiftRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	stockRepo := repository.NewStockAdjustmentRepository(db)
	loanRepo := repository.NewLoanRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	billiardRepo := repository.NewBilliardRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	categorySvc := service.NewCategoryService(categoryRepo)
	productSvc := service.NewProductService(productRepo)
	shiftSvc := service.NewShiftService(shiftRepo, transactionRepo, loanRepo, userRepo, dispatcher)
	transactionSvc := service.NewTransactionService(transactionRepo, shiftRepo, productRepo, userRepo)
	stockSvc := service.NewStockService(stockRepo, productRepo)
	loanSvc := service.NewLoanService(loanRepo, expenseRepo, shiftRepo)
	billiardSvc := service.NewBilliardService(billiardRepo, shiftRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usersH := handler.NewUsersHandler(authSvc)
	categoriesH := handler.NewCategoriesHandler(categorySvc)
	productsH := handler.NewProductsHandler(productSvc)
	shiftsH := handler.NewShiftsHandler(shiftSvc, cfg.ReportStoragePath)
	transactionsH := handler.NewTransactionsHandler(transactionSvc)
	stockH := handler.NewStockHandler(stockSvc)
	loansH := handler.NewLoansHandler(loanSvc)
	expensesH := handler.NewExpensesHandler(loanSvc)
	billiardH := handler.NewBilliardHandler(billiardSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public — terminal agents poll this to detect connectivity
	r.GET("/api/health", handler.Health(db, rdb))

	// Auth (public)
	r.POST("/api/login", middleware.LoginRateLimiter(), authH.Login)
	r.POST("/api/refresh", authH.Refresh)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	api := r.Group("/api", jwtMW)
	{
		anyRole := middleware.RequireRole("cashier", "admin")
		adminOnly := middleware.RequireRole("admin")

		users := api.Group("/users", adminOnly)
		{
			users.POST("", usersH.Create)
			users.GET("", usersH.List)
			users.PUT("/:id", usersH.Update)
			users.DELETE("/:id", usersH.Delete)
		}

		// Categories — reads for everyone, writes admin only
		api.GET("/categories", anyRole, categoriesH.List)
		categories := api.Group("/categories", adminOnly)
		{
			categories.POST("", categoriesH.Create)
			categories.PUT("/:id", categoriesH.Update)
			categories.DELETE("/:id", categoriesH.Delete)
		}

		// Products — reads for everyone (catalog sync), writes admin only
		api.GET("/products", anyRole, productsH.List)
		api.GET("/products/:id", anyRole, productsH.Get)
		products := api.Group("/products", adminOnly)
		{
			products.POST("", productsH.Create)
			products.PUT("/:id", productsH.Update)
			products.DELETE("/:id", productsH.Delete)
		}

		shifts := api.Group("/shifts", anyRole)
		{
			shifts.POST("", shiftsH.Start)
			shifts.GET("", shiftsH.List)
			shifts.GET("/active", shiftsH.Active)
			shifts.GET("/:id", shiftsH.Get)
			shifts.PUT("/:id/end", shiftsH.End)
			shifts.GET("/:id/summary", shiftsH.Summary)
			shifts.GET("/:id/report.pdf", shiftsH.ReportPDF)
		}

		api.POST("/transactions", anyRole, transactionsH.Create)
		api.GET("/transactions", anyRole, transactionsH.List)

		stock := api.Group("/stock-adjustments", anyRole)
		{
			stock.POST("", stockH.CreateAdjustment)
			stock.GET("", stockH.List)
		}

		loans := api.Group("/loans", anyRole)
		{
			loans.POST("", loansH.Create)
			loans.GET("", loansH.List)
			loans.DELETE("/:id", loansH.Delete)
		}

		expenses := api.Group("/expenses", anyRole)
		{
			expenses.POST("", expensesH.Create)
			expenses.GET("", expensesH.List)
		}

		// Billiard tables — table management admin only, reads for everyone
		api.GET("/billiard-tables", anyRole, billiardH.ListTables)
		api.POST("/billiard-tables", adminOnly, billiardH.CreateTable)

		rentals := api.Group("/billiard-rentals", anyRole)
		{
			rentals.POST("", billiardH.StartRental)
			rentals.GET("", billiardH.ListRentals)
			rentals.GET("/active", billiardH.ActiveRentals)
			rentals.PUT("/:id/end", billiardH.EndRental)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
