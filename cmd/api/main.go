package main

import (
	"fmt"
	"html/template"
	"os"

	"github.com/gin-gonic/gin"

	"hisabkitab/internal/config"
	"hisabkitab/internal/database"
	"hisabkitab/internal/handlers"
	"hisabkitab/internal/logger"
	"hisabkitab/internal/middleware"
	"hisabkitab/internal/services"
	"hisabkitab/internal/upload"
	"hisabkitab/internal/validator"
)

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(appConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Receipt upload store
	receipts, err := upload.NewStore(appConfig.UploadDir, appConfig.AllowedExtensions)
	if err != nil {
		return fmt.Errorf("failed to prepare upload directory: %w", err)
	}

	// Register custom binding validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	categoryService := services.NewCategoryService(db)
	transactionService := services.NewTransactionService(db)
	reportService := services.NewReportService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, categoryService, receipts)
	profileHandler := handlers.NewProfileHandler(userService)
	reportHandler := handlers.NewReportHandler(transactionService, reportService)

	// Initialize Gin router
	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	router.SetFuncMap(template.FuncMap{
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
	})
	router.LoadHTMLGlob("web/templates/*.html")
	router.Static("/static/uploads", receipts.Dir())
	router.NoRoute(handlers.NotFound)

	// Public routes
	router.GET("/login", authHandler.ShowLogin)
	router.POST("/login", authHandler.Login)
	router.GET("/register", authHandler.ShowRegister)
	router.POST("/register", authHandler.Register)
	router.GET("/reset-password", authHandler.ResetPassword)
	router.GET("/about", handlers.About)

	// Protected routes
	protected := router.Group("/")
	protected.Use(middleware.AuthMiddleware(userService))

	protected.GET("/", transactionHandler.Dashboard)
	protected.GET("/archived_transactions", transactionHandler.ArchivedTransactions)
	protected.GET("/logout", authHandler.Logout)

	protected.GET("/add_transaction", transactionHandler.ShowAddTransaction)
	protected.POST("/add_transaction", transactionHandler.AddTransaction)
	protected.GET("/edit_transaction/:id", transactionHandler.ShowEditTransaction)
	protected.POST("/edit_transaction/:id", transactionHandler.EditTransaction)
	protected.POST("/delete_transaction/:id", transactionHandler.DeleteTransaction)
	protected.POST("/archive_transaction/:id", transactionHandler.ArchiveTransaction)
	protected.GET("/transaction_details/:id", transactionHandler.TransactionDetails)

	protected.GET("/profile", profileHandler.ShowProfile)
	protected.POST("/profile", profileHandler.UpdateProfile)
	protected.GET("/change_password", profileHandler.ShowChangePassword)
	protected.POST("/change_password", profileHandler.ChangePassword)
	protected.GET("/settings", profileHandler.ShowSettings)
	protected.POST("/settings", profileHandler.UpdateSettings)

	protected.GET("/categories", categoryHandler.ShowCategories)
	protected.POST("/categories", categoryHandler.CreateCategory)
	protected.POST("/delete_category/:id", categoryHandler.DeleteCategory)

	protected.GET("/reports", reportHandler.Reports)
	protected.GET("/export_csv", reportHandler.ExportCSV)
	protected.GET("/backup", reportHandler.Backup)
	protected.GET("/api/transactions", reportHandler.APITransactions)

	log.Infof("Starting HisabKitab server on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
