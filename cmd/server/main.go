package main

import (
	"context"                       // context package is needed for Redis operations
	"dhanrekha/internal/api"        // Custom package for API handlers
	"dhanrekha/internal/config"     // Custom package for configuration
	"dhanrekha/internal/ledger"     // Aggregation core
	"dhanrekha/internal/mail"       // Password reset mail
	"dhanrekha/internal/middleware" // Custom package for middleware
	"log"                           // log package is needed for logging
	"net/http"                      // HTTP status codes

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/mysql"         // MySQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Connect to the database
	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client (password reset token store)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	_, err = redisClient.Ping(context.Background()).Result()
	if err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Setup password reset mailer; fall back to logging when SMTP is
	// not configured
	var mailer mail.Mailer = &mail.LogMailer{}
	if cfg.SMTPHost != "" {
		mailer = &mail.SMTPMailer{
			Host: cfg.SMTPHost,
			Port: cfg.SMTPPort,
			User: cfg.SMTPUser,
			Pass: cfg.SMTPPass,
			From: cfg.SMTPFrom,
		}
	}

	// Aggregation engine over the ledger store
	engine := ledger.NewEngine(db, cfg.WeeklyDays)

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "service": "DhanRekha API"})
	})

	// Category lookup (public, no auth needed)
	r.GET("/api/expenses/categories", api.CategoriesHandler())

	// Auth routes
	authGroup := r.Group("/api/auth")
	authGroup.POST("/register", api.RegisterHandler(db))                                   // Registration endpoint
	authGroup.POST("/login", api.LoginHandler(db, cfg.JWTSecret))                          // Login endpoint
	authGroup.POST("/forgot-password", api.ForgotPasswordHandler(db, redisClient, mailer)) // Reset token issue
	authGroup.POST("/reset-password", api.ResetPasswordHandler(db, redisClient))           // Reset token consume
	authGroup.GET("/me", middleware.JWTAuthMiddleware(cfg.JWTSecret), api.MeHandler(db))   // Profile endpoint
	authGroup.DELETE("/account", middleware.JWTAuthMiddleware(cfg.JWTSecret), api.DeleteAccountHandler(db))

	// Expense routes (protected by JWT)
	expenseGroup := r.Group("/api/expenses")
	expenseGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	expenseGroup.POST("", api.CreateExpenseHandler(db))                  // Record expense endpoint
	expenseGroup.GET("", api.ListExpensesHandler(engine))                // List expenses endpoint
	expenseGroup.POST("/bulk", api.BulkExpensesHandler(db))              // Bulk record endpoint
	expenseGroup.GET("/weekly", api.WeeklyHandler(engine))               // Recent expenses endpoint
	expenseGroup.GET("/balance", api.BalanceHandler(engine))             // Balance summary endpoint
	expenseGroup.GET("/summary/category", api.CategorySummaryHandler(engine)) // Category summary endpoint
	expenseGroup.GET("/summary/monthly", api.MonthlySummaryHandler(engine))   // Monthly summary endpoint
	expenseGroup.GET("/month", api.MonthExpensesHandler(engine))         // Month drill-down endpoint
	expenseGroup.GET("/yearly", api.YearlyExpenseHandler(engine))        // Expense-by-year endpoint
	expenseGroup.GET("/yearly/report", api.YearlyReportHandler(engine))  // Joined yearly report endpoint
	expenseGroup.DELETE("/:id", api.DeleteExpenseHandler(db))            // Delete expense endpoint

	// Income routes (protected by JWT)
	incomeGroup := r.Group("/api/income")
	incomeGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	incomeGroup.POST("", api.CreateIncomeHandler(db))           // Record income endpoint
	incomeGroup.GET("", api.ListIncomesHandler(engine))         // List incomes endpoint
	incomeGroup.GET("/yearly", api.YearlyIncomeHandler(engine)) // Income-by-year endpoint

	// Export / import routes (protected by JWT)
	dataGroup := r.Group("/api")
	dataGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	dataGroup.GET("/export", api.ExportHandler(engine))          // JSON snapshot export
	dataGroup.GET("/export/xlsx", api.ExportXLSXHandler(engine)) // XLSX export
	dataGroup.POST("/import", api.ImportHandler(engine))         // Snapshot import

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
