package main

import (
	"log"
	"net/http"

	"github.com/brewtable/brewtable-api/config"
	"github.com/brewtable/brewtable-api/controllers"
	"github.com/brewtable/brewtable-api/middleware"
	"github.com/brewtable/brewtable-api/models"
	"github.com/brewtable/brewtable-api/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Basic logging
	log.Println("Starting Brewtable API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	err = db.AutoMigrate(
		&models.User{},
		&models.MenuItem{},
		&models.CafeTable{},
		&models.Offer{},
		&models.Order{},
		&models.OrderLine{},
		&models.SequenceCounter{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Initialize photo storage
	if _, err := services.InitPhotoService(); err != nil {
		log.Fatalf("Failed to initialize photo service: %v", err)
	}

	// Initialize Gin router
	router := gin.Default()

	// CORS for the customer menu and staff dashboard frontends
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Health check endpoint
		v1.GET("/health", healthCheck)

		// Database status endpoint
		v1.GET("/database/status", databaseStatus)

		// Public: customers arriving via a table QR code
		v1.GET("/menu", controllers.ListMenu)
		v1.POST("/orders", controllers.CreateOrder)
		v1.GET("/orders/:publicId", controllers.GetOrder)

		// Staff: everything below requires a valid JWT plus a staff profile
		staff := v1.Group("")
		staff.Use(middleware.EnsureValidToken(cfg))
		{
			staff.POST("/users/me", controllers.CreateProfile)
			staff.GET("/users/me", controllers.GetProfile)

			staff.GET("/orders", controllers.ListOrders)
			staff.POST("/orders/:publicId/prepare", controllers.StartPreparingOrder)
			staff.POST("/orders/:publicId/complete", controllers.CompleteOrder)
			staff.POST("/orders/:publicId/pay", controllers.MarkOrderPaid)
			staff.POST("/orders/:publicId/cancel", controllers.CancelOrder)
			staff.PATCH("/orders/:publicId/notes", controllers.UpdateOrderNotes)

			staff.GET("/stats/daily", controllers.GetDailyStats)

			staff.POST("/menu", controllers.CreateMenuItem)
			staff.PUT("/menu/:id", controllers.UpdateMenuItem)
			staff.DELETE("/menu/:id", controllers.DeleteMenuItem)
			staff.POST("/menu/:id/image", controllers.UploadMenuItemPhoto)

			staff.GET("/tables", controllers.ListTables)
			staff.POST("/tables", controllers.CreateTable)
			staff.PUT("/tables/:number", controllers.UpdateTable)
			staff.GET("/tables/:number/qr", controllers.GetTableQR)

			staff.GET("/offers", controllers.ListOffers)
			staff.POST("/offers", controllers.CreateOffer)
			staff.PUT("/offers/:id", controllers.UpdateOffer)
		}
	}

	// Start server
	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Brewtable API is running",
	})
}

// databaseStatus checks database connectivity and returns table information
func databaseStatus(c *gin.Context) {
	db := config.GetDB()

	// Get the underlying SQL database to check connection
	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get database instance",
			},
		})
		return
	}

	// Ping the database to verify connection
	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_CONNECTION_ERROR",
				"message": "Database connection failed",
			},
		})
		return
	}

	// Get list of tables
	var tables []string
	if err := db.Raw("SELECT tablename FROM pg_tables WHERE schemaname = 'public'").Scan(&tables).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_QUERY_ERROR",
				"message": "Failed to query tables",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connected",
		"tables":  tables,
	})
}
