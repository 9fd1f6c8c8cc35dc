package main

import (
	_ "timetrack-backend/api/swagger" // swagger docs
	"timetrack-backend/internal/config"
	"timetrack-backend/internal/database"
	"timetrack-backend/internal/handler"
	"timetrack-backend/internal/middleware"
	"timetrack-backend/internal/repository"
	"timetrack-backend/internal/service"
	"timetrack-backend/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Time Tracking API
// @version         1.0
// @description     Workforce time and attendance API: requests, hour entries, shifts, holidays and reports.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	db, err := database.NewConnection(cfg.DatabaseDSN)
	if err != nil {
		logrus.Fatalf("Database connection failed: %v", err)
	}
	logrus.Info("Connected to PostgreSQL successfully")

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Set up dependencies (Repository -> Service -> Handler)
	txManager := repository.NewTransactionManager(db)
	userRepo := repository.NewUserRepository(db)
	requestRepo := repository.NewRequestRepository(db)
	hourRepo := repository.NewHourEntryRepository(db)
	shiftRepo := repository.NewShiftRepository(db)
	holidayRepo := repository.NewHolidayRepository(db)
	summaryRepo := repository.NewSummaryRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	userService := service.NewUserService(userRepo)
	notificationService := service.NewNotificationService(notificationRepo, wsHub)
	holidayService := service.NewHolidayService(txManager, holidayRepo, auditRepo)
	requestService := service.NewRequestService(txManager, requestRepo, hourRepo, shiftRepo, summaryRepo, auditRepo, notificationService)
	hourService := service.NewHourEntryService(txManager, hourRepo, summaryRepo, auditRepo, holidayService)
	shiftService := service.NewShiftService(txManager, shiftRepo, auditRepo)
	reportService := service.NewReportService(summaryRepo, holidayService)
	auditService := service.NewAuditService(auditRepo)

	// Initialize Handlers
	userHandler := handler.NewUserHandler(userService)
	requestHandler := handler.NewRequestHandler(requestService)
	hourHandler := handler.NewHourEntryHandler(hourService)
	shiftHandler := handler.NewShiftHandler(shiftService)
	holidayHandler := handler.NewHolidayHandler(holidayService)
	reportHandler := handler.NewReportHandler(reportService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	auditHandler := handler.NewAuditHandler(auditService)

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSOrigins
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, middleware.GetJWTSecret())
	})

	// Register API Routes
	userHandler.RegisterRoutes(router.Group(""))
	requestHandler.RegisterRoutes(router.Group(""))
	hourHandler.RegisterRoutes(router.Group(""))
	shiftHandler.RegisterRoutes(router.Group(""))
	holidayHandler.RegisterRoutes(router.Group(""))
	reportHandler.RegisterRoutes(router.Group(""))
	notificationHandler.RegisterRoutes(router.Group(""))
	auditHandler.RegisterRoutes(router.Group(""))

	logrus.Infof("Server listening on :%s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		logrus.Fatalf("Server failed: %v", err)
	}
}
