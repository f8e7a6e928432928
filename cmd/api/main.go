package main

import (
	"os"

	"github.com/S-FND/fandoro-sustainability-hub-sub000/internal/database"
	"github.com/S-FND/fandoro-sustainability-hub-sub000/internal/handler"
	"github.com/S-FND/fandoro-sustainability-hub-sub000/internal/middleware"
	"github.com/S-FND/fandoro-sustainability-hub-sub000/internal/repository"
	"github.com/S-FND/fandoro-sustainability-hub-sub000/internal/service"
	"github.com/S-FND/fandoro-sustainability-hub-sub000/internal/websocket"
	"github.com/S-FND/fandoro-sustainability-hub-sub000/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Fandoro Sustainability Hub API
// @version         1.0
// @description     Multi-tenant ESG reporting backend: SDG progress, GHG emissions, approval workflow, stakeholders, compliance, EHS audits and materiality assessments.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()
	defer logger.Sync()
	log := logger.Log.Sugar()

	if err := godotenv.Load("configs/.env"); err != nil {
		log.Info("No configs/.env file found or error loading it")
	}

	db, err := database.NewConnection(buildDSN())
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Info("Connected to PostgreSQL successfully")

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Repositories
	txManager := repository.NewTransactionManager(db)
	userRepo := repository.NewUserRepository(db)
	enterpriseRepo := repository.NewEnterpriseRepository(db)
	tokenRepo := repository.NewRefreshTokenRepository(db)
	sdgRepo := repository.NewSDGProgressRepository(db)
	ghgRepo := repository.NewGHGEmissionRepository(db)
	approvalRepo := repository.NewApprovalRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	stakeholderRepo := repository.NewStakeholderRepository(db)
	complianceRepo := repository.NewComplianceRepository(db)
	ehsRepo := repository.NewEHSAuditRepository(db)
	materialityRepo := repository.NewMaterialityRepository(db)

	// Services
	userService := service.NewUserService(userRepo, enterpriseRepo, tokenRepo, txManager)
	esgService := service.NewESGService(sdgRepo, ghgRepo, approvalRepo, activityRepo, txManager)
	approvalService := service.NewApprovalService(approvalRepo, sdgRepo, ghgRepo, userRepo, activityRepo, txManager, wsHub)
	stakeholderService := service.NewStakeholderService(stakeholderRepo)
	complianceService := service.NewComplianceService(complianceRepo)
	ehsService := service.NewEHSService(ehsRepo, userRepo, activityRepo, txManager)
	materialityService := service.NewMaterialityService(materialityRepo, stakeholderRepo)
	dashboardService := service.NewDashboardService(db)
	reportService := service.NewReportService(sdgRepo, ghgRepo)
	activityService := service.NewActivityService(activityRepo)

	// Handlers
	userHandler := handler.NewUserHandler(userService)
	esgHandler := handler.NewESGHandler(esgService)
	approvalHandler := handler.NewApprovalHandler(approvalService)
	stakeholderHandler := handler.NewStakeholderHandler(stakeholderService)
	complianceHandler := handler.NewComplianceHandler(complianceService)
	ehsHandler := handler.NewEHSHandler(ehsService)
	materialityHandler := handler.NewMaterialityHandler(materialityService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	reportHandler := handler.NewReportHandler(reportService)
	navigationHandler := handler.NewNavigationHandler()
	activityHandler := handler.NewActivityHandler(activityService)

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:5174"}
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		corsConfig.AllowOrigins = []string{origins}
	}
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
	root := router.Group("")
	userHandler.RegisterRoutes(root)
	esgHandler.RegisterRoutes(root)
	approvalHandler.RegisterRoutes(root)
	stakeholderHandler.RegisterRoutes(root)
	complianceHandler.RegisterRoutes(root)
	ehsHandler.RegisterRoutes(root)
	materialityHandler.RegisterRoutes(root)
	dashboardHandler.RegisterRoutes(root)
	reportHandler.RegisterRoutes(root)
	navigationHandler.RegisterRoutes(root)
	activityHandler.RegisterRoutes(root)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Infof("Server listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func buildDSN() string {
	get := func(key, fallback string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return fallback
	}

	dbHost := get("DB_HOST", "localhost")
	dbPort := get("DB_PORT", "5432")
	dbUser := get("DB_USER", "postgres")
	dbPassword := get("DB_PASSWORD", "postgres")
	dbName := get("DB_NAME", "postgres")
	dbSslMode := get("DB_SSLMODE", "disable")

	return "postgres://" + dbUser + ":" + dbPassword + "@" + dbHost + ":" + dbPort + "/" + dbName + "?sslmode=" + dbSslMode
}
