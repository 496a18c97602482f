package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"

	"saledup/internal/caching"
	"saledup/internal/handlers"
	"saledup/internal/jobs"
	"saledup/internal/jobs/background"
	"saledup/internal/middleware"
	"saledup/internal/repositories"
	"saledup/internal/services"
)

const version = "1.0.0"

func main() {
	// Database connection
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := pgxpool.New(context.Background(), databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// JWT configuration
	jwtSecret := os.Getenv("JWT_SECRET")
	jwksURL := os.Getenv("JWKS_URL")
	if jwtSecret == "" && jwksURL == "" {
		jwtSecret = random.String(32) // Generate random secret for development
		log.Printf("WARNING: Using generated JWT secret: %s", jwtSecret)
	}

	// Razorpay configuration
	razorpayKeySecret := os.Getenv("RAZORPAY_KEY_SECRET")
	if razorpayKeySecret == "" {
		log.Printf("WARNING: RAZORPAY_KEY_SECRET is not set; payment verification will fail")
	}

	// FCM configuration
	fcmServerKey := os.Getenv("FCM_SERVER_KEY")
	if fcmServerKey == "" {
		log.Printf("WARNING: FCM_SERVER_KEY is not set; push notifications will fail")
	}

	// Redis configuration
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if redisDBStr := os.Getenv("REDIS_DB"); redisDBStr != "" {
		if db, err := strconv.Atoi(redisDBStr); err == nil {
			redisDB = db
		}
	}

	// MinIO configuration
	minioEndpoint := os.Getenv("MINIO_ENDPOINT")
	if minioEndpoint == "" {
		minioEndpoint = "localhost:9000"
	}
	minioAccessKey := os.Getenv("MINIO_ACCESS_KEY")
	if minioAccessKey == "" {
		minioAccessKey = "minioadmin" // Default for development
	}
	minioSecretKey := os.Getenv("MINIO_SECRET_KEY")
	if minioSecretKey == "" {
		minioSecretKey = "minioadmin" // Default for development
	}
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	storageSvc, err := services.NewMinioStorageService(minioEndpoint, minioAccessKey, minioSecretKey, useSSL)
	if err != nil {
		log.Fatalf("Failed to initialize storage service: %v", err)
	}

	// Create repositories
	shopRepo := repositories.NewShopRepo(pool)
	employeeRepo := repositories.NewEmployeeRepo(pool)
	attendanceRepo := repositories.NewAttendanceRepo(pool)
	subscriptionRepo := repositories.NewSubscriptionRepo(pool)
	branchRepo := repositories.NewBranchRepo(pool)
	offerRepo := repositories.NewOfferRepo(pool)

	// Create cache service
	cacheSvc := caching.NewRedisCacheService(redisAddr, redisPassword, redisDB)

	// Create services
	entitlementSvc := services.NewEntitlementService(subscriptionRepo, employeeRepo, branchRepo)
	shopSvc := services.NewShopService(shopRepo, branchRepo, subscriptionRepo, entitlementSvc, cacheSvc)
	employeeSvc := services.NewEmployeeService(employeeRepo, entitlementSvc)
	attendanceSvc := services.NewAttendanceService(attendanceRepo, employeeRepo, shopRepo, entitlementSvc)
	offerSvc := services.NewOfferService(offerRepo)
	paymentSvc := services.NewPaymentService(subscriptionRepo, razorpayKeySecret)
	pushSvc := services.NewFCMPushService(fcmServerKey)
	reportSvc := services.NewReportService(attendanceRepo, employeeRepo, entitlementSvc, storageSvc)

	// Create background jobs
	reminderSvc := jobs.NewShiftReminderService(shopRepo, employeeRepo, pushSvc, cacheSvc)
	lateSvc := jobs.NewLateAlertService(shopRepo, employeeRepo, attendanceRepo, pushSvc, cacheSvc)
	scheduler := background.NewJobScheduler(reminderSvc, lateSvc)

	// Create handlers
	shopHandlers := handlers.NewShopHandlers(shopSvc)
	employeeHandlers := handlers.NewEmployeeHandlers(employeeSvc)
	attendanceHandlers := handlers.NewAttendanceHandlers(attendanceSvc)
	offerHandlers := handlers.NewOfferHandlers(offerSvc, cacheSvc)
	paymentHandlers := handlers.NewPaymentHandlers(paymentSvc)
	subscriptionHandlers := handlers.NewSubscriptionHandlers(entitlementSvc, subscriptionRepo)
	advisorHandlers := handlers.NewAdvisorHandlers(entitlementSvc, employeeSvc, attendanceSvc)
	reportHandlers := handlers.NewReportHandlers(reportSvc)
	jobHandlers := handlers.NewJobHandlers(reminderSvc, lateSvc, scheduler)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc)

	// Create Echo instance
	e := echo.New()

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints (no auth required)
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)
	e.GET("/health/live", healthHandlers.LivenessCheck)

	// API routes
	v1 := e.Group("/v1")

	// Public routes
	v1.POST("/shops", shopHandlers.Create)
	v1.GET("/plans", subscriptionHandlers.ListPlans)
	v1.POST("/scan/:shopID/:offerID", offerHandlers.RecordScan)

	// Protected routes (require JWT)
	protected := v1.Group("")
	protected.Use(middleware.JWTMiddleware(middleware.AuthConfig{
		Secret:  jwtSecret,
		JWKSURL: jwksURL,
	}))

	// Shop routes
	protected.GET("/shop", shopHandlers.Get)
	protected.PUT("/shop", shopHandlers.Update)

	// Branch routes
	protected.GET("/branches", shopHandlers.ListBranches)
	protected.POST("/branches", shopHandlers.CreateBranch)
	protected.DELETE("/branches/:id", shopHandlers.DeleteBranch)

	// Employee routes
	protected.GET("/employees", employeeHandlers.List)
	protected.POST("/employees", employeeHandlers.Create)
	protected.GET("/employees/:id", employeeHandlers.Get)
	protected.PUT("/employees/:id", employeeHandlers.Update)
	protected.DELETE("/employees/:id", employeeHandlers.Delete)
	protected.PUT("/employees/:id/device-token", employeeHandlers.RegisterDeviceToken)

	// Attendance routes
	protected.POST("/attendance/check-in", attendanceHandlers.CheckIn)
	protected.POST("/attendance/check-out", attendanceHandlers.CheckOut)
	protected.GET("/attendance/week", attendanceHandlers.ListWeek)

	// Offer routes
	protected.GET("/offers", offerHandlers.List)
	protected.POST("/offers", offerHandlers.Create)
	protected.GET("/offers/:id", offerHandlers.Get)
	protected.PUT("/offers/:id", offerHandlers.Update)
	protected.DELETE("/offers/:id", offerHandlers.Delete)

	// Subscription and payment routes
	protected.GET("/subscription", subscriptionHandlers.GetCurrent)
	protected.POST("/payments/verify", paymentHandlers.VerifyPayment)

	// Advisor routes
	protected.POST("/advisor/staffing", advisorHandlers.GetStaffingAdvice)
	protected.GET("/advisor/briefing", advisorHandlers.GetWeeklyBriefing)

	// Report routes
	protected.POST("/reports/attendance", reportHandlers.ExportAttendance)

	// Job routes
	protected.GET("/jobs/status", jobHandlers.GetStatus)
	protected.POST("/jobs/shift-reminders/run", jobHandlers.RunShiftReminders)
	protected.POST("/jobs/late-alerts/run", jobHandlers.RunLateAlerts)

	// Start background jobs
	if err := scheduler.Start(); err != nil {
		log.Fatalf("Failed to start job scheduler: %v", err)
	}
	defer func() {
		if err := scheduler.Stop(); err != nil {
			log.Printf("Failed to stop job scheduler: %v", err)
		}
	}()

	// Start server
	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		log.Fatalf("Invalid port %s: %v", portStr, err)
	}

	log.Printf("Saledup server v%s starting on port %d", version, port)

	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", port)))
}
