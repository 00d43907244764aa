package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/choir-api/internal/config"
	"github.com/yourusername/choir-api/internal/handler"
	"github.com/yourusername/choir-api/internal/middleware"
	pgRepo "github.com/yourusername/choir-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/choir-api/internal/repository/redis"
	"github.com/yourusername/choir-api/internal/service"
	"github.com/yourusername/choir-api/pkg/auth"
	"github.com/yourusername/choir-api/pkg/database"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Loading configuration from %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	isProduction := os.Getenv("GIN_MODE") == "release"

	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	if err := database.MigrateDB(db); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	redisClient, err := database.NewUniversalRedisClient(cfg.Redis)
	if err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	log.Println("Successfully connected to Redis")

	// Repositories
	memberRepo := pgRepo.NewMemberRepo(db)
	merchRepo := pgRepo.NewMerchandiseRepo(db)
	orderRepo := pgRepo.NewOrderRepo(db)
	resourceRepo := pgRepo.NewResourceRepo(db)
	requestRepo := pgRepo.NewResourceRequestRepo(db)
	eventRepo := pgRepo.NewEventRepo(db)
	scheduleRepo := pgRepo.NewScheduleRepo(db)
	attendanceRepo := pgRepo.NewAttendanceRepo(db)
	donationRepo := pgRepo.NewDonationRepo(db)
	favoriteRepo := pgRepo.NewFavoriteRepo(db)

	cacheRepo, err := redisRepo.NewCacheRepo(redisClient)
	if err != nil {
		log.Printf("Failed to initialize CacheRepo: %v", err)
		os.Exit(1)
	}

	// Outbound integrations. Both fall back to loggable no-ops when
	// disabled so the API runs locally without external credentials.
	var emailSvc service.EmailService = &service.NoopEmailService{}
	if cfg.Email.Enabled {
		emailSvc, err = service.NewResendEmailService(cfg.Email.APIKey, cfg.Email.From)
		if err != nil {
			log.Printf("Failed to initialize email service: %v", err)
			os.Exit(1)
		}
	}

	var blobStorage service.BlobStorage = &service.NoopBlobStorage{}
	if cfg.Storage.Enabled {
		blobStorage, err = service.NewCloudinaryBlobStorage(
			cfg.Storage.CloudName, cfg.Storage.APIKey, cfg.Storage.APISecret, cfg.Storage.RootFolder)
		if err != nil {
			log.Printf("Failed to initialize blob storage: %v", err)
			os.Exit(1)
		}
	}

	var tokenVerifier service.ExternalTokenVerifier
	if cfg.Google.ClientID != "" {
		tokenVerifier, err = service.NewGoogleTokenVerifier(cfg.Google.ClientID)
		if err != nil {
			log.Printf("Failed to initialize Google token verifier: %v", err)
			os.Exit(1)
		}
	}

	jwtService, err := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpirationHrs)
	if err != nil {
		log.Printf("Failed to initialize JWTService: %v", err)
		os.Exit(1)
	}

	// Services
	verificationSvc, err := service.NewVerificationService(
		memberRepo, emailSvc, cacheRepo,
		time.Duration(cfg.Verification.CodeTTLMin)*time.Minute,
		time.Duration(cfg.Verification.ResendCooldownSec)*time.Second,
		cfg.Verification.CodePepper,
	)
	if err != nil {
		log.Printf("Failed to initialize VerificationService: %v", err)
		os.Exit(1)
	}

	authService, err := service.NewAuthService(memberRepo, verificationSvc, jwtService, tokenVerifier)
	if err != nil {
		log.Printf("Failed to initialize AuthService: %v", err)
		os.Exit(1)
	}

	memberService, err := service.NewMemberService(memberRepo, blobStorage)
	if err != nil {
		log.Printf("Failed to initialize MemberService: %v", err)
		os.Exit(1)
	}

	merchService, err := service.NewMerchandiseService(merchRepo, blobStorage)
	if err != nil {
		log.Printf("Failed to initialize MerchandiseService: %v", err)
		os.Exit(1)
	}

	orderService, err := service.NewOrderService(orderRepo, merchRepo, memberRepo, blobStorage, emailSvc, cacheRepo)
	if err != nil {
		log.Printf("Failed to initialize OrderService: %v", err)
		os.Exit(1)
	}

	resourceService, err := service.NewResourceService(resourceRepo, blobStorage)
	if err != nil {
		log.Printf("Failed to initialize ResourceService: %v", err)
		os.Exit(1)
	}

	requestService, err := service.NewResourceRequestService(requestRepo, resourceRepo, blobStorage)
	if err != nil {
		log.Printf("Failed to initialize ResourceRequestService: %v", err)
		os.Exit(1)
	}

	eventService, err := service.NewEventService(eventRepo, blobStorage)
	if err != nil {
		log.Printf("Failed to initialize EventService: %v", err)
		os.Exit(1)
	}

	scheduleService, err := service.NewScheduleService(scheduleRepo)
	if err != nil {
		log.Printf("Failed to initialize ScheduleService: %v", err)
		os.Exit(1)
	}

	attendanceService, err := service.NewAttendanceService(attendanceRepo, eventRepo, scheduleRepo, memberRepo)
	if err != nil {
		log.Printf("Failed to initialize AttendanceService: %v", err)
		os.Exit(1)
	}

	donationService, err := service.NewDonationService(donationRepo, cacheRepo)
	if err != nil {
		log.Printf("Failed to initialize DonationService: %v", err)
		os.Exit(1)
	}

	favoriteService, err := service.NewFavoriteService(favoriteRepo, resourceRepo)
	if err != nil {
		log.Printf("Failed to initialize FavoriteService: %v", err)
		os.Exit(1)
	}

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	memberHandler := handler.NewMemberHandler(memberService)
	merchHandler := handler.NewMerchandiseHandler(merchService)
	orderHandler := handler.NewOrderHandler(orderService)
	resourceHandler := handler.NewResourceHandler(resourceService)
	requestHandler := handler.NewResourceRequestHandler(requestService)
	eventHandler := handler.NewEventHandler(eventService)
	scheduleHandler := handler.NewScheduleHandler(scheduleService)
	attendanceHandler := handler.NewAttendanceHandler(attendanceService)
	donationHandler := handler.NewDonationHandler(donationService)
	favoriteHandler := handler.NewFavoriteHandler(favoriteService)

	authMiddleware := middleware.NewAuthMiddleware(jwtService)
	rateLimiter := middleware.NewRateLimiter(redisClient)

	// Rate limiting on auth endpoints is pass-through when disabled.
	authLimit := func(c *gin.Context) { c.Next() }
	strictLimit := authLimit
	if cfg.RateLimit.Enabled {
		authLimit = rateLimiter.Limit(middleware.DefaultAuthRateLimitConfig())
		strictLimit = rateLimiter.Limit(middleware.StrictAuthRateLimitConfig())
	}

	router := gin.Default()

	// Trusted proxy settings keep c.ClientIP() honest; the rate limiter
	// keys on it.
	if isProduction {
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://choir.my.sliit.lk", "http://localhost:5173", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := router.Group("/api")
	{
		// Authentication
		authGroup := api.Group("/auth")
		authGroup.Use(authLimit)
		{
			authGroup.POST("/register", strictLimit, authHandler.Register)
			authGroup.POST("/login", strictLimit, authHandler.Login)
			authGroup.POST("/verify-email", strictLimit, authHandler.VerifyEmail)
			authGroup.POST("/resend-code", strictLimit, authHandler.ResendCode)
			authGroup.POST("/forgot-password", strictLimit, authHandler.ForgotPassword)
			authGroup.POST("/reset-password", strictLimit, authHandler.ResetPassword)
			authGroup.POST("/google", strictLimit, authHandler.GoogleSignIn)

			authGroup.GET("/me", authMiddleware.RequireAuth(), authHandler.Me)
		}

		// Public fundraising endpoints
		api.POST("/donations", donationHandler.Create)
		api.GET("/donations/stats", donationHandler.Stats)
		api.GET("/donations/wall", donationHandler.DonorWall)

		// Member self-service
		members := api.Group("/members")
		members.Use(authMiddleware.RequireAuth())
		{
			members.PUT("/me", memberHandler.UpdateProfile)
			members.PUT("/me/avatar", memberHandler.UpdateAvatar)
			members.PUT("/me/password", memberHandler.ChangePassword)

			// Roster administration
			admin := members.Group("")
			admin.Use(authMiddleware.RequireAdmin())
			{
				admin.GET("", memberHandler.ListMembers)
				admin.GET("/:id", memberHandler.GetMember)
				admin.PUT("/:id/role", memberHandler.SetRole)
				admin.PUT("/:id/status", memberHandler.SetStatus)
				admin.DELETE("/:id", memberHandler.DeleteMember)
			}
		}

		// Merchandise catalog
		merch := api.Group("/merchandise")
		merch.Use(authMiddleware.RequireAuth())
		{
			merch.GET("", merchHandler.List)
			merch.GET("/:id", merchHandler.Get)

			staffMerch := merch.Group("")
			staffMerch.Use(authMiddleware.RequireStaff())
			{
				staffMerch.POST("", merchHandler.Create)
				staffMerch.PUT("/:id", merchHandler.Update)
				staffMerch.DELETE("/:id", merchHandler.Delete)
			}
		}

		// Orders
		orders := api.Group("/orders")
		orders.Use(authMiddleware.RequireAuth())
		{
			orders.POST("", orderHandler.PlaceOrder)
			orders.GET("/my", orderHandler.ListMyOrders)

			staffOrders := orders.Group("")
			staffOrders.Use(authMiddleware.RequireStaff())
			{
				staffOrders.GET("", orderHandler.ListOrders)
				staffOrders.GET("/stats", orderHandler.Stats)
				staffOrders.GET("/export", orderHandler.ExportOrders)
				staffOrders.PUT("/:id/confirm", orderHandler.ConfirmOrder)
				staffOrders.PUT("/:id/decline", orderHandler.DeclineOrder)
			}

			orders.GET("/:id", orderHandler.GetOrder)
		}

		// Resource library
		resources := api.Group("/resources")
		resources.Use(authMiddleware.RequireAuth())
		{
			resources.GET("", resourceHandler.List)
			resources.GET("/:id", resourceHandler.Get)
			resources.POST("/:id/download", resourceHandler.Download)

			resources.GET("/:id/favorite", favoriteHandler.Check)
			resources.POST("/:id/favorite", favoriteHandler.Add)
			resources.DELETE("/:id/favorite", favoriteHandler.Remove)

			staffResources := resources.Group("")
			staffResources.Use(authMiddleware.RequireStaff())
			{
				staffResources.PUT("/:id/visibility", resourceHandler.UpdateVisibility)
				staffResources.PUT("/:id/archive", resourceHandler.Archive)
				staffResources.DELETE("/:id", resourceHandler.Delete)
			}
		}

		api.GET("/favorites", authMiddleware.RequireAuth(), favoriteHandler.List)

		// Resource moderation
		requests := api.Group("/resource-requests")
		requests.Use(authMiddleware.RequireAuth())
		{
			requests.POST("", requestHandler.Submit)
			requests.GET("/my", requestHandler.ListMine)
			requests.GET("/:id", requestHandler.Get)
			requests.DELETE("/:id", requestHandler.Cancel)

			staffRequests := requests.Group("")
			staffRequests.Use(authMiddleware.RequireStaff())
			{
				staffRequests.GET("", requestHandler.ListByStatus)
				staffRequests.PUT("/:id/approve", requestHandler.Approve)
				staffRequests.PUT("/:id/reject", requestHandler.Reject)
			}
		}

		// Events and registrations
		events := api.Group("/events")
		events.Use(authMiddleware.RequireAuth())
		{
			events.GET("", eventHandler.List)
			events.GET("/:id", eventHandler.Get)
			events.POST("/:id/register", eventHandler.Register)
			events.DELETE("/:id/register", eventHandler.CancelRegistration)

			staffEvents := events.Group("")
			staffEvents.Use(authMiddleware.RequireStaff())
			{
				staffEvents.POST("", eventHandler.Create)
				staffEvents.PUT("/:id", eventHandler.Update)
				staffEvents.DELETE("/:id", eventHandler.Delete)
				staffEvents.GET("/:id/registrations", eventHandler.ListRegistrations)
				staffEvents.POST("/:id/attendance", attendanceHandler.MarkForEvent)
				staffEvents.GET("/:id/attendance", attendanceHandler.ListForEvent)
			}
		}

		// Practice schedules
		schedules := api.Group("/schedules")
		schedules.Use(authMiddleware.RequireAuth())
		{
			schedules.GET("", scheduleHandler.List)
			schedules.GET("/:id", scheduleHandler.Get)

			staffSchedules := schedules.Group("")
			staffSchedules.Use(authMiddleware.RequireStaff())
			{
				staffSchedules.POST("", scheduleHandler.Create)
				staffSchedules.PUT("/:id", scheduleHandler.Update)
				staffSchedules.DELETE("/:id", scheduleHandler.Delete)
				staffSchedules.POST("/:id/attendance", attendanceHandler.MarkForSchedule)
				staffSchedules.GET("/:id/attendance", attendanceHandler.ListForSchedule)
			}
		}

		// Attendance reporting
		attendance := api.Group("/attendance")
		attendance.Use(authMiddleware.RequireAuth())
		{
			attendance.GET("/my", attendanceHandler.MyHistory)
			attendance.GET("/my/summary", attendanceHandler.MySummary)
			attendance.GET("/export", authMiddleware.RequireStaff(), attendanceHandler.Export)
			attendance.GET("/members/:id/summary", authMiddleware.RequireStaff(), attendanceHandler.MemberSummary)
		}

		// Donation administration
		donations := api.Group("/donations")
		donations.Use(authMiddleware.RequireAuth())
		{
			donations.GET("/my", donationHandler.ListMine)

			adminDonations := donations.Group("")
			adminDonations.Use(authMiddleware.RequireAdmin())
			{
				adminDonations.GET("", donationHandler.List)
				adminDonations.GET("/:id", donationHandler.Get)
				adminDonations.PUT("/settle", donationHandler.Settle)
			}
		}
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	if err := redisClient.Close(); err != nil {
		log.Printf("Error closing Redis client: %v", err)
	}

	if sqlDB, err := database.GetSQLDB(db); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("Error closing database connection: %v", err)
		}
	}

	log.Println("Server exited")
}
