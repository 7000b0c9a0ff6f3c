package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"roomservice/config"
	"roomservice/cron"
	"roomservice/database"
	categoryRepo "roomservice/database/repository/category"
	locationRepo "roomservice/database/repository/location"
	orderRepo "roomservice/database/repository/order"
	qrcodeRepo "roomservice/database/repository/qrcode"
	subcategoryRepo "roomservice/database/repository/subcategory"
	userRepoPkg "roomservice/database/repository/user"
	"roomservice/handlers"
	"roomservice/middleware"
	"roomservice/routes"
	"roomservice/services/catalog"
	"roomservice/services/location"
	"roomservice/services/notification"
	"roomservice/services/order"
	"roomservice/services/pricing"
	"roomservice/services/tasks"
	"roomservice/services/translation"
	"roomservice/services/user"
	"roomservice/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	database.InitDB()

	var authCache utils.AuthCache
	if err := utils.InitAuthCache(); err != nil {
		logger.Warn("main: auth cache unavailable, sessions will be checked against MongoDB", zap.Error(err))
	} else {
		authCache = utils.NewRedisAuthCache(utils.GetAuthCacheClient(), utils.AuthCacheTTL)
	}

	cloudinaryStorageService, err := utils.Cloudinary()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary storage service: %v", err)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Background jobs.
	queue := asynq.NewClient(cron.QueueRedisOpt())
	defer queue.Close()
	assetRemover := tasks.NewQueuedAssetRemover(queue, cloudinaryStorageService, logger)
	assetWorker := cron.InitAssetWorker(cloudinaryStorageService, logger)

	hub := notification.NewHub(logger)
	go hub.Run(ctx)

	utils.StartHealthMonitor(ctx, utils.GetAuthCacheClient(), database.MongoClient, 30*time.Second)

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	categories := categoryRepo.NewMongoCategoryRepo()
	subcategories := subcategoryRepo.NewMongoSubcategoryRepo()
	locations := locationRepo.NewMongoLocationRepo()
	qrcodes := qrcodeRepo.NewMongoQRCodeRepo()
	orders := orderRepo.NewMongoOrderRepo()

	// services.
	resolver := pricing.Default(logger)

	var translator translation.Translator
	if config.AppConfig.RapidAPIKey != "" {
		translator = translation.NewRapidAPITranslator(config.AppConfig.RapidAPIKey, config.AppConfig.RapidAPIHost, logger)
	}

	userService := &user.DefaultUserService{
		Repo:     userRepo,
		Cache:    authCache,
		TokenTTL: config.AppConfig.JWTTTL,
	}
	if err := userService.EnsureSuperAdmin(config.AppConfig.SuperAdminEmail, config.AppConfig.SuperAdminPassword); err != nil {
		logger.Error("main: failed to bootstrap super admin", zap.Error(err))
	}

	catalogService := &catalog.DefaultCatalogService{
		Categories:    categories,
		Subcategories: subcategories,
		Storage:       cloudinaryStorageService,
		Assets:        assetRemover,
		Translator:    translator,
		Pricing:       resolver,
	}
	locationService := &location.DefaultLocationService{
		Locations: locations,
		QRCodes:   qrcodes,
		Storage:   cloudinaryStorageService,
		Assets:    assetRemover,
		BaseURL:   config.AppConfig.QRBaseURL,
	}
	orderService := &order.DefaultOrderService{
		Orders:        orders,
		QRCodes:       qrcodes,
		Locations:     locations,
		Subcategories: subcategories,
		Pricing:       resolver,
		Publisher:     hub,
	}

	purge, err := cron.StartOrderPurge(orderService, config.AppConfig.OrderPurgeSchedule,
		config.AppConfig.OrderRetention, resolver.Location(), logger)
	if err != nil {
		logger.Sugar().Fatalf("main: invalid ORDER_PURGE_SCHEDULE: %v", err)
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		UserRepo:             userRepo,
		AuthCache:            authCache,
		MaxRequestsPerWindow: config.AppConfig.MaxRequestsPerWindow,
		RateLimitWindow:      config.AppConfig.RateLimitWindow,
		ClientURL:            config.AppConfig.ClientURL,

		Auth:     handlers.NewAuthHandler(userService),
		Catalog:  handlers.NewCatalogHandler(catalogService),
		Location: handlers.NewLocationHandler(locationService),
		Order:    handlers.NewOrderHandler(orderService),
		WS:       handlers.NewWSHandler(hub, config.AppConfig.ClientURL),
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger())

	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s (pricing zone %s)...", srv.Addr, resolver.Zone())
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}

	stop()
	<-purge.Stop().Done()
	assetWorker.Shutdown()
	if err := database.CloseDB(shutdownCtx); err != nil {
		logger.Sugar().Warnf("main: failed to disconnect MongoDB: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
