package routes

import (
	"time"

	"roomservice/handlers"
	"roomservice/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers staff login and staff management endpoints.
func RegisterAuthRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	protect := middleware.Protect(hb.UserRepo, hb.AuthCache)
	auth := api.Group("/auth")
	{
		auth.POST("/login", hb.Auth.LoginHandler)

		auth.Use(protect)
		auth.POST("/logout", hb.Auth.LogoutHandler)
		auth.GET("/me", hb.Auth.MeHandler)

		admin := auth.Group("", middleware.RequireAdmin())
		admin.POST("/add-user", hb.Auth.AddUserHandler)
		admin.PUT("/update-role", hb.Auth.UpdateRoleHandler)
		admin.DELETE("/delete-user", hb.Auth.DeleteUserHandler)
		admin.GET("/get-all-users", hb.Auth.GetAllUsersHandler)
	}
}

// RegisterCatalogRoutes registers category, subcategory and menu endpoints.
func RegisterCatalogRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	protect := middleware.Protect(hb.UserRepo, hb.AuthCache)
	admin := middleware.RequireAdmin()

	category := api.Group("/category")
	{
		category.GET("/menu", hb.Catalog.MenuHandler)
		category.GET("/get-all-categories", protect, hb.Catalog.GetAllCategoriesHandler)
		category.POST("/create-category", protect, admin, hb.Catalog.CreateCategoryHandler)
		category.PUT("/update-category/:id", protect, admin, hb.Catalog.UpdateCategoryHandler)
		category.DELETE("/delete-category/:id", protect, admin, hb.Catalog.DeleteCategoryHandler)
	}

	sub := api.Group("/subcategory")
	{
		sub.GET("/by-category/:id", hb.Catalog.GetSubcategoriesByCategoryHandler)
		sub.GET("/get-all-subcategories", protect, admin, hb.Catalog.GetAllSubcategoriesHandler)
		sub.POST("/create-subcategory", protect, admin, hb.Catalog.CreateSubcategoryHandler)
		sub.PUT("/update-subcategory/:id", protect, admin, hb.Catalog.UpdateSubcategoryHandler)
		sub.DELETE("/delete-subcategory/:id", protect, admin, hb.Catalog.DeleteSubcategoryHandler)
	}
}

// RegisterLocationRoutes registers location and QR code endpoints.
func RegisterLocationRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	protect := middleware.Protect(hb.UserRepo, hb.AuthCache)
	admin := middleware.RequireAdmin()

	loc := api.Group("/location", protect)
	{
		loc.GET("/get-all-locations", hb.Location.GetAllLocationsHandler)
		loc.POST("/create-location", admin, hb.Location.CreateLocationHandler)
		loc.PUT("/update-location/:id", admin, hb.Location.UpdateLocationHandler)
		loc.DELETE("/delete-location/:id", admin, hb.Location.DeleteLocationHandler)
	}

	qr := api.Group("/qrcode")
	{
		// Guests resolve the code they scanned.
		qr.GET("/get-qrcode-data-by-id/:id", hb.Location.GetQRCodeDataHandler)

		qr.POST("/create-qrcode", protect, admin, hb.Location.CreateQRCodeHandler)
		qr.GET("/get-all-qrcodes", protect, hb.Location.GetAllQRCodesHandler)
		qr.GET("/grouped", protect, hb.Location.GetGroupedQRCodesHandler)
		qr.POST("/get-qrcodes-by-location", protect, hb.Location.GetQRCodesByLocationHandler)
		qr.DELETE("/delete-qrcode/:id", protect, admin, hb.Location.DeleteQRCodeHandler)
	}
}

// RegisterOrderRoutes registers guest ordering and the staff order feed.
func RegisterOrderRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	protect := middleware.Protect(hb.UserRepo, hb.AuthCache)

	order := api.Group("/order")
	{
		order.POST("", hb.Order.CreateOrderHandler)
		order.GET("", protect, hb.Order.GetOrdersHandler)
		order.GET("/export", protect, middleware.RequireAdmin(), hb.Order.ExportOrdersHandler)
		order.PUT("/:id/status", protect, hb.Order.UpdateStatusHandler)
	}
	api.GET("/ws", protect, hb.WS.ServeWS)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r gin.IRoutes) {
	r.GET("/health", handlers.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if hb.ClientURL != "" {
		corsConfig.AllowOrigins = []string{hb.ClientURL}
	} else {
		corsConfig.AllowOriginFunc = func(string) bool { return true }
	}
	r.Use(cors.New(corsConfig))

	RegisterHealthRoute(r)

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimitMiddleware(hb.MaxRequestsPerWindow, hb.RateLimitWindow))
	RegisterHealthRoute(api)
	RegisterAuthRoutes(api, hb)
	RegisterCatalogRoutes(api, hb)
	RegisterLocationRoutes(api, hb)
	RegisterOrderRoutes(api, hb)
}
