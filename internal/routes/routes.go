package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"velora_back_end/internal/database"
	adminhandlers "velora_back_end/internal/handlers/admin"
	producthandlers "velora_back_end/internal/handlers/product"
	userhandlers "velora_back_end/internal/handlers/user"
	"velora_back_end/internal/middleware"
	"velora_back_end/internal/services"
	"velora_back_end/internal/store"
	"velora_back_end/internal/utils"
)

// RegisterRoutes câble stores → services → handlers puis déclare
// toutes les routes de l'API.
func RegisterRoutes(r *gin.Engine) {
	// --- CORS ---
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000", "https://velora.shop"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.Use(middleware.APIRateLimit())

	// --- Stores ---
	products := store.NewScyllaProductStore()
	users := store.NewScyllaUserStore()
	orders := store.NewScyllaOrderStore()
	reviews := store.NewScyllaReviewStore()
	wishlists := store.NewScyllaWishlistStore()
	carts := store.NewRedisCartStore(database.Redis)

	// --- Services ---
	cartService := services.NewCartService(carts, products)
	wishlistService := services.NewWishlistService(wishlists, products, cartService)
	orderService := services.NewOrderService(orders, products, users, carts)
	reviewService := services.NewReviewService(reviews, products, users)
	financeService := services.NewFinanceService(orders)
	notifier := services.NewNotifier(orders, utils.NewSMTPMailer())

	// --- Handlers ---
	authHandler := userhandlers.NewAuthHandler(users)
	cartHandler := userhandlers.NewCartHandler(cartService)
	wishlistHandler := userhandlers.NewWishlistHandler(wishlistService)
	orderHandler := userhandlers.NewOrderHandler(orderService, notifier)
	productHandler := producthandlers.NewProductHandler(products, reviewService)
	reviewHandler := producthandlers.NewReviewHandler(reviewService)
	dashboardHandler := adminhandlers.NewDashboardHandler(orders, products, users)
	adminOrderHandler := adminhandlers.NewOrderHandler(orderService)
	reportHandler := adminhandlers.NewReportHandler(financeService)
	databaseHandler := adminhandlers.NewDatabaseHandler(products, users, orders)

	api := r.Group("/api")

	// --- Auth ---
	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.GET("/me", middleware.AuthRequired(), authHandler.Me)
	}

	// --- Catalogue public ---
	productsGroup := api.Group("/products")
	{
		productsGroup.GET("", productHandler.List)
		productsGroup.GET("/:id", productHandler.Get)
		productsGroup.GET("/:id/reviews", reviewHandler.List)

		// avis : réservé aux clients connectés
		productsGroup.POST("/:id/reviews", middleware.AuthRequired(), reviewHandler.Add)
		productsGroup.DELETE("/:id/reviews/:reviewId", middleware.AuthRequired(), reviewHandler.Delete)
	}
	api.GET("/search", productHandler.Search)
	api.GET("/categories", productHandler.Categories)

	// --- Panier ---
	cart := api.Group("/cart", middleware.AuthRequired())
	{
		cart.GET("", cartHandler.Get)
		cart.POST("/add", cartHandler.Add)
		cart.DELETE("", cartHandler.Clear)
		cart.PUT("/:productId", cartHandler.UpdateQuantity)
		cart.DELETE("/:productId", cartHandler.Remove)
	}

	// --- Favoris ---
	wishlist := api.Group("/wishlist", middleware.AuthRequired())
	{
		wishlist.GET("", wishlistHandler.Get)
		wishlist.POST("", wishlistHandler.Add)
		wishlist.DELETE("/:productId", wishlistHandler.Remove)
		wishlist.POST("/:productId/move-to-cart", wishlistHandler.MoveToCart)
	}

	// --- Commandes ---
	ordersGroup := api.Group("/orders", middleware.AuthRequired())
	{
		ordersGroup.GET("", orderHandler.MyOrders)
		ordersGroup.POST("", orderHandler.BuyNow)
		ordersGroup.POST("/:id/reorder", orderHandler.Reorder)
		ordersGroup.GET("/:id/invoice", orderHandler.Invoice)
		ordersGroup.GET("/:id/invoice.pdf", orderHandler.InvoicePDF)
	}
	api.POST("/checkout", middleware.AuthRequired(), orderHandler.Checkout)

	// --- Back office ---
	admin := api.Group("/admin", middleware.AuthRequired(), middleware.RequireAdmin)
	{
		admin.GET("/dashboard", dashboardHandler.Overview)

		admin.POST("/products", productHandler.Create)
		admin.PUT("/products/:id", productHandler.Update)
		admin.DELETE("/products/:id", productHandler.Delete)
		admin.POST("/products/images", producthandlers.UploadImage)

		admin.GET("/orders", adminOrderHandler.All)
		admin.PUT("/orders/:id/status", adminOrderHandler.UpdateStatus)

		admin.GET("/reports/monthly", reportHandler.Monthly)

		admin.GET("/database/:collection", databaseHandler.View)
		admin.GET("/database/:collection/export", databaseHandler.ExportCSV)
	}
}
