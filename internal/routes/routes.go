package routes

import (
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"astra_back_end/internal/handlers/payement"
	"astra_back_end/internal/handlers/product"
	"astra_back_end/internal/handlers/user"
	"astra_back_end/internal/middleware"
)

func RegisterRoutes(r *gin.Engine) {
	r.Use(cors.New(corsConfig()))

	api := r.Group("/api")
	api.Use(middleware.APIRateLimit())

	// Auth
	api.POST("/auth/register", user.CreateUser)
	api.POST("/auth/login", middleware.LoginRateLimit(), user.Login)
	api.GET("/auth/:provider", user.BeginAuth)
	api.GET("/auth/:provider/callback", user.CallbackAuth)

	// Catalogue (public)
	api.GET("/products", product.GetProducts)
	api.GET("/products/search", product.SearchProducts)
	api.GET("/products/:id", product.GetProductByID)
	api.GET("/products/:id/reviews", product.GetProductReviews)
	api.GET("/images/signed-url", product.GetSignedImageURL)

	// Routes authentifiées
	auth := api.Group("")
	auth.Use(middleware.AuthRequired())
	{
		// Panier
		auth.GET("/cart", user.GetCart)
		auth.POST("/cart", user.AddToCart)
		auth.PUT("/cart/:productId", user.UpdateCartQuantity)
		auth.DELETE("/cart/:productId", user.RemoveFromCart)
		auth.DELETE("/cart", user.ClearCart)
		auth.GET("/cart/ws", user.CartWebSocket)

		// Checkout
		auth.POST("/checkout", payement.Checkout)

		// Commandes
		auth.GET("/orders", user.GetMyOrders)
		auth.GET("/orders/:id", user.GetOrderByID)
		auth.GET("/orders/:id/qr", user.GetOrderQR)
		auth.GET("/orders/:id/invoice", user.GetOrderInvoice)

		// Profil
		auth.GET("/profile", user.GetProfile)
		auth.PUT("/profile", user.SaveProfile)
		auth.GET("/profile/geocode", user.ReverseGeocode)

		// Abonnements
		auth.GET("/membership/plans", user.GetMembershipPlans)
		auth.POST("/membership/subscribe", user.Subscribe)

		// Notifications
		auth.GET("/notifications", user.GetNotifications)
		auth.PUT("/notifications/read-all", user.MarkAllNotificationsRead)
		auth.PUT("/notifications/:id/read", user.MarkNotificationRead)
		auth.DELETE("/notifications", user.ClearNotifications)
		auth.GET("/notifications/ws", user.NotificationsWebSocket)

		// Avis
		auth.POST("/products/:id/reviews", product.AddProductReview)
	}

	// Routes admin
	admin := api.Group("/admin")
	admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
	{
		admin.POST("/products", product.CreateProduct)
		admin.POST("/products/images", product.UploadProductImage)
		admin.PUT("/orders/:id/status", user.UpdateOrderStatus)
	}
}

func corsConfig() cors.Config {
	origins := []string{"http://localhost:5173"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		origins = strings.Split(env, ",")
	}

	return cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
}
