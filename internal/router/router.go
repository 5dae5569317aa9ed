package router

import (
	"github.com/gin-gonic/gin"

	"github.com/nutrileaf/nutrileaf-client/config"
	"github.com/nutrileaf/nutrileaf-client/internal/app/controller"
	"github.com/nutrileaf/nutrileaf-client/internal/middleware"
)

type Router struct {
	navController      *controller.NavController
	authController     *controller.AuthController
	marketController   *controller.MarketController
	cartController     *controller.CartController
	checkoutController *controller.CheckoutController
	orderController    *controller.OrderController
	forumController    *controller.ForumController
	chatController     *controller.ChatController
	scanController     *controller.ScanController
	adminController    *controller.AdminController
	wsController       *controller.WSController
	sessionMiddleware  *middleware.SessionMiddleware
	config             *config.Config
}

func NewRouter(
	navController *controller.NavController,
	authController *controller.AuthController,
	marketController *controller.MarketController,
	cartController *controller.CartController,
	checkoutController *controller.CheckoutController,
	orderController *controller.OrderController,
	forumController *controller.ForumController,
	chatController *controller.ChatController,
	scanController *controller.ScanController,
	adminController *controller.AdminController,
	wsController *controller.WSController,
	sessionMiddleware *middleware.SessionMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		navController:      navController,
		authController:     authController,
		marketController:   marketController,
		cartController:     cartController,
		checkoutController: checkoutController,
		orderController:    orderController,
		forumController:    forumController,
		chatController:     chatController,
		scanController:     scanController,
		adminController:    adminController,
		wsController:       wsController,
		sessionMiddleware:  sessionMiddleware,
		config:             cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "NutriLeaf client gateway is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		v1.GET("/ws", r.wsController.Attach)
		v1.GET("/nav/summary", r.navController.GetSummary)

		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.POST("/logout", r.authController.Logout)
			auth.GET("/me", r.sessionMiddleware.RequireSession(), r.authController.GetMe)
			auth.PUT("/profile", r.sessionMiddleware.RequireSession(), r.authController.UpdateProfile)
			auth.POST("/profile-image", r.sessionMiddleware.RequireSession(), r.authController.UploadProfileImage)
		}

		market := v1.Group("/market")
		{
			market.GET("/products", r.marketController.GetProducts)
			market.GET("/categories", r.marketController.GetCategories)
		}

		cart := v1.Group("/cart")
		{
			cart.GET("", r.cartController.GetCart)
			cart.POST("/items", r.cartController.AddItem)
			cart.PUT("/items/:product_id", r.cartController.UpdateItem)
			cart.DELETE("/items/:product_id", r.cartController.RemoveItem)
			cart.DELETE("", r.cartController.ClearCart)
		}

		v1.POST("/checkout", r.sessionMiddleware.RequireSession(), r.checkoutController.PlaceOrder)
		v1.GET("/orders", r.sessionMiddleware.RequireSession(), r.orderController.GetOrders)

		forum := v1.Group("/forum")
		{
			forum.GET("/threads", r.forumController.GetThreads)
			forum.POST("/threads", r.sessionMiddleware.RequireSession(), r.forumController.CreateThread)
			forum.POST("/threads/:id/replies", r.sessionMiddleware.RequireSession(), r.forumController.Reply)
			forum.POST("/threads/:id/like", r.sessionMiddleware.RequireSession(), r.forumController.Like)
		}

		v1.POST("/chat/messages", r.sessionMiddleware.RequireSession(), r.chatController.SendMessage)
		v1.POST("/scan", r.sessionMiddleware.RequireSession(), r.scanController.Scan)

		admin := v1.Group("/admin")
		admin.Use(r.sessionMiddleware.RequireSession(), r.sessionMiddleware.RequireAdmin())
		{
			admin.GET("/orders/export", r.adminController.ExportOrders)
			admin.GET("/:resource", r.adminController.Proxy)
			admin.POST("/:resource", r.adminController.Proxy)
			admin.PUT("/:resource/:id", r.adminController.Proxy)
			admin.DELETE("/:resource/:id", r.adminController.Proxy)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
