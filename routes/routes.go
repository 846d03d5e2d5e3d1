package routes

import (
	"github.com/gin-gonic/gin"

	"food-delivery-marketplace/config"
	"food-delivery-marketplace/handlers"
	"food-delivery-marketplace/lifecycle"
	"food-delivery-marketplace/middleware"
	"food-delivery-marketplace/models"
	"food-delivery-marketplace/relay"
)

func SetupRoutes(r *gin.Engine, hub *relay.Hub) {
	engine := lifecycle.NewEngine(config.DB, hub, lifecycle.PricingPolicy{
		DeliveryFee: config.C.Pricing.DeliveryFee,
		TaxRate:     config.C.Pricing.TaxRate,
	})
	orders := handlers.NewOrderHandler(engine)
	ws := &handlers.WSHandler{Hub: hub}

	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		public.POST("/auth/request-otp", handlers.RequestOTP)
		public.POST("/auth/verify-otp", handlers.VerifyOTP)

		public.GET("/restaurants", handlers.ListRestaurants)
		public.GET("/restaurants/:id", handlers.GetRestaurant)
	}

	// ── Restaurant owner routes ────────────────────────────────────
	owner := r.Group("/api/restaurants")
	owner.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleOwner))
	{
		owner.GET("/my-profile", handlers.GetMyProfile)
		owner.POST("/profile", handlers.UpsertProfile)

		owner.POST("/menu", handlers.AddMenuItem)
		owner.PUT("/menu/:id", handlers.UpdateMenuItem)
		owner.DELETE("/menu/:id", handlers.DeleteMenuItem)
	}

	// ── Order routes ───────────────────────────────────────────────
	api := r.Group("/api/orders")
	api.Use(middleware.AuthRequired())
	{
		api.POST("", middleware.RoleRequired(models.RoleCustomer), orders.Place)
		api.GET("/myorders", middleware.RoleRequired(models.RoleCustomer), orders.MyOrders)
		api.GET("/owner", middleware.RoleRequired(models.RoleOwner), orders.OwnerOrders)
		api.GET("/delivery/available", middleware.RoleRequired(models.RoleDelivery), orders.AvailableDeliveries)
		api.GET("/delivery/my-deliveries", middleware.RoleRequired(models.RoleDelivery), orders.MyDeliveries)

		// Per-edge authorization happens inside the lifecycle engine.
		api.PUT("/:id/status", orders.UpdateStatus)
	}

	// ── Real-time channel ──────────────────────────────────────────
	r.GET("/ws", middleware.AuthRequired(), ws.Serve)
}
