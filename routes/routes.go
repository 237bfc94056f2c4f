package routes

import (
	"cafe-ordering-api/handlers"
	"cafe-ordering-api/middleware"
	"cafe-ordering-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, h *handlers.Handler) {
	r.GET("/health", h.Health)

	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		public.POST("/auth/login", h.Login)

		public.GET("/menu", h.ListMenu)
		public.GET("/menu/:id", h.GetMenuItem)
		public.GET("/tables", h.ListTables)
		public.GET("/tips", h.GetCheckoutOptions)

		// State machine info (great for docs/Postman)
		public.GET("/state-machine", h.GetStateMachineInfo)

		// Stateless ordering and tracking
		public.POST("/orders", h.CreateOrder)
		public.GET("/orders/:id", h.GetOrder)
	}

	// ── Session routes (X-Session-ID) ──────────────────────────────
	sess := r.Group("/api")
	sess.Use(middleware.Session(h.Sessions))
	{
		sess.GET("/cart", h.GetCart)
		sess.POST("/cart/items", h.AddCartItem)
		sess.PUT("/cart/items/:id", h.UpdateCartItem)
		sess.DELETE("/cart/items/:id", h.RemoveCartItem)
		sess.DELETE("/cart", h.ClearCart)

		sess.POST("/checkout/start", h.StartCheckout)
		sess.POST("/checkout/order-type", h.ChooseOrderType)
		sess.POST("/checkout/table", h.SelectTable)
		sess.POST("/checkout/delivery", h.SubmitDelivery)
		sess.POST("/checkout/back", h.CheckoutBack)
		sess.GET("/checkout/bill", h.GetBill)
		sess.POST("/checkout/place", h.PlaceSessionOrder)
	}

	// ── Staff routes ───────────────────────────────────────────────
	staff := r.Group("/api/admin")
	staff.Use(middleware.AuthRequired(h.JWTSecret), middleware.RoleRequired(models.RoleAdmin, models.RoleStaff))
	{
		staff.GET("/orders", h.AdminListOrders)
		staff.PUT("/orders/:id/advance", h.AdvanceOrder)
		staff.PATCH("/menu/:id/availability", h.SetMenuAvailability)
	}

	// ── Admin-only routes ──────────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthRequired(h.JWTSecret), middleware.RoleRequired(models.RoleAdmin))
	{
		admin.PUT("/orders/:id/status", h.AdminForceOrderStatus)
	}
}
