package routes

import (
	"net/http"
	"time"

	"tripnest/handlers"
	"tripnest/middleware"
	"tripnest/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterAuthRoutes registers sign-up, sign-in and the caller's profile.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/signup", hb.SignUp)
		api.POST("/signin", hb.SignIn)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthMiddleware(hb.Auth, false))
		api.POST("/signout", hb.SignOut)
		api.GET("/me", hb.Me)
	}
}

// RegisterTripRoutes registers the catalog and saved-trip endpoints.
func RegisterTripRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/trips")
	{
		// Anonymous callers get the catalog; signed-in callers also get their saved flag.
		public := api.Group("")
		public.Use(middleware.JWTAuthMiddleware(hb.Auth, true))
		public.GET("", hb.ListTrips)
		public.GET("/featured", hb.FeaturedTrips)
		public.GET("/:id", hb.GetTrip)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware(hb.Auth, false))
		protected.PUT("/:id/save", hb.SaveTrip)
		protected.DELETE("/:id/save", hb.UnsaveTrip)
	}

	saved := r.Group("/api/saved-trips")
	{
		saved.Use(middleware.JWTAuthMiddleware(hb.Auth, false))
		saved.GET("", hb.ListSavedTrips)
		saved.GET("/stream", hb.StreamSavedTrips)
	}
}

// RegisterHotelRoutes registers hotel, room type and room endpoints.
func RegisterHotelRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/hotels/:hotelId")
	{
		api.GET("", hb.GetHotel)
		api.GET("/room-types", hb.ListRoomTypes)
		api.GET("/room-types/:roomTypeId/rooms", hb.ListAvailableRooms)
		api.POST("/room-types/:roomTypeId/rooms/:roomNumber/book",
			middleware.JWTAuthMiddleware(hb.Auth, false), hb.BookRoom)
	}
}

// RegisterBookingRoutes registers the booking flow and the caller's bookings.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	bookingGroup := r.Group("/api/bookings")
	{
		bookingGroup.Use(middleware.JWTAuthMiddleware(hb.Auth, false))
		bookingGroup.POST("", hb.ConfirmBooking)
		bookingGroup.GET("", hb.MyBookings)
		bookingGroup.POST("/:id/cancel", hb.CancelBooking)
	}
}

// RegisterNotificationRoutes registers the read-only notifications feed.
func RegisterNotificationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/notifications")
	{
		api.GET("", hb.ListNotifications)
		api.GET("/:id", hb.GetNotification)
	}
}

// RegisterHealthRoute registers a health-check endpoint backed by monitor.
func RegisterHealthRoute(r *gin.Engine, monitor *utils.HealthMonitor) {
	r.GET("/health", func(c *gin.Context) {
		status := monitor.Status()
		code := http.StatusOK
		if !status.Healthy() {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{"status": http.StatusText(code), "message": "Hi, I'm Tripnest", "services": status.Services, "checkedAt": status.CheckedAt})
	})
}

// RegisterMetricsRoute exposes the service metrics for Prometheus.
func RegisterMetricsRoute(r *gin.Engine, m *utils.Metrics) {
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})))
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, monitor *utils.HealthMonitor, m *utils.Metrics) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RequestMetrics(m))

	r.GET("/api/welcome", hb.Welcome)
	RegisterAuthRoutes(r, hb)
	RegisterTripRoutes(r, hb)
	RegisterHotelRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterNotificationRoutes(r, hb)
	RegisterHealthRoute(r, monitor)
	RegisterMetricsRoute(r, m)
}
