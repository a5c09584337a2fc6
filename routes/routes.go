package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"hotelx-backend/controllers"
	"hotelx-backend/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// Controllers bundles the handlers SetupRouter wires up.
type Controllers struct {
	Auth     *controllers.AuthController
	Category *controllers.CategoryController
	Room     *controllers.RoomController
	Guest    *controllers.GuestController
	Booking  *controllers.BookingController
	Payment  *controllers.PaymentController
	Stats    *controllers.StatsController
}

// SetupRouter mounts all routes. Reads and the payment webhook stay public;
// everything that mutates state sits behind the JWT middleware.
func SetupRouter(c Controllers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())
	r.Use(middleware.RateLimiter())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", "X-Callback-Token"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", c.Auth.Login)
		}

		categories := api.Group("/categories")
		{
			categories.GET("", c.Category.ListCategories)
			categories.GET("/:id", c.Category.GetCategory)
			categories.POST("", middleware.AuthMiddleware(), c.Category.CreateCategory)
			categories.PATCH("/:id", middleware.AuthMiddleware(), c.Category.UpdateCategory)
			categories.PUT("/:id", middleware.AuthMiddleware(), c.Category.UpdateCategory)
			categories.DELETE("/:id", middleware.AuthMiddleware(), c.Category.DeleteCategory)
		}

		rooms := api.Group("/rooms")
		{
			rooms.GET("", c.Room.ListRooms)
			rooms.GET("/available", c.Room.GetAvailableRooms)
			rooms.GET("/:id", c.Room.GetRoom)
			rooms.POST("", middleware.AuthMiddleware(), c.Room.CreateRoom)
			rooms.PATCH("/:id", middleware.AuthMiddleware(), c.Room.UpdateRoom)
			rooms.PUT("/:id", middleware.AuthMiddleware(), c.Room.UpdateRoom)
			rooms.DELETE("/:id", middleware.AuthMiddleware(), c.Room.DeleteRoom)
		}

		guests := api.Group("/guests", middleware.AuthMiddleware())
		{
			guests.GET("", c.Guest.ListGuests)
			guests.GET("/:id", c.Guest.GetGuest)
			guests.POST("", c.Guest.CreateGuest)
			guests.PATCH("/:id", c.Guest.UpdateGuest)
			guests.PUT("/:id", c.Guest.UpdateGuest)
			guests.DELETE("/:id", c.Guest.DeleteGuest)
		}

		bookings := api.Group("/bookings", middleware.AuthMiddleware())
		{
			bookings.GET("", c.Booking.ListBookings)
			bookings.GET("/:id", c.Booking.GetBooking)
			bookings.POST("", c.Booking.CreateBooking)
			bookings.PATCH("/:id", c.Booking.UpdateBooking)
			bookings.PUT("/:id", c.Booking.UpdateBooking)
			bookings.DELETE("/:id", c.Booking.DeleteBooking)
		}

		payments := api.Group("/payments")
		{
			// Gateway callbacks authenticate with the callback token header.
			payments.POST("/webhook", c.Payment.HandleWebhook)

			payments.GET("", middleware.AuthMiddleware(), c.Payment.ListPayments)
			payments.GET("/:id", middleware.AuthMiddleware(), c.Payment.GetPayment)
			payments.POST("", middleware.AuthMiddleware(), c.Payment.CreatePayment)
			payments.PATCH("/:id", middleware.AuthMiddleware(), c.Payment.UpdatePayment)
			payments.PUT("/:id", middleware.AuthMiddleware(), c.Payment.UpdatePayment)
			payments.POST("/process", middleware.AuthMiddleware(), c.Payment.ProcessPayment)
		}

		api.GET("/stats", middleware.AuthMiddleware(), c.Stats.GetStats)
	}

	return r
}
