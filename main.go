package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"hotelx-backend/config"
	"hotelx-backend/controllers"
	"hotelx-backend/gateway"
	"hotelx-backend/logger"
	"hotelx-backend/routes"
	"hotelx-backend/services"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		logger.InfoLogger.Info(".env not found or couldn't load it; continuing with environment variables")
	}

	store, err := config.NewStore()
	if err != nil {
		logger.ErrorLogger.Fatalf("storage init failed: %v", err)
	}
	if err := config.SeedStore(store); err != nil {
		logger.ErrorLogger.Fatalf("seeding failed: %v", err)
	}

	gw := gateway.NewXenditClient(
		os.Getenv("XENDIT_API_KEY"),
		os.Getenv("XENDIT_CALLBACK_TOKEN"),
	)

	// Services
	availabilityService := services.NewAvailabilityService(store)
	categoryService := services.NewCategoryService(store)
	roomService := services.NewRoomService(store)
	guestService := services.NewGuestService(store)
	bookingService := services.NewBookingService(store, availabilityService)
	paymentService := services.NewPaymentService(store, gw)
	statsService := services.NewStatsService(store)

	// Controllers
	router := routes.SetupRouter(routes.Controllers{
		Auth:     controllers.NewAuthController(store),
		Category: controllers.NewCategoryController(categoryService),
		Room:     controllers.NewRoomController(roomService, availabilityService),
		Guest:    controllers.NewGuestController(guestService),
		Booking:  controllers.NewBookingController(bookingService),
		Payment:  controllers.NewPaymentController(paymentService),
		Stats:    controllers.NewStatsController(statsService),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.InfoLogger.Infof("server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.ErrorLogger.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.InfoLogger.Info("shutdown signal received, shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.ErrorLogger.Fatalf("server forced to shutdown: %v", err)
	}

	logger.InfoLogger.Info("server stopped gracefully")
}
