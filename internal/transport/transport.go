package transport

import (
	"time"

	"github.com/kollapso/booking/internal/service"
	"github.com/kollapso/booking/internal/transport/middleware"

	"github.com/gin-gonic/gin"
)

func newRouter() *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.Timeout(30 * time.Second))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return router
}

func authRoutes(api *gin.RouterGroup, authHandler *AuthHandler) {
	auth := api.Group("/auth")
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
	}
}

// InitBandRoutes builds the router of the band show-booking API.
func InitBandRoutes(authService service.AuthService, authHandler *AuthHandler, bookingHandler *BookingHandler) *gin.Engine {

	router := newRouter()

	api := router.Group("/api/v1")
	{
		authRoutes(api, authHandler)

		// Booking routes; the occupied-dates feed also requires a session,
		// matching the site it serves
		bookings := api.Group("/bookings")
		bookings.Use(middleware.Auth(authService))
		{
			bookings.GET("/occupied-dates", bookingHandler.OccupiedDates)
			bookings.POST("", bookingHandler.CreateBooking)
			bookings.GET("", bookingHandler.ListBookings)
			bookings.GET("/:id", bookingHandler.GetBooking)
			bookings.PUT("/:id", bookingHandler.UpdateBooking)
			bookings.POST("/:id/cancel", bookingHandler.CancelBooking)
			bookings.DELETE("/:id", middleware.RequireAdmin(), bookingHandler.DeleteBooking)
		}
	}

	return router
}

// InitRentalRoutes builds the router of the board-game rental API.
func InitRentalRoutes(authService service.AuthService, authHandler *AuthHandler, gameHandler *GameHandler, reservationHandler *ReservationHandler) *gin.Engine {

	router := newRouter()

	api := router.Group("/api/v1")
	{
		authRoutes(api, authHandler)

		// Catalog routes; reads are public, writes are admin-only
		games := api.Group("/games")
		{
			games.GET("", gameHandler.ListGames)
			games.GET("/:id", gameHandler.GetGame)

			games.POST("", middleware.Auth(authService), middleware.RequireAdmin(), gameHandler.CreateGame)
			games.PUT("/:id", middleware.Auth(authService), middleware.RequireAdmin(), gameHandler.UpdateGame)
			games.DELETE("/:id", middleware.Auth(authService), middleware.RequireAdmin(), gameHandler.DeleteGame)

			games.GET("/:id/reserved-dates", middleware.Auth(authService), reservationHandler.ReservedDates)
			games.POST("/:id/reservations", middleware.Auth(authService), reservationHandler.CreateReservation)
		}

		// Reservation routes
		reservations := api.Group("/reservations")
		reservations.Use(middleware.Auth(authService))
		{
			reservations.GET("", reservationHandler.ListReservations)
			reservations.GET("/:id", reservationHandler.GetReservation)
			reservations.PUT("/:id", reservationHandler.UpdateReservation)
			reservations.POST("/:id/cancel", reservationHandler.CancelReservation)
			reservations.DELETE("/:id", middleware.RequireAdmin(), reservationHandler.DeleteReservation)
		}
	}

	return router
}
