package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/farhanridho/bioskop-booking/internal/config"
	"github.com/farhanridho/bioskop-booking/internal/handler"
	"github.com/farhanridho/bioskop-booking/internal/middleware"
)

// Handlers bundles everything the router needs to wire the API.
type Handlers struct {
	Bioskop  *handler.BioskopHandler
	Movie    *handler.MovieHandler
	Showtime *handler.ShowtimeHandler
	Seat     *handler.SeatHandler
	Booking  *handler.BookingHandler
}

// Register wires all routes onto the provided Echo instance.  The rate
// limiter covers every /api route.  The Redis response cache wraps the
// catalog reads only: booking routes and the seat availability view
// are always served from the store, because a cached availability
// answer could contradict what the booking transaction is about to
// decide.
func Register(e *echo.Echo, h Handlers, rdb *redis.Client) {
	// Health check for load balancers and monitoring.
	e.GET("/healthz", handler.Health)

	api := e.Group("/api", middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	cached := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	// Bioskop catalog.
	api.POST("/bioskops", h.Bioskop.CreateBioskop)
	api.GET("/bioskops", h.Bioskop.ListBioskops, cached)
	api.GET("/bioskops/:id", h.Bioskop.GetBioskop, cached)
	api.PUT("/bioskops/:id", h.Bioskop.UpdateBioskop)
	api.DELETE("/bioskops/:id", h.Bioskop.DeleteBioskop)

	// Movie catalog.
	api.POST("/movies", h.Movie.CreateMovie)
	api.GET("/movies", h.Movie.ListMovies, cached)
	api.GET("/movies/:id", h.Movie.GetMovie, cached)
	api.PUT("/movies/:id", h.Movie.UpdateMovie)
	api.DELETE("/movies/:id", h.Movie.DeleteMovie)

	// Showtimes.
	api.POST("/showtimes", h.Showtime.CreateShowtime)
	api.GET("/showtimes", h.Showtime.ListShowtimes, cached)
	api.GET("/showtimes/:id", h.Showtime.GetShowtime, cached)
	// Seat availability is derived per request; never cached.
	api.GET("/showtimes/:showtime_id/seats", h.Booking.GetShowtimeSeats)

	// Seat layout.
	api.POST("/seats", h.Seat.CreateSeats)
	api.GET("/seats", h.Seat.GetSeats, cached)

	// Bookings.
	api.POST("/bookings", h.Booking.CreateBooking)
	api.GET("/bookings", h.Booking.ListBookings)
	api.GET("/bookings/:booking_code", h.Booking.GetBooking)
	api.PUT("/bookings/:booking_code/cancel", h.Booking.CancelBooking)
}
