package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // .env loader for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/farhanridho/bioskop-booking/internal/config"
	"github.com/farhanridho/bioskop-booking/internal/database"
	"github.com/farhanridho/bioskop-booking/internal/handler"
	"github.com/farhanridho/bioskop-booking/internal/queue"
	"github.com/farhanridho/bioskop-booking/internal/repository"
	"github.com/farhanridho/bioskop-booking/internal/router"
	"github.com/farhanridho/bioskop-booking/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional: without it the limiter and catalog cache
	// disable themselves and correctness is unaffected.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting and catalog cache disabled")
	}

	bioskopRepo := repository.NewBioskopRepo(db)
	movieRepo := repository.NewMovieRepo(db)
	showtimeRepo := repository.NewShowtimeRepo(db)
	seatRepo := repository.NewSeatRepo(db)
	bookingRepo := repository.NewBookingRepo(db)
	availRepo := repository.NewAvailabilityRepo(db)

	bookingSvc := service.NewBookingService(db, bookingRepo, showtimeRepo, seatRepo, availRepo, queue.Publisher{})

	// Consume booking events in the background for confirmation logging.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	router.Register(e, router.Handlers{
		Bioskop:  handler.NewBioskopHandler(bioskopRepo),
		Movie:    handler.NewMovieHandler(movieRepo),
		Showtime: handler.NewShowtimeHandler(showtimeRepo),
		Seat:     handler.NewSeatHandler(seatRepo),
		Booking:  handler.NewBookingHandler(bookingSvc),
	}, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
