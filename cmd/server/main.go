package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/filmreel/video-rental/internal/config"
	"github.com/filmreel/video-rental/internal/database"
	"github.com/filmreel/video-rental/internal/handler"
	"github.com/filmreel/video-rental/internal/queue"
	"github.com/filmreel/video-rental/internal/repository"
	"github.com/filmreel/video-rental/internal/router"
	"github.com/filmreel/video-rental/internal/validation"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.EnsureSchema(ctx, db); err != nil {
		cancel()
		log.Fatalf("ensure schema: %v", err)
	}
	cancel()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; response cache and rate limiting disabled")
	}

	// Drains rental.events into logs/rental.log; reconnects on its own.
	go func() {
		if err := queue.StartRentalConsumer(); err != nil {
			log.Printf("rental consumer stopped: %v", err)
		}
	}()

	customers := repository.NewCustomerRepo(db)
	genres := repository.NewGenreRepo(db)
	movies := repository.NewMovieRepo(db)
	users := repository.NewUserRepo(db)
	rentals := repository.NewRentalRepo(db)

	e := echo.New()
	e.HideBanner = true
	e.Validator = validation.New()
	e.HTTPErrorHandler = router.ErrorHandler

	router.Register(e, cfg, router.Handlers{
		Customers: handler.NewCustomerHandler(customers),
		Genres:    handler.NewGenreHandler(genres),
		Movies:    handler.NewMovieHandler(movies, genres),
		Users:     handler.NewUserHandler(cfg, users),
		Rentals:   handler.NewRentalHandler(rentals, customers),
	}, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
