package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/kostyrin/theatre-booking/internal/booking"
	"github.com/kostyrin/theatre-booking/internal/config"
	"github.com/kostyrin/theatre-booking/internal/database"
	"github.com/kostyrin/theatre-booking/internal/handler"
	"github.com/kostyrin/theatre-booking/internal/queue"
	"github.com/kostyrin/theatre-booking/internal/repository"
	"github.com/kostyrin/theatre-booking/internal/router"
	queue_publisher "github.com/kostyrin/theatre-booking/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env wins

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; caching and rate limiting disabled")
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	actors := repository.NewActorRepo(db)
	genres := repository.NewGenreRepo(db)
	plays := repository.NewPlayRepo(db)
	halls := repository.NewHallRepo(db)
	performances := repository.NewPerformanceRepo(db)
	reservations := repository.NewReservationRepo(db)

	bookingSvc := booking.NewService(reservations)

	var events handler.EventPublisher
	if cfg.AMQPURL != "" {
		events = queue_publisher.New(cfg.AMQPURL)
		go func() {
			if err := queue.StartReservationConsumer(cfg.AMQPURL); err != nil {
				log.Printf("reservation consumer stopped: %v", err)
			}
		}()
	}

	e := echo.New()
	e.HideBanner = true

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, tokens), cfg.JWTSecret)
	router.RegisterCatalog(e, handler.NewCatalogHandler(actors, genres, plays, halls, performances), cfg.JWTSecret, rdb)
	router.RegisterReservations(e, handler.NewReservationHandler(bookingSvc, events), cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
