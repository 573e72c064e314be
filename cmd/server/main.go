package main

import (
	"log"

	"github.com/labstack/echo/v4"

	"github.com/akarpova/shareit/internal/config"
	"github.com/akarpova/shareit/internal/database"
	"github.com/akarpova/shareit/internal/handler"
	"github.com/akarpova/shareit/internal/middleware"
	"github.com/akarpova/shareit/internal/queue"
	"github.com/akarpova/shareit/internal/repository"
	"github.com/akarpova/shareit/internal/router"
	"github.com/akarpova/shareit/internal/service"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Repositories
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	items := repository.NewItemRepo(db)
	bookings := repository.NewBookingRepo(db)
	comments := repository.NewCommentRepo(db)
	requests := repository.NewRequestRepo(db)

	// Services
	bookingSvc := service.NewBookingService(bookings, items, users)
	itemSvc := service.NewItemService(items, users, bookings, comments, requests)
	requestSvc := service.NewRequestService(requests, users, items)

	// Handlers
	authH := handler.NewAuthHandler(cfg, users, tokens)
	userH := handler.NewUserHandler(users)
	itemH := handler.NewItemHandler(itemSvc)
	bookingH := handler.NewBookingHandler(bookingSvc)
	requestH := handler.NewRequestHandler(requestSvc)

	e := echo.New()
	e.HideBanner = true

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)

	// Redis-backed rate limiting on the authenticated API; the limiter is
	// a no-op when Redis is unreachable.
	rlCfg := config.LoadRateLimitConfig()
	rdb := config.NewRedisClient()
	if rdb == nil && rlCfg.Enabled {
		log.Printf("redis unavailable; rate limiting disabled")
	}
	router.RegisterAPI(e, cfg.JWTSecret, userH, itemH, bookingH, requestH,
		middleware.NewTokenBucket(rlCfg, rdb))

	// Background consumer appends booking lifecycle events to logs/booking.log.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
