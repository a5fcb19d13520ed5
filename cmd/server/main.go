package main // Entry point package

import (
	"context"
	"log" // Logging library

	"github.com/joho/godotenv"    // .env loader for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/locker-reservation/internal/config"
	"github.com/iliyamo/locker-reservation/internal/database"
	"github.com/iliyamo/locker-reservation/internal/handler"
	"github.com/iliyamo/locker-reservation/internal/mailer"
	"github.com/iliyamo/locker-reservation/internal/middleware"
	"github.com/iliyamo/locker-reservation/internal/queue"
	"github.com/iliyamo/locker-reservation/internal/repository"
	"github.com/iliyamo/locker-reservation/internal/router"
	"github.com/iliyamo/locker-reservation/internal/scheduler"
	"github.com/iliyamo/locker-reservation/internal/service"
)

func main() {
	// Load .env when present; real deployments set the environment
	// directly and the file is simply absent.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional: without it the response cache and rate limiter
	// become pass-through and the sweep lock is process-local.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; cache, rate limiting and the sweep lock degrade")
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	lockers := repository.NewLockerRepo(db)
	reservations := repository.NewReservationRepo(db)

	m := mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom, cfg.MailFromName)
	notifier := service.NewNotifier(queue.BrokerURL())
	lifecycle := service.NewLifecycle(db, reservations, lockers, notifier, rdb)

	authHandler := handler.NewAuthHandler(cfg, users, tokens, notifier)
	userHandler := handler.NewUserHandler(cfg, users)
	lockerHandler := handler.NewLockerHandler(lockers)
	reservationHandler := handler.NewReservationHandler(db, reservations, lockers, users, notifier, lifecycle)

	e := echo.New()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterUsers(e, userHandler, cfg.JWTSecret)
	router.RegisterLockers(e, lockerHandler, cfg.JWTSecret, cache)
	router.RegisterReservations(e, reservationHandler, cfg.JWTSecret)

	// The consumer drains notification.send and delivers emails; the
	// scheduler runs the expiration sweep and the reminder pass.
	go func() {
		if err := queue.StartNotificationConsumer(m); err != nil {
			log.Printf("notification consumer stopped: %v", err)
		}
	}()
	go scheduler.New(lifecycle, cfg.SweepInterval).Start(context.Background())

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
