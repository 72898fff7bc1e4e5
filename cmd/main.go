package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"carpool-service/internal/admin"
	"carpool-service/internal/auth"
	"carpool-service/internal/bookings"
	"carpool-service/internal/cars"
	"carpool-service/internal/notifications"
	"carpool-service/internal/rides"
	"carpool-service/internal/store/postgres"
	"carpool-service/migrations"
	"carpool-service/pkg/config"
	"carpool-service/pkg/db"
	"carpool-service/pkg/jwt"
	"carpool-service/pkg/kafka"
	"carpool-service/pkg/logger"
	rredis "carpool-service/pkg/redis"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Load()
	log := logger.New(cfg.ServiceName)

	// ── 1. JWT secret ──
	if err := jwt.Init(cfg.JWTSecret, time.Duration(cfg.SessionTTLHours)*time.Hour); err != nil {
		log.Error("jwt init failed", logger.Error(err))
		os.Exit(1)
	}

	// ── 2. PostgreSQL ──
	database, err := db.Connect(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("postgres connect failed", logger.Error(err))
		os.Exit(1)
	}
	defer database.Close()

	if err := database.RunMigrations(ctx, migrations.FS); err != nil {
		log.Error("migrations failed", logger.Error(err))
		os.Exit(1)
	}

	// ── 3. Redis ──
	redisClient, err := rredis.NewClient(cfg.RedisAddr, cfg.RedisPassword, log)
	if err != nil {
		log.Error("redis connect failed", logger.Error(err))
		os.Exit(1)
	}
	defer redisClient.Close()

	// ── 4. Kafka ──
	brokers := strings.Split(cfg.KafkaBrokers, ",")
	kafkaClient := kafka.NewClient(brokers, log)

	if err := kafkaClient.EnsureTopics(ctx,
		kafka.TopicRidePublished,
		kafka.TopicBookingCreated,
		kafka.TopicCarVerified,
	); err != nil {
		log.Error("kafka topics failed", logger.Error(err))
		os.Exit(1)
	}

	// ── 5. Storage & services ──
	storage := postgres.New(database.Pool, log)

	authSvc := auth.NewService(storage.User(), redisClient, log)
	carSvc := cars.NewService(storage.Car(), kafkaClient, log)
	rideSvc := rides.NewService(storage.Ride(), redisClient, kafkaClient, log)
	bookingSvc := bookings.NewService(storage.Booking(), storage.Ride(), redisClient, kafkaClient, log)
	adminSvc := admin.NewService(storage.User(), storage.Car())

	// ── 6. Admin bootstrap ──
	if cfg.AdminUsername != "" && cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		if err := authSvc.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			log.Error("admin bootstrap failed", logger.Error(err))
			os.Exit(1)
		}
	}

	// ── 7. Background consumers ──
	notifications.NewConsumer(kafkaClient, log).Start(ctx)

	// ── 8. HTTP router ──
	mw := auth.NewMiddleware(storage.User(), redisClient, log)

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(mw.OptionalAuth)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","service":"carpool-service"}`))
	})

	r.Route("/api", func(api chi.Router) {
		auth.NewHandler(authSvc, mw).Routes(api)
		cars.NewHandler(carSvc, mw).Routes(api)
		rides.NewHandler(rideSvc, mw).Routes(api)
		bookings.NewHandler(bookingSvc, mw).Routes(api)
		admin.NewHandler(adminSvc, mw).Routes(api)
	})

	// ── 9. Start server ──
	srv := &http.Server{Addr: fmt.Sprintf(":%d", cfg.AppPort), Handler: r}

	go func() {
		log.Info("carpool-service listening", logger.Int("port", cfg.AppPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed", logger.Error(err))
			os.Exit(1)
		}
	}()

	// ── 10. Graceful shutdown ──
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	shutCtx, shutCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutCancel()
	srv.Shutdown(shutCtx)
	cancel() // stop consumers
}
