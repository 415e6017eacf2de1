package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	pkgdb "github.com/kmazurek/capstone-shop/pkg/db"
	"github.com/kmazurek/capstone-shop/pkg/events"
	"github.com/kmazurek/capstone-shop/pkg/logging"
	"github.com/kmazurek/capstone-shop/pkg/metrics"
	loggingmw "github.com/kmazurek/capstone-shop/pkg/middleware/logging"

	orderscfg "github.com/kmazurek/capstone-shop/services/orders/internal/config"
	"github.com/kmazurek/capstone-shop/services/orders/internal/httpserver"
	"github.com/kmazurek/capstone-shop/services/orders/internal/models"
	"github.com/kmazurek/capstone-shop/services/orders/internal/repo"
	"github.com/kmazurek/capstone-shop/services/orders/internal/service"
)

func main() {
	if err := godotenv.Load("services/orders/.env"); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := orderscfg.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := pkgdb.Open(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}

	// The users and products tables belong to their services; only the
	// orders table is migrated here.
	if err := db.AutoMigrate(&models.Order{}); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	logger := logging.New(os.Getenv("LOG_LEVEL")).With("service", "orders")
	slog.SetDefault(logger)

	producer := events.NewProducer(cfg.KafkaBrokers, "order_events")
	defer producer.Close()

	rp := &repo.GormRepo{DB: db}
	svc := &service.OrderService{Repo: rp}
	handler := &httpserver.OrderHTTP{Svc: svc, Events: producer}

	m := metrics.NewServerMetrics("orders")

	e := echo.New()
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(m.Middleware())
	e.Use(echomw.CORS())

	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	httpserver.Register(e, &httpserver.Deps{OrderHandler: handler})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		log.Printf("orders listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	log.Println("orders stopped")
}
